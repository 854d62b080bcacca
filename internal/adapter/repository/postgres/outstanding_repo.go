package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/usecase"
)

// Bill and settlement voucher kinds per role. Receivables are sales
// bills settled by receipts; payables are purchase bills settled by
// payments.
func roleKinds(role usecase.PartyRole) (billKind, settleKind string) {
	if role == usecase.RolePayable {
		return "purchase", "payment"
	}

	return "sales", "receipt"
}

// OutstandingRepository implements usecase.OutstandingRepository.
type OutstandingRepository struct {
	pool *pgxpool.Pool
}

// NewOutstandingRepository creates a new OutstandingRepository.
func NewOutstandingRepository(pool *pgxpool.Pool) *OutstandingRepository {
	return &OutstandingRepository{pool: pool}
}

// PartyBills lists bill vouchers for the role, optionally narrowed to
// specific parties. The bill amount prefers the invoice total and falls
// back to the item-line sum. Settled carries only settlements whose
// reference number names this bill; unattributed settlements surface
// through PartySettlements instead.
func (r *OutstandingRepository) PartyBills(ctx context.Context, role usecase.PartyRole, partyIDs []string) ([]*usecase.PartyBill, error) {
	billKind, settleKind := roleKinds(role)

	rows, err := r.pool.Query(ctx, `
		SELECT vm.id, vm.number, vm.date, vm.due_date, vm.party_ledger_id,
			COALESCE(vm.total,
				(SELECT COALESCE(SUM(il.amount), 0)
				 FROM voucher_item_lines il
				 WHERE il.voucher_id = vm.id)),
			COALESCE(
				(SELECT SUM(ve.amount)
				 FROM voucher_main sv
				 JOIN voucher_entries ve ON ve.voucher_id = sv.id
				 WHERE sv.kind = $2
				   AND sv.reference_no <> ''
				   AND sv.reference_no = vm.number
				   AND ve.ledger_id = vm.party_ledger_id), 0),
			vm.reference_no, vm.narration
		FROM voucher_main vm
		WHERE vm.kind = $1
		  AND vm.party_ledger_id IS NOT NULL
		  AND (cardinality($3::text[]) = 0 OR vm.party_ledger_id = ANY($3))
		ORDER BY vm.date, vm.id`,
		billKind, settleKind, partyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*usecase.PartyBill
	for rows.Next() {
		var b usecase.PartyBill
		var date, dueDate pgtype.Timestamptz
		var amount, settled pgtype.Numeric

		err := rows.Scan(&b.VoucherID, &b.VoucherNumber, &date, &dueDate, &b.PartyID, &amount, &settled, &b.ReferenceNo, &b.Narration)
		if err != nil {
			return nil, err
		}

		b.Date = date.Time
		b.DueDate = pgTimestamptzToTimePtr(dueDate)
		b.Amount = numericToDecimal(amount)
		b.Settled = numericToDecimal(settled)

		bills = append(bills, &b)
	}

	return bills, rows.Err()
}

// PartySettlements sums the settlement entries recorded against each
// party's ledger, with the most recent settlement date.
func (r *OutstandingRepository) PartySettlements(ctx context.Context, role usecase.PartyRole, partyIDs []string) (map[string]*usecase.PartySettlement, error) {
	_, settleKind := roleKinds(role)

	// Receipts credit the customer ledger; payments debit the supplier
	// ledger.
	side := "credit"
	if role == usecase.RolePayable {
		side = "debit"
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ve.ledger_id, COALESCE(SUM(ve.amount), 0), MAX(vm.date)
		FROM voucher_entries ve
		JOIN voucher_main vm ON vm.id = ve.voucher_id
		WHERE vm.kind = $1
		  AND ve.side = $2
		  AND (cardinality($3::text[]) = 0 OR ve.ledger_id = ANY($3))
		GROUP BY ve.ledger_id`,
		settleKind, side, partyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settlements := make(map[string]*usecase.PartySettlement)
	for rows.Next() {
		var ledgerID string
		var total pgtype.Numeric
		var lastDate pgtype.Timestamptz

		if err := rows.Scan(&ledgerID, &total, &lastDate); err != nil {
			return nil, err
		}

		settlements[ledgerID] = &usecase.PartySettlement{
			Total:    numericToDecimal(total),
			LastDate: pgTimestamptzToTimePtr(lastDate),
		}
	}

	return settlements, rows.Err()
}
