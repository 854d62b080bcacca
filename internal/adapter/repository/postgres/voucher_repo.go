package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// VoucherRepository implements usecase.VoucherRepository. Headers and
// lines are written through a caller-owned transaction; lines go in with
// CopyFrom since invoices routinely carry dozens of them.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

// CreateHeader inserts the voucher header row.
func (r *VoucherRepository) CreateHeader(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	pgxTx := tx.(*Tx).PgxTx()

	var dispatchDocNo, dispatchThrough, dispatchDestination string
	if voucher.Dispatch != nil {
		dispatchDocNo = voucher.Dispatch.DocNo
		dispatchThrough = voucher.Dispatch.Through
		dispatchDestination = voucher.Dispatch.Destination
	}

	var subtotal, cgst, sgst, igst, discount, total pgtype.Numeric
	if voucher.Totals != nil {
		subtotal = decimalToNumeric(voucher.Totals.Subtotal)
		cgst = decimalToNumeric(voucher.Totals.CGST)
		sgst = decimalToNumeric(voucher.Totals.SGST)
		igst = decimalToNumeric(voucher.Totals.IGST)
		discount = decimalToNumeric(voucher.Totals.Discount)
		total = decimalToNumeric(voucher.Totals.Total)
	}

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO voucher_main (
			id, kind, number, date, due_date, supplier_invoice_date,
			narration, reference_no, party_ledger_id,
			dispatch_doc_no, dispatch_through, dispatch_destination,
			subtotal, cgst, sgst, igst, discount, total, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)`,
		voucher.ID, voucher.Kind, voucher.Number,
		timeToPgTimestamptz(voucher.Date),
		timePtrToPgTimestamptz(voucher.DueDate),
		timePtrToPgTimestamptz(voucher.SupplierInvoiceDate),
		voucher.Narration, voucher.ReferenceNo,
		strPtrToText(voucher.PartyLedgerID),
		dispatchDocNo, dispatchThrough, dispatchDestination,
		subtotal, cgst, sgst, igst, discount, total,
		timeToPgTimestamptz(voucher.CreatedAt),
	)

	return err
}

// CreateLedgerLines bulk-inserts the double-entry lines.
func (r *VoucherRepository) CreateLedgerLines(ctx context.Context, tx usecase.Transaction, lines []domain.LedgerLine) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.CopyFrom(ctx,
		pgx.Identifier{"voucher_entries"},
		[]string{"id", "voucher_id", "ledger_id", "amount", "side", "narration", "bank_name", "cheque_number", "cost_centre_id"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			return []any{
				l.ID, l.VoucherID, l.LedgerID,
				decimalToNumeric(l.Amount), string(l.Side),
				l.Narration, l.BankName, l.ChequeNumber,
				strPtrToText(l.CostCentreID),
			}, nil
		}),
	)

	return err
}

// CreateItemLines bulk-inserts the inventory lines.
func (r *VoucherRepository) CreateItemLines(ctx context.Context, tx usecase.Transaction, lines []domain.ItemLine) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.CopyFrom(ctx,
		pgx.Identifier{"voucher_item_lines"},
		[]string{"id", "voucher_id", "item_id", "quantity", "rate", "discount", "cgst_rate", "sgst_rate", "igst_rate", "amount", "side", "godown_id", "batch_number"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			return []any{
				l.ID, l.VoucherID, l.ItemID,
				decimalToNumeric(l.Quantity), decimalToNumeric(l.Rate),
				decimalToNumeric(l.Discount), decimalToNumeric(l.CGSTRate),
				decimalToNumeric(l.SGSTRate), decimalToNumeric(l.IGSTRate),
				decimalToNumeric(l.Amount), string(l.Side),
				strPtrToText(l.GodownID), l.BatchNumber,
			}, nil
		}),
	)

	return err
}

// GetByID retrieves a voucher with all its lines.
func (r *VoucherRepository) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	voucher, err := r.scanHeader(r.pool.QueryRow(ctx, `
		SELECT `+voucherHeaderColumns+`
		FROM voucher_main
		WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}

		return nil, err
	}

	if voucher.LedgerLines, err = r.ledgerLines(ctx, id); err != nil {
		return nil, err
	}
	if voucher.ItemLines, err = r.itemLines(ctx, id); err != nil {
		return nil, err
	}

	return voucher, nil
}

// List lists voucher headers newest-first.
func (r *VoucherRepository) List(ctx context.Context, filter usecase.VoucherFilter) ([]*domain.Voucher, error) {
	var kind string
	if filter.Kind != nil {
		kind = string(*filter.Kind)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+voucherHeaderColumns+`
		FROM voucher_main
		WHERE ($1 = '' OR kind = $1)
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, id DESC
		LIMIT $4 OFFSET $5`,
		kind,
		timePtrToPgTimestamptz(filter.FromDate),
		timePtrToPgTimestamptz(filter.ToDate),
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*domain.Voucher
	for rows.Next() {
		voucher, err := r.scanHeader(rows)
		if err != nil {
			return nil, err
		}

		vouchers = append(vouchers, voucher)
	}

	return vouchers, rows.Err()
}

// Daybook returns one day's vouchers with their entry totals.
func (r *VoucherRepository) Daybook(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error) {
	day := date.Truncate(24 * time.Hour)

	rows, err := r.pool.Query(ctx, `
		SELECT vm.id, vm.kind, vm.number, vm.date, vm.narration,
			COALESCE(SUM(ve.amount) FILTER (WHERE ve.side = 'debit'), 0),
			COALESCE(SUM(ve.amount) FILTER (WHERE ve.side = 'credit'), 0),
			COUNT(ve.id)
		FROM voucher_main vm
		LEFT JOIN voucher_entries ve ON ve.voucher_id = vm.id
		WHERE vm.date >= $1 AND vm.date < $2
		GROUP BY vm.id, vm.kind, vm.number, vm.date, vm.narration
		ORDER BY vm.date, vm.id`,
		timeToPgTimestamptz(day), timeToPgTimestamptz(day.AddDate(0, 0, 1)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*usecase.DaybookRow
	for rows.Next() {
		var row usecase.DaybookRow
		var vdate pgtype.Timestamptz
		var debit, credit pgtype.Numeric

		err := rows.Scan(&row.VoucherID, &row.Kind, &row.VoucherNumber, &vdate, &row.Narration, &debit, &credit, &row.EntryCount)
		if err != nil {
			return nil, err
		}

		row.Date = vdate.Time
		row.TotalDebit = numericToDecimal(debit)
		row.TotalCredit = numericToDecimal(credit)

		result = append(result, &row)
	}

	return result, rows.Err()
}

const voucherHeaderColumns = `id, kind, number, date, due_date,
	supplier_invoice_date, narration, reference_no, party_ledger_id,
	dispatch_doc_no, dispatch_through, dispatch_destination,
	subtotal, cgst, sgst, igst, discount, total, created_at`

func (r *VoucherRepository) scanHeader(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	var vdate, dueDate, supplierDate, createdAt pgtype.Timestamptz
	var partyID pgtype.Text
	var dispatchDocNo, dispatchThrough, dispatchDestination string
	var subtotal, cgst, sgst, igst, discount, total pgtype.Numeric

	err := row.Scan(
		&v.ID, &v.Kind, &v.Number, &vdate, &dueDate,
		&supplierDate, &v.Narration, &v.ReferenceNo, &partyID,
		&dispatchDocNo, &dispatchThrough, &dispatchDestination,
		&subtotal, &cgst, &sgst, &igst, &discount, &total, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	v.Date = vdate.Time
	v.DueDate = pgTimestamptzToTimePtr(dueDate)
	v.SupplierInvoiceDate = pgTimestamptzToTimePtr(supplierDate)
	v.PartyLedgerID = textToStrPtr(partyID)
	v.CreatedAt = createdAt.Time

	if dispatchDocNo != "" || dispatchThrough != "" || dispatchDestination != "" {
		v.Dispatch = &domain.Dispatch{
			DocNo:       dispatchDocNo,
			Through:     dispatchThrough,
			Destination: dispatchDestination,
		}
	}

	if total.Valid {
		v.Totals = &domain.Totals{
			Subtotal: numericToDecimal(subtotal),
			CGST:     numericToDecimal(cgst),
			SGST:     numericToDecimal(sgst),
			IGST:     numericToDecimal(igst),
			Discount: numericToDecimal(discount),
			Total:    numericToDecimal(total),
		}
	}

	return &v, nil
}

func (r *VoucherRepository) ledgerLines(ctx context.Context, voucherID string) ([]domain.LedgerLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, voucher_id, ledger_id, amount, side, narration,
			bank_name, cheque_number, cost_centre_id
		FROM voucher_entries
		WHERE voucher_id = $1
		ORDER BY id`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var l domain.LedgerLine
		var amount pgtype.Numeric
		var costCentre pgtype.Text

		err := rows.Scan(&l.ID, &l.VoucherID, &l.LedgerID, &amount, &l.Side, &l.Narration, &l.BankName, &l.ChequeNumber, &costCentre)
		if err != nil {
			return nil, err
		}

		l.Amount = numericToDecimal(amount)
		l.CostCentreID = textToStrPtr(costCentre)

		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *VoucherRepository) itemLines(ctx context.Context, voucherID string) ([]domain.ItemLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, voucher_id, item_id, quantity, rate, discount,
			cgst_rate, sgst_rate, igst_rate, amount, side, godown_id,
			batch_number
		FROM voucher_item_lines
		WHERE voucher_id = $1
		ORDER BY id`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.ItemLine
	for rows.Next() {
		var l domain.ItemLine
		var quantity, rate, discount, cgst, sgst, igst, amount pgtype.Numeric
		var godownID pgtype.Text

		err := rows.Scan(&l.ID, &l.VoucherID, &l.ItemID, &quantity, &rate, &discount, &cgst, &sgst, &igst, &amount, &l.Side, &godownID, &l.BatchNumber)
		if err != nil {
			return nil, err
		}

		l.Quantity = numericToDecimal(quantity)
		l.Rate = numericToDecimal(rate)
		l.Discount = numericToDecimal(discount)
		l.CGSTRate = numericToDecimal(cgst)
		l.SGSTRate = numericToDecimal(sgst)
		l.IGSTRate = numericToDecimal(igst)
		l.Amount = numericToDecimal(amount)
		l.GodownID = textToStrPtr(godownID)

		lines = append(lines, l)
	}

	return lines, rows.Err()
}
