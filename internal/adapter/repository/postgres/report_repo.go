package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// ReportRepository implements usecase.ReportRepository: the read-side
// aggregations the statement and cash-flow builders replay. Everything
// aggregates over voucher_entries joined to voucher_main; nothing here
// writes.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// LedgerTotalsBefore sums a ledger's posted debits and credits strictly
// before a date.
func (r *ReportRepository) LedgerTotalsBefore(ctx context.Context, ledgerID string, before time.Time) (usecase.DebitCredit, error) {
	var debit, credit pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(ve.amount) FILTER (WHERE ve.side = 'debit'), 0),
			COALESCE(SUM(ve.amount) FILTER (WHERE ve.side = 'credit'), 0)
		FROM voucher_entries ve
		JOIN voucher_main vm ON vm.id = ve.voucher_id
		WHERE ve.ledger_id = $1 AND vm.date < $2`,
		ledgerID, timeToPgTimestamptz(before)).Scan(&debit, &credit)
	if err != nil {
		return usecase.DebitCredit{}, err
	}

	return usecase.DebitCredit{
		Debit:  numericToDecimal(debit),
		Credit: numericToDecimal(credit),
	}, nil
}

// LedgerMovements lists a ledger's entries in a window, ordered by date
// then voucher then entry so reruns replay identically.
func (r *ReportRepository) LedgerMovements(ctx context.Context, ledgerID string, from, to time.Time) ([]*usecase.LedgerMovement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ve.id, vm.id, vm.kind, vm.number, vm.date, ve.side,
			ve.amount, ve.narration, ve.cheque_number, ve.bank_name
		FROM voucher_entries ve
		JOIN voucher_main vm ON vm.id = ve.voucher_id
		WHERE ve.ledger_id = $1 AND vm.date >= $2 AND vm.date <= $3
		ORDER BY vm.date, vm.id, ve.id`,
		ledgerID, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*usecase.LedgerMovement
	for rows.Next() {
		var m usecase.LedgerMovement
		var date pgtype.Timestamptz
		var amount pgtype.Numeric

		err := rows.Scan(&m.EntryID, &m.VoucherID, &m.Kind, &m.VoucherNumber, &date, &m.Side, &amount, &m.Narration, &m.ChequeNumber, &m.BankName)
		if err != nil {
			return nil, err
		}

		m.Date = date.Time
		m.Amount = numericToDecimal(amount)

		movements = append(movements, &m)
	}

	return movements, rows.Err()
}

// LedgersWithGroups lists every ledger with its group resolved.
func (r *ReportRepository) LedgersWithGroups(ctx context.Context) ([]*domain.Ledger, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledgers l
		JOIN ledger_groups g ON g.id = l.group_id
		ORDER BY g.name, l.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgers(rows)
}

// LedgerPostedTotals sums posted debits and credits per ledger across
// the whole book.
func (r *ReportRepository) LedgerPostedTotals(ctx context.Context) (map[string]usecase.DebitCredit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ve.ledger_id,
			COALESCE(SUM(ve.amount) FILTER (WHERE ve.side = 'debit'), 0),
			COALESCE(SUM(ve.amount) FILTER (WHERE ve.side = 'credit'), 0)
		FROM voucher_entries ve
		GROUP BY ve.ledger_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]usecase.DebitCredit)
	for rows.Next() {
		var ledgerID string
		var debit, credit pgtype.Numeric

		if err := rows.Scan(&ledgerID, &debit, &credit); err != nil {
			return nil, err
		}

		totals[ledgerID] = usecase.DebitCredit{
			Debit:  numericToDecimal(debit),
			Credit: numericToDecimal(credit),
		}
	}

	return totals, rows.Err()
}

// MonthlyFlows groups classified inflows and outflows by calendar month.
// Inflows are debit entries on the inflow voucher kinds; outflows are
// credit entries on the outflow kinds.
func (r *ReportRepository) MonthlyFlows(ctx context.Context, from, to time.Time, inflow, outflow []domain.VoucherKind) ([]*usecase.MonthFlow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			EXTRACT(YEAR FROM vm.date)::int,
			EXTRACT(MONTH FROM vm.date)::int,
			COALESCE(SUM(ve.amount) FILTER (WHERE vm.kind = ANY($3) AND ve.side = 'debit'), 0),
			COALESCE(SUM(ve.amount) FILTER (WHERE vm.kind = ANY($4) AND ve.side = 'credit'), 0)
		FROM voucher_entries ve
		JOIN voucher_main vm ON vm.id = ve.voucher_id
		WHERE vm.date >= $1 AND vm.date <= $2
		  AND vm.kind = ANY($3 || $4)
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		timeToPgTimestamptz(from), timeToPgTimestamptz(to),
		kindStrings(inflow), kindStrings(outflow))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flows []*usecase.MonthFlow
	for rows.Next() {
		var year, month int
		var in, out pgtype.Numeric

		if err := rows.Scan(&year, &month, &in, &out); err != nil {
			return nil, err
		}

		flows = append(flows, &usecase.MonthFlow{
			Year:    year,
			Month:   time.Month(month),
			Inflow:  numericToDecimal(in),
			Outflow: numericToDecimal(out),
		})
	}

	return flows, rows.Err()
}

// FlowByLedger sums one side of the given voucher kinds per ledger in a
// window, largest first.
func (r *ReportRepository) FlowByLedger(ctx context.Context, from, to time.Time, kinds []domain.VoucherKind, side domain.EntrySide) ([]*usecase.NamedAmount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.name, COALESCE(SUM(ve.amount), 0)
		FROM voucher_entries ve
		JOIN voucher_main vm ON vm.id = ve.voucher_id
		JOIN ledgers l ON l.id = ve.ledger_id
		WHERE vm.date >= $1 AND vm.date <= $2
		  AND vm.kind = ANY($3)
		  AND ve.side = $4
		GROUP BY l.name
		ORDER BY 2 DESC`,
		timeToPgTimestamptz(from), timeToPgTimestamptz(to),
		kindStrings(kinds), string(side))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amounts []*usecase.NamedAmount
	for rows.Next() {
		var a usecase.NamedAmount
		var amount pgtype.Numeric

		if err := rows.Scan(&a.Name, &amount); err != nil {
			return nil, err
		}

		a.Amount = numericToDecimal(amount)
		amounts = append(amounts, &a)
	}

	return amounts, rows.Err()
}

func kindStrings(kinds []domain.VoucherKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}

	return out
}
