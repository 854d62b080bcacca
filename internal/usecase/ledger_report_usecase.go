package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// LedgerReportUseCase reconstructs a ledger statement with a running
// balance by replaying postings. Nothing is cached; every request replays
// from the static opening balance, which keeps the result correct against
// the latest committed data.
type LedgerReportUseCase struct {
	ledgers LedgerRepository
	reports ReportRepository
}

// NewLedgerReportUseCase creates a new LedgerReportUseCase.
func NewLedgerReportUseCase(ledgers LedgerRepository, reports ReportRepository) *LedgerReportUseCase {
	return &LedgerReportUseCase{ledgers: ledgers, reports: reports}
}

// LedgerReportInput selects the ledger and window.
type LedgerReportInput struct {
	LedgerID       string
	FromDate       time.Time
	ToDate         time.Time
	IncludeOpening bool
	IncludeClosing bool
}

// ReportRow is one statement line. Opening and closing rows are
// synthesized, not posted entries.
type ReportRow struct {
	ID          string
	Date        time.Time
	Particulars string
	VoucherType string
	VoucherNo   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	Narration   string
	ChequeNo    string
	BankName    string
	IsOpening   bool
	IsClosing   bool
}

// ReportSummary carries the window totals.
type ReportSummary struct {
	OpeningBalance   decimal.Decimal
	ClosingBalance   decimal.Decimal
	TotalDebit       decimal.Decimal
	TotalCredit      decimal.Decimal
	TransactionCount int
}

// LedgerReport is a reconstructed statement.
type LedgerReport struct {
	Ledger  *domain.Ledger
	Rows    []ReportRow
	Summary ReportSummary
}

// Report builds the statement for [FromDate, ToDate].
func (uc *LedgerReportUseCase) Report(ctx context.Context, input LedgerReportInput) (*LedgerReport, error) {
	if input.ToDate.Before(input.FromDate) {
		return nil, domain.ErrInvalidDateRange
	}

	ledger, err := uc.ledgers.GetByID(ctx, input.LedgerID)
	if err != nil {
		return nil, err
	}

	// Pre-period balance: static opening combined with everything
	// posted strictly before the window, under the ledger's sign
	// convention.
	pre, err := uc.reports.LedgerTotalsBefore(ctx, input.LedgerID, input.FromDate)
	if err != nil {
		return nil, err
	}

	opening := ledger.BalanceWithMovements(pre.Debit, pre.Credit)

	movements, err := uc.reports.LedgerMovements(ctx, input.LedgerID, input.FromDate, input.ToDate)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(movements)+2)

	if input.IncludeOpening {
		row := ReportRow{
			ID:          "opening",
			Date:        input.FromDate,
			Particulars: "Opening Balance",
			Balance:     opening,
			Narration:   "Opening as on " + input.FromDate.Format("2006-01-02"),
			IsOpening:   true,
		}

		if ledger.BalanceType == domain.BalanceTypeCredit {
			row.Credit = opening.Abs()
		} else {
			row.Debit = opening
		}

		rows = append(rows, row)
	}

	// From here the running balance follows the fixed convention:
	// debits increase, credits decrease, regardless of balance type.
	balance := opening

	var totalDebit, totalCredit decimal.Decimal
	for _, m := range movements {
		var debit, credit decimal.Decimal
		if m.Side == domain.SideCredit {
			credit = m.Amount
			totalCredit = totalCredit.Add(m.Amount)
		} else {
			debit = m.Amount
			totalDebit = totalDebit.Add(m.Amount)
		}

		balance = balance.Add(debit).Sub(credit)

		particulars := m.Narration
		if particulars == "" {
			particulars = "-"
		}

		rows = append(rows, ReportRow{
			ID:          m.EntryID,
			Date:        m.Date,
			Particulars: particulars,
			VoucherType: string(m.Kind),
			VoucherNo:   m.VoucherNumber,
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
			Narration:   m.Narration,
			ChequeNo:    m.ChequeNumber,
			BankName:    m.BankName,
		})
	}

	if input.IncludeClosing {
		row := ReportRow{
			ID:          "closing",
			Date:        input.ToDate,
			Particulars: "Closing Balance",
			Narration:   "Closing as on " + input.ToDate.Format("2006-01-02"),
			IsClosing:   true,
		}

		// The closing row shows the balancing figure on the opposite
		// side, leaving the statement at zero.
		if balance.IsNegative() {
			row.Debit = balance.Abs()
		} else {
			row.Credit = balance
		}

		rows = append(rows, row)
	}

	return &LedgerReport{
		Ledger: ledger,
		Rows:   rows,
		Summary: ReportSummary{
			OpeningBalance:   opening,
			ClosingBalance:   balance,
			TotalDebit:       totalDebit,
			TotalCredit:      totalCredit,
			TransactionCount: len(movements),
		},
	}, nil
}
