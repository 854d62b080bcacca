package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
	"github.com/gstbooks/gstbooks/internal/usecase/mocks"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLedgerReportUseCase_Report(t *testing.T) {
	ledgers := mocks.NewMockLedgerRepository()
	ledgers.Add(&domain.Ledger{
		ID:             "led-1",
		Name:           "Cash",
		OpeningBalance: decimal.NewFromInt(1000),
		BalanceType:    domain.BalanceTypeDebit,
	})

	reports := mocks.NewMockReportRepository()
	reports.LedgerMovementsFunc = func(ctx context.Context, ledgerID string, from, to time.Time) ([]*usecase.LedgerMovement, error) {
		return []*usecase.LedgerMovement{
			{EntryID: "e-1", VoucherID: "v-1", Kind: domain.KindReceipt, VoucherNumber: "RCV-1", Date: date(2024, 4, 5), Side: domain.SideDebit, Amount: decimal.NewFromInt(500), Narration: "advance received"},
			{EntryID: "e-2", VoucherID: "v-2", Kind: domain.KindPayment, VoucherNumber: "PAY-1", Date: date(2024, 4, 9), Side: domain.SideCredit, Amount: decimal.NewFromInt(200), Narration: "office rent"},
		}, nil
	}

	uc := usecase.NewLedgerReportUseCase(ledgers, reports)

	report, err := uc.Report(context.Background(), usecase.LedgerReportInput{
		LedgerID:       "led-1",
		FromDate:       date(2024, 4, 1),
		ToDate:         date(2024, 4, 30),
		IncludeOpening: true,
		IncludeClosing: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Summary.OpeningBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected opening 1000, got %s", report.Summary.OpeningBalance)
	}
	if !report.Summary.ClosingBalance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected closing 1300, got %s", report.Summary.ClosingBalance)
	}
	if !report.Summary.TotalDebit.Equal(decimal.NewFromInt(500)) || !report.Summary.TotalCredit.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected totals 500/200, got %s/%s", report.Summary.TotalDebit, report.Summary.TotalCredit)
	}
	if report.Summary.TransactionCount != 2 {
		t.Errorf("expected 2 transactions, got %d", report.Summary.TransactionCount)
	}

	// opening + 2 movements + closing
	if len(report.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(report.Rows))
	}
	if !report.Rows[0].IsOpening {
		t.Error("first row must be the opening row")
	}
	if !report.Rows[1].Balance.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected running balance 1500 after receipt, got %s", report.Rows[1].Balance)
	}
	if !report.Rows[2].Balance.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected running balance 1300 after payment, got %s", report.Rows[2].Balance)
	}

	closing := report.Rows[3]
	if !closing.IsClosing {
		t.Error("last row must be the closing row")
	}
	if !closing.Credit.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("positive closing balances on the credit side, got debit=%s credit=%s", closing.Debit, closing.Credit)
	}
}

func TestLedgerReportUseCase_Report_FoldsPrePeriodTotals(t *testing.T) {
	ledgers := mocks.NewMockLedgerRepository()
	ledgers.Add(&domain.Ledger{
		ID:             "led-1",
		Name:           "Sales",
		OpeningBalance: decimal.NewFromInt(100),
		BalanceType:    domain.BalanceTypeCredit,
	})

	reports := mocks.NewMockReportRepository()
	reports.LedgerTotalsBeforeFunc = func(ctx context.Context, ledgerID string, before time.Time) (usecase.DebitCredit, error) {
		return usecase.DebitCredit{
			Debit:  decimal.NewFromInt(50),
			Credit: decimal.NewFromInt(400),
		}, nil
	}

	uc := usecase.NewLedgerReportUseCase(ledgers, reports)

	report, err := uc.Report(context.Background(), usecase.LedgerReportInput{
		LedgerID: "led-1",
		FromDate: date(2024, 7, 1),
		ToDate:   date(2024, 7, 31),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// credit-type: 100 + (400 - 50)
	if !report.Summary.OpeningBalance.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected opening 450, got %s", report.Summary.OpeningBalance)
	}
	if len(report.Rows) != 0 {
		t.Errorf("expected no rows without pseudo rows or movements, got %d", len(report.Rows))
	}
}

func TestLedgerReportUseCase_Report_Errors(t *testing.T) {
	ledgers := mocks.NewMockLedgerRepository()
	reports := mocks.NewMockReportRepository()
	uc := usecase.NewLedgerReportUseCase(ledgers, reports)

	_, err := uc.Report(context.Background(), usecase.LedgerReportInput{
		LedgerID: "led-1",
		FromDate: date(2024, 5, 1),
		ToDate:   date(2024, 4, 1),
	})
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}

	_, err = uc.Report(context.Background(), usecase.LedgerReportInput{
		LedgerID: "led-missing",
		FromDate: date(2024, 4, 1),
		ToDate:   date(2024, 4, 30),
	})
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Errorf("expected ErrLedgerNotFound, got %v", err)
	}
}
