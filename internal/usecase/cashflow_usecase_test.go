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

func TestParseFinancialYear(t *testing.T) {
	tests := []struct {
		code        string
		wantStart   int
		expectError bool
	}{
		{code: "2024-25", wantStart: 2024},
		{code: "1999-00", wantStart: 1999},
		{code: "2024-26", expectError: true},
		{code: "2024", expectError: true},
		{code: "24-25", expectError: true},
		{code: "abcd-ef", expectError: true},
		{code: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			fy, err := usecase.ParseFinancialYear(tt.code)

			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidFinancialYear) {
					t.Errorf("expected ErrInvalidFinancialYear, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fy.StartYear != tt.wantStart {
				t.Errorf("expected start year %d, got %d", tt.wantStart, fy.StartYear)
			}
			if fy.String() != tt.code {
				t.Errorf("expected roundtrip %q, got %q", tt.code, fy.String())
			}
		})
	}
}

func TestFinancialYear_Range(t *testing.T) {
	fy := usecase.FinancialYear{StartYear: 2024}
	from, to := fy.Range()

	if !from.Equal(date(2024, 4, 1)) {
		t.Errorf("expected 2024-04-01, got %s", from)
	}
	if !to.Equal(date(2025, 3, 31)) {
		t.Errorf("expected 2025-03-31, got %s", to)
	}
}

func TestCashFlowUseCase_Statement_ZeroFillsAllMonths(t *testing.T) {
	reports := mocks.NewMockReportRepository()
	reports.MonthlyFlowsFunc = func(ctx context.Context, from, to time.Time, inflow, outflow []domain.VoucherKind) ([]*usecase.MonthFlow, error) {
		return []*usecase.MonthFlow{
			{Year: 2024, Month: time.June, Inflow: decimal.NewFromInt(50000), Outflow: decimal.NewFromInt(20000)},
			{Year: 2025, Month: time.January, Inflow: decimal.NewFromInt(10000)},
		}, nil
	}

	uc := usecase.NewCashFlowUseCase(reports, nil)

	stmt, err := uc.Statement(context.Background(), usecase.FinancialYear{StartYear: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stmt.Months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(stmt.Months))
	}
	if stmt.Months[0].MonthCode != "Apr-24" {
		t.Errorf("expected first month Apr-24, got %s", stmt.Months[0].MonthCode)
	}
	if stmt.Months[11].MonthCode != "Mar-25" {
		t.Errorf("expected last month Mar-25, got %s", stmt.Months[11].MonthCode)
	}

	june := stmt.Months[2]
	if !june.Inflow.Equal(decimal.NewFromInt(50000)) || !june.Net.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("expected June 50000 in, 30000 net, got %s/%s", june.Inflow, june.Net)
	}

	// Months with no postings stay present at zero.
	may := stmt.Months[1]
	if !may.Inflow.IsZero() || !may.Outflow.IsZero() {
		t.Errorf("expected zero-filled May, got %s/%s", may.Inflow, may.Outflow)
	}

	if !stmt.TotalInflow.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("expected total inflow 60000, got %s", stmt.TotalInflow)
	}
	if !stmt.NetFlow.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("expected net 40000, got %s", stmt.NetFlow)
	}
}

func TestMonthCodeRoundtrip(t *testing.T) {
	m := date(2024, 4, 1)

	code := usecase.MonthCode(m)
	if code != "Apr-24" {
		t.Fatalf("expected Apr-24, got %s", code)
	}

	parsed, err := usecase.ParseMonthCode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.April {
		t.Errorf("expected April 2024, got %s", parsed)
	}

	if _, err := usecase.ParseMonthCode("April-2024"); err == nil {
		t.Error("expected error for long month code")
	}
}

func TestCashFlowUseCase_MonthDetail(t *testing.T) {
	reports := mocks.NewMockReportRepository()
	reports.FlowByLedgerFunc = func(ctx context.Context, from, to time.Time, kinds []domain.VoucherKind, side domain.EntrySide) ([]*usecase.NamedAmount, error) {
		if side == domain.SideDebit {
			return []*usecase.NamedAmount{
				{Name: "Cash", Amount: decimal.NewFromInt(30000)},
				{Name: "HDFC Bank", Amount: decimal.NewFromInt(20000)},
			}, nil
		}
		return []*usecase.NamedAmount{
			{Name: "Rent", Amount: decimal.NewFromInt(15000)},
		}, nil
	}

	uc := usecase.NewCashFlowUseCase(reports, nil)

	detail, err := uc.MonthDetail(context.Background(), "Jun-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !detail.Inflow.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected inflow 50000, got %s", detail.Inflow)
	}
	if !detail.Outflow.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("expected outflow 15000, got %s", detail.Outflow)
	}
	if !detail.Net.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("expected net 35000, got %s", detail.Net)
	}
	if len(detail.Inflows) != 2 || len(detail.Outflows) != 1 {
		t.Errorf("expected 2 inflow and 1 outflow lines, got %d/%d", len(detail.Inflows), len(detail.Outflows))
	}
}

func TestCashFlowUseCase_Statement_CachedPerYear(t *testing.T) {
	reports := mocks.NewMockReportRepository()

	var flowCalls int
	reports.MonthlyFlowsFunc = func(ctx context.Context, from, to time.Time, inflow, outflow []domain.VoucherKind) ([]*usecase.MonthFlow, error) {
		flowCalls++
		return []*usecase.MonthFlow{
			{Year: 2024, Month: time.June, Inflow: decimal.NewFromInt(50000), Outflow: decimal.NewFromInt(20000)},
		}, nil
	}

	uc := usecase.NewCashFlowUseCase(reports, mocks.NewMockCache())

	first, err := uc.Statement(context.Background(), usecase.FinancialYear{StartYear: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Statement(context.Background(), usecase.FinancialYear{StartYear: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if flowCalls != 1 {
		t.Errorf("expected one repository hit, got %d", flowCalls)
	}
	if len(second.Months) != 12 || !second.TotalInflow.Equal(first.TotalInflow) {
		t.Errorf("cached statement differs: %+v vs %+v", second, first)
	}

	// A different year is a different cache entry.
	if _, err := uc.Statement(context.Background(), usecase.FinancialYear{StartYear: 2023}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flowCalls != 2 {
		t.Errorf("expected a fresh repository hit per year, got %d", flowCalls)
	}
}
