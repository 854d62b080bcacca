package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

const (
	cashFlowCacheKey = "reports:cash-flow:"
	cashFlowCacheTTL = time.Minute
)

// Cash flow classification: money comes in through receipts and sales,
// and goes out through payments and purchases.
var (
	inflowKinds  = []domain.VoucherKind{domain.KindReceipt, domain.KindSales}
	outflowKinds = []domain.VoucherKind{domain.KindPayment, domain.KindPurchase}
)

// CashFlowUseCase builds the monthly cash flow view over an Indian
// financial year (April through March).
type CashFlowUseCase struct {
	reports ReportRepository
	cache   Cache
}

// NewCashFlowUseCase creates a new CashFlowUseCase.
func NewCashFlowUseCase(reports ReportRepository, cache Cache) *CashFlowUseCase {
	return &CashFlowUseCase{reports: reports, cache: cache}
}

// FinancialYear is an April-to-March accounting year identified by its
// starting calendar year.
type FinancialYear struct {
	StartYear int
}

// ParseFinancialYear parses "2024-25" style codes. The second segment
// must be the last two digits of the following year.
func ParseFinancialYear(code string) (FinancialYear, error) {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return FinancialYear{}, domain.ErrInvalidFinancialYear
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil || start < 1900 || start > 9999 {
		return FinancialYear{}, domain.ErrInvalidFinancialYear
	}

	next, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || (start+1)%100 != next {
		return FinancialYear{}, domain.ErrInvalidFinancialYear
	}

	return FinancialYear{StartYear: start}, nil
}

// String formats the year back to its "2024-25" code.
func (fy FinancialYear) String() string {
	return fmt.Sprintf("%d-%02d", fy.StartYear, (fy.StartYear+1)%100)
}

// Range returns the inclusive date window the year covers.
func (fy FinancialYear) Range() (from, to time.Time) {
	from = time.Date(fy.StartYear, time.April, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(fy.StartYear+1, time.March, 31, 0, 0, 0, 0, time.UTC)

	return from, to
}

// Months returns the twelve (year, month) pairs in order.
func (fy FinancialYear) Months() []time.Time {
	months := make([]time.Time, 0, 12)
	for i := 0; i < 12; i++ {
		months = append(months, time.Date(fy.StartYear, time.April+time.Month(i), 1, 0, 0, 0, 0, time.UTC))
	}

	return months
}

// MonthCode formats a month as its short drill-down code, e.g. "Apr-24".
func MonthCode(t time.Time) string {
	return t.Format("Jan-06")
}

// ParseMonthCode parses an "Apr-24" code back to the first of the month.
func ParseMonthCode(code string) (time.Time, error) {
	t, err := time.Parse("Jan-06", code)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month code %q: %w", code, err)
	}

	return t, nil
}

// CashFlowMonth is one month's classified totals.
type CashFlowMonth struct {
	MonthCode string
	Month     time.Month
	Year      int
	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	Net       decimal.Decimal
}

// CashFlowStatement covers a full financial year, always twelve months,
// zero-filled where nothing was posted.
type CashFlowStatement struct {
	FinancialYear string
	Months        []CashFlowMonth
	TotalInflow   decimal.Decimal
	TotalOutflow  decimal.Decimal
	NetFlow       decimal.Decimal
}

// Statement builds the year's cash flow. Every month appears even when
// empty. Results are cached briefly per financial year.
func (uc *CashFlowUseCase) Statement(ctx context.Context, fy FinancialYear) (*CashFlowStatement, error) {
	cacheKey := cashFlowCacheKey + fy.String()
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var stmt CashFlowStatement
			if err := json.Unmarshal([]byte(cached), &stmt); err == nil {
				return &stmt, nil
			}
		}
	}

	from, to := fy.Range()

	flows, err := uc.reports.MonthlyFlows(ctx, from, to, inflowKinds, outflowKinds)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthFlow, len(flows))
	for _, f := range flows {
		byMonth[fmt.Sprintf("%d-%d", f.Year, f.Month)] = f
	}

	stmt := &CashFlowStatement{
		FinancialYear: fy.String(),
		Months:        make([]CashFlowMonth, 0, 12),
	}

	for _, m := range fy.Months() {
		month := CashFlowMonth{
			MonthCode: MonthCode(m),
			Month:     m.Month(),
			Year:      m.Year(),
		}

		if f := byMonth[fmt.Sprintf("%d-%d", m.Year(), m.Month())]; f != nil {
			month.Inflow = f.Inflow
			month.Outflow = f.Outflow
		}

		month.Net = month.Inflow.Sub(month.Outflow)

		stmt.Months = append(stmt.Months, month)
		stmt.TotalInflow = stmt.TotalInflow.Add(month.Inflow)
		stmt.TotalOutflow = stmt.TotalOutflow.Add(month.Outflow)
	}

	stmt.NetFlow = stmt.TotalInflow.Sub(stmt.TotalOutflow)

	if uc.cache != nil {
		if encoded, err := json.Marshal(stmt); err == nil {
			// Cache failures never fail the request.
			_ = uc.cache.Set(ctx, cacheKey, string(encoded), cashFlowCacheTTL)
		}
	}

	return stmt, nil
}

// CashFlowDetail is a single month broken down per ledger.
type CashFlowDetail struct {
	MonthCode string
	Inflows   []NamedAmount
	Outflows  []NamedAmount
	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	Net       decimal.Decimal
}

// MonthDetail drills one month down to its contributing ledgers.
func (uc *CashFlowUseCase) MonthDetail(ctx context.Context, code string) (*CashFlowDetail, error) {
	start, err := ParseMonthCode(code)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 1, -1)

	inflows, err := uc.reports.FlowByLedger(ctx, start, end, inflowKinds, domain.SideDebit)
	if err != nil {
		return nil, err
	}

	outflows, err := uc.reports.FlowByLedger(ctx, start, end, outflowKinds, domain.SideCredit)
	if err != nil {
		return nil, err
	}

	detail := &CashFlowDetail{
		MonthCode: code,
		Inflows:   make([]NamedAmount, 0, len(inflows)),
		Outflows:  make([]NamedAmount, 0, len(outflows)),
	}

	for _, f := range inflows {
		detail.Inflows = append(detail.Inflows, *f)
		detail.Inflow = detail.Inflow.Add(f.Amount)
	}

	for _, f := range outflows {
		detail.Outflows = append(detail.Outflows, *f)
		detail.Outflow = detail.Outflow.Add(f.Amount)
	}

	detail.Net = detail.Inflow.Sub(detail.Outflow)

	return detail, nil
}
