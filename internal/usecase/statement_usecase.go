package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

const (
	trialBalanceCacheKey = "reports:trial-balance:"
	trialBalanceCacheTTL = time.Minute
)

// TrialBalanceBasis selects how trial balance figures are computed.
type TrialBalanceBasis string

const (
	// BasisOpening reads only the static opening balances.
	BasisOpening TrialBalanceBasis = "opening"
	// BasisTransactions folds posted movements into the opening
	// balances.
	BasisTransactions TrialBalanceBasis = "transactions"
)

// ParseTrialBalanceBasis parses a basis string; empty defaults to
// opening.
func ParseTrialBalanceBasis(s string) (TrialBalanceBasis, error) {
	switch s {
	case "", string(BasisOpening):
		return BasisOpening, nil
	case string(BasisTransactions):
		return BasisTransactions, nil
	default:
		return "", domain.ErrInvalidBasis
	}
}

// StatementUseCase assembles trial balance, profit & loss, and balance
// sheet views from the ledger masters and posted totals.
type StatementUseCase struct {
	reports ReportRepository
	cache   Cache
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(reports ReportRepository, cache Cache) *StatementUseCase {
	return &StatementUseCase{reports: reports, cache: cache}
}

// TrialBalanceRow is one ledger placed on its balance side.
type TrialBalanceRow struct {
	LedgerID   string
	LedgerName string
	GroupName  string
	GroupType  domain.GroupType
	Debit      decimal.Decimal
	Credit     decimal.Decimal
}

// TrialBalance is the full trial balance with column totals. Balanced
// reports true when the two columns agree.
type TrialBalance struct {
	Basis       TrialBalanceBasis
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
}

// TrialBalance builds the trial balance on the requested basis. Ledgers
// with a zero figure on both sides are dropped. Results are cached
// briefly per basis; the report walks every ledger and is hit by
// dashboards far more often than the books change.
func (uc *StatementUseCase) TrialBalance(ctx context.Context, basis TrialBalanceBasis) (*TrialBalance, error) {
	cacheKey := trialBalanceCacheKey + string(basis)
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var tb TrialBalance
			if err := json.Unmarshal([]byte(cached), &tb); err == nil {
				return &tb, nil
			}
		}
	}

	ledgers, err := uc.reports.LedgersWithGroups(ctx)
	if err != nil {
		return nil, err
	}

	var posted map[string]DebitCredit
	if basis == BasisTransactions {
		posted, err = uc.reports.LedgerPostedTotals(ctx)
		if err != nil {
			return nil, err
		}
	}

	tb := &TrialBalance{
		Basis: basis,
		Rows:  make([]TrialBalanceRow, 0, len(ledgers)),
	}

	for _, l := range ledgers {
		var debit, credit decimal.Decimal

		switch basis {
		case BasisTransactions:
			totals := posted[l.ID]
			balance := l.BalanceWithMovements(totals.Debit, totals.Credit)

			// The balance sits on the ledger's normal side; a
			// negative balance flips to the other side.
			onNormal := balance
			flipped := balance.IsNegative()
			if flipped {
				onNormal = balance.Abs()
			}

			if (l.BalanceType == domain.BalanceTypeCredit) != flipped {
				credit = onNormal
			} else {
				debit = onNormal
			}
		default:
			debit, credit = l.OpeningDebitCredit()
		}

		if debit.IsZero() && credit.IsZero() {
			continue
		}

		tb.Rows = append(tb.Rows, TrialBalanceRow{
			LedgerID:   l.ID,
			LedgerName: l.Name,
			GroupName:  l.GroupName,
			GroupType:  l.GroupType,
			Debit:      debit,
			Credit:     credit,
		})

		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}

	tb.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)

	if uc.cache != nil {
		if encoded, err := json.Marshal(tb); err == nil {
			// Cache failures never fail the request.
			_ = uc.cache.Set(ctx, cacheKey, string(encoded), trialBalanceCacheTTL)
		}
	}

	return tb, nil
}

// StatementLine is one ledger's contribution to a statement section.
type StatementLine struct {
	LedgerID   string
	LedgerName string
	GroupName  string
	Amount     decimal.Decimal
}

// ProfitAndLoss is the income statement. NetProfit is income minus
// expenses; negative means a loss.
type ProfitAndLoss struct {
	Income       []StatementLine
	Expenses     []StatementLine
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetProfit    decimal.Decimal
}

// ProfitAndLoss folds posted movements into income and expense ledgers
// and nets them.
func (uc *StatementUseCase) ProfitAndLoss(ctx context.Context) (*ProfitAndLoss, error) {
	ledgers, err := uc.reports.LedgersWithGroups(ctx)
	if err != nil {
		return nil, err
	}

	posted, err := uc.reports.LedgerPostedTotals(ctx)
	if err != nil {
		return nil, err
	}

	pl := &ProfitAndLoss{
		Income:   []StatementLine{},
		Expenses: []StatementLine{},
	}

	for _, l := range ledgers {
		totals := posted[l.ID]
		balance := l.BalanceWithMovements(totals.Debit, totals.Credit)

		line := StatementLine{
			LedgerID:   l.ID,
			LedgerName: l.Name,
			GroupName:  l.GroupName,
			Amount:     balance,
		}

		switch l.GroupType {
		case domain.GroupTypeIncome:
			pl.Income = append(pl.Income, line)
			pl.TotalIncome = pl.TotalIncome.Add(balance)
		case domain.GroupTypeExpense:
			pl.Expenses = append(pl.Expenses, line)
			pl.TotalExpense = pl.TotalExpense.Add(balance)
		}
	}

	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpense)

	return pl, nil
}

// BalanceSheet is the position statement. Cash and bank groups are
// folded into assets; net profit for the period lands on the liability
// side so the two sides agree whenever the books balance.
type BalanceSheet struct {
	Assets           []StatementLine
	Liabilities      []StatementLine
	Capital          []StatementLine
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalCapital     decimal.Decimal
	NetProfit        decimal.Decimal
}

// BalanceSheet folds posted movements into the position ledgers.
func (uc *StatementUseCase) BalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	ledgers, err := uc.reports.LedgersWithGroups(ctx)
	if err != nil {
		return nil, err
	}

	posted, err := uc.reports.LedgerPostedTotals(ctx)
	if err != nil {
		return nil, err
	}

	bs := &BalanceSheet{
		Assets:      []StatementLine{},
		Liabilities: []StatementLine{},
		Capital:     []StatementLine{},
	}

	for _, l := range ledgers {
		totals := posted[l.ID]
		balance := l.BalanceWithMovements(totals.Debit, totals.Credit)

		line := StatementLine{
			LedgerID:   l.ID,
			LedgerName: l.Name,
			GroupName:  l.GroupName,
			Amount:     balance,
		}

		switch l.GroupType {
		case domain.GroupTypeAsset, domain.GroupTypeCash, domain.GroupTypeBank:
			bs.Assets = append(bs.Assets, line)
			bs.TotalAssets = bs.TotalAssets.Add(balance)
		case domain.GroupTypeLiability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(balance)
		case domain.GroupTypeCapital:
			bs.Capital = append(bs.Capital, line)
			bs.TotalCapital = bs.TotalCapital.Add(balance)
		case domain.GroupTypeIncome:
			bs.NetProfit = bs.NetProfit.Add(balance)
		case domain.GroupTypeExpense:
			bs.NetProfit = bs.NetProfit.Sub(balance)
		}
	}

	return bs, nil
}
