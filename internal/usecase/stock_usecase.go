package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// StockUseCase derives stock positions from item-line movements. No
// running quantity is stored; every report replays opening plus inward
// minus outward.
type StockUseCase struct {
	stock StockRepository
}

// NewStockUseCase creates a new StockUseCase.
func NewStockUseCase(stock StockRepository) *StockUseCase {
	return &StockUseCase{stock: stock}
}

// StockSummaryInput selects the period, valuation basis, and filters.
type StockSummaryInput struct {
	FromDate time.Time
	ToDate   time.Time
	Basis    domain.ValuationBasis
	Filter   StockQueryFilter
}

// StockSummaryRow is one item's derived position for the period.
type StockSummaryRow struct {
	ItemID       string
	ItemName     string
	Unit         string
	HSNCode      string
	OpeningQty   decimal.Decimal
	InwardQty    decimal.Decimal
	OutwardQty   decimal.Decimal
	ClosingQty   decimal.Decimal
	ClosingRate  decimal.Decimal
	ClosingValue decimal.Decimal
}

// StockSummary is the item-wise stock report with totals.
type StockSummary struct {
	Basis        domain.ValuationBasis
	Rows         []StockSummaryRow
	TotalClosing decimal.Decimal
	TotalValue   decimal.Decimal
}

// Summary builds the item-wise closing stock report. Closing quantity is
// opening plus inward minus outward; valuation follows the basis.
func (uc *StockUseCase) Summary(ctx context.Context, input StockSummaryInput) (*StockSummary, error) {
	if input.ToDate.Before(input.FromDate) {
		return nil, domain.ErrInvalidDateRange
	}

	flows, err := uc.stock.ItemFlows(ctx, input.FromDate, input.ToDate, input.Filter)
	if err != nil {
		return nil, err
	}

	summary := &StockSummary{
		Basis: input.Basis,
		Rows:  make([]StockSummaryRow, 0, len(flows)),
	}

	for _, f := range flows {
		closing := f.Item.OpeningQty.Add(f.InwardQty).Sub(f.OutwardQty)
		rate := f.Item.ClosingRate(input.Basis)
		value := closing.Mul(rate)

		summary.Rows = append(summary.Rows, StockSummaryRow{
			ItemID:       f.Item.ID,
			ItemName:     f.Item.Name,
			Unit:         f.Item.Unit,
			HSNCode:      f.Item.HSNCode,
			OpeningQty:   f.Item.OpeningQty,
			InwardQty:    f.InwardQty,
			OutwardQty:   f.OutwardQty,
			ClosingQty:   closing,
			ClosingRate:  rate,
			ClosingValue: value,
		})

		summary.TotalClosing = summary.TotalClosing.Add(closing)
		summary.TotalValue = summary.TotalValue.Add(value)
	}

	sort.Slice(summary.Rows, func(i, j int) bool {
		return summary.Rows[i].ItemName < summary.Rows[j].ItemName
	})

	return summary, nil
}

// MovementRow is one item movement with a running closing quantity.
type MovementRow struct {
	Date          time.Time
	VoucherType   string
	VoucherNumber string
	InwardQty     decimal.Decimal
	OutwardQty    decimal.Decimal
	Rate          decimal.Decimal
	Amount        decimal.Decimal
	RunningQty    decimal.Decimal
}

// ItemMovements is the movement register for one item.
type ItemMovements struct {
	ItemID     string
	OpeningQty decimal.Decimal
	Rows       []MovementRow
	ClosingQty decimal.Decimal
}

// Movements lists one item's movements with a running balance.
func (uc *StockUseCase) Movements(ctx context.Context, itemID string, from, to time.Time) (*ItemMovements, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}

	movements, err := uc.stock.Movements(ctx, from, to, itemID)
	if err != nil {
		return nil, err
	}

	result := &ItemMovements{
		ItemID: itemID,
		Rows:   make([]MovementRow, 0, len(movements)),
	}

	running := decimal.Zero
	for _, m := range movements {
		row := MovementRow{
			Date:          m.Date,
			VoucherType:   string(m.Kind),
			VoucherNumber: m.VoucherNumber,
			Rate:          m.Rate,
			Amount:        m.Amount,
		}

		// Debit-side item lines bring stock in, credit-side lines
		// take it out.
		if m.Side == domain.SideDebit {
			row.InwardQty = m.Quantity
			running = running.Add(m.Quantity)
		} else {
			row.OutwardQty = m.Quantity
			running = running.Sub(m.Quantity)
		}

		row.RunningQty = running
		result.Rows = append(result.Rows, row)
	}

	result.ClosingQty = running

	return result, nil
}

// StockAgeRow is one item with its idle age and band.
type StockAgeRow struct {
	ItemID      string
	ItemName    string
	Unit        string
	LastMovedAt *time.Time
	AgeDays     int
	Bucket      string
}

// StockAgeing is the idle-stock report. Items that never moved are aged
// from the start of the books and land in the oldest band.
type StockAgeing struct {
	AsOf    time.Time
	Rows    []StockAgeRow
	Buckets map[string]int
}

// Ageing classifies items by days since their last movement.
func (uc *StockUseCase) Ageing(ctx context.Context, asOf time.Time, filter StockQueryFilter) (*StockAgeing, error) {
	activity, err := uc.stock.ItemActivity(ctx, asOf, filter)
	if err != nil {
		return nil, err
	}

	result := &StockAgeing{
		AsOf:    asOf,
		Rows:    make([]StockAgeRow, 0, len(activity)),
		Buckets: make(map[string]int, len(domain.StockAgeBuckets)),
	}

	for _, b := range domain.StockAgeBuckets {
		result.Buckets[b.Label] = 0
	}

	for _, a := range activity {
		var age int
		if a.LastDate != nil {
			age = int(asOf.Sub(*a.LastDate).Hours() / 24)
			if age < 0 {
				age = 0
			}
		} else {
			age = domain.StockAgeBuckets[len(domain.StockAgeBuckets)-1].From
		}

		bucket := domain.StockAgeBuckets[domain.StockAgeBucketIndex(age)].Label

		result.Rows = append(result.Rows, StockAgeRow{
			ItemID:      a.Item.ID,
			ItemName:    a.Item.Name,
			Unit:        a.Item.Unit,
			LastMovedAt: a.LastDate,
			AgeDays:     age,
			Bucket:      bucket,
		})

		result.Buckets[bucket]++
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		return result.Rows[i].AgeDays > result.Rows[j].AgeDays
	})

	return result, nil
}

// GodownStock is the per-location stock position.
type GodownStock struct {
	GodownID   string
	GodownName string
	Rows       []GodownStockRow
	TotalQty   decimal.Decimal
	TotalValue decimal.Decimal
}

// GodownSummary lists stock allocated to one godown, or all godowns when
// godownID is empty.
func (uc *StockUseCase) GodownSummary(ctx context.Context, godownID string) ([]*GodownStock, error) {
	rows, err := uc.stock.GodownSummary(ctx, godownID)
	if err != nil {
		return nil, err
	}

	byGodown := make(map[string]*GodownStock)
	order := []string{}
	for _, r := range rows {
		g := byGodown[r.GodownID]
		if g == nil {
			g = &GodownStock{GodownID: r.GodownID, GodownName: r.GodownName}
			byGodown[r.GodownID] = g
			order = append(order, r.GodownID)
		}

		g.Rows = append(g.Rows, *r)
		g.TotalQty = g.TotalQty.Add(r.Quantity)
		g.TotalValue = g.TotalValue.Add(r.Value)
	}

	result := make([]*GodownStock, 0, len(order))
	for _, id := range order {
		result = append(result, byGodown[id])
	}

	return result, nil
}
