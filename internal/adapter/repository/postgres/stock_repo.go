package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/usecase"
)

// StockRepository implements usecase.StockRepository by aggregating over
// voucher_item_lines. Debit-side lines are inward movement, credit-side
// outward.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// ItemFlows sums each item's inward and outward movement in a window.
// Items with no movement still appear so the summary shows their opening
// stock.
func (r *StockRepository) ItemFlows(ctx context.Context, from, to time.Time, filter usecase.StockQueryFilter) ([]*usecase.ItemFlow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+stockItemColumns+`,
			COALESCE(m.inward_qty, 0), COALESCE(m.outward_qty, 0),
			COALESCE(m.inward_val, 0), COALESCE(m.outward_val, 0)
		FROM stock_items si
		LEFT JOIN (
			SELECT il.item_id,
				COALESCE(SUM(il.quantity) FILTER (WHERE il.side = 'debit'), 0) AS inward_qty,
				COALESCE(SUM(il.quantity) FILTER (WHERE il.side = 'credit'), 0) AS outward_qty,
				COALESCE(SUM(il.amount) FILTER (WHERE il.side = 'debit'), 0) AS inward_val,
				COALESCE(SUM(il.amount) FILTER (WHERE il.side = 'credit'), 0) AS outward_val
			FROM voucher_item_lines il
			JOIN voucher_main vm ON vm.id = il.voucher_id
			WHERE vm.date >= $1 AND vm.date <= $2
			  AND ($5 = '' OR il.godown_id = $5)
			  AND ($6 = '' OR il.batch_number = $6)
			GROUP BY il.item_id
		) m ON m.item_id = si.id
		WHERE ($3 = '' OR si.stock_group_id = $3)
		  AND ($4 = '' OR si.id = $4)
		ORDER BY si.name`,
		timeToPgTimestamptz(from), timeToPgTimestamptz(to),
		filter.StockGroupID, filter.StockItemID, filter.GodownID, filter.BatchNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flows []*usecase.ItemFlow
	for rows.Next() {
		var f usecase.ItemFlow
		var openingQty, openingValue, gstRate, purchaseRate, saleRate pgtype.Numeric
		var expiry, mfg pgtype.Timestamptz
		var inQty, outQty, inVal, outVal pgtype.Numeric

		err := rows.Scan(
			&f.Item.ID, &f.Item.Name, &f.Item.StockGroupID, &f.Item.Unit,
			&openingQty, &openingValue, &f.Item.HSNCode, &gstRate,
			&purchaseRate, &saleRate, &f.Item.BatchTracking,
			&f.Item.BatchNumber, &expiry, &mfg,
			&inQty, &outQty, &inVal, &outVal,
		)
		if err != nil {
			return nil, err
		}

		f.Item.OpeningQty = numericToDecimal(openingQty)
		f.Item.OpeningValue = numericToDecimal(openingValue)
		f.Item.GSTRate = numericToDecimal(gstRate)
		f.Item.StandardPurchaseRate = numericToDecimal(purchaseRate)
		f.Item.StandardSaleRate = numericToDecimal(saleRate)
		f.Item.BatchExpiryDate = pgTimestamptzToTimePtr(expiry)
		f.Item.BatchMfgDate = pgTimestamptzToTimePtr(mfg)
		f.InwardQty = numericToDecimal(inQty)
		f.OutwardQty = numericToDecimal(outQty)
		f.InwardVal = numericToDecimal(inVal)
		f.OutwardVal = numericToDecimal(outVal)

		flows = append(flows, &f)
	}

	return flows, rows.Err()
}

// Movements lists one item's lines joined to their voucher headers, in
// posting order.
func (r *StockRepository) Movements(ctx context.Context, from, to time.Time, itemID string) ([]*usecase.StockMovement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT vm.date, vm.kind, vm.number, il.item_id, si.name,
			il.quantity, il.rate, il.amount, il.side, il.godown_id
		FROM voucher_item_lines il
		JOIN voucher_main vm ON vm.id = il.voucher_id
		JOIN stock_items si ON si.id = il.item_id
		WHERE il.item_id = $1 AND vm.date >= $2 AND vm.date <= $3
		ORDER BY vm.date, vm.id, il.id`,
		itemID, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*usecase.StockMovement
	for rows.Next() {
		var m usecase.StockMovement
		var date pgtype.Timestamptz
		var quantity, rate, amount pgtype.Numeric
		var godownID pgtype.Text

		err := rows.Scan(&date, &m.Kind, &m.VoucherNumber, &m.ItemID, &m.ItemName, &quantity, &rate, &amount, &m.Side, &godownID)
		if err != nil {
			return nil, err
		}

		m.Date = date.Time
		m.Quantity = numericToDecimal(quantity)
		m.Rate = numericToDecimal(rate)
		m.Amount = numericToDecimal(amount)
		m.GodownID = textToStrPtr(godownID)

		movements = append(movements, &m)
	}

	return movements, rows.Err()
}

// ItemActivity returns each item with its latest movement date up to a
// cutoff; items that never moved come back with a null date.
func (r *StockRepository) ItemActivity(ctx context.Context, toDate time.Time, filter usecase.StockQueryFilter) ([]*usecase.ItemActivity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+stockItemColumns+`, m.last_date
		FROM stock_items si
		LEFT JOIN (
			SELECT il.item_id, MAX(vm.date) AS last_date
			FROM voucher_item_lines il
			JOIN voucher_main vm ON vm.id = il.voucher_id
			WHERE vm.date <= $1
			GROUP BY il.item_id
		) m ON m.item_id = si.id
		WHERE ($2 = '' OR si.stock_group_id = $2)
		  AND ($3 = '' OR si.id = $3)
		ORDER BY si.name`,
		timeToPgTimestamptz(toDate), filter.StockGroupID, filter.StockItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activity []*usecase.ItemActivity
	for rows.Next() {
		var a usecase.ItemActivity
		var openingQty, openingValue, gstRate, purchaseRate, saleRate pgtype.Numeric
		var expiry, mfg, lastDate pgtype.Timestamptz

		err := rows.Scan(
			&a.Item.ID, &a.Item.Name, &a.Item.StockGroupID, &a.Item.Unit,
			&openingQty, &openingValue, &a.Item.HSNCode, &gstRate,
			&purchaseRate, &saleRate, &a.Item.BatchTracking,
			&a.Item.BatchNumber, &expiry, &mfg, &lastDate,
		)
		if err != nil {
			return nil, err
		}

		a.Item.OpeningQty = numericToDecimal(openingQty)
		a.Item.OpeningValue = numericToDecimal(openingValue)
		a.Item.GSTRate = numericToDecimal(gstRate)
		a.Item.StandardPurchaseRate = numericToDecimal(purchaseRate)
		a.Item.StandardSaleRate = numericToDecimal(saleRate)
		a.Item.BatchExpiryDate = pgTimestamptzToTimePtr(expiry)
		a.Item.BatchMfgDate = pgTimestamptzToTimePtr(mfg)
		a.LastDate = pgTimestamptzToTimePtr(lastDate)

		activity = append(activity, &a)
	}

	return activity, rows.Err()
}

// GodownSummary nets each (godown, item) pair's movement into a closing
// quantity, valued at the item's standard purchase rate.
func (r *StockRepository) GodownSummary(ctx context.Context, godownID string) ([]*usecase.GodownStockRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.name, si.id, si.name, si.unit,
			COALESCE(SUM(CASE WHEN il.side = 'debit' THEN il.quantity ELSE -il.quantity END), 0) AS qty,
			si.standard_purchase_rate
		FROM voucher_item_lines il
		JOIN godowns g ON g.id = il.godown_id
		JOIN stock_items si ON si.id = il.item_id
		WHERE ($1 = '' OR g.id = $1)
		GROUP BY g.id, g.name, si.id, si.name, si.unit, si.standard_purchase_rate
		HAVING COALESCE(SUM(CASE WHEN il.side = 'debit' THEN il.quantity ELSE -il.quantity END), 0) <> 0
		ORDER BY g.name, si.name`,
		godownID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*usecase.GodownStockRow
	for rows.Next() {
		var row usecase.GodownStockRow
		var qty, rate pgtype.Numeric

		err := rows.Scan(&row.GodownID, &row.GodownName, &row.ItemID, &row.ItemName, &row.Unit, &qty, &rate)
		if err != nil {
			return nil, err
		}

		row.Quantity = numericToDecimal(qty)
		row.Rate = numericToDecimal(rate)
		row.Value = row.Quantity.Mul(row.Rate)

		result = append(result, &row)
	}

	return result, rows.Err()
}
