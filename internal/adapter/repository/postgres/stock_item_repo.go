package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/domain"
)

const stockItemColumns = `id, name, stock_group_id, unit, opening_qty,
	opening_value, hsn_code, gst_rate, standard_purchase_rate,
	standard_sale_rate, batch_tracking, batch_number, batch_expiry_date,
	batch_mfg_date`

// StockItemRepository implements usecase.StockItemRepository.
type StockItemRepository struct {
	pool *pgxpool.Pool
}

// NewStockItemRepository creates a new StockItemRepository.
func NewStockItemRepository(pool *pgxpool.Pool) *StockItemRepository {
	return &StockItemRepository{pool: pool}
}

// GetByID retrieves a stock item by ID.
func (r *StockItemRepository) GetByID(ctx context.Context, id string) (*domain.StockItem, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+stockItemColumns+`
		FROM stock_items
		WHERE id = $1`, id)

	item, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStockItemNotFound
		}

		return nil, err
	}

	return item, nil
}

// GetByIDs retrieves stock items by IDs.
func (r *StockItemRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.StockItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+stockItemColumns+`
		FROM stock_items
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStockItems(rows)
}

// List lists stock items.
func (r *StockItemRepository) List(ctx context.Context, limit, offset int) ([]*domain.StockItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+stockItemColumns+`
		FROM stock_items
		ORDER BY name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStockItems(rows)
}

func scanStockItem(row pgx.Row) (*domain.StockItem, error) {
	var i domain.StockItem
	var openingQty, openingValue, gstRate, purchaseRate, saleRate pgtype.Numeric
	var expiry, mfg pgtype.Timestamptz

	err := row.Scan(
		&i.ID, &i.Name, &i.StockGroupID, &i.Unit, &openingQty,
		&openingValue, &i.HSNCode, &gstRate, &purchaseRate,
		&saleRate, &i.BatchTracking, &i.BatchNumber, &expiry, &mfg,
	)
	if err != nil {
		return nil, err
	}

	i.OpeningQty = numericToDecimal(openingQty)
	i.OpeningValue = numericToDecimal(openingValue)
	i.GSTRate = numericToDecimal(gstRate)
	i.StandardPurchaseRate = numericToDecimal(purchaseRate)
	i.StandardSaleRate = numericToDecimal(saleRate)
	i.BatchExpiryDate = pgTimestamptzToTimePtr(expiry)
	i.BatchMfgDate = pgTimestamptzToTimePtr(mfg)

	return &i, nil
}

func scanStockItems(rows pgx.Rows) ([]*domain.StockItem, error) {
	var items []*domain.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
