package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

const ledgerColumns = `l.id, l.name, l.group_id, g.name, g.type,
	l.opening_balance, l.balance_type, l.address, l.phone, l.email,
	l.gst_number, l.pan_number, l.created_at`

// LedgerRepository implements usecase.LedgerRepository. Masters are read
// with their group joined in; the group name and type drive report
// placement.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// GetByID retrieves a ledger by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.Ledger, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledgers l
		JOIN ledger_groups g ON g.id = l.group_id
		WHERE l.id = $1`, id)

	ledger, err := scanLedger(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}

		return nil, err
	}

	return ledger, nil
}

// GetByIDs retrieves ledgers by IDs. Missing IDs are simply absent from
// the result; callers compare lengths when they need all of them.
func (r *LedgerRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Ledger, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledgers l
		JOIN ledger_groups g ON g.id = l.group_id
		WHERE l.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgers(rows)
}

// List lists ledgers filtered by name search and group.
func (r *LedgerRepository) List(ctx context.Context, filter usecase.LedgerFilter) ([]*domain.Ledger, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledgers l
		JOIN ledger_groups g ON g.id = l.group_id
		WHERE ($1 = '' OR l.name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR g.name = $2)
		ORDER BY l.name
		LIMIT $3 OFFSET $4`,
		filter.Search, filter.GroupName, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgers(rows)
}

// ListGroups lists the account groups.
func (r *LedgerRepository) ListGroups(ctx context.Context) ([]*domain.LedgerGroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, parent_id, type
		FROM ledger_groups
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.LedgerGroup
	for rows.Next() {
		var g domain.LedgerGroup
		var parentID pgtype.Text

		if err := rows.Scan(&g.ID, &g.Name, &parentID, &g.Type); err != nil {
			return nil, err
		}

		g.ParentID = textToStrPtr(parentID)
		groups = append(groups, &g)
	}

	return groups, rows.Err()
}

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var l domain.Ledger
	var opening pgtype.Numeric
	var createdAt pgtype.Timestamptz

	err := row.Scan(
		&l.ID, &l.Name, &l.GroupID, &l.GroupName, &l.GroupType,
		&opening, &l.BalanceType, &l.Address, &l.Phone, &l.Email,
		&l.GSTNumber, &l.PANNumber, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	l.OpeningBalance = numericToDecimal(opening)
	l.CreatedAt = createdAt.Time

	return &l, nil
}

func scanLedgers(rows pgx.Rows) ([]*domain.Ledger, error) {
	var ledgers []*domain.Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}

		ledgers = append(ledgers, ledger)
	}

	return ledgers, rows.Err()
}
