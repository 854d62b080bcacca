package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gstbooks/gstbooks/internal/domain"
)

const (
	ledgerDropdownCacheKey = "registry:ledger-dropdown"
	ledgerDropdownCacheTTL = 5 * time.Minute
)

// RegistryUseCase serves the master-data lookups the posting and report
// surfaces depend on. It is read-only; masters are maintained elsewhere.
type RegistryUseCase struct {
	ledgers LedgerRepository
	items   StockItemRepository
	cache   Cache
}

// NewRegistryUseCase creates a new RegistryUseCase.
func NewRegistryUseCase(ledgers LedgerRepository, items StockItemRepository, cache Cache) *RegistryUseCase {
	return &RegistryUseCase{ledgers: ledgers, items: items, cache: cache}
}

// GetLedger fetches one ledger with its group resolved.
func (uc *RegistryUseCase) GetLedger(ctx context.Context, id string) (*domain.Ledger, error) {
	return uc.ledgers.GetByID(ctx, id)
}

// ListLedgers lists ledgers, optionally filtered by a name search or
// group.
func (uc *RegistryUseCase) ListLedgers(ctx context.Context, filter LedgerFilter) ([]*domain.Ledger, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	ledgers, err := uc.ledgers.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if ledgers == nil {
		ledgers = []*domain.Ledger{}
	}

	return ledgers, nil
}

// LedgerOption is the trimmed shape dropdown consumers need.
type LedgerOption struct {
	ID        string
	Name      string
	GroupName string
	GroupType domain.GroupType
}

// LedgerDropdown lists every ledger in option form. The result is
// cached briefly; ledger masters change rarely and the dropdown is hit
// on every voucher entry screen.
func (uc *RegistryUseCase) LedgerDropdown(ctx context.Context) ([]LedgerOption, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, ledgerDropdownCacheKey); err == nil && cached != "" {
			var options []LedgerOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		}
	}

	ledgers, err := uc.ledgers.List(ctx, LedgerFilter{Limit: MaxPageSize})
	if err != nil {
		return nil, err
	}

	options := make([]LedgerOption, 0, len(ledgers))
	for _, l := range ledgers {
		options = append(options, LedgerOption{
			ID:        l.ID,
			Name:      l.Name,
			GroupName: l.GroupName,
			GroupType: l.GroupType,
		})
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(options); err == nil {
			// Cache failures never fail the request.
			_ = uc.cache.Set(ctx, ledgerDropdownCacheKey, string(encoded), ledgerDropdownCacheTTL)
		}
	}

	return options, nil
}

// ListGroups lists the account-group tree.
func (uc *RegistryUseCase) ListGroups(ctx context.Context) ([]*domain.LedgerGroup, error) {
	groups, err := uc.ledgers.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	if groups == nil {
		groups = []*domain.LedgerGroup{}
	}

	return groups, nil
}

// GetStockItem fetches one stock master.
func (uc *RegistryUseCase) GetStockItem(ctx context.Context, id string) (*domain.StockItem, error) {
	return uc.items.GetByID(ctx, id)
}

// ListStockItems lists stock masters page by page.
func (uc *RegistryUseCase) ListStockItems(ctx context.Context, limit, offset int) ([]*domain.StockItem, error) {
	limit, offset = clampPage(limit, offset)

	items, err := uc.items.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*domain.StockItem{}
	}

	return items, nil
}
