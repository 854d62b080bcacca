package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
	"github.com/gstbooks/gstbooks/internal/usecase/mocks"
)

func TestRegistryUseCase_LedgerDropdown_Caches(t *testing.T) {
	ledgers := mocks.NewMockLedgerRepository()
	ledgers.Add(&domain.Ledger{ID: "led-1", Name: "Cash", GroupName: "Cash-in-Hand", GroupType: domain.GroupTypeCash})

	cache := mocks.NewMockCache()

	var listCalls int
	ledgers.ListFunc = func(ctx context.Context, filter usecase.LedgerFilter) ([]*domain.Ledger, error) {
		listCalls++
		return []*domain.Ledger{
			{ID: "led-1", Name: "Cash", GroupName: "Cash-in-Hand", GroupType: domain.GroupTypeCash},
		}, nil
	}

	uc := usecase.NewRegistryUseCase(ledgers, mocks.NewMockStockItemRepository(), cache)

	first, err := uc.LedgerDropdown(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.LedgerDropdown(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if listCalls != 1 {
		t.Errorf("expected one repository hit, got %d", listCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "led-1" {
		t.Errorf("unexpected dropdown contents: %+v", second)
	}
}

func TestRegistryUseCase_LedgerDropdown_SurvivesCacheFailure(t *testing.T) {
	ledgers := mocks.NewMockLedgerRepository()
	ledgers.Add(&domain.Ledger{ID: "led-1", Name: "Cash"})

	cache := mocks.NewMockCache()
	cacheErr := errors.New("redis down")
	cache.GetFunc = func(ctx context.Context, key string) (string, error) { return "", cacheErr }
	cache.SetFunc = func(ctx context.Context, key, value string, ttl time.Duration) error {
		return cacheErr
	}

	uc := usecase.NewRegistryUseCase(ledgers, mocks.NewMockStockItemRepository(), cache)

	options, err := uc.LedgerDropdown(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(options) != 1 {
		t.Errorf("expected 1 option, got %d", len(options))
	}
}

func TestRegistryUseCase_ListLedgers_NeverNil(t *testing.T) {
	ledgers := mocks.NewMockLedgerRepository()
	ledgers.ListFunc = func(ctx context.Context, filter usecase.LedgerFilter) ([]*domain.Ledger, error) {
		return nil, nil
	}

	uc := usecase.NewRegistryUseCase(ledgers, mocks.NewMockStockItemRepository(), mocks.NewMockCache())

	result, err := uc.ListLedgers(context.Background(), usecase.LedgerFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestRegistryUseCase_GetLedger_NotFound(t *testing.T) {
	uc := usecase.NewRegistryUseCase(mocks.NewMockLedgerRepository(), mocks.NewMockStockItemRepository(), mocks.NewMockCache())

	_, err := uc.GetLedger(context.Background(), "led-missing")
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Errorf("expected ErrLedgerNotFound, got %v", err)
	}
}
