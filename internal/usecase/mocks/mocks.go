package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]*domain.Ledger
	groups  []*domain.LedgerGroup

	GetByIDFunc    func(ctx context.Context, id string) (*domain.Ledger, error)
	GetByIDsFunc   func(ctx context.Context, ids []string) ([]*domain.Ledger, error)
	ListFunc       func(ctx context.Context, filter usecase.LedgerFilter) ([]*domain.Ledger, error)
	ListGroupsFunc func(ctx context.Context) ([]*domain.LedgerGroup, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		ledgers: make(map[string]*domain.Ledger),
	}
}

func (m *MockLedgerRepository) Add(ledger *domain.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[ledger.ID] = ledger
}

func (m *MockLedgerRepository) AddGroup(group *domain.LedgerGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = append(m.groups, group)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id string) (*domain.Ledger, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.ledgers[id]; ok {
		return l, nil
	}
	return nil, domain.ErrLedgerNotFound
}

func (m *MockLedgerRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Ledger, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Ledger, 0, len(ids))
	for _, id := range ids {
		if l, ok := m.ledgers[id]; ok {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *MockLedgerRepository) List(ctx context.Context, filter usecase.LedgerFilter) ([]*domain.Ledger, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Ledger, 0, len(m.ledgers))
	for _, l := range m.ledgers {
		result = append(result, l)
	}
	return result, nil
}

func (m *MockLedgerRepository) ListGroups(ctx context.Context) ([]*domain.LedgerGroup, error) {
	if m.ListGroupsFunc != nil {
		return m.ListGroupsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.groups, nil
}

// MockStockItemRepository is a mock implementation of StockItemRepository.
type MockStockItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.StockItem

	GetByIDFunc  func(ctx context.Context, id string) (*domain.StockItem, error)
	GetByIDsFunc func(ctx context.Context, ids []string) ([]*domain.StockItem, error)
	ListFunc     func(ctx context.Context, limit, offset int) ([]*domain.StockItem, error)
}

func NewMockStockItemRepository() *MockStockItemRepository {
	return &MockStockItemRepository{
		items: make(map[string]*domain.StockItem),
	}
}

func (m *MockStockItemRepository) Add(item *domain.StockItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
}

func (m *MockStockItemRepository) GetByID(ctx context.Context, id string) (*domain.StockItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.items[id]; ok {
		return i, nil
	}
	return nil, domain.ErrStockItemNotFound
}

func (m *MockStockItemRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.StockItem, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.StockItem, 0, len(ids))
	for _, id := range ids {
		if i, ok := m.items[id]; ok {
			result = append(result, i)
		}
	}
	return result, nil
}

func (m *MockStockItemRepository) List(ctx context.Context, limit, offset int) ([]*domain.StockItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.StockItem, 0, len(m.items))
	for _, i := range m.items {
		result = append(result, i)
	}
	return result, nil
}

// MockVoucherRepository is a mock implementation of VoucherRepository.
type MockVoucherRepository struct {
	mu       sync.RWMutex
	vouchers map[string]*domain.Voucher

	CreateHeaderFunc      func(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error
	CreateLedgerLinesFunc func(ctx context.Context, tx usecase.Transaction, lines []domain.LedgerLine) error
	CreateItemLinesFunc   func(ctx context.Context, tx usecase.Transaction, lines []domain.ItemLine) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Voucher, error)
	ListFunc              func(ctx context.Context, filter usecase.VoucherFilter) ([]*domain.Voucher, error)
	DaybookFunc           func(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error)
}

func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{
		vouchers: make(map[string]*domain.Voucher),
	}
}

func (m *MockVoucherRepository) CreateHeader(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	if m.CreateHeaderFunc != nil {
		return m.CreateHeaderFunc(ctx, tx, voucher)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.ID] = voucher
	return nil
}

func (m *MockVoucherRepository) CreateLedgerLines(ctx context.Context, tx usecase.Transaction, lines []domain.LedgerLine) error {
	if m.CreateLedgerLinesFunc != nil {
		return m.CreateLedgerLinesFunc(ctx, tx, lines)
	}
	return nil
}

func (m *MockVoucherRepository) CreateItemLines(ctx context.Context, tx usecase.Transaction, lines []domain.ItemLine) error {
	if m.CreateItemLinesFunc != nil {
		return m.CreateItemLinesFunc(ctx, tx, lines)
	}
	return nil
}

func (m *MockVoucherRepository) GetByID(ctx context.Context, id string) (*domain.Voucher, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vouchers[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVoucherNotFound
}

func (m *MockVoucherRepository) List(ctx context.Context, filter usecase.VoucherFilter) ([]*domain.Voucher, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Voucher, 0, len(m.vouchers))
	for _, v := range m.vouchers {
		result = append(result, v)
	}
	return result, nil
}

func (m *MockVoucherRepository) Daybook(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error) {
	if m.DaybookFunc != nil {
		return m.DaybookFunc(ctx, date)
	}
	return nil, nil
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	LedgerTotalsBeforeFunc func(ctx context.Context, ledgerID string, before time.Time) (usecase.DebitCredit, error)
	LedgerMovementsFunc    func(ctx context.Context, ledgerID string, from, to time.Time) ([]*usecase.LedgerMovement, error)
	LedgersWithGroupsFunc  func(ctx context.Context) ([]*domain.Ledger, error)
	LedgerPostedTotalsFunc func(ctx context.Context) (map[string]usecase.DebitCredit, error)
	MonthlyFlowsFunc       func(ctx context.Context, from, to time.Time, inflow, outflow []domain.VoucherKind) ([]*usecase.MonthFlow, error)
	FlowByLedgerFunc       func(ctx context.Context, from, to time.Time, kinds []domain.VoucherKind, side domain.EntrySide) ([]*usecase.NamedAmount, error)
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func (m *MockReportRepository) LedgerTotalsBefore(ctx context.Context, ledgerID string, before time.Time) (usecase.DebitCredit, error) {
	if m.LedgerTotalsBeforeFunc != nil {
		return m.LedgerTotalsBeforeFunc(ctx, ledgerID, before)
	}
	return usecase.DebitCredit{}, nil
}

func (m *MockReportRepository) LedgerMovements(ctx context.Context, ledgerID string, from, to time.Time) ([]*usecase.LedgerMovement, error) {
	if m.LedgerMovementsFunc != nil {
		return m.LedgerMovementsFunc(ctx, ledgerID, from, to)
	}
	return nil, nil
}

func (m *MockReportRepository) LedgersWithGroups(ctx context.Context) ([]*domain.Ledger, error) {
	if m.LedgersWithGroupsFunc != nil {
		return m.LedgersWithGroupsFunc(ctx)
	}
	return nil, nil
}

func (m *MockReportRepository) LedgerPostedTotals(ctx context.Context) (map[string]usecase.DebitCredit, error) {
	if m.LedgerPostedTotalsFunc != nil {
		return m.LedgerPostedTotalsFunc(ctx)
	}
	return map[string]usecase.DebitCredit{}, nil
}

func (m *MockReportRepository) MonthlyFlows(ctx context.Context, from, to time.Time, inflow, outflow []domain.VoucherKind) ([]*usecase.MonthFlow, error) {
	if m.MonthlyFlowsFunc != nil {
		return m.MonthlyFlowsFunc(ctx, from, to, inflow, outflow)
	}
	return nil, nil
}

func (m *MockReportRepository) FlowByLedger(ctx context.Context, from, to time.Time, kinds []domain.VoucherKind, side domain.EntrySide) ([]*usecase.NamedAmount, error) {
	if m.FlowByLedgerFunc != nil {
		return m.FlowByLedgerFunc(ctx, from, to, kinds, side)
	}
	return nil, nil
}

// MockOutstandingRepository is a mock implementation of OutstandingRepository.
type MockOutstandingRepository struct {
	PartyBillsFunc       func(ctx context.Context, role usecase.PartyRole, partyIDs []string) ([]*usecase.PartyBill, error)
	PartySettlementsFunc func(ctx context.Context, role usecase.PartyRole, partyIDs []string) (map[string]*usecase.PartySettlement, error)
}

func NewMockOutstandingRepository() *MockOutstandingRepository {
	return &MockOutstandingRepository{}
}

func (m *MockOutstandingRepository) PartyBills(ctx context.Context, role usecase.PartyRole, partyIDs []string) ([]*usecase.PartyBill, error) {
	if m.PartyBillsFunc != nil {
		return m.PartyBillsFunc(ctx, role, partyIDs)
	}
	return nil, nil
}

func (m *MockOutstandingRepository) PartySettlements(ctx context.Context, role usecase.PartyRole, partyIDs []string) (map[string]*usecase.PartySettlement, error) {
	if m.PartySettlementsFunc != nil {
		return m.PartySettlementsFunc(ctx, role, partyIDs)
	}
	return map[string]*usecase.PartySettlement{}, nil
}

// MockStockRepository is a mock implementation of StockRepository.
type MockStockRepository struct {
	ItemFlowsFunc     func(ctx context.Context, from, to time.Time, filter usecase.StockQueryFilter) ([]*usecase.ItemFlow, error)
	MovementsFunc     func(ctx context.Context, from, to time.Time, itemID string) ([]*usecase.StockMovement, error)
	ItemActivityFunc  func(ctx context.Context, toDate time.Time, filter usecase.StockQueryFilter) ([]*usecase.ItemActivity, error)
	GodownSummaryFunc func(ctx context.Context, godownID string) ([]*usecase.GodownStockRow, error)
}

func NewMockStockRepository() *MockStockRepository {
	return &MockStockRepository{}
}

func (m *MockStockRepository) ItemFlows(ctx context.Context, from, to time.Time, filter usecase.StockQueryFilter) ([]*usecase.ItemFlow, error) {
	if m.ItemFlowsFunc != nil {
		return m.ItemFlowsFunc(ctx, from, to, filter)
	}
	return nil, nil
}

func (m *MockStockRepository) Movements(ctx context.Context, from, to time.Time, itemID string) ([]*usecase.StockMovement, error) {
	if m.MovementsFunc != nil {
		return m.MovementsFunc(ctx, from, to, itemID)
	}
	return nil, nil
}

func (m *MockStockRepository) ItemActivity(ctx context.Context, toDate time.Time, filter usecase.StockQueryFilter) ([]*usecase.ItemActivity, error) {
	if m.ItemActivityFunc != nil {
		return m.ItemActivityFunc(ctx, toDate, filter)
	}
	return nil, nil
}

func (m *MockStockRepository) GodownSummary(ctx context.Context, godownID string) ([]*usecase.GodownStockRow, error) {
	if m.GodownSummaryFunc != nil {
		return m.GodownSummaryFunc(ctx, godownID)
	}
	return nil, nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository.
type MockSettingsRepository struct {
	mu       sync.RWMutex
	settings *domain.ValuationSettings

	GetValuationSettingsFunc  func(ctx context.Context) (*domain.ValuationSettings, error)
	SaveValuationSettingsFunc func(ctx context.Context, settings *domain.ValuationSettings) error
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) GetValuationSettings(ctx context.Context) (*domain.ValuationSettings, error) {
	if m.GetValuationSettingsFunc != nil {
		return m.GetValuationSettingsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

func (m *MockSettingsRepository) SaveValuationSettings(ctx context.Context, settings *domain.ValuationSettings) error {
	if m.SaveValuationSettingsFunc != nil {
		return m.SaveValuationSettingsFunc(ctx, settings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the
// operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
