package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// LedgerFilter narrows registry listings.
type LedgerFilter struct {
	Search    string
	GroupName string
	Limit     int
	Offset    int
}

// LedgerRepository defines read access to the ledger/group registry.
// The core never writes master records.
type LedgerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Ledger, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Ledger, error)
	List(ctx context.Context, filter LedgerFilter) ([]*domain.Ledger, error)
	ListGroups(ctx context.Context) ([]*domain.LedgerGroup, error)
}

// StockItemRepository defines read access to stock masters.
type StockItemRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StockItem, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.StockItem, error)
	List(ctx context.Context, limit, offset int) ([]*domain.StockItem, error)
}

// VoucherFilter narrows voucher listings.
type VoucherFilter struct {
	Kind     *domain.VoucherKind
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// DaybookRow is one voucher with its entry totals for a day's book.
type DaybookRow struct {
	VoucherID     string
	Kind          domain.VoucherKind
	VoucherNumber string
	Date          time.Time
	Narration     string
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	EntryCount    int
}

// VoucherRepository defines data access for vouchers and their lines.
// All writes happen inside a caller-owned transaction.
type VoucherRepository interface {
	CreateHeader(ctx context.Context, tx Transaction, voucher *domain.Voucher) error
	CreateLedgerLines(ctx context.Context, tx Transaction, lines []domain.LedgerLine) error
	CreateItemLines(ctx context.Context, tx Transaction, lines []domain.ItemLine) error
	GetByID(ctx context.Context, id string) (*domain.Voucher, error)
	List(ctx context.Context, filter VoucherFilter) ([]*domain.Voucher, error)
	Daybook(ctx context.Context, date time.Time) ([]*DaybookRow, error)
}

// LedgerMovement is one posted entry against a ledger, joined to its
// voucher header.
type LedgerMovement struct {
	EntryID       string
	VoucherID     string
	Kind          domain.VoucherKind
	VoucherNumber string
	Date          time.Time
	Side          domain.EntrySide
	Amount        decimal.Decimal
	Narration     string
	ChequeNumber  string
	BankName      string
}

// DebitCredit is a pair of posted totals.
type DebitCredit struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// MonthFlow is one calendar month's classified totals.
type MonthFlow struct {
	Year    int
	Month   time.Month
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
}

// NamedAmount is a per-ledger aggregate.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}

// ReportRepository defines the read-side aggregation queries over posted
// vouchers that the reporting usecases replay.
type ReportRepository interface {
	LedgerTotalsBefore(ctx context.Context, ledgerID string, before time.Time) (DebitCredit, error)
	LedgerMovements(ctx context.Context, ledgerID string, from, to time.Time) ([]*LedgerMovement, error)
	LedgersWithGroups(ctx context.Context) ([]*domain.Ledger, error)
	LedgerPostedTotals(ctx context.Context) (map[string]DebitCredit, error)
	MonthlyFlows(ctx context.Context, from, to time.Time, inflow, outflow []domain.VoucherKind) ([]*MonthFlow, error)
	FlowByLedger(ctx context.Context, from, to time.Time, kinds []domain.VoucherKind, side domain.EntrySide) ([]*NamedAmount, error)
}

// PartyRole selects which side of the books an outstanding query reads.
type PartyRole string

const (
	RoleReceivable PartyRole = "receivable"
	RolePayable    PartyRole = "payable"
)

// PartyBill is a bill voucher aggregated per party: the receivable role
// reads sales vouchers with amount debit-credit, the payable role reads
// purchase vouchers with amount credit-debit.
type PartyBill struct {
	VoucherID     string
	VoucherNumber string
	Date          time.Time
	DueDate       *time.Time
	PartyID       string
	Amount        decimal.Decimal
	Settled       decimal.Decimal
	ReferenceNo   string
	Narration     string
}

// PartySettlement is a party's aggregate receipt/payment total. It is not
// attributed bill-by-bill.
type PartySettlement struct {
	Total    decimal.Decimal
	LastDate *time.Time
}

// OutstandingRepository defines the bill/settlement aggregation queries.
type OutstandingRepository interface {
	PartyBills(ctx context.Context, role PartyRole, partyIDs []string) ([]*PartyBill, error)
	PartySettlements(ctx context.Context, role PartyRole, partyIDs []string) (map[string]*PartySettlement, error)
}

// ItemFlow is a stock item with its inward/outward movement sums over a
// period.
type ItemFlow struct {
	Item       domain.StockItem
	InwardQty  decimal.Decimal
	OutwardQty decimal.Decimal
	InwardVal  decimal.Decimal
	OutwardVal decimal.Decimal
}

// StockMovement is one item line joined to its voucher header.
type StockMovement struct {
	Date          time.Time
	Kind          domain.VoucherKind
	VoucherNumber string
	ItemID        string
	ItemName      string
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	Amount        decimal.Decimal
	Side          domain.EntrySide
	GodownID      *string
}

// ItemActivity is an item with its most recent transaction date up to a
// cutoff.
type ItemActivity struct {
	Item     domain.StockItem
	LastDate *time.Time
}

// GodownStockRow is one (godown, item) allocation with valuation.
type GodownStockRow struct {
	GodownID   string
	GodownName string
	ItemID     string
	ItemName   string
	Unit       string
	Quantity   decimal.Decimal
	Rate       decimal.Decimal
	Value      decimal.Decimal
}

// StockQueryFilter narrows stock aggregations.
type StockQueryFilter struct {
	StockGroupID string
	StockItemID  string
	GodownID     string
	BatchNumber  string
}

// StockRepository defines the item-level movement aggregation queries.
type StockRepository interface {
	ItemFlows(ctx context.Context, from, to time.Time, filter StockQueryFilter) ([]*ItemFlow, error)
	Movements(ctx context.Context, from, to time.Time, itemID string) ([]*StockMovement, error)
	ItemActivity(ctx context.Context, toDate time.Time, filter StockQueryFilter) ([]*ItemActivity, error)
	GodownSummary(ctx context.Context, godownID string) ([]*GodownStockRow, error)
}

// SettingsRepository persists valuation settings durably.
type SettingsRepository interface {
	GetValuationSettings(ctx context.Context) (*domain.ValuationSettings, error)
	SaveValuationSettings(ctx context.Context, settings *domain.ValuationSettings) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for read-heavy reports.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
