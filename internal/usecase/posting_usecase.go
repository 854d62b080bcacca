package usecase

import (
	"context"
	"time"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/infrastructure/metrics"
)

// PostingUseCase is the single posting contract for every voucher kind.
// The per-kind differences (allowed entry shapes, balance check, party
// requirement) live in the domain descriptor table; the transaction and
// rollback handling here is uniform.
type PostingUseCase struct {
	txManager TransactionManager
	vouchers  VoucherRepository
	ledgers   LedgerRepository
	items     StockItemRepository
	idGen     IDGenerator
	retrier   Retrier
	metrics   *metrics.Metrics
}

// NewPostingUseCase creates a new PostingUseCase. The metrics argument
// may be nil, in which case no metrics are recorded.
func NewPostingUseCase(
	txManager TransactionManager,
	vouchers VoucherRepository,
	ledgers LedgerRepository,
	items StockItemRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *PostingUseCase {
	return &PostingUseCase{
		txManager: txManager,
		vouchers:  vouchers,
		ledgers:   ledgers,
		items:     items,
		idGen:     idGen,
		retrier:   retrier,
		metrics:   m,
	}
}

// PostVoucherInput represents a voucher-creation request. Line IDs and
// the voucher ID are assigned here, not by the caller.
type PostVoucherInput struct {
	Kind                domain.VoucherKind
	Date                time.Time
	Number              string
	Narration           string
	ReferenceNo         string
	DueDate             *time.Time
	SupplierInvoiceDate *time.Time
	PartyLedgerID       *string
	Dispatch            *domain.Dispatch
	Totals              *domain.Totals
	LedgerLines         []domain.LedgerLine
	ItemLines           []domain.ItemLine
}

// Item lines default to the movement direction of their voucher kind
// when the client does not state a side: purchases and returns-in come
// in, sales and deliveries go out.
var defaultItemSide = map[domain.VoucherKind]domain.EntrySide{
	domain.KindPurchase:      domain.SideDebit,
	domain.KindPurchaseOrder: domain.SideDebit,
	domain.KindCreditNote:    domain.SideDebit,
	domain.KindSales:         domain.SideCredit,
	domain.KindSalesOrder:    domain.SideCredit,
	domain.KindDebitNote:     domain.SideCredit,
	domain.KindDelivery:      domain.SideCredit,
	domain.KindStockJournal:  domain.SideDebit,
}

// PostVoucher validates, resolves references, and atomically persists a
// voucher header with all its lines. On any failure the whole write is
// rolled back; no header is ever visible without its entries.
func (uc *PostingUseCase) PostVoucher(ctx context.Context, input PostVoucherInput) (*domain.Voucher, error) {
	now := time.Now().UTC()

	voucher := &domain.Voucher{
		Kind:                input.Kind,
		Number:              input.Number,
		Date:                input.Date,
		DueDate:             input.DueDate,
		SupplierInvoiceDate: input.SupplierInvoiceDate,
		Narration:           input.Narration,
		ReferenceNo:         input.ReferenceNo,
		PartyLedgerID:       input.PartyLedgerID,
		Dispatch:            input.Dispatch,
		Totals:              input.Totals,
		LedgerLines:         input.LedgerLines,
		ItemLines:           input.ItemLines,
		CreatedAt:           now,
	}

	// Structural validation happens before any database work.
	if err := voucher.Validate(); err != nil {
		return nil, err
	}

	if err := uc.resolveReferences(ctx, voucher); err != nil {
		return nil, err
	}

	uc.assignIdentity(voucher)

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.vouchers.CreateHeader(ctx, tx, voucher); err != nil {
			return err
		}

		if len(voucher.LedgerLines) > 0 {
			if err := uc.vouchers.CreateLedgerLines(ctx, tx, voucher.LedgerLines); err != nil {
				return err
			}
		}

		if len(voucher.ItemLines) > 0 {
			if err := uc.vouchers.CreateItemLines(ctx, tx, voucher.ItemLines); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.VouchersPosted.WithLabelValues(string(voucher.Kind)).Inc()
		uc.metrics.PostingDuration.Observe(time.Since(now).Seconds())
		if voucher.Totals != nil {
			total, _ := voucher.Totals.Total.Float64()
			uc.metrics.VoucherAmount.Observe(total)
		}
	}

	return voucher, nil
}

// resolveReferences batch-looks-up every referenced ledger and item so an
// unknown id fails fast with a distinct error instead of a constraint
// violation mid-transaction.
func (uc *PostingUseCase) resolveReferences(ctx context.Context, voucher *domain.Voucher) error {
	ledgerIDs := uniqueIDs(len(voucher.LedgerLines)+1, func(yield func(string)) {
		for _, l := range voucher.LedgerLines {
			yield(l.LedgerID)
		}
		if voucher.PartyLedgerID != nil {
			yield(*voucher.PartyLedgerID)
		}
	})

	if len(ledgerIDs) > 0 {
		found, err := uc.ledgers.GetByIDs(ctx, ledgerIDs)
		if err != nil {
			return err
		}

		if len(found) != len(ledgerIDs) {
			return domain.ErrUnknownReference
		}
	}

	itemIDs := uniqueIDs(len(voucher.ItemLines), func(yield func(string)) {
		for _, il := range voucher.ItemLines {
			yield(il.ItemID)
		}
	})

	if len(itemIDs) > 0 {
		found, err := uc.items.GetByIDs(ctx, itemIDs)
		if err != nil {
			return err
		}

		if len(found) != len(itemIDs) {
			return domain.ErrUnknownReference
		}
	}

	return nil
}

// assignIdentity fills generated ids, line defaults and derived amounts.
func (uc *PostingUseCase) assignIdentity(voucher *domain.Voucher) {
	voucher.ID = uc.idGen.Generate()

	for i := range voucher.LedgerLines {
		line := &voucher.LedgerLines[i]
		line.ID = uc.idGen.Generate()
		line.VoucherID = voucher.ID

		if line.Side == "" {
			line.Side = domain.SideDebit
		}
	}

	for i := range voucher.ItemLines {
		line := &voucher.ItemLines[i]
		line.ID = uc.idGen.Generate()
		line.VoucherID = voucher.ID

		if line.Side == "" {
			line.Side = defaultItemSide[voucher.Kind]
		}

		if line.Amount.IsZero() && !line.Quantity.IsZero() {
			line.Amount = line.ComputedAmount()
		}
	}
}

// GetVoucher retrieves a voucher with all its lines.
func (uc *PostingUseCase) GetVoucher(ctx context.Context, id string) (*domain.Voucher, error) {
	return uc.vouchers.GetByID(ctx, id)
}

// ListVouchers lists voucher headers.
func (uc *PostingUseCase) ListVouchers(ctx context.Context, filter VoucherFilter) ([]*domain.Voucher, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	return uc.vouchers.List(ctx, filter)
}

// Daybook returns one day's vouchers with entry totals.
func (uc *PostingUseCase) Daybook(ctx context.Context, date time.Time) ([]*DaybookRow, error) {
	rows, err := uc.vouchers.Daybook(ctx, date)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []*DaybookRow{}
	}

	return rows, nil
}

func uniqueIDs(capacity int, walk func(yield func(string))) []string {
	seen := make(map[string]bool, capacity)

	var ids []string
	walk(func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	})

	return ids
}
