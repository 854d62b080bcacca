package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherKind tags a voucher with its posting behavior.
type VoucherKind string

const (
	KindPayment       VoucherKind = "payment"
	KindReceipt       VoucherKind = "receipt"
	KindContra        VoucherKind = "contra"
	KindJournal       VoucherKind = "journal"
	KindSales         VoucherKind = "sales"
	KindPurchase      VoucherKind = "purchase"
	KindDebitNote     VoucherKind = "debit_note"
	KindCreditNote    VoucherKind = "credit_note"
	KindStockJournal  VoucherKind = "stock_journal"
	KindSalesOrder    VoucherKind = "sales_order"
	KindPurchaseOrder VoucherKind = "purchase_order"
	KindDelivery      VoucherKind = "delivery"
)

// Descriptor declares, per voucher kind, which entry shapes a voucher may
// carry and which invariants the posting engine enforces before writing.
type Descriptor struct {
	Kind            VoucherKind
	AllowLedgerLine bool
	AllowItemLine   bool
	RequireBalanced bool
	RequireParty    bool
}

var descriptors = map[VoucherKind]Descriptor{
	KindPayment:  {Kind: KindPayment, AllowLedgerLine: true, RequireBalanced: true},
	KindReceipt:  {Kind: KindReceipt, AllowLedgerLine: true, RequireBalanced: true},
	KindContra:   {Kind: KindContra, AllowLedgerLine: true, RequireBalanced: true},
	KindJournal:  {Kind: KindJournal, AllowLedgerLine: true, RequireBalanced: true},
	KindSales:    {Kind: KindSales, AllowLedgerLine: true, AllowItemLine: true, RequireParty: true},
	KindPurchase: {Kind: KindPurchase, AllowLedgerLine: true, AllowItemLine: true, RequireParty: true},
	// Notes may be posted as pure ledger postings or as item-level returns.
	KindDebitNote:  {Kind: KindDebitNote, AllowLedgerLine: true, AllowItemLine: true},
	KindCreditNote: {Kind: KindCreditNote, AllowLedgerLine: true, AllowItemLine: true},
	// Stock journals and deliveries move quantities only; they are
	// single-sided and never balance-checked.
	KindStockJournal:  {Kind: KindStockJournal, AllowItemLine: true},
	KindSalesOrder:    {Kind: KindSalesOrder, AllowItemLine: true, RequireParty: true},
	KindPurchaseOrder: {Kind: KindPurchaseOrder, AllowItemLine: true, RequireParty: true},
	KindDelivery:      {Kind: KindDelivery, AllowItemLine: true},
}

// ParseVoucherKind normalizes a client-supplied voucher type tag.
// "debit-note", "DebitNote" and "debit_note" all resolve to KindDebitNote.
func ParseVoucherKind(raw string) (VoucherKind, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")

	switch s {
	case "sale":
		s = "sales"
	case "debitnote":
		s = "debit_note"
	case "creditnote":
		s = "credit_note"
	case "stockjournal":
		s = "stock_journal"
	}

	kind := VoucherKind(s)
	if _, ok := descriptors[kind]; !ok {
		return "", ErrUnknownVoucherType
	}

	return kind, nil
}

// DescriptorFor returns the posting rules for a kind.
func DescriptorFor(kind VoucherKind) (Descriptor, error) {
	d, ok := descriptors[kind]
	if !ok {
		return Descriptor{}, ErrUnknownVoucherType
	}

	return d, nil
}

// EntrySide is the side of a double-entry posting.
type EntrySide string

const (
	SideDebit  EntrySide = "debit"
	SideCredit EntrySide = "credit"
)

// LedgerLine is a generic double-entry line against a ledger.
type LedgerLine struct {
	ID           string
	VoucherID    string
	LedgerID     string
	Amount       decimal.Decimal
	Side         EntrySide
	Narration    string
	BankName     string
	ChequeNumber string
	CostCentreID *string
}

// ItemLine is an item-level invoice or movement line. Amount is
// quantity*rate-discount when the client leaves it unset.
type ItemLine struct {
	ID          string
	VoucherID   string
	ItemID      string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Discount    decimal.Decimal
	CGSTRate    decimal.Decimal
	SGSTRate    decimal.Decimal
	IGSTRate    decimal.Decimal
	Amount      decimal.Decimal
	Side        EntrySide
	GodownID    *string
	BatchNumber string
}

// ComputedAmount returns quantity*rate-discount.
func (il *ItemLine) ComputedAmount() decimal.Decimal {
	return il.Quantity.Mul(il.Rate).Sub(il.Discount)
}

// Dispatch carries delivery metadata on invoice vouchers.
type Dispatch struct {
	DocNo       string
	Through     string
	Destination string
}

// Totals carries invoice-level GST totals on sales/purchase vouchers.
type Totals struct {
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Voucher is an immutable posting: a header plus ledger lines and/or item
// lines, written atomically and never updated in place.
type Voucher struct {
	ID                  string
	Kind                VoucherKind
	Number              string
	Date                time.Time
	DueDate             *time.Time
	SupplierInvoiceDate *time.Time
	Narration           string
	ReferenceNo         string
	PartyLedgerID       *string
	Dispatch            *Dispatch
	Totals              *Totals
	LedgerLines         []LedgerLine
	ItemLines           []ItemLine
	CreatedAt           time.Time
}

// LedgerTotals sums the debit and credit sides of the ledger lines.
func (v *Voucher) LedgerTotals() (debit, credit decimal.Decimal) {
	for _, l := range v.LedgerLines {
		if l.Side == SideCredit {
			credit = credit.Add(l.Amount)
		} else {
			debit = debit.Add(l.Amount)
		}
	}

	return debit, credit
}

// Validate checks the structural invariants the descriptor declares for
// this voucher's kind. It does not resolve ledger/item references; the
// posting engine does that against the registry before writing.
func (v *Voucher) Validate() error {
	d, err := DescriptorFor(v.Kind)
	if err != nil {
		return err
	}

	if len(v.LedgerLines) == 0 && len(v.ItemLines) == 0 {
		return ErrEmptyEntries
	}

	if !d.AllowLedgerLine && len(v.LedgerLines) > 0 {
		return ErrEntryShapeNotAllowed
	}

	if !d.AllowItemLine && len(v.ItemLines) > 0 {
		return ErrEntryShapeNotAllowed
	}

	if d.RequireParty && (v.PartyLedgerID == nil || *v.PartyLedgerID == "") {
		return ErrMissingParty
	}

	for _, l := range v.LedgerLines {
		if l.LedgerID == "" {
			return ErrAmbiguousEntry
		}

		// Every ledger line must move money; zero-amount lines would
		// pad the books without posting anything.
		if !l.Amount.IsPositive() {
			return ErrInvalidAmount
		}
	}

	for _, il := range v.ItemLines {
		if il.ItemID == "" {
			return ErrAmbiguousEntry
		}

		if il.Quantity.IsNegative() || il.Rate.IsNegative() || il.Amount.IsNegative() {
			return ErrInvalidAmount
		}
	}

	if d.RequireBalanced {
		debit, credit := v.LedgerTotals()
		if !debit.Equal(credit) {
			return ErrUnbalancedVoucher
		}
	}

	return nil
}
