package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

var validate = validator.New()

// dateLayout is the wire format for business dates. Timestamps coming
// from older clients arrive as RFC 3339; both are accepted.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, s)
}

func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func parseSide(raw string) (domain.EntrySide, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "debit", "dr":
		return domain.SideDebit, nil
	case "credit", "cr":
		return domain.SideCredit, nil
	default:
		return "", fmt.Errorf("invalid entry side %q", raw)
	}
}

// VoucherEntryRequest is a double-entry line against a ledger.
type VoucherEntryRequest struct {
	LedgerID     string          `json:"ledgerId" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Narration    string          `json:"narration"`
	BankName     string          `json:"bankName"`
	ChequeNumber string          `json:"chequeNumber"`
	CostCentreID *string         `json:"costCentreId,omitempty"`
}

// VoucherItemRequest is an item-mode invoice or movement line.
type VoucherItemRequest struct {
	ItemID      string          `json:"itemId" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
	CGSTRate    decimal.Decimal `json:"cgstRate"`
	SGSTRate    decimal.Decimal `json:"sgstRate"`
	IGSTRate    decimal.Decimal `json:"igstRate"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	GodownID    *string         `json:"godownId,omitempty"`
	BatchNumber string          `json:"batchNumber"`
}

// DispatchRequest carries delivery metadata on invoice vouchers.
type DispatchRequest struct {
	DocNo       string `json:"docNo"`
	Through     string `json:"through"`
	Destination string `json:"destination"`
}

// TotalsRequest carries invoice-level GST totals.
type TotalsRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	IGST     decimal.Decimal `json:"igst"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// PostVoucherRequest represents a voucher-creation request. Type is only
// consulted on the generic posting route; the type-specific routes fix
// the kind themselves.
type PostVoucherRequest struct {
	Type                string                `json:"type"`
	Date                string                `json:"date" validate:"required"`
	Number              string                `json:"number"`
	Narration           string                `json:"narration"`
	ReferenceNo         string                `json:"referenceNo"`
	DueDate             string                `json:"dueDate"`
	SupplierInvoiceDate string                `json:"supplierInvoiceDate"`
	PartyLedgerID       *string               `json:"partyLedgerId,omitempty"`
	Dispatch            *DispatchRequest      `json:"dispatch,omitempty"`
	Totals              *TotalsRequest        `json:"totals,omitempty"`
	Entries             []VoucherEntryRequest `json:"entries" validate:"dive"`
	Items               []VoucherItemRequest  `json:"items" validate:"dive"`
}

// Validate checks the request shape before conversion.
func (r *PostVoucherRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input for the given voucher kind.
func (r *PostVoucherRequest) ToUseCaseInput(kind domain.VoucherKind) (usecase.PostVoucherInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.PostVoucherInput{}, fmt.Errorf("invalid date: %w", err)
	}

	dueDate, err := parseDatePtr(r.DueDate)
	if err != nil {
		return usecase.PostVoucherInput{}, fmt.Errorf("invalid due date: %w", err)
	}

	supplierDate, err := parseDatePtr(r.SupplierInvoiceDate)
	if err != nil {
		return usecase.PostVoucherInput{}, fmt.Errorf("invalid supplier invoice date: %w", err)
	}

	input := usecase.PostVoucherInput{
		Kind:                kind,
		Date:                date,
		Number:              r.Number,
		Narration:           r.Narration,
		ReferenceNo:         r.ReferenceNo,
		DueDate:             dueDate,
		SupplierInvoiceDate: supplierDate,
		PartyLedgerID:       r.PartyLedgerID,
	}

	if r.Dispatch != nil {
		input.Dispatch = &domain.Dispatch{
			DocNo:       r.Dispatch.DocNo,
			Through:     r.Dispatch.Through,
			Destination: r.Dispatch.Destination,
		}
	}

	if r.Totals != nil {
		input.Totals = &domain.Totals{
			Subtotal: r.Totals.Subtotal,
			CGST:     r.Totals.CGST,
			SGST:     r.Totals.SGST,
			IGST:     r.Totals.IGST,
			Discount: r.Totals.Discount,
			Total:    r.Totals.Total,
		}
	}

	for _, e := range r.Entries {
		side, err := parseSide(e.Type)
		if err != nil {
			return usecase.PostVoucherInput{}, err
		}

		input.LedgerLines = append(input.LedgerLines, domain.LedgerLine{
			LedgerID:     e.LedgerID,
			Amount:       e.Amount,
			Side:         side,
			Narration:    e.Narration,
			BankName:     e.BankName,
			ChequeNumber: e.ChequeNumber,
			CostCentreID: e.CostCentreID,
		})
	}

	for _, it := range r.Items {
		line := domain.ItemLine{
			ItemID:      it.ItemID,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Discount:    it.Discount,
			CGSTRate:    it.CGSTRate,
			SGSTRate:    it.SGSTRate,
			IGSTRate:    it.IGSTRate,
			Amount:      it.Amount,
			GodownID:    it.GodownID,
			BatchNumber: it.BatchNumber,
		}

		// An untyped item line keeps its zero side so the posting engine
		// can default it by voucher kind.
		if it.Type != "" {
			side, err := parseSide(it.Type)
			if err != nil {
				return usecase.PostVoucherInput{}, err
			}
			line.Side = side
		}

		input.ItemLines = append(input.ItemLines, line)
	}

	return input, nil
}
