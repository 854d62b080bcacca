package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

func TestPostVoucherRequest_ToUseCaseInput(t *testing.T) {
	party := "led-party"
	req := &PostVoucherRequest{
		Date:          "2024-06-15",
		Number:        "SV-42",
		Narration:     "June sale",
		ReferenceNo:   "REF-9",
		DueDate:       "2024-07-15",
		PartyLedgerID: &party,
		Totals: &TotalsRequest{
			Subtotal: decimal.RequireFromString("1000"),
			CGST:     decimal.RequireFromString("90"),
			SGST:     decimal.RequireFromString("90"),
			Total:    decimal.RequireFromString("1180"),
		},
		Entries: []VoucherEntryRequest{
			{LedgerID: "led-sales", Amount: decimal.RequireFromString("1180"), Type: "credit"},
		},
		Items: []VoucherItemRequest{
			{ItemID: "item-1", Quantity: decimal.RequireFromString("4"), Rate: decimal.RequireFromString("250")},
		},
	}

	got, err := req.ToUseCaseInput(domain.KindSales)
	if err != nil {
		t.Fatalf("ToUseCaseInput() error = %v", err)
	}

	if got.Kind != domain.KindSales {
		t.Errorf("Kind = %v, want %v", got.Kind, domain.KindSales)
	}
	if !got.Date.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", got.Date)
	}
	if got.DueDate == nil || !got.DueDate.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DueDate = %v", got.DueDate)
	}
	if got.PartyLedgerID == nil || *got.PartyLedgerID != party {
		t.Errorf("PartyLedgerID = %v", got.PartyLedgerID)
	}
	if got.Totals == nil || !got.Totals.Total.Equal(decimal.RequireFromString("1180")) {
		t.Errorf("Totals = %+v", got.Totals)
	}

	if len(got.LedgerLines) != 1 {
		t.Fatalf("LedgerLines = %+v", got.LedgerLines)
	}
	if got.LedgerLines[0].Side != domain.SideCredit {
		t.Errorf("entry side = %v, want credit", got.LedgerLines[0].Side)
	}

	// Untyped item lines keep a zero side so the posting engine can
	// default them by voucher kind.
	if len(got.ItemLines) != 1 {
		t.Fatalf("ItemLines = %+v", got.ItemLines)
	}
	if got.ItemLines[0].Side != "" {
		t.Errorf("item side = %q, want empty", got.ItemLines[0].Side)
	}
}

func TestPostVoucherRequest_DateParsing(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "iso date", date: "2024-04-01"},
		{name: "rfc3339 timestamp", date: "2024-04-01T10:30:00Z"},
		{name: "garbage", date: "01/04/2024", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &PostVoucherRequest{
				Date:    tt.date,
				Entries: []VoucherEntryRequest{{LedgerID: "led-1"}},
			}

			_, err := req.ToUseCaseInput(domain.KindJournal)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToUseCaseInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPostVoucherRequest_SideParsing(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.EntrySide
		wantErr bool
	}{
		{raw: "debit", want: domain.SideDebit},
		{raw: "Dr", want: domain.SideDebit},
		{raw: "", want: domain.SideDebit},
		{raw: "credit", want: domain.SideCredit},
		{raw: "CR", want: domain.SideCredit},
		{raw: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseSide(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseSide(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseSide(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestPostVoucherRequest_Validate(t *testing.T) {
	req := &PostVoucherRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("Validate() accepted a request without a date")
	}

	req = &PostVoucherRequest{
		Date:    "2024-04-01",
		Entries: []VoucherEntryRequest{{Amount: decimal.RequireFromString("10")}},
	}
	if err := req.Validate(); err == nil {
		t.Fatal("Validate() accepted an entry without a ledger id")
	}

	req = &PostVoucherRequest{
		Date:    "2024-04-01",
		Entries: []VoucherEntryRequest{{LedgerID: "led-1", Amount: decimal.RequireFromString("10")}},
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
