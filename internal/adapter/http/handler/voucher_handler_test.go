package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

type postingServiceStub struct {
	postFn    func(ctx context.Context, input usecase.PostVoucherInput) (*domain.Voucher, error)
	getFn     func(ctx context.Context, id string) (*domain.Voucher, error)
	listFn    func(ctx context.Context, filter usecase.VoucherFilter) ([]*domain.Voucher, error)
	daybookFn func(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error)
}

func (s *postingServiceStub) PostVoucher(ctx context.Context, input usecase.PostVoucherInput) (*domain.Voucher, error) {
	return s.postFn(ctx, input)
}

func (s *postingServiceStub) GetVoucher(ctx context.Context, id string) (*domain.Voucher, error) {
	return s.getFn(ctx, id)
}

func (s *postingServiceStub) ListVouchers(ctx context.Context, filter usecase.VoucherFilter) ([]*domain.Voucher, error) {
	return s.listFn(ctx, filter)
}

func (s *postingServiceStub) Daybook(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error) {
	return s.daybookFn(ctx, date)
}

func TestVoucherHandler_Post_Success(t *testing.T) {
	posted := &domain.Voucher{
		ID:   "vch-1",
		Kind: domain.KindPayment,
		Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	var captured usecase.PostVoucherInput
	handler := NewVoucherHandler(&postingServiceStub{
		postFn: func(ctx context.Context, input usecase.PostVoucherInput) (*domain.Voucher, error) {
			captured = input
			return posted, nil
		},
	})

	body, _ := json.Marshal(dto.PostVoucherRequest{
		Type: "payment",
		Date: "2024-06-15",
		Entries: []dto.VoucherEntryRequest{
			{LedgerID: "led-rent", Amount: decimal.RequireFromString("200"), Type: "debit"},
			{LedgerID: "led-cash", Amount: decimal.RequireFromString("200"), Type: "credit"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/vouchers", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Post(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.Kind != domain.KindPayment || len(captured.LedgerLines) != 2 {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.VoucherResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "vch-1" || resp.Type != "payment" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestVoucherHandler_Post_UnknownType(t *testing.T) {
	handler := NewVoucherHandler(&postingServiceStub{})

	body, _ := json.Marshal(dto.PostVoucherRequest{
		Type:    "promissory",
		Date:    "2024-06-15",
		Entries: []dto.VoucherEntryRequest{{LedgerID: "led-1"}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/vouchers", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Post(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestVoucherHandler_PostKind_FixesKind(t *testing.T) {
	var captured usecase.PostVoucherInput
	handler := NewVoucherHandler(&postingServiceStub{
		postFn: func(ctx context.Context, input usecase.PostVoucherInput) (*domain.Voucher, error) {
			captured = input
			return &domain.Voucher{ID: "vch-2", Kind: input.Kind, Date: input.Date}, nil
		},
	})

	party := "led-party"
	body, _ := json.Marshal(dto.PostVoucherRequest{
		// Body type is ignored on type-specific routes.
		Type:          "payment",
		Date:          "2024-06-15",
		PartyLedgerID: &party,
		Items: []dto.VoucherItemRequest{
			{ItemID: "item-1", Quantity: decimal.RequireFromString("2"), Rate: decimal.RequireFromString("100")},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sale-vouchers/vouchers", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.PostKind(domain.KindSales)(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.Kind != domain.KindSales {
		t.Fatalf("expected sales kind, got %v", captured.Kind)
	}
}

func TestVoucherHandler_Post_DomainErrorsMapTo400(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unbalanced", domain.ErrUnbalancedVoucher},
		{"unknown reference", domain.ErrUnknownReference},
		{"missing party", domain.ErrMissingParty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewVoucherHandler(&postingServiceStub{
				postFn: func(ctx context.Context, input usecase.PostVoucherInput) (*domain.Voucher, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.PostVoucherRequest{
				Type:    "sales",
				Date:    "2024-06-15",
				Entries: []dto.VoucherEntryRequest{{LedgerID: "led-1", Amount: decimal.RequireFromString("10")}},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/vouchers", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.Post(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestVoucherHandler_Get_NotFound(t *testing.T) {
	handler := NewVoucherHandler(&postingServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Voucher, error) {
			return nil, domain.ErrVoucherNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vouchers/vch-404", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "vch-404")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestVoucherHandler_Daybook(t *testing.T) {
	var captured time.Time
	handler := NewVoucherHandler(&postingServiceStub{
		daybookFn: func(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error) {
			captured = date
			return []*usecase.DaybookRow{
				{
					VoucherID:     "vch-1",
					Kind:          domain.KindReceipt,
					VoucherNumber: "RV-1",
					Date:          date,
					TotalDebit:    decimal.RequireFromString("500"),
					TotalCredit:   decimal.RequireFromString("500"),
					EntryCount:    2,
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/daybook?date=2024-06-15", nil)
	rr := httptest.NewRecorder()
	handler.Daybook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if captured.Day() != 15 {
		t.Fatalf("expected requested day to pass through, got %v", captured)
	}

	var rows []dto.DaybookRowResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 || rows[0].VoucherNumber != "RV-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
