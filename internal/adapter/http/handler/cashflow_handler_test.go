package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

type cashFlowServiceStub struct {
	statementFn func(ctx context.Context, fy usecase.FinancialYear) (*usecase.CashFlowStatement, error)
	detailFn    func(ctx context.Context, code string) (*usecase.CashFlowDetail, error)
}

func (s *cashFlowServiceStub) Statement(ctx context.Context, fy usecase.FinancialYear) (*usecase.CashFlowStatement, error) {
	return s.statementFn(ctx, fy)
}

func (s *cashFlowServiceStub) MonthDetail(ctx context.Context, code string) (*usecase.CashFlowDetail, error) {
	return s.detailFn(ctx, code)
}

func TestCashFlowHandler_Statement(t *testing.T) {
	var captured usecase.FinancialYear
	handler := NewCashFlowHandler(&cashFlowServiceStub{
		statementFn: func(ctx context.Context, fy usecase.FinancialYear) (*usecase.CashFlowStatement, error) {
			captured = fy
			return &usecase.CashFlowStatement{
				FinancialYear: fy.String(),
				Months: []usecase.CashFlowMonth{
					{MonthCode: "Apr-24", Month: time.April, Year: 2024},
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cash-flow?financialYear=2024-25", nil)
	rr := httptest.NewRecorder()
	handler.Statement(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.String() != "2024-25" {
		t.Fatalf("financial year = %v", captured)
	}

	var resp dto.CashFlowResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.FinancialYear != "2024-25" || len(resp.Months) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCashFlowHandler_Statement_InvalidYear(t *testing.T) {
	handler := NewCashFlowHandler(&cashFlowServiceStub{})

	tests := []string{"", "2024", "2024-26", "24-25"}
	for _, fy := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/cash-flow?financialYear="+fy, nil)
		rr := httptest.NewRecorder()
		handler.Statement(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("financialYear=%q: expected 400, got %d", fy, rr.Code)
		}
	}
}

func TestCashFlowHandler_MonthDetail(t *testing.T) {
	handler := NewCashFlowHandler(&cashFlowServiceStub{
		detailFn: func(ctx context.Context, code string) (*usecase.CashFlowDetail, error) {
			return &usecase.CashFlowDetail{
				MonthCode: code,
				Inflows:   []usecase.NamedAmount{{Name: "Sales", Amount: decimal.RequireFromString("50000")}},
				Inflow:    decimal.RequireFromString("50000"),
				Outflow:   decimal.RequireFromString("15000"),
				Net:       decimal.RequireFromString("35000"),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cash-flow/summary/Jun-24", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("monthCode", "Jun-24")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.MonthDetail(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp dto.CashFlowDetailResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MonthCode != "Jun-24" || !resp.NetFlow.Equal(decimal.RequireFromString("35000")) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCashFlowHandler_MonthDetail_BadCode(t *testing.T) {
	handler := NewCashFlowHandler(&cashFlowServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/cash-flow/summary/notamonth", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("monthCode", "notamonth")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.MonthDetail(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
