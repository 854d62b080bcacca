package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// CashFlowService defines the behavior needed by CashFlowHandler.
type CashFlowService interface {
	Statement(ctx context.Context, fy usecase.FinancialYear) (*usecase.CashFlowStatement, error)
	MonthDetail(ctx context.Context, code string) (*usecase.CashFlowDetail, error)
}

// CashFlowHandler handles cash flow report requests.
type CashFlowHandler struct {
	cashFlowUC CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler.
func NewCashFlowHandler(cashFlowUC CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowUC: cashFlowUC}
}

// Statement builds the monthly cash flow for a financial year.
func (h *CashFlowHandler) Statement(w http.ResponseWriter, r *http.Request) {
	fy, err := usecase.ParseFinancialYear(r.URL.Query().Get("financialYear"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid financial year", err.Error())
		return
	}

	stmt, err := h.cashFlowUC.Statement(r.Context(), fy)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build cash flow", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashFlowFromUseCase(stmt))
}

// MonthDetail breaks one month down by ledger.
func (h *CashFlowHandler) MonthDetail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "monthCode")
	if _, err := usecase.ParseMonthCode(code); err != nil {
		writeError(w, http.StatusBadRequest, "invalid month code", err.Error())
		return
	}

	detail, err := h.cashFlowUC.MonthDetail(r.Context(), code)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build month detail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashFlowDetailFromUseCase(detail))
}
