package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// StockService defines the behavior needed by StockHandler.
type StockService interface {
	Summary(ctx context.Context, input usecase.StockSummaryInput) (*usecase.StockSummary, error)
	Movements(ctx context.Context, itemID string, from, to time.Time) (*usecase.ItemMovements, error)
	Ageing(ctx context.Context, asOf time.Time, filter usecase.StockQueryFilter) (*usecase.StockAgeing, error)
	GodownSummary(ctx context.Context, godownID string) ([]*usecase.GodownStock, error)
}

// StockHandler handles stock report requests.
type StockHandler struct {
	stockUC StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockUC StockService) *StockHandler {
	return &StockHandler{stockUC: stockUC}
}

func stockFilter(r *http.Request) usecase.StockQueryFilter {
	return usecase.StockQueryFilter{
		StockGroupID: r.URL.Query().Get("stockGroupId"),
		StockItemID:  r.URL.Query().Get("stockItemId"),
		GodownID:     r.URL.Query().Get("godownId"),
		BatchNumber:  r.URL.Query().Get("batchNumber"),
	}
}

// Summary builds the closing stock summary over a date range.
func (h *StockHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, ok, err := parseDateQuery(r, "fromDate")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "invalid fromDate", "fromDate is required as YYYY-MM-DD")
		return
	}

	to, ok, err := parseDateQuery(r, "toDate")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "invalid toDate", "toDate is required as YYYY-MM-DD")
		return
	}

	basis := domain.BasisQuantity
	if raw := r.URL.Query().Get("basis"); raw != "" {
		basis, err = domain.ParseValuationBasis(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid basis", err.Error())
			return
		}
	}

	summary, err := h.stockUC.Summary(r.Context(), usecase.StockSummaryInput{
		FromDate: from,
		ToDate:   to,
		Basis:    basis,
		Filter:   stockFilter(r),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build stock summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StockSummaryFromUseCase(summary))
}

// Movements builds the movement analysis for one item.
func (h *StockHandler) Movements(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get("itemId")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "missing itemId", "")
		return
	}

	from, ok, err := parseDateQuery(r, "fromDate")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "invalid fromDate", "fromDate is required as YYYY-MM-DD")
		return
	}

	to, ok, err := parseDateQuery(r, "toDate")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "invalid toDate", "toDate is required as YYYY-MM-DD")
		return
	}

	movements, err := h.stockUC.Movements(r.Context(), itemID, from, to)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build movement analysis", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemMovementsFromUseCase(movements))
}

// Ageing builds the stock ageing analysis.
func (h *StockHandler) Ageing(w http.ResponseWriter, r *http.Request) {
	asOf, ok, err := parseDateQuery(r, "toDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid toDate", err.Error())
		return
	}
	if !ok {
		asOf = time.Now().UTC()
	}

	ageing, err := h.stockUC.Ageing(r.Context(), asOf, stockFilter(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build ageing analysis", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StockAgeingFromUseCase(ageing))
}

// GodownSummary builds the godown-wise stock position.
func (h *StockHandler) GodownSummary(w http.ResponseWriter, r *http.Request) {
	godowns, err := h.stockUC.GodownSummary(r.Context(), r.URL.Query().Get("godownId"))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build godown summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GodownStocksFromUseCase(godowns))
}
