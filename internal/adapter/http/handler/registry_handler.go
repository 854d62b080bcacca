package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// RegistryService defines the behavior needed by RegistryHandler.
type RegistryService interface {
	GetLedger(ctx context.Context, id string) (*domain.Ledger, error)
	ListLedgers(ctx context.Context, filter usecase.LedgerFilter) ([]*domain.Ledger, error)
	LedgerDropdown(ctx context.Context) ([]usecase.LedgerOption, error)
	ListGroups(ctx context.Context) ([]*domain.LedgerGroup, error)
	GetStockItem(ctx context.Context, id string) (*domain.StockItem, error)
	ListStockItems(ctx context.Context, limit, offset int) ([]*domain.StockItem, error)
}

// RegistryHandler handles master-data lookup requests.
type RegistryHandler struct {
	registryUC RegistryService
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(registryUC RegistryService) *RegistryHandler {
	return &RegistryHandler{registryUC: registryUC}
}

// GetLedger retrieves a ledger by ID.
func (h *RegistryHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing ledger ID", "")
		return
	}

	ledger, err := h.registryUC.GetLedger(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// ListLedgers lists ledgers with optional search and group filters.
func (h *RegistryHandler) ListLedgers(w http.ResponseWriter, r *http.Request) {
	filter := usecase.LedgerFilter{
		Search:    r.URL.Query().Get("search"),
		GroupName: r.URL.Query().Get("group"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	ledgers, err := h.registryUC.ListLedgers(r.Context(), filter)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list ledgers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgersFromDomain(ledgers))
}

// LedgerDropdown lists all ledgers as dropdown options.
func (h *RegistryHandler) LedgerDropdown(w http.ResponseWriter, r *http.Request) {
	options, err := h.registryUC.LedgerDropdown(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to load ledger options", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerOptionsFromUseCase(options))
}

// ListGroups lists all ledger groups.
func (h *RegistryHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.registryUC.ListGroups(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list ledger groups", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerGroupsFromDomain(groups))
}

// GetStockItem retrieves a stock item by ID.
func (h *RegistryHandler) GetStockItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing stock item ID", "")
		return
	}

	item, err := h.registryUC.GetStockItem(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get stock item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StockItemFromDomain(item))
}

// ListStockItems lists stock items.
func (h *RegistryHandler) ListStockItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.registryUC.ListStockItems(r.Context(),
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list stock items", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StockItemsFromDomain(items))
}
