package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// SettingsService defines the behavior needed by SettingsHandler.
type SettingsService interface {
	ValuationSettings(ctx context.Context) (*domain.ValuationSettings, error)
	SaveValuationSettings(ctx context.Context, settings *domain.ValuationSettings) error
}

// SettingsHandler handles valuation settings requests.
type SettingsHandler struct {
	settingsUC SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsUC SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsUC: settingsUC}
}

// Get returns the current valuation settings, falling back to defaults
// when none were ever saved.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUC.ValuationSettings(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to load valuation settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Save replaces the valuation settings.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var settings domain.ValuationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.settingsUC.SaveValuationSettings(r.Context(), &settings); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to save valuation settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
