package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gstbooks/gstbooks/internal/domain"
)

type settingsServiceStub struct {
	getFn  func(ctx context.Context) (*domain.ValuationSettings, error)
	saveFn func(ctx context.Context, settings *domain.ValuationSettings) error
}

func (s *settingsServiceStub) ValuationSettings(ctx context.Context) (*domain.ValuationSettings, error) {
	return s.getFn(ctx)
}

func (s *settingsServiceStub) SaveValuationSettings(ctx context.Context, settings *domain.ValuationSettings) error {
	return s.saveFn(ctx, settings)
}

func TestSettingsHandler_Get(t *testing.T) {
	stub := &settingsServiceStub{
		getFn: func(ctx context.Context) (*domain.ValuationSettings, error) {
			defaults := domain.DefaultValuationSettings()
			return &defaults, nil
		},
	}
	handler := NewSettingsHandler(stub)

	rr := httptest.NewRecorder()
	handler.Get(rr, httptest.NewRequest(http.MethodGet, "/api/valuation/settings", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var got domain.ValuationSettings
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.FifoRoundingPrecision != 2 {
		t.Fatalf("expected default rounding precision 2, got %d", got.FifoRoundingPrecision)
	}
}

func TestSettingsHandler_Save_EchoesClampedSettings(t *testing.T) {
	stub := &settingsServiceStub{
		saveFn: func(ctx context.Context, settings *domain.ValuationSettings) error {
			// Precision outside 0..6 is clamped on save.
			if settings.FifoRoundingPrecision < 0 {
				settings.FifoRoundingPrecision = 0
			}
			if settings.FifoRoundingPrecision > 6 {
				settings.FifoRoundingPrecision = 6
			}
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	body := `{"enableFifoForAllItems":true,"fifoCalculationMethod":"weighted_average","fifoRoundingPrecision":12}`
	rr := httptest.NewRecorder()
	handler.Save(rr, httptest.NewRequest(http.MethodPut, "/api/valuation/settings", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got domain.ValuationSettings
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !got.EnableFifoForAllItems {
		t.Fatalf("expected saved flag to round-trip")
	}
	if got.FifoRoundingPrecision != 6 {
		t.Fatalf("expected clamped precision in response, got %d", got.FifoRoundingPrecision)
	}
}

func TestSettingsHandler_Save_RejectsMalformedBody(t *testing.T) {
	stub := &settingsServiceStub{
		saveFn: func(ctx context.Context, settings *domain.ValuationSettings) error {
			t.Fatal("save should not be called for malformed body")
			return nil
		},
	}
	handler := NewSettingsHandler(stub)

	rr := httptest.NewRecorder()
	handler.Save(rr, httptest.NewRequest(http.MethodPut, "/api/valuation/settings", strings.NewReader("{not json")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
