package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// PostingService defines the behavior needed by VoucherHandler.
type PostingService interface {
	PostVoucher(ctx context.Context, input usecase.PostVoucherInput) (*domain.Voucher, error)
	GetVoucher(ctx context.Context, id string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, filter usecase.VoucherFilter) ([]*domain.Voucher, error)
	Daybook(ctx context.Context, date time.Time) ([]*usecase.DaybookRow, error)
}

// VoucherHandler handles voucher posting and retrieval requests.
type VoucherHandler struct {
	postingUC PostingService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(postingUC PostingService) *VoucherHandler {
	return &VoucherHandler{postingUC: postingUC}
}

// Post posts a generic voucher; the kind comes from the request body.
func (h *VoucherHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	kind, err := domain.ParseVoucherKind(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid voucher type", err.Error())
		return
	}

	h.post(w, r, &req, kind)
}

// PostKind returns a posting handler with the voucher kind fixed by the
// route rather than the body.
func (h *VoucherHandler) PostKind(kind domain.VoucherKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PostVoucherRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}

		h.post(w, r, &req, kind)
	}
}

func (h *VoucherHandler) post(w http.ResponseWriter, r *http.Request, req *dto.PostVoucherRequest, kind domain.VoucherKind) {
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "missing required fields", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	voucher, err := h.postingUC.PostVoucher(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to save voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.VoucherFromDomain(voucher))
}

// Get retrieves a voucher by ID.
func (h *VoucherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing voucher ID", "")
		return
	}

	voucher, err := h.postingUC.GetVoucher(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VoucherFromDomain(voucher))
}

// List lists vouchers, optionally filtered by type and date range.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.VoucherFilter{
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("type"); raw != "" {
		kind, err := domain.ParseVoucherKind(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid voucher type", err.Error())
			return
		}
		filter.Kind = &kind
	}

	from, ok, err := parseDateQuery(r, "fromDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fromDate", err.Error())
		return
	}
	if ok {
		filter.FromDate = &from
	}

	to, ok, err := parseDateQuery(r, "toDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid toDate", err.Error())
		return
	}
	if ok {
		filter.ToDate = &to
	}

	vouchers, err := h.postingUC.ListVouchers(r.Context(), filter)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list vouchers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VouchersFromDomain(vouchers))
}

// Daybook lists all vouchers posted on a single day. The date defaults
// to today when absent.
func (h *VoucherHandler) Daybook(w http.ResponseWriter, r *http.Request) {
	date, ok, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	if !ok {
		date = time.Now().UTC()
	}

	rows, err := h.postingUC.Daybook(r.Context(), date)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to load daybook", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DaybookFromUseCase(rows))
}
