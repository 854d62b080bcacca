package handler

import (
	"context"
	"net/http"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// LedgerReportService defines the behavior needed by ReportHandler.
type LedgerReportService interface {
	Report(ctx context.Context, input usecase.LedgerReportInput) (*usecase.LedgerReport, error)
}

// StatementService defines the statement behavior needed by ReportHandler.
type StatementService interface {
	TrialBalance(ctx context.Context, basis usecase.TrialBalanceBasis) (*usecase.TrialBalance, error)
	ProfitAndLoss(ctx context.Context) (*usecase.ProfitAndLoss, error)
	BalanceSheet(ctx context.Context) (*usecase.BalanceSheet, error)
}

// ReportHandler handles ledger statements and aggregate reports.
type ReportHandler struct {
	reportUC    LedgerReportService
	statementUC StatementService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC LedgerReportService, statementUC StatementService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, statementUC: statementUC}
}

// LedgerReport builds a running-balance statement for one ledger.
func (h *ReportHandler) LedgerReport(w http.ResponseWriter, r *http.Request) {
	ledgerID := r.URL.Query().Get("ledgerId")
	if ledgerID == "" {
		writeError(w, http.StatusBadRequest, "missing ledgerId", "")
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

	input := usecase.LedgerReportInput{
		LedgerID:       ledgerID,
		FromDate:       from,
		ToDate:         to,
		IncludeOpening: parseBoolQuery(r, "includeOpening", true),
		IncludeClosing: parseBoolQuery(r, "includeClosing", true),
	}

	report, err := h.reportUC.Report(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build ledger report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerReportFromUseCase(report))
}

// TrialBalance builds the trial balance on the requested basis.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	basis, err := usecase.ParseTrialBalanceBasis(r.URL.Query().Get("basis"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid basis", err.Error())
		return
	}

	tb, err := h.statementUC.TrialBalance(r.Context(), basis)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromUseCase(tb))
}

// ProfitAndLoss builds the profit and loss statement.
func (h *ReportHandler) ProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	pl, err := h.statementUC.ProfitAndLoss(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build profit and loss", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfitAndLossFromUseCase(pl))
}

// BalanceSheet builds the balance sheet.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	bs, err := h.statementUC.BalanceSheet(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromUseCase(bs))
}
