package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/adapter/http/dto"
	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// OutstandingService defines the behavior needed by OutstandingHandler.
type OutstandingService interface {
	Parties(ctx context.Context, input usecase.OutstandingInput) (*usecase.PartyResult, error)
	Bills(ctx context.Context, input usecase.OutstandingInput) (*usecase.BillResult, error)
}

// OutstandingHandler handles outstanding and billwise report requests.
type OutstandingHandler struct {
	outstandingUC OutstandingService
}

// NewOutstandingHandler creates a new OutstandingHandler.
func NewOutstandingHandler(outstandingUC OutstandingService) *OutstandingHandler {
	return &OutstandingHandler{outstandingUC: outstandingUC}
}

// Receivables reports per-party receivable outstanding.
func (h *OutstandingHandler) Receivables(w http.ResponseWriter, r *http.Request) {
	h.parties(w, r, usecase.RoleReceivable)
}

// Payables reports per-party payable outstanding.
func (h *OutstandingHandler) Payables(w http.ResponseWriter, r *http.Request) {
	h.parties(w, r, usecase.RolePayable)
}

// BillwiseReceivables reports receivables bill by bill.
func (h *OutstandingHandler) BillwiseReceivables(w http.ResponseWriter, r *http.Request) {
	h.bills(w, r, usecase.RoleReceivable)
}

// BillwisePayables reports payables bill by bill.
func (h *OutstandingHandler) BillwisePayables(w http.ResponseWriter, r *http.Request) {
	h.bills(w, r, usecase.RolePayable)
}

func outstandingInput(r *http.Request, role usecase.PartyRole) (usecase.OutstandingInput, error) {
	input := usecase.OutstandingInput{
		Role:    role,
		PartyID: r.URL.Query().Get("partyId"),
	}

	asOf, ok, err := parseDateQuery(r, "asOf")
	if err != nil {
		return input, err
	}
	if ok {
		input.AsOf = asOf
	} else {
		input.AsOf = time.Now().UTC()
	}

	return input, nil
}

func (h *OutstandingHandler) parties(w http.ResponseWriter, r *http.Request, role usecase.PartyRole) {
	input, err := outstandingInput(r, role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asOf", err.Error())
		return
	}

	result, err := h.outstandingUC.Parties(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build outstanding report", err.Error())
		return
	}

	filtered := filterParties(result.Parties, r, groupParam(role))
	sortParties(filtered, r.URL.Query().Get("sortBy"), r.URL.Query().Get("sortOrder"))
	filtered = pageParties(filtered, parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))

	writeJSON(w, http.StatusOK, dto.PartyResultFromUseCase(&usecase.PartyResult{
		Parties: filtered,
		Summary: summarizeParties(filtered),
	}))
}

// groupParam names the ledger-group query filter for the role:
// receivables filter customers, payables filter suppliers.
func groupParam(role usecase.PartyRole) string {
	if role == usecase.RolePayable {
		return "supplierGroup"
	}

	return "customerGroup"
}

func (h *OutstandingHandler) bills(w http.ResponseWriter, r *http.Request, role usecase.PartyRole) {
	input, err := outstandingInput(r, role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asOf", err.Error())
		return
	}

	result, err := h.outstandingUC.Bills(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build billwise report", err.Error())
		return
	}

	filtered := filterBills(result.Bills, r)
	sortBills(filtered, r.URL.Query().Get("sortBy"), r.URL.Query().Get("sortOrder"))
	filtered = pageBills(filtered, parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))

	writeJSON(w, http.StatusOK, dto.BillResultFromUseCase(&usecase.BillResult{
		Bills:   filtered,
		Summary: summarizeBills(filtered),
	}))
}

// filterParties applies the searchTerm, ledger-group, and risk-category
// query filters.
func filterParties(parties []usecase.PartyOutstanding, r *http.Request, groupKey string) []usecase.PartyOutstanding {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("searchTerm")))
	risk := strings.TrimSpace(r.URL.Query().Get("riskCategory"))
	group := strings.TrimSpace(r.URL.Query().Get(groupKey))

	filtered := make([]usecase.PartyOutstanding, 0, len(parties))
	for _, p := range parties {
		if search != "" && !strings.Contains(strings.ToLower(p.PartyName), search) {
			continue
		}
		if risk != "" && !strings.EqualFold(string(p.Risk), risk) {
			continue
		}
		if group != "" && !strings.EqualFold(p.GroupName, group) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// sortParties reorders the report in place. The default ordering from
// the use case (risk desc, outstanding desc) is kept when sortBy is
// absent or unrecognized.
func sortParties(parties []usecase.PartyOutstanding, sortBy, sortOrder string) {
	var less func(a, b usecase.PartyOutstanding) bool

	switch strings.ToLower(sortBy) {
	case "amount", "outstanding":
		less = func(a, b usecase.PartyOutstanding) bool { return a.Outstanding.LessThan(b.Outstanding) }
	case "overdue":
		less = func(a, b usecase.PartyOutstanding) bool { return a.OverdueAmount.LessThan(b.OverdueAmount) }
	case "customer", "name":
		less = func(a, b usecase.PartyOutstanding) bool { return a.PartyName < b.PartyName }
	case "risk":
		less = func(a, b usecase.PartyOutstanding) bool { return a.Risk.Rank() < b.Risk.Rank() }
	default:
		return
	}

	desc := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(parties, func(i, j int) bool {
		if desc {
			return less(parties[j], parties[i])
		}
		return less(parties[i], parties[j])
	})
}

func pageParties(parties []usecase.PartyOutstanding, limit, offset int) []usecase.PartyOutstanding {
	if offset > 0 {
		if offset >= len(parties) {
			return []usecase.PartyOutstanding{}
		}
		parties = parties[offset:]
	}

	if limit > 0 && limit < len(parties) {
		parties = parties[:limit]
	}

	return parties
}

// filterBills applies the searchTerm, ageing-bucket, and risk-category
// query filters to a billwise report.
func filterBills(bills []usecase.BillOutstanding, r *http.Request) []usecase.BillOutstanding {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("searchTerm")))
	risk := strings.TrimSpace(r.URL.Query().Get("riskCategory"))
	bucket := strings.TrimSpace(r.URL.Query().Get("ageingBucket"))

	filtered := make([]usecase.BillOutstanding, 0, len(bills))
	for _, b := range bills {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.PartyName), search) &&
			!strings.Contains(strings.ToLower(b.VoucherNumber), search) {
			continue
		}
		if risk != "" && !strings.EqualFold(string(b.Risk), risk) {
			continue
		}
		if bucket != "" && string(b.Bucket) != bucket {
			continue
		}
		filtered = append(filtered, b)
	}

	return filtered
}

// sortBills reorders the billwise report in place. The default ordering
// from the use case (overdue days desc, outstanding desc) is kept when
// sortBy is absent or unrecognized.
func sortBills(bills []usecase.BillOutstanding, sortBy, sortOrder string) {
	var less func(a, b usecase.BillOutstanding) bool

	switch strings.ToLower(sortBy) {
	case "amount", "outstanding":
		less = func(a, b usecase.BillOutstanding) bool { return a.Outstanding.LessThan(b.Outstanding) }
	case "overdue":
		less = func(a, b usecase.BillOutstanding) bool { return a.OverdueDays < b.OverdueDays }
	case "customer", "name":
		less = func(a, b usecase.BillOutstanding) bool { return a.PartyName < b.PartyName }
	case "date":
		less = func(a, b usecase.BillOutstanding) bool { return a.BillDate.Before(b.BillDate) }
	default:
		return
	}

	desc := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(bills, func(i, j int) bool {
		if desc {
			return less(bills[j], bills[i])
		}
		return less(bills[i], bills[j])
	})
}

func pageBills(bills []usecase.BillOutstanding, limit, offset int) []usecase.BillOutstanding {
	if offset > 0 {
		if offset >= len(bills) {
			return []usecase.BillOutstanding{}
		}
		bills = bills[offset:]
	}

	if limit > 0 && limit < len(bills) {
		bills = bills[:limit]
	}

	return bills
}

// summarizeBills recomputes bucket and risk totals over the filtered
// page, mirroring summarizeParties.
func summarizeBills(bills []usecase.BillOutstanding) usecase.BillSummary {
	summary := usecase.BillSummary{
		BillCount: len(bills),
		ByBucket: map[domain.AgeingBucket]decimal.Decimal{
			domain.Bucket0To30:  decimal.Zero,
			domain.Bucket31To60: decimal.Zero,
			domain.Bucket61To90: decimal.Zero,
			domain.BucketOver90: decimal.Zero,
		},
		ByRisk: make(map[domain.RiskCategory]int),
	}

	for _, b := range bills {
		summary.TotalOutstanding = summary.TotalOutstanding.Add(b.Outstanding)
		summary.ByBucket[b.Bucket] = summary.ByBucket[b.Bucket].Add(b.Outstanding)
		summary.ByRisk[b.Risk]++
	}

	return summary
}

// summarizeParties recomputes summary totals over the filtered page so
// the summary always describes what the caller actually received.
func summarizeParties(parties []usecase.PartyOutstanding) usecase.PartySummary {
	summary := usecase.PartySummary{
		PartyCount: len(parties),
		ByRisk:     make(map[domain.RiskCategory]int),
	}

	for _, p := range parties {
		summary.TotalOutstanding = summary.TotalOutstanding.Add(p.Outstanding)
		summary.TotalOverdue = summary.TotalOverdue.Add(p.OverdueAmount)
		summary.ByRisk[p.Risk]++
	}

	return summary
}
