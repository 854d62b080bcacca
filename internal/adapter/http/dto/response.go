package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

func dateString(t time.Time) string {
	return t.Format(dateLayout)
}

func dateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateString(*t)
	return &s
}

// VoucherEntryResponse represents a ledger line in API responses.
type VoucherEntryResponse struct {
	ID           string          `json:"id"`
	LedgerID     string          `json:"ledgerId"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Narration    string          `json:"narration,omitempty"`
	BankName     string          `json:"bankName,omitempty"`
	ChequeNumber string          `json:"chequeNumber,omitempty"`
	CostCentreID *string         `json:"costCentreId,omitempty"`
}

// VoucherItemResponse represents an item line in API responses.
type VoucherItemResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"itemId"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
	CGSTRate    decimal.Decimal `json:"cgstRate"`
	SGSTRate    decimal.Decimal `json:"sgstRate"`
	IGSTRate    decimal.Decimal `json:"igstRate"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	GodownID    *string         `json:"godownId,omitempty"`
	BatchNumber string          `json:"batchNumber,omitempty"`
}

// DispatchResponse carries delivery metadata in API responses.
type DispatchResponse struct {
	DocNo       string `json:"docNo"`
	Through     string `json:"through"`
	Destination string `json:"destination"`
}

// TotalsResponse carries invoice-level GST totals in API responses.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	IGST     decimal.Decimal `json:"igst"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// VoucherResponse represents a voucher in API responses.
type VoucherResponse struct {
	ID                  string                 `json:"id"`
	Type                string                 `json:"type"`
	Number              string                 `json:"number"`
	Date                string                 `json:"date"`
	DueDate             *string                `json:"dueDate,omitempty"`
	SupplierInvoiceDate *string                `json:"supplierInvoiceDate,omitempty"`
	Narration           string                 `json:"narration,omitempty"`
	ReferenceNo         string                 `json:"referenceNo,omitempty"`
	PartyLedgerID       *string                `json:"partyLedgerId,omitempty"`
	Dispatch            *DispatchResponse      `json:"dispatch,omitempty"`
	Totals              *TotalsResponse        `json:"totals,omitempty"`
	Entries             []VoucherEntryResponse `json:"entries"`
	Items               []VoucherItemResponse  `json:"items"`
	CreatedAt           time.Time              `json:"createdAt"`
}

// VoucherFromDomain converts a domain voucher to a response.
func VoucherFromDomain(v *domain.Voucher) *VoucherResponse {
	resp := &VoucherResponse{
		ID:                  v.ID,
		Type:                string(v.Kind),
		Number:              v.Number,
		Date:                dateString(v.Date),
		DueDate:             dateStringPtr(v.DueDate),
		SupplierInvoiceDate: dateStringPtr(v.SupplierInvoiceDate),
		Narration:           v.Narration,
		ReferenceNo:         v.ReferenceNo,
		PartyLedgerID:       v.PartyLedgerID,
		Entries:             make([]VoucherEntryResponse, 0, len(v.LedgerLines)),
		Items:               make([]VoucherItemResponse, 0, len(v.ItemLines)),
		CreatedAt:           v.CreatedAt,
	}

	if v.Dispatch != nil {
		resp.Dispatch = &DispatchResponse{
			DocNo:       v.Dispatch.DocNo,
			Through:     v.Dispatch.Through,
			Destination: v.Dispatch.Destination,
		}
	}

	if v.Totals != nil {
		resp.Totals = &TotalsResponse{
			Subtotal: v.Totals.Subtotal,
			CGST:     v.Totals.CGST,
			SGST:     v.Totals.SGST,
			IGST:     v.Totals.IGST,
			Discount: v.Totals.Discount,
			Total:    v.Totals.Total,
		}
	}

	for _, l := range v.LedgerLines {
		resp.Entries = append(resp.Entries, VoucherEntryResponse{
			ID:           l.ID,
			LedgerID:     l.LedgerID,
			Amount:       l.Amount,
			Type:         string(l.Side),
			Narration:    l.Narration,
			BankName:     l.BankName,
			ChequeNumber: l.ChequeNumber,
			CostCentreID: l.CostCentreID,
		})
	}

	for _, il := range v.ItemLines {
		resp.Items = append(resp.Items, VoucherItemResponse{
			ID:          il.ID,
			ItemID:      il.ItemID,
			Quantity:    il.Quantity,
			Rate:        il.Rate,
			Discount:    il.Discount,
			CGSTRate:    il.CGSTRate,
			SGSTRate:    il.SGSTRate,
			IGSTRate:    il.IGSTRate,
			Amount:      il.Amount,
			Type:        string(il.Side),
			GodownID:    il.GodownID,
			BatchNumber: il.BatchNumber,
		})
	}

	return resp
}

// VouchersFromDomain converts domain vouchers to responses.
func VouchersFromDomain(vouchers []*domain.Voucher) []*VoucherResponse {
	result := make([]*VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		result[i] = VoucherFromDomain(v)
	}
	return result
}

// DaybookRowResponse represents one voucher in the daybook.
type DaybookRowResponse struct {
	VoucherID     string          `json:"voucherId"`
	Type          string          `json:"type"`
	VoucherNumber string          `json:"voucherNumber"`
	Date          string          `json:"date"`
	Narration     string          `json:"narration,omitempty"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	EntryCount    int             `json:"entryCount"`
}

// DaybookFromUseCase converts daybook rows to responses.
func DaybookFromUseCase(rows []*usecase.DaybookRow) []DaybookRowResponse {
	result := make([]DaybookRowResponse, len(rows))
	for i, row := range rows {
		result[i] = DaybookRowResponse{
			VoucherID:     row.VoucherID,
			Type:          string(row.Kind),
			VoucherNumber: row.VoucherNumber,
			Date:          dateString(row.Date),
			Narration:     row.Narration,
			TotalDebit:    row.TotalDebit,
			TotalCredit:   row.TotalCredit,
			EntryCount:    row.EntryCount,
		}
	}
	return result
}

// LedgerResponse represents a ledger in API responses.
type LedgerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	GroupID        string          `json:"groupId"`
	GroupName      string          `json:"groupName"`
	GroupType      string          `json:"groupType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	BalanceType    string          `json:"balanceType"`
	Address        string          `json:"address,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	GSTNumber      string          `json:"gstNumber,omitempty"`
	PANNumber      string          `json:"panNumber,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LedgerFromDomain converts a domain ledger to a response.
func LedgerFromDomain(l *domain.Ledger) *LedgerResponse {
	return &LedgerResponse{
		ID:             l.ID,
		Name:           l.Name,
		GroupID:        l.GroupID,
		GroupName:      l.GroupName,
		GroupType:      string(l.GroupType),
		OpeningBalance: l.OpeningBalance,
		BalanceType:    string(l.BalanceType),
		Address:        l.Address,
		Phone:          l.Phone,
		Email:          l.Email,
		GSTNumber:      l.GSTNumber,
		PANNumber:      l.PANNumber,
		CreatedAt:      l.CreatedAt,
	}
}

// LedgersFromDomain converts domain ledgers to responses.
func LedgersFromDomain(ledgers []*domain.Ledger) []*LedgerResponse {
	result := make([]*LedgerResponse, len(ledgers))
	for i, l := range ledgers {
		result[i] = LedgerFromDomain(l)
	}
	return result
}

// LedgerOptionResponse is a dropdown entry.
type LedgerOptionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GroupName string `json:"groupName"`
	GroupType string `json:"groupType"`
}

// LedgerOptionsFromUseCase converts dropdown options to responses.
func LedgerOptionsFromUseCase(options []usecase.LedgerOption) []LedgerOptionResponse {
	result := make([]LedgerOptionResponse, len(options))
	for i, o := range options {
		result[i] = LedgerOptionResponse{
			ID:        o.ID,
			Name:      o.Name,
			GroupName: o.GroupName,
			GroupType: string(o.GroupType),
		}
	}
	return result
}

// LedgerGroupResponse represents a ledger group in API responses.
type LedgerGroupResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
	Type     string  `json:"type"`
}

// LedgerGroupsFromDomain converts domain groups to responses.
func LedgerGroupsFromDomain(groups []*domain.LedgerGroup) []LedgerGroupResponse {
	result := make([]LedgerGroupResponse, len(groups))
	for i, g := range groups {
		result[i] = LedgerGroupResponse{
			ID:       g.ID,
			Name:     g.Name,
			ParentID: g.ParentID,
			Type:     string(g.Type),
		}
	}
	return result
}

// StockItemResponse represents a stock item in API responses.
type StockItemResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	StockGroupID         string          `json:"stockGroupId"`
	Unit                 string          `json:"unit"`
	OpeningQty           decimal.Decimal `json:"openingQty"`
	OpeningValue         decimal.Decimal `json:"openingValue"`
	HSNCode              string          `json:"hsnCode,omitempty"`
	GSTRate              decimal.Decimal `json:"gstRate"`
	StandardPurchaseRate decimal.Decimal `json:"standardPurchaseRate"`
	StandardSaleRate     decimal.Decimal `json:"standardSaleRate"`
	BatchTracking        bool            `json:"batchTracking"`
	BatchNumber          string          `json:"batchNumber,omitempty"`
	BatchExpiryDate      *string         `json:"batchExpiryDate,omitempty"`
	BatchMfgDate         *string         `json:"batchMfgDate,omitempty"`
}

// StockItemFromDomain converts a domain stock item to a response.
func StockItemFromDomain(i *domain.StockItem) *StockItemResponse {
	return &StockItemResponse{
		ID:                   i.ID,
		Name:                 i.Name,
		StockGroupID:         i.StockGroupID,
		Unit:                 i.Unit,
		OpeningQty:           i.OpeningQty,
		OpeningValue:         i.OpeningValue,
		HSNCode:              i.HSNCode,
		GSTRate:              i.GSTRate,
		StandardPurchaseRate: i.StandardPurchaseRate,
		StandardSaleRate:     i.StandardSaleRate,
		BatchTracking:        i.BatchTracking,
		BatchNumber:          i.BatchNumber,
		BatchExpiryDate:      dateStringPtr(i.BatchExpiryDate),
		BatchMfgDate:         dateStringPtr(i.BatchMfgDate),
	}
}

// StockItemsFromDomain converts domain stock items to responses.
func StockItemsFromDomain(items []*domain.StockItem) []*StockItemResponse {
	result := make([]*StockItemResponse, len(items))
	for i, item := range items {
		result[i] = StockItemFromDomain(item)
	}
	return result
}

// ReportRowResponse is one running-balance row of a ledger statement.
type ReportRowResponse struct {
	ID          string          `json:"id,omitempty"`
	Date        string          `json:"date"`
	Particulars string          `json:"particulars"`
	VoucherType string          `json:"voucherType,omitempty"`
	VoucherNo   string          `json:"voucherNo,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Narration   string          `json:"narration,omitempty"`
	ChequeNo    string          `json:"chequeNo,omitempty"`
	BankName    string          `json:"bankName,omitempty"`
	IsOpening   bool            `json:"isOpening,omitempty"`
	IsClosing   bool            `json:"isClosing,omitempty"`
}

// ReportSummaryResponse totals a ledger statement.
type ReportSummaryResponse struct {
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TransactionCount int             `json:"transactionCount"`
}

// LedgerReportResponse is a full ledger statement.
type LedgerReportResponse struct {
	LedgerID    string                `json:"ledgerId"`
	LedgerName  string                `json:"ledgerName"`
	GroupName   string                `json:"groupName"`
	BalanceType string                `json:"balanceType"`
	Rows        []ReportRowResponse   `json:"rows"`
	Summary     ReportSummaryResponse `json:"summary"`
}

// LedgerReportFromUseCase converts a ledger report to a response.
func LedgerReportFromUseCase(report *usecase.LedgerReport) *LedgerReportResponse {
	resp := &LedgerReportResponse{
		LedgerID:    report.Ledger.ID,
		LedgerName:  report.Ledger.Name,
		GroupName:   report.Ledger.GroupName,
		BalanceType: string(report.Ledger.BalanceType),
		Rows:        make([]ReportRowResponse, len(report.Rows)),
		Summary: ReportSummaryResponse{
			OpeningBalance:   report.Summary.OpeningBalance,
			ClosingBalance:   report.Summary.ClosingBalance,
			TotalDebit:       report.Summary.TotalDebit,
			TotalCredit:      report.Summary.TotalCredit,
			TransactionCount: report.Summary.TransactionCount,
		},
	}

	for i, row := range report.Rows {
		resp.Rows[i] = ReportRowResponse{
			ID:          row.ID,
			Date:        dateString(row.Date),
			Particulars: row.Particulars,
			VoucherType: row.VoucherType,
			VoucherNo:   row.VoucherNo,
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
			Narration:   row.Narration,
			ChequeNo:    row.ChequeNo,
			BankName:    row.BankName,
			IsOpening:   row.IsOpening,
			IsClosing:   row.IsClosing,
		}
	}

	return resp
}

// TrialBalanceRowResponse is one ledger row of the trial balance.
type TrialBalanceRowResponse struct {
	LedgerID   string          `json:"ledgerId"`
	LedgerName string          `json:"ledgerName"`
	GroupName  string          `json:"groupName"`
	GroupType  string          `json:"groupType"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the full trial balance.
type TrialBalanceResponse struct {
	Basis       string                    `json:"basis"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
	Balanced    bool                      `json:"balanced"`
}

// TrialBalanceFromUseCase converts a trial balance to a response.
func TrialBalanceFromUseCase(tb *usecase.TrialBalance) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		Basis:       string(tb.Basis),
		Rows:        make([]TrialBalanceRowResponse, len(tb.Rows)),
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		Balanced:    tb.Balanced,
	}

	for i, row := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			LedgerID:   row.LedgerID,
			LedgerName: row.LedgerName,
			GroupName:  row.GroupName,
			GroupType:  string(row.GroupType),
			Debit:      row.Debit,
			Credit:     row.Credit,
		}
	}

	return resp
}

// StatementLineResponse is one ledger line of a financial statement.
type StatementLineResponse struct {
	LedgerID   string          `json:"ledgerId"`
	LedgerName string          `json:"ledgerName"`
	GroupName  string          `json:"groupName"`
	Amount     decimal.Decimal `json:"amount"`
}

func statementLines(lines []usecase.StatementLine) []StatementLineResponse {
	result := make([]StatementLineResponse, len(lines))
	for i, l := range lines {
		result[i] = StatementLineResponse{
			LedgerID:   l.LedgerID,
			LedgerName: l.LedgerName,
			GroupName:  l.GroupName,
			Amount:     l.Amount,
		}
	}
	return result
}

// ProfitAndLossResponse is the profit and loss statement.
type ProfitAndLossResponse struct {
	Income       []StatementLineResponse `json:"income"`
	Expenses     []StatementLineResponse `json:"expenses"`
	TotalIncome  decimal.Decimal         `json:"totalIncome"`
	TotalExpense decimal.Decimal         `json:"totalExpense"`
	NetProfit    decimal.Decimal         `json:"netProfit"`
}

// ProfitAndLossFromUseCase converts a P&L statement to a response.
func ProfitAndLossFromUseCase(pl *usecase.ProfitAndLoss) *ProfitAndLossResponse {
	return &ProfitAndLossResponse{
		Income:       statementLines(pl.Income),
		Expenses:     statementLines(pl.Expenses),
		TotalIncome:  pl.TotalIncome,
		TotalExpense: pl.TotalExpense,
		NetProfit:    pl.NetProfit,
	}
}

// BalanceSheetResponse is the balance sheet.
type BalanceSheetResponse struct {
	Assets           []StatementLineResponse `json:"assets"`
	Liabilities      []StatementLineResponse `json:"liabilities"`
	Capital          []StatementLineResponse `json:"capital"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalCapital     decimal.Decimal         `json:"totalCapital"`
	NetProfit        decimal.Decimal         `json:"netProfit"`
}

// BalanceSheetFromUseCase converts a balance sheet to a response.
func BalanceSheetFromUseCase(bs *usecase.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		Assets:           statementLines(bs.Assets),
		Liabilities:      statementLines(bs.Liabilities),
		Capital:          statementLines(bs.Capital),
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalCapital:     bs.TotalCapital,
		NetProfit:        bs.NetProfit,
	}
}

// PartyOutstandingResponse is one party row of an outstanding report.
type PartyOutstandingResponse struct {
	PartyID         string                     `json:"partyId"`
	PartyName       string                     `json:"partyName"`
	GroupName       string                     `json:"groupName,omitempty"`
	GSTNumber       string                     `json:"gstNumber,omitempty"`
	Phone           string                     `json:"phone,omitempty"`
	Email           string                     `json:"email,omitempty"`
	TotalBilled     decimal.Decimal            `json:"totalBilled"`
	TotalSettled    decimal.Decimal            `json:"totalSettled"`
	Outstanding     decimal.Decimal            `json:"outstanding"`
	OverdueAmount   decimal.Decimal            `json:"overdueAmount"`
	BillCount       int                        `json:"billCount"`
	OldestBillDate  *string                    `json:"oldestBillDate,omitempty"`
	LastSettlement  *string                    `json:"lastSettlement,omitempty"`
	RiskCategory    string                     `json:"riskCategory"`
	AgeingBreakdown map[string]decimal.Decimal `json:"ageingBreakdown"`
}

// PartySummaryResponse totals an outstanding report.
type PartySummaryResponse struct {
	PartyCount       int             `json:"partyCount"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalOverdue     decimal.Decimal `json:"totalOverdue"`
	ByRisk           map[string]int  `json:"byRisk"`
}

// PartyResultResponse is the full per-party outstanding report.
type PartyResultResponse struct {
	Parties []PartyOutstandingResponse `json:"parties"`
	Summary PartySummaryResponse       `json:"summary"`
}

// PartyResultFromUseCase converts a party outstanding report to a response.
func PartyResultFromUseCase(result *usecase.PartyResult) *PartyResultResponse {
	resp := &PartyResultResponse{
		Parties: make([]PartyOutstandingResponse, len(result.Parties)),
		Summary: PartySummaryResponse{
			PartyCount:       result.Summary.PartyCount,
			TotalOutstanding: result.Summary.TotalOutstanding,
			TotalOverdue:     result.Summary.TotalOverdue,
			ByRisk:           make(map[string]int, len(result.Summary.ByRisk)),
		},
	}

	for risk, count := range result.Summary.ByRisk {
		resp.Summary.ByRisk[string(risk)] = count
	}

	for i, p := range result.Parties {
		breakdown := make(map[string]decimal.Decimal, len(p.AgeingBreakdown))
		for bucket, amount := range p.AgeingBreakdown {
			breakdown[string(bucket)] = amount
		}

		resp.Parties[i] = PartyOutstandingResponse{
			PartyID:         p.PartyID,
			PartyName:       p.PartyName,
			GroupName:       p.GroupName,
			GSTNumber:       p.GSTNumber,
			Phone:           p.Phone,
			Email:           p.Email,
			TotalBilled:     p.TotalBilled,
			TotalSettled:    p.TotalSettled,
			Outstanding:     p.Outstanding,
			OverdueAmount:   p.OverdueAmount,
			BillCount:       p.BillCount,
			OldestBillDate:  dateStringPtr(p.OldestBillDate),
			LastSettlement:  dateStringPtr(p.LastSettlement),
			RiskCategory:    string(p.Risk),
			AgeingBreakdown: breakdown,
		}
	}

	return resp
}

// BillOutstandingResponse is one bill row of a billwise report.
type BillOutstandingResponse struct {
	VoucherID     string          `json:"voucherId"`
	VoucherNumber string          `json:"voucherNumber"`
	PartyID       string          `json:"partyId"`
	PartyName     string          `json:"partyName"`
	BillDate      string          `json:"billDate"`
	DueDate       string          `json:"dueDate"`
	ReferenceNo   string          `json:"referenceNo,omitempty"`
	BillAmount    decimal.Decimal `json:"billAmount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	OverdueDays   int             `json:"overdueDays"`
	AgeingBucket  string          `json:"ageingBucket"`
	RiskCategory  string          `json:"riskCategory"`
}

// BillSummaryResponse totals a billwise report.
type BillSummaryResponse struct {
	BillCount        int                        `json:"billCount"`
	TotalOutstanding decimal.Decimal            `json:"totalOutstanding"`
	ByBucket         map[string]decimal.Decimal `json:"byBucket"`
	ByRisk           map[string]int             `json:"byRisk"`
}

// BillResultResponse is the full billwise outstanding report.
type BillResultResponse struct {
	Bills   []BillOutstandingResponse `json:"bills"`
	Summary BillSummaryResponse       `json:"summary"`
}

// BillResultFromUseCase converts a billwise report to a response.
func BillResultFromUseCase(result *usecase.BillResult) *BillResultResponse {
	resp := &BillResultResponse{
		Bills: make([]BillOutstandingResponse, len(result.Bills)),
		Summary: BillSummaryResponse{
			BillCount:        result.Summary.BillCount,
			TotalOutstanding: result.Summary.TotalOutstanding,
			ByBucket:         make(map[string]decimal.Decimal, len(result.Summary.ByBucket)),
			ByRisk:           make(map[string]int, len(result.Summary.ByRisk)),
		},
	}

	for bucket, amount := range result.Summary.ByBucket {
		resp.Summary.ByBucket[string(bucket)] = amount
	}
	for risk, count := range result.Summary.ByRisk {
		resp.Summary.ByRisk[string(risk)] = count
	}

	for i, b := range result.Bills {
		resp.Bills[i] = BillOutstandingResponse{
			VoucherID:     b.VoucherID,
			VoucherNumber: b.VoucherNumber,
			PartyID:       b.PartyID,
			PartyName:     b.PartyName,
			BillDate:      dateString(b.BillDate),
			DueDate:       dateString(b.DueDate),
			ReferenceNo:   b.ReferenceNo,
			BillAmount:    b.BillAmount,
			Outstanding:   b.Outstanding,
			OverdueDays:   b.OverdueDays,
			AgeingBucket:  string(b.Bucket),
			RiskCategory:  string(b.Risk),
		}
	}

	return resp
}

// CashFlowMonthResponse is one month of the cash flow statement.
type CashFlowMonthResponse struct {
	MonthCode string          `json:"monthCode"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
	NetFlow   decimal.Decimal `json:"netFlow"`
}

// CashFlowResponse is the yearly cash flow statement.
type CashFlowResponse struct {
	FinancialYear string                  `json:"financialYear"`
	Months        []CashFlowMonthResponse `json:"months"`
	TotalInflow   decimal.Decimal         `json:"totalInflow"`
	TotalOutflow  decimal.Decimal         `json:"totalOutflow"`
	NetFlow       decimal.Decimal         `json:"netFlow"`
}

// CashFlowFromUseCase converts a cash flow statement to a response.
func CashFlowFromUseCase(stmt *usecase.CashFlowStatement) *CashFlowResponse {
	resp := &CashFlowResponse{
		FinancialYear: stmt.FinancialYear,
		Months:        make([]CashFlowMonthResponse, len(stmt.Months)),
		TotalInflow:   stmt.TotalInflow,
		TotalOutflow:  stmt.TotalOutflow,
		NetFlow:       stmt.NetFlow,
	}

	for i, m := range stmt.Months {
		resp.Months[i] = CashFlowMonthResponse{
			MonthCode: m.MonthCode,
			Month:     int(m.Month),
			Year:      m.Year,
			Inflow:    m.Inflow,
			Outflow:   m.Outflow,
			NetFlow:   m.Net,
		}
	}

	return resp
}

// NamedAmountResponse is a name/amount pair.
type NamedAmountResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func namedAmounts(rows []usecase.NamedAmount) []NamedAmountResponse {
	result := make([]NamedAmountResponse, len(rows))
	for i, row := range rows {
		result[i] = NamedAmountResponse{Name: row.Name, Amount: row.Amount}
	}
	return result
}

// CashFlowDetailResponse is a per-ledger breakdown of one month.
type CashFlowDetailResponse struct {
	MonthCode string                `json:"monthCode"`
	Inflows   []NamedAmountResponse `json:"inflows"`
	Outflows  []NamedAmountResponse `json:"outflows"`
	Inflow    decimal.Decimal       `json:"inflow"`
	Outflow   decimal.Decimal       `json:"outflow"`
	NetFlow   decimal.Decimal       `json:"netFlow"`
}

// CashFlowDetailFromUseCase converts a month detail to a response.
func CashFlowDetailFromUseCase(detail *usecase.CashFlowDetail) *CashFlowDetailResponse {
	return &CashFlowDetailResponse{
		MonthCode: detail.MonthCode,
		Inflows:   namedAmounts(detail.Inflows),
		Outflows:  namedAmounts(detail.Outflows),
		Inflow:    detail.Inflow,
		Outflow:   detail.Outflow,
		NetFlow:   detail.Net,
	}
}

// StockSummaryRowResponse is one item row of the stock summary.
type StockSummaryRowResponse struct {
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	Unit         string          `json:"unit"`
	HSNCode      string          `json:"hsnCode,omitempty"`
	OpeningQty   decimal.Decimal `json:"openingQty"`
	InwardQty    decimal.Decimal `json:"inwardQty"`
	OutwardQty   decimal.Decimal `json:"outwardQty"`
	ClosingQty   decimal.Decimal `json:"closingQty"`
	ClosingRate  decimal.Decimal `json:"closingRate"`
	ClosingValue decimal.Decimal `json:"closingValue"`
}

// StockSummaryResponse is the full stock summary.
type StockSummaryResponse struct {
	Basis        string                    `json:"basis"`
	Rows         []StockSummaryRowResponse `json:"rows"`
	TotalClosing decimal.Decimal           `json:"totalClosing"`
	TotalValue   decimal.Decimal           `json:"totalValue"`
}

// StockSummaryFromUseCase converts a stock summary to a response.
func StockSummaryFromUseCase(summary *usecase.StockSummary) *StockSummaryResponse {
	resp := &StockSummaryResponse{
		Basis:        string(summary.Basis),
		Rows:         make([]StockSummaryRowResponse, len(summary.Rows)),
		TotalClosing: summary.TotalClosing,
		TotalValue:   summary.TotalValue,
	}

	for i, row := range summary.Rows {
		resp.Rows[i] = StockSummaryRowResponse{
			ItemID:       row.ItemID,
			ItemName:     row.ItemName,
			Unit:         row.Unit,
			HSNCode:      row.HSNCode,
			OpeningQty:   row.OpeningQty,
			InwardQty:    row.InwardQty,
			OutwardQty:   row.OutwardQty,
			ClosingQty:   row.ClosingQty,
			ClosingRate:  row.ClosingRate,
			ClosingValue: row.ClosingValue,
		}
	}

	return resp
}

// MovementRowResponse is one row of an item's movement analysis.
type MovementRowResponse struct {
	Date          string          `json:"date"`
	VoucherType   string          `json:"voucherType"`
	VoucherNumber string          `json:"voucherNumber"`
	InwardQty     decimal.Decimal `json:"inwardQty"`
	OutwardQty    decimal.Decimal `json:"outwardQty"`
	Rate          decimal.Decimal `json:"rate"`
	Amount        decimal.Decimal `json:"amount"`
	RunningQty    decimal.Decimal `json:"runningQty"`
}

// ItemMovementsResponse is the movement analysis for one item.
type ItemMovementsResponse struct {
	ItemID     string                `json:"itemId"`
	OpeningQty decimal.Decimal       `json:"openingQty"`
	Rows       []MovementRowResponse `json:"rows"`
	ClosingQty decimal.Decimal       `json:"closingQty"`
}

// ItemMovementsFromUseCase converts a movement analysis to a response.
func ItemMovementsFromUseCase(m *usecase.ItemMovements) *ItemMovementsResponse {
	resp := &ItemMovementsResponse{
		ItemID:     m.ItemID,
		OpeningQty: m.OpeningQty,
		Rows:       make([]MovementRowResponse, len(m.Rows)),
		ClosingQty: m.ClosingQty,
	}

	for i, row := range m.Rows {
		resp.Rows[i] = MovementRowResponse{
			Date:          dateString(row.Date),
			VoucherType:   row.VoucherType,
			VoucherNumber: row.VoucherNumber,
			InwardQty:     row.InwardQty,
			OutwardQty:    row.OutwardQty,
			Rate:          row.Rate,
			Amount:        row.Amount,
			RunningQty:    row.RunningQty,
		}
	}

	return resp
}

// StockAgeRowResponse is one item row of the stock ageing analysis.
type StockAgeRowResponse struct {
	ItemID      string  `json:"itemId"`
	ItemName    string  `json:"itemName"`
	Unit        string  `json:"unit"`
	LastMovedAt *string `json:"lastMovedAt,omitempty"`
	AgeDays     int     `json:"ageDays"`
	Bucket      string  `json:"bucket"`
}

// StockAgeingResponse is the full stock ageing analysis.
type StockAgeingResponse struct {
	AsOf    string                `json:"asOf"`
	Rows    []StockAgeRowResponse `json:"rows"`
	Buckets map[string]int        `json:"buckets"`
}

// StockAgeingFromUseCase converts a stock ageing analysis to a response.
func StockAgeingFromUseCase(ageing *usecase.StockAgeing) *StockAgeingResponse {
	resp := &StockAgeingResponse{
		AsOf:    dateString(ageing.AsOf),
		Rows:    make([]StockAgeRowResponse, len(ageing.Rows)),
		Buckets: ageing.Buckets,
	}

	for i, row := range ageing.Rows {
		resp.Rows[i] = StockAgeRowResponse{
			ItemID:      row.ItemID,
			ItemName:    row.ItemName,
			Unit:        row.Unit,
			LastMovedAt: dateStringPtr(row.LastMovedAt),
			AgeDays:     row.AgeDays,
			Bucket:      row.Bucket,
		}
	}

	return resp
}

// GodownStockRowResponse is one item row of a godown summary.
type GodownStockRowResponse struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// GodownStockResponse is the stock position of one godown.
type GodownStockResponse struct {
	GodownID   string                   `json:"godownId"`
	GodownName string                   `json:"godownName"`
	Rows       []GodownStockRowResponse `json:"rows"`
	TotalQty   decimal.Decimal          `json:"totalQty"`
	TotalValue decimal.Decimal          `json:"totalValue"`
}

// GodownStocksFromUseCase converts godown summaries to responses.
func GodownStocksFromUseCase(godowns []*usecase.GodownStock) []*GodownStockResponse {
	result := make([]*GodownStockResponse, len(godowns))
	for i, g := range godowns {
		rows := make([]GodownStockRowResponse, len(g.Rows))
		for j, row := range g.Rows {
			rows[j] = GodownStockRowResponse{
				ItemID:   row.ItemID,
				ItemName: row.ItemName,
				Unit:     row.Unit,
				Quantity: row.Quantity,
				Value:    row.Value,
			}
		}

		result[i] = &GodownStockResponse{
			GodownID:   g.GodownID,
			GodownName: g.GodownName,
			Rows:       rows,
			TotalQty:   g.TotalQty,
			TotalValue: g.TotalValue,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
