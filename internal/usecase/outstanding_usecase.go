package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
)

// OutstandingUseCase builds receivable/payable positions from posted
// bills and the settlements recorded against the same parties.
type OutstandingUseCase struct {
	ledgers     LedgerRepository
	outstanding OutstandingRepository
}

// NewOutstandingUseCase creates a new OutstandingUseCase.
func NewOutstandingUseCase(ledgers LedgerRepository, outstanding OutstandingRepository) *OutstandingUseCase {
	return &OutstandingUseCase{ledgers: ledgers, outstanding: outstanding}
}

// PartyOutstanding is the party-level position. AgeingBreakdown splits the
// outstanding into the standard buckets; settlements are aggregated per
// party, so the split places the unsettled current amount in the first
// bucket and anything past due in the last.
type PartyOutstanding struct {
	PartyID         string
	PartyName       string
	GroupName       string
	GSTNumber       string
	Phone           string
	Email           string
	TotalBilled     decimal.Decimal
	TotalSettled    decimal.Decimal
	Outstanding     decimal.Decimal
	OverdueAmount   decimal.Decimal
	BillCount       int
	OldestBillDate  *time.Time
	LastSettlement  *time.Time
	Risk            domain.RiskCategory
	AgeingBreakdown map[domain.AgeingBucket]decimal.Decimal
}

// PartySummary totals a party-level result set.
type PartySummary struct {
	PartyCount       int
	TotalOutstanding decimal.Decimal
	TotalOverdue     decimal.Decimal
	ByRisk           map[domain.RiskCategory]int
}

// PartyResult is the party-level outstanding report.
type PartyResult struct {
	Parties []PartyOutstanding
	Summary PartySummary
}

// BillOutstanding is one open bill with its ageing classification.
type BillOutstanding struct {
	VoucherID     string
	VoucherNumber string
	PartyID       string
	PartyName     string
	BillDate      time.Time
	DueDate       time.Time
	ReferenceNo   string
	BillAmount    decimal.Decimal
	Outstanding   decimal.Decimal
	OverdueDays   int
	Bucket        domain.AgeingBucket
	Risk          domain.RiskCategory
}

// BillSummary totals a bill-wise result set per ageing bucket.
type BillSummary struct {
	BillCount        int
	TotalOutstanding decimal.Decimal
	ByBucket         map[domain.AgeingBucket]decimal.Decimal
	ByRisk           map[domain.RiskCategory]int
}

// BillResult is the bill-wise ageing report.
type BillResult struct {
	Bills   []BillOutstanding
	Summary BillSummary
}

// OutstandingInput selects the role, optional party, and valuation date.
type OutstandingInput struct {
	Role    PartyRole
	PartyID string
	AsOf    time.Time
}

// Parties builds the party-level outstanding report. Settlements are
// netted against the party's billed total oldest-first, so the residue
// is carried by the newest bills.
func (uc *OutstandingUseCase) Parties(ctx context.Context, input OutstandingInput) (*PartyResult, error) {
	bills, settlements, parties, err := uc.load(ctx, input)
	if err != nil {
		return nil, err
	}

	byParty := make(map[string][]*PartyBill)
	for _, b := range bills {
		byParty[b.PartyID] = append(byParty[b.PartyID], b)
	}

	result := &PartyResult{
		Parties: make([]PartyOutstanding, 0, len(byParty)),
		Summary: PartySummary{
			ByRisk: map[domain.RiskCategory]int{},
		},
	}

	for partyID, partyBills := range byParty {
		ledger := parties[partyID]
		if ledger == nil {
			continue
		}

		var billed decimal.Decimal
		var oldest *time.Time
		for _, b := range partyBills {
			billed = billed.Add(b.Amount)
			if oldest == nil || b.Date.Before(*oldest) {
				d := b.Date
				oldest = &d
			}
		}

		var settled decimal.Decimal
		var lastSettlement *time.Time
		if s := settlements[partyID]; s != nil {
			settled = s.Total
			lastSettlement = s.LastDate
		}

		outstanding := billed.Sub(settled)
		if !outstanding.IsPositive() {
			continue
		}

		current, overdue := uc.splitOverdue(partyBills, settled, input.AsOf)

		risk := domain.PartyRiskThresholds.Classify(0, overdue)

		result.Parties = append(result.Parties, PartyOutstanding{
			PartyID:        partyID,
			PartyName:      ledger.Name,
			GroupName:      ledger.GroupName,
			GSTNumber:      ledger.GSTNumber,
			Phone:          ledger.Phone,
			Email:          ledger.Email,
			TotalBilled:    billed,
			TotalSettled:   settled,
			Outstanding:    outstanding,
			OverdueAmount:  overdue,
			BillCount:      len(partyBills),
			OldestBillDate: oldest,
			LastSettlement: lastSettlement,
			Risk:           risk,
			AgeingBreakdown: map[domain.AgeingBucket]decimal.Decimal{
				domain.Bucket0To30:  current,
				domain.Bucket31To60: decimal.Zero,
				domain.Bucket61To90: decimal.Zero,
				domain.BucketOver90: overdue,
			},
		})

		result.Summary.TotalOutstanding = result.Summary.TotalOutstanding.Add(outstanding)
		result.Summary.TotalOverdue = result.Summary.TotalOverdue.Add(overdue)
		result.Summary.ByRisk[risk]++
	}

	result.Summary.PartyCount = len(result.Parties)

	sort.Slice(result.Parties, func(i, j int) bool {
		a, b := result.Parties[i], result.Parties[j]
		if a.Risk != b.Risk {
			return a.Risk.Rank() > b.Risk.Rank()
		}

		return a.Outstanding.GreaterThan(b.Outstanding)
	})

	return result, nil
}

// Bills builds the bill-wise ageing report. Each bill's outstanding is
// its amount minus settlements attributed directly to it; the due date
// falls back to the bill date plus the default credit period.
func (uc *OutstandingUseCase) Bills(ctx context.Context, input OutstandingInput) (*BillResult, error) {
	bills, _, parties, err := uc.load(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &BillResult{
		Bills: make([]BillOutstanding, 0, len(bills)),
		Summary: BillSummary{
			ByBucket: map[domain.AgeingBucket]decimal.Decimal{
				domain.Bucket0To30:  decimal.Zero,
				domain.Bucket31To60: decimal.Zero,
				domain.Bucket61To90: decimal.Zero,
				domain.BucketOver90: decimal.Zero,
			},
			ByRisk: map[domain.RiskCategory]int{},
		},
	}

	for _, b := range bills {
		outstanding := b.Amount.Sub(b.Settled)
		if !outstanding.IsPositive() {
			continue
		}

		dueDate := b.Date.AddDate(0, 0, domain.DefaultCreditPeriodDays)
		if b.DueDate != nil {
			dueDate = *b.DueDate
		}

		overdueDays := domain.OverdueDays(dueDate, input.AsOf)
		bucket := domain.BucketForOverdue(overdueDays)
		risk := domain.BillRiskThresholds.Classify(overdueDays, outstanding)

		partyName := ""
		if ledger := parties[b.PartyID]; ledger != nil {
			partyName = ledger.Name
		}

		result.Bills = append(result.Bills, BillOutstanding{
			VoucherID:     b.VoucherID,
			VoucherNumber: b.VoucherNumber,
			PartyID:       b.PartyID,
			PartyName:     partyName,
			BillDate:      b.Date,
			DueDate:       dueDate,
			ReferenceNo:   b.ReferenceNo,
			BillAmount:    b.Amount,
			Outstanding:   outstanding,
			OverdueDays:   overdueDays,
			Bucket:        bucket,
			Risk:          risk,
		})

		result.Summary.TotalOutstanding = result.Summary.TotalOutstanding.Add(outstanding)
		result.Summary.ByBucket[bucket] = result.Summary.ByBucket[bucket].Add(outstanding)
		result.Summary.ByRisk[risk]++
	}

	result.Summary.BillCount = len(result.Bills)

	sort.Slice(result.Bills, func(i, j int) bool {
		a, b := result.Bills[i], result.Bills[j]
		if a.OverdueDays != b.OverdueDays {
			return a.OverdueDays > b.OverdueDays
		}

		return a.Outstanding.GreaterThan(b.Outstanding)
	})

	return result, nil
}

func (uc *OutstandingUseCase) load(ctx context.Context, input OutstandingInput) ([]*PartyBill, map[string]*PartySettlement, map[string]*domain.Ledger, error) {
	var partyIDs []string
	if input.PartyID != "" {
		partyIDs = []string{input.PartyID}
	}

	bills, err := uc.outstanding.PartyBills(ctx, input.Role, partyIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	settlements, err := uc.outstanding.PartySettlements(ctx, input.Role, partyIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	ids := make([]string, 0, len(bills))
	seen := make(map[string]bool, len(bills))
	for _, b := range bills {
		if !seen[b.PartyID] {
			seen[b.PartyID] = true
			ids = append(ids, b.PartyID)
		}
	}

	parties := make(map[string]*domain.Ledger, len(ids))
	if len(ids) > 0 {
		ledgers, err := uc.ledgers.GetByIDs(ctx, ids)
		if err != nil {
			return nil, nil, nil, err
		}

		for _, l := range ledgers {
			parties[l.ID] = l
		}
	}

	return bills, settlements, parties, nil
}

// splitOverdue nets the party's aggregate settlement against its bills
// oldest-first and splits the residue into current and overdue by each
// bill's due date.
func (uc *OutstandingUseCase) splitOverdue(bills []*PartyBill, settled decimal.Decimal, asOf time.Time) (current, overdue decimal.Decimal) {
	sorted := make([]*PartyBill, len(bills))
	copy(sorted, bills)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	remaining := settled
	for _, b := range sorted {
		open := b.Amount
		if remaining.IsPositive() {
			applied := decimal.Min(remaining, open)
			open = open.Sub(applied)
			remaining = remaining.Sub(applied)
		}

		if !open.IsPositive() {
			continue
		}

		dueDate := b.Date.AddDate(0, 0, domain.DefaultCreditPeriodDays)
		if b.DueDate != nil {
			dueDate = *b.DueDate
		}

		if domain.OverdueDays(dueDate, asOf) > 0 {
			overdue = overdue.Add(open)
		} else {
			current = current.Add(open)
		}
	}

	return current, overdue
}
