package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
	"github.com/gstbooks/gstbooks/internal/usecase/mocks"
)

func TestOutstandingUseCase_Bills(t *testing.T) {
	asOf := date(2024, 10, 1)

	ledgers := mocks.NewMockLedgerRepository()
	ledgers.Add(&domain.Ledger{ID: "party-1", Name: "Acme Traders"})

	outstanding := mocks.NewMockOutstandingRepository()
	outstanding.PartyBillsFunc = func(ctx context.Context, role usecase.PartyRole, partyIDs []string) ([]*usecase.PartyBill, error) {
		return []*usecase.PartyBill{
			// Due 2024-05-01, 153 days overdue and above 50000: Critical, 90+.
			{VoucherID: "v-1", VoucherNumber: "INV-1", Date: date(2024, 4, 1), PartyID: "party-1", Amount: decimal.NewFromInt(80000)},
			// Fully settled, must be dropped.
			{VoucherID: "v-2", VoucherNumber: "INV-2", Date: date(2024, 6, 1), PartyID: "party-1", Amount: decimal.NewFromInt(20000), Settled: decimal.NewFromInt(20000)},
			// Explicit due date 2024-09-20, 11 days overdue, small: Low, 0-30.
			{VoucherID: "v-3", VoucherNumber: "INV-3", Date: date(2024, 8, 1), DueDate: timePtr(date(2024, 9, 20)), PartyID: "party-1", Amount: decimal.NewFromInt(5000)},
		}, nil
	}

	uc := usecase.NewOutstandingUseCase(ledgers, outstanding)

	result, err := uc.Bills(context.Background(), usecase.OutstandingInput{Role: usecase.RoleReceivable, AsOf: asOf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary.BillCount != 2 {
		t.Fatalf("expected 2 open bills, got %d", result.Summary.BillCount)
	}
	if !result.Summary.TotalOutstanding.Equal(decimal.NewFromInt(85000)) {
		t.Errorf("expected outstanding 85000, got %s", result.Summary.TotalOutstanding)
	}

	// Sorted most-overdue first.
	first := result.Bills[0]
	if first.VoucherID != "v-1" {
		t.Fatalf("expected v-1 first, got %s", first.VoucherID)
	}
	if first.Risk != domain.RiskCritical {
		t.Errorf("expected Critical, got %s", first.Risk)
	}
	if first.Bucket != domain.BucketOver90 {
		t.Errorf("expected 90+ bucket, got %s", first.Bucket)
	}
	if first.PartyName != "Acme Traders" {
		t.Errorf("expected resolved party name, got %q", first.PartyName)
	}
	// Default credit period: due 30 days after the bill date.
	if !first.DueDate.Equal(date(2024, 5, 1)) {
		t.Errorf("expected due date 2024-05-01, got %s", first.DueDate)
	}

	second := result.Bills[1]
	if second.Risk != domain.RiskLow || second.Bucket != domain.Bucket0To30 {
		t.Errorf("expected Low/0-30, got %s/%s", second.Risk, second.Bucket)
	}

	if !result.Summary.ByBucket[domain.BucketOver90].Equal(decimal.NewFromInt(80000)) {
		t.Errorf("expected 80000 in 90+ bucket, got %s", result.Summary.ByBucket[domain.BucketOver90])
	}
}

func TestOutstandingUseCase_Parties(t *testing.T) {
	asOf := date(2024, 10, 1)

	ledgers := mocks.NewMockLedgerRepository()
	ledgers.Add(&domain.Ledger{ID: "party-1", Name: "Acme Traders", GroupName: "Sundry Debtors", GSTNumber: "27AABCU9603R1ZM"})
	ledgers.Add(&domain.Ledger{ID: "party-2", Name: "Bharat Supplies"})

	outstanding := mocks.NewMockOutstandingRepository()
	outstanding.PartyBillsFunc = func(ctx context.Context, role usecase.PartyRole, partyIDs []string) ([]*usecase.PartyBill, error) {
		return []*usecase.PartyBill{
			{VoucherID: "v-1", Date: date(2024, 3, 1), PartyID: "party-1", Amount: decimal.NewFromInt(600000)},
			{VoucherID: "v-2", Date: date(2024, 9, 25), PartyID: "party-1", Amount: decimal.NewFromInt(40000)},
			// Fully settled party, must not appear.
			{VoucherID: "v-3", Date: date(2024, 5, 1), PartyID: "party-2", Amount: decimal.NewFromInt(10000)},
		}, nil
	}
	outstanding.PartySettlementsFunc = func(ctx context.Context, role usecase.PartyRole, partyIDs []string) (map[string]*usecase.PartySettlement, error) {
		return map[string]*usecase.PartySettlement{
			"party-1": {Total: decimal.NewFromInt(30000), LastDate: timePtr(date(2024, 9, 1))},
			"party-2": {Total: decimal.NewFromInt(10000)},
		}, nil
	}

	uc := usecase.NewOutstandingUseCase(ledgers, outstanding)

	result, err := uc.Parties(context.Background(), usecase.OutstandingInput{Role: usecase.RoleReceivable, AsOf: asOf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary.PartyCount != 1 {
		t.Fatalf("expected 1 party, got %d", result.Summary.PartyCount)
	}

	party := result.Parties[0]
	if party.PartyID != "party-1" {
		t.Fatalf("expected party-1, got %s", party.PartyID)
	}
	if party.GroupName != "Sundry Debtors" {
		t.Errorf("expected resolved group name, got %q", party.GroupName)
	}
	if !party.Outstanding.Equal(decimal.NewFromInt(610000)) {
		t.Errorf("expected outstanding 610000, got %s", party.Outstanding)
	}
	// Settlement nets oldest-first: 600000-30000 overdue, 40000 current.
	if !party.OverdueAmount.Equal(decimal.NewFromInt(570000)) {
		t.Errorf("expected overdue 570000, got %s", party.OverdueAmount)
	}
	if party.Risk != domain.RiskCritical {
		t.Errorf("expected Critical for overdue above 500000, got %s", party.Risk)
	}
	if !party.AgeingBreakdown[domain.Bucket0To30].Equal(decimal.NewFromInt(40000)) {
		t.Errorf("expected 40000 current, got %s", party.AgeingBreakdown[domain.Bucket0To30])
	}
	if party.LastSettlement == nil || !party.LastSettlement.Equal(date(2024, 9, 1)) {
		t.Errorf("expected last settlement 2024-09-01, got %v", party.LastSettlement)
	}
	if result.Summary.ByRisk[domain.RiskCritical] != 1 {
		t.Errorf("expected 1 critical party, got %d", result.Summary.ByRisk[domain.RiskCritical])
	}
}

func TestOutstandingUseCase_EmptyBooks(t *testing.T) {
	uc := usecase.NewOutstandingUseCase(mocks.NewMockLedgerRepository(), mocks.NewMockOutstandingRepository())

	bills, err := uc.Bills(context.Background(), usecase.OutstandingInput{Role: usecase.RolePayable, AsOf: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills.Bills) != 0 || bills.Summary.BillCount != 0 {
		t.Errorf("expected empty bill report, got %+v", bills.Summary)
	}

	parties, err := uc.Parties(context.Background(), usecase.OutstandingInput{Role: usecase.RolePayable, AsOf: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parties.Parties) != 0 {
		t.Errorf("expected empty party report, got %d parties", len(parties.Parties))
	}
}

func timePtr(t time.Time) *time.Time { return &t }
