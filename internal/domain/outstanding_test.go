package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBucketForOverdue_Partition(t *testing.T) {
	// Every non-negative value lands in exactly one bucket and adjacent
	// boundaries never overlap.
	cases := map[int]AgeingBucket{
		0:    Bucket0To30,
		1:    Bucket0To30,
		30:   Bucket0To30,
		31:   Bucket31To60,
		60:   Bucket31To60,
		61:   Bucket61To90,
		90:   Bucket61To90,
		91:   BucketOver90,
		180:  BucketOver90,
		3650: BucketOver90,
	}

	for days, want := range cases {
		if got := BucketForOverdue(days); got != want {
			t.Errorf("days=%d: expected %s, got %s", days, want, got)
		}
	}
}

func TestOverdueDays(t *testing.T) {
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{name: "not yet due", asOf: due.AddDate(0, 0, -5), want: 0},
		{name: "due today", asOf: due, want: 0},
		{name: "ten days late", asOf: due.AddDate(0, 0, 10), want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverdueDays(due, tt.asOf); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRiskThresholds_Classify(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		amount  int64
		want    RiskCategory
	}{
		{name: "low on both axes", days: 10, amount: 5000, want: RiskLow},
		{name: "old but small", days: 120, amount: 5000, want: RiskLow},
		{name: "medium", days: 45, amount: 20000, want: RiskMedium},
		{name: "high", days: 75, amount: 40000, want: RiskHigh},
		{name: "critical", days: 100, amount: 60000, want: RiskCritical},
		{name: "large but current", days: 0, amount: 900000, want: RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BillRiskThresholds.Classify(tt.days, decimal.NewFromInt(tt.amount))
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRiskThresholds_Monotone(t *testing.T) {
	// Increasing either axis while holding the other fixed never lowers
	// the assigned tier.
	amounts := []int64{0, 10001, 30001, 50001, 200001, 500001}
	days := []int{0, 31, 61, 91, 365}

	for _, table := range []RiskThresholds{BillRiskThresholds, PartyRiskThresholds} {
		for _, d := range days {
			prev := RiskLow
			for _, a := range amounts {
				got := table.Classify(d, decimal.NewFromInt(a))
				if got.Rank() < prev.Rank() {
					t.Fatalf("risk dropped from %s to %s at days=%d amount=%d", prev, got, d, a)
				}
				prev = got
			}
		}

		for _, a := range amounts {
			prev := RiskLow
			for _, d := range days {
				got := table.Classify(d, decimal.NewFromInt(a))
				if got.Rank() < prev.Rank() {
					t.Fatalf("risk dropped from %s to %s at days=%d amount=%d", prev, got, d, a)
				}
				prev = got
			}
		}
	}
}

func TestPartyRiskThresholds_AmountOnly(t *testing.T) {
	// Party tiers ignore the day axis once any overdue age exists.
	got := PartyRiskThresholds.Classify(0, decimal.NewFromInt(600000))
	if got != RiskCritical {
		t.Errorf("expected Critical, got %s", got)
	}
}
