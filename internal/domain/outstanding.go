package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCreditPeriodDays is applied when a bill voucher has no explicit
// due date.
const DefaultCreditPeriodDays = 30

// AgeingBucket partitions overdue days. The four buckets cover [0, inf)
// with no gaps or overlaps.
type AgeingBucket string

const (
	Bucket0To30  AgeingBucket = "0-30"
	Bucket31To60 AgeingBucket = "31-60"
	Bucket61To90 AgeingBucket = "61-90"
	BucketOver90 AgeingBucket = "90+"
)

// BucketForOverdue returns the bucket an overdue-days value falls into.
func BucketForOverdue(days int) AgeingBucket {
	switch {
	case days <= 30:
		return Bucket0To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// OverdueDays returns whole days past the due date, never negative.
func OverdueDays(dueDate, asOf time.Time) int {
	days := int(asOf.Sub(dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}

// RiskCategory tiers a party or bill by collection risk.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low"
	RiskMedium   RiskCategory = "Medium"
	RiskHigh     RiskCategory = "High"
	RiskCritical RiskCategory = "Critical"
)

// Rank orders categories for sorting; higher is riskier.
func (r RiskCategory) Rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	default:
		return 1
	}
}

// RiskTier is the floor a bill or party must exceed on both axes to be
// assigned the tier.
type RiskTier struct {
	MinOverdueDays int
	MinAmount      decimal.Decimal
}

// RiskThresholds is one threshold table applied top-down: Critical, then
// High, then Medium; anything below Medium is Low. Tiers must be ordered
// (each floor >= the next tier's floor on both axes) so classification is
// monotone in overdue days and amount.
type RiskThresholds struct {
	Critical RiskTier
	High     RiskTier
	Medium   RiskTier
}

// Classify assigns the highest tier whose floors are both exceeded.
func (t RiskThresholds) Classify(overdueDays int, amount decimal.Decimal) RiskCategory {
	exceeds := func(tier RiskTier) bool {
		return overdueDays > tier.MinOverdueDays && amount.GreaterThan(tier.MinAmount)
	}

	switch {
	case exceeds(t.Critical):
		return RiskCritical
	case exceeds(t.High):
		return RiskHigh
	case exceeds(t.Medium):
		return RiskMedium
	default:
		return RiskLow
	}
}

// BillRiskThresholds classifies individual bills jointly on overdue days
// and outstanding amount.
var BillRiskThresholds = RiskThresholds{
	Critical: RiskTier{MinOverdueDays: 90, MinAmount: decimal.NewFromInt(50000)},
	High:     RiskTier{MinOverdueDays: 60, MinAmount: decimal.NewFromInt(30000)},
	Medium:   RiskTier{MinOverdueDays: 30, MinAmount: decimal.NewFromInt(10000)},
}

// PartyRiskThresholds classifies a party by its total overdue amount
// alone; the day floors are -1 so any nonzero overdue age qualifies.
var PartyRiskThresholds = RiskThresholds{
	Critical: RiskTier{MinOverdueDays: -1, MinAmount: decimal.NewFromInt(500000)},
	High:     RiskTier{MinOverdueDays: -1, MinAmount: decimal.NewFromInt(200000)},
	Medium:   RiskTier{MinOverdueDays: -1, MinAmount: decimal.NewFromInt(50000)},
}
