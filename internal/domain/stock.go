package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a master inventory record. No running quantity is kept on
// the row; closing stock is always derived by replaying item lines.
type StockItem struct {
	ID                   string
	Name                 string
	StockGroupID         string
	Unit                 string
	OpeningQty           decimal.Decimal
	OpeningValue         decimal.Decimal
	HSNCode              string
	GSTRate              decimal.Decimal
	StandardPurchaseRate decimal.Decimal
	StandardSaleRate     decimal.Decimal
	BatchTracking        bool
	BatchNumber          string
	BatchExpiryDate      *time.Time
	BatchMfgDate         *time.Time
}

// ValuationBasis selects the multiplier for closing-stock valuation.
type ValuationBasis string

const (
	BasisQuantity ValuationBasis = "Quantity"
	BasisCost     ValuationBasis = "Cost"
	BasisValue    ValuationBasis = "Value"
)

// ParseValuationBasis accepts the basis case-insensitively; empty means
// Quantity.
func ParseValuationBasis(raw string) (ValuationBasis, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "quantity":
		return BasisQuantity, nil
	case "cost":
		return BasisCost, nil
	case "value":
		return BasisValue, nil
	default:
		return "", ErrInvalidBasis
	}
}

// ClosingRate returns the per-unit rate the basis values closing stock at.
// Quantity basis carries no valuation.
func (i *StockItem) ClosingRate(basis ValuationBasis) decimal.Decimal {
	switch basis {
	case BasisCost:
		return i.StandardPurchaseRate
	case BasisValue:
		return i.StandardSaleRate
	default:
		return decimal.Zero
	}
}

// StockAgeBucket is one band of the stock-ageing partition. To is -1 for
// the open-ended last band.
type StockAgeBucket struct {
	Label string
	From  int
	To    int
}

// StockAgeBuckets is the fixed five-band partition used by stock ageing.
var StockAgeBuckets = []StockAgeBucket{
	{Label: "0-30 Days", From: 0, To: 30},
	{Label: "31-60 Days", From: 31, To: 60},
	{Label: "61-90 Days", From: 61, To: 90},
	{Label: "91-180 Days", From: 91, To: 180},
	{Label: "Above 180 Days", From: 181, To: -1},
}

// StockAgeBucketIndex returns the band index for an age in days.
func StockAgeBucketIndex(days int) int {
	for i, b := range StockAgeBuckets {
		if days >= b.From && (b.To < 0 || days <= b.To) {
			return i
		}
	}

	return len(StockAgeBuckets) - 1
}

// ValuationSettings is the durable FIFO/valuation configuration, stored
// as a single row and read per request rather than held in process
// memory.
type ValuationSettings struct {
	EnableFifoForAllItems       bool     `json:"enableFifoForAllItems"`
	EnableFifoForCategories     []string `json:"enableFifoForCategories"`
	EnableFifoForSpecificItems  []string `json:"enableFifoForSpecificItems"`
	FifoCalculationMethod       string   `json:"fifoCalculationMethod"`
	ConsiderExpiryInFifo        bool     `json:"considerExpiryInFifo"`
	AutoAdjustNegativeStock     bool     `json:"autoAdjustNegativeStock"`
	ShowFifoDetailsInReports    bool     `json:"showFifoDetailsInReports"`
	EnableFifoForSales          bool     `json:"enableFifoForSales"`
	EnableFifoForConsumption    bool     `json:"enableFifoForConsumption"`
	EnableFifoForTransfers      bool     `json:"enableFifoForTransfers"`
	FifoRoundingPrecision       int      `json:"fifoRoundingPrecision"`
	TreatZeroStockAs            string   `json:"treatZeroStockAs"`
	EnableBackdatedTransactions bool     `json:"enableBackdatedTransactions"`
	FifoRevaluationMethod       string   `json:"fifoRevaluationMethod"`
}

// DefaultValuationSettings mirrors the defaults shipped with the product.
func DefaultValuationSettings() ValuationSettings {
	return ValuationSettings{
		EnableFifoForAllItems:    true,
		EnableFifoForCategories:  []string{"Electronics", "Medicines", "Perishables"},
		FifoCalculationMethod:    "strict_fifo",
		ConsiderExpiryInFifo:     true,
		ShowFifoDetailsInReports: true,
		EnableFifoForSales:       true,
		EnableFifoForConsumption: true,
		EnableFifoForTransfers:   true,
		FifoRoundingPrecision:    2,
		TreatZeroStockAs:         "warning",
		FifoRevaluationMethod:    "automatic",
	}
}
