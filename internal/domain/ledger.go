package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupType classifies a ledger group into a financial-statement section.
type GroupType string

const (
	GroupTypeAsset     GroupType = "asset"
	GroupTypeLiability GroupType = "liability"
	GroupTypeIncome    GroupType = "income"
	GroupTypeExpense   GroupType = "expense"
	GroupTypeCapital   GroupType = "capital"
	GroupTypeCash      GroupType = "cash"
	GroupTypeBank      GroupType = "bank"
)

// LedgerGroup is a node in the account-group tree. ParentID is nil for
// top-level groups.
type LedgerGroup struct {
	ID       string
	Name     string
	ParentID *string
	Type     GroupType
}

// BalanceType is the normal side of a ledger's balance.
type BalanceType string

const (
	BalanceTypeDebit  BalanceType = "debit"
	BalanceTypeCredit BalanceType = "credit"
)

// Ledger is a master account record. The core never mutates ledgers;
// they are created by master-data CRUD and referenced by voucher entries.
type Ledger struct {
	ID             string
	Name           string
	GroupID        string
	GroupName      string
	GroupType      GroupType
	OpeningBalance decimal.Decimal
	BalanceType    BalanceType
	Address        string
	Phone          string
	Email          string
	GSTNumber      string
	PANNumber      string
	CreatedAt      time.Time
}

// BalanceWithMovements combines the static opening balance with posted
// debit/credit totals under the ledger's sign convention: a debit-type
// ledger grows with debits, a credit-type ledger grows with credits.
func (l *Ledger) BalanceWithMovements(totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if l.BalanceType == BalanceTypeCredit {
		return l.OpeningBalance.Add(totalCredit.Sub(totalDebit))
	}

	return l.OpeningBalance.Add(totalDebit.Sub(totalCredit))
}

// OpeningDebitCredit splits the opening balance onto its normal side.
func (l *Ledger) OpeningDebitCredit() (debit, credit decimal.Decimal) {
	if l.BalanceType == BalanceTypeCredit {
		return decimal.Zero, l.OpeningBalance
	}

	return l.OpeningBalance, decimal.Zero
}
