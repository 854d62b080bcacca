package domain

import "errors"

var (
	// Registry errors
	ErrLedgerNotFound      = errors.New("ledger not found")
	ErrLedgerGroupNotFound = errors.New("ledger group not found")
	ErrStockItemNotFound   = errors.New("stock item not found")

	// Voucher errors
	ErrVoucherNotFound      = errors.New("voucher not found")
	ErrUnknownVoucherType   = errors.New("unrecognized voucher type")
	ErrEmptyEntries         = errors.New("voucher must have at least one entry")
	ErrAmbiguousEntry       = errors.New("entry must reference exactly one of ledger or item")
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrUnbalancedVoucher    = errors.New("debit and credit totals do not match")
	ErrUnknownReference     = errors.New("entry references an unknown ledger or item")
	ErrEntryShapeNotAllowed = errors.New("entry shape not allowed for this voucher type")
	ErrMissingParty         = errors.New("voucher type requires a party ledger")

	// Report errors
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrInvalidFinancialYear = errors.New("invalid financial year, expected YYYY-YY")
	ErrInvalidBasis         = errors.New("invalid valuation basis")
)
