package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Lookup errors. Ownership failures surface as not-found so callers
	// cannot probe for other members' accounts.
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProductNotFound     = errors.New("product not found")

	// Business-rule errors. User-correctable, no state change.
	ErrAccountNotActive            = errors.New("account is not active")
	ErrInvalidAmount               = errors.New("amount must be positive")
	ErrAmountExceedsMaximum        = errors.New("amount exceeds maximum allowed")
	ErrInsufficientBalance         = errors.New("insufficient available balance")
	ErrMinimumBalanceBreach        = errors.New("would breach minimum balance")
	ErrDailyLimitExceeded          = errors.New("daily transaction limit exceeded")
	ErrPartialWithdrawalNotAllowed = errors.New("product only allows full-balance withdrawals")
	ErrSameAccount                 = errors.New("cannot transfer to same account")

	// Reversal misuse.
	ErrAlreadyReversed = errors.New("transaction already reversed")
	ErrNotReversible   = errors.New("transaction is not reversible")

	// Internal invariant violations. Never retried silently.
	ErrLedgerImbalance         = errors.New("ledger entries do not balance")
	ErrInvalidLedgerEntry      = errors.New("ledger entry must have exactly one non-zero side")
	ErrUnmappedTransactionType = errors.New("no posting rule for transaction type")
	ErrInvalidStatusTransition = errors.New("invalid transaction status transition")

	// Infrastructure.
	ErrConcurrencyTimeout = errors.New("timed out waiting for account lock")

	// Authentication.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ValidationError carries field-level detail for user-correctable input
// problems. It is distinct from business-rule sentinels: a ValidationError
// means the request itself is malformed.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError with a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// Add records another field violation and returns the error for chaining.
func (e *ValidationError) Add(field, reason string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = reason
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// LedgerImbalanceError reports an unbalanced posting batch. It always carries
// the full entry detail so the imbalance can be logged before the operation
// aborts.
type LedgerImbalanceError struct {
	TransactionID string
	Debits        string
	Credits       string
	Entries       []*LedgerEntry
}

func (e *LedgerImbalanceError) Error() string {
	return fmt.Sprintf("ledger entries do not balance for transaction %s: debits=%s credits=%s",
		e.TransactionID, e.Debits, e.Credits)
}

// Is makes the error match the ErrLedgerImbalance sentinel.
func (e *LedgerImbalanceError) Is(target error) bool {
	return target == ErrLedgerImbalance
}
