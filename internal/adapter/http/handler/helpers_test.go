package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kaditech/saccoledger/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrSameAccount, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrAccountNotActive, http.StatusUnprocessableEntity},
		{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{domain.ErrMinimumBalanceBreach, http.StatusUnprocessableEntity},
		{domain.ErrDailyLimitExceeded, http.StatusUnprocessableEntity},
		{domain.ErrPartialWithdrawalNotAllowed, http.StatusUnprocessableEntity},
		{domain.ErrNotReversible, http.StatusUnprocessableEntity},
		{domain.ErrAlreadyReversed, http.StatusConflict},
		{domain.ErrConcurrencyTimeout, http.StatusServiceUnavailable},
		{domain.ErrLedgerImbalance, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := mapDomainError(tc.err); got != tc.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 25 {
		t.Fatalf("limit = %d, want 25", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Fatalf("bad = %d, want default 20", got)
	}
	if got := parseIntQuery(req, "missing", 7); got != 7 {
		t.Fatalf("missing = %d, want default 7", got)
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2025-06-01T12:00:00Z&bad=yesterday", nil)

	got := parseTimeQuery(req, "from")
	if got == nil || !got.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", got)
	}
	if parseTimeQuery(req, "bad") != nil {
		t.Fatal("expected nil for malformed time")
	}
	if parseTimeQuery(req, "missing") != nil {
		t.Fatal("expected nil for missing key")
	}
}
