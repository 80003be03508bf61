package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/auth"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(map[string]any{"account_id": "acc-1", "balance": "100.50"})
	})

	assert.Contains(t, out, `"account_id": "acc-1"`)
	assert.Contains(t, out, `"balance": "100.50"`)
}

func TestDoJSONSetsHeaders(t *testing.T) {
	var got *http.Request
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"txn-1"}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second
	token = "tok-123"
	tenant = "ten-1"
	defer func() { baseURL, token, tenant = "", "", "" }()

	out := captureOutput(t, func() {
		err := doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{"type": "deposit"}, true)
		assert.NoError(t, err)
	})

	require.NotNil(t, got)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "ten-1", got.Header.Get("X-Tenant-ID"))
	assert.NotEmpty(t, got.Header.Get("Idempotency-Key"))
	assert.Equal(t, "deposit", gotBody["type"])
	assert.Contains(t, out, `"id": "txn-1"`)
}

func TestDoJSONReturnsErrorOnFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"transaction not found"}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second
	defer func() { baseURL = "" }()

	out := captureOutput(t, func() {
		err := doJSON(http.MethodGet, "/api/v1/transactions/missing", nil, false)
		assert.Error(t, err)
	})

	assert.Contains(t, out, "transaction not found")
}

func TestMintTokenProducesVerifiableToken(t *testing.T) {
	cmd := mintTokenCmd()
	cmd.SetArgs([]string{
		"--secret", "test-secret",
		"--user", "user-1",
		"--tenant-id", "ten-1",
		"--role", "staff",
	})

	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute())
	})

	signed := strings.TrimSpace(out)
	require.NotEmpty(t, signed)

	manager := auth.NewJWTManager("test-secret", time.Hour)
	claims, err := manager.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ten-1", claims.TenantID)
	assert.Equal(t, domain.RoleStaff, claims.Actor().Role)
}
