package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpsertOrderRow(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "Bearer sheet-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sheet-key", time.Second)
	err := c.UpsertOrderRow(context.Background(), OrderRow{
		PaymentID: "pay_123",
		Status:    "completed",
		Email:     "a@b.c",
		Amount:    5000,
	})
	require.NoError(t, err)
	require.Equal(t, "/rows/payment_id/pay_123", gotPath)

	data := gotBody["data"].(map[string]any)
	require.Equal(t, "completed", data["status"])
	require.NotEmpty(t, data["updated_at"])
}

func TestUpsertOrderRowGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	err := c.UpsertOrderRow(context.Background(), OrderRow{PaymentID: "pay_1", Status: "failed"})
	require.Error(t, err)
}
