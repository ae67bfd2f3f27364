package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapProviderStatus(t *testing.T) {
	for _, raw := range []string{"paid", "PAID", "completed", "COMPLETED", "success", "settlement"} {
		s := MapProviderStatus(raw)
		require.Equal(t, StatusCompleted, s.Kind, "raw=%q", raw)
		require.Equal(t, "completed", s.String())
	}
	for _, raw := range []string{"pending", "waiting", "Pending"} {
		require.Equal(t, StatusPending, MapProviderStatus(raw).Kind, "raw=%q", raw)
	}
	for _, raw := range []string{"failed", "expired", "canceled", "deny"} {
		require.Equal(t, StatusFailed, MapProviderStatus(raw).Kind, "raw=%q", raw)
	}
}

func TestMapProviderStatusUnrecognized(t *testing.T) {
	s := MapProviderStatus("REFUNDED")
	require.Equal(t, StatusOther, s.Kind)
	require.Equal(t, "refunded", s.Raw)
	require.Equal(t, "refunded", s.String())
}

func TestMapProviderStatusTrimsWhitespace(t *testing.T) {
	require.Equal(t, StatusCompleted, MapProviderStatus("  paid ").Kind)
}
