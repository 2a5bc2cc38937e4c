package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSend_PostsSummary(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var received Summary
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	summary := NewSummary("finetune_predictor", 90*time.Second, nil)

	// --- Act ---
	err := Send(context.Background(), server.URL, summary)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "finetune_predictor", received.Run)
	require.Equal(t, StatusSucceeded, received.Status)
	require.Equal(t, 90.0, received.Duration)
	require.Empty(t, received.Error)
}

func TestSend_ErrorResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	err := Send(context.Background(), server.URL, NewSummary("x", time.Second, nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestNewSummary_FailedRunCarriesError(t *testing.T) {
	t.Parallel()

	summary := NewSummary("finetune_predictor", time.Minute, errors.New("worker rank 0: exit status 1"))

	require.Equal(t, StatusFailed, summary.Status)
	require.Contains(t, summary.Error, "exit status 1")
}
