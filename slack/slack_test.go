package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angas/cheapslots-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	err := New(srv.URL, 5*time.Second).Notify(context.Background(), types.Message{Text: "Found 1 low-price time slot(s):\n"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text": "Found 1 low-price time slot(s):\n"}, payload)
}

func TestNotifyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("invalid_token"))
	}))
	defer srv.Close()

	err := New(srv.URL, 5*time.Second).Notify(context.Background(), types.Message{Text: "hello"})
	assert.ErrorIs(t, err, types.ErrDeliveryFailure)
	assert.ErrorContains(t, err, "403")
	assert.ErrorContains(t, err, "invalid_token")
}

func TestNotifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	err := New(srv.URL, time.Second).Notify(context.Background(), types.Message{Text: "hello"})
	assert.ErrorIs(t, err, types.ErrDeliveryFailure)
}
