package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayClient_Success(t *testing.T) {
	var got entity.EmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"` + DemoMessage + `","demo":true}`))
	}))
	defer srv.Close()

	res, err := NewRelayClient(srv.URL, nil).Submit(context.Background(), reportRequest())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.True(t, res.Demo)
	assert.Equal(t, DemoMessage, res.Message)
	assert.Equal(t, "ops@example.com", got.To)
	require.NotNil(t, got.HTMLAttachment)
	assert.Equal(t, "transactions.html", got.HTMLAttachment.Filename)
}

func TestRelayClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + MessageInvalidCredentials + `"}`))
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL, srv.Client()).Submit(context.Background(), reportRequest())
	require.ErrorIs(t, err, types.ErrRelayRejected)
	assert.Contains(t, err.Error(), MessageInvalidCredentials)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRelayClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL, nil).Submit(context.Background(), reportRequest())
	require.ErrorIs(t, err, types.ErrRelayRejected)
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestRelayClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRelayClient(url, nil).Submit(context.Background(), reportRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrRelayRejected)
}

func TestDirectRelay(t *testing.T) {
	cfg := liveConfig()
	cfg.Pass = ""
	sender, calls := newTestSender(t, cfg, &fakeTransport{})

	res, err := NewDirectRelay(sender).Submit(context.Background(), reportRequest())
	require.NoError(t, err)
	assert.True(t, res.Demo)
	assert.Equal(t, 0, *calls)
}
