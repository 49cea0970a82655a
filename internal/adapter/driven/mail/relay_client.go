package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// RelayClient posts report emails to the mail-relay endpoint over HTTP.
type RelayClient struct {
	url    string
	client *http.Client
}

// NewRelayClient cria um cliente para o endpoint de relay em url.
func NewRelayClient(url string, client *http.Client) *RelayClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RelayClient{url: url, client: client}
}

var _ repository.MailRelay = (*RelayClient)(nil)

// Submit envia a requisição e interpreta a resposta {success, message} ou {error}.
func (c *RelayClient) Submit(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return entity.EmailResult{}, fmt.Errorf("error encoding relay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return entity.EmailResult{}, fmt.Errorf("error creating relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return entity.EmailResult{}, fmt.Errorf("error calling mail relay: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entity.EmailResult{}, fmt.Errorf("error reading relay response: %w", err)
	}

	var decoded struct {
		entity.EmailResult
		Error string `json:"error"`
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &decoded); err != nil && resp.StatusCode < 300 {
			return entity.EmailResult{}, fmt.Errorf("error decoding relay response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := decoded.Error
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return entity.EmailResult{}, fmt.Errorf("%w: %s (status %d)", types.ErrRelayRejected, reason, resp.StatusCode)
	}
	return decoded.EmailResult, nil
}

// DirectRelay satisfies MailRelay by handing requests straight to a MailSender, for
// processes that host the relay endpoint themselves.
type DirectRelay struct {
	sender repository.MailSender
}

// NewDirectRelay wraps sender.
func NewDirectRelay(sender repository.MailSender) *DirectRelay {
	return &DirectRelay{sender: sender}
}

var _ repository.MailRelay = (*DirectRelay)(nil)

func (r *DirectRelay) Submit(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error) {
	return r.sender.Send(ctx, req)
}
