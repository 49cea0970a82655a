package repository

import (
	"context"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

// MailSender delivers a relay request through a mail transport (or simulates it).
type MailSender interface {
	Send(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error)
}

// MailRelay submits report emails to the mail-relay endpoint.
type MailRelay interface {
	Submit(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error)
}
