package repository

import (
	"context"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

// SessionRepository stores login sessions keyed by their opaque token.
type SessionRepository interface {
	Create(ctx context.Context, session entity.Session) (entity.Session, error)
	Get(ctx context.Context, token string) (entity.Session, error)
	Delete(ctx context.Context, token string) error
}
