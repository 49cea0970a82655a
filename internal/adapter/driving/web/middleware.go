package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/application/usecase"
	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "payethio_session"

type sessionKey struct{}

// Logger injeta um logger por requisição no contexto e registra o resultado ao final.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Str("request_id", middleware.GetReqID(req.Context())).
				Logger()

			ctx := reqLogger.WithContext(req.Context())
			req = req.WithContext(ctx)

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, req)

			reqLogger.Info().
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request completed")
		})
	}
}

// RequireSession rejects requests without a valid session cookie with 401 and stores
// the session in the request context otherwise.
func RequireSession(auth *usecase.AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			cookie, err := req.Cookie(SessionCookie)
			if err != nil {
				writeError(w, http.StatusUnauthorized, types.ErrSessionNotFound.Error())
				return
			}
			session, err := auth.Session(req.Context(), cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, types.ErrSessionNotFound.Error())
				return
			}

			ctx := context.WithValue(req.Context(), sessionKey{}, session)
			zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user", session.Email)
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(ctx context.Context) (entity.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(entity.Session)
	return s, ok
}
