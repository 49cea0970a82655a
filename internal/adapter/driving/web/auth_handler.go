package web

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/application/usecase"
	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

type AuthHandler struct {
	auth *usecase.AuthUseCase
}

func NewAuthHandler(auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		status := statusFor(err)
		writeError(w, status, errorMessage(err, status))
		return
	}
	h.startSession(w, r, session)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body usecase.RegisterInput
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.auth.Register(r.Context(), body)
	if err != nil {
		status := statusFor(err)
		writeError(w, status, errorMessage(err, status))
		return
	}
	h.startSession(w, r, session)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to delete session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	session, err := h.auth.Session(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, session entity.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	zerolog.Ctx(r.Context()).Info().Str("email", session.Email).Str("user_type", string(session.UserType)).Msg("session started")
	writeJSON(w, http.StatusOK, session)
}
