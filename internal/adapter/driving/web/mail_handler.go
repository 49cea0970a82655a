package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/mail"
	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// MailHandler serves the mail-relay endpoint.
type MailHandler struct {
	sender repository.MailSender
}

func NewMailHandler(sender repository.MailSender) *MailHandler {
	return &MailHandler{sender: sender}
}

// SendEmail recebe {to, subject, message, attachment?, htmlAttachment?} e responde
// {success, message} ou {error} com 400/500.
func (h *MailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req entity.EmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn().Err(err).Msg("malformed relay request")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.To) == "" {
		writeError(w, http.StatusBadRequest, "Recipient email is required")
		return
	}

	result, err := h.sender.Send(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrMissingRecipient) {
			writeError(w, http.StatusBadRequest, "Recipient email is required")
			return
		}
		derr := mail.Classify(err)
		logger.Error().Err(err).Str("kind", string(derr.Kind)).Str("to", req.To).Msg("relay delivery failed")
		writeError(w, http.StatusInternalServerError, derr.Message)
		return
	}

	logger.Info().Str("to", req.To).Bool("demo", result.Demo).Msg("relay request handled")
	writeJSON(w, http.StatusOK, result)
}
