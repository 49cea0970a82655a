package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// DemoMessage is returned when no real SMTP credentials are configured.
const DemoMessage = "Email simulated successfully (demo mode). To send real emails, set SMTP_USER and SMTP_PASS in your environment or .env file."

const sentMessage = "Email sent successfully"

// Transport delivers messages over SMTP. *gomail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// TransportFactory opens a transport for the given SMTP settings.
type TransportFactory func(cfg types.SMTPConfig) (Transport, error)

// SMTPSender implementa o MailSender. Sem credenciais reais ele opera em modo demo e
// nunca abre conexão.
type SMTPSender struct {
	cfg          types.SMTPConfig
	demoDelay    time.Duration
	newTransport TransportFactory
	logger       zerolog.Logger
}

// NewSMTPSender cria um novo SMTPSender a partir da configuração SMTP.
func NewSMTPSender(cfg types.SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:          cfg,
		demoDelay:    types.Duration(cfg.DemoDelay, 1200*time.Millisecond),
		newTransport: NewTransport,
		logger:       logger,
	}
}

// WithTransportFactory substitui a fábrica de transporte (usado nos testes).
func (s *SMTPSender) WithTransportFactory(f TransportFactory) *SMTPSender {
	s.newTransport = f
	return s
}

// WithDemoDelay overrides the simulated delay of demo mode.
func (s *SMTPSender) WithDemoDelay(d time.Duration) *SMTPSender {
	s.demoDelay = d
	return s
}

var _ repository.MailSender = (*SMTPSender)(nil)

// DemoMode reports whether the sender simulates delivery.
func (s *SMTPSender) DemoMode() bool {
	return s.cfg.DemoMode()
}

// Send delivers req, or simulates it in demo mode. Live failures are returned as
// *DeliveryError with a user facing message.
func (s *SMTPSender) Send(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error) {
	if strings.TrimSpace(req.To) == "" {
		return entity.EmailResult{}, types.ErrMissingRecipient
	}

	if s.DemoMode() {
		return s.simulate(ctx, req)
	}

	msg, err := s.buildMessage(req)
	if err != nil {
		return entity.EmailResult{}, Classify(err)
	}

	transport, err := s.newTransport(s.cfg)
	if err != nil {
		return entity.EmailResult{}, Classify(err)
	}

	start := time.Now()
	if err := transport.DialAndSendWithContext(ctx, msg); err != nil {
		derr := Classify(err)
		s.logger.Error().Err(err).Str("kind", string(derr.Kind)).Str("to", req.To).Msg("SMTP delivery failed")
		return entity.EmailResult{}, derr
	}

	s.logger.Info().
		Str("to", req.To).
		Str("subject", req.Subject).
		Dur("elapsed", time.Since(start)).
		Msg("Email sent")
	return entity.EmailResult{Success: true, Message: sentMessage}, nil
}

func (s *SMTPSender) simulate(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error) {
	s.logger.Info().
		Str("to", req.To).
		Str("subject", req.Subject).
		Bool("attachment", req.Attachment != nil || req.HTMLAttachment != nil).
		Msg("SMTP credentials not configured, simulating email delivery")

	if s.demoDelay > 0 {
		timer := time.NewTimer(s.demoDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return entity.EmailResult{}, ctx.Err()
		case <-timer.C:
		}
	}
	return entity.EmailResult{Success: true, Message: DemoMessage, Demo: true}, nil
}

// buildMessage monta a mensagem com corpo texto, alternativa HTML e anexos.
func (s *SMTPSender) buildMessage(req entity.EmailRequest) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(req.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(req.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, req.Message)
	msg.AddAlternativeString(gomail.TypeTextHTML, "<p>"+html.EscapeString(req.Message)+"</p>")

	if a := req.Attachment; a != nil {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, fmt.Errorf("attachment %q is not valid base64: %w", a.Filename, err)
		}
		attach(msg, a.Filename, content, a.ContentType)
	}
	if a := req.HTMLAttachment; a != nil {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "text/html"
		}
		attach(msg, a.Filename, []byte(a.Content), contentType)
	}
	return msg, nil
}

func attach(msg *gomail.Msg, filename string, content []byte, contentType string) {
	if filename == "" {
		filename = "attachment"
	}
	var opts []gomail.FileOption
	if contentType != "" {
		opts = append(opts, gomail.WithFileContentType(gomail.ContentType(contentType)))
	}
	msg.AttachReadSeeker(filename, bytes.NewReader(content), opts...)
}

// NewTransport abre um cliente go-mail com autenticação PLAIN e a política TLS configurada.
func NewTransport(cfg types.SMTPConfig) (Transport, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Pass),
		gomail.WithTimeout(15 * time.Second),
	}

	switch strings.ToLower(cfg.TLSPolicy) {
	case "ssl", "tls":
		opts = append(opts, gomail.WithSSL())
	case "opportunistic":
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	case "none", "notls":
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	if cfg.SkipVerify {
		opts = append(opts, gomail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: true, //nolint:gosec // SMTP_SKIP_VERIFY
		}))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating SMTP client: %w", err)
	}
	return client, nil
}
