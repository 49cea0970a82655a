package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/archive"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/config"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/export"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/mail"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/sample"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/session"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driving/cli"
	"github.com/payethio/payethio-dashboard-go/internal/application/usecase"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/payethio/payethio-dashboard-go/pkg/console"
	"github.com/payethio/payethio-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), wire)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// wire inicializa os repositórios e os casos de uso a partir da configuração.
func wire(ctx context.Context, cfg *types.Config, logger zerolog.Logger, relayURL string) (*cli.Services, error) {
	sender := mail.NewSMTPSender(cfg.SMTP, logger)

	var relay repository.MailRelay = mail.NewDirectRelay(sender)
	if relayURL != "" {
		relay = mail.NewRelayClient(relayURL, nil)
	}

	var archiveRepo repository.ArchiveRepository
	if cfg.Archive.Bucket != "" {
		s3Archive, err := archive.NewS3Archive(ctx, cfg.Archive)
		if err != nil {
			return nil, err
		}
		identity, err := s3Archive.Identity(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("bucket", cfg.Archive.Bucket).Msg("Report archive disabled, AWS credentials could not be verified")
		} else {
			logger.Info().Str("bucket", cfg.Archive.Bucket).Str("identity", identity).Msg("Report archive enabled")
			archiveRepo = s3Archive
		}
	}

	exportRepo := export.NewExportRepository(export.Options{})
	exporter := usecase.NewExportUseCase(exportRepo, relay, archiveRepo, cfg.Currency, logger)
	dashboard := usecase.NewDashboardUseCase(sample.NewProvider(cfg.Sample), exporter, console.NewConsole(), cfg.Currency)

	sessions := session.NewMemoryStore(types.Duration(cfg.Server.SessionTTL, 12*time.Hour), logger)
	auth := usecase.NewAuthUseCase(sessions, cfg.Demo, logger)

	return &cli.Services{
		Auth:      auth,
		Dashboard: dashboard,
		Exporter:  exporter,
		Mailer:    sender,
		Janitor: func(ctx context.Context) {
			sessions.RunJanitor(ctx, time.Minute)
		},
	}, nil
}
