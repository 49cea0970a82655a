package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/payethio/payethio-dashboard-go/internal/adapter/driven/config"
	"github.com/payethio/payethio-dashboard-go/internal/adapter/driving/web"
	"github.com/payethio/payethio-dashboard-go/internal/application/usecase"
	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/payethio/payethio-dashboard-go/pkg/version"
)

// Services são as dependências montadas a partir da configuração carregada.
type Services struct {
	Auth      *usecase.AuthUseCase
	Dashboard *usecase.DashboardUseCase
	Exporter  *usecase.ExportUseCase
	Mailer    repository.MailSender
	// Janitor, when set, runs in the background while the server is up.
	Janitor func(ctx context.Context)
}

// Wiring builds the services for cfg. relayURL is empty when emails should be handed
// to the in-process mail sender.
type Wiring func(ctx context.Context, cfg *types.Config, logger zerolog.Logger, relayURL string) (*Services, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	wiring     Wiring
	configRepo repository.ConfigRepository
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, wiring Wiring) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
		wiring:     wiring,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "payethio",
		Short:         "PayEthio dashboard: reports, exports and the mail relay",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Name() != "version" {
				displayWelcomeBanner(app.version)
			}
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "PayEthio dashboard version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file loaded before the environment is read")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(app.serveCommand(), app.exportCommand(), app.overviewCommand(), app.versionCommand())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

func (app *CLIApp) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API and the mail-relay endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, logger, err := app.loadConfig(cmd)
			if err != nil {
				return err
			}
			services, err := app.wiring(ctx, cfg, logger, cfg.MailRelayURL)
			if err != nil {
				return err
			}
			if services.Janitor != nil {
				go services.Janitor(ctx)
			}

			if cfg.SMTP.DemoMode() {
				logger.Warn().Msg("SMTP credentials not configured, the mail relay runs in demo mode")
			}

			api := web.NewWebAPI(logger, web.Config{
				Addr:            cfg.Addr(),
				ShutdownTimeout: types.Duration(cfg.Server.ShutdownTimeout, 10*time.Second),
				Dependencies: web.Dependencies{
					Auth:      services.Auth,
					Dashboard: services.Dashboard,
					Exporter:  services.Exporter,
					Mailer:    services.Mailer,
				},
			})
			return api.Start(ctx)
		},
	}
}

func (app *CLIApp) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a dashboard dataset to PDF, HTML, CSV, JSON or XLSX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			go version.CheckLatestVersion(app.version)

			args, err := app.parseExportArgs(cmd)
			if err != nil {
				return err
			}
			cfg, logger, err := app.loadConfig(cmd)
			if err != nil {
				return err
			}
			relayURL := args.RelayURL
			if relayURL == "" {
				relayURL = cfg.MailRelayURL
			}
			services, err := app.wiring(cmd.Context(), cfg, logger, relayURL)
			if err != nil {
				return err
			}
			return services.Dashboard.RunExport(cmd.Context(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("dataset", "s", string(usecase.DatasetTransactions), "Dataset to export: transactions, customers, withdrawals, balance, funds")
	flags.StringSliceP("report-type", "y", []string{"pdf"}, "Specify report types: pdf, html, csv, json, xlsx")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("from", "", "Start date (YYYY-MM-DD), inclusive")
	flags.String("to", "", "End date (YYYY-MM-DD), inclusive")
	flags.StringP("query", "q", "", "Search text, as typed in the dashboard table")
	flags.String("field", "all", "Search field: all, customer, amount, reference (transactions); all, name, email, phone (customers)")
	flags.String("status", "", "Keep only rows with this status, e.g. completed or active")
	flags.String("risk", "", "Customer risk level: low, medium, high")
	flags.StringP("email", "e", "", "Also send the report to this email address")
	flags.String("subject", "", "Email subject (default: \"<title> Export\")")
	flags.String("message", "", "Email message")
	flags.String("relay-url", "", "Mail relay endpoint (default: deliver in-process)")
	flags.String("user-type", string(entity.UserTypeDemo), "Sample data profile: demo or registered")
	flags.Bool("preview", false, "Print the summary and the first rows before exporting")
	return cmd
}

func (app *CLIApp) overviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Display the dashboard KPIs and the revenue trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.loadConfig(cmd)
			if err != nil {
				return err
			}
			services, err := app.wiring(cmd.Context(), cfg, logger, cfg.MailRelayURL)
			if err != nil {
				return err
			}
			userType, _ := cmd.Flags().GetString("user-type")
			return services.Dashboard.RunOverview(cmd.Context(), entity.UserType(userType))
		},
	}
	cmd.Flags().String("user-type", string(entity.UserTypeDemo), "Sample data profile: demo or registered")
	return cmd
}

func (app *CLIApp) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("PayEthio dashboard version: " + version.FormatVersion())
		},
	}
}

// parseExportArgs parses command-line arguments into an ExportArgs struct.
func (app *CLIApp) parseExportArgs(cmd *cobra.Command) (*types.ExportArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	dataset, _ := flags.GetString("dataset")
	reportType, _ := flags.GetStringSlice("report-type")
	reportName, _ := flags.GetString("report-name")
	dir, _ := flags.GetString("dir")
	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")
	query, _ := flags.GetString("query")
	field, _ := flags.GetString("field")
	status, _ := flags.GetString("status")
	risk, _ := flags.GetString("risk")
	email, _ := flags.GetString("email")
	subject, _ := flags.GetString("subject")
	message, _ := flags.GetString("message")
	relayURL, _ := flags.GetString("relay-url")
	userType, _ := flags.GetString("user-type")
	preview, _ := flags.GetBool("preview")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.ExportArgs{
		ConfigFile: configFile,
		Dataset:    dataset,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		From:       from,
		To:         to,
		Query:      query,
		Field:      field,
		Status:     status,
		Risk:       risk,
		Email:      email,
		Subject:    subject,
		Message:    message,
		RelayURL:   relayURL,
		UserType:   userType,
		Preview:    preview,
	}, nil
}

// loadConfig carrega o .env, o arquivo de configuração e o ambiente, e monta o logger.
func (app *CLIApp) loadConfig(cmd *cobra.Command) (*types.Config, zerolog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, zerolog.Nop(), err
		}
	}

	configFile, _ := cmd.Flags().GetString("config-file")
	cfg, err := config.Load(app.configRepo, configFile, os.LookupEnv)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, newLogger(cfg.LogLevel), nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
