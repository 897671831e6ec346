package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/config"
	"github.com/evcraddock/amlak/internal/db"
	"github.com/evcraddock/amlak/internal/logging"
	"github.com/evcraddock/amlak/internal/web"
)

type serveOptions struct {
	port          int
	dev           bool
	secureCookies bool
	envFile       string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and JSON API",
		Long: "Start an HTTP server for the web UI and JSON API.\n\n" +
			"Settings come from a .env file and AMLAK_* environment variables; flags override them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 8080, "port to listen on (default from AMLAK_PORT)")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "development mode: colored debug logs")
	cmd.Flags().BoolVar(&opts.secureCookies, "secure-cookies", false, "mark session cookies HTTPS-only")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default: .env)")

	return cmd
}

// serveConfig loads the runtime config and applies flag overrides.
func serveConfig(cmd *cobra.Command, opts serveOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = opts.port
	}
	if opts.dev {
		cfg.DevMode = true
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagCatalog != "" {
		cfg.CatalogPath = flagCatalog
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := serveConfig(cmd, opts)
	if err != nil {
		return err
	}

	logOpts := logging.Options{DevMode: cfg.DevMode, Level: cfg.LogLevel}
	if cfg.FluentHost != "" {
		f, err := logging.NewFluentClient(cfg.FluentHost, cfg.FluentPort)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "warning: closing fluent client: %v\n", cerr)
			}
		}()
		logOpts.Fluent = f
	}
	logging.Setup(logOpts)

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(cat, database, web.Options{
		SecureCookies: opts.secureCookies,
		CORSOrigins:   cfg.CORSOrigins,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("configuration loaded", "db", cfg.DBPath, "catalog", cfg.CatalogPath, "fluent", cfg.FluentHost != "")
	return srv.ListenAndServe(ctx, cfg.Port)
}
