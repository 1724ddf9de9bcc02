package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookdesk/cmd"
	apihttp "bookdesk/internal/adapters/in/http"
	"bookdesk/internal/adapters/out/postgres"
	"bookdesk/internal/core/application/usecases/commands"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "bookdesk",
		Short:         "Order lifecycle and pickup desk for class materials",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))
	rootCmd.AddCommand(importStudentsCmd(&envFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(envFile string) (cmd.Config, *slog.Logger, error) {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)
	return configs, logger, nil
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, logger, err := setup(*envFile)
			if err != nil {
				return err
			}
			if err = configs.ValidateServe(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := cmd.OpenDB(configs)
			if err != nil {
				return err
			}

			app := cmd.NewCompositionRoot(configs, db, logger)
			if err = app.ConnectOutbound(ctx); err != nil {
				return err
			}
			defer app.Close()

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			return startWebServer(ctx, app, configs, logger)
		},
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	e := apihttp.NewEcho(app.CreateHTTPServer(), logger)
	e.Logger.SetLevel(gommonLevel(configs.LogLevel))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func gommonLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(*cobra.Command, []string) error {
			configs, logger, err := setup(*envFile)
			if err != nil {
				return err
			}

			db, err := cmd.OpenDB(configs)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			logger.Info("schema migrated")
			return nil
		},
	}
}

func importStudentsCmd(envFile *string) *cobra.Command {
	var file string

	importCmd := &cobra.Command{
		Use:   "import-students",
		Short: "Upsert the student roster from a YAML file",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, logger, err := setup(*envFile)
			if err != nil {
				return err
			}

			records, err := cmd.ReadRoster(file)
			if err != nil {
				return err
			}
			importCommand, err := commands.NewImportStudentsCommand(records)
			if err != nil {
				return err
			}

			db, err := cmd.OpenDB(configs)
			if err != nil {
				return err
			}

			app := cmd.NewCompositionRoot(configs, db, logger)
			report, err := app.CreateImportStudentsCommandHandler().Handle(c.Context(), importCommand)
			if err != nil {
				return err
			}

			logger.Info("roster imported", "imported", report.Imported, "skipped", report.Skipped)
			return nil
		},
	}
	importCmd.Flags().StringVar(&file, "file", "students.yaml", "roster file")

	return importCmd
}
