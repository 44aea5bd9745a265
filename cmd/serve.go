package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/ai"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/server"
)

// ServeCmd runs the reference task server over a local database
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task server",
		Long: `Run the task server over a local SQLite database.

Boards pointed at this server with --api-url (or api_url in the config)
share its tasks. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default from config, :3000)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := cli.ConfigFromContext(ctx)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	logger := logging.InitWithWriter(os.Stderr, level)

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ServerAddr
	}
	path := cfg.DatabasePath
	if path == "" {
		if path, err = database.DefaultPath(); err != nil {
			return err
		}
	}

	db, err := database.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	repo := database.NewRepository(db)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	logger.Info("tablero server starting", "addr", addr, "database", path, "pid", os.Getpid())
	e := server.New(repo, ai.NewSummarizer(repo), logger)
	if err := server.Run(ctx, e, addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("tablero server shut down gracefully")
	return nil
}
