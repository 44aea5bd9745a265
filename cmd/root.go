package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/project"
	"github.com/thenoetrevino/tablero/internal/cli/styles"
	"github.com/thenoetrevino/tablero/internal/cli/task"
	"github.com/thenoetrevino/tablero/internal/cli/use"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
)

// logCloser releases the log file opened for CLI commands
var logCloser io.Closer

// NewRootCmd builds the tablero command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablero",
		Short: "Tablero - a three column kanban board",
		Long: `Tablero is a kanban board with Todo, In Progress and Done columns.

Run without arguments to open the interactive board. Cards are moved
optimistically: the board updates immediately and rolls back if the
server refuses the move.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runBoard,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/tablero/config.yaml)")
	rootCmd.PersistentFlags().Bool("local", false, "Use the local SQLite database instead of the server")
	rootCmd.PersistentFlags().String("api-url", "", "Server URL (overrides config)")
	rootCmd.PersistentFlags().String("db", "", "Database path for local mode and serve")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().String("project", "", "Project to open (ID or name)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	})

	rootCmd.AddCommand(BoardCmd())
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(use.UseCmd())

	return rootCmd
}

// setup loads the config, applies the global flags and installs logging
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	styles.Init(cfg.ColorScheme)
	cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))

	// serve logs to stderr and the board sets up its own log file
	if cmd.Name() == "serve" || cmd.Name() == "board" || cmd == cmd.Root() {
		return nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	closer, err := logging.Init(level)
	if err != nil {
		// CLI output still works without a log file
		logging.InitWithWriter(io.Discard, level)
		return nil
	}
	logCloser = closer
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	var cfg *config.Config
	var err error
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if local, _ := flags.GetBool("local"); local {
		cfg.Local = true
	}
	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DatabasePath = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return cfg, nil
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	err := NewRootCmd().ExecuteContext(ctx)
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err == nil {
		return cli.ExitSuccess
	}

	// commands report through cli.Fail; anything else is printed here
	var exitErr *cli.ExitCodeError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}
