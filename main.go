package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrisonrobin/dayblock/pkg/config"
	"github.com/harrisonrobin/dayblock/pkg/logging"
	"github.com/harrisonrobin/dayblock/pkg/planner"
	"github.com/harrisonrobin/dayblock/pkg/scheduler"
	"github.com/harrisonrobin/dayblock/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

// app holds what every command needs once the root has been prepared.
type app struct {
	configDir string
	verbose   bool

	cfg     *config.Config
	log     *zap.Logger
	store   storage.Store
	repo    *storage.Repository
	planner *planner.Planner
}

// open loads config, builds the logger and opens the store.
func (a *app) open() error {
	dir := a.configDir
	if dir == "" {
		var err error
		if dir, err = config.GetConfigDir(); err != nil {
			return fmt.Errorf("could not find configuration directory: %w", err)
		}
		a.configDir = dir
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.DataDir, cfg.LogLevel, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = logger
	zap.ReplaceGlobals(logger)

	store, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return err
	}
	a.store = store
	a.repo = storage.NewRepository(store)
	a.planner = planner.New(a.repo, scheduler.New(),
		planner.WithLogger(logger),
		planner.WithLatency(cfg.Latency))

	logger.Debug("dayblock started",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir))
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("failed to close store", zap.Error(err))
		}
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "dayblock",
		Version: Version,
		Short:   "Turn a task list into a time-blocked day",
		Long: `Dayblock turns a free-text task list into a time-blocked daily schedule.

Each line becomes a block with an estimated priority and duration, laid out
from your preferred start time in normal or pomodoro focus mode, with a
motivational quote for the day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default $DAYBLOCK_HOME or ~/.config/dayblock)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newSignInCmd(a),
		newWhoAmICmd(a),
		newGenerateCmd(a),
		newShowCmd(a),
		newQuoteCmd(a),
		newDoneCmd(a),
		newStatusCmd(a),
		newSettingsCmd(a),
		newExportCmd(a),
		newAuthCmd(a),
		newDashboardCmd(a),
		newResetCmd(a),
		newConfigCmd(a),
	)
	return root
}

// run executes args and reports failures to stderr, returning the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	err = MapError(err)
	if a.log != nil {
		a.log.Error("command failed", zap.Error(err))
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		fmt.Fprintf(stderr, "Error: %s\n", cliErr.Message)
		if cliErr.Hint != "" {
			fmt.Fprintf(stderr, "Hint: %s\n", cliErr.Hint)
		}
		return cliErr.ExitCode
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
