package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/config"
	"github.com/ramanasai/mindcloud/internal/db"
	"github.com/ramanasai/mindcloud/internal/layout"
	"github.com/ramanasai/mindcloud/internal/logging"
	"github.com/ramanasai/mindcloud/internal/metrics"
	"github.com/ramanasai/mindcloud/internal/notify"
	"github.com/ramanasai/mindcloud/internal/palette"
	"github.com/ramanasai/mindcloud/internal/pipeline"
	"github.com/ramanasai/mindcloud/internal/schedule"
)

var (
	configPath  string
	logLevel    string
	metricsAddr string
)

// session holds what PersistentPreRunE built for the running command.
type session struct {
	cfg     config.Config
	logger  logging.Logger
	metrics *metrics.Metrics
}

var app session

var rootCmd = &cobra.Command{
	Use:   "mindcloud",
	Short: "Turn journal text into an explorable 3-D cloud of feelings",
	Long: `mindcloud extracts emotionally charged actions and subjects from free text,
places them in a 3-D cloud grouped by tone, and suggests action plans.

Examples:
	mindcloud log "Felt anxious before the review, calmer after a walk"
	mindcloud analyze --entries 10
	mindcloud cloud notes.txt
	mindcloud compare anxious walk notes.txt`,
	SilenceUsage: true,
}

func Execute(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/mindcloud/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug | info | warn | error")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			app.cfg, err = config.LoadFrom(configPath)
		} else {
			app.cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			app.cfg.Log.Level = logLevel
		}
		if metricsAddr != "" {
			app.cfg.Metrics.Addr = metricsAddr
		}

		if app.logger == nil {
			app.logger, err = newLogger(app.cfg, cmd == cloudCmd)
			if err != nil {
				return err
			}
			logging.SetDefault(app.logger)
		}
		app.metrics = metrics.New()

		ctx := cmd.Context()
		if app.cfg.Metrics.Addr != "" {
			go func() {
				if err := app.metrics.Serve(ctx, app.cfg.Metrics.Addr, app.logger); err != nil {
					app.logger.Warn("metrics endpoint stopped", logging.Err(err))
				}
			}()
		}
		if app.cfg.Reminder.Enabled && os.Getenv("MINDCLOUD_NO_REMINDER") != "1" {
			go schedule.RunConfigured(ctx, app.cfg, func() { remind(ctx) })
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}

	rootCmd.AddCommand(analyzeCmd, cloudCmd, renderCmd, compareCmd, plansCmd, watchCmd, logCmd, listCmd, versionCmd)
}

// newLogger writes to stderr for one-shot commands. The TUI owns the
// terminal, so it logs to a file in the data dir unless configured otherwise.
func newLogger(cfg config.Config, tui bool) (logging.Logger, error) {
	out := cfg.Log.Output
	if out == "" {
		out = "stderr"
		if tui {
			path, err := cfg.DataPath("mindcloud.log")
			if err != nil {
				return nil, fmt.Errorf("log file: %w", err)
			}
			out = path
		}
	}
	return logging.NewLogger(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: out})
}

// newAnalyzer wires the configured layout, palette and matcher.
func newAnalyzer() *pipeline.Analyzer {
	cfg := app.cfg
	return pipeline.NewAnalyzer(pipeline.OptionsFromConfig(cfg),
		pipeline.WithLayout(layout.NewToneSphere(cfg.Layout.Radius, cfg.Layout.Jitter)),
		pipeline.WithPalette(palette.New(cfg.Palette.Seed, nil)),
		pipeline.WithMetrics(app.metrics),
		pipeline.WithLogger(app.logger),
	)
}

func openDB(ctx context.Context) (*sql.DB, error) {
	path, err := app.cfg.DataPath(db.FileName)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	return db.Open(ctx, path)
}

// remind sends the check-in prompt, mentioning how many entries today has.
func remind(ctx context.Context) {
	today := 0
	if dbh, err := openDB(ctx); err == nil {
		defer dbh.Close()
		loc := app.cfg.Location()
		now := time.Now().In(loc)
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		counts, err := db.EntryCountsByDate(ctx, dbh, start, start.AddDate(0, 0, 1), loc)
		if err == nil {
			today = counts[now.Format("2006-01-02")]
		}
	}
	title, msg := notify.FormatCheckIn(today)
	if err := (notify.Desktop{}).Notify(title, msg); err != nil {
		app.logger.Warn("reminder notification failed", logging.Err(err))
	}
}
