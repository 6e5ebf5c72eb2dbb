package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/logging"
	"github.com/ramanasai/mindcloud/internal/output"
	"github.com/ramanasai/mindcloud/internal/pipeline"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-analyze a file whenever it changes",
	Long: `Prints a fresh report after every save. When saves arrive faster than
analysis, only the newest result is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer()
		if err != nil {
			return err
		}
		return watchFile(cmd.Context(), args[0], newAnalyzer(), renderer, cmd.OutOrStdout(), app.logger)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "Wait this long after a change before analyzing")
	addFormatFlags(watchCmd)
}

type watchResult struct {
	res pipeline.Result
	err error
}

// watchFile watches the file's directory, since editors often replace files
// on save, and analyzes the file after each burst of changes.
func watchFile(ctx context.Context, path string, a *pipeline.Analyzer, r *output.Renderer, w io.Writer, log logging.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	results := make(chan watchResult, 4)
	fresh := freshness{latest: a.Latest}
	start := func() {
		b, err := os.ReadFile(abs)
		if err != nil {
			log.Warn("read watched file", logging.String("path", abs), logging.Err(err))
			return
		}
		gen := a.Begin()
		go func() {
			res, err := a.Run(ctx, gen, string(b))
			select {
			case results <- watchResult{res, err}:
			case <-ctx.Done():
			}
		}()
	}
	start()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", logging.Err(err))
		case <-debounce:
			debounce = nil
			start()
		case wr := <-results:
			switch {
			case errors.Is(wr.err, pipeline.ErrStale):
				continue
			case errors.Is(wr.err, context.Canceled):
				return nil
			case wr.err != nil:
				log.Error("analysis failed", logging.Err(wr.err))
				continue
			case !fresh.admit(wr.res.Generation):
				log.Debug("superseded analysis dropped", logging.Uint64("generation", wr.res.Generation))
				continue
			}
			out, err := r.RenderReport(output.NewReport(abs, wr.res, false))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\n%s", time.Now().Format("15:04:05"), out)
		}
	}
}

// freshness admits a result only when no newer run has been requested or
// printed. Runs publish before the next Begin can mark them stale, so their
// results may still arrive out of order.
type freshness struct {
	shown  uint64
	latest func() uint64
}

func (f *freshness) admit(gen uint64) bool {
	if gen < f.shown || gen < f.latest() {
		return false
	}
	f.shown = gen
	return true
}
