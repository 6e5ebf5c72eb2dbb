package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/notify"
	"github.com/ramanasai/mindcloud/internal/ui"
)

// cloudCmd launches the Bubble Tea TUI.
var cloudCmd = &cobra.Command{
	Use:   "cloud [FILE|-]",
	Short: "Explore the cloud interactively",
	Long: `Opens the full-screen cloud. Without input it starts empty; press i to
write an entry, which is saved to the journal and analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, _, err := readSource(ctx, argOrEmpty(args, 0))
		if err != nil && !errors.Is(err, errNoInput) {
			return err
		}

		dbh, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		return ui.Run(ctx, ui.Deps{
			Config:   app.cfg,
			Analyzer: newAnalyzer(),
			DB:       dbh,
			Logger:   app.logger,
			Metrics:  app.metrics,
			Notifier: notify.Desktop{},
		}, text)
	},
}

func init() {
	addSourceFlags(cloudCmd)
}
