package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/logging"
	"github.com/ramanasai/mindcloud/internal/notify"
	"github.com/ramanasai/mindcloud/internal/output"
)

var (
	withPoints bool
	notifyPlan bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE|-]",
	Short: "Extract actions, subjects and tones and suggest action plans",
	Long: `Examples:
	mindcloud analyze notes.txt
	echo "I miss my friends" | mindcloud analyze -
	mindcloud analyze --entries 10 --format json --points`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, source, err := readSource(ctx, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		renderer, err := newRenderer()
		if err != nil {
			return err
		}

		res, err := newAnalyzer().Analyze(ctx, text)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", source, err)
		}
		out, err := renderer.RenderReport(output.NewReport(source, res, withPoints))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		if notifyPlan {
			if err := notify.SendPlan(notify.Desktop{}, res.Plans); err != nil {
				app.logger.Warn("plan notification failed", logging.Err(err))
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&withPoints, "points", false, "Include points in JSON output")
	analyzeCmd.Flags().BoolVar(&notifyPlan, "notify", false, "Show the first suggested plan as a desktop notification")
	addSourceFlags(analyzeCmd)
	addFormatFlags(analyzeCmd)
}
