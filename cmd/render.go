package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ramanasai/mindcloud/internal/scene"
	"github.com/ramanasai/mindcloud/internal/ui"
)

var (
	renderWidth  int
	renderHeight int
	renderSelect string
	renderFocus  string
	renderYaw    float64
)

var renderCmd = &cobra.Command{
	Use:   "render [FILE|-]",
	Short: "Print one frame of the cloud",
	Long: `Examples:
	mindcloud render notes.txt
	mindcloud render --entries 5 --select anxious
	mindcloud render notes.txt --focus Joy --no-color > frame.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, _, err := readSource(ctx, argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		res, err := newAnalyzer().Analyze(ctx, text)
		if err != nil {
			return err
		}

		ctrl := scene.NewController(scene.OptionsFromConfig(app.cfg.Scene), app.logger)
		ctrl.SetPickRecorder(app.metrics)
		ctrl.SetSnapshot(res.Snapshot)
		if renderFocus != "" && !ctrl.FocusOnEmotionalGroup(renderFocus) {
			return fmt.Errorf("no visible group %q", renderFocus)
		}
		if renderSelect != "" {
			p, ok := res.Snapshot.FindWord(renderSelect)
			if !ok || !ctrl.Select(p.ID) {
				return fmt.Errorf("cannot select %q", renderSelect)
			}
		}
		if renderYaw != 0 {
			ctrl.Orbit(renderYaw, 0)
		}
		// settle any focus transition before drawing
		ctrl.Tick(app.cfg.Scene.ResetDuration)

		w, h := renderWidth, renderHeight
		if w <= 0 || h <= 0 {
			tw, th, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				tw, th = 100, 30
			}
			if w <= 0 {
				w = tw
			}
			if h <= 0 {
				h = th - 1
			}
		}
		color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Render(ctrl.Frame(), ctrl.Camera(), w, h, color))
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Columns (default: terminal width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Rows (default: terminal height)")
	renderCmd.Flags().StringVar(&renderSelect, "select", "", "Select this word")
	renderCmd.Flags().StringVar(&renderFocus, "focus", "", "Focus this tone group")
	renderCmd.Flags().Float64Var(&renderYaw, "yaw", 0, "Orbit the camera by this many radians")
	renderCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	addSourceFlags(renderCmd)
}
