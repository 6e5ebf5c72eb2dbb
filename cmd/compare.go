package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/output"
)

var compareCmd = &cobra.Command{
	Use:   "compare WORD WORD [FILE|-]",
	Short: "Score how two extracted words relate",
	Long: `Examples:
	mindcloud compare anxious heart notes.txt
	mindcloud compare joy friend --entries 20 --format json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, _, err := readSource(ctx, argOrEmpty(args, 2))
		if err != nil {
			return err
		}
		renderer, err := newRenderer()
		if err != nil {
			return err
		}

		a := newAnalyzer()
		if _, err := a.Analyze(ctx, text); err != nil {
			return err
		}
		rel, pa, pb, err := a.Compare(args[0], args[1])
		if err != nil {
			return err
		}
		out, err := renderer.RenderComparison(output.Comparison{A: pa.Word, B: pb.Word, Relationship: rel})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	addSourceFlags(compareCmd)
	addFormatFlags(compareCmd)
}
