package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/plans"
)

var plansCmd = &cobra.Command{
	Use:   "plans [TEXT...]",
	Short: "List action plan categories, or match plans for some text",
	Long: `Examples:
	mindcloud plans
	mindcloud plans "I can't stop worrying about tomorrow"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		kb := plans.Default()
		if len(args) == 0 {
			for _, c := range kb.Categories() {
				p, _ := kb.Plan(c)
				fmt.Fprintf(w, "%-10s %s\n", c, p.Title)
			}
			return nil
		}

		text := strings.Join(args, " ")
		x := analysis.NewExtractor(nil, analysis.Options{}).Extract(text)
		matched := plans.NewMatcher(kb).Match(text, x.ToneNames())
		if len(matched) == 0 {
			fmt.Fprintln(w, "No plans matched.")
			return nil
		}
		for i, p := range matched {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s (%s)\n", p.Title, p.Category)
			if len(p.Matched) > 0 {
				fmt.Fprintf(w, "  matched: %s\n", strings.Join(p.Matched, ", "))
			}
			for j, s := range p.Steps {
				fmt.Fprintf(w, "  %d. %s\n", j+1, s)
			}
			app.metrics.RecordPlan(p.Category)
		}
		return nil
	},
}
