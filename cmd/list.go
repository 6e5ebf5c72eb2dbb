package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/db"
	"github.com/ramanasai/mindcloud/internal/output"
	"github.com/ramanasai/mindcloud/internal/utils"
)

var (
	since        string
	limit        int
	page         int
	format       string
	noColor      bool
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Long: `Examples:
	mindcloud list                              # newest 20 entries
	mindcloud list --since "2 weeks"            # the last two weeks
	mindcloud list --category dream --page 2    # second page of dreams
	mindcloud list --format csv > journal.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		loc := app.cfg.Location()

		renderer, err := newRenderer()
		if err != nil {
			return err
		}

		f := db.Filter{Category: strings.TrimSpace(listCategory)}
		filters := map[string]string{}
		if since != "" {
			f.Since, err = utils.ParseSince(since, time.Now().In(loc))
			if err != nil {
				return fmt.Errorf("invalid --since %q: %w", since, err)
			}
			filters["since"] = f.Since.In(loc).Format("2006-01-02 03:04 PM MST")
		}
		if f.Category != "" {
			filters["category"] = f.Category
		}
		if limit <= 0 || limit > 1000 {
			limit = 20
		}

		dbh, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		total, err := db.CountEntries(ctx, dbh, f)
		if err != nil {
			return err
		}
		pg := utils.NewPage(total, limit, page)
		rows, err := db.ListEntries(ctx, dbh, f, pg.PerPage, pg.Offset)
		if err != nil {
			return err
		}

		out, err := renderer.RenderEntryList(output.NewEntryList(rows, pg, filters))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// newRenderer applies the shared --format and --no-color flags.
func newRenderer() (*output.Renderer, error) {
	rc := output.DefaultRenderConfig()
	rc.Location = app.cfg.Location()
	if noColor || app.cfg.Theme == "mono" {
		rc.Color = false
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	rc.Format = f
	return output.NewRenderer(rc), nil
}

func init() {
	listCmd.Flags().StringVar(&since, "since", "", "Only entries since: today, yesterday, '3 days', 2w, 2025-01-15")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Entries per page")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only this category")
	addFormatFlags(listCmd)
}

func addFormatFlags(c *cobra.Command) {
	c.Flags().StringVar(&format, "format", "default", "Output format: default, table, json, csv, compact")
	c.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
