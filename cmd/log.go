package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/db"
)

var (
	category string
	tags     string
)

var logCmd = &cobra.Command{
	Use:   "log [text]",
	Short: "Add a journal entry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbh, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer dbh.Close()

		e := db.Entry{Category: category, Text: strings.Join(args, " ")}
		if t := strings.TrimSpace(tags); t != "" {
			e.Tags = sql.NullString{String: t, Valid: true}
		}
		id, err := db.AddEntry(ctx, dbh, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %d.\n", id)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&category, "category", "c", "note", "Category: note|dream|gratitude|worry|reflection")
	logCmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma separated tags")
}
