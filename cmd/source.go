package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/mindcloud/internal/db"
)

// errNoInput is returned when neither a file, stdin nor --entries was given.
var errNoInput = errors.New("no input: pass a file, '-' for stdin, or --entries N")

var (
	entries  int
	textFlag string
)

// readSource resolves the text to analyze. Precedence: --text, --entries,
// then the path argument ("-" reads stdin).
func readSource(ctx context.Context, path string) (string, string, error) {
	if strings.TrimSpace(textFlag) != "" {
		return textFlag, "--text", nil
	}
	if entries > 0 {
		dbh, err := openDB(ctx)
		if err != nil {
			return "", "", err
		}
		defer dbh.Close()
		text, err := db.RecentText(ctx, dbh, entries)
		if err != nil {
			return "", "", err
		}
		return text, fmt.Sprintf("last %d entries", entries), nil
	}
	switch path {
	case "":
		return "", "", errNoInput
	case "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "stdin", nil
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(b), path, nil
	}
}

func addSourceFlags(c *cobra.Command) {
	c.Flags().IntVarP(&entries, "entries", "n", 0, "Analyze the N most recent journal entries")
	c.Flags().StringVar(&textFlag, "text", "", "Analyze this text instead of a file")
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
