// Package output renders analysis reports, journal listings and word
// comparisons for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Format selects a renderer.
type Format string

const (
	FormatDefault Format = "default"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCompact Format = "compact"
)

// ParseFormat accepts a --format value; unknown values are an error.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatDefault:
		return FormatDefault, nil
	case FormatTable, FormatJSON, FormatCompact, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want default, table, json, csv or compact)", s)
	}
}

// RenderConfig controls rendering.
type RenderConfig struct {
	Format   Format
	Width    int
	Color    bool
	Location *time.Location
}

// DefaultRenderConfig sizes output from $COLUMNS when it is set.
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{Format: FormatDefault, Width: width, Color: true, Location: time.Local}
}

// Styles are the lipgloss styles used by the default renderer.
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Label     lipgloss.Style
	Word      lipgloss.Style
	Highlight lipgloss.Style
}

func initStyles(color bool) Styles {
	if !color {
		bold := lipgloss.NewStyle().Bold(true)
		plain := lipgloss.NewStyle()
		return Styles{Title: bold, Separator: plain, Meta: plain, Label: bold, Word: plain, Highlight: bold}
	}
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		Label:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
		Word:      lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	}
}

// Renderer formats values according to its config.
type Renderer struct {
	config *RenderConfig
	styles Styles
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Width <= 0 {
		config.Width = 100
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

// swatch renders a color sample for hex, or nothing without color.
func (r *Renderer) swatch(hex string) string {
	if !r.config.Color {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●") + " "
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}
