package output

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ramanasai/mindcloud/internal/db"
	"github.com/ramanasai/mindcloud/internal/utils"
)

// FormatCSV is only meaningful for entry listings.
const FormatCSV Format = "csv"

// Entry is the printable form of a journal row.
type Entry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags,omitempty"`
	Text      string    `json:"text"`
}

// EntryList is one page of entries.
type EntryList struct {
	Entries    []Entry           `json:"entries"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
	Filters    map[string]string `json:"filters,omitempty"`

	page utils.Page
}

// NewEntryList converts db rows for rendering.
func NewEntryList(rows []db.Entry, page utils.Page, filters map[string]string) *EntryList {
	list := &EntryList{
		Entries:    make([]Entry, 0, len(rows)),
		Total:      page.Total,
		Page:       page.Current,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
		Filters:    filters,
		page:       page,
	}
	for _, e := range rows {
		list.Entries = append(list.Entries, Entry{
			ID:        e.ID,
			Timestamp: e.TS,
			Category:  e.Category,
			Tags:      e.TagList(),
			Text:      e.Text,
		})
	}
	return list
}

// RenderEntryList renders a page of entries.
func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(list)
	case FormatCSV:
		return r.entriesCSV(list)
	case FormatTable:
		return r.entriesTable(list), nil
	case FormatCompact:
		return r.entriesCompact(list), nil
	default:
		return r.entriesDefault(list), nil
	}
}

func (r *Renderer) entriesDefault(list *EntryList) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Journal"))
	if since := list.Filters["since"]; since != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Separator.Render("since "))
		b.WriteString(r.styles.Meta.Render(since))
	}
	if cat := list.Filters["category"]; cat != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render("[" + cat + "]"))
	}
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")

	b.WriteString(r.styles.Meta.Render(list.page.Summary()))
	b.WriteString("\n")
	if len(list.Entries) == 0 {
		return b.String()
	}
	b.WriteString(r.rule())
	b.WriteString("\n")

	for _, e := range list.Entries {
		b.WriteString(r.entry(e))
		b.WriteString(r.rule())
		b.WriteString("\n")
	}
	if nav := list.page.Navigation(); nav != "" {
		b.WriteString(r.styles.Meta.Render(nav))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) entry(e Entry) string {
	ts := e.Timestamp.In(r.config.Location)
	meta := []string{
		r.styles.Meta.Render(fmt.Sprintf("[%d]", e.ID)),
		r.styles.Meta.Render(ts.Format("2006-01-02 03:04 PM")),
		r.styles.Label.Foreground(colorForCategory(e.Category)).Render(e.Category),
	}
	if len(e.Tags) > 0 {
		meta = append(meta, r.styles.Meta.Render("#"+strings.Join(e.Tags, " #")))
	}
	return strings.Join(meta, "  ") + "\n  " + e.Text + "\n"
}

func (r *Renderer) entriesCSV(list *EntryList) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "timestamp", "category", "tags", "text"}); err != nil {
		return "", err
	}
	for _, e := range list.Entries {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Category,
			strings.Join(e.Tags, ","),
			e.Text,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

func (r *Renderer) entriesTable(list *EntryList) string {
	var b strings.Builder
	b.WriteString("ID\tDate\tCategory\tText\n")
	b.WriteString(strings.Repeat("-", r.config.Width))
	b.WriteString("\n")
	for _, e := range list.Entries {
		text := runewidth.Truncate(strings.ReplaceAll(e.Text, "\n", " "), 50, "...")
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\n", e.ID, e.Timestamp.In(r.config.Location).Format("2006-01-02 15:04"), e.Category, text)
	}
	return b.String()
}

func (r *Renderer) entriesCompact(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		line := fmt.Sprintf("%s %s %s", e.Timestamp.In(r.config.Location).Format("01-02 15:04"), e.Category,
			strings.ReplaceAll(e.Text, "\n", " "))
		b.WriteString(runewidth.Truncate(line, r.config.Width, "..."))
		b.WriteString("\n")
	}
	return b.String()
}

func colorForCategory(cat string) lipgloss.Color {
	switch strings.ToLower(cat) {
	case "dream":
		return lipgloss.Color("#CBA6F7")
	case "gratitude":
		return lipgloss.Color("#A6E3A1")
	case "worry":
		return lipgloss.Color("#FAB387")
	case "reflection":
		return lipgloss.Color("#89DCEB")
	default:
		return lipgloss.Color("#89B4FA")
	}
}
