package output

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/pipeline"
	"github.com/ramanasai/mindcloud/internal/plans"
)

// GroupSummary is a tone group without its member points.
type GroupSummary struct {
	Name     string     `json:"name"`
	Color    string     `json:"color"`
	Count    int        `json:"count"`
	Words    []string   `json:"words"`
	Centroid [3]float64 `json:"centroid"`
	Radius   float64    `json:"radius"`
}

// Report is the printable form of one analysis run.
type Report struct {
	Source        string               `json:"source"`
	Status        string               `json:"status"`
	Generation    uint64               `json:"generation"`
	WordCount     int                  `json:"word_count"`
	SentenceCount int                  `json:"sentence_count"`
	Tones         []analysis.ToneCount `json:"tones"`
	Actions       []analysis.Term      `json:"actions"`
	Subjects      []analysis.Term      `json:"subjects"`
	Points        []cloud.Point        `json:"points,omitempty"`
	Groups        []GroupSummary       `json:"groups"`
	Plans         []plans.ActionPlan   `json:"plans"`
}

// NewReport flattens a pipeline result. Points are included only when
// withPoints is set.
func NewReport(source string, res pipeline.Result, withPoints bool) Report {
	rep := Report{
		Source:        source,
		Status:        string(res.Status),
		Generation:    res.Generation,
		WordCount:     res.Extraction.WordCount,
		SentenceCount: res.Extraction.SentenceCount,
		Tones:         res.Extraction.Tones,
		Actions:       res.Extraction.Actions,
		Subjects:      res.Extraction.Subjects,
		Groups:        []GroupSummary{},
		Plans:         res.Plans,
	}
	if withPoints {
		rep.Points = res.Points()
	}
	for _, g := range res.Groups() {
		gs := GroupSummary{
			Name:     g.Name,
			Color:    g.Color,
			Count:    len(g.Points),
			Centroid: [3]float64{g.Centroid.X, g.Centroid.Y, g.Centroid.Z},
			Radius:   g.Radius,
		}
		for _, p := range g.Points {
			gs.Words = append(gs.Words, p.Word)
		}
		rep.Groups = append(rep.Groups, gs)
	}
	if rep.Plans == nil {
		rep.Plans = []plans.ActionPlan{}
	}
	return rep
}

// RenderReport formats an analysis report.
func (r *Renderer) RenderReport(rep Report) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(rep)
	case FormatTable:
		return r.reportTable(rep), nil
	case FormatCompact:
		return r.reportCompact(rep), nil
	default:
		return r.reportDefault(rep), nil
	}
}

func (r *Renderer) reportDefault(rep Report) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Emotional analysis"))
	if rep.Source != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render(rep.Source))
	}
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")

	if rep.Status == string(pipeline.StatusEmpty) {
		b.WriteString(r.styles.Meta.Render("Nothing to analyze: no emotional or repeated words found."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(r.styles.Meta.Render(fmt.Sprintf("%d words in %d sentence(s)", rep.WordCount, rep.SentenceCount)))
	b.WriteString("\n\n")

	total := 0
	for _, t := range rep.Tones {
		total += t.Count
	}
	if len(rep.Tones) > 0 {
		b.WriteString(r.styles.Label.Render("Tones"))
		b.WriteString("\n")
		for _, t := range rep.Tones {
			pct := 100 * t.Count / max(1, total)
			fmt.Fprintf(&b, "  %-10s %3d%%  %s\n", t.Name, pct, strings.Repeat("▇", max(1, pct/5)))
		}
		b.WriteString("\n")
	}

	b.WriteString(r.styles.Label.Render("Actions"))
	b.WriteString("  ")
	b.WriteString(termList(rep.Actions))
	b.WriteString("\n")
	b.WriteString(r.styles.Label.Render("Subjects"))
	b.WriteString(" ")
	b.WriteString(termList(rep.Subjects))
	b.WriteString("\n\n")

	if len(rep.Groups) > 0 {
		b.WriteString(r.styles.Label.Render("Clusters"))
		b.WriteString("\n")
		for _, g := range rep.Groups {
			fmt.Fprintf(&b, "  %s%-10s %s\n", r.swatch(g.Color), g.Name, strings.Join(g.Words, ", "))
		}
		b.WriteString("\n")
	}

	if len(rep.Plans) > 0 {
		b.WriteString(r.styles.Label.Render("Suggested plans"))
		b.WriteString("\n")
		wrap := max(20, min(r.config.Width, 100)-6)
		for _, p := range rep.Plans {
			b.WriteString("  ")
			b.WriteString(r.styles.Highlight.Render(p.Title))
			b.WriteString(r.styles.Meta.Render(" (" + p.Category + ")"))
			b.WriteString("\n")
			for i, step := range p.Steps {
				lines := strings.Split(wordwrap.String(step, wrap), "\n")
				fmt.Fprintf(&b, "    %d. %s\n", i+1, lines[0])
				for _, l := range lines[1:] {
					fmt.Fprintf(&b, "       %s\n", l)
				}
			}
		}
	}
	return b.String()
}

func termList(terms []analysis.Term) string {
	if len(terms) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, fmt.Sprintf("%s (%.1f)", t.Word, t.Score))
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) reportTable(rep Report) string {
	var b strings.Builder
	b.WriteString("WORD\tCATEGORY\tSCORE\tTONE\tSENTIMENT\n")
	b.WriteString(strings.Repeat("-", r.config.Width))
	b.WriteString("\n")
	rows := append(append([]analysis.Term{}, rep.Actions...), rep.Subjects...)
	for _, t := range rows {
		fmt.Fprintf(&b, "%s\t%s\t%.1f\t%s\t%.2f\n",
			runewidth.Truncate(t.Word, 24, "…"), t.Category, t.Score, analysis.NormalizeTone(t.Tone), t.Sentiment)
	}
	return b.String()
}

func (r *Renderer) reportCompact(rep Report) string {
	tones := make([]string, 0, len(rep.Tones))
	for _, t := range rep.Tones {
		tones = append(tones, fmt.Sprintf("%s:%d", t.Name, t.Count))
	}
	cats := make([]string, 0, len(rep.Plans))
	for _, p := range rep.Plans {
		cats = append(cats, p.Category)
	}
	line := fmt.Sprintf("%s actions=%d subjects=%d tones=[%s] plans=[%s]",
		rep.Status, len(rep.Actions), len(rep.Subjects), strings.Join(tones, " "), strings.Join(cats, " "))
	return runewidth.Truncate(line, r.config.Width, "…") + "\n"
}
