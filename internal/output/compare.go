package output

import (
	"fmt"
	"strings"

	"github.com/ramanasai/mindcloud/internal/cloud"
)

// Comparison is the printable form of a word-to-word relationship.
type Comparison struct {
	A            string             `json:"a"`
	B            string             `json:"b"`
	Relationship cloud.Relationship `json:"relationship"`
}

// RenderComparison formats a Compare result.
func (r *Renderer) RenderComparison(c Comparison) (string, error) {
	rel := c.Relationship
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(c)
	case FormatCompact:
		return fmt.Sprintf("%s~%s %.2f %s\n", c.A, c.B, rel.Overall, rel.Label), nil
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(fmt.Sprintf("%s ↔ %s", c.A, c.B)))
	b.WriteString("  ")
	b.WriteString(r.styles.Highlight.Render(rel.Label))
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-12s %.2f\n", "spatial", rel.SpatialSimilarity)
	fmt.Fprintf(&b, "  %-12s %.2f\n", "sentiment", rel.SentimentSimilarity)
	same := "no"
	if rel.SameEmotionalGroup {
		same = "yes"
	}
	fmt.Fprintf(&b, "  %-12s %s\n", "same group", same)
	shared := "-"
	if len(rel.SharedKeywords) > 0 {
		shared = strings.Join(rel.SharedKeywords, ", ")
	}
	fmt.Fprintf(&b, "  %-12s %s\n", "shared", shared)
	fmt.Fprintf(&b, "  %-12s %.2f\n", "overall", rel.Overall)
	return b.String(), nil
}
