// Package plans matches journal text against a static wellness knowledge base.
package plans

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

// MaxPlans caps a match result.
const MaxPlans = 3

// CategoryGeneral is the fallback plan's category.
const CategoryGeneral = "General"

// ActionPlan is one wellness suggestion.
type ActionPlan struct {
	Category     string   `yaml:"category" json:"category"`
	Title        string   `yaml:"title" json:"title"`
	Steps        []string `yaml:"steps" json:"steps"`
	TriggerWords []string `yaml:"triggers" json:"trigger_words"`
	// Matched lists the trigger words found in the text, in trigger order.
	Matched []string `yaml:"-" json:"matched,omitempty"`
}

// KnowledgeBase is the ordered plan list plus the generic fallback.
type KnowledgeBase struct {
	Plans   []ActionPlan `yaml:"plans"`
	General ActionPlan   `yaml:"general"`
}

// Categories returns plan categories in knowledge-base order.
func (kb *KnowledgeBase) Categories() []string {
	out := make([]string, 0, len(kb.Plans))
	for _, p := range kb.Plans {
		out = append(out, p.Category)
	}
	return out
}

// Plan returns the plan for a category, case-insensitively.
func (kb *KnowledgeBase) Plan(category string) (ActionPlan, bool) {
	for _, p := range kb.Plans {
		if strings.EqualFold(p.Category, category) {
			return p, true
		}
	}
	if strings.EqualFold(category, kb.General.Category) {
		return kb.General, true
	}
	return ActionPlan{}, false
}

// ParseKnowledgeBase decodes and validates a YAML knowledge base.
func ParseKnowledgeBase(b []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(b, &kb); err != nil {
		return nil, fmt.Errorf("knowledge base: unmarshal: %w", err)
	}
	seen := map[string]bool{}
	for i, p := range kb.Plans {
		if strings.TrimSpace(p.Category) == "" {
			return nil, fmt.Errorf("knowledge base: plan %d has no category", i)
		}
		key := strings.ToLower(p.Category)
		if seen[key] {
			return nil, fmt.Errorf("knowledge base: duplicate category %q", p.Category)
		}
		seen[key] = true
		for j, w := range p.TriggerWords {
			kb.Plans[i].TriggerWords[j] = strings.ToLower(strings.TrimSpace(w))
		}
	}
	if kb.General.Category == "" {
		kb.General.Category = CategoryGeneral
	}
	return &kb, nil
}

var (
	defaultKBOnce sync.Once
	defaultKB     *KnowledgeBase
)

// Default returns the embedded knowledge base.
func Default() *KnowledgeBase {
	defaultKBOnce.Do(func() {
		kb, err := ParseKnowledgeBase(knowledgeYAML)
		if err != nil {
			panic(err)
		}
		defaultKB = kb
	})
	return defaultKB
}

// Matcher selects plans for a piece of text.
type Matcher struct {
	kb *KnowledgeBase
}

// NewMatcher returns a matcher over kb; nil selects the embedded knowledge base.
func NewMatcher(kb *KnowledgeBase) *Matcher {
	if kb == nil {
		kb = Default()
	}
	return &Matcher{kb: kb}
}

// Match finds up to MaxPlans plans. Trigger words found in text (case
// insensitive substring) match first, in knowledge-base order; detected tones
// equal to a plan category fill the remaining slots. When nothing matched but
// at least one tone was detected the General plan is returned. Blank text with
// no tones yields an empty slice.
func (m *Matcher) Match(text string, tones []string) []ActionPlan {
	out := []ActionPlan{}
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" && len(tones) == 0 {
		return out
	}

	taken := map[string]bool{}
	add := func(p ActionPlan) bool {
		key := strings.ToLower(p.Category)
		if taken[key] {
			return false
		}
		taken[key] = true
		out = append(out, p)
		return len(out) >= MaxPlans
	}

	if strings.TrimSpace(lower) != "" {
		for _, p := range m.kb.Plans {
			var hits []string
			for _, w := range p.TriggerWords {
				if w != "" && strings.Contains(lower, w) {
					hits = append(hits, w)
				}
			}
			if len(hits) == 0 {
				continue
			}
			p.Matched = hits
			if add(p) {
				return out
			}
		}
	}

	for _, tone := range tones {
		p, ok := m.kb.Plan(tone)
		if !ok || strings.EqualFold(p.Category, m.kb.General.Category) {
			continue
		}
		if add(p) {
			return out
		}
	}

	if len(out) == 0 && len(tones) > 0 {
		out = append(out, m.kb.General)
	}
	return out
}
