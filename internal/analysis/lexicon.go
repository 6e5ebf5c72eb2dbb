package analysis

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// Category separates verb-like from noun-like terms.
type Category string

const (
	CategoryAction  Category = "action"
	CategorySubject Category = "subject"
)

// LexiconEntry is one dictionary word.
type LexiconEntry struct {
	Tone    string   `yaml:"tone"`
	Valence *float64 `yaml:"valence"`
}

// Lexicon holds the static dictionaries used by the extractor.
type Lexicon struct {
	Stopwords []string                `yaml:"stopwords"`
	Actions   map[string]LexiconEntry `yaml:"actions"`
	Subjects  map[string]LexiconEntry `yaml:"subjects"`
	Suffixes  struct {
		Action []string `yaml:"action"`
	} `yaml:"suffixes"`

	stop map[string]struct{}
}

// ParseLexicon decodes a YAML lexicon.
func ParseLexicon(b []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(b, &lx); err != nil {
		return nil, fmt.Errorf("lexicon: unmarshal: %w", err)
	}
	lx.index()
	return &lx, nil
}

func (lx *Lexicon) index() {
	lx.stop = make(map[string]struct{}, len(lx.Stopwords))
	for _, w := range lx.Stopwords {
		lx.stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	lx.Actions = lowerKeys(lx.Actions)
	lx.Subjects = lowerKeys(lx.Subjects)
}

func lowerKeys(m map[string]LexiconEntry) map[string]LexiconEntry {
	out := make(map[string]LexiconEntry, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

var (
	defaultLexiconOnce sync.Once
	defaultLexicon     *Lexicon
)

// DefaultLexicon returns the embedded lexicon. The embedded file is validated by tests.
func DefaultLexicon() *Lexicon {
	defaultLexiconOnce.Do(func() {
		lx, err := ParseLexicon(lexiconYAML)
		if err != nil {
			panic(err)
		}
		defaultLexicon = lx
	})
	return defaultLexicon
}

// IsStopword reports whether w is excluded from extraction.
func (lx *Lexicon) IsStopword(w string) bool {
	_, ok := lx.stop[w]
	return ok
}

// Lookup finds w in the dictionaries; actions take precedence over subjects.
func (lx *Lexicon) Lookup(w string) (LexiconEntry, Category, bool) {
	if e, ok := lx.Actions[w]; ok {
		return e, CategoryAction, true
	}
	if e, ok := lx.Subjects[w]; ok {
		return e, CategorySubject, true
	}
	return LexiconEntry{}, "", false
}

// Classify guesses the category of a non-dictionary word from its suffix.
func (lx *Lexicon) Classify(w string) Category {
	for _, suf := range lx.Suffixes.Action {
		if len(w) > len(suf)+2 && strings.HasSuffix(w, suf) {
			return CategoryAction
		}
	}
	return CategorySubject
}
