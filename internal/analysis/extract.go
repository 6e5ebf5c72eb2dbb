package analysis

import (
	"sort"
	"unicode"
)

// Term is one ranked word produced by the extractor.
type Term struct {
	Word       string   `json:"word"`
	Category   Category `json:"category"`
	Score      float64  `json:"score"`
	Count      int      `json:"count"`
	FirstIndex int      `json:"first_index"`
	Tone       string   `json:"tone,omitempty"` // raw label; empty when no emotional evidence
	Sentiment  float64  `json:"sentiment"`
	Keywords   []string `json:"keywords,omitempty"`
}

// ToneCount is a detected tone and the number of emotion words that carried it.
type ToneCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Extraction is the extractor output for one document.
type Extraction struct {
	Actions       []Term      `json:"actions"`
	Subjects      []Term      `json:"subjects"`
	Tones         []ToneCount `json:"tones"`
	WordCount     int         `json:"word_count"`
	SentenceCount int         `json:"sentence_count"`
}

// Terms returns actions followed by subjects.
func (x Extraction) Terms() []Term {
	out := make([]Term, 0, len(x.Actions)+len(x.Subjects))
	out = append(out, x.Actions...)
	return append(out, x.Subjects...)
}

// Empty reports whether nothing was extracted.
func (x Extraction) Empty() bool {
	return len(x.Actions) == 0 && len(x.Subjects) == 0 && len(x.Tones) == 0
}

// ToneNames returns the detected tone names in ranking order.
func (x Extraction) ToneNames() []string {
	out := make([]string, 0, len(x.Tones))
	for _, t := range x.Tones {
		out = append(out, t.Name)
	}
	return out
}

type Options struct {
	MaxActions   int
	MaxSubjects  int
	ContextBoost float64
	MinRepeat    int
	MaxKeywords  int
}

func DefaultOptions() Options {
	return Options{MaxActions: 10, MaxSubjects: 8, ContextBoost: 0.5, MinRepeat: 2, MaxKeywords: 5}
}

// Extractor ranks action and subject terms with dictionary and frequency heuristics.
type Extractor struct {
	lex  *Lexicon
	opts Options
}

func NewExtractor(lex *Lexicon, opts Options) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}
	def := DefaultOptions()
	if opts.MaxActions <= 0 {
		opts.MaxActions = def.MaxActions
	}
	if opts.MaxSubjects <= 0 {
		opts.MaxSubjects = def.MaxSubjects
	}
	if opts.MinRepeat < 2 {
		opts.MinRepeat = def.MinRepeat
	}
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = def.MaxKeywords
	}
	if opts.ContextBoost < 0 {
		opts.ContextBoost = 0
	}
	return &Extractor{lex: lex, opts: opts}
}

type wordStat struct {
	word       string
	category   Category
	dict       bool
	entry      LexiconEntry
	count      int
	firstIndex int
	score      float64
	sentences  []int
}

type sentenceMood struct {
	tones      map[string]int
	toneOrder  []string
	valenceSum float64
	valenceN   int
}

func (m *sentenceMood) dominant() string {
	best, bestN := "", 0
	for _, t := range m.toneOrder {
		if n := m.tones[t]; n > bestN {
			best, bestN = t, n
		}
	}
	return best
}

// Extract analyses text. Empty or whitespace-only text yields empty lists.
func (e *Extractor) Extract(text string) Extraction {
	out := Extraction{Actions: []Term{}, Subjects: []Term{}, Tones: []ToneCount{}}

	sentences := Tokenize(text)
	if len(sentences) == 0 {
		return out
	}
	out.SentenceCount = len(sentences)

	stats := map[string]*wordStat{}
	moods := make([]sentenceMood, len(sentences))
	toneTotals := map[string]int{}

	for si, sentence := range sentences {
		out.WordCount += len(sentence)
		mood := &moods[si]
		mood.tones = map[string]int{}

		var hits []*wordStat
		for _, tok := range sentence {
			w := tok.Word
			if e.lex.IsStopword(w) {
				continue
			}
			st, ok := stats[w]
			if !ok {
				entry, cat, dict := e.lex.Lookup(w)
				if !dict && !candidateWord(w) {
					continue
				}
				st = &wordStat{word: w, category: cat, dict: dict, entry: entry, firstIndex: tok.Index}
				stats[w] = st
			}
			st.count++
			if n := len(st.sentences); n == 0 || st.sentences[n-1] != si {
				st.sentences = append(st.sentences, si)
			}
			if !st.dict {
				continue
			}

			st.score++
			hits = append(hits, st)
			if st.entry.Tone != "" {
				tone := NormalizeTone(st.entry.Tone)
				if tone != ToneNeutral {
					if mood.tones[tone] == 0 {
						mood.toneOrder = append(mood.toneOrder, tone)
					}
					mood.tones[tone]++
					toneTotals[tone]++
				}
			}
			if st.entry.Valence != nil {
				mood.valenceSum += *st.entry.Valence
				mood.valenceN++
			}
		}

		// contextual boost: reinforced mentions of the same category in one sentence
		if e.opts.ContextBoost > 0 {
			for i, h := range hits {
				others := 0
				for j, o := range hits {
					if i != j && o.category == h.category && o.word != h.word {
						others++
					}
				}
				h.score += e.opts.ContextBoost * float64(others)
			}
		}
	}

	var actions, subjects []*wordStat
	for _, st := range stats {
		if !st.dict {
			if st.count < e.opts.MinRepeat {
				continue
			}
			st.category = e.lex.Classify(st.word)
			st.score = float64(st.count)
		}
		if st.category == CategoryAction {
			actions = append(actions, st)
		} else {
			subjects = append(subjects, st)
		}
	}

	rank(actions)
	rank(subjects)
	if len(actions) > e.opts.MaxActions {
		actions = actions[:e.opts.MaxActions]
	}
	if len(subjects) > e.opts.MaxSubjects {
		subjects = subjects[:e.opts.MaxSubjects]
	}

	selected := append(append([]*wordStat{}, actions...), subjects...)
	for _, st := range actions {
		out.Actions = append(out.Actions, e.term(st, moods, selected))
	}
	for _, st := range subjects {
		out.Subjects = append(out.Subjects, e.term(st, moods, selected))
	}

	for name, n := range toneTotals {
		out.Tones = append(out.Tones, ToneCount{Name: name, Count: n})
	}
	sort.Slice(out.Tones, func(i, j int) bool {
		if out.Tones[i].Count != out.Tones[j].Count {
			return out.Tones[i].Count > out.Tones[j].Count
		}
		return out.Tones[i].Name < out.Tones[j].Name
	})
	return out
}

// rank orders by score descending, ties broken by first occurrence.
func rank(list []*wordStat) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].firstIndex < list[j].firstIndex
	})
}

func (e *Extractor) term(st *wordStat, moods []sentenceMood, selected []*wordStat) Term {
	t := Term{
		Word:       st.word,
		Category:   st.category,
		Score:      st.score,
		Count:      st.count,
		FirstIndex: st.firstIndex,
		Tone:       st.entry.Tone,
		Sentiment:  0.5,
	}

	if t.Tone == "" {
		agg := sentenceMood{tones: map[string]int{}}
		for _, si := range st.sentences {
			m := moods[si]
			for _, tone := range m.toneOrder {
				if agg.tones[tone] == 0 {
					agg.toneOrder = append(agg.toneOrder, tone)
				}
				agg.tones[tone] += m.tones[tone]
			}
		}
		t.Tone = agg.dominant()
	}

	if st.entry.Valence != nil {
		t.Sentiment = clamp01(*st.entry.Valence)
	} else {
		var sum float64
		var n int
		for _, si := range st.sentences {
			if moods[si].valenceN > 0 {
				sum += moods[si].valenceSum / float64(moods[si].valenceN)
				n++
			}
		}
		if n > 0 {
			t.Sentiment = clamp01(sum / float64(n))
		}
	}

	for _, other := range selected {
		if other == st || !sharesSentence(st.sentences, other.sentences) {
			continue
		}
		t.Keywords = append(t.Keywords, other.word)
	}
	sort.SliceStable(t.Keywords, func(i, j int) bool {
		return firstIndexOf(selected, t.Keywords[i]) < firstIndexOf(selected, t.Keywords[j])
	})
	if len(t.Keywords) > e.opts.MaxKeywords {
		t.Keywords = t.Keywords[:e.opts.MaxKeywords]
	}
	return t
}

// firstIndexOf returns the first index of word among the selected terms.
func firstIndexOf(selected []*wordStat, word string) int {
	for _, s := range selected {
		if s.word == word {
			return s.firstIndex
		}
	}
	return 0
}

func sharesSentence(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// candidateWord filters non-dictionary words eligible for frequency promotion.
func candidateWord(w string) bool {
	if len([]rune(w)) < 3 {
		return false
	}
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
