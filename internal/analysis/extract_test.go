package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journalLine = "I feel so anxious and my heart is racing, but I also felt joy seeing my friend"

func words(terms []Term) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, t.Word)
	}
	return out
}

func TestExtract_JournalLine(t *testing.T) {
	x := NewExtractor(nil, DefaultOptions()).Extract(journalLine)

	assert.Equal(t, []string{"feel", "anxious", "racing", "felt", "seeing"}, words(x.Actions))
	assert.Equal(t, []string{"heart", "joy", "friend"}, words(x.Subjects))
	for _, a := range x.Actions {
		assert.InDelta(t, 3.0, a.Score, 1e-9, a.Word)
		assert.Equal(t, CategoryAction, a.Category)
	}
	for _, s := range x.Subjects {
		assert.InDelta(t, 2.0, s.Score, 1e-9, s.Word)
	}

	assert.Equal(t, []ToneCount{{Name: ToneAnxiety, Count: 2}, {Name: ToneJoy, Count: 1}}, x.Tones)
	assert.Equal(t, []string{ToneAnxiety, ToneJoy}, x.ToneNames())
	assert.Equal(t, 1, x.SentenceCount)
	assert.Equal(t, 17, x.WordCount)

	heart := x.Subjects[0]
	assert.Equal(t, ToneAnxiety, heart.Tone, "untagged words inherit the dominant tone of their sentence")
	assert.InDelta(t, 3.7/7, heart.Sentiment, 1e-9)
	assert.Equal(t, []string{"feel", "anxious", "racing", "felt", "joy"}, heart.Keywords)
}

func TestExtract_Empty(t *testing.T) {
	e := NewExtractor(nil, DefaultOptions())
	for _, text := range []string{"", "   \n\t ", "the and of"} {
		x := e.Extract(text)
		assert.NotNil(t, x.Actions)
		assert.NotNil(t, x.Subjects)
		assert.NotNil(t, x.Tones)
		assert.True(t, x.Empty(), "%q", text)
	}
}

func TestExtract_Caps(t *testing.T) {
	text := "love miss cry hurt worry panic laugh smile enjoy hope relax thank breathe rest. " +
		"heart mind body chest breath friend family mother father job exam money."
	x := NewExtractor(nil, Options{MaxActions: 4, MaxSubjects: 3}).Extract(text)
	assert.Len(t, x.Actions, 4)
	assert.Len(t, x.Subjects, 3)
	for _, term := range x.Terms() {
		assert.LessOrEqual(t, len(term.Keywords), DefaultOptions().MaxKeywords)
	}
}

func TestExtract_StopwordsExcluded(t *testing.T) {
	x := NewExtractor(nil, DefaultOptions()).Extract("the the the and and and with with with my heart")
	for _, term := range x.Terms() {
		assert.False(t, DefaultLexicon().IsStopword(term.Word), term.Word)
	}
	assert.Equal(t, []string{"heart"}, words(x.Subjects))
}

func TestExtract_Idempotent(t *testing.T) {
	e := NewExtractor(nil, DefaultOptions())
	assert.Equal(t, e.Extract(journalLine), e.Extract(journalLine))
}

func TestExtract_RepeatedUnknownWords(t *testing.T) {
	text := "Gardening again today. Gardening calms me. The piano is quiet. Piano time."
	x := NewExtractor(nil, DefaultOptions()).Extract(text)

	assert.Contains(t, words(x.Actions), "gardening", "suffix -ing promotes to action")
	assert.Contains(t, words(x.Subjects), "piano")
	assert.NotContains(t, words(x.Terms()), "quiet", "single mentions stay out")
}

func TestExtract_RankingPrefersReinforcedWords(t *testing.T) {
	text := "I miss home. Tonight I cried and felt lost and hurt."
	x := NewExtractor(nil, DefaultOptions()).Extract(text)
	require.NotEmpty(t, x.Actions)
	assert.Equal(t, "cried", x.Actions[0].Word)
	assert.Equal(t, "miss", x.Actions[len(x.Actions)-1].Word)
	assert.Equal(t, []ToneCount{{Name: ToneSadness, Count: 4}}, x.Tones)
}

func TestExtract_AccentsAndApostrophes(t *testing.T) {
	x := NewExtractor(nil, DefaultOptions()).Extract("I’m grateful. Café, café.")
	assert.Contains(t, words(x.Actions), "grateful")
	assert.Contains(t, words(x.Subjects), "cafe")
	for _, term := range x.Terms() {
		assert.False(t, strings.ContainsAny(term.Word, "'’"))
	}
}
