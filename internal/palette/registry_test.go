package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_StableWithinRegistry(t *testing.T) {
	r := New(DefaultSeed, nil)
	first := r.Color("Anxiety")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Color("Anxiety"))
	}
	assert.Contains(t, DefaultColors, first)
}

func TestColor_JoyIsFixed(t *testing.T) {
	r := New(7, nil)
	r.Color("Anger")
	assert.Equal(t, JoyColor, r.Color("Joy"))
}

func TestColor_SameSeedSameAssignmentOrder(t *testing.T) {
	tones := []string{"Sadness", "Anxiety", "Anger", "Hope", "Calm"}
	a, b := New(DefaultSeed, nil), New(DefaultSeed, nil)
	for _, tone := range tones {
		assert.Equal(t, a.Color(tone), b.Color(tone), tone)
	}
	assert.Equal(t, tones, a.Assigned())
}

func TestReset_ReplaysSequence(t *testing.T) {
	r := New(DefaultSeed, nil)
	before := []string{r.Color("Sadness"), r.Color("Anger")}
	r.Reset()
	assert.Empty(t, r.Assigned())
	after := []string{r.Color("Sadness"), r.Color("Anger")}
	assert.Equal(t, before, after)
}

func TestRegistries_DoNotShareState(t *testing.T) {
	a := New(DefaultSeed, []string{"#111111"})
	b := New(DefaultSeed, []string{"#222222"})
	assert.Equal(t, "#111111", a.Color("Sadness"))
	assert.Equal(t, "#222222", b.Color("Sadness"))
}

func TestDim(t *testing.T) {
	assert.Equal(t, "#ff0000", Dim("#FF0000", "#000000", 1))
	assert.Equal(t, "#000000", Dim("#FF0000", "#000000", 0))
	assert.Equal(t, "#95a5a6", Dim("nope", "#000000", 1))
	assert.True(t, Valid("#95A5A6"))
	assert.False(t, Valid("95A5A6"))
}
