package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTone(t *testing.T) {
	cases := map[string]string{
		"Joy":          ToneJoy,
		"joy theme":    ToneJoy,
		"JoyTheme":     ToneJoy,
		"Excitement":   ToneJoy,
		"grief":        ToneSadness,
		"  worry  ":    ToneAnxiety,
		"Frustration":  ToneAnger,
		"peace":        ToneCalm,
		"Appreciation": ToneGratitude,
		"":             ToneNeutral,
		"mystery":      ToneNeutral,
		"neutral":      ToneNeutral,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeTone(raw), "%q", raw)
	}
}

func TestNormalizeTone_Idempotent(t *testing.T) {
	for _, tone := range CanonicalTones {
		assert.Equal(t, tone, NormalizeTone(tone))
		assert.Equal(t, tone, NormalizeTone(NormalizeTone(tone)))
		assert.True(t, IsCanonicalTone(tone))
	}
	assert.False(t, IsCanonicalTone("joy"))
}
