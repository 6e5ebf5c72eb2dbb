package analysis

import "strings"

// Canonical tones. Every tone label in the system resolves to one of these.
const (
	ToneJoy       = "Joy"
	ToneSadness   = "Sadness"
	ToneAnxiety   = "Anxiety"
	ToneAnger     = "Anger"
	ToneLove      = "Love"
	ToneHope      = "Hope"
	ToneCalm      = "Calm"
	ToneGratitude = "Gratitude"
	ToneNeutral   = "Neutral"
)

// CanonicalTones lists the canonical set in display order.
var CanonicalTones = []string{
	ToneJoy, ToneSadness, ToneAnxiety, ToneAnger, ToneLove, ToneHope, ToneCalm, ToneGratitude, ToneNeutral,
}

var toneAliases = map[string]string{
	"joy": ToneJoy, "happy": ToneJoy, "happiness": ToneJoy, "excitement": ToneJoy,
	"excited": ToneJoy, "delight": ToneJoy, "cheerful": ToneJoy, "elation": ToneJoy,

	"sadness": ToneSadness, "sad": ToneSadness, "grief": ToneSadness, "sorrow": ToneSadness,
	"depression": ToneSadness, "melancholy": ToneSadness, "loneliness": ToneSadness, "despair": ToneSadness,

	"anxiety": ToneAnxiety, "fear": ToneAnxiety, "worry": ToneAnxiety, "nervous": ToneAnxiety,
	"panic": ToneAnxiety, "stress": ToneAnxiety, "dread": ToneAnxiety, "apprehension": ToneAnxiety,

	"anger": ToneAnger, "angry": ToneAnger, "rage": ToneAnger, "frustration": ToneAnger,
	"irritation": ToneAnger, "resentment": ToneAnger,

	"love": ToneLove, "affection": ToneLove, "tenderness": ToneLove, "romance": ToneLove,

	"hope": ToneHope, "optimism": ToneHope, "hopeful": ToneHope, "anticipation": ToneHope,

	"calm": ToneCalm, "peace": ToneCalm, "serenity": ToneCalm, "relief": ToneCalm, "contentment": ToneCalm,

	"gratitude": ToneGratitude, "thankful": ToneGratitude, "thankfulness": ToneGratitude, "appreciation": ToneGratitude,

	"neutral": ToneNeutral,
}

// NormalizeTone maps a raw tone label to its canonical tone. A trailing "Theme"
// suffix is ignored; empty or unknown labels become Neutral. It is idempotent.
func NormalizeTone(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasSuffix(s, "theme") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "theme"))
	}
	s = strings.Trim(s, " _-")
	if s == "" {
		return ToneNeutral
	}
	if t, ok := toneAliases[s]; ok {
		return t
	}
	return ToneNeutral
}

// IsCanonicalTone reports whether tone is already in canonical form.
func IsCanonicalTone(tone string) bool {
	for _, t := range CanonicalTones {
		if t == tone {
			return true
		}
	}
	return false
}
