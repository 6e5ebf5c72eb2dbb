package cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func placed(id, tone string, x, y, z, sentiment float64, kw ...string) Point {
	return Point{
		ID: id, Word: id, EmotionalTone: tone,
		Position: r3.Vec{X: x, Y: y, Z: z}, Placed: true,
		Sentiment: sentiment, HasSentiment: true,
		Keywords: kw,
	}
}

func TestRelate_Symmetric(t *testing.T) {
	a := placed("a", "Joy", 0, 0, 0, 0.9, "friend", "heart")
	b := placed("b", "Anxiety", 3, 4, 0, 0.2, "heart", "chest", "friend")

	ab := Relate(a, b, 20)
	ba := Relate(b, a, 20)
	assert.Equal(t, ab, ba)
	assert.InDelta(t, 0.75, ab.SpatialSimilarity, 1e-9)
	assert.InDelta(t, 0.3, ab.SentimentSimilarity, 1e-9)
	assert.False(t, ab.SameEmotionalGroup)
	assert.Equal(t, []string{"friend", "heart"}, ab.SharedKeywords)
	assert.InDelta(t, 0.4*0.75+0.4*0.3, ab.Overall, 1e-9)
	assert.Equal(t, "Moderately Related", ab.Label)
}

func TestRelate_MissingDimensions(t *testing.T) {
	a := Point{ID: "a", EmotionalTone: "Calm"}
	b := Point{ID: "b", EmotionalTone: "Calm"}
	rel := Relate(a, b, 0)
	assert.Zero(t, rel.SpatialSimilarity)
	assert.Zero(t, rel.SentimentSimilarity)
	assert.True(t, rel.SameEmotionalGroup)
	assert.NotNil(t, rel.SharedKeywords)
	assert.Empty(t, rel.SharedKeywords)
	assert.InDelta(t, 0.2, rel.Overall, 1e-9)
	assert.Equal(t, "Loosely Related", rel.Label)
}

func TestRelate_FarApartClampsToZero(t *testing.T) {
	a := placed("a", "Joy", 0, 0, 0, 0.5)
	b := placed("b", "Joy", 100, 0, 0, 0.5)
	assert.Zero(t, Relate(a, b, 20).SpatialSimilarity)
}

func TestStrengthLabel(t *testing.T) {
	cases := map[float64]string{
		1:    "Strongly Related",
		0.8:  "Strongly Related",
		0.65: "Closely Related",
		0.4:  "Moderately Related",
		0.2:  "Loosely Related",
		0.19: "Barely Related",
		0:    "Barely Related",
	}
	for v, want := range cases {
		assert.Equal(t, want, StrengthLabel(v), "score %v", v)
	}
}
