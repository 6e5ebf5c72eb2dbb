package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/mindcloud/internal/plans"
)

type recorder struct{ titles, messages []string }

func (r *recorder) Notify(title, message string) error {
	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
	return nil
}

func TestFormatCheckIn(t *testing.T) {
	_, msg := FormatCheckIn(0)
	assert.Contains(t, msg, "How are you feeling")
	_, msg = FormatCheckIn(1)
	assert.Contains(t, msg, "1 entry today")
	_, msg = FormatCheckIn(3)
	assert.Contains(t, msg, "3 entries today")
}

func TestSendPlan(t *testing.T) {
	r := &recorder{}
	require.NoError(t, SendPlan(r, nil))
	assert.Empty(t, r.titles)

	list := []plans.ActionPlan{
		{Category: "Anxiety", Title: "Ground yourself", Steps: []string{"Breathe in for four counts"}},
		{Category: "Joy", Title: "Savor it"},
	}
	require.NoError(t, SendPlan(r, list))
	require.Len(t, r.titles, 1)
	assert.Equal(t, "Ground yourself", r.titles[0])
	assert.Equal(t, "Breathe in for four counts (also: Joy)", r.messages[0])
}
