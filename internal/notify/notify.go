// Package notify sends desktop notifications for check-in reminders and
// suggested action plans.
package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/ramanasai/mindcloud/internal/plans"
)

// AppName titles alerts.
const AppName = "mindcloud"

// Notifier delivers a titled message.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop uses the platform notification service.
type Desktop struct{}

func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Alert is a notification with sound, used when a run finishes.
func Alert(message string) error {
	return beeep.Alert(AppName, message, "")
}

// FormatCheckIn builds the reminder shown at the configured check-in time.
func FormatCheckIn(todayEntries int) (string, string) {
	title := "Time to check in"
	if todayEntries == 0 {
		return title, "How are you feeling today? A few lines is enough."
	}
	noun := "entries"
	if todayEntries == 1 {
		noun = "entry"
	}
	return title, fmt.Sprintf("You wrote %d %s today. Anything else on your mind?", todayEntries, noun)
}

// FormatPlan summarizes the first suggested plan. ok is false when there is
// nothing to suggest.
func FormatPlan(list []plans.ActionPlan) (title, message string, ok bool) {
	if len(list) == 0 {
		return "", "", false
	}
	p := list[0]
	title = p.Title
	if len(p.Steps) > 0 {
		message = p.Steps[0]
	}
	if more := len(list) - 1; more > 0 {
		others := make([]string, 0, more)
		for _, q := range list[1:] {
			others = append(others, q.Category)
		}
		message = strings.TrimSpace(message + " (also: " + strings.Join(others, ", ") + ")")
	}
	return title, message, true
}

// SendPlan notifies the first suggested plan, if any.
func SendPlan(n Notifier, list []plans.ActionPlan) error {
	title, msg, ok := FormatPlan(list)
	if !ok {
		return nil
	}
	return n.Notify(title, msg)
}
