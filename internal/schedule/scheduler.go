// Package schedule computes check-in reminder times.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/mindcloud/internal/config"
)

// DefaultHour and DefaultMinute apply when the configured time is unparsable.
const (
	DefaultHour   = 20
	DefaultMinute = 30
)

// NextAt returns the first reminder time strictly after now that falls on a
// configured workday and is not a holiday. With no workdays configured every
// day qualifies.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	hour, minute := DefaultHour, DefaultMinute
	if t, err := time.ParseInLocation("15:04", strings.TrimSpace(cfg.Reminder.Time), loc); err == nil {
		hour, minute = t.Hour(), t.Minute()
	}

	workdays := map[string]bool{}
	for _, d := range cfg.Reminder.Workdays {
		if d = strings.ToLower(strings.TrimSpace(d)); len(d) >= 3 {
			workdays[d[:3]] = true
		}
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Reminder.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}
	ok := func(t time.Time) bool {
		day := strings.ToLower(t.Weekday().String()[:3])
		if len(workdays) > 0 && !workdays[day] {
			return false
		}
		return !holidays[t.Format("2006-01-02")]
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// A year of holidays cannot block every day; the bound guards bad config.
	for i := 0; i < 366; i++ {
		if ok(cand) {
			return cand
		}
		cand = time.Date(cand.Year(), cand.Month(), cand.Day()+1, hour, minute, 0, 0, loc)
	}
	return cand
}

// RunConfigured calls f at each reminder time until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	next := NextAt(time.Now(), cfg)
	t := time.NewTimer(time.Until(next))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
			next = NextAt(time.Now(), cfg)
			t.Reset(time.Until(next))
		}
	}
}
