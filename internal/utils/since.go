package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	spanRe  = regexp.MustCompile(`^(\d+)\s*(h|hours?|d|days?|w|weeks?|m|months?)$`)
	dateFmt = []string{"2006-01-02", "2006/01/02", "Jan 2, 2006", "2 Jan 2006", time.RFC3339}
)

// ParseSince turns a --since value into an absolute start time relative to
// now. Accepted forms: today, yesterday, "last week|month", "7d", "2 weeks",
// "3 days ago", and plain dates.
func ParseSince(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	s = strings.TrimSpace(strings.TrimSuffix(s, " ago"))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty --since value")
	}
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch s {
	case "today":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	case "last week", "week":
		return now.AddDate(0, 0, -7), nil
	case "last month", "month":
		return now.AddDate(0, -1, 0), nil
	}

	if m := spanRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2][0] {
		case 'h':
			return now.Add(-time.Duration(n) * time.Hour), nil
		case 'd':
			return now.AddDate(0, 0, -n), nil
		case 'w':
			return now.AddDate(0, 0, -7*n), nil
		case 'm':
			return now.AddDate(0, -n, 0), nil
		}
	}

	for _, f := range dateFmt {
		if t, err := time.ParseInLocation(f, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse --since %q", input)
}
