package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("entry not found")

// tsLayout is fixed width so timestamps order correctly as text.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Filter restricts listings. Zero values match everything.
type Filter struct {
	Category string
	Since    time.Time
}

func (f Filter) args() []any {
	since := ""
	if !f.Since.IsZero() {
		since = f.Since.UTC().Format(tsLayout)
	}
	return []any{f.Category, f.Category, since, since}
}

const filterClause = `(? = '' OR category = ?) AND (? = '' OR ts >= ?)`

// Entry is one journal row.
type Entry struct {
	ID       int64
	TS       time.Time
	Category string
	Tags     sql.NullString
	Text     string
}

// TagList splits the comma separated tags.
func (e Entry) TagList() []string {
	if !e.Tags.Valid || e.Tags.String == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(e.Tags.String, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// AddEntry inserts an entry and returns its id. A zero TS means now.
func AddEntry(ctx context.Context, dbh *sql.DB, e Entry) (int64, error) {
	text := strings.TrimSpace(e.Text)
	if text == "" {
		return 0, errors.New("entry text is empty")
	}
	if e.Category == "" {
		e.Category = "note"
	}
	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	res, err := dbh.ExecContext(ctx, `
		INSERT INTO entries (ts, category, tags, text)
		VALUES (?, ?, ?, ?)
	`, e.TS.UTC().Format(tsLayout), e.Category, e.Tags, text)
	if err != nil {
		return 0, fmt.Errorf("add entry: %w", err)
	}
	return res.LastInsertId()
}

// GetEntry returns one entry by id.
func GetEntry(ctx context.Context, dbh *sql.DB, id int64) (Entry, error) {
	row := dbh.QueryRowContext(ctx, `
		SELECT id, ts, category, tags, text
		FROM entries WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return e, err
}

// CountEntries returns the number of entries matching f.
func CountEntries(ctx context.Context, dbh *sql.DB, f Filter) (int, error) {
	var n int
	err := dbh.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE `+filterClause, f.args()...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// ListEntries returns entries newest first.
func ListEntries(ctx context.Context, dbh *sql.DB, f Filter, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	args := append(f.args(), limit, offset)
	rows, err := dbh.QueryContext(ctx, `
		SELECT id, ts, category, tags, text
		FROM entries
		WHERE `+filterClause+`
		ORDER BY ts DESC, id DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentText joins the n most recent entries oldest first, one per paragraph,
// ready for analysis.
func RecentText(ctx context.Context, dbh *sql.DB, n int) (string, error) {
	entries, err := ListEntries(ctx, dbh, Filter{}, n, 0)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		parts = append(parts, entries[i].Text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// EntryCountsByDate returns per-day counts between start and end, keyed YYYY-MM-DD in loc.
func EntryCountsByDate(ctx context.Context, dbh *sql.DB, start, end time.Time, loc *time.Location) (map[string]int, error) {
	if loc == nil {
		loc = time.Local
	}
	rows, err := dbh.QueryContext(ctx, `
		SELECT ts FROM entries WHERE ts >= ? AND ts < ?
	`, start.UTC().Format(tsLayout), end.UTC().Format(tsLayout))
	if err != nil {
		return nil, fmt.Errorf("count by date: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			continue
		}
		counts[t.In(loc).Format("2006-01-02")]++
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var ts string
	if err := s.Scan(&e.ID, &ts, &e.Category, &e.Tags, &e.Text); err != nil {
		return Entry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %d: bad timestamp %q: %w", e.ID, ts, err)
	}
	e.TS = t
	return e, nil
}
