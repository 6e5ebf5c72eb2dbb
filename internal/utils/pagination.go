package utils

import (
	"fmt"
	"strings"
)

// Page describes one page of a listing.
type Page struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPage clamps current into [1, TotalPages]. An empty listing has one page.
func NewPage(total, perPage, current int) Page {
	if perPage <= 0 {
		perPage = 20
	}
	pages := (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = pages
	}
	return Page{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     (current - 1) * perPage,
		TotalPages: pages,
	}
}

// Range returns the 1-based positions shown on this page.
func (p Page) Range() (start, end int) {
	start = p.Offset + 1
	end = p.Offset + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

func (p Page) HasNext() bool { return p.Current < p.TotalPages }
func (p Page) HasPrev() bool { return p.Current > 1 }

// Summary is a one-line human description.
func (p Page) Summary() string {
	if p.Total == 0 {
		return "No entries"
	}
	start, end := p.Range()
	if p.TotalPages == 1 {
		return fmt.Sprintf("Showing %d-%d of %d entr%s", start, end, p.Total, plural(p.Total))
	}
	return fmt.Sprintf("Showing %d-%d of %d entr%s (page %d of %d)",
		start, end, p.Total, plural(p.Total), p.Current, p.TotalPages)
}

// Navigation hints at the --page flag for adjacent pages.
func (p Page) Navigation() string {
	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("--page %d for previous", p.Current-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("--page %d for next", p.Current+1))
	}
	return strings.Join(hints, ", ")
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
