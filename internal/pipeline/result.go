package pipeline

import (
	"time"

	"github.com/ramanasai/mindcloud/internal/analysis"
	"github.com/ramanasai/mindcloud/internal/cloud"
	"github.com/ramanasai/mindcloud/internal/plans"
)

// Status discriminates analysis results.
type Status string

const (
	StatusOK    Status = "ok"    // points and plans are populated
	StatusEmpty Status = "empty" // nothing was extracted; Snapshot is empty
	StatusStale Status = "stale" // a newer run started; everything else is zero
)

// Result is the outcome of one analysis run. Optional parts are resolved
// here so consumers switch on Status instead of probing fields.
type Result struct {
	Status     Status              `json:"status"`
	Generation uint64              `json:"generation"`
	Extraction analysis.Extraction `json:"extraction"`
	Snapshot   *cloud.Snapshot     `json:"-"`
	Plans      []plans.ActionPlan  `json:"plans"`
	Duration   time.Duration       `json:"duration"`
}

// Points returns the snapshot's points, or nil.
func (r Result) Points() []cloud.Point {
	if r.Snapshot == nil {
		return nil
	}
	return r.Snapshot.Points
}

// Groups returns the snapshot's tone groups, or nil.
func (r Result) Groups() []cloud.Group {
	if r.Snapshot == nil {
		return nil
	}
	return r.Snapshot.Groups
}
