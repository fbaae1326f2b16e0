package service

import (
	"fmt"
	"log/slog"

	"hmis/internal/hmis/models"
	"hmis/internal/ingest/source"
	id "hmis/pkg/domain"
)

// WarningKind classifies non-fatal findings.
type WarningKind string

const (
	WarnClientConflict     WarningKind = "client_conflict"
	WarnAssessmentConflict WarningKind = "assessment_conflict"
	WarnAmbiguousMatch     WarningKind = "ambiguous_match"
)

// Warning is a finding that did not stop the load.
type Warning struct {
	Line    int
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
}

// Report summarizes one load.
type Report struct {
	Rows               int
	ClientsCreated     int
	ClientsMatched     int
	ClientsUpdated     int
	ProjectsCreated    int
	HouseholdsCreated  int
	MembersCreated     int
	MembersReused      int
	AssessmentsCreated map[models.AssessmentKind]int
	NoShows            int
	DryRun             bool

	// Clients lists the client resolved for each row, in row order.
	Clients  []id.ClientID
	Warnings []Warning
}

func newReport() *Report {
	return &Report{AssessmentsCreated: make(map[models.AssessmentKind]int)}
}

// TotalAssessments sums AssessmentsCreated over every kind.
func (r *Report) TotalAssessments() int {
	n := 0
	for _, c := range r.AssessmentsCreated {
		n += c
	}
	return n
}

func (r *Report) warn(line int, kind WarningKind, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// LogValue renders the counters for structured logs.
func (r *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rows", r.Rows),
		slog.Int("clients_created", r.ClientsCreated),
		slog.Int("clients_matched", r.ClientsMatched),
		slog.Int("clients_updated", r.ClientsUpdated),
		slog.Int("projects_created", r.ProjectsCreated),
		slog.Int("households_created", r.HouseholdsCreated),
		slog.Int("members_created", r.MembersCreated),
		slog.Int("members_reused", r.MembersReused),
		slog.Int("assessments_created", r.TotalAssessments()),
		slog.Int("no_shows", r.NoShows),
		slog.Int("warnings", len(r.Warnings)),
		slog.Bool("dry_run", r.DryRun),
	)
}

// RowError wraps a failure with the row that caused it.
type RowError struct {
	Line int
	Row  source.Row
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v (row %s)", e.Line, e.Err, e.Row)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
