package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hmis/internal/ingest/source"
	dErrors "hmis/pkg/domain-errors"
)

// LoadProjects gets or creates a project for every non-blank ProjectName
// cell, in one transaction.
func (l *Loader) LoadProjects(ctx context.Context, table *source.Table, opts LoadOptions) (report *Report, err error) {
	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "ingest.LoadProjects")
	defer func() {
		endSpan(span, err)
		if l.metrics != nil {
			l.metrics.ObserveLoad(start, report != nil && report.DryRun, err)
		}
	}()

	if !table.Header.Has(ColProjectName) {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "missing columns: %s", ColProjectName)
	}

	report = newReport()
	err = l.tx.RunInTx(ctx, func(ctx context.Context) error {
		s := &session{Loader: l, report: report}
		for _, row := range table.Rows {
			report.Rows++
			name := strings.TrimSpace(row.Get(ColProjectName))
			if name == "" {
				continue
			}
			if _, err := s.project(ctx, name); err != nil {
				return &RowError{Line: row.Line, Row: row, Err: err}
			}
		}
		if opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if errors.Is(err, errDryRun) {
		report.DryRun = true
		err = nil
	}
	if err != nil {
		return nil, err
	}
	l.logger.InfoContext(ctx, "project load finished", "report", report)
	return report, nil
}
