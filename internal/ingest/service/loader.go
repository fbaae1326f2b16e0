// Package service loads client exports into the HMIS store: it resolves
// clients, rebuilds households and records assessments in one transaction.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hmis/internal/hmis/models"
	"hmis/internal/hud"
	"hmis/internal/ingest/metrics"
	"hmis/internal/ingest/source"
	dErrors "hmis/pkg/domain-errors"
)

const tracerName = "hmis/internal/ingest/service"

// errDryRun aborts the transaction of a dry run after every row succeeded.
var errDryRun = errors.New("dry run")

// Loader runs loads. It holds no per-load state and may be reused.
type Loader struct {
	store          Store
	tx             StoreTx
	normalizer     *hud.Normalizer
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	now            func() time.Time
	strongMatching bool
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithNormalizer sets the normalizer used for every cell. Attach a Prompter to
// it for interactive loads.
func WithNormalizer(n *hud.Normalizer) Option {
	return func(l *Loader) {
		l.normalizer = n
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(l *Loader) {
		l.tracer = t
	}
}

// WithClock sets the time stamped on created and updated records.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		l.now = now
	}
}

// WithStrongMatching narrows SSN matches to clients that also share first
// name, last name and date of birth.
func WithStrongMatching(enabled bool) Option {
	return func(l *Loader) {
		l.strongMatching = enabled
	}
}

// New constructs a Loader over store. tx must run its function in a
// transaction that store joins through the context.
func New(store Store, tx StoreTx, opts ...Option) (*Loader, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	l := &Loader{
		store:  store,
		tx:     tx,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.normalizer == nil {
		l.normalizer = hud.NewNormalizer(hud.WithClock(l.now))
	}
	if l.tracer == nil {
		l.tracer = otel.Tracer(tracerName)
	}
	return l, nil
}

// LoadOptions tunes one load.
type LoadOptions struct {
	// DryRun runs the whole load and then rolls it back.
	DryRun bool
}

// rowContext carries one row and what has been resolved for it between the
// two passes.
type rowContext struct {
	row          source.Row
	relationship hud.Code
	entryDate    time.Time
	exitDate     time.Time
	client       *models.Client
	member       *models.HouseholdMember
}

// householdAnchor is the last head of household without an SSN. Dependents
// with a blank head-of-household SSN join its household.
type householdAnchor struct {
	member    *models.HouseholdMember
	entryDate time.Time
}

// session is the state of a single load.
type session struct {
	*Loader
	report *Report
	anchor *householdAnchor
}

// Load resolves every row of table inside one transaction. Pass 1 resolves
// clients and the households of heads; pass 2 links dependents in file order.
// Any row failure rolls the whole load back and is returned as a *RowError.
func (l *Loader) Load(ctx context.Context, table *source.Table, opts LoadOptions) (report *Report, err error) {
	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "ingest.Load", trace.WithAttributes(
		attribute.Int("rows", len(table.Rows)),
		attribute.Bool("dry_run", opts.DryRun),
	))
	defer func() {
		endSpan(span, err)
		if l.metrics != nil {
			l.metrics.ObserveLoad(start, report != nil && report.DryRun, err)
		}
	}()

	if missing := table.Header.Missing(RequiredColumns); len(missing) > 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "missing columns: %s", strings.Join(missing, ", "))
	}

	report = newReport()
	err = l.tx.RunInTx(ctx, func(ctx context.Context) error {
		s := &session{Loader: l, report: report}
		if err := s.run(ctx, table.Rows); err != nil {
			return err
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

	l.logger.InfoContext(ctx, "client load finished", "report", report)
	if !report.DryRun {
		l.record(report)
	}
	return report, nil
}

func (s *session) run(ctx context.Context, rows []source.Row) error {
	contexts := make([]*rowContext, len(rows))
	s.report.Rows = len(rows)

	pass1, span := s.tracer.Start(ctx, "ingest.resolveClients")
	for i, row := range rows {
		rc := &rowContext{row: row}
		contexts[i] = rc
		if err := s.resolveRow(pass1, rc); err != nil {
			endSpan(span, err)
			return &RowError{Line: row.Line, Row: row, Err: err}
		}
		s.report.Clients = append(s.report.Clients, rc.client.ID)
	}
	endSpan(span, nil)

	pass2, span := s.tracer.Start(ctx, "ingest.linkHouseholds")
	for _, rc := range contexts {
		if err := s.linkRow(pass2, rc); err != nil {
			endSpan(span, err)
			return &RowError{Line: rc.row.Line, Row: rc.row, Err: err}
		}
	}
	endSpan(span, nil)
	return nil
}

// resolveRow is pass 1: the client, and for heads of household the
// membership and assessments as well.
func (s *session) resolveRow(ctx context.Context, rc *rowContext) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeCancelled, "load cancelled")
	}
	if err := s.resolveClient(ctx, rc); err != nil {
		return err
	}
	if rc.relationship != hud.RelSelf {
		return nil
	}
	if err := s.resolveMembership(ctx, rc); err != nil {
		return err
	}
	return s.buildAssessments(ctx, rc)
}

// linkRow is pass 2. A head resolved in pass 1 becomes the household anchor
// when its client has no SSN; any other head clears it.
func (s *session) linkRow(ctx context.Context, rc *rowContext) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeCancelled, "load cancelled")
	}
	if rc.member != nil {
		if rc.client.HasSSN() {
			s.anchor = nil
		} else {
			s.anchor = &householdAnchor{member: rc.member, entryDate: rc.entryDate}
		}
		return nil
	}
	if err := s.resolveMembership(ctx, rc); err != nil {
		return err
	}
	return s.buildAssessments(ctx, rc)
}

func (s *session) warn(line int, kind WarningKind, format string, args ...any) {
	s.report.warn(line, kind, format, args...)
	s.logger.Debug("load warning", "line", line, "kind", kind)
}

func (l *Loader) record(r *Report) {
	if l.metrics == nil {
		return
	}
	l.metrics.RowsProcessed.Add(float64(r.Rows))
	l.metrics.ClientsCreated.Add(float64(r.ClientsCreated))
	l.metrics.ClientsUpdated.Add(float64(r.ClientsUpdated))
	l.metrics.HouseholdsCreated.Add(float64(r.HouseholdsCreated))
	l.metrics.MembersCreated.Add(float64(r.MembersCreated))
	l.metrics.NoShows.Add(float64(r.NoShows))
	for kind, n := range r.AssessmentsCreated {
		l.metrics.AddAssessmentsCreated(string(kind), n)
	}
	for _, w := range r.Warnings {
		l.metrics.IncrementWarnings(string(w.Kind))
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}
