// Package export dumps the store as one CSV per entity. Every coded column is
// followed by a "<column> display value" column holding its label.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hmis/internal/hmis/models"
	"hmis/internal/hud"
	id "hmis/pkg/domain"
)

// File names written by Dump.
const (
	ClientsFile           = "clients.csv"
	EnrollmentsFile       = "enrollments.csv"
	EntryAssessmentsFile  = "entry_assessments.csv"
	AnnualAssessmentsFile = "annual_assessments.csv"
	ExitAssessmentsFile   = "exit_assessments.csv"
)

const displaySuffix = " display value"

type Source interface {
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
	ListHouseholds(ctx context.Context) ([]*models.Household, error)
	ListMembersByHousehold(ctx context.Context, householdID id.HouseholdID) ([]*models.HouseholdMember, error)
	ListAssessments(ctx context.Context, kind models.AssessmentKind) ([]*models.Assessment, error)
}

// TxRunner gives Dump a consistent read of every table.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Dumper struct {
	src    Source
	tx     TxRunner
	logger *slog.Logger
	tracer trace.Tracer
}

type Option func(*Dumper)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dumper) {
		d.logger = logger
	}
}

func New(src Source, tx TxRunner, opts ...Option) *Dumper {
	d := &Dumper{
		src:    src,
		tx:     tx,
		logger: slog.Default(),
		tracer: otel.Tracer("hmis/internal/export"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// snapshot is everything Dump writes, read in one transaction. Members are
// grouped by household, head first, and no-shows are already filtered out
// along with their assessments.
type snapshot struct {
	clients     []*models.Client
	members     []*models.HouseholdMember
	projects    map[id.ProjectID]*models.Project
	households  map[id.HouseholdID]*models.Household
	assessments map[models.AssessmentKind][]*models.Assessment
}

// Dump writes the five export files into dir, creating it if needed.
func (d *Dumper) Dump(ctx context.Context, dir string) error {
	ctx, span := d.tracer.Start(ctx, "export.Dump")
	defer span.End()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	var snap *snapshot
	err := d.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		snap, err = d.read(ctx)
		return err
	})
	if err != nil {
		return err
	}

	files := map[string]func(io.Writer) error{
		ClientsFile:           func(w io.Writer) error { return WriteClients(w, snap.clients) },
		EnrollmentsFile:       func(w io.Writer) error { return writeEnrollments(w, snap) },
		EntryAssessmentsFile:  assessmentWriter(models.KindEntry, snap),
		AnnualAssessmentsFile: assessmentWriter(models.KindAnnual, snap),
		ExitAssessmentsFile:   assessmentWriter(models.KindExit, snap),
	}
	g, ctx := errgroup.WithContext(ctx)
	for name, write := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(filepath.Join(dir, name), write)
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return err
	}
	d.logger.InfoContext(ctx, "dumped HUD data", "dir", dir,
		"clients", len(snap.clients), "enrollments", len(snap.members))
	return nil
}

func (d *Dumper) read(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{
		projects:    make(map[id.ProjectID]*models.Project),
		households:  make(map[id.HouseholdID]*models.Household),
		assessments: make(map[models.AssessmentKind][]*models.Assessment),
	}
	var err error
	if snap.clients, err = d.src.ListClients(ctx); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	projects, err := d.src.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		snap.projects[p.ID] = p
	}
	households, err := d.src.ListHouseholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}
	present := make(map[id.MemberID]bool)
	for _, h := range households {
		snap.households[h.ID] = h
		members, err := d.src.ListMembersByHousehold(ctx, h.ID)
		if err != nil {
			return nil, fmt.Errorf("list members of household %s: %w", h.ID, err)
		}
		for _, m := range members {
			if m.Present {
				present[m.ID] = true
				snap.members = append(snap.members, m)
			}
		}
	}

	for _, kind := range []models.AssessmentKind{models.KindEntry, models.KindAnnual, models.KindExit} {
		list, err := d.src.ListAssessments(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list %s assessments: %w", kind, err)
		}
		for _, a := range list {
			if present[a.MemberID] {
				snap.assessments[kind] = append(snap.assessments[kind], a)
			}
		}
	}
	return snap, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// record accumulates one CSV row, pairing coded values with their labels.
type record struct {
	header []string
	values []string
	err    error
}

func (r *record) text(name, value string) {
	r.header = append(r.header, name)
	r.values = append(r.values, value)
}

func (r *record) code(name string, t *hud.Table, c hud.Code) {
	label, err := display(t, c)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
	r.text(name, c.String())
	r.text(name+displaySuffix, label)
}

func (r *record) codes(name string, t *hud.Table, cs []hud.Code) {
	labels := make([]string, 0, len(cs))
	for _, c := range cs {
		label, err := display(t, c)
		if err != nil && r.err == nil {
			r.err = fmt.Errorf("%s: %w", name, err)
		}
		labels = append(labels, label)
	}
	r.text(name, models.JoinCodes(cs))
	r.text(name+displaySuffix, strings.Join(labels, ";"))
}

// display returns c's label. Blank has no label; a code outside the table is
// an error.
func display(t *hud.Table, c hud.Code) (string, error) {
	if c == hud.Blank {
		return "", nil
	}
	label, ok := t.Label(c)
	if !ok {
		return "", fmt.Errorf("HUD code %s not found in %s", c, t.Name)
	}
	return label, nil
}

// table writes records sharing one header. header is used when there are no
// rows.
func table(w io.Writer, header []string, rows []*record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if r.err != nil {
			return r.err
		}
		if err := cw.Write(r.values); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func clientRecord(c *models.Client) *record {
	r := &record{}
	r.text("id", c.ID.String())
	r.text("first_name", c.First)
	r.text("middle_name", c.Middle)
	r.text("last_name", c.Last)
	r.text("name_suffix", c.Suffix)
	r.text("dob", models.FormatDate(c.DOB))
	r.text("ssn", c.SSN)
	r.code("gender", hud.Gender, c.Gender)
	r.code("ethnicity", hud.Ethnicity, c.Ethnicity)
	r.codes("race", hud.Race, c.Race)
	r.code("veteran_status", hud.YesNo, c.VeteranStatus)
	return r
}

// WriteClients writes clients.csv content. Race is ";"-joined codes with
// ";"-joined labels alongside.
func WriteClients(w io.Writer, clients []*models.Client) error {
	header := clientRecord(&models.Client{}).header
	rows := make([]*record, len(clients))
	for i, c := range clients {
		rows[i] = clientRecord(c)
	}
	return table(w, header, rows)
}

func enrollmentRecord(m *models.HouseholdMember, project *models.Project) *record {
	r := &record{}
	r.text("id", m.ID.String())
	r.text("client_id", m.ClientID.String())
	r.text("household_id", m.HouseholdID.String())
	if project != nil {
		r.text("project_id", project.ID.String())
		r.text("project_name", project.Name)
	} else {
		r.text("project_id", "")
		r.text("project_name", "")
	}
	r.code("hoh_relationship", hud.HoHRelationship, m.Relationship)
	r.text("entry_date", models.FormatDate(m.EntryDate))
	r.text("exit_date", models.FormatDate(m.ExitDate))
	return r
}

func writeEnrollments(w io.Writer, snap *snapshot) error {
	header := enrollmentRecord(&models.HouseholdMember{Relationship: hud.Blank}, nil).header
	rows := make([]*record, len(snap.members))
	for i, m := range snap.members {
		var project *models.Project
		if h, ok := snap.households[m.HouseholdID]; ok {
			project = snap.projects[h.ProjectID]
		}
		rows[i] = enrollmentRecord(m, project)
	}
	return table(w, header, rows)
}

func assessmentRecord(a *models.Assessment) *record {
	r := &record{}
	r.text("enrollment_id", a.MemberID.String())
	r.text("assessment_date", models.FormatDate(a.Date))
	for _, f := range a.Fields() {
		if f.Table == nil {
			r.text(f.Name, f.Value())
			continue
		}
		r.code(f.Name, f.Table, f.Code)
	}
	return r
}

func assessmentWriter(kind models.AssessmentKind, snap *snapshot) func(io.Writer) error {
	return func(w io.Writer) error {
		return WriteAssessments(w, kind, snap.assessments[kind])
	}
}

// WriteAssessments writes one kind's assessments. enrollment_id is the
// member the assessment belongs to.
func WriteAssessments(w io.Writer, kind models.AssessmentKind, list []*models.Assessment) error {
	header := assessmentRecord(models.NewAssessment(id.AssessmentID{}, id.MemberID{}, kind, time.Time{})).header
	rows := make([]*record, len(list))
	for i, a := range list {
		rows[i] = assessmentRecord(a)
	}
	return table(w, header, rows)
}
