package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hmis/internal/hmis/models"
	"hmis/internal/hud"
	id "hmis/pkg/domain"
)

// codeColumns pairs each coded assessment column with its model field.
var codeColumns = []struct {
	name  string
	field func(a *models.Assessment) *hud.Code
}{
	{"health_insurance", func(a *models.Assessment) *hud.Code { return &a.HealthInsurance }},
	{"physical_disability", func(a *models.Assessment) *hud.Code { return &a.PhysicalDisability }},
	{"developmental_disability", func(a *models.Assessment) *hud.Code { return &a.DevelopmentalDisability }},
	{"chronic_health", func(a *models.Assessment) *hud.Code { return &a.ChronicHealth }},
	{"hiv_aids", func(a *models.Assessment) *hud.Code { return &a.HIVAIDS }},
	{"mental_health", func(a *models.Assessment) *hud.Code { return &a.MentalHealth }},
	{"substance_abuse", func(a *models.Assessment) *hud.Code { return &a.SubstanceAbuse }},
	{"domestic_violence", func(a *models.Assessment) *hud.Code { return &a.DomesticViolence }},
	{"domestic_violence_occurred", func(a *models.Assessment) *hud.Code { return &a.DomesticViolenceOccurred }},
	{"income_status", func(a *models.Assessment) *hud.Code { return &a.IncomeStatus }},
	{"housing_status", func(a *models.Assessment) *hud.Code { return &a.HousingStatus }},
	{"entering_from_streets", func(a *models.Assessment) *hud.Code { return &a.EnteringFromStreets }},
	{"homeless_in_three_years", func(a *models.Assessment) *hud.Code { return &a.HomelessInThreeYears }},
	{"homeless_months_in_three_years", func(a *models.Assessment) *hud.Code { return &a.HomelessMonthsInThreeYears }},
	{"prior_residence", func(a *models.Assessment) *hud.Code { return &a.PriorResidence }},
	{"length_at_prior_residence", func(a *models.Assessment) *hud.Code { return &a.LengthAtPriorResidence }},
	{"destination", func(a *models.Assessment) *hud.Code { return &a.Destination }},
}

// assessmentColumns is the select and insert column order.
var assessmentColumns = func() string {
	cols := []string{"id", "member_id", "kind", "assessment_date"}
	for _, c := range codeColumns {
		cols = append(cols, c.name)
	}
	cols = append(cols, "homeless_start_date", "created_at")
	return strings.Join(cols, ", ")
}()

func (s *Store) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	args := []any{uuid.UUID(a.ID), uuid.UUID(a.MemberID), string(a.Kind), a.Date}
	for _, c := range codeColumns {
		args = append(args, nullCode(*c.field(a)))
	}
	args = append(args, nullDate(a.HomelessStartDate), a.CreatedAt)

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := `INSERT INTO assessments (` + assessmentColumns + `) VALUES (` + strings.Join(placeholders, ", ") + `)`
	if _, err := s.exec(ctx).ExecContext(ctx, query, args...); err != nil {
		return translate(err, "create assessment")
	}
	return nil
}

func (s *Store) FindAssessment(ctx context.Context, memberID id.MemberID, kind models.AssessmentKind, date time.Time) (*models.Assessment, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments
		WHERE member_id = $1 AND kind = $2 AND assessment_date = $3`,
		uuid.UUID(memberID), string(kind), date)
	a, err := scanAssessment(row)
	if err != nil {
		return nil, translate(err, "find assessment")
	}
	return a, nil
}

// ListAssessments returns assessments of kind ordered by member, then date.
func (s *Store) ListAssessments(ctx context.Context, kind models.AssessmentKind) ([]*models.Assessment, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments
		WHERE kind = $1 ORDER BY member_id::text, assessment_date`, string(kind))
	if err != nil {
		return nil, translate(err, "list assessments")
	}
	defer rows.Close()

	var out []*models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, translate(err, "scan assessment")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list assessments")
	}
	return out, nil
}

func scanAssessment(row scanner) (*models.Assessment, error) {
	var (
		a           models.Assessment
		aid, mid    uuid.UUID
		kind        string
		date, start sql.NullTime
	)
	codes := make([]sql.NullInt64, len(codeColumns))
	dest := []any{&aid, &mid, &kind, &date}
	for i := range codes {
		dest = append(dest, &codes[i])
	}
	dest = append(dest, &start, &a.CreatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	a.ID = id.AssessmentID(aid)
	a.MemberID = id.MemberID(mid)
	a.Kind = models.AssessmentKind(kind)
	a.Date = dateOf(date)
	for i, c := range codeColumns {
		*c.field(&a) = codeOf(codes[i])
	}
	a.HomelessStartDate = dateOf(start)
	return &a, nil
}
