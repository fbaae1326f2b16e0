package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"hmis/internal/hmis/models"
	"hmis/internal/hud"
	"hmis/internal/ingest/source"
	id "hmis/pkg/domain"
	dErrors "hmis/pkg/domain-errors"
	"hmis/pkg/platform/sentinel"
)

// monthsAtPriorResidence approximates each length-of-stay code in months.
var monthsAtPriorResidence = map[hud.Code]int{
	10: 0,
	11: 0,
	2:  1,
	3:  3,
	4:  6,
	5:  12,
}

// isNoShow reports whether an exit destination says the client never arrived.
func isNoShow(destination string) bool {
	d := strings.ToLower(destination)
	return strings.Contains(d, "never") || strings.Contains(d, "no show")
}

// buildAssessments records the entry, exit and annual assessments the row has
// dates for. A no-show destination marks the member absent instead.
func (s *session) buildAssessments(ctx context.Context, rc *rowContext) error {
	m := rc.member
	if isNoShow(rc.row.Get(ColDestination)) {
		if !m.Present {
			return nil
		}
		m.MarkNoShow(s.now())
		if err := s.store.UpdateMember(ctx, m); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark no-show")
		}
		s.report.NoShows++
		return nil
	}
	if !m.Present {
		return nil
	}

	base, err := s.sharedFields(ctx, rc.row, m.ID)
	if err != nil {
		return err
	}

	if !rc.entryDate.IsZero() {
		entry := base.as(models.KindEntry, rc.entryDate)
		if err := s.entryFields(ctx, rc.row, entry); err != nil {
			return err
		}
		if err := s.upsertAssessment(ctx, rc.row.Line, entry); err != nil {
			return err
		}
	}

	if !rc.exitDate.IsZero() {
		exit := base.as(models.KindExit, rc.exitDate)
		if exit.Destination, err = s.normalizer.ResolveCode(ctx, hud.Destination, rc.row.Get(ColDestination)); err != nil {
			return err
		}
		if err := s.upsertAssessment(ctx, rc.row.Line, exit); err != nil {
			return err
		}
	}

	if rc.row.Has(ColAnnualDate) {
		date, err := s.normalizer.ParseDate(ctx, rc.row.Get(ColAnnualDate))
		if err != nil {
			return err
		}
		if !date.IsZero() {
			if err := s.upsertAssessment(ctx, rc.row.Line, base.as(models.KindAnnual, date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// template holds the fields every assessment kind collects.
type template struct {
	models.Assessment
}

func (t *template) as(kind models.AssessmentKind, date time.Time) *models.Assessment {
	a := t.Assessment
	a.ID = id.NewAssessmentID()
	a.Kind = kind
	a.Date = date
	return &a
}

func (s *session) sharedFields(ctx context.Context, row source.Row, memberID id.MemberID) (*template, error) {
	t := &template{Assessment: *models.NewAssessment(id.AssessmentID{}, memberID, "", time.Time{})}
	a := &t.Assessment
	required := []struct {
		column string
		table  *hud.Table
		dst    *hud.Code
	}{
		{ColPhysicalDisability, hud.YesNo, &a.PhysicalDisability},
		{ColDevelopmentalDisability, hud.YesNo, &a.DevelopmentalDisability},
		{ColChronicHealth, hud.YesNo, &a.ChronicHealth},
		{ColHIVAIDS, hud.YesNo, &a.HIVAIDS},
		{ColMentalHealth, hud.YesNo, &a.MentalHealth},
		{ColSubstanceAbuse, hud.SubstanceAbuse, &a.SubstanceAbuse},
		{ColDomesticViolence, hud.YesNo, &a.DomesticViolence},
	}
	for _, f := range required {
		code, err := s.normalizer.ResolveCode(ctx, f.table, row.Get(f.column))
		if err != nil {
			return nil, err
		}
		*f.dst = code
	}

	optional := []struct {
		column string
		table  *hud.Table
		dst    *hud.Code
	}{
		{ColHealthInsurance, hud.YesNo, &a.HealthInsurance},
		{ColDomesticOccurred, hud.DomesticViolenceOccurred, &a.DomesticViolenceOccurred},
		{ColIncome, hud.YesNo, &a.IncomeStatus},
	}
	for _, f := range optional {
		code, err := s.optionalCode(ctx, row, f.column, f.table)
		if err != nil {
			return nil, err
		}
		*f.dst = code
	}
	return t, nil
}

// entryFields fills the fields only entry assessments collect, including
// the derived entering-from-streets answer and homelessness start date.
func (s *session) entryFields(ctx context.Context, row source.Row, a *models.Assessment) error {
	oneYear, err := s.normalizer.ResolveCode(ctx, hud.YesNo, row.Get(ColHomelessOneYear))
	if err != nil {
		return err
	}
	if a.HomelessInThreeYears, err = s.normalizer.ResolveCode(ctx, hud.HomelessCount, row.Get(ColHomelessCount)); err != nil {
		return err
	}
	if a.PriorResidence, err = s.normalizer.ResolveCode(ctx, hud.PriorResidence, row.Get(ColPriorResidence)); err != nil {
		return err
	}
	if a.LengthAtPriorResidence, err = s.normalizer.ResolveCode(ctx, hud.LengthAtPriorResidence, row.Get(ColLengthAtPrior)); err != nil {
		return err
	}
	if a.HousingStatus, err = s.optionalCode(ctx, row, ColHousingStatus, hud.HousingStatus); err != nil {
		return err
	}
	if a.HomelessMonthsInThreeYears, err = s.homelessMonths(ctx, row); err != nil {
		return err
	}

	a.EnteringFromStreets = enteringFromStreets(a.PriorResidence, oneYear)
	if hud.IsLiterallyHomeless(a.PriorResidence) {
		if months, ok := monthsAtPriorResidence[a.LengthAtPriorResidence]; ok {
			a.HomelessStartDate = a.Date.AddDate(0, -months, 0)
		}
	}
	return nil
}

// enteringFromStreets folds the prior-residence and one-year-homeless answers
// into one. Two non-answers combine to the lower non-answer code.
func enteringFromStreets(prior, oneYear hud.Code) hud.Code {
	switch {
	case hud.IsLiterallyHomeless(prior) || oneYear == hud.Yes:
		return hud.Yes
	case prior.IsNonAnswer() && oneYear.IsNonAnswer():
		return min(prior, oneYear)
	default:
		return hud.No
	}
}

// homelessMonths reads the optional months column. Cells that are not labels
// but integers are read as codes, remapping the older standard's values.
func (s *session) homelessMonths(ctx context.Context, row source.Row) (hud.Code, error) {
	if !row.Has(ColHomelessMonths) {
		return hud.Blank, nil
	}
	raw := row.Get(ColHomelessMonths)
	if code, ok := s.normalizer.Match(hud.HomelessMonths, raw); ok {
		return code, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		if code := hud.RemapLegacyMonths(hud.Code(n)); hud.HomelessMonths.Has(code) {
			return code, nil
		}
	}
	return s.normalizer.ResolveCode(ctx, hud.HomelessMonths, raw)
}

// optionalCode resolves a column the export may omit. An absent column is
// Blank rather than "Data not collected".
func (s *session) optionalCode(ctx context.Context, row source.Row, column string, t *hud.Table) (hud.Code, error) {
	if !row.Has(column) {
		return hud.Blank, nil
	}
	return s.normalizer.ResolveCode(ctx, t, row.Get(column))
}

// upsertAssessment creates a unless one exists for its member, kind and date.
// An existing assessment is never overwritten; each differing field is
// reported.
func (s *session) upsertAssessment(ctx context.Context, line int, a *models.Assessment) error {
	existing, err := s.store.FindAssessment(ctx, a.MemberID, a.Kind, a.Date)
	if err == nil {
		for _, conflict := range existing.Diff(a) {
			s.warn(line, WarnAssessmentConflict, "%s assessment of %s keeps stored %s",
				a.Kind, models.FormatDate(a.Date), conflict)
		}
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up assessment")
	}
	a.CreatedAt = s.now()
	if err := s.store.CreateAssessment(ctx, a); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create assessment")
	}
	s.report.AssessmentsCreated[a.Kind]++
	return nil
}
