package models

import (
	"time"

	"hmis/internal/hud"
	id "hmis/pkg/domain"
)

// AssessmentKind distinguishes the three HUD collection points.
type AssessmentKind string

const (
	KindEntry  AssessmentKind = "entry"
	KindAnnual AssessmentKind = "annual"
	KindExit   AssessmentKind = "exit"
)

// Assessment is one data-collection point for a household member. Entry and
// exit are one per member; annual may repeat. Uniqueness is (member, kind, date).
type Assessment struct {
	ID       id.AssessmentID
	MemberID id.MemberID
	Kind     AssessmentKind
	Date     time.Time

	HealthInsurance          hud.Code
	PhysicalDisability       hud.Code
	DevelopmentalDisability  hud.Code
	ChronicHealth            hud.Code
	HIVAIDS                  hud.Code
	MentalHealth             hud.Code
	SubstanceAbuse           hud.Code
	DomesticViolence         hud.Code
	DomesticViolenceOccurred hud.Code
	IncomeStatus             hud.Code

	// Entry only.
	HousingStatus              hud.Code
	EnteringFromStreets        hud.Code
	HomelessStartDate          time.Time
	HomelessInThreeYears       hud.Code
	HomelessMonthsInThreeYears hud.Code
	PriorResidence             hud.Code
	LengthAtPriorResidence     hud.Code

	// Exit only.
	Destination hud.Code

	CreatedAt time.Time
}

// NewAssessment returns an assessment with every coded field blank.
func NewAssessment(assessmentID id.AssessmentID, memberID id.MemberID, kind AssessmentKind, date time.Time) *Assessment {
	return &Assessment{
		ID:                         assessmentID,
		MemberID:                   memberID,
		Kind:                       kind,
		Date:                       date,
		HealthInsurance:            hud.Blank,
		PhysicalDisability:         hud.Blank,
		DevelopmentalDisability:    hud.Blank,
		ChronicHealth:              hud.Blank,
		HIVAIDS:                    hud.Blank,
		MentalHealth:               hud.Blank,
		SubstanceAbuse:             hud.Blank,
		DomesticViolence:           hud.Blank,
		DomesticViolenceOccurred:   hud.Blank,
		IncomeStatus:               hud.Blank,
		HousingStatus:              hud.Blank,
		EnteringFromStreets:        hud.Blank,
		HomelessInThreeYears:       hud.Blank,
		HomelessMonthsInThreeYears: hud.Blank,
		PriorResidence:             hud.Blank,
		LengthAtPriorResidence:     hud.Blank,
		Destination:                hud.Blank,
	}
}

// Field is one exported assessment column. Table is nil for date columns.
type Field struct {
	Name  string
	Table *hud.Table
	Code  hud.Code
	Date  time.Time
}

// Value is the column's export text.
func (f Field) Value() string {
	if f.Table == nil {
		return FormatDate(f.Date)
	}
	return f.Code.String()
}

// Fields lists the columns collected at a's kind, in export order.
func (a *Assessment) Fields() []Field {
	fields := []Field{
		{Name: "health_insurance", Table: hud.YesNo, Code: a.HealthInsurance},
		{Name: "physical_disability", Table: hud.YesNo, Code: a.PhysicalDisability},
		{Name: "developmental_disability", Table: hud.YesNo, Code: a.DevelopmentalDisability},
		{Name: "chronic_health", Table: hud.YesNo, Code: a.ChronicHealth},
		{Name: "hiv_aids", Table: hud.YesNo, Code: a.HIVAIDS},
		{Name: "mental_health", Table: hud.YesNo, Code: a.MentalHealth},
		{Name: "substance_abuse", Table: hud.SubstanceAbuse, Code: a.SubstanceAbuse},
	}
	if a.Kind == KindEntry {
		fields = append(fields,
			Field{Name: "housing_status", Table: hud.HousingStatus, Code: a.HousingStatus},
			Field{Name: "entering_from_streets", Table: hud.YesNo, Code: a.EnteringFromStreets},
			Field{Name: "homeless_start_date", Date: a.HomelessStartDate},
			Field{Name: "homeless_in_three_years", Table: hud.HomelessCount, Code: a.HomelessInThreeYears},
			Field{Name: "homeless_months_in_three_years", Table: hud.HomelessMonths, Code: a.HomelessMonthsInThreeYears},
			Field{Name: "prior_residence", Table: hud.PriorResidence, Code: a.PriorResidence},
			Field{Name: "length_at_prior_residence", Table: hud.LengthAtPriorResidence, Code: a.LengthAtPriorResidence},
		)
	}
	fields = append(fields,
		Field{Name: "domestic_violence", Table: hud.YesNo, Code: a.DomesticViolence},
		Field{Name: "domestic_violence_occurred", Table: hud.DomesticViolenceOccurred, Code: a.DomesticViolenceOccurred},
		Field{Name: "income_status", Table: hud.YesNo, Code: a.IncomeStatus},
	)
	if a.Kind == KindExit {
		fields = append(fields, Field{Name: "destination", Table: hud.Destination, Code: a.Destination})
	}
	return fields
}

// Diff lists the fields where incoming disagrees with a.
func (a *Assessment) Diff(incoming *Assessment) []FieldConflict {
	stored, next := a.Fields(), incoming.Fields()
	var conflicts []FieldConflict
	for i := range stored {
		if stored[i].Value() != next[i].Value() {
			conflicts = append(conflicts, FieldConflict{
				Field:    stored[i].Name,
				Stored:   stored[i].Value(),
				Incoming: next[i].Value(),
			})
		}
	}
	return conflicts
}

// FormatDate writes dates as YYYY-MM-DD; the zero time is "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
