package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hmis/internal/hmis/models"
	"hmis/internal/hmis/store/memory"
	"hmis/internal/hud"
	"hmis/internal/hud/mocks"
	"hmis/internal/ingest/metrics"
	"hmis/internal/ingest/source"
	id "hmis/pkg/domain"
	dErrors "hmis/pkg/domain-errors"
)

// row is one spreadsheet row keyed by column name.
type row map[string]string

func (r row) with(kv ...string) row {
	out := make(row, len(r)+len(kv)/2)
	for k, v := range r {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

func label(t *hud.Table, code hud.Code) string {
	l, ok := t.Label(code)
	if !ok {
		panic("no label for code " + code.String() + " in " + t.Name)
	}
	return l
}

// head is a complete head-of-household row entering Shelter A on 2016-01-15
// from the street.
func head(first, last, ssn string) row {
	return row{
		ColFirstName:               first,
		ColLastName:                last,
		ColDOB:                     "1/2/1980",
		ColSSN:                     ssn,
		ColEthnicity:               "Non-Hispanic/Non-Latino",
		ColGender:                  "Female",
		ColVeteranStatus:           "No",
		ColRace:                    "White",
		ColRelationship:            "Self (head of household)",
		ColHeadSSN:                 ssn,
		ColProgramName:             "Shelter A",
		ColProgramStart:            "1/15/2016",
		ColPhysicalDisability:      "No",
		ColDevelopmentalDisability: "No",
		ColChronicHealth:           "No",
		ColHIVAIDS:                 "No",
		ColMentalHealth:            "No",
		ColSubstanceAbuse:          "No",
		ColDomesticViolence:        "No",
		ColHomelessOneYear:         "No",
		ColHomelessCount:           "One time",
		ColPriorResidence:          label(hud.PriorResidence, hud.PriorNotForHabitation),
		ColLengthAtPrior:           "One to three months",
	}
}

// child is a dependent of the head with headSSN.
func child(first, headSSN string) row {
	return head(first, "Doe", "").with(
		ColDOB, "3/4/2010",
		ColRelationship, "Head of household's child",
		ColHeadSSN, headSSN,
	)
}

// table lays rows out under the required columns plus any optional column a
// row sets.
func table(t *testing.T, rows ...row) *source.Table {
	header := slices.Clone(RequiredColumns)
	for _, r := range rows {
		for name := range r {
			if !slices.Contains(header, name) {
				header = append(header, name)
			}
		}
	}
	records := [][]string{header}
	for _, r := range rows {
		rec := make([]string, len(header))
		for i, name := range header {
			rec[i] = r[name]
		}
		records = append(records, rec)
	}
	tbl, err := source.FromRecords(records, nil)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl
}

// =============================================================================
// Loader Test Suite
// =============================================================================

type LoaderSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	loader *Loader
	now    time.Time
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.now = time.Date(2017, 6, 1, 12, 0, 0, 0, time.UTC)
	s.loader = s.newLoader()
}

func (s *LoaderSuite) newLoader(opts ...Option) *Loader {
	base := []Option{
		WithClock(func() time.Time { return s.now }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	l, err := New(s.store, s.store, append(base, opts...)...)
	s.Require().NoError(err)
	return l
}

func (s *LoaderSuite) load(rows ...row) (*Report, error) {
	return s.loader.Load(s.ctx, table(s.T(), rows...), LoadOptions{})
}

func (s *LoaderSuite) clients() []*models.Client {
	clients, err := s.store.ListClients(s.ctx)
	s.Require().NoError(err)
	return clients
}

// members lists every membership, grouped by household with heads first.
func (s *LoaderSuite) members() []*models.HouseholdMember {
	households, err := s.store.ListHouseholds(s.ctx)
	s.Require().NoError(err)
	var out []*models.HouseholdMember
	for _, h := range households {
		members, err := s.store.ListMembersByHousehold(s.ctx, h.ID)
		s.Require().NoError(err)
		out = append(out, members...)
	}
	return out
}

func (s *LoaderSuite) assessments(kind models.AssessmentKind) []*models.Assessment {
	list, err := s.store.ListAssessments(s.ctx, kind)
	s.Require().NoError(err)
	return list
}

func warningKinds(r *Report) []WarningKind {
	kinds := make([]WarningKind, len(r.Warnings))
	for i, w := range r.Warnings {
		kinds[i] = w.Kind
	}
	return kinds
}

func (s *LoaderSuite) TestNew() {
	s.Run("store is required", func() {
		_, err := New(nil, s.store)
		s.Error(err)
	})

	s.Run("transaction runner is required", func() {
		_, err := New(s.store, nil)
		s.Error(err)
	})
}

func (s *LoaderSuite) TestHeadOfHousehold() {
	report, err := s.load(head("Jane", "Doe", "123-45-6789").with(ColHeadSSN, "123456789"))
	s.Require().NoError(err)

	s.Equal(1, report.ClientsCreated)
	s.Equal(1, report.ProjectsCreated)
	s.Equal(1, report.HouseholdsCreated)
	s.Equal(1, report.MembersCreated)
	s.Equal(1, report.AssessmentsCreated[models.KindEntry])
	s.Empty(report.Warnings)

	clients := s.clients()
	s.Require().Len(clients, 1)
	s.Equal("123456789", clients[0].SSN)
	s.Equal(hud.Code(0), clients[0].Gender)
	s.Equal([]hud.Code{5}, clients[0].Race)

	members := s.members()
	s.Require().Len(members, 1)
	s.True(members[0].IsHead())
	s.True(members[0].Present)
	s.Equal(models.StatusEnrolled, members[0].Status())
}

func (s *LoaderSuite) TestHouseholdLinkage() {
	s.Run("dependent joins the remembered head without an SSN", func() {
		s.SetupTest()
		report, err := s.load(head("Ann", "Doe", ""), child("Tim", ""), child("Sue", ""))
		s.Require().NoError(err)

		s.Equal(1, report.HouseholdsCreated)
		s.Equal(3, report.MembersCreated)
		members := s.members()
		s.Require().Len(members, 3)
		s.Equal(members[0].HouseholdID, members[1].HouseholdID)
		s.Equal(members[0].HouseholdID, members[2].HouseholdID)
		s.Equal(hud.RelChild, members[1].Relationship)
	})

	s.Run("dependent listed before its head fails", func() {
		s.SetupTest()
		_, err := s.load(child("Tim", ""), head("Ann", "Doe", ""))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeMissingHoH))

		var rowErr *RowError
		s.Require().True(errors.As(err, &rowErr))
		s.Equal(2, rowErr.Line)
		s.Empty(s.clients(), "failed load must leave the store unchanged")
	})

	s.Run("head with an SSN is not remembered", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789"), child("Tim", ""))
		s.True(dErrors.HasCode(err, dErrors.CodeMissingHoH))
	})

	s.Run("remembered head must share the entry date", func() {
		s.SetupTest()
		_, err := s.load(head("Ann", "Doe", ""), child("Tim", "").with(ColProgramStart, "1/16/2016"))
		s.True(dErrors.HasCode(err, dErrors.CodeMissingHoH))
	})

	s.Run("dependent found by head SSN regardless of order", func() {
		s.SetupTest()
		report, err := s.load(child("Tim", "123456789"), head("Jane", "Doe", "123-45-6789"))
		s.Require().NoError(err)
		s.Equal(1, report.HouseholdsCreated)
		members := s.members()
		s.Require().Len(members, 2)
		s.Equal(members[0].HouseholdID, members[1].HouseholdID)
	})

	s.Run("dependent without a program start date fails", func() {
		for _, headSSN := range []string{"", "123456789"} {
			s.SetupTest()
			_, err := s.load(
				head("Ann", "Doe", headSSN).with(ColProgramStart, ""),
				child("Tim", headSSN).with(ColProgramStart, ""),
			)
			s.True(dErrors.HasCode(err, dErrors.CodeMissingHoH), "head SSN %q", headSSN)
			s.Empty(s.clients())
		}
	})

	s.Run("unknown head SSN fails", func() {
		s.SetupTest()
		_, err := s.load(child("Tim", "999887777"))
		s.True(dErrors.HasCode(err, dErrors.CodeMissingHoH))
	})

	s.Run("every head starts a new household", func() {
		s.SetupTest()
		report, err := s.load(head("Jane", "Doe", "123456789"), head("Ann", "Roe", "222334444"))
		s.Require().NoError(err)
		s.Equal(1, report.ProjectsCreated)
		s.Equal(2, report.HouseholdsCreated)
	})
}

func (s *LoaderSuite) TestIdempotentReload() {
	rows := []row{
		head("Jane", "Doe", "123456789").with(ColProgramEnd, "3/1/2016", ColDestination, label(hud.Destination, 24)),
		child("Tim", "123456789"),
		head("Ann", "Roe", ""),
		child("Sue", ""),
	}
	_, err := s.load(rows...)
	s.Require().NoError(err)
	clients, members := len(s.clients()), len(s.members())

	report, err := s.load(rows...)
	s.Require().NoError(err)
	s.Equal(0, report.ClientsCreated)
	s.Equal(4, report.ClientsMatched)
	s.Equal(0, report.ClientsUpdated)
	s.Equal(0, report.HouseholdsCreated)
	s.Equal(0, report.MembersCreated)
	s.Equal(4, report.MembersReused)
	s.Equal(0, report.TotalAssessments())
	s.Empty(report.Warnings)

	s.Len(s.clients(), clients)
	s.Len(s.members(), members)
	s.Len(s.assessments(models.KindExit), 1)
}

func (s *LoaderSuite) TestClientMerge() {
	s.Run("blank incoming never replaces a stored value", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "Male"))
		s.Require().NoError(err)
		report, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, ""))
		s.Require().NoError(err)

		s.Empty(report.Warnings)
		s.Equal(hud.Code(1), s.clients()[0].Gender)
	})

	s.Run("more specific incoming upgrades the stored value", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "Data not collected"))
		s.Require().NoError(err)
		report, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "Male"))
		s.Require().NoError(err)

		s.Equal(1, report.ClientsUpdated)
		s.Equal(hud.Code(1), s.clients()[0].Gender)
	})

	s.Run("conflicting values warn and keep the stored value", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789"))
		s.Require().NoError(err)
		report, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "Male"))
		s.Require().NoError(err)

		s.Equal([]WarningKind{WarnClientConflict}, warningKinds(report))
		s.Equal(hud.Code(0), s.clients()[0].Gender)
	})

	s.Run("stored non-answer is kept against an incoming answer", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, label(hud.Gender, hud.ClientDoesntKnow)))
		s.Require().NoError(err)
		report, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "Female"))
		s.Require().NoError(err)

		s.Equal([]WarningKind{WarnClientConflict}, warningKinds(report))
		s.Equal(0, report.ClientsUpdated)
		s.Equal(hud.ClientDoesntKnow, s.clients()[0].Gender)
	})

	s.Run("client without SSN matches on name and date of birth", func() {
		s.SetupTest()
		_, err := s.load(head("Ann", "Roe", ""))
		s.Require().NoError(err)
		report, err := s.load(head("Ann", "Roe", "").with(ColProgramStart, "2/1/2017"))
		s.Require().NoError(err)

		s.Equal(1, report.ClientsMatched)
		s.Len(s.clients(), 1)
		s.Len(s.members(), 2)
	})
}

func (s *LoaderSuite) TestClientMatching() {
	seed := func(first string) {
		c := models.NewClient(id.NewClientID(), models.ClientFields{
			First:         first,
			Last:          "Doe",
			SSN:           "123456789",
			Gender:        hud.Blank,
			Ethnicity:     hud.Blank,
			VeteranStatus: hud.Blank,
		}, s.now)
		s.Require().NoError(s.store.CreateClient(s.ctx, c))
	}

	s.Run("several SSN matches warn and use the first", func() {
		s.SetupTest()
		seed("Jane")
		seed("Janet")
		report, err := s.load(head("Jane", "Doe", "123456789"))
		s.Require().NoError(err)

		s.Contains(warningKinds(report), WarnAmbiguousMatch)
		s.Equal(0, report.ClientsCreated)
		s.Len(s.clients(), 2)
	})

	s.Run("strong matching also compares name and date of birth", func() {
		s.SetupTest()
		seed("Someone")
		s.loader = s.newLoader(WithStrongMatching(true))
		report, err := s.load(head("Jane", "Doe", "123456789"))
		s.Require().NoError(err)

		s.Equal(1, report.ClientsCreated)
		s.Len(s.clients(), 2)
	})

	s.Run("client resolution does not depend on row order", func() {
		rows := []row{head("Jane", "Doe", "123456789"), head("Ann", "Roe", ""), head("Bo", "Poe", "333445555")}
		ssns := func() []string {
			var out []string
			for _, c := range s.clients() {
				out = append(out, c.First+"/"+c.SSN)
			}
			slices.Sort(out)
			return out
		}

		s.SetupTest()
		_, err := s.load(rows...)
		s.Require().NoError(err)
		forward := ssns()

		s.SetupTest()
		_, err = s.load(rows[2], rows[0], rows[1])
		s.Require().NoError(err)
		s.Equal(forward, ssns())
	})
}

func (s *LoaderSuite) TestHeadSSNMismatch() {
	mismatched := head("Jane", "Doe", "123456789").with(ColHeadSSN, "987654321")

	s.Run("non-interactive load aborts", func() {
		s.SetupTest()
		_, err := s.load(mismatched)
		s.True(dErrors.HasCode(err, dErrors.CodeHoHMismatch))
		s.Empty(s.clients())
	})

	s.Run("operator supplies the shared SSN", func() {
		s.SetupTest()
		ctrl := gomock.NewController(s.T())
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("not an ssn", nil)
		prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("111-22-3333", nil)
		s.loader = s.newLoader(WithNormalizer(hud.NewNormalizer(hud.WithPrompter(prompter))))

		_, err := s.load(mismatched)
		s.Require().NoError(err)
		s.Equal("111223333", s.clients()[0].SSN)
	})

	s.Run("cancelled prompt aborts with the mismatch", func() {
		s.SetupTest()
		ctrl := gomock.NewController(s.T())
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("", hud.ErrPromptCancelled)
		s.loader = s.newLoader(WithNormalizer(hud.NewNormalizer(hud.WithPrompter(prompter))))

		_, err := s.load(mismatched)
		s.True(dErrors.HasCode(err, dErrors.CodeHoHMismatch))
	})
}

func (s *LoaderSuite) TestValueNormalization() {
	s.Run("wrong case resolves to the canonical code", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "FEMALE"))
		s.Require().NoError(err)
		s.Equal(hud.Code(0), s.clients()[0].Gender)
	})

	s.Run("bare digit resolves through the equivalents table", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColHomelessCount, "4"))
		s.Require().NoError(err)
		s.Equal(hud.Code(4), s.assessments(models.KindEntry)[0].HomelessInThreeYears)
	})

	s.Run("multi-valued race keeps each code once", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColRace, "White; Asian;white"))
		s.Require().NoError(err)
		s.Equal([]hud.Code{5, 2}, s.clients()[0].Race)
	})

	s.Run("unknown value aborts the load", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColGender, "Unicorn"))
		s.True(dErrors.HasCode(err, dErrors.CodeNoMatchingCode))
	})

	s.Run("bad date aborts the load", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(ColDOB, "yesterday"))
		s.True(dErrors.HasCode(err, dErrors.CodeDateParse))
	})

	s.Run("missing required column is rejected", func() {
		tbl, err := source.FromRecords([][]string{{ColFirstName}, {"Jane"}}, nil)
		s.Require().NoError(err)
		_, err = s.loader.Load(s.ctx, tbl, LoadOptions{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *LoaderSuite) TestAssessments() {
	s.Run("entry from the street derives the homelessness start", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789"))
		s.Require().NoError(err)

		entry := s.assessments(models.KindEntry)
		s.Require().Len(entry, 1)
		s.Equal(hud.Yes, entry[0].EnteringFromStreets)
		s.Equal(time.Date(2015, 10, 15, 0, 0, 0, 0, time.UTC), entry[0].HomelessStartDate)
		s.Equal(hud.Blank, entry[0].HealthInsurance, "absent optional column stays blank")
	})

	s.Run("exit and annual assessments follow their dates", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789").with(
			ColProgramEnd, "3/1/2017",
			ColDestination, label(hud.Destination, 24),
			ColAnnualDate, "1/15/2017",
			ColHealthInsurance, "Yes",
		))
		s.Require().NoError(err)

		exit := s.assessments(models.KindExit)
		s.Require().Len(exit, 1)
		s.Equal(hud.Code(24), exit[0].Destination)
		s.Equal(hud.Yes, exit[0].HealthInsurance)
		s.Len(s.assessments(models.KindAnnual), 1)
		s.Equal(models.StatusExited, s.members()[0].Status())
	})

	s.Run("no-show marks the member absent and skips assessments", func() {
		s.SetupTest()
		report, err := s.load(head("Jane", "Doe", "123456789").with(
			ColProgramEnd, "1/16/2016",
			ColDestination, "Client never showed up",
		))
		s.Require().NoError(err)

		s.Equal(1, report.NoShows)
		s.False(s.members()[0].Present)
		s.Empty(s.assessments(models.KindEntry))
		s.Empty(s.assessments(models.KindExit))
	})

	s.Run("differing reload warns and keeps the stored assessment", func() {
		s.SetupTest()
		_, err := s.load(head("Jane", "Doe", "123456789"))
		s.Require().NoError(err)
		report, err := s.load(head("Jane", "Doe", "123456789").with(ColPhysicalDisability, "Yes"))
		s.Require().NoError(err)

		s.Equal([]WarningKind{WarnAssessmentConflict}, warningKinds(report))
		s.Equal(hud.No, s.assessments(models.KindEntry)[0].PhysicalDisability)
	})
}

func (s *LoaderSuite) TestDryRun() {
	report, err := s.loader.Load(s.ctx, table(s.T(), head("Jane", "Doe", "123456789")), LoadOptions{DryRun: true})
	s.Require().NoError(err)

	s.True(report.DryRun)
	s.Equal(1, report.ClientsCreated)
	s.Empty(s.clients())
}

func (s *LoaderSuite) TestMetrics() {
	m := metrics.New(nil)
	s.loader = s.newLoader(WithMetrics(m))

	_, err := s.loader.Load(s.ctx, table(s.T(), head("Jane", "Doe", "123456789")), LoadOptions{DryRun: true})
	s.Require().NoError(err)
	s.Equal(float64(0), testutil.ToFloat64(m.ClientsCreated))
	s.Equal(1, testutil.CollectAndCount(m.LoadDuration), "dry run observed under its own outcome")

	_, err = s.load(head("Jane", "Doe", "123456789"), child("Tim", "123456789"))
	s.Require().NoError(err)
	s.Equal(float64(2), testutil.ToFloat64(m.RowsProcessed))
	s.Equal(float64(2), testutil.ToFloat64(m.ClientsCreated))
	s.Equal(float64(2), testutil.ToFloat64(m.AssessmentsCreated.WithLabelValues("entry")))
	s.Equal(2, testutil.CollectAndCount(m.LoadDuration))
}

func (s *LoaderSuite) TestLoadProjects() {
	tbl, err := source.FromRecords([][]string{{ColProjectName}, {"Shelter A"}, {""}, {"Shelter A"}, {"Rapid Rehousing"}}, nil)
	s.Require().NoError(err)

	report, err := s.loader.LoadProjects(s.ctx, tbl, LoadOptions{})
	s.Require().NoError(err)
	s.Equal(4, report.Rows)
	s.Equal(2, report.ProjectsCreated)

	projects, err := s.store.ListProjects(s.ctx)
	s.Require().NoError(err)
	s.Len(projects, 2)

	_, err = s.loader.LoadProjects(s.ctx, table(s.T(), head("Jane", "Doe", "1")), LoadOptions{})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestEnteringFromStreets(t *testing.T) {
	tests := []struct {
		name    string
		prior   hud.Code
		oneYear hud.Code
		want    hud.Code
	}{
		{"street", hud.PriorNotForHabitation, hud.No, hud.Yes},
		{"safe haven", hud.PriorSafeHaven, hud.ClientRefused, hud.Yes},
		{"homeless a year", 22, hud.Yes, hud.Yes},
		{"two non-answers take the lower", hud.ClientRefused, hud.ClientDoesntKnow, hud.ClientDoesntKnow},
		{"not collected and refused", hud.DataNotCollected, hud.ClientRefused, hud.ClientRefused},
		{"housed", 22, hud.No, hud.No},
		{"one non-answer", 22, hud.DataNotCollected, hud.No},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enteringFromStreets(tt.prior, tt.oneYear); got != tt.want {
				t.Errorf("enteringFromStreets(%v, %v) = %v, want %v", tt.prior, tt.oneYear, got, tt.want)
			}
		})
	}
}

func TestHomelessMonths(t *testing.T) {
	l, err := New(memory.New(), memory.New())
	if err != nil {
		t.Fatal(err)
	}
	s := &session{Loader: l, report: newReport()}

	tests := []struct {
		cell string
		want hud.Code
	}{
		{"One Month", hud.MonthsOne},
		{"7", 107},
		{"100", hud.MonthsOne},
		{"113", hud.MonthsMoreThan12},
		{"More than 12 months", hud.MonthsMoreThan12},
		{"", hud.DataNotCollected},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			r := table(t, head("Jane", "Doe", "1").with(ColHomelessMonths, tt.cell)).Rows[0]
			got, err := s.homelessMonths(context.Background(), r)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("homelessMonths(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}

	t.Run("absent column is blank", func(t *testing.T) {
		got, err := s.homelessMonths(context.Background(), table(t, head("Jane", "Doe", "1")).Rows[0])
		if err != nil {
			t.Fatal(err)
		}
		if got != hud.Blank {
			t.Errorf("got %v, want blank", got)
		}
	})
}

func TestIsNoShow(t *testing.T) {
	for dest, want := range map[string]bool{
		"Client never showed up": true,
		"NO SHOW":                true,
		"Deceased":               false,
		"":                       false,
	} {
		if got := isNoShow(dest); got != want {
			t.Errorf("isNoShow(%q) = %v, want %v", dest, got, want)
		}
	}
}
