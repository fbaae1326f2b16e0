package hud

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hmis/internal/hud/mocks"
	dErrors "hmis/pkg/domain-errors"
)

// =============================================================================
// Normalizer Test Suite
// =============================================================================

type NormalizerSuite struct {
	suite.Suite
	ctx        context.Context
	normalizer *Normalizer
}

func TestNormalizerSuite(t *testing.T) {
	suite.Run(t, new(NormalizerSuite))
}

func (s *NormalizerSuite) SetupTest() {
	s.ctx = context.Background()
	s.normalizer = NewNormalizer(WithClock(func() time.Time {
		return time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
}

func (s *NormalizerSuite) TestResolveCode() {
	s.Run("case-insensitive exact match", func() {
		code, err := s.normalizer.ResolveCode(s.ctx, Gender, "FEMALE")
		s.Require().NoError(err)
		s.Equal(Code(0), code)
	})

	s.Run("surrounding whitespace is ignored", func() {
		code, err := s.normalizer.ResolveCode(s.ctx, YesNo, "  yes ")
		s.Require().NoError(err)
		s.Equal(Yes, code)
	})

	s.Run("empty cell resolves to data not collected", func() {
		code, err := s.normalizer.ResolveCode(s.ctx, Ethnicity, "")
		s.Require().NoError(err)
		s.Equal(DataNotCollected, code)
	})

	s.Run("empty cell fails for a table without data quality", func() {
		_, err := s.normalizer.ResolveCode(s.ctx, HoHRelationship, "")
		s.True(dErrors.HasCode(err, dErrors.CodeNoMatchingCode))
	})

	s.Run("equivalents map a bare digit onto four or more times", func() {
		code, err := s.normalizer.ResolveCode(s.ctx, HomelessCount, "4")
		s.Require().NoError(err)
		s.Equal(Code(4), code)
	})

	s.Run("exact label wins over equivalents", func() {
		code, err := s.normalizer.ResolveCode(s.ctx, HomelessMonths, "4")
		s.Require().NoError(err)
		s.Equal(Code(104), code)
	})

	s.Run("equivalents pick the label present in the table", func() {
		raw := "Permanent housing for formerly homeless persons"
		dest, err := s.normalizer.ResolveCode(s.ctx, Destination, raw)
		s.Require().NoError(err)
		s.Equal(Code(3), dest)

		prior, err := s.normalizer.ResolveCode(s.ctx, PriorResidence, raw)
		s.Require().NoError(err)
		s.Equal(Code(3), prior)
	})

	s.Run("straight apostrophe relationship labels resolve", func() {
		code, err := s.normalizer.ResolveCode(s.ctx, HoHRelationship, "Head of household's child")
		s.Require().NoError(err)
		s.Equal(RelChild, code)
	})

	s.Run("unknown value fails naming value and table", func() {
		_, err := s.normalizer.ResolveCode(s.ctx, Gender, "Martian")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNoMatchingCode))
		s.Contains(err.Error(), "Martian")
		s.Contains(err.Error(), "gender")
	})
}

func (s *NormalizerSuite) TestRoundTrip() {
	for _, table := range AllTables {
		for _, entry := range table.Entries() {
			code, err := s.normalizer.ResolveCode(s.ctx, table, entry.Label)
			s.Require().NoError(err, "%s: %q", table.Name, entry.Label)
			s.Equal(entry.Code, code, "%s: %q", table.Name, entry.Label)
		}
	}
}

func (s *NormalizerSuite) TestResolveCodes() {
	s.Run("deduplicates parts", func() {
		codes, err := s.normalizer.ResolveCodes(s.ctx, Race, []string{"White", "Black", "white"})
		s.Require().NoError(err)
		s.Equal([]Code{5, 3}, codes)
	})

	s.Run("no parts is not collected", func() {
		codes, err := s.normalizer.ResolveCodes(s.ctx, Race, nil)
		s.Require().NoError(err)
		s.Equal([]Code{DataNotCollected}, codes)
	})
}

func (s *NormalizerSuite) TestInteractiveCorrection() {
	s.Run("retries until a value matches", func() {
		ctrl := gomock.NewController(s.T())
		prompter := mocks.NewMockPrompter(ctrl)
		gomock.InOrder(
			prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("Martian", nil),
			prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("Male", nil),
		)
		n := NewNormalizer(WithPrompter(prompter))

		code, err := n.ResolveCode(s.ctx, Gender, "M")
		s.Require().NoError(err)
		s.Equal(Code(1), code)
	})

	s.Run("cancellation returns the original failure", func() {
		ctrl := gomock.NewController(s.T())
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("", ErrPromptCancelled)
		n := NewNormalizer(WithPrompter(prompter))

		_, err := n.ResolveCode(s.ctx, Gender, "M")
		s.True(dErrors.HasCode(err, dErrors.CodeNoMatchingCode))
		s.Contains(err.Error(), `"M"`)
	})

	s.Run("corrects an SSN", func() {
		ctrl := gomock.NewController(s.T())
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("123-45-6789", nil)
		n := NewNormalizer(WithPrompter(prompter))

		ssn, err := n.ParseSSN(s.ctx, "12345678X")
		s.Require().NoError(err)
		s.Equal("123456789", ssn)
	})

	s.Run("corrects a date", func() {
		ctrl := gomock.NewController(s.T())
		prompter := mocks.NewMockPrompter(ctrl)
		prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("2/3/2015", nil)
		n := NewNormalizer(WithPrompter(prompter))

		d, err := n.ParseDate(s.ctx, "Feb third")
		s.Require().NoError(err)
		s.Equal(time.Date(2015, 2, 3, 0, 0, 0, 0, time.UTC), d)
	})
}

func (s *NormalizerSuite) TestParseDate() {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"four digit year", "3/14/2016", time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"iso", "2016-03-14", time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"two digit year", "3/14/16", time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"two digit year in the past century", "7/4/50", time.Date(1950, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			d, err := s.normalizer.ParseDate(s.ctx, tc.raw)
			s.Require().NoError(err)
			s.Equal(tc.want, d)
		})
	}

	s.Run("garbage fails", func() {
		_, err := s.normalizer.ParseDate(s.ctx, "14/3/2016")
		s.True(dErrors.HasCode(err, dErrors.CodeDateParse))
	})
}

func (s *NormalizerSuite) TestParseSSN() {
	cases := []struct {
		raw  string
		want string
	}{
		{"123-45-6789", "123456789"},
		{" 123 45 6789 ", "123456789"},
		{"000-00-0000", ""},
		{"", ""},
		{"1234", "1234"},
		{"012345678", "012345678"},
	}
	for _, tc := range cases {
		s.Run(tc.raw, func() {
			ssn, err := s.normalizer.ParseSSN(s.ctx, tc.raw)
			s.Require().NoError(err)
			s.Equal(tc.want, ssn)
		})
	}

	for _, raw := range []string{"1234567890", "12345678X", "N/A"} {
		s.Run("rejects "+raw, func() {
			_, err := s.normalizer.ParseSSN(s.ctx, raw)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidSSN))
		})
	}
}
