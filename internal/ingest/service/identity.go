package service

import (
	"context"
	"fmt"
	"strings"

	"hmis/internal/hmis/models"
	"hmis/internal/hud"
	"hmis/internal/ingest/source"
	id "hmis/pkg/domain"
	dErrors "hmis/pkg/domain-errors"
	pstrings "hmis/pkg/platform/strings"
)

// resolveClient normalizes the row's identity and demographics, then matches
// or creates the client. It also parses the row's program dates.
func (s *session) resolveClient(ctx context.Context, rc *rowContext) error {
	row := rc.row
	ssn, err := s.normalizer.ParseSSN(ctx, row.Get(ColSSN))
	if err != nil {
		return err
	}
	rc.relationship, err = s.normalizer.ResolveCode(ctx, hud.HoHRelationship, row.Get(ColRelationship))
	if err != nil {
		return err
	}
	if rc.relationship == hud.RelSelf {
		if ssn, err = s.checkHeadSSN(ctx, row, ssn); err != nil {
			return err
		}
	}
	if rc.entryDate, err = s.normalizer.ParseDate(ctx, row.Get(ColProgramStart)); err != nil {
		return err
	}
	if rc.exitDate, err = s.normalizer.ParseDate(ctx, row.Get(ColProgramEnd)); err != nil {
		return err
	}

	fields, err := s.clientFields(ctx, row, ssn)
	if err != nil {
		return err
	}
	rc.client, err = s.matchClient(ctx, row.Line, fields)
	return err
}

// checkHeadSSN requires a head of household's own SSN to equal the row's
// head-of-household SSN. An operator may settle a mismatch by entering the
// SSN to use for both.
func (s *session) checkHeadSSN(ctx context.Context, row source.Row, ssn string) (string, error) {
	headSSN, err := s.normalizer.ParseSSN(ctx, row.Get(ColHeadSSN))
	if err != nil {
		return "", err
	}
	if headSSN == ssn {
		return ssn, nil
	}
	cause := dErrors.Newf(dErrors.CodeHoHMismatch,
		"head of household SSN %q does not match the client's SSN %q", row.Get(ColHeadSSN), row.Get(ColSSN))
	message := fmt.Sprintf("SSN %q and head of household SSN %q differ; enter the SSN to use for both",
		row.Get(ColSSN), row.Get(ColHeadSSN))
	for {
		answer, err := s.normalizer.Ask(ctx, cause, message)
		if err != nil {
			return "", err
		}
		shared, err := hud.ParseSSN(answer)
		if err != nil {
			message = err.Error()
			continue
		}
		return shared, nil
	}
}

func (s *session) clientFields(ctx context.Context, row source.Row, ssn string) (models.ClientFields, error) {
	f := models.ClientFields{
		First:  strings.TrimSpace(row.Get(ColFirstName)),
		Middle: strings.TrimSpace(row.Get(ColMiddleName)),
		Last:   strings.TrimSpace(row.Get(ColLastName)),
		Suffix: strings.TrimSpace(row.Get(ColSuffix)),
		SSN:    ssn,
	}
	var err error
	if f.DOB, err = s.normalizer.ParseDate(ctx, row.Get(ColDOB)); err != nil {
		return f, err
	}
	if f.Gender, err = s.normalizer.ResolveCode(ctx, hud.Gender, row.Get(ColGender)); err != nil {
		return f, err
	}
	if f.Ethnicity, err = s.normalizer.ResolveCode(ctx, hud.Ethnicity, row.Get(ColEthnicity)); err != nil {
		return f, err
	}
	if f.VeteranStatus, err = s.normalizer.ResolveCode(ctx, hud.YesNo, row.Get(ColVeteranStatus)); err != nil {
		return f, err
	}
	f.Race, err = s.normalizer.ResolveCodes(ctx, hud.Race, pstrings.SplitMulti(row.Get(ColRace), ";"))
	return f, err
}

// matchClient finds the client by SSN, else by first name, last name and date
// of birth, else creates one. Several matches use the first and warn.
func (s *session) matchClient(ctx context.Context, line int, f models.ClientFields) (*models.Client, error) {
	found, err := s.findClients(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up client")
	}
	now := s.now()

	if len(found) == 0 {
		c := models.NewClient(id.NewClientID(), f, now)
		if err := s.store.CreateClient(ctx, c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create client")
		}
		s.report.ClientsCreated++
		s.logger.DebugContext(ctx, "created client", "line", line, "client_id", c.ID)
		return c, nil
	}

	if len(found) > 1 {
		ids := make([]string, len(found))
		for i, c := range found {
			ids[i] = c.ID.String()
		}
		s.warn(line, WarnAmbiguousMatch, "%d clients match, using %s (candidates: %s)",
			len(found), ids[0], strings.Join(ids, ", "))
	}
	c := found[0]
	s.report.ClientsMatched++
	changed, conflicts := c.Merge(f, now)
	for _, conflict := range conflicts {
		s.warn(line, WarnClientConflict, "client %s keeps stored %s", c.ID, conflict)
	}
	if changed {
		if err := s.store.UpdateClient(ctx, c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update client")
		}
		s.report.ClientsUpdated++
	}
	return c, nil
}

func (s *session) findClients(ctx context.Context, f models.ClientFields) ([]*models.Client, error) {
	switch {
	case f.SSN != "":
		found, err := s.store.FindClientsBySSN(ctx, f.SSN)
		if err != nil || !s.strongMatching {
			return found, err
		}
		var same []*models.Client
		for _, c := range found {
			if strings.EqualFold(c.First, f.First) && strings.EqualFold(c.Last, f.Last) && c.DOB.Equal(f.DOB) {
				same = append(same, c)
			}
		}
		return same, nil
	case f.First != "" && f.Last != "" && !f.DOB.IsZero():
		return s.store.FindClientsByNameAndDOB(ctx, f.First, f.Last, f.DOB)
	default:
		return nil, nil
	}
}
