package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"hmis/internal/hmis/models"
	id "hmis/pkg/domain"
	"hmis/pkg/platform/sentinel"
)

func (s *Store) CreateHousehold(ctx context.Context, h *models.Household) error {
	_, err := s.exec(ctx).ExecContext(ctx,
		`INSERT INTO households (id, project_id, created_at) VALUES ($1, $2, $3)`,
		uuid.UUID(h.ID), uuid.UUID(h.ProjectID), h.CreatedAt)
	if err != nil {
		return translate(err, "create household")
	}
	return nil
}

func (s *Store) ListHouseholds(ctx context.Context) ([]*models.Household, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT id, project_id, created_at FROM households ORDER BY seq`)
	if err != nil {
		return nil, translate(err, "list households")
	}
	defer rows.Close()

	var out []*models.Household
	for rows.Next() {
		var (
			h        models.Household
			hid, pid uuid.UUID
		)
		if err := rows.Scan(&hid, &pid, &h.CreatedAt); err != nil {
			return nil, translate(err, "scan household")
		}
		h.ID = id.HouseholdID(hid)
		h.ProjectID = id.ProjectID(pid)
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list households")
	}
	return out, nil
}

const memberColumns = `m.id, m.client_id, m.household_id, m.relationship, m.entry_date,
	m.exit_date, m.present, m.created_at, m.updated_at`

func (s *Store) CreateMember(ctx context.Context, m *models.HouseholdMember) error {
	_, err := s.exec(ctx).ExecContext(ctx, `
		INSERT INTO household_members
			(id, client_id, household_id, relationship, entry_date, exit_date, present, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(m.ID), uuid.UUID(m.ClientID), uuid.UUID(m.HouseholdID), nullCode(m.Relationship),
		nullDate(m.EntryDate), nullDate(m.ExitDate), m.Present, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return translate(err, "create member")
	}
	return nil
}

func (s *Store) UpdateMember(ctx context.Context, m *models.HouseholdMember) error {
	res, err := s.exec(ctx).ExecContext(ctx, `
		UPDATE household_members SET
			relationship = $2, entry_date = $3, exit_date = $4, present = $5, updated_at = $6
		WHERE id = $1`,
		uuid.UUID(m.ID), nullCode(m.Relationship), nullDate(m.EntryDate), nullDate(m.ExitDate),
		m.Present, m.UpdatedAt)
	if err != nil {
		return translate(err, "update member")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, "update member")
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) FindMember(ctx context.Context, clientID id.ClientID, projectName string, entryDate time.Time) (*models.HouseholdMember, error) {
	row := s.exec(ctx).QueryRowContext(ctx, `
		SELECT `+memberColumns+`
		FROM household_members m
		JOIN households h ON h.id = m.household_id
		JOIN projects p ON p.id = h.project_id
		WHERE m.client_id = $1 AND p.name = $2 AND m.entry_date IS NOT DISTINCT FROM $3
		ORDER BY m.seq
		LIMIT 1`,
		uuid.UUID(clientID), projectName, nullDate(entryDate))
	m, err := scanMember(row)
	if err != nil {
		return nil, translate(err, "find member")
	}
	return m, nil
}

func (s *Store) FindLatestMemberBySSN(ctx context.Context, ssn string, onOrBefore time.Time) (*models.HouseholdMember, error) {
	row := s.exec(ctx).QueryRowContext(ctx, `
		SELECT `+memberColumns+`
		FROM household_members m
		JOIN clients c ON c.id = m.client_id
		WHERE c.ssn = $1 AND m.entry_date <= $2
		ORDER BY m.entry_date DESC, m.seq DESC
		LIMIT 1`,
		ssn, nullDate(onOrBefore))
	m, err := scanMember(row)
	if err != nil {
		return nil, translate(err, "find latest member by ssn")
	}
	return m, nil
}

func (s *Store) ListMembersByHousehold(ctx context.Context, householdID id.HouseholdID) ([]*models.HouseholdMember, error) {
	members, err := s.queryMembers(ctx, "list members by household",
		`SELECT `+memberColumns+` FROM household_members m WHERE m.household_id = $1 ORDER BY m.seq`,
		uuid.UUID(householdID))
	if err != nil {
		return nil, err
	}
	models.SortMembers(members)
	return members, nil
}

func (s *Store) queryMembers(ctx context.Context, op, query string, args ...any) ([]*models.HouseholdMember, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, op)
	}
	defer rows.Close()

	var out []*models.HouseholdMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, translate(err, op)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, op)
	}
	return out, nil
}

func scanMember(row scanner) (*models.HouseholdMember, error) {
	var (
		m             models.HouseholdMember
		mid, cid, hid uuid.UUID
		relationship  sql.NullInt64
		entry, exit   sql.NullTime
	)
	err := row.Scan(&mid, &cid, &hid, &relationship, &entry, &exit, &m.Present, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.ID = id.MemberID(mid)
	m.ClientID = id.ClientID(cid)
	m.HouseholdID = id.HouseholdID(hid)
	m.Relationship = codeOf(relationship)
	m.EntryDate = dateOf(entry)
	m.ExitDate = dateOf(exit)
	return &m, nil
}
