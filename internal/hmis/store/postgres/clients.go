package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hmis/internal/hmis/models"
	id "hmis/pkg/domain"
	"hmis/pkg/platform/sentinel"
)

const clientColumns = `id, first_name, middle_name, last_name, suffix, dob, ssn,
	gender, ethnicity, veteran_status, race, created_at, updated_at`

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	_, err := s.exec(ctx).ExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.UUID(c.ID), c.First, c.Middle, c.Last, c.Suffix, nullDate(c.DOB), c.SSN,
		nullCode(c.Gender), nullCode(c.Ethnicity), nullCode(c.VeteranStatus),
		raceArray(c.Race), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return translate(err, "create client")
	}
	return nil
}

func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	res, err := s.exec(ctx).ExecContext(ctx, `
		UPDATE clients SET
			first_name = $2, middle_name = $3, last_name = $4, suffix = $5, dob = $6, ssn = $7,
			gender = $8, ethnicity = $9, veteran_status = $10, race = $11, updated_at = $12
		WHERE id = $1`,
		uuid.UUID(c.ID), c.First, c.Middle, c.Last, c.Suffix, nullDate(c.DOB), c.SSN,
		nullCode(c.Gender), nullCode(c.Ethnicity), nullCode(c.VeteranStatus),
		raceArray(c.Race), c.UpdatedAt)
	if err != nil {
		return translate(err, "update client")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, "update client")
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) FindClientsBySSN(ctx context.Context, ssn string) ([]*models.Client, error) {
	return s.queryClients(ctx, "find clients by ssn",
		`SELECT `+clientColumns+` FROM clients WHERE ssn = $1 ORDER BY seq`, ssn)
}

func (s *Store) FindClientsByNameAndDOB(ctx context.Context, first, last string, dob time.Time) ([]*models.Client, error) {
	return s.queryClients(ctx, "find clients by name and dob",
		`SELECT `+clientColumns+` FROM clients
		WHERE first_name = $1 AND last_name = $2 AND dob = $3 ORDER BY seq`,
		first, last, nullDate(dob))
}

func (s *Store) ListClients(ctx context.Context) ([]*models.Client, error) {
	return s.queryClients(ctx, "list clients", `SELECT `+clientColumns+` FROM clients ORDER BY seq`)
}

func (s *Store) queryClients(ctx context.Context, op, query string, args ...any) ([]*models.Client, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, op)
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, translate(err, op)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, op)
	}
	return out, nil
}

func scanClient(row scanner) (*models.Client, error) {
	var (
		c         models.Client
		cid       uuid.UUID
		dob       sql.NullTime
		gender    sql.NullInt64
		ethnicity sql.NullInt64
		veteran   sql.NullInt64
		race      pq.Int64Array
	)
	err := row.Scan(&cid, &c.First, &c.Middle, &c.Last, &c.Suffix, &dob, &c.SSN,
		&gender, &ethnicity, &veteran, &race, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = id.ClientID(cid)
	c.DOB = dateOf(dob)
	c.Gender = codeOf(gender)
	c.Ethnicity = codeOf(ethnicity)
	c.VeteranStatus = codeOf(veteran)
	c.Race = raceCodes(race)
	return &c, nil
}
