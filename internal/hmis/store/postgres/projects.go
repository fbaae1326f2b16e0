package postgres

import (
	"context"

	"github.com/google/uuid"

	"hmis/internal/hmis/models"
	id "hmis/pkg/domain"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	_, err := s.exec(ctx).ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES ($1, $2, $3)`,
		uuid.UUID(p.ID), p.Name, p.CreatedAt)
	if err != nil {
		return translate(err, "create project")
	}
	return nil
}

func (s *Store) FindProjectByName(ctx context.Context, name string) (*models.Project, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = $1`, name)
	p, err := scanProject(row)
	if err != nil {
		return nil, translate(err, "find project by name")
	}
	return p, nil
}

func (s *Store) FindProject(ctx context.Context, projectID id.ProjectID) (*models.Project, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE id = $1`, uuid.UUID(projectID))
	p, err := scanProject(row)
	if err != nil {
		return nil, translate(err, "find project")
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT id, name, created_at FROM projects ORDER BY created_at, name`)
	if err != nil {
		return nil, translate(err, "list projects")
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, translate(err, "scan project")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list projects")
	}
	return out, nil
}

func scanProject(row scanner) (*models.Project, error) {
	var (
		p   models.Project
		pid uuid.UUID
	)
	if err := row.Scan(&pid, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ID = id.ProjectID(pid)
	return &p, nil
}
