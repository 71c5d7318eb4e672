package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var _ repository.ClientProjectRepository = (*DB)(nil)

const clientProjectColumns = `id, title, description, client_id, status, budget, deadline, project_type, is_active, created_at, updated_at`

func scanClientProject(row interface{ Scan(...any) error }) (*model.ClientProject, error) {
	var (
		p        model.ClientProject
		clientID sql.NullString
		deadline sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &clientID, &p.Status, &p.Budget,
		&deadline, &p.ProjectType, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ClientID = clientID.String
	if deadline.Valid {
		t := deadline.Time
		p.Deadline = &t
	}
	return &p, nil
}

func (db *DB) listClientProjects(ctx context.Context, where string, args ...any) ([]model.ClientProject, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+clientProjectColumns+` FROM client_projects `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing client projects: %w", err)
	}
	defer rows.Close()

	projects := []model.ClientProject{}
	for rows.Next() {
		p, err := scanClientProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning client project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating client projects: %w", err)
	}
	return projects, nil
}

func (db *DB) ListClientProjects(ctx context.Context) ([]model.ClientProject, error) {
	return db.listClientProjects(ctx, "")
}

func (db *DB) ListClientProjectsByClient(ctx context.Context, clientID string) ([]model.ClientProject, error) {
	return db.listClientProjects(ctx, "WHERE client_id = ?", clientID)
}

func (db *DB) GetClientProject(ctx context.Context, id int64) (*model.ClientProject, error) {
	p, err := scanClientProject(db.conn.QueryRowContext(ctx,
		`SELECT `+clientProjectColumns+` FROM client_projects WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("client project", fmt.Sprint(id))
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting client project %d: %w", id, err)
	}
	return p, nil
}

func (db *DB) CreateClientProject(ctx context.Context, project *model.ClientProject) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO client_projects (title, description, client_id, status, budget, deadline, project_type, is_active, created_at, updated_at)
		 VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?)`,
		project.Title, project.Description, project.ClientID, project.Status,
		project.Budget, project.Deadline, project.ProjectType, project.IsActive,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating client project: %w", err)
	}
	if project.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading client project id: %w", err)
	}
	return nil
}

func (db *DB) UpdateClientProject(ctx context.Context, id int64, patch model.ClientProjectPatch) (*model.ClientProject, error) {
	sets := []string{}
	args := []any{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.ClientID != nil {
		sets = append(sets, "client_id = NULLIF(?, '')")
		args = append(args, *patch.ClientID)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Budget != nil {
		sets = append(sets, "budget = ?")
		args = append(args, *patch.Budget)
	}
	if patch.Deadline != nil {
		sets = append(sets, "deadline = ?")
		args = append(args, *patch.Deadline)
	}
	if patch.ProjectType != nil {
		sets = append(sets, "project_type = ?")
		args = append(args, *patch.ProjectType)
	}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *patch.IsActive)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE client_projects SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating client project %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("client project", fmt.Sprint(id))
	}

	return db.GetClientProject(ctx, id)
}

// DeleteClientProject removes the project; assets, feedback, and milestones
// go with it via the schema's ON DELETE CASCADE.
func (db *DB) DeleteClientProject(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM client_projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting client project %d: %w", id, err)
	}
	return nil
}
