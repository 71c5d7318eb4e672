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

var _ repository.ProjectMilestoneRepository = (*DB)(nil)

const projectMilestoneColumns = `id, project_id, title, description, due_date, is_completed, completed_at, sort_order, created_at`

func scanProjectMilestone(row interface{ Scan(...any) error }) (*model.ProjectMilestone, error) {
	var (
		m           model.ProjectMilestone
		dueDate     sql.NullTime
		completedAt sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Description, &dueDate,
		&m.IsCompleted, &completedAt, &m.SortOrder, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		m.DueDate = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		m.CompletedAt = &t
	}
	return &m, nil
}

func (db *DB) ListProjectMilestones(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectMilestoneColumns+` FROM project_milestones WHERE project_id = ? ORDER BY sort_order, id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing project milestones: %w", err)
	}
	defer rows.Close()

	milestones := []model.ProjectMilestone{}
	for rows.Next() {
		m, err := scanProjectMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project milestone: %w", err)
		}
		milestones = append(milestones, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating project milestones: %w", err)
	}
	return milestones, nil
}

func (db *DB) GetProjectMilestone(ctx context.Context, id int64) (*model.ProjectMilestone, error) {
	m, err := scanProjectMilestone(db.conn.QueryRowContext(ctx,
		`SELECT `+projectMilestoneColumns+` FROM project_milestones WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("project milestone", fmt.Sprint(id))
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting project milestone %d: %w", id, err)
	}
	return m, nil
}

func (db *DB) CreateProjectMilestone(ctx context.Context, milestone *model.ProjectMilestone) error {
	milestone.CreatedAt = time.Now()
	if milestone.IsCompleted && milestone.CompletedAt == nil {
		now := milestone.CreatedAt
		milestone.CompletedAt = &now
	}

	// New milestones go to the back of their project's ordering.
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO project_milestones (project_id, title, description, due_date, is_completed, completed_at, sort_order, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, COALESCE((SELECT MAX(sort_order) FROM project_milestones WHERE project_id = ?), 0) + 1, ?)`,
		milestone.ProjectID, milestone.Title, milestone.Description, milestone.DueDate,
		milestone.IsCompleted, milestone.CompletedAt, milestone.ProjectID, milestone.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project milestone: %w", err)
	}
	if milestone.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading project milestone id: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT sort_order FROM project_milestones WHERE id = ?`, milestone.ID).Scan(&milestone.SortOrder)
	if err != nil {
		return fmt.Errorf("sqlite: reading project milestone rank: %w", err)
	}
	return nil
}

func (db *DB) UpdateProjectMilestone(ctx context.Context, id int64, patch model.ProjectMilestonePatch) (*model.ProjectMilestone, error) {
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
	if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *patch.DueDate)
	}
	if patch.IsCompleted != nil {
		sets = append(sets, "is_completed = ?")
		args = append(args, *patch.IsCompleted)
		// completed_at tracks the completion flag on every transition.
		if *patch.IsCompleted {
			sets = append(sets, "completed_at = ?")
			args = append(args, time.Now())
		} else {
			sets = append(sets, "completed_at = NULL")
		}
	}
	if patch.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.SortOrder)
	}
	if len(sets) == 0 {
		return db.GetProjectMilestone(ctx, id)
	}
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE project_milestones SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating project milestone %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("project milestone", fmt.Sprint(id))
	}

	return db.GetProjectMilestone(ctx, id)
}

func (db *DB) DeleteProjectMilestone(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM project_milestones WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting project milestone %d: %w", id, err)
	}
	return nil
}

func (db *DB) ReorderProjectMilestones(ctx context.Context, projectID int64, ids []int64) error {
	return db.reorder(ctx, "project_milestones", ids, "project_id = ?", projectID)
}

func (db *DB) GetMilestoneProgress(ctx context.Context, projectID int64) (model.MilestoneProgress, error) {
	var progress model.MilestoneProgress
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_completed), 0) FROM project_milestones WHERE project_id = ?`,
		projectID).Scan(&progress.Total, &progress.Completed)
	if err != nil {
		return model.MilestoneProgress{}, fmt.Errorf("sqlite: computing milestone progress: %w", err)
	}
	return progress, nil
}
