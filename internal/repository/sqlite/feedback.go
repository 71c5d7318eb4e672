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

var _ repository.ProjectFeedbackRepository = (*DB)(nil)

const projectFeedbackColumns = `id, project_id, asset_id, user_id, comment, timestamp, status, priority, created_at, updated_at`

func scanProjectFeedback(row interface{ Scan(...any) error }) (*model.ProjectFeedback, error) {
	var (
		f       model.ProjectFeedback
		assetID sql.NullInt64
		userID  sql.NullString
	)
	err := row.Scan(
		&f.ID, &f.ProjectID, &assetID, &userID, &f.Comment, &f.Timestamp,
		&f.Status, &f.Priority, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assetID.Valid {
		v := assetID.Int64
		f.AssetID = &v
	}
	f.UserID = userID.String
	return &f, nil
}

func (db *DB) ListProjectFeedback(ctx context.Context, projectID int64) ([]model.ProjectFeedback, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectFeedbackColumns+` FROM project_feedback WHERE project_id = ? ORDER BY created_at DESC, id DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing project feedback: %w", err)
	}
	defer rows.Close()

	feedback := []model.ProjectFeedback{}
	for rows.Next() {
		f, err := scanProjectFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project feedback: %w", err)
		}
		feedback = append(feedback, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating project feedback: %w", err)
	}
	return feedback, nil
}

func (db *DB) GetProjectFeedback(ctx context.Context, id int64) (*model.ProjectFeedback, error) {
	f, err := scanProjectFeedback(db.conn.QueryRowContext(ctx,
		`SELECT `+projectFeedbackColumns+` FROM project_feedback WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("project feedback", fmt.Sprint(id))
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting project feedback %d: %w", id, err)
	}
	return f, nil
}

func (db *DB) CreateProjectFeedback(ctx context.Context, feedback *model.ProjectFeedback) error {
	now := time.Now()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO project_feedback (project_id, asset_id, user_id, comment, timestamp, status, priority, created_at, updated_at)
		 VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?)`,
		feedback.ProjectID, feedback.AssetID, feedback.UserID, feedback.Comment,
		feedback.Timestamp, feedback.Status, feedback.Priority,
		feedback.CreatedAt, feedback.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project feedback: %w", err)
	}
	if feedback.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading project feedback id: %w", err)
	}
	return nil
}

func (db *DB) UpdateProjectFeedback(ctx context.Context, id int64, patch model.ProjectFeedbackPatch) (*model.ProjectFeedback, error) {
	sets := []string{}
	args := []any{}
	if patch.Comment != nil {
		sets = append(sets, "comment = ?")
		args = append(args, *patch.Comment)
	}
	if patch.Timestamp != nil {
		sets = append(sets, "timestamp = ?")
		args = append(args, *patch.Timestamp)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE project_feedback SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating project feedback %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("project feedback", fmt.Sprint(id))
	}

	return db.GetProjectFeedback(ctx, id)
}

func (db *DB) DeleteProjectFeedback(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM project_feedback WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting project feedback %d: %w", id, err)
	}
	return nil
}
