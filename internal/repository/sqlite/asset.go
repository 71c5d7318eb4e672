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

var _ repository.ProjectAssetRepository = (*DB)(nil)

const projectAssetColumns = `id, project_id, file_name, file_url, file_type, version, is_current_version, uploaded_by, created_at`

func scanProjectAsset(row interface{ Scan(...any) error }) (*model.ProjectAsset, error) {
	var (
		a          model.ProjectAsset
		uploadedBy sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.ProjectID, &a.FileName, &a.FileURL, &a.FileType,
		&a.Version, &a.IsCurrentVersion, &uploadedBy, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.UploadedBy = uploadedBy.String
	return &a, nil
}

func (db *DB) ListProjectAssets(ctx context.Context, projectID int64) ([]model.ProjectAsset, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectAssetColumns+` FROM project_assets WHERE project_id = ? ORDER BY created_at DESC, id DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing project assets: %w", err)
	}
	defer rows.Close()

	assets := []model.ProjectAsset{}
	for rows.Next() {
		a, err := scanProjectAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project asset: %w", err)
		}
		assets = append(assets, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating project assets: %w", err)
	}
	return assets, nil
}

func (db *DB) GetProjectAsset(ctx context.Context, id int64) (*model.ProjectAsset, error) {
	a, err := scanProjectAsset(db.conn.QueryRowContext(ctx,
		`SELECT `+projectAssetColumns+` FROM project_assets WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("project asset", fmt.Sprint(id))
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting project asset %d: %w", id, err)
	}
	return a, nil
}

func (db *DB) CreateProjectAsset(ctx context.Context, asset *model.ProjectAsset) error {
	asset.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO project_assets (project_id, file_name, file_url, file_type, version, is_current_version, uploaded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?)`,
		asset.ProjectID, asset.FileName, asset.FileURL, asset.FileType,
		asset.Version, asset.IsCurrentVersion, asset.UploadedBy, asset.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project asset: %w", err)
	}
	if asset.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading project asset id: %w", err)
	}
	return nil
}

func (db *DB) UpdateProjectAsset(ctx context.Context, id int64, patch model.ProjectAssetPatch) (*model.ProjectAsset, error) {
	sets := []string{}
	args := []any{}
	if patch.FileName != nil {
		sets = append(sets, "file_name = ?")
		args = append(args, *patch.FileName)
	}
	if patch.FileURL != nil {
		sets = append(sets, "file_url = ?")
		args = append(args, *patch.FileURL)
	}
	if patch.FileType != nil {
		sets = append(sets, "file_type = ?")
		args = append(args, *patch.FileType)
	}
	if patch.Version != nil {
		sets = append(sets, "version = ?")
		args = append(args, *patch.Version)
	}
	if patch.IsCurrentVersion != nil {
		sets = append(sets, "is_current_version = ?")
		args = append(args, *patch.IsCurrentVersion)
	}
	if len(sets) == 0 {
		return db.GetProjectAsset(ctx, id)
	}
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE project_assets SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating project asset %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("project asset", fmt.Sprint(id))
	}

	return db.GetProjectAsset(ctx, id)
}

func (db *DB) DeleteProjectAsset(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM project_assets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting project asset %d: %w", id, err)
	}
	return nil
}
