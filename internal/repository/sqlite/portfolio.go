package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var _ repository.PortfolioRepository = (*DB)(nil)

const portfolioColumns = `id, title, client, description, thumbnail_url, video_url, category, is_active, is_featured, sort_order, created_at, updated_at`

func (db *DB) listPortfolioProjects(ctx context.Context, where string) ([]model.PortfolioProject, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+portfolioColumns+` FROM portfolio_projects `+where+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing portfolio projects: %w", err)
	}
	defer rows.Close()

	projects := []model.PortfolioProject{}
	for rows.Next() {
		var p model.PortfolioProject
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Client, &p.Description, &p.ThumbnailURL, &p.VideoURL,
			&p.Category, &p.IsActive, &p.IsFeatured, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning portfolio project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating portfolio projects: %w", err)
	}
	return projects, nil
}

func (db *DB) ListPortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error) {
	return db.listPortfolioProjects(ctx, "")
}

func (db *DB) ListActivePortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error) {
	return db.listPortfolioProjects(ctx, "WHERE is_active = 1")
}

// ListFeaturedPortfolioProjects applies the active gate as well — a
// featured project that has been deactivated never reaches the public reel.
func (db *DB) ListFeaturedPortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error) {
	return db.listPortfolioProjects(ctx, "WHERE is_active = 1 AND is_featured = 1")
}

func (db *DB) CreatePortfolioProject(ctx context.Context, project *model.PortfolioProject) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO portfolio_projects (title, client, description, thumbnail_url, video_url, category, is_active, is_featured, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, COALESCE((SELECT MAX(sort_order) FROM portfolio_projects), 0) + 1, ?, ?)`,
		project.Title, project.Client, project.Description, project.ThumbnailURL,
		project.VideoURL, project.Category, project.IsActive, project.IsFeatured,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating portfolio project: %w", err)
	}
	if project.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading portfolio project id: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT sort_order FROM portfolio_projects WHERE id = ?`, project.ID).Scan(&project.SortOrder)
	if err != nil {
		return fmt.Errorf("sqlite: reading back portfolio project %d: %w", project.ID, err)
	}
	return nil
}

func (db *DB) UpdatePortfolioProject(ctx context.Context, id int64, patch model.PortfolioProjectPatch) (*model.PortfolioProject, error) {
	sets := []string{}
	args := []any{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Client != nil {
		sets = append(sets, "client = ?")
		args = append(args, *patch.Client)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.ThumbnailURL != nil {
		sets = append(sets, "thumbnail_url = ?")
		args = append(args, *patch.ThumbnailURL)
	}
	if patch.VideoURL != nil {
		sets = append(sets, "video_url = ?")
		args = append(args, *patch.VideoURL)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *patch.IsActive)
	}
	if patch.IsFeatured != nil {
		sets = append(sets, "is_featured = ?")
		args = append(args, *patch.IsFeatured)
	}
	if patch.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.SortOrder)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE portfolio_projects SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating portfolio project %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("portfolio project", fmt.Sprint(id))
	}

	var p model.PortfolioProject
	err = db.conn.QueryRowContext(ctx,
		`SELECT `+portfolioColumns+` FROM portfolio_projects WHERE id = ?`, id).Scan(
		&p.ID, &p.Title, &p.Client, &p.Description, &p.ThumbnailURL, &p.VideoURL,
		&p.Category, &p.IsActive, &p.IsFeatured, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading back portfolio project %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) DeletePortfolioProject(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM portfolio_projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting portfolio project %d: %w", id, err)
	}
	return nil
}

func (db *DB) ReorderPortfolioProjects(ctx context.Context, ids []int64) error {
	return db.reorder(ctx, "portfolio_projects", ids, "")
}
