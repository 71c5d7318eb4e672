package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var _ repository.ServiceRepository = (*DB)(nil)

const serviceColumns = `id, title, description, icon_class, is_active, sort_order, created_at, updated_at`

func (db *DB) listServices(ctx context.Context, where string, args ...any) ([]model.Service, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services `+where+` ORDER BY sort_order, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.IconClass,
			&s.IsActive, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating services: %w", err)
	}
	return services, nil
}

func (db *DB) ListServices(ctx context.Context) ([]model.Service, error) {
	return db.listServices(ctx, "")
}

func (db *DB) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	return db.listServices(ctx, "WHERE is_active = 1")
}

// CreateService appends the service to the end of the display order
// (max rank + 1, computed in the same insert statement).
func (db *DB) CreateService(ctx context.Context, svc *model.Service) error {
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO services (title, description, icon_class, is_active, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, COALESCE((SELECT MAX(sort_order) FROM services), 0) + 1, ?, ?)`,
		svc.Title, svc.Description, svc.IconClass, svc.IsActive, svc.CreatedAt, svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating service: %w", err)
	}
	if svc.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading service id: %w", err)
	}

	// Read back the assigned rank.
	err = db.conn.QueryRowContext(ctx,
		`SELECT sort_order FROM services WHERE id = ?`, svc.ID).Scan(&svc.SortOrder)
	if err != nil {
		return fmt.Errorf("sqlite: reading back service %d: %w", svc.ID, err)
	}
	return nil
}

func (db *DB) UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
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
	if patch.IconClass != nil {
		sets = append(sets, "icon_class = ?")
		args = append(args, *patch.IconClass)
	}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *patch.IsActive)
	}
	if patch.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.SortOrder)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE services SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating service %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("service", fmt.Sprint(id))
	}

	var s model.Service
	err = db.conn.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ?`, id).Scan(
		&s.ID, &s.Title, &s.Description, &s.IconClass,
		&s.IsActive, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading back service %d: %w", id, err)
	}
	return &s, nil
}

func (db *DB) DeleteService(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting service %d: %w", id, err)
	}
	return nil
}

func (db *DB) ReorderServices(ctx context.Context, ids []int64) error {
	return db.reorder(ctx, "services", ids, "")
}
