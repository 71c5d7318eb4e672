package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var _ repository.TestimonialRepository = (*DB)(nil)

const testimonialColumns = `id, client_name, client_title, client_company, client_image_url, quote, rating, is_active, sort_order, created_at, updated_at`

func (db *DB) listTestimonials(ctx context.Context, where string) ([]model.Testimonial, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials `+where+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []model.Testimonial{}
	for rows.Next() {
		var tm model.Testimonial
		if err := rows.Scan(
			&tm.ID, &tm.ClientName, &tm.ClientTitle, &tm.ClientCompany, &tm.ClientImageURL,
			&tm.Quote, &tm.Rating, &tm.IsActive, &tm.SortOrder, &tm.CreatedAt, &tm.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning testimonial: %w", err)
		}
		testimonials = append(testimonials, tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating testimonials: %w", err)
	}
	return testimonials, nil
}

func (db *DB) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return db.listTestimonials(ctx, "")
}

func (db *DB) ListActiveTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return db.listTestimonials(ctx, "WHERE is_active = 1")
}

func (db *DB) CreateTestimonial(ctx context.Context, testimonial *model.Testimonial) error {
	now := time.Now()
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO testimonials (client_name, client_title, client_company, client_image_url, quote, rating, is_active, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, COALESCE((SELECT MAX(sort_order) FROM testimonials), 0) + 1, ?, ?)`,
		testimonial.ClientName, testimonial.ClientTitle, testimonial.ClientCompany,
		testimonial.ClientImageURL, testimonial.Quote, testimonial.Rating,
		testimonial.IsActive, testimonial.CreatedAt, testimonial.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating testimonial: %w", err)
	}
	if testimonial.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading testimonial id: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT sort_order FROM testimonials WHERE id = ?`, testimonial.ID).Scan(&testimonial.SortOrder)
	if err != nil {
		return fmt.Errorf("sqlite: reading back testimonial %d: %w", testimonial.ID, err)
	}
	return nil
}

func (db *DB) UpdateTestimonial(ctx context.Context, id int64, patch model.TestimonialPatch) (*model.Testimonial, error) {
	sets := []string{}
	args := []any{}
	if patch.ClientName != nil {
		sets = append(sets, "client_name = ?")
		args = append(args, *patch.ClientName)
	}
	if patch.ClientTitle != nil {
		sets = append(sets, "client_title = ?")
		args = append(args, *patch.ClientTitle)
	}
	if patch.ClientCompany != nil {
		sets = append(sets, "client_company = ?")
		args = append(args, *patch.ClientCompany)
	}
	if patch.ClientImageURL != nil {
		sets = append(sets, "client_image_url = ?")
		args = append(args, *patch.ClientImageURL)
	}
	if patch.Quote != nil {
		sets = append(sets, "quote = ?")
		args = append(args, *patch.Quote)
	}
	if patch.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *patch.Rating)
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
		`UPDATE testimonials SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating testimonial %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("testimonial", fmt.Sprint(id))
	}

	var tm model.Testimonial
	err = db.conn.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id).Scan(
		&tm.ID, &tm.ClientName, &tm.ClientTitle, &tm.ClientCompany, &tm.ClientImageURL,
		&tm.Quote, &tm.Rating, &tm.IsActive, &tm.SortOrder, &tm.CreatedAt, &tm.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading back testimonial %d: %w", id, err)
	}
	return &tm, nil
}

func (db *DB) DeleteTestimonial(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting testimonial %d: %w", id, err)
	}
	return nil
}

func (db *DB) ReorderTestimonials(ctx context.Context, ids []int64) error {
	return db.reorder(ctx, "testimonials", ids, "")
}
