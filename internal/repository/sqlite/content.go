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

// compile-time check that *DB implements repository.ContentSectionRepository
var _ repository.ContentSectionRepository = (*DB)(nil)

const contentSectionColumns = `id, section_type, title, subtitle, content, image_url, video_url, is_active, created_at, updated_at`

func scanContentSection(row interface{ Scan(...any) error }) (*model.ContentSection, error) {
	var s model.ContentSection
	err := row.Scan(
		&s.ID,
		&s.SectionType,
		&s.Title,
		&s.Subtitle,
		&s.Content,
		&s.ImageURL,
		&s.VideoURL,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListContentSections returns every section, active or not, grouped by type
// for the admin dashboard.
func (db *DB) ListContentSections(ctx context.Context) ([]model.ContentSection, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contentSectionColumns+` FROM content_sections ORDER BY section_type, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing content sections: %w", err)
	}
	defer rows.Close()

	sections := []model.ContentSection{}
	for rows.Next() {
		s, err := scanContentSection(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning content section: %w", err)
		}
		sections = append(sections, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating content sections: %w", err)
	}
	return sections, nil
}

// GetContentSectionByType returns the active section for the given type.
// The schema does not forbid duplicate active rows per type, so the lowest
// id wins to keep the public lookup deterministic. Absence is (nil, nil).
func (db *DB) GetContentSectionByType(ctx context.Context, sectionType string) (*model.ContentSection, error) {
	s, err := scanContentSection(db.conn.QueryRowContext(ctx,
		`SELECT `+contentSectionColumns+` FROM content_sections
		 WHERE section_type = ? AND is_active = 1
		 ORDER BY id LIMIT 1`,
		sectionType))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting content section %q: %w", sectionType, err)
	}
	return s, nil
}

func (db *DB) CreateContentSection(ctx context.Context, section *model.ContentSection) error {
	now := time.Now()
	section.CreatedAt = now
	section.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO content_sections (section_type, title, subtitle, content, image_url, video_url, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		section.SectionType,
		section.Title,
		section.Subtitle,
		section.Content,
		section.ImageURL,
		section.VideoURL,
		section.IsActive,
		section.CreatedAt,
		section.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating content section: %w", err)
	}
	section.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading content section id: %w", err)
	}
	return nil
}

func (db *DB) UpdateContentSection(ctx context.Context, id int64, patch model.ContentSectionPatch) (*model.ContentSection, error) {
	sets := []string{}
	args := []any{}
	if patch.SectionType != nil {
		sets = append(sets, "section_type = ?")
		args = append(args, *patch.SectionType)
	}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Subtitle != nil {
		sets = append(sets, "subtitle = ?")
		args = append(args, *patch.Subtitle)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *patch.ImageURL)
	}
	if patch.VideoURL != nil {
		sets = append(sets, "video_url = ?")
		args = append(args, *patch.VideoURL)
	}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *patch.IsActive)
	}

	// updated_at refreshes on every update, even a field-less one.
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE content_sections SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating content section %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("content section", fmt.Sprint(id))
	}

	s, err := scanContentSection(db.conn.QueryRowContext(ctx,
		`SELECT `+contentSectionColumns+` FROM content_sections WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading back content section %d: %w", id, err)
	}
	return s, nil
}

// DeleteContentSection is idempotent — deleting a missing id is a no-op.
func (db *DB) DeleteContentSection(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM content_sections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting content section %d: %w", id, err)
	}
	return nil
}
