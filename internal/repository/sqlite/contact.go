package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var _ repository.ContactRepository = (*DB)(nil)

const contactColumns = `id, name, email, company, project_type, message, is_read, created_at`

func (db *DB) listContactSubmissions(ctx context.Context, where string) ([]model.ContactSubmission, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions `+where+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contact submissions: %w", err)
	}
	defer rows.Close()

	submissions := []model.ContactSubmission{}
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Company, &c.ProjectType,
			&c.Message, &c.IsRead, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning contact submission: %w", err)
		}
		submissions = append(submissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contact submissions: %w", err)
	}
	return submissions, nil
}

func (db *DB) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	return db.listContactSubmissions(ctx, "")
}

func (db *DB) ListUnreadContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	return db.listContactSubmissions(ctx, "WHERE is_read = 0")
}

// CreateContactSubmission always writes is_read = 0; the public form cannot
// pre-mark an enquiry as handled.
func (db *DB) CreateContactSubmission(ctx context.Context, submission *model.ContactSubmission) error {
	submission.IsRead = false
	submission.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, company, project_type, message, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		submission.Name, submission.Email, submission.Company,
		submission.ProjectType, submission.Message, submission.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating contact submission: %w", err)
	}
	if submission.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading contact submission id: %w", err)
	}
	return nil
}

// MarkContactSubmissionRead flips is_read and touches no other column.
func (db *DB) MarkContactSubmissionRead(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE contact_submissions SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: marking contact submission %d read: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return apperror.NotFound("contact submission", fmt.Sprint(id))
	}
	return nil
}

func (db *DB) DeleteContactSubmission(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting contact submission %d: %w", id, err)
	}
	return nil
}
