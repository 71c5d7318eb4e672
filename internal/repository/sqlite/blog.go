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

var _ repository.BlogRepository = (*DB)(nil)

const blogColumns = `id, title, slug, excerpt, content, featured_image_url, is_published, published_at, author_id, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (*model.BlogPost, error) {
	var (
		p           model.BlogPost
		publishedAt sql.NullTime
		authorID    sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImageURL,
		&p.IsPublished, &publishedAt, &authorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	p.AuthorID = authorID.String
	return &p, nil
}

func (db *DB) listBlogPosts(ctx context.Context, where, order string) ([]model.BlogPost, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts `+where+` ORDER BY `+order)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blog posts: %w", err)
	}
	defer rows.Close()

	posts := []model.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog posts: %w", err)
	}
	return posts, nil
}

// ListBlogPosts returns everything, drafts included, newest first — the
// admin view.
func (db *DB) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return db.listBlogPosts(ctx, "", "created_at DESC, id DESC")
}

// ListPublishedBlogPosts is the public feed: published only, most recently
// published first.
func (db *DB) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return db.listBlogPosts(ctx, "WHERE is_published = 1", "published_at DESC, id DESC")
}

// GetBlogPostBySlug returns (nil, nil) when no post has the slug; the
// service layer decides whether absence is an error.
func (db *DB) GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	p, err := scanBlogPost(db.conn.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE slug = ?`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting blog post %q: %w", slug, err)
	}
	return p, nil
}

// CreateBlogPost persists the post. publishedAt is derived here, in the
// same write: set to now when the post arrives published, NULL otherwise.
// A duplicate slug surfaces as a conflict, not a generic storage failure.
func (db *DB) CreateBlogPost(ctx context.Context, post *model.BlogPost) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.IsPublished {
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO blog_posts (title, slug, excerpt, content, featured_image_url, is_published, published_at, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?)`,
		post.Title, post.Slug, post.Excerpt, post.Content, post.FeaturedImageURL,
		post.IsPublished, post.PublishedAt, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("blog post", fmt.Sprintf("slug %q already in use", post.Slug))
		}
		return fmt.Errorf("sqlite: creating blog post: %w", err)
	}
	if post.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading blog post id: %w", err)
	}
	return nil
}

// UpdateBlogPost applies the patch and re-derives published_at from the
// payload: marked published → now; marked unpublished or not mentioned →
// NULL. The admin form always submits isPublished, so an untouched draft
// date only occurs for posts that were never published.
func (db *DB) UpdateBlogPost(ctx context.Context, id int64, patch model.BlogPostPatch) (*model.BlogPost, error) {
	sets := []string{}
	args := []any{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *patch.Slug)
	}
	if patch.Excerpt != nil {
		sets = append(sets, "excerpt = ?")
		args = append(args, *patch.Excerpt)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.FeaturedImageURL != nil {
		sets = append(sets, "featured_image_url = ?")
		args = append(args, *patch.FeaturedImageURL)
	}
	if patch.AuthorID != nil {
		sets = append(sets, "author_id = NULLIF(?, '')")
		args = append(args, *patch.AuthorID)
	}
	if patch.IsPublished != nil {
		sets = append(sets, "is_published = ?")
		args = append(args, *patch.IsPublished)
	}
	if patch.IsPublished != nil && *patch.IsPublished {
		sets = append(sets, "published_at = ?")
		args = append(args, time.Now())
	} else {
		sets = append(sets, "published_at = NULL")
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE blog_posts SET `+joinSets(sets)+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			detail := "slug already in use"
			if patch.Slug != nil {
				detail = fmt.Sprintf("slug %q already in use", *patch.Slug)
			}
			return nil, apperror.Conflict("blog post", detail)
		}
		return nil, fmt.Errorf("sqlite: updating blog post %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	} else if n == 0 {
		return nil, apperror.NotFound("blog post", fmt.Sprint(id))
	}

	p, err := scanBlogPost(db.conn.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading back blog post %d: %w", id, err)
	}
	return p, nil
}

func (db *DB) DeleteBlogPost(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting blog post %d: %w", id, err)
	}
	return nil
}
