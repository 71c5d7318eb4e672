package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

// slugPattern is the URL-safe shape a post slug must have.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BlogService manages posts. Publication state is always derived from the
// isPublished flag on write: publishing stamps publishedAt with the moment
// of the write, unpublishing clears it.
type BlogService struct {
	repo   repository.BlogRepository
	logger *slog.Logger
}

func NewBlogService(repo repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{repo: repo, logger: logger}
}

func (s *BlogService) List(ctx context.Context) ([]model.BlogPost, error) {
	return s.repo.ListBlogPosts(ctx)
}

func (s *BlogService) ListPublished(ctx context.Context) ([]model.BlogPost, error) {
	return s.repo.ListPublishedBlogPosts(ctx)
}

// GetBySlug returns the post for a public permalink. A missing slug is a
// NotFound error here — unlike the repository, which reports plain absence.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperror.ValidationFailed("slug", "slug is required")
	}

	post, err := s.repo.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching post %q: %w", slug, err)
	}
	if post == nil {
		return nil, apperror.NotFound("blog post", slug)
	}
	return post, nil
}

func (s *BlogService) Create(ctx context.Context, input model.InsertBlogPost, authorID string) (*model.BlogPost, error) {
	input.Slug = strings.TrimSpace(input.Slug)

	var fields []apperror.FieldError
	if strings.TrimSpace(input.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "title is required"})
	}
	fields = checkTitleLength(fields, "title", input.Title)
	if input.Slug == "" {
		fields = append(fields, apperror.FieldError{Field: "slug", Message: "slug is required"})
	} else if !slugPattern.MatchString(input.Slug) {
		fields = append(fields, apperror.FieldError{Field: "slug", Message: "slug must be lowercase letters, digits, and hyphens"})
	}
	if len(input.Content) > MaxTextLength {
		fields = append(fields, apperror.FieldError{Field: "content", Message: fmt.Sprintf("content must be %d characters or less", MaxTextLength)})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	post := &model.BlogPost{
		Title:            strings.TrimSpace(input.Title),
		Slug:             input.Slug,
		Excerpt:          input.Excerpt,
		Content:          input.Content,
		FeaturedImageURL: input.FeaturedImageURL,
		IsPublished:      boolOrDefault(input.IsPublished, false),
		AuthorID:         authorID,
	}
	if err := s.repo.CreateBlogPost(ctx, post); err != nil {
		// Slug collisions are a normal editorial mistake, not a server fault.
		return nil, err
	}

	s.logger.Info("blog post created",
		slog.Int64("id", post.ID),
		slog.String("slug", post.Slug),
		slog.Bool("published", post.IsPublished))
	return post, nil
}

func (s *BlogService) Update(ctx context.Context, id int64, patch model.BlogPostPatch) (*model.BlogPost, error) {
	var fields []apperror.FieldError
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			fields = append(fields, apperror.FieldError{Field: "title", Message: "title cannot be blank"})
		}
		fields = checkTitleLength(fields, "title", *patch.Title)
	}
	if patch.Slug != nil {
		trimmed := strings.TrimSpace(*patch.Slug)
		if !slugPattern.MatchString(trimmed) {
			fields = append(fields, apperror.FieldError{Field: "slug", Message: "slug must be lowercase letters, digits, and hyphens"})
		}
		patch.Slug = &trimmed
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	post, err := s.repo.UpdateBlogPost(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("blog post updated", slog.Int64("id", id), slog.Bool("published", post.IsPublished))
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBlogPost(ctx, id); err != nil {
		return err
	}
	s.logger.Info("blog post deleted", slog.Int64("id", id))
	return nil
}
