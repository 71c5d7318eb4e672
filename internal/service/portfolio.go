package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

// PortfolioService manages the public showcase. The featured reel is the
// intersection of isActive and isFeatured — deactivating a project pulls it
// from the reel even while the featured flag stays set.
type PortfolioService struct {
	repo   repository.PortfolioRepository
	logger *slog.Logger
}

func NewPortfolioService(repo repository.PortfolioRepository, logger *slog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, logger: logger}
}

func (s *PortfolioService) List(ctx context.Context) ([]model.PortfolioProject, error) {
	return s.repo.ListPortfolioProjects(ctx)
}

func (s *PortfolioService) ListActive(ctx context.Context) ([]model.PortfolioProject, error) {
	return s.repo.ListActivePortfolioProjects(ctx)
}

func (s *PortfolioService) ListFeatured(ctx context.Context) ([]model.PortfolioProject, error) {
	return s.repo.ListFeaturedPortfolioProjects(ctx)
}

func (s *PortfolioService) Create(ctx context.Context, input model.InsertPortfolioProject) (*model.PortfolioProject, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "title is required"})
	}
	fields = checkTitleLength(fields, "title", input.Title)
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	project := &model.PortfolioProject{
		Title:        strings.TrimSpace(input.Title),
		Client:       input.Client,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		VideoURL:     input.VideoURL,
		Category:     input.Category,
		IsActive:     boolOrDefault(input.IsActive, true),
		IsFeatured:   boolOrDefault(input.IsFeatured, false),
	}
	if err := s.repo.CreatePortfolioProject(ctx, project); err != nil {
		s.logger.Error("failed to create portfolio project",
			slog.String("title", project.Title),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating portfolio project: %w", err)
	}

	s.logger.Info("portfolio project created",
		slog.Int64("id", project.ID),
		slog.String("title", project.Title))
	return project, nil
}

func (s *PortfolioService) Update(ctx context.Context, id int64, patch model.PortfolioProjectPatch) (*model.PortfolioProject, error) {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be blank")
		}
		if fields := checkTitleLength(nil, "title", *patch.Title); len(fields) > 0 {
			return nil, apperror.ValidationErrors(fields)
		}
	}

	project, err := s.repo.UpdatePortfolioProject(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("portfolio project updated", slog.Int64("id", id))
	return project, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePortfolioProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("portfolio project deleted", slog.Int64("id", id))
	return nil
}

func (s *PortfolioService) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return apperror.ValidationFailed("ids", "at least one id is required")
	}
	if err := s.repo.ReorderPortfolioProjects(ctx, ids); err != nil {
		s.logger.Error("failed to reorder portfolio projects", slog.String("error", err.Error()))
		return fmt.Errorf("reordering portfolio projects: %w", err)
	}
	s.logger.Info("portfolio projects reordered", slog.Int("count", len(ids)))
	return nil
}
