// Package service contains the business logic layer: validation, defaults,
// role scoping, and orchestration between handlers and repositories.
//
// Services accept the model's Insert/Patch types, never HTTP types, and
// return domain errors from internal/apperror; handlers translate those to
// status codes. Validation collects every offending field before failing so
// the admin dashboard can surface all problems in one round trip.
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

// Field length caps shared across entities. The store itself does not
// constrain text length; these keep payloads sane.
const (
	MaxTitleLength = 200
	MaxTextLength  = 50000
)

// defaultRating is used when a testimonial payload omits its star rating.
const defaultRating = 5

// ContentService manages the editable site content: page sections, the
// service offering list, and testimonials.
type ContentService struct {
	sections     repository.ContentSectionRepository
	services     repository.ServiceRepository
	testimonials repository.TestimonialRepository
	logger       *slog.Logger
}

func NewContentService(
	sections repository.ContentSectionRepository,
	services repository.ServiceRepository,
	testimonials repository.TestimonialRepository,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		sections:     sections,
		services:     services,
		testimonials: testimonials,
		logger:       logger,
	}
}

// boolOrDefault resolves an optional payload flag.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// checkTitleLength appends a cap violation when a client-supplied title or
// name exceeds MaxTitleLength. Every entity with a free-text title shares
// the cap.
func checkTitleLength(fields []apperror.FieldError, field, value string) []apperror.FieldError {
	if len(value) > MaxTitleLength {
		fields = append(fields, apperror.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be %d characters or less", field, MaxTitleLength),
		})
	}
	return fields
}

// --- Page sections ---

func (s *ContentService) ListSections(ctx context.Context) ([]model.ContentSection, error) {
	sections, err := s.sections.ListContentSections(ctx)
	if err != nil {
		s.logger.Error("failed to list content sections", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing content sections: %w", err)
	}
	return sections, nil
}

// GetSectionByType returns the active section for the given type, or
// (nil, nil) when none is active — the public site treats that as "render
// nothing", not as a failure.
func (s *ContentService) GetSectionByType(ctx context.Context, sectionType string) (*model.ContentSection, error) {
	sectionType = strings.TrimSpace(sectionType)
	if sectionType == "" {
		return nil, apperror.ValidationFailed("sectionType", "section type is required")
	}
	return s.sections.GetContentSectionByType(ctx, sectionType)
}

func (s *ContentService) CreateSection(ctx context.Context, input model.InsertContentSection) (*model.ContentSection, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.SectionType) == "" {
		fields = append(fields, apperror.FieldError{Field: "sectionType", Message: "section type is required"})
	}
	fields = checkTitleLength(fields, "title", input.Title)
	if len(input.Content) > MaxTextLength {
		fields = append(fields, apperror.FieldError{Field: "content", Message: fmt.Sprintf("content must be %d characters or less", MaxTextLength)})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	section := &model.ContentSection{
		SectionType: strings.TrimSpace(input.SectionType),
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		VideoURL:    input.VideoURL,
		IsActive:    boolOrDefault(input.IsActive, true),
	}
	if err := s.sections.CreateContentSection(ctx, section); err != nil {
		s.logger.Error("failed to create content section",
			slog.String("sectionType", section.SectionType),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating content section: %w", err)
	}

	s.logger.Info("content section created",
		slog.Int64("id", section.ID),
		slog.String("sectionType", section.SectionType))
	return section, nil
}

func (s *ContentService) UpdateSection(ctx context.Context, id int64, patch model.ContentSectionPatch) (*model.ContentSection, error) {
	if patch.SectionType != nil && strings.TrimSpace(*patch.SectionType) == "" {
		return nil, apperror.ValidationFailed("sectionType", "section type cannot be blank")
	}
	if patch.Title != nil {
		if fields := checkTitleLength(nil, "title", *patch.Title); len(fields) > 0 {
			return nil, apperror.ValidationErrors(fields)
		}
	}

	section, err := s.sections.UpdateContentSection(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("content section updated", slog.Int64("id", id))
	return section, nil
}

func (s *ContentService) DeleteSection(ctx context.Context, id int64) error {
	if err := s.sections.DeleteContentSection(ctx, id); err != nil {
		return err
	}
	s.logger.Info("content section deleted", slog.Int64("id", id))
	return nil
}

// --- Service offerings ---

func (s *ContentService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.services.ListServices(ctx)
}

func (s *ContentService) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	return s.services.ListActiveServices(ctx)
}

func (s *ContentService) CreateService(ctx context.Context, input model.InsertService) (*model.Service, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "title is required"})
	}
	fields = checkTitleLength(fields, "title", input.Title)
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	svc := &model.Service{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		IconClass:   input.IconClass,
		IsActive:    boolOrDefault(input.IsActive, true),
	}
	if err := s.services.CreateService(ctx, svc); err != nil {
		s.logger.Error("failed to create service",
			slog.String("title", svc.Title),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating service: %w", err)
	}

	s.logger.Info("service created", slog.Int64("id", svc.ID), slog.String("title", svc.Title))
	return svc, nil
}

func (s *ContentService) UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be blank")
		}
		if fields := checkTitleLength(nil, "title", *patch.Title); len(fields) > 0 {
			return nil, apperror.ValidationErrors(fields)
		}
	}

	svc, err := s.services.UpdateService(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("service updated", slog.Int64("id", id))
	return svc, nil
}

func (s *ContentService) DeleteService(ctx context.Context, id int64) error {
	if err := s.services.DeleteService(ctx, id); err != nil {
		return err
	}
	s.logger.Info("service deleted", slog.Int64("id", id))
	return nil
}

func (s *ContentService) ReorderServices(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return apperror.ValidationFailed("ids", "at least one id is required")
	}
	if err := s.services.ReorderServices(ctx, ids); err != nil {
		s.logger.Error("failed to reorder services", slog.String("error", err.Error()))
		return fmt.Errorf("reordering services: %w", err)
	}
	s.logger.Info("services reordered", slog.Int("count", len(ids)))
	return nil
}

// --- Testimonials ---

func (s *ContentService) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return s.testimonials.ListTestimonials(ctx)
}

func (s *ContentService) ListActiveTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return s.testimonials.ListActiveTestimonials(ctx)
}

func (s *ContentService) CreateTestimonial(ctx context.Context, input model.InsertTestimonial) (*model.Testimonial, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.ClientName) == "" {
		fields = append(fields, apperror.FieldError{Field: "clientName", Message: "client name is required"})
	}
	fields = checkTitleLength(fields, "clientName", input.ClientName)
	if strings.TrimSpace(input.Quote) == "" {
		fields = append(fields, apperror.FieldError{Field: "quote", Message: "quote is required"})
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		fields = append(fields, apperror.FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	rating := defaultRating
	if input.Rating != nil {
		rating = *input.Rating
	}
	testimonial := &model.Testimonial{
		ClientName:     strings.TrimSpace(input.ClientName),
		ClientTitle:    input.ClientTitle,
		ClientCompany:  input.ClientCompany,
		ClientImageURL: input.ClientImageURL,
		Quote:          strings.TrimSpace(input.Quote),
		Rating:         rating,
		IsActive:       boolOrDefault(input.IsActive, true),
	}
	if err := s.testimonials.CreateTestimonial(ctx, testimonial); err != nil {
		s.logger.Error("failed to create testimonial",
			slog.String("clientName", testimonial.ClientName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating testimonial: %w", err)
	}

	s.logger.Info("testimonial created", slog.Int64("id", testimonial.ID))
	return testimonial, nil
}

func (s *ContentService) UpdateTestimonial(ctx context.Context, id int64, patch model.TestimonialPatch) (*model.Testimonial, error) {
	var fields []apperror.FieldError
	if patch.ClientName != nil {
		if strings.TrimSpace(*patch.ClientName) == "" {
			fields = append(fields, apperror.FieldError{Field: "clientName", Message: "client name cannot be blank"})
		}
		fields = checkTitleLength(fields, "clientName", *patch.ClientName)
	}
	if patch.Quote != nil && strings.TrimSpace(*patch.Quote) == "" {
		fields = append(fields, apperror.FieldError{Field: "quote", Message: "quote cannot be blank"})
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		fields = append(fields, apperror.FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	testimonial, err := s.testimonials.UpdateTestimonial(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("testimonial updated", slog.Int64("id", id))
	return testimonial, nil
}

func (s *ContentService) DeleteTestimonial(ctx context.Context, id int64) error {
	if err := s.testimonials.DeleteTestimonial(ctx, id); err != nil {
		return err
	}
	s.logger.Info("testimonial deleted", slog.Int64("id", id))
	return nil
}

func (s *ContentService) ReorderTestimonials(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return apperror.ValidationFailed("ids", "at least one id is required")
	}
	if err := s.testimonials.ReorderTestimonials(ctx, ids); err != nil {
		s.logger.Error("failed to reorder testimonials", slog.String("error", err.Error()))
		return fmt.Errorf("reordering testimonials: %w", err)
	}
	s.logger.Info("testimonials reordered", slog.Int("count", len(ids)))
	return nil
}
