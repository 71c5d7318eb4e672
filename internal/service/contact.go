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

// ContactService handles enquiries from the public contact form. The public
// side only appends; reading, marking read, and deleting are admin actions.
type ContactService struct {
	repo   repository.ContactRepository
	logger *slog.Logger
}

func NewContactService(repo repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, input model.InsertContactSubmission) (*model.ContactSubmission, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(email, "@") {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if len(input.Message) > MaxTextLength {
		fields = append(fields, apperror.FieldError{Field: "message", Message: fmt.Sprintf("message must be %d characters or less", MaxTextLength)})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	submission := &model.ContactSubmission{
		Name:        strings.TrimSpace(input.Name),
		Email:       email,
		Company:     input.Company,
		ProjectType: input.ProjectType,
		Message:     input.Message,
	}
	if err := s.repo.CreateContactSubmission(ctx, submission); err != nil {
		s.logger.Error("failed to store contact submission",
			slog.String("email", submission.Email),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("storing contact submission: %w", err)
	}

	s.logger.Info("contact submission received",
		slog.Int64("id", submission.ID),
		slog.String("projectType", submission.ProjectType))
	return submission, nil
}

func (s *ContactService) List(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.repo.ListContactSubmissions(ctx)
}

func (s *ContactService) ListUnread(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.repo.ListUnreadContactSubmissions(ctx)
}

func (s *ContactService) MarkRead(ctx context.Context, id int64) error {
	if err := s.repo.MarkContactSubmissionRead(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contact submission marked read", slog.Int64("id", id))
	return nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteContactSubmission(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contact submission deleted", slog.Int64("id", id))
	return nil
}
