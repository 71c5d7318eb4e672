package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
)

func TestContactSubmit_CollectsAllFieldErrors(t *testing.T) {
	svc := NewContactService(newMockContactRepo(), testLogger(t))

	_, err := svc.Submit(context.Background(), model.InsertContactSubmission{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Submit() error = %v, want ErrValidation", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not an *AppError: %v", err)
	}
	if len(appErr.Fields) != 2 { // name and email both missing
		t.Errorf("Fields = %+v, want 2 entries", appErr.Fields)
	}
}

func TestContactSubmit_BadEmail(t *testing.T) {
	svc := NewContactService(newMockContactRepo(), testLogger(t))

	_, err := svc.Submit(context.Background(), model.InsertContactSubmission{
		Name:  "Ada",
		Email: "not-an-address",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Submit() error = %v, want ErrValidation", err)
	}
}

func TestContactSubmit_Stores(t *testing.T) {
	repo := newMockContactRepo()
	svc := NewContactService(repo, testLogger(t))

	submission, err := svc.Submit(context.Background(), model.InsertContactSubmission{
		Name:        "  Ada  ",
		Email:       "ada@example.com",
		ProjectType: "commercial",
		Message:     "launch video for Q4",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if submission.ID == 0 {
		t.Error("Submit() did not assign an id")
	}
	if submission.Name != "Ada" {
		t.Errorf("Name = %q, want trimmed %q", submission.Name, "Ada")
	}
	if submission.IsRead {
		t.Error("new submission is marked read")
	}
}
