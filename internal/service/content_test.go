package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
)

func newTestContentService(t *testing.T) (*ContentService, *mockServiceRepo) {
	t.Helper()
	services := newMockServiceRepo()
	svc := NewContentService(newMockSectionRepo(), services, newMockTestimonialRepo(), testLogger(t))
	return svc, services
}

func TestCreateSection_DefaultsActive(t *testing.T) {
	svc, _ := newTestContentService(t)

	section, err := svc.CreateSection(context.Background(), model.InsertContentSection{
		SectionType: model.SectionHero,
		Title:       "Stories in motion",
	})
	if err != nil {
		t.Fatalf("CreateSection() error = %v", err)
	}
	if !section.IsActive {
		t.Error("IsActive = false, want default true")
	}
}

func TestCreateSection_MissingType(t *testing.T) {
	svc, _ := newTestContentService(t)

	_, err := svc.CreateSection(context.Background(), model.InsertContentSection{Title: "no type"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("CreateSection() error = %v, want ErrValidation", err)
	}
}

func TestTitleCap_AppliesAcrossContentEntities(t *testing.T) {
	svc, _ := newTestContentService(t)
	ctx := context.Background()
	long := strings.Repeat("x", MaxTitleLength+1)

	_, err := svc.CreateSection(ctx, model.InsertContentSection{
		SectionType: model.SectionHero,
		Title:       long,
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("CreateSection(long title) error = %v, want ErrValidation", err)
	}

	_, err = svc.CreateService(ctx, model.InsertService{Title: long})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("CreateService(long title) error = %v, want ErrValidation", err)
	}

	_, err = svc.CreateTestimonial(ctx, model.InsertTestimonial{
		ClientName: long,
		Quote:      "fine otherwise",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("CreateTestimonial(long clientName) error = %v, want ErrValidation", err)
	}

	_, err = svc.UpdateSection(ctx, 1, model.ContentSectionPatch{Title: &long})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("UpdateSection(long title) error = %v, want ErrValidation", err)
	}
}

func TestCreateTestimonial_CollectsAllFieldErrors(t *testing.T) {
	svc, _ := newTestContentService(t)

	bad := 9
	_, err := svc.CreateTestimonial(context.Background(), model.InsertTestimonial{Rating: &bad})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("CreateTestimonial() error = %v, want ErrValidation", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not an *AppError: %v", err)
	}
	// clientName missing, quote missing, rating out of range — all reported.
	if len(appErr.Fields) != 3 {
		t.Errorf("Fields = %+v, want 3 entries", appErr.Fields)
	}
}

func TestCreateTestimonial_DefaultRating(t *testing.T) {
	svc, _ := newTestContentService(t)

	testimonial, err := svc.CreateTestimonial(context.Background(), model.InsertTestimonial{
		ClientName: "Priya N.",
		Quote:      "The launch film doubled our signups.",
	})
	if err != nil {
		t.Fatalf("CreateTestimonial() error = %v", err)
	}
	if testimonial.Rating != 5 {
		t.Errorf("Rating = %d, want default 5", testimonial.Rating)
	}
}

func TestReorderServices_EmptyIDs(t *testing.T) {
	svc, services := newTestContentService(t)

	err := svc.ReorderServices(context.Background(), nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("ReorderServices(nil) error = %v, want ErrValidation", err)
	}
	if len(services.reorders) != 0 {
		t.Error("repository reorder was called despite validation failure")
	}
}

func TestReorderServices_Delegates(t *testing.T) {
	svc, services := newTestContentService(t)

	if err := svc.ReorderServices(context.Background(), []int64{3, 1, 2}); err != nil {
		t.Fatalf("ReorderServices() error = %v", err)
	}
	if len(services.reorders) != 1 || len(services.reorders[0]) != 3 {
		t.Errorf("reorders = %+v, want one call with 3 ids", services.reorders)
	}
}

func TestUpdateService_BlankTitle(t *testing.T) {
	svc, _ := newTestContentService(t)

	blank := "   "
	_, err := svc.UpdateService(context.Background(), 1, model.ServicePatch{Title: &blank})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("UpdateService() error = %v, want ErrValidation", err)
	}
}
