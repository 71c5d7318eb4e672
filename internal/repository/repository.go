// Package repository declares the storage interfaces the service layer
// depends on. The sqlite subpackage implements all of them on a single DB
// type; services receive only the interfaces they need.
//
// Contract notes shared by every implementation:
//   - Create fills in the server-assigned fields (id, timestamps, sortOrder)
//     on the passed struct.
//   - Update applies only the non-nil patch fields, always refreshes
//     updatedAt where the entity has one, and returns NotFound when the id
//     does not exist.
//   - Delete is idempotent: deleting a missing id is a no-op, not an error.
//   - "Get by unique key" lookups (content section type, blog slug) return
//     (nil, nil) when nothing matches — absence is a normal outcome there,
//     not an error.
package repository

import (
	"context"

	"github.com/sakif/studio-site/internal/model"
)

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertUser inserts the user or, if the id already exists, updates the
	// profile fields and refreshes updatedAt.
	UpsertUser(ctx context.Context, user *model.User) error
}

type ContentSectionRepository interface {
	ListContentSections(ctx context.Context) ([]model.ContentSection, error)
	// GetContentSectionByType returns the active section with the lowest id
	// for the given type, or (nil, nil) when none is active.
	GetContentSectionByType(ctx context.Context, sectionType string) (*model.ContentSection, error)
	CreateContentSection(ctx context.Context, section *model.ContentSection) error
	UpdateContentSection(ctx context.Context, id int64, patch model.ContentSectionPatch) (*model.ContentSection, error)
	DeleteContentSection(ctx context.Context, id int64) error
}

type ServiceRepository interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	ListActiveServices(ctx context.Context) ([]model.Service, error)
	CreateService(ctx context.Context, svc *model.Service) error
	UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error)
	DeleteService(ctx context.Context, id int64) error
	// ReorderServices rewrites sortOrder so each id's rank equals its
	// position in ids. Unknown ids are ignored; omitted rows keep their rank.
	ReorderServices(ctx context.Context, ids []int64) error
}

type PortfolioRepository interface {
	ListPortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error)
	ListActivePortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error)
	// ListFeaturedPortfolioProjects applies both gates: isActive AND isFeatured.
	ListFeaturedPortfolioProjects(ctx context.Context) ([]model.PortfolioProject, error)
	CreatePortfolioProject(ctx context.Context, project *model.PortfolioProject) error
	UpdatePortfolioProject(ctx context.Context, id int64, patch model.PortfolioProjectPatch) (*model.PortfolioProject, error)
	DeletePortfolioProject(ctx context.Context, id int64) error
	ReorderPortfolioProjects(ctx context.Context, ids []int64) error
}

type BlogRepository interface {
	ListBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	// CreateBlogPost returns a conflict error when the slug is already taken.
	// publishedAt is derived from IsPublished in the same write.
	CreateBlogPost(ctx context.Context, post *model.BlogPost) error
	UpdateBlogPost(ctx context.Context, id int64, patch model.BlogPostPatch) (*model.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id int64) error
}

type TestimonialRepository interface {
	ListTestimonials(ctx context.Context) ([]model.Testimonial, error)
	ListActiveTestimonials(ctx context.Context) ([]model.Testimonial, error)
	CreateTestimonial(ctx context.Context, testimonial *model.Testimonial) error
	UpdateTestimonial(ctx context.Context, id int64, patch model.TestimonialPatch) (*model.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error
	ReorderTestimonials(ctx context.Context, ids []int64) error
}

type ContactRepository interface {
	ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error)
	ListUnreadContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error)
	// CreateContactSubmission forces isRead to false regardless of input.
	CreateContactSubmission(ctx context.Context, submission *model.ContactSubmission) error
	// MarkContactSubmissionRead sets isRead and touches nothing else.
	MarkContactSubmissionRead(ctx context.Context, id int64) error
	DeleteContactSubmission(ctx context.Context, id int64) error
}

type ClientProjectRepository interface {
	ListClientProjects(ctx context.Context) ([]model.ClientProject, error)
	ListClientProjectsByClient(ctx context.Context, clientID string) ([]model.ClientProject, error)
	GetClientProject(ctx context.Context, id int64) (*model.ClientProject, error)
	CreateClientProject(ctx context.Context, project *model.ClientProject) error
	UpdateClientProject(ctx context.Context, id int64, patch model.ClientProjectPatch) (*model.ClientProject, error)
	// DeleteClientProject cascades to the project's assets, feedback, and
	// milestones at the store level.
	DeleteClientProject(ctx context.Context, id int64) error
}

type ProjectAssetRepository interface {
	ListProjectAssets(ctx context.Context, projectID int64) ([]model.ProjectAsset, error)
	CreateProjectAsset(ctx context.Context, asset *model.ProjectAsset) error
	UpdateProjectAsset(ctx context.Context, id int64, patch model.ProjectAssetPatch) (*model.ProjectAsset, error)
	DeleteProjectAsset(ctx context.Context, id int64) error
}

type ProjectFeedbackRepository interface {
	ListProjectFeedback(ctx context.Context, projectID int64) ([]model.ProjectFeedback, error)
	CreateProjectFeedback(ctx context.Context, feedback *model.ProjectFeedback) error
	UpdateProjectFeedback(ctx context.Context, id int64, patch model.ProjectFeedbackPatch) (*model.ProjectFeedback, error)
	DeleteProjectFeedback(ctx context.Context, id int64) error
}

type ProjectMilestoneRepository interface {
	ListProjectMilestones(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error)
	CreateProjectMilestone(ctx context.Context, milestone *model.ProjectMilestone) error
	UpdateProjectMilestone(ctx context.Context, id int64, patch model.ProjectMilestonePatch) (*model.ProjectMilestone, error)
	DeleteProjectMilestone(ctx context.Context, id int64) error
	ReorderProjectMilestones(ctx context.Context, projectID int64, ids []int64) error
	// GetMilestoneProgress reports completed/total counts for a project.
	GetMilestoneProgress(ctx context.Context, projectID int64) (model.MilestoneProgress, error)
}
