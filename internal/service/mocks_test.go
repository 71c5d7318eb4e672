package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
)

// Hand-written in-memory mocks. Each one implements a repository interface
// just well enough for the service logic under test; the real SQL behavior
// is covered by the sqlite package's own tests.

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- content sections ---

type mockSectionRepo struct {
	sections map[int64]*model.ContentSection
	nextID   int64
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[int64]*model.ContentSection)}
}

func (m *mockSectionRepo) ListContentSections(_ context.Context) ([]model.ContentSection, error) {
	out := []model.ContentSection{}
	for _, s := range m.sections {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSectionRepo) GetContentSectionByType(_ context.Context, sectionType string) (*model.ContentSection, error) {
	var best *model.ContentSection
	for _, s := range m.sections {
		if s.SectionType == sectionType && s.IsActive && (best == nil || s.ID < best.ID) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	result := *best
	return &result, nil
}

func (m *mockSectionRepo) CreateContentSection(_ context.Context, section *model.ContentSection) error {
	m.nextID++
	section.ID = m.nextID
	section.CreatedAt = time.Now()
	section.UpdatedAt = section.CreatedAt
	stored := *section
	m.sections[section.ID] = &stored
	return nil
}

func (m *mockSectionRepo) UpdateContentSection(_ context.Context, id int64, patch model.ContentSectionPatch) (*model.ContentSection, error) {
	section, ok := m.sections[id]
	if !ok {
		return nil, apperror.NotFound("content section", fmt.Sprint(id))
	}
	if patch.Title != nil {
		section.Title = *patch.Title
	}
	if patch.IsActive != nil {
		section.IsActive = *patch.IsActive
	}
	result := *section
	return &result, nil
}

func (m *mockSectionRepo) DeleteContentSection(_ context.Context, id int64) error {
	delete(m.sections, id)
	return nil
}

// --- service offerings ---

type mockServiceRepo struct {
	services map[int64]*model.Service
	nextID   int64
	reorders [][]int64
}

func newMockServiceRepo() *mockServiceRepo {
	return &mockServiceRepo{services: make(map[int64]*model.Service)}
}

func (m *mockServiceRepo) ListServices(_ context.Context) ([]model.Service, error) {
	out := []model.Service{}
	for _, s := range m.services {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockServiceRepo) ListActiveServices(_ context.Context) ([]model.Service, error) {
	out := []model.Service{}
	for _, s := range m.services {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockServiceRepo) CreateService(_ context.Context, svc *model.Service) error {
	m.nextID++
	svc.ID = m.nextID
	svc.SortOrder = int(m.nextID)
	stored := *svc
	m.services[svc.ID] = &stored
	return nil
}

func (m *mockServiceRepo) UpdateService(_ context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
	svc, ok := m.services[id]
	if !ok {
		return nil, apperror.NotFound("service", fmt.Sprint(id))
	}
	if patch.Title != nil {
		svc.Title = *patch.Title
	}
	result := *svc
	return &result, nil
}

func (m *mockServiceRepo) DeleteService(_ context.Context, id int64) error {
	delete(m.services, id)
	return nil
}

func (m *mockServiceRepo) ReorderServices(_ context.Context, ids []int64) error {
	m.reorders = append(m.reorders, ids)
	return nil
}

// --- testimonials ---

type mockTestimonialRepo struct {
	testimonials map[int64]*model.Testimonial
	nextID       int64
}

func newMockTestimonialRepo() *mockTestimonialRepo {
	return &mockTestimonialRepo{testimonials: make(map[int64]*model.Testimonial)}
}

func (m *mockTestimonialRepo) ListTestimonials(_ context.Context) ([]model.Testimonial, error) {
	out := []model.Testimonial{}
	for _, tm := range m.testimonials {
		out = append(out, *tm)
	}
	return out, nil
}

func (m *mockTestimonialRepo) ListActiveTestimonials(_ context.Context) ([]model.Testimonial, error) {
	out := []model.Testimonial{}
	for _, tm := range m.testimonials {
		if tm.IsActive {
			out = append(out, *tm)
		}
	}
	return out, nil
}

func (m *mockTestimonialRepo) CreateTestimonial(_ context.Context, testimonial *model.Testimonial) error {
	m.nextID++
	testimonial.ID = m.nextID
	stored := *testimonial
	m.testimonials[testimonial.ID] = &stored
	return nil
}

func (m *mockTestimonialRepo) UpdateTestimonial(_ context.Context, id int64, patch model.TestimonialPatch) (*model.Testimonial, error) {
	tm, ok := m.testimonials[id]
	if !ok {
		return nil, apperror.NotFound("testimonial", fmt.Sprint(id))
	}
	if patch.Rating != nil {
		tm.Rating = *patch.Rating
	}
	result := *tm
	return &result, nil
}

func (m *mockTestimonialRepo) DeleteTestimonial(_ context.Context, id int64) error {
	delete(m.testimonials, id)
	return nil
}

func (m *mockTestimonialRepo) ReorderTestimonials(_ context.Context, ids []int64) error {
	return nil
}

// --- blog ---

type mockBlogRepo struct {
	posts  map[int64]*model.BlogPost
	nextID int64
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{posts: make(map[int64]*model.BlogPost)}
}

func (m *mockBlogRepo) ListBlogPosts(_ context.Context) ([]model.BlogPost, error) {
	out := []model.BlogPost{}
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockBlogRepo) ListPublishedBlogPosts(_ context.Context) ([]model.BlogPost, error) {
	out := []model.BlogPost{}
	for _, p := range m.posts {
		if p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockBlogRepo) GetBlogPostBySlug(_ context.Context, slug string) (*model.BlogPost, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			result := *p
			return &result, nil
		}
	}
	return nil, nil
}

func (m *mockBlogRepo) CreateBlogPost(_ context.Context, post *model.BlogPost) error {
	for _, p := range m.posts {
		if p.Slug == post.Slug {
			return apperror.Conflict("blog post", fmt.Sprintf("slug %q already in use", post.Slug))
		}
	}
	m.nextID++
	post.ID = m.nextID
	if post.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockBlogRepo) UpdateBlogPost(_ context.Context, id int64, patch model.BlogPostPatch) (*model.BlogPost, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("blog post", fmt.Sprint(id))
	}
	if patch.Slug != nil {
		post.Slug = *patch.Slug
	}
	if patch.IsPublished != nil {
		post.IsPublished = *patch.IsPublished
		if *patch.IsPublished {
			now := time.Now()
			post.PublishedAt = &now
		} else {
			post.PublishedAt = nil
		}
	}
	result := *post
	return &result, nil
}

func (m *mockBlogRepo) DeleteBlogPost(_ context.Context, id int64) error {
	delete(m.posts, id)
	return nil
}

// --- contact ---

type mockContactRepo struct {
	submissions map[int64]*model.ContactSubmission
	nextID      int64
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{submissions: make(map[int64]*model.ContactSubmission)}
}

func (m *mockContactRepo) ListContactSubmissions(_ context.Context) ([]model.ContactSubmission, error) {
	out := []model.ContactSubmission{}
	for _, s := range m.submissions {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockContactRepo) ListUnreadContactSubmissions(_ context.Context) ([]model.ContactSubmission, error) {
	out := []model.ContactSubmission{}
	for _, s := range m.submissions {
		if !s.IsRead {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockContactRepo) CreateContactSubmission(_ context.Context, submission *model.ContactSubmission) error {
	m.nextID++
	submission.ID = m.nextID
	submission.IsRead = false
	submission.CreatedAt = time.Now()
	stored := *submission
	m.submissions[submission.ID] = &stored
	return nil
}

func (m *mockContactRepo) MarkContactSubmissionRead(_ context.Context, id int64) error {
	s, ok := m.submissions[id]
	if !ok {
		return apperror.NotFound("contact submission", fmt.Sprint(id))
	}
	s.IsRead = true
	return nil
}

func (m *mockContactRepo) DeleteContactSubmission(_ context.Context, id int64) error {
	delete(m.submissions, id)
	return nil
}

// --- client projects and children ---

type mockProjectRepo struct {
	projects map[int64]*model.ClientProject
	nextID   int64
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[int64]*model.ClientProject)}
}

func (m *mockProjectRepo) ListClientProjects(_ context.Context) ([]model.ClientProject, error) {
	out := []model.ClientProject{}
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProjectRepo) ListClientProjectsByClient(_ context.Context, clientID string) ([]model.ClientProject, error) {
	out := []model.ClientProject{}
	for _, p := range m.projects {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProjectRepo) GetClientProject(_ context.Context, id int64) (*model.ClientProject, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, apperror.NotFound("client project", fmt.Sprint(id))
	}
	result := *p
	return &result, nil
}

func (m *mockProjectRepo) CreateClientProject(_ context.Context, project *model.ClientProject) error {
	m.nextID++
	project.ID = m.nextID
	stored := *project
	m.projects[project.ID] = &stored
	return nil
}

func (m *mockProjectRepo) UpdateClientProject(_ context.Context, id int64, patch model.ClientProjectPatch) (*model.ClientProject, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, apperror.NotFound("client project", fmt.Sprint(id))
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	result := *p
	return &result, nil
}

func (m *mockProjectRepo) DeleteClientProject(_ context.Context, id int64) error {
	delete(m.projects, id)
	return nil
}

type mockAssetRepo struct {
	assets map[int64]*model.ProjectAsset
	nextID int64
}

func newMockAssetRepo() *mockAssetRepo {
	return &mockAssetRepo{assets: make(map[int64]*model.ProjectAsset)}
}

func (m *mockAssetRepo) ListProjectAssets(_ context.Context, projectID int64) ([]model.ProjectAsset, error) {
	out := []model.ProjectAsset{}
	for _, a := range m.assets {
		if a.ProjectID == projectID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAssetRepo) CreateProjectAsset(_ context.Context, asset *model.ProjectAsset) error {
	m.nextID++
	asset.ID = m.nextID
	stored := *asset
	m.assets[asset.ID] = &stored
	return nil
}

func (m *mockAssetRepo) UpdateProjectAsset(_ context.Context, id int64, patch model.ProjectAssetPatch) (*model.ProjectAsset, error) {
	a, ok := m.assets[id]
	if !ok {
		return nil, apperror.NotFound("project asset", fmt.Sprint(id))
	}
	if patch.IsCurrentVersion != nil {
		a.IsCurrentVersion = *patch.IsCurrentVersion
	}
	result := *a
	return &result, nil
}

func (m *mockAssetRepo) DeleteProjectAsset(_ context.Context, id int64) error {
	delete(m.assets, id)
	return nil
}

type mockFeedbackRepo struct {
	feedback map[int64]*model.ProjectFeedback
	nextID   int64
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{feedback: make(map[int64]*model.ProjectFeedback)}
}

func (m *mockFeedbackRepo) ListProjectFeedback(_ context.Context, projectID int64) ([]model.ProjectFeedback, error) {
	out := []model.ProjectFeedback{}
	for _, f := range m.feedback {
		if f.ProjectID == projectID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockFeedbackRepo) CreateProjectFeedback(_ context.Context, feedback *model.ProjectFeedback) error {
	m.nextID++
	feedback.ID = m.nextID
	stored := *feedback
	m.feedback[feedback.ID] = &stored
	return nil
}

func (m *mockFeedbackRepo) UpdateProjectFeedback(_ context.Context, id int64, patch model.ProjectFeedbackPatch) (*model.ProjectFeedback, error) {
	f, ok := m.feedback[id]
	if !ok {
		return nil, apperror.NotFound("project feedback", fmt.Sprint(id))
	}
	if patch.Status != nil {
		f.Status = *patch.Status
	}
	result := *f
	return &result, nil
}

func (m *mockFeedbackRepo) DeleteProjectFeedback(_ context.Context, id int64) error {
	delete(m.feedback, id)
	return nil
}

type mockMilestoneRepo struct {
	milestones map[int64]*model.ProjectMilestone
	nextID     int64
}

func newMockMilestoneRepo() *mockMilestoneRepo {
	return &mockMilestoneRepo{milestones: make(map[int64]*model.ProjectMilestone)}
}

func (m *mockMilestoneRepo) ListProjectMilestones(_ context.Context, projectID int64) ([]model.ProjectMilestone, error) {
	out := []model.ProjectMilestone{}
	for _, ms := range m.milestones {
		if ms.ProjectID == projectID {
			out = append(out, *ms)
		}
	}
	return out, nil
}

func (m *mockMilestoneRepo) CreateProjectMilestone(_ context.Context, milestone *model.ProjectMilestone) error {
	m.nextID++
	milestone.ID = m.nextID
	milestone.SortOrder = int(m.nextID)
	stored := *milestone
	m.milestones[milestone.ID] = &stored
	return nil
}

func (m *mockMilestoneRepo) UpdateProjectMilestone(_ context.Context, id int64, patch model.ProjectMilestonePatch) (*model.ProjectMilestone, error) {
	ms, ok := m.milestones[id]
	if !ok {
		return nil, apperror.NotFound("project milestone", fmt.Sprint(id))
	}
	if patch.IsCompleted != nil {
		ms.IsCompleted = *patch.IsCompleted
	}
	result := *ms
	return &result, nil
}

func (m *mockMilestoneRepo) DeleteProjectMilestone(_ context.Context, id int64) error {
	delete(m.milestones, id)
	return nil
}

func (m *mockMilestoneRepo) ReorderProjectMilestones(_ context.Context, projectID int64, ids []int64) error {
	return nil
}

func (m *mockMilestoneRepo) GetMilestoneProgress(_ context.Context, projectID int64) (model.MilestoneProgress, error) {
	var progress model.MilestoneProgress
	for _, ms := range m.milestones {
		if ms.ProjectID == projectID {
			progress.Total++
			if ms.IsCompleted {
				progress.Completed++
			}
		}
	}
	return progress, nil
}

// --- users ---

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) UpsertUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email != "" && u.Email == user.Email && u.ID != user.ID {
			return apperror.Conflict("user", fmt.Sprintf("email %q already in use", user.Email))
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}
