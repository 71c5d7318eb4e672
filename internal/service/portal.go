package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/auth"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var (
	projectStatuses = map[string]bool{
		model.StatusPlanning:   true,
		model.StatusInProgress: true,
		model.StatusReview:     true,
		model.StatusCompleted:  true,
	}
	feedbackStatuses = map[string]bool{
		model.FeedbackOpen:      true,
		model.FeedbackAddressed: true,
		model.FeedbackResolved:  true,
	}
	feedbackPriorities = map[string]bool{
		model.PriorityLow:    true,
		model.PriorityMedium: true,
		model.PriorityHigh:   true,
	}
)

// PortalService manages client projects and their assets, feedback, and
// milestones. Admin operations see everything; portal reads are scoped to
// the caller — a client asking about someone else's project gets NotFound,
// never Forbidden, so project ids don't leak.
type PortalService struct {
	projects   repository.ClientProjectRepository
	assets     repository.ProjectAssetRepository
	feedback   repository.ProjectFeedbackRepository
	milestones repository.ProjectMilestoneRepository
	logger     *slog.Logger
}

func NewPortalService(
	projects repository.ClientProjectRepository,
	assets repository.ProjectAssetRepository,
	feedback repository.ProjectFeedbackRepository,
	milestones repository.ProjectMilestoneRepository,
	logger *slog.Logger,
) *PortalService {
	return &PortalService{
		projects:   projects,
		assets:     assets,
		feedback:   feedback,
		milestones: milestones,
		logger:     logger,
	}
}

// MilestoneOverview bundles a project's milestone list with its completion
// summary for the portal timeline view.
type MilestoneOverview struct {
	Milestones []model.ProjectMilestone `json:"milestones"`
	Progress   model.MilestoneProgress  `json:"progress"`
}

// --- Admin project management ---

func (s *PortalService) ListProjects(ctx context.Context) ([]model.ClientProject, error) {
	return s.projects.ListClientProjects(ctx)
}

func (s *PortalService) GetProject(ctx context.Context, id int64) (*model.ClientProject, error) {
	return s.projects.GetClientProject(ctx, id)
}

func (s *PortalService) CreateProject(ctx context.Context, input model.InsertClientProject) (*model.ClientProject, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "title is required"})
	}
	fields = checkTitleLength(fields, "title", input.Title)
	status := input.Status
	if status == "" {
		status = model.StatusPlanning
	} else if !projectStatuses[status] {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "status must be one of planning, in-progress, review, completed"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	project := &model.ClientProject{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ClientID:    input.ClientID,
		Status:      status,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		ProjectType: input.ProjectType,
		IsActive:    boolOrDefault(input.IsActive, true),
	}
	if err := s.projects.CreateClientProject(ctx, project); err != nil {
		s.logger.Error("failed to create client project",
			slog.String("title", project.Title),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating client project: %w", err)
	}

	s.logger.Info("client project created",
		slog.Int64("id", project.ID),
		slog.String("clientId", project.ClientID))
	return project, nil
}

func (s *PortalService) UpdateProject(ctx context.Context, id int64, patch model.ClientProjectPatch) (*model.ClientProject, error) {
	var fields []apperror.FieldError
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			fields = append(fields, apperror.FieldError{Field: "title", Message: "title cannot be blank"})
		}
		fields = checkTitleLength(fields, "title", *patch.Title)
	}
	if patch.Status != nil && !projectStatuses[*patch.Status] {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "status must be one of planning, in-progress, review, completed"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	project, err := s.projects.UpdateClientProject(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("client project updated", slog.Int64("id", id))
	return project, nil
}

func (s *PortalService) DeleteProject(ctx context.Context, id int64) error {
	if err := s.projects.DeleteClientProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client project deleted", slog.Int64("id", id))
	return nil
}

// --- Assets ---

func (s *PortalService) ListAssets(ctx context.Context, projectID int64) ([]model.ProjectAsset, error) {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.assets.ListProjectAssets(ctx, projectID)
}

func (s *PortalService) CreateAsset(ctx context.Context, projectID int64, uploadedBy string, input model.InsertProjectAsset) (*model.ProjectAsset, error) {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return nil, err
	}

	var fields []apperror.FieldError
	if strings.TrimSpace(input.FileName) == "" {
		fields = append(fields, apperror.FieldError{Field: "fileName", Message: "file name is required"})
	}
	if strings.TrimSpace(input.FileURL) == "" {
		fields = append(fields, apperror.FieldError{Field: "fileUrl", Message: "file URL is required"})
	}
	if input.Version != nil && *input.Version < 1 {
		fields = append(fields, apperror.FieldError{Field: "version", Message: "version must be 1 or greater"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	version := 1
	if input.Version != nil {
		version = *input.Version
	}
	asset := &model.ProjectAsset{
		ProjectID:        projectID,
		FileName:         strings.TrimSpace(input.FileName),
		FileURL:          strings.TrimSpace(input.FileURL),
		FileType:         input.FileType,
		Version:          version,
		UploadedBy:       uploadedBy,
		IsCurrentVersion: boolOrDefault(input.IsCurrentVersion, true),
	}
	if err := s.assets.CreateProjectAsset(ctx, asset); err != nil {
		s.logger.Error("failed to create project asset",
			slog.Int64("projectId", projectID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating project asset: %w", err)
	}

	s.logger.Info("project asset created",
		slog.Int64("id", asset.ID),
		slog.Int64("projectId", projectID),
		slog.Int("version", asset.Version))
	return asset, nil
}

func (s *PortalService) UpdateAsset(ctx context.Context, id int64, patch model.ProjectAssetPatch) (*model.ProjectAsset, error) {
	if patch.Version != nil && *patch.Version < 1 {
		return nil, apperror.ValidationFailed("version", "version must be 1 or greater")
	}

	asset, err := s.assets.UpdateProjectAsset(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project asset updated", slog.Int64("id", id))
	return asset, nil
}

func (s *PortalService) DeleteAsset(ctx context.Context, id int64) error {
	if err := s.assets.DeleteProjectAsset(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project asset deleted", slog.Int64("id", id))
	return nil
}

// --- Feedback ---

func (s *PortalService) ListFeedback(ctx context.Context, projectID int64) ([]model.ProjectFeedback, error) {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.feedback.ListProjectFeedback(ctx, projectID)
}

func (s *PortalService) CreateFeedback(ctx context.Context, projectID int64, userID string, input model.InsertProjectFeedback) (*model.ProjectFeedback, error) {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.createFeedback(ctx, projectID, userID, input)
}

func (s *PortalService) createFeedback(ctx context.Context, projectID int64, userID string, input model.InsertProjectFeedback) (*model.ProjectFeedback, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Comment) == "" {
		fields = append(fields, apperror.FieldError{Field: "comment", Message: "comment is required"})
	}
	status := input.Status
	if status == "" {
		status = model.FeedbackOpen
	} else if !feedbackStatuses[status] {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "status must be one of open, addressed, resolved"})
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	} else if !feedbackPriorities[priority] {
		fields = append(fields, apperror.FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	feedback := &model.ProjectFeedback{
		ProjectID: projectID,
		AssetID:   input.AssetID,
		UserID:    userID,
		Comment:   strings.TrimSpace(input.Comment),
		Timestamp: input.Timestamp,
		Status:    status,
		Priority:  priority,
	}
	if err := s.feedback.CreateProjectFeedback(ctx, feedback); err != nil {
		s.logger.Error("failed to create project feedback",
			slog.Int64("projectId", projectID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating project feedback: %w", err)
	}

	s.logger.Info("project feedback created",
		slog.Int64("id", feedback.ID),
		slog.Int64("projectId", projectID),
		slog.String("priority", feedback.Priority))
	return feedback, nil
}

func (s *PortalService) UpdateFeedback(ctx context.Context, id int64, patch model.ProjectFeedbackPatch) (*model.ProjectFeedback, error) {
	var fields []apperror.FieldError
	if patch.Comment != nil && strings.TrimSpace(*patch.Comment) == "" {
		fields = append(fields, apperror.FieldError{Field: "comment", Message: "comment cannot be blank"})
	}
	if patch.Status != nil && !feedbackStatuses[*patch.Status] {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "status must be one of open, addressed, resolved"})
	}
	if patch.Priority != nil && !feedbackPriorities[*patch.Priority] {
		fields = append(fields, apperror.FieldError{Field: "priority", Message: "priority must be one of low, medium, high"})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	feedback, err := s.feedback.UpdateProjectFeedback(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project feedback updated", slog.Int64("id", id))
	return feedback, nil
}

func (s *PortalService) DeleteFeedback(ctx context.Context, id int64) error {
	if err := s.feedback.DeleteProjectFeedback(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project feedback deleted", slog.Int64("id", id))
	return nil
}

// --- Milestones ---

func (s *PortalService) ListMilestones(ctx context.Context, projectID int64) ([]model.ProjectMilestone, error) {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.milestones.ListProjectMilestones(ctx, projectID)
}

func (s *PortalService) CreateMilestone(ctx context.Context, projectID int64, input model.InsertProjectMilestone) (*model.ProjectMilestone, error) {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if fields := checkTitleLength(nil, "title", input.Title); len(fields) > 0 {
		return nil, apperror.ValidationErrors(fields)
	}

	milestone := &model.ProjectMilestone{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		IsCompleted: boolOrDefault(input.IsCompleted, false),
	}
	if err := s.milestones.CreateProjectMilestone(ctx, milestone); err != nil {
		s.logger.Error("failed to create project milestone",
			slog.Int64("projectId", projectID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating project milestone: %w", err)
	}

	s.logger.Info("project milestone created",
		slog.Int64("id", milestone.ID),
		slog.Int64("projectId", projectID))
	return milestone, nil
}

func (s *PortalService) UpdateMilestone(ctx context.Context, id int64, patch model.ProjectMilestonePatch) (*model.ProjectMilestone, error) {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be blank")
		}
		if fields := checkTitleLength(nil, "title", *patch.Title); len(fields) > 0 {
			return nil, apperror.ValidationErrors(fields)
		}
	}

	milestone, err := s.milestones.UpdateProjectMilestone(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project milestone updated", slog.Int64("id", id))
	return milestone, nil
}

func (s *PortalService) DeleteMilestone(ctx context.Context, id int64) error {
	if err := s.milestones.DeleteProjectMilestone(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project milestone deleted", slog.Int64("id", id))
	return nil
}

func (s *PortalService) ReorderMilestones(ctx context.Context, projectID int64, ids []int64) error {
	if _, err := s.projects.GetClientProject(ctx, projectID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return apperror.ValidationFailed("ids", "at least one id is required")
	}
	if err := s.milestones.ReorderProjectMilestones(ctx, projectID, ids); err != nil {
		s.logger.Error("failed to reorder milestones",
			slog.Int64("projectId", projectID),
			slog.String("error", err.Error()))
		return fmt.Errorf("reordering milestones: %w", err)
	}
	s.logger.Info("milestones reordered",
		slog.Int64("projectId", projectID),
		slog.Int("count", len(ids)))
	return nil
}

// --- Portal reads (scoped to the caller) ---

// ProjectsFor lists the projects the caller may see: everything for admins,
// the caller's own projects otherwise.
func (s *PortalService) ProjectsFor(ctx context.Context, identity auth.Identity) ([]model.ClientProject, error) {
	if identity.Role == model.RoleAdmin {
		return s.projects.ListClientProjects(ctx)
	}
	return s.projects.ListClientProjectsByClient(ctx, identity.UserID)
}

// visibleProject loads a project if the caller may see it. Unauthorized
// access is indistinguishable from a missing project.
func (s *PortalService) visibleProject(ctx context.Context, identity auth.Identity, projectID int64) (*model.ClientProject, error) {
	project, err := s.projects.GetClientProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if identity.Role != model.RoleAdmin && project.ClientID != identity.UserID {
		return nil, apperror.NotFound("client project", fmt.Sprint(projectID))
	}
	return project, nil
}

func (s *PortalService) AssetsFor(ctx context.Context, identity auth.Identity, projectID int64) ([]model.ProjectAsset, error) {
	if _, err := s.visibleProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.assets.ListProjectAssets(ctx, projectID)
}

func (s *PortalService) FeedbackFor(ctx context.Context, identity auth.Identity, projectID int64) ([]model.ProjectFeedback, error) {
	if _, err := s.visibleProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.feedback.ListProjectFeedback(ctx, projectID)
}

// MilestonesFor returns the project's timeline plus the completion summary
// shown at the top of the portal view.
func (s *PortalService) MilestonesFor(ctx context.Context, identity auth.Identity, projectID int64) (*MilestoneOverview, error) {
	if _, err := s.visibleProject(ctx, identity, projectID); err != nil {
		return nil, err
	}

	milestones, err := s.milestones.ListProjectMilestones(ctx, projectID)
	if err != nil {
		return nil, err
	}
	progress, err := s.milestones.GetMilestoneProgress(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &MilestoneOverview{Milestones: milestones, Progress: progress}, nil
}

// SubmitFeedback lets a portal user comment on a project they can see. The
// author is always the caller.
func (s *PortalService) SubmitFeedback(ctx context.Context, identity auth.Identity, projectID int64, input model.InsertProjectFeedback) (*model.ProjectFeedback, error) {
	if _, err := s.visibleProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.createFeedback(ctx, projectID, identity.UserID, input)
}
