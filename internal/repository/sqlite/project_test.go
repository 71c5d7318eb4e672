package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
)

func createTestClientProject(t *testing.T, db *DB, title, clientID string) *model.ClientProject {
	t.Helper()
	project := &model.ClientProject{
		Title:    title,
		ClientID: clientID,
		Status:   model.StatusPlanning,
		IsActive: true,
	}
	if err := db.CreateClientProject(context.Background(), project); err != nil {
		t.Fatalf("failed to create test client project: %v", err)
	}
	return project
}

func createTestUser(t *testing.T, db *DB, id, email, role string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Email: email, Role: role}
	if err := db.UpsertUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestClientProjectCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, "client-1", "client@example.com", model.RoleClient)

	project := createTestClientProject(t, db, "Product Launch Video", "client-1")
	if project.ID == 0 {
		t.Fatal("CreateClientProject() did not set ID")
	}

	found, err := db.GetClientProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetClientProject() error = %v", err)
	}
	if found.Title != "Product Launch Video" || found.ClientID != "client-1" {
		t.Errorf("GetClientProject() = %+v", found)
	}

	status := model.StatusInProgress
	updated, err := db.UpdateClientProject(ctx, project.ID, model.ClientProjectPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateClientProject() error = %v", err)
	}
	if updated.Status != model.StatusInProgress {
		t.Errorf("Status = %q, want %q", updated.Status, model.StatusInProgress)
	}
	if updated.Title != "Product Launch Video" {
		t.Errorf("Title changed by a patch that did not mention it: %q", updated.Title)
	}

	if err := db.DeleteClientProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteClientProject() error = %v", err)
	}
	if _, err := db.GetClientProject(ctx, project.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetClientProject() after delete error = %v, want ErrNotFound", err)
	}
}

func TestListClientProjectsByClient(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, "client-1", "one@example.com", model.RoleClient)
	createTestUser(t, db, "client-2", "two@example.com", model.RoleClient)

	mine := createTestClientProject(t, db, "mine", "client-1")
	createTestClientProject(t, db, "theirs", "client-2")

	projects, err := db.ListClientProjectsByClient(ctx, "client-1")
	if err != nil {
		t.Fatalf("ListClientProjectsByClient() error = %v", err)
	}
	if len(projects) != 1 || projects[0].ID != mine.ID {
		t.Errorf("ListClientProjectsByClient() = %+v, want only project %d", projects, mine.ID)
	}
}

func TestDeleteClientProject_Cascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := createTestClientProject(t, db, "doomed", "")

	asset := &model.ProjectAsset{ProjectID: project.ID, FileName: "cut-v1.mp4", Version: 1, IsCurrentVersion: true}
	if err := db.CreateProjectAsset(ctx, asset); err != nil {
		t.Fatalf("CreateProjectAsset() error = %v", err)
	}
	feedback := &model.ProjectFeedback{
		ProjectID: project.ID, Comment: "tighten the intro",
		Status: model.FeedbackOpen, Priority: model.PriorityMedium,
	}
	if err := db.CreateProjectFeedback(ctx, feedback); err != nil {
		t.Fatalf("CreateProjectFeedback() error = %v", err)
	}
	milestone := &model.ProjectMilestone{ProjectID: project.ID, Title: "first cut"}
	if err := db.CreateProjectMilestone(ctx, milestone); err != nil {
		t.Fatalf("CreateProjectMilestone() error = %v", err)
	}

	if err := db.DeleteClientProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteClientProject() error = %v", err)
	}

	assets, err := db.ListProjectAssets(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectAssets() error = %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("assets survived project delete: %+v", assets)
	}
	allFeedback, err := db.ListProjectFeedback(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectFeedback() error = %v", err)
	}
	if len(allFeedback) != 0 {
		t.Errorf("feedback survived project delete: %+v", allFeedback)
	}
	milestones, err := db.ListProjectMilestones(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectMilestones() error = %v", err)
	}
	if len(milestones) != 0 {
		t.Errorf("milestones survived project delete: %+v", milestones)
	}
}

func TestMilestoneCompletionTracksCompletedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := createTestClientProject(t, db, "tracked", "")

	milestone := &model.ProjectMilestone{ProjectID: project.ID, Title: "storyboard"}
	if err := db.CreateProjectMilestone(ctx, milestone); err != nil {
		t.Fatalf("CreateProjectMilestone() error = %v", err)
	}
	if milestone.CompletedAt != nil {
		t.Errorf("incomplete milestone has CompletedAt = %v, want nil", milestone.CompletedAt)
	}

	done := true
	updated, err := db.UpdateProjectMilestone(ctx, milestone.ID, model.ProjectMilestonePatch{IsCompleted: &done})
	if err != nil {
		t.Fatalf("UpdateProjectMilestone() complete error = %v", err)
	}
	if !updated.IsCompleted || updated.CompletedAt == nil {
		t.Errorf("after completion: IsCompleted = %v, CompletedAt = %v", updated.IsCompleted, updated.CompletedAt)
	}

	undone := false
	updated, err = db.UpdateProjectMilestone(ctx, milestone.ID, model.ProjectMilestonePatch{IsCompleted: &undone})
	if err != nil {
		t.Fatalf("UpdateProjectMilestone() reopen error = %v", err)
	}
	if updated.IsCompleted || updated.CompletedAt != nil {
		t.Errorf("after reopen: IsCompleted = %v, CompletedAt = %v", updated.IsCompleted, updated.CompletedAt)
	}
}

func TestMilestoneProgressAndReorder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := createTestClientProject(t, db, "scored", "")
	other := createTestClientProject(t, db, "other", "")

	var ids []int64
	for _, title := range []string{"script", "shoot", "edit"} {
		m := &model.ProjectMilestone{ProjectID: project.ID, Title: title}
		if err := db.CreateProjectMilestone(ctx, m); err != nil {
			t.Fatalf("CreateProjectMilestone(%q) error = %v", title, err)
		}
		ids = append(ids, m.ID)
	}
	// A milestone on another project must not leak into progress or reorder.
	stray := &model.ProjectMilestone{ProjectID: other.ID, Title: "stray"}
	if err := db.CreateProjectMilestone(ctx, stray); err != nil {
		t.Fatalf("CreateProjectMilestone(stray) error = %v", err)
	}

	done := true
	if _, err := db.UpdateProjectMilestone(ctx, ids[0], model.ProjectMilestonePatch{IsCompleted: &done}); err != nil {
		t.Fatalf("UpdateProjectMilestone() error = %v", err)
	}

	progress, err := db.GetMilestoneProgress(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetMilestoneProgress() error = %v", err)
	}
	if progress.Completed != 1 || progress.Total != 3 {
		t.Errorf("progress = %+v, want 1/3", progress)
	}

	// Reorder scoped to the project: the stray milestone keeps its rank.
	reversed := []int64{ids[2], ids[1], ids[0], stray.ID}
	if err := db.ReorderProjectMilestones(ctx, project.ID, reversed); err != nil {
		t.Fatalf("ReorderProjectMilestones() error = %v", err)
	}

	milestones, err := db.ListProjectMilestones(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectMilestones() error = %v", err)
	}
	if milestones[0].ID != ids[2] || milestones[1].ID != ids[1] || milestones[2].ID != ids[0] {
		t.Errorf("order after reorder = %d, %d, %d; want %d, %d, %d",
			milestones[0].ID, milestones[1].ID, milestones[2].ID, ids[2], ids[1], ids[0])
	}

	strayAfter, err := db.GetProjectMilestone(ctx, stray.ID)
	if err != nil {
		t.Fatalf("GetProjectMilestone(stray) error = %v", err)
	}
	if strayAfter.SortOrder != stray.SortOrder {
		t.Errorf("stray milestone rank changed: %d → %d", stray.SortOrder, strayAfter.SortOrder)
	}
}

func TestProjectAssetVersions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := createTestClientProject(t, db, "versioned", "")

	v1 := &model.ProjectAsset{ProjectID: project.ID, FileName: "cut.mp4", Version: 1, IsCurrentVersion: true}
	if err := db.CreateProjectAsset(ctx, v1); err != nil {
		t.Fatalf("CreateProjectAsset(v1) error = %v", err)
	}
	v2 := &model.ProjectAsset{ProjectID: project.ID, FileName: "cut.mp4", Version: 2, IsCurrentVersion: true}
	if err := db.CreateProjectAsset(ctx, v2); err != nil {
		t.Fatalf("CreateProjectAsset(v2) error = %v", err)
	}

	// Caller manages currency; demote the old version explicitly.
	notCurrent := false
	updated, err := db.UpdateProjectAsset(ctx, v1.ID, model.ProjectAssetPatch{IsCurrentVersion: &notCurrent})
	if err != nil {
		t.Fatalf("UpdateProjectAsset() error = %v", err)
	}
	if updated.IsCurrentVersion {
		t.Error("asset still marked current after demotion")
	}

	assets, err := db.ListProjectAssets(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListProjectAssets() error = %v", err)
	}
	if len(assets) != 2 {
		t.Errorf("ListProjectAssets() returned %d, want 2", len(assets))
	}
}

func TestUpdateProjectFeedback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := createTestClientProject(t, db, "reviewed", "")

	feedback := &model.ProjectFeedback{
		ProjectID: project.ID,
		Comment:   "logo too small at 00:12",
		Timestamp: "00:12",
		Status:    model.FeedbackOpen,
		Priority:  model.PriorityHigh,
	}
	if err := db.CreateProjectFeedback(ctx, feedback); err != nil {
		t.Fatalf("CreateProjectFeedback() error = %v", err)
	}

	status := model.FeedbackResolved
	updated, err := db.UpdateProjectFeedback(ctx, feedback.ID, model.ProjectFeedbackPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateProjectFeedback() error = %v", err)
	}
	if updated.Status != model.FeedbackResolved {
		t.Errorf("Status = %q, want %q", updated.Status, model.FeedbackResolved)
	}
	if updated.Priority != model.PriorityHigh {
		t.Errorf("Priority changed by a patch that did not mention it: %q", updated.Priority)
	}
}
