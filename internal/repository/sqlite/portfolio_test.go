package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/studio-site/internal/model"
)

func createTestPortfolioProject(t *testing.T, db *DB, title string, active, featured bool) *model.PortfolioProject {
	t.Helper()
	project := &model.PortfolioProject{
		Title:      title,
		IsActive:   active,
		IsFeatured: featured,
	}
	if err := db.CreatePortfolioProject(context.Background(), project); err != nil {
		t.Fatalf("failed to create test portfolio project: %v", err)
	}
	return project
}

func TestListFeaturedPortfolioProjects_RequiresActive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	shown := createTestPortfolioProject(t, db, "brand film", true, true)
	createTestPortfolioProject(t, db, "archived spot", false, true) // featured but inactive
	createTestPortfolioProject(t, db, "plain spot", true, false)

	featured, err := db.ListFeaturedPortfolioProjects(ctx)
	if err != nil {
		t.Fatalf("ListFeaturedPortfolioProjects() error = %v", err)
	}
	if len(featured) != 1 || featured[0].ID != shown.ID {
		t.Errorf("featured = %+v, want only project %d (active AND featured)", featured, shown.ID)
	}

	active, err := db.ListActivePortfolioProjects(ctx)
	if err != nil {
		t.Fatalf("ListActivePortfolioProjects() error = %v", err)
	}
	if len(active) != 2 {
		t.Errorf("ListActivePortfolioProjects() returned %d, want 2", len(active))
	}
}

func TestReorderPortfolioProjects(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestPortfolioProject(t, db, "a", true, false)
	b := createTestPortfolioProject(t, db, "b", true, false)

	if err := db.ReorderPortfolioProjects(ctx, []int64{b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderPortfolioProjects() error = %v", err)
	}

	projects, err := db.ListPortfolioProjects(ctx)
	if err != nil {
		t.Fatalf("ListPortfolioProjects() error = %v", err)
	}
	if projects[0].ID != b.ID || projects[1].ID != a.ID {
		t.Errorf("order = %d, %d; want %d, %d", projects[0].ID, projects[1].ID, b.ID, a.ID)
	}
}
