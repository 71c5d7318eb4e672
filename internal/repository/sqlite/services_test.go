package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/studio-site/internal/model"
)

func createTestService(t *testing.T, db *DB, title string, active bool) *model.Service {
	t.Helper()
	svc := &model.Service{Title: title, IsActive: active}
	if err := db.CreateService(context.Background(), svc); err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

func TestCreateService_AssignsRank(t *testing.T) {
	db := newTestDB(t)

	first := createTestService(t, db, "Commercial Production", true)
	second := createTestService(t, db, "Brand Films", true)
	third := createTestService(t, db, "Post-Production", true)

	// New rows are appended to the end of the ordering.
	if first.SortOrder != 1 || second.SortOrder != 2 || third.SortOrder != 3 {
		t.Errorf("sort orders = %d, %d, %d; want 1, 2, 3",
			first.SortOrder, second.SortOrder, third.SortOrder)
	}
}

func TestListActiveServices_FiltersInactive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestService(t, db, "visible", true)
	createTestService(t, db, "hidden", false)

	active, err := db.ListActiveServices(ctx)
	if err != nil {
		t.Fatalf("ListActiveServices() error = %v", err)
	}
	if len(active) != 1 || active[0].Title != "visible" {
		t.Errorf("ListActiveServices() = %+v, want only the active service", active)
	}

	all, err := db.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListServices() returned %d services, want 2", len(all))
	}
}

func TestReorderServices(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestService(t, db, "a", true)
	b := createTestService(t, db, "b", true)
	c := createTestService(t, db, "c", true)

	// Reverse the order.
	if err := db.ReorderServices(ctx, []int64{c.ID, b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderServices() error = %v", err)
	}

	services, err := db.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("ListServices() returned %d services, want 3", len(services))
	}
	if services[0].ID != c.ID || services[1].ID != b.ID || services[2].ID != a.ID {
		t.Errorf("order after reorder = %d, %d, %d; want %d, %d, %d",
			services[0].ID, services[1].ID, services[2].ID, c.ID, b.ID, a.ID)
	}
}

func TestReorderServices_UnknownIDsIgnored(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestService(t, db, "a", true)

	if err := db.ReorderServices(ctx, []int64{999, a.ID}); err != nil {
		t.Fatalf("ReorderServices() with unknown id error = %v", err)
	}

	services, err := db.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(services) != 1 || services[0].SortOrder != 2 {
		t.Errorf("service rank = %d, want 2 (position in submitted list)", services[0].SortOrder)
	}
}
