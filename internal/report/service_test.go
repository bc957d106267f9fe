package report

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"property-expert/internal/models"
	"property-expert/internal/store"
)

func seedStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	listings := []models.Property{
		{Title: "A", Location: "Delhi", OwnerUserID: "u1"},
		{Title: "B", Location: "Delhi", OwnerUserID: "u1"},
		{Title: "C", Location: "Mumbai", OwnerUserID: "u2"},
	}
	for i := range listings {
		price := float64(1000000 * (i + 1))
		created := base.AddDate(0, 0, i)
		listings[i].Price = &price
		listings[i].CreatedAt = &created
		if err := st.InsertProperty(ctx, &listings[i]); err != nil {
			t.Fatalf("insert property: %v", err)
		}
	}

	if err := st.CreateUser(ctx, &models.User{ID: "u1", Email: "one@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := st.CreateUser(ctx, &models.User{ID: "u2", Email: "two@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return st
}

func TestBuildReport(t *testing.T) {
	st := seedStore(t)
	svc := NewService(st)

	built, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if built.Totals.PropertyCount != 3 {
		t.Fatalf("expected 3 properties, got %d", built.Totals.PropertyCount)
	}
	if built.Totals.DistinctUserCount != 2 {
		t.Fatalf("expected 2 distinct users, got %d", built.Totals.DistinctUserCount)
	}
	if built.Totals.AveragePrice != 2000000 {
		t.Fatalf("expected average 2000000, got %d", built.Totals.AveragePrice)
	}
	if built.LocationHistogram[0].Location != "Delhi" || built.LocationHistogram[0].Count != 2 {
		t.Fatalf("expected (Delhi, 2) on top, got %+v", built.LocationHistogram[0])
	}
	if len(built.RecentProperties) != 3 {
		t.Fatalf("expected 3 recent properties, got %d", len(built.RecentProperties))
	}
	if built.RecentProperties[0].Title != "C" {
		t.Fatalf("expected newest listing first, got %s", built.RecentProperties[0].Title)
	}
	if built.UserLeaderboard[0].UserID != "u1" || built.UserLeaderboard[0].PropertiesCount != 2 {
		t.Fatalf("expected u1 leading with 2 listings, got %+v", built.UserLeaderboard[0])
	}
	if built.UserLeaderboard[0].Email != "one@example.com" {
		t.Fatalf("expected resolved email, got %s", built.UserLeaderboard[0].Email)
	}
}

func TestBuildReportIsIdempotent(t *testing.T) {
	st := seedStore(t)
	svc := NewService(st)
	ctx := context.Background()

	first, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// GeneratedAt differs by construction; everything else must match.
	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over unchanged data diverged:\n%+v\n%+v", first, second)
	}
}

func TestGenerateOverwritesLatestSlot(t *testing.T) {
	st := seedStore(t)
	svc := NewService(st)
	ctx := context.Background()

	if _, err := svc.Latest(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first run, got %v", err)
	}

	if err := svc.Generate(ctx); err != nil {
		t.Fatalf("generate: %v", err)
	}
	firstRun, err := svc.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}

	// A new listing must be reflected wholesale after the next run.
	extra := models.Property{Title: "D", Location: "Delhi", OwnerUserID: "u2"}
	if err := st.InsertProperty(ctx, &extra); err != nil {
		t.Fatalf("insert property: %v", err)
	}
	if err := svc.Generate(ctx); err != nil {
		t.Fatalf("generate: %v", err)
	}

	secondRun, err := svc.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if secondRun.Totals.PropertyCount != firstRun.Totals.PropertyCount+1 {
		t.Fatalf("expected replaced report with %d properties, got %d",
			firstRun.Totals.PropertyCount+1, secondRun.Totals.PropertyCount)
	}
}
