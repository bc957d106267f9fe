package stats

import (
	"testing"
	"time"

	"property-expert/internal/models"
)

func TestRecentPropertiesOrdering(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	properties := []models.Property{
		{ID: "old", CreatedAt: at(base.AddDate(0, 0, -30))},
		{ID: "undated-1"},
		{ID: "new", CreatedAt: at(base)},
		{ID: "undated-2"},
		{ID: "mid", CreatedAt: at(base.AddDate(0, 0, -7))},
	}

	recent := RecentProperties(properties, 10)

	want := []string{"new", "mid", "old", "undated-1", "undated-2"}
	if len(recent) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(recent))
	}
	for i, id := range want {
		if recent[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, recent[i].ID)
		}
	}
}

func TestRecentPropertiesTruncatesToN(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var properties []models.Property
	for i := 0; i < 15; i++ {
		properties = append(properties, models.Property{
			ID:        string(rune('a' + i)),
			CreatedAt: at(base.AddDate(0, 0, -i)),
		})
	}

	recent := RecentProperties(properties, 10)
	if len(recent) != 10 {
		t.Fatalf("expected 10 results, got %d", len(recent))
	}
	if recent[0].ID != "a" {
		t.Fatalf("expected newest first, got %s", recent[0].ID)
	}

	// Fewer than n yields all of them.
	recent = RecentProperties(properties[:3], 10)
	if len(recent) != 3 {
		t.Fatalf("expected 3 results, got %d", len(recent))
	}
}

func TestRecentPropertiesEqualTimestampsKeepInputOrder(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	properties := []models.Property{
		{ID: "first", CreatedAt: at(ts)},
		{ID: "second", CreatedAt: at(ts)},
		{ID: "third", CreatedAt: at(ts)},
	}

	recent := RecentProperties(properties, 10)
	for i, id := range []string{"first", "second", "third"} {
		if recent[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, recent[i].ID)
		}
	}
}

func TestOwnerLeaderboard(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	properties := []models.Property{
		{OwnerUserID: "u1", CreatedAt: at(base.AddDate(0, 0, 5))},
		{OwnerUserID: "u2", CreatedAt: at(base)},
		{OwnerUserID: "u1", CreatedAt: at(base.AddDate(0, 0, 1))},
		{OwnerUserID: "u1", CreatedAt: at(base.AddDate(0, 0, 9))},
		{CreatedAt: at(base.AddDate(0, 0, 2))}, // no owner
	}
	users := []models.User{
		{ID: "u1", Email: "one@example.com"},
		{ID: "u2", Email: "two@example.com"},
	}

	leaderboard := OwnerLeaderboard(properties, users)

	if len(leaderboard) != 3 {
		t.Fatalf("expected 3 owners, got %d", len(leaderboard))
	}

	top := leaderboard[0]
	if top.UserID != "u1" || top.PropertiesCount != 3 {
		t.Fatalf("expected (u1, 3) on top, got (%s, %d)", top.UserID, top.PropertiesCount)
	}
	if top.Email != "one@example.com" {
		t.Fatalf("expected resolved email, got %s", top.Email)
	}
	if top.JoinDate == nil || !top.JoinDate.Equal(base.AddDate(0, 0, 1)) {
		t.Fatalf("expected earliest listing date as join date, got %v", top.JoinDate)
	}

	// The ownerless listing lands in the Unknown bucket.
	var unknown *models.OwnerStat
	for i := range leaderboard {
		if leaderboard[i].UserID == "Unknown" {
			unknown = &leaderboard[i]
		}
	}
	if unknown == nil || unknown.PropertiesCount != 1 {
		t.Fatalf("expected Unknown bucket with 1 listing, got %+v", unknown)
	}
	if unknown.Email != "Unknown" {
		t.Fatalf("expected Unknown email placeholder, got %s", unknown.Email)
	}
}

func TestOwnerLeaderboardTieBreaksByEarliestJoinDate(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	properties := []models.Property{
		{OwnerUserID: "late", CreatedAt: at(base.AddDate(0, 1, 0))},
		{OwnerUserID: "early", CreatedAt: at(base)},
	}

	leaderboard := OwnerLeaderboard(properties, nil)

	if leaderboard[0].UserID != "early" {
		t.Fatalf("expected earlier joiner first on equal counts, got %s", leaderboard[0].UserID)
	}
}
