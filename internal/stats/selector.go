package stats

import (
	"sort"

	"property-expert/internal/models"
)

// RecentProperties returns the n most-recently-created listings, newest
// first. Listings without a creation date sort after every dated one and
// keep their original relative order, as do listings with equal timestamps.
func RecentProperties(properties []models.Property, n int) []models.Property {
	sorted := make([]models.Property, len(properties))
	copy(sorted, properties)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// OwnerLeaderboard groups listings by owner and ranks owners by listing
// count, descending. Listings without an owner fall into the "Unknown"
// bucket. JoinDate is the earliest creation date seen for the owner.
// Ties on count break by earliest join date, then owner id, so repeated
// runs over the same data produce identical ordering.
func OwnerLeaderboard(properties []models.Property, users []models.User) []models.OwnerStat {
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	statsByOwner := make(map[string]*models.OwnerStat)
	var order []string

	for i := range properties {
		p := &properties[i]
		owner := p.OwnerUserID
		if owner == "" {
			owner = "Unknown"
		}

		stat, ok := statsByOwner[owner]
		if !ok {
			stat = &models.OwnerStat{UserID: owner, Email: "Unknown"}
			if email, found := emails[owner]; found && email != "" {
				stat.Email = email
			}
			statsByOwner[owner] = stat
			order = append(order, owner)
		}

		stat.PropertiesCount++
		if p.CreatedAt != nil {
			if stat.JoinDate == nil || p.CreatedAt.Before(*stat.JoinDate) {
				created := *p.CreatedAt
				stat.JoinDate = &created
			}
		}
	}

	leaderboard := make([]models.OwnerStat, 0, len(order))
	for _, owner := range order {
		leaderboard = append(leaderboard, *statsByOwner[owner])
	}

	sort.SliceStable(leaderboard, func(i, j int) bool {
		a, b := &leaderboard[i], &leaderboard[j]
		if a.PropertiesCount != b.PropertiesCount {
			return a.PropertiesCount > b.PropertiesCount
		}
		switch {
		case a.JoinDate == nil && b.JoinDate == nil:
			return a.UserID < b.UserID
		case a.JoinDate == nil:
			return false
		case b.JoinDate == nil:
			return true
		case !a.JoinDate.Equal(*b.JoinDate):
			return a.JoinDate.Before(*b.JoinDate)
		}
		return a.UserID < b.UserID
	})

	return leaderboard
}
