package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"property-expert/internal/models"
)

// MemoryStore is an in-memory RecordStore used by tests and local runs
// without a database. Insertion order is preserved so ordering contracts
// can be asserted deterministically.
type MemoryStore struct {
	mu         sync.RWMutex
	properties []models.Property
	users      []models.User
	latest     *models.AggregateReport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.properties))
	copy(out, s.properties)
	return out, nil
}

func (s *MemoryStore) RecentProperties(ctx context.Context, n int) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]models.Property, len(s.properties))
	copy(sorted, s.properties)
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
	return sorted, nil
}

func (s *MemoryStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.properties {
		if s.properties[i].ID == id {
			p := s.properties[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) PropertiesByOwner(ctx context.Context, userID string) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Property
	for _, p := range s.properties {
		if p.OwnerUserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) CountProperties(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.properties)), nil
}

func (s *MemoryStore) InsertProperty(ctx context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.properties = append(s.properties, *p)
	return nil
}

func (s *MemoryStore) UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID != id {
			continue
		}
		p := &s.properties[i]
		for k, v := range fields {
			switch k {
			case "title":
				p.Title, _ = v.(string)
			case "location":
				p.Location, _ = v.(string)
			case "description":
				p.Description, _ = v.(string)
			case "contact":
				p.Contact, _ = v.(string)
			case "imageUrl":
				p.ImageURL, _ = v.(string)
			case "price":
				if price, ok := v.(float64); ok {
					p.Price = &price
				}
			case "searchTerms":
				if terms, ok := v.([]string); ok {
					p.SearchTerms = terms
				}
			}
		}
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteProperty(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties = append(s.properties[:i], s.properties[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) SaveLatestReport(ctx context.Context, report *models.AggregateReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *report
	s.latest = &saved
	return nil
}

func (s *MemoryStore) LatestReport(ctx context.Context) (*models.AggregateReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNotFound
	}
	report := *s.latest
	return &report, nil
}
