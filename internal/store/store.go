package store

import (
	"context"
	"errors"

	"property-expert/internal/models"
)

// Sentinel errors for the failure classes callers branch on. Anything from
// the backing database is wrapped into one of these. Validation problems in
// stored documents never surface as errors at all; the accessor degrades
// the offending field instead.
var (
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnavailable      = errors.New("store unavailable")
)

// RecordStore is the document-database contract the rest of the service
// consumes. Every timestamp and price is normalized before it crosses this
// boundary, so downstream code only ever sees canonical Go types.
type RecordStore interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	RecentProperties(ctx context.Context, n int) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	PropertiesByOwner(ctx context.Context, userID string) ([]models.Property, error)
	CountProperties(ctx context.Context) (int64, error)
	InsertProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteProperty(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error

	SaveLatestReport(ctx context.Context, report *models.AggregateReport) error
	LatestReport(ctx context.Context) (*models.AggregateReport, error)
}
