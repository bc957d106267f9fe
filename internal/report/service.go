package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"property-expert/internal/models"
	"property-expert/internal/stats"
	"property-expert/internal/store"
)

// recentLimit is how many of the newest listings the report embeds.
const recentLimit = 10

// Service computes and persists the aggregate report. It is a pure
// compute-then-write step: store failures propagate to the caller and the
// caller decides whether to run again. No partial report is ever written.
type Service struct {
	store store.RecordStore
}

func NewService(st store.RecordStore) *Service {
	return &Service{store: st}
}

// Build recomputes the full report from scratch. Two runs over unchanged
// data produce identical values apart from GeneratedAt.
func (s *Service) Build(ctx context.Context) (*models.AggregateReport, error) {
	properties, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	now := time.Now()
	summary := stats.Aggregate(properties, now)

	return &models.AggregateReport{
		GeneratedAt:       now,
		Totals:            summary.Totals,
		LocationHistogram: summary.LocationHistogram,
		MonthlyHistogram:  summary.MonthlyHistogram,
		PriceHistogram:    summary.PriceHistogram,
		RecentProperties:  stats.RecentProperties(properties, recentLimit),
		UserLeaderboard:   stats.OwnerLeaderboard(properties, users),
	}, nil
}

// Generate runs the full scheduled pipeline: build, then overwrite the
// single "latest" slot.
func (s *Service) Generate(ctx context.Context) error {
	built, err := s.Build(ctx)
	if err != nil {
		return err
	}

	if err := s.store.SaveLatestReport(ctx, built); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	log.Printf("Report: generated (properties=%d users=%d avg_price=%d)",
		built.Totals.PropertyCount, built.Totals.DistinctUserCount, built.Totals.AveragePrice)
	return nil
}

// Latest returns the persisted report, or store.ErrNotFound if no run has
// completed yet.
func (s *Service) Latest(ctx context.Context) (*models.AggregateReport, error) {
	return s.store.LatestReport(ctx)
}
