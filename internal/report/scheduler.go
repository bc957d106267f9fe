package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// defaultIntervalMinutes matches the original every-30-minutes schedule.
const defaultIntervalMinutes = 30

// Scheduler periodically regenerates the aggregate report.
type Scheduler struct {
	cron      *cron.Cron
	service   *Service
	interval  int
	timeout   time.Duration
	isRunning bool
}

// NewScheduler creates a scheduler running every intervalMinutes.
func NewScheduler(service *Service, intervalMinutes int) *Scheduler {
	if intervalMinutes <= 0 {
		intervalMinutes = defaultIntervalMinutes
	}
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		interval: intervalMinutes,
		timeout:  2 * time.Minute,
	}
}

// Start registers the cron job and begins the schedule.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %dm", s.interval)

	_, err := s.cron.AddFunc(spec, func() {
		log.Println("Scheduler: Starting report generation job...")
		if err := s.runOnce(); err != nil {
			log.Printf("Scheduler: Report generation failed: %v", err)
		} else {
			log.Println("Scheduler: Report generation completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with report generation every %d minutes", s.interval)
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunNow immediately executes the report job (for manual trigger).
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: Manual trigger - generating report...")
	return s.runOnce()
}

func (s *Scheduler) runOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.service.Generate(ctx)
}
