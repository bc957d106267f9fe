package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"property-expert/internal/models"
	"property-expert/internal/report"
	"property-expert/internal/search"
	"property-expert/internal/stats"
	"property-expert/internal/store"
)

// AdminHandler serves the dashboard. The live pipeline recomputes
// everything from the store on each request; the persisted report is the
// scheduled pipeline's output. The two never share a cache.
type AdminHandler struct {
	store     store.RecordStore
	report    *report.Service
	scheduler *report.Scheduler
}

func NewAdminHandler(st store.RecordStore, reportService *report.Service, scheduler *report.Scheduler) *AdminHandler {
	return &AdminHandler{
		store:     st,
		report:    reportService,
		scheduler: scheduler,
	}
}

// GetDashboard runs the live pipeline: four independent reads issued
// concurrently, each rendering into its own section. A failing branch
// reports its own error and never blocks the others.
//
// Known limitation: overlapping refreshes have no staleness guard; a slow
// earlier read can complete after a newer one.
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		wg         sync.WaitGroup
		summary    *stats.Summary
		recent     []models.Property
		users      []models.User
		chartProps []models.Property

		errMu       sync.Mutex
		sectionErrs = make(map[string]string)
	)

	fail := func(section string, err error) {
		errMu.Lock()
		sectionErrs[section] = err.Error()
		errMu.Unlock()
		log.Printf("[Dashboard] %s section failed: %v", section, err)
	}

	wg.Add(4)

	go func() {
		defer wg.Done()
		properties, err := h.store.ListProperties(ctx)
		if err != nil {
			fail("statistics", err)
			return
		}
		s := stats.Aggregate(properties, time.Now())
		summary = &s
	}()

	go func() {
		defer wg.Done()
		props, err := h.store.RecentProperties(ctx, 10)
		if err != nil {
			fail("recent_properties", err)
			return
		}
		recent = props
	}()

	go func() {
		defer wg.Done()
		all, err := h.store.ListUsers(ctx)
		if err != nil {
			fail("users", err)
			return
		}
		users = all
	}()

	go func() {
		defer wg.Done()
		properties, err := h.store.ListProperties(ctx)
		if err != nil {
			fail("charts", err)
			return
		}
		chartProps = properties
	}()

	wg.Wait()

	response := gin.H{"errors": sectionErrs}
	if summary != nil {
		response["statistics"] = summary.Totals
	}
	if recent != nil {
		response["recent_properties"] = recent
	}
	if users != nil {
		response["users"] = users
	}
	if chartProps != nil {
		chartSummary := stats.Aggregate(chartProps, time.Now())
		response["charts"] = gin.H{
			"locations":    chartSummary.LocationHistogram,
			"time_data":    chartSummary.MonthlyHistogram,
			"price_ranges": chartSummary.PriceHistogram,
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetLatestReport returns the persisted scheduled report.
func (h *AdminHandler) GetLatestReport(c *gin.Context) {
	latest, err := h.report.Latest(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, latest)
}

// GenerateReport manually triggers the scheduled pipeline.
func (h *AdminHandler) GenerateReport(c *gin.Context) {
	log.Println("Admin: Manual report generation requested")

	// Run in goroutine to avoid blocking the request
	go func() {
		if err := h.scheduler.RunNow(); err != nil {
			log.Printf("Admin: Manual report generation failed: %v", err)
		} else {
			log.Println("Admin: Manual report generation completed successfully")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Report generation started",
		"status":  "running",
	})
}

// SearchProperties filters listings by title/location substring. An empty
// query reloads the full set.
func (h *AdminHandler) SearchProperties(c *gin.Context) {
	properties, err := h.store.ListProperties(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	matched := search.FilterProperties(properties, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"properties": matched,
		"count":      len(matched),
	})
}

// SearchUsers filters users by name/email/phone substring.
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	matched := search.FilterUsers(users, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"users": matched,
		"count": len(matched),
	})
}
