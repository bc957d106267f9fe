package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"property-expert/internal/models"
	"property-expert/internal/search"
	"property-expert/internal/stats"
	"property-expert/internal/store"
)

// PropertyHandler serves the public listing pages and the authenticated
// manage-properties operations.
type PropertyHandler struct {
	store  store.RecordStore
	search *search.SearchClient // nil when Meilisearch is disabled
}

func NewPropertyHandler(st store.RecordStore, searchClient *search.SearchClient) *PropertyHandler {
	return &PropertyHandler{store: st, search: searchClient}
}

type propertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Price       *float64 `json:"price"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Contact     string   `json:"contact"`
	ImageURL    string   `json:"image_url"`
}

// List returns all listings, newest first; undated listings sort last.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.store.ListProperties(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	sorted := stats.RecentProperties(properties, len(properties))
	c.JSON(http.StatusOK, gin.H{
		"properties": sorted,
		"count":      len(sorted),
	})
}

// Get returns one listing by id.
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.store.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// Search serves /api/search. An empty query is a full reload, not a filter
// over whatever happened to be cached.
func (h *PropertyHandler) Search(c *gin.Context) {
	query := c.Query("q")

	if query == "" {
		h.List(c)
		return
	}

	if h.search != nil {
		properties, err := h.search.Search(query, 20)
		if err != nil {
			log.Printf("[Search] Meilisearch query failed, falling back to filter: %v", err)
		} else {
			c.JSON(http.StatusOK, gin.H{"properties": properties, "count": len(properties)})
			return
		}
	}

	properties, err := h.store.ListProperties(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	matched := search.FilterProperties(properties, query)
	c.JSON(http.StatusOK, gin.H{
		"properties": matched,
		"count":      len(matched),
	})
}

// Create adds a listing owned by the authenticated user.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	now := time.Now()

	property := &models.Property{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Contact:     req.Contact,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		OwnerUserID: userID,
		CreatedAt:   &now,
		SearchTerms: search.BuildSearchTerms(req.Title, req.Location),
	}
	if property.ImageURL == "" {
		property.ImageURL = models.DefaultImagePlaceholder
	}

	if err := h.store.InsertProperty(c.Request.Context(), property); err != nil {
		respondStoreError(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.IndexProperty(property); err != nil {
			log.Printf("Warning: Failed to index property %s: %v", property.ID, err)
		}
	}

	c.JSON(http.StatusCreated, property)
}

// Mine returns the authenticated user's own listings.
func (h *PropertyHandler) Mine(c *gin.Context) {
	userID := c.GetString("userID")

	properties, err := h.store.PropertiesByOwner(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// Update modifies one of the caller's own listings.
func (h *PropertyHandler) Update(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")

	existing, err := h.store.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if existing.OwnerUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only update your own properties"})
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{
		"title":       req.Title,
		"location":    req.Location,
		"description": req.Description,
		"contact":     req.Contact,
		"searchTerms": search.BuildSearchTerms(req.Title, req.Location),
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.ImageURL != "" {
		fields["imageUrl"] = req.ImageURL
	}

	if err := h.store.UpdateProperty(c.Request.Context(), id, fields); err != nil {
		respondStoreError(c, err)
		return
	}

	updated, err := h.store.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.IndexProperty(updated); err != nil {
			log.Printf("Warning: Failed to reindex property %s: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes one of the caller's own listings.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")

	existing, err := h.store.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if existing.OwnerUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own properties"})
		return
	}

	if err := h.store.DeleteProperty(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	if h.search != nil {
		if err := h.search.RemoveProperty(id); err != nil {
			log.Printf("Warning: Failed to remove property %s from index: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
