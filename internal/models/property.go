package models

import (
	"math"
	"time"
)

// DefaultImagePlaceholder is used when a listing has no image URL.
const DefaultImagePlaceholder = "https://via.placeholder.com/400x300?text=No+Image+Available"

// Property is a single listing document from the properties collection.
// Price and CreatedAt are pointers because stored documents may omit them
// or hold values that fail normalization; the store accessor leaves such
// fields nil rather than guessing.
type Property struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Location    string     `bson:"location" json:"location,omitempty"`
	Description string     `bson:"description" json:"description,omitempty"`
	Contact     string     `bson:"contact" json:"contact,omitempty"`
	Price       *float64   `bson:"price,omitempty" json:"price,omitempty"`
	ImageURL    string     `bson:"imageUrl" json:"image_url,omitempty"`
	OwnerUserID string     `bson:"userId,omitempty" json:"user_id,omitempty"`
	CreatedAt   *time.Time `bson:"createdAt,omitempty" json:"created_at,omitempty"`
	SearchTerms []string   `bson:"searchTerms,omitempty" json:"-"`
}

// EffectiveLocation returns the location used for grouping, with the
// "Unknown" bucket for listings that never set one.
func (p *Property) EffectiveLocation() string {
	if p.Location == "" {
		return "Unknown"
	}
	return p.Location
}

// EffectiveImageURL falls back to the placeholder image.
func (p *Property) EffectiveImageURL() string {
	if p.ImageURL == "" {
		return DefaultImagePlaceholder
	}
	return p.ImageURL
}

// HasValidPrice reports whether the price may enter numeric aggregates:
// present, finite and non-negative. Negative, infinite or NaN values slip
// in from malformed documents and are excluded, but the listing itself
// still counts toward every non-price tally.
func (p *Property) HasValidPrice() bool {
	if p.Price == nil {
		return false
	}
	v := *p.Price
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
