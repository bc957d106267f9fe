package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"property-expert/internal/models"
	"property-expert/internal/search"
	"property-expert/internal/store"
)

type demoListing struct {
	title       string
	price       float64
	location    string
	description string
	imageURL    string
}

var demoListings = []demoListing{
	{
		title:       "Modern Downtown Apartment",
		price:       450000,
		location:    "New York, NY",
		description: "Beautiful modern apartment in the heart of downtown with stunning city views. Recently renovated with high-end finishes and appliances.",
		imageURL:    "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?auto=format&fit=crop&w=800&q=80",
	},
	{
		title:       "Suburban Family Home",
		price:       750000,
		location:    "Austin, TX",
		description: "Spacious family home in a quiet suburban neighborhood. Features 4 bedrooms, 3 bathrooms, large backyard, and updated kitchen.",
		imageURL:    "https://images.unsplash.com/photo-1575517111839-3a3843ee7f5d?auto=format&fit=crop&w=800&q=80",
	},
	{
		title:       "Luxury Beachfront Villa",
		price:       2500000,
		location:    "Miami, FL",
		description: "Stunning luxury villa directly on the beach with panoramic ocean views. Features infinity pool and private beach access.",
		imageURL:    "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&w=800&q=80",
	},
	{
		title:       "Cozy Mountain Cabin",
		price:       320000,
		location:    "Aspen, CO",
		description: "Charming mountain cabin perfect for weekend getaways or full-time living. Rustic charm with modern amenities and a fireplace.",
		imageURL:    "https://images.unsplash.com/photo-1594864267607-64e6a199c0eb?auto=format&fit=crop&w=800&q=80",
	},
	{
		title:       "Urban Loft with City Views",
		price:       620000,
		location:    "Chicago, IL",
		description: "Industrial-style loft in trendy neighborhood with exposed brick walls and high ceilings. Open floor plan with large windows.",
		imageURL:    "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?auto=format&fit=crop&w=800&q=80",
	},
	{
		title:       "Waterfront Condo",
		price:       895000,
		location:    "Seattle, WA",
		description: "Elegant waterfront condo with private balcony overlooking the harbor. Gourmet kitchen and access to gym and concierge.",
		imageURL:    "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&w=800&q=80",
	},
}

// DemoPropertiesIfEmpty inserts the demo listings when the properties
// collection has no documents, so a fresh install renders a populated site.
// An already-populated store is left untouched.
func DemoPropertiesIfEmpty(ctx context.Context, st store.RecordStore) (bool, error) {
	count, err := st.CountProperties(ctx)
	if err != nil {
		return false, fmt.Errorf("check existing properties: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	log.Println("Seed: No properties found, inserting demo listings...")

	now := time.Now()
	for _, d := range demoListings {
		price := d.price
		created := now
		property := &models.Property{
			Title:       d.title,
			Location:    d.location,
			Description: d.description,
			Price:       &price,
			ImageURL:    d.imageURL,
			CreatedAt:   &created,
			SearchTerms: search.BuildSearchTerms(d.title, d.location),
		}
		if err := st.InsertProperty(ctx, property); err != nil {
			return false, fmt.Errorf("insert demo property %q: %w", d.title, err)
		}
	}

	log.Printf("Seed: Inserted %d demo listings", len(demoListings))
	return true, nil
}
