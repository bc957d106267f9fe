package search

import (
	"testing"

	"property-expert/internal/models"
)

func TestFilterPropertiesMatchesTitleAndLocation(t *testing.T) {
	properties := []models.Property{
		{ID: "1", Title: "Modern Downtown Apartment", Location: "New York, NY"},
		{ID: "2", Title: "Suburban Family Home", Location: "Austin, TX"},
		{ID: "3", Title: "Urban Loft", Location: "Chicago, IL"},
	}

	matched := FilterProperties(properties, "URBAN")
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].ID != "2" || matched[1].ID != "3" {
		t.Fatalf("unexpected match order: %s, %s", matched[0].ID, matched[1].ID)
	}

	matched = FilterProperties(properties, "austin")
	if len(matched) != 1 || matched[0].ID != "2" {
		t.Fatalf("expected location match on id 2, got %v", matched)
	}

	if matched = FilterProperties(properties, "zzz"); matched != nil {
		t.Fatalf("expected no matches, got %d", len(matched))
	}
}

func TestFilterPropertiesEmptyQueryPassesThrough(t *testing.T) {
	properties := []models.Property{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}

	matched := FilterProperties(properties, "")
	if len(matched) != 5 {
		t.Fatalf("expected full pass-through on empty query, got %d", len(matched))
	}

	matched = FilterProperties(properties, "   ")
	if len(matched) != 5 {
		t.Fatalf("expected whitespace query treated as empty, got %d", len(matched))
	}
}

func TestFilterUsers(t *testing.T) {
	users := []models.User{
		{ID: "1", Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001"},
		{ID: "2", Name: "Vikram Shah", Email: "vikram@example.com", Phone: "9000000002"},
	}

	if matched := FilterUsers(users, "asha"); len(matched) != 1 || matched[0].ID != "1" {
		t.Fatalf("expected name match on id 1, got %v", matched)
	}
	if matched := FilterUsers(users, "VIKRAM@"); len(matched) != 1 || matched[0].ID != "2" {
		t.Fatalf("expected email match on id 2, got %v", matched)
	}
	if matched := FilterUsers(users, "0002"); len(matched) != 1 || matched[0].ID != "2" {
		t.Fatalf("expected phone match on id 2, got %v", matched)
	}
	if matched := FilterUsers(users, ""); len(matched) != 2 {
		t.Fatalf("expected pass-through on empty query, got %d", len(matched))
	}
}

func TestBuildSearchTerms(t *testing.T) {
	terms := BuildSearchTerms("Modern Downtown Apartment", "New York")

	want := []string{
		"modern downtown apartment",
		"new york",
		"modern", "downtown", "apartment",
		"new", "york",
	}
	if len(terms) != len(want) {
		t.Fatalf("expected %d terms, got %d: %v", len(want), len(terms), terms)
	}
	for i, term := range want {
		if terms[i] != term {
			t.Fatalf("term %d: expected %q, got %q", i, term, terms[i])
		}
	}
}

func TestBuildSearchTermsDeduplicates(t *testing.T) {
	terms := BuildSearchTerms("Goa", "Goa")

	if len(terms) != 1 || terms[0] != "goa" {
		t.Fatalf("expected single deduplicated term, got %v", terms)
	}
}
