package search

import (
	"strings"

	"property-expert/internal/models"
)

// FilterProperties returns the listings whose title or location contains
// the query, case-insensitively. An empty query matches everything; the
// dashboard handlers treat that case as "reload the full set" rather than
// filtering a cached slice.
func FilterProperties(properties []models.Property, query string) []models.Property {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return properties
	}

	var matched []models.Property
	for _, p := range properties {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Location), q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterUsers matches on name, email or phone, case-insensitively.
func FilterUsers(users []models.User, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}

	var matched []models.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Phone), q) {
			matched = append(matched, u)
		}
	}
	return matched
}

// BuildSearchTerms derives the lowercase token set stored on each listing:
// the full title and location plus their individual words, deduplicated.
func BuildSearchTerms(title, location string) []string {
	title = strings.ToLower(strings.TrimSpace(title))
	location = strings.ToLower(strings.TrimSpace(location))

	seen := make(map[string]struct{})
	var terms []string

	add := func(term string) {
		if term == "" {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	add(title)
	add(location)
	for _, word := range strings.Fields(title) {
		add(word)
	}
	for _, word := range strings.Fields(location) {
		add(word)
	}
	return terms
}
