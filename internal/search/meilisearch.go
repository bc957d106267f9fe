package search

import (
	"encoding/json"
	"errors"

	"github.com/meilisearch/meilisearch-go"

	"property-expert/internal/models"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && !isIndexExists(err) {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"location",
		"description",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"location",
		"price",
		"user_id",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"price",
		"created_at",
	})
	if err != nil {
		return err
	}

	return nil
}

// isIndexExists matches on the API error code, not the message text.
func isIndexExists(err error) bool {
	var merr *meilisearch.Error
	return errors.As(err, &merr) && merr.MeilisearchApiError.Code == "index_already_exists"
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(property *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{*property})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(properties)
	return err
}

// RemoveProperty deletes a property from the index
func (s *SearchClient) RemoveProperty(id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// Search returns listings matching the query
func (s *SearchClient) Search(query string, limit int64) ([]models.Property, error) {
	if limit == 0 {
		limit = 20
	}

	searchRes, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	var properties []models.Property
	for _, hit := range searchRes.Hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var property models.Property
		if err := json.Unmarshal(hitJSON, &property); err != nil {
			continue
		}

		properties = append(properties, property)
	}

	return properties, nil
}
