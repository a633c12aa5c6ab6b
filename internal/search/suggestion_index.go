package search

import (
	"errors"
	"fmt"

	"github.com/address-parser/app/models"
	"github.com/address-parser/internal/addrmodel"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// SuggestionIndex is a flat Meilisearch index of {id, city, state,
// display_name} built from the loaded catalog, used only by the
// /v1/suggest typeahead endpoint. It never participates in match scoring.
type SuggestionIndex struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
}

// SuggestionIndexConfig configures the Meilisearch connection.
type SuggestionIndexConfig struct {
	Host      string
	APIKey    string
	IndexName string
}

// NewSuggestionIndex dials Meilisearch and checks connectivity.
func NewSuggestionIndex(config SuggestionIndexConfig, logger *zap.Logger) (*SuggestionIndex, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("meilisearch unreachable: %w", err)
	}

	return &SuggestionIndex{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
	}, nil
}

// BuildIndex configures searchable/filterable attributes and typo
// tolerance for the suggestion index.
func (si *SuggestionIndex) BuildIndex() error {
	index := si.client.Index(si.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"city", "state", "display_name"},
		FilterableAttributes: []string{"state"},
		SortableAttributes:   []string{"city"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  4,
				TwoTypos: 8,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("configuring suggestion index: %w", err)
	}

	si.logger.Info("configured suggestion index", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// Seed loads one SuggestionDoc per distinct city/state pair in records into
// the index, in batches of 1000.
func (si *SuggestionIndex) Seed(records []addrmodel.LocationRecord) error {
	docs := docsFromRecords(records)
	if len(docs) == 0 {
		return errors.New("no suggestion documents to seed")
	}

	index := si.client.Index(si.indexName)

	const batchSize = 1000
	for i := 0; i < len(docs); i += batchSize {
		end := i + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		task, err := index.AddDocuments(docs[i:end], "id")
		if err != nil {
			return fmt.Errorf("adding suggestion documents %d-%d: %w", i, end, err)
		}
		si.logger.Info("seeded suggestion batch", zap.Int("from", i), zap.Int("to", end), zap.Int64("task_uid", task.TaskUID))
	}

	si.logger.Info("seeded suggestion index", zap.Int("total_documents", len(docs)))
	return nil
}

// docsFromRecords collapses the catalog down to one suggestion document per
// distinct city/state pair.
func docsFromRecords(records []addrmodel.LocationRecord) []models.SuggestionDoc {
	seen := make(map[string]bool)
	var docs []models.SuggestionDoc
	for _, rec := range records {
		city := rec.Components.City
		state := rec.Components.State
		if city == "" || state == "" {
			continue
		}
		key := city + "|" + state
		if seen[key] {
			continue
		}
		seen[key] = true
		docs = append(docs, models.SuggestionDoc{
			ID:          key,
			City:        city,
			State:       state,
			DisplayName: fmt.Sprintf("%s, %s", city, state),
		})
	}
	return docs
}

// Suggest queries the index for city/state matches against q, capped at
// limit results.
func (si *SuggestionIndex) Suggest(q string, limit int64) ([]models.SuggestionDoc, error) {
	if q == "" {
		return nil, errors.New("query must not be empty")
	}

	index := si.client.Index(si.indexName)
	result, err := index.Search(q, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("suggestion search: %w", err)
	}

	return parseSuggestionHits(result)
}

func parseSuggestionHits(result *meilisearch.SearchResponse) ([]models.SuggestionDoc, error) {
	var docs []models.SuggestionDoc
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		doc := models.SuggestionDoc{}
		if id, ok := hitMap["id"].(string); ok {
			doc.ID = id
		}
		if city, ok := hitMap["city"].(string); ok {
			doc.City = city
		}
		if state, ok := hitMap["state"].(string); ok {
			doc.State = state
		}
		if displayName, ok := hitMap["display_name"].(string); ok {
			doc.DisplayName = displayName
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
