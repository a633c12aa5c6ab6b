package search

import (
	"testing"

	"github.com/address-parser/internal/addrmodel"
	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
)

func TestDocsFromRecordsDedupesByCityState(t *testing.T) {
	records := []addrmodel.LocationRecord{
		{LocationID: "1", Components: addrmodel.AddressComponents{City: "MIAMI", State: "FL"}},
		{LocationID: "2", Components: addrmodel.AddressComponents{City: "MIAMI", State: "FL"}},
		{LocationID: "3", Components: addrmodel.AddressComponents{City: "ORLANDO", State: "FL"}},
	}

	docs := docsFromRecords(records)

	assert.Len(t, docs, 2)
	assert.Equal(t, "MIAMI, FL", docs[0].DisplayName)
}

func TestDocsFromRecordsSkipsIncompleteComponents(t *testing.T) {
	records := []addrmodel.LocationRecord{
		{LocationID: "1", Components: addrmodel.AddressComponents{City: "", State: "FL"}},
		{LocationID: "2", Components: addrmodel.AddressComponents{City: "MIAMI", State: ""}},
	}

	docs := docsFromRecords(records)

	assert.Len(t, docs, 0)
}

func TestParseSuggestionHitsReadsKnownFields(t *testing.T) {
	hits := []interface{}{
		map[string]interface{}{
			"id":           "MIAMI|FL",
			"city":         "MIAMI",
			"state":        "FL",
			"display_name": "MIAMI, FL",
		},
		"not a map",
	}

	docs, err := parseSuggestionHits(&meilisearch.SearchResponse{Hits: hits})

	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "MIAMI", docs[0].City)
	assert.Equal(t, "MIAMI, FL", docs[0].DisplayName)
}
