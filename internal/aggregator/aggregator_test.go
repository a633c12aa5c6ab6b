package aggregator

import (
	"testing"

	"github.com/address-parser/internal/addrmodel"
	"github.com/stretchr/testify/assert"
)

func locRecord(id string) *addrmodel.LocationRecord {
	return &addrmodel.LocationRecord{LocationID: id}
}

func TestNewClampsCapacity(t *testing.T) {
	assert.Equal(t, 16, New(100).capacity)
	assert.Equal(t, 1, New(0).capacity)
	assert.Equal(t, 5, New(5).capacity)
}

func TestAddOverwritesOnStrictlyGreaterConfidence(t *testing.T) {
	agg := New(5)
	agg.Add(locRecord("A"), 0.5, addrmodel.StrategyStructured, addrmodel.ReasonWeightedComponent, addrmodel.ScoreBreakdown{})
	agg.Add(locRecord("A"), 0.9, addrmodel.StrategyFuzzy, addrmodel.ReasonApproximateSimilarity, addrmodel.ScoreBreakdown{})
	agg.Add(locRecord("A"), 0.3, addrmodel.StrategyCanonical, addrmodel.ReasonCanonicalKeyMatch, addrmodel.ScoreBreakdown{})

	items := agg.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 0.9, items[0].Confidence)
	assert.Equal(t, addrmodel.StrategyFuzzy, items[0].Strategy)
}

func TestAddEvictsMinimumWhenFull(t *testing.T) {
	agg := New(2)
	agg.Add(locRecord("A"), 0.3, "", "", addrmodel.ScoreBreakdown{})
	agg.Add(locRecord("B"), 0.5, "", "", addrmodel.ScoreBreakdown{})
	agg.Add(locRecord("C"), 0.4, "", "", addrmodel.ScoreBreakdown{})

	items := agg.Items()
	assert.Len(t, items, 2)
	ids := []string{items[0].Location.LocationID, items[1].Location.LocationID}
	assert.ElementsMatch(t, []string{"B", "C"}, ids)
}

func TestAddDropsWhenFullAndNotBetter(t *testing.T) {
	agg := New(1)
	agg.Add(locRecord("A"), 0.5, "", "", addrmodel.ScoreBreakdown{})
	agg.Add(locRecord("B"), 0.2, "", "", addrmodel.ScoreBreakdown{})

	items := agg.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Location.LocationID)
}

func TestSelectSortsByConfidenceThenLocationID(t *testing.T) {
	items := []addrmodel.MatchCandidate{
		{Location: locRecord("B"), Confidence: 0.8},
		{Location: locRecord("A"), Confidence: 0.8},
		{Location: locRecord("C"), Confidence: 0.9},
	}

	result := Select(items)

	assert.True(t, result.HasBestCandidate)
	assert.Equal(t, "C", result.Items[0].Location.LocationID)
	assert.Equal(t, "A", result.Items[1].Location.LocationID)
	assert.Equal(t, "B", result.Items[2].Location.LocationID)
	assert.Equal(t, "0.900", result.SelectedConfidence)
}

func TestSelectEmptyFormatsZeroConfidence(t *testing.T) {
	result := Select(nil)

	assert.False(t, result.HasBestCandidate)
	assert.Equal(t, addrmodel.StrategyNone, result.SelectedStrategy)
	assert.Equal(t, "0.00", result.SelectedConfidence)
}
