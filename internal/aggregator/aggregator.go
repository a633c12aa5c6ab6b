// Package aggregator implements the bounded candidate set that every
// strategy feeds into and the final sort/selection pass.
package aggregator

import (
	"fmt"
	"sort"

	"github.com/address-parser/internal/addrmodel"
)

// Aggregator holds at most capacity candidates, deduplicated by location id.
type Aggregator struct {
	capacity int
	items    []addrmodel.MatchCandidate
}

// New returns an Aggregator bounded to min(maxCandidates, 16).
func New(maxCandidates int) *Aggregator {
	cap := maxCandidates
	if cap > 16 {
		cap = 16
	}
	if cap < 1 {
		cap = 1
	}
	return &Aggregator{capacity: cap}
}

// Add inserts or updates a candidate following §4.7: overwrite on a
// strictly-greater-confidence id match, else append if there's room, else
// replace the minimum-confidence slot if the incoming confidence beats it,
// else drop.
func (a *Aggregator) Add(location *addrmodel.LocationRecord, confidence float64, strategy, reason string, breakdown addrmodel.ScoreBreakdown) {
	for i := range a.items {
		if a.items[i].Location.LocationID == location.LocationID {
			if confidence > a.items[i].Confidence {
				a.items[i].Confidence = confidence
				a.items[i].Strategy = strategy
				a.items[i].Reason = reason
				a.items[i].Breakdown = breakdown
			}
			return
		}
	}

	candidate := addrmodel.MatchCandidate{
		Location:   location,
		Confidence: confidence,
		Strategy:   strategy,
		Reason:     reason,
		Breakdown:  breakdown,
	}

	if len(a.items) < a.capacity {
		a.items = append(a.items, candidate)
		return
	}

	minIdx := 0
	for i := 1; i < len(a.items); i++ {
		if a.items[i].Confidence < a.items[minIdx].Confidence {
			minIdx = i
		}
	}
	if confidence > a.items[minIdx].Confidence {
		a.items[minIdx] = candidate
	}
}

// Items returns the current candidates, unsorted.
func (a *Aggregator) Items() []addrmodel.MatchCandidate {
	return a.items
}

// Select sorts the held candidates (confidence descending, location_id
// ascending on ties) and builds the final MatchResult shell, leaving Raw and
// RecordComponents for the caller to fill in.
func Select(items []addrmodel.MatchCandidate) addrmodel.MatchResult {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Confidence != items[j].Confidence {
			return items[i].Confidence > items[j].Confidence
		}
		return items[i].Location.LocationID < items[j].Location.LocationID
	})

	result := addrmodel.MatchResult{Items: items}
	if len(items) == 0 {
		result.SelectedStrategy = addrmodel.StrategyNone
		result.SelectedConfidence = "0.00"
		return result
	}

	result.HasBestCandidate = true
	result.BestIndex = 0
	result.SelectedStrategy = items[0].Strategy
	result.SelectedConfidence = fmt.Sprintf("%.3f", items[0].Confidence)
	return result
}
