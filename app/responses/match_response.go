package responses

import (
	"strings"

	"github.com/address-parser/internal/addrmodel"
)

// breakdownField is one scored field inside best_candidate.breakdown.
type breakdownField struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// bestCandidate is the flattened shape of the selected candidate: the
// location's own fields alongside the match metadata, not a nested
// location object.
type bestCandidate struct {
	LocationID string                    `json:"location_id"`
	Confidence float64                   `json:"confidence"`
	Strategy   string                    `json:"strategy"`
	Reason     string                    `json:"reason"`
	Street     string                    `json:"street"`
	City       string                    `json:"city"`
	State      string                    `json:"state"`
	PostalCode string                    `json:"postal_code"`
	Breakdown  map[string]breakdownField `json:"breakdown"`
}

// candidate is the compact shape used for every entry in the candidates
// list, including the one echoed as best_candidate.
type candidate struct {
	LocationID string  `json:"location_id"`
	Confidence float64 `json:"confidence"`
	Strategy   string  `json:"strategy"`
	Reason     string  `json:"reason"`
}

// diagnostics carries the aggregator's selection summary.
type diagnostics struct {
	SelectedStrategy   string `json:"selected_strategy"`
	SelectedConfidence string `json:"selected_confidence"`
}

// MatchResponse is the wire shape of a resolved address: best_candidate
// (null when none was selected), the ranked candidates list, selection
// diagnostics, and the parsed query components.
type MatchResponse struct {
	BestCandidate    *bestCandidate            `json:"best_candidate"`
	Candidates       []candidate               `json:"candidates"`
	Diagnostics      diagnostics               `json:"diagnostics"`
	RecordComponents addrmodel.AddressComponents `json:"record_components"`
}

// FromMatchResult builds the documented wire shape from the internal
// result, sanitizing every string field along the way.
func FromMatchResult(mr addrmodel.MatchResult) MatchResponse {
	resp := MatchResponse{
		Candidates: make([]candidate, 0, len(mr.Items)),
		Diagnostics: diagnostics{
			SelectedStrategy:   sanitize(mr.SelectedStrategy),
			SelectedConfidence: sanitize(mr.SelectedConfidence),
		},
		RecordComponents: sanitizeComponents(mr.RecordComponents),
	}

	for i, item := range mr.Items {
		resp.Candidates = append(resp.Candidates, candidate{
			LocationID: sanitize(locationID(item)),
			Confidence: item.Confidence,
			Strategy:   sanitize(item.Strategy),
			Reason:     sanitize(item.Reason),
		})
		if mr.HasBestCandidate && i == mr.BestIndex {
			resp.BestCandidate = buildBestCandidate(item)
		}
	}

	return resp
}

func buildBestCandidate(item addrmodel.MatchCandidate) *bestCandidate {
	best := &bestCandidate{
		LocationID: sanitize(locationID(item)),
		Confidence: item.Confidence,
		Strategy:   sanitize(item.Strategy),
		Reason:     sanitize(item.Reason),
		Breakdown:  make(map[string]breakdownField, len(item.Breakdown.Comparisons)),
	}
	if item.Location != nil {
		best.Street = sanitize(item.Location.Street)
		best.City = sanitize(item.Location.City)
		best.State = sanitize(item.Location.State)
		best.PostalCode = sanitize(item.Location.PostalCode)
	}
	for _, comparison := range item.Breakdown.Comparisons {
		best.Breakdown[sanitize(comparison.Key)] = breakdownField{
			Value:  sanitize(comparison.Value),
			Weight: comparison.Weight,
		}
	}
	return best
}

func locationID(item addrmodel.MatchCandidate) string {
	if item.Location == nil {
		return ""
	}
	return item.Location.LocationID
}

func sanitizeComponents(c addrmodel.AddressComponents) addrmodel.AddressComponents {
	return addrmodel.AddressComponents{
		StreetNumber:    sanitize(c.StreetNumber),
		StreetDirection: sanitize(c.StreetDirection),
		StreetName:      sanitize(c.StreetName),
		StreetSuffix:    sanitize(c.StreetSuffix),
		Unit:            sanitize(c.Unit),
		City:            sanitize(c.City),
		State:           sanitize(c.State),
		PostalCode:      sanitize(c.PostalCode),
		CanonicalKey:    sanitize(c.CanonicalKey),
	}
}

// sanitize drops control characters below 0x20 other than newline, carriage
// return and tab, which json.Marshal already escapes correctly on its own.
func sanitize(s string) string {
	if !strings.ContainsFunc(s, isDroppedControl) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDroppedControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDroppedControl(r rune) bool {
	if r >= 0x20 {
		return false
	}
	return r != '\n' && r != '\r' && r != '\t'
}
