package matcher

import (
	"context"
	"testing"

	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/catalog"
	"github.com/address-parser/internal/parser"
)

func recordFor(t *testing.T, id, street, city, state, postal string) addrmodel.LocationRecord {
	t.Helper()
	composite := street + ", " + city + ", " + state + " " + postal
	components, err := parser.Parse(composite)
	if err != nil {
		t.Fatalf("parser.Parse(%q) error: %v", composite, err)
	}
	return addrmodel.LocationRecord{
		LocationID: id, Street: street, City: city, State: state, PostalCode: postal,
		Components: components,
	}
}

func TestMatchCanonicalExactHit(t *testing.T) {
	rec := recordFor(t, "LOC1", "601 NE 1ST AVE", "Miami", "FL", "33132")
	cat := catalog.NewForTest([]addrmodel.LocationRecord{rec})

	result, err := Match(context.Background(), "601 NE 1 AVE, Miami, FL 33132", cat, Thresholds{
		StructuredMinConfidence: 0.65, FuzzyMinConfidence: 0.55, LLMMinConfidence: 0.70, MaxCandidates: 5,
	})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if !result.HasBestCandidate {
		t.Fatalf("expected a best candidate")
	}
	if result.Items[0].Location.LocationID != "LOC1" {
		t.Errorf("best candidate = %q, want LOC1", result.Items[0].Location.LocationID)
	}
	if result.Items[0].Strategy != addrmodel.StrategyCanonical {
		t.Errorf("strategy = %q, want canonical", result.Items[0].Strategy)
	}
	if result.Items[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", result.Items[0].Confidence)
	}
}

func TestMatchNoCandidatesFormatsZeroConfidence(t *testing.T) {
	cat := catalog.NewForTest(nil)
	result, err := Match(context.Background(), "1 NOWHERE RD, Nowhere, ZZ 00000", cat, Thresholds{
		StructuredMinConfidence: 0.65, FuzzyMinConfidence: 0.55, LLMMinConfidence: 0.70, MaxCandidates: 5,
	})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.HasBestCandidate {
		t.Fatalf("expected no best candidate")
	}
	if result.SelectedStrategy != addrmodel.StrategyNone {
		t.Errorf("SelectedStrategy = %q, want none", result.SelectedStrategy)
	}
	if result.SelectedConfidence != "0.00" {
		t.Errorf("SelectedConfidence = %q, want 0.00", result.SelectedConfidence)
	}
}

func TestMatchFuzzyFallsBackOnTypo(t *testing.T) {
	rec := recordFor(t, "LOC2", "601 NE 1ST AVE", "Miami", "FL", "33132")
	cat := catalog.NewForTest([]addrmodel.LocationRecord{rec})

	result, err := Match(context.Background(), "601 NE 1 AVEN, Maimi, FL 33132", cat, Thresholds{
		StructuredMinConfidence: 0.99, FuzzyMinConfidence: 0.30, LLMMinConfidence: 0.70, MaxCandidates: 5,
	})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if !result.HasBestCandidate {
		t.Fatalf("expected a fuzzy best candidate")
	}
}
