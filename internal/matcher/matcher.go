// Package matcher runs the four-strategy candidate search — canonical,
// structured, fuzzy, oracle — over a catalog and produces a ranked
// MatchResult, the Go port of the reference implementation's
// strategy_canonical/strategy_structured/strategy_fuzzy/strategy_llm plus
// their shared aggregator.
package matcher

import (
	"context"

	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/aggregator"
	"github.com/address-parser/internal/catalog"
	"github.com/address-parser/internal/oracle"
	"github.com/address-parser/internal/parser"
	"github.com/address-parser/internal/scorer"
	"github.com/address-parser/internal/similarity"
)

// canonicalPromotionThreshold is the hardcoded literal from original_source:
// a canonical-key hit with score >= 0.9 is reported as full confidence.
const canonicalPromotionThreshold = 0.9

// Thresholds carries the three confidence gates, sourced from app/config.
type Thresholds struct {
	StructuredMinConfidence float64
	FuzzyMinConfidence      float64
	LLMMinConfidence        float64
	MaxCandidates           int
	LLMCommand              string
}

// Match resolves raw against every record in cat, running the four
// strategies in fixed order and returning the aggregated, sorted result.
func Match(ctx context.Context, raw string, cat *catalog.Catalog, t Thresholds) (addrmodel.MatchResult, error) {
	query, err := parser.Parse(raw)
	if err != nil {
		return addrmodel.MatchResult{}, err
	}

	agg := aggregator.New(t.MaxCandidates)
	records := cat.Records()

	runCanonical(agg, query, records)
	runStructured(agg, query, records, t.StructuredMinConfidence)
	runFuzzy(agg, query, records, t.FuzzyMinConfidence)
	if t.LLMCommand != "" {
		runOracle(ctx, agg, raw, query, t.LLMCommand, t.LLMMinConfidence, cat)
	}

	result := aggregator.Select(agg.Items())
	result.Raw = raw
	result.RecordComponents = query
	return result, nil
}

// runCanonical implements §4.6's canonical strategy: only entries whose
// canonical key exactly matches the query's are scored, and a score >= 0.9
// is reported as full confidence.
func runCanonical(agg *aggregator.Aggregator, query addrmodel.AddressComponents, records []addrmodel.LocationRecord) {
	if query.CanonicalKey == "" {
		return
	}
	for i := range records {
		rec := &records[i]
		if rec.Components.CanonicalKey != query.CanonicalKey {
			continue
		}
		breakdown := scorer.Score(query, rec.Components, true)
		confidence := breakdown.Score
		if confidence >= canonicalPromotionThreshold {
			confidence = 1.0
		}
		agg.Add(rec, confidence, addrmodel.StrategyCanonical, addrmodel.ReasonCanonicalKeyMatch, breakdown)
	}
}

// runStructured implements §4.6's structured strategy: every catalog entry
// is scored without requiring a ZIP match, gated by structuredMinConfidence.
func runStructured(agg *aggregator.Aggregator, query addrmodel.AddressComponents, records []addrmodel.LocationRecord, minConfidence float64) {
	for i := range records {
		rec := &records[i]
		breakdown := scorer.Score(query, rec.Components, false)
		if breakdown.Score >= minConfidence {
			agg.Add(rec, breakdown.Score, addrmodel.StrategyStructured, addrmodel.ReasonWeightedComponent, breakdown)
		}
	}
}

// runFuzzy implements §4.6's fuzzy strategy: blends the structured score
// with direct name/city similarity and a ZIP-agreement bonus, but attaches
// the structured breakdown, not a fuzzy-specific one.
func runFuzzy(agg *aggregator.Aggregator, query addrmodel.AddressComponents, records []addrmodel.LocationRecord, minConfidence float64) {
	for i := range records {
		rec := &records[i]
		structured := scorer.Score(query, rec.Components, false)

		nameSim := similarity.Similarity(query.StreetName, rec.Components.StreetName)
		citySim := similarity.Similarity(query.City, rec.Components.City)
		zipSim := 0.0
		if query.PostalCode != "" && rec.Components.PostalCode != "" {
			zipSim = similarity.Similarity(query.PostalCode, rec.Components.PostalCode)
		}

		fuzzy := 0.60*structured.Score + 0.25*nameSim + 0.15*citySim
		if zipSim > 0.8 {
			fuzzy += 0.05
		}
		if fuzzy > 1.0 {
			fuzzy = 1.0
		}

		if fuzzy >= minConfidence {
			agg.Add(rec, fuzzy, addrmodel.StrategyFuzzy, addrmodel.ReasonApproximateSimilarity, structured)
		}
	}
}

// runOracle implements §4.6's oracle strategy: it only consults the
// external command when candidates already exist, and never originates a
// match on its own.
func runOracle(ctx context.Context, agg *aggregator.Aggregator, raw string, query addrmodel.AddressComponents, command string, minConfidence float64, cat *catalog.Catalog) {
	existing := agg.Items()
	if len(existing) == 0 {
		return
	}

	payload := oracle.BuildPayload(raw, existing)
	reply, err := oracle.Invoke(ctx, command, payload)
	if err != nil {
		return
	}
	if reply.Confidence < minConfidence {
		return
	}
	rec, ok := cat.GetByID(reply.LocationID)
	if !ok {
		return
	}

	breakdown := scorer.Score(query, rec.Components, false)
	agg.Add(rec, reply.Confidence, addrmodel.StrategyLLM, addrmodel.ReasonLLMRanked, breakdown)
}
