// Package scorer implements the weighted per-component comparator that
// produces a ScoreBreakdown from two AddressComponents.
package scorer

import (
	"strings"

	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/normalizer"
	"github.com/address-parser/internal/similarity"
)

// Field weights, summing to 1.00, exactly as WEIGHTS[] in the reference
// implementation and the table in SPEC_FULL.md §4.4.
const (
	weightStreetNumber = 0.35
	weightStreetName   = 0.25
	weightDirectional  = 0.05
	weightSuffix       = 0.05
	weightCity         = 0.15
	weightState        = 0.05
	weightPostalCode   = 0.10
)

// Score computes the weighted ScoreBreakdown between left and right. When
// requireZIP is true and left carries a postal code that right lacks, the
// postal_code signal is forced to 0 regardless of what it would otherwise
// compute. The score is capped at 1, since adding up the weights in
// floating point can land just above 1.
func Score(left, right addrmodel.AddressComponents, requireZIP bool) addrmodel.ScoreBreakdown {
	var breakdown addrmodel.ScoreBreakdown

	add := func(key, leftVal, rightVal string, weight, signal float64) {
		breakdown.Score += weight * signal
		breakdown.Comparisons = append(breakdown.Comparisons, addrmodel.ScoreComparison{
			Key:    key,
			Value:  leftVal + "|" + rightVal,
			Weight: weight,
		})
	}

	add("street_number", left.StreetNumber, right.StreetNumber, weightStreetNumber, exactSignal(left.StreetNumber, right.StreetNumber))
	add("street_name", left.StreetName, right.StreetName, weightStreetName, similarity.Similarity(unaccent(left.StreetName), unaccent(right.StreetName)))
	add("directional", left.StreetDirection, right.StreetDirection, weightDirectional, exactSignal(left.StreetDirection, right.StreetDirection))
	add("suffix", left.StreetSuffix, right.StreetSuffix, weightSuffix, exactSignal(left.StreetSuffix, right.StreetSuffix))
	add("city", left.City, right.City, weightCity, similarity.Similarity(unaccent(left.City), unaccent(right.City)))
	add("state", left.State, right.State, weightState, exactSignal(left.State, right.State))

	postalSignal := postalSignal(left.PostalCode, right.PostalCode, requireZIP)
	add("postal_code", left.PostalCode, right.PostalCode, weightPostalCode, postalSignal)

	if breakdown.Score > 1 {
		breakdown.Score = 1
	}
	return breakdown
}

// unaccent makes comparisons resilient to catalog data entered with
// accents (e.g. "Cañon City" vs a plain-ASCII query).
func unaccent(s string) string {
	return normalizer.RemoveAccentsAndLowercase(s)
}

func exactSignal(left, right string) float64 {
	if left == "" || right == "" {
		return 0
	}
	if left == right {
		return 1
	}
	return 0
}

func postalSignal(left, right string, requireZIP bool) float64 {
	l := digitsOnly(left)
	r := digitsOnly(right)
	if requireZIP && l != "" && r == "" {
		return 0
	}
	if l == "" || r == "" {
		return 0
	}
	if l == r {
		return 1
	}
	return 0
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
