// Package parser implements the ordered heuristic address parser: tokenize,
// then consume tokens left-to-right/right-to-left into typed fields,
// finally synthesizing a canonical key.
package parser

import (
	"errors"
	"strings"

	"github.com/address-parser/internal/addrmodel"
	"github.com/address-parser/internal/normalizer"
)

// ErrEmptyAddress is returned when the input is empty or tokenizes to
// nothing.
var ErrEmptyAddress = errors.New("parser: address is empty")

const (
	maxTokens    = 64
	maxTokenLen  = 128
	minZipDigits = 5
)

// Parse tokenizes and structurally decomposes a raw address string into
// AddressComponents, following the extraction order in §4.2: postal code,
// state, unit, house number, directional prefix, primary suffix, then the
// street name / city partition.
func Parse(input string) (addrmodel.AddressComponents, error) {
	var out addrmodel.AddressComponents

	expanded := normalizer.Expand(input)
	tokens := tokenize(expanded)
	if len(tokens) == 0 {
		return out, ErrEmptyAddress
	}

	active := make([]bool, len(tokens))
	for i := range active {
		active[i] = true
	}

	extractPostalCode(tokens, active, &out)
	extractState(tokens, active, &out)
	extractUnit(tokens, active, &out)
	extractHouseNumber(tokens, active, &out)
	extractDirectional(tokens, active, &out)
	suffixIndex := extractSuffix(tokens, active, &out)
	extractStreetNameAndCity(tokens, active, suffixIndex, &out)

	upperComponents(&out)
	out.CanonicalKey = canonicalKey(out)
	return out, nil
}

func tokenize(s string) []string {
	raw := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(raw) > maxTokens {
		raw = raw[:maxTokens]
	}
	for i, t := range raw {
		if len(t) > maxTokenLen {
			raw[i] = t[:maxTokenLen]
		}
	}
	return raw
}

func upperComponents(c *addrmodel.AddressComponents) {
	c.StreetNumber = strings.ToUpper(c.StreetNumber)
	c.StreetDirection = strings.ToUpper(c.StreetDirection)
	c.StreetName = strings.ToUpper(c.StreetName)
	c.StreetSuffix = strings.ToUpper(c.StreetSuffix)
	c.Unit = strings.ToUpper(c.Unit)
	c.City = strings.ToUpper(c.City)
	c.State = strings.ToUpper(c.State)
	c.PostalCode = strings.ToUpper(c.PostalCode)
}

// CanonicalKey synthesizes the |-joined rendering of components, empty
// unless both StreetNumber and StreetName are non-empty. Exported so the
// catalog loader and tests can recompute it independently of Parse.
func CanonicalKey(c addrmodel.AddressComponents) string {
	return canonicalKey(c)
}

func canonicalKey(c addrmodel.AddressComponents) string {
	if c.StreetNumber == "" || c.StreetName == "" {
		return ""
	}
	return strings.Join([]string{
		c.StreetNumber, c.StreetDirection, c.StreetName, c.StreetSuffix,
		c.City, c.State, c.PostalCode,
	}, "|")
}

// --- postal code ---

func extractPostalCode(tokens []string, active []bool, out *addrmodel.AddressComponents) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !active[i] {
			continue
		}
		if canon, ok := canonicalizeZip(tokens[i]); ok {
			out.PostalCode = canon
			active[i] = false
			return
		}
	}
}

func canonicalizeZip(token string) (string, bool) {
	digitsBeforeHyphen := 0
	hyphenSeen := false
	digitsAfterHyphen := 0
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			if hyphenSeen {
				digitsAfterHyphen++
			} else {
				digitsBeforeHyphen++
			}
		case r == '-' && !hyphenSeen && digitsBeforeHyphen >= minZipDigits:
			hyphenSeen = true
		default:
			return "", false
		}
	}
	if digitsBeforeHyphen < minZipDigits {
		return "", false
	}
	if hyphenSeen && digitsAfterHyphen == 0 {
		return "", false
	}
	var b strings.Builder
	for _, r := range token {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String(), true
}

// --- state ---

func extractState(tokens []string, active []bool, out *addrmodel.AddressComponents) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !active[i] {
			continue
		}
		out.State = normalizeState(tokens[i])
		active[i] = false
		return
	}
}

// normalizeState returns the token's upper form if it is a real two-letter
// state code; otherwise it truncates the upper-cased token to two
// characters. This fallback is the reference implementation's documented
// quirk: the rightmost remaining token always becomes "state", real match
// or not. See SPEC_FULL.md §9.
func normalizeState(token string) string {
	up := strings.ToUpper(token)
	if stateCodes[up] {
		return up
	}
	if len(up) > 2 {
		return up[:2]
	}
	return up
}

// --- unit ---

func extractUnit(tokens []string, active []bool, out *addrmodel.AddressComponents) {
	start := -1
	for i, t := range tokens {
		if !active[i] {
			continue
		}
		if isUnitToken(strings.ToUpper(t)) {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	var parts []string
	parts = append(parts, tokens[start])
	active[start] = false
	for i := start + 1; i < len(tokens); i++ {
		if !active[i] {
			break
		}
		if !isUnitFollowup(tokens[i]) {
			break
		}
		parts = append(parts, tokens[i])
		active[i] = false
	}
	out.Unit = strings.TrimSpace(strings.Join(parts, " "))
}

// --- house number ---

func extractHouseNumber(tokens []string, active []bool, out *addrmodel.AddressComponents) {
	for i, t := range tokens {
		if !active[i] {
			continue
		}
		run := leadingDigitHyphenRun(t)
		if run == "" {
			continue
		}
		number := strings.TrimRight(run, "-")
		out.StreetNumber = number
		remainder := t[len(run):]
		if remainder != "" {
			tokens[i] = remainder
		} else {
			active[i] = false
		}
		return
	}
}

func leadingDigitHyphenRun(token string) string {
	end := 0
	for end < len(token) {
		c := token[end]
		if (c >= '0' && c <= '9') || c == '-' {
			end++
			continue
		}
		break
	}
	return token[:end]
}

// --- directional prefix ---

// extractDirectional inspects only the first still-active token. It is
// consumed into StreetDirection only when it is a directional; any other
// token stays active for the street name.
func extractDirectional(tokens []string, active []bool, out *addrmodel.AddressComponents) {
	for i, t := range tokens {
		if !active[i] {
			continue
		}
		if code, ok := directionalMap[strings.ToUpper(t)]; ok {
			out.StreetDirection = code
			active[i] = false
		}
		return
	}
}

// --- primary suffix ---

func extractSuffix(tokens []string, active []bool, out *addrmodel.AddressComponents) int {
	for i, t := range tokens {
		if !active[i] {
			continue
		}
		if primarySuffixes[strings.ToUpper(t)] {
			out.StreetSuffix = t
			active[i] = false
			return i
		}
	}
	return -1
}

// --- street name / city ---

func extractStreetNameAndCity(tokens []string, active []bool, suffixIndex int, out *addrmodel.AddressComponents) {
	var streetParts, cityParts []string
	for i, t := range tokens {
		if !active[i] {
			continue
		}
		if suffixIndex >= 0 && i > suffixIndex {
			cityParts = append(cityParts, t)
			continue
		}
		streetParts = append(streetParts, normalizeStreetNameToken(t))
	}
	out.StreetName = strings.Join(streetParts, " ")
	out.City = strings.Join(cityParts, " ")
}

// normalizeStreetNameToken applies the ordinal handling of step 7: a purely
// numeric token in [1,50] is spelled out (e.g. "1" -> "FIRST", matching the
// worked example in SPEC_FULL.md §8), otherwise a trailing ST/ND/RD/TH is
// trimmed when the token starts with a digit and the character just before
// the suffix is also a digit, exactly as the reference implementation's
// normalize_ordinal_token.
func normalizeStreetNameToken(token string) string {
	if n, ok := parseSmallOrdinal(token); ok {
		return normalizer.OrdinalWord(n)
	}
	return trimOrdinalSuffix(token)
}

func parseSmallOrdinal(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	n := 0
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 50 {
			return 0, false
		}
	}
	if n < 1 {
		return 0, false
	}
	return n, true
}

func trimOrdinalSuffix(token string) string {
	length := len(token)
	if length < 3 {
		return token
	}
	offset := length - 2
	if !isDigit(token[0]) || !isDigit(token[offset-1]) {
		return token
	}
	suffix := token[offset:]
	switch suffix {
	case "ST", "ND", "RD", "TH":
		return token[:offset]
	default:
		return token
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
