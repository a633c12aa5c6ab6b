// Package normalizer expands abbreviations and ordinal words in a raw
// address string before parsing, the way the reference implementation's
// expand_address_text does: wrap with single spaces, upper-case, then apply
// two ordered sets of whole-token substring substitutions.
package normalizer

import "strings"

// expansion is one space-padded needle/replacement pair. Needles are padded
// on both sides so a substring replace only ever matches a whole token,
// never the middle of a longer word.
type expansion struct {
	needle      string
	replacement string
}

// abbreviationExpansions covers both the trailing-space and trailing-period
// forms of each token, exactly as EXPANSIONS[] in the reference source.
var abbreviationExpansions = buildAbbreviationExpansions()

func buildAbbreviationExpansions() []expansion {
	pairs := [][2]string{
		{"ST", "STREET"},
		{"AVE", "AVENUE"},
		{"RD", "ROAD"},
		{"BLVD", "BOULEVARD"},
		{"DR", "DRIVE"},
		{"LN", "LANE"},
		{"CT", "COURT"},
		{"PKY", "PARKWAY"},
		{"PKWY", "PARKWAY"},
		{"HWY", "HIGHWAY"},
		{"PL", "PLACE"},
		{"SQ", "SQUARE"},
		{"CIR", "CIRCLE"},
		{"TER", "TERRACE"},
		{"APT", "APARTMENT"},
		{"STE", "SUITE"},
		{"N", "NORTH"},
		{"S", "SOUTH"},
		{"E", "EAST"},
		{"W", "WEST"},
		{"NE", "NORTHEAST"},
		{"NW", "NORTHWEST"},
		{"SE", "SOUTHEAST"},
		{"SW", "SOUTHWEST"},
	}

	out := make([]expansion, 0, len(pairs)*2)
	for _, p := range pairs {
		out = append(out,
			expansion{needle: " " + p[0] + " ", replacement: " " + p[1] + " "},
			expansion{needle: " " + p[0] + ". ", replacement: " " + p[1] + " "},
		)
	}
	return out
}

// numberedStreetExpansions maps 1ST..50TH, including every compound
// hyphenated form (TWENTY-FIRST..FORTY-NINTH) and decade word, to its
// spelled-out form, exactly as NUMBERED_STREETS[] in the reference source.
var numberedStreetExpansions = buildNumberedStreetExpansions()

var ones = []string{"", "FIRST", "SECOND", "THIRD", "FOURTH", "FIFTH", "SIXTH", "SEVENTH", "EIGHTH", "NINTH"}
var teens = []string{"TENTH", "ELEVENTH", "TWELFTH", "THIRTEENTH", "FOURTEENTH", "FIFTEENTH", "SIXTEENTH", "SEVENTEENTH", "EIGHTEENTH", "NINETEENTH"}
var decadeWords = map[int]string{20: "TWENTIETH", 30: "THIRTIETH", 40: "FORTIETH", 50: "FIFTIETH"}
var decadeCardinals = map[int]string{20: "TWENTY", 30: "THIRTY", 40: "FORTY"}

// OrdinalWord spells out n (1-50) as its ordinal word, e.g. 1 -> "FIRST",
// 21 -> "TWENTY-FIRST". Returns "" outside that range.
func OrdinalWord(n int) string {
	switch {
	case n < 1 || n > 50:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n == 20 || n == 30 || n == 40 || n == 50:
		return decadeWords[n]
	default:
		tens := (n / 10) * 10
		unit := n % 10
		return decadeCardinals[tens] + "-" + ones[unit]
	}
}

func buildNumberedStreetExpansions() []expansion {
	var out []expansion
	for n := 1; n <= 50; n++ {
		suffix := "TH"
		switch n % 10 {
		case 1:
			if n != 11 {
				suffix = "ST"
			}
		case 2:
			if n != 12 {
				suffix = "ND"
			}
		case 3:
			if n != 13 {
				suffix = "RD"
			}
		}
		needle := itoa(n) + suffix
		out = append(out, expansion{needle: " " + needle + " ", replacement: " " + OrdinalWord(n) + " "})
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

const maxExpansionPasses = 8

// Expand wraps source with single spaces, upper-cases it, and applies the
// abbreviation table followed by the numbered-street table, each repeated
// until no further match or until maxExpansionPasses is reached (the
// behavioral analog of the reference implementation's overflow guard: a
// bounded number of passes rather than a fixed buffer size).
//
// Commas are treated as token boundaries just like spaces before either
// table runs, so a trailing token like "AVE," (no space before the comma)
// still matches the " AVE " needle instead of reaching the parser
// unexpanded.
func Expand(source string) string {
	buf := " " + strings.ToUpper(strings.TrimSpace(source)) + " "
	buf = strings.ReplaceAll(buf, ",", " ")
	buf = applyPasses(buf, abbreviationExpansions)
	buf = applyPasses(buf, numberedStreetExpansions)
	return strings.TrimSpace(buf)
}

func applyPasses(buf string, table []expansion) string {
	for pass := 0; pass < maxExpansionPasses; pass++ {
		changed := false
		for _, e := range table {
			if strings.Contains(buf, e.needle) {
				buf = strings.ReplaceAll(buf, e.needle, e.replacement)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return buf
}
