package parser

// stateCodes is the 50 states plus DC, in the exact order carried by the
// reference implementation's STATE_CODES[].
var stateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// directionalMap pairs both abbreviated and spelled-out directional tokens
// with their canonical code, exactly as DIRECTIONAL_MAP[] in the reference
// source (16 entries).
var directionalMap = map[string]string{
	"N": "N", "NORTH": "N",
	"S": "S", "SOUTH": "S",
	"E": "E", "EAST": "E",
	"W": "W", "WEST": "W",
	"NE": "NE", "NORTHEAST": "NE",
	"NW": "NW", "NORTHWEST": "NW",
	"SE": "SE", "SOUTHEAST": "SE",
	"SW": "SW", "SOUTHWEST": "SW",
}

// primarySuffixes is the full street-suffix table from the reference
// source, a superset of spec.md's illustrative list (it also carries BEND,
// ALLY, FWY and TRL).
var primarySuffixes = map[string]bool{
	"ALLEY": true, "ALLY": true, "AVENUE": true, "AVE": true,
	"BEND": true, "BLVD": true, "BOULEVARD": true,
	"CIRCLE": true, "CIR": true, "COURT": true, "CT": true,
	"DRIVE": true, "DR": true,
	"FREEWAY": true, "FWY": true,
	"HIGHWAY": true, "HWY": true,
	"LANE": true, "LN": true, "LOOP": true,
	"PARKWAY": true, "PKWY": true,
	"PLACE": true, "PL": true,
	"ROAD": true, "RD": true,
	"STREET": true, "ST": true,
	"TERRACE": true, "TER": true,
	"TRAIL": true, "TRL": true,
	"WAY": true,
}

// unitTokens are the tokens that introduce a unit designator.
var unitTokens = map[string]bool{
	"APT": true, "APARTMENT": true, "UNIT": true, "STE": true, "SUITE": true,
	"#": true, "RM": true, "ROOM": true, "FLOOR": true, "FL": true,
	"LEVEL": true, "BLDG": true, "BUILDING": true,
}

func isUnitToken(token string) bool {
	if unitTokens[token] {
		return true
	}
	return len(token) > 0 && token[0] == '#'
}

func isUnitFollowup(token string) bool {
	if len(token) == 0 {
		return false
	}
	if token[0] == '#' {
		return true
	}
	if token[0] >= '0' && token[0] <= '9' {
		return true
	}
	return len(token) <= 3
}
