package parser

import "testing"

func TestParseWorkedExample(t *testing.T) {
	got, err := Parse("601 NE 1 AVE, Miami, FL 33132")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := map[string]string{
		"StreetNumber":    "601",
		"StreetDirection": "NE",
		"StreetName":      "FIRST",
		"StreetSuffix":    "AVENUE",
		"City":            "MIAMI",
		"State":           "FL",
		"PostalCode":      "33132",
	}
	check := func(field, got, want string) {
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
	check("StreetNumber", got.StreetNumber, want["StreetNumber"])
	check("StreetDirection", got.StreetDirection, want["StreetDirection"])
	check("StreetName", got.StreetName, want["StreetName"])
	check("StreetSuffix", got.StreetSuffix, want["StreetSuffix"])
	check("City", got.City, want["City"])
	check("State", got.State, want["State"])
	check("PostalCode", got.PostalCode, want["PostalCode"])

	if got.CanonicalKey == "" {
		t.Errorf("CanonicalKey should be non-empty when street number and name are both present")
	}
}

func TestParseEmptyAddress(t *testing.T) {
	if _, err := Parse(""); err != ErrEmptyAddress {
		t.Fatalf("Parse(\"\") error = %v, want ErrEmptyAddress", err)
	}
	if _, err := Parse("   "); err != ErrEmptyAddress {
		t.Fatalf("Parse(\"   \") error = %v, want ErrEmptyAddress", err)
	}
}

func TestCanonicalKeyRequiresNumberAndName(t *testing.T) {
	c, err := Parse("Miami, FL 33132")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if c.CanonicalKey != "" {
		t.Errorf("CanonicalKey = %q, want empty when street number/name are missing", c.CanonicalKey)
	}
}

func TestParseOrdinaledSuffixStreet(t *testing.T) {
	got, err := Parse("100 21ST ST, Austin, TX 78701")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.StreetName != "TWENTY-FIRST" {
		t.Errorf("StreetName = %q, want TWENTY-FIRST", got.StreetName)
	}
	if got.StreetSuffix != "STREET" {
		t.Errorf("StreetSuffix = %q, want STREET", got.StreetSuffix)
	}
}

func TestParseHouseNumberNotConfusedWithStreetName(t *testing.T) {
	got, err := Parse("5 MAIN ST, Springfield, IL 62701")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.StreetNumber != "5" {
		t.Errorf("StreetNumber = %q, want 5", got.StreetNumber)
	}
	if got.StreetName != "MAIN" {
		t.Errorf("StreetName = %q, want MAIN (not FIFTH)", got.StreetName)
	}
}

func TestParseUnitToken(t *testing.T) {
	got, err := Parse("601 NE 1 AVE APT 4B, Miami, FL 33132")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.Unit == "" {
		t.Errorf("Unit should be populated")
	}
}

func TestParseUnknownStateFallsBackToTruncation(t *testing.T) {
	got, err := Parse("100 MAIN ST, Anytown, ZZ 00000")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.State != "ZZ" {
		t.Errorf("State = %q, want ZZ (fallback truncation, not rejection)", got.State)
	}
}

func TestCanonicalKeyHelperMatchesParse(t *testing.T) {
	c, err := Parse("601 NE 1 AVE, Miami, FL 33132")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if CanonicalKey(c) != c.CanonicalKey {
		t.Errorf("CanonicalKey(c) = %q, want %q", CanonicalKey(c), c.CanonicalKey)
	}
}
