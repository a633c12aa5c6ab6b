package scorer

import (
	"testing"

	"github.com/address-parser/internal/addrmodel"
)

func TestScoreIdenticalComponentsIsOne(t *testing.T) {
	c := addrmodel.AddressComponents{
		StreetNumber: "601", StreetDirection: "NE", StreetName: "FIRST",
		StreetSuffix: "AVENUE", City: "MIAMI", State: "FL", PostalCode: "33132",
	}
	b := Score(c, c, true)
	if b.Score < 0.999 {
		t.Errorf("Score(identical) = %v, want ~1.0", b.Score)
	}
	if len(b.Comparisons) != 7 {
		t.Fatalf("len(Comparisons) = %d, want 7", len(b.Comparisons))
	}
}

func TestScoreRequireZIPPenalizesMissingZip(t *testing.T) {
	left := addrmodel.AddressComponents{StreetNumber: "601", StreetName: "FIRST", PostalCode: "33132"}
	right := addrmodel.AddressComponents{StreetNumber: "601", StreetName: "FIRST"}

	withZip := Score(left, right, true)
	withoutZip := Score(left, right, false)

	// A ZIP missing on the right earns no postal credit in either mode, so
	// both scores hold only the street_number and street_name weights.
	if withZip.Score != withoutZip.Score {
		t.Errorf("requireZIP=true score %v should equal requireZIP=false score %v", withZip.Score, withoutZip.Score)
	}
	if withZip.Score > weightStreetNumber+weightStreetName+1e-9 {
		t.Errorf("requireZIP=true score %v should not include the postal_code weight", withZip.Score)
	}
}

func TestScoreWeightsSumToOne(t *testing.T) {
	sum := weightStreetNumber + weightStreetName + weightDirectional + weightSuffix + weightCity + weightState + weightPostalCode
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights sum to %v, want 1.00", sum)
	}
}

func TestScoreEmptyComponentsIsZero(t *testing.T) {
	b := Score(addrmodel.AddressComponents{}, addrmodel.AddressComponents{}, false)
	if b.Score != 0 {
		t.Errorf("Score(empty, empty) = %v, want 0", b.Score)
	}
}
