package catalog

import (
	"testing"

	"github.com/address-parser/internal/addrmodel"
	"github.com/stretchr/testify/assert"
)

func TestNewForTestBuildsLookupIndex(t *testing.T) {
	cat := NewForTest([]addrmodel.LocationRecord{
		{LocationID: "loc-1", Street: "601 NE 1 AVE", City: "MIAMI", State: "FL", PostalCode: "33132"},
		{LocationID: "loc-2", Street: "1 MAIN ST", City: "ORLANDO", State: "FL", PostalCode: "32801"},
	})

	assert.Equal(t, 2, cat.Len())

	rec, ok := cat.GetByID("loc-1")
	assert.True(t, ok)
	assert.Equal(t, "MIAMI", rec.City)

	_, ok = cat.GetByID("missing")
	assert.False(t, ok)
}

func TestGetByIDIsCaseInsensitive(t *testing.T) {
	cat := NewForTest([]addrmodel.LocationRecord{
		{LocationID: "LOC-1", City: "MIAMI"},
	})

	rec, ok := cat.GetByID("loc-1")
	assert.True(t, ok)
	assert.Equal(t, "MIAMI", rec.City)
}

func TestVersionIsStableForIdenticalInput(t *testing.T) {
	records := []addrmodel.LocationRecord{
		{LocationID: "loc-1", Street: "601 NE 1 AVE", City: "MIAMI", State: "FL", PostalCode: "33132"},
	}

	first := NewForTest(records)
	second := NewForTest(records)

	assert.Equal(t, first.Version(), second.Version())
}

func TestVersionChangesWithContent(t *testing.T) {
	a := NewForTest([]addrmodel.LocationRecord{{LocationID: "loc-1", City: "MIAMI"}})
	b := NewForTest([]addrmodel.LocationRecord{{LocationID: "loc-1", City: "ORLANDO"}})

	assert.NotEqual(t, a.Version(), b.Version())
}
