package oracle

import (
	"testing"

	"github.com/address-parser/internal/addrmodel"
	"github.com/stretchr/testify/assert"
)

func TestBuildPayloadCapsAtFiveCandidates(t *testing.T) {
	candidates := make([]addrmodel.MatchCandidate, 8)
	for i := range candidates {
		candidates[i] = addrmodel.MatchCandidate{
			Location: &addrmodel.LocationRecord{LocationID: "loc", Street: "1 MAIN ST", City: "MIAMI", State: "FL", PostalCode: "33132"},
		}
	}

	payload := BuildPayload("1 main st, miami, fl", candidates)

	assert.Len(t, payload.Candidates, maxCandidatesInPayload)
	assert.Equal(t, "1 main st, miami, fl", payload.Address)
}

func TestParseReplyReadsKnownTokens(t *testing.T) {
	reply := parseReply("location_id=LOC-42 confidence=0.87 ignored=true")

	assert.Equal(t, "LOC-42", reply.LocationID)
	assert.Equal(t, 0.87, reply.Confidence)
}

func TestParseReplyIgnoresUnparseableConfidence(t *testing.T) {
	reply := parseReply("location_id=LOC-1 confidence=not-a-number")

	assert.Equal(t, "LOC-1", reply.LocationID)
	assert.Equal(t, 0.0, reply.Confidence)
}

func TestParseReplyEmptyLineYieldsZeroValue(t *testing.T) {
	reply := parseReply("")

	assert.Equal(t, Reply{}, reply)
}
