// Package oracle invokes an external ranking command over a bounded
// candidate list, the Go port of the reference implementation's
// strategy_llm child-process protocol.
package oracle

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/address-parser/internal/addrmodel"
)

// ErrNoReply is returned when the child process produced no output line.
var ErrNoReply = errors.New("oracle: command produced no output")

// CandidatePayload is one entry of the JSON candidate list sent to the
// external command.
type CandidatePayload struct {
	LocationID string  `json:"location_id"`
	Confidence float64 `json:"confidence"`
	Strategy   string  `json:"strategy"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
}

// Payload is the full request body written to the temp file.
type Payload struct {
	Address    string             `json:"address"`
	Candidates []CandidatePayload `json:"candidates"`
}

// Reply is the parsed response: the chosen location id and its confidence.
type Reply struct {
	LocationID string
	Confidence float64
}

const maxCandidatesInPayload = 5

// BuildPayload takes up to the first 5 candidates and renders the oracle
// request body.
func BuildPayload(address string, candidates []addrmodel.MatchCandidate) Payload {
	n := len(candidates)
	if n > maxCandidatesInPayload {
		n = maxCandidatesInPayload
	}
	p := Payload{Address: address, Candidates: make([]CandidatePayload, 0, n)}
	for i := 0; i < n; i++ {
		c := candidates[i]
		p.Candidates = append(p.Candidates, CandidatePayload{
			LocationID: c.Location.LocationID,
			Confidence: c.Confidence,
			Strategy:   c.Strategy,
			Street:     c.Location.Street,
			City:       c.Location.City,
			State:      c.Location.State,
			PostalCode: c.Location.PostalCode,
		})
	}
	return p
}

// Invoke writes payload to a fresh temp file, runs `<command> <path>`, reads
// one line of stdout, and parses it as a space-separated token list of
// location_id=<id> and confidence=<float> (unknown tokens ignored). The temp
// file is always removed, regardless of how the command exits.
func Invoke(ctx context.Context, command string, payload Payload) (Reply, error) {
	f, err := os.CreateTemp("", "ams-llm-*")
	if err != nil {
		return Reply{}, err
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath)

	enc := json.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return Reply{}, err
	}
	if err := f.Close(); err != nil {
		return Reply{}, err
	}

	args := strings.Fields(command)
	if len(args) == 0 {
		return Reply{}, errors.New("oracle: empty command")
	}
	args = append(args, tmpPath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Reply{}, err
	}
	if err := cmd.Start(); err != nil {
		return Reply{}, err
	}

	scanner := bufio.NewScanner(stdout)
	var line string
	if scanner.Scan() {
		line = scanner.Text()
	}
	waitErr := cmd.Wait()
	if line == "" {
		if waitErr != nil {
			return Reply{}, waitErr
		}
		return Reply{}, ErrNoReply
	}

	return parseReply(line), nil
}

func parseReply(line string) Reply {
	var reply Reply
	for _, tok := range strings.Fields(line) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		switch key {
		case "location_id":
			reply.LocationID = value
		case "confidence":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				reply.Confidence = f
			}
		}
	}
	return reply
}
