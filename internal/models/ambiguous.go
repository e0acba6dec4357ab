package models

import (
	"encoding/json"
	"fmt"
)

// AmbiguousTownMatch is the discriminator the service uses for ambiguous town matches.
const AmbiguousTownMatch = "ambiguous_town_match"

// AmbiguousMatch is returned instead of a result when the input matches several towns.
// It is a recoverable outcome: callers should offer Candidates rather than fail.
type AmbiguousMatch struct {
	Kind       string   `json:"error"`
	Message    string   `json:"message"`
	Candidates []string `json:"candidates"`
}

func (a *AmbiguousMatch) Error() string {
	return fmt.Sprintf("%s (%d candidates)", a.Message, len(a.Candidates))
}

// ParseAmbiguousMatch reports whether detail is an ambiguous-match object.
func ParseAmbiguousMatch(detail json.RawMessage) (*AmbiguousMatch, bool) {
	if len(detail) == 0 || detail[0] != '{' {
		return nil, false
	}

	var probe struct {
		Kind       string    `json:"error"`
		Message    string    `json:"message"`
		Candidates *[]string `json:"candidates"`
	}
	if err := json.Unmarshal(detail, &probe); err != nil {
		return nil, false
	}
	if probe.Kind != AmbiguousTownMatch || probe.Candidates == nil {
		return nil, false
	}

	return &AmbiguousMatch{
		Kind:       probe.Kind,
		Message:    probe.Message,
		Candidates: *probe.Candidates,
	}, true
}
