package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/starfield/pkg/starfield"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*Snapshot)

// WithJSONSeed records the seed that produced the stars, enabling
// reproducible re-rendering. Zero records no seed.
func WithJSONSeed(seed uint64) JSONOption { return func(s *Snapshot) { s.Seed = seed } }

// WithJSONParams records the sampling ranges.
func WithJSONParams(p starfield.Params) JSONOption {
	return func(s *Snapshot) { s.Params = &p }
}

// WithJSONContainerID records the container id the stars belong to.
func WithJSONContainerID(id string) JSONOption {
	return func(s *Snapshot) { s.ContainerID = id }
}

// Snapshot is the JSON form of a generated starfield.
type Snapshot struct {
	Seed        uint64            `json:"seed,omitempty"`
	ContainerID string            `json:"container_id,omitempty"`
	Count       int               `json:"count"`
	Params      *starfield.Params `json:"params,omitempty"`
	Stars       []starfield.Star  `json:"stars"`
}

// RenderJSON serializes the stars as an indented [Snapshot].
func RenderJSON(stars []starfield.Star, opts ...JSONOption) ([]byte, error) {
	if stars == nil {
		stars = []starfield.Star{}
	}
	s := Snapshot{Count: len(stars), Stars: stars}
	for _, opt := range opts {
		opt(&s)
	}
	return json.MarshalIndent(s, "", "  ")
}

// ReadJSON parses a snapshot written by RenderJSON.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Count != len(s.Stars) {
		return nil, fmt.Errorf("snapshot count %d does not match %d stars", s.Count, len(s.Stars))
	}
	return &s, nil
}
