package cache

import "github.com/matzehuels/starfield/pkg/starfield"

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every input that changes an artifact's bytes.
type ArtifactKeyOpts struct {
	Count       int              `json:"count"`
	Seed        uint64           `json:"seed"`
	Params      starfield.Params `json:"params"`
	Format      string           `json:"format"`
	Width       int              `json:"width,omitempty"`
	Height      int              `json:"height,omitempty"`
	Title       string           `json:"title,omitempty"`
	ContainerID string           `json:"container_id,omitempty"`
	Pretty      bool             `json:"pretty,omitempty"`
	Frame       *float64         `json:"frame,omitempty"`
}

// DefaultKeyer hashes the key options into "artifact:<format>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, opts)
}
