package mockdata

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/demo.yaml
var demoFixture []byte

// Provider loads a dataset
type Provider interface {
	Load(ctx context.Context) (*Dataset, error)
}

// FixtureProvider reads a YAML fixture: the embedded demo dataset, or a file when a
// path is configured. The file is re-read on every Load.
type FixtureProvider struct {
	path string
	log  zerolog.Logger
}

// NewFixtureProvider creates a provider. An empty path selects the embedded demo dataset.
func NewFixtureProvider(path string, log zerolog.Logger) *FixtureProvider {
	return &FixtureProvider{
		path: path,
		log:  log.With().Str("component", "mockdata").Logger(),
	}
}

// Source describes where datasets come from
func (p *FixtureProvider) Source() string {
	if p.path == "" {
		return "embedded:demo.yaml"
	}
	return p.path
}

// Load parses and validates the fixture
func (p *FixtureProvider) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := demoFixture
	if p.path != "" {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		raw = data
	}

	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.Source(), err)
	}

	p.log.Debug().
		Str("source", p.Source()).
		Int("deployments", len(ds.Deployments)).
		Int("positions", len(ds.Positions)).
		Int("cues", len(ds.Cues)).
		Msg("Dataset loaded")

	return ds, nil
}

// Parse decodes a YAML dataset, rejects unknown fields and enum values, validates it
// and assigns ids to cues that have none
func Parse(raw []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	ds := &Dataset{}
	if err := dec.Decode(ds); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	for i := range ds.Cues {
		if ds.Cues[i].ID == "" {
			ds.Cues[i].ID = uuid.NewString()
		}
	}

	return ds, nil
}
