package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoEntries indicates the entries file declares no entries.
	ErrNoEntries = errors.New("no entries found in file")
	// ErrInvalidEntry indicates an entry is missing both loc and route.
	ErrInvalidEntry = errors.New("entry needs a loc or a route")
)

// entriesFile is the on-disk shape of a static entries file.
type entriesFile struct {
	Entries []Entry `mapstructure:"entries"`
}

// StaticProvider yields entries declared in a YAML file. The file is
// read on every call so edits take effect on the next generation run.
type StaticProvider struct {
	path string
}

// NewStaticProvider creates a provider for the given entries file.
func NewStaticProvider(path string) *StaticProvider {
	return &StaticProvider{path: path}
}

// Name implements Provider.
func (p *StaticProvider) Name() string {
	return "static:" + p.path
}

// Entries implements Provider. The file decodes through YAML into a raw
// map and then through mapstructure into typed entries, so unknown keys
// fail loudly instead of being dropped.
func (p *StaticProvider) Entries(_ context.Context) ([]Entry, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read entries file: %w", err)
	}

	return parseEntries(data)
}

// parseEntries decodes the entries file content.
func parseEntries(data []byte) ([]Entry, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse entries file: %w", err)
	}

	var file entriesFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &file,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if decodeErr := decoder.Decode(raw); decodeErr != nil {
		return nil, fmt.Errorf("decode entries file: %w", decodeErr)
	}

	if len(file.Entries) == 0 {
		return nil, ErrNoEntries
	}

	for i := range file.Entries {
		if file.Entries[i].Loc == "" && file.Entries[i].Route == nil {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidEntry, i)
		}
	}

	return file.Entries, nil
}
