package dealdata

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// FixtureSource serves deal records from a YAML file, for local development
// and tests. The file maps collection names to lists of records:
//
//	deals:
//	  - id: deal-1
//	    startupId: startup-1
//	startups:
//	  - id: startup-1
//	    company: Acme Robotics
//	keyMetrics:
//	  - dealId: deal-1
//	    arr: "$1.2M"
type FixtureSource struct {
	collections map[string][]domain.Record
}

func NewFixtureSource(path string) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture file %s: %w", path, err)
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*FixtureSource, error) {
	collections := make(map[string][]domain.Record)
	if err := yaml.Unmarshal(data, &collections); err != nil {
		return nil, fmt.Errorf("cannot parse fixture: %w", err)
	}
	return &FixtureSource{collections: collections}, nil
}

func (f *FixtureSource) Query(ctx context.Context, collection, field, value string) (map[string]domain.Record, error) {
	out := map[string]domain.Record{}
	for i, rec := range f.collections[collection] {
		if fmt.Sprintf("%v", rec[field]) == value {
			out[fmt.Sprintf("%s-%d", collection, i)] = rec
		}
	}
	return out, nil
}
