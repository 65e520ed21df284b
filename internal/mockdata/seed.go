package mockdata

import (
	"context"
	"fmt"

	"github.com/aristath/workbench/internal/store"
)

// Seed loads a dataset into the store, one dispatch per collection
func Seed(s *store.Store, ds *Dataset) {
	s.Dispatch(store.SetSnapshot{Snapshot: ds.Snapshot})
	s.Dispatch(store.SetCues{Cues: ds.Cues})
	s.Dispatch(store.SetDeployments{Deployments: ds.Deployments})
	s.Dispatch(store.SetPositions{Positions: ds.Positions})
}

// ReloadCues replaces the store's cues with a fresh load from the provider.
// Previously dismissed cues come back if the provider still has them.
func ReloadCues(ctx context.Context, s *store.Store, p Provider) (int, error) {
	ds, err := p.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("reload cues: %w", err)
	}
	s.Dispatch(store.SetCues{Cues: ds.Cues})
	return len(ds.Cues), nil
}
