package testing

import (
	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/store"
)

// NewTestStore returns a store seeded with the snapshot, cue, deployment and position fixtures
func NewTestStore() *store.Store {
	s := store.New(store.NewState(), zerolog.Nop())
	s.Dispatch(store.SetSnapshot{Snapshot: NewSnapshotFixture()})
	s.Dispatch(store.SetCues{Cues: NewCueFixtures()})
	s.Dispatch(store.SetDeployments{Deployments: NewDeploymentFixtures()})
	s.Dispatch(store.SetPositions{Positions: NewPositionFixtures()})
	return s
}
