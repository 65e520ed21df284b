package store

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/workbench/internal/domain"
)

func newTestStore() *Store {
	initial := NewState()
	initial.Portfolio.Cues = cuesFixture()
	initial.Deployments = deploymentsFixture()
	return New(initial, zerolog.Nop())
}

func TestStore_DispatchRoutesBySlice(t *testing.T) {
	s := newTestStore()

	res := s.Dispatch(PauseDeployment{ID: "dep-momentum"})
	require.True(t, res.Changed)
	assert.Equal(t, uint64(1), res.State.Seq)

	st := s.State()
	d, ok := st.Deployments.Find("dep-momentum")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPaused, d.Status)
	assert.Len(t, st.Portfolio.Cues, 3, "other slices are untouched")
	assert.Equal(t, DefaultUIState(), st.UI)
}

func TestStore_NoOpDoesNotBumpSeqOrNotify(t *testing.T) {
	s := newTestStore()

	calls := 0
	unsubscribe := s.Subscribe(func(Change, State) { calls++ })
	defer unsubscribe()

	res := s.Dispatch(DismissCue{ID: "missing"})
	assert.False(t, res.Changed)
	assert.Equal(t, uint64(0), s.Seq())
	assert.Equal(t, 0, calls)
}

func TestStore_SubscribeReceivesChanges(t *testing.T) {
	s := newTestStore()

	var got []Change
	unsubscribe := s.Subscribe(func(c Change, st State) {
		got = append(got, c)
		assert.Equal(t, c.Seq, st.Seq)
	})

	s.Dispatch(ToggleColorMode{})
	s.Dispatch(DismissCue{ID: "cue-1"})

	require.Len(t, got, 2)
	assert.Equal(t, SliceUI, got[0].Slice)
	assert.Equal(t, "ui/toggleColorMode", got[0].Action)
	assert.Equal(t, uint64(1), got[0].Seq)
	assert.Equal(t, SlicePortfolio, got[1].Slice)
	assert.Equal(t, uint64(2), got[1].Seq)

	unsubscribe()
	unsubscribe()
	s.Dispatch(ToggleColorMode{})
	assert.Len(t, got, 2)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := newTestStore()
	s.Dispatch(SelectDeployment{ID: "dep-momentum"})

	st := s.State()
	st.Portfolio.Cues[0].Message = "mutated"
	st.Deployments.Deployments[0].Status = domain.StatusStopped
	*st.Deployments.SelectedID = "other"

	fresh := s.State()
	assert.Equal(t, "Drawdown limit near", fresh.Portfolio.Cues[0].Message)
	assert.Equal(t, domain.StatusActive, fresh.Deployments.Deployments[0].Status)
	assert.Equal(t, "dep-momentum", *fresh.Deployments.SelectedID)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New(NewState(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(ToggleSidebar{})
			_ = s.State()
		}()
	}
	wg.Wait()

	st := s.State()
	assert.Equal(t, uint64(50), st.Seq)
	assert.False(t, st.UI.SidebarCollapsed, "an even number of toggles")
}

func TestStore_LifecycleKeepsActiveCountInStep(t *testing.T) {
	s := newTestStore()

	var (
		mu         sync.Mutex
		notified   int
		mismatched int
	)
	unsubscribe := s.Subscribe(func(_ Change, st State) {
		mu.Lock()
		defer mu.Unlock()
		notified++
		if st.Portfolio.Snapshot.ActiveDeployments != st.Deployments.ActiveCount() {
			mismatched++
		}
	})
	defer unsubscribe()

	actions := []Action{
		PauseDeployment{ID: "dep-momentum"},
		ResumeDeployment{ID: "dep-meanrev"},
		ResumeDeployment{ID: "dep-breakout"},
		ResumeDeployment{ID: "dep-momentum"},
		StopDeployment{ID: "dep-meanrev"},
		StopDeployment{ID: "dep-breakout"},
	}

	var wg sync.WaitGroup
	for round := 0; round < 20; round++ {
		for _, a := range actions {
			wg.Add(1)
			go func(a Action) {
				defer wg.Done()
				s.Dispatch(a)
			}(a)
		}
	}
	wg.Wait()

	st := s.State()
	assert.Equal(t, st.Deployments.ActiveCount(), st.Portfolio.Snapshot.ActiveDeployments)
	assert.EqualValues(t, notified, st.Seq, "one notification per change")
	assert.Zero(t, mismatched, "no notified state disagrees with the deployment list")
}

func TestReduce_LifecycleUpdatesSnapshot(t *testing.T) {
	st := NewState()
	st.Deployments = deploymentsFixture()
	st.Portfolio.Snapshot.ActiveDeployments = st.Deployments.ActiveCount()
	before := st.Portfolio.Snapshot.ActiveDeployments

	next, changed := Reduce(st, PauseDeployment{ID: "dep-momentum"})
	require.True(t, changed)
	assert.Equal(t, before-1, next.Portfolio.Snapshot.ActiveDeployments)
	assert.Equal(t, before, st.Portfolio.Snapshot.ActiveDeployments, "input state untouched")

	next, changed = Reduce(next, PauseDeployment{ID: "dep-momentum"})
	assert.False(t, changed)
	assert.Equal(t, before-1, next.Portfolio.Snapshot.ActiveDeployments)

	next, changed = Reduce(next, SelectDeployment{ID: "dep-meanrev"})
	require.True(t, changed)
	assert.Equal(t, before-1, next.Portfolio.Snapshot.ActiveDeployments, "selection leaves the count alone")
}

func TestNewState(t *testing.T) {
	st := NewState()
	assert.NotNil(t, st.Portfolio.Cues)
	assert.NotNil(t, st.Deployments.Deployments)
	assert.NotNil(t, st.Deployments.Positions)
	assert.Nil(t, st.Deployments.SelectedID)
	assert.Equal(t, domain.ColorModeDark, st.UI.ColorMode)
}
