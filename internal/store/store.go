package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/domain"
)

// State is the composed workbench state.
// Seq increases by one for every dispatch that changed something.
type State struct {
	Portfolio   PortfolioState   `json:"portfolio"`
	Deployments DeploymentsState `json:"deployments"`
	UI          UIState          `json:"ui"`
	Seq         uint64           `json:"seq"`
}

// NewState returns an empty state with default UI preferences
func NewState() State {
	return State{
		Portfolio: PortfolioState{Cues: []domain.ActionCue{}},
		Deployments: DeploymentsState{
			Deployments: []domain.Deployment{},
			Positions:   []domain.Position{},
		},
		UI: DefaultUIState(),
	}
}

// Clone returns a copy that shares no slices with s
func (s State) Clone() State {
	out := s
	out.Portfolio.Cues = cloneCues(s.Portfolio.Cues)
	out.Deployments.Deployments = cloneDeployments(s.Deployments.Deployments)
	out.Deployments.Positions = clonePositions(s.Deployments.Positions)
	if s.Deployments.SelectedID != nil {
		id := *s.Deployments.SelectedID
		out.Deployments.SelectedID = &id
	}
	return out
}

// Reduce routes an action to the reducer of its slice.
// Slices never see each other's actions. The one derived field is the snapshot's
// active deployment count, which a lifecycle change updates in the same step.
func Reduce(state State, action Action) (State, bool) {
	var changed bool
	switch action.Slice() {
	case SlicePortfolio:
		state.Portfolio, changed = ReducePortfolio(state.Portfolio, action)
	case SliceDeployments:
		state.Deployments, changed = ReduceDeployments(state.Deployments, action)
		if changed && isLifecycle(action) {
			state.Portfolio.Snapshot.ActiveDeployments = state.Deployments.ActiveCount()
		}
	case SliceUI:
		state.UI, changed = ReduceUI(state.UI, action)
	}
	return state, changed
}

func isLifecycle(action Action) bool {
	switch action.(type) {
	case PauseDeployment, ResumeDeployment, StopDeployment:
		return true
	}
	return false
}

// Change describes one applied dispatch
type Change struct {
	Seq    uint64    `json:"seq"`
	Slice  SliceName `json:"slice"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Result is returned by Dispatch
type Result struct {
	State   State
	Changed bool
}

// Listener is called after a dispatch changed the state.
// It runs on the dispatching goroutine, outside the store lock.
type Listener func(Change, State)

// Store is the single owner of the workbench state.
// Dispatches are serialized; readers get copies.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
	log       zerolog.Logger
}

// New creates a store holding initial
func New(initial State, log zerolog.Logger) *Store {
	return &Store{
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
		log:       log.With().Str("component", "store").Logger(),
	}
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Seq returns the current sequence number
func (s *Store) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Seq
}

// Dispatch applies action and notifies listeners when the state changed
func (s *Store) Dispatch(action Action) Result {
	s.mu.Lock()
	next, changed := Reduce(s.state, action)
	if !changed {
		snapshot := s.state.Clone()
		s.mu.Unlock()
		s.log.Debug().Str("action", action.Name()).Msg("Dispatch left state unchanged")
		return Result{State: snapshot, Changed: false}
	}

	next.Seq = s.state.Seq + 1
	s.state = next
	snapshot := next.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	change := Change{
		Seq:    snapshot.Seq,
		Slice:  action.Slice(),
		Action: action.Name(),
		At:     time.Now(),
	}
	s.log.Debug().
		Str("action", change.Action).
		Uint64("seq", change.Seq).
		Msg("State changed")

	for _, l := range listeners {
		l(change, snapshot)
	}

	return Result{State: snapshot, Changed: true}
}

// Subscribe registers a listener and returns a function that removes it
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
