package store

import "github.com/aristath/workbench/internal/domain"

// PortfolioState is the portfolio slice: the account snapshot and the ordered cue list
type PortfolioState struct {
	Snapshot domain.PortfolioSnapshot `json:"snapshot"`
	Cues     []domain.ActionCue       `json:"cues"`
}

// SetSnapshot replaces the snapshot wholesale
type SetSnapshot struct {
	Snapshot domain.PortfolioSnapshot
}

// PatchSnapshot overwrites the non-nil fields of the snapshot
type PatchSnapshot struct {
	Patch domain.SnapshotPatch
}

// SetCues replaces the cue list wholesale
type SetCues struct {
	Cues []domain.ActionCue
}

// DismissCue removes the cue with the given id. Unknown ids are ignored.
type DismissCue struct {
	ID string
}

func (SetSnapshot) Slice() SliceName   { return SlicePortfolio }
func (PatchSnapshot) Slice() SliceName { return SlicePortfolio }
func (SetCues) Slice() SliceName       { return SlicePortfolio }
func (DismissCue) Slice() SliceName    { return SlicePortfolio }

func (SetSnapshot) Name() string   { return "portfolio/setSnapshot" }
func (PatchSnapshot) Name() string { return "portfolio/patchSnapshot" }
func (SetCues) Name() string       { return "portfolio/setCues" }
func (DismissCue) Name() string    { return "portfolio/dismissCue" }

// ReducePortfolio applies a portfolio action and reports whether anything changed.
// The input state is never modified.
func ReducePortfolio(state PortfolioState, action Action) (PortfolioState, bool) {
	switch a := action.(type) {
	case SetSnapshot:
		if state.Snapshot == a.Snapshot {
			return state, false
		}
		state.Snapshot = a.Snapshot
		return state, true

	case PatchSnapshot:
		next := a.Patch.Apply(state.Snapshot)
		if next == state.Snapshot {
			return state, false
		}
		state.Snapshot = next
		return state, true

	case SetCues:
		state.Cues = cloneCues(a.Cues)
		return state, true

	case DismissCue:
		for i, cue := range state.Cues {
			if cue.ID != a.ID {
				continue
			}
			next := make([]domain.ActionCue, 0, len(state.Cues)-1)
			next = append(next, state.Cues[:i]...)
			next = append(next, state.Cues[i+1:]...)
			state.Cues = next
			return state, true
		}
		return state, false
	}
	return state, false
}

func cloneCues(in []domain.ActionCue) []domain.ActionCue {
	out := make([]domain.ActionCue, len(in))
	copy(out, in)
	return out
}
