package store

import "github.com/aristath/workbench/internal/domain"

// DeploymentsState is the deployments slice.
// SelectedID may reference a deployment that does not exist.
type DeploymentsState struct {
	Deployments []domain.Deployment `json:"deployments"`
	Positions   []domain.Position   `json:"positions"`
	SelectedID  *string             `json:"selected_id"`
}

// SetDeployments replaces the deployment list
type SetDeployments struct {
	Deployments []domain.Deployment
}

// SetPositions replaces the position list
type SetPositions struct {
	Positions []domain.Position
}

// SelectDeployment sets the selection. Any id is accepted.
type SelectDeployment struct {
	ID string
}

// ClearSelection removes the selection
type ClearSelection struct{}

// PauseDeployment moves an active deployment to paused
type PauseDeployment struct {
	ID string
}

// ResumeDeployment moves an idle or paused deployment to active
type ResumeDeployment struct {
	ID string
}

// StopDeployment moves any non-stopped deployment to stopped
type StopDeployment struct {
	ID string
}

func (SetDeployments) Slice() SliceName   { return SliceDeployments }
func (SetPositions) Slice() SliceName     { return SliceDeployments }
func (SelectDeployment) Slice() SliceName { return SliceDeployments }
func (ClearSelection) Slice() SliceName   { return SliceDeployments }
func (PauseDeployment) Slice() SliceName  { return SliceDeployments }
func (ResumeDeployment) Slice() SliceName { return SliceDeployments }
func (StopDeployment) Slice() SliceName   { return SliceDeployments }

func (SetDeployments) Name() string   { return "deployments/setDeployments" }
func (SetPositions) Name() string     { return "deployments/setPositions" }
func (SelectDeployment) Name() string { return "deployments/select" }
func (ClearSelection) Name() string   { return "deployments/clearSelection" }
func (PauseDeployment) Name() string  { return "deployments/pause" }
func (ResumeDeployment) Name() string { return "deployments/resume" }
func (StopDeployment) Name() string   { return "deployments/stop" }

// ReduceDeployments applies a deployments action and reports whether anything changed.
// Status changes that the lifecycle does not allow, and unknown ids, are no-ops.
func ReduceDeployments(state DeploymentsState, action Action) (DeploymentsState, bool) {
	switch a := action.(type) {
	case SetDeployments:
		state.Deployments = cloneDeployments(a.Deployments)
		return state, true

	case SetPositions:
		state.Positions = clonePositions(a.Positions)
		return state, true

	case SelectDeployment:
		if state.SelectedID != nil && *state.SelectedID == a.ID {
			return state, false
		}
		id := a.ID
		state.SelectedID = &id
		return state, true

	case ClearSelection:
		if state.SelectedID == nil {
			return state, false
		}
		state.SelectedID = nil
		return state, true

	case PauseDeployment:
		return transition(state, a.ID, domain.StatusPaused)
	case ResumeDeployment:
		return transition(state, a.ID, domain.StatusActive)
	case StopDeployment:
		return transition(state, a.ID, domain.StatusStopped)
	}
	return state, false
}

func transition(state DeploymentsState, id string, next domain.DeploymentStatus) (DeploymentsState, bool) {
	idx := state.indexOf(id)
	if idx < 0 || !state.Deployments[idx].Status.CanTransitionTo(next) {
		return state, false
	}
	deployments := cloneDeployments(state.Deployments)
	deployments[idx].Status = next
	state.Deployments = deployments
	return state, true
}

func (s DeploymentsState) indexOf(id string) int {
	for i := range s.Deployments {
		if s.Deployments[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the deployment with the given id
func (s DeploymentsState) Find(id string) (domain.Deployment, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Deployment{}, false
	}
	return s.Deployments[idx], true
}

// SelectedDeployment returns the selected deployment, if the selection resolves to one
func (s DeploymentsState) SelectedDeployment() (domain.Deployment, bool) {
	if s.SelectedID == nil {
		return domain.Deployment{}, false
	}
	return s.Find(*s.SelectedID)
}

// PositionsFor returns the positions owned by a deployment, in list order.
// The result is never nil.
func (s DeploymentsState) PositionsFor(id string) []domain.Position {
	out := make([]domain.Position, 0)
	for _, p := range s.Positions {
		if p.DeploymentID == id {
			out = append(out, p)
		}
	}
	return out
}

// SelectedPositions returns the positions of the selected deployment
func (s DeploymentsState) SelectedPositions() []domain.Position {
	if s.SelectedID == nil {
		return []domain.Position{}
	}
	return s.PositionsFor(*s.SelectedID)
}

// ActiveCount returns the number of deployments with status active
func (s DeploymentsState) ActiveCount() int {
	n := 0
	for _, d := range s.Deployments {
		if d.Status == domain.StatusActive {
			n++
		}
	}
	return n
}

func cloneDeployments(in []domain.Deployment) []domain.Deployment {
	out := make([]domain.Deployment, len(in))
	copy(out, in)
	return out
}

func clonePositions(in []domain.Position) []domain.Position {
	out := make([]domain.Position, len(in))
	copy(out, in)
	return out
}
