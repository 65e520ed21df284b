package store

import "github.com/aristath/workbench/internal/domain"

// UIState holds ephemeral UI preferences
type UIState struct {
	SidebarCollapsed bool             `json:"sidebar_collapsed"`
	ColorMode        domain.ColorMode `json:"color_mode"`
	OperationsTab    int              `json:"operations_tab"`
	InsightsTab      int              `json:"insights_tab"`
}

// DefaultUIState returns the preferences a fresh session starts with
func DefaultUIState() UIState {
	return UIState{ColorMode: domain.ColorModeDark}
}

type ToggleSidebar struct{}

type SetSidebarCollapsed struct {
	Collapsed bool
}

type ToggleColorMode struct{}

// SetColorMode is ignored when Mode is not a known color mode
type SetColorMode struct {
	Mode domain.ColorMode
}

// SetOperationsTab selects a tab on the operations page. Negative indices clamp to 0.
type SetOperationsTab struct {
	Index int
}

// SetInsightsTab selects a tab on the insights page. Negative indices clamp to 0.
type SetInsightsTab struct {
	Index int
}

func (ToggleSidebar) Slice() SliceName       { return SliceUI }
func (SetSidebarCollapsed) Slice() SliceName { return SliceUI }
func (ToggleColorMode) Slice() SliceName     { return SliceUI }
func (SetColorMode) Slice() SliceName        { return SliceUI }
func (SetOperationsTab) Slice() SliceName    { return SliceUI }
func (SetInsightsTab) Slice() SliceName      { return SliceUI }

func (ToggleSidebar) Name() string       { return "ui/toggleSidebar" }
func (SetSidebarCollapsed) Name() string { return "ui/setSidebarCollapsed" }
func (ToggleColorMode) Name() string     { return "ui/toggleColorMode" }
func (SetColorMode) Name() string        { return "ui/setColorMode" }
func (SetOperationsTab) Name() string    { return "ui/setOperationsTab" }
func (SetInsightsTab) Name() string      { return "ui/setInsightsTab" }

// ReduceUI applies a ui action and reports whether anything changed
func ReduceUI(state UIState, action Action) (UIState, bool) {
	prev := state

	switch a := action.(type) {
	case ToggleSidebar:
		state.SidebarCollapsed = !state.SidebarCollapsed
	case SetSidebarCollapsed:
		state.SidebarCollapsed = a.Collapsed
	case ToggleColorMode:
		state.ColorMode = state.ColorMode.Opposite()
	case SetColorMode:
		if _, err := domain.ParseColorMode(string(a.Mode)); err != nil {
			return state, false
		}
		state.ColorMode = a.Mode
	case SetOperationsTab:
		state.OperationsTab = clampTab(a.Index)
	case SetInsightsTab:
		state.InsightsTab = clampTab(a.Index)
	}

	return state, state != prev
}

func clampTab(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
