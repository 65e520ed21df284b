// Package store holds the workbench state: three independent slices (portfolio,
// deployments, ui) composed into one container and changed only through
// dispatched actions.
package store

// SliceName identifies one of the composed slices
type SliceName string

const (
	SlicePortfolio   SliceName = "portfolio"
	SliceDeployments SliceName = "deployments"
	SliceUI          SliceName = "ui"
)

// Action is a synchronous state change request.
// Each action belongs to exactly one slice.
type Action interface {
	Slice() SliceName
	Name() string
}
