package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum is returned when a value falls outside its closed set.
// Ingestion boundaries (fixtures, JSON request bodies) wrap it.
var ErrInvalidEnum = errors.New("invalid enum value")

func invalidEnum(kind, raw string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, raw)
}

// Severity classifies an action cue
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ParseSeverity converts a raw string into a Severity
func ParseSeverity(raw string) (Severity, error) {
	switch s := Severity(raw); s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return s, nil
	}
	return "", invalidEnum("severity", raw)
}

// UnmarshalText rejects unknown severities
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Rank orders severities for display, critical first
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// DeploymentStatus is the lifecycle status of a deployment.
//
//	idle -> active <-> paused -> stopped
//
// stopped is terminal.
type DeploymentStatus string

const (
	StatusIdle    DeploymentStatus = "idle"
	StatusActive  DeploymentStatus = "active"
	StatusPaused  DeploymentStatus = "paused"
	StatusStopped DeploymentStatus = "stopped"
)

// ParseDeploymentStatus converts a raw string into a DeploymentStatus
func ParseDeploymentStatus(raw string) (DeploymentStatus, error) {
	switch s := DeploymentStatus(raw); s {
	case StatusIdle, StatusActive, StatusPaused, StatusStopped:
		return s, nil
	}
	return "", invalidEnum("deployment status", raw)
}

// UnmarshalText rejects unknown statuses
func (s *DeploymentStatus) UnmarshalText(text []byte) error {
	v, err := ParseDeploymentStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// Staying in the same status is not a transition.
func (s DeploymentStatus) CanTransitionTo(next DeploymentStatus) bool {
	switch s {
	case StatusIdle:
		return next == StatusActive || next == StatusStopped
	case StatusActive:
		return next == StatusPaused || next == StatusStopped
	case StatusPaused:
		return next == StatusActive || next == StatusStopped
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s DeploymentStatus) IsTerminal() bool {
	return s == StatusStopped
}

// Side is the direction of a position
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// ParseSide converts a raw string into a Side
func ParseSide(raw string) (Side, error) {
	switch s := Side(raw); s {
	case SideLong, SideShort:
		return s, nil
	}
	return "", invalidEnum("side", raw)
}

// UnmarshalText rejects unknown sides
func (s *Side) UnmarshalText(text []byte) error {
	v, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PositionState tags where an open trade is in its lifecycle
type PositionState string

const (
	PositionEntry    PositionState = "entry"
	PositionHolding  PositionState = "holding"
	PositionTrailing PositionState = "trailing"
	PositionExiting  PositionState = "exiting"
)

// ParsePositionState converts a raw string into a PositionState
func ParsePositionState(raw string) (PositionState, error) {
	switch s := PositionState(raw); s {
	case PositionEntry, PositionHolding, PositionTrailing, PositionExiting:
		return s, nil
	}
	return "", invalidEnum("position state", raw)
}

// UnmarshalText rejects unknown position states
func (s *PositionState) UnmarshalText(text []byte) error {
	v, err := ParsePositionState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Regime is a market-condition classification
type Regime string

const (
	RegimeLowVolatility  Regime = "low_volatility"
	RegimeNormal         Regime = "normal"
	RegimeHighVolatility Regime = "high_volatility"
	RegimeCrisis         Regime = "crisis"
)

// ParseRegime converts a raw string into a Regime
func ParseRegime(raw string) (Regime, error) {
	switch r := Regime(raw); r {
	case RegimeLowVolatility, RegimeNormal, RegimeHighVolatility, RegimeCrisis:
		return r, nil
	}
	return "", invalidEnum("regime", raw)
}

// UnmarshalText rejects unknown regimes
func (r *Regime) UnmarshalText(text []byte) error {
	v, err := ParseRegime(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ColorMode is the UI theme
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

// ParseColorMode converts a raw string into a ColorMode
func ParseColorMode(raw string) (ColorMode, error) {
	switch m := ColorMode(raw); m {
	case ColorModeLight, ColorModeDark:
		return m, nil
	}
	return "", invalidEnum("color mode", raw)
}

// UnmarshalText rejects unknown color modes
func (m *ColorMode) UnmarshalText(text []byte) error {
	v, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Opposite returns the other color mode
func (m ColorMode) Opposite() ColorMode {
	if m == ColorModeDark {
		return ColorModeLight
	}
	return ColorModeDark
}

// MetricFormat selects how a metric value is rendered
type MetricFormat string

const (
	FormatCurrency MetricFormat = "currency"
	FormatPercent  MetricFormat = "percent"
	FormatRatio    MetricFormat = "ratio"
	FormatNumber   MetricFormat = "number"
)

// ParseMetricFormat converts a raw string into a MetricFormat
func ParseMetricFormat(raw string) (MetricFormat, error) {
	switch f := MetricFormat(raw); f {
	case FormatCurrency, FormatPercent, FormatRatio, FormatNumber:
		return f, nil
	}
	return "", invalidEnum("metric format", raw)
}

// UnmarshalText rejects unknown metric formats
func (f *MetricFormat) UnmarshalText(text []byte) error {
	v, err := ParseMetricFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
