// Package interaction tracks pointer/pan/crosshair state and the kinetic
// pan integrator. State transitions are pure and synchronous; nothing here
// touches a wall clock (spec §4.3).
package interaction

import (
	"fmt"
	"math"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// Mode is the interaction state machine's top-level mode.
type Mode int

const (
	Idle Mode = iota
	Panning
)

// CrosshairMode selects how pointer_move resolves a snap.
type CrosshairMode int

const (
	Magnet CrosshairMode = iota
	Normal
	Hidden
)

// Pointer is the last known pointer position within the plot area.
type Pointer struct {
	X, Y    float64
	Visible bool
}

// Snap is a resolved crosshair snap target.
type Snap struct {
	X, Y  float64
	Time  float64
	Price float64
}

// State is the interaction state machine. PanEnabled gates whether
// pan_start actually transitions into Panning (an input-behavior flag the
// owning engine sets from its config).
type State struct {
	mode          Mode
	crosshairMode CrosshairMode
	pointer       Pointer
	snap          *Snap
	panEnabled    bool
}

// New returns an idle state with the given crosshair mode and pan-enabled
// flag.
func New(crosshairMode CrosshairMode, panEnabled bool) *State {
	return &State{crosshairMode: crosshairMode, panEnabled: panEnabled}
}

func (s *State) Mode() Mode                   { return s.mode }
func (s *State) CrosshairMode() CrosshairMode { return s.crosshairMode }
func (s *State) Pointer() Pointer             { return s.pointer }
func (s *State) Snap() (Snap, bool) {
	if s.snap == nil {
		return Snap{}, false
	}
	return *s.snap, true
}

func (s *State) SetCrosshairMode(mode CrosshairMode) {
	s.crosshairMode = mode
	if mode == Hidden {
		s.PointerLeave()
	}
}

func (s *State) SetPanEnabled(enabled bool) { s.panEnabled = enabled }

// PanStart transitions Idle -> Panning, gated by the pan-enabled flag. It
// reports whether the transition happened.
func (s *State) PanStart() bool {
	if !s.panEnabled || s.mode == Panning {
		return false
	}
	s.mode = Panning
	return true
}

// PanEnd transitions Panning -> Idle. It reports whether the transition
// happened.
func (s *State) PanEnd() bool {
	if s.mode != Panning {
		return false
	}
	s.mode = Idle
	return true
}

// PointerMove updates the last known pointer position and makes the
// crosshair visible, unless crosshair_mode is Hidden (in which case it
// behaves like PointerLeave). It does not resolve a snap itself — the
// caller resolves one (via Resolver, when crosshair_mode is Magnet) and
// passes it to SetSnap/ClearSnap, since snap resolution needs access to the
// data/candle series the state machine does not own.
func (s *State) PointerMove(x, y float64) error {
	if !isFinite(x) || !isFinite(y) {
		return fmt.Errorf("%w: pointer coordinates must be finite", primitives.ErrInvalidData)
	}
	if s.crosshairMode == Hidden {
		s.PointerLeave()
		return nil
	}
	s.pointer = Pointer{X: x, Y: y, Visible: true}
	if s.crosshairMode != Magnet {
		s.snap = nil
	}
	return nil
}

// PointerLeave clears pointer visibility and any resolved snap.
func (s *State) PointerLeave() {
	s.pointer = Pointer{}
	s.snap = nil
}

// SetSnap records a resolved magnet snap for the current pointer position.
func (s *State) SetSnap(snap Snap) { s.snap = &snap }

// ClearSnap drops any resolved snap without otherwise touching pointer
// state.
func (s *State) ClearSnap() { s.snap = nil }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
