package interaction

import "testing"

func TestPanStartGatedByPanEnabled(t *testing.T) {
	s := New(Normal, false)
	if s.PanStart() {
		t.Fatalf("PanStart() = true, want false when pan disabled")
	}
	if s.Mode() != Idle {
		t.Fatalf("Mode() = %v, want Idle", s.Mode())
	}
}

func TestPanStartEndRoundTrip(t *testing.T) {
	s := New(Normal, true)
	if !s.PanStart() {
		t.Fatalf("PanStart() = false, want true")
	}
	if s.Mode() != Panning {
		t.Fatalf("Mode() = %v, want Panning", s.Mode())
	}
	if !s.PanEnd() {
		t.Fatalf("PanEnd() = false, want true")
	}
	if s.Mode() != Idle {
		t.Fatalf("Mode() = %v, want Idle", s.Mode())
	}
}

func TestPointerMoveHiddenModeActsLikeLeave(t *testing.T) {
	s := New(Hidden, false)
	if err := s.PointerMove(10, 20); err != nil {
		t.Fatalf("PointerMove() error = %v", err)
	}
	if s.Pointer().Visible {
		t.Fatalf("Pointer().Visible = true, want false in Hidden mode")
	}
}

func TestPointerMoveNormalModeClearsSnap(t *testing.T) {
	s := New(Normal, false)
	s.SetSnap(Snap{X: 1, Y: 2})
	if err := s.PointerMove(5, 5); err != nil {
		t.Fatalf("PointerMove() error = %v", err)
	}
	if _, ok := s.Snap(); ok {
		t.Fatalf("Snap() ok = true, want false in Normal mode after move")
	}
}

func TestKineticPanStepDecaysAndDeactivates(t *testing.T) {
	k, err := NewKineticPan(0.5, 1.0)
	if err != nil {
		t.Fatalf("NewKineticPan() error = %v", err)
	}
	if err := k.Start(10); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	var displacement float64
	active := true
	for i := 0; i < 20 && active; i++ {
		var d float64
		var err error
		d, active, err = k.Step(1)
		if err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		displacement += d
	}
	if active {
		t.Fatalf("kinetic pan still active after 20 steps of decay 0.5, want deactivated")
	}
	if displacement <= 0 {
		t.Fatalf("total displacement = %v, want > 0", displacement)
	}
}

func TestKineticPanZeroVelocityDeactivatesImmediately(t *testing.T) {
	k, _ := NewKineticPan(0.5, 1.0)
	if err := k.Start(0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if k.Active() {
		t.Fatalf("Active() = true, want false after Start(0)")
	}
}

func TestNewKineticPanRejectsBadDecay(t *testing.T) {
	if _, err := NewKineticPan(1.5, 1.0); err == nil {
		t.Fatalf("NewKineticPan() error = nil, want non-nil for decay >= 1")
	}
	if _, err := NewKineticPan(0, 1.0); err == nil {
		t.Fatalf("NewKineticPan() error = nil, want non-nil for decay = 0")
	}
}
