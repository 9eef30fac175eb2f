package primitives

import (
	"math"
	"testing"
)

func TestColorValidateRejectsOutOfRange(t *testing.T) {
	c := RGBA(1.2, 0, 0, 1)
	if err := c.Validate(); err == nil {
		t.Fatalf("Validate() error = nil, want non-nil for red=1.2")
	}
}

func TestColorValidateRejectsNaN(t *testing.T) {
	c := RGB(math.NaN(), 0, 0)
	if err := c.Validate(); err == nil {
		t.Fatalf("Validate() error = nil, want non-nil for NaN channel")
	}
}

func TestLineValidateRejectsZeroStrokeWidth(t *testing.T) {
	l := Line{X1: 0, Y1: 0, X2: 10, Y2: 10, StrokeWidth: 0, Color: RGB(0, 0, 0)}
	if err := l.Validate(); err == nil {
		t.Fatalf("Validate() error = nil, want non-nil for stroke_width=0")
	}
}

func TestTextValidateRejectsEmpty(t *testing.T) {
	tx := Text{Value: "", X: 0, Y: 0, FontSizePx: 10, Color: RGB(0, 0, 0)}
	if err := tx.Validate(); err == nil {
		t.Fatalf("Validate() error = nil, want non-nil for empty text")
	}
}

func TestViewportIsValid(t *testing.T) {
	if (Viewport{Width: 0, Height: 500}).IsValid() {
		t.Fatalf("IsValid() = true, want false for width=0")
	}
	if !(Viewport{Width: 800, Height: 500}).IsValid() {
		t.Fatalf("IsValid() = false, want true for 800x500")
	}
}
