// Package primitives defines the backend-agnostic draw commands a rasterizer
// consumes: colors, lines, rectangles, text, and the viewport they are drawn
// into. Every type here is a flat value struct with an explicit Validate
// method; nothing here talks to a concrete rasterizer.
package primitives

import (
	"fmt"
	"math"
)

// Color is an RGBA color with channels normalized to [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// RGB builds an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA builds a color with an explicit alpha channel.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Validate reports whether every channel is finite and within [0, 1].
func (c Color) Validate() error {
	for name, v := range map[string]float64{"red": c.R, "green": c.G, "blue": c.B, "alpha": c.A} {
		if !isFinite(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: color channel %q must be finite and in [0,1], got %v", ErrInvalidData, name, v)
		}
	}
	return nil
}

// LineStrokeStyle selects the dash pattern a line is drawn with.
type LineStrokeStyle int

const (
	StrokeSolid LineStrokeStyle = iota
	StrokeDashed
	StrokeDotted
)

func (s LineStrokeStyle) String() string {
	switch s {
	case StrokeSolid:
		return "solid"
	case StrokeDashed:
		return "dashed"
	case StrokeDotted:
		return "dotted"
	default:
		return "unknown"
	}
}

// Line is a single straight stroke in pixel space.
type Line struct {
	X1, Y1      float64
	X2, Y2      float64
	StrokeWidth float64
	Color       Color
	Style       LineStrokeStyle
}

func (l Line) Validate() error {
	if !isFinite(l.X1) || !isFinite(l.Y1) || !isFinite(l.X2) || !isFinite(l.Y2) {
		return fmt.Errorf("%w: line coordinates must be finite", ErrInvalidData)
	}
	if !isFinite(l.StrokeWidth) || l.StrokeWidth <= 0 {
		return fmt.Errorf("%w: line stroke_width must be finite and > 0, got %v", ErrInvalidData, l.StrokeWidth)
	}
	return l.Color.Validate()
}

// Rect is a filled and/or stroked rectangle in pixel space.
type Rect struct {
	X, Y         float64
	W, H         float64
	FillColor    Color
	BorderWidth  float64
	BorderColor  Color
	CornerRadius float64
}

func (r Rect) Validate() error {
	if !isFinite(r.X) || !isFinite(r.Y) || !isFinite(r.W) || !isFinite(r.H) {
		return fmt.Errorf("%w: rect geometry must be finite", ErrInvalidData)
	}
	if !isFinite(r.BorderWidth) || r.BorderWidth < 0 {
		return fmt.Errorf("%w: rect border_width must be finite and >= 0, got %v", ErrInvalidData, r.BorderWidth)
	}
	if !isFinite(r.CornerRadius) || r.CornerRadius < 0 {
		return fmt.Errorf("%w: rect corner_radius must be finite and >= 0, got %v", ErrInvalidData, r.CornerRadius)
	}
	if err := r.FillColor.Validate(); err != nil {
		return err
	}
	return r.BorderColor.Validate()
}

// TextHAlign is the horizontal alignment of a Text primitive relative to its
// anchor point X.
type TextHAlign int

const (
	AlignLeft TextHAlign = iota
	AlignCenter
	AlignRight
)

// Text is a single label draw command in pixel space.
type Text struct {
	Value      string
	X, Y       float64
	FontSizePx float64
	Color      Color
	HAlign     TextHAlign
}

func (t Text) Validate() error {
	if t.Value == "" {
		return fmt.Errorf("%w: text primitive must not be empty", ErrInvalidData)
	}
	if !isFinite(t.X) || !isFinite(t.Y) {
		return fmt.Errorf("%w: text coordinates must be finite", ErrInvalidData)
	}
	if !isFinite(t.FontSizePx) || t.FontSizePx <= 0 {
		return fmt.Errorf("%w: text font_size_px must be finite and > 0, got %v", ErrInvalidData, t.FontSizePx)
	}
	return t.Color.Validate()
}

// Viewport is the pixel-space drawing surface size.
type Viewport struct {
	Width  float64
	Height float64
}

// IsValid reports whether both dimensions are finite and strictly positive.
func (v Viewport) IsValid() bool {
	return isFinite(v.Width) && isFinite(v.Height) && v.Width > 0 && v.Height > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
