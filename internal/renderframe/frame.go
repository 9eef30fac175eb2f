// Package renderframe assembles the backend-agnostic LayeredRenderFrame: an
// ordered stack of canvas layers per pane, each holding an ordered bag of
// primitives (spec §4.7). Building a frame is pure: callers pass already-
// projected geometry (from internal/projection, internal/axislayout,
// internal/labelcache) and this package only assembles and validates it.
package renderframe

import (
	"fmt"

	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/primitives"
)

// Layer is a drawing layer within a pane, in bottom-to-top drawing order.
type Layer int

const (
	Background Layer = iota
	Grid
	Series
	Overlay
	Crosshair
	Axis
	numLayers
)

func (l Layer) String() string {
	switch l {
	case Background:
		return "background"
	case Grid:
		return "grid"
	case Series:
		return "series"
	case Overlay:
		return "overlay"
	case Crosshair:
		return "crosshair"
	case Axis:
		return "axis"
	default:
		return "unknown"
	}
}

// LayerBag is an ordered bag of primitives for one layer; order within a
// bag is drawing order.
type LayerBag struct {
	Lines []primitives.Line
	Rects []primitives.Rect
	Texts []primitives.Text
}

func (b *LayerBag) appendLine(l primitives.Line)  { b.Lines = append(b.Lines, l) }
func (b *LayerBag) appendRect(r primitives.Rect)  { b.Rects = append(b.Rects, r) }
func (b *LayerBag) appendText(t primitives.Text)  { b.Texts = append(b.Texts, t) }

func (b *LayerBag) validate() error {
	for _, l := range b.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for _, r := range b.Rects {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, t := range b.Texts {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PaneFrame is one pane's full layer stack.
type PaneFrame struct {
	PaneID model.PaneID
	Layers [numLayers]LayerBag
}

// LayeredRenderFrame is the engine's renderer-agnostic output for one
// frame: the viewport plus an ordered stack of pane frames.
type LayeredRenderFrame struct {
	Viewport primitives.Viewport
	Panes    []PaneFrame
}

// New returns an empty frame with one PaneFrame per id in paneOrder.
func New(vp primitives.Viewport, paneOrder []model.PaneID) *LayeredRenderFrame {
	panes := make([]PaneFrame, len(paneOrder))
	for i, id := range paneOrder {
		panes[i] = PaneFrame{PaneID: id}
	}
	return &LayeredRenderFrame{Viewport: vp, Panes: panes}
}

func (f *LayeredRenderFrame) pane(id model.PaneID) (*PaneFrame, error) {
	for i := range f.Panes {
		if f.Panes[i].PaneID == id {
			return &f.Panes[i], nil
		}
	}
	return nil, fmt.Errorf("renderframe: unknown pane id %d", id)
}

// AppendLine adds a line primitive to (pane, layer)'s drawing order.
func (f *LayeredRenderFrame) AppendLine(paneID model.PaneID, layer Layer, l primitives.Line) error {
	p, err := f.pane(paneID)
	if err != nil {
		return err
	}
	p.Layers[layer].appendLine(l)
	return nil
}

// AppendRect adds a rect primitive to (pane, layer)'s drawing order.
func (f *LayeredRenderFrame) AppendRect(paneID model.PaneID, layer Layer, r primitives.Rect) error {
	p, err := f.pane(paneID)
	if err != nil {
		return err
	}
	p.Layers[layer].appendRect(r)
	return nil
}

// AppendText adds a text primitive to (pane, layer)'s drawing order.
func (f *LayeredRenderFrame) AppendText(paneID model.PaneID, layer Layer, t primitives.Text) error {
	p, err := f.pane(paneID)
	if err != nil {
		return err
	}
	p.Layers[layer].appendText(t)
	return nil
}

// Validate checks the viewport and every primitive in every pane/layer for
// finiteness/validity (spec §4.7 step 6).
func (f *LayeredRenderFrame) Validate() error {
	if !f.Viewport.IsValid() {
		return fmt.Errorf("%w: render frame viewport is invalid", primitives.ErrInvalidData)
	}
	for _, pane := range f.Panes {
		for _, bag := range pane.Layers {
			if err := bag.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
