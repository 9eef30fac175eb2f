package model

import (
	"fmt"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// PaneID identifies a pane. Pane ids are plain integers, not pointers — no
// cyclic references are needed anywhere in the engine's ownership model.
type PaneID uint32

// Pane describes one horizontal band of the plot area.
type Pane struct {
	ID            PaneID
	IsMain        bool
	StretchFactor float64
}

// PaneLayoutRegion is a pane's resolved pixel band.
type PaneLayoutRegion struct {
	PaneID    PaneID
	PlotTop   float64
	PlotBottom float64
}

func (r PaneLayoutRegion) Height() float64 {
	if h := r.PlotBottom - r.PlotTop; h > 0 {
		return h
	}
	return 0
}

// PaneCollection is the ordered set of panes. Exactly one main pane exists at
// all times and it cannot be removed (spec §3).
type PaneCollection struct {
	panes  []Pane
	nextID PaneID
}

// NewPaneCollection returns a collection with a single main pane, id 0.
func NewPaneCollection() *PaneCollection {
	return &PaneCollection{
		panes:  []Pane{{ID: 0, IsMain: true, StretchFactor: 1}},
		nextID: 1,
	}
}

// Panes returns the panes in display order. The returned slice must not be
// mutated by the caller.
func (c *PaneCollection) Panes() []Pane { return c.panes }

func (c *PaneCollection) MainPaneID() PaneID {
	for _, p := range c.panes {
		if p.IsMain {
			return p.ID
		}
	}
	return 0
}

func (c *PaneCollection) Contains(id PaneID) bool {
	for _, p := range c.panes {
		if p.ID == id {
			return true
		}
	}
	return false
}

func validateStretchFactor(f float64) error {
	if !isFinite(f) || f <= 0 {
		return fmt.Errorf("%w: pane stretch_factor must be finite and > 0, got %v", primitives.ErrInvalidData, f)
	}
	return nil
}

// CreatePane appends a non-main pane and returns its id.
func (c *PaneCollection) CreatePane(stretchFactor float64) (PaneID, error) {
	if err := validateStretchFactor(stretchFactor); err != nil {
		return 0, err
	}
	id := c.nextID
	c.nextID++
	c.panes = append(c.panes, Pane{ID: id, IsMain: false, StretchFactor: stretchFactor})
	return id, nil
}

// RemovePane removes a non-main pane. Removing the main pane is rejected. If
// removal empties the collection (can only happen by removing the last
// remaining pane, which is always main and thus rejected above) a fresh main
// pane is reinstated — this mirrors the teacher's defensive "never end up
// with zero panes" invariant even though the current rules make it
// unreachable.
func (c *PaneCollection) RemovePane(id PaneID) (bool, error) {
	if id == c.MainPaneID() {
		return false, fmt.Errorf("%w: cannot remove main pane", primitives.ErrInvalidData)
	}
	idx := -1
	for i, p := range c.panes {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	c.panes = append(c.panes[:idx], c.panes[idx+1:]...)
	if len(c.panes) == 0 {
		c.panes = []Pane{{ID: 0, IsMain: true, StretchFactor: 1}}
		if c.nextID < 1 {
			c.nextID = 1
		}
	}
	return true, nil
}

// SetStretchFactor updates a pane's stretch factor in place.
func (c *PaneCollection) SetStretchFactor(id PaneID, stretchFactor float64) (bool, error) {
	if err := validateStretchFactor(stretchFactor); err != nil {
		return false, err
	}
	for i := range c.panes {
		if c.panes[i].ID == id {
			c.panes[i].StretchFactor = stretchFactor
			return true, nil
		}
	}
	return false, nil
}

// NormalizeStretchFactors rescales every pane's stretch factor so they sum to
// 1, falling back to an equal split when the sum is non-finite or non-
// positive (e.g. every factor was corrupted to 0).
func (c *PaneCollection) NormalizeStretchFactors() {
	sum := 0.0
	for _, p := range c.panes {
		if isFinite(p.StretchFactor) && p.StretchFactor > 0 {
			sum += p.StretchFactor
		}
	}
	n := len(c.panes)
	if n == 0 {
		return
	}
	if !isFinite(sum) || sum <= 0 {
		equal := 1.0 / float64(n)
		for i := range c.panes {
			c.panes[i].StretchFactor = equal
		}
		return
	}
	for i := range c.panes {
		if isFinite(c.panes[i].StretchFactor) && c.panes[i].StretchFactor > 0 {
			c.panes[i].StretchFactor /= sum
		} else {
			c.panes[i].StretchFactor = 0
		}
	}
}

// LayoutRegions splits [plotTop, plotBottom] top-to-bottom proportionally to
// each pane's normalized stretch factor.
func (c *PaneCollection) LayoutRegions(plotTop, plotBottom float64) []PaneLayoutRegion {
	if len(c.panes) == 0 {
		return nil
	}
	safeTop := 0.0
	if isFinite(plotTop) {
		safeTop = max(plotTop, 0)
	}
	safeBottom := safeTop
	if isFinite(plotBottom) {
		safeBottom = max(plotBottom, safeTop)
	}
	totalHeight := max(safeBottom-safeTop, 0)
	if totalHeight <= 0 {
		out := make([]PaneLayoutRegion, len(c.panes))
		for i, p := range c.panes {
			out[i] = PaneLayoutRegion{PaneID: p.ID, PlotTop: safeTop, PlotBottom: safeTop}
		}
		return out
	}

	weights := make([]float64, len(c.panes))
	weightSum := 0.0
	for i, p := range c.panes {
		if isFinite(p.StretchFactor) && p.StretchFactor > 0 {
			weights[i] = p.StretchFactor
			weightSum += p.StretchFactor
		}
	}
	if !isFinite(weightSum) || weightSum <= 0 {
		equal := 1.0 / float64(len(c.panes))
		for i := range weights {
			weights[i] = equal
		}
	} else {
		for i := range weights {
			weights[i] /= weightSum
		}
	}

	out := make([]PaneLayoutRegion, 0, len(c.panes))
	cursor := safeTop
	lastIdx := len(c.panes) - 1
	for i, p := range c.panes {
		nextBottom := safeBottom
		if i != lastIdx {
			nextBottom = clamp(cursor+totalHeight*weights[i], cursor, safeBottom)
		}
		out = append(out, PaneLayoutRegion{PaneID: p.ID, PlotTop: cursor, PlotBottom: nextBottom})
		cursor = nextBottom
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
