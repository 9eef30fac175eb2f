package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/model"
)

// Panes returns the pane collection in display order.
func (e *Engine) Panes() []model.Pane { return e.panes.Panes() }

// MainPaneID returns the id of the always-present main pane.
func (e *Engine) MainPaneID() model.PaneID { return e.panes.MainPaneID() }

// CreatePane appends a non-main pane with the given stretch factor and
// marks a Full/PaneLayout invalidation (spec §4.8, "pane creation/removal
// → Full").
func (e *Engine) CreatePane(stretchFactor float64) (model.PaneID, error) {
	id, err := e.panes.CreatePane(stretchFactor)
	if err != nil {
		return 0, err
	}
	e.markInvalid(invalidation.LevelFull, invalidation.TopicPaneLayout)
	return id, nil
}

// RemovePane removes a non-main pane; removing the main pane is rejected
// (spec §3).
func (e *Engine) RemovePane(id model.PaneID) (bool, error) {
	removed, err := e.panes.RemovePane(id)
	if err != nil {
		return false, err
	}
	if removed {
		e.markInvalid(invalidation.LevelFull, invalidation.TopicPaneLayout)
	}
	return removed, nil
}

// SetPaneStretchFactor updates a pane's stretch factor.
func (e *Engine) SetPaneStretchFactor(id model.PaneID, stretchFactor float64) (bool, error) {
	found, err := e.panes.SetStretchFactor(id, stretchFactor)
	if err != nil {
		return false, err
	}
	if found {
		e.markInvalid(invalidation.LevelFull, invalidation.TopicPaneLayout)
	}
	return found, nil
}

// PaneLayoutRegions resolves each pane's pixel band within [plotTop,
// plotBottom].
func (e *Engine) PaneLayoutRegions(plotTop, plotBottom float64) []model.PaneLayoutRegion {
	return e.panes.LayoutRegions(plotTop, plotBottom)
}
