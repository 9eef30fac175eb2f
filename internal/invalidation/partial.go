package invalidation

import (
	"github.com/luhouxiang/chartcore/internal/model"
	"github.com/luhouxiang/chartcore/internal/renderframe"
)

// ClipRect is a pixel-space clip rectangle for a partial repaint task,
// mirroring the backend contract's optional clip_rect (spec §6).
type ClipRect struct {
	X, Y, W, H float64
}

// Task is one unit of partial repaint work: a pane's clipped plot region
// (cleared before redraw) or the unclipped main-pane axis strip (never
// cleared, since the axis strip owns its own background already).
type Task struct {
	PaneID model.PaneID
	Layers []renderframe.Layer
	Clip   *ClipRect
	Clear  bool
}

// cursorOnlyLayers and lightLayers enumerate which canvas
// layers a given invalidation level requires repainted for a partial plan
// (spec §4.8).
var (
	cursorOnlyLayers = []renderframe.Layer{renderframe.Background, renderframe.Overlay, renderframe.Crosshair}
	lightLayers      = []renderframe.Layer{renderframe.Background, renderframe.Grid, renderframe.Series, renderframe.Overlay, renderframe.Crosshair}
)

// Plan resolves a partial-render task list for the given mask over the
// given panes, or (nil, false) when the mask requires a full render
// instead. Only multi-pane charts benefit from this path (spec §4.8):
// single-pane charts always fall back to full.
func Plan(mask Mask, panes []model.PaneLayoutRegion, mainPaneID model.PaneID, plotLeft, plotRight, axisWidth float64, requestsAutoscale bool) ([]Task, bool) {
	if mask.IsEmpty() {
		return nil, false
	}
	if len(panes) < 2 {
		return nil, false
	}
	if mask.Has(TopicTimeScale) {
		return nil, false
	}
	if requestsAutoscale {
		return nil, false
	}

	var layers []renderframe.Layer
	switch {
	case mask.Level == LevelCursor:
		layers = cursorOnlyLayers
	case mask.Level == LevelLight:
		layers = lightLayers
	default:
		return nil, false
	}

	tasks := make([]Task, 0, len(panes)+1)
	for _, region := range panes {
		tasks = append(tasks, Task{
			PaneID: region.PaneID,
			Layers: layers,
			Clip:   &ClipRect{X: plotLeft, Y: region.PlotTop, W: plotRight - plotLeft, H: region.Height()},
			Clear:  true,
		})
	}
	tasks = append(tasks, Task{
		PaneID: mainPaneID,
		Layers: []renderframe.Layer{renderframe.Axis},
		Clip:   nil,
		Clear:  false,
	})
	if len(tasks) == 0 {
		return nil, false
	}
	return tasks, true
}
