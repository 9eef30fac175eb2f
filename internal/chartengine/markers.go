package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/model"
)

// Markers returns the current marker set. The returned slice must not be
// mutated.
func (e *Engine) Markers() []model.Marker { return e.markers }

// SetMarkers replaces the marker set wholesale, validating every marker
// before committing any of them (spec §3, "markers"): an invalid marker
// leaves the prior set untouched.
func (e *Engine) SetMarkers(markers []model.Marker) error {
	for _, m := range markers {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	e.markers = append([]model.Marker(nil), markers...)
	e.markInvalid(invalidation.LevelLight, invalidation.TopicSeries)
	return nil
}

// AddMarker validates and appends a single marker, rejecting a duplicate
// id.
func (e *Engine) AddMarker(m model.Marker) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, existing := range e.markers {
		if existing.ID == m.ID {
			return validationError("marker id %q is already in use", m.ID)
		}
	}
	e.markers = append(e.markers, m)
	e.markInvalid(invalidation.LevelLight, invalidation.TopicSeries)
	return nil
}

// RemoveMarker removes a marker by id, reporting whether one was found.
func (e *Engine) RemoveMarker(id string) bool {
	for i, m := range e.markers {
		if m.ID == id {
			e.markers = append(e.markers[:i], e.markers[i+1:]...)
			e.markInvalid(invalidation.LevelLight, invalidation.TopicSeries)
			return true
		}
	}
	return false
}

// ClearMarkers removes every marker.
func (e *Engine) ClearMarkers() {
	if len(e.markers) == 0 {
		return
	}
	e.markers = nil
	e.markInvalid(invalidation.LevelLight, invalidation.TopicSeries)
}

// MarkerConfig returns the current marker glyph/label style and placement
// tuning.
func (e *Engine) MarkerConfig() MarkerConfig { return e.markerCfg }

// SetMarkerConfig replaces the marker glyph/label style and placement
// tuning (a visual-only change: Light invalidation).
func (e *Engine) SetMarkerConfig(cfg MarkerConfig) {
	e.markerCfg = cfg
	e.markInvalid(invalidation.LevelLight, invalidation.TopicStyle, invalidation.TopicSeries)
}
