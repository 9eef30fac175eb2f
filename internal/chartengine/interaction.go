package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/interaction"
	"github.com/luhouxiang/chartcore/internal/invalidation"
)

// PointerMove updates the last known pointer position and, in Magnet
// crosshair mode, resolves a nearest-data snap (spec §4.3).
func (e *Engine) PointerMove(x, y float64) error {
	if err := e.interactionState.PointerMove(x, y); err != nil {
		return err
	}
	if e.interactionState.CrosshairMode() == interaction.Magnet {
		resolver := interaction.NewResolver(e.ts, e.ps, e.width(), e.plotHeight(), e.dynamicPriceBase())
		if snap, ok := resolver.ResolveSnap(x, e.data, e.candles); ok {
			e.interactionState.SetSnap(snap)
		} else {
			e.interactionState.ClearSnap()
		}
	}
	e.markInvalid(invalidation.LevelCursor, invalidation.TopicCursor)
	e.dispatch(EventPointerMoved, nil)
	return nil
}

// PointerLeave clears the pointer position and any resolved snap.
func (e *Engine) PointerLeave() {
	e.interactionState.PointerLeave()
	e.markInvalid(invalidation.LevelCursor, invalidation.TopicCursor)
	e.dispatch(EventPointerLeft, nil)
}

// PanStart transitions the interaction state machine into Panning, gated
// by the pan-enabled input behavior.
func (e *Engine) PanStart() bool {
	started := e.interactionState.PanStart()
	if started {
		e.dispatch(EventPanStarted, nil)
	}
	return started
}

// PanEnd transitions back to Idle.
func (e *Engine) PanEnd() bool {
	ended := e.interactionState.PanEnd()
	if ended {
		e.dispatch(EventPanEnded, nil)
	}
	return ended
}

// SetCrosshairMode switches between Magnet, Normal, and Hidden.
func (e *Engine) SetCrosshairMode(mode interaction.CrosshairMode) {
	e.interactionState.SetCrosshairMode(mode)
	e.markInvalid(invalidation.LevelCursor, invalidation.TopicCursor)
}

// CrosshairMode returns the current crosshair mode.
func (e *Engine) CrosshairMode() interaction.CrosshairMode { return e.interactionState.CrosshairMode() }

// InteractionMode returns Idle or Panning.
func (e *Engine) InteractionMode() interaction.Mode { return e.interactionState.Mode() }

// Pointer returns the last known pointer position.
func (e *Engine) Pointer() interaction.Pointer { return e.interactionState.Pointer() }

// Snap returns the resolved crosshair snap, if any.
func (e *Engine) Snap() (interaction.Snap, bool) { return e.interactionState.Snap() }

// SetPanEnabled toggles whether PanStart can transition into Panning.
func (e *Engine) SetPanEnabled(enabled bool) {
	e.inputCfg.PanEnabled = enabled
	e.interactionState.SetPanEnabled(enabled)
}

// SetScrollZoomEnabled toggles whether WheelZoomTimeVisible has effect.
func (e *Engine) SetScrollZoomEnabled(enabled bool) { e.inputCfg.ScrollZoomEnabled = enabled }

// SetPinchZoomEnabled toggles whether PinchZoomTimeVisible has effect.
func (e *Engine) SetPinchZoomEnabled(enabled bool) { e.inputCfg.PinchZoomEnabled = enabled }

// SetKineticPanEnabled toggles whether StartKineticPan has effect.
func (e *Engine) SetKineticPanEnabled(enabled bool) { e.inputCfg.KineticPanEnabled = enabled }

// StartKineticPan begins kinetic decay at the given signed velocity
// (time-per-second), gated by the kinetic-pan-enabled input behavior.
func (e *Engine) StartKineticPan(velocity float64) error {
	if !e.inputCfg.KineticPanEnabled {
		return nil
	}
	return e.kinetic.Start(velocity)
}

// StepKineticPan advances the kinetic integrator by dt seconds and applies
// the resulting displacement to the visible time range, reporting whether
// the integrator is still active (spec §4.3, "Kinetic pan").
func (e *Engine) StepKineticPan(dt float64) (stillActive bool, err error) {
	displacement, active, err := e.kinetic.Step(dt)
	if err != nil {
		return false, err
	}
	if displacement != 0 {
		e.PanTimeVisibleByDelta(displacement)
	}
	return active, nil
}

// StopKineticPan deactivates the kinetic integrator immediately.
func (e *Engine) StopKineticPan() { e.kinetic.Stop() }

// KineticPanActive reports whether the kinetic integrator is currently
// decaying.
func (e *Engine) KineticPanActive() bool { return e.kinetic.Active() }

func (e *Engine) plotHeight() float64 {
	return e.height() - e.style.TimeAxisHeightPx
}

// dynamicPriceBase resolves the base price used by Percentage/
// IndexedTo100 transforms when no explicit transformed base is configured,
// per the configured TransformedBaseSource (spec §4.2): the first or last
// sample across candles (close) and points (y), optionally restricted to
// the visible time window with a fall back to the full series when the
// window currently holds nothing.
func (e *Engine) dynamicPriceBase() float64 {
	switch e.transformedBase.DynamicSource {
	case TransformedBaseFirstData:
		if v, ok := e.extremePrice(false, false); ok {
			return v
		}
	case TransformedBaseFirstVisibleData:
		if v, ok := e.extremePrice(false, true); ok {
			return v
		}
		if v, ok := e.extremePrice(false, false); ok {
			return v
		}
	case TransformedBaseLastVisibleData:
		if v, ok := e.extremePrice(true, true); ok {
			return v
		}
		if v, ok := e.extremePrice(true, false); ok {
			return v
		}
	default: // TransformedBaseLastData
		if v, ok := e.extremePrice(true, false); ok {
			return v
		}
	}
	return 0
}

// extremePrice scans points and candles (by close) together for the
// earliest (pickLast=false) or latest (pickLast=true) sample by time,
// optionally restricted to the current visible range. Zero and non-finite
// candidates are rejected, matching §4.2's base-value validity rule.
func (e *Engine) extremePrice(pickLast, restrictVisible bool) (float64, bool) {
	var vstart, vend float64
	if restrictVisible {
		v := e.ts.VisibleRange()
		vstart, vend = v.Start, v.End
	}
	type candidate struct{ t, p float64 }
	var best candidate
	found := false
	consider := func(t, p float64) {
		if restrictVisible && (t < vstart || t > vend) {
			return
		}
		if !found {
			best, found = candidate{t, p}, true
			return
		}
		if pickLast {
			if t >= best.t {
				best = candidate{t, p}
			}
		} else if t < best.t {
			best = candidate{t, p}
		}
	}
	for _, p := range e.data {
		consider(p.X, p.Y)
	}
	for _, c := range e.candles {
		consider(c.Time, c.Close)
	}
	if !found || !isFinite(best.p) || best.p == 0 {
		return 0, false
	}
	return best.p, true
}
