package chartengine

import (
	"github.com/luhouxiang/chartcore/internal/interaction"
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/logger"
	"github.com/luhouxiang/chartcore/internal/primitives"
	"github.com/luhouxiang/chartcore/internal/renderframe"
)

// EventKind enumerates the plugin event vocabulary (spec §4.9).
type EventKind int

const (
	EventDataUpdated EventKind = iota
	EventCandlesUpdated
	EventVisibleRangeChanged
	EventPointerMoved
	EventPointerLeft
	EventPanStarted
	EventPanEnded
	EventRendered
)

func (k EventKind) String() string {
	switch k {
	case EventDataUpdated:
		return "data_updated"
	case EventCandlesUpdated:
		return "candles_updated"
	case EventVisibleRangeChanged:
		return "visible_range_changed"
	case EventPointerMoved:
		return "pointer_moved"
	case EventPointerLeft:
		return "pointer_left"
	case EventPanStarted:
		return "pan_started"
	case EventPanEnded:
		return "pan_ended"
	case EventRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Context is the read-only state snapshot handed to a plugin's on_event
// callback (spec §4.9): viewport, ranges, sizes, interaction, crosshair.
// It is a value copy so a plugin cannot retain a live handle into engine
// state.
type Context struct {
	Viewport      primitives.Viewport
	VisibleStart  float64
	VisibleEnd    float64
	FullStart     float64
	FullEnd       float64
	PriceMin      float64
	PriceMax      float64
	InteractionMode interaction.Mode
	CrosshairMode   interaction.CrosshairMode
	Pointer         interaction.Pointer
	Snap            interaction.Snap
	HasSnap         bool
}

// Event is one dispatched occurrence: a kind plus an optional payload (e.g.
// the event kind's own distinguishing data). Detail is intentionally
// loosely typed since different event kinds carry different shapes; most
// carry nothing beyond the context.
type Event struct {
	Kind   EventKind
	Detail any
}

// RenderedDetail is the EventRendered payload: the frame that was just
// submitted to the backend, the invalidation level that triggered it, and
// whether the partial-render path was taken (spec §4.8).
type RenderedDetail struct {
	Frame   *renderframe.LayeredRenderFrame
	Level   invalidation.Level
	Partial bool
}

// Plugin is the engine's typed extension point (spec §4.9, §6). Plugins
// are boxed objects in an ordered registration list; the dispatcher never
// re-enters the engine during dispatch and never lets a plugin's panic or
// returned state affect core state.
type Plugin interface {
	ID() string
	OnEvent(event Event, ctx Context)
}

// RegisterPlugin appends a plugin to the dispatch list, in registration
// order. The id must be non-empty and unique (spec §4.9).
func (e *Engine) RegisterPlugin(p Plugin) error {
	if p == nil || p.ID() == "" {
		return validationError("plugin id must be non-empty")
	}
	for _, existing := range e.plugins {
		if existing.ID() == p.ID() {
			return validationError("plugin id %q is already registered", p.ID())
		}
	}
	e.plugins = append(e.plugins, p)
	return nil
}

// UnregisterPlugin removes a plugin by id, reporting whether one was
// found.
func (e *Engine) UnregisterPlugin(id string) bool {
	for i, p := range e.plugins {
		if p.ID() == id {
			e.plugins = append(e.plugins[:i], e.plugins[i+1:]...)
			return true
		}
	}
	return false
}

// dispatch fires an event to every registered plugin in registration
// order. A plugin callback is fire-and-forget: a panic is recovered and
// discarded so one failing plugin cannot break dispatch to the rest or
// back-propagate into engine state (spec §4.9, §7).
func (e *Engine) dispatch(kind EventKind, detail any) {
	if len(e.plugins) == 0 {
		return
	}
	ctx := e.snapshotContext()
	ev := Event{Kind: kind, Detail: detail}
	for _, p := range e.plugins {
		e.dispatchOne(p, ev, ctx)
	}
}

func (e *Engine) dispatchOne(p Plugin, ev Event, ctx Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("plugin panicked during dispatch", "plugin", p.ID(), "event", ev.Kind.String(), "recovered", r)
		}
	}()
	p.OnEvent(ev, ctx)
}

func (e *Engine) snapshotContext() Context {
	vr := e.ts.VisibleRange()
	fr := e.ts.FullRange()
	pmin, pmax := e.ps.Domain()
	snap, hasSnap := e.interactionState.Snap()
	return Context{
		Viewport:        e.viewport,
		VisibleStart:    vr.Start,
		VisibleEnd:      vr.End,
		FullStart:       fr.Start,
		FullEnd:         fr.End,
		PriceMin:        pmin,
		PriceMax:        pmax,
		InteractionMode: e.interactionState.Mode(),
		CrosshairMode:   e.interactionState.CrosshairMode(),
		Pointer:         e.interactionState.Pointer(),
		Snap:            snap,
		HasSnap:         hasSnap,
	}
}
