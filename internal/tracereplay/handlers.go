package tracereplay

import (
	"github.com/luhouxiang/chartcore/internal/chartengine"
)

// Built-in operation names understood by RegisterEngineHandlers.
const (
	OpSetTimeVisibleRange     = "set_time_visible_range"
	OpResetTimeVisibleRange   = "reset_time_visible_range"
	OpPanTimeVisibleByDelta   = "pan_time_visible_by_delta"
	OpPanTimeVisibleByPixels  = "pan_time_visible_by_pixels"
	OpZoomTimeVisibleAround   = "zoom_time_visible_around_pixel"
	OpWheelZoomTimeVisible    = "wheel_zoom_time_visible"
	OpPinchZoomTimeVisible    = "pinch_zoom_time_visible"
	OpFitTimeToData           = "fit_time_to_data"
	OpPointerMove             = "pointer_move"
	OpPointerLeave            = "pointer_leave"
	OpPanStart                = "pan_start"
	OpPanEnd                  = "pan_end"
	OpStartKineticPan         = "start_kinetic_pan"
	OpStepKineticPan          = "step_kinetic_pan"
	OpStopKineticPan          = "stop_kinetic_pan"
	OpAutoscalePriceFromData  = "autoscale_price_from_data"
	OpAutoscalePriceFromVis   = "autoscale_price_from_visible_data"
	OpAutoscaleFromCandles    = "autoscale_price_from_candles"
	OpAutoscaleFromVisCandles = "autoscale_price_from_visible_candles"
)

// RegisterEngineHandlers binds every built-in op name above to the matching
// chartengine.Engine method, so a recorded Command stream of interaction
// and navigation events can be replayed against e without the caller
// hand-wiring each op. Handlers that would otherwise discard a per-call
// return value (e.g. FitTimeToData's bool, StepKineticPan's bool) ignore it
// here: Play's contract is "apply the command", not "assert its outcome".
func RegisterEngineHandlers(p *Player, e *chartengine.Engine) {
	p.Register(OpSetTimeVisibleRange, func(args []float64) error {
		if err := requireArgs(OpSetTimeVisibleRange, args, 2); err != nil {
			return err
		}
		return e.SetTimeVisibleRange(args[0], args[1])
	})
	p.Register(OpResetTimeVisibleRange, func(args []float64) error {
		if err := requireArgs(OpResetTimeVisibleRange, args, 0); err != nil {
			return err
		}
		e.ResetTimeVisibleRange()
		return nil
	})
	p.Register(OpPanTimeVisibleByDelta, func(args []float64) error {
		if err := requireArgs(OpPanTimeVisibleByDelta, args, 1); err != nil {
			return err
		}
		e.PanTimeVisibleByDelta(args[0])
		return nil
	})
	p.Register(OpPanTimeVisibleByPixels, func(args []float64) error {
		if err := requireArgs(OpPanTimeVisibleByPixels, args, 1); err != nil {
			return err
		}
		e.PanTimeVisibleByPixels(args[0])
		return nil
	})
	p.Register(OpZoomTimeVisibleAround, func(args []float64) error {
		if err := requireArgs(OpZoomTimeVisibleAround, args, 3); err != nil {
			return err
		}
		e.ZoomTimeVisibleAroundPixel(args[0], args[1], args[2])
		return nil
	})
	p.Register(OpWheelZoomTimeVisible, func(args []float64) error {
		if err := requireArgs(OpWheelZoomTimeVisible, args, 3); err != nil {
			return err
		}
		e.WheelZoomTimeVisible(args[0], args[1], args[2])
		return nil
	})
	p.Register(OpPinchZoomTimeVisible, func(args []float64) error {
		if err := requireArgs(OpPinchZoomTimeVisible, args, 3); err != nil {
			return err
		}
		e.PinchZoomTimeVisible(args[0], args[1], args[2])
		return nil
	})
	p.Register(OpFitTimeToData, func(args []float64) error {
		if err := requireArgs(OpFitTimeToData, args, 0); err != nil {
			return err
		}
		_ = e.FitTimeToData()
		return nil
	})
	p.Register(OpPointerMove, func(args []float64) error {
		if err := requireArgs(OpPointerMove, args, 2); err != nil {
			return err
		}
		return e.PointerMove(args[0], args[1])
	})
	p.Register(OpPointerLeave, func(args []float64) error {
		if err := requireArgs(OpPointerLeave, args, 0); err != nil {
			return err
		}
		e.PointerLeave()
		return nil
	})
	p.Register(OpPanStart, func(args []float64) error {
		if err := requireArgs(OpPanStart, args, 0); err != nil {
			return err
		}
		_ = e.PanStart()
		return nil
	})
	p.Register(OpPanEnd, func(args []float64) error {
		if err := requireArgs(OpPanEnd, args, 0); err != nil {
			return err
		}
		_ = e.PanEnd()
		return nil
	})
	p.Register(OpStartKineticPan, func(args []float64) error {
		if err := requireArgs(OpStartKineticPan, args, 1); err != nil {
			return err
		}
		return e.StartKineticPan(args[0])
	})
	p.Register(OpStepKineticPan, func(args []float64) error {
		if err := requireArgs(OpStepKineticPan, args, 1); err != nil {
			return err
		}
		_, err := e.StepKineticPan(args[0])
		return err
	})
	p.Register(OpStopKineticPan, func(args []float64) error {
		if err := requireArgs(OpStopKineticPan, args, 0); err != nil {
			return err
		}
		e.StopKineticPan()
		return nil
	})
	p.Register(OpAutoscalePriceFromData, func(args []float64) error {
		if err := requireArgs(OpAutoscalePriceFromData, args, 0); err != nil {
			return err
		}
		return e.AutoscalePriceFromData()
	})
	p.Register(OpAutoscalePriceFromVis, func(args []float64) error {
		if err := requireArgs(OpAutoscalePriceFromVis, args, 0); err != nil {
			return err
		}
		return e.AutoscalePriceFromVisibleData()
	})
	p.Register(OpAutoscaleFromCandles, func(args []float64) error {
		if err := requireArgs(OpAutoscaleFromCandles, args, 0); err != nil {
			return err
		}
		return e.AutoscalePriceFromCandles()
	})
	p.Register(OpAutoscaleFromVisCandles, func(args []float64) error {
		if err := requireArgs(OpAutoscaleFromVisCandles, args, 0); err != nil {
			return err
		}
		return e.AutoscalePriceFromVisibleCandles()
	})
}
