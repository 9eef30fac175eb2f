package interaction

import (
	"fmt"
	"math"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// KineticPan integrates a decaying pan velocity across Step calls until it
// drops below a stop threshold (spec §4.3, "Kinetic pan").
type KineticPan struct {
	decayPerSecond  float64
	stopVelocityAbs float64
	velocity        float64
	active          bool
}

// NewKineticPan validates its tuning parameters: decayPerSecond in (0,1),
// stopVelocityAbs > 0.
func NewKineticPan(decayPerSecond, stopVelocityAbs float64) (*KineticPan, error) {
	if !isFinite(decayPerSecond) || decayPerSecond <= 0 || decayPerSecond >= 1 {
		return nil, fmt.Errorf("%w: kinetic pan decay_per_second must be in (0,1), got %v", primitives.ErrInvalidData, decayPerSecond)
	}
	if !isFinite(stopVelocityAbs) || stopVelocityAbs <= 0 {
		return nil, fmt.Errorf("%w: kinetic pan stop_velocity_abs must be finite and > 0, got %v", primitives.ErrInvalidData, stopVelocityAbs)
	}
	return &KineticPan{decayPerSecond: decayPerSecond, stopVelocityAbs: stopVelocityAbs}, nil
}

func (k *KineticPan) Active() bool    { return k.active }
func (k *KineticPan) Velocity() float64 { return k.velocity }

// Start begins kinetic decay at the given signed velocity (time units per
// second). A zero velocity immediately deactivates.
func (k *KineticPan) Start(velocity float64) error {
	if !isFinite(velocity) {
		return fmt.Errorf("%w: kinetic pan velocity must be finite", primitives.ErrInvalidData)
	}
	k.velocity = velocity
	k.active = velocity != 0
	return nil
}

// Stop deactivates the integrator immediately.
func (k *KineticPan) Stop() {
	k.active = false
	k.velocity = 0
}

// Step advances the integrator by dt seconds, returning the time
// displacement to apply via pan_time_visible_by and whether the integrator
// is still active afterward.
func (k *KineticPan) Step(dt float64) (displacement float64, stillActive bool, err error) {
	if !isFinite(dt) || dt <= 0 {
		return 0, k.active, fmt.Errorf("%w: kinetic pan step delta must be finite and > 0, got %v", primitives.ErrInvalidData, dt)
	}
	if !k.active {
		return 0, false, nil
	}
	displacement = k.velocity * dt
	k.velocity *= math.Pow(k.decayPerSecond, dt)
	if math.Abs(k.velocity) < k.stopVelocityAbs {
		k.active = false
	}
	return displacement, k.active, nil
}
