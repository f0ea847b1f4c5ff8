package wave

import "time"

// State is the origin lifecycle state.
type State int

const (
	// Idle means no origin has ever been set; generation does not run.
	Idle State = iota
	// Active means an origin is set and generation runs every tick.
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Origin is the spatial and temporal reference point of the wave.
type Origin struct {
	X, Y int
	T0   time.Time
}

// Emitter tracks the origin lifecycle. The zero value is Idle.
type Emitter struct {
	origin Origin
	state  State
}

// Trigger sets a new origin. It is valid in both states and restarts the
// wave from (x, y) at now.
func (e *Emitter) Trigger(x, y int, now time.Time) {
	e.origin = Origin{X: x, Y: y, T0: now}
	e.state = Active
}

// Reset returns the emitter to Idle.
func (e *Emitter) Reset() {
	*e = Emitter{}
}

// State reports the current lifecycle state.
func (e *Emitter) State() State { return e.state }

// Origin returns the current origin and whether one is set.
func (e *Emitter) Origin() (Origin, bool) {
	return e.origin, e.state == Active
}

// Elapsed returns the seconds since the origin was set. Clocks that step
// backwards yield 0 rather than a negative time.
func (e *Emitter) Elapsed(now time.Time) (float64, bool) {
	if e.state != Active {
		return 0, false
	}
	dt := now.Sub(e.origin.T0).Seconds()
	if dt < 0 {
		dt = 0
	}
	return dt, true
}
