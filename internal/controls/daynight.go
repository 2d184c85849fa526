package controls

import "time"

// DefaultTransition is how long a day/night switch takes.
const DefaultTransition = 3 * time.Second

// DayNight holds the scene-lighting state of one session. The renderer reads
// Light each frame; the core only advances the transition.
type DayNight struct {
	Night      bool // Target phase of the current or last transition
	Animating  bool
	Transition time.Duration

	elapsed time.Duration
}

// NewDayNight starts in full daylight.
func NewDayNight() *DayNight {
	return &DayNight{Transition: DefaultTransition}
}

// Toggle starts a transition to the other phase. It is ignored while a
// transition is already running and reports whether one was started.
func (d *DayNight) Toggle() bool {
	if d.Animating {
		return false
	}
	d.Night = !d.Night
	d.Animating = true
	d.elapsed = 0
	return true
}

// Advance moves the running transition forward by dt.
func (d *DayNight) Advance(dt time.Duration) {
	if !d.Animating {
		return
	}
	d.elapsed += dt
	if d.Transition <= 0 || d.elapsed >= d.Transition {
		d.elapsed = d.Transition
		d.Animating = false
	}
}

// Light returns the daylight level: 1 at noon, 0 at night.
func (d *DayNight) Light() float64 {
	p := 1.0
	if d.Animating && d.Transition > 0 {
		p = float64(d.elapsed) / float64(d.Transition)
	}
	if d.Night {
		return 1 - p
	}
	return p
}
