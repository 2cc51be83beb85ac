package sheet

import (
	"time"

	"github.com/go-drift/bottomsheet/pkg/animation"
)

// SpringConfig tunes the spring used for one direction of travel.
type SpringConfig struct {
	// DampingRatio of 1 is critically damped.
	DampingRatio float64
	// Duration is the nominal settle time.
	Duration time.Duration
	// OvershootClamping ends the animation the moment it reaches the target.
	OvershootClamping bool
	// Velocity is the initial velocity in px/s when the caller supplies none.
	Velocity *float64
}

// DefaultOpenSpring is used for moves that reveal more of the sheet.
func DefaultOpenSpring() SpringConfig {
	return SpringConfig{DampingRatio: 1, Duration: 300 * time.Millisecond, OvershootClamping: true}
}

// DefaultCloseSpring is used for moves that hide more of the sheet.
func DefaultCloseSpring() SpringConfig {
	return SpringConfig{DampingRatio: 1, Duration: 250 * time.Millisecond, OvershootClamping: true}
}

func (c SpringConfig) isZero() bool {
	return c.DampingRatio == 0 && c.Duration == 0 && !c.OvershootClamping && c.Velocity == nil
}

// normalizeSpring fills a zero config with the default.
func normalizeSpring(value, defaults SpringConfig) SpringConfig {
	if value.isZero() {
		return defaults
	}
	return value
}

// AnimationDriver springs translation toward a detent. Calls must come from
// the render context.
type AnimationDriver struct {
	state       *OffsetState
	openSpring  SpringConfig
	closeSpring SpringConfig
	trace       *recorder
	spring      *animation.SpringSimulation
	ticker      *animation.Ticker
	last        time.Time
}

func newAnimationDriver(state *OffsetState, openSpring, closeSpring SpringConfig, trace *recorder) *AnimationDriver {
	return &AnimationDriver{
		state:       state,
		openSpring:  normalizeSpring(openSpring, DefaultOpenSpring()),
		closeSpring: normalizeSpring(closeSpring, DefaultCloseSpring()),
		trace:       trace,
	}
}

// AnimateToIndex springs toward the detent at index and records index as
// current immediately. A nil velocity uses the preset's velocity, if any.
//
// When a spring is already heading for the same translation and velocity is
// nil, only the index is recorded. Otherwise the new spring replaces the
// running one.
func (d *AnimationDriver) AnimateToIndex(index int, velocity *float64) {
	g := d.state.Geometry()
	target := g.TargetTranslation(index)
	if inFlight, ok := d.state.Target(); ok && inFlight == target && velocity == nil {
		d.state.setIndex(index)
		return
	}
	d.state.setTarget(target)

	current := d.state.Translation()
	cfg := d.closeSpring
	if target < current {
		cfg = d.openSpring
	}
	var v float64
	switch {
	case velocity != nil:
		v = *velocity
	case cfg.Velocity != nil:
		v = *cfg.Velocity
	}

	sim := animation.NewSpringSimulation(
		animation.SpringFromDuration(cfg.DampingRatio, cfg.Duration),
		current,
		v,
		target,
	)
	sim.SetOvershootClamping(cfg.OvershootClamping)
	d.spring = sim
	d.state.setIndex(index)
	d.trace.record(TraceSnap, v)
	d.start()
}

// CancelTarget marks that no animation target is in flight, so the next
// AnimateToIndex always starts a spring. The running spring, if any, keeps
// going until a new write supersedes it.
func (d *AnimationDriver) CancelTarget() {
	d.state.clearTarget()
}

// Animating reports whether a spring is running.
func (d *AnimationDriver) Animating() bool {
	return d.spring != nil
}

// Step advances the spring by dt seconds and writes the clamped translation.
// It reports whether the spring has settled.
func (d *AnimationDriver) Step(dt float64) bool {
	if d.spring == nil {
		d.stopTicker()
		return true
	}
	done := d.spring.Step(dt)
	d.state.setTranslation(d.spring.Position())
	if done {
		d.spring = nil
		d.stopTicker()
		d.state.clearTarget()
		d.trace.record(TraceSettle, 0)
	}
	return done
}

// halt drops the running spring so another writer can take translation.
func (d *AnimationDriver) halt() {
	d.spring = nil
	d.stopTicker()
}

func (d *AnimationDriver) start() {
	d.last = animation.Now()
	if d.ticker == nil {
		d.ticker = animation.NewTicker(d.tick)
	}
	d.ticker.Start()
}

func (d *AnimationDriver) tick(time.Duration) {
	now := animation.Now()
	dt := now.Sub(d.last).Seconds()
	d.last = now
	d.Step(dt)
}

func (d *AnimationDriver) stopTicker() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
}
