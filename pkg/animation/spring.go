package animation

import (
	"math"
	"time"
)

// settleLog is ln(1000): a spring built by SpringFromDuration has its decay
// envelope down to 0.1% of the initial displacement at the nominal duration.
const settleLog = 6.907755278982137

// SpringDescription describes the physical properties of a damped spring.
type SpringDescription struct {
	// Mass of the attached body. Must be positive.
	Mass float64
	// Stiffness is the spring constant k. Must be positive.
	Stiffness float64
	// Damping is the viscous damping coefficient c.
	Damping float64
}

// DampingRatio returns c / (2*sqrt(k*m)). 1 is critically damped, below 1
// oscillates, above 1 creeps toward the target without overshooting.
func (s SpringDescription) DampingRatio() float64 {
	if s.Mass <= 0 || s.Stiffness <= 0 {
		return 0
	}
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

// IOSSpring returns a critically damped spring close to the system sheet
// transition on iOS.
func IOSSpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 522.35, Damping: 45.71}
}

// BouncySpring returns an underdamped spring with visible overshoot.
func BouncySpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 180, Damping: 12}
}

// SpringFromDuration derives a unit-mass spring from a damping ratio and a
// nominal duration. Non-positive ratios are treated as 1; a non-positive
// duration falls back to IOSSpring.
func SpringFromDuration(dampingRatio float64, duration time.Duration) SpringDescription {
	if dampingRatio <= 0 {
		dampingRatio = 1
	}
	secs := duration.Seconds()
	if secs <= 0 {
		return IOSSpring()
	}
	omega := settleLog / (dampingRatio * secs)
	return SpringDescription{
		Mass:      1,
		Stiffness: omega * omega,
		Damping:   2 * dampingRatio * omega,
	}
}

// Tolerance defines when a simulation is considered settled.
type Tolerance struct {
	Distance float64
	Velocity float64
}

// DefaultTolerance is used by NewSpringSimulation.
var DefaultTolerance = Tolerance{Distance: 0.01, Velocity: 0.5}

// SpringSimulation evaluates a damped spring analytically, so the result is
// independent of frame timing. Once settled, Position returns the target
// exactly.
type SpringSimulation struct {
	spring    SpringDescription
	target    float64
	x0        float64 // initial displacement from target
	v0        float64
	elapsed   float64
	position  float64
	velocity  float64
	clamp     bool
	tolerance Tolerance
	done      bool
}

// NewSpringSimulation creates a simulation starting at position with the
// given initial velocity (units per second), converging on target.
func NewSpringSimulation(spring SpringDescription, position, velocity, target float64) *SpringSimulation {
	s := &SpringSimulation{
		spring:    spring,
		target:    target,
		x0:        position - target,
		v0:        velocity,
		position:  position,
		velocity:  velocity,
		tolerance: DefaultTolerance,
	}
	if spring.Mass <= 0 || spring.Stiffness <= 0 || s.within(s.x0, s.v0) {
		s.settle()
	}
	return s
}

// SetOvershootClamping stops the simulation the moment it reaches or
// crosses the target instead of letting it oscillate around it.
func (s *SpringSimulation) SetOvershootClamping(clamp bool) {
	s.clamp = clamp
}

// SetTolerance overrides the settle tolerance.
func (s *SpringSimulation) SetTolerance(t Tolerance) {
	s.tolerance = t
}

// Step advances the simulation by dt seconds and reports whether it has
// settled.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	if dt > 0 {
		s.elapsed += dt
	}
	x, v := s.evaluate(s.elapsed)
	if s.clamp && (s.x0 == 0 || x == 0 || math.Signbit(x) != math.Signbit(s.x0)) {
		s.settle()
		return true
	}
	if s.within(x, v) {
		s.settle()
		return true
	}
	s.position = s.target + x
	s.velocity = v
	return false
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// Target returns the position the spring converges to.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the simulation has settled on its target.
func (s *SpringSimulation) IsDone() bool { return s.done }

func (s *SpringSimulation) within(x, v float64) bool {
	return math.Abs(x) < s.tolerance.Distance && math.Abs(v) < s.tolerance.Velocity
}

func (s *SpringSimulation) settle() {
	s.position = s.target
	s.velocity = 0
	s.done = true
}

// evaluate returns displacement from target and velocity at time t.
func (s *SpringSimulation) evaluate(t float64) (float64, float64) {
	m, k, c := s.spring.Mass, s.spring.Stiffness, s.spring.Damping
	w0 := math.Sqrt(k / m)
	zeta := c / (2 * math.Sqrt(k*m))
	x0, v0 := s.x0, s.v0

	switch {
	case math.Abs(zeta-1) < 1e-6:
		a := x0
		b := v0 + w0*x0
		e := math.Exp(-w0 * t)
		return e * (a + b*t), e * (b - w0*(a+b*t))
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		decay := zeta * w0
		a := x0
		b := (v0 + decay*x0) / wd
		e := math.Exp(-decay * t)
		cos, sin := math.Cos(wd*t), math.Sin(wd*t)
		x := e * (a*cos + b*sin)
		v := e * ((b*wd-decay*a)*cos - (decay*b+a*wd)*sin)
		return x, v
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		c2 := (v0 - r1*x0) / (r2 - r1)
		c1 := x0 - c2
		e1, e2 := math.Exp(r1*t), math.Exp(r2*t)
		return c1*e1 + c2*e2, c1*r1*e1 + c2*r2*e2
	}
}
