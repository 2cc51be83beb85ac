package animation

import (
	"math"
	"testing"
	"time"
)

func runSpring(sim *SpringSimulation, maxSteps int, observe func(pos float64)) int {
	for i := 0; i < maxSteps; i++ {
		done := sim.Step(1.0 / 60)
		if observe != nil {
			observe(sim.Position())
		}
		if done {
			return i + 1
		}
	}
	return -1
}

func TestSpringSimulation_ConvergesExactly(t *testing.T) {
	springs := map[string]SpringDescription{
		"ios":        IOSSpring(),
		"bouncy":     BouncySpring(),
		"overdamped": {Mass: 1, Stiffness: 200, Damping: 60},
		"duration":   SpringFromDuration(1, 300*time.Millisecond),
	}
	for name, spring := range springs {
		sim := NewSpringSimulation(spring, 500, 0, 200)
		if steps := runSpring(sim, 2000, nil); steps < 0 {
			t.Fatalf("%s: spring did not settle", name)
		}
		if sim.Position() != 200 {
			t.Errorf("%s: final position = %v, want exactly 200", name, sim.Position())
		}
		if sim.Velocity() != 0 {
			t.Errorf("%s: final velocity = %v, want 0", name, sim.Velocity())
		}
		if !sim.IsDone() {
			t.Errorf("%s: IsDone should be true after settling", name)
		}
	}
}

func TestSpringSimulation_OvershootClamping(t *testing.T) {
	sim := NewSpringSimulation(BouncySpring(), 0, 0, 300)
	sim.SetOvershootClamping(true)
	runSpring(sim, 2000, func(pos float64) {
		if pos > 300 {
			t.Fatalf("clamped spring overshot: %v", pos)
		}
	})
	if sim.Position() != 300 {
		t.Errorf("final position = %v, want 300", sim.Position())
	}
}

func TestSpringSimulation_UnclampedBouncyOvershoots(t *testing.T) {
	sim := NewSpringSimulation(BouncySpring(), 0, 0, 300)
	peak := 0.0
	runSpring(sim, 2000, func(pos float64) { peak = math.Max(peak, pos) })
	if peak <= 300 {
		t.Errorf("expected underdamped spring to overshoot 300, peak %v", peak)
	}
}

func TestSpringSimulation_InitialVelocity(t *testing.T) {
	// Start at the target, flung downward: the body must move away first.
	sim := NewSpringSimulation(IOSSpring(), 200, 0, 0)
	sim.Step(1.0 / 60)
	still := sim.Position()

	flung := NewSpringSimulation(IOSSpring(), 200, 2000, 0)
	flung.Step(1.0 / 60)
	if flung.Position() <= still {
		t.Errorf("velocity toward +y should slow the approach to 0: flung %v, still %v", flung.Position(), still)
	}
}

func TestSpringSimulation_ClampedWithVelocityAtTarget(t *testing.T) {
	sim := NewSpringSimulation(IOSSpring(), 100, 900, 100)
	sim.SetOvershootClamping(true)
	if !sim.Step(1.0 / 60) {
		t.Fatal("clamped spring starting on target should settle immediately")
	}
	if sim.Position() != 100 {
		t.Errorf("position = %v, want 100", sim.Position())
	}
}

func TestSpringSimulation_AlreadySettled(t *testing.T) {
	sim := NewSpringSimulation(IOSSpring(), 42, 0, 42)
	if !sim.IsDone() {
		t.Error("simulation at rest on target should start done")
	}
	if !sim.Step(0.016) {
		t.Error("Step on a settled simulation should report done")
	}
}

func TestSpringSimulation_InvalidSpringSettles(t *testing.T) {
	sim := NewSpringSimulation(SpringDescription{}, 10, 0, 90)
	if !sim.IsDone() || sim.Position() != 90 {
		t.Errorf("degenerate spring should jump to target, got done=%v pos=%v", sim.IsDone(), sim.Position())
	}
}

func TestSpringFromDuration(t *testing.T) {
	spring := SpringFromDuration(1, 300*time.Millisecond)
	if r := spring.DampingRatio(); math.Abs(r-1) > 1e-9 {
		t.Errorf("DampingRatio = %v, want 1", r)
	}

	short := NewSpringSimulation(SpringFromDuration(1, 250*time.Millisecond), 0, 0, 500)
	long := NewSpringSimulation(SpringFromDuration(1, 600*time.Millisecond), 0, 0, 500)
	short.Step(0.1)
	long.Step(0.1)
	if short.Position() <= long.Position() {
		t.Errorf("shorter duration should progress faster: short %v, long %v", short.Position(), long.Position())
	}

	if got := SpringFromDuration(0, 0); got != IOSSpring() {
		t.Errorf("zero duration should fall back to IOSSpring, got %+v", got)
	}
}

func TestSpringSimulation_FrameRateIndependent(t *testing.T) {
	a := NewSpringSimulation(IOSSpring(), 0, 0, 400)
	b := NewSpringSimulation(IOSSpring(), 0, 0, 400)
	for i := 0; i < 6; i++ {
		a.Step(1.0 / 60)
	}
	for i := 0; i < 12; i++ {
		b.Step(1.0 / 120)
	}
	if math.Abs(a.Position()-b.Position()) > 1e-9 {
		t.Errorf("positions diverged across frame rates: %v vs %v", a.Position(), b.Position())
	}
}
