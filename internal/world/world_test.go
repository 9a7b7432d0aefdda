package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func defaultBody(w *World) *Body {
	return w.AddDynamicBody(
		mgl64.Vec2{DefaultBodyX, DefaultBodyY},
		mgl64.Vec2{DefaultBodySize, DefaultBodySize},
		DefaultBodyMass,
	)
}

func TestNoBodySafety(t *testing.T) {
	w := New(0.5)

	if _, ok := w.ObjectState(); ok {
		t.Error("expected no state before a body is added")
	}

	// Must be no-ops, not crashes.
	w.ApplyImpulse(mgl64.Vec2{5000, 0})
	w.Step(DefaultDt)

	if _, ok := w.ObjectState(); ok {
		t.Error("stepping an empty world should not create a body")
	}
}

func TestClockAdvances(t *testing.T) {
	w := New(0.5)
	for i := 0; i < 3; i++ {
		w.Step(DefaultDt)
	}
	if math.Abs(w.Now()-3*DefaultDt) > 1e-12 {
		t.Errorf("expected clock at %.6f, got %.6f", 3*DefaultDt, w.Now())
	}
}

func TestMomentForBox(t *testing.T) {
	got := MomentForBox(10, 50, 50)
	want := 10.0 * (2500.0 + 2500.0) / 12.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected moment %.4f, got %.4f", want, got)
	}
}

func TestImpulseSetsVelocity(t *testing.T) {
	w := New(0.5)
	b := defaultBody(w)
	w.ApplyImpulse(mgl64.Vec2{5000, 0})

	if math.Abs(b.Velocity.X()-500.0) > 1e-12 {
		t.Errorf("expected vx 500, got %f", b.Velocity.X())
	}
	if b.Velocity.Y() != 0 {
		t.Errorf("expected vy 0, got %f", b.Velocity.Y())
	}
}

func TestBodySettlesOnFloor(t *testing.T) {
	w := New(0.5)
	defaultBody(w)

	for i := 0; i < 60; i++ {
		w.Step(DefaultDt)
	}

	pos, ok := w.ObjectState()
	if !ok {
		t.Fatal("expected a tracked body")
	}

	// Rest height: floor top surface plus half the box height.
	want := FloorY + FloorHalfThickness + DefaultBodySize/2
	if math.Abs(pos.Y()-want) > 1e-9 {
		t.Errorf("expected rest height %.2f, got %.4f", want, pos.Y())
	}
	if pos.X() != 0 {
		t.Errorf("body without impulse should not drift, got x=%f", pos.X())
	}
}

func TestStepDeterminism(t *testing.T) {
	final := func() mgl64.Vec2 {
		w := New(0.37)
		defaultBody(w)
		w.ApplyImpulse(mgl64.Vec2{10000, 0})
		for i := 0; i < 150; i++ {
			w.Step(DefaultDt)
		}
		pos, _ := w.ObjectState()
		return pos
	}

	a, b := final(), final()
	if a != b {
		t.Errorf("identical worlds diverged: %v vs %v", a, b)
	}
}

func TestFrictionDissipatesDisplacement(t *testing.T) {
	run := func(friction float64) float64 {
		w := New(friction)
		defaultBody(w)
		w.ApplyImpulse(mgl64.Vec2{10000, 0})
		for i := 0; i < 150; i++ {
			w.Step(DefaultDt)
		}
		pos, _ := w.ObjectState()
		return pos.X()
	}

	low, high := run(0.2), run(0.8)
	if low <= high {
		t.Errorf("low friction should travel farther: %.2f vs %.2f", low, high)
	}
}
