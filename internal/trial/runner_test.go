package trial

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var testImpulse = mgl64.Vec2{10000, 0}

func TestRunnerValidation(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		dt    float64
		want  error
	}{
		{"zero steps", 0, 1.0 / 60.0, ErrInvalidStepCount},
		{"negative steps", -5, 1.0 / 60.0, ErrInvalidStepCount},
		{"zero dt", 150, 0, ErrInvalidDt},
		{"negative dt", 150, -0.01, ErrInvalidDt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunnerDt(tt.steps, testImpulse, tt.dt)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTrialDeterminism(t *testing.T) {
	r, err := NewRunner(150, testImpulse)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}

	a := r.Run(0.5)
	b := r.Run(0.5)
	if a != b {
		t.Errorf("identical trials diverged: %v vs %v", a, b)
	}
}

func TestTrialIsolation(t *testing.T) {
	r, err := NewRunner(150, testImpulse)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}

	// A trial in between must not leak state into the next one.
	before := r.Run(0.3)
	r.Run(0.7)
	after := r.Run(0.3)
	if before != after {
		t.Errorf("trial leaked state: %v vs %v", before, after)
	}
}

func TestTrialMonotonicity(t *testing.T) {
	r, err := NewRunner(150, testImpulse)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}

	prev := math.Inf(1)
	for _, f := range Grid(10) {
		x := r.Run(f)
		if x > prev {
			t.Errorf("displacement increased at friction %.2f: %.4f > %.4f", f, x, prev)
		}
		prev = x
	}

	// The relation must carry real signal, not just non-increase.
	if r.Run(0.1) <= r.Run(0.9) {
		t.Error("expected strictly larger displacement at low friction")
	}
}

func TestTrajectoryMatchesRun(t *testing.T) {
	r, err := NewRunner(150, testImpulse)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}

	xs := r.Trajectory(0.5)
	if len(xs) != 150 {
		t.Fatalf("expected 150 samples, got %d", len(xs))
	}
	if xs[len(xs)-1] != r.Run(0.5) {
		t.Errorf("trajectory endpoint %.6f != trial result %.6f", xs[len(xs)-1], r.Run(0.5))
	}
}

func TestGrid(t *testing.T) {
	fs := Grid(4)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(fs) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(fs))
	}
	for i := range want {
		if math.Abs(fs[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d: expected %.2f, got %.4f", i, want[i], fs[i])
		}
	}

	if got := Grid(0); len(got) != 2 {
		t.Errorf("degenerate grid should still span [0,1], got %v", got)
	}
}

func TestSweepMatchesSerial(t *testing.T) {
	r, err := NewRunner(150, testImpulse)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}

	frictions := Grid(8)
	points, err := r.Sweep(context.Background(), frictions)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(points) != len(frictions) {
		t.Fatalf("expected %d points, got %d", len(frictions), len(points))
	}

	for i, p := range points {
		if p.Friction != frictions[i] {
			t.Errorf("point %d out of order: friction %.3f", i, p.Friction)
		}
		if serial := r.Run(frictions[i]); p.FinalX != serial {
			t.Errorf("parallel trial at %.3f differs from serial: %.6f vs %.6f",
				frictions[i], p.FinalX, serial)
		}
	}
}

func TestSweepCanceled(t *testing.T) {
	r, err := NewRunner(150, testImpulse)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Sweep(ctx, Grid(4)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
