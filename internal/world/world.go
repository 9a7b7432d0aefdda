package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Simulation defaults, in scene length units and seconds.
const (
	DefaultGravityY = -900.0
	DefaultDt       = 1.0 / 60.0

	// The static floor is a horizontal slab with its top surface at
	// FloorY+FloorHalfThickness. It never moves and keeps its own
	// friction regardless of the body's coefficient.
	FloorY             = 10.0
	FloorHalfThickness = 5.0
	FloorFriction      = 1.0

	DefaultBodyX    = 0.0
	DefaultBodyY    = 50.0
	DefaultBodySize = 50.0
	DefaultBodyMass = 10.0
)

// Body is the single dynamic rigid body a World tracks. The moment of
// inertia is carried for completeness; this model never spins it up.
type Body struct {
	Mass            float64
	Moment          float64
	Position        mgl64.Vec2
	Velocity        mgl64.Vec2
	AngularVelocity float64

	halfW, halfH float64
}

// World is one self-contained simulation instance. Its friction
// coefficient is fixed at construction and fully determines the
// frictional behavior for the instance's lifetime.
type World struct {
	friction float64
	gravity  mgl64.Vec2
	floorTop float64
	body     *Body
	now      float64
}

// New creates a world under default gravity. The floor exists from the
// moment of construction.
func New(friction float64) *World {
	return NewWithGravity(friction, mgl64.Vec2{0, DefaultGravityY})
}

func NewWithGravity(friction float64, gravity mgl64.Vec2) *World {
	return &World{
		friction: friction,
		gravity:  gravity,
		floorTop: FloorY + FloorHalfThickness,
	}
}

func (w *World) Friction() float64 { return w.friction }

// Now reports the simulation clock, advanced only by Step.
func (w *World) Now() float64 { return w.now }

// MomentForBox is the moment of inertia of a solid box about its center.
func MomentForBox(mass, width, height float64) float64 {
	return mass * (width*width + height*height) / 12.0
}

// AddDynamicBody creates the world's dynamic box. The model is
// single-body: calling this twice replaces the tracked body and is
// outside the supported contract.
func (w *World) AddDynamicBody(position, size mgl64.Vec2, mass float64) *Body {
	b := &Body{
		Mass:     mass,
		Moment:   MomentForBox(mass, size.X(), size.Y()),
		Position: position,
		halfW:    size.X() / 2,
		halfH:    size.Y() / 2,
	}
	w.body = b
	return b
}

// ApplyImpulse adds an instantaneous change in linear momentum at the
// body's center. No-op when no body exists. The body never rotates, so
// its local frame coincides with the world frame.
func (w *World) ApplyImpulse(impulse mgl64.Vec2) {
	if w.body == nil {
		return
	}
	w.body.Velocity = w.body.Velocity.Add(impulse.Mul(1.0 / w.body.Mass))
}

// Step advances the world by exactly dt: gravity into velocity, floor
// contact resolution, velocity into position. The scheme is fixed-step
// semi-implicit, so identical inputs reproduce identical trajectories.
func (w *World) Step(dt float64) {
	w.now += dt
	b := w.body
	if b == nil {
		return
	}

	b.Velocity = b.Velocity.Add(w.gravity.Mul(dt))

	rest := w.floorTop + b.halfH
	if b.Position.Y()+b.Velocity.Y()*dt <= rest {
		// Contact: clamp to the surface, kill the normal velocity,
		// then oppose sliding with a Coulomb friction impulse bounded
		// by mu*N. The combined coefficient is the product of the two
		// surface values; N is the per-step normal impulse m*|g|*dt,
		// so the velocity change is bounded by mu*|g|*dt.
		b.Position[1] = rest
		if b.Velocity[1] < 0 {
			b.Velocity[1] = 0
		}

		mu := w.friction * FloorFriction
		limit := mu * math.Max(0, -w.gravity.Y()) * dt
		switch {
		case b.Velocity[0] > 0:
			b.Velocity[0] = math.Max(0, b.Velocity[0]-limit)
		case b.Velocity[0] < 0:
			b.Velocity[0] = math.Min(0, b.Velocity[0]+limit)
		}

		b.Position[0] += b.Velocity[0] * dt
	} else {
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}

// ObjectState returns the tracked body's position, or false when no
// body has been added. Non-mutating.
func (w *World) ObjectState() (mgl64.Vec2, bool) {
	if w.body == nil {
		return mgl64.Vec2{}, false
	}
	return w.body.Position, true
}
