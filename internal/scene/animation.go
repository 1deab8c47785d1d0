// Package scene holds the animated cassette scene: its state, advanced once
// per render tick, and its terminal rendering.
package scene

import (
	"math"
	"math/rand/v2"
)

// Animation constants.
const (
	EQBars = 20

	PhaseStep = 0.12

	PlayingSpeed = 0.4
	IdleSpeed    = 0.05

	PlayingSmoothing = 0.33
	IdleSmoothing    = 0.2
	IdleLevel        = 0.12

	SpawnChance = 0.22
	MinLife     = 15
	MaxLife     = 40
	SparkleBand = 4 // rows of the top band sparkles spawn in
)

// Particle is a sparkle with a remaining lifetime in ticks.
type Particle struct {
	X, Y int
	Life int
}

// Size is 1..6, derived from the remaining life.
func (p Particle) Size() int { return 1 + p.Life%6 }

// Bright alternates every tick.
func (p Particle) Bright() bool { return p.Life%2 == 1 }

// AnimationState is owned by the render loop and mutated only by Tick.
type AnimationState struct {
	Phase     float64
	EQ        [EQBars]float64
	Particles []Particle

	width int
	rng   *rand.Rand
}

// New creates a scene state. A nil rng uses a randomly seeded source.
func New(rng *rand.Rand) *AnimationState {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &AnimationState{rng: rng}
}

// SetWidth sets the canvas width particles spawn across.
func (a *AnimationState) SetWidth(w int) {
	a.width = max(0, w)
}

// Tick advances the animation by one frame.
func (a *AnimationState) Tick(playing bool) {
	a.Phase += PhaseStep

	for i := range a.EQ {
		if playing {
			jitter := 0.8 + a.rng.Float64()*0.2
			target := 0.15 + math.Abs(math.Sin(a.Phase*0.8+float64(i)*0.5))*jitter
			a.EQ[i] = Smooth(a.EQ[i], target, PlayingSmoothing)
		} else {
			a.EQ[i] = Smooth(a.EQ[i], IdleLevel, IdleSmoothing)
		}
	}

	if a.width > 0 && a.rng.Float64() < SpawnChance {
		a.Particles = append(a.Particles, Particle{
			X:    a.rng.IntN(a.width),
			Y:    a.rng.IntN(SparkleBand),
			Life: MinLife + a.rng.IntN(MaxLife-MinLife+1),
		})
	}

	live := a.Particles[:0]
	for _, p := range a.Particles {
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	a.Particles = live
}

// Smooth moves v toward target by factor, clamped to [0,1].
func Smooth(v, target, factor float64) float64 {
	v += (target - v) * factor
	return max(0, min(1, v))
}

// ReelAngle is the rotation of both reels for the current phase.
func (a *AnimationState) ReelAngle(playing bool) float64 {
	speed := IdleSpeed
	if playing {
		speed = PlayingSpeed
	}
	return a.Phase * speed
}

// Point is a position on the canvas in fractional cells.
type Point struct {
	X, Y float64
}

// Spokes returns the tips of the four spokes of a reel rotated by theta.
// rx and ry differ because terminal cells are taller than wide.
func Spokes(center Point, rx, ry, theta float64) [4]Point {
	var tips [4]Point
	for k := range tips {
		ang := theta + float64(k)*math.Pi/2
		tips[k] = Point{
			X: center.X + rx*math.Cos(ang),
			Y: center.Y + ry*math.Sin(ang),
		}
	}
	return tips
}
