package drag

import (
	"math"
	"time"
)

// maxSubstep bounds the integration step so stiff springs stay stable at low
// frame rates
const maxSubstep = time.Millisecond

// Spring is a damped harmonic oscillator moving Value towards Target
type Spring struct {
	cfg      SpringConfig
	Value    float64
	Velocity float64
	Target   float64
	resting  bool
}

// NewSpring creates a spring resting at value
func NewSpring(cfg SpringConfig, value float64) *Spring {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	if cfg.RestSpeedThreshold <= 0 {
		cfg.RestSpeedThreshold = 1e-3
	}
	if cfg.RestDisplacementThreshold <= 0 {
		cfg.RestDisplacementThreshold = 1e-3
	}
	return &Spring{cfg: cfg, Value: value, Target: value, resting: true}
}

// SetTarget retargets the spring, keeping its current velocity
func (s *Spring) SetTarget(target float64) {
	if target == s.Target && s.resting {
		return
	}
	s.Target = target
	s.resting = s.Value == target && s.Velocity == 0
}

// Snap jumps to value and stops
func (s *Spring) Snap(value float64) {
	s.Value = value
	s.Target = value
	s.Velocity = 0
	s.resting = true
}

// AtRest reports whether the spring has settled on its target
func (s *Spring) AtRest() bool {
	return s.resting
}

// Step advances the spring by dt and returns the new value.
// Semi-implicit Euler: v += a*h; x += v*h
func (s *Spring) Step(dt time.Duration) float64 {
	if s.resting || dt <= 0 {
		return s.Value
	}

	startSign := math.Signbit(s.Value - s.Target)
	for dt > 0 {
		step := min(dt, maxSubstep)
		dt -= step
		h := step.Seconds()

		force := -s.cfg.Stiffness*(s.Value-s.Target) - s.cfg.Damping*s.Velocity
		s.Velocity += force / s.cfg.Mass * h
		s.Value += s.Velocity * h

		if s.cfg.OvershootClamping && s.Value != s.Target && math.Signbit(s.Value-s.Target) != startSign {
			s.Snap(s.Target)
			return s.Value
		}
		if math.Abs(s.Velocity) < s.cfg.RestSpeedThreshold &&
			math.Abs(s.Value-s.Target) < s.cfg.RestDisplacementThreshold {
			s.Snap(s.Target)
			return s.Value
		}
	}
	return s.Value
}
