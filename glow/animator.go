package glow

import "sync"

const (
	DefaultDecay     = 0.05
	DefaultMaxTarget = 6
	// PressesPerLevel is how many presses per window raise the target by one.
	PressesPerLevel = 3
)

type Options struct {
	Decay     float64
	MaxTarget int
}

// Animator eases the displayed level toward the level implied by the
// current frequency: rises are immediate, falls lose Decay per step.
type Animator struct {
	mu        sync.Mutex
	current   float64
	decay     float64
	maxTarget int
}

func NewAnimator(opts Options) *Animator {
	if opts.Decay <= 0 {
		opts.Decay = DefaultDecay
	}
	if opts.MaxTarget <= 0 {
		opts.MaxTarget = DefaultMaxTarget
	}
	return &Animator{decay: opts.Decay, maxTarget: opts.MaxTarget}
}

// TargetLevel buckets a frequency with the default cap.
func TargetLevel(freq int) int {
	return targetLevel(freq, DefaultMaxTarget)
}

func targetLevel(freq, maxTarget int) int {
	if freq <= 0 {
		return 0
	}
	return min(freq/PressesPerLevel, maxTarget)
}

// Step advances the animation by one frame and returns the new level.
func (a *Animator) Step(freq int) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	target := float64(targetLevel(freq, a.maxTarget))
	switch {
	case target > a.current:
		a.current = target
	case target < a.current:
		a.current = max(target, a.current-a.decay)
	}
	return int(a.current)
}

func (a *Animator) Level() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(a.current)
}

func (a *Animator) Value() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *Animator) Reset() {
	a.mu.Lock()
	a.current = 0
	a.mu.Unlock()
}
