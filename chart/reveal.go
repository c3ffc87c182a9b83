// ABOUTME: Reveal controller that unclips the hidden result segment once and fades its labels in afterwards.
// ABOUTME: The post-animation callback goes through an injectable Scheduler so tests control time.
package chart

import (
	"math"
	"time"
)

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// timerScheduler schedules on real timers.
type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Reveal tracks the result clip animation. It is not safe for concurrent
// use; Chart serialises access.
type Reveal struct {
	fromWidth float64
	toWidth   float64
	duration  time.Duration
	shown     bool
	settled   bool
	startedAt time.Time
}

// NewReveal creates a reveal moving the clip from fromWidth to toWidth.
func NewReveal(fromWidth, toWidth float64, duration time.Duration) *Reveal {
	return &Reveal{fromWidth: fromWidth, toWidth: toWidth, duration: duration}
}

// Shown reports whether the reveal has been triggered.
func (r *Reveal) Shown() bool {
	return r.shown
}

// Settled reports whether the post-animation step has run.
func (r *Reveal) Settled() bool {
	return r.settled
}

// Start marks the reveal as shown. It returns false if it already was.
func (r *Reveal) Start(now time.Time) bool {
	if r.shown {
		return false
	}
	r.shown = true
	r.startedAt = now
	return true
}

// Settle marks the animation as finished.
func (r *Reveal) Settle() {
	r.settled = true
}

// WidthAt returns the clip width at time now, eased cubic in-out.
func (r *Reveal) WidthAt(now time.Time) float64 {
	if !r.shown {
		return r.fromWidth
	}
	if r.settled || r.duration <= 0 {
		return r.toWidth
	}
	t := float64(now.Sub(r.startedAt)) / float64(r.duration)
	t = math.Max(0, math.Min(1, t))
	return r.fromWidth + (r.toWidth-r.fromWidth)*easeCubicInOut(t)
}

// easeCubicInOut matches d3's default transition easing.
func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
