package anim

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action holds the hooks of one running tween.
type Action struct {
	tween    *gween.Tween
	duration time.Duration
	elapsed  time.Duration
	done     bool
	onChange func(float32)
	onFinish []func()
}

func (a *Action) OnChange(f func(float32)) *Action {
	a.onChange = f
	return a
}

func (a *Action) AddOnFinish(f func()) *Action {
	a.onFinish = append(a.onFinish, f)
	return a
}

// Timeline advances every running tween by the same frame delta, in the order
// they were started. It is driven from a single goroutine.
type Timeline struct {
	Tweens []*Action
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Progress starts a linear 0→1 tween lasting d.
func (tl *Timeline) Progress(d time.Duration) *Action {
	a := &Action{
		tween:    gween.New(0, 1, float32(d.Seconds()), ease.Linear),
		duration: d,
	}
	tl.Tweens = append(tl.Tweens, a)
	return a
}

// Update moves all tweens forward by dt. Finished tweens report a last change,
// fire their finish hooks once and are dropped. Completion follows the summed
// time.Duration, not the tween's float32 clock. Tweens started by a hook wait
// for the next Update.
func (tl *Timeline) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	pass := append([]*Action(nil), tl.Tweens...)
	for _, a := range pass {
		if a.done {
			continue
		}
		a.elapsed += dt
		curr, _ := a.tween.Update(step)
		finished := a.elapsed >= a.duration
		if finished {
			curr = 1
			a.done = true
		}
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
		}
	}

	live := tl.Tweens[:0]
	for _, a := range tl.Tweens {
		if !a.done {
			live = append(live, a)
		}
	}
	tl.Tweens = live
}

func (tl *Timeline) Len() int {
	return len(tl.Tweens)
}

// Clear drops every tween, including ones still pending in a running Update.
func (tl *Timeline) Clear() {
	for _, a := range tl.Tweens {
		a.done = true
	}
	tl.Tweens = nil
}
