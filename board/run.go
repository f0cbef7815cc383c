package board

import (
	"fmt"
	"time"

	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/model"
)

// Duration is how long one token takes from top to bottom.
const Duration = 2000 * time.Millisecond

type RunState int

const (
	IDLE RunState = iota
	RUNNING
	COMPLETED
)

func (s RunState) Name() string {
	switch s {
	case IDLE:
		return "IDLE"
	case RUNNING:
		return "RUNNING"
	case COMPLETED:
		return "COMPLETED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// run is one traversal of a lane. A replay of the same lane is a new run with a
// new id; only the lane's latest id may write results.
type run struct {
	id       uint64
	lane     int
	player   string
	path     model.Path
	progress float64
	state    RunState
}

// newRun holds a resolved path that is not animating yet.
func newRun(id uint64, lane int, player string, path model.Path) *run {
	return &run{id: id, lane: lane, player: player, path: path, state: IDLE}
}

func (r *run) advance(p float32) {
	// progress never decreases
	if v := float64(p); v > r.progress {
		r.progress = v
	}
	if r.progress > 1 {
		r.progress = 1
	}
}

func (r *run) marker() *model.Marker {
	pos, trail := anim.Trace(r.path.Points, r.progress)
	return &model.Marker{
		Lane:     r.lane,
		Progress: r.progress,
		Pos:      pos,
		Trail:    trail,
	}
}
