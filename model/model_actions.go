package model

import (
	"errors"
	"math/rand"
	"sort"
)

var ErrTooFewLanes = errors.New("ladder needs at least two lanes")

// NewLadder draws between 3 and 6 bridges per lane. Draws that land too close to an
// already accepted bridge are dropped, not redrawn, so dense ladders end up with fewer
// bridges than the target.
func NewLadder(lanes int, rnd *rand.Rand) (*Ladder, error) {
	if lanes < 2 {
		return nil, ErrTooFewLanes
	}
	minBridges := lanes * 3
	maxBridges := lanes * 6
	target := rnd.Intn(maxBridges-minBridges+1) + minBridges

	bridges := make([]Bridge, 0, target)
	for i := 0; i < target; i++ {
		b := Bridge{
			Lane: rnd.Intn(lanes - 1),
			Row:  rnd.Intn(Height-10) + 5,
		}
		if tooClose(bridges, b, MinGap) {
			continue
		}
		bridges = append(bridges, b)
	}
	sortByRow(bridges)

	return &Ladder{Lanes: lanes, Height: Height, Bridges: bridges}, nil
}

// Touches reports whether a and b sit on the same or neighbouring lanes.
func (a Bridge) Touches(b Bridge) bool {
	d := a.Lane - b.Lane
	return d >= -1 && d <= 1
}

// Conflicts reports whether b shares a row with a bridge on the same or a
// neighbouring lane.
func Conflicts(bridges []Bridge, b Bridge) bool {
	return tooClose(bridges, b, 1)
}

func tooClose(bridges []Bridge, b Bridge, gap int) bool {
	for _, o := range bridges {
		d := o.Row - b.Row
		if d < 0 {
			d = -d
		}
		if d < gap && o.Touches(b) {
			return true
		}
	}
	return false
}

// Merge returns generated and user bridges in one slice ordered by row.
func Merge(generated, user []Bridge) []Bridge {
	all := make([]Bridge, 0, len(generated)+len(user))
	all = append(all, generated...)
	all = append(all, user...)
	sortByRow(all)
	return all
}

func sortByRow(bridges []Bridge) {
	sort.SliceStable(bridges, func(i, j int) bool {
		return bridges[i].Row < bridges[j].Row
	})
}

// Resolve walks a token from the top of lane start down the ladder. bridges must
// be ordered by row. A bridge is only taken when it lies strictly below the last
// crossing, so the bridge just used is never walked back.
func Resolve(bridges []Bridge, start int, l Layout) Path {
	lane := start
	row := 0
	points := []Point{{X: l.LaneX(lane), Y: 0}}

	for _, b := range bridges {
		if b.Row <= row {
			continue
		}
		y := l.RowY(b.Row)
		switch b.Lane {
		case lane:
			points = append(points, Point{X: l.LaneX(lane), Y: y}, Point{X: l.LaneX(lane + 1), Y: y})
			lane++
			row = b.Row
		case lane - 1:
			points = append(points, Point{X: l.LaneX(lane), Y: y}, Point{X: l.LaneX(lane - 1), Y: y})
			lane--
			row = b.Row
		}
	}

	points = append(points, Point{X: l.LaneX(lane), Y: l.CanvasHeight})
	return Path{Points: points, EndLane: lane}
}
