package model

import "math"

const (
	MinCanvasWidth = 600
	LaneSpacing    = 50
	CanvasHeight   = 400

	// laneHitRadius is how far from a lane line a click still selects the lane.
	laneHitRadius = 12
	// gapInset keeps bridge clicks off the lane lines themselves.
	gapInset = 10
)

// Layout places a ladder on a canvas. Lane i is drawn at x = (i+1)*ColWidth and
// row r at y = r*RowHeight.
type Layout struct {
	Lanes        int
	Width        float64
	CanvasHeight float64
	ColWidth     float64
	RowHeight    float64
}

func NewLayout(lanes, height int) Layout {
	width := math.Max(MinCanvasWidth, float64(lanes*LaneSpacing))
	return Layout{
		Lanes:        lanes,
		Width:        width,
		CanvasHeight: CanvasHeight,
		ColWidth:     width / float64(lanes+1),
		RowHeight:    CanvasHeight / float64(height),
	}
}

// UnitLayout keeps paths in ladder units: lane i at x = i+1, row r at y = r.
func UnitLayout(height int) Layout {
	return Layout{ColWidth: 1, RowHeight: 1, CanvasHeight: float64(height)}
}

func (l Layout) LaneX(lane int) float64 {
	return float64(lane+1) * l.ColWidth
}

func (l Layout) RowY(row int) float64 {
	return float64(row) * l.RowHeight
}

func (l Layout) RowAt(y float64) int {
	return int(math.Round(y / l.RowHeight))
}

// LaneAt returns the lane whose line is under x.
func (l Layout) LaneAt(x float64) (int, bool) {
	lane := int(math.Round(x/l.ColWidth)) - 1
	if lane < 0 || lane >= l.Lanes {
		return 0, false
	}
	if math.Abs(x-l.LaneX(lane)) > laneHitRadius {
		return 0, false
	}
	return lane, true
}

// GapAt returns the gap (the lane on its left) that x falls into.
func (l Layout) GapAt(x float64) (int, bool) {
	gap := int(math.Floor(x/l.ColWidth)) - 1
	if gap < 0 || gap >= l.Lanes-1 {
		return 0, false
	}
	if x < l.LaneX(gap)+gapInset || x > l.LaneX(gap+1)-gapInset {
		return 0, false
	}
	return gap, true
}
