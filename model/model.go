package model

// Height is the number of rows on every ladder.
const Height = 100

// MinGap is the closest two generated bridges on neighbouring lanes may be.
const MinGap = 3

// Bridge connects lane Lane with lane Lane+1 at Row.
type Bridge struct {
	Lane, Row int
	User      bool
}

type Ladder struct {
	Lanes   int
	Height  int
	Bridges []Bridge
}

type Point struct {
	X, Y float64
}

type Path struct {
	Points  []Point
	EndLane int
}

// CompletedPath is the frozen trace of a finished run, keyed by its start lane.
type CompletedPath struct {
	Lane int
	Path Path
}
