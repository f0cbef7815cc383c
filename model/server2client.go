package model

type ServerMessage struct {
	Setup   *Setup
	Frame   *Frame
	Results []Result
}

type Setup struct {
	SessionId string
	Lanes     int
	Height    int
	Width     float64
	Canvas    float64
	Roster    Roster
}

// Result pairs a player with the prize their run ended on.
type Result struct {
	Player  string
	Prize   string
	Lane    int
	EndLane int
}

// Marker is the moving token of the active run.
type Marker struct {
	Lane     int
	Progress float64
	Pos      Point
	Trail    []Point
}

// Frame is everything a renderer needs to draw one board frame.
type Frame struct {
	Lanes         int
	LaneX         []float64
	Players       []string // assigned player per lane, "" when free
	Prizes        []string
	Winners       []string // player whose trace ends on the lane, "" when none
	Bridges       []Bridge
	UserBridges   []Bridge
	Completed     []CompletedPath
	Marker        *Marker
	CurrentPlayer string
	Waiting       int
}
