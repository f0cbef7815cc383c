package model

// ClientMessage carries one command; exactly one field is expected to be set.
type ClientMessage struct {
	NewGame      *NewGame
	SelectLane   *int
	AddBridge    *Click
	ResetBridges bool
	ResetGame    bool
	Regenerate   bool
}

type NewGame struct {
	Roster Roster
	Seed   int64
}

// Click is a canvas position in layout pixels.
type Click struct {
	X, Y float64
}
