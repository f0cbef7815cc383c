package board

import "github.com/zucenko/ghostleg/model"

// Frame snapshots the board for a renderer. Completed traces come ordered by
// start lane. Once user bridges change between runs two traces may end on the
// same lane; the lower start lane is named the winner.
func (b *Board) Frame() model.Frame {
	lanes := b.Ladder.Lanes
	f := model.Frame{
		Lanes:         lanes,
		LaneX:         make([]float64, lanes),
		Players:       make([]string, lanes),
		Prizes:        make([]string, lanes),
		Winners:       make([]string, lanes),
		Bridges:       append([]model.Bridge(nil), b.Ladder.Bridges...),
		UserBridges:   b.UserBridges(),
		CurrentPlayer: b.CurrentPlayer(),
		Waiting:       len(b.queue),
	}
	for i := 0; i < lanes; i++ {
		f.LaneX[i] = b.Layout.LaneX(i)
		f.Players[i] = b.assignments[i]
		f.Prizes[i] = b.Roster.PrizeAt(i)
	}
	for _, lane := range b.completedLanes() {
		f.Completed = append(f.Completed, b.completed[lane])
	}
	for i := range f.Winners {
		f.Winners[i], _ = b.Winner(i)
	}
	if m, ok := b.Marker(); ok {
		f.Marker = m
	}
	return f
}
