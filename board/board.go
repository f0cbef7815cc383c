package board

import (
	"math/rand"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/model"
	"github.com/zyedidia/generic/mapset"
)

// Board owns one round of play: the ladder, who sits on which lane, who is still
// waiting, the user's extra bridges and every finished trace. Invalid requests
// are ignored. A Board must only be used from one goroutine.
type Board struct {
	Ladder *model.Ladder
	Roster model.Roster
	Layout model.Layout

	// OnFinish is told about every run that completes and is still current.
	OnFinish func(model.Result)

	user        []model.Bridge
	bridges     []model.Bridge // generated and user bridges ordered by row
	assignments map[int]string
	queue       []string
	completed   map[int]model.CompletedPath
	current     map[int]uint64
	inFlight    mapset.Set[int]
	timeline    *anim.Timeline
	active      *run
	nextRun     uint64
}

func New(ladder *model.Ladder, roster model.Roster, layout model.Layout) (*Board, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	if ladder.Lanes != roster.Lanes() {
		return nil, model.ErrRosterMismatch
	}
	b := &Board{
		Ladder:   ladder,
		Roster:   roster,
		Layout:   layout,
		timeline: anim.NewTimeline(),
	}
	b.ResetGame()
	return b, nil
}

// SelectLane seats the next waiting player on a free lane and starts their run,
// or replays a lane that already has a player.
func (b *Board) SelectLane(lane int) {
	if lane < 0 || lane >= b.Ladder.Lanes {
		return
	}
	if _, ok := b.assignments[lane]; ok {
		b.start(lane)
		return
	}
	if len(b.queue) == 0 {
		return
	}
	b.assignments[lane] = b.queue[0]
	b.queue = b.queue[1:]
	b.start(lane)
}

// AddUserBridge adds a bridge between lane and lane+1 at row unless it is off the
// ladder or shares a row with a bridge on the same or a neighbouring lane.
func (b *Board) AddUserBridge(lane, row int) bool {
	if row <= 0 || row >= b.Ladder.Height {
		return false
	}
	if lane < 0 || lane > b.Ladder.Lanes-2 {
		return false
	}
	nb := model.Bridge{Lane: lane, Row: row, User: true}
	if model.Conflicts(b.bridges, nb) {
		return false
	}
	b.user = append(b.user, nb)
	b.bridges = model.Merge(b.Ladder.Bridges, b.user)
	return true
}

// AddUserBridgeAt adds a bridge from a click at canvas position (x, y).
func (b *Board) AddUserBridgeAt(x, y float64) bool {
	gap, ok := b.Layout.GapAt(x)
	if !ok {
		return false
	}
	return b.AddUserBridge(gap, b.Layout.RowAt(y))
}

func (b *Board) ResetUserBridges() {
	b.user = nil
	b.bridges = model.Merge(b.Ladder.Bridges, nil)
}

// ResetGame empties the lanes and puts every player back in line. The ladder
// stays; runs still in flight are dropped without reporting.
func (b *Board) ResetGame() {
	b.user = nil
	b.bridges = model.Merge(b.Ladder.Bridges, nil)
	b.assignments = make(map[int]string)
	b.queue = append([]string(nil), b.Roster.Players...)
	b.completed = make(map[int]model.CompletedPath)
	b.current = make(map[int]uint64)
	b.inFlight = mapset.New[int]()
	b.timeline.Clear()
	b.active = nil
}

// NewRound swaps in a freshly generated ladder and resets the game.
func (b *Board) NewRound(ladder *model.Ladder) error {
	if ladder.Lanes != b.Roster.Lanes() {
		return model.ErrRosterMismatch
	}
	b.Ladder = ladder
	b.ResetGame()
	return nil
}

// Resize changes the number of players to n, padding or trimming a copy of the
// roster, deals a ladder for the new lane count and resets.
func (b *Board) Resize(n int, rnd *rand.Rand) error {
	roster := model.Roster{
		Players: append([]string(nil), b.Roster.Players...),
		Prizes:  append([]string(nil), b.Roster.Prizes...),
	}
	roster.Resize(n, rnd)
	ladder, err := model.NewLadder(roster.Lanes(), rnd)
	if err != nil {
		return err
	}
	b.Roster = roster
	b.Ladder = ladder
	b.Layout = model.NewLayout(ladder.Lanes, ladder.Height)
	b.ResetGame()
	log.Debugf("resized to %d players", roster.Lanes())
	return nil
}

// Advance moves every run forward by dt.
func (b *Board) Advance(dt time.Duration) {
	if dt <= 0 || b.timeline.Len() == 0 {
		return
	}
	b.timeline.Update(dt)
}

// Path resolves lane against the current bridges without starting a run.
func (b *Board) Path(lane int) model.Path {
	return model.Resolve(b.bridges, lane, b.Layout)
}

func (b *Board) start(lane int) {
	b.nextRun++
	r := newRun(b.nextRun, lane, b.assignments[lane], b.Path(lane))
	r.state = RUNNING
	delete(b.completed, lane)
	b.current[lane] = r.id
	b.inFlight.Put(lane)
	b.active = r

	log.Debugf("run %d: %s starts on lane %d, ends on %d", r.id, r.player, lane, r.path.EndLane)
	b.timeline.Progress(Duration).
		OnChange(r.advance).
		AddOnFinish(func() { b.finish(r) })
}

func (b *Board) finish(r *run) {
	r.state = COMPLETED
	if b.active == r {
		b.active = nil
	}
	if b.current[r.lane] != r.id {
		log.Debugf("run %d on lane %d superseded, dropping result", r.id, r.lane)
		return
	}
	b.inFlight.Remove(r.lane)
	b.completed[r.lane] = model.CompletedPath{Lane: r.lane, Path: r.path}

	res := model.Result{
		Player:  r.player,
		Prize:   b.Roster.PrizeAt(r.path.EndLane),
		Lane:    r.lane,
		EndLane: r.path.EndLane,
	}
	log.Debugf("run %d: %s gets %s", r.id, res.Player, res.Prize)
	if b.OnFinish != nil {
		b.OnFinish(res)
	}
}

func (b *Board) Assignment(lane int) (string, bool) {
	p, ok := b.assignments[lane]
	return p, ok
}

func (b *Board) Queue() []string {
	return append([]string(nil), b.queue...)
}

// CurrentPlayer is the player who picks next, "" once everybody has a lane.
func (b *Board) CurrentPlayer() string {
	if len(b.queue) == 0 {
		return ""
	}
	return b.queue[0]
}

func (b *Board) Completed() map[int]model.CompletedPath {
	out := make(map[int]model.CompletedPath, len(b.completed))
	for k, v := range b.completed {
		out[k] = v
	}
	return out
}

// Running reports whether the lane's latest run has yet to finish.
func (b *Board) Running(lane int) bool {
	return b.inFlight.Has(lane)
}

// Busy reports whether any run, current or superseded, is still animating.
func (b *Board) Busy() bool {
	return b.timeline.Len() > 0
}

// Marker is the moving token of the most recently started run.
func (b *Board) Marker() (*model.Marker, bool) {
	if b.active == nil {
		return nil, false
	}
	return b.active.marker(), true
}

func (b *Board) Bridges() []model.Bridge {
	return append([]model.Bridge(nil), b.bridges...)
}

func (b *Board) UserBridges() []model.Bridge {
	return append([]model.Bridge(nil), b.user...)
}

// Winner returns the player whose finished trace ends on endLane. When several
// do, the lowest start lane wins.
func (b *Board) Winner(endLane int) (string, bool) {
	for _, lane := range b.completedLanes() {
		if b.completed[lane].Path.EndLane == endLane {
			return b.assignments[lane], true
		}
	}
	return "", false
}

func (b *Board) completedLanes() []int {
	lanes := make([]int, 0, len(b.completed))
	for lane := range b.completed {
		lanes = append(lanes, lane)
	}
	sort.Ints(lanes)
	return lanes
}
