package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/board"
	"github.com/zucenko/ghostleg/model"
)

// App plays one board in a terminal.
type App struct {
	Screen tcell.Screen
	Board  *board.Board
	// Chime, when set, is played for every finished run.
	Chime func()

	rnd     *rand.Rand
	clock   *anim.Clock
	last    string
	pressed bool
}

func NewApp(screen tcell.Screen, roster model.Roster, rnd *rand.Rand) (*App, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	ladder, err := model.NewLadder(roster.Lanes(), rnd)
	if err != nil {
		return nil, err
	}
	b, err := board.New(ladder, roster, model.NewLayout(ladder.Lanes, ladder.Height))
	if err != nil {
		return nil, err
	}
	a := &App{Screen: screen, Board: b, rnd: rnd, clock: anim.NewClock(nil)}
	b.OnFinish = a.finished
	return a, nil
}

func (a *App) finished(r model.Result) {
	a.last = fmt.Sprintf("%s gets %s!", r.Player, r.Prize)
	log.Infof("lane %d: %s", r.Lane, a.last)
	if a.Chime != nil {
		a.Chime()
	}
}

// Status is the bottom line: whose turn it is and the latest result.
func (a *App) Status() string {
	s := "All players have chosen! Pick any lane to replay."
	if p := a.Board.CurrentPlayer(); p != "" {
		s = fmt.Sprintf("Current turn: %s. Pick a lane (1-9) or click a name.", p)
	}
	if a.last != "" {
		s += "  " + a.last
	}
	return s
}

func (a *App) grid() grid {
	_, h := a.Screen.Size()
	return newGrid(a.Board.Layout, a.Board.Ladder.Height, h)
}

// HandleRune applies a key press and reports whether the app keeps running.
func (a *App) HandleRune(r rune) bool {
	switch {
	case r >= '1' && r <= '9':
		a.Board.SelectLane(int(r - '1'))
	case r == 'r':
		a.Board.ResetUserBridges()
	case r == 'x':
		a.Board.ResetGame()
		a.last = ""
	case r == 'n':
		a.regenerate()
	case r == '+' || r == '=':
		a.resize(a.Board.Ladder.Lanes + 1)
	case r == '-':
		a.resize(a.Board.Ladder.Lanes - 1)
	case r == 'q':
		return false
	}
	return true
}

func (a *App) regenerate() {
	ladder, err := model.NewLadder(a.Board.Ladder.Lanes, a.rnd)
	if err != nil {
		log.Warnf("new ladder: %v", err)
		return
	}
	if err := a.Board.NewRound(ladder); err != nil {
		log.Warnf("new round: %v", err)
		return
	}
	a.last = ""
}

func (a *App) resize(n int) {
	if err := a.Board.Resize(n, a.rnd); err != nil {
		log.Warnf("resize to %d: %v", n, err)
		return
	}
	a.last = ""
	a.Screen.Clear()
}

// HandleClick selects a lane when its label or line is clicked and adds a bridge
// when a gap between two lanes is clicked.
func (a *App) HandleClick(x, y int) {
	g := a.grid()
	if y == 0 && x >= left {
		a.Board.SelectLane((x - left) / spacing)
		return
	}
	if lane, ok := g.laneAt(x); ok && y <= g.bottom() {
		a.Board.SelectLane(lane)
		return
	}
	if y < top || y > g.bottom() {
		return
	}
	if gap, ok := g.gapAt(x); ok {
		a.Board.AddUserBridge(gap, g.ladderRow(y))
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return a.HandleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.pressed {
			a.HandleClick(ev.Position())
		}
		a.pressed = down
	case *tcell.EventResize:
		a.Screen.Sync()
	}
	return true
}

// Tick advances the board by the wall time since the last tick and redraws.
func (a *App) Tick() {
	a.Board.Advance(a.clock.Step())
	Draw(a.Screen, a.Board.Frame(), a.Board.Layout, a.Board.Ladder.Height, a.Status())
}

func (a *App) Run() {
	a.Screen.EnableMouse()
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.Screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.Tick()
		}
	}
}
