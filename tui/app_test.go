package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/board"
	"github.com/zucenko/ghostleg/model"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)

	ladder := &model.Ladder{
		Lanes:   4,
		Height:  model.Height,
		Bridges: []model.Bridge{{Lane: 0, Row: 20}, {Lane: 2, Row: 20}, {Lane: 1, Row: 50}},
	}
	roster := model.Roster{
		Players: []string{"Alice", "Bob", "Charlie", "Dave"},
		Prizes:  []string{"p0", "p1", "p2", "p3"},
	}
	b, err := board.New(ladder, roster, model.NewLayout(4, model.Height))
	require.NoError(t, err)
	a := &App{Screen: screen, Board: b, rnd: rand.New(rand.NewSource(1)), clock: anim.NewClock(nil)}
	b.OnFinish = a.finished
	return a
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		sb.WriteRune(runeAt(s, x, y))
	}
	return sb.String()
}

func draw(a *App) {
	Draw(a.Screen, a.Board.Frame(), a.Board.Layout, a.Board.Ladder.Height, a.Status())
}

func TestGrid(t *testing.T) {
	g := newGrid(model.NewLayout(4, model.Height), model.Height, 24)
	assert.Equal(t, 19, g.bottom())
	assert.Equal(t, 2, g.col(120))
	assert.Equal(t, 12, g.col(240))
	assert.Equal(t, 7, g.col(180))
	assert.Equal(t, 2, g.row(0))
	assert.Equal(t, 19, g.row(400))
	assert.Equal(t, 0, g.ladderRow(2))
	assert.Equal(t, 100, g.ladderRow(19))

	lane, ok := g.laneAt(22)
	assert.True(t, ok)
	assert.Equal(t, 2, lane)
	_, ok = g.laneAt(42)
	assert.False(t, ok)

	gap, ok := g.gapAt(25)
	assert.True(t, ok)
	assert.Equal(t, 2, gap)
	_, ok = g.gapAt(35)
	assert.False(t, ok, "right of the last lane")
	_, ok = g.gapAt(12)
	assert.False(t, ok, "on a lane line")
}

func TestDrawLadder(t *testing.T) {
	a := newTestApp(t)
	draw(a)

	assert.Equal(t, '│', runeAt(a.Screen, 2, 5))
	assert.Equal(t, '│', runeAt(a.Screen, 32, 19))
	// row 20 sits on screen row 2+round(0.2*17)=5
	assert.Equal(t, '─', runeAt(a.Screen, 7, 5))
	assert.Equal(t, '─', runeAt(a.Screen, 27, 5))
	assert.Equal(t, ' ', runeAt(a.Screen, 17, 5))

	assert.True(t, strings.HasPrefix(rowText(a.Screen, 0, 80), "  1         2"))
	assert.Contains(t, rowText(a.Screen, 20, 80), "p0")
	assert.Contains(t, rowText(a.Screen, 23, 80), "Current turn: Alice")
}

func TestKeysPlayAndReplay(t *testing.T) {
	a := newTestApp(t)
	assert.True(t, a.HandleRune('1'))
	p, ok := a.Board.Assignment(0)
	require.True(t, ok)
	assert.Equal(t, "Alice", p)

	a.Board.Advance(time.Second)
	draw(a)
	assert.Contains(t, rowText(a.Screen, 0, 80), "1.Alice")
	found := false
	for y := 0; y < 24 && !found; y++ {
		found = strings.ContainsRune(rowText(a.Screen, y, 80), '●')
	}
	assert.True(t, found, "marker is drawn")

	a.Board.Advance(board.Duration)
	assert.Contains(t, a.Status(), "Current turn: Bob")
	assert.Contains(t, a.Status(), "Alice gets p2!")
	draw(a)
	assert.Contains(t, rowText(a.Screen, 21, 80), "(Alice)")

	assert.True(t, a.HandleRune('x'))
	assert.Len(t, a.Board.Queue(), 4)
	assert.False(t, a.HandleRune('q'))
}

func TestClickAddsBridgeAndSelects(t *testing.T) {
	a := newTestApp(t)
	a.HandleClick(7, 10)
	assert.Equal(t, []model.Bridge{{Lane: 0, Row: 47, User: true}}, a.Board.UserBridges())

	a.HandleClick(7, 22)
	assert.Len(t, a.Board.UserBridges(), 1, "below the ladder")

	a.HandleClick(14, 0)
	p, ok := a.Board.Assignment(1)
	assert.True(t, ok, "clicking a label selects its lane")
	assert.Equal(t, "Alice", p)

	a.HandleClick(22, 8)
	p, _ = a.Board.Assignment(2)
	assert.Equal(t, "Bob", p)

	assert.True(t, a.HandleRune('r'))
	assert.Empty(t, a.Board.UserBridges())
}

func TestRegenerate(t *testing.T) {
	a := newTestApp(t)
	old := a.Board.Ladder
	a.HandleRune('1')
	a.HandleRune('n')
	assert.NotSame(t, old, a.Board.Ladder)
	assert.Equal(t, 4, a.Board.Ladder.Lanes)
	assert.Len(t, a.Board.Queue(), 4)
}

func TestResizeKeys(t *testing.T) {
	a := newTestApp(t)
	a.HandleRune('1')

	assert.True(t, a.HandleRune('+'))
	assert.Equal(t, 5, a.Board.Ladder.Lanes)
	assert.Equal(t, 5, a.Board.Layout.Lanes)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie", "Dave", "P5"}, a.Board.Queue())
	assert.Empty(t, a.Board.Completed())

	a.HandleRune('-')
	a.HandleRune('-')
	assert.Equal(t, 3, a.Board.Ladder.Lanes)
	assert.Equal(t, []string{"p0", "p1", "p2"}, a.Board.Roster.Prizes)
	draw(a)
	assert.Equal(t, '│', runeAt(a.Screen, left+2*spacing, top))
}

func TestNewApp(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	_, err := NewApp(screen, model.Roster{Players: []string{"a"}, Prizes: []string{"b"}}, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, model.ErrRosterMismatch)

	a, err := NewApp(screen, model.DefaultRoster(rand.New(rand.NewSource(1))), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 4, a.Board.Ladder.Lanes)
}
