package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/ghostleg/anim"
	"github.com/zucenko/ghostleg/board"
	"github.com/zucenko/ghostleg/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	offsetY    = 70  // canvas top, leaves room for the header and player labels
	footerSize = 180 // prize and winner labels
	tapSlop    = 8   // a press that moves further is not a click
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press from down to release.
type Stroke struct {
	source StrokeSource

	initX, initY       int
	currentX, currentY int

	released bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

// IsTap reports whether the stroke stayed where it started.
func (s *Stroke) IsTap() bool {
	dx := s.currentX - s.initX
	dy := s.currentY - s.initY
	return math.Abs(float64(dx)) <= tapSlop && math.Abs(float64(dy)) <= tapSlop
}

type Game struct {
	Board   *board.Board
	strokes map[*Stroke]struct{}

	rnd        *rand.Rand
	clock      *anim.Clock
	lastResult string
	face       font.Face
	lane       *Nine
	dot        *Nine
	width      int
	height     int
}

func NewGame(rnd *rand.Rand) (*Game, error) {
	roster := Load(rnd)
	ladder, err := model.NewLadder(roster.Lanes(), rnd)
	if err != nil {
		return nil, err
	}
	layout := model.NewLayout(ladder.Lanes, ladder.Height)
	b, err := board.New(ladder, roster, layout)
	if err != nil {
		return nil, err
	}

	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	lane, err := newDot(2)
	if err != nil {
		return nil, err
	}
	dot, err := newDot(8)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Board:   b,
		strokes: map[*Stroke]struct{}{},
		rnd:     rnd,
		clock:   anim.NewClock(nil),
		face: truetype.NewFace(tt, &truetype.Options{
			Size:    14,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
		lane:   lane,
		dot:    dot,
		width:  int(layout.Width),
		height: offsetY + int(layout.CanvasHeight) + footerSize,
	}
	b.OnFinish = func(r model.Result) {
		g.lastResult = fmt.Sprintf("%s gets %s!", r.Player, r.Prize)
		log.Info(g.lastResult)
	}
	return g, nil
}

func (g *Game) State() GameState {
	switch {
	case g.Board.Busy():
		return RUNNING
	case g.Board.CurrentPlayer() == "":
		return ALL_CHOSEN
	default:
		return PICKING
	}
}

// click handles a tap at screen position x, y.
func (g *Game) click(x, y int) {
	l := g.Board.Layout
	cx, cy := float64(x), float64(y-offsetY)
	if cy >= -30 && cy <= 10 {
		if lane, ok := l.LaneAt(cx); ok {
			g.Board.SelectLane(lane)
		}
		return
	}
	if cy > 0 && cy < l.CanvasHeight {
		g.Board.AddUserBridgeAt(cx, cy)
	}
}

func (g *Game) regenerate() {
	ladder, err := model.NewLadder(g.Board.Ladder.Lanes, g.rnd)
	if err != nil {
		log.Warnf("new ladder: %v", err)
		return
	}
	if err := g.Board.NewRound(ladder); err != nil {
		log.Warnf("new round: %v", err)
		return
	}
	g.lastResult = ""
}

func (g *Game) resize(n int) {
	if err := g.Board.Resize(n, g.rnd); err != nil {
		log.Warnf("resize to %d: %v", n, err)
		return
	}
	g.lastResult = ""
	g.width = int(g.Board.Layout.Width)
	ebiten.SetScreenSize(g.width, g.height)
}

func (g *Game) input() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		s.Update()
		if s.IsReleased() {
			if s.IsTap() {
				g.click(s.currentX, s.currentY)
			}
			delete(g.strokes, s)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Board.ResetUserBridges()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.Board.ResetGame()
		g.lastResult = ""
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.regenerate()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.resize(g.Board.Ladder.Lanes + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.resize(g.Board.Ladder.Lanes - 1)
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.Board.Advance(g.clock.Step())
	g.input()

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	if err := screen.Fill(COLOR_BG.RGBA(1)); err != nil {
		log.Printf("%v", err)
	}
	g.draw(screen, g.Board.Frame())
	ebitenutil.DebugPrintAt(screen, g.State().Name(), g.width-90, 0)
	return nil
}

func (g *Game) draw(screen *ebiten.Image, f model.Frame) {
	l := g.Board.Layout
	y := func(py float64) float64 { return py + offsetY }

	header := "All players have chosen! Click any player to replay."
	if p := f.CurrentPlayer; p != "" {
		header = fmt.Sprintf("Current Turn: %s. Choose a starting point to begin.", p)
	}
	text.Draw(screen, header, g.face, 10, 20, COLOR_ACCENT.RGBA(1))
	hint := "Click between lines to add bridges. R: reset bridges  X: reset game  N: new ladder  +/-: players"
	if len(f.UserBridges) == 0 {
		hint = "Click between lines to add bridges. X: reset game  N: new ladder  +/-: players"
	}
	text.Draw(screen, hint, g.face, 10, 38, COLOR_MUTED.RGBA(1))

	done := map[int]bool{}
	for _, cp := range f.Completed {
		done[cp.Lane] = true
	}

	for i, x := range f.LaneX {
		g.lane.SetColor(COLOR_LANE, 1)
		g.lane.Draw(screen, x-2, y(0), 4, l.CanvasHeight)

		label, c := fmt.Sprintf("%d", i+1), COLOR_IDLE
		if p := f.Players[i]; p != "" {
			c = laneColor(i)
			label = fmt.Sprintf("%d.%s", i+1, p)
			if done[i] {
				label = "✓ " + label
			}
		}
		text.Draw(screen, label, g.face, int(x)-len(label)*3, int(y(-14)), c.RGBA(1))
		g.dot.Scale = 6.0 / 8
		g.dot.SetColor(c, 1)
		if f.Players[i] == "" {
			g.dot.SetColor(COLOR_MUTED, 1)
		}
		g.dot.DrawCentered(screen, x, y(0))

		// stagger prize labels so neighbours do not overlap
		py := int(y(l.CanvasHeight)) + 24 + (i%2)*36
		prize, pc := f.Prizes[i], COLOR_IDLE
		if w := f.Winners[i]; w != "" {
			prize, pc = fmt.Sprintf("%s (%s)", prize, w), COLOR_TEXT
		}
		text.Draw(screen, prize, g.face, int(x)-len(f.Prizes[i])*3, py, pc.RGBA(1))
	}

	for _, b := range f.Bridges {
		by := y(l.RowY(b.Row))
		ebitenutil.DrawLine(screen, l.LaneX(b.Lane), by, l.LaneX(b.Lane+1), by, COLOR_LANE.RGBA(1))
		ebitenutil.DrawLine(screen, l.LaneX(b.Lane), by+1, l.LaneX(b.Lane+1), by+1, COLOR_LANE.RGBA(1))
	}
	for _, b := range f.UserBridges {
		by := y(l.RowY(b.Row))
		// dashed
		for x := l.LaneX(b.Lane); x < l.LaneX(b.Lane+1); x += 10 {
			end := math.Min(x+5, l.LaneX(b.Lane+1))
			ebitenutil.DrawLine(screen, x, by, end, by, COLOR_USER.RGBA(1))
			ebitenutil.DrawLine(screen, x, by+1, end, by+1, COLOR_USER.RGBA(1))
		}
	}

	for _, cp := range f.Completed {
		g.polyline(screen, cp.Path.Points, laneColor(cp.Lane).RGBA(0.8), 3)
	}
	if m := f.Marker; m != nil {
		c := laneColor(m.Lane)
		g.polyline(screen, m.Trail, c.RGBA(1), 4)
		g.dot.Scale = 1
		g.dot.SetColor(c, 1)
		g.dot.DrawCentered(screen, m.Pos.X, y(m.Pos.Y))
	}

	if g.lastResult != "" {
		text.Draw(screen, g.lastResult, g.face, 10, g.height-16, COLOR_TEXT.RGBA(1))
	}
}

// polyline draws a ladder path width pixels wide. Paths only run along the
// axes, so thickening is a matter of offsetting copies.
func (g *Game) polyline(screen *ebiten.Image, points []model.Point, c color.Color, width int) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		for w := 0; w < width; w++ {
			d := float64(w) - float64(width-1)/2
			if a.X == b.X {
				ebitenutil.DrawLine(screen, a.X+d, a.Y+offsetY, b.X+d, b.Y+offsetY, c)
			} else {
				ebitenutil.DrawLine(screen, a.X, a.Y+offsetY+d, b.X, b.Y+offsetY+d, c)
			}
		}
	}
}

func main() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	g, err := NewGame(rnd)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.Run(g.update, g.width, g.height, 1, "Ghost Leg (Amidakuji)"); err != nil {
		log.Fatal(err)
	}
}
