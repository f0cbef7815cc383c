package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/zucenko/ghostleg/model"
)

const (
	left    = 2
	top     = 2 // first ladder row, below the player labels
	spacing = 10
	footer  = 4 // prize row, winner row, blank, status line
)

// Palette gives every start lane its own colour; it wraps after twelve lanes.
var Palette = []tcell.Color{
	tcell.NewRGBColor(0xFF, 0x6B, 0x6B), tcell.NewRGBColor(0x4E, 0xCD, 0xC4),
	tcell.NewRGBColor(0x45, 0xB7, 0xD1), tcell.NewRGBColor(0x96, 0xCE, 0xB4),
	tcell.NewRGBColor(0xFF, 0xEE, 0xAD), tcell.NewRGBColor(0xD4, 0xA5, 0xA5),
	tcell.NewRGBColor(0x9B, 0x59, 0xB6), tcell.NewRGBColor(0x34, 0x98, 0xDB),
	tcell.NewRGBColor(0xE7, 0x4C, 0x3C), tcell.NewRGBColor(0x2E, 0xCC, 0x71),
	tcell.NewRGBColor(0xF1, 0xC4, 0x0F), tcell.NewRGBColor(0xE6, 0x7E, 0x22),
}

var (
	styleLane   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleUser   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x4E, 0xCD, 0xC4))
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

func laneStyle(lane int) tcell.Style {
	return tcell.StyleDefault.Foreground(Palette[lane%len(Palette)])
}

// grid maps layout pixels onto terminal cells.
type grid struct {
	layout model.Layout
	height int // ladder rows on screen
	ladder int // ladder height in rows
}

func newGrid(layout model.Layout, ladderHeight, screenHeight int) grid {
	h := screenHeight - top - footer
	if h < 2 {
		h = 2
	}
	return grid{layout: layout, height: h, ladder: ladderHeight}
}

func (g grid) laneCol(lane int) int {
	return left + lane*spacing
}

func (g grid) col(px float64) int {
	return left + int(math.Round((px/g.layout.ColWidth-1)*spacing))
}

func (g grid) row(py float64) int {
	return top + int(math.Round(py/g.layout.CanvasHeight*float64(g.height-1)))
}

func (g grid) bottom() int {
	return top + g.height - 1
}

// ladderRow converts a screen row back to a ladder row.
func (g grid) ladderRow(y int) int {
	return int(math.Round(float64(y-top) / float64(g.height-1) * float64(g.ladder)))
}

// laneAt returns the lane drawn at column x.
func (g grid) laneAt(x int) (int, bool) {
	if x < left || (x-left)%spacing != 0 {
		return 0, false
	}
	lane := (x - left) / spacing
	return lane, lane < g.layout.Lanes
}

// gapAt returns the gap whose bridge cells cover column x.
func (g grid) gapAt(x int) (int, bool) {
	if x <= left || (x-left)%spacing == 0 {
		return 0, false
	}
	gap := (x - left) / spacing
	return gap, gap < g.layout.Lanes-1
}

// Draw renders f onto screen.
func Draw(screen tcell.Screen, f model.Frame, layout model.Layout, ladderHeight int, status string) {
	_, h := screen.Size()
	g := newGrid(layout, ladderHeight, h)
	screen.Clear()

	for lane := 0; lane < f.Lanes; lane++ {
		x := g.laneCol(lane)
		for y := top; y <= g.bottom(); y++ {
			screen.SetContent(x, y, '│', nil, styleLane)
		}
		label := fmt.Sprintf("%d", lane+1)
		style := styleLane
		if p := f.Players[lane]; p != "" {
			label = fmt.Sprintf("%d.%s", lane+1, p)
			style = laneStyle(lane).Bold(true)
		}
		putString(screen, x, 0, clip(label), style)
		putString(screen, x, g.bottom()+1, clip(f.Prizes[lane]), styleLane)
		if w := f.Winners[lane]; w != "" {
			putString(screen, x, g.bottom()+2, clip("("+w+")"), styleLane.Bold(true))
		}
	}

	for _, b := range f.Bridges {
		drawBridge(screen, g, b, '─', styleLane)
	}
	for _, b := range f.UserBridges {
		drawBridge(screen, g, b, '┄', styleUser)
	}

	for _, cp := range f.Completed {
		drawPolyline(screen, g, cp.Path.Points, laneStyle(cp.Lane))
	}
	if m := f.Marker; m != nil {
		style := laneStyle(m.Lane).Bold(true)
		drawPolyline(screen, g, m.Trail, style)
		screen.SetContent(g.col(m.Pos.X), g.row(m.Pos.Y), '●', nil, style)
	}

	putString(screen, 0, h-1, status, styleStatus)
	screen.Show()
}

func drawBridge(screen tcell.Screen, g grid, b model.Bridge, r rune, style tcell.Style) {
	y := g.row(g.layout.RowY(b.Row))
	for x := g.laneCol(b.Lane) + 1; x < g.laneCol(b.Lane+1); x++ {
		screen.SetContent(x, y, r, nil, style)
	}
}

// drawPolyline draws the axis aligned segments of a ladder path.
func drawPolyline(screen tcell.Screen, g grid, points []model.Point, style tcell.Style) {
	for i := 1; i < len(points); i++ {
		x0, y0 := g.col(points[i-1].X), g.row(points[i-1].Y)
		x1, y1 := g.col(points[i].X), g.row(points[i].Y)
		if x0 == x1 {
			if y1 < y0 {
				y0, y1 = y1, y0
			}
			for y := y0; y <= y1; y++ {
				screen.SetContent(x0, y, '┃', nil, style)
			}
			continue
		}
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		for x := x0 + 1; x < x1; x++ {
			screen.SetContent(x, y1, '━', nil, style)
		}
	}
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > spacing-1 {
		return string(r[:spacing-1])
	}
	return s
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
