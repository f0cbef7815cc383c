package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-slice image: corners keep their size, edges and centre
// stretch to fill the target rectangle.
type Nine struct {
	images         *ebiten.Image
	alpha          float64
	R, G, B, Scale float64
	// cuts are the source x and y borders of the slices: 0, inner start,
	// inner end, full size
	cuts [4]int
}

// newDot builds a filled circle used both for lanes (stretched) and the marker.
func newDot(radius int) (*Nine, error) {
	size := radius*2 + 1
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-radius, y-radius
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, color.White)
			}
		}
	}
	dot, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: dot,
		alpha:  1,
		R:      1, G: 1, B: 1, Scale: 1,
		cuts: [4]int{0, radius, radius + 1, size},
	}, nil
}

func (n *Nine) SetColor(c GameColor, alpha float64) {
	n.R, n.G, n.B = c.r, c.g, c.b
	n.alpha = alpha
}

// Draw stretches the slices over the rectangle x, y, width, height.
func (n *Nine) Draw(screen *ebiten.Image, x, y, width, height float64) {
	corner := n.Scale * float64(n.cuts[1])
	far := n.Scale * float64(n.cuts[3]-n.cuts[2])
	innerW := width - corner - far
	innerH := height - corner - far
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	centre := float64(n.cuts[2] - n.cuts[1])

	xs := [3]float64{x, x + corner, x + corner + innerW}
	ys := [3]float64{y, y + corner, y + corner + innerH}
	sx := [3]float64{n.Scale, innerW / centre, n.Scale}
	sy := [3]float64{n.Scale, innerH / centre, n.Scale}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.cuts[col], n.cuts[row], n.cuts[col+1], n.cuts[row+1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(sx[col], sy[row])
			op.GeoM.Translate(xs[col], ys[row])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}

// DrawCentered draws the unstretched image centred on x, y.
func (n *Nine) DrawCentered(screen *ebiten.Image, x, y float64) {
	half := n.Scale * float64(n.cuts[3]) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(n.Scale, n.Scale)
	op.GeoM.Translate(x-half, y-half)
	op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
	screen.DrawImage(n.images, op)
}
