package anim

import (
	"math"

	"github.com/zucenko/ghostleg/model"
)

// Length is the total polyline length of points.
func Length(points []model.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += dist(points[i-1], points[i])
	}
	return total
}

// Trace locates the point at arc-length fraction progress along points. The trail
// is every waypoint already passed plus that point.
func Trace(points []model.Point, progress float64) (model.Point, []model.Point) {
	if len(points) == 0 {
		return model.Point{}, nil
	}
	if progress >= 1 {
		trail := append([]model.Point(nil), points...)
		return points[len(points)-1], trail
	}
	if progress < 0 {
		progress = 0
	}

	target := Length(points) * progress
	walked := 0.0
	trail := []model.Point{points[0]}
	for i := 1; i < len(points); i++ {
		prev, pt := points[i-1], points[i]
		seg := dist(prev, pt)
		if walked+seg >= target {
			f := 0.0
			if seg > 0 {
				f = (target - walked) / seg
			}
			pos := model.Point{
				X: prev.X + (pt.X-prev.X)*f,
				Y: prev.Y + (pt.Y-prev.Y)*f,
			}
			return pos, append(trail, pos)
		}
		trail = append(trail, pt)
		walked += seg
	}
	return points[len(points)-1], trail
}

func dist(a, b model.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
