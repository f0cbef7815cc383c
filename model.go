package main

import (
	"fmt"
	"image/color"
)

func HexToF32(u uint32, id int) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b, id}
}

type GameColor struct {
	r  float64
	g  float64
	b  float64
	id int
}

func (c GameColor) RGBA(alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(c.r * alpha * 255),
		G: uint8(c.g * alpha * 255),
		B: uint8(c.b * alpha * 255),
		A: uint8(alpha * 255),
	}
}

var COLOR_BG = HexToF32(0x242424, 0)
var COLOR_LANE = HexToF32(0x444444, 0)
var COLOR_IDLE = HexToF32(0xaaaaaa, 0)
var COLOR_MUTED = HexToF32(0x888888, 0)
var COLOR_USER = HexToF32(0x4ecdc4, 0)
var COLOR_TEXT = HexToF32(0xffffff, 0)
var COLOR_ACCENT = HexToF32(0x646cff, 0)

// COLORS has one colour per start lane, wrapping after twelve.
var COLORS = []GameColor{
	HexToF32(0xff6b6b, 1), HexToF32(0x4ecdc4, 2), HexToF32(0x45b7d1, 3),
	HexToF32(0x96ceb4, 4), HexToF32(0xffeead, 5), HexToF32(0xd4a5a5, 6),
	HexToF32(0x9b59b6, 7), HexToF32(0x3498db, 8), HexToF32(0xe74c3c, 9),
	HexToF32(0x2ecc71, 10), HexToF32(0xf1c40f, 11), HexToF32(0xe67e22, 12),
}

func laneColor(lane int) GameColor {
	return COLORS[lane%len(COLORS)]
}

type GameState int

const (
	PICKING GameState = iota + 1
	RUNNING
	ALL_CHOSEN
)

func (s GameState) Name() string {
	switch s {
	case PICKING:
		return "PICKING"
	case RUNNING:
		return "RUNNING"
	case ALL_CHOSEN:
		return "ALL_CHOSEN"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}
