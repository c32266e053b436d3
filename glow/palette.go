// Package glow maps a key-press frequency onto an animated level and the
// colours of the three indicator dots.
package glow

import (
	"fmt"
	"image/color"
)

// Palette runs from idle gray through greens and yellows to magenta.
var Palette = [...]color.RGBA{
	{0x33, 0x33, 0x33, 0xff}, // 0: gray (idle)
	{0x00, 0x44, 0x00, 0xff}, // 1: dark green
	{0x00, 0x88, 0x00, 0xff}, // 2: green
	{0x00, 0xcc, 0x00, 0xff}, // 3: bright green
	{0x44, 0xff, 0x00, 0xff}, // 4: green-yellow
	{0x88, 0xff, 0x00, 0xff}, // 5: yellow-green
	{0xcc, 0xff, 0x00, 0xff}, // 6: lime
	{0xff, 0xff, 0x00, 0xff}, // 7: yellow
	{0xff, 0xcc, 0x00, 0xff}, // 8: amber
	{0xff, 0x99, 0x00, 0xff}, // 9: orange
	{0xff, 0x66, 0x00, 0xff}, // 10: orange-red
	{0xff, 0x33, 0x00, 0xff}, // 11: red-orange
	{0xff, 0x00, 0x00, 0xff}, // 12: red
	{0xff, 0x00, 0x66, 0xff}, // 13: magenta (highest)
}

// dotTable holds palette indices for the top, middle and bottom dot.
var dotTable = [...][3]int{
	{0, 0, 0},
	{3, 2, 1},
	{6, 5, 4},
	{9, 8, 7},
	{12, 11, 10},
	{13, 13, 13},
}

// Levels is the number of distinct dot arrangements.
const Levels = len(dotTable)

// DotIndices returns palette indices for the three dots at level.
// Negative levels read as idle; levels past the table read as the top row.
func DotIndices(level int) [3]int {
	if level < 0 {
		level = 0
	}
	if level >= len(dotTable) {
		level = len(dotTable) - 1
	}
	return dotTable[level]
}

func DotColors(level int) [3]color.RGBA {
	idx := DotIndices(level)
	var out [3]color.RGBA
	for i, n := range idx {
		out[i] = Palette[n]
	}
	return out
}

// Hex renders a palette entry as "#RRGGBB".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Glow returns c with the translucent alpha used for the halo behind a dot.
func Glow(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 100}
}
