package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"keyglow/glow"
)

const iconSize = 22

var (
	iconOnce  sync.Once
	iconBytes []byte
)

// trayIcon renders the three-dot mark in its red arrangement as a PNG.
func trayIcon() []byte {
	iconOnce.Do(func() {
		iconBytes = renderIcon(glow.DotColors(glow.Levels - 2))
	})
	return iconBytes
}

func renderIcon(colors [3]color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	cx := float64(iconSize) / 2
	for i, c := range colors {
		cy := 4 + float64(i)*7
		for y := 0; y < iconSize; y++ {
			for x := 0; x < iconSize; x++ {
				dx := float64(x) - cx + 0.5
				dy := float64(y) - cy + 0.5
				dist := math.Sqrt(dx*dx + dy*dy)
				switch {
				case dist < 2.5:
					img.Set(x, y, c)
				case dist < 3.5:
					img.Set(x, y, glow.Glow(c))
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
