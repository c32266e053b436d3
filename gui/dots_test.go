//go:build gui

package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"keyglow/glow"
)

func TestDotStripHintOnHover(t *testing.T) {
	test.NewTempApp(t)
	d := NewDotStrip()
	r := test.TempWidgetRenderer(t, d).(*dotRenderer)
	d.Resize(fyne.NewSize(wideWidth, windowHeight))

	var hovers []bool
	d.OnHover = func(inside bool) { hovers = append(hovers, inside) }

	for i, h := range r.hints {
		if h.Visible() {
			t.Errorf("hint %d visible before hover", i)
		}
	}

	d.MouseIn(&desktop.MouseEvent{})
	for i, h := range r.hints {
		if !h.Visible() || h.Text != hintLines[i] {
			t.Errorf("hint %d = %q visible=%v while hovered", i, h.Text, h.Visible())
		}
	}
	if x := r.cores[0].Position().X + dotRadius; x != wideWidth-dotCell/2 {
		t.Errorf("hovered dot centre x = %v, want right edge", x)
	}

	d.MouseOut()
	for i, h := range r.hints {
		if h.Visible() {
			t.Errorf("hint %d still visible after hover", i)
		}
	}
	if len(hovers) != 2 || !hovers[0] || hovers[1] {
		t.Errorf("OnHover calls = %v, want [true false]", hovers)
	}
}

func TestDotStripColors(t *testing.T) {
	test.NewTempApp(t)
	d := NewDotStrip()
	r := test.TempWidgetRenderer(t, d).(*dotRenderer)

	hot := glow.DotColors(5)
	d.SetColors(hot)
	d.Refresh()
	for i := range r.cores {
		if r.cores[i].FillColor != hot[i] {
			t.Errorf("core %d = %v, want %v", i, r.cores[i].FillColor, hot[i])
		}
		if r.halos[i].FillColor != glow.Glow(hot[i]) {
			t.Errorf("halo %d = %v", i, r.halos[i].FillColor)
		}
	}
}
