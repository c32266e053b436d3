//go:build gui

package gui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"keyglow/glow"
)

const (
	dotCount   = 3
	dotRadius  = 5
	dotCell    = dotRadius*2 + 4
	dotSpacing = 5
	hintSize   = 8
)

// hintLines sit beside the dots while hovered. The window never takes focus
// on its own, so Esc only works after a click.
var hintLines = [dotCount]string{"click,", "Esc", "quits"}

// DotStrip draws three glowing dots stacked vertically. It also reports
// hover and drag gestures so the window can widen and follow the pointer.
type DotStrip struct {
	widget.BaseWidget

	mu      sync.Mutex
	colors  [dotCount]color.RGBA
	hovered bool

	OnHover func(inside bool)
	OnDrag  func(dx, dy float32)
}

var (
	_ desktop.Hoverable = (*DotStrip)(nil)
	_ fyne.Draggable    = (*DotStrip)(nil)
)

func NewDotStrip() *DotStrip {
	d := &DotStrip{colors: glow.DotColors(0)}
	d.ExtendBaseWidget(d)
	return d
}

// SetColors stores new dot colours; call Refresh on the UI goroutine to paint.
func (d *DotStrip) SetColors(c [dotCount]color.RGBA) {
	d.mu.Lock()
	d.colors = c
	d.mu.Unlock()
}

func (d *DotStrip) Colors() [dotCount]color.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.colors
}

func (d *DotStrip) Hovered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hovered
}

func (d *DotStrip) setHovered(inside bool) {
	d.mu.Lock()
	d.hovered = inside
	d.mu.Unlock()
	d.Refresh()
	if d.OnHover != nil {
		d.OnHover(inside)
	}
}

func (d *DotStrip) MouseIn(*desktop.MouseEvent) {
	d.setHovered(true)
}

func (d *DotStrip) MouseMoved(*desktop.MouseEvent) {}

func (d *DotStrip) MouseOut() {
	d.setHovered(false)
}

func (d *DotStrip) Dragged(ev *fyne.DragEvent) {
	if d.OnDrag != nil {
		d.OnDrag(ev.Dragged.DX, ev.Dragged.DY)
	}
}

func (d *DotStrip) DragEnd() {}

func (d *DotStrip) MinSize() fyne.Size {
	return fyne.NewSize(dotCell, dotCount*dotCell+(dotCount-1)*dotSpacing)
}

func (d *DotStrip) CreateRenderer() fyne.WidgetRenderer {
	r := &dotRenderer{strip: d}
	for i := range r.halos {
		r.halos[i] = canvas.NewCircle(color.Transparent)
		r.cores[i] = canvas.NewCircle(color.Transparent)
		r.hints[i] = canvas.NewText(hintLines[i], color.NRGBA{0xcc, 0xcc, 0xcc, 0xff})
		r.hints[i].TextSize = hintSize
		r.hints[i].Hide()
	}
	r.Refresh()
	return r
}

type dotRenderer struct {
	strip *DotStrip
	halos [dotCount]*canvas.Circle
	cores [dotCount]*canvas.Circle
	hints [dotCount]*canvas.Text
}

// Layout centres the dots, or pins them right with the hint to their left
// while hovered.
func (r *dotRenderer) Layout(size fyne.Size) {
	hovered := r.strip.Hovered()
	cx := size.Width / 2
	if hovered {
		cx = size.Width - dotCell/2
	}
	for i := 0; i < dotCount; i++ {
		cy := float32(i*(dotCell+dotSpacing)) + dotCell/2
		place(r.halos[i], cx, cy, dotRadius*1.5)
		place(r.cores[i], cx, cy, dotRadius)

		h := r.hints[i]
		if !hovered {
			h.Hide()
			continue
		}
		ts := h.MinSize()
		h.Move(fyne.NewPos(2, cy-ts.Height/2))
		h.Resize(ts)
		h.Show()
	}
}

func place(c *canvas.Circle, cx, cy, radius float32) {
	c.Move(fyne.NewPos(cx-radius, cy-radius))
	c.Resize(fyne.NewSize(radius*2, radius*2))
}

func (r *dotRenderer) MinSize() fyne.Size {
	return r.strip.MinSize()
}

func (r *dotRenderer) Refresh() {
	colors := r.strip.Colors()
	for i, c := range colors {
		r.halos[i].FillColor = glow.Glow(c)
		r.cores[i].FillColor = c
		r.halos[i].Refresh()
		r.cores[i].Refresh()
	}
	r.Layout(r.strip.Size())
}

func (r *dotRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, dotCount*3)
	for i := 0; i < dotCount; i++ {
		objs = append(objs, r.halos[i], r.cores[i], r.hints[i])
	}
	return objs
}

func (r *dotRenderer) Destroy() {}
