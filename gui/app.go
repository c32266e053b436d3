//go:build gui

package gui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"

	"keyglow/glow"
)

const (
	narrowWidth  = 15
	wideWidth    = 60
	windowHeight = 40
	// the widget sits this many window heights above the bottom edge
	bottomOffset = 5
)

// FrequencySource supplies the latest presses-per-window count.
type FrequencySource interface {
	Frequency() int
}

type Config struct {
	Animator *glow.Animator
	Frame    time.Duration
	// OnLevel is called from the frame goroutine when the visible level changes.
	OnLevel func(from, to, freq int)
	OnReady func()
}

type App struct {
	cfg     Config
	fyneApp fyne.App
	window  fyne.Window
	strip   *DotStrip

	screenW int
	screenH int
	posX    int
	posY    int
	width   int

	srcMu sync.Mutex
	src   FrequencySource

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewApp(cfg Config) *App {
	if cfg.Animator == nil {
		cfg.Animator = glow.NewAnimator(glow.Options{})
	}
	if cfg.Frame <= 0 {
		cfg.Frame = 50 * time.Millisecond
	}
	return &App{cfg: cfg, width: narrowWidth, stopCh: make(chan struct{})}
}

// Run builds the widget window and blocks in the Fyne event loop until Quit.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.keyglow.widget")
	a.fyneApp.Settings().SetTheme(&widgetTheme{})

	if desk, ok := a.fyneApp.(desktop.App); ok {
		menu := fyne.NewMenu("keyglow",
			fyne.NewMenuItem("Quit", a.Quit),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(fyne.NewStaticResource("tray.png", trayIcon()))
	}

	monitor := glfw.GetPrimaryMonitor()
	if monitor != nil {
		_, _, a.screenW, a.screenH = monitor.GetWorkarea()
	} else {
		a.screenW, a.screenH = 1920, 1080 // fallback
	}

	// Frameless, no taskbar entry
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("keyglow")
	}

	a.strip = NewDotStrip()
	a.strip.OnHover = a.hover
	a.strip.OnDrag = a.drag

	a.window.SetContent(a.strip)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)
	a.window.Resize(fyne.NewSize(narrowWidth, windowHeight))
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.Quit()
		}
	})

	a.posX = a.screenW - a.width
	a.posY = a.screenH - bottomOffset*windowHeight

	a.fyneApp.Lifecycle().SetOnStarted(func() {
		a.show()
		go a.animate()
		if a.cfg.OnReady != nil {
			go a.cfg.OnReady()
		}
	})

	a.fyneApp.Run()
	a.stop()
	return nil
}

// Attach sets the frequency the dots follow. Until then they stay idle.
func (a *App) Attach(src FrequencySource) {
	a.srcMu.Lock()
	a.src = src
	a.srcMu.Unlock()
}

// Quit stops the frame ticker and ends the event loop. Only the first call
// has an effect, including the implicit one when Run returns.
func (a *App) Quit() {
	a.stopOnce.Do(func() {
		close(a.stopCh)
		if a.fyneApp != nil {
			fyne.Do(a.fyneApp.Quit)
		}
	})
}

func (a *App) stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

// show must run on the UI goroutine.
func (a *App) show() {
	if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
		glfwWin.SetPos(a.posX, a.posY)
		glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
		glfwWin.SetAttrib(glfw.Floating, glfw.True)
	}
	a.window.Show()
}

func (a *App) animate() {
	ticker := time.NewTicker(a.cfg.Frame)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.frame()
		}
	}
}

func (a *App) frame() {
	a.srcMu.Lock()
	src := a.src
	a.srcMu.Unlock()

	freq := 0
	if src != nil {
		freq = src.Frequency()
	}
	prev := a.cfg.Animator.Level()
	level := a.cfg.Animator.Step(freq)
	if level != prev && a.cfg.OnLevel != nil {
		a.cfg.OnLevel(prev, level, freq)
	}
	a.strip.SetColors(glow.DotColors(level))
	fyne.Do(func() {
		a.strip.Refresh()
	})
}

// hover widens the window while the pointer is over it, keeping it docked
// to the right edge of the work area.
func (a *App) hover(inside bool) {
	width := narrowWidth
	if inside {
		width = wideWidth
	}
	if width == a.width {
		return
	}
	a.width = width
	a.posX = a.screenW - width
	a.window.Resize(fyne.NewSize(float32(width), windowHeight))
	if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
		glfwWin.SetPos(a.posX, a.posY)
	}
}

func (a *App) drag(dx, dy float32) {
	a.posX += int(dx)
	a.posY += int(dy)
	if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
		glfwWin.SetPos(a.posX, a.posY)
	}
}
