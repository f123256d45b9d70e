//go:build !headless

// Package window implements a desktop window frontend with keyboard input.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// Available reports whether the window frontend is part of the build.
const Available = true

const statusBarHeight = 16

var (
	foreground = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	background = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

// Options configures the window.
type Options struct {
	Title      string
	Scale      int
	FrameRate  int
	Fullscreen bool
	StatusBar  bool
}

// Window presents frames in a scaled window and reads the keypad from the keyboard.
// All methods are called from the ebiten game loop.
type Window struct {
	logger  *log.Logger
	options Options
	ctx     context.Context
	runner  *runner.Runner
	keymap  map[ebiten.Key]byte

	mu     sync.RWMutex
	pixels []byte
	frame  machine.FrameBuffer
	keys   machine.Keypad
	quit   bool

	image         *ebiten.Image
	fullscreen    bool
	showStatusBar bool
	err           error

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New returns a new window frontend.
func New(logger *log.Logger, options Options) *Window {
	w := &Window{
		logger:        logger,
		options:       options,
		keymap:        keymap(),
		pixels:        make([]byte, machine.ScreenWidth*machine.ScreenHeight*4),
		fullscreen:    options.Fullscreen,
		showStatusBar: options.StatusBar,
	}
	_ = w.Present(machine.FrameBuffer{})
	return w
}

// keymap maps the keyboard keys of the shared layout to keypad keys.
func keymap() map[ebiten.Key]byte {
	names := make(map[string]ebiten.Key, ebiten.KeyMax)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names[k.String()] = k
	}

	m := make(map[ebiten.Key]byte, len(frontend.Layout))
	for key, r := range frontend.Layout {
		name := strings.ToUpper(string(r))
		if r >= '0' && r <= '9' {
			name = "Digit" + name
		}
		if k, ok := names[name]; ok {
			m[k] = byte(key)
		}
	}
	return m
}

// Run opens the window and drives the runner from the game loop until the
// window is closed, the context is cancelled or the runner stops. It has to
// be called from the main goroutine.
func (w *Window) Run(ctx context.Context, r *runner.Runner) error {
	w.ctx = ctx
	w.runner = r

	ebiten.SetWindowSize(machine.ScreenWidth*w.options.Scale, machine.ScreenHeight*w.options.Scale)
	ebiten.SetWindowTitle(w.options.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.options.FrameRate)
	ebiten.SetFullscreen(w.fullscreen)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return w.err
}

// Present converts the frame buffer to the window pixels.
func (w *Window) Present(frame machine.FrameBuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frame = frame
	for y := range machine.ScreenHeight {
		for x := range machine.ScreenWidth {
			c := background
			if frame[y][x] {
				c = foreground
			}
			i := (y*machine.ScreenWidth + x) * 4
			w.pixels[i] = c.R
			w.pixels[i+1] = c.G
			w.pixels[i+2] = c.B
			w.pixels[i+3] = c.A
		}
	}
	return nil
}

// Keypad returns the keys that were held down during the last update.
func (w *Window) Keypad() (machine.Keypad, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.keys, w.quit
}

// Update samples the keyboard, handles the hotkeys and executes one frame.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || w.ctx.Err() != nil {
		return ebiten.Termination
	}

	w.handleHotkeys()
	w.sampleKeys()

	if err := w.runner.Frame(); err != nil {
		if !errors.Is(err, runner.ErrStopped) {
			w.err = err
		}
		return ebiten.Termination
	}
	return nil
}

func (w *Window) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.runner.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		w.copyScreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		if err := w.runner.Reset(); err != nil {
			w.logger.Error("Resetting machine failed", log.Err(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		w.fullscreen = !w.fullscreen
		ebiten.SetFullscreen(w.fullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		w.showStatusBar = !w.showStatusBar
	}
}

func (w *Window) sampleKeys() {
	var keys machine.Keypad
	for k, key := range w.keymap {
		if ebiten.IsKeyPressed(k) {
			keys[key] = true
		}
	}

	w.mu.Lock()
	w.keys = keys
	w.quit = ebiten.IsKeyPressed(ebiten.KeyEscape)
	w.mu.Unlock()
}

// copyScreen copies the current screen as text to the clipboard.
func (w *Window) copyScreen() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		w.logger.Warn("Clipboard is not available")
		return
	}

	w.mu.RLock()
	screen := w.frame.String()
	w.mu.RUnlock()
	clipboard.Write(clipboard.FmtText, []byte(screen))
	w.logger.Info("Screen copied to clipboard")
}

// Draw renders the frame buffer and the optional status bar.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(machine.ScreenWidth, machine.ScreenHeight)
	}

	w.mu.RLock()
	w.image.WritePixels(w.pixels)
	w.mu.RUnlock()

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.options.Scale), float64(w.options.Scale))
	screen.DrawImage(w.image, opts)

	if w.showStatusBar {
		w.drawStatusBar(screen)
	}
}

func (w *Window) drawStatusBar(screen *ebiten.Image) {
	width := machine.ScreenWidth * w.options.Scale
	height := machine.ScreenHeight * w.options.Scale
	if statusBarHeight >= height {
		return
	}
	y := height - statusBarHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(width), statusBarHeight, color.RGBA{0, 0, 0, 180})

	stats := w.runner.Stats()
	status := fmt.Sprintf("FPS %.1f  frames %d  cycles %d", ebiten.ActualFPS(), stats.Frames, stats.Cycles)
	if stats.Paused {
		status += "  PAUSED"
	}
	text.Draw(screen, status, basicfont.Face7x13, 4, y+12, color.RGBA{160, 160, 160, 255})
}

// Layout returns the unscaled window size multiplied by the scale factor.
func (w *Window) Layout(_, _ int) (int, int) {
	return machine.ScreenWidth * w.options.Scale, machine.ScreenHeight * w.options.Scale
}
