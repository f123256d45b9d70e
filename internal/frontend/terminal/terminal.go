// Package terminal implements a text frontend that renders the screen with
// half block characters and reads the keypad from the raw terminal input.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// keyHoldFrames is the number of frames a key counts as held after its
	// character was received, terminals do not report key releases.
	keyHoldFrames = 8

	rows    = machine.ScreenHeight / 2
	minRows = rows + 1

	escape   = 0x1B
	ctrlC    = 0x03
	hideCur  = "\x1b[?25l"
	showCur  = "\x1b[?25h"
	home     = "\x1b[H"
	clearScr = "\x1b[2J"
)

var (
	// ErrNotTerminal is returned when the input is not an interactive terminal.
	ErrNotTerminal = errors.New("input is not a terminal")
	// ErrTooSmall is returned when the terminal can not fit the screen.
	ErrTooSmall = errors.New("terminal is too small")
)

// Terminal renders frames as text and translates typed characters to keypad presses.
type Terminal struct {
	logger *log.Logger
	in     *os.File
	out    io.Writer

	oldState *term.State

	mu     sync.Mutex
	held   [machine.KeyCount]int // remaining frames a key is held
	quit   bool
	closed bool
}

// New returns a terminal frontend that reads from in and writes to out.
func New(logger *log.Logger, in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		logger: logger,
		in:     in,
		out:    out,
	}
}

// Open switches the terminal to raw mode and starts reading the keyboard.
func (t *Terminal) Open() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < machine.ScreenWidth || height < minRows {
		return fmt.Errorf("%w: %dx%d, minimum is %dx%d", ErrTooSmall, width, height, machine.ScreenWidth, minRows)
	}

	t.oldState, err = term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}

	if _, err := io.WriteString(t.out, clearScr+hideCur); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}

	go t.readInput(t.in)
	return nil
}

// Close stops the input handling and restores the terminal state.
func (t *Terminal) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	// unblocks a pending read on platforms that support deadlines on terminals
	_ = t.in.SetReadDeadline(time.Now())

	_, _ = io.WriteString(t.out, showCur+"\r\n")
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	t.oldState = nil
	return nil
}

// readInput runs until the input is closed or the terminal is closed.
func (t *Terminal) readInput(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if !t.handleInput(buf[:n]) {
			return
		}
		if err != nil {
			t.logger.Debug("Terminal input closed", log.Err(err))
			return
		}
	}
}

// handleInput processes the bytes of one read, it returns false after the
// terminal was closed. Special keys like the cursor keys arrive as escape
// sequences within one read and are ignored, only a lone escape quits.
func (t *Terminal) handleInput(input []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}

	for i := 0; i < len(input); i++ {
		b := input[i]
		switch {
		case b == ctrlC:
			t.quit = true
		case b == escape && i == len(input)-1:
			t.quit = true
		case b == escape:
			i = escapeSequenceEnd(input, i)
		default:
			if key, ok := frontend.KeyForRune(rune(b)); ok {
				t.held[key] = keyHoldFrames
			}
		}
	}
	return true
}

// escapeSequenceEnd returns the index of the last byte of the escape
// sequence that starts at the given index.
func escapeSequenceEnd(input []byte, start int) int {
	i := start + 1
	switch input[i] {
	case '[': // CSI: parameters followed by a final byte
		for i++; i < len(input); i++ {
			if input[i] >= 0x40 && input[i] <= 0x7E {
				return i
			}
		}
		return len(input) - 1
	case 'O': // SS3: one following byte
		return min(i+1, len(input)-1)
	default: // alt modified key
		return i
	}
}

// Keypad returns the held keys and advances the hold counters by one frame.
func (t *Terminal) Keypad() (machine.Keypad, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var keys machine.Keypad
	for key, frames := range t.held {
		if frames > 0 {
			keys[key] = true
			t.held[key]--
		}
	}
	return keys, t.quit
}

// Present draws the frame at the top left corner of the terminal.
func (t *Terminal) Present(frame machine.FrameBuffer) error {
	if _, err := io.WriteString(t.out, home+Render(frame)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Render converts the frame to text, every character combines two pixel rows.
// Lines end with CRLF as the terminal is in raw mode.
func Render(frame machine.FrameBuffer) string {
	var sb strings.Builder
	sb.Grow(rows * (machine.ScreenWidth*3 + 2))

	for row := range rows {
		upper := frame[row*2]
		lower := frame[row*2+1]
		for x := range machine.ScreenWidth {
			switch {
			case upper[x] && lower[x]:
				sb.WriteRune('█')
			case upper[x]:
				sb.WriteRune('▀')
			case lower[x]:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
