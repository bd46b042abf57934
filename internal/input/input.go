// Package input reads raw terminal bytes on a background goroutine and
// condenses them into a per-frame snapshot for the game loop.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key counts as "held" after its last byte.
// Terminals repeat keys slowly, so a short grace keeps movement smooth.
const keyHoldDuration = 30 * time.Millisecond

// Input is the state of all relevant keys for one frame.
type Input struct {
	Quit      bool // ctrl+c, or 'q' where the active screen honors it
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	Pause     bool // 'p'
	Board     bool // 'l', opens the leaderboard overlay
	Music     bool // 'm', toggles music
	Space     bool
	Enter     bool
	Backspace bool
	Escape    bool
	Number    int    // last digit pressed this frame, -1 if none
	Typed     []byte // raw bytes this frame, for text fields
}

type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	pause     time.Time
	board     time.Time
	music     time.Time
	space     time.Time
	enter     time.Time
	backspace time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and remembers per-key
// timestamps so simultaneous presses are observable.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine reading bytes from r into the stream.
// The goroutine exits when r reaches EOF (terminal closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset forgets all held keys, used on screen transitions so a key that
// triggered the transition does not leak into the next screen.
func Reset(s *Stream) {
	s.state = keyState{numberVal: -1}
}

// Read drains all pending bytes (non-blocking) and returns the frame input.
// Arrow keys arrive as CSI escape sequences and are folded into Left/Right/
// Up/Down; everything else updates per-key timestamps.
func Read(s *Stream) Input {
	now := time.Now()
	var buf []byte

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByte(&s.state, b, now)
	}

	in := Input{
		Quit:      now.Sub(s.state.quit) < keyHoldDuration,
		Left:      now.Sub(s.state.left) < keyHoldDuration,
		Right:     now.Sub(s.state.right) < keyHoldDuration,
		Up:        now.Sub(s.state.up) < keyHoldDuration,
		Down:      now.Sub(s.state.down) < keyHoldDuration,
		Pause:     now.Sub(s.state.pause) < keyHoldDuration,
		Board:     now.Sub(s.state.board) < keyHoldDuration,
		Music:     now.Sub(s.state.music) < keyHoldDuration,
		Space:     now.Sub(s.state.space) < keyHoldDuration,
		Enter:     now.Sub(s.state.enter) < keyHoldDuration,
		Backspace: now.Sub(s.state.backspace) < keyHoldDuration,
		Escape:    now.Sub(s.state.escape) < keyHoldDuration,
		Number:    -1,
		Typed:     buf,
	}
	if now.Sub(s.state.number) < keyHoldDuration {
		in.Number = s.state.numberVal
	}
	return in
}

func applyByte(state *keyState, b byte, now time.Time) {
	switch b {
	case 0x03: // ctrl+c
		state.quit = now
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'w', 'W':
		state.up = now
	case 's', 'S':
		state.down = now
	case 'p', 'P':
		state.pause = now
	case 'l', 'L':
		state.board = now
	case 'm', 'M':
		state.music = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\b', '\x7f':
		state.backspace = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
