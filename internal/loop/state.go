package loop

import (
	"github.com/mtoman/dodger/internal/input"
	"github.com/mtoman/dodger/internal/store"
)

// Phase is the screen the loop is currently on.
type Phase int

const (
	PhaseLogin Phase = iota
	PhaseSignup
	PhaseResume
	PhaseMenu
	PhaseGarage
	PhaseSettings
	PhaseScores
	PhaseHelp
	PhaseDifficulty
	PhaseRunning
	PhasePaused
	PhaseBoard
	PhaseGameOver
)

// maxFieldLen bounds text entry so fields always fit on one screen line.
const maxFieldLen = 24

// textField is a single-line text entry. Bytes are consumed from the raw
// per-frame Typed buffer, so every keystroke is seen exactly once.
type textField struct {
	value []byte
	mask  bool // render as asterisks (passwords)
}

// feed applies one frame of typed bytes. Arrow-key CSI sequences are
// skipped so cursor keys never leak brackets into the field.
func (f *textField) feed(typed []byte) {
	for i := 0; i < len(typed); i++ {
		b := typed[i]
		if b == 0x1b {
			if i+2 < len(typed) && typed[i+1] == '[' {
				i += 2
			}
			continue
		}
		switch {
		case b == 0x7f || b == '\b':
			if len(f.value) > 0 {
				f.value = f.value[:len(f.value)-1]
			}
		case b >= 0x20 && b < 0x7f:
			if len(f.value) < maxFieldLen {
				f.value = append(f.value, b)
			}
		}
	}
}

func (f *textField) text() string {
	return string(f.value)
}

// display returns the field contents for rendering, masked if needed.
func (f *textField) display() string {
	if !f.mask {
		return string(f.value)
	}
	stars := make([]byte, len(f.value))
	for i := range stars {
		stars[i] = '*'
	}
	return string(stars)
}

func (f *textField) reset() {
	f.value = f.value[:0]
}

// State is the launcher and game state machine. One State serves one
// terminal session from login to quit.
type State struct {
	sess  *Session
	phase Phase

	// prev holds last frame's input. Key-hold detection keeps a flag true
	// for about two frames at 60Hz, so menus act on rising edges only.
	prev input.Input

	// Login / signup entry.
	fields   [3]textField // username, password, confirm
	focus    int
	authNote string

	menuCursor     int
	garageCursor   int
	settingsCursor int
	diffCursor     int
	helpReturn     Phase // help is reachable from more than one screen
	boardReturn    Phase // the leaderboard overlays both pause and game over

	scoresTab  int // 0 = all modes, then difficulty.Modes order
	scoresRows []store.ScoreRow
	scoresErr  bool

	round *Round

	done bool // session over, loop exits
}

// NewState builds the state machine for a session, picking the first
// screen from the saved session flags.
func NewState(sess *Session) *State {
	st := &State{sess: sess}
	st.fields[1].mask = true
	st.fields[2].mask = true
	st.prev.Number = -1

	switch {
	case sess.PreAuthed || sess.Store == nil:
		st.phase = PhaseMenu
	case sess.Settings.SessionActive && sess.Settings.LastUsername != "":
		st.phase = PhaseResume
	default:
		st.phase = PhaseLogin
	}
	return st
}

// pressed reports a rising edge between frames.
func pressed(cur, prev bool) bool {
	return cur && !prev
}

// ctrlC scans the raw bytes for an interrupt. Typing screens use this
// instead of Input.Quit because 'q' must stay typeable there.
func ctrlC(typed []byte) bool {
	for _, b := range typed {
		if b == 0x03 {
			return true
		}
	}
	return false
}

// typedTab reports whether a tab was typed this frame.
func typedTab(typed []byte) bool {
	for _, b := range typed {
		if b == '\t' {
			return true
		}
	}
	return false
}

// setPhase transitions screens and forgets held keys so the key that
// triggered the transition does not act again on the next screen.
func (st *State) setPhase(p Phase, stream *input.Stream) {
	st.phase = p
	input.Reset(stream)
}

// menuItems lists the main menu entries. Logout is hidden when there is
// no account store or the frontend authenticated the user already.
func (st *State) menuItems() []string {
	items := []string{"Play", "Garage", "Settings", "Leaderboard", "Help"}
	if st.sess.Store != nil && !st.sess.PreAuthed {
		items = append(items, "Log out")
	}
	return append(items, "Quit")
}
