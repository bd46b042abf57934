package loop

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/mtoman/dodger/internal/config"
	"github.com/mtoman/dodger/internal/difficulty"
	"github.com/mtoman/dodger/internal/input"
	"github.com/mtoman/dodger/internal/logging"
	"github.com/mtoman/dodger/internal/store"
)

func testStream() *input.Stream {
	return input.StartStream(bufio.NewReader(strings.NewReader("")))
}

func testSession(t *testing.T, withStore bool) *Session {
	t.Helper()
	sess := &Session{
		Settings: config.DefaultSettings(),
		Log:      logging.Nop(),
	}
	if withStore {
		s, err := store.Open(":memory:")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		sess.Store = s
	}
	return sess
}

func TestNewStateFirstScreen(t *testing.T) {
	guest := testSession(t, false)
	if st := NewState(guest); st.phase != PhaseMenu {
		t.Fatalf("storeless session starts on phase %d, want menu", st.phase)
	}

	fresh := testSession(t, true)
	if st := NewState(fresh); st.phase != PhaseLogin {
		t.Fatalf("fresh session starts on phase %d, want login", st.phase)
	}

	resumed := testSession(t, true)
	resumed.Settings.SessionActive = true
	resumed.Settings.LastUsername = "ada"
	if st := NewState(resumed); st.phase != PhaseResume {
		t.Fatalf("remembered session starts on phase %d, want resume", st.phase)
	}

	ssh := testSession(t, true)
	ssh.PreAuthed = true
	if st := NewState(ssh); st.phase != PhaseMenu {
		t.Fatalf("pre-authed session starts on phase %d, want menu", st.phase)
	}
}

func TestTextFieldFeed(t *testing.T) {
	var f textField
	f.feed([]byte("ada"))
	if f.text() != "ada" {
		t.Fatalf("text = %q, want ada", f.text())
	}

	f.feed([]byte{0x7f, 0x7f})
	f.feed([]byte("nn"))
	if f.text() != "ann" {
		t.Fatalf("text after backspaces = %q, want ann", f.text())
	}

	// Arrow keys must not leak bracket bytes into the field.
	f.feed([]byte{0x1b, '[', 'C'})
	if f.text() != "ann" {
		t.Fatalf("text after arrow key = %q, want ann", f.text())
	}

	f.mask = true
	if f.display() != "***" {
		t.Fatalf("masked display = %q, want ***", f.display())
	}
}

// frame pushes one frame of input followed by a released frame, so edge
// detection sees a clean press.
func frame(st *State, stream *input.Stream, in input.Input) {
	now := time.Unix(1000, 0)
	if in.Number == 0 {
		in.Number = -1
	}
	st.Update(now, dt, in, stream)
	st.Update(now, dt, input.Input{Number: -1}, stream)
}

func TestMenuIntoRound(t *testing.T) {
	sess := testSession(t, false)
	st := NewState(sess)
	stream := testStream()

	// Held keys move the cursor once per press, not once per frame.
	in := input.Input{Down: true, Number: -1}
	now := time.Unix(1000, 0)
	st.Update(now, dt, in, stream)
	st.Update(now, dt, in, stream)
	if st.menuCursor != 1 {
		t.Fatalf("cursor after held key = %d, want 1", st.menuCursor)
	}

	frame(st, stream, input.Input{Up: true})
	if st.menuCursor != 0 {
		t.Fatalf("cursor = %d, want back on Play", st.menuCursor)
	}

	frame(st, stream, input.Input{Enter: true})
	if st.phase != PhaseDifficulty {
		t.Fatalf("phase after Play = %d, want difficulty select", st.phase)
	}

	frame(st, stream, input.Input{Enter: true})
	if st.phase != PhaseRunning {
		t.Fatalf("phase after mode pick = %d, want running", st.phase)
	}
	if st.round == nil {
		t.Fatal("no round started")
	}
	if st.round.Profile.Mode != difficulty.Casual {
		t.Fatalf("round mode = %q, want default Casual", st.round.Profile.Mode)
	}

	frame(st, stream, input.Input{Pause: true})
	if st.phase != PhasePaused {
		t.Fatalf("phase after pause = %d, want paused", st.phase)
	}
	frame(st, stream, input.Input{Pause: true})
	if st.phase != PhaseRunning {
		t.Fatalf("phase after unpause = %d, want running", st.phase)
	}
}

func TestSignupThenLoginFlow(t *testing.T) {
	sess := testSession(t, true)
	st := NewState(sess)
	stream := testStream()

	// Jump to the signup screen.
	st.focus = loginActionSignup
	frame(st, stream, input.Input{Enter: true})
	if st.phase != PhaseSignup {
		t.Fatalf("phase = %d, want signup", st.phase)
	}

	frame(st, stream, input.Input{Typed: []byte("ada")})
	frame(st, stream, input.Input{Enter: true})
	frame(st, stream, input.Input{Typed: []byte("hunter2")})
	frame(st, stream, input.Input{Enter: true})
	frame(st, stream, input.Input{Typed: []byte("hunter2")})
	frame(st, stream, input.Input{Enter: true}) // focus moves to create
	frame(st, stream, input.Input{Enter: true}) // create account

	if st.phase != PhaseMenu {
		t.Fatalf("phase after signup = %d (note %q), want menu", st.phase, st.authNote)
	}
	if !sess.LoggedIn() || sess.Username != "ada" {
		t.Fatalf("session after signup = %+v, want logged-in ada", sess)
	}
	if !sess.Settings.SessionActive || sess.Settings.LastUsername != "ada" {
		t.Fatal("session not remembered in settings")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	sess := testSession(t, true)
	if err := sess.Store.AddUser("ada", "hunter2"); err != nil {
		t.Fatal(err)
	}
	st := NewState(sess)
	stream := testStream()

	frame(st, stream, input.Input{Typed: []byte("ada")})
	frame(st, stream, input.Input{Enter: true})
	frame(st, stream, input.Input{Typed: []byte("wrong")})
	frame(st, stream, input.Input{Enter: true}) // focus moves to log in
	frame(st, stream, input.Input{Enter: true}) // attempt

	if st.phase != PhaseLogin {
		t.Fatalf("phase = %d, want still login", st.phase)
	}
	if st.authNote == "" {
		t.Fatal("bad password produced no message")
	}
	if sess.LoggedIn() {
		t.Fatal("session logged in with a bad password")
	}
}

func TestGameOverSavesScoreOnce(t *testing.T) {
	sess := testSession(t, true)
	if err := sess.Store.AddUser("ada", "hunter2"); err != nil {
		t.Fatal(err)
	}
	u, err := sess.Store.VerifyUser("ada", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	sess.UserID = u.ID
	sess.Username = u.Username

	st := NewState(sess)
	stream := testStream()
	profile, err := difficulty.Resolve(difficulty.Heroic)
	if err != nil {
		t.Fatal(err)
	}
	st.startRound(profile, time.Unix(1000, 0), stream)
	st.round.Score = 777
	st.round.Crashed = true

	now := time.Unix(1001, 0)
	st.finishRound(now)
	st.finishRound(now) // must be a no-op

	rows, err := sess.Store.TopScores(10, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("saved %d score rows, want 1", len(rows))
	}
	if rows[0].Score != 777 || rows[0].Difficulty != difficulty.Heroic {
		t.Fatalf("saved row = %+v", rows[0])
	}
}
