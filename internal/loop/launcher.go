package loop

import (
	"errors"
	"strings"
	"time"

	"github.com/mtoman/dodger/internal/difficulty"
	"github.com/mtoman/dodger/internal/input"
	"github.com/mtoman/dodger/internal/object"
	"github.com/mtoman/dodger/internal/store"
)

// Update steps the state machine one frame. dt is the fixed step in
// seconds; now is wall clock for spawner gating and round duration.
func (st *State) Update(now time.Time, dt float64, in input.Input, stream *input.Stream) {
	switch st.phase {
	case PhaseLogin:
		st.updateLogin(in, stream)
	case PhaseSignup:
		st.updateSignup(in, stream)
	case PhaseResume:
		st.updateResume(in, stream)
	case PhaseMenu:
		st.updateMenu(in, stream)
	case PhaseGarage:
		st.updateGarage(in, stream)
	case PhaseSettings:
		st.updateSettings(in, stream)
	case PhaseScores:
		st.updateScores(in, stream)
	case PhaseHelp:
		st.updateHelp(in, stream)
	case PhaseDifficulty:
		st.updateDifficulty(now, in, stream)
	case PhaseRunning:
		st.updateRunning(now, dt, in, stream)
	case PhasePaused:
		st.updatePaused(in, stream)
	case PhaseBoard:
		st.updateBoard(in, stream)
	case PhaseGameOver:
		st.updateGameOver(now, dt, in, stream)
	}
	st.prev = in
}

// toggleMusic handles the global music key on non-typing screens.
func (st *State) toggleMusic(in input.Input) {
	if !pressed(in.Music, st.prev.Music) {
		return
	}
	st.sess.Settings.MusicOn = !st.sess.Settings.MusicOn
	st.sess.ApplyMusic()
	st.sess.SaveSettings()
}

// moveCursor applies up/down edges to a menu cursor of n items.
func (st *State) moveCursor(cursor *int, n int, in input.Input) {
	if pressed(in.Up, st.prev.Up) && *cursor > 0 {
		*cursor--
	}
	if pressed(in.Down, st.prev.Down) && *cursor < n-1 {
		*cursor++
	}
}

// Login screen focus order: the two fields, then the action rows.
const (
	loginFieldUser = iota
	loginFieldPass
	loginActionLogin
	loginActionSignup
	loginActionGuest
	loginFocusCount
)

func (st *State) updateLogin(in input.Input, stream *input.Stream) {
	if ctrlC(in.Typed) {
		st.done = true
		return
	}

	typing := st.focus <= loginFieldPass
	if typing {
		st.fields[st.focus].feed(in.Typed)
	}

	if typedTab(in.Typed) {
		st.focus = (st.focus + 1) % loginFocusCount
		return
	}
	if !typing {
		st.moveCursor(&st.focus, loginFocusCount, in)
	}

	if !pressed(in.Enter, st.prev.Enter) {
		return
	}
	switch st.focus {
	case loginFieldUser, loginFieldPass:
		st.focus++
	case loginActionLogin:
		st.tryLogin(stream)
	case loginActionSignup:
		st.authNote = ""
		st.focus = 0
		st.fields[1].reset()
		st.fields[2].reset()
		st.setPhase(PhaseSignup, stream)
	case loginActionGuest:
		st.sess.UserID = 0
		st.sess.Username = "guest"
		st.authNote = ""
		st.setPhase(PhaseMenu, stream)
	}
}

func (st *State) tryLogin(stream *input.Stream) {
	name := strings.TrimSpace(st.fields[0].text())
	pass := st.fields[1].text()
	if name == "" || pass == "" {
		st.authNote = "enter username and password"
		return
	}

	u, err := st.sess.Store.VerifyUser(name, pass)
	if errors.Is(err, store.ErrBadCredentials) {
		st.authNote = "invalid username or password"
		return
	}
	if err != nil {
		st.sess.Log.Errorw("login failed", "error", err)
		st.authNote = "login unavailable, try again"
		return
	}
	st.loginAs(u, stream)
}

// loginAs records the authenticated user and remembers the session.
func (st *State) loginAs(u store.User, stream *input.Stream) {
	st.sess.UserID = u.ID
	st.sess.Username = u.Username
	st.sess.Settings.LastUsername = u.Username
	st.sess.Settings.SessionActive = true
	st.sess.Settings.SelectedCar = u.SelectedCar
	st.sess.SaveSettings()
	st.sess.Log.Infow("logged in", "user", u.Username)

	st.authNote = ""
	st.fields[0].reset()
	st.fields[1].reset()
	st.setPhase(PhaseMenu, stream)
}

// Signup screen focus order.
const (
	signupFieldUser = iota
	signupFieldPass
	signupFieldConfirm
	signupActionCreate
	signupActionBack
	signupFocusCount
)

func (st *State) updateSignup(in input.Input, stream *input.Stream) {
	if ctrlC(in.Typed) {
		st.done = true
		return
	}

	typing := st.focus <= signupFieldConfirm
	if typing {
		st.fields[st.focus].feed(in.Typed)
	}

	if typedTab(in.Typed) {
		st.focus = (st.focus + 1) % signupFocusCount
		return
	}
	if !typing {
		st.moveCursor(&st.focus, signupFocusCount, in)
	}

	if !pressed(in.Enter, st.prev.Enter) {
		return
	}
	switch st.focus {
	case signupFieldUser, signupFieldPass, signupFieldConfirm:
		st.focus++
	case signupActionCreate:
		st.trySignup(stream)
	case signupActionBack:
		st.backToLogin(stream)
	}
}

func (st *State) trySignup(stream *input.Stream) {
	name := strings.TrimSpace(st.fields[0].text())
	pass := st.fields[1].text()
	confirm := st.fields[2].text()

	switch {
	case len(name) < 3:
		st.authNote = "username must be at least 3 characters"
		return
	case len(pass) < 4:
		st.authNote = "password must be at least 4 characters"
		return
	case pass != confirm:
		st.authNote = "passwords do not match"
		return
	}

	if err := st.sess.Store.AddUser(name, pass); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			st.authNote = "username already exists"
			return
		}
		st.sess.Log.Errorw("signup failed", "error", err)
		st.authNote = "signup unavailable, try again"
		return
	}

	u, err := st.sess.Store.VerifyUser(name, pass)
	if err != nil {
		st.backToLogin(stream)
		return
	}
	st.sess.Log.Infow("account created", "user", name)
	st.fields[2].reset()
	st.loginAs(u, stream)
}

func (st *State) backToLogin(stream *input.Stream) {
	st.authNote = ""
	st.focus = 0
	st.fields[1].reset()
	st.fields[2].reset()
	st.setPhase(PhaseLogin, stream)
}

func (st *State) updateResume(in input.Input, stream *input.Stream) {
	if in.Quit {
		st.done = true
		return
	}
	st.toggleMusic(in)
	st.moveCursor(&st.menuCursor, 3, in)

	if !pressed(in.Enter, st.prev.Enter) && !pressed(in.Space, st.prev.Space) {
		return
	}
	switch st.menuCursor {
	case 0: // continue as remembered user
		u, err := st.sess.Store.UserByName(st.sess.Settings.LastUsername)
		if err != nil {
			st.authNote = "session expired, log in again"
			st.menuCursor = 0
			st.setPhase(PhaseLogin, stream)
			return
		}
		st.menuCursor = 0
		st.loginAs(u, stream)
	case 1: // switch user
		st.sess.Settings.SessionActive = false
		st.sess.SaveSettings()
		st.menuCursor = 0
		st.setPhase(PhaseLogin, stream)
	case 2:
		st.done = true
	}
}

func (st *State) updateMenu(in input.Input, stream *input.Stream) {
	if in.Quit {
		st.done = true
		return
	}
	st.toggleMusic(in)

	items := st.menuItems()
	st.moveCursor(&st.menuCursor, len(items), in)

	choice := -1
	if pressed(in.Enter, st.prev.Enter) || pressed(in.Space, st.prev.Space) {
		choice = st.menuCursor
	}
	if n := in.Number; n >= 1 && n <= len(items) && st.prev.Number != n {
		choice = n - 1
	}
	if choice < 0 {
		return
	}

	switch items[choice] {
	case "Play":
		st.diffCursor = modeIndex(st.sess.Settings.Difficulty)
		st.setPhase(PhaseDifficulty, stream)
	case "Garage":
		st.garageCursor = int(st.sess.Car())
		st.setPhase(PhaseGarage, stream)
	case "Settings":
		st.settingsCursor = 0
		st.setPhase(PhaseSettings, stream)
	case "Leaderboard":
		st.fetchScores()
		st.setPhase(PhaseScores, stream)
	case "Help":
		st.helpReturn = PhaseMenu
		st.setPhase(PhaseHelp, stream)
	case "Log out":
		st.sess.Settings.SessionActive = false
		st.sess.SaveSettings()
		st.sess.Log.Infow("logged out", "user", st.sess.Username)
		st.sess.UserID = 0
		st.sess.Username = ""
		st.menuCursor = 0
		st.setPhase(PhaseLogin, stream)
	case "Quit":
		st.done = true
	}
}

func (st *State) updateGarage(in input.Input, stream *input.Stream) {
	if in.Quit || pressed(in.Escape, st.prev.Escape) {
		st.setPhase(PhaseMenu, stream)
		return
	}
	st.toggleMusic(in)
	st.moveCursor(&st.garageCursor, len(object.AllModels), in)

	if !pressed(in.Enter, st.prev.Enter) && !pressed(in.Space, st.prev.Space) {
		return
	}
	model := object.AllModels[st.garageCursor]
	st.sess.Settings.SelectedCar = model.String()
	st.sess.SaveSettings()
	if st.sess.LoggedIn() {
		if err := st.sess.Store.SetUserCar(st.sess.UserID, model.String()); err != nil {
			st.sess.Log.Warnw("car not saved to account", "error", err)
		}
	}
	st.setPhase(PhaseMenu, stream)
}

// Settings rows.
const (
	settingDifficulty = iota
	settingMusic
	settingVolume
	settingBack
	settingCount
)

func (st *State) updateSettings(in input.Input, stream *input.Stream) {
	if in.Quit || pressed(in.Escape, st.prev.Escape) {
		st.setPhase(PhaseMenu, stream)
		return
	}
	st.moveCursor(&st.settingsCursor, settingCount, in)

	left := pressed(in.Left, st.prev.Left)
	right := pressed(in.Right, st.prev.Right)
	enter := pressed(in.Enter, st.prev.Enter) || pressed(in.Space, st.prev.Space)
	if !left && !right && !enter {
		return
	}

	s := &st.sess.Settings
	switch st.settingsCursor {
	case settingDifficulty:
		i := modeIndex(s.Difficulty)
		switch {
		case left && i > 0:
			i--
		case (right || enter) && i < len(difficulty.Modes)-1:
			i++
		case enter:
			i = 0
		}
		s.Difficulty = difficulty.Modes[i]
	case settingMusic:
		s.MusicOn = !s.MusicOn
		st.sess.ApplyMusic()
	case settingVolume:
		switch {
		case left:
			s.MusicVolume -= 0.1
		case right || enter:
			s.MusicVolume += 0.1
		}
		if s.MusicVolume < 0 {
			s.MusicVolume = 0
		}
		if s.MusicVolume > 1 {
			s.MusicVolume = 1
		}
		st.sess.ApplyMusic()
	case settingBack:
		if enter {
			st.setPhase(PhaseMenu, stream)
			return
		}
	}
	st.sess.SaveSettings()
}

// scoresTabs: index 0 is the combined board, then one tab per mode.
func scoresTabs() []string {
	return append([]string{"All"}, difficulty.Modes...)
}

func (st *State) updateScores(in input.Input, stream *input.Stream) {
	if in.Quit || pressed(in.Escape, st.prev.Escape) || pressed(in.Enter, st.prev.Enter) {
		st.setPhase(PhaseMenu, stream)
		return
	}
	st.toggleMusic(in)
	st.switchScoresTab(in)
}

func (st *State) switchScoresTab(in input.Input) {
	tabs := scoresTabs()
	moved := false
	if pressed(in.Left, st.prev.Left) && st.scoresTab > 0 {
		st.scoresTab--
		moved = true
	}
	if pressed(in.Right, st.prev.Right) && st.scoresTab < len(tabs)-1 {
		st.scoresTab++
		moved = true
	}
	if moved {
		st.fetchScores()
	}
}

// fetchScores loads the current tab. The board shows each user's best run.
func (st *State) fetchScores() {
	st.scoresErr = false
	if st.sess.Store == nil {
		st.scoresRows = nil
		return
	}
	mode := ""
	if st.scoresTab > 0 {
		mode = difficulty.Modes[st.scoresTab-1]
	}
	rows, err := st.sess.Store.TopScores(10, mode, true)
	if err != nil {
		st.sess.Log.Errorw("leaderboard fetch failed", "mode", mode, "error", err)
		st.scoresErr = true
		st.scoresRows = nil
		return
	}
	st.scoresRows = rows
}

func (st *State) updateHelp(in input.Input, stream *input.Stream) {
	st.toggleMusic(in)
	if in.Quit || pressed(in.Escape, st.prev.Escape) ||
		pressed(in.Enter, st.prev.Enter) || pressed(in.Space, st.prev.Space) {
		st.setPhase(st.helpReturn, stream)
	}
}

func (st *State) updateDifficulty(now time.Time, in input.Input, stream *input.Stream) {
	if in.Quit || pressed(in.Escape, st.prev.Escape) {
		st.setPhase(PhaseMenu, stream)
		return
	}
	st.toggleMusic(in)
	st.moveCursor(&st.diffCursor, len(difficulty.Modes), in)

	choice := -1
	if pressed(in.Enter, st.prev.Enter) || pressed(in.Space, st.prev.Space) {
		choice = st.diffCursor
	}
	if n := in.Number; n >= 1 && n <= len(difficulty.Modes) && st.prev.Number != n {
		choice = n - 1
	}
	if choice < 0 {
		return
	}

	mode := difficulty.Modes[choice]
	profile, err := difficulty.Resolve(mode)
	if err != nil {
		st.sess.Log.Errorw("difficulty rejected", "mode", mode, "error", err)
		st.setPhase(PhaseMenu, stream)
		return
	}
	st.sess.Settings.Difficulty = mode
	st.sess.SaveSettings()
	st.startRound(profile, now, stream)
}

func (st *State) startRound(profile difficulty.Profile, now time.Time, stream *input.Stream) {
	st.round = NewRound(profile, st.sess.Car(), now, now.UnixNano())
	st.sess.Log.Infow("round started",
		"user", st.sess.Username, "mode", profile.Mode, "car", st.sess.Settings.SelectedCar)
	st.setPhase(PhaseRunning, stream)
}

// modeIndex maps a stored mode name to its menu position.
func modeIndex(mode string) int {
	for i, m := range difficulty.Modes {
		if m == mode {
			return i
		}
	}
	return 0
}
