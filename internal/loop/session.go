// Package loop runs the launcher screens and the game itself: one
// fixed-rate terminal loop stepping a finite state machine from login
// through menus into the playing/paused/game-over cycle.
package loop

import (
	"go.uber.org/zap"

	"github.com/mtoman/dodger/internal/audio"
	"github.com/mtoman/dodger/internal/config"
	"github.com/mtoman/dodger/internal/object"
	"github.com/mtoman/dodger/internal/store"
)

// Session carries everything a run of the launcher needs: the account
// store, the player's preferences, and the logger. It replaces the global
// current-user/current-settings state of a typical launcher; every screen
// and persistence call receives it explicitly.
type Session struct {
	Store        *store.Store // nil disables accounts and score persistence
	Settings     config.Settings
	SettingsPath string // empty disables settings persistence (SSH guests)
	Log          *zap.SugaredLogger
	Music        *audio.Player // nil when the frontend has no speaker

	// Identity of the logged-in player; UserID 0 means guest.
	UserID   int64
	Username string

	// PreAuthed sessions (SSH password auth) skip the login screen.
	PreAuthed bool
}

// LoggedIn reports whether scores will be persisted.
func (s *Session) LoggedIn() bool {
	return s.UserID != 0
}

// Car returns the selected car model from settings.
func (s *Session) Car() object.CarModel {
	return object.ModelByName(s.Settings.SelectedCar)
}

// SaveSettings rewrites the settings file, logging (never surfacing)
// failures: losing a preference write must not interrupt play.
func (s *Session) SaveSettings() {
	if s.SettingsPath == "" {
		return
	}
	if err := s.Settings.Save(s.SettingsPath); err != nil {
		s.Log.Warnw("settings not saved", "path", s.SettingsPath, "error", err)
	}
}

// ApplyMusic pushes the current music preferences to the player.
func (s *Session) ApplyMusic() {
	if s.Music == nil {
		return
	}
	s.Music.SetVolume(s.Settings.MusicVolume)
	s.Music.SetPlaying(s.Settings.MusicOn)
}
