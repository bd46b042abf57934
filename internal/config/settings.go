package config

import (
	"encoding/json"
	"os"
)

// Settings is the flat preferences document persisted next to the game.
// It is read once at startup and rewritten whole on every change; there is
// exactly one writer per session, so no locking is needed.
type Settings struct {
	SelectedCar   string  `json:"selected_car"`
	Difficulty    string  `json:"difficulty"`
	MusicOn       bool    `json:"music_on"`
	MusicVolume   float64 `json:"music_volume"`
	LastUsername  string  `json:"last_username,omitempty"`
	SessionActive bool    `json:"session_active"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		SelectedCar: "sunbeam",
		Difficulty:  "Casual",
		MusicOn:     true,
		MusicVolume: 0.6,
	}
}

// LoadSettings reads the settings file. A missing or unreadable file is
// not an error: the defaults are returned so a fresh install just works.
func LoadSettings(path string) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings()
	}
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings()
	}
	if s.MusicVolume < 0 {
		s.MusicVolume = 0
	}
	if s.MusicVolume > 1 {
		s.MusicVolume = 1
	}
	return s
}

// Save rewrites the settings file. Write errors are returned so callers
// can log them; settings loss is never fatal to a session.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
