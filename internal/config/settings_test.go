package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	d := DefaultSettings()
	if s != d {
		t.Fatalf("missing file settings = %+v, want defaults %+v", s, d)
	}
}

func TestLoadSettingsCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := LoadSettings(path)
	if s != DefaultSettings() {
		t.Fatalf("corrupt file settings = %+v, want defaults", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Settings{
		SelectedCar:   "wedge",
		Difficulty:    "Nightmare",
		MusicOn:       false,
		MusicVolume:   0.25,
		LastUsername:  "ada",
		SessionActive: true,
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := LoadSettings(path)
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadSettingsClampsVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"music_volume": 3.0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := LoadSettings(path)
	if s.MusicVolume != 1.0 {
		t.Fatalf("volume = %f, want clamped to 1.0", s.MusicVolume)
	}
}
