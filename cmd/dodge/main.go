package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/mtoman/dodger/internal/audio"
	"github.com/mtoman/dodger/internal/config"
	"github.com/mtoman/dodger/internal/draw"
	"github.com/mtoman/dodger/internal/logging"
	"github.com/mtoman/dodger/internal/loop"
	"github.com/mtoman/dodger/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dodge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := dataDir()
	if err != nil {
		return err
	}

	settingsPath := config.GetEnv("DODGER_CONFIG", filepath.Join(dir, "config.json"))
	dbPath := config.GetEnv("DODGER_DB", filepath.Join(dir, "dodger.db"))
	logPath := config.GetEnv("DODGER_LOG", filepath.Join(dir, "dodger.log"))

	logger := logging.New(logPath)
	defer logger.Sync()

	settings := config.LoadSettings(settingsPath)

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	music := audio.NewPlayer()
	if err := music.Init(settings.MusicVolume, settings.MusicOn); err != nil {
		logger.Warnw("audio unavailable", "error", err)
	}
	defer music.Close()

	sess := &loop.Session{
		Store:        st,
		Settings:     settings,
		SettingsPath: settingsPath,
		Log:          logger,
		Music:        music,
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(context.Background(), sess, reader, os.Stdout, draw.DefaultTermSizeFunc)
}

// dataDir resolves (and creates) the per-user directory holding the
// settings file, database and log.
func dataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "dodger")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}
