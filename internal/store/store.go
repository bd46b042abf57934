// Package store persists accounts and scores in a SQLite database.
// The schema is two tables: users (credentials + selected car) and scores
// (one row per finished round). The game only ever inserts single rows, so
// there is no transaction or migration machinery here.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Sentinel errors surfaced to the login/signup screens.
var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrBadCredentials = errors.New("invalid username or password")
)

const schema = `
CREATE TABLE IF NOT EXISTS users(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	selected_car TEXT DEFAULT 'sunbeam'
);
CREATE TABLE IF NOT EXISTS scores(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	score INTEGER,
	difficulty TEXT,
	created_at TEXT
);`

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// User is an authenticated account row.
type User struct {
	ID          int64
	Username    string
	SelectedCar string
}

// ScoreRow is one leaderboard entry.
type ScoreRow struct {
	Username   string `json:"username"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	CreatedAt  string `json:"created_at"`
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// SQLite allows one writer; a single connection avoids lock errors.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddUser creates an account. The password is stored as a PBKDF2 hash.
func (s *Store) AddUser(username, password string) error {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	if exists {
		return ErrUsernameTaken
	}
	_, err = s.db.Exec(`INSERT INTO users(username, password) VALUES (?, ?)`,
		username, hashPassword(username, password))
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}

// VerifyUser checks credentials and returns the account on success.
func (s *Store) VerifyUser(username, password string) (User, error) {
	var u User
	err := s.db.QueryRow(
		`SELECT id, selected_car FROM users WHERE username = ? AND password = ?`,
		username, hashPassword(username, password),
	).Scan(&u.ID, &u.SelectedCar)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrBadCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("verify user: %w", err)
	}
	u.Username = username
	return u, nil
}

// UserByName looks up an account without checking credentials, used to
// resume a remembered session. Unknown users map to ErrBadCredentials so
// the login screen handles a stale remembered name the same way.
func (s *Store) UserByName(username string) (User, error) {
	var u User
	err := s.db.QueryRow(
		`SELECT id, selected_car FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.SelectedCar)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrBadCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("user by name: %w", err)
	}
	u.Username = username
	return u, nil
}

// SetUserCar persists the garage selection for an account.
func (s *Store) SetUserCar(userID int64, car string) error {
	_, err := s.db.Exec(`UPDATE users SET selected_car = ? WHERE id = ?`, car, userID)
	if err != nil {
		return fmt.Errorf("set user car: %w", err)
	}
	return nil
}

// SaveScore records a finished round for a logged-in user.
func (s *Store) SaveScore(userID int64, score int, difficulty string) error {
	_, err := s.db.Exec(
		`INSERT INTO scores(user_id, score, difficulty, created_at) VALUES (?, ?, ?, ?)`,
		userID, score, difficulty, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

// TopScores returns leaderboard rows ordered by score descending.
// mode filters to one difficulty when non-empty. distinct collapses the
// board to each user's best score; otherwise raw rows are returned and a
// user may appear more than once.
func (s *Store) TopScores(limit int, mode string, distinct bool) ([]ScoreRow, error) {
	var rows *sql.Rows
	var err error

	switch {
	case !distinct && mode != "":
		rows, err = s.db.Query(`
			SELECT u.username, s.score, s.difficulty, s.created_at
			FROM scores s JOIN users u ON s.user_id = u.id
			WHERE s.difficulty = ?
			ORDER BY s.score DESC
			LIMIT ?`, mode, limit)
	case !distinct:
		rows, err = s.db.Query(`
			SELECT u.username, s.score, s.difficulty, s.created_at
			FROM scores s JOIN users u ON s.user_id = u.id
			ORDER BY s.score DESC
			LIMIT ?`, limit)
	case mode != "":
		rows, err = s.db.Query(`
			SELECT u.username, MAX(s.score) AS score, ? AS difficulty, MAX(s.created_at) AS created_at
			FROM scores s JOIN users u ON s.user_id = u.id
			WHERE s.difficulty = ?
			GROUP BY u.username
			ORDER BY score DESC
			LIMIT ?`, mode, mode, limit)
	default:
		rows, err = s.db.Query(`
			SELECT u.username, MAX(s.score) AS score, MAX(s.difficulty) AS difficulty, MAX(s.created_at) AS created_at
			FROM scores s JOIN users u ON s.user_id = u.id
			GROUP BY u.username
			ORDER BY score DESC
			LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var r ScoreRow
		if err := rows.Scan(&r.Username, &r.Score, &r.Difficulty, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("top scores: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
