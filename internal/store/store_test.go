package store

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndVerifyUser(t *testing.T) {
	s := openTestStore(t)

	if err := s.AddUser("ada", "hunter2"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	u, err := s.VerifyUser("ada", "hunter2")
	if err != nil {
		t.Fatalf("VerifyUser: %v", err)
	}
	if u.Username != "ada" || u.ID == 0 {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.SelectedCar != "sunbeam" {
		t.Fatalf("default car = %q, want sunbeam", u.SelectedCar)
	}

	if _, err := s.VerifyUser("ada", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password error = %v, want ErrBadCredentials", err)
	}
	if _, err := s.VerifyUser("ghost", "hunter2"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown user error = %v, want ErrBadCredentials", err)
	}
}

func TestAddUserDuplicate(t *testing.T) {
	s := openTestStore(t)

	if err := s.AddUser("bob", "pw"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if err := s.AddUser("bob", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate AddUser error = %v, want ErrUsernameTaken", err)
	}
}

func TestSetUserCar(t *testing.T) {
	s := openTestStore(t)

	if err := s.AddUser("cleo", "pw"); err != nil {
		t.Fatal(err)
	}
	u, err := s.VerifyUser("cleo", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetUserCar(u.ID, "roadster"); err != nil {
		t.Fatalf("SetUserCar: %v", err)
	}
	u, err = s.VerifyUser("cleo", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if u.SelectedCar != "roadster" {
		t.Fatalf("car after update = %q, want roadster", u.SelectedCar)
	}
}

func TestTopScoresDistinctPerUser(t *testing.T) {
	s := openTestStore(t)

	mustAdd := func(name string) int64 {
		t.Helper()
		if err := s.AddUser(name, "pw"); err != nil {
			t.Fatal(err)
		}
		u, err := s.VerifyUser(name, "pw")
		if err != nil {
			t.Fatal(err)
		}
		return u.ID
	}
	ada := mustAdd("ada")
	bob := mustAdd("bob")

	for _, sc := range []struct {
		user int64
		pts  int
		mode string
	}{
		{ada, 300, "Casual"},
		{ada, 900, "Casual"},
		{ada, 450, "Heroic"},
		{bob, 600, "Casual"},
	} {
		if err := s.SaveScore(sc.user, sc.pts, sc.mode); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	rows, err := s.TopScores(10, "Casual", true)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("distinct Casual rows = %d, want 2", len(rows))
	}
	if rows[0].Username != "ada" || rows[0].Score != 900 {
		t.Fatalf("top row = %+v, want ada/900", rows[0])
	}
	if rows[1].Username != "bob" || rows[1].Score != 600 {
		t.Fatalf("second row = %+v, want bob/600", rows[1])
	}

	// Raw mode keeps duplicates.
	raw, err := s.TopScores(10, "Casual", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 3 {
		t.Fatalf("raw Casual rows = %d, want 3", len(raw))
	}

	// All-modes distinct board returns each user's best across modes.
	all, err := s.TopScores(10, "", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Score != 900 {
		t.Fatalf("all-modes board = %+v, want ada's 900 first", all)
	}
}
