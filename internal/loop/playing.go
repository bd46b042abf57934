package loop

import (
	"time"

	"github.com/mtoman/dodger/internal/input"
)

func (st *State) updateRunning(now time.Time, dt float64, in input.Input, stream *input.Stream) {
	if in.Quit {
		// Abandoned runs are not recorded.
		st.sess.Log.Infow("round abandoned", "user", st.sess.Username, "score", st.round.Score)
		st.round = nil
		st.setPhase(PhaseMenu, stream)
		return
	}
	if pressed(in.Pause, st.prev.Pause) || pressed(in.Escape, st.prev.Escape) {
		st.setPhase(PhasePaused, stream)
		return
	}
	if pressed(in.Board, st.prev.Board) {
		// The board suspends play; closing it lands on the pause screen.
		st.boardReturn = PhasePaused
		st.fetchScores()
		st.setPhase(PhaseBoard, stream)
		return
	}
	st.toggleMusic(in)

	st.round.Control(in, st.prev)
	st.round.Step(now, dt)
	st.round.StepEffects(dt)

	if st.round.Crashed {
		st.finishRound(now)
		st.setPhase(PhaseGameOver, stream)
	}
}

func (st *State) updatePaused(in input.Input, stream *input.Stream) {
	st.toggleMusic(in)

	switch {
	case in.Quit || pressed(in.Escape, st.prev.Escape):
		st.sess.Log.Infow("round abandoned", "user", st.sess.Username, "score", st.round.Score)
		st.round = nil
		st.setPhase(PhaseMenu, stream)
	case pressed(in.Pause, st.prev.Pause) ||
		pressed(in.Enter, st.prev.Enter) || pressed(in.Space, st.prev.Space):
		st.setPhase(PhaseRunning, stream)
	case pressed(in.Board, st.prev.Board):
		st.boardReturn = PhasePaused
		st.fetchScores()
		st.setPhase(PhaseBoard, stream)
	}
}

func (st *State) updateBoard(in input.Input, stream *input.Stream) {
	st.toggleMusic(in)
	st.switchScoresTab(in)

	if in.Quit || pressed(in.Escape, st.prev.Escape) ||
		pressed(in.Board, st.prev.Board) || pressed(in.Enter, st.prev.Enter) {
		st.setPhase(st.boardReturn, stream)
	}
}

func (st *State) updateGameOver(now time.Time, dt float64, in input.Input, stream *input.Stream) {
	st.toggleMusic(in)
	// The wreck keeps animating behind the final score.
	st.round.StepEffects(dt)

	switch {
	case pressed(in.Space, st.prev.Space):
		st.startRound(st.round.Profile, now, stream)
	case pressed(in.Board, st.prev.Board):
		st.boardReturn = PhaseGameOver
		st.fetchScores()
		st.setPhase(PhaseBoard, stream)
	case in.Quit || pressed(in.Enter, st.prev.Enter) || pressed(in.Escape, st.prev.Escape):
		st.round = nil
		st.setPhase(PhaseMenu, stream)
	}
}

// finishRound persists the final score exactly once. A failed write is
// noted on the game-over screen but never interrupts the session.
func (st *State) finishRound(now time.Time) {
	r := st.round
	if r.saved {
		return
	}
	r.saved = true

	st.sess.Log.Infow("round over",
		"user", st.sess.Username, "mode", r.Profile.Mode,
		"score", r.Score, "duration", r.Duration(now).Round(time.Second))

	if !st.sess.LoggedIn() || st.sess.Store == nil {
		return
	}
	if err := st.sess.Store.SaveScore(st.sess.UserID, r.Score, r.Profile.Mode); err != nil {
		r.SaveFailed = true
		st.sess.Log.Errorw("score not saved",
			"user", st.sess.Username, "score", r.Score, "error", err)
	}
}
