package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/mtoman/dodger/internal/difficulty"
	"github.com/mtoman/dodger/internal/draw"
	"github.com/mtoman/dodger/internal/object"
)

// Title banner, shown when the render area is wide enough for it.
var titleLines = []string{
	`  ____   ___  ____   ____ _____ ____  `,
	` |  _ \ / _ \|  _ \ / ___| ____|  _ \ `,
	` | | | | | | | | | | |  _|  _| | |_) |`,
	` | |_| | |_| | |_| | |_| | |___|  _ < `,
	` |____/ \___/|____/ \____|_____|_| \_\`,
}

const plainTitle = "D O D G E R"

// Draw renders the current screen into the frame buffer. The loop clears
// the terminal before calling, so screens only draw what they own.
func (st *State) Draw(now time.Time, c *draw.Canvas, cw *draw.ChunkWriter) {
	switch st.phase {
	case PhaseLogin:
		st.drawLogin(now, c, cw)
	case PhaseSignup:
		st.drawSignup(now, c, cw)
	case PhaseResume:
		st.drawResume(c, cw)
	case PhaseMenu:
		st.drawMenu(c, cw)
	case PhaseGarage:
		st.drawGarage(c, cw)
	case PhaseSettings:
		st.drawSettings(c, cw)
	case PhaseScores, PhaseBoard:
		st.drawScores(c, cw)
	case PhaseHelp:
		st.drawHelp(c, cw)
	case PhaseDifficulty:
		st.drawDifficulty(c, cw)
	case PhaseRunning:
		st.drawGame(c, cw, false)
	case PhasePaused:
		st.drawGame(c, cw, true)
	case PhaseGameOver:
		st.drawGameOver(now, c, cw)
	}
}

// centered writes s centered horizontally on the given row.
func centered(c *draw.Canvas, cw *draw.ChunkWriter, row int, s string) {
	col := c.TerminalWidth()/2 - len(s)/2
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, s)
}

// drawTitle writes the banner and returns the row below it.
func drawTitle(c *draw.Canvas, cw *draw.ChunkWriter) int {
	if c.TerminalWidth() >= len(titleLines[0])+2 && c.TerminalHeight() >= 24 {
		for i, line := range titleLines {
			centered(c, cw, 2+i, line)
		}
		return 2 + len(titleLines) + 1
	}
	centered(c, cw, 2, plainTitle)
	return 4
}

// controls renders the dotted control list on the bottom row.
func controls(c *draw.Canvas, cw *draw.ChunkWriter, items ...string) {
	centered(c, cw, c.TerminalHeight(), strings.Join(items, " . "))
}

// blinkOn drives prompts that pulse to draw the eye.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// fieldLine formats one text entry row with a focus marker and a cursor.
func fieldLine(label string, f *textField, focused, blink bool) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	cursor := " "
	if focused && blink {
		cursor = "_"
	}
	return fmt.Sprintf("%s%-10s %s%s", marker, label+":", f.display(), cursor)
}

func actionLine(label string, focused bool) string {
	if focused {
		return "> [ " + label + " ]"
	}
	return "  [ " + label + " ]"
}

func (st *State) drawLogin(now time.Time, c *draw.Canvas, cw *draw.ChunkWriter) {
	row := drawTitle(c, cw)
	blink := blinkOn(now)

	centered(c, cw, row, "log in to race")
	row += 2
	centered(c, cw, row, fieldLine("username", &st.fields[0], st.focus == loginFieldUser, blink))
	row++
	centered(c, cw, row, fieldLine("password", &st.fields[1], st.focus == loginFieldPass, blink))
	row += 2
	centered(c, cw, row, actionLine("Log in", st.focus == loginActionLogin))
	row++
	centered(c, cw, row, actionLine("Sign up", st.focus == loginActionSignup))
	row++
	centered(c, cw, row, actionLine("Play as guest", st.focus == loginActionGuest))

	if st.authNote != "" {
		centered(c, cw, row+2, "! "+st.authNote)
	}
	controls(c, cw, "tab: next", "enter: select", "ctrl+c: quit")
}

func (st *State) drawSignup(now time.Time, c *draw.Canvas, cw *draw.ChunkWriter) {
	row := drawTitle(c, cw)
	blink := blinkOn(now)

	centered(c, cw, row, "create an account")
	row += 2
	centered(c, cw, row, fieldLine("username", &st.fields[0], st.focus == signupFieldUser, blink))
	row++
	centered(c, cw, row, fieldLine("password", &st.fields[1], st.focus == signupFieldPass, blink))
	row++
	centered(c, cw, row, fieldLine("confirm", &st.fields[2], st.focus == signupFieldConfirm, blink))
	row += 2
	centered(c, cw, row, actionLine("Create account", st.focus == signupActionCreate))
	row++
	centered(c, cw, row, actionLine("Back", st.focus == signupActionBack))

	if st.authNote != "" {
		centered(c, cw, row+2, "! "+st.authNote)
	}
	controls(c, cw, "tab: next", "enter: select", "ctrl+c: quit")
}

func (st *State) drawResume(c *draw.Canvas, cw *draw.ChunkWriter) {
	row := drawTitle(c, cw)
	centered(c, cw, row, "welcome back")
	row += 2

	items := []string{
		"Continue as " + st.sess.Settings.LastUsername,
		"Switch user",
		"Quit",
	}
	for i, item := range items {
		marker := "  "
		if i == st.menuCursor {
			marker = "> "
		}
		centered(c, cw, row+i, marker+item)
	}
	controls(c, cw, "w/s: move", "enter: select", "q: quit")
}

func (st *State) drawMenu(c *draw.Canvas, cw *draw.ChunkWriter) {
	row := drawTitle(c, cw)

	who := st.sess.Username
	if !st.sess.LoggedIn() {
		who += " (scores not saved)"
	}
	centered(c, cw, row, "driver: "+who)
	row += 2

	for i, item := range st.menuItems() {
		marker := "  "
		if i == st.menuCursor {
			marker = "> "
		}
		centered(c, cw, row+i, fmt.Sprintf("%s%d. %s", marker, i+1, item))
	}
	controls(c, cw, "w/s: move", "enter: select", "m: music", "q: quit")
}

func (st *State) drawGarage(c *draw.Canvas, cw *draw.ChunkWriter) {
	// Preview the highlighted car on the canvas behind the list.
	c.Clear()
	model := object.AllModels[st.garageCursor]
	object.SpriteFor(model).Draw(c,
		object.FieldWidth/2-object.CarWidth/2,
		object.FieldHeight*0.55)
	c.Render(cw)

	centered(c, cw, 2, "GARAGE")
	row := 4
	for i, m := range object.AllModels {
		marker := "  "
		if i == st.garageCursor {
			marker = "> "
		}
		name := m.String()
		if name == st.sess.Settings.SelectedCar {
			name += " (current)"
		}
		centered(c, cw, row+i, marker+name)
	}
	controls(c, cw, "w/s: move", "enter: pick", "esc: back")
}

func (st *State) drawSettings(c *draw.Canvas, cw *draw.ChunkWriter) {
	centered(c, cw, 2, "SETTINGS")
	row := 4
	s := st.sess.Settings

	music := "off"
	if s.MusicOn {
		music = "on"
	}
	vol := int(s.MusicVolume*10 + 0.5)
	volBar := strings.Repeat("#", vol) + strings.Repeat("-", 10-vol)

	lines := []string{
		fmt.Sprintf("%-12s < %s >", "difficulty", s.Difficulty),
		fmt.Sprintf("%-12s %s", "music", music),
		fmt.Sprintf("%-12s [%s] %d%%", "volume", volBar, vol*10),
		"back",
	}
	for i, line := range lines {
		marker := "  "
		if i == st.settingsCursor {
			marker = "> "
		}
		centered(c, cw, row+i*2, marker+line)
	}
	controls(c, cw, "w/s: move", "a/d: change", "esc: back")
}

func (st *State) drawScores(c *draw.Canvas, cw *draw.ChunkWriter) {
	centered(c, cw, 2, "LEADERBOARD")

	var tabs []string
	for i, t := range scoresTabs() {
		if i == st.scoresTab {
			tabs = append(tabs, "["+t+"]")
		} else {
			tabs = append(tabs, t)
		}
	}
	centered(c, cw, 4, strings.Join(tabs, "  "))

	row := 6
	switch {
	case st.scoresErr:
		centered(c, cw, row, "leaderboard unavailable")
	case len(st.scoresRows) == 0:
		centered(c, cw, row, "no scores yet, go race")
	default:
		for i, r := range st.scoresRows {
			day := r.CreatedAt
			if len(day) > 10 {
				day = day[:10]
			}
			line := fmt.Sprintf("%2d. %-16s %6d  %-9s %s", i+1, r.Username, r.Score, r.Difficulty, day)
			centered(c, cw, row+i, line)
		}
	}
	controls(c, cw, "a/d: board", "esc: back")
}

func (st *State) drawHelp(c *draw.Canvas, cw *draw.ChunkWriter) {
	centered(c, cw, 2, "HOW TO PLAY")
	lines := []string{
		"steer between three lanes and dodge oncoming cars",
		"",
		"a/d or arrows  change lane",
		"p              pause",
		"l              leaderboard (while paused)",
		"m              music on/off",
		"q              quit to menu",
		"",
		"pass a car           +150",
		"squeeze past closely +100 extra",
		"",
		"the road gets faster and busier as your score grows",
	}
	row := 4
	for i, line := range lines {
		centered(c, cw, row+i, line)
	}
	controls(c, cw, "esc: back")
}

func (st *State) drawDifficulty(c *draw.Canvas, cw *draw.ChunkWriter) {
	centered(c, cw, 2, "PICK YOUR TRAFFIC")
	row := 4

	notes := map[string]string{
		difficulty.Casual:    "a gentle commute",
		difficulty.Heroic:    "rush hour",
		difficulty.Nightmare: "everyone is late",
	}
	for i, mode := range difficulty.Modes {
		marker := "  "
		if i == st.diffCursor {
			marker = "> "
		}
		centered(c, cw, row+i*2, fmt.Sprintf("%s%d. %-10s %s", marker, i+1, mode, notes[mode]))
	}
	controls(c, cw, "w/s: move", "enter: race", "esc: back")
}

func (st *State) drawGame(c *draw.Canvas, cw *draw.ChunkWriter, paused bool) {
	c.Clear()
	st.round.Draw(c)
	c.Render(cw)

	// HUD sits on the top row, over the road shoulder.
	hud := fmt.Sprintf(" %s . %s . score %d ", st.sess.Username, st.round.Profile.Mode, st.round.Score)
	centered(c, cw, 1, hud)

	if paused {
		mid := c.TerminalHeight() / 2
		centered(c, cw, mid-1, "          ")
		centered(c, cw, mid, "  PAUSED  ")
		centered(c, cw, mid+1, "          ")
		controls(c, cw, "p: resume", "l: board", "esc: quit run")
	}
}

func (st *State) drawGameOver(now time.Time, c *draw.Canvas, cw *draw.ChunkWriter) {
	c.Clear()
	st.round.Draw(c)
	c.Render(cw)

	mid := c.TerminalHeight() / 2
	centered(c, cw, mid-3, "                    ")
	centered(c, cw, mid-2, "     GAME OVER      ")
	centered(c, cw, mid-1, "                    ")
	centered(c, cw, mid, fmt.Sprintf("   score  %6d    ", st.round.Score))

	note := ""
	switch {
	case st.round.SaveFailed:
		note = "score not saved"
	case !st.sess.LoggedIn():
		note = "log in to keep scores"
	}
	if note != "" {
		centered(c, cw, mid+1, " "+note+" ")
	}

	if blinkOn(now) {
		centered(c, cw, mid+3, "space: again")
	}
	controls(c, cw, "space: again", "l: board", "enter: menu")
}
