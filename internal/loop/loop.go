package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/mtoman/dodger/internal/draw"
	"github.com/mtoman/dodger/internal/input"
	"github.com/mtoman/dodger/internal/object"
)

// The whole session runs at a fixed step; menus tick at the same rate as
// the game so blinking prompts and the music toggle behave the same
// everywhere.
const (
	fps           = 60
	frameDuration = time.Second / fps
	dt            = 1.0 / fps
)

// Run drives one terminal session from the first screen until the player
// quits, the context is canceled, or the terminal goes away. r must
// deliver raw (uncooked) bytes; w receives ANSI frames.
func Run(ctx context.Context, sess *Session, r io.Reader, w io.Writer, size draw.TermSizeFunc) error {
	stream := input.StartStream(bufio.NewReader(r))
	st := NewState(sess)

	cw := draw.NewChunkWriter(w, 0, 0)
	canvas := draw.NewCanvas(1, 1, object.FieldWidth, object.FieldHeight)

	draw.HideCursor(cw)
	defer func() {
		draw.ClearScreen(cw)
		draw.ShowCursor(cw)
		cw.Flush()
	}()

	lastW, lastH := -1, -1
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		start := time.Now()

		tw, th, err := size()
		if err != nil {
			return err
		}
		if tw != lastW || th != lastH {
			layout(canvas, cw, tw, th)
			lastW, lastH = tw, th
		}

		in := input.Read(stream)
		st.Update(start, dt, in, stream)
		if st.done {
			return nil
		}

		draw.ClearScreen(cw)
		st.Draw(start, canvas, cw)
		if err := cw.Flush(); err != nil {
			return err
		}

		if elapsed := time.Since(start); elapsed < frameDuration {
			time.Sleep(frameDuration - elapsed)
		}
	}
}

// layout sizes the render area to the largest centered rectangle that
// keeps the road's aspect. A terminal cell holds two sub-pixels, so the
// column count works off half the logical height.
func layout(c *draw.Canvas, cw *draw.ChunkWriter, tw, th int) {
	const (
		fieldW = int(object.FieldWidth)
		fieldH = int(object.FieldHeight)
	)

	cols := th * 2 * fieldW / fieldH
	rows := th
	if cols > tw {
		cols = tw
		rows = tw * fieldH / (2 * fieldW)
	}
	// Below this the road is unreadable; clamp and let it clip.
	if cols < 24 {
		cols = 24
	}
	if rows < 12 {
		rows = 12
	}
	c.Resize(cols, rows)

	offCol := (tw - cols) / 2
	offRow := (th - rows) / 2
	if offCol < 0 {
		offCol = 0
	}
	if offRow < 0 {
		offRow = 0
	}
	c.SetOffset(offCol, offRow)
	cw.SetOffset(offCol, offRow)
}
