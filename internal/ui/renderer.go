package ui

import (
	"math"
	"strconv"

	"github.com/diegok/efipong/internal/game"
	"github.com/diegok/efipong/internal/palette"
	"github.com/diegok/efipong/internal/surface"
)

// Text shown outside of play.
const (
	PromptServe = "PRESS SPACE"
	LeftWins    = "LEFT WINS"
	RightWins   = "RIGHT WINS"
)

// DimAmount is how far the court fades toward the background while the
// game waits for a serve.
const DimAmount = 0.6

// Renderer draws the engine state into a surface
type Renderer struct {
	palette palette.Palette
	dimmed  palette.Palette
}

// NewRenderer creates a new renderer with the given palette
func NewRenderer(p palette.Palette) *Renderer {
	return &Renderer{palette: p, dimmed: p.Dimmed(DimAmount)}
}

// Palette returns the colors used while playing.
func (r *Renderer) Palette() palette.Palette {
	return r.palette
}

// Render draws a full frame. The engine is only read.
func (r *Renderer) Render(s *surface.Surface, e *game.Engine) {
	p := r.palette
	if e.State() != game.Playing {
		p = r.dimmed
	}

	s.SetBackground(p.Background)
	s.Clear()

	w, h := s.Width(), s.Height()
	s.FillRectangle(0, 0, w, h, p.Net, false)

	scale := textScale(h)
	if e.Mode() == game.ModeScoring {
		r.drawNet(s, p.Net)
		r.drawScores(s, e, scale, p.Text)
	}

	if paddle, ok := e.Paddle(game.Left); ok {
		drawPaddle(s, paddle, p.LeftPaddle)
	}
	if paddle, ok := e.Paddle(game.Right); ok {
		drawPaddle(s, paddle, p.RightPaddle)
	}

	ball := e.Ball()
	s.FillRectangle(round(ball.X), round(ball.Y), ball.Size, ball.Size, p.Ball, true)

	switch e.State() {
	case game.AwaitingServe:
		drawCentered(s, h/2+2*scale, PromptServe, scale, p.Text)
	case game.Finished:
		msg := LeftWins
		if side, _ := e.Winner(); side == game.Right {
			msg = RightWins
		}
		drawCentered(s, h/3, msg, scale, p.Text)
		drawCentered(s, h/2+2*scale, PromptServe, scale, p.Text)
	}
}

// drawNet draws the dashed centre line
func (r *Renderer) drawNet(s *surface.Surface, c surface.Color) {
	dash := max(s.Height()/30, 1)
	x := s.Width() / 2
	for y := 0; y < s.Height(); y += 2 * dash {
		s.FillRectangle(x, y, 1, dash, c, true)
	}
}

func (r *Renderer) drawScores(s *surface.Surface, e *game.Engine, scale int, c surface.Color) {
	top := 2 * scale
	w := s.Width()
	for _, side := range []game.Side{game.Left, game.Right} {
		paddle, _ := e.Paddle(side)
		text := strconv.Itoa(paddle.Score)
		cx := w / 4
		if side == game.Right {
			cx = 3 * w / 4
		}
		DrawText(s, cx-TextWidth(text, scale)/2, top, text, scale, c)
	}
}

func drawPaddle(s *surface.Surface, p game.Paddle, c surface.Color) {
	s.FillRectangle(round(p.X), round(p.Y), p.Width, p.Height, c, true)
}

func drawCentered(s *surface.Surface, y int, text string, scale int, c surface.Color) {
	DrawText(s, (s.Width()-TextWidth(text, scale))/2, y, text, scale, c)
}

// textScale grows the font with the display, one step per 60 pixels
func textScale(height int) int {
	return max(height/60, 1)
}

func round(v float64) int {
	return int(math.Round(v))
}
