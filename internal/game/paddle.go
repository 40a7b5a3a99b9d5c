package game

import "github.com/diegok/efipong/internal/geom"

// Side identifies a paddle.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Hit records which paddle the ball bounced off.
type Hit int

const (
	HitLeft Hit = iota
	HitRight
)

// HitFor returns the hit variant for a paddle side.
func HitFor(s Side) Hit {
	if s == Left {
		return HitLeft
	}
	return HitRight
}

// Direction is the horizontal sign the ball leaves the paddle with.
func (h Hit) Direction() float64 {
	if h == HitLeft {
		return 1
	}
	return -1
}

// Paddle is a vertical bat. X is fixed for the whole match; Y is the top
// edge and stays within [0, courtHeight-Height].
type Paddle struct {
	X, Y   float64
	Width  int
	Height int
	Score  int
}

// Move shifts the paddle by delta and clamps it into the court.
func (p *Paddle) Move(delta float64, courtHeight int) {
	p.Y = geom.Clamp(p.Y+delta, 0, float64(courtHeight-p.Height))
}

// CenterY returns the vertical centre of the paddle.
func (p *Paddle) CenterY() float64 {
	return p.Y + float64(p.Height)/2
}

// Box returns the paddle's bounding box.
func (p *Paddle) Box() geom.Rect[float64] {
	return geom.NewRect(p.X, p.Y, float64(p.Width), float64(p.Height))
}

// Reach returns the paddle box stretched by clearance toward the paddle's own
// wall, so a ball that travelled past the face within one tick still hits.
func (p *Paddle) Reach(side Side, clearance int) geom.Rect[float64] {
	box := p.Box()
	box.W += float64(clearance)
	if side == Left {
		box.X -= float64(clearance)
	}
	return box
}
