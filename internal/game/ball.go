package game

import (
	"math"

	"github.com/diegok/efipong/internal/geom"
)

const (
	SpeedIncrement = 1.1                // 10% faster after every paddle hit
	MaxBounceAngle = 75 * math.Pi / 180 // 75 degrees max
)

// Ball is a square of Size pixels whose top-left corner sits at (X, Y).
// Velocities are in pixels per second.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Size   int
}

// Move advances the ball by its velocity over dt seconds
func (b *Ball) Move(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Box returns the ball's bounding box
func (b *Ball) Box() geom.Rect[float64] {
	return geom.NewRect(b.X, b.Y, float64(b.Size), float64(b.Size))
}

// CenterY returns the vertical centre of the ball
func (b *Ball) CenterY() float64 {
	return b.Y + float64(b.Size)/2
}

// Speed returns current speed
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// BounceVertical clamps the ball into [0, height-Size] and sends it back
// into the court. It reports whether the velocity changed.
func (b *Ball) BounceVertical(height int) bool {
	maxY := float64(height - b.Size)
	switch {
	case b.Y >= maxY:
		b.Y = maxY
		if b.VY > 0 {
			b.VY = -b.VY
			return true
		}
	case b.Y <= 0:
		b.Y = 0
		if b.VY < 0 {
			b.VY = -b.VY
			return true
		}
	}
	return false
}

// BounceHorizontal is the wall-mode counterpart of BounceVertical for the
// left and right edges.
func (b *Ball) BounceHorizontal(width int) bool {
	maxX := float64(width - b.Size)
	switch {
	case b.X >= maxX:
		b.X = maxX
		if b.VX > 0 {
			b.VX = -b.VX
			return true
		}
	case b.X <= 0:
		b.X = 0
		if b.VX < 0 {
			b.VX = -b.VX
			return true
		}
	}
	return false
}

// BounceOffPaddle sends the ball away from the paddle that was hit at the
// given speed. The angle depends on where on the paddle the ball landed:
// centre hits leave horizontally, edge hits leave at maxAngle.
func (b *Ball) BounceOffPaddle(hit Hit, paddleCenterY float64, paddleHeight int, maxAngle, speed float64) {
	relativeHit := geom.Clamp((b.CenterY()-paddleCenterY)/(float64(paddleHeight)/2), -1, 1)
	bounceAngle := relativeHit * maxAngle

	b.VX = hit.Direction() * speed * math.Cos(bounceAngle)
	b.VY = speed * math.Sin(bounceAngle)
}

// Serve places the ball at (x, y) and launches it horizontally in dir
// (+1 right, -1 left) with the given vertical component.
func (b *Ball) Serve(x, y, dir, speed, vy float64) {
	b.X = x
	b.Y = y
	b.VX = dir * speed
	b.VY = vy
}
