// Package palette holds the game's colors and the conversions between hex
// strings and surface pixels.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/diegok/efipong/internal/surface"
)

// Hex is the textual form of a Palette, as found in the config file. Empty
// fields fall back to the default palette.
type Hex struct {
	Background  string `toml:"background"`
	Ball        string `toml:"ball"`
	LeftPaddle  string `toml:"left_paddle"`
	RightPaddle string `toml:"right_paddle"`
	Net         string `toml:"net"`
	Text        string `toml:"text"`
}

// Palette is the set of colors a frame is drawn with.
type Palette struct {
	Background  surface.Color
	Ball        surface.Color
	LeftPaddle  surface.Color
	RightPaddle surface.Color
	Net         surface.Color
	Text        surface.Color
}

// Default returns the classic white-on-black look with tinted paddles.
func Default() Palette {
	return Palette{
		Background:  surface.RGB(0, 0, 0),
		Ball:        surface.RGB(255, 255, 255),
		LeftPaddle:  surface.RGB(255, 64, 64),
		RightPaddle: surface.RGB(64, 128, 255),
		Net:         surface.RGB(128, 128, 128),
		Text:        surface.RGB(255, 255, 255),
	}
}

// Parse converts h into a Palette.
func Parse(h Hex) (Palette, error) {
	p := Default()
	fields := []struct {
		name string
		hex  string
		dst  *surface.Color
	}{
		{"background", h.Background, &p.Background},
		{"ball", h.Ball, &p.Ball},
		{"left_paddle", h.LeftPaddle, &p.LeftPaddle},
		{"right_paddle", h.RightPaddle, &p.RightPaddle},
		{"net", h.Net, &p.Net},
		{"text", h.Text, &p.Text},
	}

	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := ParseColor(f.hex)
		if err != nil {
			return Palette{}, errors.Wrapf(err, "color %s", f.name)
		}
		*f.dst = c
	}
	return p, nil
}

// ParseColor parses "#rrggbb".
func ParseColor(s string) (surface.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return surface.Color{}, errors.Wrapf(err, "parse %q", s)
	}
	return fromColorful(c), nil
}

// Blend mixes a toward b by t (0 keeps a, 1 gives b) in Lab space.
func Blend(a, b surface.Color, t float64) surface.Color {
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t).Clamped())
}

// Dimmed returns a copy with every foreground color pulled toward the
// background by t.
func (p Palette) Dimmed(t float64) Palette {
	return Palette{
		Background:  p.Background,
		Ball:        Blend(p.Ball, p.Background, t),
		LeftPaddle:  Blend(p.LeftPaddle, p.Background, t),
		RightPaddle: Blend(p.RightPaddle, p.Background, t),
		Net:         Blend(p.Net, p.Background, t),
		Text:        p.Text,
	}
}

func toColorful(c surface.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) surface.Color {
	r, g, b := c.RGB255()
	return surface.RGB(r, g, b)
}
