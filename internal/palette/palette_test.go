package palette

import (
	"testing"

	"github.com/diegok/efipong/internal/surface"
)

func near(a, b surface.Color) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 1 && d(a.G, b.G) <= 1 && d(a.B, b.B) <= 1
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want surface.Color
	}{
		{"#000000", surface.RGB(0, 0, 0)},
		{"#ffffff", surface.RGB(255, 255, 255)},
		{"#ff8000", surface.RGB(255, 128, 0)},
		{"#0a0B0c", surface.RGB(10, 11, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"red", "#12345", "#gggggg", ""} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestParse_DefaultsForEmptyFields(t *testing.T) {
	p, err := Parse(Hex{Ball: "#ff0000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if p.Ball != surface.RGB(255, 0, 0) {
		t.Errorf("expected red ball, got %+v", p.Ball)
	}
	if p.Background != def.Background || p.LeftPaddle != def.LeftPaddle {
		t.Error("unset colors should keep their defaults")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse(Hex{Net: "#xyz"}); err == nil {
		t.Error("expected error for an invalid net color")
	}
}

func TestBlend(t *testing.T) {
	black := surface.RGB(0, 0, 0)
	white := surface.RGB(255, 255, 255)

	if got := Blend(white, black, 0); !near(got, white) {
		t.Errorf("t=0 should keep the first color, got %+v", got)
	}
	if got := Blend(white, black, 1); !near(got, black) {
		t.Errorf("t=1 should give the second color, got %+v", got)
	}

	mid := Blend(white, black, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("t=0.5 should land between, got %+v", mid)
	}
}

func TestDimmed(t *testing.T) {
	p := Default()
	d := p.Dimmed(0.5)

	if d.Background != p.Background {
		t.Error("dimming must not change the background")
	}
	if d.Text != p.Text {
		t.Error("dimming must keep text readable")
	}
	if d.Ball == p.Ball {
		t.Error("expected the ball to be dimmed")
	}
}
