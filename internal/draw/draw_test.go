package draw

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		desc string
		want Font
	}{
		{"30px Arial", Font{Size: 30, Family: "Arial"}},
		{"bold 14px Courier New", Font{Size: 14, Bold: true, Family: "Courier New"}},
		{"normal 20px Courier New", Font{Size: 20, Family: "Courier New"}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ParseFont(tt.desc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected font %+v but found %+v", tt.want, got)
			}
			if got.String() != tt.desc && tt.desc != "normal 20px Courier New" {
				t.Errorf("expected font string %q but found %q", tt.desc, got.String())
			}
		})
	}

	for _, bad := range []string{"", "Arial", "bold", "italic 12px Arial", "-3px Arial"} {
		if _, err := ParseFont(bad); !errors.Is(err, ErrInvalidFont) {
			t.Errorf("expected ErrInvalidFont for %q but found %v", bad, err)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#8B4513")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (Color{R: 0x8B, G: 0x45, B: 0x13, A: 0xff}) {
		t.Errorf("unexpected color %+v", c)
	}
	if c.Hex() != "#8B4513" {
		t.Errorf("expected hex %q but found %q", "#8B4513", c.Hex())
	}
	short, _ := ParseHex("#fff")
	if short != White {
		t.Errorf("expected white but found %+v", short)
	}
	bare, err := ParseHex("8b4513")
	if err != nil || bare != c {
		t.Errorf("expected a colour without # to parse the same but found %+v, %v", bare, err)
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "#1234567"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("expected ErrInvalidColor for %q but found %v", bad, err)
		}
	}
}

func TestRGBAAndOver(t *testing.T) {
	c := RGBA(0, 0, 0, 0.5)
	if c.A != 128 {
		t.Errorf("expected alpha %d but found %d", 128, c.A)
	}
	got := Over(color.NRGBA(RGBA(0, 0, 0, 0.5)), color.NRGBA(White))
	if got.A != 0xff || got.R < 126 || got.R > 129 {
		t.Errorf("expected an opaque mid grey but found %+v", got)
	}
	mixed := Over(color.NRGBA(RGBA(255, 0, 0, 0.5)), color.NRGBA(RGBA(0, 0, 255, 0.5)))
	if mixed.A != 192 || mixed.R < 169 || mixed.R > 171 || mixed.B < 84 || mixed.B > 86 {
		t.Errorf("expected translucent red over translucent blue to be a red leaning purple but found %+v", mixed)
	}
	if Over(color.NRGBA(Transparent), color.NRGBA(White)) != color.NRGBA(White) {
		t.Errorf("expected transparent paint to leave the destination untouched")
	}
	if Over(color.NRGBA(Black), color.NRGBA(White)) != color.NRGBA(Black) {
		t.Errorf("expected opaque paint to replace the destination")
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 0, 100).
		AddColorStop(1, MustHex("#000000")).
		AddColorStop(0, MustHex("#FFFFFF"))

	if got := g.At(0, -10); got != color.NRGBA(White) {
		t.Errorf("expected white before the first stop but found %+v", got)
	}
	if got := g.At(50, 50); got.R != 128 && got.R != 127 {
		t.Errorf("expected mid grey half way but found %+v", got)
	}
	if got := g.At(0, 200); got != color.NRGBA(Black) {
		t.Errorf("expected black after the last stop but found %+v", got)
	}
	if got := NewLinearGradient(0, 0, 0, 1).At(0, 0); got != (color.NRGBA{}) {
		t.Errorf("expected a gradient without stops to be transparent but found %+v", got)
	}
}

type fakeSurface struct{}

func (fakeSurface) Context2D() (Context, bool) { return nil, false }

func TestRegistry(t *testing.T) {
	r := Registry{"race": fakeSurface{}, "empty": nil}
	if _, ok := r.Lookup("race"); !ok {
		t.Errorf("expected to find surface %q", "race")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Errorf("expected not to find surface %q", "missing")
	}
	if _, ok := r.Lookup("empty"); ok {
		t.Errorf("expected a nil surface not to resolve")
	}
}
