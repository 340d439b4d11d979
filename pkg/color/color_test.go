package color_test

import (
	"image/color"
	"testing"

	svgcolor "github.com/asciireel/svgcast/pkg/color"
)

func TestFromIndex_BoldPromotesToBright(t *testing.T) {
	tests := []struct {
		name  string
		index uint8
		bold  bool
		want  uint8
	}{
		{"normal stays put", 2, false, 2},
		{"bold promotes base", 2, true, 10},
		{"already bright stays put", 10, true, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := svgcolor.FromIndex(tc.index, tc.bold)
			if got.Index != tc.want {
				t.Errorf("FromIndex(%d, %v).Index = %d, want %d", tc.index, tc.bold, got.Index, tc.want)
			}
		})
	}
}

func TestFromHex(t *testing.T) {
	c, err := svgcolor.FromHex("#ff00aa")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}
	if c.Kind != svgcolor.Rgb {
		t.Fatalf("Kind = %v, want Rgb", c.Kind)
	}
	if c.RGBA != (color.RGBA{R: 0xff, G: 0x00, B: 0xaa, A: 255}) {
		t.Errorf("RGBA = %+v", c.RGBA)
	}
}

func TestFromHex_Invalid(t *testing.T) {
	for _, bad := range []string{"notacolor", "#12345", "123"} {
		if _, err := svgcolor.FromHex(bad); err == nil {
			t.Errorf("FromHex(%q) expected an error", bad)
		}
	}
}

func TestRGBAToHex(t *testing.T) {
	got := svgcolor.RGBAToHex(color.RGBA{R: 1, G: 2, B: 255, A: 255})
	if got != "#0102ff" {
		t.Errorf("RGBAToHex = %q, want #0102ff", got)
	}
}

func TestCatalog_ClassForDeduplicatesAndDefaultsAreFixed(t *testing.T) {
	palette := svgcolor.Standard()
	cat := svgcolor.NewCatalog(palette, color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{A: 255})

	if got := cat.ClassFor(svgcolor.Color{Kind: svgcolor.Foreground}); got != "foreground" {
		t.Errorf("Foreground class = %q", got)
	}
	if got := cat.ClassFor(svgcolor.Color{Kind: svgcolor.Background}); got != "background" {
		t.Errorf("Background class = %q", got)
	}

	red, _ := svgcolor.FromHex("#ff0000")
	a := cat.ClassFor(red)
	b := cat.ClassFor(red)
	if a != b {
		t.Errorf("same color got two classes: %q vs %q", a, b)
	}

	blue, _ := svgcolor.FromHex("#0000ff")
	c := cat.ClassFor(blue)
	if c == a {
		t.Errorf("distinct colors collided on class %q", c)
	}

	if got := len(cat.Classes()); got != 2 {
		t.Errorf("Classes() len = %d, want 2", got)
	}
}

func TestCatalog_RGBAForClassRoundTrips(t *testing.T) {
	cat := svgcolor.NewCatalog(svgcolor.Standard(), color.RGBA{A: 255}, color.RGBA{A: 255})
	green, _ := svgcolor.FromHex("#00ff00")
	class := cat.ClassFor(green)

	rgba, ok := cat.RGBAForClass(class)
	if !ok {
		t.Fatalf("RGBAForClass(%q) not found", class)
	}
	if rgba.G != 0xff {
		t.Errorf("RGBAForClass round-trip lost green channel: %+v", rgba)
	}
}
