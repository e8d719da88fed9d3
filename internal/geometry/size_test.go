package geometry

import "testing"

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		w, h float64
		ok   bool
	}{
		{"4x6", 4, 6, true},
		{`4" x 6"`, 4, 6, true},
		{"4 × 6", 4, 6, true},
		{"4X6", 4, 6, true},
		{"12.5x20", 12.5, 20, true},
		{"", 1, 1, false},
		{"abc", 1, 1, false},
		{"4x6x8", 1, 1, false},
		{"4x", 1, 1, false},
		{"x6", 1, 1, false},
		{"0x6", 1, 1, false},
		{"-4x6", 1, 1, false},
		{"4xsix", 1, 1, false},
	}

	for _, c := range cases {
		got := ParseSize(c.in)
		if got.W != c.w || got.H != c.h || got.Parsed != c.ok {
			t.Errorf("ParseSize(%q) = %+v, want {W:%v H:%v Parsed:%v}",
				c.in, got, c.w, c.h, c.ok)
		}
	}
}

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		in   string
		w, h float64
	}{
		{"4x6", 4, 6},
		{`4" x 6"`, 4, 6},
		{"0x6", 0, 6},
		{"4x0", 4, 0},
		{"4xsix", 4, 0},
		{"x6", 0, 6},
		{"", 0, 0},
		{"junk", 0, 0},
		{"4x6x8", 0, 0},
	}
	for _, c := range cases {
		w, h := ParseDimensions(c.in)
		if w != c.w || h != c.h {
			t.Errorf("ParseDimensions(%q) = %v, %v, want %v, %v", c.in, w, h, c.w, c.h)
		}
	}
}

func TestParseSizeIdempotent(t *testing.T) {
	inputs := []string{"4x6", `8" x 10"`, "12 × 18", "2.5x3.5"}
	for _, in := range inputs {
		first := ParseSize(in)
		again := ParseSize(FormatSize(in))
		if first != again {
			t.Errorf("re-parse of formatted %q = %+v, want %+v", in, again, first)
		}
	}
}

func TestThicknessToInches(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`1"`, 1},
		{`2.5"`, 2.5},
		{"3", 3},
		{` 0" `, 0},
		{"White", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ThicknessToInches(c.in); got != c.want {
			t.Errorf("ThicknessToInches(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFinalFrameSize(t *testing.T) {
	if got := FinalFrameSize("4x6", 0); got != "4x6" {
		t.Errorf("zero mat should be identity, got %q", got)
	}
	if got := FinalFrameSize("4x6", 1); got != "6x8" {
		t.Errorf(`FinalFrameSize("4x6", 1) = %q, want "6x8"`, got)
	}
	if got := FinalFrameSize("4x6", 2.5); got != "9x11" {
		t.Errorf(`FinalFrameSize("4x6", 2.5) = %q, want "9x11"`, got)
	}
	// malformed base falls back to 1x1 before inflating
	if got := FinalFrameSize("garbage", 1); got != "3x3" {
		t.Errorf(`FinalFrameSize("garbage", 1) = %q, want "3x3"`, got)
	}
}

func TestFormatSize(t *testing.T) {
	if got := FormatSize("4x6"); got != "4 x 6" {
		t.Errorf(`FormatSize("4x6") = %q, want "4 x 6"`, got)
	}
	if got := FormatSize("nonsense"); got != "1 x 1" {
		t.Errorf(`FormatSize("nonsense") = %q, want "1 x 1"`, got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %v", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3,0,10) = %v", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Errorf("Clamp(42,0,10) = %v", got)
	}
}

func TestFitLongEdge(t *testing.T) {
	w, h := FitLongEdge("4x6", 1200)
	if w != 800 || h != 1200 {
		t.Errorf("FitLongEdge portrait = %dx%d, want 800x1200", w, h)
	}

	w, h = FitLongEdge("6x4", 1200)
	if w != 1200 || h != 800 {
		t.Errorf("FitLongEdge landscape = %dx%d, want 1200x800", w, h)
	}

	// extreme aspect is clamped to the floor
	w, h = FitLongEdge("1x100", 1200)
	if w != 240 || h != 1200 {
		t.Errorf("FitLongEdge skinny = %dx%d, want 240x1200", w, h)
	}
}
