package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Size is a width x height pair in inches. Parsed reports whether the
// source text was a well-formed size; when it is false W and H hold the
// 1x1 fallback so downstream layout code always has usable geometry.
type Size struct {
	W      float64
	H      float64
	Parsed bool
}

// ParseSize parses human-entered size text such as "4x6", `4" x 6"` or
// "4 × 6". Malformed input never fails: anything that is not exactly two
// positive finite numbers falls back to 1x1.
func ParseSize(raw string) Size {
	parts := strings.Split(normalizeSize(raw), "x")
	if len(parts) == 2 {
		w, errW := strconv.ParseFloat(parts[0], 64)
		h, errH := strconv.ParseFloat(parts[1], 64)
		if errW == nil && errH == nil &&
			!math.IsInf(w, 0) && !math.IsInf(h, 0) &&
			w > 0 && h > 0 {
			return Size{W: w, H: h, Parsed: true}
		}
	}
	return Size{W: 1, H: 1}
}

// ParseDimensions parses each side of a size string on its own, zeroing
// only the side that is not numeric. Pricing uses this instead of
// ParseSize so a degenerate catalog size like "0x6" keeps its perimeter.
func ParseDimensions(raw string) (w, h float64) {
	parts := strings.Split(normalizeSize(raw), "x")
	if len(parts) != 2 {
		return 0, 0
	}
	return parseDim(parts[0]), parseDim(parts[1])
}

func parseDim(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func normalizeSize(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "×", "x")
}

// ThicknessToInches parses a mat thickness label such as `1"` or "2.5".
// Non-numeric input means no mat, i.e. 0 inches.
func ThicknessToInches(raw string) float64 {
	t := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	n, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// FinalFrameSize inflates a base art size by the mat border: 2 x matInches
// added to each dimension. A zero mat returns the base text unchanged.
func FinalFrameSize(base string, matInches float64) string {
	if matInches == 0 {
		return base
	}
	sz := ParseSize(base)
	add := matInches * 2
	return formatDim(sz.W+add) + "x" + formatDim(sz.H+add)
}

// FormatSize re-renders size text in the spaced "W x H" display form.
func FormatSize(raw string) string {
	sz := ParseSize(raw)
	return formatDim(sz.W) + " x " + formatDim(sz.H)
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Clamp limits n to the [min, max] range.
func Clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}

// FitLongEdge scales a size to pixel dimensions whose long edge is
// longEdge, preserving aspect ratio. Both edges are clamped to
// [240, 2000] px; the preview stage uses this to build placeholder
// canvases that keep the frame's aspect.
func FitLongEdge(sizeText string, longEdge int) (widthPx, heightPx int) {
	sz := ParseSize(sizeText)
	aspect := sz.W / sz.H
	if aspect == 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}

	if aspect >= 1 {
		widthPx = longEdge
		heightPx = int(math.Round(float64(longEdge) / aspect))
	} else {
		heightPx = longEdge
		widthPx = int(math.Round(float64(longEdge) * aspect))
	}
	widthPx = int(Clamp(float64(widthPx), 240, 2000))
	heightPx = int(Clamp(float64(heightPx), 240, 2000))
	return widthPx, heightPx
}
