// Package wizard holds the configuration state a shopper builds step by
// step and derives everything the preview, price card and cart depend
// on. Mutation is owned by a single active session; recomputation is an
// explicit pure function, not a hidden reactive effect.
package wizard

import (
	"framex/internal/catalog"
	"framex/internal/geometry"
)

// Selection is the shopper's current configuration: the inputs only.
// Everything derived from them lives in Derived.
type Selection struct {
	ArtType    string             `json:"art_type,omitempty"`
	EmptyFrame bool               `json:"empty_frame,omitempty"`
	PrintSize  *catalog.PrintSize `json:"print_size,omitempty"`
	ArtSize    string             `json:"art_size,omitempty"`
	Quantity   int                `json:"quantity,omitempty"`
	Frame      *catalog.Moulding  `json:"frame,omitempty"`
	MatWidth   *catalog.Variant   `json:"mat_width,omitempty"`
	MatColor   *catalog.Variant   `json:"mat_color,omitempty"`
	PrintPrice float64            `json:"print_price,omitempty"`
	PrintCost  float64            `json:"print_cost,omitempty"`
}

// BaseSizeText is the art size the frame is built around: the chosen
// print size record when present, else the free-text art size.
func (s *Selection) BaseSizeText() string {
	if s.PrintSize != nil && s.PrintSize.Size != "" {
		return s.PrintSize.Size
	}
	return s.ArtSize
}

// SetPrintSize picks a print size record and carries its price/cost into
// the combined pricing inputs.
func (s *Selection) SetPrintSize(ps *catalog.PrintSize) {
	s.PrintSize = ps
	if ps != nil {
		s.PrintPrice = ps.Price
		s.PrintCost = ps.Cost
	} else {
		s.PrintPrice = 0
		s.PrintCost = 0
	}
}

// SetMatWidth selects a mat width variant. The zero-inch option is the
// canonical no-mat state: it clears both width and color together.
// Selecting a nonzero width never auto-selects a color.
func (s *Selection) SetMatWidth(v *catalog.Variant) {
	if v == nil || geometry.ThicknessToInches(v.Thickness) == 0 {
		s.MatWidth = nil
		s.MatColor = nil
		return
	}
	s.MatWidth = v
}

// MatColorEnabled reports whether a mat color may be chosen: only when a
// nonzero mat width is present.
func (s *Selection) MatColorEnabled() bool {
	return s.MatWidth != nil && geometry.ThicknessToInches(s.MatWidth.Thickness) > 0
}

// SetMatColor selects a mat color variant. Ignored while the color
// control is disabled.
func (s *Selection) SetMatColor(v *catalog.Variant) {
	if !s.MatColorEnabled() {
		return
	}
	s.MatColor = v
}

// MatInches is the selected mat width in inches, 0 when no mat.
func (s *Selection) MatInches() float64 {
	if s.MatWidth == nil {
		return 0
	}
	return geometry.ThicknessToInches(s.MatWidth.Thickness)
}
