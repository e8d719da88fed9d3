package wizard

import (
	"framex/internal/catalog"
	"framex/internal/geometry"
	"framex/internal/pricing"
)

// fixedMaterials are always included in a framed product; each is
// auto-filled with its first variant unless the shopper already chose
// one.
var fixedMaterials = []string{"Glass", "Acrylic", "Wood Board", "Hanging Hardware"}

// Fallback variant lists keep the configurator usable before or without
// backend data: zero-priced, so they never distort the price.
var (
	fallbackMatWidths = []catalog.Variant{
		{ID: "mw0", Thickness: `0"`, Price: 0, Unit: "per item"},
		{ID: "mw1", Thickness: `1"`, Price: 0, Unit: "per item"},
		{ID: "mw2", Thickness: `2"`, Price: 0, Unit: "per item"},
		{ID: "mw3", Thickness: `3"`, Price: 0, Unit: "per item"},
		{ID: "mw4", Thickness: `4"`, Price: 0, Unit: "per item"},
		{ID: "mw5", Thickness: `5"`, Price: 0, Unit: "per item"},
	}
	fallbackMatColors = []catalog.Variant{
		{ID: "mc1", Thickness: "White", Price: 0, Unit: "per item"},
		{ID: "mc2", Thickness: "Off White", Price: 0, Unit: "per item"},
		{ID: "mc3", Thickness: "Black", Price: 0, Unit: "per item"},
	}
)

// Derived carries every value recomputed from a Selection plus catalog
// data: geometry for the preview, the selected-variant map, and pricing.
type Derived struct {
	MatInches      float64
	FinalFrameSize string
	OutW, OutH     float64
	MountPaddingPx float64

	MountColorMaterial *catalog.Material
	MountSizeMaterial  *catalog.Material
	MatWidthOptions    []catalog.Variant
	MatColorOptions    []catalog.Variant

	SelectedVariants map[string]string

	Pricing  pricing.Result
	Combined pricing.Result
}

// Derive recomputes all derived state for a selection. It is pure and
// idempotent: the owning controller calls it after every mutation
// instead of relying on dependency-triggered effects.
func Derive(sel Selection, materials []catalog.Material, factors *catalog.CostFactors) Derived {
	d := Derived{}

	base := sel.BaseSizeText()
	d.MatInches = sel.MatInches()
	d.FinalFrameSize = base
	if d.MatInches != 0 {
		d.FinalFrameSize = geometry.FinalFrameSize(base, d.MatInches)
	}

	out := geometry.ParseSize(d.FinalFrameSize)
	d.OutW, d.OutH = out.W, out.H
	d.MountPaddingPx = geometry.Clamp(60+d.MatInches*60, 10, 80)

	d.MountColorMaterial = catalog.FindContains(materials, "mount color")
	if d.MountColorMaterial == nil {
		d.MountColorMaterial = catalog.FindExact(materials, "Mount Color")
	}
	d.MountSizeMaterial = catalog.FindContains(materials, "mount size")
	if d.MountSizeMaterial == nil {
		d.MountSizeMaterial = catalog.FindContains(materials, "mount width")
	}
	if d.MountSizeMaterial == nil {
		d.MountSizeMaterial = catalog.FindExact(materials, "Mount Size")
	}

	d.MatWidthOptions = fallbackMatWidths
	if d.MountSizeMaterial != nil && len(d.MountSizeMaterial.Variants) > 0 {
		d.MatWidthOptions = d.MountSizeMaterial.Variants
	}
	d.MatColorOptions = fallbackMatColors
	if d.MountColorMaterial != nil && len(d.MountColorMaterial.Variants) > 0 {
		d.MatColorOptions = d.MountColorMaterial.Variants
	}

	d.SelectedVariants = buildSelectedVariants(sel, materials, d.MountColorMaterial, d.MountSizeMaterial)

	d.Pricing = pricing.Compute(d.FinalFrameSize, d.SelectedVariants, materials, factors, sel.Frame)
	d.Combined = pricing.Combine(d.Pricing, sel.PrintPrice, sel.PrintCost)

	return d
}

// buildSelectedVariants inserts the explicit mat choices first, then
// auto-fills the fixed materials with their first variant when the
// shopper has not picked one. At most one variant id per material id.
func buildSelectedVariants(sel Selection, materials []catalog.Material, mountColor, mountSize *catalog.Material) map[string]string {
	out := make(map[string]string)

	if sel.MatColor != nil && mountColor != nil {
		out[mountColor.ID] = sel.MatColor.ID
	}
	if sel.MatWidth != nil && mountSize != nil {
		out[mountSize.ID] = sel.MatWidth.ID
	}

	for _, name := range fixedMaterials {
		m := catalog.FindExact(materials, name)
		if m == nil {
			continue
		}
		if out[m.ID] == "" {
			out[m.ID] = catalog.FirstVariantID(m)
		}
	}

	return out
}
