package wizard

import (
	"testing"

	"framex/internal/catalog"
)

func matVariant(id, thickness string) *catalog.Variant {
	return &catalog.Variant{ID: id, Thickness: thickness, Unit: "per item"}
}

func storeMaterials() []catalog.Material {
	return []catalog.Material{
		{ID: "glass", Name: "Glass", Variants: []catalog.Variant{
			{ID: "g1", Thickness: "2mm", Price: 50, Unit: "per item"},
		}},
		{ID: "acrylic", Name: "Acrylic", Variants: []catalog.Variant{
			{ID: "a1", Thickness: "3mm", Price: 0, Unit: "per item"},
		}},
		{ID: "board", Name: "Wood Board", Variants: []catalog.Variant{
			{ID: "b1", Thickness: "5mm", Price: 0, Unit: "per square foot"},
		}},
		{ID: "hw", Name: "Hanging Hardware", Variants: []catalog.Variant{
			{ID: "h1", Thickness: "", Price: 0, Unit: "per item"},
		}},
		{ID: "mcolor", Name: "Mount Color", Variants: []catalog.Variant{
			{ID: "c1", Thickness: "White", Price: 0, Unit: "per item"},
			{ID: "c2", Thickness: "Black", Price: 0, Unit: "per item"},
		}},
		{ID: "msize", Name: "Mount Width Options", Variants: []catalog.Variant{
			{ID: "w0", Thickness: `0"`, Price: 0, Unit: "per item"},
			{ID: "w1", Thickness: `1"`, Price: 0, Unit: "per item"},
			{ID: "w2", Thickness: `2"`, Price: 0, Unit: "per item"},
		}},
	}
}

func plainFactors() *catalog.CostFactors {
	return &catalog.CostFactors{AverageItemsPerDay: 1, ProfitMarginPercent: 1}
}

func TestSetMatWidthZeroClearsColor(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}

	sel.SetMatWidth(matVariant("w1", `1"`))
	sel.SetMatColor(matVariant("c1", "White"))
	if sel.MatColor == nil {
		t.Fatal("color selection with mat present should stick")
	}

	sel.SetMatWidth(matVariant("w0", `0"`))
	if sel.MatWidth != nil || sel.MatColor != nil {
		t.Errorf("zero width must clear both width and color: %+v", sel)
	}
}

func TestMatColorDisabledWithoutWidth(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}
	if sel.MatColorEnabled() {
		t.Error("color should be disabled with no mat width")
	}
	sel.SetMatColor(matVariant("c1", "White"))
	if sel.MatColor != nil {
		t.Error("color selection without a width must be ignored")
	}

	sel.SetMatWidth(matVariant("w1", `1"`))
	if !sel.MatColorEnabled() {
		t.Error("color should be enabled once a width is chosen")
	}
	// a nonzero width never auto-selects a color
	if sel.MatColor != nil {
		t.Error("selecting a width must not auto-select a color")
	}
}

func TestDeriveFinalFrameSize(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}
	d := Derive(sel, storeMaterials(), plainFactors())
	if d.FinalFrameSize != "4x6" {
		t.Errorf("no mat should keep base size, got %q", d.FinalFrameSize)
	}

	sel.SetMatWidth(matVariant("w1", `1"`))
	d = Derive(sel, storeMaterials(), plainFactors())
	if d.FinalFrameSize != "6x8" {
		t.Errorf(`1" mat on 4x6 = %q, want "6x8"`, d.FinalFrameSize)
	}
	if d.OutW != 6 || d.OutH != 8 {
		t.Errorf("out dims = %vx%v", d.OutW, d.OutH)
	}
	if d.MatInches != 1 {
		t.Errorf("mat inches = %v", d.MatInches)
	}
}

func TestDeriveSelectedVariants(t *testing.T) {
	mats := storeMaterials()
	sel := Selection{ArtSize: "4x6"}
	sel.SetMatWidth(matVariant("w2", `2"`))
	sel.SetMatColor(matVariant("c2", "Black"))

	d := Derive(sel, mats, plainFactors())

	want := map[string]string{
		"mcolor":  "c2",
		"msize":   "w2",
		"glass":   "g1",
		"acrylic": "a1",
		"board":   "b1",
		"hw":      "h1",
	}
	if len(d.SelectedVariants) != len(want) {
		t.Fatalf("selected variants = %+v, want %+v", d.SelectedVariants, want)
	}
	for k, v := range want {
		if d.SelectedVariants[k] != v {
			t.Errorf("selected[%s] = %q, want %q", k, d.SelectedVariants[k], v)
		}
	}
}

func TestDeriveFallbackOptions(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}
	d := Derive(sel, nil, nil)

	if len(d.MatWidthOptions) != 6 {
		t.Errorf("fallback widths = %d, want 6", len(d.MatWidthOptions))
	}
	if d.MatWidthOptions[0].Thickness != `0"` || d.MatWidthOptions[5].Thickness != `5"` {
		t.Errorf("fallback width range wrong: %+v", d.MatWidthOptions)
	}
	if len(d.MatColorOptions) != 3 {
		t.Errorf("fallback colors = %d, want 3", len(d.MatColorOptions))
	}
	for _, v := range d.MatWidthOptions {
		if v.Price != 0 {
			t.Errorf("fallback variants must be zero-priced: %+v", v)
		}
	}

	// no catalog: pricing must be unavailable, not zero
	if d.Pricing.Ready || d.Combined.Ready {
		t.Errorf("pricing should not be ready without catalog data: %+v", d.Pricing)
	}
}

func TestDeriveCatalogOptionsWinOverFallback(t *testing.T) {
	d := Derive(Selection{ArtSize: "4x6"}, storeMaterials(), plainFactors())
	if len(d.MatWidthOptions) != 3 {
		t.Errorf("catalog widths = %d, want 3", len(d.MatWidthOptions))
	}
	if d.MountSizeMaterial == nil || d.MountSizeMaterial.ID != "msize" {
		t.Errorf("mount size material = %+v", d.MountSizeMaterial)
	}
	if d.MountColorMaterial == nil || d.MountColorMaterial.ID != "mcolor" {
		t.Errorf("mount color material = %+v", d.MountColorMaterial)
	}
}

func TestDerivePricingAndCombined(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}
	sel.SetPrintSize(&catalog.PrintSize{ID: "ps1", Size: "4x6", Price: 40, Cost: 25})

	d := Derive(sel, storeMaterials(), plainFactors())
	if !d.Pricing.Ready {
		t.Fatalf("pricing not ready: %+v", d.Pricing)
	}
	// glass flat 50 is the only priced contribution
	if d.Pricing.TotalCost != 50 || d.Pricing.Selling != 50 {
		t.Errorf("pricing = %+v, want 50/50", d.Pricing)
	}
	if d.Combined.TotalCost != 75 || d.Combined.Selling != 90 {
		t.Errorf("combined = %+v, want cost 75 selling 90", d.Combined)
	}
}

func TestDeriveIdempotent(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}
	sel.SetMatWidth(matVariant("w1", `1"`))

	a := Derive(sel, storeMaterials(), plainFactors())
	b := Derive(sel, storeMaterials(), plainFactors())

	if a.FinalFrameSize != b.FinalFrameSize || a.Pricing != b.Pricing || a.Combined != b.Combined {
		t.Errorf("repeated derivation differs: %+v vs %+v", a, b)
	}
}

func TestDeriveMountPadding(t *testing.T) {
	sel := Selection{ArtSize: "4x6"}
	d := Derive(sel, nil, nil)
	if d.MountPaddingPx != 60 {
		t.Errorf("no-mat padding = %v, want 60", d.MountPaddingPx)
	}

	sel.SetMatWidth(matVariant("w5", `5"`))
	d = Derive(sel, nil, nil)
	if d.MountPaddingPx != 80 {
		t.Errorf("large mat padding = %v, want clamp at 80", d.MountPaddingPx)
	}
}
