package catalog

import (
	"sort"
	"strings"
)

// Normalize lower-cases and trims a name for comparison. Catalog naming
// is inconsistent ("Mount Color" vs "mount color"), so every lookup goes
// through this.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindExact returns the material whose normalized name equals name,
// or nil.
func FindExact(materials []Material, name string) *Material {
	want := Normalize(name)
	for i := range materials {
		if Normalize(materials[i].Name) == want {
			return &materials[i]
		}
	}
	return nil
}

// FindContains returns the first material whose normalized name contains
// term, or nil. Used before falling back to hardcoded defaults, because
// some feeds name the mat material "mount width options" and similar.
func FindContains(materials []Material, term string) *Material {
	want := Normalize(term)
	for i := range materials {
		if strings.Contains(Normalize(materials[i].Name), want) {
			return &materials[i]
		}
	}
	return nil
}

// FirstVariantID returns the id of a material's first variant, or ""
// when the material is nil or has none.
func FirstVariantID(m *Material) string {
	if m == nil || len(m.Variants) == 0 {
		return ""
	}
	return m.Variants[0].ID
}

// FindVariant resolves a variant id within a material, or nil.
func FindVariant(m *Material, variantID string) *Variant {
	if m == nil {
		return nil
	}
	for i := range m.Variants {
		if m.Variants[i].ID == variantID {
			return &m.Variants[i]
		}
	}
	return nil
}

// SortPrintSizes orders print sizes by their Sort field ascending,
// matching the order the storefront presents them in.
func SortPrintSizes(sizes []PrintSize) {
	sort.SliceStable(sizes, func(i, j int) bool {
		return sizes[i].Sort < sizes[j].Sort
	})
}
