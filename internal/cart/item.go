// Package cart holds the order lines a shopper has composed and the
// service that owns them. Items are immutable once created except for
// quantity and removal.
package cart

import (
	"encoding/json"

	"github.com/google/uuid"

	"framex/internal/catalog"
)

// ProductTypeEmptyFrame marks a bare frame line with no customer photo.
const ProductTypeEmptyFrame = "Empty Frame"

// Material is the minimal human-readable summary stored per line:
// material name plus the chosen variant's label. Pricing detail is
// intentionally dropped at this boundary.
type Material struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

// Item is one cart line. Moulding carries the frame's product code, not
// its internal id: the order backend expects the code string, and a
// reloaded item keeps whatever string was serialized.
type Item struct {
	ID           string     `json:"id,omitempty"`
	ProductType  string     `json:"productType"`
	Size         string     `json:"size"`
	FrameSize    string     `json:"frameSize"`
	Materials    []Material `json:"materials"`
	Moulding     string     `json:"moulding"`
	Image        string     `json:"image"`
	Thumb        string     `json:"thumb"`
	CostPrice    float64    `json:"costPrice"`
	SellingPrice float64    `json:"sellingPrice"`
	Profit       float64    `json:"profit"`
	Quantity     int        `json:"quantity"`
}

// ItemParams collects the inputs for an image-bearing line.
type ItemParams struct {
	ProductType  string
	Size         string
	FrameSize    string
	Materials    []Material
	Frame        *catalog.Moulding
	Image        string
	Thumb        string
	CostPrice    float64
	SellingPrice float64
	Quantity     int
}

// NewItem builds a cart line from a finalized configuration. Profit is
// derived from the price pair; quantity defaults to 1.
func NewItem(p ItemParams) Item {
	qty := p.Quantity
	if qty < 1 {
		qty = 1
	}
	return Item{
		ID:           uuid.NewString(),
		ProductType:  p.ProductType,
		Size:         p.Size,
		FrameSize:    p.FrameSize,
		Materials:    p.Materials,
		Moulding:     mouldingCode(p.Frame),
		Image:        p.Image,
		Thumb:        p.Thumb,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Profit:       p.SellingPrice - p.CostPrice,
		Quantity:     qty,
	}
}

// NewEmptyFrameItem builds the photo-less variant: no size, no image,
// thumb from the moulding's corner shot, quantity as requested.
func NewEmptyFrameItem(frameSize string, frame *catalog.Moulding, costPrice, sellingPrice float64, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}
	thumb := ""
	if frame != nil {
		thumb = frame.CornerImage
	}
	return Item{
		ID:           uuid.NewString(),
		ProductType:  ProductTypeEmptyFrame,
		Size:         "",
		FrameSize:    frameSize,
		Materials:    []Material{},
		Moulding:     mouldingCode(frame),
		Thumb:        thumb,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
		Profit:       sellingPrice - costPrice,
		Quantity:     quantity,
	}
}

func mouldingCode(m *catalog.Moulding) string {
	if m == nil {
		return ""
	}
	return m.Code
}

// ItemFromJSON rebuilds a line from storage or a server payload. The
// moulding field round-trips as the serialized code string.
func ItemFromJSON(data []byte) (Item, error) {
	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		return Item{}, err
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if it.Materials == nil {
		it.Materials = []Material{}
	}
	return it, nil
}

// BuildMaterials resolves every catalog material to its chosen variant
// (falling back to the first variant when none is selected) and emits
// the name/label pairs the cart keeps.
func BuildMaterials(materials []catalog.Material, selected map[string]string) []Material {
	if len(materials) == 0 {
		return []Material{}
	}

	out := make([]Material, 0, len(materials))
	for i := range materials {
		m := &materials[i]
		v := catalog.FindVariant(m, selected[m.ID])
		if v == nil && len(m.Variants) > 0 {
			v = &m.Variants[0]
		}

		label := ""
		if v != nil {
			label = v.Thickness
			if label == "" {
				label = v.Unit
			}
		}
		out = append(out, Material{Name: m.Name, Variant: label})
	}
	return out
}
