// Package catalog defines the canonical typed records for externally
// supplied catalog data (print sizes, materials, mouldings, cost factors)
// and normalizes the loose field naming of the backend feed once, at the
// point where the data enters the system.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// flexFloat decodes a number that backend records sometimes carry as a
// JSON string or omit entirely.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(n)
	return nil
}

// pickID implements the id / legacy _id tolerance, preferring id.
func pickID(id, legacy string) string {
	if id != "" {
		return id
	}
	return legacy
}

// PrintSize is one offered print size with its base print price and cost.
type PrintSize struct {
	ID    string
	Size  string
	Price float64
	Cost  float64
	Sort  int
}

func (p *PrintSize) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string    `json:"id"`
		LegacyID string    `json:"_id"`
		Size     string    `json:"size"`
		Price    flexFloat `json:"price"`
		Cost     flexFloat `json:"cost"`
		Sort     flexFloat `json:"sort"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = pickID(raw.ID, raw.LegacyID)
	p.Size = raw.Size
	p.Price = float64(raw.Price)
	p.Cost = float64(raw.Cost)
	p.Sort = int(raw.Sort)
	return nil
}

// Variant is one sub-option of a material: a thickness or color label,
// a unit price and the pricing unit ("per square foot" is area-priced,
// anything else is a flat per-item charge).
type Variant struct {
	ID        string
	Thickness string
	Price     float64
	Unit      string
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string    `json:"id"`
		LegacyID  string    `json:"_id"`
		Thickness string    `json:"thickness"`
		Price     flexFloat `json:"price"`
		Unit      string    `json:"unit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.ID = pickID(raw.ID, raw.LegacyID)
	v.Thickness = raw.Thickness
	v.Price = float64(raw.Price)
	v.Unit = raw.Unit
	if v.Unit == "" {
		v.Unit = "per square foot"
	}
	return nil
}

// Material groups an ordered list of variants under one name, e.g.
// "Glass" with thickness options.
type Material struct {
	ID       string
	Name     string
	Variants []Variant
}

func (m *Material) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string    `json:"id"`
		LegacyID string    `json:"_id"`
		Name     string    `json:"name"`
		Variants []Variant `json:"variants"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.ID = pickID(raw.ID, raw.LegacyID)
	m.Name = raw.Name
	m.Variants = raw.Variants
	return nil
}

// Moulding is a frame profile. RatePerLength prices the frame per running
// foot of perimeter. The media references are passed through to the
// preview layer and never interpreted here.
type Moulding struct {
	ID            string
	Code          string
	Name          string
	Tagline       string
	Description   string
	Material      string
	Color         string
	Stock         string
	Status        string
	RatePerLength float64
	Width         float64
	CornerImage   string
	BorderImage   string
	Model3D       string
}

func (m *Moulding) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string    `json:"id"`
		LegacyID     string    `json:"_id"`
		Code         string    `json:"code"`
		Name         string    `json:"name"`
		Tagline      string    `json:"tagline"`
		Description  string    `json:"description"`
		Material     string    `json:"material"`
		Color        string    `json:"color"`
		Stock        string    `json:"stock"`
		Status       string    `json:"status"`
		RateSnake    flexFloat `json:"rate_per_length"`
		RateCamel    flexFloat `json:"ratePerLength"`
		Width        flexFloat `json:"width"`
		CornerSnake  string    `json:"corner_image"`
		CornerCamel  string    `json:"cornerImage"`
		BorderSnake  string    `json:"border_image"`
		BorderCamel  string    `json:"borderImage"`
		Model3DSnake string    `json:"model_3d"`
		Model3DCamel string    `json:"model3d"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.ID = pickID(raw.ID, raw.LegacyID)
	m.Code = raw.Code
	m.Name = raw.Name
	m.Tagline = raw.Tagline
	m.Description = raw.Description
	m.Material = raw.Material
	m.Color = raw.Color
	m.Stock = raw.Stock
	m.Status = raw.Status
	m.RatePerLength = float64(raw.RateSnake)
	if m.RatePerLength == 0 {
		m.RatePerLength = float64(raw.RateCamel)
	}
	m.Width = float64(raw.Width)
	m.CornerImage = firstNonEmpty(raw.CornerSnake, raw.CornerCamel)
	m.BorderImage = firstNonEmpty(raw.BorderSnake, raw.BorderCamel)
	m.Model3D = firstNonEmpty(raw.Model3DSnake, raw.Model3DCamel)
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// CostFactors is the per-pricing-run cost record. MarketingPercent is
// consumed as a flat absolute surcharge despite its name; DailyRent and
// AverageItemsPerDay are carried but unused by the current cost formula.
type CostFactors struct {
	LaborCostPerItem    float64
	MarketingPercent    float64
	DailyRent           float64
	AverageItemsPerDay  float64
	ProfitMarginPercent float64
}

func (c *CostFactors) UnmarshalJSON(data []byte) error {
	var raw struct {
		Labor     flexFloat  `json:"labor_cost_per_item"`
		Marketing flexFloat  `json:"marketing_percent"`
		Rent      flexFloat  `json:"daily_rent"`
		AvgItems  *flexFloat `json:"average_items_per_day"`
		Profit    *flexFloat `json:"profit_margin_percent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.LaborCostPerItem = float64(raw.Labor)
	c.MarketingPercent = float64(raw.Marketing)
	c.DailyRent = float64(raw.Rent)
	c.AverageItemsPerDay = 1
	if raw.AvgItems != nil {
		c.AverageItemsPerDay = float64(*raw.AvgItems)
	}
	c.ProfitMarginPercent = 1
	if raw.Profit != nil {
		c.ProfitMarginPercent = float64(*raw.Profit)
	}
	return nil
}
