// Package pricing turns a finalized frame configuration into a cost and
// a selling price. Compute is a pure function: identical inputs always
// produce identical results, and no input combination makes it fail.
package pricing

import (
	"strings"

	"framex/internal/catalog"
	"framex/internal/geometry"
)

const perSquareFootUnit = "per square foot"

// Result is a cost/selling pair. Ready is false until catalog data
// (materials plus cost factors) is available; an unready result means
// "price not yet known", which is distinct from a legitimate zero price.
type Result struct {
	TotalCost float64
	Selling   float64
	Ready     bool
}

// Compute prices a final (mat-inflated) frame size against the selected
// material variants, the chosen moulding and the global cost factors.
//
// Flat-unit variants contribute their price once; "per square foot"
// variants scale with the frame area. The moulding contributes
// rate x running feet of perimeter, since moulding is bought and cut by
// length. Labor adds an area-scaled surcharge on top of its base, and
// marketing_percent is added as a flat amount, which is how the backend
// consumes it despite the name.
func Compute(
	finalSize string,
	selected map[string]string,
	materials []catalog.Material,
	factors *catalog.CostFactors,
	frame *catalog.Moulding,
) Result {
	if len(materials) == 0 || factors == nil {
		return Result{}
	}

	w, h := geometry.ParseDimensions(finalSize)

	squareFeet := (w * h) / 144
	runningFeet := 2 * (w + h) / 12

	var cost float64

	// Walk materials in catalog order so the sum is deterministic;
	// stale ids in the selection simply never match.
	for i := range materials {
		m := &materials[i]
		variantID, ok := selected[m.ID]
		if !ok {
			continue
		}
		v := catalog.FindVariant(m, variantID)
		if v == nil || v.Price <= 0 {
			continue
		}
		if strings.EqualFold(v.Unit, perSquareFootUnit) {
			cost += squareFeet * v.Price
		} else {
			cost += v.Price
		}
	}

	if frame != nil && frame.RatePerLength > 0 {
		cost += runningFeet * frame.RatePerLength
	}

	if factors.LaborCostPerItem > 0 {
		cost += factors.LaborCostPerItem + w*h*0.5
	}

	if factors.MarketingPercent > 0 {
		cost += factors.MarketingPercent
	}

	mul := factors.ProfitMarginPercent
	if mul == 0 {
		mul = 1
	}

	return Result{TotalCost: cost, Selling: cost * mul, Ready: true}
}

// Combine folds a separately priced print (its selling price and cost)
// into a base frame result, e.g. photo-frame = print + frame. An unready
// base stays unready.
func Combine(base Result, printPrice, printCost float64) Result {
	if !base.Ready {
		return Result{}
	}
	return Result{
		TotalCost: base.TotalCost + printCost,
		Selling:   base.Selling + printPrice,
		Ready:     true,
	}
}
