// pricebook/pricing/resolver.go
package pricing

import (
	"strconv"
	"strings"

	"pricebook/units"
)

// ouncesPerPound is the one cross-unit conversion the resolver performs:
// the distributor's per-weight price column is denominated per pound even
// when the pack is stated in ounces.
const ouncesPerPound = 16.0

// ParsePrice parses a vendor price cell. Currency symbols and thousands
// separators are tolerated. "MARKET" and blank both parse to zero; the
// caller distinguishes market pricing by the surrounding columns, not here.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.EqualFold(s, "MARKET") {
		return 0
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Resolved carries the single cost basis computed for a row.
type Resolved struct {
	CostPerUnit float64
	CasePrice   float64
}

// Resolve computes cost-per-unit and a case price from the distributor's
// inconsistent price encodings. The decision order is deliberate and must
// not be reordered; the each-price branch keys off whether the case price
// column looked like market pricing (blank and MARKET both parse to zero).
//
//  1. Each/split price present: when case qty is zero and no case price was
//     given, the each price is the total for one full pack; otherwise it is
//     the price per split (one case divided by pack count).
//  2. Case price present: average-weight pound packs are priced per pound
//     in the case price column itself; everything else divides by total
//     content units.
//  3. Per-weight price on a weight pack: per-pound basis, converting only
//     through 16 oz = 1 lb.
//  4. Nothing usable: zero cost, row still imports.
func Resolve(casePrice, eachPrice, perWeightPrice, caseQty float64, ps units.PackSize) Resolved {
	totalUnits := ps.TotalUnits
	if totalUnits <= 0 {
		totalUnits = 1
	}
	sizeValue := ps.SizeValue
	if sizeValue <= 0 {
		sizeValue = 1
	}

	if eachPrice > 0 {
		if caseQty == 0 && casePrice <= 0 {
			// Market-priced or caseless row: the each price covers the
			// whole pack-count x size-value quantity.
			cpu := eachPrice / totalUnits
			return Resolved{CostPerUnit: cpu, CasePrice: eachPrice}
		}
		cpu := eachPrice / sizeValue
		cp := casePrice
		if cp <= 0 {
			cp = cpu * totalUnits
		}
		return Resolved{CostPerUnit: cpu, CasePrice: cp}
	}

	if casePrice > 0 {
		if ps.IsAvgWeight && ps.Unit == "lb" {
			// Random-weight: the "case price" column holds a per-pound
			// price for these rows.
			return Resolved{CostPerUnit: casePrice, CasePrice: casePrice * totalUnits}
		}
		return Resolved{CostPerUnit: casePrice / totalUnits, CasePrice: casePrice}
	}

	if perWeightPrice > 0 && ps.Family == units.FamilyWeight {
		cpu := perWeightPrice
		if ps.Unit == "oz" {
			cpu = perWeightPrice / ouncesPerPound
		}
		return Resolved{CostPerUnit: cpu, CasePrice: cpu * totalUnits}
	}

	return Resolved{}
}
