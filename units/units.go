// pricebook/units/units.go
package units

import (
	"regexp"
	"strconv"
	"strings"
)

type Family string

const (
	FamilyCount   Family = "count"
	FamilyWeight  Family = "weight"
	FamilyVolume  Family = "volume"
	FamilyUnknown Family = "unknown"
)

// PackSize is the normalized form of a vendor pack/size string such as
// "4/10#AVG" or "6/12.9OZ". TotalUnits stays in the vendor's stated unit;
// no cross-family conversion is performed here.
type PackSize struct {
	PackCount   int     `json:"packCount"`
	SizeValue   float64 `json:"sizeValue"`
	Unit        string  `json:"unit"`
	Family      Family  `json:"family"`
	IsAvgWeight bool    `json:"isAvgWeight"`
	TotalUnits  float64 `json:"totalUnits"`
}

type unitRule struct {
	pattern *regexp.Regexp
	unit    string
	family  Family
}

// Evaluated in declared order; the first match wins. Unrecognized tokens
// fall through to "each"/unknown rather than erroring.
var unitRules = []unitRule{
	{regexp.MustCompile(`^(CT|CNT|COUNT|EA|EACH|PC|PCS|PK|DZ|DOZ)$`), "ct", FamilyCount},
	{regexp.MustCompile(`^(#|LB|LBS|POUND|POUNDS)$`), "lb", FamilyWeight},
	{regexp.MustCompile(`^(OZ|OUNCE|OUNCES)$`), "oz", FamilyWeight},
	{regexp.MustCompile(`^(KG|KILO|KILOS)$`), "kg", FamilyWeight},
	{regexp.MustCompile(`^(G|GR|GRAM|GRAMS)$`), "g", FamilyWeight},
	{regexp.MustCompile(`^(GAL|GALLON|GALLONS)$`), "gal", FamilyVolume},
	{regexp.MustCompile(`^(ML|MILLILITER|MILLILITERS)$`), "ml", FamilyVolume},
	{regexp.MustCompile(`^(L|LT|LTR|LITER|LITERS)$`), "l", FamilyVolume},
	{regexp.MustCompile(`^(FLOZ|FL\.?OZ)$`), "floz", FamilyVolume},
	{regexp.MustCompile(`^(QT|QUART|QUARTS)$`), "qt", FamilyVolume},
	{regexp.MustCompile(`^(PT|PINT|PINTS)$`), "pt", FamilyVolume},
	{regexp.MustCompile(`^(CUP|CUPS)$`), "cup", FamilyVolume},
}

var sizeTokenRe = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*(.*)$`)

// ParsePackSize normalizes a free-text pack/size notation into a PackSize.
// Empty input yields pack=1, size=1, unit "each". A size token with no
// leading number keeps the default size of 1.
func ParsePackSize(raw string) PackSize {
	ps := PackSize{
		PackCount: 1,
		SizeValue: 1,
		Unit:      "each",
		Family:    FamilyUnknown,
	}

	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if s == "" {
		ps.TotalUnits = 1
		return ps
	}

	sizeToken := s
	if idx := strings.Index(s, "/"); idx >= 0 {
		if n, err := strconv.Atoi(s[:idx]); err == nil && n >= 1 {
			ps.PackCount = n
		}
		sizeToken = s[idx+1:]
	}

	unitToken := sizeToken
	if m := sizeTokenRe.FindStringSubmatch(sizeToken); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			ps.SizeValue = v
		}
		unitToken = m[2]
	}

	// Random-weight items carry an AVG marker on the weight token
	// (e.g. "10#AVG"). Strip it before classification.
	if strings.HasSuffix(unitToken, "AVG") {
		ps.IsAvgWeight = true
		unitToken = strings.TrimSuffix(unitToken, "AVG")
	}
	unitToken = strings.Trim(unitToken, ".- ")

	for _, rule := range unitRules {
		if rule.pattern.MatchString(unitToken) {
			ps.Unit = rule.unit
			ps.Family = rule.family
			break
		}
	}

	// AVG only means average-weight pricing on a weight unit.
	if ps.IsAvgWeight && ps.Family != FamilyWeight {
		ps.IsAvgWeight = false
	}

	ps.TotalUnits = float64(ps.PackCount) * ps.SizeValue
	return ps
}
