// pricebook/units/units_test.go
package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePackSize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PackSize
	}{
		{
			name: "empty input defaults",
			in:   "",
			want: PackSize{PackCount: 1, SizeValue: 1, Unit: "each", Family: FamilyUnknown, TotalUnits: 1},
		},
		{
			name: "random weight pounds",
			in:   "4/10#AVG",
			want: PackSize{PackCount: 4, SizeValue: 10, Unit: "lb", Family: FamilyWeight, IsAvgWeight: true, TotalUnits: 40},
		},
		{
			name: "ounces stay ounces",
			in:   "6/12.9OZ",
			want: PackSize{PackCount: 6, SizeValue: 12.9, Unit: "oz", Family: FamilyWeight, TotalUnits: 77.4},
		},
		{
			name: "count pack",
			in:   "1/500CT",
			want: PackSize{PackCount: 1, SizeValue: 500, Unit: "ct", Family: FamilyCount, TotalUnits: 500},
		},
		{
			name: "fractional size with space",
			in:   "9/.5 GAL",
			want: PackSize{PackCount: 9, SizeValue: 0.5, Unit: "gal", Family: FamilyVolume, TotalUnits: 4.5},
		},
		{
			name: "no pack separator",
			in:   "10LB",
			want: PackSize{PackCount: 1, SizeValue: 10, Unit: "lb", Family: FamilyWeight, TotalUnits: 10},
		},
		{
			name: "lowercase input",
			in:   "2/5lb",
			want: PackSize{PackCount: 2, SizeValue: 5, Unit: "lb", Family: FamilyWeight, TotalUnits: 10},
		},
		{
			name: "unrecognized token falls back to each",
			in:   "MISC",
			want: PackSize{PackCount: 1, SizeValue: 1, Unit: "each", Family: FamilyUnknown, TotalUnits: 1},
		},
		{
			name: "avg marker ignored on non-weight unit",
			in:   "4/10CTAVG",
			want: PackSize{PackCount: 4, SizeValue: 10, Unit: "ct", Family: FamilyCount, IsAvgWeight: false, TotalUnits: 40},
		},
		{
			name: "bare pound sign",
			in:   "2/5#",
			want: PackSize{PackCount: 2, SizeValue: 5, Unit: "lb", Family: FamilyWeight, TotalUnits: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePackSize(tt.in)
			assert.Equal(t, tt.want.PackCount, got.PackCount, "pack count")
			assert.InDelta(t, tt.want.SizeValue, got.SizeValue, 1e-9, "size value")
			assert.Equal(t, tt.want.Unit, got.Unit, "unit")
			assert.Equal(t, tt.want.Family, got.Family, "family")
			assert.Equal(t, tt.want.IsAvgWeight, got.IsAvgWeight, "avg weight flag")
			assert.InDelta(t, tt.want.TotalUnits, got.TotalUnits, 1e-9, "total units")
		})
	}
}

func TestParsePackSizeTotalIsProduct(t *testing.T) {
	for _, in := range []string{"4/10LB", "6/12.9OZ", "1/500CT", "24/16FLOZ", "3/2.5KG"} {
		ps := ParsePackSize(in)
		assert.GreaterOrEqual(t, ps.PackCount, 1, in)
		assert.GreaterOrEqual(t, ps.SizeValue, 0.0, in)
		assert.InDelta(t, float64(ps.PackCount)*ps.SizeValue, ps.TotalUnits, 1e-9, in)
	}
}
