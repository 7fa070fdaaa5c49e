// pricebook/category/classifier_test.go
package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		brand        string
		description  string
		categoryCode string
		want         string
	}{
		{"keyword in description", "", "Chicken Breast Boneless", "", Proteins},
		{"keyword in brand", "CheddarCo", "Block 10LB", "", Dairy},
		{"case insensitive", "", "ICED TEA UNSWEETENED", "", Beverages},
		{"proteins win over condiments", "", "Chicken Wing Sauce", "", Proteins},
		{"packaging keyword", "", "Foam Tray 500ct", "", Packaging},
		{"fallback to category code", "", "Gizmo Deluxe", "D", Dairy},
		{"lowercase category code", "", "Gizmo Deluxe", "m", Proteins},
		{"unknown code falls back to other", "", "Gizmo Deluxe", "Z", Other},
		{"nothing matches", "Acme", "Widget", "", Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.brand, tt.description, tt.categoryCode))
		})
	}
}
