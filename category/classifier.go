// pricebook/category/classifier.go
package category

import "strings"

// The fixed category labels used across the catalog.
const (
	Proteins   = "Proteins"
	Dairy      = "Dairy"
	Beverages  = "Beverages"
	Vegetables = "Vegetables"
	Bakery     = "Bakery"
	Condiments = "Condiments"
	Packaging  = "Packaging"
	Desserts   = "Desserts"
	Spices     = "Spices"
	Other      = "Other"
)

type keywordRule struct {
	label    string
	keywords []string
}

// Evaluated in declared order; the first group with a matching keyword
// wins. Proteins are checked first, drinks next.
var keywordRules = []keywordRule{
	{Proteins, []string{"chicken", "beef", "pork", "turkey", "fish", "salmon", "shrimp", "bacon", "sausage", "ham", "steak", "tuna", "lamb", "brisket", "wing"}},
	{Beverages, []string{"soda", "juice", "coffee", "tea", "water", "drink", "cola", "lemonade", "beverage"}},
	{Dairy, []string{"milk", "cheese", "butter", "cream", "yogurt", "egg", "mozzarella", "cheddar", "parmesan"}},
	{Vegetables, []string{"lettuce", "tomato", "onion", "pepper", "potato", "carrot", "cabbage", "broccoli", "spinach", "produce", "vegetable", "mushroom", "celery"}},
	{Bakery, []string{"bread", "bun", "roll", "tortilla", "bagel", "dough", "croissant", "flour", "biscuit"}},
	{Condiments, []string{"sauce", "ketchup", "mustard", "mayo", "mayonnaise", "dressing", "vinegar", "relish", "syrup", "salsa"}},
	{Packaging, []string{"container", "cup lid", "lid", "napkin", "wrap", "foil", "bag", "box", "tray", "glove", "film", "liner", "towel"}},
	{Desserts, []string{"cake", "cookie", "pie", "ice cream", "brownie", "pudding", "dessert", "chocolate"}},
	{Spices, []string{"salt", "spice", "seasoning", "oregano", "paprika", "cumin", "garlic powder", "cinnamon", "basil"}},
}

// categoryCodeFallback maps the distributor's single-letter category codes
// to a label when no keyword matched.
var categoryCodeFallback = map[string]string{
	"M": Proteins,
	"D": Dairy,
	"B": Beverages,
	"V": Vegetables,
	"K": Bakery,
	"C": Condiments,
	"G": Packaging,
	"S": Spices,
}

// Classify assigns a category from the brand + description text, falling
// back to the vendor's category code, then "Other".
func Classify(brand, description, categoryCode string) string {
	haystack := strings.ToLower(brand + " " + description)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.label
			}
		}
	}
	if label, ok := categoryCodeFallback[strings.ToUpper(strings.TrimSpace(categoryCode))]; ok {
		return label
	}
	return Other
}
