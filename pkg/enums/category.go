package enums

import "fmt"

// ProductCategory represents the canonical listing categories supported by
// the catalog.
type ProductCategory string

const (
	ProductCategoryElectronics ProductCategory = "Electronics"
	ProductCategoryClothing    ProductCategory = "Clothing"
	ProductCategoryHomeGarden  ProductCategory = "Home & Garden"
	ProductCategorySports      ProductCategory = "Sports"
	ProductCategoryBooks       ProductCategory = "Books"
	ProductCategoryToys        ProductCategory = "Toys"
	ProductCategoryAutomotive  ProductCategory = "Automotive"
	ProductCategoryArtCrafts   ProductCategory = "Art & Crafts"
	ProductCategoryMusic       ProductCategory = "Music"
	ProductCategoryOther       ProductCategory = "Other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryElectronics,
	ProductCategoryClothing,
	ProductCategoryHomeGarden,
	ProductCategorySports,
	ProductCategoryBooks,
	ProductCategoryToys,
	ProductCategoryAutomotive,
	ProductCategoryArtCrafts,
	ProductCategoryMusic,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is one of the canonical values.
func (c ProductCategory) IsValid() bool {
	for _, valid := range validProductCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// Validate returns an error for unknown categories.
func (c ProductCategory) Validate() error {
	if !c.IsValid() {
		return fmt.Errorf("invalid product category %q", string(c))
	}
	return nil
}

// ProductCategories returns the canonical category list in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
