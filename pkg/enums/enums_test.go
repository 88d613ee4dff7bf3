package enums

import "testing"

func TestProductCategoryValidation(t *testing.T) {
	for _, category := range ProductCategories() {
		if !category.IsValid() {
			t.Fatalf("canonical category %q reported invalid", category)
		}
		if err := category.Validate(); err != nil {
			t.Fatalf("canonical category %q: %v", category, err)
		}
	}

	bogus := ProductCategory("Spaceships")
	if bogus.IsValid() {
		t.Fatal("unknown category reported valid")
	}
	if err := bogus.Validate(); err == nil {
		t.Fatal("expected validation error for unknown category")
	}
}

func TestProductConditionValidation(t *testing.T) {
	for _, condition := range ProductConditions() {
		if !condition.IsValid() {
			t.Fatalf("canonical condition %q reported invalid", condition)
		}
	}

	if ProductCondition("Broken").IsValid() {
		t.Fatal("unknown condition reported valid")
	}
	if err := ProductCondition("Broken").Validate(); err == nil {
		t.Fatal("expected validation error for unknown condition")
	}
}

func TestEnumStringRoundTrip(t *testing.T) {
	if ProductCategoryHomeGarden.String() != "Home & Garden" {
		t.Fatalf("unexpected category string %q", ProductCategoryHomeGarden.String())
	}
	if ProductConditionLikeNew.String() != "Like New" {
		t.Fatalf("unexpected condition string %q", ProductConditionLikeNew.String())
	}
}
