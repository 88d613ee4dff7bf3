package enums

import "fmt"

// ProductCondition grades the wear of a secondhand listing.
type ProductCondition string

const (
	ProductConditionLikeNew ProductCondition = "Like New"
	ProductConditionGood    ProductCondition = "Good"
	ProductConditionFair    ProductCondition = "Fair"
	ProductConditionPoor    ProductCondition = "Poor"
)

var validProductConditions = []ProductCondition{
	ProductConditionLikeNew,
	ProductConditionGood,
	ProductConditionFair,
	ProductConditionPoor,
}

// String implements fmt.Stringer.
func (c ProductCondition) String() string {
	return string(c)
}

// IsValid reports whether the condition is one of the canonical grades.
func (c ProductCondition) IsValid() bool {
	for _, valid := range validProductConditions {
		if c == valid {
			return true
		}
	}
	return false
}

// Validate returns an error for unknown condition grades.
func (c ProductCondition) Validate() error {
	if !c.IsValid() {
		return fmt.Errorf("invalid product condition %q", string(c))
	}
	return nil
}

// ProductConditions returns the canonical grades from best to worst.
func ProductConditions() []ProductCondition {
	out := make([]ProductCondition, len(validProductConditions))
	copy(out, validProductConditions)
	return out
}
