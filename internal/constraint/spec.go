// Package constraint holds the per-variant character budgets that generated
// content must satisfy, and the validator that checks content against them.
package constraint

import "fmt"

// VariantID identifies one shape of an illustration family, e.g. "pyramid_4".
type VariantID string

// NewVariantID builds the canonical id for a family and shape count.
func NewVariantID(family string, shape int) VariantID {
	return VariantID(fmt.Sprintf("%s_%d", family, shape))
}

// FieldRange is the inclusive character budget for one output field.
// Counts apply to visible text only; markup tags are stripped first.
type FieldRange struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// Spec is the full constraint set for one variant. Fields preserve the
// order content should be generated and rendered in. Immutable after load.
type Spec struct {
	VariantID     VariantID         `json:"variant_id"`
	Fields        []FieldRange      `json:"fields"`
	GoldenExample map[string]string `json:"golden_example"`
}

// FieldNames returns the spec's field names in order.
func (s Spec) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}
