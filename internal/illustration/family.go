// Package illustration ties the generation loop, constraint specs, and
// template filling together for each supported diagram family.
package illustration

import (
	"fmt"

	"illustrator/internal/prompt"
)

// Family describes one diagram type: which request field carries its shape,
// the shape bounds, and how its prompts are framed.
type Family struct {
	Name       string
	ShapeField string
	MinShape   int
	MaxShape   int
	Purpose    string
	Guidance   func(shape int) []string
	// LabelFields names content fields normalized to title case after
	// generation, per shape. Nil means no normalization for the family.
	LabelFields func(shape int) []string
}

// ValidShape reports whether the requested shape is inside the family's
// supported range.
func (f Family) ValidShape(shape int) bool {
	return shape >= f.MinShape && shape <= f.MaxShape
}

// Builder returns a prompt builder configured for the family.
func (f Family) Builder() *prompt.Builder {
	return &prompt.Builder{
		Purpose:  f.Purpose,
		Guidance: f.Guidance,
	}
}

var pyramid = Family{
	Name:       "pyramid",
	ShapeField: "num_levels",
	MinShape:   3,
	MaxShape:   6,
	Purpose:    "a %d-level hierarchical pyramid diagram",
	Guidance: func(shape int) []string {
		rules := []string{
			fmt.Sprintf("level_%d is the TOP of the pyramid (the peak, most aspirational), level_1 is the BOTTOM (the foundation)", shape),
			"each level's description explains why that layer matters and how it supports the layer above",
			"labels are short noun phrases; wrap the 1-2 most important words of each description in <strong> tags",
			"a long label may be split across two lines with a single <br> tag",
		}
		if shape <= 4 {
			rules = append(rules, "overview_text summarizes the whole pyramid narrative from foundation to peak in 2-3 sentences")
		}
		return rules
	},
	LabelFields: func(shape int) []string {
		fields := make([]string, 0, shape)
		for i := 1; i <= shape; i++ {
			fields = append(fields, fmt.Sprintf("level_%d_label", i))
		}
		return fields
	},
}

var funnel = Family{
	Name:       "funnel",
	ShapeField: "num_stages",
	MinShape:   3,
	MaxShape:   5,
	Purpose:    "a %d-stage conversion funnel diagram",
	Guidance: func(shape int) []string {
		return []string{
			"stage_1 is the WIDEST stage (broadest input), the last stage is the NARROWEST (final outcome)",
			"stage names are short action-oriented phrases",
			"each stage has exactly 3 bullets; each bullet is one concrete, self-contained point",
			"wrap the 1-2 most important words of each bullet in <strong> tags",
			"stages must form a logical narrowing progression from first to last",
		}
	},
	LabelFields: func(shape int) []string {
		fields := make([]string, 0, shape)
		for i := 1; i <= shape; i++ {
			fields = append(fields, fmt.Sprintf("stage_%d_name", i))
		}
		return fields
	},
}

var concentricCircles = Family{
	Name:       "concentric_circles",
	ShapeField: "num_circles",
	MinShape:   3,
	MaxShape:   5,
	Purpose:    "a %d-ring concentric circles diagram",
	Guidance: func(shape int) []string {
		bullets := legendBullets(shape)
		return []string{
			fmt.Sprintf("circle_1 is the INNERMOST ring (the core concept), circle_%d is the OUTERMOST (the broadest scope)", shape),
			"each ring strictly contains the ring inside it, conceptually",
			fmt.Sprintf("each ring's legend has exactly %d bullets elaborating that ring", bullets),
			"wrap the 1-2 most important words of each bullet in <strong> tags",
		}
	},
}

var conceptSpread = Family{
	Name:       "concept_spread",
	ShapeField: "num_concepts",
	MinShape:   6,
	MaxShape:   6,
	Purpose:    "a spread of %d related concept cards",
	Guidance: func(shape int) []string {
		return []string{
			"the concepts together cover the topic with minimal overlap",
			"labels are short noun phrases; descriptions are one dense sentence each",
			"wrap the 1-2 most important words of each description in <strong> tags",
		}
	},
}

// legendBullets is the per-ring legend size: more rings leave less room.
func legendBullets(circles int) int {
	switch circles {
	case 3:
		return 5
	case 4:
		return 4
	default:
		return 3
	}
}

var families = []Family{pyramid, funnel, concentricCircles, conceptSpread}

// Lookup finds a family by its route name.
func Lookup(name string) (Family, bool) {
	for _, f := range families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// Families lists every supported family in registration order.
func Families() []Family {
	return families
}
