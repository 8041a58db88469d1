package handler

import (
	"fmt"
	"net/http"

	"illustrator/internal/illustration"
	"illustrator/internal/template"
)

type familyCapability struct {
	Name       string   `json:"name"`
	ShapeField string   `json:"shape_field"`
	MinShape   int      `json:"min_shape"`
	MaxShape   int      `json:"max_shape"`
	Variants   []string `json:"variants"`
	Endpoint   string   `json:"endpoint"`
}

type themeCapability struct {
	Name    string            `json:"name"`
	Palette map[string]string `json:"palette"`
}

type capabilitiesResponse struct {
	Service  string             `json:"service"`
	Version  string             `json:"version"`
	Families []familyCapability `json:"families"`
	Themes   []themeCapability  `json:"themes"`
}

// HandleCapabilities advertises the supported families, shapes, and themes
// so the layout service can discover what it may request.
func (h *Illustration) HandleCapabilities(w http.ResponseWriter, r *http.Request) {
	families := make([]familyCapability, 0, len(illustration.Families()))
	for _, f := range illustration.Families() {
		variants := make([]string, 0, f.MaxShape-f.MinShape+1)
		for shape := f.MinShape; shape <= f.MaxShape; shape++ {
			variants = append(variants, fmt.Sprintf("%s_%d", f.Name, shape))
		}
		families = append(families, familyCapability{
			Name:       f.Name,
			ShapeField: f.ShapeField,
			MinShape:   f.MinShape,
			MaxShape:   f.MaxShape,
			Variants:   variants,
			Endpoint:   fmt.Sprintf("/v1.0/%s/generate", f.Name),
		})
	}

	themes := make([]themeCapability, 0, len(template.Themes()))
	for _, t := range template.Themes() {
		themes = append(themes, themeCapability{Name: t.Name, Palette: t.Palette()})
	}

	writeJSON(w, http.StatusOK, capabilitiesResponse{
		Service:  "illustrator",
		Version:  "1.0",
		Families: families,
		Themes:   themes,
	})
}
