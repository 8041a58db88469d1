package template

import "testing"

func TestToTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"PRODUCT DEVELOPMENT STRATEGY", "Product Development Strategy"},
		{"CORE OF THE BUSINESS", "Core of the Business"},
		{"VISION<br>STATEMENT", "Vision<br>Statement"},
		{"VISION<br/>STATEMENT", "Vision<br/>Statement"},
		{"VISION<br />STATEMENT", "Vision<br />Statement"},
		{"the first word wins", "The First Word Wins"},
		{"growth and scale", "Growth and Scale"},
		{"ON<br>AND ON", "On<br>And on"},
		{"build to last", "Build to Last"},
		{"already Good", "Already Good"},
	}
	for _, c := range cases {
		if got := ToTitleCase(c.in); got != c.want {
			t.Errorf("ToTitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleCaseFields(t *testing.T) {
	content := map[string]string{
		"stage_1_name":   "AWARENESS AND REACH",
		"stage_2_name":   "",
		"stage_1_bullet": "UNCHANGED BULLET",
	}
	out := TitleCaseFields(content, []string{"stage_1_name", "stage_2_name", "stage_3_name"})

	if out["stage_1_name"] != "Awareness and Reach" {
		t.Errorf("unexpected: %q", out["stage_1_name"])
	}
	if out["stage_2_name"] != "" {
		t.Errorf("empty field must stay empty, got %q", out["stage_2_name"])
	}
	if out["stage_1_bullet"] != "UNCHANGED BULLET" {
		t.Errorf("unlisted field must not change, got %q", out["stage_1_bullet"])
	}
	if content["stage_1_name"] != "AWARENESS AND REACH" {
		t.Error("input map must not be mutated")
	}
}
