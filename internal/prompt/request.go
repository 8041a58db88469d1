// Package prompt builds the sectioned generation prompt sent to the LLM and
// the field schema the response must satisfy.
package prompt

// PreviousSlide summarizes one earlier slide in the same presentation,
// used for narrative continuity.
type PreviousSlide struct {
	SlideNumber int    `json:"slide_number"`
	SlideTitle  string `json:"slide_title"`
	Summary     string `json:"summary"`
}

// Context carries the narrative surroundings of the slide being generated.
type Context struct {
	PresentationTitle string          `json:"presentation_title,omitempty"`
	SlidePurpose      string          `json:"slide_purpose,omitempty"`
	KeyMessage        string          `json:"key_message,omitempty"`
	Industry          string          `json:"industry,omitempty"`
	PreviousSlides    []PreviousSlide `json:"previous_slides,omitempty"`
}

// Request is one content-generation request. Immutable per call.
type Request struct {
	Topic        string
	Shape        int
	Tone         string
	Audience     string
	TargetPoints []string
	Context      Context
}
