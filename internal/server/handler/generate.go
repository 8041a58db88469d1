package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"illustrator/internal/constraint"
	"illustrator/internal/generate"
	"illustrator/internal/illustration"
	llmclient "illustrator/internal/llm/client"
	"illustrator/internal/metrics"
	"illustrator/internal/prompt"
	"illustrator/internal/template"
)

const minTopicLength = 3

type generateRequest struct {
	NumLevels   int `json:"num_levels"`
	NumStages   int `json:"num_stages"`
	NumCircles  int `json:"num_circles"`
	NumConcepts int `json:"num_concepts"`

	Topic        string         `json:"topic"`
	Context      contextPayload `json:"context"`
	TargetPoints []string       `json:"target_points"`
	Tone         string         `json:"tone"`
	Audience     string         `json:"audience"`
	Theme        string         `json:"theme"`

	// Session fields are pass-through only, echoed back untouched.
	PresentationID string `json:"presentation_id"`
	SlideID        string `json:"slide_id"`
	SlideNumber    *int   `json:"slide_number"`

	ValidateConstraints *bool `json:"validate_constraints"`
}

type contextPayload struct {
	PresentationTitle string                 `json:"presentation_title"`
	SlidePurpose      string                 `json:"slide_purpose"`
	KeyMessage        string                 `json:"key_message"`
	Industry          string                 `json:"industry"`
	PreviousSlides    []prompt.PreviousSlide `json:"previous_slides"`
}

// shape pulls the family's shape field out of the request body.
func (r generateRequest) shape(field string) int {
	switch field {
	case "num_levels":
		return r.NumLevels
	case "num_stages":
		return r.NumStages
	case "num_circles":
		return r.NumCircles
	case "num_concepts":
		return r.NumConcepts
	default:
		return 0
	}
}

type generateMetadata struct {
	IllustrationType string          `json:"illustration_type"`
	VariantID        string          `json:"variant_id"`
	TemplateFile     string          `json:"template_file"`
	Theme            string          `json:"theme"`
	Model            string          `json:"model"`
	Attempts         int             `json:"attempts"`
	GenerationTimeMS int64           `json:"generation_time_ms"`
	Usage            llmclient.Usage `json:"usage"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	HTML    string `json:"html"`
	// InfographicHTML duplicates HTML under the alias key downstream
	// consumers asked for.
	InfographicHTML  string            `json:"infographic_html"`
	GeneratedContent map[string]string `json:"generated_content"`
	CharacterCounts  map[string]int    `json:"character_counts"`
	Validation       constraint.Report `json:"validation"`
	Metadata         generateMetadata  `json:"metadata"`
	GenerationTimeMS int64             `json:"generation_time_ms"`
	RequestID        string            `json:"request_id"`

	PresentationID string `json:"presentation_id,omitempty"`
	SlideID        string `json:"slide_id,omitempty"`
	SlideNumber    *int   `json:"slide_number,omitempty"`
}

// Illustration serves the per-family generation endpoints.
type Illustration struct {
	svc *illustration.Service
	log *zap.Logger
}

func NewIllustration(svc *illustration.Service, log *zap.Logger) *Illustration {
	if log == nil {
		log = zap.NewNop()
	}
	return &Illustration{svc: svc, log: log}
}

func (h *Illustration) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	familyName := mux.Vars(r)["family"]
	family, ok := illustration.Lookup(familyName)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_family",
			fmt.Sprintf("unknown illustration family %q", familyName))
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	shape := req.shape(family.ShapeField)
	if !family.ValidShape(shape) {
		writeError(w, http.StatusBadRequest, "invalid_shape",
			fmt.Sprintf("%s must be between %d and %d, got %d",
				family.ShapeField, family.MinShape, family.MaxShape, shape))
		return
	}
	if len(strings.TrimSpace(req.Topic)) < minTopicLength {
		writeError(w, http.StatusBadRequest, "invalid_topic",
			fmt.Sprintf("topic must be at least %d characters", minTopicLength))
		return
	}

	themeName := req.Theme
	if themeName == "" {
		themeName = "professional"
	}
	theme, ok := template.GetTheme(themeName)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_theme",
			fmt.Sprintf("unknown theme %q, available: %s", themeName, strings.Join(template.ThemeNames(), ", ")))
		return
	}

	validate := true
	if req.ValidateConstraints != nil {
		validate = *req.ValidateConstraints
	}

	params := illustration.Params{
		Family:   family,
		Shape:    shape,
		Theme:    theme,
		Validate: validate,
		Request: prompt.Request{
			Topic:        strings.TrimSpace(req.Topic),
			Shape:        shape,
			Tone:         req.Tone,
			Audience:     req.Audience,
			TargetPoints: req.TargetPoints,
			Context: prompt.Context{
				PresentationTitle: req.Context.PresentationTitle,
				SlidePurpose:      req.Context.SlidePurpose,
				KeyMessage:        req.Context.KeyMessage,
				Industry:          req.Context.Industry,
				PreviousSlides:    req.Context.PreviousSlides,
			},
		},
	}

	start := time.Now()
	outcome, err := h.svc.Generate(r.Context(), params)
	metrics.GenerationDuration.WithLabelValues(family.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationRequests.WithLabelValues(family.Name, "error").Inc()
		h.writeGenerateError(w, family.Name, err)
		return
	}

	outcomeLabel := "ok"
	if !outcome.Result.Validation.Valid {
		outcomeLabel = "degraded"
	}
	metrics.GenerationRequests.WithLabelValues(family.Name, outcomeLabel).Inc()
	metrics.GenerationAttempts.WithLabelValues(family.Name).Observe(float64(outcome.Result.Attempts))
	for _, v := range outcome.Result.Validation.Violations {
		metrics.ConstraintViolations.WithLabelValues(family.Name, string(v.Direction)).Inc()
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success:          true,
		HTML:             outcome.HTML,
		InfographicHTML:  outcome.HTML,
		GeneratedContent: outcome.Result.Content,
		CharacterCounts:  outcome.CharacterCounts,
		Validation:       outcome.Result.Validation,
		Metadata: generateMetadata{
			IllustrationType: family.Name,
			VariantID:        string(outcome.VariantID),
			TemplateFile:     outcome.TemplateFile,
			Theme:            theme.Name,
			Model:            outcome.Result.Model,
			Attempts:         outcome.Result.Attempts,
			GenerationTimeMS: outcome.Result.ElapsedMS,
			Usage:            outcome.Result.Usage,
		},
		GenerationTimeMS: outcome.Result.ElapsedMS,
		RequestID:        uuid.NewString(),
		PresentationID:   req.PresentationID,
		SlideID:          req.SlideID,
		SlideNumber:      req.SlideNumber,
	})
}

func (h *Illustration) writeGenerateError(w http.ResponseWriter, family string, err error) {
	var failed *generate.FailedError
	switch {
	case errors.Is(err, constraint.ErrSpecNotFound):
		writeError(w, http.StatusNotFound, "spec_not_found", err.Error())
	case errors.Is(err, template.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "template_not_found", err.Error())
	case errors.Is(err, llmclient.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "llm_not_configured", err.Error())
	case errors.As(err, &failed):
		h.log.Error("generation failed", zap.String("family", family), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "generation_failed", err.Error())
	default:
		h.log.Error("internal error", zap.String("family", family), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
