package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"illustrator/internal/constraint"
	"illustrator/internal/generate"
	"illustrator/internal/illustration"
	llmclient "illustrator/internal/llm/client"
	"illustrator/internal/template"
)

type scriptedLLM struct {
	fields map[string]string
	err    error
}

func (s *scriptedLLM) Name() string  { return "scripted" }
func (s *scriptedLLM) Model() string { return "scripted-model" }
func (s *scriptedLLM) Close() error  { return nil }

func (s *scriptedLLM) GenerateFields(context.Context, string, []string) (map[string]string, llmclient.Usage, error) {
	if s.err != nil {
		return nil, llmclient.Usage{}, s.err
	}
	return s.fields, llmclient.Usage{PromptTokens: 3, CompletionTokens: 4, TotalTokens: 7}, nil
}

func newTestRouter(t *testing.T, llm llmclient.LLMClient) http.Handler {
	t.Helper()
	store, err := constraint.NewStore()
	require.NoError(t, err)
	svc := illustration.NewService(store, generate.New(llm, 3, nil), template.NewFiller(nil), nil)
	h := NewIllustration(svc, nil)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1.0/capabilities", h.HandleCapabilities).Methods(http.MethodGet)
	r.HandleFunc("/v1.0/{family}/generate", h.HandleGenerate).Methods(http.MethodPost)
	return r
}

func goldenFields(t *testing.T, id constraint.VariantID) map[string]string {
	t.Helper()
	store, err := constraint.NewStore()
	require.NoError(t, err)
	spec, err := store.Load(id)
	require.NoError(t, err)
	return spec.GoldenExample
}

func postGenerate(t *testing.T, router http.Handler, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateEndpointSuccess(t *testing.T) {
	router := newTestRouter(t, &scriptedLLM{fields: goldenFields(t, "pyramid_4")})

	rec := postGenerate(t, router, "/v1.0/pyramid/generate", map[string]any{
		"num_levels":      4,
		"topic":           "Product Development Strategy",
		"theme":           "bold",
		"presentation_id": "pres-1",
		"slide_id":        "slide-7",
		"slide_number":    7,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.True(t, resp.Validation.Valid)
	assert.Equal(t, resp.HTML, resp.InfographicHTML)
	assert.NotContains(t, resp.HTML, "{")
	assert.Equal(t, "pyramid", resp.Metadata.IllustrationType)
	assert.Equal(t, "pyramid_4", resp.Metadata.VariantID)
	assert.Equal(t, "pyramid_4.html", resp.Metadata.TemplateFile)
	assert.Equal(t, "bold", resp.Metadata.Theme)
	assert.Equal(t, "scripted-model", resp.Metadata.Model)
	assert.Equal(t, 1, resp.Metadata.Attempts)
	assert.Equal(t, 7, resp.Metadata.Usage.TotalTokens)
	assert.NotEmpty(t, resp.CharacterCounts)
	assert.NotEmpty(t, resp.RequestID)

	// Session fields echo back untouched.
	assert.Equal(t, "pres-1", resp.PresentationID)
	assert.Equal(t, "slide-7", resp.SlideID)
	require.NotNil(t, resp.SlideNumber)
	assert.Equal(t, 7, *resp.SlideNumber)
}

func TestGenerateEndpointDegradedStill200(t *testing.T) {
	// Placeholder content never fits the budgets, so the loop exhausts its
	// attempts and returns the degraded result.
	router := newTestRouter(t, llmclient.MockClient{})

	rec := postGenerate(t, router, "/v1.0/funnel/generate", map[string]any{
		"num_stages": 3,
		"topic":      "Sales pipeline",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Validation.Valid)
	assert.NotEmpty(t, resp.Validation.Violations)
	assert.Equal(t, 3, resp.Metadata.Attempts)
	assert.NotEmpty(t, resp.HTML)
}

func TestGenerateEndpointBadRequests(t *testing.T) {
	router := newTestRouter(t, &scriptedLLM{fields: goldenFields(t, "pyramid_3")})

	cases := []struct {
		name     string
		path     string
		body     map[string]any
		wantCode int
		wantKind string
	}{
		{"unknown family", "/v1.0/venn/generate", map[string]any{"topic": "abc"}, http.StatusNotFound, "unknown_family"},
		{"shape too small", "/v1.0/pyramid/generate", map[string]any{"num_levels": 2, "topic": "abc"}, http.StatusBadRequest, "invalid_shape"},
		{"shape too large", "/v1.0/funnel/generate", map[string]any{"num_stages": 6, "topic": "abc"}, http.StatusBadRequest, "invalid_shape"},
		{"shape missing", "/v1.0/concept_spread/generate", map[string]any{"topic": "abc"}, http.StatusBadRequest, "invalid_shape"},
		{"topic too short", "/v1.0/pyramid/generate", map[string]any{"num_levels": 3, "topic": "ab"}, http.StatusBadRequest, "invalid_topic"},
		{"unknown theme", "/v1.0/pyramid/generate", map[string]any{"num_levels": 3, "topic": "abc", "theme": "neon"}, http.StatusBadRequest, "unknown_theme"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := postGenerate(t, router, c.path, c.body)
			require.Equal(t, c.wantCode, rec.Code, rec.Body.String())
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, c.wantKind, body.Error)
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestGenerateEndpointInvalidJSON(t *testing.T) {
	router := newTestRouter(t, &scriptedLLM{})
	req := httptest.NewRequest(http.MethodPost, "/v1.0/pyramid/generate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateEndpointNotConfigured(t *testing.T) {
	router := newTestRouter(t, llmclient.NewUnconfigured("gemini"))
	rec := postGenerate(t, router, "/v1.0/pyramid/generate", map[string]any{
		"num_levels": 3,
		"topic":      "Team maturity",
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "llm_not_configured", body.Error)
}

func TestGenerateEndpointLLMFailure(t *testing.T) {
	router := newTestRouter(t, &scriptedLLM{err: context.DeadlineExceeded})
	rec := postGenerate(t, router, "/v1.0/pyramid/generate", map[string]any{
		"num_levels": 3,
		"topic":      "Team maturity",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "generation_failed", body.Error)
}

func TestCapabilitiesEndpoint(t *testing.T) {
	router := newTestRouter(t, &scriptedLLM{})
	req := httptest.NewRequest(http.MethodGet, "/v1.0/capabilities", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp capabilitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "illustrator", resp.Service)
	assert.Len(t, resp.Families, 4)
	assert.Len(t, resp.Themes, 4)

	byName := map[string]familyCapability{}
	for _, f := range resp.Families {
		byName[f.Name] = f
	}
	require.Contains(t, byName, "pyramid")
	assert.Equal(t, []string{"pyramid_3", "pyramid_4", "pyramid_5", "pyramid_6"}, byName["pyramid"].Variants)
	assert.Equal(t, "/v1.0/pyramid/generate", byName["pyramid"].Endpoint)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &scriptedLLM{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
