package illustration

import (
	"context"

	"go.uber.org/zap"

	"illustrator/internal/constraint"
	"illustrator/internal/generate"
	"illustrator/internal/prompt"
	"illustrator/internal/template"
)

// Params is one fully resolved generation request: the family and shape
// have been bounds-checked and the theme resolved by the caller.
type Params struct {
	Family   Family
	Shape    int
	Theme    template.Theme
	Validate bool
	Request  prompt.Request
}

// Outcome bundles everything the HTTP layer needs to assemble a response.
type Outcome struct {
	Result          *generate.Result
	HTML            string
	TemplateFile    string
	VariantID       constraint.VariantID
	CharacterCounts map[string]int
}

// Service runs the full pipeline: spec lookup, constrained generation,
// label normalization, template filling.
type Service struct {
	store  *constraint.Store
	gen    *generate.Generator
	filler *template.Filler
	log    *zap.Logger
}

func NewService(store *constraint.Store, gen *generate.Generator, filler *template.Filler, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, gen: gen, filler: filler, log: log}
}

// Generate produces one filled fragment. Constraint violations do not fail
// the call; they come back inside Outcome.Result.Validation. Errors are
// limited to unknown variants, missing templates, and LLM failure on the
// final attempt.
func (s *Service) Generate(ctx context.Context, p Params) (*Outcome, error) {
	variantID := constraint.NewVariantID(p.Family.Name, p.Shape)
	spec, err := s.store.Load(variantID)
	if err != nil {
		return nil, err
	}

	result, err := s.gen.Generate(ctx, p.Family.Builder(), p.Request, spec, p.Validate)
	if err != nil {
		return nil, err
	}

	content := result.Content
	if p.Family.LabelFields != nil {
		content = template.TitleCaseFields(content, p.Family.LabelFields(p.Shape))
		result.Content = content
	}

	html, err := s.filler.Fill(p.Family.Name, p.Shape, content, p.Theme)
	if err != nil {
		return nil, err
	}

	s.log.Info("illustration generated",
		zap.String("variant", string(variantID)),
		zap.String("topic", p.Request.Topic),
		zap.Int("attempts", result.Attempts),
		zap.Bool("valid", result.Validation.Valid),
		zap.Int64("elapsed_ms", result.ElapsedMS),
	)

	return &Outcome{
		Result:          result,
		HTML:            html,
		TemplateFile:    template.FileName(p.Family.Name, p.Shape),
		VariantID:       variantID,
		CharacterCounts: constraint.CharacterCounts(content, spec),
	}, nil
}
