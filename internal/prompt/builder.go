package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"illustrator/internal/constraint"
)

// Builder renders prompts for one illustration family. Purpose describes the
// diagram in one line ("a %d-level hierarchical pyramid"); Guidance lists the
// family's structural rules, already expanded for the requested shape.
type Builder struct {
	Purpose  string
	Guidance func(shape int) []string
}

// Build produces the prompt text and the exact output-field schema for one
// attempt. The schema is always the spec's full field set in spec order.
// On attempts after the first, the previous attempt's violation report is
// turned into per-field feedback so the model can correct lengths.
// Neither req nor spec is mutated.
func (b *Builder) Build(req Request, spec constraint.Spec, attempt int, last *constraint.Report) (string, []string) {
	var buf bytes.Buffer

	writeSection(&buf, "PURPOSE", fmt.Sprintf(
		"Generate content for %s on the topic: %q.",
		fmt.Sprintf(b.Purpose, req.Shape), req.Topic))

	writeSection(&buf, "BACKGROUND", formatBackground(req))
	writeSection(&buf, "PREVIOUS_SLIDES", formatPreviousSlides(req.Context.PreviousSlides))
	writeSection(&buf, "TARGET_POINTS", formatList(req.TargetPoints))

	if b.Guidance != nil {
		writeSection(&buf, "RULES", formatList(b.Guidance(req.Shape)))
	}

	writeSection(&buf, "CONSTRAINTS", formatConstraints(spec))
	writeSection(&buf, "EXAMPLE", formatExample(spec))

	if attempt > 1 && last != nil && len(last.Violations) > 0 {
		writeSection(&buf, "RETRY_FEEDBACK", formatRetryFeedback(last))
	}

	writeSection(&buf, "TONE", fmt.Sprintf("Use a %s tone appropriate for a %s audience.",
		orDefault(req.Tone, "professional"), orDefault(req.Audience, "general")))

	writeSection(&buf, "OUTPUT_FORMAT", formatOutputFormat(spec))

	return strings.TrimSpace(buf.String()) + "\n", spec.FieldNames()
}

func formatBackground(req Request) string {
	var lines []string
	ctx := req.Context
	if ctx.PresentationTitle != "" {
		lines = append(lines, "Presentation: "+ctx.PresentationTitle)
	}
	if ctx.SlidePurpose != "" {
		lines = append(lines, "Purpose: "+ctx.SlidePurpose)
	}
	if ctx.KeyMessage != "" {
		lines = append(lines, "Key message: "+ctx.KeyMessage)
	}
	if ctx.Industry != "" {
		lines = append(lines, "Industry: "+ctx.Industry)
	}
	return strings.Join(lines, "\n")
}

func formatPreviousSlides(slides []PreviousSlide) string {
	if len(slides) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("Earlier slides in this presentation, in order:\n")
	for _, s := range slides {
		fmt.Fprintf(&buf, "- Slide %d: %s\n", s.SlideNumber, s.SlideTitle)
		if s.Summary != "" {
			fmt.Fprintf(&buf, "  %s\n", s.Summary)
		}
	}
	buf.WriteString("Build narratively on the slides above and avoid repeating their terminology.")
	return buf.String()
}

func formatConstraints(spec constraint.Spec) string {
	var buf strings.Builder
	buf.WriteString("Character limits per field (MUST FOLLOW EXACTLY, inclusive):\n")
	for _, f := range spec.Fields {
		fmt.Fprintf(&buf, "- %s: %d-%d characters\n", f.Name, f.Min, f.Max)
	}
	buf.WriteString("Count characters carefully; spaces count. HTML tags such as <strong> and <br> do NOT count toward the limits.")
	return buf.String()
}

// formatExample shows the variant's golden example as a few-shot sample so
// the model sees lengths that actually fit the budgets.
func formatExample(spec constraint.Spec) string {
	if len(spec.GoldenExample) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("A well-formed response for a different topic looks like:\n{\n")
	for i, f := range spec.Fields {
		value, ok := spec.GoldenExample[f.Name]
		if !ok {
			continue
		}
		sep := ","
		if i == len(spec.Fields)-1 {
			sep = ""
		}
		fmt.Fprintf(&buf, "  %q: %q%s\n", f.Name, value, sep)
	}
	buf.WriteString("}")
	return buf.String()
}

func formatRetryFeedback(last *constraint.Report) string {
	var buf strings.Builder
	buf.WriteString("Your previous answer broke these limits:\n")
	for _, v := range last.Violations {
		fmt.Fprintf(&buf, "- %s: you previously wrote %d characters, the limit is %d-%d (%s)\n",
			v.Field, v.ActualLength, v.Min, v.Max, v.Direction)
	}
	buf.WriteString("Rewrite the fields above so every one fits its limit. Keep fields that already fit.")
	return buf.String()
}

func formatOutputFormat(spec constraint.Spec) string {
	var buf strings.Builder
	buf.WriteString("Return ONLY a single valid JSON object with exactly these string keys:\n{\n")
	for i, f := range spec.Fields {
		sep := ","
		if i == len(spec.Fields)-1 {
			sep = ""
		}
		fmt.Fprintf(&buf, "  %q: \"...\"%s\n", f.Name, sep)
	}
	buf.WriteString("}\nNo prose, no markdown fences, no extra keys.")
	return buf.String()
}

func formatList(items []string) string {
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
