// Package template loads embedded infographic fragments and fills their
// placeholders with generated content and theme colors. Fragments carry
// all styling inline so the downstream layout service can embed them
// verbatim, without extracting a <style> block or unwrapping a document.
package template

import (
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

// ErrTemplateNotFound means no fragment file exists for the requested
// family and shape.
var ErrTemplateNotFound = errors.New("template not found")

// placeholderRe matches any {snake_case} placeholder left after filling.
var placeholderRe = regexp.MustCompile(`\{[a-z0-9_]+\}`)

const templateCacheSize = 32

// Filler fills fragment templates. Loaded templates are cached; the whole
// set is small so the cache never evicts in practice.
type Filler struct {
	cache *lru.Cache[string, string]
	log   *zap.Logger
}

func NewFiller(log *zap.Logger) *Filler {
	if log == nil {
		log = zap.NewNop()
	}
	cache, _ := lru.New[string, string](templateCacheSize)
	return &Filler{cache: cache, log: log}
}

// FileName is the fragment file name for a family and shape, also echoed
// in response metadata.
func FileName(family string, shape int) string {
	return fmt.Sprintf("%s_%d.html", family, shape)
}

func (f *Filler) load(family string, shape int) (string, error) {
	name := FileName(family, shape)
	if cached, ok := f.cache.Get(name); ok {
		return cached, nil
	}
	raw, err := templateFS.ReadFile("templates/" + family + "/" + name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	tpl := string(raw)
	f.cache.Add(name, tpl)
	return tpl, nil
}

// Fill substitutes content fields first, then theme colors, and finally
// sweeps any placeholder that survived both passes. A swept placeholder
// is a template/spec mismatch, logged so it gets noticed, but it never
// fails the request.
func (f *Filler) Fill(family string, shape int, content map[string]string, theme Theme) (string, error) {
	tpl, err := f.load(family, shape)
	if err != nil {
		return "", err
	}

	for field, value := range content {
		tpl = strings.ReplaceAll(tpl, "{"+field+"}", value)
	}
	for key, value := range theme.Substitutions() {
		tpl = strings.ReplaceAll(tpl, "{"+key+"}", value)
	}

	if leftover := placeholderRe.FindAllString(tpl, -1); len(leftover) > 0 {
		f.log.Warn("unfilled placeholders swept from fragment",
			zap.String("template", FileName(family, shape)),
			zap.Strings("placeholders", dedupe(leftover)),
		)
		tpl = placeholderRe.ReplaceAllString(tpl, "")
	}

	return strings.TrimSpace(tpl), nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
