package constraint

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed specs/*.json
var specFiles embed.FS

// ErrSpecNotFound is returned when no constraint spec exists for a variant.
var ErrSpecNotFound = errors.New("constraint: spec not found")

// Store loads variant specs from the embedded spec files. Parsed specs are
// kept in an LRU cache; a concurrent first access may parse the same file
// twice, which is harmless since specs are immutable.
type Store struct {
	cache *lru.Cache[VariantID, Spec]
}

func NewStore() (*Store, error) {
	cache, err := lru.New[VariantID, Spec](64)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// Load returns the spec for the given variant, or ErrSpecNotFound.
// Repeated calls with the same id return equal data.
func (s *Store) Load(id VariantID) (Spec, error) {
	if spec, ok := s.cache.Get(id); ok {
		return spec, nil
	}
	raw, err := specFiles.ReadFile(fmt.Sprintf("specs/%s.json", id))
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %s", ErrSpecNotFound, id)
	}
	var spec Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return Spec{}, fmt.Errorf("constraint: parse spec %s: %w", id, err)
	}
	s.cache.Add(id, spec)
	return spec, nil
}

// Variants lists every variant id with an embedded spec.
func (s *Store) Variants() ([]VariantID, error) {
	entries, err := specFiles.ReadDir("specs")
	if err != nil {
		return nil, err
	}
	ids := make([]VariantID, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if len(name) > len(".json") {
			ids = append(ids, VariantID(name[:len(name)-len(".json")]))
		}
	}
	return ids, nil
}
