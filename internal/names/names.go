// Package names holds the catalog of fictional names that profiles are drawn
// from: a mapping of series (category) to character names.
package names

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/zarlcorp/zalias/internal/secrand"
)

var (
	// ErrInvalidNameList is returned for structurally broken or empty name data.
	ErrInvalidNameList = errors.New("invalid name list")

	// ErrEmptyCatalog is returned when a name list has no categories at all.
	ErrEmptyCatalog = errors.New("name catalog is empty")
)

//go:embed default.yaml
var defaultYAML []byte

// Entry is one name and the category it came from.
type Entry struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// Source is a validated, immutable name catalog.
type Source struct {
	categories []string
	names      map[string][]string
}

// Load validates raw category → names data and returns a Source.
// Categories are ordered by name; names keep their input order.
func Load(raw map[string][]string) (*Source, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCatalog
	}

	s := &Source{
		categories: make([]string, 0, len(raw)),
		names:      make(map[string][]string, len(raw)),
	}

	for category, list := range raw {
		if strings.TrimSpace(category) == "" {
			return nil, fmt.Errorf("%w: blank category", ErrInvalidNameList)
		}
		if hasControl(category) {
			return nil, fmt.Errorf("%w: category %q contains a control character", ErrInvalidNameList, category)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: category %q has no names", ErrInvalidNameList, category)
		}

		seen := make(map[string]bool, len(list))
		for i, name := range list {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%w: category %q: name %d is blank", ErrInvalidNameList, category, i)
			}
			if hasControl(name) {
				return nil, fmt.Errorf("%w: category %q: name %q contains a control character", ErrInvalidNameList, category, name)
			}
			if seen[name] {
				return nil, fmt.Errorf("%w: category %q: duplicate name %q", ErrInvalidNameList, category, name)
			}
			seen[name] = true
		}

		s.categories = append(s.categories, category)
		s.names[category] = slices.Clone(list)
	}

	slices.Sort(s.categories)
	return s, nil
}

// hasControl reports whether s contains a control rune such as a newline,
// which would break the one-field-per-line text output.
func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// Default returns the built-in name catalog.
func Default() (*Source, error) {
	raw, err := ParseYAML(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("default names: %w", err)
	}
	return Load(raw)
}

// Pick selects a category uniformly at random, then a name uniformly
// within it.
func (s *Source) Pick() Entry {
	category := secrand.Pick(s.categories)
	return Entry{
		Category: category,
		Name:     secrand.Pick(s.names[category]),
	}
}

// Categories returns the category names in sorted order.
func (s *Source) Categories() []string {
	return slices.Clone(s.categories)
}

// Names returns the names of a category, or nil if it does not exist.
func (s *Source) Names(category string) []string {
	return slices.Clone(s.names[category])
}

// Len returns the total number of names across all categories.
func (s *Source) Len() int {
	n := 0
	for _, list := range s.names {
		n += len(list)
	}
	return n
}
