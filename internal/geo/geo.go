// Package geo provides the bundled offline catalog of countries and their
// cities, and draws geographically consistent (country, city) pairs from it.
package geo

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/zarlcorp/zalias/internal/secrand"
)

var (
	// ErrUnknownCountry is returned when a pinned country is not in the catalog.
	ErrUnknownCountry = errors.New("unknown country")

	// ErrEmptyCatalog is returned for a catalog without countries.
	ErrEmptyCatalog = errors.New("geo catalog is empty")

	// ErrInvalidCatalog is returned for malformed catalog data.
	ErrInvalidCatalog = errors.New("invalid geo catalog")
)

//go:embed catalog.yaml
var catalogYAML []byte

// Place is a city and the country it belongs to.
type Place struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// Catalog is a validated, immutable country → cities mapping.
type Catalog struct {
	countries []string
	cities    map[string][]string
	folded    map[string]string // case-folded country → catalog spelling
}

// Load validates raw country → cities data. Duplicate cities within a
// country collapse to one. Countries that differ only by case are rejected,
// since a pinned lookup could not tell them apart.
func Load(raw map[string][]string) (*Catalog, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCatalog
	}

	fold := cases.Fold()
	c := &Catalog{
		countries: make([]string, 0, len(raw)),
		cities:    make(map[string][]string, len(raw)),
		folded:    make(map[string]string, len(raw)),
	}

	for country, list := range raw {
		if strings.TrimSpace(country) == "" {
			return nil, fmt.Errorf("%w: blank country", ErrInvalidCatalog)
		}
		if hasControl(country) {
			return nil, fmt.Errorf("%w: country %q contains a control character", ErrInvalidCatalog, country)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: country %q has no cities", ErrInvalidCatalog, country)
		}

		set := make([]string, 0, len(list))
		for _, city := range list {
			if strings.TrimSpace(city) == "" {
				return nil, fmt.Errorf("%w: country %q has a blank city", ErrInvalidCatalog, country)
			}
			if hasControl(city) {
				return nil, fmt.Errorf("%w: country %q: city %q contains a control character", ErrInvalidCatalog, country, city)
			}
			if !slices.Contains(set, city) {
				set = append(set, city)
			}
		}

		key := fold.String(country)
		if other, dup := c.folded[key]; dup {
			return nil, fmt.Errorf("%w: countries %q and %q differ only by case", ErrInvalidCatalog, other, country)
		}

		c.countries = append(c.countries, country)
		c.cities[country] = set
		c.folded[key] = country
	}

	slices.Sort(c.countries)
	return c, nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// Default returns the bundled catalog.
func Default() (*Catalog, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(catalogYAML, &raw); err != nil {
		return nil, fmt.Errorf("%w: bundled catalog: %v", ErrInvalidCatalog, err)
	}
	return Load(raw)
}

// Pick selects a country uniformly at random, then a city uniformly within it.
func (c *Catalog) Pick() Place {
	country := secrand.Pick(c.countries)
	return Place{Country: country, City: secrand.Pick(c.cities[country])}
}

// PickIn selects a city uniformly at random within the given country.
func (c *Catalog) PickIn(country string) (Place, error) {
	name, ok := c.Lookup(country)
	if !ok {
		return Place{}, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return Place{Country: name, City: secrand.Pick(c.cities[name])}, nil
}

// Lookup resolves a country name to its catalog spelling. An exact match
// wins; otherwise the comparison ignores case.
func (c *Catalog) Lookup(country string) (string, bool) {
	if _, ok := c.cities[country]; ok {
		return country, true
	}
	name, ok := c.folded[cases.Fold().String(strings.TrimSpace(country))]
	return name, ok
}

// Countries returns all country names in sorted order.
func (c *Catalog) Countries() []string {
	return slices.Clone(c.countries)
}

// Cities returns the cities of a country in catalog order, or nil.
func (c *Catalog) Cities(country string) []string {
	name, ok := c.Lookup(country)
	if !ok {
		return nil
	}
	return slices.Clone(c.cities[name])
}
