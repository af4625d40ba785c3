// Package recommend serves the static recommendation table and the city
// coordinate table used for map pins. Both are loaded from an embedded YAML
// catalog; nothing here calls out to a model or a geocoder.
package recommend

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/tripvote/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// FallbackName is returned when no table has an entry for the category.
const FallbackName = "AI pick"

// Item is one recommended place.
type Item struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Region holds the recommendations for one destination.
type Region struct {
	Name       string                     `yaml:"name"`
	Categories map[domain.Category][]Item `yaml:"categories"`
}

// City is a named coordinate.
type City struct {
	Name string  `yaml:"name" json:"name"`
	Lat  float64 `yaml:"lat" json:"lat"`
	Lng  float64 `yaml:"lng" json:"lng"`
}

// Catalog is the parsed recommendation and coordinate data.
type Catalog struct {
	Regions  []Region                   `yaml:"regions"`
	Defaults map[domain.Category][]Item `yaml:"defaults"`
	Cities   []City                     `yaml:"cities"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document and rejects unknown category keys.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("recommend.Parse: %w", err)
	}
	for _, r := range c.Regions {
		for cat := range r.Categories {
			if !cat.Valid() {
				return nil, fmt.Errorf("recommend.Parse: region %s: %w: %q", r.Name, domain.ErrInvalidCategory, string(cat))
			}
		}
	}
	for cat := range c.Defaults {
		if !cat.Valid() {
			return nil, fmt.Errorf("recommend.Parse: defaults: %w: %q", domain.ErrInvalidCategory, string(cat))
		}
	}
	return &c, nil
}

// Recommend picks a random item for the category from the first region whose
// name contains the location or is contained in it, ignoring case. When no
// region matches, or the region has nothing for the category, the defaults
// are used. If those are empty too a generic FallbackName item is returned.
func (c *Catalog) Recommend(location string, category domain.Category, rng *rand.Rand) Item {
	items := c.Defaults[category]
	if r, ok := c.region(location); ok && len(r.Categories[category]) > 0 {
		items = r.Categories[category]
	}
	if len(items) == 0 {
		return Item{
			Name:        FallbackName,
			Description: fmt.Sprintf("%s recommendation for %s", categoryLabel(category), location),
		}
	}
	return items[rng.IntN(len(items))]
}

func (c *Catalog) region(location string) (Region, bool) {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return Region{}, false
	}
	for _, r := range c.Regions {
		if matches(strings.ToLower(r.Name), loc) {
			return r, true
		}
	}
	return Region{}, false
}

// LookupCity resolves a place name to coordinates: an exact match first,
// then the first city whose name contains the place or is contained in it.
// Matching ignores case.
func (c *Catalog) LookupCity(place string) (City, bool) {
	p := strings.ToLower(strings.TrimSpace(place))
	if p == "" {
		return City{}, false
	}
	for _, city := range c.Cities {
		if strings.ToLower(city.Name) == p {
			return city, true
		}
	}
	for _, city := range c.Cities {
		if matches(strings.ToLower(city.Name), p) {
			return city, true
		}
	}
	return City{}, false
}

// CityNames lists every supported city in catalog order.
func (c *Catalog) CityNames() []string {
	names := make([]string, len(c.Cities))
	for i, city := range c.Cities {
		names[i] = city.Name
	}
	return names
}

func matches(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func categoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryRestaurant:
		return "Restaurant"
	case domain.CategoryAccommodation:
		return "Accommodation"
	case domain.CategoryAttraction:
		return "Attraction"
	case domain.CategoryActivity:
		return "Activity"
	}
	return string(c)
}
