package domain

import (
	"fmt"
	"slices"
)

// Category is one of the four fixed proposal categories.
type Category string

const (
	CategoryRestaurant    Category = "restaurant"
	CategoryAccommodation Category = "accommodation"
	CategoryAttraction    Category = "attraction"
	CategoryActivity      Category = "activity"
)

// AllCategories lists every category in canonical order. The order matters:
// it is the order in which buckets are flattened for the global ranking.
var AllCategories = []Category{
	CategoryRestaurant,
	CategoryAccommodation,
	CategoryAttraction,
	CategoryActivity,
}

// ParseCategory converts a raw key into a Category.
// Returns ErrInvalidCategory for anything outside the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the four fixed categories.
func (c Category) Valid() bool {
	return slices.Contains(AllCategories, c)
}

// CategoryBuckets holds the proposals of a trip, one ordered slice per
// category. Being a struct rather than a map, it always has all four buckets.
type CategoryBuckets struct {
	Restaurant    []Proposal `json:"restaurant"`
	Accommodation []Proposal `json:"accommodation"`
	Attraction    []Proposal `json:"attraction"`
	Activity      []Proposal `json:"activity"`
}

// Get returns the proposals of category c in insertion order.
func (b CategoryBuckets) Get(c Category) ([]Proposal, error) {
	p, err := b.ptr(c)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// Set replaces the proposals of category c.
func (b *CategoryBuckets) Set(c Category, proposals []Proposal) error {
	p, err := b.ptr(c)
	if err != nil {
		return err
	}
	*p = proposals
	return nil
}

// All flattens every bucket in canonical category order, preserving the
// insertion order within each bucket.
func (b CategoryBuckets) All() []Proposal {
	out := make([]Proposal, 0, len(b.Restaurant)+len(b.Accommodation)+len(b.Attraction)+len(b.Activity))
	out = append(out, b.Restaurant...)
	out = append(out, b.Accommodation...)
	out = append(out, b.Attraction...)
	out = append(out, b.Activity...)
	return out
}

// Clone deep-copies every bucket.
func (b CategoryBuckets) Clone() CategoryBuckets {
	return CategoryBuckets{
		Restaurant:    cloneProposals(b.Restaurant),
		Accommodation: cloneProposals(b.Accommodation),
		Attraction:    cloneProposals(b.Attraction),
		Activity:      cloneProposals(b.Activity),
	}
}

// Normalize replaces nil buckets with empty ones, repairs vote counts and
// stamps every proposal with the category of the bucket holding it.
func (b *CategoryBuckets) Normalize() {
	for _, c := range AllCategories {
		p, _ := b.ptr(c)
		if *p == nil {
			*p = []Proposal{}
		}
		for i := range *p {
			(*p)[i].Category = c
			(*p)[i].Normalize()
		}
	}
}

func (b *CategoryBuckets) ptr(c Category) (*[]Proposal, error) {
	switch c {
	case CategoryRestaurant:
		return &b.Restaurant, nil
	case CategoryAccommodation:
		return &b.Accommodation, nil
	case CategoryAttraction:
		return &b.Attraction, nil
	case CategoryActivity:
		return &b.Activity, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

func cloneProposals(in []Proposal) []Proposal {
	if in == nil {
		return nil
	}
	out := make([]Proposal, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
