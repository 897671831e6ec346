package property

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// SortKey selects the result order of Query.
type SortKey string

const (
	SortNone      SortKey = ""
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
	SortAreaLow   SortKey = "area_low"
	SortAreaHigh  SortKey = "area_high"
)

// SortKeys lists the selectable sort keys in display order.
var SortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortAreaLow, SortAreaHigh}

// ParseSortKey returns the sort key named by s. An empty string is SortNone.
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.TrimSpace(s))
	if k == SortNone {
		return SortNone, true
	}
	if slices.Contains(SortKeys, k) {
		return k, true
	}
	return SortNone, false
}

// Label returns the Persian display name of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortNewest:
		return "جدیدترین"
	case SortPriceLow:
		return "ارزان‌ترین"
	case SortPriceHigh:
		return "گران‌ترین"
	case SortAreaLow:
		return "کوچک‌ترین"
	case SortAreaHigh:
		return "بزرگ‌ترین"
	}
	return string(k)
}

// Filter holds structured listing constraints. A nil pointer or empty
// string leaves that field unconstrained. All bounds are inclusive.
type Filter struct {
	MinPrice     *int64       `json:"min_price,omitempty"`
	MaxPrice     *int64       `json:"max_price,omitempty"`
	MinArea      *int         `json:"min_area,omitempty"`
	MaxArea      *int         `json:"max_area,omitempty"`
	Type         PropertyType `json:"property_type,omitempty"`
	Neighborhood string       `json:"neighborhood,omitempty"`
	MinRooms     *int         `json:"min_rooms,omitempty"`
	Status       Status       `json:"status,omitempty"`
	Featured     *bool        `json:"is_featured,omitempty"`
}

// Criteria combines free-text search, a structured filter and a sort key.
type Criteria struct {
	Search string  `json:"search,omitempty"`
	Filter Filter  `json:"filter"`
	Sort   SortKey `json:"sort,omitempty"`
}

// Query returns the listings in catalog that match c, ordered by c.Sort.
// The catalog slice is never modified; the result is a new slice that
// shares the record pointers. Records that compare equal keep their
// catalog order.
func Query(catalog []*Property, c Criteria) []*Property {
	needle := ""
	if s := strings.TrimSpace(c.Search); s != "" {
		needle = cases.Fold().String(s)
	}

	out := make([]*Property, 0, len(catalog))
	for _, p := range catalog {
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		if !c.Filter.Match(p) {
			continue
		}
		out = append(out, p)
	}

	if cmpFn := comparator(c.Sort); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

// Featured returns the featured listings in catalog order.
func Featured(catalog []*Property) []*Property {
	featured := true
	return Query(catalog, Criteria{Filter: Filter{Featured: &featured}})
}

// Match reports whether p satisfies every active constraint of f.
func (f Filter) Match(p *Property) bool {
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinArea != nil && p.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && p.Area > *f.MaxArea {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Neighborhood != "" && p.Neighborhood != f.Neighborhood {
		return false
	}
	if f.MinRooms != nil && p.Rooms < *f.MinRooms {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

// IsZero reports whether no constraint is set.
func (f Filter) IsZero() bool {
	return f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinArea == nil && f.MaxArea == nil &&
		f.Type == "" && f.Neighborhood == "" &&
		f.MinRooms == nil && f.Status == "" && f.Featured == nil
}

// matchesText expects needle to be case-folded already.
func matchesText(p *Property, needle string) bool {
	folder := cases.Fold()
	for _, field := range []string{p.Title, p.Description, p.Address} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

func comparator(k SortKey) func(a, b *Property) int {
	switch k {
	case SortNewest:
		return func(a, b *Property) int { return cmp.Compare(b.LastModified(), a.LastModified()) }
	case SortPriceLow:
		return func(a, b *Property) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		return func(a, b *Property) int { return cmp.Compare(b.Price, a.Price) }
	case SortAreaLow:
		return func(a, b *Property) int { return cmp.Compare(a.Area, b.Area) }
	case SortAreaHigh:
		return func(a, b *Property) int { return cmp.Compare(b.Area, a.Area) }
	}
	return nil
}

// Neighborhoods returns the distinct neighborhood names in first-seen order.
func Neighborhoods(catalog []*Property) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range catalog {
		if p.Neighborhood == "" || seen[p.Neighborhood] {
			continue
		}
		seen[p.Neighborhood] = true
		names = append(names, p.Neighborhood)
	}
	return names
}

// Summary holds catalog statistics for the admin dashboard.
type Summary struct {
	Count         int   `json:"count"`
	FeaturedCount int   `json:"featured_count"`
	TotalValue    int64 `json:"total_value"`
	AverageArea   int   `json:"average_area"`
}

// Summarize computes dashboard statistics over catalog.
func Summarize(catalog []*Property) Summary {
	var s Summary
	var totalArea int
	for _, p := range catalog {
		s.Count++
		if p.Featured {
			s.FeaturedCount++
		}
		s.TotalValue += p.Price
		totalArea += p.Area
	}
	if s.Count > 0 {
		s.AverageArea = int(math.Round(float64(totalArea) / float64(s.Count)))
	}
	return s
}

// TotalValueBillions returns the total value rounded to whole billions.
func (s Summary) TotalValueBillions() int64 {
	return int64(math.Round(float64(s.TotalValue) / 1e9))
}
