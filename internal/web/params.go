package web

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/evcraddock/amlak/internal/property"
)

// Price scales for the min_price / max_price parameters.
const (
	priceInToman    int64 = 1
	priceInMillions int64 = 1_000_000
)

// criteriaFromQuery builds query criteria from request parameters. Values
// that are malformed, negative or not a known enum member are left unset.
// priceScale converts the price parameters to toman.
func criteriaFromQuery(q url.Values, priceScale int64) property.Criteria {
	c := property.Criteria{
		Search: q.Get("q"),
		Filter: property.Filter{
			MinPrice:     parsePrice(q, "min_price", priceScale),
			MaxPrice:     parsePrice(q, "max_price", priceScale),
			MinArea:      parseInt(q, "min_area"),
			MaxArea:      parseInt(q, "max_area"),
			MinRooms:     parseInt(q, "min_rooms"),
			Neighborhood: strings.TrimSpace(q.Get("neighborhood")),
			Featured:     parseBool(q, "featured"),
		},
	}

	if t := strings.TrimSpace(q.Get("type")); property.ValidPropertyType(t) {
		c.Filter.Type = property.PropertyType(t)
	}
	if st := strings.TrimSpace(q.Get("status")); property.ValidStatus(st) {
		c.Filter.Status = property.Status(st)
	}
	if k, ok := property.ParseSortKey(q.Get("sort")); ok {
		c.Sort = k
	}

	return c
}

func parseInt(q url.Values, key string) *int {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func parsePrice(q url.Values, key string, scale int64) *int64 {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || n > math.MaxInt64/scale {
		return nil
	}
	n *= scale
	return &n
}

func parseBool(q url.Values, key string) *bool {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// safeRedirect returns next when it is a local path, otherwise fallback.
func safeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
