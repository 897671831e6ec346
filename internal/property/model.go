// Package property provides the listing domain model and the listing query engine.
package property

// PropertyType is the category of a listing.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeCommercial PropertyType = "commercial"
	TypeLand       PropertyType = "land"
)

// ValidPropertyType returns true if s is a known property type.
func ValidPropertyType(s string) bool {
	switch PropertyType(s) {
	case TypeApartment, TypeHouse, TypeCommercial, TypeLand:
		return true
	}
	return false
}

// Label returns the Persian display name of the type.
func (t PropertyType) Label() string {
	switch t {
	case TypeApartment:
		return "آپارتمان"
	case TypeHouse:
		return "خانه"
	case TypeCommercial:
		return "تجاری"
	case TypeLand:
		return "زمین"
	}
	return string(t)
}

// Status is the market status of a listing.
type Status string

const (
	StatusForSale Status = "for_sale"
	StatusForRent Status = "for_rent"
	StatusSold    Status = "sold"
	StatusRented  Status = "rented"
)

// ValidStatus returns true if s is a known listing status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusForSale, StatusForRent, StatusSold, StatusRented:
		return true
	}
	return false
}

// Label returns the Persian display name of the status.
func (s Status) Label() string {
	switch s {
	case StatusForSale:
		return "فروشی"
	case StatusForRent:
		return "اجاره‌ای"
	case StatusSold:
		return "فروخته شده"
	case StatusRented:
		return "اجاره داده شده"
	}
	return string(s)
}

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Property is one listing in the catalog. Records are treated as immutable
// once loaded; nothing in this package modifies them.
type Property struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Price         int64        `json:"price"`
	Area          int          `json:"area"`
	Rooms         int          `json:"rooms"`
	Bathrooms     int          `json:"bathrooms"`
	Floor         int          `json:"floor"`
	TotalFloors   int          `json:"total_floors"`
	YearBuilt     int          `json:"year_built"`
	Address       string       `json:"address"`
	Neighborhood  string       `json:"neighborhood"`
	Type          PropertyType `json:"property_type"`
	Status        Status       `json:"status"`
	Images        []string     `json:"images"`
	Features      []string     `json:"features"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	Geohash       string       `json:"geohash,omitempty"`
	ContactPerson string       `json:"contact_person"`
	ContactPhone  string       `json:"contact_phone"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
	Featured      bool         `json:"is_featured"`
}

// CoverImage returns the first image reference, or "" when there are none.
func (p *Property) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// LastModified returns UpdatedAt, falling back to CreatedAt.
func (p *Property) LastModified() string {
	if p.UpdatedAt != "" {
		return p.UpdatedAt
	}
	return p.CreatedAt
}
