// Package catalog provides the agency's listing catalog and contact details.
//
// The catalog ships embedded in the binary and can be replaced with a file or
// URL serving the same shape. Either way it is validated against the catalog
// schema and loaded once; after that it is read-only and safe for concurrent
// use.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/mmcloughlin/geohash"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/evcraddock/amlak/internal/property"
)

// geohashPrecision of 7 characters is a cell of roughly 150m x 150m.
const geohashPrecision = 7

//go:embed data/catalog.json
var defaultCatalog []byte

//go:embed data/catalog.schema.json
var schemaSource string

var catalogSchema = jsonschema.MustCompileString("catalog.schema.json", schemaSource)

// ErrNotFound is returned when no listing has the requested ID.
var ErrNotFound = errors.New("property not found")

// Phone is a named agency phone line.
type Phone struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// TeamMember is an agent shown on the about page.
type TeamMember struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// Service is an offering shown on the about page.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Agency holds the agency's public contact details.
type Agency struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Address      string       `json:"address"`
	Email        string       `json:"email"`
	WorkingHours string       `json:"working_hours"`
	Phones       []Phone      `json:"phones"`
	Team         []TeamMember `json:"team,omitempty"`
	Services     []Service    `json:"services,omitempty"`
}

// Catalog is an immutable set of listings plus agency details.
type Catalog struct {
	agency     Agency
	properties []*property.Property
	byID       map[string]*property.Property
}

type document struct {
	Agency     Agency               `json:"agency"`
	Properties []*property.Property `json:"properties"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a JSON file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Open returns the catalog at path, which may be a file or an http(s) URL,
// or the embedded one when path is empty.
func Open(path string) (*Catalog, error) {
	switch {
	case path == "":
		return Default()
	case isURL(path):
		return Fetch(path)
	}
	return Load(path)
}

// Parse validates data against the catalog schema and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		agency:     doc.Agency,
		properties: make([]*property.Property, 0, len(doc.Properties)),
		byID:       make(map[string]*property.Property, len(doc.Properties)),
	}

	for _, p := range doc.Properties {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate property id %q", p.ID)
		}
		if p.Coordinates != nil {
			p.Geohash = geohash.EncodeWithPrecision(p.Coordinates.Latitude, p.Coordinates.Longitude, geohashPrecision)
		}
		c.properties = append(c.properties, p)
		c.byID[p.ID] = p
	}

	return c, nil
}

func validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}
	if err := catalogSchema.Validate(v); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

// All returns every listing in catalog order. The returned slice is a copy;
// the records it points to must not be modified.
func (c *Catalog) All() []*property.Property {
	return slices.Clone(c.properties)
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.properties)
}

// Get returns the listing with the given ID.
func (c *Catalog) Get(id string) (*property.Property, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// Query runs the listing query engine over the catalog.
func (c *Catalog) Query(crit property.Criteria) []*property.Property {
	return property.Query(c.properties, crit)
}

// Featured returns the featured listings in catalog order.
func (c *Catalog) Featured() []*property.Property {
	return property.Featured(c.properties)
}

// Neighborhoods returns the distinct neighborhoods in catalog order.
func (c *Catalog) Neighborhoods() []string {
	return property.Neighborhoods(c.properties)
}

// Summary returns dashboard statistics.
func (c *Catalog) Summary() property.Summary {
	return property.Summarize(c.properties)
}

// Agency returns the agency's contact details.
func (c *Catalog) Agency() Agency {
	return c.agency
}
