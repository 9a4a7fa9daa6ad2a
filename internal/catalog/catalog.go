// Package catalog serves the rental fleet shown on the site.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osa911/apexdrive/internal/i18n"
)

//go:embed cars.yaml
var carsYAML []byte

// CategoryAll matches every car.
const CategoryAll = "all"

type Specs struct {
	Engine       string `yaml:"engine" json:"engine"`
	Power        string `yaml:"power" json:"power"`
	Acceleration string `yaml:"acceleration" json:"acceleration"`
	Drive        string `yaml:"drive" json:"drive"`
	Seats        int    `yaml:"seats" json:"seats"`
}

type Car struct {
	ID          string            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Brand       string            `yaml:"brand" json:"brand"`
	Categories  []string          `yaml:"categories" json:"categories"`
	Price       int               `yaml:"price" json:"price"`
	Image       string            `yaml:"image" json:"image"`
	Description map[string]string `yaml:"description" json:"description"`
	Specs       Specs             `yaml:"specs" json:"specs"`
}

// DescriptionIn returns the description for lang, or "".
func (c Car) DescriptionIn(lang i18n.Lang) string {
	return c.Description[string(lang)]
}

// InCategory reports whether the car is listed under category.
func (c Car) InCategory(category string) bool {
	if category == CategoryAll {
		return true
	}
	for _, cat := range c.Categories {
		if cat == category {
			return true
		}
	}
	return false
}

type Brand struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Logo string `yaml:"logo" json:"logo"`
}

// DropdownItem is one entry of the navigation menu listing all cars.
type DropdownItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Logo  string `json:"logo"`
}

type file struct {
	Brands []Brand `yaml:"brands"`
	Cars   []Car   `yaml:"cars"`
}

// Catalog is an immutable, name-sorted list of cars.
type Catalog struct {
	cars   []Car
	brands map[string]Brand
}

// Load parses the fleet compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(carsYAML)
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c := &Catalog{brands: make(map[string]Brand, len(f.Brands))}
	for _, b := range f.Brands {
		c.brands[b.ID] = b
	}

	seen := make(map[string]bool, len(f.Cars))
	for _, car := range f.Cars {
		if car.ID == "" || car.Name == "" {
			return nil, fmt.Errorf("catalog: car without id or name")
		}
		if seen[car.ID] {
			return nil, fmt.Errorf("catalog: duplicate car id %q", car.ID)
		}
		seen[car.ID] = true
		c.cars = append(c.cars, car)
	}

	sortByName(c.cars, func(car Car) string { return car.Name })
	return c, nil
}

// sortByName orders items by name ignoring case and accents.
func sortByName[T any](items []T, name func(T) string) {
	coll := collate.New(language.Und, collate.Loose)
	sort.SliceStable(items, func(i, j int) bool {
		return coll.CompareString(strings.TrimSpace(name(items[i])), strings.TrimSpace(name(items[j]))) < 0
	})
}

// Sorted returns all cars ordered by name.
func (c *Catalog) Sorted() []Car {
	return append([]Car(nil), c.cars...)
}

// Filter returns the cars in category, or all of them for "all".
func (c *Catalog) Filter(category string) []Car {
	return c.where(func(car Car) bool { return car.InCategory(category) })
}

// ByBrand returns the cars of one brand.
func (c *Catalog) ByBrand(brand string) []Car {
	return c.where(func(car Car) bool { return car.Brand == brand })
}

// Search matches term against the name and both descriptions, current
// language first. An empty term matches every car.
func (c *Catalog) Search(term string, lang i18n.Lang) []Car {
	lower := cases.Lower(lang.Tag())
	term = strings.TrimSpace(lower.String(term))
	if term == "" {
		return c.Sorted()
	}
	return c.where(func(car Car) bool {
		return strings.Contains(lower.String(car.Name), term) ||
			strings.Contains(lower.String(car.DescriptionIn(lang)), term) ||
			strings.Contains(lower.String(car.DescriptionIn(lang.Other())), term)
	})
}

// Query applies the optional category, brand and search filters together.
func (c *Catalog) Query(category, brand, term string, lang i18n.Lang) []Car {
	cars := c.Search(term, lang)
	out := cars[:0]
	for _, car := range cars {
		if category != "" && !car.InCategory(category) {
			continue
		}
		if brand != "" && car.Brand != brand {
			continue
		}
		out = append(out, car)
	}
	return out
}

// Brand returns the brand with id.
func (c *Catalog) Brand(id string) (Brand, bool) {
	b, ok := c.brands[id]
	return b, ok
}

// Dropdown lists every car with its brand logo, sorted by name.
func (c *Catalog) Dropdown() []DropdownItem {
	items := make([]DropdownItem, 0, len(c.cars))
	for _, car := range c.cars {
		items = append(items, DropdownItem{
			ID:    car.ID,
			Name:  car.Name,
			Brand: car.Brand,
			Logo:  c.brands[car.Brand].Logo,
		})
	}
	sortByName(items, func(it DropdownItem) string { return it.Name })
	return items
}

func (c *Catalog) where(keep func(Car) bool) []Car {
	var out []Car
	for _, car := range c.cars {
		if keep(car) {
			out = append(out, car)
		}
	}
	return out
}
