package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/apexdrive/internal/i18n"
)

func ids(cars []Car) []string {
	out := make([]string, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.ID)
	}
	return out
}

func TestLoadEmbeddedFleet(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cars := c.Sorted()
	require.NotEmpty(t, cars)
	for _, car := range cars {
		assert.NotEmpty(t, car.DescriptionIn(i18n.RU), car.ID)
		assert.NotEmpty(t, car.DescriptionIn(i18n.EN), car.ID)
		assert.Positive(t, car.Price, car.ID)
		_, ok := c.Brand(car.Brand)
		assert.True(t, ok, "unknown brand %q for %s", car.Brand, car.ID)
	}
}

const testFleet = `
brands:
  - {id: bmw, name: BMW, logo: bmw.svg}
  - {id: audi, name: Audi, logo: audi.svg}
cars:
  - id: z
    name: bmw X5
    brand: bmw
    categories: [suv]
    price: 20000
    description: {ru: Большой внедорожник, en: Big SUV}
  - id: a
    name: Audi A6
    brand: audi
    categories: [business, premium]
    price: 12000
    description: {ru: Бизнес седан, en: Business sedan}
  - id: m
    name: BMW M5
    brand: bmw
    categories: [sport, business]
    price: 22000
    description: {ru: Спортивный седан, en: Sport sedan}
`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Parse([]byte(testFleet))
	require.NoError(t, err)
	return c
}

func TestSortedIgnoresCase(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"a", "m", "z"}, ids(c.Sorted()))
}

func TestFilter(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"a", "m", "z"}, ids(c.Filter(CategoryAll)))
	assert.Equal(t, []string{"a", "m"}, ids(c.Filter("business")))
	assert.Equal(t, []string{"z"}, ids(c.Filter("suv")))
	assert.Empty(t, c.Filter("boat"))
}

func TestByBrand(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"m", "z"}, ids(c.ByBrand("bmw")))
	assert.Empty(t, c.ByBrand("BMW"))
}

func TestSearch(t *testing.T) {
	c := testCatalog(t)

	assert.Equal(t, []string{"a", "m", "z"}, ids(c.Search("  ", i18n.RU)))
	assert.Equal(t, []string{"m", "z"}, ids(c.Search("BMW", i18n.EN)))
	// Matches the description in the other language too.
	assert.Equal(t, []string{"m"}, ids(c.Search("sport", i18n.RU)))
	assert.Equal(t, []string{"a", "m"}, ids(c.Search("СЕДАН", i18n.EN)))
	assert.Empty(t, c.Search("tesla", i18n.RU))
}

func TestQuery(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"m"}, ids(c.Query("business", "bmw", "", i18n.RU)))
	assert.Equal(t, []string{"a"}, ids(c.Query("", "", "a6", i18n.RU)))
	assert.Equal(t, []string{"a", "m", "z"}, ids(c.Query("", "", "", i18n.EN)))
}

func TestDropdown(t *testing.T) {
	c := testCatalog(t)
	items := c.Dropdown()
	require.Len(t, items, 3)
	assert.Equal(t, DropdownItem{ID: "a", Name: "Audi A6", Brand: "audi", Logo: "audi.svg"}, items[0])
	assert.Equal(t, "bmw.svg", items[2].Logo)
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("cars:\n  - {id: a, name: A}\n  - {id: a, name: B}\n"))
	require.Error(t, err)

	_, err = Parse([]byte("cars: [{name: nameless-id}]"))
	require.Error(t, err)
}

// normalizeSpaces folds the locale's grouping separator to a plain space.
func normalizeSpaces(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "от 12 000 ₽ / сутки", normalizeSpaces(FormatPrice(12000, i18n.RU, 95)))
	assert.Equal(t, "от 900 ₽ / сутки", FormatPrice(900, i18n.RU, 95))
	assert.Equal(t, "from $126 / day", FormatPrice(12000, i18n.EN, 95))
	assert.Equal(t, "from $1,053 / day", FormatPrice(100000, i18n.EN, 95))
	// Never below one dollar.
	assert.Equal(t, "from $1 / day", FormatPrice(10, i18n.EN, 95))
	// Invalid rates fall back to the default.
	assert.Equal(t, "from $126 / day", FormatPrice(12000, i18n.EN, 0))
	assert.Equal(t, "", FormatPrice(0, i18n.RU, 95))
	assert.Equal(t, "", FormatPrice(-5, i18n.EN, 95))
}
