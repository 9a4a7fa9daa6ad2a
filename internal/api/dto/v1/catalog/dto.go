package catalog

import "github.com/osa911/apexdrive/internal/catalog"

// CarsQuery are the filters accepted by GET /api/v1/cars
type CarsQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=all business sport suv premium"`
	Brand    string `form:"brand" binding:"omitempty,slug"`
	Query    string `form:"q" binding:"max=100"`
	Lang     string `form:"lang" binding:"omitempty,oneof=ru en RU EN"`
}

// CarResponse is one car with its price rendered for the requested language
type CarResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand"`
	Categories  []string      `json:"categories"`
	Price       int           `json:"price"`
	PriceText   string        `json:"price_text"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Specs       catalog.Specs `json:"specs"`
}

// CarsResponse is the payload of GET /api/v1/cars
type CarsResponse struct {
	Lang     string                 `json:"lang"`
	Cars     []CarResponse          `json:"cars"`
	Dropdown []catalog.DropdownItem `json:"dropdown"`
}
