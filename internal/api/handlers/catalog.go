package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/constants"
	catalogdto "github.com/osa911/apexdrive/internal/api/dto/v1/catalog"
	"github.com/osa911/apexdrive/internal/api/sanitization"
	"github.com/osa911/apexdrive/internal/catalog"
	"github.com/osa911/apexdrive/internal/i18n"
	"github.com/osa911/apexdrive/internal/utils"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	usdRate float64
}

func NewCatalogHandler(c *catalog.Catalog, usdRate float64) *CatalogHandler {
	return &CatalogHandler{catalog: c, usdRate: usdRate}
}

// ListCars returns the filtered fleet with prices for the requested language.
func (h *CatalogHandler) ListCars(c *gin.Context) {
	q, ok := c.MustGet(constants.ContextKeyCarsQuery).(*catalogdto.CarsQuery)
	if !ok {
		q = &catalogdto.CarsQuery{}
	}
	lang := i18n.ParseLang(q.Lang)

	cars := h.catalog.Query(q.Category, q.Brand, sanitization.SanitizeSearchTerm(q.Query), lang)
	out := make([]catalogdto.CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, catalogdto.CarResponse{
			ID:          car.ID,
			Name:        car.Name,
			Brand:       car.Brand,
			Categories:  car.Categories,
			Price:       car.Price,
			PriceText:   catalog.FormatPrice(car.Price, lang, h.usdRate),
			Image:       car.Image,
			Description: car.DescriptionIn(lang),
			Specs:       car.Specs,
		})
	}

	utils.HandleSuccess(c, catalogdto.CarsResponse{
		Lang:     string(lang),
		Cars:     out,
		Dropdown: h.catalog.Dropdown(),
	})
}
