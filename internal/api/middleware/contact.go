package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/constants"
	"github.com/osa911/apexdrive/internal/api/dto/common"
	catalogdto "github.com/osa911/apexdrive/internal/api/dto/v1/catalog"
	contactdto "github.com/osa911/apexdrive/internal/api/dto/v1/contact"
	"github.com/osa911/apexdrive/internal/api/validation"
)

// BindContactForm binds the posted form for the contact handler. Binding
// never fails the request: a body that cannot be parsed is treated as an
// empty form so the visitor gets the localized "fields required" answer.
func BindContactForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form contactdto.ContactForm
		if c.Request.Method == http.MethodPost {
			_ = c.ShouldBind(&form)
		}
		c.Set(constants.ContextKeyContact, &form)
		c.Next()
	}
}

// ValidateCarsQuery binds and validates the catalog filters.
func ValidateCarsQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		var q catalogdto.CarsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeValidation,
				"Invalid query parameters",
				validation.FormatValidationError(err),
			))
			return
		}
		c.Set(constants.ContextKeyCarsQuery, &q)
		c.Next()
	}
}
