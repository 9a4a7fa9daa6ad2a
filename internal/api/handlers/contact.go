package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/constants"
	contactdto "github.com/osa911/apexdrive/internal/api/dto/v1/contact"
	"github.com/osa911/apexdrive/internal/contact"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit answers the site form. Every outcome except a wrong method is
// reported with 200 and success=false so the page can show the message.
func (h *ContactHandler) Submit(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		res := contact.MethodNotAllowed(c.Request.Method)
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, contactdto.ContactResponse{
			Success: res.Success,
			Message: res.Message,
		})
		return
	}

	// Get contact data from context (set by the binding middleware)
	form, ok := c.MustGet(constants.ContextKeyContact).(*contactdto.ContactForm)
	if !ok {
		form = &contactdto.ContactForm{}
	}

	res := h.service.Submit(c.Request.Context(), c.GetString(constants.ContextKeySessionID), contact.Submission{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
		Company: form.Company,
		Lang:    form.Lang,
	})

	c.JSON(http.StatusOK, contactdto.ContactResponse{
		Success: res.Success,
		Message: res.Message,
	})
}
