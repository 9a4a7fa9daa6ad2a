package contact

// ContactForm is the form posted by the contact section of the site.
// Fields are validated by the contact service, not by binding tags, so
// every problem is reported as a localized message.
type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Message string `form:"message"`
	Company string `form:"company"`
	Lang    string `form:"lang"`
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
