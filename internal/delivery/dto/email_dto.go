package dto

// SendEmailRequest dispatches a transactional email to one or more
// recipients. Subject and htmlContent fall back to onboarding defaults.
type SendEmailRequest struct {
	Recipients  []string `json:"recipients" validate:"required,min=1,dive,email"`
	Subject     string   `json:"subject" validate:"omitempty"`
	HTMLContent string   `json:"htmlContent" validate:"omitempty"`
}
