package models

// ContactRequest is the contact-form payload
type ContactRequest struct {
	LastName      string `json:"lastName" validate:"required,max=100"`
	FirstName     string `json:"firstName" validate:"required,max=100"`
	CompanyName   string `json:"companyName" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=8,max=20"`
	InquiryType   string `json:"inquiryType" validate:"required,max=100"`
	InquiryDetail string `json:"inquiryDetail" validate:"required,max=2000"`
}

// ContactResponse confirms a contact-form submission
type ContactResponse struct {
	Message string `json:"message"`
}
