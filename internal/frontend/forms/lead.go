package forms

import (
	"net/url"
	"time"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// LeadForm is the public signup form.
type LeadForm struct {
	FullName    string
	Email       string
	Phone       string
	CompanyName string
	Notes       string

	Errors  map[string]string
	General string
}

// LeadFormFromValues reads a posted signup form.
func LeadFormFromValues(v url.Values) *LeadForm {
	return &LeadForm{
		FullName:    v.Get("fullName"),
		Email:       v.Get("email"),
		Phone:       v.Get("phone"),
		CompanyName: v.Get("companyName"),
		Notes:       v.Get("notes"),
	}
}

// Lead builds the normalized lead the form would submit. Every field is
// carried over; createdAt is stamped from now in UTC.
func (f *LeadForm) Lead(now time.Time) leadsdk.Lead {
	return leadsdk.Lead{
		FullName:    f.FullName,
		Email:       f.Email,
		Phone:       f.Phone,
		CompanyName: f.CompanyName,
		Notes:       f.Notes,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
}

// Validate refreshes f.Errors and reports whether the form is valid.
func (f *LeadForm) Validate() bool {
	f.Errors = leadsdk.Lead{FullName: f.FullName, Email: f.Email}.Validate()
	return len(f.Errors) == 0
}

// Submit validates the form and, only when it is valid, hands the lead to
// onSubmit. It reports whether onSubmit was called.
func (f *LeadForm) Submit(now time.Time, onSubmit func(leadsdk.Lead)) bool {
	f.General = ""
	if !f.Validate() {
		return false
	}
	onSubmit(f.Lead(now))
	return true
}

// Reset clears every value and message, as after a successful submit.
func (f *LeadForm) Reset() {
	*f = LeadForm{}
}

// Fields returns the render descriptors in display order.
func (f *LeadForm) Fields() []Field {
	return []Field{
		{Label: "Full Name", Type: TypeText, Name: "fullName", Value: f.FullName, Placeholder: "Jane Doe", Error: f.Errors[leadsdk.FieldFullName], Required: true},
		{Label: "Email", Type: TypeEmail, Name: "email", Value: f.Email, Placeholder: "jane@example.com", Error: f.Errors[leadsdk.FieldEmail], Required: true},
		{Label: "Phone", Type: TypeTel, Name: "phone", Value: f.Phone, Placeholder: "+61 400 000 000"},
		{Label: "Company", Type: TypeText, Name: "companyName", Value: f.CompanyName, Placeholder: "Acme Pty Ltd"},
		{Label: "Notes", Type: TypeTextArea, Name: "notes", Value: f.Notes, Placeholder: "Anything we should know?", Rows: 4},
	}
}
