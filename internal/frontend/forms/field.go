// Package forms holds the lead signup and admin login forms: their field
// descriptors, validation and submit gating.
package forms

// Field kinds. Anything other than TypeTextArea renders as a single line input.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeTel      = "tel"
	TypePassword = "password"
	TypeTextArea = "textarea"
)

// Field describes one labelled input and its current error.
type Field struct {
	Label       string
	Type        string
	Name        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
	Rows        int
}

// IsTextArea reports whether the field renders as a multi-line area.
func (f Field) IsTextArea() bool { return f.Type == TypeTextArea }

// HasError reports whether the field carries a validation message.
func (f Field) HasError() bool { return f.Error != "" }
