package leadsdk

import "encoding/json"

// Lead is a captured sales contact. ID and CreatedAt are assigned by the
// server; CreatedAt is ISO-8601 and frequently lacks a UTC marker.
type Lead struct {
	ID          string `json:"id,omitempty"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// HasID reports whether the lead has been persisted by the server.
func (l Lead) HasID() bool { return l.ID != "" }

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Envelope is the uniform response body of every endpoint.
type Envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// rawEnvelope defers decoding of data until the status is known.
type rawEnvelope = Envelope[json.RawMessage]

// Outcome classifies how an operation ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeRejected
	OutcomeTransport
	OutcomeNotAuthenticated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransport:
		return "transport"
	case OutcomeNotAuthenticated:
		return "not_authenticated"
	default:
		return "unknown"
	}
}

// Result is what every Client operation returns.
type Result[T any] struct {
	Success bool
	Message string
	Data    T
	Outcome Outcome
}
