package domain

import "time"

// Session is one browser's server side session. The ID travels in the
// session cookie; the CSRF token is embedded in every form the browser gets.
type Session struct {
	ID         string
	CSRFToken  string
	CreatedAt  time.Time
	LastSeenAt time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CLISessionID is the fixed session the command line tools store their token under.
const CLISessionID = "cli"
