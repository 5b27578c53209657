// Package state holds the per user agent application state: whether the user
// is signed in, the leads last fetched, and the list view over them.
package state

import (
	"context"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/listview"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// AppState is passed explicitly to whatever needs it; there is no global.
type AppState struct {
	Auth  *Auth
	Leads *Collection
	View  *listview.View
}

// New creates an empty state whose view refilters on every collection change.
func New(quiet time.Duration) *AppState {
	leads := &Collection{}
	view := listview.New(leads, quiet)
	leads.OnChange(view.Refresh)

	return &AppState{
		Auth:  &Auth{},
		Leads: leads,
		View:  view,
	}
}

// Restore re-derives the auth flag from a persisted token.
func (s *AppState) Restore(ctx context.Context, tokens leadsdk.TokenStore) {
	s.Auth.Restore(ctx, tokens)
}

// Reset returns the state to anonymous with no leads, as on logout.
func (s *AppState) Reset() {
	s.Auth.Logout()
	s.Leads.Replace(nil)
	s.View.Reset()
}

// Close releases the view's pending timer.
func (s *AppState) Close() {
	s.View.Close()
}
