package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// LeadsService moves leads between the API and an agent's collection.
type LeadsService struct {
	Client  *leadsdk.Client
	Metrics *metrics.Collector

	group singleflight.Group
}

// Refresh fetches all leads and replaces the collection with them.
//
// Concurrent refreshes for the same key share one API call. The call itself
// is detached from ctx so one impatient caller cannot fail the others; the
// client's own timeout still bounds it. A caller whose ctx is done by the
// time the result arrives gets the result but the collection is not touched.
//
// A NotAuthenticated outcome flips the auth flag off.
func (s *LeadsService) Refresh(
	ctx context.Context,
	key string,
	st *state.AppState,
	tokens leadsdk.TokenStore,
) leadsdk.Result[[]leadsdk.Lead] {
	client := s.Client.WithTokens(tokens)
	detached := context.WithoutCancel(ctx)

	v, _, shared := s.group.Do(key, func() (any, error) {
		return observe(s.Metrics, "list_leads", func() leadsdk.Result[[]leadsdk.Lead] {
			return client.ListLeads(detached)
		}), nil
	})
	res := v.(leadsdk.Result[[]leadsdk.Lead])

	if ctx.Err() != nil {
		slogx.FromContext(ctx).Debug("dropping stale lead refresh", "key", key, "shared", shared)
		return res
	}

	switch {
	case res.Success:
		st.Leads.Replace(res.Data)
	case res.Outcome == leadsdk.OutcomeNotAuthenticated:
		st.Auth.Logout()
	}
	return res
}

// Create submits a lead. It needs no token and leaves every collection
// alone; the admin list picks the lead up on its next refresh.
func (s *LeadsService) Create(ctx context.Context, lead leadsdk.Lead) leadsdk.Result[leadsdk.Lead] {
	return observe(s.Metrics, "create_lead", func() leadsdk.Result[leadsdk.Lead] {
		return s.Client.CreateLead(ctx, lead)
	})
}

// Delete removes the agent's selected leads. The collection only loses them
// when the API confirms; the selection is cleared either way. ok is false
// when nothing was selected and no call was made.
func (s *LeadsService) Delete(
	ctx context.Context,
	st *state.AppState,
	tokens leadsdk.TokenStore,
) (res leadsdk.Result[struct{}], ok bool) {
	client := s.Client.WithTokens(tokens)

	return st.View.Delete(ctx, func(ctx context.Context, ids []string) leadsdk.Result[struct{}] {
		out := observe(s.Metrics, "delete_leads", func() leadsdk.Result[struct{}] {
			return client.DeleteLeads(ctx, ids)
		})

		switch {
		case out.Success:
			st.Leads.Remove(ids)
		case out.Outcome == leadsdk.OutcomeNotAuthenticated:
			st.Auth.Logout()
		}
		return out
	})
}
