package leadsdk

import (
	"context"
	"encoding/json"
	"net/http"
)

// CreateLead submits a new lead. No token is required. Any ID on the input
// is dropped, the server assigns one.
func (c *Client) CreateLead(ctx context.Context, lead Lead) Result[Lead] {
	const op = "create_lead"

	lead.ID = ""
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/leads", lead, nil)
	if err != nil {
		return fail[Lead](ctx, op, MsgCreateLeadFailed, err)
	}

	env, err := decodeEnvelope[Lead](resp)
	if err != nil {
		return fail[Lead](ctx, op, MsgCreateLeadFailed, err)
	}

	return succeed(env.Message, env.Data)
}

// ListLeads fetches every lead. Data is never nil on success.
func (c *Client) ListLeads(ctx context.Context) Result[[]Lead] {
	const op = "list_leads"

	resp, err := c.doAuthRequest(ctx, http.MethodGet, "/api/leads", nil)
	if err != nil {
		return fail[[]Lead](ctx, op, MsgListLeadsFailed, err)
	}

	env, err := decodeEnvelope[[]Lead](resp)
	if err != nil {
		return fail[[]Lead](ctx, op, MsgListLeadsFailed, err)
	}

	if env.Data == nil {
		env.Data = []Lead{}
	}
	return succeed(env.Message, env.Data)
}

// DeleteLeads removes the leads with the given ids. The ids travel as a JSON
// array in the DELETE body.
func (c *Client) DeleteLeads(ctx context.Context, ids []string) Result[struct{}] {
	const op = "delete_leads"

	if ids == nil {
		ids = []string{}
	}

	resp, err := c.doAuthRequest(ctx, http.MethodDelete, "/api/leads", ids)
	if err != nil {
		return fail[struct{}](ctx, op, MsgDeleteLeadsFailed, err)
	}

	env, err := decodeEnvelope[json.RawMessage](resp)
	if err != nil {
		return fail[struct{}](ctx, op, MsgDeleteLeadsFailed, err)
	}

	return succeed(env.Message, struct{}{})
}
