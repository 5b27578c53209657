/*
Package leadsdk provides a client for the remote lead API.

# Overview

The API exposes four endpoints, all answering with the same JSON envelope:

	POST   /api/auth/login   {email, password}       -> data: bearer token
	POST   /api/leads        lead                    -> data: created lead
	GET    /api/leads        (bearer)                -> data: []lead
	DELETE /api/leads        (bearer) ["id", ...]    -> data: unused

	{"status": true, "message": "Leads fetched", "data": ...}

Create a Client with a TokenStore, which is where Login writes the token and
where the bearer operations read it from:

	client := leadsdk.NewClient("http://localhost:8080", leadsdk.NewMemoryTokenStore())

	res := client.Login(ctx, "admin@example.com", "secret")
	if !res.Success {
		fmt.Println(res.Message)
	}

	leads := client.ListLeads(ctx)

# Results

No operation returns a Go error. Every call yields a Result carrying Success,
a human readable Message, the decoded Data and an Outcome telling apart:

  - OutcomeOK: the server answered with status true
  - OutcomeRejected: the server answered with status false, Message is the
    server's message verbatim
  - OutcomeTransport: the request could not be sent or the reply was not an
    envelope, Message is a fixed per-operation text and the cause is logged
  - OutcomeNotAuthenticated: a bearer operation was attempted with no stored
    token, no request was sent

# Token storage

The token is opaque to this package. It is kept under the fixed key
TokenStorageKey ("jwtToken") by whichever TokenStore the caller supplies; the
front-end uses one store per browser session, the CLI a single persisted one.
Use WithTokens to derive a client bound to a different store while sharing the
underlying http.Client.

# Validation

Lead.Validate and LoginRequest.Validate implement the form rules shared by
every front-end (web pages, terminal dashboard and CLI) and return field
name to message maps, or nil when valid.
*/
package leadsdk
