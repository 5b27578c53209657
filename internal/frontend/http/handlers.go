package http

import (
	"net/http"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/forms"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// MsgNoneSelected is flashed when a bulk delete is posted with nothing selected.
const MsgNoneSelected = "No leads selected"

// MsgLoggedOut is flashed on the login page after an explicit logout.
const MsgLoggedOut = "You have been logged out"

// statusFor maps a failed call to the status the re-rendered form is sent with.
func statusFor(o leadsdk.Outcome) int {
	switch o {
	case leadsdk.OutcomeNotAuthenticated:
		return http.StatusUnauthorized
	case leadsdk.OutcomeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) {
	a := agentFromContext(req.Context())
	if a.State.Auth.IsAuthenticated() {
		http.Redirect(w, req, "/home", http.StatusFound)
		return
	}
	http.Redirect(w, req, "/login", http.StatusFound)
}

func (r *Router) handleLoginGet(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)
	if a.State.Auth.IsAuthenticated() {
		http.Redirect(w, req, "/home", http.StatusFound)
		return
	}

	form := &forms.LoginForm{}
	r.render(w, req, http.StatusOK, pageLogin, pageData{
		Title:     "Login",
		CSRFToken: a.Session.CSRFToken,
		Flash:     r.popFlash(ctx, a.Session.ID),
		Fields:    form.Fields(),
	})
}

func (r *Router) handleLoginPost(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)
	logger := slogx.FromContext(ctx)

	_ = req.ParseForm()
	form := forms.LoginFormFromValues(req.PostForm)
	var res leadsdk.Result[string]
	submitted := form.Submit(func(email, password string) string {
		res = r.AuthService.Login(ctx, a.State, a.Tokens, email, password)
		if res.Success {
			return ""
		}
		return res.Message
	})

	status := http.StatusUnprocessableEntity
	switch {
	case !submitted:
	case res.Success:
		logger.Info("admin logged in")
		http.Redirect(w, req, "/home", http.StatusSeeOther)
		return
	default:
		logger.Info("admin login failed", "outcome", res.Outcome.String())
		status = statusFor(res.Outcome)
	}

	r.render(w, req, status, pageLogin, pageData{
		Title:     "Login",
		CSRFToken: a.Session.CSRFToken,
		Fields:    form.Fields(),
		General:   form.General,
	})
}

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)

	if res := r.AuthService.Logout(ctx, a.State, a.Tokens); !res.Success {
		slogx.FromContext(ctx).Warn("failed to clear token on logout", "message", res.Message)
	}
	r.setFlash(ctx, a.Session.ID, flashSuccess, MsgLoggedOut)
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}

func (r *Router) handleSignupGet(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)

	form := &forms.LeadForm{}
	r.render(w, req, http.StatusOK, pageSignup, pageData{
		Title:         "Submit a Lead",
		CSRFToken:     a.Session.CSRFToken,
		Flash:         r.popFlash(ctx, a.Session.ID),
		Authenticated: a.State.Auth.IsAuthenticated(),
		Fields:        form.Fields(),
	})
}

func (r *Router) handleSignupPost(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)

	_ = req.ParseForm()
	form := forms.LeadFormFromValues(req.PostForm)
	var res leadsdk.Result[leadsdk.Lead]
	submitted := form.Submit(r.now(), func(lead leadsdk.Lead) {
		res = r.LeadsService.Create(ctx, lead)
	})

	status := http.StatusUnprocessableEntity
	switch {
	case !submitted:
	case res.Success:
		slogx.FromContext(ctx).Info("lead submitted", "lead_id", res.Data.ID)
		r.setFlash(ctx, a.Session.ID, flashSuccess, res.Message)
		http.Redirect(w, req, "/signup", http.StatusSeeOther)
		return
	default:
		form.General = res.Message
		status = statusFor(res.Outcome)
	}

	r.render(w, req, status, pageSignup, pageData{
		Title:         "Submit a Lead",
		CSRFToken:     a.Session.CSRFToken,
		Authenticated: a.State.Auth.IsAuthenticated(),
		Fields:        form.Fields(),
		General:       form.General,
	})
}

func (r *Router) handleHome(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)

	res := r.LeadsService.Refresh(ctx, a.Session.ID, a.State, a.Tokens)
	if res.Outcome == leadsdk.OutcomeNotAuthenticated {
		r.expire(w, req, a, res.Message)
		return
	}

	fl := r.popFlash(ctx, a.Session.ID)
	if !res.Success && fl == nil {
		fl = &flash{Kind: flashError, Message: res.Message}
	}

	// The browser debounces keystrokes before it submits q.
	if q, ok := req.URL.Query()["q"]; ok && len(q) > 0 {
		a.State.View.Commit(q[0])
	}

	view := a.State.View
	r.render(w, req, http.StatusOK, pageHome, pageData{
		Title:          "Leads",
		CSRFToken:      a.Session.CSRFToken,
		Flash:          fl,
		Authenticated:  true,
		Rows:           view.Rows(),
		Total:          a.State.Leads.Len(),
		Query:          view.Query(),
		AllSelected:    view.AllSelected(),
		SelectedCount:  len(view.Selected()),
		DebounceMillis: r.debounce.Milliseconds(),
	})
}

func (r *Router) handleSelect(w http.ResponseWriter, req *http.Request) {
	a := agentFromContext(req.Context())
	a.State.View.Toggle(req.PostFormValue("id"))
	http.Redirect(w, req, "/home", http.StatusSeeOther)
}

func (r *Router) handleSelectAll(w http.ResponseWriter, req *http.Request) {
	a := agentFromContext(req.Context())
	a.State.View.ToggleAll()
	http.Redirect(w, req, "/home", http.StatusSeeOther)
}

func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	a := agentFromContext(ctx)

	res, ok := r.LeadsService.Delete(ctx, a.State, a.Tokens)
	switch {
	case !ok:
		r.setFlash(ctx, a.Session.ID, flashError, MsgNoneSelected)
	case res.Outcome == leadsdk.OutcomeNotAuthenticated:
		r.expire(w, req, a, res.Message)
		return
	case res.Success:
		slogx.FromContext(ctx).Info("leads deleted", "message", res.Message)
		r.setFlash(ctx, a.Session.ID, flashSuccess, res.Message)
	default:
		r.setFlash(ctx, a.Session.ID, flashError, res.Message)
	}
	http.Redirect(w, req, "/home", http.StatusSeeOther)
}

// expire handles a token the API no longer accepts: the agent is logged out
// and sent to the login page with the reason.
func (r *Router) expire(w http.ResponseWriter, req *http.Request, a *agent, message string) {
	ctx := req.Context()
	r.AuthService.Logout(ctx, a.State, a.Tokens)
	r.setFlash(ctx, a.Session.ID, flashError, message)
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}
