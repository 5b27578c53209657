package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/aussiebroadwan/leadcapture/pkg/cryptox"
	"github.com/aussiebroadwan/leadcapture/pkg/httpx"
	"github.com/aussiebroadwan/leadcapture/pkg/idx"
	"github.com/aussiebroadwan/leadcapture/pkg/jwtx"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

const maxBodyBytes = 64 << 10

// Response messages.
const (
	MsgLoginOK        = "Login successful"
	MsgBadCredentials = "Invalid email or password"
	MsgLeadCreated    = "Lead created successfully"
	MsgLeadExists     = "A lead with this email already exists"
	MsgLeadsFetched   = "Leads fetched successfully"
	MsgNoIDs          = "No lead ids provided"
	MsgUnauthorized   = "Unauthorized"
	MsgBadRequest     = "Invalid request body"
)

func writeEnvelope(w http.ResponseWriter, code int, ok bool, message string, data any) {
	httpx.WriteJSON(w, code, leadsdk.Envelope[any]{Status: ok, Message: message, Data: data})
}

func denyEnvelope(w http.ResponseWriter, _ *http.Request, _ string) {
	writeEnvelope(w, http.StatusUnauthorized, false, MsgUnauthorized, nil)
}

// handleLogin godoc
//
//	@Summary		Administrator login
//	@Description	Exchanges the administrator credentials for a bearer token returned in data.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		leadsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	leadsdk.Envelope[string]
//	@Failure		400		{object}	leadsdk.Envelope[any]
//	@Failure		401		{object}	leadsdk.Envelope[any]
//	@Router			/api/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req leadsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, MsgBadRequest, nil)
		return
	}

	if errs := req.Validate(); errs != nil {
		writeEnvelope(w, http.StatusBadRequest, false, joinErrors(errs), nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != s.adminEmail {
		// same cost as a known email
		_ = cryptox.VerifyPassword(req.Password, s.adminHash)
		writeEnvelope(w, http.StatusUnauthorized, false, MsgBadCredentials, nil)
		return
	}
	if err := cryptox.VerifyPassword(req.Password, s.adminHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("verify admin password", "error", err)
		}
		writeEnvelope(w, http.StatusUnauthorized, false, MsgBadCredentials, nil)
		return
	}

	claims := jwtx.NewAdminClaims("admin", email, Issuer, s.tokenTTL, s.now())
	token, err := s.signer.Sign(claims)
	if err != nil {
		log.Error("sign token", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, false, "Could not issue token", nil)
		return
	}

	writeEnvelope(w, http.StatusOK, true, MsgLoginOK, token)
}

// handleCreateLead godoc
//
//	@Summary		Capture a lead
//	@Description	Public endpoint. The server assigns id and createdAt; createdAt carries no UTC marker.
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		leadsdk.Lead	true	"Lead"
//	@Success		201		{object}	leadsdk.Envelope[leadsdk.Lead]
//	@Failure		400		{object}	leadsdk.Envelope[any]
//	@Failure		409		{object}	leadsdk.Envelope[any]
//	@Router			/api/leads [post]
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var lead leadsdk.Lead
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &lead); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, MsgBadRequest, nil)
		return
	}

	if errs := lead.Validate(); errs != nil {
		writeEnvelope(w, http.StatusBadRequest, false, joinErrors(errs), nil)
		return
	}

	lead.ID = idx.New().String()
	lead.FullName = strings.TrimSpace(lead.FullName)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.CreatedAt = s.now().UTC().Format(CreatedAtLayout)

	s.mu.Lock()
	exists := slices.ContainsFunc(s.leads, func(l leadsdk.Lead) bool {
		return strings.EqualFold(l.Email, lead.Email)
	})
	if !exists {
		s.leads = append(s.leads, lead)
	}
	s.mu.Unlock()

	if exists {
		writeEnvelope(w, http.StatusConflict, false, MsgLeadExists, nil)
		return
	}

	slogx.FromContext(r.Context()).Info("lead captured", "lead_id", lead.ID)
	writeEnvelope(w, http.StatusCreated, true, MsgLeadCreated, lead)
}

// handleListLeads godoc
//
//	@Summary		List leads
//	@Tags			Leads
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	leadsdk.Envelope[[]leadsdk.Lead]
//	@Failure		401	{object}	leadsdk.Envelope[any]
//	@Router			/api/leads [get]
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, http.StatusOK, true, MsgLeadsFetched, s.Leads())
}

// DeleteResult is the data of a successful delete.
type DeleteResult struct {
	Deleted int `json:"deleted"`
}

// handleDeleteLeads godoc
//
//	@Summary		Delete leads
//	@Description	The body is a JSON array of lead ids. Unknown ids are ignored.
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		[]string	true	"Lead ids"
//	@Success		200		{object}	leadsdk.Envelope[DeleteResult]
//	@Failure		400		{object}	leadsdk.Envelope[any]
//	@Failure		401		{object}	leadsdk.Envelope[any]
//	@Router			/api/leads [delete]
func (s *Server) handleDeleteLeads(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &ids); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, MsgBadRequest, nil)
		return
	}
	if len(ids) == 0 {
		writeEnvelope(w, http.StatusBadRequest, false, MsgNoIDs, nil)
		return
	}

	s.mu.Lock()
	before := len(s.leads)
	s.leads = slices.DeleteFunc(s.leads, func(l leadsdk.Lead) bool {
		return slices.Contains(ids, l.ID)
	})
	deleted := before - len(s.leads)
	s.mu.Unlock()

	slogx.FromContext(r.Context()).Info("leads deleted", "requested", len(ids), "deleted", deleted)
	writeEnvelope(w, http.StatusOK, true, deletedMessage(deleted), DeleteResult{Deleted: deleted})
}

func deletedMessage(n int) string {
	if n == 1 {
		return "1 lead deleted successfully"
	}
	return fmt.Sprintf("%d leads deleted successfully", n)
}

// joinErrors renders validation errors in a stable order.
func joinErrors(errs map[string]string) string {
	msgs := make([]string, 0, len(errs))
	for _, m := range errs {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
