package forms_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/forms"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("AEST", 10*3600))

func TestLeadFormBlocksInvalidSubmit(t *testing.T) {
	t.Parallel()

	f := &forms.LeadForm{FullName: "  ", Email: "valid@example.com"}

	called := false
	ok := f.Submit(fixedNow, func(leadsdk.Lead) { called = true })

	require.False(t, ok)
	require.False(t, called, "no submit may happen with an invalid form")
	require.Equal(t, map[string]string{"fullName": "Full Name is required"}, f.Errors)
}

func TestLeadFormSubmitsNormalizedLead(t *testing.T) {
	t.Parallel()

	f := forms.LeadFormFromValues(url.Values{
		"fullName":    {"Ada Lovelace"},
		"email":       {"ada@engines.io"},
		"phone":       {"+44 20 7946 0000"},
		"companyName": {"Analytical Engines"},
		"notes":       {"Prefers punch cards"},
	})

	var got leadsdk.Lead
	require.True(t, f.Submit(fixedNow, func(l leadsdk.Lead) { got = l }))
	require.Empty(t, f.Errors)
	require.Equal(t, leadsdk.Lead{
		FullName:    "Ada Lovelace",
		Email:       "ada@engines.io",
		Phone:       "+44 20 7946 0000",
		CompanyName: "Analytical Engines",
		Notes:       "Prefers punch cards",
		CreatedAt:   "2024-04-30T23:30:00Z",
	}, got)

	f.Reset()
	require.Equal(t, forms.LeadForm{}, *f)
}

func TestLeadFormFields(t *testing.T) {
	t.Parallel()

	f := &forms.LeadForm{Email: "bad"}
	f.Validate()

	fields := f.Fields()
	require.Len(t, fields, 5)
	require.Equal(t, "Full Name is required", fields[0].Error)
	require.Equal(t, "Email format is invalid", fields[1].Error)
	require.True(t, fields[1].HasError())
	require.False(t, fields[2].HasError())
	require.True(t, fields[4].IsTextArea())
	require.False(t, fields[0].IsTextArea())
}

func TestLoginForm(t *testing.T) {
	t.Parallel()

	t.Run("invalid never reaches the handler", func(t *testing.T) {
		f := &forms.LoginForm{Email: "admin@example"}
		called := false
		require.False(t, f.Submit(func(string, string) string { called = true; return "" }))
		require.False(t, called)
		require.Equal(t, map[string]string{
			"email":    "Email format is invalid",
			"password": "Password is required",
		}, f.Errors)
	})

	t.Run("handler message becomes the general error", func(t *testing.T) {
		f := forms.LoginFormFromValues(url.Values{"email": {"admin@example.com"}, "password": {"nope"}})
		require.True(t, f.Submit(func(email, password string) string {
			require.Equal(t, "admin@example.com", email)
			require.Equal(t, "nope", password)
			return "bad credentials"
		}))
		require.Equal(t, "bad credentials", f.General)

		for _, field := range f.Fields() {
			if field.Name == "password" {
				require.Empty(t, field.Value)
			}
		}
	})
}
