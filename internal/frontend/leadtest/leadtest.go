// Package leadtest provides lead fixtures shared by tests.
package leadtest

import "github.com/aussiebroadwan/leadcapture/pkg/leadsdk"

// Leads returns a fresh copy of the demo leads. IDs are stable so tests can
// refer to them directly.
func Leads() []leadsdk.Lead {
	return []leadsdk.Lead{
		{ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z1", FullName: "Ada Lovelace", Email: "ada@engines.io", Phone: "+44 20 7946 0001", CompanyName: "Analytical Engines", Notes: "Wants a demo", CreatedAt: "2023-01-12T10:00:00"},
		{ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z2", FullName: "Alan Turing", Email: "alan@bletchley.uk", CreatedAt: "2023-02-01T08:30:00"},
		{ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z3", FullName: "Grace Hopper", Email: "grace@navy.mil", CompanyName: "US Navy", CreatedAt: "2023-03-09T23:59:59.123"},
		{ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z4", FullName: "Katherine Johnson", Email: "kj@nasa.gov", CompanyName: "NASA", CreatedAt: "2023-04-20T12:00:00"},
	}
}

// IDs returns the ids of leads in order.
func IDs(leads []leadsdk.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}
