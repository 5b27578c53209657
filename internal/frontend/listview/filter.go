package listview

import (
	"slices"
	"strings"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// Filter returns the leads whose full name, email or company contains query,
// ignoring case. An empty query returns every lead in its original order.
// The result never aliases leads.
func Filter(leads []leadsdk.Lead, query string) []leadsdk.Lead {
	if query == "" {
		return slices.Clone(leads)
	}

	q := strings.ToLower(query)
	out := make([]leadsdk.Lead, 0, len(leads))
	for _, l := range leads {
		if matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l leadsdk.Lead, q string) bool {
	return strings.Contains(strings.ToLower(l.FullName), q) ||
		strings.Contains(strings.ToLower(l.Email), q) ||
		(l.CompanyName != "" && strings.Contains(strings.ToLower(l.CompanyName), q))
}
