//go:build e2e

package leadfront_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// TestSDKAgainstStub exercises every client operation against the containerised stub.
func TestSDKAgainstStub(t *testing.T) {
	s := setupStack(t)
	ctx := t.Context()
	client := leadsdk.NewClient(s.APIURL, nil)

	res := client.ListLeads(ctx)
	require.False(t, res.Success)
	require.Equal(t, leadsdk.OutcomeNotAuthenticated, res.Outcome)

	created := client.CreateLead(ctx, leadsdk.Lead{FullName: "Mary Jackson", Email: "mary@nasa.gov"})
	require.True(t, created.Success, created.Message)
	require.NotEmpty(t, created.Data.ID)

	dup := client.CreateLead(ctx, leadsdk.Lead{FullName: "Mary Again", Email: "mary@nasa.gov"})
	require.False(t, dup.Success)
	require.Equal(t, leadsdk.OutcomeRejected, dup.Outcome)

	login := client.Login(ctx, adminEmail, adminPassword)
	require.True(t, login.Success, login.Message)

	list := client.ListLeads(ctx)
	require.True(t, list.Success, list.Message)
	require.Len(t, list.Data, 1)
	require.Equal(t, "Mary Jackson", list.Data[0].FullName)
	require.NotEmpty(t, list.Data[0].CreatedAt)

	del := client.DeleteLeads(ctx, []string{created.Data.ID})
	require.True(t, del.Success, del.Message)
	require.Equal(t, "1 lead deleted successfully", del.Message)
}
