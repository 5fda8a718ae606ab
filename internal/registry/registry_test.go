package registry_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/nivschuman/ElectionResults/internal/models"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
	testutil "github.com/nivschuman/ElectionResults/internal/testutil"
)

func agentRegistration(principalId string) *registry.Registration {
	return &registry.Registration{
		PrincipalId: principalId,
		NationalId:  "NID-0001",
		Role:        models.RoleAgent,
		StationId:   "PS-001",
		Party:       "Party A",
	}
}

func TestRegister_ByOwner(t *testing.T) {
	h := testutil.NewHarness(t)

	principal, err := h.Registry.Register(h.OwnerId, agentRegistration("a1"))
	require.NoError(t, err)
	assert.True(t, principal.Active)

	found, err := h.Registry.Lookup("a1")
	require.NoError(t, err)
	assert.Equal(t, principal, found)
	assert.Equal(t, "Party A", found.Affiliation())
}

func TestRegister_ByNonOwner(t *testing.T) {
	h := testutil.NewHarness(t)
	other := h.RegisterPrincipal(t, models.RoleObserver, "PS-001", "", "Observer Mission")

	_, err := h.Registry.Register(other, agentRegistration("a1"))

	var unauthorized *models.UnauthorizedError
	require.True(t, errors.As(err, &unauthorized))

	_, err = h.Registry.Lookup("a1")
	var notFound *models.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestRegister_RejectsInvalidRole(t *testing.T) {
	h := testutil.NewHarness(t)
	registration := agentRegistration("a1")
	registration.Role = models.Role(9)

	_, err := h.Registry.Register(h.OwnerId, registration)
	assert.Error(t, err)
}

func TestRegister_OverwritesExistingPrincipal(t *testing.T) {
	h := testutil.NewHarness(t)

	_, err := h.Registry.Register(h.OwnerId, agentRegistration("a1"))
	require.NoError(t, err)

	moved := agentRegistration("a1")
	moved.StationId = "PS-002"
	moved.Party = "Party B"
	_, err = h.Registry.Register(h.OwnerId, moved)
	require.NoError(t, err)

	found, err := h.Registry.Lookup("a1")
	require.NoError(t, err)
	assert.Equal(t, "PS-002", found.StationId)
	assert.Equal(t, "Party B", found.Party)

	principals, err := h.Registry.List()
	require.NoError(t, err)
	assert.Len(t, principals, 1)
}

func TestDeactivate(t *testing.T) {
	h := testutil.NewHarness(t)

	_, err := h.Registry.Register(h.OwnerId, agentRegistration("a1"))
	require.NoError(t, err)

	require.NoError(t, h.Registry.Deactivate(h.OwnerId, "a1"))

	found, err := h.Registry.Lookup("a1")
	require.NoError(t, err)
	assert.False(t, found.Active)

	err = h.Registry.Deactivate(h.OwnerId, "a1")
	var inactive *models.AlreadyInactiveError
	assert.True(t, errors.As(err, &inactive))
}

func TestDeactivate_UnknownPrincipal(t *testing.T) {
	h := testutil.NewHarness(t)

	err := h.Registry.Deactivate(h.OwnerId, "missing")

	var notFound *models.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, models.NotFoundPrincipal, notFound.Kind)
}

func TestDeactivate_ByNonOwner(t *testing.T) {
	h := testutil.NewHarness(t)

	_, err := h.Registry.Register(h.OwnerId, agentRegistration("a1"))
	require.NoError(t, err)

	err = h.Registry.Deactivate("a1", "a1")
	var unauthorized *models.UnauthorizedError
	require.True(t, errors.As(err, &unauthorized))

	found, err := h.Registry.Lookup("a1")
	require.NoError(t, err)
	assert.True(t, found.Active)
}

func TestRegister_ReactivatesDeactivatedPrincipal(t *testing.T) {
	h := testutil.NewHarness(t)

	_, err := h.Registry.Register(h.OwnerId, agentRegistration("a1"))
	require.NoError(t, err)
	require.NoError(t, h.Registry.Deactivate(h.OwnerId, "a1"))

	_, err = h.Registry.Register(h.OwnerId, agentRegistration("a1"))
	require.NoError(t, err)

	found, err := h.Registry.Lookup("a1")
	require.NoError(t, err)
	assert.True(t, found.Active)
}

func TestAuthorize(t *testing.T) {
	h := testutil.NewHarness(t)
	station := h.RegisterStation(t, "PS-001")

	principal, err := registry.Authorize(h.Repos.Principals, station.Agent, models.RoleAgent, "PS-001", "sign-agent")
	require.NoError(t, err)
	assert.Equal(t, station.Agent, principal.Id)

	tests := []struct {
		name      string
		callerId  string
		role      models.Role
		stationId string
		reason    string
	}{
		{"wrong role", station.Agent, models.RoleObserver, "PS-001", "principal is a agent, not a observer"},
		{"wrong station", station.Agent, models.RoleAgent, "PS-002", "principal is assigned to station PS-001"},
		{"unregistered", "nobody", models.RoleAgent, "PS-001", "principal is not registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Authorize(h.Repos.Principals, tt.callerId, tt.role, tt.stationId, "test")

			var unauthorized *models.UnauthorizedError
			require.True(t, errors.As(err, &unauthorized))
			assert.Equal(t, tt.reason, unauthorized.Reason)
		})
	}

	require.NoError(t, h.Registry.Deactivate(h.OwnerId, station.Agent))

	_, err = registry.Authorize(h.Repos.Principals, station.Agent, models.RoleAgent, "PS-001", "sign-agent")
	var unauthorized *models.UnauthorizedError
	require.True(t, errors.As(err, &unauthorized))
	assert.Equal(t, "principal is inactive", unauthorized.Reason)
}
