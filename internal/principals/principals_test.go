package principals_test

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ppk "github.com/nivschuman/ElectionResults/internal/crypto/ppk"
	models "github.com/nivschuman/ElectionResults/internal/models"
	principals "github.com/nivschuman/ElectionResults/internal/principals"
	testutil "github.com/nivschuman/ElectionResults/internal/testutil"
)

type rosterEntry struct {
	Name         string `json:"name"`
	PublicKey    string `json:"public_key"`
	PrivateKey   string `json:"private_key,omitempty"`
	NationalId   string `json:"national_id"`
	Role         string `json:"role"`
	Station      string `json:"station"`
	Party        string `json:"party,omitempty"`
	Organization string `json:"organization,omitempty"`
}

func newRosterEntry(t *testing.T, name string, role string, party string, organization string, withPrivateKey bool) rosterEntry {
	t.Helper()

	keyPair, err := ppk.GenerateKeyPair()
	require.NoError(t, err)

	entry := rosterEntry{
		Name:         name,
		PublicKey:    hex.EncodeToString(keyPair.PublicKey.AsBytes()),
		NationalId:   "NID-" + name,
		Role:         role,
		Station:      "PS-001",
		Party:        party,
		Organization: organization,
	}

	if withPrivateKey {
		privBytes, err := keyPair.PrivateKey.AsBytes()
		require.NoError(t, err)
		entry.PrivateKey = hex.EncodeToString(privBytes)
	}

	return entry
}

func writeRoster(t *testing.T, entries []rosterEntry) string {
	t.Helper()

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRosterFromJSONFile(t *testing.T) {
	path := writeRoster(t, []rosterEntry{
		newRosterEntry(t, "officer", "submitter", "", "Electoral Commission", true),
		newRosterEntry(t, "agent", "agent", "Party A", "", false),
	})

	entries, err := principals.RosterFromJSONFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.RoleSubmitter, entries[0].Role)
	require.NotNil(t, entries[0].KeyPair)
	assert.Equal(t, entries[0].PublicKey.AsBytes(), entries[0].KeyPair.PublicKey.AsBytes())
	assert.Len(t, entries[0].PrincipalId(), 64)

	assert.Nil(t, entries[1].KeyPair)
	assert.Equal(t, "Party A", entries[1].Registration().Party)
}

func TestRosterFromJSON_Invalid(t *testing.T) {
	badRole := newRosterEntry(t, "x", "owner", "", "", false)

	mismatched := newRosterEntry(t, "y", "agent", "Party A", "", true)
	mismatched.PublicKey = newRosterEntry(t, "z", "agent", "", "", false).PublicKey

	badKey := newRosterEntry(t, "w", "observer", "", "Mission", false)
	badKey.PublicKey = "02ff"

	for name, entry := range map[string]rosterEntry{"role": badRole, "key pair": mismatched, "public key": badKey} {
		data, err := json.Marshal([]rosterEntry{entry})
		require.NoError(t, err)

		_, err = principals.RosterFromJSON(data)
		assert.Error(t, err, name)
	}
}

func TestBootstrap(t *testing.T) {
	h := testutil.NewHarness(t)

	data, err := json.Marshal([]rosterEntry{
		newRosterEntry(t, "officer", "submitter", "", "Electoral Commission", true),
		newRosterEntry(t, "agent", "agent", "Party A", "", true),
		newRosterEntry(t, "observer", "observer", "", "Observer Mission", true),
	})
	require.NoError(t, err)

	entries, err := principals.RosterFromJSON(data)
	require.NoError(t, err)

	registered, err := principals.Bootstrap(h.Registry, h.OwnerId, entries)
	require.NoError(t, err)
	require.Len(t, registered, 3)

	_, err = h.Machine.Submit(entries[0].PrincipalId(), testutil.SubmitRequest("PS-001", []string{"C1"}, []uint64{1}, 1))
	require.NoError(t, err)
	_, err = h.Machine.SignAsAgent(entries[1].PrincipalId(), "PS-001")
	require.NoError(t, err)
	record, err := h.Machine.SignAsObserver(entries[2].PrincipalId(), "PS-001")
	require.NoError(t, err)
	assert.True(t, record.Finalized)

	_, err = principals.Bootstrap(h.Registry, entries[0].PrincipalId(), entries)
	assert.Error(t, err)
}
