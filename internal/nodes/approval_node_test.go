package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	config "github.com/nivschuman/ElectionResults/internal/config"
	db "github.com/nivschuman/ElectionResults/internal/database/connection"
	"github.com/nivschuman/ElectionResults/internal/identity"
	nodes "github.com/nivschuman/ElectionResults/internal/nodes"
	testutil "github.com/nivschuman/ElectionResults/internal/testutil"
)

func newNode(t *testing.T, verifyOnStart bool) (*testutil.Harness, *nodes.ApprovalNode) {
	t.Helper()

	h := testutil.NewHarness(t)
	conf := &config.Config{
		RegistryConfig: config.RegistryConfig{OwnerPublicKey: h.Owner.PublicKey.AsBytes()},
		AuditConfig:    config.AuditConfig{VerifyOnStart: verifyOnStart},
	}

	node, err := nodes.NewApprovalNode(conf, h.DB)
	require.NoError(t, err)

	return h, node
}

func TestApprovalNode_StartVerifiesAuditChain(t *testing.T) {
	h, node := newNode(t, true)
	require.NoError(t, node.Start())

	assert.Equal(t, h.OwnerId, node.Registry.OwnerId())
	assert.Equal(t, identity.PrincipalIdFromPublicKey(h.Owner.PublicKey.AsBytes()), node.Registry.OwnerId())

	station := h.RegisterStation(t, "PS-001")
	_, err := node.Machine.Submit(station.Submitter, testutil.SubmitRequest("PS-001", []string{"C1"}, []uint64{1}, 1))
	require.NoError(t, err)

	require.NoError(t, h.DB.Exec("UPDATE audit_events SET timestamp = 0 WHERE sequence = 2").Error)

	reopened, err := nodes.NewApprovalNode(&config.Config{AuditConfig: config.AuditConfig{VerifyOnStart: true}}, h.DB)
	require.NoError(t, err)
	assert.Error(t, reopened.Start())
	assert.False(t, reopened.Health().Healthy())
}

func TestApprovalNode_Stop(t *testing.T) {
	database, err := db.OpenDatabase(db.InMemory, logger.Silent)
	require.NoError(t, err)

	node, err := nodes.NewApprovalNode(&config.Config{}, database)
	require.NoError(t, err)

	require.NoError(t, node.Start())
	assert.True(t, node.Health().Healthy())
	require.NoError(t, node.Stop())
	assert.False(t, node.Health().Healthy())
}
