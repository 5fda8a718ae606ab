package testutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	approval "github.com/nivschuman/ElectionResults/internal/approval"
	audit "github.com/nivschuman/ElectionResults/internal/audit"
	"github.com/nivschuman/ElectionResults/internal/crypto/ppk"
	db "github.com/nivschuman/ElectionResults/internal/database/connection"
	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	"github.com/nivschuman/ElectionResults/internal/identity"
	models "github.com/nivschuman/ElectionResults/internal/models"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
)

var testEpoch = time.Date(2026, 8, 9, 18, 0, 0, 0, time.UTC).UnixNano()

// SetupTestDatabase opens a fresh in-memory store that is closed when the test ends.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenDatabase(db.InMemory, logger.Silent)
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		db.CloseDatabaseConnection(database)
	})

	return database
}

// NewTestClock returns a clock that advances one second on every call.
func NewTestClock() approval.Clock {
	var ticks atomic.Int64
	return func() int64 {
		return testEpoch + ticks.Add(1)*int64(time.Second)
	}
}

type Harness struct {
	DB       *gorm.DB
	Repos    *repositories.Repositories
	Registry *registry.Registry
	AuditLog *audit.Log
	Machine  *approval.Machine
	Owner    *ppk.KeyPair
	OwnerId  string
}

func NewHarness(t *testing.T) *Harness {
	t.Helper()

	database := SetupTestDatabase(t)
	repos := repositories.NewRepositories(database)

	owner, err := ppk.GenerateKeyPair()
	require.NoError(t, err)
	ownerId := identity.PrincipalIdFromPublicKey(owner.PublicKey.AsBytes())

	auditLog, err := audit.NewLog(repos.Audit)
	require.NoError(t, err)

	machine := approval.NewMachine(repos, auditLog)
	machine.SetClock(NewTestClock())

	return &Harness{
		DB:       database,
		Repos:    repos,
		Registry: registry.NewRegistry(ownerId, repos),
		AuditLog: auditLog,
		Machine:  machine,
		Owner:    owner,
		OwnerId:  ownerId,
	}
}

// RegisterPrincipal generates a key pair, registers it through the owner and returns the principal id.
func (harness *Harness) RegisterPrincipal(t *testing.T, role models.Role, stationId string, party string, organization string) string {
	t.Helper()

	keyPair, err := ppk.GenerateKeyPair()
	require.NoError(t, err)

	principalId := identity.PrincipalIdFromPublicKey(keyPair.PublicKey.AsBytes())
	_, err = harness.Registry.Register(harness.OwnerId, &registry.Registration{
		PrincipalId:  principalId,
		NationalId:   "NID-" + principalId[:8],
		Role:         role,
		StationId:    stationId,
		Party:        party,
		Organization: organization,
	})
	require.NoError(t, err)

	return principalId
}

// Station holds one principal of each role registered to the same station.
type Station struct {
	Id        string
	Submitter string
	Agent     string
	Observer  string
}

func (harness *Harness) RegisterStation(t *testing.T, stationId string) *Station {
	t.Helper()

	return &Station{
		Id:        stationId,
		Submitter: harness.RegisterPrincipal(t, models.RoleSubmitter, stationId, "", "Electoral Commission"),
		Agent:     harness.RegisterPrincipal(t, models.RoleAgent, stationId, "Party A", ""),
		Observer:  harness.RegisterPrincipal(t, models.RoleObserver, stationId, "", "Observer Mission"),
	}
}

func SubmitRequest(stationId string, candidateIds []string, votes []uint64, totalVotes uint64) *approval.SubmitRequest {
	return &approval.SubmitRequest{
		StationId:     stationId,
		ElectionId:    "GE-2026",
		ResultHash:    "sha256:9f2c",
		ResultDataUrl: "ipfs://bafy-" + stationId,
		TotalVotes:    totalVotes,
		CandidateIds:  candidateIds,
		Votes:         votes,
	}
}
