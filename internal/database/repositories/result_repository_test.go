package repositories_test

import (
	"math"
	"slices"
	"testing"

	"github.com/pkg/errors"

	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	models "github.com/nivschuman/ElectionResults/internal/models"
	testutil "github.com/nivschuman/ElectionResults/internal/testutil"
)

func newRecord(stationId string, candidateIds []string, votes []uint64) *models.ResultRecord {
	record := models.NewResultRecord(stationId)
	record.ElectionId = "GE-2026"
	record.ResultHash = "sha256:" + stationId
	record.ResultDataUrl = "ipfs://" + stationId
	record.TotalVotes = math.MaxUint64
	record.Submitter = models.SignatureSlot{Signed: true, SignerId: "s1", Affiliation: "Electoral Commission", SignedAt: 1}
	record.UpdatedAt = 1

	for i, candidateId := range candidateIds {
		record.Candidates.Put(candidateId, votes[i])
	}

	return record
}

func TestInsertRecord(t *testing.T) {
	repos := repositories.NewRepositories(testutil.SetupTestDatabase(t))

	record := newRecord("PS-001", []string{"C3", "C1", "C2"}, []uint64{math.MaxUint64, 0, 42})
	if err := repos.Results.InsertRecord(record); err != nil {
		t.Fatalf("failed to insert record: %v", err)
	}

	found, err := repos.Results.GetRecord("PS-001")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}

	if found.TotalVotes != math.MaxUint64 {
		t.Fatalf("total votes changed to %d", found.TotalVotes)
	}

	if !slices.Equal(found.Candidates.Keys(), []string{"C3", "C1", "C2"}) {
		t.Fatalf("candidate order changed to %v", found.Candidates.Keys())
	}

	if !slices.Equal(found.Candidates.Values(), []uint64{math.MaxUint64, 0, 42}) {
		t.Fatalf("candidate votes changed to %v", found.Candidates.Values())
	}

	if found.Submitter != record.Submitter {
		t.Fatalf("submitter slot changed to %+v", found.Submitter)
	}
}

func TestUpdateRecord(t *testing.T) {
	repos := repositories.NewRepositories(testutil.SetupTestDatabase(t))

	record := newRecord("PS-001", []string{"C1", "C2"}, []uint64{1, 2})
	if err := repos.Results.InsertRecord(record); err != nil {
		t.Fatalf("failed to insert record: %v", err)
	}

	record.Agent = models.SignatureSlot{Signed: true, SignerId: "a1", Affiliation: "Party A", SignedAt: 2}
	if err := repos.Results.UpdateRecord(record, false); err != nil {
		t.Fatalf("failed to update record: %v", err)
	}

	record.Candidates = newRecord("PS-001", []string{"C9"}, []uint64{9}).Candidates
	if err := repos.Results.UpdateRecord(record, true); err != nil {
		t.Fatalf("failed to replace candidates: %v", err)
	}

	found, err := repos.Results.GetRecord("PS-001")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}

	if !found.Agent.Signed || found.Agent.Affiliation != "Party A" {
		t.Fatalf("agent slot not stored: %+v", found.Agent)
	}

	if !slices.Equal(found.Candidates.Keys(), []string{"C9"}) {
		t.Fatalf("candidates not replaced: %v", found.Candidates.Keys())
	}

	count, err := repos.Results.GetStationCount()
	if err != nil {
		t.Fatalf("failed to count stations: %v", err)
	}

	if count != 1 {
		t.Fatalf("update added to the station index, count is %d", count)
	}
}

func TestGetRecord_WhenMissing(t *testing.T) {
	repos := repositories.NewRepositories(testutil.SetupTestDatabase(t))

	_, err := repos.Results.GetRecord("PS-404")

	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found error, got %v", err)
	}

	exists, err := repos.Results.RecordExists("PS-404")
	if err != nil || exists {
		t.Fatalf("record should not exist, got %t %v", exists, err)
	}
}

func TestGetStationsPaged(t *testing.T) {
	repos := repositories.NewRepositories(testutil.SetupTestDatabase(t))

	stationIds := []string{"PS-010", "PS-002", "PS-007", "PS-001"}
	for _, stationId := range stationIds {
		if err := repos.Results.InsertRecord(newRecord(stationId, nil, nil)); err != nil {
			t.Fatalf("failed to insert record: %v", err)
		}
	}

	all, err := repos.Results.GetStationsPaged(0, -1)
	if err != nil {
		t.Fatalf("failed to get stations: %v", err)
	}

	if !slices.Equal(all, stationIds) {
		t.Fatalf("stations not in submission order: %v", all)
	}

	page, err := repos.Results.GetStationsPaged(1, 2)
	if err != nil {
		t.Fatalf("failed to get stations: %v", err)
	}

	if !slices.Equal(page, []string{"PS-002", "PS-007"}) {
		t.Fatalf("wrong page: %v", page)
	}

	records, err := repos.Results.GetRecords()
	if err != nil {
		t.Fatalf("failed to get records: %v", err)
	}

	for i, record := range records {
		if record.StationId != stationIds[i] {
			t.Fatalf("record %d is %s, expected %s", i, record.StationId, stationIds[i])
		}
	}
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	repos := repositories.NewRepositories(testutil.SetupTestDatabase(t))

	rollback := errors.New("rollback")
	err := repos.Transaction(func(txRepos *repositories.Repositories) error {
		if err := txRepos.Results.InsertRecord(newRecord("PS-001", []string{"C1"}, []uint64{1})); err != nil {
			return err
		}
		return rollback
	})

	if !errors.Is(err, rollback) {
		t.Fatalf("expected rollback error, got %v", err)
	}

	count, err := repos.Results.GetStationCount()
	if err != nil {
		t.Fatalf("failed to count stations: %v", err)
	}

	if count != 0 {
		t.Fatalf("transaction was not rolled back, %d stations stored", count)
	}
}

func TestPrincipalRepository(t *testing.T) {
	repos := repositories.NewRepositories(testutil.SetupTestDatabase(t))

	principal := &models.Principal{Id: "p1", NationalId: "N1", Role: models.RoleObserver, StationId: "PS-001", Organization: "Observer Mission", Active: true}
	if err := repos.Principals.UpsertPrincipal(principal); err != nil {
		t.Fatalf("failed to insert principal: %v", err)
	}

	principal.Organization = "Another Mission"
	if err := repos.Principals.UpsertPrincipal(principal); err != nil {
		t.Fatalf("failed to overwrite principal: %v", err)
	}

	if err := repos.Principals.SetActive("p1", false); err != nil {
		t.Fatalf("failed to deactivate principal: %v", err)
	}

	found, err := repos.Principals.GetPrincipal("p1")
	if err != nil {
		t.Fatalf("failed to get principal: %v", err)
	}

	if found.Organization != "Another Mission" || found.Active {
		t.Fatalf("principal not stored correctly: %+v", found)
	}

	var notFound *models.NotFoundError
	if err := repos.Principals.SetActive("p2", false); !errors.As(err, &notFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
