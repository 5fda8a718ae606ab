package models

import (
	"fmt"

	structures "github.com/nivschuman/ElectionResults/internal/structures"
)

type SignatureSlot struct {
	Signed      bool
	SignerId    string
	Affiliation string //signer affiliation at signing time
	SignedAt    int64  //unix nano timestamp
}

type ResultRecord struct {
	StationId     string
	ElectionId    string
	ResultHash    string //opaque, stored verbatim
	ResultDataUrl string //opaque, stored verbatim
	TotalVotes    uint64
	Candidates    *structures.OrderedMap[string, uint64]
	Submitter     SignatureSlot
	Agent         SignatureSlot
	Observer      SignatureSlot
	UpdatedAt     int64 //unix nano timestamp
	Finalized     bool
}

type SignatureStatus struct {
	SubmitterSigned bool
	AgentSigned     bool
	ObserverSigned  bool
	Finalized       bool
}

type ResultDetails struct {
	StationId     string
	ElectionId    string
	ResultHash    string
	ResultDataUrl string
	TotalVotes    uint64
	UpdatedAt     int64
	Finalized     bool
}

func NewResultRecord(stationId string) *ResultRecord {
	return &ResultRecord{
		StationId:  stationId,
		Candidates: structures.NewOrderedMap[string, uint64](),
	}
}

func (record *ResultRecord) Slot(role Role) (*SignatureSlot, error) {
	switch role {
	case RoleSubmitter:
		return &record.Submitter, nil
	case RoleAgent:
		return &record.Agent, nil
	case RoleObserver:
		return &record.Observer, nil
	default:
		return nil, fmt.Errorf("no signature slot for %s", role)
	}
}

func (record *ResultRecord) AllSigned() bool {
	return record.Submitter.Signed && record.Agent.Signed && record.Observer.Signed
}

// SignatureCount is the k of the derived PartiallySigned{k} state.
func (record *ResultRecord) SignatureCount() int {
	count := 0
	for _, slot := range []SignatureSlot{record.Submitter, record.Agent, record.Observer} {
		if slot.Signed {
			count++
		}
	}
	return count
}

func (record *ResultRecord) Status() SignatureStatus {
	return SignatureStatus{
		SubmitterSigned: record.Submitter.Signed,
		AgentSigned:     record.Agent.Signed,
		ObserverSigned:  record.Observer.Signed,
		Finalized:       record.Finalized,
	}
}

func (record *ResultRecord) Details() ResultDetails {
	return ResultDetails{
		StationId:     record.StationId,
		ElectionId:    record.ElectionId,
		ResultHash:    record.ResultHash,
		ResultDataUrl: record.ResultDataUrl,
		TotalVotes:    record.TotalVotes,
		UpdatedAt:     record.UpdatedAt,
		Finalized:     record.Finalized,
	}
}

func (record *ResultRecord) Clone() *ResultRecord {
	clone := *record
	if record.Candidates != nil {
		clone.Candidates = record.Candidates.Clone()
	}
	return &clone
}
