package mapping

import (
	"slices"

	db_models "github.com/nivschuman/ElectionResults/internal/database/models"
	types "github.com/nivschuman/ElectionResults/internal/database/types"
	models "github.com/nivschuman/ElectionResults/internal/models"
	structures "github.com/nivschuman/ElectionResults/internal/structures"
)

func PrincipalToPrincipalDB(principal *models.Principal) *db_models.PrincipalDB {
	return &db_models.PrincipalDB{
		Id:           principal.Id,
		NationalId:   principal.NationalId,
		Role:         uint8(principal.Role),
		StationId:    principal.StationId,
		Party:        principal.Party,
		Organization: principal.Organization,
		Active:       principal.Active,
	}
}

func PrincipalDBToPrincipal(principalDB *db_models.PrincipalDB) *models.Principal {
	return &models.Principal{
		Id:           principalDB.Id,
		NationalId:   principalDB.NationalId,
		Role:         models.Role(principalDB.Role),
		StationId:    principalDB.StationId,
		Party:        principalDB.Party,
		Organization: principalDB.Organization,
		Active:       principalDB.Active,
	}
}

func ResultRecordToResultRecordDB(record *models.ResultRecord) *db_models.ResultRecordDB {
	return &db_models.ResultRecordDB{
		StationId:     record.StationId,
		ElectionId:    record.ElectionId,
		ResultHash:    record.ResultHash,
		ResultDataUrl: record.ResultDataUrl,
		TotalVotes:    types.Uint64(record.TotalVotes),

		SubmitterSigned:      record.Submitter.Signed,
		SubmitterId:          record.Submitter.SignerId,
		SubmitterAffiliation: record.Submitter.Affiliation,
		SubmitterSignedAt:    record.Submitter.SignedAt,

		AgentSigned:      record.Agent.Signed,
		AgentId:          record.Agent.SignerId,
		AgentAffiliation: record.Agent.Affiliation,
		AgentSignedAt:    record.Agent.SignedAt,

		ObserverSigned:      record.Observer.Signed,
		ObserverId:          record.Observer.SignerId,
		ObserverAffiliation: record.Observer.Affiliation,
		ObserverSignedAt:    record.Observer.SignedAt,

		LastUpdatedAt: record.UpdatedAt,
		Finalized:     record.Finalized,
	}
}

func CandidatesToCandidateVotesDB(stationId string, candidates *structures.OrderedMap[string, uint64]) []*db_models.CandidateVoteDB {
	keys := candidates.Keys()
	votes := candidates.Values()

	candidateVotesDB := make([]*db_models.CandidateVoteDB, len(keys))
	for i, candidateId := range keys {
		candidateVotesDB[i] = &db_models.CandidateVoteDB{
			StationId:   stationId,
			CandidateId: candidateId,
			Position:    uint32(i),
			Votes:       types.Uint64(votes[i]),
		}
	}

	return candidateVotesDB
}

// ResultRecordDBToResultRecord expects candidateVotesDB ordered by position.
func ResultRecordDBToResultRecord(recordDB *db_models.ResultRecordDB, candidateVotesDB []*db_models.CandidateVoteDB) *models.ResultRecord {
	record := models.NewResultRecord(recordDB.StationId)

	record.ElectionId = recordDB.ElectionId
	record.ResultHash = recordDB.ResultHash
	record.ResultDataUrl = recordDB.ResultDataUrl
	record.TotalVotes = uint64(recordDB.TotalVotes)
	record.Submitter = models.SignatureSlot{
		Signed:      recordDB.SubmitterSigned,
		SignerId:    recordDB.SubmitterId,
		Affiliation: recordDB.SubmitterAffiliation,
		SignedAt:    recordDB.SubmitterSignedAt,
	}
	record.Agent = models.SignatureSlot{
		Signed:      recordDB.AgentSigned,
		SignerId:    recordDB.AgentId,
		Affiliation: recordDB.AgentAffiliation,
		SignedAt:    recordDB.AgentSignedAt,
	}
	record.Observer = models.SignatureSlot{
		Signed:      recordDB.ObserverSigned,
		SignerId:    recordDB.ObserverId,
		Affiliation: recordDB.ObserverAffiliation,
		SignedAt:    recordDB.ObserverSignedAt,
	}
	record.UpdatedAt = recordDB.LastUpdatedAt
	record.Finalized = recordDB.Finalized

	for _, candidateVoteDB := range candidateVotesDB {
		record.Candidates.Put(candidateVoteDB.CandidateId, uint64(candidateVoteDB.Votes))
	}

	return record
}

func AuditEventToAuditEventDB(event *models.AuditEvent) *db_models.AuditEventDB {
	return &db_models.AuditEventDB{
		Sequence:  event.Sequence,
		Id:        event.Id,
		Kind:      uint8(event.Kind),
		StationId: event.StationId,
		ActorId:   event.ActorId,
		Role:      uint8(event.Role),
		Timestamp: event.Timestamp,
		Payload:   slices.Clone(event.Payload),
		PrevHash:  slices.Clone(event.PrevHash),
		Hash:      slices.Clone(event.Hash),
	}
}

func AuditEventDBToAuditEvent(eventDB *db_models.AuditEventDB) *models.AuditEvent {
	return &models.AuditEvent{
		Sequence:  eventDB.Sequence,
		Id:        eventDB.Id,
		Kind:      models.EventKind(eventDB.Kind),
		StationId: eventDB.StationId,
		ActorId:   eventDB.ActorId,
		Role:      models.Role(eventDB.Role),
		Timestamp: eventDB.Timestamp,
		Payload:   slices.Clone(eventDB.Payload),
		PrevHash:  slices.Clone(eventDB.PrevHash),
		Hash:      slices.Clone(eventDB.Hash),
	}
}
