package approval

import (
	audit "github.com/nivschuman/ElectionResults/internal/audit"
	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	models "github.com/nivschuman/ElectionResults/internal/models"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
	structures "github.com/nivschuman/ElectionResults/internal/structures"
)

const (
	actionSubmit       = "submit"
	actionSignAgent    = "sign-agent"
	actionSignObserver = "sign-observer"
)

type SubmitRequest struct {
	StationId     string
	ElectionId    string
	ResultHash    string
	ResultDataUrl string
	TotalVotes    uint64
	CandidateIds  []string
	Votes         []uint64
}

func (request *SubmitRequest) candidates() (*structures.OrderedMap[string, uint64], error) {
	if len(request.CandidateIds) != len(request.Votes) {
		return nil, &models.LengthMismatchError{Candidates: len(request.CandidateIds), Votes: len(request.Votes)}
	}

	candidates := structures.NewOrderedMap[string, uint64]()
	for i, candidateId := range request.CandidateIds {
		if candidates.ContainsKey(candidateId) {
			return nil, &models.DuplicateCandidateError{CandidateId: candidateId}
		}
		candidates.Put(candidateId, request.Votes[i])
	}

	return candidates, nil
}

func (request *SubmitRequest) payload() *models.SubmittedPayload {
	return &models.SubmittedPayload{
		ElectionId:    request.ElectionId,
		ResultHash:    request.ResultHash,
		ResultDataUrl: request.ResultDataUrl,
		TotalVotes:    request.TotalVotes,
		CandidateIds:  request.CandidateIds,
		Votes:         request.Votes,
	}
}

// Submit creates the station's record or revises it before finalization. Every submission
// replaces the candidate set wholesale and re-signs the submitter slot for the caller.
// TotalVotes is stored as declared and never reconciled against the candidate votes.
func (machine *Machine) Submit(callerId string, request *SubmitRequest) (*models.ResultRecord, error) {
	candidates, err := request.candidates()
	if err != nil {
		return nil, err
	}

	return machine.transition(actionSubmit, request.StationId, func(txRepos *repositories.Repositories, recorder *audit.Recorder, now int64) (*models.ResultRecord, error) {
		principal, err := registry.Authorize(txRepos.Principals, callerId, models.RoleSubmitter, request.StationId, actionSubmit)
		if err != nil {
			return nil, err
		}

		exists, err := txRepos.Results.RecordExists(request.StationId)
		if err != nil {
			return nil, err
		}

		record := models.NewResultRecord(request.StationId)
		if exists {
			record, err = txRepos.Results.GetRecord(request.StationId)
			if err != nil {
				return nil, err
			}

			if record.Finalized {
				return nil, &models.AlreadyFinalizedError{StationId: request.StationId}
			}
		}

		record.ElectionId = request.ElectionId
		record.ResultHash = request.ResultHash
		record.ResultDataUrl = request.ResultDataUrl
		record.TotalVotes = request.TotalVotes
		record.Candidates = candidates
		record.Submitter = models.SignatureSlot{
			Signed:      true,
			SignerId:    principal.Id,
			Affiliation: principal.Affiliation(),
			SignedAt:    now,
		}
		record.UpdatedAt = now

		if _, err := recorder.Record(models.EventSubmitted, request.StationId, principal.Id, 0, now, request.payload()); err != nil {
			return nil, err
		}

		signed := &models.SignedPayload{Affiliation: record.Submitter.Affiliation}
		if _, err := recorder.Record(models.EventSigned, request.StationId, principal.Id, models.RoleSubmitter, now, signed); err != nil {
			return nil, err
		}

		if err := finalizeIfComplete(record, recorder, principal.Id, now); err != nil {
			return nil, err
		}

		if exists {
			err = txRepos.Results.UpdateRecord(record, true)
		} else {
			err = txRepos.Results.InsertRecord(record)
		}

		if err != nil {
			return nil, err
		}

		return record, nil
	})
}
