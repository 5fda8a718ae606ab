package approval

import (
	models "github.com/nivschuman/ElectionResults/internal/models"
)

func (machine *Machine) GetRecord(stationId string) (*models.ResultRecord, error) {
	return machine.repos.Results.GetRecord(stationId)
}

func (machine *Machine) GetSignatureStatus(stationId string) (models.SignatureStatus, error) {
	record, err := machine.repos.Results.GetRecord(stationId)
	if err != nil {
		return models.SignatureStatus{}, err
	}

	return record.Status(), nil
}

func (machine *Machine) GetSignerDetails(stationId string, role models.Role) (models.SignatureSlot, error) {
	record, err := machine.repos.Results.GetRecord(stationId)
	if err != nil {
		return models.SignatureSlot{}, err
	}

	slot, err := record.Slot(role)
	if err != nil {
		return models.SignatureSlot{}, err
	}

	return *slot, nil
}

func (machine *Machine) GetCandidates(stationId string) ([]string, error) {
	record, err := machine.repos.Results.GetRecord(stationId)
	if err != nil {
		return nil, err
	}

	return record.Candidates.Keys(), nil
}

func (machine *Machine) GetCandidateVotes(stationId string, candidateId string) (uint64, error) {
	record, err := machine.repos.Results.GetRecord(stationId)
	if err != nil {
		return 0, err
	}

	votes, exists := record.Candidates.Get(candidateId)
	if !exists {
		return 0, &models.NotFoundError{Kind: models.NotFoundCandidate, Key: stationId + "/" + candidateId}
	}

	return votes, nil
}

func (machine *Machine) GetElectionResultDetails(stationId string) (models.ResultDetails, error) {
	record, err := machine.repos.Results.GetRecord(stationId)
	if err != nil {
		return models.ResultDetails{}, err
	}

	return record.Details(), nil
}

func (machine *Machine) GetStationCount() (int64, error) {
	return machine.repos.Results.GetStationCount()
}

// GetStations lists station ids in first-submission order. A negative limit returns all of them.
func (machine *Machine) GetStations(offset int, limit int) ([]string, error) {
	return machine.repos.Results.GetStationsPaged(offset, limit)
}
