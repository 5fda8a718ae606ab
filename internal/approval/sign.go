package approval

import (
	audit "github.com/nivschuman/ElectionResults/internal/audit"
	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	models "github.com/nivschuman/ElectionResults/internal/models"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
)

func (machine *Machine) SignAsAgent(callerId string, stationId string) (*models.ResultRecord, error) {
	return machine.sign(callerId, stationId, models.RoleAgent, actionSignAgent)
}

func (machine *Machine) SignAsObserver(callerId string, stationId string) (*models.ResultRecord, error) {
	return machine.sign(callerId, stationId, models.RoleObserver, actionSignObserver)
}

// sign checks record existence, then finalization, then the caller's authority.
func (machine *Machine) sign(callerId string, stationId string, role models.Role, action string) (*models.ResultRecord, error) {
	return machine.transition(action, stationId, func(txRepos *repositories.Repositories, recorder *audit.Recorder, now int64) (*models.ResultRecord, error) {
		record, err := txRepos.Results.GetRecord(stationId)
		if err != nil {
			return nil, err
		}

		if record.Finalized {
			return nil, &models.AlreadyFinalizedError{StationId: stationId}
		}

		principal, err := registry.Authorize(txRepos.Principals, callerId, role, stationId, action)
		if err != nil {
			return nil, err
		}

		slot, err := record.Slot(role)
		if err != nil {
			return nil, err
		}

		*slot = models.SignatureSlot{
			Signed:      true,
			SignerId:    principal.Id,
			Affiliation: principal.Affiliation(),
			SignedAt:    now,
		}
		record.UpdatedAt = now

		signed := &models.SignedPayload{Affiliation: slot.Affiliation}
		if _, err := recorder.Record(models.EventSigned, stationId, principal.Id, role, now, signed); err != nil {
			return nil, err
		}

		if err := finalizeIfComplete(record, recorder, principal.Id, now); err != nil {
			return nil, err
		}

		if err := txRepos.Results.UpdateRecord(record, false); err != nil {
			return nil, err
		}

		return record, nil
	})
}
