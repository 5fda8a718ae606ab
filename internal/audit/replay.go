package audit

import (
	"fmt"
	"reflect"

	models "github.com/nivschuman/ElectionResults/internal/models"
	structures "github.com/nivschuman/ElectionResults/internal/structures"
)

// Replay rebuilds every result record from an empty state. The returned station ids are in first-submission order.
func Replay(events []*models.AuditEvent) (map[string]*models.ResultRecord, []string, error) {
	records := make(map[string]*models.ResultRecord)
	stations := make([]string, 0)

	for _, event := range events {
		record, exists := records[event.StationId]

		if exists && record.Finalized {
			return nil, nil, replayError(event, "station is already finalized")
		}

		switch event.Kind {
		case models.EventSubmitted:
			if !exists {
				record = models.NewResultRecord(event.StationId)
				records[event.StationId] = record
				stations = append(stations, event.StationId)
			}

			if err := applySubmitted(record, event); err != nil {
				return nil, nil, err
			}
		case models.EventSigned:
			if !exists {
				return nil, nil, replayError(event, "signature before submission")
			}

			if err := applySigned(record, event); err != nil {
				return nil, nil, err
			}
		case models.EventFinalized:
			if !exists {
				return nil, nil, replayError(event, "finalization before submission")
			}

			if !record.AllSigned() {
				return nil, nil, replayError(event, "finalization without three signatures")
			}

			record.Finalized = true
			record.UpdatedAt = event.Timestamp
		default:
			return nil, nil, replayError(event, fmt.Sprintf("unknown event kind %s", event.Kind))
		}
	}

	return records, stations, nil
}

// Diff lists the stations whose stored record differs from the replayed one, including stations present on one side only.
func Diff(replayed map[string]*models.ResultRecord, stored []*models.ResultRecord) []string {
	mismatched := make([]string, 0)
	seen := make(map[string]bool)

	for _, record := range stored {
		seen[record.StationId] = true
		if !reflect.DeepEqual(replayed[record.StationId], record) {
			mismatched = append(mismatched, record.StationId)
		}
	}

	for stationId := range replayed {
		if !seen[stationId] {
			mismatched = append(mismatched, stationId)
		}
	}

	return mismatched
}

func applySubmitted(record *models.ResultRecord, event *models.AuditEvent) error {
	payload, err := event.SubmittedPayload()
	if err != nil {
		return replayError(event, err.Error())
	}

	if len(payload.CandidateIds) != len(payload.Votes) {
		return replayError(event, "candidate and vote counts differ")
	}

	record.ElectionId = payload.ElectionId
	record.ResultHash = payload.ResultHash
	record.ResultDataUrl = payload.ResultDataUrl
	record.TotalVotes = payload.TotalVotes
	record.Candidates = structures.NewOrderedMap[string, uint64]()
	for i, candidateId := range payload.CandidateIds {
		record.Candidates.Put(candidateId, payload.Votes[i])
	}
	record.UpdatedAt = event.Timestamp

	return nil
}

func applySigned(record *models.ResultRecord, event *models.AuditEvent) error {
	payload, err := event.SignedPayload()
	if err != nil {
		return replayError(event, err.Error())
	}

	slot, err := record.Slot(event.Role)
	if err != nil {
		return replayError(event, err.Error())
	}

	*slot = models.SignatureSlot{
		Signed:      true,
		SignerId:    event.ActorId,
		Affiliation: payload.Affiliation,
		SignedAt:    event.Timestamp,
	}
	record.UpdatedAt = event.Timestamp

	return nil
}

func replayError(event *models.AuditEvent, reason string) error {
	return &ChainError{Sequence: event.Sequence, Reason: "replay: " + reason}
}
