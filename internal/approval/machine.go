package approval

import (
	"log"
	"time"

	audit "github.com/nivschuman/ElectionResults/internal/audit"
	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	metrics "github.com/nivschuman/ElectionResults/internal/metrics"
	models "github.com/nivschuman/ElectionResults/internal/models"
	structures "github.com/nivschuman/ElectionResults/internal/structures"
)

// Clock returns unix nano timestamps.
type Clock func() int64

func SystemClock() int64 {
	return time.Now().UnixNano()
}

// Machine applies submit and sign transitions to result records.
// Transitions on one station are serialized; transitions on different stations only share the database.
type Machine struct {
	repos    *repositories.Repositories
	auditLog *audit.Log
	locks    *structures.KeyedMutex
	clock    Clock
}

type transitionFunc func(txRepos *repositories.Repositories, recorder *audit.Recorder, now int64) (*models.ResultRecord, error)

func NewMachine(repos *repositories.Repositories, auditLog *audit.Log) *Machine {
	return &Machine{
		repos:    repos,
		auditLog: auditLog,
		locks:    structures.NewKeyedMutex(),
		clock:    SystemClock,
	}
}

func (machine *Machine) SetClock(clock Clock) {
	machine.clock = clock
}

// transition runs fn under the station lock in one database transaction. On error nothing is
// committed and no event is published.
func (machine *Machine) transition(action string, stationId string, fn transitionFunc) (*models.ResultRecord, error) {
	start := time.Now()

	unlock := machine.locks.Lock(stationId)
	defer unlock()

	var (
		record *models.ResultRecord
		events []*models.AuditEvent
	)

	err := machine.repos.Transaction(func(txRepos *repositories.Repositories) error {
		recorder := audit.NewRecorder(txRepos.Audit)

		var err error
		record, err = fn(txRepos, recorder, machine.clock())
		if err != nil {
			return err
		}

		events = recorder.Events()
		return nil
	})

	metrics.TransitionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	metrics.TransitionsTotal.WithLabelValues(action, metrics.Outcome(err)).Inc()

	if err != nil {
		log.Printf("|Approval| Rejected %s for station %s: %v", action, stationId, err)
		return nil, err
	}

	machine.auditLog.Publish(events)

	if record.Finalized && containsFinalized(events) {
		metrics.FinalizedTotal.Inc()
		log.Printf("|Approval| Station %s finalized", stationId)
	}

	log.Printf("|Approval| Applied %s for station %s, %d of 3 signatures", action, stationId, record.SignatureCount())
	return record, nil
}

// finalizeIfComplete flips the record to finalized in the same transition that completed the
// third signature. It does nothing on a finalized or incomplete record.
func finalizeIfComplete(record *models.ResultRecord, recorder *audit.Recorder, actorId string, now int64) error {
	if record.Finalized || !record.AllSigned() {
		return nil
	}

	record.Finalized = true
	record.UpdatedAt = now

	_, err := recorder.Record(models.EventFinalized, record.StationId, actorId, 0, now, nil)
	return err
}

func containsFinalized(events []*models.AuditEvent) bool {
	for _, event := range events {
		if event.Kind == models.EventFinalized {
			return true
		}
	}
	return false
}
