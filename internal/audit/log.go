package audit

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	metrics "github.com/nivschuman/ElectionResults/internal/metrics"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

type EventHandler func(event *models.AuditEvent)

// Log is the append-only audit trail. Events are written by a Recorder inside the
// transition's transaction and handed to subscribers only after commit, in sequence order.
type Log struct {
	repo repositories.AuditRepository

	handlers      []EventHandler
	handlersMutex sync.RWMutex

	publishMutex sync.Mutex
	pending      map[uint64]*models.AuditEvent
	nextSequence uint64
}

func NewLog(repo repositories.AuditRepository) (*Log, error) {
	last, err := repo.GetLastEvent()
	if err != nil {
		return nil, err
	}

	nextSequence := uint64(1)
	if last != nil {
		nextSequence = last.Sequence + 1
	}

	return &Log{
		repo:         repo,
		handlers:     make([]EventHandler, 0),
		pending:      make(map[uint64]*models.AuditEvent),
		nextSequence: nextSequence,
	}, nil
}

// AddEventHandler subscribes to committed events. Handlers run on the committing goroutine
// and must not call back into mutating operations.
func (auditLog *Log) AddEventHandler(handler EventHandler) {
	auditLog.handlersMutex.Lock()
	defer auditLog.handlersMutex.Unlock()
	auditLog.handlers = append(auditLog.handlers, handler)
}

// Publish delivers committed events. Events that overtook an earlier sequence wait until the gap is filled.
func (auditLog *Log) Publish(events []*models.AuditEvent) {
	auditLog.publishMutex.Lock()
	defer auditLog.publishMutex.Unlock()

	for _, event := range events {
		auditLog.pending[event.Sequence] = event
	}

	auditLog.handlersMutex.RLock()
	defer auditLog.handlersMutex.RUnlock()

	for {
		event, exists := auditLog.pending[auditLog.nextSequence]
		if !exists {
			return
		}

		delete(auditLog.pending, auditLog.nextSequence)
		auditLog.nextSequence++

		metrics.AuditEventsTotal.WithLabelValues(event.Kind.String()).Inc()
		for _, handler := range auditLog.handlers {
			handler(event)
		}
	}
}

func (auditLog *Log) Events(afterSequence uint64, limit int) ([]*models.AuditEvent, error) {
	return auditLog.repo.GetEvents(afterSequence, limit)
}

func (auditLog *Log) StationEvents(stationId string) ([]*models.AuditEvent, error) {
	return auditLog.repo.GetStationEvents(stationId)
}

func (auditLog *Log) EventCount() (int64, error) {
	return auditLog.repo.GetEventCount()
}

// Verify checks the hash chain of the whole stored log.
func (auditLog *Log) Verify() error {
	events, err := auditLog.repo.GetEvents(0, -1)
	if err != nil {
		return err
	}

	return VerifyChain(events)
}

// Recorder appends events for one transition. It must be bound to the transition's transaction.
type Recorder struct {
	repo   repositories.AuditRepository
	last   *models.AuditEvent
	loaded bool
	events []*models.AuditEvent
}

func NewRecorder(repo repositories.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (recorder *Recorder) Record(kind models.EventKind, stationId string, actorId string, role models.Role, timestamp int64, payload any) (*models.AuditEvent, error) {
	if !recorder.loaded {
		last, err := recorder.repo.GetLastEvent()
		if err != nil {
			return nil, err
		}
		recorder.last = last
		recorder.loaded = true
	}

	var payloadBytes []byte
	if payload != nil {
		var err error
		payloadBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s payload", kind)
		}
	}

	event := &models.AuditEvent{
		Sequence:  1,
		Id:        uuid.NewString(),
		Kind:      kind,
		StationId: stationId,
		ActorId:   actorId,
		Role:      role,
		Timestamp: timestamp,
		Payload:   payloadBytes,
		PrevHash:  models.GenesisHash,
	}

	if recorder.last != nil {
		event.Sequence = recorder.last.Sequence + 1
		event.PrevHash = recorder.last.Hash
	}

	event.SetHash()

	if err := recorder.repo.InsertEvent(event); err != nil {
		return nil, err
	}

	recorder.last = event
	recorder.events = append(recorder.events, event)

	log.Printf("|Audit| Recorded %s event %d for station %s by %s", kind, event.Sequence, stationId, actorId)
	return event, nil
}

func (recorder *Recorder) Events() []*models.AuditEvent {
	return recorder.events
}
