package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	db_models "github.com/nivschuman/ElectionResults/internal/database/models"
	mapping "github.com/nivschuman/ElectionResults/internal/mapping"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

// AuditRepository never updates or deletes events.
type AuditRepository interface {
	GetLastEvent() (*models.AuditEvent, error)
	InsertEvent(event *models.AuditEvent) error
	GetEvents(afterSequence uint64, limit int) ([]*models.AuditEvent, error)
	GetStationEvents(stationId string) ([]*models.AuditEvent, error)
	GetEventCount() (int64, error)
}

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepositoryImpl(db *gorm.DB) *AuditRepositoryImpl {
	return &AuditRepositoryImpl{db: db}
}

// GetLastEvent returns nil when the log is empty.
func (repo *AuditRepositoryImpl) GetLastEvent() (*models.AuditEvent, error) {
	var eventsDB []*db_models.AuditEventDB
	err := repo.db.Order("sequence DESC").Limit(1).Find(&eventsDB).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to get last audit event")
	}

	if len(eventsDB) == 0 {
		return nil, nil
	}

	return mapping.AuditEventDBToAuditEvent(eventsDB[0]), nil
}

func (repo *AuditRepositoryImpl) InsertEvent(event *models.AuditEvent) error {
	eventDB := mapping.AuditEventToAuditEventDB(event)
	err := repo.db.Create(eventDB).Error

	return errors.Wrapf(err, "failed to insert audit event %d", event.Sequence)
}

// GetEvents returns events with a sequence above afterSequence in log order. A negative limit returns all of them.
func (repo *AuditRepositoryImpl) GetEvents(afterSequence uint64, limit int) ([]*models.AuditEvent, error) {
	var eventsDB []*db_models.AuditEventDB
	err := repo.db.Where("sequence > ?", afterSequence).
		Order("sequence").
		Limit(limit).
		Find(&eventsDB).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to get audit events")
	}

	return toAuditEvents(eventsDB), nil
}

func (repo *AuditRepositoryImpl) GetStationEvents(stationId string) ([]*models.AuditEvent, error) {
	var eventsDB []*db_models.AuditEventDB
	err := repo.db.Where("station_id = ?", stationId).
		Order("sequence").
		Find(&eventsDB).Error

	if err != nil {
		return nil, errors.Wrapf(err, "failed to get audit events of %s", stationId)
	}

	return toAuditEvents(eventsDB), nil
}

func (repo *AuditRepositoryImpl) GetEventCount() (int64, error) {
	var count int64
	if err := repo.db.Model(&db_models.AuditEventDB{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count audit events")
	}

	return count, nil
}

func toAuditEvents(eventsDB []*db_models.AuditEventDB) []*models.AuditEvent {
	events := make([]*models.AuditEvent, len(eventsDB))
	for i, eventDB := range eventsDB {
		events[i] = mapping.AuditEventDBToAuditEvent(eventDB)
	}
	return events
}
