package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	db_models "github.com/nivschuman/ElectionResults/internal/database/models"
	mapping "github.com/nivschuman/ElectionResults/internal/mapping"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

type ResultRepository interface {
	RecordExists(stationId string) (bool, error)
	GetRecord(stationId string) (*models.ResultRecord, error)
	InsertRecord(record *models.ResultRecord) error
	UpdateRecord(record *models.ResultRecord, replaceCandidates bool) error
	GetRecords() ([]*models.ResultRecord, error)
	GetStationCount() (int64, error)
	GetStationsPaged(offset int, limit int) ([]string, error)
}

type ResultRepositoryImpl struct {
	db *gorm.DB
}

func NewResultRepositoryImpl(db *gorm.DB) *ResultRepositoryImpl {
	return &ResultRepositoryImpl{db: db}
}

func (repo *ResultRepositoryImpl) RecordExists(stationId string) (bool, error) {
	var count int64
	err := repo.db.Model(&db_models.ResultRecordDB{}).
		Where("station_id = ?", stationId).
		Count(&count).Error

	if err != nil {
		return false, errors.Wrapf(err, "failed to check record %s", stationId)
	}

	return count > 0, nil
}

// GetRecord reads the record row and its candidate votes inside one transaction so they come from the same revision.
func (repo *ResultRepositoryImpl) GetRecord(stationId string) (*models.ResultRecord, error) {
	var record *models.ResultRecord
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var recordDB db_models.ResultRecordDB
		result := tx.Where("station_id = ?", stationId).First(&recordDB)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Kind: models.NotFoundRecord, Key: stationId}
		}

		if result.Error != nil {
			return errors.Wrapf(result.Error, "failed to get record %s", stationId)
		}

		candidateVotesDB, err := getCandidateVotes(tx, stationId)
		if err != nil {
			return err
		}

		record = mapping.ResultRecordDBToResultRecord(&recordDB, candidateVotesDB)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// InsertRecord creates the record, its candidate votes and appends the station to the station index.
func (repo *ResultRepositoryImpl) InsertRecord(record *models.ResultRecord) error {
	station := &db_models.StationDB{StationId: record.StationId}
	if err := repo.db.Create(station).Error; err != nil {
		return errors.Wrapf(err, "failed to index station %s", record.StationId)
	}

	recordDB := mapping.ResultRecordToResultRecordDB(record)
	if err := repo.db.Create(recordDB).Error; err != nil {
		return errors.Wrapf(err, "failed to insert record %s", record.StationId)
	}

	return repo.insertCandidateVotes(record)
}

func (repo *ResultRepositoryImpl) UpdateRecord(record *models.ResultRecord, replaceCandidates bool) error {
	recordDB := mapping.ResultRecordToResultRecordDB(record)
	result := repo.db.Save(recordDB)

	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to update record %s", record.StationId)
	}

	if !replaceCandidates {
		return nil
	}

	err := repo.db.Where("station_id = ?", record.StationId).Delete(&db_models.CandidateVoteDB{}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to clear candidates of %s", record.StationId)
	}

	return repo.insertCandidateVotes(record)
}

func (repo *ResultRepositoryImpl) GetRecords() ([]*models.ResultRecord, error) {
	var records []*models.ResultRecord
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var recordsDB []*db_models.ResultRecordDB
		err := tx.Table("result_records").
			Select("result_records.*").
			Joins("JOIN stations ON stations.station_id = result_records.station_id").
			Order("stations.position").
			Find(&recordsDB).Error

		if err != nil {
			return errors.Wrap(err, "failed to get records")
		}

		records = make([]*models.ResultRecord, len(recordsDB))
		for i, recordDB := range recordsDB {
			candidateVotesDB, err := getCandidateVotes(tx, recordDB.StationId)
			if err != nil {
				return err
			}
			records[i] = mapping.ResultRecordDBToResultRecord(recordDB, candidateVotesDB)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (repo *ResultRepositoryImpl) GetStationCount() (int64, error) {
	var count int64
	if err := repo.db.Model(&db_models.StationDB{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stations")
	}

	return count, nil
}

// GetStationsPaged returns station ids in submission order. A negative limit returns all of them.
func (repo *ResultRepositoryImpl) GetStationsPaged(offset int, limit int) ([]string, error) {
	var stationIds []string
	err := repo.db.Model(&db_models.StationDB{}).
		Order("position").
		Offset(offset).
		Limit(limit).
		Pluck("station_id", &stationIds).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to get stations")
	}

	return stationIds, nil
}

func getCandidateVotes(db *gorm.DB, stationId string) ([]*db_models.CandidateVoteDB, error) {
	var candidateVotesDB []*db_models.CandidateVoteDB
	err := db.Where("station_id = ?", stationId).
		Order("position").
		Find(&candidateVotesDB).Error

	if err != nil {
		return nil, errors.Wrapf(err, "failed to get candidates of %s", stationId)
	}

	return candidateVotesDB, nil
}

func (repo *ResultRepositoryImpl) insertCandidateVotes(record *models.ResultRecord) error {
	if record.Candidates.Length() == 0 {
		return nil
	}

	candidateVotesDB := mapping.CandidatesToCandidateVotesDB(record.StationId, record.Candidates)
	err := repo.db.Omit(clause.Associations).Create(candidateVotesDB).Error

	return errors.Wrapf(err, "failed to insert candidates of %s", record.StationId)
}
