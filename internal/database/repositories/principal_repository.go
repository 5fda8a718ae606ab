package repositories

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	db_models "github.com/nivschuman/ElectionResults/internal/database/models"
	mapping "github.com/nivschuman/ElectionResults/internal/mapping"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

type PrincipalRepository interface {
	GetPrincipal(id string) (*models.Principal, error)
	UpsertPrincipal(principal *models.Principal) error
	SetActive(id string, active bool) error
	GetPrincipals() ([]*models.Principal, error)
}

type PrincipalRepositoryImpl struct {
	db *gorm.DB
}

func NewPrincipalRepositoryImpl(db *gorm.DB) *PrincipalRepositoryImpl {
	return &PrincipalRepositoryImpl{db: db}
}

func (repo *PrincipalRepositoryImpl) GetPrincipal(id string) (*models.Principal, error) {
	var principalDB db_models.PrincipalDB
	result := repo.db.Where("id = ?", id).First(&principalDB)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Kind: models.NotFoundPrincipal, Key: id}
	}

	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "failed to get principal %s", id)
	}

	return mapping.PrincipalDBToPrincipal(&principalDB), nil
}

func (repo *PrincipalRepositoryImpl) UpsertPrincipal(principal *models.Principal) error {
	principalDB := mapping.PrincipalToPrincipalDB(principal)

	err := repo.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"national_id", "role", "station_id", "party", "organization", "active", "updated_at"}),
	}).Create(principalDB).Error

	return errors.Wrapf(err, "failed to upsert principal %s", principal.Id)
}

func (repo *PrincipalRepositoryImpl) SetActive(id string, active bool) error {
	result := repo.db.Model(&db_models.PrincipalDB{}).
		Where("id = ?", id).
		Update("active", active)

	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to update principal %s", id)
	}

	if result.RowsAffected == 0 {
		return &models.NotFoundError{Kind: models.NotFoundPrincipal, Key: id}
	}

	return nil
}

func (repo *PrincipalRepositoryImpl) GetPrincipals() ([]*models.Principal, error) {
	var principalsDB []*db_models.PrincipalDB
	if err := repo.db.Order("station_id, role, id").Find(&principalsDB).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get principals")
	}

	principals := make([]*models.Principal, len(principalsDB))
	for i, principalDB := range principalsDB {
		principals[i] = mapping.PrincipalDBToPrincipal(principalDB)
	}

	return principals, nil
}
