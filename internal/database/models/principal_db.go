package db_models

import "time"

type PrincipalDB struct {
	Id           string     `gorm:"primaryKey;column:id"`
	NationalId   string     `gorm:"column:national_id;not null"`
	Role         uint8      `gorm:"column:role;not null"`
	StationId    string     `gorm:"column:station_id;not null;index"`
	Party        string     `gorm:"column:party"`
	Organization string     `gorm:"column:organization"`
	Active       bool       `gorm:"column:active;not null"`
	CreatedAt    *time.Time `gorm:"column:created_at;autoCreateTime"` // Timestamp when the principal was first registered
	UpdatedAt    *time.Time `gorm:"column:updated_at;autoUpdateTime"` // Timestamp of the last register or deactivate
}

func (PrincipalDB) TableName() string {
	return "principals"
}
