package db_models

import (
	types "github.com/nivschuman/ElectionResults/internal/database/types"
)

type StationDB struct {
	Position  uint64 `gorm:"primaryKey;autoIncrement;column:position"`
	StationId string `gorm:"column:station_id;not null;uniqueIndex"`
}

type ResultRecordDB struct {
	StationId     string       `gorm:"primaryKey;column:station_id"`
	ElectionId    string       `gorm:"column:election_id;not null"`
	ResultHash    string       `gorm:"column:result_hash;not null"`
	ResultDataUrl string       `gorm:"column:result_data_url;not null"`
	TotalVotes    types.Uint64 `gorm:"column:total_votes;not null"`

	SubmitterSigned      bool   `gorm:"column:submitter_signed;not null"`
	SubmitterId          string `gorm:"column:submitter_id"`
	SubmitterAffiliation string `gorm:"column:submitter_affiliation"`
	SubmitterSignedAt    int64  `gorm:"column:submitter_signed_at"`

	AgentSigned      bool   `gorm:"column:agent_signed;not null"`
	AgentId          string `gorm:"column:agent_id"`
	AgentAffiliation string `gorm:"column:agent_affiliation"`
	AgentSignedAt    int64  `gorm:"column:agent_signed_at"`

	ObserverSigned      bool   `gorm:"column:observer_signed;not null"`
	ObserverId          string `gorm:"column:observer_id"`
	ObserverAffiliation string `gorm:"column:observer_affiliation"`
	ObserverSignedAt    int64  `gorm:"column:observer_signed_at"`

	LastUpdatedAt int64 `gorm:"column:last_updated_at;not null"`
	Finalized     bool  `gorm:"column:finalized;not null"`
}

type CandidateVoteDB struct {
	StationId   string       `gorm:"primaryKey;column:station_id"`
	CandidateId string       `gorm:"primaryKey;column:candidate_id"`
	Position    uint32       `gorm:"column:position;not null"`
	Votes       types.Uint64 `gorm:"column:votes;not null"`

	Record ResultRecordDB `gorm:"foreignKey:StationId;references:StationId;constraint:OnDelete:RESTRICT"`
}

func (StationDB) TableName() string {
	return "stations"
}

func (ResultRecordDB) TableName() string {
	return "result_records"
}

func (CandidateVoteDB) TableName() string {
	return "candidate_votes"
}
