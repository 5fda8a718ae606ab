package db_models

type AuditEventDB struct {
	Sequence  uint64 `gorm:"primaryKey;autoIncrement:false;column:sequence"`
	Id        string `gorm:"column:id;not null;uniqueIndex"`
	Kind      uint8  `gorm:"column:kind;not null"`
	StationId string `gorm:"column:station_id;not null;index"`
	ActorId   string `gorm:"column:actor_id;not null"`
	Role      uint8  `gorm:"column:role;not null"`
	Timestamp int64  `gorm:"column:timestamp;not null"`
	Payload   []byte `gorm:"column:payload"`
	PrevHash  []byte `gorm:"column:prev_hash;not null"`
	Hash      []byte `gorm:"column:hash;not null;uniqueIndex"`
}

func (AuditEventDB) TableName() string {
	return "audit_events"
}
