package db_connection

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	db_config "github.com/nivschuman/ElectionResults/internal/database/config"
	models "github.com/nivschuman/ElectionResults/internal/database/models"
)

const InMemory = ":memory:"

var modelsToMigrate = []any{
	&models.PrincipalDB{},
	&models.StationDB{},
	&models.ResultRecordDB{},
	&models.CandidateVoteDB{},
	&models.AuditEventDB{},
}

var GlobalDB *gorm.DB = nil

func InitializeGlobalDB(dbFile string, logLevel logger.LogLevel) error {
	if GlobalDB != nil {
		return nil
	}

	var err error
	GlobalDB, err = OpenDatabase(dbFile, logLevel)

	return err
}

// OpenDatabase opens and migrates the sqlite store. The pool is capped at one connection
// so an in-memory database is shared and writes never race each other.
func OpenDatabase(dbFile string, logLevel logger.LogLevel) (*gorm.DB, error) {
	if dbFile != InMemory {
		dir := filepath.Dir(dbFile)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "failed to create databases directory")
			}
			log.Printf("|Database| Created directory '%s'", dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbFile), db_config.GetGormConfig(logLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", dbFile)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(modelsToMigrate...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}

func ResetDatabase(db *gorm.DB) error {
	err := db.Migrator().DropTable(modelsToMigrate...)

	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(db.AutoMigrate(modelsToMigrate...))
}

func PingDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(sqlDB.Ping())
}

func CloseDatabaseConnection(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	if db == GlobalDB {
		GlobalDB = nil
	}

	return errors.WithStack(sqlDB.Close())
}
