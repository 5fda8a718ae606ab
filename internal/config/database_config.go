package config

import (
	"gopkg.in/yaml.v2"
	"gorm.io/gorm/logger"

	db_config "github.com/nivschuman/ElectionResults/internal/database/config"
)

const defaultDatabaseFile = "databases/results.db"

type DatabaseConfig struct {
	File     string          `yaml:"file"`
	LogLevel logger.LogLevel `yaml:"log-level"`
}

func (d *DatabaseConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		File     string `yaml:"file"`
		LogLevel string `yaml:"log-level"`
	}

	if err := unmarshal(&raw); err != nil {
		return err
	}

	logLevel, err := db_config.ParseLogLevel(raw.LogLevel)
	if err != nil {
		return &yaml.TypeError{Errors: []string{err.Error()}}
	}

	d.File = raw.File
	if d.File == "" {
		d.File = defaultDatabaseFile
	}
	d.LogLevel = logLevel

	return nil
}
