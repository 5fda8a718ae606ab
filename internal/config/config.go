package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	RegistryConfig RegistryConfig `yaml:"registry"`
	DatabaseConfig DatabaseConfig `yaml:"database"`
	AuditConfig    AuditConfig    `yaml:"audit"`
}

var GlobalConfig *Config = nil

func InitializeGlobalConfig(path string) error {
	if GlobalConfig != nil {
		return nil
	}

	var err error
	GlobalConfig, err = LoadConfigFile(path)

	return err
}

func LoadConfigFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	config, err := LoadConfig(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	return config, nil
}

func LoadConfig(content []byte) (*Config, error) {
	config := &Config{
		DatabaseConfig: DatabaseConfig{File: defaultDatabaseFile},
	}

	if err := yaml.UnmarshalStrict(content, config); err != nil {
		return nil, err
	}

	return config, nil
}
