package config

type AuditConfig struct {
	VerifyOnStart bool `yaml:"verify-on-start"` // Walk the whole hash chain before serving commands
}
