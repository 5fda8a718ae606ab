package health

import (
	"time"

	"gorm.io/gorm"

	audit "github.com/nivschuman/ElectionResults/internal/audit"
	db "github.com/nivschuman/ElectionResults/internal/database/connection"
)

const (
	StatusAlive     = "alive"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type Check struct {
	Name  string `json:"name"`
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type Status struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Checks    []Check `json:"checks,omitempty"`
	Events    int64   `json:"events,omitempty"`
}

func (status *Status) Healthy() bool {
	return status.Status != StatusUnhealthy
}

func Liveness() *Status {
	return &Status{
		Status:    StatusAlive,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Readiness pings the database, walks the audit chain and counts its events. Any failure makes the node unhealthy.
func Readiness(database *gorm.DB, auditLog *audit.Log) *Status {
	status := &Status{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status.add("database", db.PingDatabase(database))

	if auditLog != nil {
		status.add("audit_chain", auditLog.Verify())

		count, err := auditLog.EventCount()
		status.add("audit_count", err)
		if err == nil {
			status.Events = count
		}
	}

	return status
}

func (status *Status) add(name string, err error) {
	check := Check{Name: name, Ok: err == nil}
	if err != nil {
		check.Error = err.Error()
		status.Status = StatusUnhealthy
	}
	status.Checks = append(status.Checks, check)
}
