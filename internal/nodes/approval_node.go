package nodes

import (
	"log"

	"gorm.io/gorm"

	approval "github.com/nivschuman/ElectionResults/internal/approval"
	audit "github.com/nivschuman/ElectionResults/internal/audit"
	config "github.com/nivschuman/ElectionResults/internal/config"
	db "github.com/nivschuman/ElectionResults/internal/database/connection"
	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	health "github.com/nivschuman/ElectionResults/internal/health"
	models "github.com/nivschuman/ElectionResults/internal/models"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
)

// ApprovalNode wires the registry, the state machine and the audit log over one database.
type ApprovalNode struct {
	db       *gorm.DB
	conf     *config.Config
	Repos    *repositories.Repositories
	Registry *registry.Registry
	AuditLog *audit.Log
	Machine  *approval.Machine
}

func NewApprovalNode(conf *config.Config, database *gorm.DB) (*ApprovalNode, error) {
	repos := repositories.NewRepositories(database)

	auditLog, err := audit.NewLog(repos.Audit)
	if err != nil {
		return nil, err
	}

	node := &ApprovalNode{
		db:       database,
		conf:     conf,
		Repos:    repos,
		Registry: registry.NewRegistry(conf.RegistryConfig.OwnerId(), repos),
		AuditLog: auditLog,
		Machine:  approval.NewMachine(repos, auditLog),
	}
	node.AuditLog.AddEventHandler(node.handleEvent)

	return node, nil
}

func (node *ApprovalNode) Start() error {
	log.Print("|Node| Starting approval node")

	if node.conf.RegistryConfig.OwnerId() == "" {
		log.Print("|Node| No registry owner configured, registry changes will be rejected")
	}

	if !node.conf.AuditConfig.VerifyOnStart {
		return nil
	}

	if err := node.AuditLog.Verify(); err != nil {
		return err
	}

	count, err := node.AuditLog.EventCount()
	if err != nil {
		return err
	}

	log.Printf("|Node| Audit chain verified, %d events", count)
	return nil
}

func (node *ApprovalNode) Stop() error {
	log.Print("|Node| Stopping approval node")
	return db.CloseDatabaseConnection(node.db)
}

func (node *ApprovalNode) Health() *health.Status {
	return health.Readiness(node.db, node.AuditLog)
}

func (node *ApprovalNode) handleEvent(event *models.AuditEvent) {
	switch event.Kind {
	case models.EventFinalized:
		log.Printf("|Node| Station %s result is final", event.StationId)
	default:
		log.Printf("|Node| Event %d: %s at station %s", event.Sequence, event.Kind, event.StationId)
	}
}
