package repositories

import (
	"gorm.io/gorm"
)

type Repositories struct {
	db         *gorm.DB
	Principals PrincipalRepository
	Results    ResultRepository
	Audit      AuditRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Principals: NewPrincipalRepositoryImpl(db),
		Results:    NewResultRepositoryImpl(db),
		Audit:      NewAuditRepositoryImpl(db),
	}
}

// Transaction runs fn against repositories bound to a single database transaction.
// Returning an error from fn rolls back every write fn made.
func (repos *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return repos.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
