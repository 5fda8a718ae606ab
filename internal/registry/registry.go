package registry

import (
	"log"

	"github.com/pkg/errors"

	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	metrics "github.com/nivschuman/ElectionResults/internal/metrics"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

// Registry owns the principal table. Only the owner principal may change it.
type Registry struct {
	ownerId string
	repos   *repositories.Repositories
}

type Registration struct {
	PrincipalId  string
	NationalId   string
	Role         models.Role
	StationId    string
	Party        string
	Organization string
}

func NewRegistry(ownerId string, repos *repositories.Repositories) *Registry {
	return &Registry{ownerId: ownerId, repos: repos}
}

func (registry *Registry) OwnerId() string {
	return registry.ownerId
}

// Register overwrites any prior entry for the principal and marks it active.
func (registry *Registry) Register(caller string, registration *Registration) (*models.Principal, error) {
	principal, err := registry.register(caller, registration)
	metrics.RegistryChangesTotal.WithLabelValues("register", metrics.Outcome(err)).Inc()

	if err != nil {
		log.Printf("|Registry| Rejected register of %s by %s: %v", registration.PrincipalId, caller, err)
		return nil, err
	}

	log.Printf("|Registry| Registered %s as %s of station %s", principal.Id, principal.Role, principal.StationId)
	return principal, nil
}

func (registry *Registry) register(caller string, registration *Registration) (*models.Principal, error) {
	if err := registry.checkOwner(caller, "register"); err != nil {
		return nil, err
	}

	if registration.PrincipalId == "" {
		return nil, errors.New("principal id is required")
	}

	if !registration.Role.IsValid() {
		return nil, errors.Errorf("invalid role %s", registration.Role)
	}

	principal := &models.Principal{
		Id:           registration.PrincipalId,
		NationalId:   registration.NationalId,
		Role:         registration.Role,
		StationId:    registration.StationId,
		Party:        registration.Party,
		Organization: registration.Organization,
		Active:       true,
	}

	if err := registry.repos.Principals.UpsertPrincipal(principal); err != nil {
		return nil, err
	}

	return principal, nil
}

// Deactivate is one-way. A principal comes back only through a fresh Register.
func (registry *Registry) Deactivate(caller string, principalId string) error {
	err := registry.deactivate(caller, principalId)
	metrics.RegistryChangesTotal.WithLabelValues("deactivate", metrics.Outcome(err)).Inc()

	if err != nil {
		log.Printf("|Registry| Rejected deactivate of %s by %s: %v", principalId, caller, err)
		return err
	}

	log.Printf("|Registry| Deactivated %s", principalId)
	return nil
}

func (registry *Registry) deactivate(caller string, principalId string) error {
	if err := registry.checkOwner(caller, "deactivate"); err != nil {
		return err
	}

	return registry.repos.Transaction(func(txRepos *repositories.Repositories) error {
		principal, err := txRepos.Principals.GetPrincipal(principalId)
		if err != nil {
			return err
		}

		if !principal.Active {
			return &models.AlreadyInactiveError{PrincipalId: principalId}
		}

		return txRepos.Principals.SetActive(principalId, false)
	})
}

func (registry *Registry) Lookup(principalId string) (*models.Principal, error) {
	return registry.repos.Principals.GetPrincipal(principalId)
}

func (registry *Registry) List() ([]*models.Principal, error) {
	return registry.repos.Principals.GetPrincipals()
}

func (registry *Registry) checkOwner(caller string, action string) error {
	if registry.ownerId == "" || caller != registry.ownerId {
		return &models.UnauthorizedError{PrincipalId: caller, Action: action, Reason: "caller is not the registry owner"}
	}
	return nil
}
