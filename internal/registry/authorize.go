package registry

import (
	"github.com/pkg/errors"

	repositories "github.com/nivschuman/ElectionResults/internal/database/repositories"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

// Authorize reads the caller's registry entry through principals, which should be bound to the
// caller's own transaction so the entry cannot change underneath it.
func Authorize(principals repositories.PrincipalRepository, callerId string, role models.Role, stationId string, action string) (*models.Principal, error) {
	principal, err := principals.GetPrincipal(callerId)

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return nil, unauthorized(callerId, action, stationId, "principal is not registered")
	}

	if err != nil {
		return nil, err
	}

	if principal.CanActFor(role, stationId) {
		return principal, nil
	}

	switch {
	case !principal.Active:
		return nil, unauthorized(callerId, action, stationId, "principal is inactive")
	case principal.Role != role:
		return nil, unauthorized(callerId, action, stationId, "principal is a "+principal.Role.String()+", not a "+role.String())
	default:
		return nil, unauthorized(callerId, action, stationId, "principal is assigned to station "+principal.StationId)
	}
}

func unauthorized(callerId string, action string, stationId string, reason string) error {
	return &models.UnauthorizedError{PrincipalId: callerId, Action: action, StationId: stationId, Reason: reason}
}
