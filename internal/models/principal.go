package models

type Principal struct {
	Id           string //hex of hash of compressed public key, 64 chars
	NationalId   string
	Role         Role
	StationId    string //station the principal acts for
	Party        string
	Organization string
	Active       bool
}

// Affiliation is the value snapshotted into a signature slot when the principal signs.
func (principal *Principal) Affiliation() string {
	switch principal.Role {
	case RoleAgent:
		return principal.Party
	case RoleSubmitter, RoleObserver:
		return principal.Organization
	default:
		return ""
	}
}

// CanActFor reports whether the principal may perform role's action at station.
func (principal *Principal) CanActFor(role Role, stationId string) bool {
	return principal.Active && role.IsValid() && principal.Role == role && principal.StationId == stationId
}
