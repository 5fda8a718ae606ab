package models

import "fmt"

type Role uint8

const (
	RoleSubmitter Role = iota + 1
	RoleAgent
	RoleObserver
)

var Roles = []Role{RoleSubmitter, RoleAgent, RoleObserver}

func (role Role) String() string {
	switch role {
	case RoleSubmitter:
		return "submitter"
	case RoleAgent:
		return "agent"
	case RoleObserver:
		return "observer"
	default:
		return fmt.Sprintf("role(%d)", uint8(role))
	}
}

func (role Role) IsValid() bool {
	switch role {
	case RoleSubmitter, RoleAgent, RoleObserver:
		return true
	default:
		return false
	}
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "submitter":
		return RoleSubmitter, nil
	case "agent":
		return RoleAgent, nil
	case "observer":
		return RoleObserver, nil
	default:
		return 0, fmt.Errorf("unknown role: %q", s)
	}
}
