package models

import "fmt"

// UnauthorizedError is returned when the caller is inactive, holds the wrong role, or is assigned to another station.
type UnauthorizedError struct {
	PrincipalId string
	Action      string
	StationId   string
	Reason      string
}

func (e *UnauthorizedError) Error() string {
	if e.StationId == "" {
		return fmt.Sprintf("principal %s is not authorized to %s: %s", e.PrincipalId, e.Action, e.Reason)
	}
	return fmt.Sprintf("principal %s is not authorized to %s at station %s: %s", e.PrincipalId, e.Action, e.StationId, e.Reason)
}

type AlreadyFinalizedError struct {
	StationId string
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("result record for station %s is already finalized", e.StationId)
}

type AlreadyInactiveError struct {
	PrincipalId string
}

func (e *AlreadyInactiveError) Error() string {
	return fmt.Sprintf("principal %s is already inactive", e.PrincipalId)
}

type NotFoundError struct {
	Kind string //principal, record or candidate
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

type LengthMismatchError struct {
	Candidates int
	Votes      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("got %d candidate ids and %d vote counts", e.Candidates, e.Votes)
}

type DuplicateCandidateError struct {
	CandidateId string
}

func (e *DuplicateCandidateError) Error() string {
	return fmt.Sprintf("candidate %s appears more than once", e.CandidateId)
}

const (
	NotFoundPrincipal = "principal"
	NotFoundRecord    = "record"
	NotFoundCandidate = "candidate"
)
