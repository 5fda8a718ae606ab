package metrics

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	models "github.com/nivschuman/ElectionResults/internal/models"
)

var (
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_transitions_total",
			Help: "Total number of approval transitions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	TransitionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "approval_transition_duration_seconds",
			Help:    "Duration of approval transitions including the database commit",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	FinalizedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "approval_records_finalized_total",
			Help: "Total number of result records that reached the finalized state",
		},
	)

	RegistryChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_changes_total",
			Help: "Total number of registry register and deactivate calls by outcome",
		},
		[]string{"action", "outcome"},
	)

	AuditEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_published_total",
			Help: "Total number of audit events published to subscribers by kind",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(TransitionsTotal)
		prometheus.MustRegister(TransitionDuration)
		prometheus.MustRegister(FinalizedTotal)
		prometheus.MustRegister(RegistryChangesTotal)
		prometheus.MustRegister(AuditEventsTotal)
	})
}

// WriteTextfile dumps the default registry in the node exporter textfile format.
func WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, prometheus.DefaultGatherer), "failed to write metrics to %s", path)
}

// Outcome maps an error to a low cardinality label value.
func Outcome(err error) string {
	var (
		unauthorized       *models.UnauthorizedError
		alreadyFinalized   *models.AlreadyFinalizedError
		alreadyInactive    *models.AlreadyInactiveError
		notFound           *models.NotFoundError
		lengthMismatch     *models.LengthMismatchError
		duplicateCandidate *models.DuplicateCandidateError
	)

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &unauthorized):
		return "unauthorized"
	case errors.As(err, &alreadyFinalized):
		return "already_finalized"
	case errors.As(err, &alreadyInactive):
		return "already_inactive"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &lengthMismatch):
		return "length_mismatch"
	case errors.As(err, &duplicateCandidate):
		return "duplicate_candidate"
	default:
		return "error"
	}
}
