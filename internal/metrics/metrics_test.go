package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metrics "github.com/nivschuman/ElectionResults/internal/metrics"
	models "github.com/nivschuman/ElectionResults/internal/models"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, "ok"},
		{&models.UnauthorizedError{}, "unauthorized"},
		{errors.Wrap(&models.AlreadyFinalizedError{}, "wrapped"), "already_finalized"},
		{&models.AlreadyInactiveError{}, "already_inactive"},
		{&models.NotFoundError{}, "not_found"},
		{&models.LengthMismatchError{}, "length_mismatch"},
		{&models.DuplicateCandidateError{}, "duplicate_candidate"},
		{errors.New("disk full"), "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, metrics.Outcome(tt.err))
	}
}

func TestWriteTextfile(t *testing.T) {
	metrics.Register()
	metrics.Register()

	metrics.TransitionsTotal.WithLabelValues("submit", "ok").Inc()

	path := filepath.Join(t.TempDir(), "approval.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `approval_transitions_total{action="submit",outcome="ok"}`)
}
