package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/nivschuman/ElectionResults/internal/models"
)

func TestFormatVotes(t *testing.T) {
	assert.Equal(t, "0", formatVotes(0))
	assert.Equal(t, "1,234,567", formatVotes(1234567))
	assert.Equal(t, "18,446,744,073,709,551,615", formatVotes(math.MaxUint64))
}

func TestParseCandidates(t *testing.T) {
	candidateIds, votes, err := parseCandidates([]string{"C2=80", "C1=120"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C2", "C1"}, candidateIds)
	assert.Equal(t, []uint64{80, 120}, votes)

	for _, value := range []string{"C1", "=5", "C1=-1", "C1=many"} {
		_, _, err := parseCandidates([]string{value})
		assert.Error(t, err, value)
	}
}

func TestSignatureMarks(t *testing.T) {
	assert.Equal(t, "---", signatureMarks(models.SignatureStatus{}))
	assert.Equal(t, "S-O", signatureMarks(models.SignatureStatus{SubmitterSigned: true, ObserverSigned: true}))
}

func TestKeygenRunsWithoutNode(t *testing.T) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"keygen"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Nil(t, node)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "principal id: "))
}

func TestHealthCommand(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("database:\n  log-level: silent\n"), 0o600))

	t.Setenv("CONFIG_FILE", configFile)
	t.Setenv("DATABASE_FILE", filepath.Join(dir, "results.db"))

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"health"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"status": "healthy"`)
	assert.Nil(t, node)
}
