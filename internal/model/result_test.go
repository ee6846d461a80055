package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testResult() *Result {
	return &Result{Outcomes: []Outcome{
		{Source: "a.wav", Transformer: "WAV2AAC", Target: "out/a.aac", Status: StatusApplied},
		{Source: "b.wav", Transformer: "WAV2AAC", Status: StatusFailed, Err: errors.New("encoder exited 1")},
		{Source: "c.dat", Status: StatusSkipped},
		{Source: "d.txt", Status: StatusCancelled},
		{Source: "e.txt", Transformer: "Copy", Target: "out/e.txt", Status: StatusApplied},
	}}
}

func TestResult_Counts(t *testing.T) {
	counts := testResult().Counts()
	assert.Equal(t, Counts{Applied: 2, Failed: 1, Skipped: 1, Cancelled: 1}, counts)
	assert.Equal(t, 5, counts.Total())
}

func TestResult_Failed(t *testing.T) {
	r := testResult()
	require.True(t, r.HasFailures())

	failed := r.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "b.wav", failed[0].Source)
	assert.Equal(t, "encoder exited 1", failed[0].ErrMessage())

	assert.False(t, NewResult(0).HasFailures())
}

func TestResult_ByStatus(t *testing.T) {
	applied := testResult().ByStatus(StatusApplied)
	require.Len(t, applied, 2)
	assert.Equal(t, "a.wav", applied[0].Source)
	assert.Equal(t, "e.txt", applied[1].Source)
}

func TestResult_WriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "manifest.yaml")
	require.NoError(t, testResult().WriteManifest(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Summary  Counts `yaml:"summary"`
		Outcomes []struct {
			Source      string `yaml:"source"`
			Transformer string `yaml:"transformer"`
			Target      string `yaml:"target"`
			Status      Status `yaml:"status"`
			Error       string `yaml:"error"`
		} `yaml:"outcomes"`
	}
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, Counts{Applied: 2, Failed: 1, Skipped: 1, Cancelled: 1}, got.Summary)
	require.Len(t, got.Outcomes, 5)
	assert.Equal(t, "out/a.aac", got.Outcomes[0].Target)
	assert.Equal(t, StatusFailed, got.Outcomes[1].Status)
	assert.Equal(t, "encoder exited 1", got.Outcomes[1].Error)
	assert.Empty(t, got.Outcomes[2].Transformer)
}
