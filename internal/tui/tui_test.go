package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/resource-pipeline/internal/model"
	"github.com/handiism/resource-pipeline/internal/pipeline"
)

func press(m Model, keyType tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: keyType})
	return next.(Model)
}

func TestModel_InputViewListsTransformers(t *testing.T) {
	m := NewModel(nil, "out", "res/*", "Copy")

	view := m.View()
	assert.Contains(t, view, "Output directory:")
	assert.Contains(t, view, "WAV2AAC")
	assert.Contains(t, view, "Copy")
}

func TestModel_StartRequiresOutputAndPatterns(t *testing.T) {
	m := press(NewModel(nil, "", "", ""), tea.KeyEnter)

	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "at least one input pattern")
}

func TestModel_StartRejectsUnknownTransformer(t *testing.T) {
	m := press(NewModel(nil, "out", "res/*", "Copy,Bogus"), tea.KeyEnter)

	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.err.Error(), "Bogus")
}

func TestModel_TabCyclesFields(t *testing.T) {
	m := NewModel(nil, "", "", "")
	require.Equal(t, fieldOutput, m.focus)

	m = press(m, tea.KeyTab)
	assert.Equal(t, fieldPatterns, m.focus)
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyTab)
	assert.Equal(t, fieldOutput, m.focus)
	m = press(m, tea.KeyShiftTab)
	assert.Equal(t, fieldTransformers, m.focus)
}

func TestModel_RunsProcessor(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0644))
	out := filepath.Join(t.TempDir(), "out")

	m := NewModel(nil, out, filepath.Join(src, "*.txt"), "Copy")
	cmd, err := m.start()
	require.NoError(t, err)

	// Drain events so the processor never blocks.
	go func() {
		for range m.events {
		}
	}()

	msg := cmd()
	done, ok := msg.(DoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, model.Counts{Applied: 1}, done.Result.Counts())
	assert.FileExists(t, filepath.Join(out, "a.txt"))

	m.state = StateProcessing
	next, _ := m.Update(done)
	m = next.(Model)
	assert.Equal(t, StateComplete, m.state)
	assert.True(t, strings.Contains(m.View(), "Applied: 1"))
}

func TestModel_VerboseEventsFiltered(t *testing.T) {
	m := NewModel(nil, "", "", "")
	m.state = StateProcessing

	next, _ := m.Update(ProgressMsg{Event: pipeline.ProgressEvent{Message: "debug detail", Level: pipeline.LevelVerbose}})
	m = next.(Model)
	assert.Empty(t, m.logs)

	next, _ = m.Update(ProgressMsg{Event: pipeline.ProgressEvent{Message: "a.txt skipped", Level: pipeline.LevelWarning}})
	m = next.(Model)
	require.Len(t, m.logs, 1)
	assert.Equal(t, "a.txt skipped", m.logs[0].Message)
}
