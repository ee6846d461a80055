// Package tui provides a Bubble Tea terminal user interface for resource-pipeline.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/handiism/resource-pipeline/internal/config"
	"github.com/handiism/resource-pipeline/internal/model"
	"github.com/handiism/resource-pipeline/internal/pipeline"
	"github.com/handiism/resource-pipeline/internal/transform"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateProcessing
	StateComplete
	StateError
)

// Input field indexes.
const (
	fieldOutput = iota
	fieldPatterns
	fieldTransformers
	fieldCount
)

const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	fields   []textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	registry *transform.Registry
	logs     []LogEntry
	err      error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	processor *pipeline.Processor
	events    chan pipeline.ProgressEvent
	result    *model.Result

	processed int32
	total     int32

	// Options
	mirror  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model with the fields pre-filled.
func NewModel(settings *config.Settings, outputDir, patterns, transformers string) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	placeholders := []string{"build/resources", "res/*.wav res/*.png", "WAV2AAC,Copy"}
	values := []string{outputDir, patterns, transformers}
	fields := make([]textinput.Model, fieldCount)
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.SetValue(values[i])
		ti.CharLimit = 500
		ti.Width = 60
		fields[i] = ti
	}
	fields[fieldOutput].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateInput,
		fields:   fields,
		spinner:  sp,
		progress: prog,
		settings: settings,
		registry: transform.DefaultRegistry(nil),
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
		mirror:   settings.MirrorDirectoryTree,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every event reported by the processor.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// DoneMsg is sent when the processing pass finishes.
	DoneMsg struct {
		Result *model.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}

	eventsClosedMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateProcessing {
				m.cancel()
			}

		case "tab", "shift+tab":
			if m.state == StateInput {
				step := 1
				if msg.String() == "shift+tab" {
					step = fieldCount - 1
				}
				m.fields[m.focus].Blur()
				m.focus = (m.focus + step) % fieldCount
				return m, m.fields[m.focus].Focus()
			}

		case "ctrl+r":
			if m.state == StateInput {
				m.mirror = !m.mirror
				return m, nil
			}

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "enter":
			if m.state == StateInput {
				cmd, err := m.start()
				if err != nil {
					m.state = StateError
					m.err = err
					return m, nil
				}
				m.state = StateProcessing
				return m, tea.Batch(cmd, m.waitForEvent(), m.tickProgress(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run, keeping the field values
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.result = nil
				m.processor = nil
				m.processed = 0
				m.total = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.focus = fieldOutput
				return m, m.fields[m.focus].Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == pipeline.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case eventsClosedMsg:

	case DoneMsg:
		m.result = msg.Result
		if m.processor != nil {
			m.processed, m.total = m.processor.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errors.New("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.processor != nil && m.state == StateProcessing {
			m.processed, m.total = m.processor.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start resolves the chain and returns the command running the pass. The
// processor is kept on the model so that ticks can poll its progress.
func (m *Model) start() (tea.Cmd, error) {
	outputDir := strings.TrimSpace(m.fields[fieldOutput].Value())
	patterns := strings.Fields(m.fields[fieldPatterns].Value())
	if outputDir == "" || len(patterns) == 0 {
		return nil, errors.New("an output directory and at least one input pattern are required")
	}

	settings := *m.settings
	settings.MirrorDirectoryTree = m.mirror

	registry := transform.DefaultRegistry(settings.ToTransformOptions())
	chain, err := registry.ResolveChain(m.fields[fieldTransformers].Value())
	if err != nil {
		return nil, err
	}

	events := make(chan pipeline.ProgressEvent, 64)
	processor := pipeline.NewProcessor(&settings, chain, func(event pipeline.ProgressEvent) {
		events <- event
	})
	m.processor = processor
	m.events = events

	ctx := m.ctx
	return func() tea.Msg {
		defer close(events)

		if err := processor.Initialize(ctx, patterns); err != nil {
			return DoneMsg{Err: err}
		}
		result, err := processor.Process(ctx, outputDir)
		return DoneMsg{Result: result, Err: err}
	}, nil
}

// waitForEvent returns a command that delivers the next processor event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ProgressMsg{Event: event}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Resource Pipeline"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Route resources through a transformer chain"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateProcessing:
		b.WriteString(m.viewProcessing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	labels := []string{"Output directory:", "Input patterns (space separated):", "Transformers (comma separated):"}
	for i, field := range m.fields {
		b.WriteString(subtitleStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(field.View())
		b.WriteString("\n\n")
	}

	mirrorCheck := "[ ]"
	if m.mirror {
		mirrorCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Mirror directory trees (ctrl+r)\n", mirrorCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+l)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Available: " + strings.Join(m.registry.Names(), ", ")))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewProcessing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Processing with " + strings.Join(m.processor.ChainNames(), " → ")))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Inputs: %d/%d", m.processed, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	var counts model.Counts
	if m.result != nil {
		counts = m.result.Counts()
	}
	box := boxStyle.Render(fmt.Sprintf(
		"Run complete\n\n"+
			"Applied: %d\n"+
			"Failed:  %d\n"+
			"Skipped: %d",
		counts.Applied,
		counts.Failed,
		counts.Skipped,
	))
	b.WriteString(box)
	b.WriteString("\n\n")

	if m.result != nil {
		for _, o := range m.result.Failed() {
			b.WriteString(errorStyle.Render("✗ " + o.Source + ": " + o.ErrMessage()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: next field • ctrl+r: mirror • ctrl+l: verbose • esc: quit"
	case StateProcessing:
		return "esc: cancel after current input"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// Run parses args the way resource-processor does and starts the TUI with
// the fields pre-filled.
func Run(args []string) error {
	fs := pflag.NewFlagSet("resource-tui", pflag.ContinueOnError)
	transformers := fs.StringP("transformers", "t", "", "comma-separated transformer chain, first match wins")
	configPath := fs.StringP("config", "c", "", "path to a YAML or JSON settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings := config.DefaultSettings()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	var outputDir string
	var patterns []string
	if fs.NArg() > 0 {
		outputDir = fs.Arg(0)
		patterns = fs.Args()[1:]
	}

	p := tea.NewProgram(NewModel(settings, outputDir, strings.Join(patterns, " "), *transformers), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
