package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gobwas/glob"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/resource-pipeline/internal/config"
	ioutils "github.com/handiism/resource-pipeline/internal/io"
	"github.com/handiism/resource-pipeline/internal/model"
	"github.com/handiism/resource-pipeline/internal/transform"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a processing progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Processor routes expanded inputs through a transformer chain.
type Processor struct {
	settings *config.Settings
	chain    []transform.Transformer

	inputs    []string
	inputsMu  sync.RWMutex
	total     int32
	processed int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewProcessor creates a new Processor. The chain is evaluated in the given
// order; it may be empty, in which case every input is skipped.
func NewProcessor(settings *config.Settings, chain []transform.Transformer, onProgress func(ProgressEvent)) *Processor {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Processor{
		settings:   settings,
		chain:      chain,
		onProgress: onProgress,
	}
}

// Initialize expands the input patterns into the list of inputs processed by
// the next call to Process. Patterns are expanded once, in argument order,
// and matches are not deduplicated. Inputs matching one of the configured
// exclude patterns are dropped.
func (p *Processor) Initialize(ctx context.Context, patterns []string) error {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "pipeline"))

	excludes, err := compileExcludes(p.settings.Exclude)
	if err != nil {
		return err
	}

	var inputs []string
	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return err
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return &PatternError{Pattern: pattern, Err: err}
		}
		if len(matches) == 0 {
			p.progress(ProgressEvent{Message: fmt.Sprintf("Pattern %s matched nothing", pattern), Level: LevelWarning})
			continue
		}

		for _, match := range matches {
			if excluded(excludes, match) {
				logger.Log(ctx, slog.LevelDebug, "input excluded", slog.String("input", match))
				continue
			}
			inputs = append(inputs, match)
		}
		logger.Log(ctx, slog.LevelDebug, "expanded pattern",
			slog.String("pattern", pattern),
			slog.Int("matches", len(matches)),
		)
	}

	p.inputsMu.Lock()
	p.inputs = inputs
	p.inputsMu.Unlock()
	atomic.StoreInt32(&p.total, int32(len(inputs)))
	atomic.StoreInt32(&p.processed, 0)
	p.progress(ProgressEvent{Message: fmt.Sprintf("Found %d input(s)", len(inputs)), Level: LevelInfo})
	return nil
}

// Inputs returns the inputs found by Initialize.
func (p *Processor) Inputs() []string {
	p.inputsMu.RLock()
	defer p.inputsMu.RUnlock()
	return p.inputs
}

// ChainNames returns the names of the chain's transformers in order.
func (p *Processor) ChainNames() []string {
	names := make([]string, len(p.chain))
	for i, t := range p.chain {
		names[i] = t.Name()
	}
	return names
}

// GetProgress returns how many inputs have been handled so far and how many
// there are in total. It is safe to call while Initialize or Process run.
func (p *Processor) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&p.processed), atomic.LoadInt32(&p.total)
}

// Match returns the first transformer of the chain that accepts input, or
// nil if none does.
func (p *Processor) Match(input string) transform.Transformer {
	for _, t := range p.chain {
		if t.CanProcess(input) {
			return t
		}
	}
	return nil
}

// Process creates outputDir if needed and runs every input through the
// chain. Per-input failures are recorded in the result and never abort the
// run. The returned error is non-nil only when the output directory is
// unusable, the context was cancelled (the partial result is returned
// alongside), or the manifest could not be written.
func (p *Processor) Process(ctx context.Context, outputDir string) (*model.Result, error) {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "pipeline"))

	if err := ensureOutputDir(outputDir); err != nil {
		return nil, err
	}

	inputs := p.Inputs()
	if len(p.chain) == 0 && len(inputs) > 0 {
		p.progress(ProgressEvent{Message: "No transformers selected, every input will be skipped", Level: LevelWarning})
	}

	result := model.NewResult(len(inputs))
	for i, input := range inputs {
		result.Outcomes[i] = model.Outcome{Source: input, Status: model.StatusCancelled}
	}
	atomic.StoreInt32(&p.processed, 0)

	// Workers never return errors; failures are recorded per input.
	var g errgroup.Group
	g.SetLimit(p.settings.Jobs())

	for i, input := range inputs {
		if ctx.Err() != nil {
			break
		}
		i, input := i, input
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			result.Outcomes[i] = p.ProcessInput(ctx, input, outputDir)
			atomic.AddInt32(&p.processed, 1)
			return nil
		})
	}
	_ = g.Wait()

	counts := result.Counts()
	logger.Log(ctx, slog.LevelDebug, "run finished",
		slog.Int("applied", counts.Applied),
		slog.Int("failed", counts.Failed),
		slog.Int("skipped", counts.Skipped),
		slog.Int("cancelled", counts.Cancelled),
	)

	summary := fmt.Sprintf("Processed %d input(s): %d applied, %d failed, %d skipped",
		counts.Total()-counts.Cancelled, counts.Applied, counts.Failed, counts.Skipped)
	if counts.Failed > 0 || counts.Cancelled > 0 {
		p.progress(ProgressEvent{Message: summary, Level: LevelWarning})
	} else {
		p.progress(ProgressEvent{Message: summary, Level: LevelSuccess})
	}

	if p.settings.ManifestPath != "" {
		if err := result.WriteManifest(p.settings.ManifestPath); err != nil {
			return result, fmt.Errorf("write manifest: %w", err)
		}
		p.progress(ProgressEvent{Message: fmt.Sprintf("Wrote manifest %s", p.settings.ManifestPath), Level: LevelVerbose})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// ProcessInput applies the first matching transformer to a single input.
func (p *Processor) ProcessInput(ctx context.Context, input, outputDir string) model.Outcome {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "pipeline"))

	t := p.Match(input)
	if t == nil {
		logger.Log(ctx, slog.LevelDebug, "no transformer matched", slog.String("input", input))
		p.progress(ProgressEvent{Message: fmt.Sprintf("%s skipped", input), Level: LevelWarning})
		return model.Outcome{Source: input, Status: model.StatusSkipped}
	}

	logger.Log(ctx, slog.LevelDebug, "matched transformer",
		slog.String("input", input),
		slog.String("transformer", t.Name()),
	)

	target, err := t.Apply(ctx, input, outputDir)
	if err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("%s failed: %v", input, err), Level: LevelError})
		return model.Outcome{Source: input, Transformer: t.Name(), Status: model.StatusFailed, Err: err}
	}

	p.progress(ProgressEvent{Message: fmt.Sprintf("%s %s -> %s", input, t.Name(), target), Level: LevelInfo})
	return model.Outcome{Source: input, Transformer: t.Name(), Target: target, Status: model.StatusApplied}
}

func (p *Processor) progress(event ProgressEvent) {
	if p.onProgress == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onProgress(event)
}

func ensureOutputDir(path string) error {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return &InvalidOutputTargetError{Path: path, Err: errors.New("not a directory")}
	}
	if err := ioutils.EnsureDir(path); err != nil {
		return &InvalidOutputTargetError{Path: path, Err: err}
	}
	return nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// excluded matches the slash-separated path and its base name.
func excluded(excludes []glob.Glob, path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, g := range excludes {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}
