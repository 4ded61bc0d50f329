// Package generator drives a full generation run: it fans the (entity,
// artifact kind) pairs of a validated domain config out over a worker pool,
// writes every rendered artifact into the output tree, and produces the
// generation report.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/generator/codegen"
	"github.com/domainforge/domainforge/generator/templates"
	"github.com/domainforge/domainforge/internal/debug"
)

// ReportFilename is the name of the generation report written at the output
// root.
const ReportFilename = "generation-report.json"

// ConfigInvalidError aborts a run before any file is written. It carries the
// complete list of structural violations.
type ConfigInvalidError struct {
	Errors []domain.ValidationError
}

func (e *ConfigInvalidError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(msgs, "; "))
}

// GenerationSummary is the structured record of one run. The orchestrator is
// its only writer; it is never mutated after Generate returns. RunID is used
// by the run ledger and deliberately kept out of the serialized report so
// that two runs over the same inputs produce byte-identical reports apart
// from the timestamps.
type GenerationSummary struct {
	RunID             string                     `json:"-"`
	DomainName        string                     `json:"domain_name"`
	StartedAt         time.Time                  `json:"started_at"`
	FinishedAt        time.Time                  `json:"finished_at"`
	Cancelled         bool                       `json:"cancelled"`
	Results           []codegen.GenerationResult `json:"results"`
	TotalFilesWritten int                        `json:"total_files_written"`
	TotalBytesWritten int                        `json:"total_bytes_written"`
	FailureCount      int                        `json:"failure_count"`
}

// Orchestrator runs generation for domain configs. Construct once with an
// engine and reuse; it holds no per-run state.
type Orchestrator struct {
	engine  *templates.Engine
	fs      afero.Fs
	workers int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFs overrides the output filesystem. Tests use an in-memory fs.
func WithFs(fs afero.Fs) Option {
	return func(o *Orchestrator) { o.fs = fs }
}

// WithWorkers bounds render parallelism.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// New creates an orchestrator bound to the given template engine.
func New(engine *templates.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine:  engine,
		fs:      afero.NewOsFs(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate runs a one-off generation with a fresh embedded-template engine
// and default options.
func Generate(ctx context.Context, cfg *domain.DomainConfig, outputRoot string) (*GenerationSummary, error) {
	engine, err := templates.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return New(engine).Generate(ctx, cfg, outputRoot)
}

// job is one independent unit of work: one artifact kind for one entity.
type job struct {
	entity    *domain.EntityDefinition
	generator codegen.Generator
}

// Generate runs full generation for one config. Structural config errors are
// fatal and nothing is written; per-artifact render and write failures are
// recorded on the summary and never abort the run. The summary is always
// returned when generation was attempted, even with failures, so callers can
// report "N of M artifacts generated".
func (o *Orchestrator) Generate(ctx context.Context, cfg *domain.DomainConfig, outputRoot string) (*GenerationSummary, error) {
	if errs := domain.Validate(cfg); len(errs) > 0 {
		debug.Error("Generation aborted by invalid config", "domain", cfg.Name, "violations", len(errs))
		return nil, &ConfigInvalidError{Errors: errs}
	}

	summary := &GenerationSummary{
		RunID:      uuid.NewString(),
		DomainName: cfg.Name,
		StartedAt:  time.Now().UTC(),
	}

	generators := codegen.All(o.engine)
	jobs := make([]job, 0, len(cfg.Entities)*len(generators))
	for i := range cfg.Entities {
		for _, gen := range generators {
			jobs = append(jobs, job{entity: &cfg.Entities[i], generator: gen})
		}
	}

	debug.Info("Generation run starting", "run", summary.RunID, "domain", cfg.Name,
		"entities", len(cfg.Entities), "jobs", len(jobs), "workers", o.workers)

	summary.Results, summary.Cancelled = o.run(ctx, cfg, jobs, outputRoot)

	// Deterministic report order regardless of worker scheduling.
	kindOrder := make(map[codegen.ArtifactKind]int, 8)
	for i, k := range append(append([]codegen.ArtifactKind{}, codegen.BackendKinds...), codegen.FrontendKinds...) {
		kindOrder[k] = i
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		a, b := summary.Results[i], summary.Results[j]
		if a.EntityName != b.EntityName {
			return a.EntityName < b.EntityName
		}
		return kindOrder[a.ArtifactKind] < kindOrder[b.ArtifactKind]
	})

	for _, r := range summary.Results {
		if r.Success {
			summary.TotalFilesWritten++
			summary.TotalBytesWritten += r.Bytes
		} else {
			summary.FailureCount++
		}
	}
	summary.FinishedAt = time.Now().UTC()

	if err := o.writeReport(summary, outputRoot); err != nil {
		return summary, err
	}

	debug.Info("Generation run finished", "run", summary.RunID,
		"written", summary.TotalFilesWritten, "failed", summary.FailureCount,
		"cancelled", summary.Cancelled)
	return summary, nil
}

// run dispatches jobs over the worker pool and collects results. Each job
// reads only immutable inputs, so workers share nothing; the returned slice
// is appended to by this goroutine alone.
func (o *Orchestrator) run(ctx context.Context, cfg *domain.DomainConfig, jobs []job, outputRoot string) (results []codegen.GenerationResult, cancelled bool) {
	jobCh := make(chan job)
	resultCh := make(chan codegen.GenerationResult)

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				resultCh <- o.execute(j, cfg, outputRoot)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	go func() {
		defer close(jobCh)
		for _, j := range jobs {
			// Cancellation is checked between dispatches: in-flight renders
			// finish, nothing further is started.
			select {
			case <-ctx.Done():
				return
			case jobCh <- j:
			}
		}
	}()

	for r := range resultCh {
		results = append(results, r)
	}
	return results, ctx.Err() != nil
}

// execute renders one artifact and writes it. Write failures are recorded on
// the result with a distinct error kind since they indicate an environment
// problem rather than a config or template problem.
func (o *Orchestrator) execute(j job, cfg *domain.DomainConfig, outputRoot string) codegen.GenerationResult {
	result := j.generator.Generate(j.entity, cfg)
	if !result.Success {
		return result
	}

	dest := filepath.Join(outputRoot, filepath.FromSlash(result.OutputPath))
	if err := o.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return writeFailure(result, err)
	}
	if err := afero.WriteFile(o.fs, dest, result.Content, 0o644); err != nil {
		return writeFailure(result, err)
	}
	return result
}

func writeFailure(result codegen.GenerationResult, err error) codegen.GenerationResult {
	debug.Error("Artifact write failed", "entity", result.EntityName, "kind", result.ArtifactKind, "error", err)
	result.Success = false
	result.Bytes = 0
	result.Content = nil
	result.ErrorMessage = err.Error()
	result.ErrorKind = codegen.ErrorKindWrite
	return result
}

func (o *Orchestrator) writeReport(summary *GenerationSummary, outputRoot string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode generation report: %w", err)
	}
	data = append(data, '\n')

	dest := filepath.Join(outputRoot, ReportFilename)
	if err := o.fs.MkdirAll(outputRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}
	if err := afero.WriteFile(o.fs, dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write generation report: %w", err)
	}
	return nil
}
