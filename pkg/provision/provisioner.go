// Package provision orchestrates the font installation sequence: package
// index update, per-set package installation, font cache rebuild, and
// verification.
package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/defactra/fontprep/pkg/fontcache"
	"github.com/defactra/fontprep/pkg/fontprobe"
	"github.com/defactra/fontprep/pkg/fontset"
	"github.com/defactra/fontprep/pkg/pkgmgr"
)

// Options configures a provisioning run.
type Options struct {
	// Sets are the font sets to install, in order.
	Sets []fontset.FontSet

	// ExtraPackages maps a set name to additional packages installed with it.
	ExtraPackages map[string][]string

	// SkipUpdate skips the package index refresh.
	SkipUpdate bool

	// DryRun records the commands that would run without executing them.
	DryRun bool

	// Strict stops at the first failed step. The default mirrors the
	// historical installer: failures are recorded and the run continues.
	Strict bool

	// VerifyFilters and VerifyLimit control the post-install font listing.
	VerifyFilters []string
	VerifyLimit   int
}

// StepResult records the outcome of one provisioning step.
type StepResult struct {
	Name     string        // e.g., "install malayalam"
	Command  string        // Rendered command line
	Skipped  bool          // True when the step did not apply
	Err      error         // nil on success
	Duration time.Duration
}

// OK reports whether the step completed without error.
func (s StepResult) OK() bool {
	return s.Err == nil
}

// Result is the outcome of a provisioning run.
type Result struct {
	RunID    string            // Unique run identifier
	Manager  string            // Package manager backend used
	DryRun   bool
	Steps    []StepResult      // Per-step outcomes in execution order
	Listing  []string          // Filtered fc-list lines from verification
	Matches  map[string]string // fc-match results per language pattern
	Probes   []fontprobe.Result
	Duration time.Duration
}

// Success reports whether every non-skipped step completed.
func (r *Result) Success() bool {
	for _, step := range r.Steps {
		if !step.Skipped && step.Err != nil {
			return false
		}
	}
	return true
}

// Failures returns the failed steps.
func (r *Result) Failures() []StepResult {
	var failed []StepResult
	for _, step := range r.Steps {
		if !step.Skipped && step.Err != nil {
			failed = append(failed, step)
		}
	}
	return failed
}

// matchPatterns are the fontconfig language patterns verified after
// installation, keyed by display name.
var matchPatterns = map[string]string{
	"Malayalam":  ":lang=ml",
	"Devanagari": ":lang=hi",
}

// Provisioner runs the installation sequence.
type Provisioner struct {
	manager pkgmgr.Manager
	cache   *fontcache.Cache
	prober  *fontprobe.Prober
	logger  *zap.Logger
}

// New creates a Provisioner.
func New(manager pkgmgr.Manager, cache *fontcache.Cache, prober *fontprobe.Prober, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		manager: manager,
		cache:   cache,
		prober:  prober,
		logger:  logger,
	}
}

// Run executes the provisioning sequence, reporting progress through the
// callback. It returns an error only for invalid options or a strict-mode
// abort; individual step failures live in the Result.
func (p *Provisioner) Run(ctx context.Context, opts *Options, progress ProgressCallback) (*Result, error) {
	if progress == nil {
		progress = NoOpProgress
	}
	if len(opts.Sets) == 0 {
		return nil, fmt.Errorf("no font sets selected")
	}

	start := time.Now()
	result := &Result{
		RunID:   uuid.NewString(),
		Manager: p.manager.Name(),
		DryRun:  opts.DryRun,
		Matches: make(map[string]string),
	}

	p.logger.Info("starting provisioning run",
		zap.String("run_id", result.RunID),
		zap.String("manager", result.Manager),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("sets", len(opts.Sets)))

	// One update step, one install step per set, one cache rebuild, one verify.
	totalSteps := len(opts.Sets) + 3
	stepNum := 0
	percent := func() int { return stepNum * 100 / totalSteps }

	progress(NewProgressEvent(StageValidating, fmt.Sprintf("Installing %d font sets via %s", len(opts.Sets), result.Manager), 0))

	// Package index refresh
	stepNum++
	if opts.SkipUpdate {
		result.Steps = append(result.Steps, StepResult{Name: "update index", Skipped: true})
	} else {
		step := p.runStep(ctx, opts, "update index", p.manager.UpdateCommand(), func(ctx context.Context) error {
			return p.manager.Update(ctx)
		}, progress, StageUpdating, percent())
		result.Steps = append(result.Steps, step)
		if step.Err != nil && opts.Strict {
			return result, fmt.Errorf("update index: %w", step.Err)
		}
	}

	// Per-set installation
	for _, set := range opts.Sets {
		stepNum++
		name := "install " + set.Name

		pkgs := append([]string{}, set.PackagesFor(p.manager.Name())...)
		pkgs = append(pkgs, opts.ExtraPackages[set.Name]...)
		if len(pkgs) == 0 {
			p.logger.Warn("font set has no packages for manager",
				zap.String("set", set.Name), zap.String("manager", p.manager.Name()))
			result.Steps = append(result.Steps, StepResult{Name: name, Skipped: true})
			continue
		}

		step := p.runStep(ctx, opts, name, p.manager.InstallCommand(pkgs), func(ctx context.Context) error {
			return p.manager.Install(ctx, pkgs...)
		}, progress, StageInstalling, percent())
		result.Steps = append(result.Steps, step)
		if step.Err != nil && opts.Strict {
			return result, fmt.Errorf("%s: %w", name, step.Err)
		}
	}

	// Font cache rebuild
	stepNum++
	step := p.runStep(ctx, opts, "rebuild font cache", p.cache.RebuildCommand(), func(ctx context.Context) error {
		_, err := p.cache.Rebuild(ctx)
		return err
	}, progress, StageRebuilding, percent())
	result.Steps = append(result.Steps, step)
	if step.Err != nil && opts.Strict {
		return result, fmt.Errorf("rebuild font cache: %w", step.Err)
	}

	// Verification
	stepNum++
	if opts.DryRun {
		result.Steps = append(result.Steps, StepResult{Name: "verify", Command: "fc-list", Skipped: true})
	} else {
		progress(NewProgressEvent(StageVerifying, "Verifying installed fonts", percent()))
		result.Steps = append(result.Steps, p.verify(ctx, opts, result))
	}

	result.Duration = time.Since(start)

	if result.Success() {
		progress(NewProgressEvent(StageComplete, "Font provisioning complete", 100))
	} else {
		progress(NewErrorEvent(fmt.Sprintf("Completed with %d failed steps", len(result.Failures()))))
	}

	p.logger.Info("provisioning run finished",
		zap.String("run_id", result.RunID),
		zap.Bool("success", result.Success()),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// runStep executes one step, or records its command in dry-run mode.
func (p *Provisioner) runStep(ctx context.Context, opts *Options, name string, argv []string, fn func(context.Context) error, progress ProgressCallback, stage Stage, percent int) StepResult {
	command := pkgmgr.CommandLine(argv)
	step := StepResult{Name: name, Command: command}

	progress(NewProgressEventWithCommand(stage, stage.DisplayName()+": "+name, command, percent))
	p.logger.Debug("running step", zap.String("step", name), zap.String("command", command))

	if opts.DryRun {
		step.Skipped = true
		return step
	}

	stepStart := time.Now()
	step.Err = fn(ctx)
	step.Duration = time.Since(stepStart)

	if step.Err != nil {
		p.logger.Error("step failed", zap.String("step", name), zap.Error(step.Err))
		progress(NewErrorEvent(fmt.Sprintf("%s failed: %v", name, step.Err)))
	}
	return step
}

// verify gathers the filtered font listing, fc-match results, and on-disk
// probes. A verification failure is a step failure like any other.
func (p *Provisioner) verify(ctx context.Context, opts *Options, result *Result) StepResult {
	stepStart := time.Now()
	step := StepResult{Name: "verify", Command: "fc-list"}

	listing, err := p.cache.List(ctx, opts.VerifyFilters, opts.VerifyLimit)
	if err != nil {
		step.Err = err
		step.Duration = time.Since(stepStart)
		return step
	}
	result.Listing = listing

	for name, pattern := range matchPatterns {
		family, err := p.cache.Match(ctx, pattern)
		if err != nil {
			p.logger.Warn("fc-match failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		result.Matches[name] = family
	}

	result.Probes = p.prober.ProbeSets(opts.Sets)
	if !fontprobe.Satisfied(result.Probes) {
		step.Err = fmt.Errorf("expected font files missing for one or more sets")
	}

	step.Duration = time.Since(stepStart)
	return step
}
