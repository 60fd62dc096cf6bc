// Package app implements the graph-assembly policies of the decision task.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/core/ports"
	"go.trai.ch/decide/internal/engine/builder"
	"go.trai.ch/decide/internal/engine/taskgraph"
	"go.trai.ch/zerr"
)

// App runs one graph-assembly policy per invocation. The policy is selected
// by the CLI trigger and runs straight through: build descriptors, submit
// them in dependency order, persist the snapshot.
type App struct {
	loader    ports.ConfigLoader
	queue     ports.Queue
	ids       ports.IDGenerator
	variants  ports.VariantSource
	snapshots ports.SnapshotWriter
	logger    ports.Logger
	clock     clockwork.Clock
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	queue ports.Queue,
	ids ports.IDGenerator,
	variants ports.VariantSource,
	snapshots ports.SnapshotWriter,
	logger ports.Logger,
	clock clockwork.Clock,
) *App {
	return &App{
		loader:    loader,
		queue:     queue,
		ids:       ids,
		variants:  variants,
		snapshots: snapshots,
		logger:    logger,
		clock:     clock,
	}
}

// assembleFunc is one trigger's policy, run against a fresh builder and graph.
type assembleFunc func(ctx context.Context, b *builder.Builder, graph *taskgraph.TaskGraph) error

// run is the shared policy preamble and postamble: skip marker, config
// validation, a single run timestamp, and the final snapshot write.
func (a *App) run(ctx context.Context, assemble assembleFunc) error {
	cfg, err := a.loader.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if strings.Contains(cfg.PRTitle, domain.SkipMarker) {
		a.logger.Info("pull request title contains " + domain.SkipMarker + ", skipping all tasks")
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	b := builder.New(cfg, a.clock.Now())
	graph := taskgraph.New(a.queue, a.ids)

	if err := assemble(ctx, b, graph); err != nil {
		return err
	}

	if err := a.snapshots.Write(graph.Snapshot()); err != nil {
		return zerr.Wrap(err, "failed to persist task graph")
	}

	return nil
}

// PullRequest assembles the graph for pull requests and pushes to them:
// static analysis plus a test and an assemble task per discovered variant.
// No task depends on another; the run's task group is the only dependency.
func (a *App) PullRequest(ctx context.Context) error {
	return a.run(ctx, func(ctx context.Context, b *builder.Builder, graph *taskgraph.TaskGraph) error {
		if err := a.scheduleStaticAnalysis(ctx, b, graph); err != nil {
			return err
		}
		_, err := a.scheduleVariantTasks(ctx, b, graph)
		return err
	})
}

// BranchPush assembles the graph for pushes to the main branch: everything
// the pull-request policy schedules, plus one dep-signing task over the
// arm and aarch64 debug builds for the performance-test harness.
func (a *App) BranchPush(ctx context.Context) error {
	return a.run(ctx, func(ctx context.Context, b *builder.Builder, graph *taskgraph.TaskGraph) error {
		if err := a.scheduleStaticAnalysis(ctx, b, graph); err != nil {
			return err
		}

		scheduled, err := a.scheduleVariantTasks(ctx, b, graph)
		if err != nil {
			return err
		}

		signable, err := perfSignableArtifacts(scheduled)
		if err != nil {
			return err
		}

		_, err = graph.Schedule(ctx, b.DepSigningTask(signable))
		return err
	})
}

// nightlyArchitectures is the fixed set the nightly pipeline builds for.
var nightlyArchitectures = []domain.Architecture{
	domain.ArchX86,
	domain.ArchArm,
	domain.ArchAarch64,
}

// Nightly assembles the release pipeline: build, sign, publish, and a
// performance upload. The date parameter is used purely for index-route
// templating; staging selects dep workers and never contacts Google Play.
func (a *App) Nightly(ctx context.Context, date string, staging bool) error {
	when, err := parseDate(date)
	if err != nil {
		return err
	}

	return a.run(ctx, func(ctx context.Context, b *builder.Builder, graph *taskgraph.TaskGraph) error {
		buildTaskID, err := graph.Schedule(ctx, b.NightlyAssembleTask(nightlyArchitectures))
		if err != nil {
			return err
		}

		signTaskID, err := graph.Schedule(ctx, b.NightlySigningTask(buildTaskID, nightlyArchitectures, when, staging))
		if err != nil {
			return err
		}

		if _, err := graph.Schedule(ctx, b.PushTask(signTaskID, nightlyArchitectures, staging)); err != nil {
			return err
		}

		_, err = graph.Schedule(ctx, b.NimbledroidTask(buildTaskID))
		return err
	})
}

// scheduleStaticAnalysis submits the variant-independent analysis tasks.
func (a *App) scheduleStaticAnalysis(ctx context.Context, b *builder.Builder, graph *taskgraph.TaskGraph) error {
	for _, task := range []domain.TaskDescriptor{
		b.DetektTask(),
		b.KtlintTask(),
		b.CompareLocalesTask(),
		b.LintTask(),
	} {
		if _, err := graph.Schedule(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// scheduledVariant remembers what was submitted for one discovered variant.
type scheduledVariant struct {
	variant        string
	architecture   domain.Architecture
	buildType      domain.BuildType
	assembleTaskID string
}

// scheduleVariantTasks discovers the build variants and submits a test and an
// assemble task for each, in discovery order. An empty variant list is a
// fatal configuration error: this trigger exists to build variants.
func (a *App) scheduleVariantTasks(
	ctx context.Context,
	b *builder.Builder,
	graph *taskgraph.TaskGraph,
) ([]scheduledVariant, error) {
	variants, err := a.variants.ListBuildVariants(ctx)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, domain.ErrNoBuildVariants
	}

	scheduled := make([]scheduledVariant, 0, len(variants))
	for _, variant := range variants {
		architecture, buildType, err := domain.Classify(variant)
		if err != nil {
			return nil, err
		}

		testTask, err := b.VariantTestTask(variant)
		if err != nil {
			return nil, err
		}
		if _, err := graph.Schedule(ctx, testTask); err != nil {
			return nil, err
		}

		assembleTask, err := b.VariantAssembleTask(variant)
		if err != nil {
			return nil, err
		}
		assembleTaskID, err := graph.Schedule(ctx, assembleTask)
		if err != nil {
			return nil, err
		}

		scheduled = append(scheduled, scheduledVariant{
			variant:        variant,
			architecture:   architecture,
			buildType:      buildType,
			assembleTaskID: assembleTaskID,
		})
	}

	return scheduled, nil
}

// perfSignableArtifacts selects the assemble tasks the performance harness
// needs, in variant-processing order. The harness only supports arm and
// aarch64, and only debug builds are uploaded to it. A missing architecture
// is a configuration error, not a task to quietly drop.
func perfSignableArtifacts(scheduled []scheduledVariant) ([]builder.SignableArtifact, error) {
	var signable []builder.SignableArtifact
	found := map[domain.Architecture]bool{}

	for _, v := range scheduled {
		if v.buildType != domain.BuildDebug {
			continue
		}
		if v.architecture != domain.ArchArm && v.architecture != domain.ArchAarch64 {
			continue
		}
		signable = append(signable, builder.SignableArtifact{
			Path:   builder.ApkPublicPath(v.architecture),
			TaskID: v.assembleTaskID,
		})
		found[v.architecture] = true
	}

	for _, architecture := range []domain.Architecture{domain.ArchArm, domain.ArchAarch64} {
		if !found[architecture] {
			return nil, zerr.With(domain.ErrPerfVariantNotFound, "architecture", string(architecture))
		}
	}

	return signable, nil
}

// parseDate accepts an ISO-8601 date, with or without a time component.
func parseDate(date string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if when, err := time.Parse(layout, date); err == nil {
			return when, nil
		}
	}
	return time.Time{}, zerr.With(domain.ErrInvalidDate, "date", date)
}
