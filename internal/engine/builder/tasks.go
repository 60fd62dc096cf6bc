package builder

import (
	"fmt"
	"time"

	"go.trai.ch/decide/internal/core/domain"
)

// VariantTestTask builds the unit-test task for one build variant.
// Classification errors from the variant token propagate unchanged.
func (b *Builder) VariantTestTask(variant string) (domain.TaskDescriptor, error) {
	platform, err := domain.PlatformLabel(variant)
	if err != nil {
		return domain.TaskDescriptor{}, err
	}

	return b.gradleTask(inRepoEnvelope{
		name:        "test: " + variant,
		description: "Building and testing variant " + variant,
		fullCommand: fmt.Sprintf("test%sUnitTest && ls -R %s/", capitalize(variant), b.cfg.CheckoutDir),
		treeherder: domain.Treeherder{
			JobKind: "test",
			Machine: domain.Machine{Platform: platform},
			Symbol:  "T",
			Tier:    1,
		},
	}), nil
}

// VariantAssembleTask builds the assemble task for one build variant,
// publishing the APK the variant produces.
func (b *Builder) VariantAssembleTask(variant string) (domain.TaskDescriptor, error) {
	platform, err := domain.PlatformLabel(variant)
	if err != nil {
		return domain.TaskDescriptor{}, err
	}

	artifacts, err := b.variantArtifacts(variant)
	if err != nil {
		return domain.TaskDescriptor{}, err
	}

	return b.gradleTask(inRepoEnvelope{
		name:         "assemble: " + variant,
		description:  "Building and testing variant " + variant,
		fullCommand:  fmt.Sprintf("assemble%s && ls -R %s/", capitalize(variant), b.cfg.CheckoutDir),
		chainOfTrust: true,
		treeherder: domain.Treeherder{
			JobKind: "build",
			Machine: domain.Machine{Platform: platform},
			Symbol:  "A",
			Tier:    1,
		},
		artifacts: artifacts,
	}), nil
}

func (b *Builder) variantArtifacts(variant string) (map[string]domain.Artifact, error) {
	architecture, _, err := domain.Classify(variant)
	if err != nil {
		return nil, err
	}

	path, err := domain.ApkPath(variant, b.cfg.CheckoutDir)
	if err != nil {
		return nil, err
	}

	return map[string]domain.Artifact{
		ApkPublicPath(architecture): {
			Type:    "file",
			Path:    path,
			Expires: b.stringDate(b.now.AddDate(1, 0, 0)),
		},
	}, nil
}

// ApkPublicPath is the public artifact path an assemble task publishes its
// APK under for an architecture.
func ApkPublicPath(architecture domain.Architecture) string {
	return fmt.Sprintf("public/target.%s.apk", architecture)
}

// DetektTask builds the detekt static-analysis task.
func (b *Builder) DetektTask() domain.TaskDescriptor {
	return b.lintStyleTask("detekt", "Running detekt over all modules", "detekt")
}

// KtlintTask builds the ktlint style-check task.
func (b *Builder) KtlintTask() domain.TaskDescriptor {
	return b.lintStyleTask("ktlint", "Running ktlint over all modules", "ktlint")
}

// LintTask builds the Android lint task.
func (b *Builder) LintTask() domain.TaskDescriptor {
	return b.lintStyleTask("lint", "Running lint over all modules", "lint")
}

func (b *Builder) lintStyleTask(name, description, command string) domain.TaskDescriptor {
	return b.gradleTask(inRepoEnvelope{
		name:        name,
		description: description,
		fullCommand: command,
		treeherder: domain.Treeherder{
			JobKind: "test",
			Machine: domain.Machine{Platform: "lint"},
			Symbol:  name,
			Tier:    1,
		},
	})
}

// CompareLocalesTask builds the locale-string validation task.
func (b *Builder) CompareLocalesTask() domain.TaskDescriptor {
	return b.inRepoTask(inRepoEnvelope{
		name:        "compare-locales",
		description: "Validate strings.xml with compare-locales",
		fullCommand: `pip install "compare-locales>=4.0.1,<5.0" && compare-locales --validate l10n.toml .`,
		treeherder: domain.Treeherder{
			JobKind: "test",
			Machine: domain.Machine{Platform: "lint"},
			Symbol:  "compare-locale",
			Tier:    2,
		},
	})
}

// SignableArtifact pairs an upstream task with the artifact path to sign.
type SignableArtifact struct {
	Path   string
	TaskID string
}

// DepSigningTask builds the dep-signing task the performance harness consumes.
// It depends on every upstream build task it signs artifacts of.
func (b *Builder) DepSigningTask(artifacts []SignableArtifact) domain.TaskDescriptor {
	upstream := make([]domain.UpstreamArtifact, 0, len(artifacts))
	dependencies := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		upstream = append(upstream, domain.UpstreamArtifact{
			Formats:  []string{b.cfg.SigningFormat},
			Paths:    []string{artifact.Path},
			TaskID:   artifact.TaskID,
			TaskType: "build",
		})
		dependencies = append(dependencies, artifact.TaskID)
	}

	return b.task(envelope{
		name:          "dep-sign",
		description:   "Dep-signing for performance testing",
		workerType:    b.cfg.SigningDepWorkerType,
		provisionerID: b.cfg.ScriptworkerProvisioner,
		scopes: []string{
			b.signingFormatScope(),
			b.signingCertScope("dep-signing"),
		},
		treeherder: domain.Treeherder{
			JobKind: "other",
			Machine: domain.Machine{Platform: "android-all"},
			Symbol:  "Ns",
			Tier:    1,
		},
		payload: domain.SigningPayload{
			MaxRunTime:        signingMaxRunTime,
			UpstreamArtifacts: upstream,
		},
		dependencies: dependencies,
	})
}

// NightlyAssembleTask builds the multi-architecture release build task for
// the nightly pipeline.
func (b *Builder) NightlyAssembleTask(architectures []domain.Architecture) domain.TaskDescriptor {
	artifacts := make(map[string]domain.Artifact, len(architectures))
	for _, architecture := range architectures {
		artifacts[ApkPublicPath(architecture)] = domain.Artifact{
			Type:    "file",
			Path:    domain.NightlyApkPath(architecture, b.cfg.CheckoutDir),
			Expires: b.stringDate(b.now.AddDate(1, 0, 0)),
		}
	}

	return b.inRepoTask(inRepoEnvelope{
		name:        fmt.Sprintf("(%s) Build task", b.cfg.Project),
		description: "Build the application from source code.",
		fullCommand: fmt.Sprintf(
			"python automation/taskcluster/helper/get-secret.py -s project/mobile/%s/sentry -k dsn -f .sentry_token"+
				" && ./gradlew --no-daemon -PcrashReportEnabled=true -Ptelemetry=true clean test assembleRelease",
			b.cfg.Project,
		),
		chainOfTrust: true,
		scopes:       []string{b.secretScope("sentry")},
		treeherder: domain.Treeherder{
			JobKind: "build",
			Machine: domain.Machine{Platform: "android-all"},
			Symbol:  "NA",
			Tier:    1,
		},
		artifacts: artifacts,
	})
}

// NightlySigningTask builds the signing task for nightly release builds.
// Staging runs use the dep certificate, the dep worker pool and a staging
// index namespace so they never touch release signing infrastructure.
func (b *Builder) NightlySigningTask(
	buildTaskID string,
	architectures []domain.Architecture,
	date time.Time,
	staging bool,
) domain.TaskDescriptor {
	cert := "release-signing"
	indexRelease := "signed-nightly"
	workerType := b.cfg.SigningWorkerType
	if staging {
		cert = "dep-signing"
		indexRelease = "staging-signed-nightly"
		workerType = b.cfg.SigningDepWorkerType
	}

	paths := make([]string, 0, len(architectures))
	for _, architecture := range architectures {
		paths = append(paths, ApkPublicPath(architecture))
	}

	return b.task(envelope{
		name:          fmt.Sprintf("(%s) Signing task", b.cfg.Project),
		description:   "Sign release builds of the application",
		workerType:    workerType,
		provisionerID: b.cfg.ScriptworkerProvisioner,
		scopes: []string{
			b.signingCertScope(cert),
			b.signingFormatScope(),
		},
		treeherder: domain.Treeherder{
			JobKind: "other",
			Machine: domain.Machine{Platform: "android-all"},
			Symbol:  "Ns",
			Tier:    1,
		},
		payload: domain.SigningPayload{
			MaxRunTime: signingMaxRunTime,
			UpstreamArtifacts: []domain.UpstreamArtifact{{
				Formats:  []string{b.cfg.SigningFormat},
				Paths:    paths,
				TaskID:   buildTaskID,
				TaskType: "build",
			}},
		},
		dependencies: []string{buildTaskID},
		routes: []string{
			fmt.Sprintf("index.%s.%s.nightly.%d.%d.%d.latest",
				b.cfg.IndexNamespace, indexRelease, date.Year(), date.Month(), date.Day()),
			fmt.Sprintf("index.%s.%s.nightly.%d.%d.%d.revision.%s",
				b.cfg.IndexNamespace, indexRelease, date.Year(), date.Month(), date.Day(), b.cfg.Revision),
			fmt.Sprintf("index.%s.%s.nightly.latest", b.cfg.IndexNamespace, indexRelease),
		},
	})
}

// PushTask builds the Google Play publishing task. Staging runs use the dep
// worker pool and the dep product scope, which never contact Google Play.
func (b *Builder) PushTask(
	signTaskID string,
	architectures []domain.Architecture,
	staging bool,
) domain.TaskDescriptor {
	workerType := b.cfg.PushWorkerType
	product := b.cfg.Project
	if staging {
		workerType = b.cfg.PushDepWorkerType
		product += ":dep"
	}

	paths := make([]string, 0, len(architectures))
	for _, architecture := range architectures {
		paths = append(paths, ApkPublicPath(architecture))
	}

	return b.task(envelope{
		name:          fmt.Sprintf("(%s) Push task", b.cfg.Project),
		description:   "Upload signed release builds of the application to Google Play",
		workerType:    workerType,
		provisionerID: b.cfg.ScriptworkerProvisioner,
		scopes: []string{
			fmt.Sprintf("project:mobile:%s:releng:googleplay:product:%s", b.cfg.Project, product),
		},
		treeherder: domain.Treeherder{
			JobKind: "other",
			Machine: domain.Machine{Platform: "android-all"},
			Symbol:  "gp",
			Tier:    1,
		},
		payload: domain.PushPayload{
			Commit:          true,
			GooglePlayTrack: "nightly",
			UpstreamArtifacts: []domain.UpstreamArtifact{{
				Paths:    paths,
				TaskID:   signTaskID,
				TaskType: "signing",
			}},
		},
		dependencies: []string{signTaskID},
	})
}

// NimbledroidTask builds the performance-upload task. It depends on the
// nightly build task so performance numbers track the same revision.
func (b *Builder) NimbledroidTask(buildTaskID string) domain.TaskDescriptor {
	return b.inRepoTask(inRepoEnvelope{
		name:        fmt.Sprintf("(%s) Upload Debug APK to Nimbledroid", b.cfg.Project),
		description: "Upload APKs to Nimbledroid for performance measurement and tracking.",
		fullCommand: "./gradlew --no-daemon clean assembleDebug" +
			" && python automation/taskcluster/upload_apk_nimbledroid.py",
		scopes:       []string{b.secretScope("nimbledroid")},
		dependencies: []string{buildTaskID},
	})
}
