package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/decide/internal/app"
	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig() domain.Config {
	return domain.Config{
		TaskID:     "decision-task-id",
		RepoURL:    "https://github.com/acme/acme-app",
		Branch:     "main",
		Revision:   "abcdef0",
		WorkerType: "github-worker",

		Project:                 "acme-app",
		Owner:                   "android-team@acme.example",
		Source:                  "https://github.com/acme/acme-app/raw/main/.taskcluster.yml",
		Image:                   "acme/android-build:1.0",
		CheckoutDir:             "/build/acme-app",
		SchedulerID:             "taskcluster-github",
		ProvisionerID:           "aws-provisioner-v1",
		ScriptworkerProvisioner: "scriptworker-prov-v1",
		SigningFormat:           "autograph_apk",
		SigningWorkerType:       "mobile-signing-v1",
		SigningDepWorkerType:    "mobile-signing-dep-v1",
		PushWorkerType:          "mobile-pushapk-v1",
		PushDepWorkerType:       "mobile-pushapk-dep-v1",
		IndexNamespace:          "project.mobile.acme-app",
	}
}

// submitted is one task as it went over the wire, in submission order.
type submitted struct {
	taskID string
	task   domain.TaskDescriptor
}

// harness wires an App against mocks, recording every submitted task.
type harness struct {
	app       *app.App
	loader    *mocks.MockConfigLoader
	variants  *mocks.MockVariantSource
	snapshots *mocks.MockSnapshotWriter
	logger    *mocks.MockLogger
	tasks     *[]submitted
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	queue := mocks.NewMockQueue(ctrl)
	ids := mocks.NewMockIDGenerator(ctrl)
	loader := mocks.NewMockConfigLoader(ctrl)
	variants := mocks.NewMockVariantSource(ctrl)
	snapshots := mocks.NewMockSnapshotWriter(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	tasks := &[]submitted{}
	next := 0
	ids.EXPECT().NewTaskID().DoAndReturn(func() string {
		next++
		return fmt.Sprintf("task-%03d", next)
	}).AnyTimes()
	queue.EXPECT().
		CreateTask(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, taskID string, task domain.TaskDescriptor) error {
			*tasks = append(*tasks, submitted{taskID: taskID, task: task})
			return nil
		}).
		AnyTimes()

	clock := clockwork.NewFakeClockAt(time.Date(2018, 9, 3, 12, 30, 0, 0, time.UTC))

	return &harness{
		app:       app.New(loader, queue, ids, variants, snapshots, logger, clock),
		loader:    loader,
		variants:  variants,
		snapshots: snapshots,
		logger:    logger,
		tasks:     tasks,
	}
}

func (h *harness) names() []string {
	names := make([]string, 0, len(*h.tasks))
	for _, s := range *h.tasks {
		names = append(names, s.task.Metadata.Name)
	}
	return names
}

func (h *harness) byName(t *testing.T, name string) submitted {
	t.Helper()
	for _, s := range *h.tasks {
		if s.task.Metadata.Name == name {
			return s
		}
	}
	t.Fatalf("no task named %q was submitted", name)
	return submitted{}
}

func TestPullRequest(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load().Return(testConfig(), nil)
	h.variants.EXPECT().
		ListBuildVariants(gomock.Any()).
		Return([]string{"armDebug", "armRelease", "aarch64Debug"}, nil)
	h.snapshots.EXPECT().Write(gomock.Any()).DoAndReturn(func(records map[string]domain.TaskRecord) error {
		assert.Len(t, records, 10)
		return nil
	})

	require.NoError(t, h.app.PullRequest(context.Background()))

	assert.Equal(t, []string{
		"detekt",
		"ktlint",
		"compare-locales",
		"lint",
		"test: armDebug",
		"assemble: armDebug",
		"test: armRelease",
		"assemble: armRelease",
		"test: aarch64Debug",
		"assemble: aarch64Debug",
	}, h.names())

	// Pull requests never reach the signing infrastructure.
	for _, s := range *h.tasks {
		assert.NotEqual(t, "scriptworker-prov-v1", s.task.ProvisionerID, s.task.Metadata.Name)
	}
}

func TestBranchPush(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load().Return(testConfig(), nil)
	h.variants.EXPECT().
		ListBuildVariants(gomock.Any()).
		Return([]string{"armDebug", "armRelease", "aarch64Debug"}, nil)
	h.snapshots.EXPECT().Write(gomock.Any()).DoAndReturn(func(records map[string]domain.TaskRecord) error {
		assert.Len(t, records, 11)
		return nil
	})

	require.NoError(t, h.app.BranchPush(context.Background()))
	require.Len(t, *h.tasks, 11)

	armAssemble := h.byName(t, "assemble: armDebug")
	aarch64Assemble := h.byName(t, "assemble: aarch64Debug")
	signing := h.byName(t, "dep-sign")

	assert.Equal(t, "mobile-signing-dep-v1", signing.task.WorkerType)
	assert.Equal(t, []string{
		"decision-task-id",
		armAssemble.taskID,
		aarch64Assemble.taskID,
	}, signing.task.Dependencies)

	payload, ok := signing.task.Payload.(domain.SigningPayload)
	require.True(t, ok)
	require.Len(t, payload.UpstreamArtifacts, 2)
	assert.Equal(t, armAssemble.taskID, payload.UpstreamArtifacts[0].TaskID)
	assert.Equal(t, []string{"public/target.arm.apk"}, payload.UpstreamArtifacts[0].Paths)
	assert.Equal(t, aarch64Assemble.taskID, payload.UpstreamArtifacts[1].TaskID)
	assert.Equal(t, []string{"public/target.aarch64.apk"}, payload.UpstreamArtifacts[1].Paths)
}

func TestBranchPush_MissingPerformanceVariant(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load().Return(testConfig(), nil)
	// aarch64 ships no debug build, so the performance harness has nothing
	// to sign for that architecture.
	h.variants.EXPECT().
		ListBuildVariants(gomock.Any()).
		Return([]string{"armDebug", "aarch64Release"}, nil)

	err := h.app.BranchPush(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPerfVariantNotFound)
}

func TestNightly(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load().Return(testConfig(), nil)
	h.snapshots.EXPECT().Write(gomock.Any()).Return(nil)

	require.NoError(t, h.app.Nightly(context.Background(), "2018-09-03", false))
	require.Len(t, *h.tasks, 4)

	build := h.byName(t, "(acme-app) Build task")
	signing := h.byName(t, "(acme-app) Signing task")
	push := h.byName(t, "(acme-app) Push task")
	nimbledroid := h.byName(t, "(acme-app) Upload Debug APK to Nimbledroid")

	assert.Equal(t, []string{"decision-task-id", build.taskID}, signing.task.Dependencies)
	assert.Equal(t, []string{"decision-task-id", signing.taskID}, push.task.Dependencies)
	assert.Equal(t, []string{"decision-task-id", build.taskID}, nimbledroid.task.Dependencies)

	assert.Equal(t, "mobile-signing-v1", signing.task.WorkerType)
	assert.Contains(t, signing.task.Routes,
		"index.project.mobile.acme-app.signed-nightly.nightly.2018.9.3.latest")

	assert.Equal(t, "mobile-pushapk-v1", push.task.WorkerType)
	assert.Contains(t, push.task.Scopes,
		"project:mobile:acme-app:releng:googleplay:product:acme-app")
}

func TestNightly_Staging(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load().Return(testConfig(), nil)
	h.snapshots.EXPECT().Write(gomock.Any()).Return(nil)

	require.NoError(t, h.app.Nightly(context.Background(), "2018-09-03", true))

	signing := h.byName(t, "(acme-app) Signing task")
	push := h.byName(t, "(acme-app) Push task")

	assert.Equal(t, "mobile-signing-dep-v1", signing.task.WorkerType)
	assert.Contains(t, signing.task.Scopes,
		"project:mobile:acme-app:releng:signing:cert:dep-signing")

	assert.Equal(t, "mobile-pushapk-dep-v1", push.task.WorkerType)
	assert.Equal(t, []string{
		"project:mobile:acme-app:releng:googleplay:product:acme-app:dep",
	}, push.task.Scopes)
}

func TestNightly_InvalidDate(t *testing.T) {
	h := newHarness(t)

	err := h.app.Nightly(context.Background(), "yesterday", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	assert.Empty(t, *h.tasks)
}

func TestSkipMarker(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig()
	cfg.PRTitle = "Fix typo in README [ci skip]"
	h.loader.EXPECT().Load().Return(cfg, nil)
	h.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, h.app.PullRequest(context.Background()))
	assert.Empty(t, *h.tasks)
}

func TestEmptyVariantList(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load().Return(testConfig(), nil)
	h.variants.EXPECT().ListBuildVariants(gomock.Any()).Return([]string{}, nil)

	err := h.app.PullRequest(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoBuildVariants)
}

func TestConfigValidationFailure(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig()
	cfg.TaskID = ""
	h.loader.EXPECT().Load().Return(cfg, nil)

	err := h.app.PullRequest(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
	assert.Empty(t, *h.tasks)
}
