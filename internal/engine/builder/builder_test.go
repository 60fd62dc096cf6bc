package builder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/engine/builder"
)

var testNow = time.Date(2018, 9, 3, 12, 30, 0, 0, time.UTC)

func testConfig() domain.Config {
	return domain.Config{
		TaskID:                  "decision-task-id",
		RepoURL:                 "https://github.com/acme/app",
		Branch:                  "main",
		Revision:                "abcdef0",
		WorkerType:              "github-worker",
		Project:                 "acme-app",
		Owner:                   "mobile-team@acme.example",
		Source:                  "https://github.com/acme/app",
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

func newBuilder() *builder.Builder {
	return builder.New(testConfig(), testNow)
}

func TestEnvelope_RunIndependentFields(t *testing.T) {
	task := newBuilder().DetektTask()

	assert.Equal(t, 5, task.Retries)
	assert.Equal(t, "lowest", task.Priority)
	assert.Equal(t, "all-completed", task.Requires)
	assert.Equal(t, "taskcluster-github", task.SchedulerID)
	assert.Equal(t, "aws-provisioner-v1", task.ProvisionerID)
	assert.Equal(t, "decision-task-id", task.TaskGroupID)
	assert.Equal(t, "mobile-team@acme.example", task.Metadata.Owner)

	// One frozen clock for the whole run.
	assert.Equal(t, "2018-09-03T12:30:00.000Z", task.Created)
	assert.Equal(t, "2018-09-04T12:30:00.000Z", task.Deadline)
	assert.Equal(t, "2019-09-03T12:30:00.000Z", task.Expires)

	// The decision task's own group is always the first dependency.
	assert.Equal(t, []string{"decision-task-id"}, task.Dependencies)
	assert.Equal(t, []string{"tc-treeherder.v2.acme-app.abcdef0"}, task.Routes)
}

func TestEnvelope_TimestampsConsistentAcrossTasks(t *testing.T) {
	b := newBuilder()
	first := b.DetektTask()
	second := b.LintTask()
	assert.Equal(t, first.Created, second.Created)
	assert.Equal(t, first.Expires, second.Expires)
}

func TestGradleTask_CommandShape(t *testing.T) {
	task := newBuilder().DetektTask()

	payload, ok := task.Payload.(domain.DockerPayload)
	require.True(t, ok)

	require.Len(t, payload.Command, 4)
	assert.Equal(t, []string{"/bin/bash", "--login", "-cx"}, payload.Command[:3])
	assert.Contains(t, payload.Command[3], "git clone https://github.com/acme/app")
	assert.Contains(t, payload.Command[3], "cd acme-app")
	assert.Contains(t, payload.Command[3], "git checkout abcdef0")
	assert.Contains(t, payload.Command[3], "./gradlew --no-daemon clean detekt")

	assert.Equal(t, 7200, payload.MaxRunTime)
	assert.Equal(t, "acme/android-build:1.0", payload.Image)
	assert.Equal(t, map[string]string{"TASK_GROUP_ID": "decision-task-id"}, payload.Env)
	assert.True(t, payload.Features["taskclusterProxy"])
	assert.False(t, payload.Features["chainOfTrust"])
}
