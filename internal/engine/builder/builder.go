// Package builder constructs task descriptors for the decision task.
//
// Builders are pure: they derive descriptors from the run configuration, the
// frozen run timestamp and their parameters. Identifier generation and
// submission belong to the task graph.
package builder

import (
	"fmt"
	"strings"
	"time"

	"go.trai.ch/decide/internal/core/domain"
)

const (
	// stringDateLayout matches the timestamp format the queue service expects.
	stringDateLayout = "2006-01-02T15:04:05.000Z"

	buildMaxRunTime   = 7200
	signingMaxRunTime = 3600
)

// Builder builds task descriptors for one decision-task run. The creation
// timestamp is captured once at construction so every descriptor of a run
// shares consistent created/deadline/expires values.
type Builder struct {
	cfg domain.Config
	now time.Time
}

// New creates a Builder for the given configuration and run timestamp.
func New(cfg domain.Config, now time.Time) *Builder {
	return &Builder{cfg: cfg, now: now.UTC()}
}

// envelope carries the per-task parameters of the generic descriptor
// constructor. Upstream dependency IDs must already be held by the caller,
// which makes forward references impossible by construction.
type envelope struct {
	name          string
	description   string
	workerType    string
	provisionerID string
	scopes        []string
	treeherder    domain.Treeherder
	payload       any
	dependencies  []string
	routes        []string
}

// task fills in the run-independent fields of a descriptor: fixed retries and
// priority, the shared timestamps, and a dependency list seeded with the
// decision task's own group ID.
func (b *Builder) task(e envelope) domain.TaskDescriptor {
	provisionerID := e.provisionerID
	if provisionerID == "" {
		provisionerID = b.cfg.ProvisionerID
	}

	return domain.TaskDescriptor{
		ProvisionerID: provisionerID,
		WorkerType:    e.workerType,
		SchedulerID:   b.cfg.SchedulerID,
		TaskGroupID:   b.cfg.TaskID,
		Created:       b.stringDate(b.now),
		Deadline:      b.stringDate(b.now.Add(24 * time.Hour)),
		Expires:       b.stringDate(b.now.AddDate(1, 0, 0)),
		Retries:       5,
		Priority:      "lowest",
		Requires:      "all-completed",
		Dependencies:  append([]string{b.cfg.TaskID}, e.dependencies...),
		Routes: append(
			[]string{fmt.Sprintf("tc-treeherder.v2.%s.%s", b.cfg.Project, b.cfg.Revision)},
			e.routes...,
		),
		Scopes:  e.scopes,
		Tags:    map[string]string{},
		Payload: e.payload,
		Extra:   domain.Extra{Treeherder: e.treeherder},
		Metadata: domain.Metadata{
			Name:        e.name,
			Description: e.description,
			Owner:       b.cfg.Owner,
			Source:      b.cfg.Source,
		},
	}
}

// inRepoTask wraps a full shell command into a docker-worker task that clones
// the repository at the run's revision before executing it.
func (b *Builder) inRepoTask(e inRepoEnvelope) domain.TaskDescriptor {
	command := fmt.Sprintf(
		"cd .. && git clone %s && cd %s && git config advice.detachedHead false && git checkout %s && %s",
		b.cfg.RepoURL, b.cfg.Project, b.cfg.Revision, e.fullCommand,
	)

	return b.task(envelope{
		name:         e.name,
		description:  e.description,
		workerType:   b.cfg.WorkerType,
		scopes:       e.scopes,
		treeherder:   e.treeherder,
		dependencies: e.dependencies,
		payload: domain.DockerPayload{
			Features: map[string]bool{
				"taskclusterProxy": true,
				"chainOfTrust":     e.chainOfTrust,
			},
			MaxRunTime: buildMaxRunTime,
			Image:      b.cfg.Image,
			Command:    []string{"/bin/bash", "--login", "-cx", command},
			Artifacts:  e.artifacts,
			Env: map[string]string{
				"TASK_GROUP_ID": b.cfg.TaskID,
			},
		},
	})
}

type inRepoEnvelope struct {
	name         string
	description  string
	fullCommand  string
	chainOfTrust bool
	scopes       []string
	treeherder   domain.Treeherder
	artifacts    map[string]domain.Artifact
	dependencies []string
}

// gradleTask runs a gradle invocation inside a fresh checkout.
func (b *Builder) gradleTask(e inRepoEnvelope) domain.TaskDescriptor {
	e.fullCommand = "./gradlew --no-daemon clean " + e.fullCommand
	return b.inRepoTask(e)
}

func (b *Builder) stringDate(t time.Time) string {
	return t.UTC().Format(stringDateLayout)
}

func (b *Builder) secretScope(name string) string {
	return fmt.Sprintf("secrets:get:project/mobile/%s/%s", b.cfg.Project, name)
}

func (b *Builder) signingCertScope(cert string) string {
	return fmt.Sprintf("project:mobile:%s:releng:signing:cert:%s", b.cfg.Project, cert)
}

func (b *Builder) signingFormatScope() string {
	return fmt.Sprintf("project:mobile:%s:releng:signing:format:%s", b.cfg.Project, b.cfg.SigningFormat)
}

// capitalize upper-cases the first letter only, matching gradle task naming
// ("armDebug" becomes "ArmDebug").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
