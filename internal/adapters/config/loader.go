// Package config assembles the run configuration for the decision task.
//
// Run identity (task ID, repository, revision, worker type) comes from the
// CI environment. Static project settings come from an optional decide.yml
// next to the working directory, falling back to compiled defaults. Missing
// environment values stay empty here; Config.Validate rejects them before
// any task is built.
package config

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project settings file looked up in the working directory.
const DefaultFilename = "decide.yml"

const defaultQueueBaseURL = "http://taskcluster/queue/v1"

// Loader implements ports.ConfigLoader. The configuration is read once and
// cached for the lifetime of the process.
type Loader struct {
	Filename string

	once sync.Once
	cfg  domain.Config
	err  error
}

// NewLoader creates a Loader reading decide.yml from the working directory.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load returns the run configuration.
func (l *Loader) Load() (domain.Config, error) {
	l.once.Do(func() {
		l.cfg, l.err = load(l.Filename)
	})
	return l.cfg, l.err
}

// settings is the decide.yml schema. Every field is optional; empty fields
// keep their defaults.
type settings struct {
	Project                 string `yaml:"project"`
	Owner                   string `yaml:"owner"`
	Source                  string `yaml:"source"`
	Image                   string `yaml:"image"`
	CheckoutDir             string `yaml:"checkoutDir"`
	SchedulerID             string `yaml:"schedulerId"`
	ProvisionerID           string `yaml:"provisionerId"`
	ScriptworkerProvisioner string `yaml:"scriptworkerProvisionerId"`
	SigningFormat           string `yaml:"signingFormat"`
	SigningWorkerType       string `yaml:"signingWorkerType"`
	SigningDepWorkerType    string `yaml:"signingDepWorkerType"`
	PushWorkerType          string `yaml:"pushWorkerType"`
	PushDepWorkerType       string `yaml:"pushDepWorkerType"`
	IndexNamespace          string `yaml:"indexNamespace"`
}

func load(filename string) (domain.Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(filename) //nolint:gosec // path is a fixed project file
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No settings file, defaults apply.
	case err != nil:
		return domain.Config{}, zerr.Wrap(err, "failed to read settings file")
	default:
		var s settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return domain.Config{}, zerr.Wrap(err, "failed to parse settings file")
		}
		applySettings(&cfg, s)
	}

	cfg.TaskID = os.Getenv("TASK_ID")
	cfg.RepoURL = os.Getenv("MOBILE_HEAD_REPOSITORY")
	cfg.Branch = os.Getenv("MOBILE_HEAD_BRANCH")
	cfg.Revision = os.Getenv("MOBILE_HEAD_REV")
	cfg.PRTitle = os.Getenv("GITHUB_PULL_TITLE")
	cfg.WorkerType = os.Getenv("BUILD_WORKER_TYPE")
	if url := os.Getenv("TASKCLUSTER_QUEUE_URL"); url != "" {
		cfg.QueueBaseURL = url
	}

	return cfg, nil
}

func applySettings(cfg *domain.Config, s settings) {
	override(&cfg.Project, s.Project)
	override(&cfg.Owner, s.Owner)
	override(&cfg.Source, s.Source)
	override(&cfg.Image, s.Image)
	override(&cfg.CheckoutDir, s.CheckoutDir)
	override(&cfg.SchedulerID, s.SchedulerID)
	override(&cfg.ProvisionerID, s.ProvisionerID)
	override(&cfg.ScriptworkerProvisioner, s.ScriptworkerProvisioner)
	override(&cfg.SigningFormat, s.SigningFormat)
	override(&cfg.SigningWorkerType, s.SigningWorkerType)
	override(&cfg.SigningDepWorkerType, s.SigningDepWorkerType)
	override(&cfg.PushWorkerType, s.PushWorkerType)
	override(&cfg.PushDepWorkerType, s.PushDepWorkerType)
	override(&cfg.IndexNamespace, s.IndexNamespace)
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func defaults() domain.Config {
	return domain.Config{
		QueueBaseURL:            defaultQueueBaseURL,
		Project:                 "reference-browser",
		Owner:                   "android-components-team@mozilla.com",
		Source:                  "https://github.com/mozilla-mobile/reference-browser",
		Image:                   "mozillamobile/android-components:1.15",
		CheckoutDir:             "/build/reference-browser",
		SchedulerID:             "taskcluster-github",
		ProvisionerID:           "aws-provisioner-v1",
		ScriptworkerProvisioner: "scriptworker-prov-v1",
		SigningFormat:           "autograph_apk_reference_browser",
		SigningWorkerType:       "mobile-signing-v1",
		SigningDepWorkerType:    "mobile-signing-dep-v1",
		PushWorkerType:          "mobile-pushapk-v1",
		PushDepWorkerType:       "mobile-pushapk-dep-v1",
		IndexNamespace:          "project.mobile.reference-browser",
	}
}
