package domain

import "go.trai.ch/zerr"

// SkipMarker in a pull request title short-circuits the whole decision task:
// no tasks are built and the run exits cleanly.
const SkipMarker = "[ci skip]"

// Config carries everything the task builders need for one decision-task run.
// It is constructed once at process start; core logic performs no ambient
// environment lookups.
type Config struct {
	// Run identity, from the CI environment.
	TaskID     string
	RepoURL    string
	Branch     string
	Revision   string
	PRTitle    string
	WorkerType string

	// Queue collaborator endpoint.
	QueueBaseURL string

	// Static project settings, from decide.yml or compiled defaults.
	Project                 string
	Owner                   string
	Source                  string
	Image                   string
	CheckoutDir             string
	SchedulerID             string
	ProvisionerID           string
	ScriptworkerProvisioner string
	SigningFormat           string
	SigningWorkerType       string
	SigningDepWorkerType    string
	PushWorkerType          string
	PushDepWorkerType       string
	IndexNamespace          string
}

// Validate checks the configuration values every task payload embeds.
// A decision task submitted with an empty worker type or repository URL would
// create tasks with broken commands, so the run refuses to start instead.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"task id", c.TaskID},
		{"repository url", c.RepoURL},
		{"revision", c.Revision},
		{"build worker type", c.WorkerType},
	}
	for _, field := range required {
		if field.value == "" {
			return zerr.With(ErrMissingConfig, "field", field.name)
		}
	}
	return nil
}
