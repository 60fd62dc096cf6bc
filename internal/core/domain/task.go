package domain

// TaskDescriptor is one schedulable unit of work as submitted to the remote
// task queue. It is created once by a builder and never mutated afterwards;
// it is passed by value into the task graph.
//
// The JSON shape mirrors the queue service's task definition schema.
type TaskDescriptor struct {
	ProvisionerID string            `json:"provisionerId"`
	WorkerType    string            `json:"workerType"`
	SchedulerID   string            `json:"schedulerId"`
	TaskGroupID   string            `json:"taskGroupId"`
	Created       string            `json:"created"`
	Deadline      string            `json:"deadline"`
	Expires       string            `json:"expires"`
	Retries       int               `json:"retries"`
	Priority      string            `json:"priority"`
	Requires      string            `json:"requires"`
	Dependencies  []string          `json:"dependencies"`
	Routes        []string          `json:"routes"`
	Scopes        []string          `json:"scopes"`
	Tags          map[string]string `json:"tags"`
	Payload       any               `json:"payload"`
	Extra         Extra             `json:"extra"`
	Metadata      Metadata          `json:"metadata"`
}

// Extra carries the result-tracking metadata block.
type Extra struct {
	Treeherder Treeherder `json:"treeherder"`
}

// Treeherder describes how a task is indexed by the result-tracking UI.
type Treeherder struct {
	JobKind string  `json:"jobKind,omitempty"`
	Machine Machine `json:"machine,omitempty"`
	Symbol  string  `json:"symbol,omitempty"`
	Tier    int     `json:"tier,omitempty"`
}

// Machine names the display platform a job ran on.
type Machine struct {
	Platform string `json:"platform,omitempty"`
}

// Metadata identifies a task to humans.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Source      string `json:"source"`
}

// Artifact is one output a task publishes, keyed by its public path.
type Artifact struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Expires string `json:"expires"`
}

// DockerPayload is the payload for tasks running in a docker worker.
type DockerPayload struct {
	Features   map[string]bool     `json:"features"`
	MaxRunTime int                 `json:"maxRunTime"`
	Image      string              `json:"image"`
	Command    []string            `json:"command"`
	Artifacts  map[string]Artifact `json:"artifacts,omitempty"`
	Env        map[string]string   `json:"env,omitempty"`
}

// UpstreamArtifact references artifacts of an already-scheduled task, used by
// signing and publishing workers.
type UpstreamArtifact struct {
	Formats  []string `json:"formats,omitempty"`
	Paths    []string `json:"paths"`
	TaskID   string   `json:"taskId"`
	TaskType string   `json:"taskType"`
}

// SigningPayload is the payload for signing workers.
type SigningPayload struct {
	MaxRunTime        int                `json:"maxRunTime"`
	UpstreamArtifacts []UpstreamArtifact `json:"upstreamArtifacts"`
}

// PushPayload is the payload for the Google Play publishing worker.
type PushPayload struct {
	Commit            bool               `json:"commit"`
	GooglePlayTrack   string             `json:"google_play_track"`
	UpstreamArtifacts []UpstreamArtifact `json:"upstreamArtifacts"`
}

// TaskRecord is the minimal per-task entry kept in the task graph snapshot.
// The graph only remembers that a task was scheduled and under which ID.
type TaskRecord struct {
	TaskID string `json:"task"`
}
