package domain

import "time"

// Run statuses accepted by the CI provider's status filter.
const (
	RunStatusQueued     = "queued"
	RunStatusInProgress = "in_progress"
	RunStatusCompleted  = "completed"
	RunStatusSuccess    = "success"
	RunStatusFailure    = "failure"
)

const shortSHALength = 7

// WorkflowRun is a single CI run as reported by the provider.
type WorkflowRun struct {
	ID         int64
	HeadBranch string
	HeadSHA    string
	Status     string
	Conclusion string
	CreatedAt  time.Time
}

// WorkflowRunRef is the run summary the provider attaches to each artifact.
type WorkflowRunRef struct {
	ID         int64
	HeadBranch string
	HeadSHA    string
}

// Artifact is a named build output uploaded by a run.
type Artifact struct {
	ID          int64
	Name        string
	SizeInBytes int64
	Expired     bool
	WorkflowRun *WorkflowRunRef
}

// ShortSHA truncates a commit hash to its 7 character prefix.
func ShortSHA(sha string) string {
	if len(sha) <= shortSHALength {
		return sha
	}
	return sha[:shortSHALength]
}

// LatestRun picks the most recently created run. Runs sharing a creation
// time keep the provider's order, so the earliest listed one wins.
func LatestRun(runs []WorkflowRun) (*WorkflowRun, bool) {
	if len(runs) == 0 {
		return nil, false
	}
	latest := 0
	for i := 1; i < len(runs); i++ {
		if runs[i].CreatedAt.After(runs[latest].CreatedAt) {
			latest = i
		}
	}
	return &runs[latest], true
}

// FindArtifact returns the first artifact whose name equals name exactly.
func FindArtifact(artifacts []Artifact, name string) (*Artifact, bool) {
	for i := range artifacts {
		if artifacts[i].Name == name {
			return &artifacts[i], true
		}
	}
	return nil, false
}

// FindFirstArtifact tries each name in order and returns the first hit.
func FindFirstArtifact(artifacts []Artifact, names ...string) (*Artifact, bool) {
	for _, name := range names {
		if a, ok := FindArtifact(artifacts, name); ok {
			return a, true
		}
	}
	return nil, false
}
