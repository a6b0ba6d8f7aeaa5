package github

import "time"

// GitHub Actions API response structures
type workflowRunsResponse struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []workflowRun `json:"workflow_runs"`
}

type workflowRun struct {
	ID         int64     `json:"id"`
	HeadBranch string    `json:"head_branch"`
	HeadSHA    string    `json:"head_sha"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	CreatedAt  time.Time `json:"created_at"`
}

type artifactsResponse struct {
	TotalCount int        `json:"total_count"`
	Artifacts  []artifact `json:"artifacts"`
}

type artifact struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	SizeInBytes int64           `json:"size_in_bytes"`
	Expired     bool            `json:"expired"`
	WorkflowRun *artifactRunRef `json:"workflow_run"`
}

type artifactRunRef struct {
	ID         int64  `json:"id"`
	HeadBranch string `json:"head_branch"`
	HeadSHA    string `json:"head_sha"`
}
