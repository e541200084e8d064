// Package manifest records each static export of the site: when it ran,
// where it wrote, and which pages it produced.
package manifest

import "time"

// Status is the outcome of a build.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Build is one export run.
type Build struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	OutputDir  string    `json:"output_dir"`
	DataAPIURL string    `json:"data_api_url"`
	PageCount  int       `json:"page_count"`
	AssetCount int       `json:"asset_count"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Pages      []Page    `json:"pages,omitempty"`
}

// Duration returns how long the build ran.
func (b Build) Duration() time.Duration {
	return b.FinishedAt.Sub(b.StartedAt)
}

// Page is one file written by a build.
type Page struct {
	Path       string `json:"path"`
	StatusCode int    `json:"status_code"`
	Bytes      int64  `json:"bytes"`
}
