package models

import "time"

type BatchRequest struct {
	InputDir  string `json:"input_dir" binding:"required"`
	OutputDir string `json:"output_dir" binding:"required"`
	Width     int    `json:"width" binding:"omitempty,min=1"`
	Height    int    `json:"height" binding:"omitempty,min=1"`
}

// TargetSize falls back to DefaultSize when neither dimension is given.
func (r BatchRequest) TargetSize() Size {
	if r.Width == 0 && r.Height == 0 {
		return DefaultSize
	}
	return Size{Width: r.Width, Height: r.Height}
}

type BatchReport struct {
	ID         string       `json:"id,omitempty"`
	InputDir   string       `json:"input_dir"`
	OutputDir  string       `json:"output_dir"`
	Size       Size         `json:"size"`
	Files      []FileResult `json:"files"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

type FileResult struct {
	Name    string           `json:"name"`
	Results []PipelineResult `json:"results"`
}

type PipelineResult struct {
	Backend string `json:"backend"`
	Status  string `json:"status"`
	Output  string `json:"output,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
	ResultSkipped   = "skipped"
)

func (r *BatchReport) Succeeded() int {
	return r.count(ResultSucceeded)
}

// Failed counts failed and skipped pipeline runs.
func (r *BatchReport) Failed() int {
	return r.count(ResultFailed) + r.count(ResultSkipped)
}

func (r *BatchReport) count(status string) int {
	n := 0
	for _, f := range r.Files {
		for _, res := range f.Results {
			if res.Status == status {
				n++
			}
		}
	}
	return n
}
