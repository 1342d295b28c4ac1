package models

import "time"

type BatchJob struct {
	ID        string       `json:"id"`
	Request   BatchRequest `json:"request"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Report    *BatchReport `json:"report,omitempty"`
	Error     string       `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
