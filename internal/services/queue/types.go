package queue

import (
	"context"

	"github.com/phambaophuc/image-annotator/internal/models"
)

// Runner executes one annotate batch.
type Runner interface {
	Run(ctx context.Context, inputDir, outputDir string, size models.Size) (*models.BatchReport, error)
}

// JobStore persists job state and mirrors finished reports.
type JobStore interface {
	SaveJob(ctx context.Context, job *models.BatchJob) error
	MirrorReport(ctx context.Context, jobID string, report *models.BatchReport)
}
