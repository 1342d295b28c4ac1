package queue

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-annotator/internal/models"
)

func (q *QueueService) processJob(ctx context.Context, job *models.BatchJob) (*models.BatchReport, error) {
	req := job.Request
	report, err := q.runner.Run(ctx, req.InputDir, req.OutputDir, req.TargetSize())
	if err != nil {
		return nil, fmt.Errorf("failed to run batch: %w", err)
	}

	report.ID = job.ID
	q.store.MirrorReport(ctx, job.ID, report)
	return report, nil
}
