package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const storeTimeout = 5 * time.Second

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}

				q.processMessage(ctx, msg, workerID)
			}
		}
	}()

	return nil
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	var job models.BatchJob
	if err := json.Unmarshal(msg.Body, &job); err != nil || job.ID == "" {
		q.logger.Error("Failed to unmarshal job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		q.rejected.Add(1)
		msg.Nack(false, false) // Don't requeue malformed messages
		return
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.Int("worker_id", workerID))

	job.Status = models.StatusProcessing
	q.storeJob(&job)

	report, err := q.processJob(ctx, &job)
	if ctx.Err() != nil {
		q.requeueJob(msg, &job, err)
		return
	}

	if err != nil {
		job.Status = models.StatusFailed
		job.Error = err.Error()
		q.failed.Add(1)
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.Error(err))
	} else {
		job.Status = models.StatusCompleted
		job.Report = report
		q.completed.Add(1)
		q.logger.Info("Job completed successfully",
			zap.String("job_id", job.ID),
			zap.Int("succeeded", report.Succeeded()),
			zap.Int("failed", report.Failed()))
	}

	q.storeJob(&job)

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}

// requeueJob hands a batch cut short by shutdown back to the broker so the
// next worker runs it from the start.
func (q *QueueService) requeueJob(msg amqp.Delivery, job *models.BatchJob, cause error) {
	job.Status = models.StatusPending
	job.Report = nil
	job.Error = ""
	q.requeued.Add(1)
	q.logger.Warn("Job interrupted, requeueing",
		zap.String("job_id", job.ID),
		zap.Error(cause))

	q.storeJob(job)

	if err := msg.Nack(false, true); err != nil {
		q.logger.Error("Failed to requeue message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}

// storeJob saves job state on its own deadline so the final status is
// written even after the worker context is cancelled.
func (q *QueueService) storeJob(job *models.BatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := q.store.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to store job",
			zap.String("job_id", job.ID),
			zap.String("status", job.Status),
			zap.Error(err))
	}
}
