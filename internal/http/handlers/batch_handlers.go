package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/phambaophuc/image-annotator/internal/services/processor"
	"github.com/phambaophuc/image-annotator/internal/services/storage"
	"go.uber.org/zap"
)

type BatchRunner interface {
	Run(ctx context.Context, inputDir, outputDir string, size models.Size) (*models.BatchReport, error)
}

type JobStore interface {
	SaveJob(ctx context.Context, job *models.BatchJob) error
	GetJob(ctx context.Context, id string) (*models.BatchJob, error)
	MirrorReport(ctx context.Context, jobID string, report *models.BatchReport)
	HealthCheck(ctx context.Context) map[string]string
	GetStoreStats(ctx context.Context) (map[string]interface{}, error)
}

type JobQueue interface {
	PublishJob(ctx context.Context, job *models.BatchJob) error
	HealthCheck() string
	GetQueueStats() (map[string]interface{}, error)
}

type BatchHandler struct {
	runner BatchRunner
	store  JobStore
	queue  JobQueue
	logger *zap.Logger
}

// NewBatchHandler wires the handler. queue may be nil, in which case batches
// run inside the request.
func NewBatchHandler(runner BatchRunner, store JobStore, queue JobQueue, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		runner: runner,
		store:  store,
		queue:  queue,
		logger: logger,
	}
}

// === MAIN API ENDPOINTS ===

func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.TargetSize().Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	job := &models.BatchJob{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	if h.queue != nil {
		h.enqueue(c, job)
		return
	}
	h.runInline(c, job)
}

func (h *BatchHandler) GetBatch(c *gin.Context) {
	job, err := h.store.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			h.respondError(c, http.StatusNotFound, "Batch not found")
			return
		}
		h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load batch")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: job})
}

// HealthCheck
func (h *BatchHandler) HealthCheck(c *gin.Context) {
	services := h.store.HealthCheck(c.Request.Context())
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = "not configured"
	}

	overall := calculateOverallHealth(services)
	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

// Stats reports job store and queue counters.
func (h *BatchHandler) Stats(c *gin.Context) {
	storeStats, err := h.store.GetStoreStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read store stats", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to read stats")
		return
	}

	stats := gin.H{"store": storeStats}
	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Error("Failed to read queue stats", zap.Error(err))
			h.respondError(c, http.StatusInternalServerError, "Failed to read stats")
			return
		}
		stats["queue"] = queueStats
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: stats})
}

// === HELPERS ===

func (h *BatchHandler) enqueue(c *gin.Context, job *models.BatchJob) {
	ctx := c.Request.Context()
	if err := h.store.SaveJob(ctx, job); err != nil {
		h.logger.Error("Failed to store job", zap.String("job_id", job.ID), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to create batch")
		return
	}

	if err := h.queue.PublishJob(ctx, job); err != nil {
		h.logger.Error("Failed to publish job", zap.String("job_id", job.ID), zap.Error(err))
		job.Status = models.StatusFailed
		job.Error = err.Error()
		h.saveJob(ctx, job)
		h.respondError(c, http.StatusInternalServerError, "Failed to queue batch")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{Success: true, Data: job})
}

func (h *BatchHandler) runInline(c *gin.Context, job *models.BatchJob) {
	ctx := c.Request.Context()
	req := job.Request

	report, err := h.runner.Run(ctx, req.InputDir, req.OutputDir, req.TargetSize())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, processor.ErrInputDirectory) || errors.Is(err, models.ErrInvalidSize) {
			status = http.StatusBadRequest
		}
		h.logger.Warn("Batch failed", zap.String("job_id", job.ID), zap.Error(err))
		h.respondError(c, status, err.Error())
		return
	}

	report.ID = job.ID
	h.store.MirrorReport(ctx, job.ID, report)

	job.Status = models.StatusCompleted
	job.Report = report
	h.saveJob(ctx, job)

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: job})
}

func (h *BatchHandler) saveJob(ctx context.Context, job *models.BatchJob) {
	if err := h.store.SaveJob(ctx, job); err != nil {
		h.logger.Warn("Failed to store job", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (h *BatchHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
