package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/phambaophuc/image-annotator/internal/services/processor"
	"github.com/phambaophuc/image-annotator/internal/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	jobs     map[string]models.BatchJob
	mirrored []string
	health   map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		jobs:   map[string]models.BatchJob{},
		health: map[string]string{"redis": "healthy", "supabase": "not configured"},
	}
}

func (s *memoryStore) SaveJob(ctx context.Context, job *models.BatchJob) error {
	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryStore) GetJob(ctx context.Context, id string) (*models.BatchJob, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, storage.ErrJobNotFound
	}
	return &job, nil
}

func (s *memoryStore) MirrorReport(ctx context.Context, jobID string, report *models.BatchReport) {
	s.mirrored = append(s.mirrored, jobID)
}

func (s *memoryStore) GetStoreStats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"jobs": len(s.jobs)}, nil
}

func (s *memoryStore) HealthCheck(ctx context.Context) map[string]string {
	out := map[string]string{}
	for k, v := range s.health {
		out[k] = v
	}
	return out
}

type memoryQueue struct {
	published []string
	err       error
}

func (q *memoryQueue) PublishJob(ctx context.Context, job *models.BatchJob) error {
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, job.ID)
	return nil
}

func (q *memoryQueue) HealthCheck() string {
	return "healthy"
}

func (q *memoryQueue) GetQueueStats() (map[string]interface{}, error) {
	return map[string]interface{}{"messages": len(q.published)}, nil
}

type jobResponse struct {
	Success bool            `json:"success"`
	Data    models.BatchJob `json:"data"`
	Error   string          `json:"error"`
}

func newEngine(h *BatchHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/batches", h.CreateBatch)
	r.GET("/batches/:id", h.GetBatch)
	r.GET("/health", h.HealthCheck)
	r.GET("/stats", h.Stats)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, jobResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp jobResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestCreateBatch_Inline(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"))

	store := newMemoryStore()
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), store, nil, zap.NewNop())
	r := newEngine(h)

	w, resp := doJSON(t, r, http.MethodPost, "/batches", models.BatchRequest{InputDir: in, OutputDir: out, Width: 80, Height: 40})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, resp.Success)
	assert.Equal(t, models.StatusCompleted, resp.Data.Status)
	require.NotNil(t, resp.Data.Report)
	assert.Equal(t, resp.Data.ID, resp.Data.Report.ID)
	assert.Equal(t, 2, resp.Data.Report.Succeeded())
	assert.FileExists(t, filepath.Join(out, processor.PillowSubdir, "processed_a.png"))
	assert.FileExists(t, filepath.Join(out, processor.OpenCVSubdir, "processed_a.png"))
	assert.Equal(t, []string{resp.Data.ID}, store.mirrored)

	w, got := doJSON(t, r, http.MethodGet, "/batches/"+resp.Data.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCompleted, got.Data.Status)
}

func TestCreateBatch_MissingInputDir(t *testing.T) {
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), newMemoryStore(), nil, zap.NewNop())
	r := newEngine(h)

	out := t.TempDir()
	w, resp := doJSON(t, r, http.MethodPost, "/batches", models.BatchRequest{InputDir: filepath.Join(out, "missing"), OutputDir: out})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestCreateBatch_Validation(t *testing.T) {
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), newMemoryStore(), nil, zap.NewNop())
	r := newEngine(h)

	w, _ := doJSON(t, r, http.MethodPost, "/batches", map[string]string{"input_dir": "/in"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/batches", models.BatchRequest{InputDir: "/in", OutputDir: "/out", Width: 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBatch_Queued(t *testing.T) {
	store := newMemoryStore()
	queue := &memoryQueue{}
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), store, queue, zap.NewNop())
	r := newEngine(h)

	w, resp := doJSON(t, r, http.MethodPost, "/batches", models.BatchRequest{InputDir: "/in", OutputDir: "/out"})
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, models.StatusPending, resp.Data.Status)
	assert.Equal(t, []string{resp.Data.ID}, queue.published)
	assert.Equal(t, models.StatusPending, store.jobs[resp.Data.ID].Status)
}

func TestCreateBatch_PublishFailure(t *testing.T) {
	store := newMemoryStore()
	queue := &memoryQueue{err: errors.New("channel closed")}
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), store, queue, zap.NewNop())
	r := newEngine(h)

	w, _ := doJSON(t, r, http.MethodPost, "/batches", models.BatchRequest{InputDir: "/in", OutputDir: "/out"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, store.jobs, 1)
	for _, job := range store.jobs {
		assert.Equal(t, models.StatusFailed, job.Status)
		assert.Equal(t, "channel closed", job.Error)
	}
}

func TestGetBatch_NotFound(t *testing.T) {
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), newMemoryStore(), nil, zap.NewNop())
	w, resp := doJSON(t, newEngine(h), http.MethodGet, "/batches/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Batch not found", resp.Error)
}

func TestHealthCheck(t *testing.T) {
	store := newMemoryStore()
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), store, nil, zap.NewNop())
	r := newEngine(h)

	w, _ := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	store.health["redis"] = "unhealthy: connection refused"
	w, _ = doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStats(t *testing.T) {
	store := newMemoryStore()
	queue := &memoryQueue{}
	h := NewBatchHandler(processor.NewBatchProcessor(zap.NewNop()), store, queue, zap.NewNop())
	r := newEngine(h)

	doJSON(t, r, http.MethodPost, "/batches", models.BatchRequest{InputDir: "/in", OutputDir: "/out"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data["store"]["jobs"])
	assert.Equal(t, 1, resp.Data["queue"]["messages"])
}
