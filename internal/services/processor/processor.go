// Package processor runs the batch annotate pipelines: every supported image
// in a directory is resized, outlined and written once per backend.
package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/phambaophuc/image-annotator/pkg/utils"
	"go.uber.org/zap"
)

const strokeWidth = 3

type BatchProcessor struct {
	pipelines []Pipeline
	logger    *zap.Logger
}

// NewBatchProcessor uses DefaultPipelines when none are given.
func NewBatchProcessor(logger *zap.Logger, pipelines ...Pipeline) *BatchProcessor {
	if len(pipelines) == 0 {
		pipelines = DefaultPipelines()
	}
	return &BatchProcessor{
		pipelines: pipelines,
		logger:    logger,
	}
}

func (p *BatchProcessor) Pipelines() []Pipeline {
	return p.pipelines
}

// Run processes every supported image directly inside inputDir. Failures of
// a single pipeline on a single file are recorded in the report and never
// stop the batch; only an unusable input or output directory is returned as
// an error. When ctx is done between files, Run returns the partial report
// together with an error wrapping ErrBatchInterrupted and ctx.Err().
func (p *BatchProcessor) Run(ctx context.Context, inputDir, outputDir string, size models.Size) (*models.BatchReport, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	for _, pl := range p.pipelines {
		if err := os.MkdirAll(filepath.Join(outputDir, pl.Subdir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	files, err := discoverImages(inputDir)
	if err != nil {
		return nil, err
	}

	report := &models.BatchReport{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Size:      size,
		Files:     make([]models.FileResult, 0, len(files)),
		StartedAt: time.Now(),
	}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now()
			p.logger.Warn("Batch interrupted",
				zap.Int("processed", len(report.Files)),
				zap.Int("total", len(files)),
				zap.Error(err))
			return report, fmt.Errorf("%w: %w", ErrBatchInterrupted, err)
		}

		result := models.FileResult{Name: name}
		for _, pl := range p.pipelines {
			result.Results = append(result.Results, p.runPipeline(pl, inputDir, outputDir, name, size))
		}
		report.Files = append(report.Files, result)
	}

	report.FinishedAt = time.Now()
	p.logger.Info("All images processed", zap.String("output_dir", outputDir))
	return report, nil
}

func (p *BatchProcessor) runPipeline(pl Pipeline, inputDir, outputDir, name string, size models.Size) models.PipelineResult {
	backend := pl.Backend.Name()
	output := filepath.Join(outputDir, pl.Subdir, utils.OutputFilename(name))

	err := annotate(pl.Backend, filepath.Join(inputDir, name), output, size)
	if err != nil {
		status := models.ResultFailed
		if errors.Is(err, ErrNoImage) {
			status = models.ResultSkipped
		}
		p.logger.Warn(fmt.Sprintf("%s failed on %s: %v", backend, name, err),
			zap.String("backend", backend),
			zap.String("file", name),
			zap.String("status", status),
			zap.Error(err))
		return models.PipelineResult{Backend: backend, Status: status, Error: err.Error()}
	}

	p.logger.Debug("Image annotated",
		zap.String("backend", backend),
		zap.String("file", name),
		zap.String("output", output))
	return models.PipelineResult{Backend: backend, Status: models.ResultSucceeded, Output: output}
}

// annotate is one decode, resize, outline, encode pass. Panics raised by a
// backend are turned into errors.
func annotate(b Backend, src, dst string, size models.Size) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s backend: %v", b.Name(), r)
		}
	}()

	img, err := b.Decode(src)
	if err != nil {
		return err
	}

	resized, err := b.Resize(img, size)
	if err != nil {
		return fmt.Errorf("failed to resize image: %w", err)
	}

	if err := b.DrawRectangle(resized, NewRectRegion(resized.Bounds()), strokeWidth); err != nil {
		return fmt.Errorf("failed to draw rectangle: %w", err)
	}

	if err := b.Encode(resized, dst); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
