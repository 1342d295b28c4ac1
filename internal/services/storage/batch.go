package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/phambaophuc/image-annotator/pkg/utils"
	"go.uber.org/zap"
)

// MirrorReport uploads every successful output of report one file at a time
// and records the public URL on its result. Upload failures are logged and
// leave the result untouched.
func (s *StorageService) MirrorReport(ctx context.Context, jobID string, report *models.BatchReport) {
	if !s.MirrorEnabled() || report == nil {
		return
	}

	uploaded := 0
	for i := range report.Files {
		for j := range report.Files[i].Results {
			res := &report.Files[i].Results[j]
			if res.Status != models.ResultSucceeded || res.Output == "" {
				continue
			}
			if ctx.Err() != nil {
				return
			}

			url, err := s.uploadOutput(ctx, jobID, res.Output)
			if err != nil {
				s.logger.Warn("Failed to mirror output",
					zap.String("job_id", jobID),
					zap.String("output", res.Output),
					zap.Error(err))
				continue
			}
			res.URL = url
			uploaded++
		}
	}

	s.logger.Info("Outputs mirrored",
		zap.String("job_id", jobID),
		zap.Int("uploaded", uploaded))
}

func (s *StorageService) uploadOutput(ctx context.Context, jobID, output string) (string, error) {
	file, err := os.Open(output)
	if err != nil {
		return "", err
	}
	defer file.Close()

	subdir := filepath.Base(filepath.Dir(output))
	key := utils.GenerateStorageKey(jobID, subdir, output)
	return s.Upload(ctx, file, key, contentTypeFor(output))
}
