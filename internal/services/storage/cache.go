package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrJobNotFound = errors.New("job not found")

const jobKeyPrefix = "annotate_job:"

func jobKey(id string) string {
	return jobKeyPrefix + id
}

// SaveJob stores job under its ID, refreshing the TTL.
func (s *StorageService) SaveJob(ctx context.Context, job *models.BatchJob) error {
	job.UpdatedAt = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := s.redisClient.Set(ctx, jobKey(job.ID), data, s.reportTTL).Err(); err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	return nil
}

func (s *StorageService) GetJob(ctx context.Context, id string) (*models.BatchJob, error) {
	data, err := s.redisClient.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("job get error: %w", err)
	}

	var job models.BatchJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

func (s *StorageService) GetStoreStats(ctx context.Context) (map[string]interface{}, error) {
	keys, err := s.redisClient.Keys(ctx, jobKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"jobs":    len(keys),
		"db_keys": dbSize,
	}, nil
}
