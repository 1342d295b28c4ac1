package storage

import (
	"time"

	"github.com/phambaophuc/image-annotator/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

type StorageService struct {
	sbClient    *storage_go.Client
	redisClient *redis.Client
	bucket      string
	reportTTL   time.Duration
	logger      *zap.Logger
}

type ServiceOptions struct {
	MaxRetries int
	Timeout    time.Duration
}

var DefaultOptions = ServiceOptions{
	MaxRetries: 3,
	Timeout:    5 * time.Second,
}

// NewStorageService connects the job store (Redis) and, when configured,
// the Supabase bucket annotated outputs are mirrored to.
func NewStorageService(cfg *config.Config, logger *zap.Logger, opts ...ServiceOptions) (*StorageService, error) {
	options := DefaultOptions
	if len(opts) > 0 {
		options = opts[0]
	}

	var sbClient *storage_go.Client
	if cfg.Supabase.Enabled() {
		sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   options.MaxRetries,
		DialTimeout:  options.Timeout,
		ReadTimeout:  options.Timeout,
		WriteTimeout: options.Timeout,
	})

	return &StorageService{
		sbClient:    sbClient,
		redisClient: redisClient,
		bucket:      cfg.Supabase.BUCKET,
		reportTTL:   cfg.Storage.ReportTTL,
		logger:      logger,
	}, nil
}

func (s *StorageService) Close() error {
	return s.redisClient.Close()
}
