package cmd

import (
	"fmt"

	"filevault/core/config"
	"filevault/core/logger"
	"filevault/core/storage"

	"go.uber.org/zap"
)

// runtime is what every command needs to talk to the bucket.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	bucket *storage.Bucket
}

func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &runtime{
		cfg:    cfg,
		logger: logg,
		bucket: storage.NewBucket(client, cfg.Storage, logg),
	}, nil
}
