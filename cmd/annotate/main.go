// Command annotate resizes every image in a directory with both imaging
// backends, outlines the centered rectangle and writes the results under
// <out>/pillow_results and <out>/opencv_results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phambaophuc/image-annotator/internal/config"
	"github.com/phambaophuc/image-annotator/internal/logging"
	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/phambaophuc/image-annotator/internal/services/processor"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var in, out, size, level string
	flag.StringVar(&in, "in", cfg.Annotate.InputDir, "input image directory")
	flag.StringVar(&out, "out", cfg.Annotate.OutputDir, "output directory")
	flag.StringVar(&size, "size", cfg.Annotate.TargetSize().String(), "target size WIDTHxHEIGHT")
	flag.StringVar(&level, "log-level", cfg.Log.Level, "log level: debug|info|warn|error")
	flag.Parse()

	target, err := models.ParseSize(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: %s -in DIR -out DIR [-size 800x400]: %v\n", os.Args[0], err)
		os.Exit(2)
	}

	logger, err := logging.New(level)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := processor.NewBatchProcessor(logger).Run(ctx, in, out, target)
	if errors.Is(err, processor.ErrBatchInterrupted) {
		logger.Warn("Stopped before all images were processed",
			zap.Int("files", len(report.Files)))
		logger.Sync()
		os.Exit(130)
	}
	if err != nil {
		logger.Error("Batch failed", zap.String("input_dir", in), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Debug("Batch report",
		zap.Int("files", len(report.Files)),
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()))
}
