package config

import (
	"testing"
	"time"

	"github.com/phambaophuc/image-annotator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ANNOTATE_INPUT_DIR", "ANNOTATE_OUTPUT_DIR", "ANNOTATE_TARGET_WIDTH",
		"ANNOTATE_TARGET_HEIGHT", "LOG_LEVEL", "REPORT_TTL", "SUPABASE_URL", "SUPABASE_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSize, cfg.Annotate.TargetSize())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.Storage.ReportTTL)
	assert.False(t, cfg.Supabase.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ANNOTATE_INPUT_DIR", "/data/in")
	t.Setenv("ANNOTATE_OUTPUT_DIR", "/data/out")
	t.Setenv("ANNOTATE_TARGET_WIDTH", "800")
	t.Setenv("ANNOTATE_TARGET_HEIGHT", "400")
	t.Setenv("REPORT_TTL", "1h")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_BUCKET", "annotated")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/in", cfg.Annotate.InputDir)
	assert.Equal(t, "/data/out", cfg.Annotate.OutputDir)
	assert.Equal(t, models.Size{Width: 800, Height: 400}, cfg.Annotate.TargetSize())
	assert.Equal(t, time.Hour, cfg.Storage.ReportTTL)
	assert.True(t, cfg.Supabase.Enabled())
}

func TestLoadRejectsInvalidSize(t *testing.T) {
	t.Setenv("ANNOTATE_TARGET_WIDTH", "-5")

	_, err := Load()
	assert.ErrorIs(t, err, models.ErrInvalidSize)
}
