package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 40, cfg.Scan.MinScore)
	assert.Equal(t, 50, cfg.Scan.BuyThreshold)
	assert.Equal(t, 70, cfg.Scan.SellThreshold)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.yaml")
	body := `
scan:
  min_score: 45
  top_n: 10
redis:
  addr: "redis.internal:6379"
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Scan.MinScore)
	assert.Equal(t, 10, cfg.Scan.TopN)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	// untouched defaults survive
	assert.Equal(t, 70, cfg.Scan.SellThreshold)
	assert.Equal(t, 8, cfg.Scan.Workers)
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  min_score: 140\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/scan.yaml")
	assert.Error(t, err)
}

func TestValidate_ThresholdOrdering(t *testing.T) {
	cfg := Default()
	cfg.Scan.BuyThreshold = 10
	assert.Error(t, cfg.Validate())
}
