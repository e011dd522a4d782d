package main

import (
	"testing"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(&cfg, 0, 0, 0, 0, -1, "")
	assert.Equal(t, config.Default(), cfg)

	applyFlags(&cfg, 9000, time.Second, 2*time.Second, 1024, 0, "/tmp/fuzzy.log")
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 2*time.Second, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, 1024, cfg.Server.MaxRequestSize)
	assert.Equal(t, 0, cfg.Server.Concurrency)
	assert.Equal(t, "/tmp/fuzzy.log", cfg.Log.File)
}

func TestWarmUpDefaults(t *testing.T) {
	cc := config.Default().Compare
	require.NoError(t, warmUpDefaults(cc, logger.Nop()))

	cc.Preprocessor = "rot13"
	assert.Error(t, warmUpDefaults(cc, logger.Nop()))
}
