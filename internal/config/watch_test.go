package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsValidChanges(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9000\n")

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 50*time.Millisecond, logger.Nop(), func(cfg Config) {
			select {
			case changes <- cfg:
			default:
			}
		})
	}()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 70000\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9100\n"), 0o600))

	// A truncating write can surface as an intermediate empty file, so wait for the final state.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			assert.NotEqual(t, 70000, cfg.Server.Port)
			if cfg.Server.Port == 9100 {
				return
			}
		case <-timeout:
			t.Fatal("config change was not observed")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/definitely/not/here/fuzzy.toml", 0, logger.Nop(), func(Config) {})
	assert.Error(t, err)
}
