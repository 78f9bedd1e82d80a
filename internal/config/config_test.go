package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexventory/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.DataFile, cfg.DataFile)
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
	assert.Equal(t, 10, cfg.UI.PageSize)
}

func TestLoadFromPathRequiresFile(t *testing.T) {
	svc := NewConfigService("")
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.DataFile = "/srv/nexventory/users.jsonc"
	cfg.Operator = "ops"
	cfg.UI.IncludeInactive = true
	cfg.UI.PageSize = 25
	require.NoError(t, svc.Save(cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "data_file")
	assert.Contains(t, string(raw), "/srv/nexventory/users.jsonc")
	assert.Contains(t, string(raw), "[ui]")

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = 'warn'\n[ui]\npage_size = 5\n"), 0644))

	t.Setenv("NEXVENTORY_LOG_LEVEL", "debug")
	t.Setenv("NEXVENTORY_UI_PAGE_SIZE", "42")

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 42, cfg.UI.PageSize)
}

func TestInvalidTomlIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \n"), 0644))

	_, err := NewConfigService(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestServicePublishesEvents(t *testing.T) {
	bus := eventbus.New(eventbus.WithLogger(log.New(os.Stderr)))
	defer bus.Close()

	loaded := make(chan eventbus.DomainEvent, 1)
	saved := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { loaded <- e })
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { saved <- e })

	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigServiceWithBus(path, bus)
	assert.Equal(t, path, svc.Path())

	_, err := svc.Load()
	require.NoError(t, err)
	require.NoError(t, svc.Save(DefaultConfig()))

	for _, ch := range []chan eventbus.DomainEvent{loaded, saved} {
		select {
		case e := <-ch:
			assert.NotNil(t, e)
		case <-time.After(time.Second):
			t.Fatal("expected config event")
		}
	}
}
