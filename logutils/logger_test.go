package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/status-im/ethfacade/params"
)

func TestOverrideWithCore(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	OverrideWithCore(core)

	ZapLogger().Named("test").Info("some message with param", zap.String("site", "SomeSite"))

	entries := logs.FilterMessage("some message with param").All()
	require.Len(t, entries, 1)
	require.Equal(t, "test", entries[0].LoggerName)
	require.Equal(t, "SomeSite", entries[0].ContextMap()["site"])
}

func TestOverrideWithSettingsWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	require.NoError(t, OverrideWithSettings(params.LogSettings{
		Level:      "DEBUG",
		File:       path,
		MaxSize:    1,
		MaxBackups: 1,
	}))

	ZapLogger().Debug("written to file")
	require.NoError(t, ZapLogger().Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel(""))
	require.NoError(t, SetLevel("warn"))
	require.Equal(t, zap.WarnLevel, atomicLvl.Level())
	require.Error(t, SetLevel("LOUD"))
	require.NoError(t, SetLevel("INFO"))
}
