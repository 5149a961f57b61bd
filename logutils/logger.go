package logutils

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/status-im/ethfacade/params"
)

var (
	mu         sync.RWMutex
	zapLogger  = zap.NewNop()
	atomicLvl  = zap.NewAtomicLevelAt(zap.InfoLevel)
	initLogger sync.Once
)

// ZapLogger returns the process-wide logger. Until OverrideWithSettings is called
// it writes INFO and above to stderr.
func ZapLogger() *zap.Logger {
	initLogger.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		zapLogger = zap.New(newCore(zapcore.Lock(os.Stderr), false), zap.AddCaller())
	})

	mu.RLock()
	defer mu.RUnlock()
	return zapLogger
}

// OverrideWithSettings replaces the process-wide logger according to the settings.
func OverrideWithSettings(settings params.LogSettings) error {
	if err := SetLevel(settings.Level); err != nil {
		return err
	}

	var syncer zapcore.WriteSyncer
	if settings.File != "" {
		syncer = ZapSyncerWithRotation(FileOptions{
			Filename:   settings.File,
			MaxSize:    settings.MaxSize,
			MaxBackups: settings.MaxBackups,
			Compress:   settings.CompressRotated,
		})
	} else {
		syncer = zapcore.Lock(os.Stderr)
	}

	OverrideWithCore(newCore(syncer, settings.JSON))
	return nil
}

// OverrideWithCore installs a logger built on the given core. Tests use it with zaptest/observer.
func OverrideWithCore(core zapcore.Core) {
	initLogger.Do(func() {})

	mu.Lock()
	defer mu.Unlock()
	zapLogger = zap.New(core, zap.AddCaller())
}

// SetLevel changes the minimum level of the default cores. Empty keeps the current one.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	atomicLvl.SetLevel(lvl)
	return nil
}

func newCore(syncer zapcore.WriteSyncer, json bool) zapcore.Core {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewCore(encoder, syncer, atomicLvl)
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(level) {
	case "ERROR":
		return zap.ErrorLevel, nil
	case "WARN":
		return zap.WarnLevel, nil
	case "INFO":
		return zap.InfoLevel, nil
	case "DEBUG", "TRACE":
		return zap.DebugLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("unknown log level: %s", level)
}
