package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewDevelopmentLoggerEnablesDebug(t *testing.T) {
	t.Parallel()

	logger, err := New(true)
	if err != nil {
		t.Fatalf("New(true) error = %v", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("development logger should log at debug level")
	}
	logger.Debug("crawler logger ready")
}

func TestNewProductionLoggerSuppressesDebug(t *testing.T) {
	t.Parallel()

	logger, err := New(false)
	if err != nil {
		t.Fatalf("New(false) error = %v", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("production logger should start at info level")
	}
	logger.Info("crawler logger ready")
}
