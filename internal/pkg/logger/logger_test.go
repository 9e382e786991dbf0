package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("開発環境", func(t *testing.T) {
		logger := NewLogger("development")
		require.NotNil(t, logger)
		logger.Info("test message")
	})

	t.Run("本番環境", func(t *testing.T) {
		logger := NewLogger("production")
		require.NotNil(t, logger)
		logger.Info("test message")
	})

	t.Run("LOG_LEVELで出力レベルを変更できる", func(t *testing.T) {
		os.Setenv("LOG_LEVEL", "debug")
		defer os.Unsetenv("LOG_LEVEL")

		require.NotNil(t, NewLogger("development"))
	})

	t.Run("無効なLOG_LEVELでも起動できる", func(t *testing.T) {
		os.Setenv("LOG_LEVEL", "verbose-please")
		defer os.Unsetenv("LOG_LEVEL")

		require.NotNil(t, NewLogger("development"))
	})
}

func TestSet(t *testing.T) {
	originalLogger := Get()
	defer Set(originalLogger) // テスト後に元に戻す

	newLogger := zap.NewNop()
	Set(newLogger)

	assert.Equal(t, newLogger, Get())
}

func TestPackageFunctions(t *testing.T) {
	// パッケージレベルのログ関数がパニックしないことを確認
	assert.NotPanics(t, func() {
		Debug("debug message")
		Info("info message", zap.String("key", "value"))
		Warn("warn message", zap.Int("count", 3))
		Error("error message")
		_ = Sync()
	})

	require.NotNil(t, With(zap.String("component", "test")))
}
