package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
	suite.True(logger.Core().Enabled(zapcore.InfoLevel))
	suite.False(logger.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestNewLoggerWithConfig() {
	tests := []struct {
		name        string
		level       string
		format      string
		debugOn     bool
		expectError bool
	}{
		{name: "debug console", level: "debug", format: "console", debugOn: true},
		{name: "warn json", level: "warn", format: "json", debugOn: false},
		{name: "invalid level", level: "loud", format: "json", expectError: true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			logger, err := NewLoggerWithConfig(tt.level, tt.format)
			if tt.expectError {
				suite.Error(err)
				suite.Contains(err.Error(), "invalid log level")

				return
			}

			suite.Require().NoError(err)
			suite.Equal(tt.debugOn, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func (suite *LoggerTestSuite) TestNewNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)

	// These should not panic
	logger.Info("test info message", zap.String("key", "value"))
	logger.Warn("test warn message")
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestLoggerSync() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)

	// Sync may return an error on some systems (e.g., when syncing stderr)
	// but it should not panic
	_ = logger.Sync()
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	// Sync should not panic and should return nil for a nil inner logger
	err := logger.Sync()
	suite.NoError(err)
}
