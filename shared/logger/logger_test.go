package logger_test

import (
	"bytes"
	"errors"
	"rental/config"
	"rental/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking insert failed"))

	assert.Contains(t, buf.String(), "booking insert failed")
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	tests := []struct {
		logLevel string
		expected zerolog.Level
	}{
		{logLevel: "debug", expected: zerolog.DebugLevel},
		{logLevel: "info", expected: zerolog.InfoLevel},
		{logLevel: "warn", expected: zerolog.WarnLevel},
		{logLevel: "error", expected: zerolog.ErrorLevel},
		{logLevel: "invalid_level", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestUseJSONOutput(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	cfg := &config.Config{}
	cfg.Server.Env = "development"

	marker := log.Logger
	logger.UseJSONOutput(cfg)
	assert.Equal(t, marker, log.Logger)

	cfg.Server.Env = "production"
	logger.UseJSONOutput(cfg)
	assert.NotEqual(t, marker, log.Logger)
}
