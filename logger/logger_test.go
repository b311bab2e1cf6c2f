package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Cleanup()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestShouldLogTrace(t *testing.T) {
	assert.False(t, ShouldLogTrace(VerbosityDebug))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
}

func TestComponentLogger_NilGlobal(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	Logger = nil
	assert.NotNil(t, ComponentLogger("expand"))

	// Package helpers must not panic without a logger
	Debugw("no logger", FieldType, "int")
}
