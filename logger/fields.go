package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across inhabit.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldPack      = "pack"

	// Expansion
	FieldType     = "type"
	FieldBase     = "base"
	FieldCategory = "category"
	FieldStrategy = "strategy"
	FieldDepth    = "depth"
	FieldLimit    = "limit"
	FieldHandlers = "handlers"

	// Parametrization
	FieldArgNames = "argnames"
	FieldCases    = "cases"

	// Counts and sizes
	FieldCount = "count"

	// Errors
	FieldError = "error"

	// Files and paths
	FieldFile    = "file"
	FieldPackage = "package"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Engine struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Engine {
//	    return &Engine{
//	        logger: logger.ComponentLogger("expand"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar().Named(name)
	}
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
