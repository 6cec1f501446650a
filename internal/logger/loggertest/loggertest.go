// Package loggertest provides loggers whose output tests can inspect.
package loggertest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pep299/template-blog-publisher/internal/logger"
)

// NewObserved returns a logger whose entries are captured for inspection.
func NewObserved() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}
