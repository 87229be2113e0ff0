package usdmesh

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Optional diagnostic logging. Grounded on the teacher pack's zap+lumberjack
// setup (avatar29A-midgard-ro/internal/logger), narrowed to a single
// injected *zap.SugaredLogger instead of a package-level global — the
// exporter is a pure function of its input, so logging must be passed in,
// not reached for.

// NewFileLogger builds a SugaredLogger that writes to a rotating file via
// lumberjack, for callers that want export diagnostics persisted.
func NewFileLogger(path string, maxSizeMB, maxBackups, maxAgeDays int) *zap.SugaredLogger {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		MessageKey:   "msg",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
	})

	core := zapcore.NewCore(encoder, zapcore.AddSync(writer), zapcore.InfoLevel)
	return zap.New(core).Sugar()
}

// logOrNil calls fn(log) only when log is non-nil, so every call site in
// the exporter can log unconditionally without a nil check of its own.
func logOrNil(log *zap.SugaredLogger, fn func(*zap.SugaredLogger)) {
	if log != nil {
		fn(log)
	}
}
