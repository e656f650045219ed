package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing debug entries to w, or a no-op
// logger when debug is off. Standard output is reserved for selected lines.
func New(w io.Writer, debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)

	return zap.New(core).Named("getitem")
}
