package observability

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapObserver writes events to a zap.Logger with the same shape as
// SlogObserver.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates a ZapObserver. A nil logger discards events.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

// ZapLevel maps l to the zap level used on emission.
func (l Level) ZapLevel() zapcore.Level {
	switch {
	case l <= 8:
		return zapcore.DebugLevel
	case l <= 12:
		return zapcore.InfoLevel
	case l <= 16:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func (o *ZapObserver) OnEvent(_ context.Context, event Event) {
	ce := o.logger.Check(event.Level.ZapLevel(), string(event.Type))
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(event.Data)+1)
	fields = append(fields, zap.String("source", event.Source))
	for k, v := range event.Data {
		fields = append(fields, zap.Any(k, v))
	}
	ce.Write(fields...)
}
