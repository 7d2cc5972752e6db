package notify

import "go.uber.org/zap"

// Sink receives fire-and-forget outcome signals from the sync engine.
// Implementations must never block; nothing in the engine's control flow
// depends on them.
type Sink interface {
	Success(event string, fields ...zap.Field)
	Failure(event string, err error, fields ...zap.Field)
}

// ZapSink reports outcomes through the application logger.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a logger-backed sink.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Success(event string, fields ...zap.Field) {
	s.logger.Info(event, fields...)
}

func (s *ZapSink) Failure(event string, err error, fields ...zap.Field) {
	s.logger.Warn(event, append(fields, zap.Error(err))...)
}

// NopSink discards all signals.
type NopSink struct{}

func (NopSink) Success(string, ...zap.Field)        {}
func (NopSink) Failure(string, error, ...zap.Field) {}
