package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger logs service operations as a sequence of events sharing the same fields.
type StructuredLogger struct {
	logger *zap.Logger
	level  zapcore.Level
}

// NewDebugLogger returns a logger whose non error events are logged at debug level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{logger: zap.L().Named(name), level: zapcore.DebugLevel}
}

func NewInfoLogger(name string) *StructuredLogger {
	return &StructuredLogger{logger: zap.L().Named(name), level: zapcore.InfoLevel}
}

// WithContext attaches the request id carried by ctx, if any.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	id := requestid.FromContext(ctx)
	if id == "" {
		return l
	}
	return &StructuredLogger{logger: l.logger.With(zap.String("request_id", id)), level: l.level}
}

func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{logger: l, name: name}
}

// OperationBuilder collects the fields shared by every event of an operation.
type OperationBuilder struct {
	logger *StructuredLogger
	name   string
	fields []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	fields := append([]zap.Field{zap.String("operation", b.name)}, b.fields...)
	return &OperationTracer{
		logger: b.logger.logger.With(fields...),
		level:  b.logger.level,
		start:  time.Now(),
	}
}

// OperationTracer emits the step, success and error events of one operation.
type OperationTracer struct {
	logger *zap.Logger
	level  zapcore.Level
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Event {
	return t.event(t.level, "operation step", zap.String("step", name))
}

func (t *OperationTracer) Success() *Event {
	return t.event(t.level, "operation succeeded", zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *Event {
	return t.event(zapcore.ErrorLevel, "operation failed", zap.Error(err), zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) event(level zapcore.Level, msg string, fields ...zap.Field) *Event {
	return &Event{logger: t.logger, level: level, msg: msg, fields: fields}
}

// Event is a single log line. Nothing is written until Log is called.
type Event struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Event) WithString(key, value string) *Event {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Event) WithInt(key string, value int) *Event {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Event) WithFloat(key string, value float64) *Event {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Event) WithBool(key string, value bool) *Event {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Event) WithUUID(key string, value uuid.UUID) *Event {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Event) WithParam(key string, value any) *Event {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Event) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
