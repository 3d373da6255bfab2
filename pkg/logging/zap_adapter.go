// Package logging adapts zap to the ports.Logger interface the rest of the
// service logs through.
package logging

import (
	"github.com/threadline/pos-service/internal/domain/ports"
	"go.uber.org/zap"
)

// ZapAdapter wraps a zap.Logger behind ports.Logger
type ZapAdapter struct {
	logger *zap.Logger
}

// NewZapAdapter wraps an existing zap logger
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: logger}
}

// NewDevelopment builds a human-readable console logger
func NewDevelopment() (*ZapAdapter, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &ZapAdapter{logger: logger}, nil
}

// NewProduction builds a JSON logger at info level
func NewProduction() (*ZapAdapter, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapAdapter{logger: logger}, nil
}

// Sync flushes buffered log entries
func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

func (z *ZapAdapter) Info(msg string, fields ...ports.Field) {
	z.logger.Info(msg, convert(fields)...)
}

func (z *ZapAdapter) Error(msg string, fields ...ports.Field) {
	z.logger.Error(msg, convert(fields)...)
}

func (z *ZapAdapter) Warn(msg string, fields ...ports.Field) {
	z.logger.Warn(msg, convert(fields)...)
}

func (z *ZapAdapter) Debug(msg string, fields ...ports.Field) {
	z.logger.Debug(msg, convert(fields)...)
}

func convert(fields []ports.Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}
