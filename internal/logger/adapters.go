package logger

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/robfig/cron/v3"
)

// watermillLogger adapts our Logger to watermill's logging interface
type watermillLogger struct {
	logger *Logger
	fields watermill.LogFields
}

// GetWatermillLogger returns a watermill-compatible logger
func (l *Logger) GetWatermillLogger() watermill.LoggerAdapter {
	return &watermillLogger{logger: l}
}

func (w *watermillLogger) keyvals(fields watermill.LogFields) []interface{} {
	all := w.fields.Add(fields)
	kv := make([]interface{}, 0, len(all)*2)
	for k, v := range all {
		kv = append(kv, k, v)
	}
	return kv
}

func (w *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	w.logger.Errorw(msg, append(w.keyvals(fields), "error", err)...)
}

func (w *watermillLogger) Info(msg string, fields watermill.LogFields) {
	w.logger.Infow(msg, w.keyvals(fields)...)
}

func (w *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	w.logger.Debugw(msg, w.keyvals(fields)...)
}

func (w *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	w.logger.Debugw(msg, w.keyvals(fields)...)
}

func (w *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{logger: w.logger, fields: w.fields.Add(fields)}
}

// cronLogger adapts our Logger to robfig/cron's logging interface
type cronLogger struct {
	logger *Logger
}

// GetCronLogger returns a cron-compatible logger
func (l *Logger) GetCronLogger() cron.Logger {
	return &cronLogger{logger: l}
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debugw(msg, keysAndValues...)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
