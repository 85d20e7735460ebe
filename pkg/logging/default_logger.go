// Copyright 2026 The Treeverify Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LoggerOptions configures a DefaultLogger.
type LoggerOptions struct {
	// Level is the minimum level to emit.
	Level LogLevel
	// Format selects the built-in formatter when Formatter is nil.
	Format LogFormat
	// Formatter overrides Format with a custom Formatter.
	Formatter Formatter
	// Output is the destination writer; nil means os.Stderr.
	Output io.Writer
	// TimeFormat is the time layout for the built-in formatters.
	TimeFormat string
	// ShowLevel includes the level tag in text output.
	ShowLevel bool
}

// DefaultLogger is the built-in Logger implementation. It writes formatted
// entries to a single writer and is safe for concurrent use.
type DefaultLogger struct {
	mu        sync.Mutex
	level     LogLevel
	formatter Formatter
	output    io.Writer
	fields    map[string]interface{}
}

// NewLogger creates a DefaultLogger writing text to stderr. With verbose set
// the level is debug, otherwise info.
func NewLogger(verbose bool) *DefaultLogger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}
	return NewLoggerWithOptions(LoggerOptions{
		Level:     level,
		Format:    FormatText,
		ShowLevel: true,
	})
}

// NewLoggerWithOptions creates a DefaultLogger from explicit options.
func NewLoggerWithOptions(opts LoggerOptions) *DefaultLogger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	formatter := opts.Formatter
	if formatter == nil {
		switch opts.Format {
		case FormatJSON:
			formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		default:
			formatter = &TextFormatter{TimeFormat: opts.TimeFormat, ShowLevel: opts.ShowLevel}
		}
	}

	return &DefaultLogger{
		level:     opts.Level,
		formatter: formatter,
		output:    output,
		fields:    make(map[string]interface{}),
	}
}

// SetLevel changes the minimum level to emit.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum level.
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetFormatter replaces the formatter.
func (l *DefaultLogger) SetFormatter(f Formatter) {
	if f == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.formatter = f
}

// SetOutput replaces the destination writer.
func (l *DefaultLogger) SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Silent reports whether debug output is suppressed.
func (l *DefaultLogger) Silent() bool {
	return l.GetLevel() > LevelDebug
}

// WithField returns a copy of the logger with one extra structured field.
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a copy of the logger with the given fields merged in.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &DefaultLogger{
		level:     l.level,
		formatter: l.formatter,
		output:    l.output,
		fields:    merged,
	}
}

func (l *DefaultLogger) log(level LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	entry := LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  l.fields,
	}
	fmt.Fprintln(l.output, l.formatter.Format(entry))
}

// Debug logs at debug level with printf-style formatting.
func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

// Debugln logs at debug level.
func (l *DefaultLogger) Debugln(msg string) {
	l.log(LevelDebug, msg)
}

// Info logs at info level with printf-style formatting.
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Infoln logs at info level.
func (l *DefaultLogger) Infoln(msg string) {
	l.log(LevelInfo, msg)
}

// Warn logs at warn level with printf-style formatting.
func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

// Warnln logs at warn level.
func (l *DefaultLogger) Warnln(msg string) {
	l.log(LevelWarn, msg)
}

// Error logs at error level with printf-style formatting.
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

// Errorln logs at error level.
func (l *DefaultLogger) Errorln(msg string) {
	l.log(LevelError, msg)
}
