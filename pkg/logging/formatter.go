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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// LogEntry represents a single log record passed to a Formatter.
type LogEntry struct {
	// Time is when the entry was logged.
	Time time.Time
	// Level is the severity of the entry.
	Level LogLevel
	// Message is the formatted log message.
	Message string
	// Fields holds structured key-value pairs attached to the entry.
	Fields map[string]interface{}
}

// Formatter converts a LogEntry into its output representation.
type Formatter interface {
	// Format renders the entry as a single line, without a trailing newline.
	Format(entry LogEntry) string
}

// TextFormatter renders entries as human-readable text:
//
//	2026-01-02T15:04:05Z [INFO] message key=value
type TextFormatter struct {
	// TimeFormat is the time layout; empty means time.RFC3339.
	TimeFormat string
	// ShowLevel includes the [LEVEL] tag when set.
	ShowLevel bool
}

// Format renders the entry as text.
func (f *TextFormatter) Format(entry LogEntry) string {
	var sb strings.Builder

	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}
	sb.WriteString(entry.Time.Format(layout))

	if f.ShowLevel {
		sb.WriteString(" [")
		sb.WriteString(strings.ToUpper(entry.Level.String()))
		sb.WriteString("]")
	}

	sb.WriteString(" ")
	sb.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf(" %s=%v", k, entry.Fields[k]))
		}
	}

	return sb.String()
}

// JSONFormatter renders entries as single-line JSON objects with "time",
// "level", and "msg" keys plus any structured fields.
type JSONFormatter struct {
	// TimeFormat is the time layout; empty means time.RFC3339.
	TimeFormat string
}

// Format renders the entry as JSON. Falls back to a plain representation if
// marshaling fails.
func (f *JSONFormatter) Format(entry LogEntry) string {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}

	record := make(map[string]interface{}, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		record[k] = v
	}
	record["time"] = entry.Time.Format(layout)
	record["level"] = entry.Level.String()
	record["msg"] = entry.Message

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf(`{"time":%q,"level":%q,"msg":%q}`,
			entry.Time.Format(layout), entry.Level.String(), entry.Message)
	}
	return string(data)
}
