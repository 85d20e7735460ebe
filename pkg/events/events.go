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

// Package events carries the structured progress events emitted while a
// verification pass runs.
//
// The core only emits; rendering (progress bars, log lines) is a consumer
// concern. Consumers must tolerate events arriving from multiple goroutines.
package events

import "time"

// Kind identifies the type of a progress event.
type Kind int

const (
	// KindPathStarted is emitted when verification of a path begins.
	KindPathStarted Kind = iota
	// KindPathVerified is emitted when a path's verdict is known.
	KindPathVerified
	// KindPathDeleted is emitted when a destination subtree was removed.
	KindPathDeleted
	// KindPathSkipped is emitted when deletion was declined for a path.
	KindPathSkipped
)

// String returns a human-readable name for the event kind.
func (k Kind) String() string {
	switch k {
	case KindPathStarted:
		return "path_started"
	case KindPathVerified:
		return "path_verified"
	case KindPathDeleted:
		return "path_deleted"
	case KindPathSkipped:
		return "path_skipped"
	default:
		return "unknown"
	}
}

// Event is one structured progress notification.
type Event struct {
	// Kind is the event type.
	Kind Kind

	// Path is the relative path the event is about.
	Path string

	// Match is meaningful only for KindPathVerified: the path's verdict.
	Match bool

	// Err carries the per-path failure, if any (unreadable file, failed
	// deletion).
	Err error

	// Time is when the event was emitted.
	Time time.Time
}

// Reporter consumes progress events. Events arrive sequentially from the
// goroutine driving the verification or cleanup pass.
type Reporter interface {
	Report(e Event)
}

// Nop is a Reporter that discards every event.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(Event) {}

// Multi fans one event out to several reporters in order.
type Multi []Reporter

// Report implements Reporter.
func (m Multi) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// Func adapts a function to the Reporter interface.
type Func func(Event)

// Report implements Reporter.
func (f Func) Report(e Event) {
	f(e)
}

// Now returns an Event of the given kind stamped with the current time.
func Now(kind Kind, path string) Event {
	return Event{Kind: kind, Path: path, Time: time.Now()}
}
