/*
Copyright © 2025 Stackdrill Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"time"
)

// EventSource supplies the event history for a stack, newest first
type EventSource interface {
	DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error)
}

// EventStreamer periodically fetches a stack's events and reports each event
// at most once, oldest first. It is bound to the lifetime of a single stack
// operation: the caller cancels the context once the operation resolves.
type EventStreamer struct {
	source   EventSource
	interval time.Duration
}

// NewEventStreamer creates a streamer polling the source at the given interval
func NewEventStreamer(source EventSource, interval time.Duration) *EventStreamer {
	if interval <= 0 {
		interval = defaultEventPollInterval
	}
	return &EventStreamer{
		source:   source,
		interval: interval,
	}
}

// Stream polls the event list until the context is cancelled or a fetch
// fails. Events older than since are dropped, and each event id is reported
// exactly once. Stream returns silently on fetch errors: event display is
// best-effort and must never fail the operation being watched.
func (s *EventStreamer) Stream(ctx context.Context, stackName string, since time.Time, callback func(StackEvent)) {
	seen := make(map[string]struct{})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		events, err := s.source.DescribeStackEvents(ctx, stackName)
		if err != nil {
			// Covers cancellation as well: an in-flight fetch fails once the
			// context is gone
			return
		}

		// The API returns newest first; walk backwards so the callback sees
		// emission order
		for i := len(events) - 1; i >= 0; i-- {
			event := events[i]
			if event.Timestamp.Before(since) {
				continue
			}
			if _, ok := seen[event.EventId]; ok {
				continue
			}
			seen[event.EventId] = struct{}{}
			callback(event)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
