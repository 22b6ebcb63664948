// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/scheduler.go
// Summary: Frame scheduling capability behind the animation engine.
// Usage: TickerScheduler drives real playback; ManualScheduler drives tests.

package anim

import (
	"sync"
	"time"
)

// Token identifies one pending frame callback.
type Token uint64

// Scheduler abstracts the display-refresh-paced callback the engine runs on.
// The engine never reads a clock itself; whatever the scheduler passes as the
// timestamp is the frame time. This lets the engine run unchanged under a
// real timer or a manually driven test clock.
type Scheduler interface {
	// ScheduleNext arranges for cb to be called once with the current
	// timestamp in milliseconds.
	ScheduleNext(cb func(t float64)) Token
	// Cancel drops a pending callback. Unknown tokens are ignored.
	Cancel(token Token)
}

// TickerScheduler schedules callbacks on a real timer at display pace.
// The zero interval defaults to 16ms, the same cadence the editor's screen
// loop runs at.
type TickerScheduler struct {
	Interval time.Duration

	mu     sync.Mutex
	nextID Token
	timers map[Token]*time.Timer
	epoch  time.Time
}

// NewTickerScheduler creates a scheduler ticking every interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{Interval: interval}
}

func (s *TickerScheduler) interval() time.Duration {
	if s.Interval <= 0 {
		return 16 * time.Millisecond
	}
	return s.Interval
}

// ScheduleNext fires cb after one interval with the elapsed time since the
// scheduler first ran, in milliseconds.
func (s *TickerScheduler) ScheduleNext(cb func(t float64)) Token {
	s.mu.Lock()
	if s.timers == nil {
		s.timers = make(map[Token]*time.Timer)
	}
	if s.epoch.IsZero() {
		s.epoch = time.Now()
	}
	s.nextID++
	token := s.nextID
	epoch := s.epoch
	s.timers[token] = time.AfterFunc(s.interval(), func() {
		s.mu.Lock()
		_, live := s.timers[token]
		delete(s.timers, token)
		s.mu.Unlock()
		if !live {
			return
		}
		cb(float64(time.Since(epoch)) / float64(time.Millisecond))
	})
	s.mu.Unlock()
	return token
}

// Cancel stops a pending callback. A callback already past its liveness check
// cannot be stopped, but a canceled token that fires later is discarded.
func (s *TickerScheduler) Cancel(token Token) {
	s.mu.Lock()
	timer, ok := s.timers[token]
	delete(s.timers, token)
	s.mu.Unlock()
	if ok {
		timer.Stop()
	}
}

// ManualScheduler is a test clock: callbacks queue up until Advance fires
// them with an explicit timestamp.
type ManualScheduler struct {
	nextID  Token
	pending map[Token]func(t float64)
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[Token]func(t float64))}
}

// ScheduleNext queues cb until the next Advance call.
func (s *ManualScheduler) ScheduleNext(cb func(t float64)) Token {
	s.nextID++
	s.pending[s.nextID] = cb
	return s.nextID
}

// Cancel drops a queued callback.
func (s *ManualScheduler) Cancel(token Token) {
	delete(s.pending, token)
}

// Advance fires every queued callback with the given timestamp. Callbacks
// scheduled during Advance wait for the next call, so one Advance is one
// frame.
func (s *ManualScheduler) Advance(t float64) {
	fired := s.pending
	s.pending = make(map[Token]func(t float64))
	for _, cb := range fired {
		cb(t)
	}
}

// PendingCount reports how many callbacks are queued.
func (s *ManualScheduler) PendingCount() int {
	return len(s.pending)
}
