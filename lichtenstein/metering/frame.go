// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metering

import (
	"time"
)

// FrameSleeper holds a fixed frame rate by sleeping away whatever is left of
// each frame period.
//
// The requested sleep is corrected by the mean of all previously observed
// differences between actual and requested sleep. The mean is cumulative over
// the lifetime of the sleeper, so it reacts less and less to new drift as the
// sample count grows, and it does not handle sudden lag spikes well.
type FrameSleeper struct {
	clock  Clock
	period time.Duration

	correction float64 // ns
	samples    float64
}

// NewFrameSleeper creates a sleeper for the given frame rate.
func NewFrameSleeper(fps float64, clock Clock) *FrameSleeper {
	if clock == nil {
		clock = SystemClock
	}
	return &FrameSleeper{
		clock:  clock,
		period: PeriodForRate(fps),
	}
}

// PeriodForRate returns the frame period for fps frames per second.
func PeriodForRate(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// Period returns the desired frame period.
func (s *FrameSleeper) Period() time.Duration {
	return s.period
}

// Correction returns the current sleep correction.
func (s *FrameSleeper) Correction() time.Duration {
	return time.Duration(s.correction)
}

// Sleep blocks for the remainder of the frame that began at frameStart and
// returns the duration it asked the clock to sleep for.
func (s *FrameSleeper) Sleep(frameStart time.Time) time.Duration {
	end := s.clock.Now()
	elapsed := end.Sub(frameStart)

	requested := s.period - elapsed - time.Duration(s.correction)
	if requested < 0 {
		requested = 0
	}

	s.clock.Sleep(requested)

	actual := s.clock.Now().Sub(end)
	s.compensate(requested, actual)

	return requested
}

// compensate folds one (actual - requested) sample into the running mean.
func (s *FrameSleeper) compensate(requested, actual time.Duration) {
	difference := float64(actual - requested)

	s.correction = ((s.correction * s.samples) + difference) / (s.samples + 1)
	s.samples++
}

// FpsMeter measures the achieved frame rate over windows of at least one second.
type FpsMeter struct {
	clock       Clock
	windowStart time.Time
	frames      int
	fps         float64
}

// NewFpsMeter creates a meter whose first window starts now.
func NewFpsMeter(clock Clock) *FpsMeter {
	if clock == nil {
		clock = SystemClock
	}
	return &FpsMeter{
		clock:       clock,
		windowStart: clock.Now(),
		fps:         -1,
	}
}

// Frame records one completed frame. When the current window spans at least
// a second, the rate is recomputed and a new window begins.
func (m *FpsMeter) Frame() {
	m.frames++

	now := m.clock.Now()
	elapsedMs := float64(now.Sub(m.windowStart)) / float64(time.Millisecond)

	if elapsedMs >= 1000 {
		m.fps = float64(m.frames) / (elapsedMs / 1000)

		m.frames = 0
		m.windowStart = now
	}
}

// FPS returns the rate measured over the last complete window, or -1 if no
// window has completed yet.
func (m *FpsMeter) FPS() float64 {
	return m.fps
}
