// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"math"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/metering"
	"go.lichtenstein.dev/lichtenstein/workpool"

	log "github.com/sirupsen/logrus"
)

// Start launches the render loop on its own goroutine.
func (p *Pipeline) Start() error {
	p.stateMutex.Lock()
	defer p.stateMutex.Unlock()

	if p.state != StateStopped {
		return ErrAlreadyRunning
	}

	p.state = StateRunning
	p.exited = make(chan struct{})
	go p.run(p.exited)

	return nil
}

// Terminate requests the render loop to stop. The frame in flight is
// completed first, so it may take up to one frame period for the loop to
// exit. Repeated calls are ignored.
func (p *Pipeline) Terminate() {
	p.stateMutex.Lock()
	defer p.stateMutex.Unlock()

	if p.state != StateRunning {
		log.WithField("state", p.state).Warn("Ignoring repeated call of Pipeline.Terminate()")
		return
	}

	log.Debug("Requesting render pipeline termination")
	p.state = StateTerminating
}

// Wait blocks until the render loop has exited. Returns immediately if it
// was never started.
func (p *Pipeline) Wait() {
	p.stateMutex.Lock()
	exited := p.exited
	p.stateMutex.Unlock()

	if exited != nil {
		<-exited
	}
}

// Close tears the pipeline down. Terminate should be called first; if it was
// not, Close calls it. Blocks until the render loop has exited.
func (p *Pipeline) Close() {
	if p.State() == StateRunning {
		log.Warn("You should call Pipeline.Terminate() before Pipeline.Close()")
		p.Terminate()
	}
	p.Wait()
}

// State returns the render loop state.
func (p *Pipeline) State() State {
	p.stateMutex.Lock()
	defer p.stateMutex.Unlock()
	return p.state
}

// Stats returns counters describing the render loop.
func (p *Pipeline) Stats() Stats {
	return Stats{
		State:       p.State(),
		TargetFPS:   p.config.FPS,
		ActualFPS:   p.loadActualFPS(),
		TotalFrames: p.totalFrames.Load(),
		FailedJobs:  p.failedJobs.Load(),
		Mappings:    p.Len(),
		Threads:     p.config.Threads,
	}
}

func (p *Pipeline) storeActualFPS(fps float64) {
	p.actualFPS.Store(math.Float64bits(fps))
}

func (p *Pipeline) loadActualFPS() float64 {
	return math.Float64frombits(p.actualFPS.Load())
}

func (p *Pipeline) terminationRequested() bool {
	return p.State() != StateRunning
}

// run is the render loop. The termination flag is checked once per frame.
func (p *Pipeline) run(exited chan struct{}) {
	clock := p.config.Clock

	log.Debugf("Pipeline fps = %.1f; using %d render threads", p.config.FPS, p.config.Threads)

	pool := workpool.New(p.config.Threads)
	sleeper := metering.NewFrameSleeper(p.config.FPS, clock)
	meter := metering.NewFpsMeter(clock)
	p.storeActualFPS(-1)

	for !p.terminationRequested() {
		start := clock.Now()

		p.planMutex.Lock()
		current := p.plan.snapshot()
		p.planMutex.Unlock()

		if len(current) > 0 {
			p.renderFrame(pool, current)
		}

		sleeper.Sleep(start)
		meter.Frame()
		p.storeActualFPS(meter.FPS())
		p.totalFrames.Add(1)
	}

	log.Debug("Render pipeline is shutting down")
	pool.Stop(false)

	p.stateMutex.Lock()
	p.state = StateStopped
	p.stateMutex.Unlock()
	close(exited)
}

// renderFrame renders one frame of the given plan snapshot and publishes it.
func (p *Pipeline) renderFrame(pool *workpool.Pool, current []Mapping) {
	token := p.fb.StartFrame()

	for _, m := range current {
		m.Renderable.Lock()
		m.Renderable.Prepare()
		m.Renderable.Unlock()
	}

	// fork
	errs := make([]error, len(current))
	futures := make([]*workpool.Future, len(current))
	for i := range current {
		i := i
		futures[i] = pool.Submit(func() {
			errs[i] = p.renderOne(token, current[i])
		})
	}

	// join
	for i, f := range futures {
		err := f.Wait()
		if err == nil {
			err = errs[i]
		}
		if err != nil {
			p.failedJobs.Add(1)
			log.WithError(err).WithField("target", current[i].Target.String()).Error("Render job failed")
		}
	}

	for _, m := range current {
		m.Renderable.Lock()
		m.Renderable.Finish()
		m.Renderable.Unlock()
	}

	if err := p.fb.EndFrame(token); err != nil {
		log.WithError(err).Error("Failed to publish frame")
	}
}

// renderOne renders a single renderable and copies its output into the
// target's range of the frame.
func (p *Pipeline) renderOne(token *framebuffer.Token, m Mapping) error {
	m.Renderable.Lock()
	defer m.Renderable.Unlock()

	if err := m.Renderable.Render(); err != nil {
		return fmt.Errorf("render %s: %w", describeRenderable(m.Renderable), err)
	}
	return m.Target.Inscribe(p.fb, token, m.Renderable)
}
