// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.lichtenstein.dev/lichtenstein/metering"
	"go.lichtenstein.dev/lichtenstein/store"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultFPS is the frame rate used when none is configured.
	DefaultFPS = 42
	// DefaultThreads is the render worker count used when none is configured.
	DefaultThreads = 2
)

// Config holds the render loop settings. They are read once when the loop
// starts.
type Config struct {
	FPS     float64
	Threads int
	// Clock drives frame timing. Defaults to the system clock.
	Clock metering.Clock
}

// Pipeline maps render targets to renderables and renders them into the
// framebuffer at a fixed rate.
type Pipeline struct {
	fb     Framebuffer
	config Config

	planMutex sync.Mutex
	plan      plan

	stateMutex sync.Mutex
	state      State
	exited     chan struct{}

	totalFrames atomic.Uint64
	failedJobs  atomic.Uint64
	actualFPS   atomic.Uint64 // math.Float64bits
}

// NewPipeline creates a stopped pipeline rendering into fb.
func NewPipeline(fb Framebuffer, config Config) *Pipeline {
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}
	if config.Threads <= 0 {
		config.Threads = DefaultThreads
	}
	if config.Clock == nil {
		config.Clock = metering.SystemClock
	}

	p := &Pipeline{
		fb:     fb,
		config: config,
		state:  StateStopped,
	}
	p.storeActualFPS(-1)
	return p
}

// Add maps target to renderable. The mapping takes effect with the next frame.
//
// If target is a group container, every existing container sharing groups
// with it is resolved first: identical containers are replaced, mutable ones
// lose the shared groups (and are dropped once empty, or have their renderable
// resized otherwise), immutable single group ones are dropped. A partial
// overlap with an immutable container of several groups fails with
// ErrUnresolvableConflict. Resolutions applied before such a failure are kept.
func (p *Pipeline) Add(renderable Renderable, target Target) error {
	if renderable == nil {
		return fmt.Errorf("%w: renderable is required", ErrInvalidArgument)
	}
	if target == nil {
		return fmt.Errorf("%w: target is required", ErrInvalidArgument)
	}

	p.planMutex.Lock()
	defer p.planMutex.Unlock()

	in, isContainer := target.(GroupContainer)
	if !isContainer {
		log.WithField("target", target.String()).Warn("Inserting non-container render target")
		p.plan.set(target, renderable)
		return nil
	}

	if err := p.resolveConflicts(in); err != nil {
		return err
	}

	p.plan.set(target, renderable)
	return nil
}

// resolveConflicts removes or shrinks the plan entries overlapping in.
// Callers must hold the plan lock.
func (p *Pipeline) resolveConflicts(in GroupContainer) error {
	i := 0

scan:
	for i < p.plan.size() {
		entry := p.plan.entries[i]

		existing, isContainer := entry.Target.(GroupContainer)
		if !isContainer || !existing.Intersects(in) {
			i++
			continue
		}

		logger := log.WithFields(log.Fields{"input": in.String(), "existing": existing.String()})
		logger.Debug("Conflict between input and existing entry")

		switch {
		case existing.SameMembers(in):
			logger.Trace("Identical groups in existing container; removing existing")
			p.plan.removeAt(i)
			break scan

		case existing.Mutable():
			shared := existing.Intersection(in)
			logger.Tracef("Removing %d groups from conflicting entry", len(shared))
			existing.RemoveGroups(shared)

			if existing.NumGroups() == 0 {
				logger.Trace("Removing empty conflicting target")
				p.plan.removeAt(i)
				continue
			}

			required := existing.NumPixels()
			entry.Renderable.Lock()
			logger.Tracef("Resizing renderable %s to %d pixels", describeRenderable(entry.Renderable), required)
			entry.Renderable.Resize(required)
			entry.Renderable.Unlock()

		case existing.NumGroups() == 1:
			logger.Trace("Removing single group conflicting entry")
			p.plan.removeAt(i)
			continue

		default:
			logger.Trace("Immutable container, cannot satisfy mapping")
			return fmt.Errorf("%w: %s partially overlaps immutable %s", ErrUnresolvableConflict, in, existing)
		}

		i++
	}

	return nil
}

// AddGroup maps a single group to renderable and returns the created target.
func (p *Pipeline) AddGroup(renderable Renderable, g store.Group) (Target, error) {
	t := NewGroupTarget(g)
	if err := p.Add(renderable, t); err != nil {
		return nil, err
	}
	return t, nil
}

// AddGroups maps a multi group target built from groups to renderable and
// returns the created target.
func (p *Pipeline) AddGroups(renderable Renderable, groups []store.Group) (Target, error) {
	t := NewMultiGroupTarget(groups)
	if err := p.Add(renderable, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Remove deletes the mapping for target. Other mappings are not inspected.
func (p *Pipeline) Remove(target Target) error {
	if target == nil {
		return fmt.Errorf("%w: target is required", ErrInvalidArgument)
	}

	p.planMutex.Lock()
	defer p.planMutex.Unlock()

	i := p.plan.find(target)
	if i < 0 {
		return fmt.Errorf("%w: no such target in render pipeline", ErrInvalidArgument)
	}
	p.plan.removeAt(i)
	return nil
}

// Renderable returns the renderable currently mapped to target.
func (p *Pipeline) Renderable(target Target) (Renderable, bool) {
	p.planMutex.Lock()
	defer p.planMutex.Unlock()

	if i := p.plan.find(target); i >= 0 {
		return p.plan.entries[i].Renderable, true
	}
	return nil, false
}

// Mappings returns a copy of the plan in plan order.
func (p *Pipeline) Mappings() []Mapping {
	p.planMutex.Lock()
	defer p.planMutex.Unlock()
	return p.plan.snapshot()
}

// Len returns the number of mappings in the plan.
func (p *Pipeline) Len() int {
	p.planMutex.Lock()
	defer p.planMutex.Unlock()
	return p.plan.size()
}

// Dump logs the current plan at debug level and returns it, one mapping per
// line in plan order.
func (p *Pipeline) Dump() string {
	p.planMutex.Lock()
	defer p.planMutex.Unlock()

	var out strings.Builder
	for i, e := range p.plan.entries {
		if i > 0 {
			out.WriteByte('\n')
		}
		fmt.Fprintf(&out, "%20s %s", e.Target.String(), describeRenderable(e.Renderable))
	}

	log.Debugf("Pipeline state\n%s", out.String())
	return out.String()
}
