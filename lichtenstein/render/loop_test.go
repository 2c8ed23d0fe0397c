// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/testdata"
	"golang.org/x/sync/errgroup"
)

func waitForGeneration(t *testing.T, fb *framebuffer.Framebuffer, gen uint64) {
	require.Eventually(t, func() bool { return fb.Generation() >= gen },
		2*time.Second, time.Millisecond, "framebuffer never reached generation %d", gen)
}

func TestLifecycleTransitions(t *testing.T) {
	p := NewPipeline(framebuffer.New(8), Config{FPS: 200})
	assert.Equal(t, StateStopped, p.State())

	// terminating a stopped pipeline is ignored
	p.Terminate()
	assert.Equal(t, StateStopped, p.State())

	require.NoError(t, p.Start())
	assert.Equal(t, StateRunning, p.State())
	assert.Equal(t, ErrAlreadyRunning, p.Start())

	p.Terminate()
	p.Terminate()
	p.Wait()
	assert.Equal(t, StateStopped, p.State())

	// the loop can be started again once it has stopped
	require.NoError(t, p.Start())
	p.Terminate()
	p.Close()
	assert.Equal(t, StateStopped, p.State())
}

func TestCloseTerminatesRunningPipeline(t *testing.T) {
	p := NewPipeline(framebuffer.New(8), Config{FPS: 200})
	require.NoError(t, p.Start())

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
	assert.Equal(t, StateStopped, p.State())
}

func TestEmptyPlanStillCountsFrames(t *testing.T) {
	fb := framebuffer.New(8)
	p := NewPipeline(fb, Config{FPS: 500})
	require.NoError(t, p.Start())
	defer p.Close()

	require.Eventually(t, func() bool { return p.Stats().TotalFrames >= 5 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, uint64(0), fb.Generation())
}

func TestFrameRendersEveryMapping(t *testing.T) {
	groups := testdata.Groups(3)
	fb := framebuffer.New(3 * testdata.PixelsPerGroup)
	p := NewPipeline(fb, Config{FPS: 200, Threads: 2})

	red := framebuffer.Pixel{H: 0, S: 1, I: 1}
	blue := framebuffer.Pixel{H: 240, S: 1, I: 1}

	ra := testdata.NewFakeRenderable("ra", testdata.PixelsPerGroup)
	ra.Color = red
	_, err := p.AddGroup(ra, groups[0])
	require.NoError(t, err)

	rb := testdata.NewFakeRenderable("rb", 2*testdata.PixelsPerGroup)
	rb.Color = blue
	_, err = p.AddGroups(rb, testdata.Pick(groups, 3, 2))
	require.NoError(t, err)

	require.NoError(t, p.Start())
	waitForGeneration(t, fb, 3)
	p.Terminate()
	p.Wait()

	pixels, _ := fb.Snapshot()
	for i := 0; i < testdata.PixelsPerGroup; i++ {
		assert.Equal(t, red, pixels[i])
	}
	for i := testdata.PixelsPerGroup; i < len(pixels); i++ {
		assert.Equal(t, blue, pixels[i])
	}

	for _, r := range []*testdata.FakeRenderable{ra, rb} {
		assert.Equal(t, r.Prepares(), r.Renders())
		assert.Equal(t, r.Renders(), r.Finishes())
	}
	assert.Equal(t, uint64(0), p.Stats().FailedJobs)
}

func TestFailingRenderableDoesNotStarveFrame(t *testing.T) {
	groups := testdata.Groups(3)
	fb := framebuffer.New(3 * testdata.PixelsPerGroup)
	p := NewPipeline(fb, Config{FPS: 200, Threads: 2})

	broken := testdata.NewFakeRenderable("broken", testdata.PixelsPerGroup)
	broken.RenderErr = errors.New("script error")
	_, err := p.AddGroup(broken, groups[0])
	require.NoError(t, err)

	panicking := testdata.NewFakeRenderable("panicking", testdata.PixelsPerGroup)
	panicking.RenderHook = func() { panic("nil routine") }
	_, err = p.AddGroup(panicking, groups[1])
	require.NoError(t, err)

	healthy := testdata.NewFakeRenderable("healthy", testdata.PixelsPerGroup)
	healthy.Color = framebuffer.Pixel{I: 1}
	_, err = p.AddGroup(healthy, groups[2])
	require.NoError(t, err)

	require.NoError(t, p.Start())
	waitForGeneration(t, fb, 3)
	p.Terminate()
	p.Wait()

	pixels := fb.ReadRange(groups[2].Start, testdata.PixelsPerGroup)
	for _, px := range pixels {
		assert.Equal(t, healthy.Color, px)
	}
	assert.Equal(t, framebuffer.Pixel{}, fb.ReadRange(groups[0].Start, 1)[0])

	assert.GreaterOrEqual(t, p.Stats().FailedJobs, uint64(6))
	assert.Equal(t, panicking.Renders(), panicking.Finishes())
}

func TestSteadyStateFrameRate(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	const fps = 200
	const window = time.Second

	groups := testdata.Groups(4)
	p := NewPipeline(framebuffer.New(4*testdata.PixelsPerGroup), Config{FPS: fps, Threads: 2})
	_, err := p.AddGroups(testdata.NewFakeRenderable("r", 4*testdata.PixelsPerGroup), groups)
	require.NoError(t, err)

	require.NoError(t, p.Start())
	defer p.Close()

	// let the sleep correction settle
	time.Sleep(200 * time.Millisecond)

	before := p.Stats().TotalFrames
	time.Sleep(window)
	after := p.Stats().TotalFrames

	expected := fps * window.Seconds()
	assert.InDelta(t, expected, float64(after-before), expected*0.05)
	assert.InDelta(t, float64(fps), p.Stats().ActualFPS, fps*0.1)
}

func TestConcurrentMutationWithRunningLoop(t *testing.T) {
	groups := testdata.Groups(8)
	fb := framebuffer.New(8 * testdata.PixelsPerGroup)
	p := NewPipeline(fb, Config{FPS: 500, Threads: 3})
	require.NoError(t, p.Start())

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		seed := int64(w)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			var last Target
			for i := 0; i < 300; i++ {
				switch rng.Intn(3) {
				case 0:
					group := groups[rng.Intn(len(groups))]
					r := testdata.NewFakeRenderable(fmt.Sprintf("single-%d-%d", seed, i), group.NumPixels())
					target, err := p.AddGroup(r, group)
					if err != nil {
						return err
					}
					last = target
				case 1:
					picked := testdata.Pick(groups, 1+rng.Intn(8), 1+rng.Intn(8), 1+rng.Intn(8))
					r := testdata.NewFakeRenderable(fmt.Sprintf("multi-%d-%d", seed, i), 3*testdata.PixelsPerGroup)
					target, err := p.AddGroups(r, picked)
					if err != nil {
						return err
					}
					last = target
				default:
					if last == nil {
						continue
					}
					// the mapping may already have been consumed by a conflicting add
					if err := p.Remove(last); err != nil && !errors.Is(err, ErrInvalidArgument) {
						return err
					}
					last = nil
				}
				_ = p.Dump()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	waitForGeneration(t, fb, fb.Generation()+2)
	p.Terminate()
	p.Close()

	// no two group containers in the plan share a group
	mappings := p.Mappings()
	for i := range mappings {
		a, ok := mappings[i].Target.(GroupContainer)
		if !ok {
			continue
		}
		for j := i + 1; j < len(mappings); j++ {
			b := mappings[j].Target.(GroupContainer)
			assert.False(t, a.Intersects(b), "%s overlaps %s", a, b)
		}
	}
}
