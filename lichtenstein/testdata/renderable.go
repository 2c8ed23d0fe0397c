// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testdata

import (
	"sync"
	"sync/atomic"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
)

// FakeRenderable records the calls the render pipeline makes and fills its
// output with a fixed colour on every render.
type FakeRenderable struct {
	sync.Mutex

	Name  string
	Color framebuffer.Pixel
	// RenderErr is returned from every Render call when set.
	RenderErr error
	// RenderHook runs inside Render when set, with the lock held.
	RenderHook func()

	pixels []framebuffer.Pixel

	prepares atomic.Int64
	renders  atomic.Int64
	finishes atomic.Int64

	resizeMutex sync.Mutex
	resizes     []int
}

// NewFakeRenderable creates a fake with numPixels output pixels.
func NewFakeRenderable(name string, numPixels int) *FakeRenderable {
	return &FakeRenderable{
		Name:   name,
		pixels: make([]framebuffer.Pixel, numPixels),
	}
}

func (r *FakeRenderable) Prepare() { r.prepares.Add(1) }
func (r *FakeRenderable) Finish()  { r.finishes.Add(1) }

func (r *FakeRenderable) Render() error {
	r.renders.Add(1)
	if r.RenderHook != nil {
		r.RenderHook()
	}
	if r.RenderErr != nil {
		return r.RenderErr
	}
	for i := range r.pixels {
		r.pixels[i] = r.Color
	}
	return nil
}

func (r *FakeRenderable) Resize(numPixels int) {
	r.resizeMutex.Lock()
	r.resizes = append(r.resizes, numPixels)
	r.resizeMutex.Unlock()

	r.pixels = make([]framebuffer.Pixel, numPixels)
}

func (r *FakeRenderable) NumPixels() int              { return len(r.pixels) }
func (r *FakeRenderable) Pixels() []framebuffer.Pixel { return r.pixels }
func (r *FakeRenderable) String() string              { return r.Name }

// Resizes returns the sizes passed to Resize, in call order.
func (r *FakeRenderable) Resizes() []int {
	r.resizeMutex.Lock()
	defer r.resizeMutex.Unlock()
	out := make([]int, len(r.resizes))
	copy(out, r.resizes)
	return out
}

func (r *FakeRenderable) Prepares() int64 { return r.prepares.Load() }
func (r *FakeRenderable) Renders() int64  { return r.renders.Load() }
func (r *FakeRenderable) Finishes() int64 { return r.finishes.Load() }
