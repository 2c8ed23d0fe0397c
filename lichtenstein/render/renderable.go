// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.lichtenstein.dev/lichtenstein/framebuffer"
)

// Renderable is a stateful effect computation producing the pixels of one
// target. Prepare, Render, Finish and Resize are only called with the
// renderable's lock held.
type Renderable interface {
	sync.Locker

	// Prepare is called serially for every renderable before any of them renders.
	Prepare()
	// Render computes this frame's pixels. Renderables render concurrently.
	Render() error
	// Finish is called serially once every renderable has rendered.
	Finish()

	// Resize changes the number of output pixels.
	Resize(numPixels int)
	NumPixels() int
	// Pixels returns the current output. The slice is owned by the renderable.
	Pixels() []framebuffer.Pixel
}

// Buffer is the pixel storage and lock shared by concrete renderables. Embed
// a *Buffer and implement Prepare, Render and Finish.
type Buffer struct {
	sync.Mutex

	id     uuid.UUID
	pixels []framebuffer.Pixel
}

// NewBuffer allocates a buffer holding numPixels pixels.
func NewBuffer(numPixels int) *Buffer {
	if numPixels < 0 {
		numPixels = 0
	}
	return &Buffer{
		id:     uuid.New(),
		pixels: make([]framebuffer.Pixel, numPixels),
	}
}

// ID identifies the renderable in logs and plan dumps.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Resize grows or shrinks the buffer, keeping the leading pixels.
func (b *Buffer) Resize(numPixels int) {
	if numPixels < 0 {
		numPixels = 0
	}
	if numPixels <= cap(b.pixels) {
		old := len(b.pixels)
		b.pixels = b.pixels[:numPixels]
		for i := old; i < numPixels; i++ {
			b.pixels[i] = framebuffer.Pixel{}
		}
		return
	}

	pixels := make([]framebuffer.Pixel, numPixels)
	copy(pixels, b.pixels)
	b.pixels = pixels
}

// NumPixels returns the number of output pixels.
func (b *Buffer) NumPixels() int {
	return len(b.pixels)
}

// Pixels returns the output pixels.
func (b *Buffer) Pixels() []framebuffer.Pixel {
	return b.pixels
}

func (b *Buffer) String() string {
	return b.id.String()
}

// describeRenderable names a renderable in logs.
func describeRenderable(r Renderable) string {
	if s, ok := r.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%p", r)
}
