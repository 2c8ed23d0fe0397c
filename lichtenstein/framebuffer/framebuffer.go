// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package framebuffer holds the pixel values computed by the render pipeline.
//
// Writers bracket their writes with StartFrame and EndFrame. Writes made with
// a frame's token land in a back buffer and only become visible to readers
// when EndFrame publishes the whole frame at once, so a reader never observes
// a frame that is half old and half new.
package framebuffer

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidToken is returned when a token is used outside of the frame it was issued for
var ErrInvalidToken = errors.New("ErrInvalidToken")

// Token represents one write generation of the framebuffer. It is valid from
// StartFrame until the matching EndFrame and must not be reused afterwards.
type Token struct {
	generation uint64
}

// Generation returns the generation the token will publish.
func (t *Token) Generation() uint64 {
	return t.generation
}

// Framebuffer is a double buffered pixel store.
type Framebuffer struct {
	// held for the whole duration of a frame; one writer generation at a time
	frameMutex sync.Mutex

	writeMutex sync.Mutex
	back       []Pixel
	current    *Token

	publishMutex sync.RWMutex
	front        []Pixel
	generation   uint64
}

// New allocates a framebuffer with room for size pixels.
func New(size int) *Framebuffer {
	if size < 0 {
		size = 0
	}

	return &Framebuffer{
		back:  make([]Pixel, size),
		front: make([]Pixel, size),
	}
}

// Size returns the number of pixels in the framebuffer.
func (fb *Framebuffer) Size() int {
	return len(fb.front)
}

// Generation returns the number of frames published so far.
func (fb *Framebuffer) Generation() uint64 {
	fb.publishMutex.RLock()
	defer fb.publishMutex.RUnlock()
	return fb.generation
}

// StartFrame begins a new write generation. The back buffer starts out as a
// copy of the last published frame, so ranges nobody writes to keep their
// previous values. Blocks while another frame is in flight.
func (fb *Framebuffer) StartFrame() *Token {
	fb.frameMutex.Lock()

	fb.publishMutex.RLock()
	next := fb.generation + 1
	copy(fb.back, fb.front)
	fb.publishMutex.RUnlock()

	fb.writeMutex.Lock()
	defer fb.writeMutex.Unlock()

	fb.current = &Token{generation: next}
	return fb.current
}

// Write copies pixels into the frame identified by token, starting at offset.
// The range is clipped to the framebuffer.
func (fb *Framebuffer) Write(token *Token, offset int, pixels []Pixel) error {
	fb.writeMutex.Lock()
	defer fb.writeMutex.Unlock()

	if token == nil || token != fb.current {
		return ErrInvalidToken
	}

	if offset < 0 {
		if -offset >= len(pixels) {
			return nil
		}
		pixels = pixels[-offset:]
		offset = 0
	}
	if offset >= len(fb.back) {
		log.WithField("offset", offset).Debug("Write starts past the end of the framebuffer")
		return nil
	}

	copy(fb.back[offset:], pixels)
	return nil
}

// EndFrame publishes the frame identified by token and invalidates the token.
func (fb *Framebuffer) EndFrame(token *Token) error {
	fb.writeMutex.Lock()
	if token == nil || token != fb.current {
		fb.writeMutex.Unlock()
		return ErrInvalidToken
	}
	fb.current = nil

	fb.publishMutex.Lock()
	fb.front, fb.back = fb.back, fb.front
	fb.generation = token.generation
	fb.publishMutex.Unlock()

	fb.writeMutex.Unlock()
	fb.frameMutex.Unlock()
	return nil
}

// Snapshot returns a copy of the last published frame along with its generation.
func (fb *Framebuffer) Snapshot() ([]Pixel, uint64) {
	fb.publishMutex.RLock()
	defer fb.publishMutex.RUnlock()

	pixels := make([]Pixel, len(fb.front))
	copy(pixels, fb.front)
	return pixels, fb.generation
}

// ReadRange returns a copy of length published pixels starting at offset,
// clipped to the framebuffer.
func (fb *Framebuffer) ReadRange(offset, length int) []Pixel {
	fb.publishMutex.RLock()
	defer fb.publishMutex.RUnlock()

	if offset < 0 || offset >= len(fb.front) || length <= 0 {
		return []Pixel{}
	}
	end := offset + length
	if end > len(fb.front) {
		end = len(fb.front)
	}

	pixels := make([]Pixel, end-offset)
	copy(pixels, fb.front[offset:end])
	return pixels
}
