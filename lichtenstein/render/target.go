// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
)

// FrameWriter writes pixels into the frame identified by a token.
type FrameWriter interface {
	Write(token *framebuffer.Token, offset int, pixels []framebuffer.Pixel) error
}

// Framebuffer is the framebuffer capability the pipeline renders into.
type Framebuffer interface {
	FrameWriter
	StartFrame() *framebuffer.Token
	EndFrame(token *framebuffer.Token) error
}

// Target is a destination range of the framebuffer. Targets are compared by
// identity, so implementations must be pointer types.
type Target interface {
	fmt.Stringer

	// NumPixels returns the number of pixels the target covers.
	NumPixels() int
	// Inscribe copies the renderable's current pixels into the target's
	// range of the frame. Called with the renderable's lock held.
	Inscribe(fb FrameWriter, token *framebuffer.Token, r Renderable) error
}

// GroupContainer is a target made of groups. The pipeline resolves overlaps
// between group containers when mappings are added.
type GroupContainer interface {
	Target

	// GroupIDs returns the ids of the member groups, in output order.
	GroupIDs() []int
	NumGroups() int
	// Mutable reports whether groups may be removed from the container.
	Mutable() bool

	// Intersects reports whether both containers share at least one group.
	Intersects(other GroupContainer) bool
	// SameMembers reports whether both containers hold exactly the same groups.
	SameMembers(other GroupContainer) bool
	// Intersection returns the ids of the receiver's groups that are also in
	// other. These are the groups to strip from the receiver on conflict.
	Intersection(other GroupContainer) []int
	// RemoveGroups removes the given groups atomically and returns how many
	// were members. Immutable containers remove nothing.
	RemoveGroups(ids []int) int
}

// RangeTarget is a raw range of the framebuffer. It is not a group container
// and therefore bypasses conflict resolution.
type RangeTarget struct {
	offset int
	length int
}

// NewRangeTarget creates a target covering length pixels starting at offset.
func NewRangeTarget(offset, length int) *RangeTarget {
	return &RangeTarget{offset: offset, length: length}
}

// NumPixels returns the length of the range.
func (t *RangeTarget) NumPixels() int {
	return t.length
}

// Inscribe writes the renderable's pixels at the start of the range.
func (t *RangeTarget) Inscribe(fb FrameWriter, token *framebuffer.Token, r Renderable) error {
	pixels := r.Pixels()
	if len(pixels) > t.length {
		pixels = pixels[:t.length]
	}
	return fb.Write(token, t.offset, pixels)
}

func (t *RangeTarget) String() string {
	return fmt.Sprintf("RangeTarget{%d+%d}", t.offset, t.length)
}
