// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/store"
)

// GroupTarget renders into a single group. It is immutable.
type GroupTarget struct {
	group store.Group
}

// NewGroupTarget creates a target for one group.
func NewGroupTarget(g store.Group) *GroupTarget {
	return &GroupTarget{group: g}
}

// Group returns the target's group.
func (t *GroupTarget) Group() store.Group {
	return t.group
}

// NumPixels implements Target.
func (t *GroupTarget) NumPixels() int { return t.group.NumPixels() }

// GroupIDs implements GroupContainer.
func (t *GroupTarget) GroupIDs() []int { return []int{t.group.ID} }

// NumGroups implements GroupContainer. Always 1.
func (t *GroupTarget) NumGroups() int { return 1 }

// Mutable implements GroupContainer. A GroupTarget never loses its group.
func (t *GroupTarget) Mutable() bool { return false }

// RemoveGroups implements GroupContainer. It removes nothing.
func (t *GroupTarget) RemoveGroups([]int) int { return 0 }

// Intersects reports whether other contains the target's group.
func (t *GroupTarget) Intersects(other GroupContainer) bool {
	return containsID(other.GroupIDs(), t.group.ID)
}

// SameMembers reports whether other holds exactly the target's group.
func (t *GroupTarget) SameMembers(other GroupContainer) bool {
	return sameIDs(t.GroupIDs(), other.GroupIDs())
}

// Intersection implements GroupContainer.
func (t *GroupTarget) Intersection(other GroupContainer) []int {
	return intersectIDs(t.GroupIDs(), other.GroupIDs())
}

// Inscribe writes the renderable's pixels into the group's range.
func (t *GroupTarget) Inscribe(fb FrameWriter, token *framebuffer.Token, r Renderable) error {
	return inscribeGroups(fb, token, []store.Group{t.group}, r.Pixels())
}

func (t *GroupTarget) String() string {
	return fmt.Sprintf("GroupTarget{%d}", t.group.ID)
}

// MultiGroupTarget spans several groups ("ubergroup"). The renderable's
// output is laid out across the member groups in order.
type MultiGroupTarget struct {
	mutex   sync.RWMutex
	groups  []store.Group
	mutable bool
}

// NewMultiGroupTarget creates a mutable target spanning groups. Conflicting
// mappings added later strip their groups from it.
func NewMultiGroupTarget(groups []store.Group) *MultiGroupTarget {
	return newMultiGroupTarget(groups, true)
}

// NewFixedMultiGroupTarget creates an immutable target spanning groups.
// Mappings that only partially overlap it are rejected.
func NewFixedMultiGroupTarget(groups []store.Group) *MultiGroupTarget {
	return newMultiGroupTarget(groups, false)
}

func newMultiGroupTarget(groups []store.Group, mutable bool) *MultiGroupTarget {
	members := make([]store.Group, 0, len(groups))
	for _, g := range groups {
		if !containsID(groupIDs(members), g.ID) {
			members = append(members, g)
		}
	}
	return &MultiGroupTarget{groups: members, mutable: mutable}
}

// Groups returns a copy of the member groups.
func (t *MultiGroupTarget) Groups() []store.Group {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	groups := make([]store.Group, len(t.groups))
	copy(groups, t.groups)
	return groups
}

// NumPixels returns the sum of the member groups' pixel counts.
func (t *MultiGroupTarget) NumPixels() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	n := 0
	for _, g := range t.groups {
		n += g.NumPixels()
	}
	return n
}

// GroupIDs returns the member ids in output order.
func (t *MultiGroupTarget) GroupIDs() []int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return groupIDs(t.groups)
}

// NumGroups returns the current member count.
func (t *MultiGroupTarget) NumGroups() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.groups)
}

// Mutable reports whether RemoveGroups may strip members.
func (t *MultiGroupTarget) Mutable() bool {
	return t.mutable
}

// Intersects reports whether both containers share a group.
func (t *MultiGroupTarget) Intersects(other GroupContainer) bool {
	return len(t.Intersection(other)) > 0
}

// SameMembers reports whether both containers hold the same groups.
func (t *MultiGroupTarget) SameMembers(other GroupContainer) bool {
	return sameIDs(t.GroupIDs(), other.GroupIDs())
}

// Intersection returns the receiver's member ids that are also in other.
func (t *MultiGroupTarget) Intersection(other GroupContainer) []int {
	return intersectIDs(t.GroupIDs(), other.GroupIDs())
}

// RemoveGroups strips the given groups. Immutable targets are left untouched.
func (t *MultiGroupTarget) RemoveGroups(ids []int) int {
	if !t.mutable {
		return 0
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	kept := t.groups[:0]
	removed := 0
	for _, g := range t.groups {
		if containsID(ids, g.ID) {
			removed++
			continue
		}
		kept = append(kept, g)
	}
	t.groups = kept
	return removed
}

// Inscribe writes the renderable's pixels across the member groups.
func (t *MultiGroupTarget) Inscribe(fb FrameWriter, token *framebuffer.Token, r Renderable) error {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return inscribeGroups(fb, token, t.groups, r.Pixels())
}

func (t *MultiGroupTarget) String() string {
	ids := t.GroupIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	kind := "MultiGroupTarget"
	if !t.mutable {
		kind = "FixedMultiGroupTarget"
	}
	return kind + "{" + strings.Join(parts, ", ") + "}"
}

// inscribeGroups lays pixels out across groups in order. A renderable whose
// size lags behind its target (it is resized after the target shrinks) only
// fills as many pixels as it has.
func inscribeGroups(fb FrameWriter, token *framebuffer.Token, groups []store.Group, pixels []framebuffer.Pixel) error {
	offset := 0
	for _, g := range groups {
		if offset >= len(pixels) {
			break
		}

		end := offset + g.NumPixels()
		if end > len(pixels) {
			end = len(pixels)
		}
		if err := fb.Write(token, g.Start, pixels[offset:end]); err != nil {
			return err
		}
		offset = end
	}
	return nil
}

func groupIDs(groups []store.Group) []int {
	ids := make([]int, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func intersectIDs(a, b []int) []int {
	var out []int
	for _, id := range a {
		if containsID(b, id) {
			out = append(out, id)
		}
	}
	return out
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !containsID(b, id) {
			return false
		}
	}
	return true
}
