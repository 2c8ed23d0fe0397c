// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrGroupNotFound means that no group with the requested id is known
var ErrGroupNotFound = errors.New("ErrGroupNotFound")

// ErrGroupIDCollision means that a group with the same id already exists
var ErrGroupIDCollision = errors.New("ErrGroupIDCollision")

// ErrInvalidGroup means that the group's pixel range is malformed
var ErrInvalidGroup = errors.New("ErrInvalidGroup")

// Group is an addressable contiguous range of pixels in the framebuffer.
// Start and End are both inclusive.
type Group struct {
	ID      int    `json:"id" toml:"id"`
	Name    string `json:"name" toml:"name"`
	Enabled bool   `json:"enabled" toml:"enabled"`
	Start   int    `json:"start" toml:"start"`
	End     int    `json:"end" toml:"end"`
}

// NumPixels returns the number of pixels this group encompasses.
func (g Group) NumPixels() int {
	return (g.End - g.Start) + 1
}

func (g Group) String() string {
	return fmt.Sprintf("Group{id=%d, %d-%d}", g.ID, g.Start, g.End)
}

// Validate checks the pixel range.
func (g Group) Validate() error {
	if g.Start < 0 || g.End < g.Start {
		return fmt.Errorf("%w: group %d has range %d-%d", ErrInvalidGroup, g.ID, g.Start, g.End)
	}
	return nil
}

// Store is the group directory. It is safe for concurrent use.
type Store struct {
	mutex  sync.RWMutex
	groups map[int]Group
}

// NewStore creates a store pre-populated with the given groups.
func NewStore(groups []Group) (*Store, error) {
	s := &Store{groups: make(map[int]Group, len(groups))}
	for _, g := range groups {
		if err := s.Insert(g); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Insert adds a new group. Error is returned if a group with this id already exists
func (s *Store) Insert(g Group) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, collision := s.groups[g.ID]; collision {
		return ErrGroupIDCollision
	}
	s.groups[g.ID] = g
	return nil
}

// Update replaces an existing group.
func (s *Store) Update(g Group) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, found := s.groups[g.ID]; !found {
		return ErrGroupNotFound
	}
	s.groups[g.ID] = g
	return nil
}

// FindByID finds group by id
func (s *Store) FindByID(id int) (Group, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	g, found := s.groups[id]
	return g, found
}

// FindAll resolves every id, failing on the first unknown one.
func (s *Store) FindAll(ids []int) ([]Group, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		g, found := s.groups[id]
		if !found {
			return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, id)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// All returns all groups ordered by id.
func (s *Store) All() []Group {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	groups := make([]Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// Size returns the number of groups contained in the store
func (s *Store) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.groups)
}

// PixelExtent returns one past the highest pixel index covered by any group.
func (s *Store) PixelExtent() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	extent := 0
	for _, g := range s.groups {
		if g.End+1 > extent {
			extent = g.End + 1
		}
	}
	return extent
}
