// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.lichtenstein.dev/lichtenstein/capi/model"
	"go.lichtenstein.dev/lichtenstein/render"
)

type mapping struct {
	id     uuid.UUID
	effect string
	target render.Target
	groups []int
}

// MappingRegistry hands out ids for mappings created through the command
// API. The pipeline may drop a mapping on its own when a later one conflicts
// with it, so entries are checked against the pipeline before use.
type MappingRegistry struct {
	mutex    sync.Mutex
	mappings map[uuid.UUID]*mapping
}

// NewMappingRegistry returns an empty registry.
func NewMappingRegistry() *MappingRegistry {
	return &MappingRegistry{mappings: make(map[uuid.UUID]*mapping)}
}

func (r *MappingRegistry) put(m *mapping) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.mappings[m.id] = m
}

func (r *MappingRegistry) get(id uuid.UUID) (*mapping, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	m, ok := r.mappings[id]
	return m, ok
}

func (r *MappingRegistry) delete(id uuid.UUID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.mappings, id)
}

// live returns the mappings still present in pipeline and forgets the rest.
func (r *MappingRegistry) live(pipeline Pipeline) []model.MappingResponse {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := make([]model.MappingResponse, 0, len(r.mappings))
	for id, m := range r.mappings {
		if _, ok := pipeline.Renderable(m.target); !ok {
			delete(r.mappings, id)
			continue
		}
		out = append(out, m.response())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// Len returns the number of registered mappings, including stale ones.
func (r *MappingRegistry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.mappings)
}

func (m *mapping) response() model.MappingResponse {
	groups := m.groups
	if c, ok := m.target.(render.GroupContainer); ok {
		groups = c.GroupIDs()
	}
	return model.MappingResponse{
		ID:        m.id,
		Effect:    m.effect,
		Target:    m.target.String(),
		Groups:    groups,
		NumPixels: m.target.NumPixels(),
	}
}
