// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.lichtenstein.dev/lichtenstein/capi/model"
	"go.lichtenstein.dev/lichtenstein/capi/rendering"
	"go.lichtenstein.dev/lichtenstein/effects"
	lrender "go.lichtenstein.dev/lichtenstein/render"
	"go.lichtenstein.dev/lichtenstein/store"

	log "github.com/sirupsen/logrus"
)

// MaxRequestSize bounds the body of mapping requests.
const MaxRequestSize = 64 * 1024

func parseMappingRequest(request *http.Request) (*model.MappingRequest, error) {
	body, err := io.ReadAll(io.LimitReader(request.Body, MaxRequestSize))
	if err != nil {
		return nil, err
	}

	var req model.MappingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	if req.Effect == "" {
		return nil, errors.New("effect is required")
	}
	if len(req.Groups) == 0 {
		return nil, errors.New("at least one group is required")
	}

	return &req, nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func newTarget(groups []store.Group, fixed bool) lrender.Target {
	switch {
	case len(groups) == 1:
		return lrender.NewGroupTarget(groups[0])
	case fixed:
		return lrender.NewFixedMultiGroupTarget(groups)
	default:
		return lrender.NewMultiGroupTarget(groups)
	}
}

type mappingAddHandler struct {
	pipeline Pipeline
	groups   GroupDirectory
	registry *MappingRegistry
}

func (h *mappingAddHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	req, err := parseMappingRequest(request)
	if err != nil {
		rendering.RenderInvalidRequest(writer, request, "Invalid mapping request: %s", err)
		return
	}

	ids := uniqueIDs(req.Groups)
	groups, err := h.groups.FindAll(ids)
	if err != nil {
		rendering.RenderInvalidArgument(writer, request, "%s", err)
		return
	}
	for _, g := range groups {
		if !g.Enabled {
			rendering.RenderInvalidArgument(writer, request, "Group %d is disabled", g.ID)
			return
		}
	}

	target := newTarget(groups, req.Fixed)
	renderable, err := effects.New(req.Effect, effects.Params(req.Params), target.NumPixels())
	if err != nil {
		rendering.RenderInvalidArgument(writer, request, "%s", err)
		return
	}

	if err := h.pipeline.Add(renderable, target); err != nil {
		switch {
		case errors.Is(err, lrender.ErrUnresolvableConflict):
			rendering.RenderUnresolvableConflict(writer, request, "%s", err)
		case errors.Is(err, lrender.ErrInvalidArgument):
			rendering.RenderInvalidArgument(writer, request, "%s", err)
		default:
			log.WithError(err).Error("Failed to add mapping")
			rendering.RenderInternalServerError(writer, request)
		}
		return
	}

	m := &mapping{
		id:     uuid.New(),
		effect: req.Effect,
		target: target,
		groups: ids,
	}
	h.registry.put(m)

	log.WithField("id", m.id).WithField("target", target.String()).Info("Mapping added")
	if err := rendering.RenderJSON(http.StatusCreated, writer, request, m.response()); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

// NewMappingAddHandler returns a handler for POST /v1/mappings.
func NewMappingAddHandler(pipeline Pipeline, groups GroupDirectory, registry *MappingRegistry) http.Handler {
	return &mappingAddHandler{pipeline: pipeline, groups: groups, registry: registry}
}

type mappingListHandler struct {
	pipeline Pipeline
	registry *MappingRegistry
}

func (h *mappingListHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, h.registry.live(h.pipeline))
}

// NewMappingListHandler returns a handler for GET /v1/mappings.
func NewMappingListHandler(pipeline Pipeline, registry *MappingRegistry) http.Handler {
	return &mappingListHandler{pipeline: pipeline, registry: registry}
}

// lookupMapping finds the mapping named by the request, forgetting it if the
// pipeline no longer holds it.
func lookupMapping(request *http.Request, pipeline Pipeline, registry *MappingRegistry) (*mapping, bool) {
	id, ok := request.Context().Value(MappingIDCtxKey).(uuid.UUID)
	if !ok {
		return nil, false
	}

	m, ok := registry.get(id)
	if !ok {
		return nil, false
	}
	if _, ok := pipeline.Renderable(m.target); !ok {
		registry.delete(id)
		return nil, false
	}
	return m, true
}

type mappingHandler struct {
	pipeline Pipeline
	registry *MappingRegistry
}

func (h *mappingHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	m, ok := lookupMapping(request, h.pipeline, h.registry)
	if !ok {
		rendering.RenderNotFound(writer, request, "No such mapping")
		return
	}
	render.JSON(writer, request, m.response())
}

// NewMappingHandler returns a handler for GET /v1/mappings/{mappingid}.
func NewMappingHandler(pipeline Pipeline, registry *MappingRegistry) http.Handler {
	return &mappingHandler{pipeline: pipeline, registry: registry}
}

type mappingRemoveHandler struct {
	pipeline Pipeline
	registry *MappingRegistry
}

func (h *mappingRemoveHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	m, ok := lookupMapping(request, h.pipeline, h.registry)
	if !ok {
		rendering.RenderNotFound(writer, request, "No such mapping")
		return
	}

	h.registry.delete(m.id)
	if err := h.pipeline.Remove(m.target); err != nil {
		// replaced by a conflicting mapping in the meantime
		if errors.Is(err, lrender.ErrInvalidArgument) {
			rendering.RenderNotFound(writer, request, "No such mapping")
			return
		}
		log.WithError(err).Error("Failed to remove mapping")
		rendering.RenderInternalServerError(writer, request)
		return
	}

	log.WithField("id", m.id).Info("Mapping removed")
	writer.WriteHeader(http.StatusNoContent)
}

// NewMappingRemoveHandler returns a handler for DELETE /v1/mappings/{mappingid}.
func NewMappingRemoveHandler(pipeline Pipeline, registry *MappingRegistry) http.Handler {
	return &mappingRemoveHandler{pipeline: pipeline, registry: registry}
}
