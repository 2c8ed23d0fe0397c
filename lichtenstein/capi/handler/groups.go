// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"go.lichtenstein.dev/lichtenstein/capi/rendering"
)

type groupListHandler struct {
	groups GroupDirectory
}

func (h *groupListHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, h.groups.All())
}

// NewGroupListHandler returns a handler for GET /v1/groups.
func NewGroupListHandler(groups GroupDirectory) http.Handler {
	return &groupListHandler{groups: groups}
}

type groupHandler struct {
	groups GroupDirectory
}

func (h *groupHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(request, "groupid"))
	if err != nil {
		rendering.RenderInvalidRequest(writer, request, "Invalid group id %q", chi.URLParam(request, "groupid"))
		return
	}

	group, ok := h.groups.FindByID(id)
	if !ok {
		rendering.RenderNotFound(writer, request, "No group with id %d", id)
		return
	}

	render.JSON(writer, request, group)
}

// NewGroupHandler returns a handler for GET /v1/groups/{groupid}.
func NewGroupHandler(groups GroupDirectory) http.Handler {
	return &groupHandler{groups: groups}
}
