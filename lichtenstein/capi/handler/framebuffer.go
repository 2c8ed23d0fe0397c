// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"go.lichtenstein.dev/lichtenstein/capi/model"
	"go.lichtenstein.dev/lichtenstein/capi/rendering"
)

type framebufferHandler struct {
	fb FrameReader
}

func queryInt(request *http.Request, name string, def int) (int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func (h *framebufferHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	size := h.fb.Size()

	offset, err := queryInt(request, "offset", 0)
	if err != nil {
		rendering.RenderInvalidRequest(writer, request, "Invalid offset")
		return
	}
	length, err := queryInt(request, "length", size)
	if err != nil {
		rendering.RenderInvalidRequest(writer, request, "Invalid length")
		return
	}
	if offset < 0 || length < 0 || (size > 0 && offset >= size) {
		rendering.RenderInvalidArgument(writer, request, "Range [%d, +%d) is outside the framebuffer of %d pixels", offset, length, size)
		return
	}

	pixels, generation := h.fb.Snapshot()
	if offset > len(pixels) {
		offset = len(pixels)
	}
	// clamp before adding so huge lengths cannot overflow
	if length > len(pixels)-offset {
		length = len(pixels) - offset
	}
	end := offset + length

	render.JSON(writer, request, &model.FramebufferResponse{
		Generation: generation,
		Offset:     offset,
		Pixels:     pixels[offset:end],
	})
}

// NewFramebufferHandler returns a handler for GET /v1/framebuffer.
func NewFramebufferHandler(fb FrameReader) http.Handler {
	return &framebufferHandler{fb: fb}
}
