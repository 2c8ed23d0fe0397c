// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/render"
	"go.lichtenstein.dev/lichtenstein/effects"
)

type effectListHandler struct{}

func (h *effectListHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, effects.Names())
}

// NewEffectListHandler returns a handler for GET /v1/effects.
func NewEffectListHandler() http.Handler {
	return &effectListHandler{}
}
