// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/render"

	log "github.com/sirupsen/logrus"
)

type dumpHandler struct {
	pipeline Pipeline
}

func (h *dumpHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.PlainText(writer, request, h.pipeline.Dump())
}

// NewDumpHandler returns a handler for GET /v1/pipeline/dump.
func NewDumpHandler(pipeline Pipeline) http.Handler {
	return &dumpHandler{pipeline: pipeline}
}

type statsHandler struct {
	pipeline Pipeline
}

func (h *statsHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	stats := h.pipeline.Stats()
	log.WithField("fps", stats.ActualFPS).Trace("Serving pipeline stats")
	render.JSON(writer, request, stats)
}

// NewStatsHandler returns a handler for GET /v1/pipeline/stats.
func NewStatsHandler(pipeline Pipeline) http.Handler {
	return &statsHandler{pipeline: pipeline}
}
