// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package capi

import (
	"net/http"

	"github.com/go-chi/chi"
	"go.lichtenstein.dev/lichtenstein/capi/handler"
	"go.lichtenstein.dev/lichtenstein/capi/middleware"
)

const version1 = "/v1"

// Services are the components the command API operates on.
type Services struct {
	Pipeline    handler.Pipeline
	Groups      handler.GroupDirectory
	Framebuffer handler.FrameReader
	Mappings    *handler.MappingRegistry
}

// NewRouter returns a chi router implementing the command API.
func NewRouter(services Services) http.Handler {
	if services.Mappings == nil {
		services.Mappings = handler.NewMappingRegistry()
	}

	router := chi.NewRouter()
	router.Use(middleware.AccessLogMiddleware())

	router.Get("/ping", handler.NewPingHandler().ServeHTTP)

	router.Route(version1, func(r chi.Router) {
		r.Get("/groups", handler.NewGroupListHandler(services.Groups).ServeHTTP)
		r.Get("/groups/{groupid}", handler.NewGroupHandler(services.Groups).ServeHTTP)

		r.Get("/effects", handler.NewEffectListHandler().ServeHTTP)

		r.Get("/mappings", handler.NewMappingListHandler(services.Pipeline, services.Mappings).ServeHTTP)
		r.Post("/mappings", handler.NewMappingAddHandler(services.Pipeline, services.Groups, services.Mappings).ServeHTTP)
		r.Get("/mappings/{mappingid}",
			middleware.MappingIDValidator(
				handler.NewMappingHandler(services.Pipeline, services.Mappings)).ServeHTTP)
		r.Delete("/mappings/{mappingid}",
			middleware.MappingIDValidator(
				handler.NewMappingRemoveHandler(services.Pipeline, services.Mappings)).ServeHTTP)

		r.Get("/pipeline/dump", handler.NewDumpHandler(services.Pipeline).ServeHTTP)
		r.Get("/pipeline/stats", handler.NewStatsHandler(services.Pipeline).ServeHTTP)

		r.Get("/framebuffer", handler.NewFramebufferHandler(services.Framebuffer).ServeHTTP)
	})

	return router
}
