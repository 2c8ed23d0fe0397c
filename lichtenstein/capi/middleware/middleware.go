// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"go.lichtenstein.dev/lichtenstein/capi/handler"
	"go.lichtenstein.dev/lichtenstein/capi/rendering"

	log "github.com/sirupsen/logrus"
)

// MappingIDValidator validates that the {mappingid} URL parameter is a uuid
// and places it into the request context.
func MappingIDValidator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "mappingid")
		id, err := uuid.Parse(raw)
		if err != nil {
			rendering.RenderInvalidRequest(w, r, "Invalid mapping id %q", raw)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), handler.MappingIDCtxKey, id))
		next.ServeHTTP(w, r)
	})
}

// AccessLogMiddleware writes api access log.
func AccessLogMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			log.Debug("Command API request - ", r.Method, " ", r.URL)
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
