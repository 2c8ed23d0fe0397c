// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"fmt"
	"net/http"

	"go.lichtenstein.dev/lichtenstein/capi/model"

	log "github.com/sirupsen/logrus"
)

const (
	// ErrorTypeInvalidArgument error type for requests naming unusable groups, effects or targets
	ErrorTypeInvalidArgument = "InvalidArgument"
	// ErrorTypeUnresolvableConflict error type for mappings rejected by an immutable target
	ErrorTypeUnresolvableConflict = "UnresolvableConflict"
	// ErrorTypeNotFound error type for unknown resources
	ErrorTypeNotFound = "NotFound"
	// ErrorTypeInvalidRequest error type for malformed request bodies or parameters
	ErrorTypeInvalidRequest = "InvalidRequest"
	// ErrorTypeInternalServerError error type for internal server error
	ErrorTypeInternalServerError = "InternalServerError"
)

func renderError(w http.ResponseWriter, r *http.Request, status int, errorType string, format string, args ...interface{}) {
	if err := RenderJSON(status, w, r, &model.ErrorResponse{
		ErrorType:    errorType,
		ErrorMessage: fmt.Sprintf(format, args...),
	}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RenderInvalidArgument renders a 400 InvalidArgument error response
func RenderInvalidArgument(w http.ResponseWriter, r *http.Request, format string, args ...interface{}) {
	renderError(w, r, http.StatusBadRequest, ErrorTypeInvalidArgument, format, args...)
}

// RenderInvalidRequest renders a 400 InvalidRequest error response
func RenderInvalidRequest(w http.ResponseWriter, r *http.Request, format string, args ...interface{}) {
	renderError(w, r, http.StatusBadRequest, ErrorTypeInvalidRequest, format, args...)
}

// RenderUnresolvableConflict renders a 409 UnresolvableConflict error response
func RenderUnresolvableConflict(w http.ResponseWriter, r *http.Request, format string, args ...interface{}) {
	renderError(w, r, http.StatusConflict, ErrorTypeUnresolvableConflict, format, args...)
}

// RenderNotFound renders a 404 NotFound error response
func RenderNotFound(w http.ResponseWriter, r *http.Request, format string, args ...interface{}) {
	renderError(w, r, http.StatusNotFound, ErrorTypeNotFound, format, args...)
}

// RenderInternalServerError renders a 500 error response
func RenderInternalServerError(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusInternalServerError, ErrorTypeInternalServerError, "Internal Server Error")
}
