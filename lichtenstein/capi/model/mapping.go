// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"github.com/google/uuid"
)

// MappingRequest is the body of POST /v1/mappings.
type MappingRequest struct {
	Effect string             `json:"effect"`
	Params map[string]float64 `json:"params,omitempty"`
	Groups []int              `json:"groups"`
	// Fixed requests an immutable multi group target that later mappings
	// cannot strip groups from.
	Fixed bool `json:"fixed,omitempty"`
}

// MappingResponse describes a mapping known to the command API.
type MappingResponse struct {
	ID        uuid.UUID `json:"id"`
	Effect    string    `json:"effect"`
	Target    string    `json:"target"`
	Groups    []int     `json:"groups"`
	NumPixels int       `json:"numPixels"`
}
