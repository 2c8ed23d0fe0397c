// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"go.lichtenstein.dev/lichtenstein/framebuffer"
)

// FramebufferResponse is a slice of the last published frame.
type FramebufferResponse struct {
	Generation uint64              `json:"generation"`
	Offset     int                 `json:"offset"`
	Pixels     []framebuffer.Pixel `json:"pixels"`
}
