// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package framebuffer

import "fmt"

// Pixel is a single output value in HSI form. Conversion to whatever the
// fixtures expect happens downstream of the framebuffer.
type Pixel struct {
	H float64 `json:"h"` // hue, degrees [0, 360)
	S float64 `json:"s"` // saturation [0, 1]
	I float64 `json:"i"` // intensity [0, 1]
}

func (p Pixel) String() string {
	return fmt.Sprintf("HSI(%.1f, %.2f, %.2f)", p.H, p.S, p.I)
}
