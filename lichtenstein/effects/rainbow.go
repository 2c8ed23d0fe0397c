// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package effects

import (
	"fmt"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/render"
)

// Rainbow spreads the hue circle across its pixels and rotates it by a fixed
// step every frame.
type Rainbow struct {
	*render.Buffer

	// degrees of hue between adjacent pixels
	spread float64
	// degrees of rotation per frame
	step      float64
	intensity float64

	phase float64
	// phase captured in Prepare, used by Render
	framePhase float64
}

func newRainbow(params Params, numPixels int) (render.Renderable, error) {
	intensity, err := params.unit("i", 1)
	if err != nil {
		return nil, err
	}
	spread := params.get("spread", 0)
	if spread < 0 {
		return nil, fmt.Errorf("%w: spread must not be negative", ErrInvalidParams)
	}
	if spread == 0 && numPixels > 0 {
		spread = 360 / float64(numPixels)
	}
	return &Rainbow{
		Buffer:    render.NewBuffer(numPixels),
		spread:    spread,
		step:      params.get("step", 1),
		intensity: intensity,
	}, nil
}

func (r *Rainbow) Prepare() {
	r.framePhase = r.phase
}

func (r *Rainbow) Render() error {
	pixels := r.Pixels()
	for i := range pixels {
		pixels[i] = framebuffer.Pixel{
			H: wrapHue(r.framePhase + float64(i)*r.spread),
			S: 1,
			I: r.intensity,
		}
	}
	return nil
}

func (r *Rainbow) Finish() {
	r.phase = wrapHue(r.phase + r.step)
}

func (r *Rainbow) String() string {
	return fmt.Sprintf("rainbow@%s", r.ID())
}
