// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package effects

import (
	"fmt"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/render"
)

// Fill paints every pixel with one colour.
type Fill struct {
	*render.Buffer
	color framebuffer.Pixel
}

// NewFill creates a fill effect of the given colour.
func NewFill(color framebuffer.Pixel, numPixels int) *Fill {
	return &Fill{Buffer: render.NewBuffer(numPixels), color: color}
}

func newFill(params Params, numPixels int) (render.Renderable, error) {
	h, err := params.hue("h", 0)
	if err != nil {
		return nil, err
	}
	s, err := params.unit("s", 0)
	if err != nil {
		return nil, err
	}
	i, err := params.unit("i", 1)
	if err != nil {
		return nil, err
	}
	return NewFill(framebuffer.Pixel{H: h, S: s, I: i}, numPixels), nil
}

func (f *Fill) Prepare() {}
func (f *Fill) Finish()  {}

func (f *Fill) Render() error {
	pixels := f.Pixels()
	for i := range pixels {
		pixels[i] = f.color
	}
	return nil
}

func (f *Fill) String() string {
	return fmt.Sprintf("fill(%s)@%s", f.color, f.ID())
}
