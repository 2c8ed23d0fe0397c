// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package effects

import (
	"fmt"

	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/render"
)

// Chase runs a lit segment with a fading tail along its pixels, advancing one
// pixel every frame and wrapping at the end.
type Chase struct {
	*render.Buffer

	color framebuffer.Pixel
	tail  int

	position int
}

func newChase(params Params, numPixels int) (render.Renderable, error) {
	h, err := params.hue("h", 0)
	if err != nil {
		return nil, err
	}
	s, err := params.unit("s", 1)
	if err != nil {
		return nil, err
	}
	i, err := params.unit("i", 1)
	if err != nil {
		return nil, err
	}
	tail := int(params.get("tail", 3))
	if tail < 0 {
		return nil, fmt.Errorf("%w: tail must not be negative", ErrInvalidParams)
	}
	return &Chase{
		Buffer: render.NewBuffer(numPixels),
		color:  framebuffer.Pixel{H: h, S: s, I: i},
		tail:   tail,
	}, nil
}

func (c *Chase) Prepare() {
	// the target may have been shrunk since the last frame
	if n := c.NumPixels(); n > 0 && c.position >= n {
		c.position %= n
	}
}

func (c *Chase) Render() error {
	pixels := c.Pixels()
	n := len(pixels)
	for i := range pixels {
		pixels[i] = framebuffer.Pixel{H: c.color.H, S: c.color.S}
	}
	if n == 0 {
		return nil
	}

	for k := 0; k <= c.tail && k < n; k++ {
		idx := (c.position - k + n) % n
		px := c.color
		px.I = c.color.I * float64(c.tail+1-k) / float64(c.tail+1)
		pixels[idx] = px
	}
	return nil
}

func (c *Chase) Finish() {
	if n := c.NumPixels(); n > 0 {
		c.position = (c.position + 1) % n
	}
}

func (c *Chase) Position() int {
	return c.position
}

func (c *Chase) String() string {
	return fmt.Sprintf("chase(%s)@%s", c.color, c.ID())
}
