// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package effects holds the built-in renderables and a registry that builds
// them by name for the command API.
package effects

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.lichtenstein.dev/lichtenstein/render"
)

// ErrUnknownEffect is returned by New for names that are not registered
var ErrUnknownEffect = errors.New("ErrUnknownEffect")

// ErrInvalidParams is returned when an effect parameter is out of range
var ErrInvalidParams = errors.New("ErrInvalidParams")

// Params are the numeric effect parameters, keyed by name.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

func (p Params) unit(key string, def float64) (float64, error) {
	v := p.get(key, def)
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidParams, key, v)
	}
	return v, nil
}

func (p Params) hue(key string, def float64) (float64, error) {
	v := p.get(key, def)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidParams, key)
	}
	return wrapHue(v), nil
}

// Constructor builds a renderable with numPixels output pixels.
type Constructor func(params Params, numPixels int) (render.Renderable, error)

var registry = map[string]Constructor{
	"fill":    newFill,
	"rainbow": newRainbow,
	"chase":   newChase,
}

// New builds the effect registered under name.
func New(name string, params Params, numPixels int) (render.Renderable, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	if numPixels < 0 {
		return nil, fmt.Errorf("%w: negative pixel count %d", ErrInvalidParams, numPixels)
	}
	if params == nil {
		params = Params{}
	}
	return ctor(params, numPixels)
}

// Names lists the registered effects in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
