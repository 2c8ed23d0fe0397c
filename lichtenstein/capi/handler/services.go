// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"go.lichtenstein.dev/lichtenstein/framebuffer"
	"go.lichtenstein.dev/lichtenstein/render"
	"go.lichtenstein.dev/lichtenstein/store"
)

type key int

// MappingIDCtxKey is the request context key holding the parsed {mappingid}
const MappingIDCtxKey key = iota

// Pipeline is the part of render.Pipeline the command API drives.
type Pipeline interface {
	Add(renderable render.Renderable, target render.Target) error
	Remove(target render.Target) error
	Renderable(target render.Target) (render.Renderable, bool)
	Dump() string
	Stats() render.Stats
}

// GroupDirectory resolves group ids.
type GroupDirectory interface {
	All() []store.Group
	FindByID(id int) (store.Group, bool)
	FindAll(ids []int) ([]store.Group, error)
}

// FrameReader reads published frames.
type FrameReader interface {
	Size() int
	Snapshot() ([]framebuffer.Pixel, uint64)
}
