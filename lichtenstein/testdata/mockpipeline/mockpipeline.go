// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockpipeline

import (
	"github.com/stretchr/testify/mock"
	"go.lichtenstein.dev/lichtenstein/render"
)

// MockPipeline is a testify mock of the pipeline operations the command API
// uses.
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Add(renderable render.Renderable, target render.Target) error {
	args := m.Called(renderable, target)
	return args.Error(0)
}

func (m *MockPipeline) Remove(target render.Target) error {
	args := m.Called(target)
	return args.Error(0)
}

func (m *MockPipeline) Renderable(target render.Target) (render.Renderable, bool) {
	args := m.Called(target)
	r, _ := args.Get(0).(render.Renderable)
	return r, args.Bool(1)
}

func (m *MockPipeline) Dump() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPipeline) Stats() render.Stats {
	args := m.Called()
	return args.Get(0).(render.Stats)
}
