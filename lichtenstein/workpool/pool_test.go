// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package workpool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAndWaitAll(t *testing.T) {
	p := New(3)
	defer p.Stop(true)

	var count atomic.Int32
	futures := make([]*Future, 0, 50)
	for i := 0; i < 50; i++ {
		futures = append(futures, p.Submit(func() { count.Add(1) }))
	}

	for _, f := range futures {
		require.NoError(t, f.Wait())
	}
	assert.Equal(t, int32(50), count.Load())
}

func TestDefaultWorkerCount(t *testing.T) {
	p := New(0)
	defer p.Stop(false)

	assert.Greater(t, p.Workers(), 0)
	assert.True(t, p.IsRunning())
}

func TestPanickingJobCompletesWithError(t *testing.T) {
	p := New(1)
	defer p.Stop(true)

	f := p.Submit(func() { panic("renderable exploded") })
	err := f.Wait()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJobPanicked))
	assert.Contains(t, err.Error(), "renderable exploded")

	// the worker survives the panic
	assert.NoError(t, p.Submit(func() {}).Wait())
}

func TestSubmitAfterStop(t *testing.T) {
	p := New(2)
	p.Stop(true)
	p.Stop(true)

	ran := false
	f := p.Submit(func() { ran = true })
	assert.Equal(t, ErrPoolStopped, f.Wait())
	assert.False(t, ran)
	assert.False(t, p.IsRunning())
}

func TestStopWithoutDrainDropsQueuedJobs(t *testing.T) {
	p := New(1)

	release := make(chan struct{})
	started := make(chan struct{})
	blocker := p.Submit(func() {
		close(started)
		<-release
	})
	<-started

	var ran atomic.Int32
	queued := make([]*Future, 0, 4)
	for i := 0; i < 4; i++ {
		queued = append(queued, p.Submit(func() { ran.Add(1) }))
	}

	stopped := make(chan struct{})
	go func() {
		p.Stop(false)
		close(stopped)
	}()

	// give Stop a chance to close the pool before the running job returns
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-stopped

	assert.NoError(t, blocker.Wait())
	for _, f := range queued {
		assert.Equal(t, ErrPoolStopped, f.Wait())
	}
	assert.Equal(t, int32(0), ran.Load())
}

func TestStopWithDrainRunsQueuedJobs(t *testing.T) {
	p := New(1)

	release := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() {
		close(started)
		<-release
	})
	<-started

	var ran atomic.Int32
	queued := make([]*Future, 0, 4)
	for i := 0; i < 4; i++ {
		queued = append(queued, p.Submit(func() { ran.Add(1) }))
	}
	assert.Equal(t, 4, p.QueuedWork())

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	p.Stop(true)

	for _, f := range queued {
		assert.NoError(t, f.Wait())
	}
	assert.Equal(t, int32(4), ran.Load())
}
