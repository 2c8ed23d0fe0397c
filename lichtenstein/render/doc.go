// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package render maps render targets onto renderables and drives the fixed rate
render loop that fills the framebuffer.

The Pipeline owns the plan: an ordered mapping from target to the renderable
computing its pixels. Targets made of groups (GroupContainer) never overlap in
the plan; when a new mapping claims groups that an existing one already holds,
the existing mapping is replaced, shrunk or rejected at insertion time.

Each frame the pipeline copies the plan, prepares every renderable serially,
renders them concurrently on a worker pool, waits for all of them, finishes
them serially and publishes the framebuffer. It then sleeps for the rest of
the frame period.

Lock order: plan lock, then renderable lock or target lock. Render jobs take a
renderable lock and then the lock of its target; nothing holds a target lock
while acquiring a renderable lock.
*/
package render
