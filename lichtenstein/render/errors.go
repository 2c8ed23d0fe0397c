// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

import "errors"

// ErrInvalidArgument is returned for missing renderables or targets, and for
// targets that are not part of the plan.
var ErrInvalidArgument = errors.New("InvalidArgument")

// ErrUnresolvableConflict is returned when a new mapping partially overlaps
// an immutable container with more than one group.
var ErrUnresolvableConflict = errors.New("UnresolvableConflict")

// ErrAlreadyRunning is returned by Start when the render loop is not stopped.
var ErrAlreadyRunning = errors.New("ErrAlreadyRunning")
