// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

// State of the render loop.
type State string

const (
	StateStopped     State = "Stopped"
	StateRunning     State = "Running"
	StateTerminating State = "Terminating"
)

// Stats is a point in time view of the render loop.
type Stats struct {
	State       State   `json:"state"`
	TargetFPS   float64 `json:"targetFps"`
	ActualFPS   float64 `json:"actualFps"`
	TotalFrames uint64  `json:"totalFrames"`
	FailedJobs  uint64  `json:"failedJobs"`
	Mappings    int     `json:"mappings"`
	Threads     int     `json:"threads"`
}
