// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testdata

import (
	"fmt"

	"go.lichtenstein.dev/lichtenstein/store"
)

// PixelsPerGroup is the size of every group returned by Groups.
const PixelsPerGroup = 4

// Groups returns n adjacent groups with ids 1..n, each PixelsPerGroup pixels long.
func Groups(n int) []store.Group {
	groups := make([]store.Group, n)
	for i := range groups {
		start := i * PixelsPerGroup
		groups[i] = store.Group{
			ID:      i + 1,
			Name:    fmt.Sprintf("group-%d", i+1),
			Enabled: true,
			Start:   start,
			End:     start + PixelsPerGroup - 1,
		}
	}
	return groups
}

// Pick returns the groups with the given ids out of groups, in argument order.
func Pick(groups []store.Group, ids ...int) []store.Group {
	picked := make([]store.Group, 0, len(ids))
	for _, id := range ids {
		for _, g := range groups {
			if g.ID == id {
				picked = append(picked, g)
			}
		}
	}
	return picked
}
