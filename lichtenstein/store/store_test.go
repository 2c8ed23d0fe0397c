// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupNumPixels(t *testing.T) {
	assert.Equal(t, 1, Group{Start: 4, End: 4}.NumPixels())
	assert.Equal(t, 30, Group{Start: 0, End: 29}.NumPixels())
}

func TestStoreLookupByID(t *testing.T) {
	s, err := NewStore([]Group{
		{ID: 1, Name: "porch", Start: 0, End: 9},
		{ID: 2, Name: "eaves", Start: 10, End: 59},
	})
	require.NoError(t, err)

	g, found := s.FindByID(2)
	require.True(t, found)
	assert.Equal(t, "eaves", g.Name)
	assert.Equal(t, 50, g.NumPixels())

	_, found = s.FindByID(3)
	assert.False(t, found)
}

func TestStoreInsertIDCollision(t *testing.T) {
	s, err := NewStore(nil)
	require.NoError(t, err)

	require.NoError(t, s.Insert(Group{ID: 1, Start: 0, End: 0}))
	assert.Equal(t, ErrGroupIDCollision, s.Insert(Group{ID: 1, Start: 5, End: 6}))
	assert.Equal(t, 1, s.Size())
}

func TestStoreRejectsMalformedRange(t *testing.T) {
	_, err := NewStore([]Group{{ID: 1, Start: 10, End: 2}})
	assert.True(t, errors.Is(err, ErrInvalidGroup))
}

func TestStoreFindAll(t *testing.T) {
	s, err := NewStore([]Group{
		{ID: 1, Start: 0, End: 9},
		{ID: 2, Start: 10, End: 19},
	})
	require.NoError(t, err)

	groups, err := s.FindAll([]int{2, 1})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[0].ID)
	assert.Equal(t, 1, groups[1].ID)

	_, err = s.FindAll([]int{1, 7})
	assert.True(t, errors.Is(err, ErrGroupNotFound))
}

func TestStoreUpdateAndAll(t *testing.T) {
	s, err := NewStore([]Group{
		{ID: 3, Start: 20, End: 29},
		{ID: 1, Start: 0, End: 9},
	})
	require.NoError(t, err)

	assert.Equal(t, ErrGroupNotFound, s.Update(Group{ID: 9, Start: 0, End: 0}))
	require.NoError(t, s.Update(Group{ID: 3, Name: "renamed", Start: 20, End: 39}))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, "renamed", all[1].Name)
	assert.Equal(t, 40, s.PixelExtent())
}
