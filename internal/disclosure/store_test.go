// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package disclosure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FirstIDExpanded(t *testing.T) {
	s := New([]string{"a", "b", "c"})

	assert.Equal(t, []string{"a"}, s.Expanded())
	assert.True(t, s.IsExpanded("a"))
	assert.False(t, s.IsExpanded("b"))
	assert.False(t, s.IsExpanded("c"))
	assert.Equal(t, 1, s.Len())
}

func TestNew_EmptyList(t *testing.T) {
	s := New(nil)

	assert.Empty(t, s.Expanded())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsExpanded(""))
}

func TestToggle_TwiceRestoresMembership(t *testing.T) {
	for _, id := range []string{"a", "b"} {
		s := New([]string{"a", "b", "c"})
		before := s.IsExpanded(id)

		s.Toggle(id)
		assert.NotEqual(t, before, s.IsExpanded(id), "first toggle of %s", id)
		s.Toggle(id)
		assert.Equal(t, before, s.IsExpanded(id), "second toggle of %s", id)
	}
}

func TestToggle_IndependentPerID(t *testing.T) {
	ids := []string{"a", "b", "c"}
	s := New(ids)

	for _, x := range ids {
		others := map[string]bool{}
		for _, y := range ids {
			if y != x {
				others[y] = s.IsExpanded(y)
			}
		}
		s.Toggle(x)
		for y, was := range others {
			assert.Equal(t, was, s.IsExpanded(y), "toggling %s changed %s", x, y)
		}
	}
}

func TestToggle_NotMutuallyExclusive(t *testing.T) {
	s := New([]string{"s1", "s2", "s3"})

	assert.True(t, s.Toggle("s2"))
	assert.Equal(t, []string{"s1", "s2"}, s.Expanded())
	assert.False(t, s.IsExpanded("s3"))

	assert.False(t, s.Toggle("s1"))
	assert.Equal(t, []string{"s2"}, s.Expanded())
}

func TestToggle_UnknownIDIgnored(t *testing.T) {
	s := New([]string{"a"})

	assert.False(t, s.Toggle("zzz"))
	assert.False(t, s.IsExpanded("zzz"))
	assert.Equal(t, []string{"a"}, s.Expanded())
}

func TestReconcile_DropsMissingIDs(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	s.Toggle("c")

	s.Reconcile([]string{"c", "d"})

	assert.Equal(t, []string{"c"}, s.Expanded())
	assert.False(t, s.IsExpanded("a"))
	assert.False(t, s.IsExpanded("d"), "default-open rule applies only once")
}

func TestReconcile_ReorderKeepsStateByID(t *testing.T) {
	s := New([]string{"a", "b"})
	s.Reconcile([]string{"b", "a"})

	assert.True(t, s.IsExpanded("a"))
	assert.False(t, s.IsExpanded("b"))
	assert.Equal(t, []string{"a"}, s.Expanded())
}

func TestReconcile_SeedsFirstNonEmptyList(t *testing.T) {
	s := New(nil)
	s.Reconcile([]string{"x", "y"})

	assert.Equal(t, []string{"x"}, s.Expanded())
}
