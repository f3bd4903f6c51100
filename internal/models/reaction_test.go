package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMemberships(entries []ReactionEntry, userID uint) int {
	n := 0
	for _, e := range entries {
		for _, u := range e.Users {
			if u == userID {
				n++
			}
		}
	}
	return n
}

func TestApplyReaction_FirstReaction(t *testing.T) {
	entries, previous, changed := ApplyReaction(nil, 7, "Clever")

	require.Len(t, entries, 1)
	assert.Equal(t, "Clever", entries[0].Type)
	assert.Equal(t, []uint{7}, entries[0].Users)
	assert.Empty(t, previous)
	assert.True(t, changed)
}

func TestApplyReaction_ToggleOff(t *testing.T) {
	entries, _, _ := ApplyReaction(nil, 7, "Clever")

	entries, previous, changed := ApplyReaction(entries, 7, "Clever")

	assert.Empty(t, entries, "toggling off the only reaction leaves no entries")
	assert.Equal(t, "Clever", previous)
	assert.False(t, changed)
}

func TestApplyReaction_TypeTransition(t *testing.T) {
	entries, _, _ := ApplyReaction(nil, 7, "Amused")

	entries, previous, changed := ApplyReaction(entries, 7, "...Wow")

	require.Len(t, entries, 1)
	assert.Equal(t, "...Wow", entries[0].Type)
	assert.Equal(t, "Amused", previous)
	assert.True(t, changed)
	assert.Equal(t, 1, countMemberships(entries, 7))
}

func TestApplyReaction_AtMostOneEntryPerUser(t *testing.T) {
	var entries []ReactionEntry
	sequence := []string{"Amused", "Clever", "Clever", "...Wow", "Amused", "Amused", "Clever"}

	for _, rtype := range sequence {
		entries, _, _ = ApplyReaction(entries, 42, rtype)
		assert.LessOrEqual(t, countMemberships(entries, 42), 1, "after reacting %q", rtype)
		for _, e := range entries {
			assert.NotEmpty(t, e.Users, "empty entries must be garbage-collected")
		}
	}
}

func TestApplyReaction_DoubleToggleNetsToNoReaction(t *testing.T) {
	var entries []ReactionEntry
	entries, _, _ = ApplyReaction(entries, 1, "Amused")
	entries, _, _ = ApplyReaction(entries, 2, "Clever")

	entries, _, _ = ApplyReaction(entries, 2, "...Wow")
	entries, _, _ = ApplyReaction(entries, 2, "...Wow")

	assert.Empty(t, ReactionTypeOf(entries, 2), "same-type re-application clears the reaction")
	assert.Equal(t, "Amused", ReactionTypeOf(entries, 1), "other users' reactions are untouched")
}

func TestApplyReaction_ConcurrentUsersAdditive(t *testing.T) {
	var entries []ReactionEntry
	entries, _, _ = ApplyReaction(entries, 1, "Amused")
	entries, _, _ = ApplyReaction(entries, 2, "Amused")
	entries, _, _ = ApplyReaction(entries, 3, "Clever")

	require.Len(t, entries, 2)
	assert.Equal(t, []uint{1, 2}, entries[0].Users)
	assert.Equal(t, "Amused", ReactionTypeOf(entries, 2))
	assert.Equal(t, "Clever", ReactionTypeOf(entries, 3))
	assert.Empty(t, ReactionTypeOf(entries, 4))
}

func TestIsValidReactionType(t *testing.T) {
	for _, rt := range ReactionTypes {
		assert.True(t, IsValidReactionType(rt))
	}
	assert.False(t, IsValidReactionType("Angry"))
	assert.False(t, IsValidReactionType(""))
	assert.False(t, IsValidReactionType("amused"))
}
