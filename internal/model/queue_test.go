package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueuePairsOldestFirst(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.AddPlayer(Player{ID: "a"}))
	require.ErrorIs(t, q.AddPlayer(Player{ID: "a"}), ErrAlreadyQueued)

	_, _, ok := q.NextPair()
	require.False(t, ok)

	require.NoError(t, q.AddPlayer(Player{ID: "b"}))
	require.NoError(t, q.AddPlayer(Player{ID: "c"}))
	require.Equal(t, 3, q.Size())

	p1, p2, ok := q.NextPair()
	require.True(t, ok)
	require.Equal(t, "a", p1.ID)
	require.Equal(t, "b", p2.ID)
	require.Equal(t, 1, q.Size())

	require.True(t, q.RemovePlayer("c"))
	require.False(t, q.RemovePlayer("c"))
	require.Equal(t, 0, q.Size())
}
