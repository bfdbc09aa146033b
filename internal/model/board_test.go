package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardAccessorsCheckBounds(t *testing.T) {
	b := NewBoard(10)

	for _, p := range []Position{pos(-1, 0), pos(0, -1), pos(10, 0), pos(0, 10)} {
		require.False(t, b.InBounds(p), p)

		_, err := b.Get(p)
		require.ErrorIs(t, err, ErrOutOfRange)
		require.ErrorIs(t, b.Set(p, BlackMan), ErrOutOfRange)
	}

	require.True(t, b.InBounds(pos(9, 9)))
	require.NoError(t, b.Set(pos(9, 9), WhiteKing))
	got, err := b.Get(pos(9, 9))
	require.NoError(t, err)
	require.Equal(t, WhiteKing, got)
}

func TestPieceSides(t *testing.T) {
	require.Equal(t, SideBlack, BlackMan.Side())
	require.Equal(t, SideBlack, BlackKing.Side())
	require.Equal(t, SideWhite, WhiteMan.Side())
	require.Equal(t, SideWhite, WhiteKing.Side())
	require.Equal(t, Side(""), Empty.Side())

	require.True(t, BlackKing.IsKing())
	require.False(t, WhiteMan.IsKing())
	require.False(t, Empty.Valid())
	require.Equal(t, SideWhite, SideBlack.Opponent())
	require.Equal(t, SideBlack, SideWhite.Opponent())
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := boardWith(t, 8, map[Position]Piece{pos(1, 0): BlackMan})
	c := b.Clone()

	require.NoError(t, c.Set(pos(1, 0), Empty))

	require.Equal(t, BlackMan, b.at(pos(1, 0)))
	require.Equal(t, 1, b.Count(SideBlack))
	require.Equal(t, 0, c.Count(SideBlack))
}

func TestBoardJSON(t *testing.T) {
	b := boardWith(t, 4, map[Position]Piece{
		pos(1, 0): BlackMan,
		pos(2, 3): WhiteKing,
	})

	data, err := json.Marshal(b)
	require.NoError(t, err)
	require.JSONEq(t, `{"size":4,"cells":[
		["","b","",""],
		["","","",""],
		["","","",""],
		["","","wk",""]
	]}`, string(data))

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, b, &decoded)

	require.ErrorIs(t, json.Unmarshal([]byte(`{"size":2,"cells":[["",""]]}`), &decoded), ErrInvalidLayout)
}
