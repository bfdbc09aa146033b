package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJumpCopiesHistory(t *testing.T) {
	captures := []Position{pos(3, 3)}
	landings := []Position{pos(4, 4)}

	m := NewJump(pos(2, 2), captures, landings)
	captures[0] = pos(0, 0)
	landings[0] = pos(0, 0)

	require.Equal(t, []Position{pos(3, 3)}, m.Captures)
	require.Equal(t, []Position{pos(4, 4)}, m.Landings)
	require.Equal(t, pos(4, 4), m.To)
}

func TestMoveValidate(t *testing.T) {
	require.NoError(t, NewSlide(pos(0, 0), pos(1, 1)).Validate(10))
	require.NoError(t, NewJump(pos(2, 2),
		[]Position{pos(3, 3), pos(5, 5), pos(5, 7)},
		[]Position{pos(4, 4), pos(6, 6), pos(4, 8)}).Validate(10))

	tests := map[string]Move{
		"slide with captures":    {Type: MoveTypeSlide, From: pos(0, 0), To: pos(1, 1), Captures: []Position{pos(1, 1)}},
		"repeated capture":       NewJump(pos(2, 2), []Position{pos(3, 3), pos(3, 3)}, []Position{pos(4, 4), pos(2, 2)}),
		"to is not last landing": {Type: MoveTypeJump, From: pos(2, 2), To: pos(9, 9), Captures: []Position{pos(3, 3)}, Landings: []Position{pos(4, 4)}},
		"landing off board":      NewJump(pos(8, 8), []Position{pos(9, 9)}, []Position{pos(10, 10)}),
		"broken chain":           NewJump(pos(2, 2), []Position{pos(3, 3), pos(6, 6)}, []Position{pos(4, 4), pos(7, 7)}),
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, m.Validate(10), ErrInvalidMove)
		})
	}
}

func TestMoveEqual(t *testing.T) {
	a := NewJump(pos(2, 2), []Position{pos(3, 3)}, []Position{pos(4, 4)})
	require.True(t, a.Equal(NewJump(pos(2, 2), []Position{pos(3, 3)}, []Position{pos(4, 4)})))
	require.False(t, a.Equal(NewSlide(pos(2, 2), pos(4, 4))))
	require.False(t, a.Equal(NewJump(pos(2, 2), []Position{pos(1, 3)}, []Position{pos(4, 4)})))
}

func TestMoveNotation(t *testing.T) {
	require.Equal(t, "c2-d3", NewSlide(pos(2, 2), pos(3, 3)).String())
	require.Equal(t, "c2xe4xg6", NewJump(pos(2, 2),
		[]Position{pos(3, 3), pos(5, 5)},
		[]Position{pos(4, 4), pos(6, 6)}).String())
}

func TestMoveDecodesFromClientJSON(t *testing.T) {
	var m Move
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "jump",
		"from": {"x": 2, "y": 2},
		"to": {"x": 4, "y": 4},
		"captures": [{"x": 3, "y": 3}],
		"landings": [{"x": 4, "y": 4}]
	}`), &m))

	require.True(t, m.Equal(NewJump(pos(2, 2), []Position{pos(3, 3)}, []Position{pos(4, 4)})))
}
