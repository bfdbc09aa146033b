package model

import (
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(x, y int) Position {
	return Position{X: x, Y: y}
}

func boardWith(t *testing.T, size int, pieces map[Position]Piece) *Board {
	t.Helper()
	b := NewBoard(size)
	for p, piece := range pieces {
		require.NoError(t, b.Set(p, piece))
	}
	return b
}

func TestLegalMovesSimpleCapture(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{
		pos(3, 3): BlackMan,
		pos(4, 4): WhiteMan,
	})

	moves := LegalMoves(b, BlackMan, pos(3, 3))

	require.Equal(t, []Move{
		NewSlide(pos(3, 3), pos(2, 4)),
		NewJump(pos(3, 3), []Position{pos(4, 4)}, []Position{pos(5, 5)}),
	}, moves, spew.Sdump(moves))
}

func TestLegalMovesChainedCapture(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{
		pos(2, 2): BlackMan,
		pos(3, 3): WhiteMan,
		pos(5, 5): WhiteMan,
	})

	moves := LegalMoves(b, BlackMan, pos(2, 2))

	require.Equal(t, []Move{
		NewSlide(pos(2, 2), pos(1, 3)),
		NewJump(pos(2, 2), []Position{pos(3, 3)}, []Position{pos(4, 4)}),
		NewJump(pos(2, 2), []Position{pos(3, 3), pos(5, 5)}, []Position{pos(4, 4), pos(6, 6)}),
	}, moves, spew.Sdump(moves))
}

func TestLegalMovesCorner(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{pos(0, 0): BlackMan})

	moves := LegalMoves(b, BlackMan, pos(0, 0))

	require.Equal(t, []Move{NewSlide(pos(0, 0), pos(1, 1))}, moves)
}

func TestLegalMovesDirections(t *testing.T) {
	tests := []struct {
		name  string
		piece Piece
		want  []Position
	}{
		{name: "black man moves down", piece: BlackMan, want: []Position{pos(2, 4), pos(4, 4)}},
		{name: "white man moves up", piece: WhiteMan, want: []Position{pos(2, 2), pos(4, 2)}},
		{name: "black king", piece: BlackKing, want: []Position{pos(2, 4), pos(4, 4), pos(2, 2), pos(4, 2)}},
		{name: "white king", piece: WhiteKing, want: []Position{pos(2, 4), pos(4, 4), pos(2, 2), pos(4, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(t, 10, map[Position]Piece{pos(3, 3): tt.piece})

			var got []Position
			for _, m := range LegalMoves(b, tt.piece, pos(3, 3)) {
				require.Equal(t, MoveTypeSlide, m.Type)
				got = append(got, m.To)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLegalMovesNoPiece(t *testing.T) {
	b := NewBoard(10)

	moves := LegalMoves(b, Empty, pos(3, 3))
	require.NotNil(t, moves)
	require.Empty(t, moves)

	require.Empty(t, LegalMoves(b, Piece(42), pos(3, 3)))
	require.Empty(t, LegalMoves(b, BlackMan, pos(-1, 3)))
	require.Empty(t, b.LegalMovesAt(pos(3, 3)))
	require.Empty(t, b.LegalMovesAt(pos(10, 10)))
}

func TestLegalMovesDoesNotCaptureOwnSide(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{
		pos(3, 3): BlackMan,
		pos(4, 4): BlackKing,
	})

	for _, m := range LegalMoves(b, BlackMan, pos(3, 3)) {
		require.Equal(t, MoveTypeSlide, m.Type)
	}
}

func TestLegalMovesCapturesKingsAndMenAlike(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{
		pos(5, 5): WhiteKing,
		pos(4, 4): BlackKing,
		pos(6, 4): BlackMan,
	})

	var jumps []Move
	for _, m := range LegalMoves(b, WhiteKing, pos(5, 5)) {
		if m.Type == MoveTypeJump {
			jumps = append(jumps, m)
		}
	}
	require.ElementsMatch(t, []Move{
		NewJump(pos(5, 5), []Position{pos(4, 4)}, []Position{pos(3, 3)}),
		NewJump(pos(5, 5), []Position{pos(6, 4)}, []Position{pos(7, 3)}),
	}, jumps)
}

func TestLegalMovesForkKeepsBranchesApart(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{
		pos(4, 0): BlackMan,
		pos(3, 1): WhiteMan,
		pos(5, 1): WhiteMan,
		pos(3, 3): WhiteMan,
		pos(5, 3): WhiteMan,
	})

	moves := LegalMoves(b, BlackMan, pos(4, 0))

	require.Equal(t, []Move{
		NewJump(pos(4, 0), []Position{pos(3, 1)}, []Position{pos(2, 2)}),
		NewJump(pos(4, 0), []Position{pos(3, 1), pos(3, 3)}, []Position{pos(2, 2), pos(4, 4)}),
		NewJump(pos(4, 0), []Position{pos(5, 1)}, []Position{pos(6, 2)}),
		NewJump(pos(4, 0), []Position{pos(5, 1), pos(5, 3)}, []Position{pos(6, 2), pos(4, 4)}),
	}, moves, spew.Sdump(moves))
}

func TestLegalMovesKingLoopTerminates(t *testing.T) {
	// Four white men around (2,2). Without the revisit guard the king could
	// bounce between (4,2) and (2,4) over (3,3) forever.
	b := boardWith(t, 10, map[Position]Piece{
		pos(2, 0): BlackKing,
		pos(1, 1): WhiteMan,
		pos(3, 1): WhiteMan,
		pos(1, 3): WhiteMan,
		pos(3, 3): WhiteMan,
	})

	moves := LegalMoves(b, BlackKing, pos(2, 0))

	require.Len(t, moves, 6, spew.Sdump(moves))
	for _, m := range moves {
		require.Equal(t, MoveTypeJump, m.Type)
		assertNoRepeatedCaptures(t, m)
	}
	assert.Contains(t, moves, NewJump(pos(2, 0),
		[]Position{pos(1, 1), pos(1, 3), pos(3, 3)},
		[]Position{pos(0, 2), pos(2, 4), pos(4, 2)}))
	assert.Contains(t, moves, NewJump(pos(2, 0),
		[]Position{pos(3, 1), pos(3, 3), pos(1, 3)},
		[]Position{pos(4, 2), pos(2, 4), pos(0, 2)}))
}

func assertNoRepeatedCaptures(t *testing.T, m Move) {
	t.Helper()
	seen := map[Position]bool{}
	for _, c := range m.Captures {
		assert.False(t, seen[c], "capture %v repeated in %v", c, m)
		seen[c] = true
	}
}

func randomBoard(rng *rand.Rand, size int) *Board {
	b := NewBoard(size)
	pieces := []Piece{Empty, Empty, Empty, BlackMan, BlackKing, WhiteMan, WhiteKing}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			_ = b.Set(pos(x, y), pieces[rng.Intn(len(pieces))])
		}
	}
	return b
}

func TestLegalMovesInvariantsOnRandomBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		b := randomBoard(rng, 8)
		for y := 0; y < b.Size(); y++ {
			for x := 0; x < b.Size(); x++ {
				from := pos(x, y)
				piece, err := b.Get(from)
				require.NoError(t, err)

				for _, m := range LegalMoves(b, piece, from) {
					require.NoError(t, m.Validate(b.Size()), spew.Sdump(m))
					require.Equal(t, from, m.From)

					switch m.Type {
					case MoveTypeSlide:
						require.Equal(t, Empty, b.at(m.To))
					case MoveTypeJump:
						require.Equal(t, len(m.Captures), len(m.Landings))
						require.NotEmpty(t, m.Captures)
						for j, c := range m.Captures {
							require.Equal(t, piece.Side().Opponent(), b.at(c).Side())
							require.Equal(t, Empty, b.at(m.Landings[j]))
						}
						assertNoRepeatedCaptures(t, m)
					}

					after := b.Clone()
					require.NoError(t, Apply(after, m))
					for _, c := range m.Captures {
						require.Equal(t, Empty, after.at(c))
					}
					for _, next := range after.LegalMovesAt(m.To) {
						for _, c := range next.Captures {
							require.NotContains(t, m.Captures, c)
						}
					}
				}
			}
		}
	}
}

func TestHasCapture(t *testing.T) {
	b := boardWith(t, 10, map[Position]Piece{
		pos(3, 3): BlackMan,
		pos(4, 4): WhiteMan,
	})
	require.True(t, b.HasCapture(SideBlack))
	require.True(t, b.HasCapture(SideWhite))

	require.NoError(t, b.Set(pos(2, 2), WhiteMan))
	require.False(t, b.HasCapture(SideWhite))
}
