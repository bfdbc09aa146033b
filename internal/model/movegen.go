package model

var (
	blackManDirs = []Position{{X: -1, Y: 1}, {X: 1, Y: 1}}
	whiteManDirs = []Position{{X: -1, Y: -1}, {X: 1, Y: -1}}
	kingDirs     = []Position{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}
)

// directions returns the slide and jump directions for p, or nil for an
// empty or unknown piece.
func directions(p Piece) []Position {
	switch p {
	case BlackMan:
		return blackManDirs
	case WhiteMan:
		return whiteManDirs
	case BlackKing, WhiteKing:
		return kingDirs
	}
	return nil
}

// LegalMoves lists every slide and every capture chain available to piece
// standing on pos. Slides and captures are both offered; choosing between
// them is up to the caller. An empty or unknown piece has no moves.
func LegalMoves(b *Board, piece Piece, pos Position) []Move {
	dirs := directions(piece)
	if dirs == nil || !b.InBounds(pos) {
		return []Move{}
	}

	moves := []Move{}
	for _, dir := range dirs {
		target := pos.Add(dir)
		if b.isEmpty(target) {
			moves = append(moves, NewSlide(pos, target))
		}
	}

	x := jumpExplorer{board: b, piece: piece, origin: pos, dirs: dirs}
	x.explore(pos)
	return append(moves, x.moves...)
}

// LegalMovesAt resolves the piece on pos and returns its legal moves.
func (b *Board) LegalMovesAt(pos Position) []Move {
	piece, err := b.Get(pos)
	if err != nil {
		return []Move{}
	}
	return LegalMoves(b, piece, pos)
}

// HasCapture reports whether any piece of side has at least one jump.
func (b *Board) HasCapture(side Side) bool {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			pos := Position{X: x, Y: y}
			piece := b.at(pos)
			if !piece.Valid() || piece.Side() != side {
				continue
			}
			for _, m := range LegalMoves(b, piece, pos) {
				if m.Type == MoveTypeJump {
					return true
				}
			}
		}
	}
	return false
}

// jumpExplorer walks every capture chain from origin. captures and landings
// form a single stack: each branch pushes before recursing and pops after,
// so siblings never see each other's steps. Emitted moves get their own copies.
type jumpExplorer struct {
	board    *Board
	piece    Piece
	origin   Position
	dirs     []Position
	captures []Position
	landings []Position
	moves    []Move
}

func (x *jumpExplorer) explore(pos Position) {
	for _, dir := range x.dirs {
		mid := pos.Add(dir)
		land := mid.Add(dir)
		if !x.canJump(mid, land) {
			continue
		}

		x.captures = append(x.captures, mid)
		x.landings = append(x.landings, land)

		// Any prefix of a chain is a legal move in its own right.
		x.moves = append(x.moves, NewJump(x.origin, x.captures, x.landings))
		x.explore(land)

		x.captures = x.captures[:len(x.captures)-1]
		x.landings = x.landings[:len(x.landings)-1]
	}
}

func (x *jumpExplorer) canJump(mid, land Position) bool {
	if !x.board.isEmpty(land) || !x.board.InBounds(mid) {
		return false
	}
	victim := x.board.at(mid)
	if !victim.Valid() || victim.Side() != x.piece.Side().Opponent() {
		return false
	}
	// Captured pieces stay on the board until the chain is applied, so a
	// square may only be jumped once per chain or kings could loop forever.
	for _, c := range x.captures {
		if c == mid {
			return false
		}
	}
	return true
}
