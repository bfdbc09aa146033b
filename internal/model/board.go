package model

import (
	"encoding/json"
	"fmt"
)

// Side is one of the two players. Black men move toward increasing y,
// white men toward decreasing y.
type Side string

const (
	SideBlack Side = "black"
	SideWhite Side = "white"
)

func (s Side) Opponent() Side {
	if s == SideBlack {
		return SideWhite
	}
	return SideBlack
}

func (s Side) Valid() bool {
	return s == SideBlack || s == SideWhite
}

// Piece is the occupant of a single cell. The zero value is an empty cell.
type Piece uint8

const (
	Empty Piece = iota
	BlackMan
	BlackKing
	WhiteMan
	WhiteKing
)

func (p Piece) Valid() bool {
	return p >= BlackMan && p <= WhiteKing
}

func (p Piece) Side() Side {
	switch p {
	case BlackMan, BlackKing:
		return SideBlack
	case WhiteMan, WhiteKing:
		return SideWhite
	}
	return ""
}

func (p Piece) IsKing() bool {
	return p == BlackKing || p == WhiteKing
}

func (p Piece) getPieceNotation() string {
	switch p {
	case BlackMan:
		return "b"
	case BlackKing:
		return "bk"
	case WhiteMan:
		return "w"
	case WhiteKing:
		return "wk"
	}
	return ""
}

func (p Piece) String() string {
	if n := p.getPieceNotation(); n != "" {
		return n
	}
	return "_"
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.getPieceNotation()), nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*p = Empty
	case "b":
		*p = BlackMan
	case "bk":
		*p = BlackKing
	case "w":
		*p = WhiteMan
	case "wk":
		*p = WhiteKing
	default:
		return fmt.Errorf("unknown piece %q", text)
	}
	return nil
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+'a', p.Y)
}

func (p Position) String() string {
	return p.getSquareNotation()
}

// Board is a square grid of cells indexed [y][x]. All reads and writes go
// through Get and Set, which validate coordinates.
type Board struct {
	size  int
	cells [][]Piece
}

func NewBoard(size int) *Board {
	b := &Board{size: size}
	for i := 0; i < size; i++ {
		b.cells = append(b.cells, make([]Piece, size))
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < b.size && pos.Y >= 0 && pos.Y < b.size
}

func (b *Board) Get(pos Position) (Piece, error) {
	if !b.InBounds(pos) {
		return Empty, fmt.Errorf("get %v: %w", pos, ErrOutOfRange)
	}
	return b.cells[pos.Y][pos.X], nil
}

func (b *Board) Set(pos Position, p Piece) error {
	if !b.InBounds(pos) {
		return fmt.Errorf("set %v: %w", pos, ErrOutOfRange)
	}
	b.cells[pos.Y][pos.X] = p
	return nil
}

// at is Get for positions the caller already bounds-checked.
func (b *Board) at(pos Position) Piece {
	p, _ := b.Get(pos)
	return p
}

func (b *Board) isEmpty(pos Position) bool {
	return b.InBounds(pos) && b.cells[pos.Y][pos.X] == Empty
}

func (b *Board) Count(side Side) int {
	n := 0
	for _, row := range b.cells {
		for _, p := range row {
			if p.Valid() && p.Side() == side {
				n++
			}
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	c := NewBoard(b.size)
	for y, row := range b.cells {
		copy(c.cells[y], row)
	}
	return c
}

type boardJSON struct {
	Size  int       `json:"size"`
	Cells [][]Piece `json:"cells"`
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Size: b.size, Cells: b.cells})
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cells) != raw.Size {
		return fmt.Errorf("board has %d rows, want %d: %w", len(raw.Cells), raw.Size, ErrInvalidLayout)
	}
	for y, row := range raw.Cells {
		if len(row) != raw.Size {
			return fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), raw.Size, ErrInvalidLayout)
		}
	}
	b.size = raw.Size
	b.cells = raw.Cells
	return nil
}
