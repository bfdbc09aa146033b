package model

import (
	"fmt"
	"strings"
)

type MoveType string

const (
	MoveTypeSlide MoveType = "slide"
	MoveTypeJump  MoveType = "jump"
)

// Move is either a one-step slide or a chain of one or more captures.
// For a jump, To always equals the last landing.
type Move struct {
	Type     MoveType   `json:"type"`
	From     Position   `json:"from"`
	To       Position   `json:"to"`
	Captures []Position `json:"captures,omitempty"`
	Landings []Position `json:"landings,omitempty"`
}

func NewSlide(from, to Position) Move {
	return Move{Type: MoveTypeSlide, From: from, To: to}
}

// NewJump copies captures and landings so the move never shares backing
// arrays with the caller.
func NewJump(from Position, captures, landings []Position) Move {
	m := Move{
		Type:     MoveTypeJump,
		From:     from,
		Captures: append([]Position(nil), captures...),
		Landings: append([]Position(nil), landings...),
	}
	if len(landings) > 0 {
		m.To = landings[len(landings)-1]
	}
	return m
}

func isDiagonalStep(from, to Position) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	return abs(dx) == 1 && abs(dy) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Validate checks the structural invariants of m on a board of the given
// size. It does not look at board contents.
func (m Move) Validate(size int) error {
	inBounds := func(p Position) bool {
		return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
	}
	if !inBounds(m.From) {
		return fmt.Errorf("origin %v off board: %w", m.From, ErrInvalidMove)
	}

	switch m.Type {
	case MoveTypeSlide:
		if len(m.Captures) != 0 || len(m.Landings) != 0 {
			return fmt.Errorf("slide carries captures: %w", ErrInvalidMove)
		}
		if !inBounds(m.To) {
			return fmt.Errorf("destination %v off board: %w", m.To, ErrInvalidMove)
		}
		if !isDiagonalStep(m.From, m.To) {
			return fmt.Errorf("slide %v-%v is not a diagonal step: %w", m.From, m.To, ErrInvalidMove)
		}
	case MoveTypeJump:
		if len(m.Landings) == 0 {
			return fmt.Errorf("jump without landings: %w", ErrInvalidMove)
		}
		if len(m.Captures) != len(m.Landings) {
			return fmt.Errorf("jump has %d captures and %d landings: %w", len(m.Captures), len(m.Landings), ErrInvalidMove)
		}
		seen := make(map[Position]bool, len(m.Captures))
		prev := m.From
		for i, capture := range m.Captures {
			landing := m.Landings[i]
			if !inBounds(capture) || !inBounds(landing) {
				return fmt.Errorf("jump step %d off board: %w", i, ErrInvalidMove)
			}
			if !isDiagonalStep(prev, capture) || landing != capture.Add(Position{X: capture.X - prev.X, Y: capture.Y - prev.Y}) {
				return fmt.Errorf("jump step %d %v over %v to %v is not a straight diagonal jump: %w", i, prev, capture, landing, ErrInvalidMove)
			}
			if seen[capture] {
				return fmt.Errorf("square %v captured twice: %w", capture, ErrInvalidMove)
			}
			seen[capture] = true
			prev = landing
		}
		if m.To != prev {
			return fmt.Errorf("destination %v is not the last landing %v: %w", m.To, prev, ErrInvalidMove)
		}
	default:
		return fmt.Errorf("unknown move type %q: %w", m.Type, ErrInvalidMove)
	}
	return nil
}

func (m Move) Equal(o Move) bool {
	if m.Type != o.Type || m.From != o.From || m.To != o.To {
		return false
	}
	if len(m.Captures) != len(o.Captures) || len(m.Landings) != len(o.Landings) {
		return false
	}
	for i := range m.Captures {
		if m.Captures[i] != o.Captures[i] {
			return false
		}
	}
	for i := range m.Landings {
		if m.Landings[i] != o.Landings[i] {
			return false
		}
	}
	return true
}

func (m Move) getNotation() string {
	if m.Type == MoveTypeSlide {
		return m.From.getSquareNotation() + "-" + m.To.getSquareNotation()
	}
	parts := []string{m.From.getSquareNotation()}
	for _, l := range m.Landings {
		parts = append(parts, l.getSquareNotation())
	}
	return strings.Join(parts, "x")
}

func (m Move) String() string {
	return m.getNotation()
}

// Ply is one applied move in the game history.
type Ply struct {
	Side     Side   `json:"side"`
	Piece    Piece  `json:"piece"`
	Move     Move   `json:"move"`
	Captured int    `json:"captured"`
	Notation string `json:"notation"`
}

type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Side   `json:"color"`
}
