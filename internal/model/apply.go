package model

import "fmt"

// Apply performs move on b. The move is checked in full before the board is
// touched, so on error b is unchanged.
func Apply(b *Board, move Move) error {
	if err := move.Validate(b.Size()); err != nil {
		return err
	}
	piece := b.at(move.From)
	if !piece.Valid() {
		return fmt.Errorf("no piece on %v: %w", move.From, ErrInvalidMove)
	}
	if move.To != move.From && b.at(move.To) != Empty {
		return fmt.Errorf("destination %v is occupied: %w", move.To, ErrInvalidMove)
	}
	for _, c := range move.Captures {
		if victim := b.at(c); !victim.Valid() || victim.Side() == piece.Side() {
			return fmt.Errorf("nothing to capture on %v: %w", c, ErrInvalidMove)
		}
	}

	// Every position was validated above, so Set cannot fail from here on.
	for _, c := range move.Captures {
		_ = b.Set(c, Empty)
	}
	_ = b.Set(move.From, Empty)
	_ = b.Set(move.To, piece)
	return nil
}
