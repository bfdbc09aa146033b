package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Layout is a starting arrangement, one string per rank from y=0 down.
// '.' is empty, 'b'/'B' a black man/king, 'w'/'W' a white man/king.
type Layout []string

var layoutPieces = map[rune]Piece{
	'.': Empty,
	'b': BlackMan,
	'B': BlackKing,
	'w': WhiteMan,
	'W': WhiteKing,
}

// DefaultLayout fills the dark squares of the first (n-2)/2 ranks with black
// men and the last (n-2)/2 ranks with white men, leaving two empty ranks in
// the middle.
func DefaultLayout(n int) Layout {
	ranks := (n - 2) / 2
	layout := make(Layout, n)
	for y := 0; y < n; y++ {
		var sb strings.Builder
		for x := 0; x < n; x++ {
			switch {
			case (x+y)%2 == 0:
				sb.WriteByte('.')
			case y < ranks:
				sb.WriteByte('b')
			case y >= n-ranks:
				sb.WriteByte('w')
			default:
				sb.WriteByte('.')
			}
		}
		layout[y] = sb.String()
	}
	return layout
}

func ParseLayout(text string) (Layout, error) {
	var layout Layout
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		layout = append(layout, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(string(data))
}

// Validate requires a fully populated square grid of known cell characters.
func (l Layout) Validate() error {
	n := len(l)
	if n == 0 {
		return fmt.Errorf("empty layout: %w", ErrInvalidLayout)
	}
	for y, row := range l {
		if len([]rune(row)) != n {
			return fmt.Errorf("rank %d has %d cells, want %d: %w", y, len([]rune(row)), n, ErrInvalidLayout)
		}
		for x, c := range row {
			if _, ok := layoutPieces[c]; !ok {
				return fmt.Errorf("unknown cell %q at %v: %w", c, Position{X: x, Y: y}, ErrInvalidLayout)
			}
		}
	}
	return nil
}

func (l Layout) Board() (*Board, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	b := NewBoard(len(l))
	for y, row := range l {
		for x, c := range []rune(row) {
			if err := b.Set(Position{X: x, Y: y}, layoutPieces[c]); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}
