package model

// CheckVictory reports the winner once a side has no pieces left. White is
// checked first, so a board with no pieces at all goes to black.
func CheckVictory(b *Board) (Side, bool) {
	var black, white int
	for _, row := range b.cells {
		for _, p := range row {
			switch p.Side() {
			case SideBlack:
				black++
			case SideWhite:
				white++
			}
		}
	}
	switch {
	case white == 0:
		return SideBlack, true
	case black == 0:
		return SideWhite, true
	}
	return "", false
}
