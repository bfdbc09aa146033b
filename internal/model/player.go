package model

type Player struct {
	ID string
}

// ClientPlayer is a seat as sent to clients. TimeLeft is in milliseconds.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Side   `json:"color"`
	TimeLeft int64  `json:"timeLeft"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) seat(side Side) *ClientPlayer {
	if side == SideBlack {
		return &p.Black
	}
	return &p.White
}

// SideOf returns the side playerID is seated on.
func (p Players) SideOf(playerID string) (Side, bool) {
	switch {
	case playerID == "":
		return "", false
	case p.White.ID == playerID:
		return SideWhite, true
	case p.Black.ID == playerID:
		return SideBlack, true
	}
	return "", false
}
