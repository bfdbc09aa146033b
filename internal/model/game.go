package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/draughts-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

const (
	ReasonElimination = "elimination"
	ReasonTimeout     = "timeout"
	ReasonResign      = "resign"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*SyncConn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*SyncConn),
	}
}

// Rules are fixed when a game is created.
type Rules struct {
	Layout        Layout
	TimeControl   time.Duration
	ForcedCapture bool
}

func DefaultRules() Rules {
	return Rules{
		Layout:      DefaultLayout(10),
		TimeControl: 10 * time.Minute,
	}
}

// Game owns one board and everything that changes around it: whose turn it
// is, whether the game is over, clocks and observers. All rule checks run
// under g.mu, which makes the game the single writer of its board.
type Game struct {
	ID          string
	mu          sync.Mutex
	rules       Rules
	state       GameState
	clocks      map[Side]*Clock
	connections *GameConnections
	// seq numbers broadcasts in the order their snapshots were taken.
	seq uint64
}

type GameState struct {
	Board          *Board         `json:"board"`
	ToMove         Side           `json:"toMove"`
	Over           bool           `json:"over"`
	Winner         Side           `json:"winner,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *Move          `json:"lastMove"`
	Players        Players        `json:"players"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func (c *CapturedPieces) add(side Side, pieces ...Piece) {
	if side == SideWhite {
		c.White = append(c.White, pieces...)
	} else {
		c.Black = append(c.Black, pieces...)
	}
}

func NewGame(id string, rules Rules) (*Game, error) {
	board, err := rules.Layout.Board()
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:    id,
		rules: rules,
		state: GameState{
			Board:       board,
			ToMove:      SideWhite,
			MoveHistory: make([]Ply, 0),
			CapturedPieces: CapturedPieces{
				White: make([]Piece, 0),
				Black: make([]Piece, 0),
			},
			Players: Players{
				White: ClientPlayer{Color: SideWhite, TimeLeft: rules.TimeControl.Milliseconds()},
				Black: ClientPlayer{Color: SideBlack, TimeLeft: rules.TimeControl.Milliseconds()},
			},
		},
		clocks: map[Side]*Clock{
			SideWhite: NewClock(rules.TimeControl),
			SideBlack: NewClock(rules.TimeControl),
		},
		connections: NewGameConnections(),
	}, nil
}

// AddPlayer seats playerID, white first. A player who is already seated gets
// their existing side back.
func (g *Game) AddPlayer(playerID string) (Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if side, ok := g.state.Players.SideOf(playerID); ok {
		return side, nil
	}
	for _, side := range []Side{SideWhite, SideBlack} {
		seat := g.state.Players.seat(side)
		if seat.ID == "" {
			seat.ID = playerID
			log.Info().Str("game", g.ID).Str("player", playerID).Str("side", string(side)).Msg("player seated")
			if g.isFull() {
				g.clocks[g.state.ToMove].Start()
			}
			return side, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) isFull() bool {
	return g.state.Players.White.ID != "" && g.state.Players.Black.ID != ""
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.state.Players.SideOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return !g.isFull()
}

// GetState returns a copy of the state that is safe to use after the lock is
// released.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.Board = g.state.Board.Clone()
	s.MoveHistory = append([]Ply(nil), g.state.MoveHistory...)
	s.CapturedPieces = CapturedPieces{
		White: append([]Piece{}, g.state.CapturedPieces.White...),
		Black: append([]Piece{}, g.state.CapturedPieces.Black...),
	}
	if g.state.LastMove != nil {
		last := *g.state.LastMove
		s.LastMove = &last
	}
	s.Players.White.TimeLeft = g.clocks[SideWhite].TimeLeft().Milliseconds()
	s.Players.Black.TimeLeft = g.clocks[SideBlack].TimeLeft().Milliseconds()
	return s
}

// LegalMoves lists the moves of the piece on pos, whoever's turn it is.
func (g *Game) LegalMoves(pos Position) ([]Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Board.InBounds(pos) {
		return nil, fmt.Errorf("%v: %w", pos, ErrOutOfRange)
	}
	return g.state.Board.LegalMovesAt(pos), nil
}

func (g *Game) MakeMove(playerID string, move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debug().Str("game", g.ID).Str("player", playerID).Stringer("move", move).Msg("making move")

	if g.state.Over {
		return ErrGameOver
	}
	side, ok := g.state.Players.SideOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if side != g.state.ToMove {
		return ErrNotYourTurn
	}

	if err := g.validateMove(side, move); err != nil {
		return err
	}

	clock := g.clocks[side]
	clock.Stop()
	if clock.Expired() {
		g.finish(side.Opponent(), ReasonTimeout)
		g.broadcast()
		return fmt.Errorf("%s ran out of time: %w", side, ErrGameOver)
	}

	if err := g.executeMove(side, move); err != nil {
		clock.Start()
		return err
	}

	if winner, ok := CheckVictory(g.state.Board); ok {
		g.finish(winner, ReasonElimination)
	} else {
		g.switchTurn()
		g.clocks[g.state.ToMove].Start()
	}

	g.broadcast()
	return nil
}

func (g *Game) validateMove(side Side, move Move) error {
	if err := move.Validate(g.state.Board.Size()); err != nil {
		return err
	}
	piece, _ := g.state.Board.Get(move.From)
	if !piece.Valid() {
		return fmt.Errorf("no piece on %v: %w", move.From, ErrIllegalMove)
	}
	if piece.Side() != side {
		return fmt.Errorf("piece on %v belongs to %s: %w", move.From, piece.Side(), ErrIllegalMove)
	}

	legal := false
	for _, m := range LegalMoves(g.state.Board, piece, move.From) {
		if m.Equal(move) {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%v: %w", move, ErrIllegalMove)
	}

	if g.rules.ForcedCapture && move.Type == MoveTypeSlide && g.state.Board.HasCapture(side) {
		return fmt.Errorf("a capture is available: %w", ErrIllegalMove)
	}
	return nil
}

func (g *Game) executeMove(side Side, move Move) error {
	board := g.state.Board
	piece := board.at(move.From)
	captured := make([]Piece, 0, len(move.Captures))
	for _, c := range move.Captures {
		captured = append(captured, board.at(c))
	}

	if err := Apply(board, move); err != nil {
		return err
	}

	g.state.CapturedPieces.add(side, captured...)
	g.state.MoveHistory = append(g.state.MoveHistory, Ply{
		Side:     side,
		Piece:    piece,
		Move:     move,
		Captured: len(captured),
		Notation: move.getNotation(),
	})
	last := move
	g.state.LastMove = &last
	log.Info().Str("game", g.ID).Str("side", string(side)).Str("notation", move.getNotation()).Int("captured", len(captured)).Msg("move applied")
	return nil
}

// Resign ends the game in favour of the resigning player's opponent.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Over {
		return ErrGameOver
	}
	side, ok := g.state.Players.SideOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	g.finish(side.Opponent(), ReasonResign)

	g.broadcast()
	return nil
}

func (g *Game) finish(winner Side, reason string) {
	g.state.Over = true
	g.state.Winner = winner
	g.state.Reason = reason
	for _, c := range g.clocks {
		c.Stop()
	}
	log.Info().Str("game", g.ID).Str("winner", string(winner)).Str("reason", reason).Msg("game over")
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

// RegisterConnection subscribes conn to the game's state. Writes to conn go
// through a SyncConn; callers that also write to it themselves should pass
// one in.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	sc := NewSyncConn(conn)
	connID := fmt.Sprintf("%p", sc)
	log.Debug().Str("game", g.ID).Str("player", playerID).Str("conn", connID).Msg("registering connection")

	g.mu.Lock()
	_, seated := g.state.Players.SideOf(playerID)
	if !seated && g.isFull() {
		g.mu.Unlock()
		return ErrNotConnected
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and turn the newcomer away.
		g.connections.mu.Unlock()
		g.mu.Unlock()
		_ = sc.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = sc.Close()
		return nil
	}
	g.connections.connections[playerID] = sc
	g.connections.mu.Unlock()
	g.broadcast()
	g.mu.Unlock()
	log.Debug().Str("game", g.ID).Str("player", playerID).Str("conn", connID).Msg("registered connection")
	return nil
}

// UnregisterConnection drops conn, but only if it is still the player's
// current connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current.is(conn) {
		delete(g.connections.connections, playerID)
		log.Debug().Str("game", g.ID).Str("player", playerID).Msg("unregistered connection")
	}
}

// broadcast sends the current state to every connection. It must be called
// with g.mu held.
func (g *Game) broadcast() {
	g.seq++
	go g.broadcastState(g.seq, g.snapshot())
}

func (g *Game) broadcastState(seq uint64, state GameState) {
	g.connections.mu.RLock()
	activeConnections := make(map[string]*SyncConn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("failed to marshal state")
		return
	}

	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}
	for playerID, conn := range activeConnections {
		sent, err := conn.writeState(seq, msg)
		if err != nil {
			log.Warn().Err(err).Str("game", g.ID).Str("player", playerID).Msg("failed to send state")
			g.UnregisterConnection(playerID, conn)
			continue
		}
		if !sent {
			log.Debug().Str("game", g.ID).Str("player", playerID).Uint64("seq", seq).Msg("skipped stale state")
			continue
		}
		log.Debug().Str("game", g.ID).Str("player", playerID).Uint64("seq", seq).Msg("sent state")
	}
}
