package model

import "errors"

var (
	ErrOutOfRange    = errors.New("position out of range")
	ErrInvalidMove   = errors.New("invalid move")
	ErrInvalidLayout = errors.New("invalid layout")
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrGameFull      = errors.New("game is full")
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotInGame     = errors.New("player not in game")
	ErrAlreadyQueued = errors.New("player already in queue")
	ErrNotConnected  = errors.New("not authorized to join this game")
)
