package engine

import (
	"time"

	"gomoku/game"
)

type Engine interface {
	// Run plays a game until one side completes a line or the board is full
	Run() Result
}

type Result struct {
	Score    int // 1 if the first player won, -1 if the second player won, 0 for a draw
	Plies    int
	Moves    []game.Action
	Duration time.Duration
}

func (r Result) Winner() string {
	switch r.Score {
	case 1:
		return game.FirstPlayer.String()
	case -1:
		return game.SecondPlayer.String()
	default:
		return ""
	}
}
