package agent

import "gomoku/game"

// Agent decides moves for one side of a game. last is the opponent's
// previous move, nil when the agent moves first.
type Agent interface {
	Reset()
	MakeMove(current *game.Board, last *game.Action) game.Action
}
