package engine

import (
	"time"

	"gomoku/agent"
	"gomoku/game"

	"github.com/rs/zerolog/log"
)

// Local plays one game between two agents in this process
type Local struct {
	Board  *game.Board
	Agents [game.Players]agent.Agent
}

func NewLocal(first, second agent.Agent) *Local {
	if first == nil || second == nil {
		panic("need two agents")
	}
	return &Local{
		Board:  game.NewBoard(),
		Agents: [game.Players]agent.Agent{first, second},
	}
}

func (e *Local) Run() Result {
	for _, a := range e.Agents {
		a.Reset()
	}

	start := time.Now()
	log.Info().Msgf("player %s is starting", e.Board.ToMove())

	var last *game.Action
	for !e.Board.IsTerminal() {
		player := e.Board.ToMove()
		move := e.Agents[player].MakeMove(e.Board, last)
		e.Board.MakeMove(move)
		log.Debug().Int("ply", e.Board.Ply()).Str("player", player.String()).Str("move", move.String()).Msg("Move played")
		last = &move
	}

	result := Result{
		Score:    e.Board.Score(),
		Plies:    e.Board.Ply(),
		Moves:    append([]game.Action(nil), e.Board.History()...),
		Duration: time.Since(start),
	}
	if winner := result.Winner(); winner != "" {
		log.Info().Msgf("player %s won after %d moves", winner, result.Plies)
	} else {
		log.Info().Msgf("draw after %d moves", result.Plies)
	}
	return result
}
