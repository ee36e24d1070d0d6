package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
)

// ArbitrateScoreCommand lets the host set the final score after voting failed to settle it.
type ArbitrateScoreCommand struct {
	sessionRequest
	TeamAScore int `json:"teamAScore"`
	TeamBScore int `json:"teamBScore"`
}

func HandleArbitrateScore(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[ArbitrateScoreCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[ArbitrateScoreCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type ArbitrateScoreCommandHandler struct {
	registry *gamesession.Registry
}

func NewArbitrateScoreCommandHandler(registry *gamesession.Registry) *ArbitrateScoreCommandHandler {
	return &ArbitrateScoreCommandHandler{registry}
}

func (h *ArbitrateScoreCommandHandler) Handle(
	ctx context.Context,
	request ArbitrateScoreCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.ArbitrateAction{
		Actor:      request.PlayerID,
		TeamAScore: request.TeamAScore,
		TeamBScore: request.TeamBScore,
	})
}
