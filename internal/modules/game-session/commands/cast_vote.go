package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
)

type CastVoteCommand struct {
	sessionRequest
	Agreed *bool `json:"agreed"`
}

func (c CastVoteCommand) Validate() error {
	var agreedErr error
	if c.Agreed == nil {
		agreedErr = fmt.Errorf("missing Agreed")
	}

	return core.Validate(c.sessionRequest.Validate(), agreedErr)
}

func HandleCastVote(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CastVoteCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[CastVoteCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type CastVoteCommandHandler struct {
	registry *gamesession.Registry
}

func NewCastVoteCommandHandler(registry *gamesession.Registry) *CastVoteCommandHandler {
	return &CastVoteCommandHandler{registry}
}

func (h *CastVoteCommandHandler) Handle(
	ctx context.Context,
	request CastVoteCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.CastVoteAction{
		PlayerID: request.PlayerID,
		Agreed:   *request.Agreed,
	})
}
