package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
)

type ToggleReadyCommand struct {
	sessionRequest
}

func HandleToggleReady(w http.ResponseWriter, r *http.Request) {
	req, err := newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[ToggleReadyCommand, domain.Session](r.Context(), ToggleReadyCommand{req})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type ToggleReadyCommandHandler struct {
	registry *gamesession.Registry
}

func NewToggleReadyCommandHandler(registry *gamesession.Registry) *ToggleReadyCommandHandler {
	return &ToggleReadyCommandHandler{registry}
}

func (h *ToggleReadyCommandHandler) Handle(
	ctx context.Context,
	request ToggleReadyCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.ToggleReadyAction{
		Actor:    request.PlayerID,
		PlayerID: request.PlayerID,
	})
}
