package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
)

type StartMatchCommand struct {
	sessionRequest
}

func HandleStartMatch(w http.ResponseWriter, r *http.Request) {
	req, err := newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[StartMatchCommand, domain.Session](r.Context(), StartMatchCommand{req})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type StartMatchCommandHandler struct {
	registry *gamesession.Registry
}

func NewStartMatchCommandHandler(registry *gamesession.Registry) *StartMatchCommandHandler {
	return &StartMatchCommandHandler{registry}
}

func (h *StartMatchCommandHandler) Handle(
	ctx context.Context,
	request StartMatchCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.StartMatchAction{Actor: request.PlayerID})
}
