package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type KickPlayerCommand struct {
	sessionRequest
	TargetID uuid.UUID `json:"playerId"`
}

func (c KickPlayerCommand) Validate() error {
	return core.Validate(c.sessionRequest.Validate(), requireID("TargetID", c.TargetID))
}

func HandleKickPlayer(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[KickPlayerCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[KickPlayerCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type KickPlayerCommandHandler struct {
	registry *gamesession.Registry
}

func NewKickPlayerCommandHandler(registry *gamesession.Registry) *KickPlayerCommandHandler {
	return &KickPlayerCommandHandler{registry}
}

func (h *KickPlayerCommandHandler) Handle(
	ctx context.Context,
	request KickPlayerCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.KickAction{
		Actor:    request.PlayerID,
		PlayerID: request.TargetID,
	})
}
