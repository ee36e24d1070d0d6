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

type RatePlayerCommand struct {
	sessionRequest
	TargetID uuid.UUID `json:"targetId"`
	Stars    int       `json:"stars"`
}

func (c RatePlayerCommand) Validate() error {
	return core.Validate(c.sessionRequest.Validate(), requireID("TargetID", c.TargetID))
}

func HandleRatePlayer(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RatePlayerCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[RatePlayerCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type RatePlayerCommandHandler struct {
	registry *gamesession.Registry
}

func NewRatePlayerCommandHandler(registry *gamesession.Registry) *RatePlayerCommandHandler {
	return &RatePlayerCommandHandler{registry}
}

func (h *RatePlayerCommandHandler) Handle(
	ctx context.Context,
	request RatePlayerCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.RateAction{
		Actor:    request.PlayerID,
		TargetID: request.TargetID,
		Stars:    request.Stars,
	})
}
