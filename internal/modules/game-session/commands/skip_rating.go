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

type SkipRatingCommand struct {
	sessionRequest
	TargetID uuid.UUID
}

func (c SkipRatingCommand) Validate() error {
	return core.Validate(c.sessionRequest.Validate(), requireID("TargetID", c.TargetID))
}

func HandleSkipRating(w http.ResponseWriter, r *http.Request) {
	req, err := newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	targetID, err := core.URLParamUUID(r, "targetId")
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command := SkipRatingCommand{sessionRequest: req, TargetID: targetID}

	session, err := mediator.Send[SkipRatingCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type SkipRatingCommandHandler struct {
	registry *gamesession.Registry
}

func NewSkipRatingCommandHandler(registry *gamesession.Registry) *SkipRatingCommandHandler {
	return &SkipRatingCommandHandler{registry}
}

func (h *SkipRatingCommandHandler) Handle(
	ctx context.Context,
	request SkipRatingCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.SkipAction{
		Actor:    request.PlayerID,
		TargetID: request.TargetID,
	})
}
