package commands

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

// SwitchTeamCommand moves TargetID to the other team. Without a target the
// acting player switches themselves.
type SwitchTeamCommand struct {
	sessionRequest
	TargetID uuid.UUID `json:"playerId"`
}

func HandleSwitchTeam(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[SwitchTeamCommand](r)
	if err != nil && !errors.Is(err, io.EOF) {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[SwitchTeamCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type SwitchTeamCommandHandler struct {
	registry *gamesession.Registry
}

func NewSwitchTeamCommandHandler(registry *gamesession.Registry) *SwitchTeamCommandHandler {
	return &SwitchTeamCommandHandler{registry}
}

func (h *SwitchTeamCommandHandler) Handle(
	ctx context.Context,
	request SwitchTeamCommand,
) (domain.Session, error) {
	target := request.TargetID
	if target == uuid.Nil {
		target = request.PlayerID
	}

	return dispatch(ctx, h.registry, request.SessionID, domain.SwitchTeamAction{
		Actor:    request.PlayerID,
		PlayerID: target,
	})
}
