package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
)

type SubmitProposalCommand struct {
	sessionRequest
	TeamAScore int `json:"teamAScore"`
	TeamBScore int `json:"teamBScore"`
}

func HandleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[SubmitProposalCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[SubmitProposalCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type SubmitProposalCommandHandler struct {
	registry *gamesession.Registry
}

func NewSubmitProposalCommandHandler(registry *gamesession.Registry) *SubmitProposalCommandHandler {
	return &SubmitProposalCommandHandler{registry}
}

func (h *SubmitProposalCommandHandler) Handle(
	ctx context.Context,
	request SubmitProposalCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.SubmitProposalAction{
		Actor:      request.PlayerID,
		TeamAScore: request.TeamAScore,
		TeamBScore: request.TeamBScore,
	})
}
