package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
)

// LeaveSessionCommand takes the acting player out of the session. When the
// local user leaves, the session is cancelled and stops running.
type LeaveSessionCommand struct {
	sessionRequest
}

func HandleLeaveSession(w http.ResponseWriter, r *http.Request) {
	req, err := newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[LeaveSessionCommand, domain.Session](r.Context(), LeaveSessionCommand{req})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type LeaveSessionCommandHandler struct {
	registry *gamesession.Registry
}

func NewLeaveSessionCommandHandler(registry *gamesession.Registry) *LeaveSessionCommandHandler {
	return &LeaveSessionCommandHandler{registry}
}

func (h *LeaveSessionCommandHandler) Handle(
	ctx context.Context,
	request LeaveSessionCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.LeaveAction{PlayerID: request.PlayerID})
}
