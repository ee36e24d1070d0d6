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

type ReportPlayerCommand struct {
	sessionRequest
	TargetID uuid.UUID             `json:"targetId"`
	Reasons  []domain.ReportReason `json:"reasons"`
	Notes    string                `json:"notes"`
}

func (c ReportPlayerCommand) Validate() error {
	return core.Validate(c.sessionRequest.Validate(), requireID("TargetID", c.TargetID))
}

func HandleReportPlayer(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[ReportPlayerCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.sessionRequest, err = newSessionRequest(r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	session, err := mediator.Send[ReportPlayerCommand, domain.Session](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, session)
}

type ReportPlayerCommandHandler struct {
	registry *gamesession.Registry
}

func NewReportPlayerCommandHandler(registry *gamesession.Registry) *ReportPlayerCommandHandler {
	return &ReportPlayerCommandHandler{registry}
}

func (h *ReportPlayerCommandHandler) Handle(
	ctx context.Context,
	request ReportPlayerCommand,
) (domain.Session, error) {
	return dispatch(ctx, h.registry, request.SessionID, domain.ReportAction{
		Actor:    request.PlayerID,
		TargetID: request.TargetID,
		Reasons:  request.Reasons,
		Notes:    request.Notes,
	})
}
