package queries

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

var errorStatuses = []core.ErrorStatus{
	{Target: gamesession.ErrSessionNotFound, StatusCode: http.StatusNotFound},
	{Target: gamesession.ErrCoordinatorStopped, StatusCode: http.StatusNotFound},
}

type GetSessionQuery struct {
	SessionID uuid.UUID
}

func (q GetSessionQuery) Validate() error {
	return requireID("SessionID", q.SessionID)
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := core.URLParamUUID(r, "id")
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[GetSessionQuery, domain.Session](
		r.Context(),
		GetSessionQuery{SessionID: sessionID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionQueryHandler struct {
	registry *gamesession.Registry
}

func NewGetSessionQueryHandler(registry *gamesession.Registry) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{registry}
}

func (h *GetSessionQueryHandler) Handle(ctx context.Context, request GetSessionQuery) (domain.Session, error) {
	c, err := h.registry.Get(request.SessionID)
	if err != nil {
		return domain.Session{}, core.MapError(err, errorStatuses...)
	}

	session, err := c.Snapshot(ctx)
	if err != nil {
		return domain.Session{}, core.MapError(err, errorStatuses...)
	}

	return session, nil
}
