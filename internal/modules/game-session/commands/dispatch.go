package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
)

var errorStatuses = []core.ErrorStatus{
	{Target: gamesession.ErrSessionNotFound, StatusCode: http.StatusNotFound},
	{Target: gamesession.ErrCoordinatorStopped, StatusCode: http.StatusNotFound},
	{Target: domain.ErrPlayerNotFound, StatusCode: http.StatusNotFound},
	{Target: domain.ErrInvalidTransition, StatusCode: http.StatusConflict},
	{Target: domain.ErrAlreadyVoted, StatusCode: http.StatusConflict},
	{Target: domain.ErrInvalidScore, StatusCode: http.StatusBadRequest},
	{Target: domain.ErrInvalidRating, StatusCode: http.StatusBadRequest},
	{Target: domain.ErrInvalidReport, StatusCode: http.StatusBadRequest},
	{Target: domain.ErrInvalidRosterSize, StatusCode: http.StatusBadRequest},
	{Target: domain.ErrNotAuthorized, StatusCode: http.StatusForbidden},
	{Target: domain.ErrSessionLocked, StatusCode: http.StatusLocked},
}

// dispatch applies action to a running session and reports failures as command errors.
func dispatch(
	ctx context.Context,
	registry *gamesession.Registry,
	sessionID uuid.UUID,
	action domain.Action,
) (domain.Session, error) {
	c, err := registry.Get(sessionID)
	if err != nil {
		return domain.Session{}, core.MapError(err, errorStatuses...)
	}

	session, err := c.Dispatch(ctx, action)
	if err != nil {
		return domain.Session{}, core.MapError(err, errorStatuses...)
	}

	return session, nil
}

// sessionRequest holds the ids every session command is addressed with.
type sessionRequest struct {
	SessionID uuid.UUID `json:"-"`
	PlayerID  uuid.UUID `json:"-"`
}

func newSessionRequest(r *http.Request) (sessionRequest, error) {
	sessionID, err := core.URLParamUUID(r, "id")
	if err != nil {
		return sessionRequest{}, err
	}

	return sessionRequest{
		SessionID: sessionID,
		PlayerID:  core.Session(r.Context()).PlayerID,
	}, nil
}

func (r sessionRequest) Validate() error {
	return core.Validate(
		requireID("SessionID", r.SessionID),
		requireID("PlayerID", r.PlayerID),
	)
}

func requireID(name string, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid %s - '%s'", name, id)
	}
	return nil
}
