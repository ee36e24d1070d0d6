package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	"github.com/eskrenkovic/matchday/internal/modules/profile/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type GetProfileQuery struct {
	PlayerID uuid.UUID
}

func (q GetProfileQuery) Validate() error {
	if q.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - %s", q.PlayerID.String())
	}

	return nil
}

func HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	playerID, err := core.URLParamUUID(r, "id")
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[GetProfileQuery, domain.Profile](
		r.Context(),
		GetProfileQuery{PlayerID: playerID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetProfileQueryHandler struct {
	db *sql.DB
}

func NewGetProfileQueryHandler(db *sql.DB) *GetProfileQueryHandler {
	return &GetProfileQueryHandler{db}
}

func (h *GetProfileQueryHandler) Handle(ctx context.Context, request GetProfileQuery) (domain.Profile, error) {
	const query = `
		SELECT
			player_id, points, reliability, games_played, updated_at
		FROM
			profile.profile
		WHERE
			player_id = $1;`

	profile, err := tql.QueryFirst[domain.Profile](ctx, h.db, query, request.PlayerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Profile{}, core.NewCommandError(404, fmt.Sprintf("profile %s not found", request.PlayerID))
	case err != nil:
		return domain.Profile{}, core.NewCommandError(500, err)
	}

	return profile, nil
}
