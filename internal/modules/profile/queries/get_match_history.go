package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	"github.com/eskrenkovic/matchday/internal/modules/profile/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 20

type GetMatchHistoryQuery struct {
	PlayerID uuid.UUID
	Limit    int
}

func (q GetMatchHistoryQuery) Validate() error {
	var checks []error

	if q.PlayerID == uuid.Nil {
		checks = append(checks, fmt.Errorf("invalid PlayerID - %s", q.PlayerID.String()))
	}

	if q.Limit < 1 || q.Limit > 100 {
		checks = append(checks, fmt.Errorf("invalid Limit - %d", q.Limit))
	}

	return core.Validate(checks...)
}

// MatchSummary is the public view of a history entry.
type MatchSummary struct {
	SessionID uuid.UUID `json:"sessionId"`
	Score     string    `json:"score"`
	Rounds    int       `json:"rounds"`
	Points    int       `json:"points"`
	PlayedAt  string    `json:"playedAt"`
}

func HandleGetMatchHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := core.URLParamUUID(r, "id")
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	limit := defaultHistoryLimit
	if param := r.URL.Query().Get("limit"); param != "" {
		limit, err = strconv.Atoi(param)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'limit'"))
			return
		}
	}

	response, err := mediator.Send[GetMatchHistoryQuery, []MatchSummary](
		r.Context(),
		GetMatchHistoryQuery{PlayerID: playerID, Limit: limit},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetMatchHistoryQueryHandler struct {
	db *sql.DB
}

func NewGetMatchHistoryQueryHandler(db *sql.DB) *GetMatchHistoryQueryHandler {
	return &GetMatchHistoryQueryHandler{db}
}

func (h *GetMatchHistoryQueryHandler) Handle(
	ctx context.Context,
	request GetMatchHistoryQuery,
) ([]MatchSummary, error) {
	const query = `
		SELECT
			id, session_id, player_id, team_a_score, team_b_score, rounds, points, reliability_delta, created_at
		FROM
			profile.match_history
		WHERE
			player_id = $1
		ORDER BY
			created_at DESC
		LIMIT $2;`

	history, err := tql.Query[domain.MatchHistory](ctx, h.db, query, request.PlayerID, request.Limit)
	if err != nil {
		return nil, core.NewCommandError(500, err)
	}

	return core.Map(history, func(m domain.MatchHistory) MatchSummary {
		return MatchSummary{
			SessionID: m.SessionID,
			Score:     fmt.Sprintf("%d:%d", m.TeamAScore, m.TeamBScore),
			Rounds:    m.Rounds,
			Points:    m.Points,
			PlayedAt:  m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}), nil
}
