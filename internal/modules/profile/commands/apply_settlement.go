package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	"github.com/eskrenkovic/matchday/internal/modules/profile/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

// ApplySettlementCommand records the reward of a settled session on the
// player's profile. Applying the same session twice has no further effect.
type ApplySettlementCommand struct {
	SessionID        uuid.UUID
	PlayerID         uuid.UUID
	TeamAScore       int
	TeamBScore       int
	Rounds           int
	Points           int
	ReliabilityDelta int
	Ratings          []domain.PlayerRating
}

func (c ApplySettlementCommand) Validate() error {
	var checks []error

	if c.SessionID == uuid.Nil {
		checks = append(checks, fmt.Errorf("invalid SessionID - '%s'", c.SessionID))
	}

	if c.PlayerID == uuid.Nil {
		checks = append(checks, fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID))
	}

	if c.Rounds < 1 {
		checks = append(checks, fmt.Errorf("invalid Rounds - %d", c.Rounds))
	}

	if c.TeamAScore < 0 || c.TeamBScore < 0 {
		checks = append(checks, fmt.Errorf("invalid score - %d:%d", c.TeamAScore, c.TeamBScore))
	}

	return core.Validate(checks...)
}

type ApplySettlementCommandHandler struct {
	db *sql.DB
}

func NewApplySettlementCommandHandler(db *sql.DB) *ApplySettlementCommandHandler {
	return &ApplySettlementCommandHandler{db}
}

func (h *ApplySettlementCommandHandler) Handle(
	ctx context.Context,
	request ApplySettlementCommand,
) (core.Unit, error) {
	err := core.Tx(ctx, h.db, func(ctx context.Context, tx *sql.Tx) error {
		const createProfileStmt = `
			INSERT INTO
				profile.profile (player_id)
			VALUES
				($1)
			ON CONFLICT (player_id) DO NOTHING;`

		if _, err := tql.Exec(ctx, tx, createProfileStmt, request.PlayerID); err != nil {
			return err
		}

		history := domain.MatchHistory{
			ID:               uuid.New(),
			SessionID:        request.SessionID,
			PlayerID:         request.PlayerID,
			TeamAScore:       request.TeamAScore,
			TeamBScore:       request.TeamBScore,
			Rounds:           request.Rounds,
			Points:           request.Points,
			ReliabilityDelta: request.ReliabilityDelta,
		}

		const insertHistoryStmt = `
			INSERT INTO
				profile.match_history (id, session_id, player_id, team_a_score, team_b_score, rounds, points, reliability_delta)
			VALUES
				(:id, :session_id, :player_id, :team_a_score, :team_b_score, :rounds, :points, :reliability_delta)
			ON CONFLICT (session_id, player_id) DO NOTHING;`

		result, err := tql.Exec(ctx, tx, insertHistoryStmt, history)
		if err != nil {
			return err
		}

		inserted, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if inserted == 0 {
			return nil
		}

		const updateProfileStmt = `
			UPDATE
				profile.profile
			SET
				points = points + :points,
				reliability = reliability + :reliability_delta,
				games_played = games_played + 1,
				updated_at = now()
			WHERE
				player_id = :player_id;`

		updateParams := map[string]interface{}{
			"player_id":         request.PlayerID,
			"points":            request.Points,
			"reliability_delta": request.ReliabilityDelta,
		}

		if _, err := tql.Exec(ctx, tx, updateProfileStmt, updateParams); err != nil {
			return err
		}

		const insertRatingStmt = `
			INSERT INTO
				profile.player_rating (session_id, rater_id, target_id, stars, skipped, report_reasons, notes)
			VALUES
				(:session_id, :rater_id, :target_id, :stars, :skipped, :report_reasons, :notes)
			ON CONFLICT (session_id, rater_id, target_id) DO NOTHING;`

		for _, rating := range request.Ratings {
			if _, err := tql.Exec(ctx, tx, insertRatingStmt, rating); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to apply settlement"))
	}

	return core.Unit{}, nil
}
