package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	PlayerID    uuid.UUID `json:"playerId" db:"player_id"`
	Points      int       `json:"points" db:"points"`
	Reliability int       `json:"reliability" db:"reliability"`
	GamesPlayed int       `json:"gamesPlayed" db:"games_played"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// MatchHistory is one settled session as seen by the player it was settled for.
type MatchHistory struct {
	ID               uuid.UUID `json:"id" db:"id"`
	SessionID        uuid.UUID `json:"sessionId" db:"session_id"`
	PlayerID         uuid.UUID `json:"playerId" db:"player_id"`
	TeamAScore       int       `json:"teamAScore" db:"team_a_score"`
	TeamBScore       int       `json:"teamBScore" db:"team_b_score"`
	Rounds           int       `json:"rounds" db:"rounds"`
	Points           int       `json:"points" db:"points"`
	ReliabilityDelta int       `json:"reliabilityDelta" db:"reliability_delta"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

type PlayerRating struct {
	SessionID     uuid.UUID `json:"sessionId" db:"session_id"`
	RaterID       uuid.UUID `json:"raterId" db:"rater_id"`
	TargetID      uuid.UUID `json:"targetId" db:"target_id"`
	Stars         int       `json:"stars" db:"stars"`
	Skipped       bool      `json:"skipped" db:"skipped"`
	ReportReasons string    `json:"reportReasons" db:"report_reasons"`
	Notes         string    `json:"notes" db:"notes"`
}
