package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Action is one event applied to a session. Local user input, messages from
// remote participants and timer expiries are all expressed as actions and
// reduced the same way.
type Action interface {
	Name() string
	Apply(s Session) (Session, error)
}

// Reduce applies an action to a session, refusing anything once the session
// is closed. Timer expiries and ratings after completion are no-ops.
func Reduce(s Session, a Action) (Session, error) {
	if s.Closed() {
		switch a.(type) {
		case ExpireAction:
			return s, nil
		case RateAction, SkipAction:
			if s.RatingComplete() {
				return s, nil
			}
		}
		return s, fmt.Errorf("%w: session %s is closed", ErrInvalidTransition, s.ID)
	}

	return a.Apply(s)
}

// ExpireAction marks timer-driven actions, which become no-ops on closed sessions.
type ExpireAction interface {
	Action
	expiry()
}

type ToggleReadyAction struct {
	Actor    uuid.UUID `json:"actor"`
	PlayerID uuid.UUID `json:"playerId"`
}

func (ToggleReadyAction) Name() string { return "toggle_ready" }

func (a ToggleReadyAction) Apply(s Session) (Session, error) {
	return ToggleReady(s, a.Actor, a.PlayerID)
}

type SwitchTeamAction struct {
	Actor    uuid.UUID `json:"actor"`
	PlayerID uuid.UUID `json:"playerId"`
}

func (SwitchTeamAction) Name() string { return "switch_team" }

func (a SwitchTeamAction) Apply(s Session) (Session, error) {
	return SwitchTeam(s, a.Actor, a.PlayerID)
}

type KickAction struct {
	Actor    uuid.UUID `json:"actor"`
	PlayerID uuid.UUID `json:"playerId"`
}

func (KickAction) Name() string { return "kick" }

func (a KickAction) Apply(s Session) (Session, error) {
	return Kick(s, a.Actor, a.PlayerID)
}

type StartMatchAction struct {
	Actor uuid.UUID `json:"actor"`
}

func (StartMatchAction) Name() string { return "start_match" }

func (a StartMatchAction) Apply(s Session) (Session, error) {
	return StartMatch(s, a.Actor)
}

type SubmitProposalAction struct {
	Actor      uuid.UUID `json:"actor"`
	TeamAScore int       `json:"teamAScore"`
	TeamBScore int       `json:"teamBScore"`
}

func (SubmitProposalAction) Name() string { return "submit_proposal" }

func (a SubmitProposalAction) Apply(s Session) (Session, error) {
	return SubmitProposal(s, a.Actor, a.TeamAScore, a.TeamBScore)
}

type CastVoteAction struct {
	PlayerID uuid.UUID `json:"playerId"`
	Agreed   bool      `json:"agreed"`
}

func (CastVoteAction) Name() string { return "cast_vote" }

func (a CastVoteAction) Apply(s Session) (Session, error) {
	return CastVote(s, a.PlayerID, a.Agreed)
}

type ArbitrateAction struct {
	Actor      uuid.UUID `json:"actor"`
	TeamAScore int       `json:"teamAScore"`
	TeamBScore int       `json:"teamBScore"`
}

func (ArbitrateAction) Name() string { return "arbitrate" }

func (a ArbitrateAction) Apply(s Session) (Session, error) {
	return Arbitrate(s, a.Actor, a.TeamAScore, a.TeamBScore)
}

// Rating actions are only ever taken by the local user, so they carry the
// acting player only to reject anyone else.
type RateAction struct {
	Actor    uuid.UUID `json:"actor"`
	TargetID uuid.UUID `json:"targetId"`
	Stars    int       `json:"stars"`
}

func (RateAction) Name() string { return "rate" }

func (a RateAction) Apply(s Session) (Session, error) {
	if err := requireLocal(s, a.Actor); err != nil {
		return s, err
	}
	return Rate(s, a.TargetID, a.Stars)
}

type SkipAction struct {
	Actor    uuid.UUID `json:"actor"`
	TargetID uuid.UUID `json:"targetId"`
}

func (SkipAction) Name() string { return "skip" }

func (a SkipAction) Apply(s Session) (Session, error) {
	if err := requireLocal(s, a.Actor); err != nil {
		return s, err
	}
	return Skip(s, a.TargetID)
}

type ReportAction struct {
	Actor    uuid.UUID      `json:"actor"`
	TargetID uuid.UUID      `json:"targetId"`
	Reasons  []ReportReason `json:"reasons"`
	Notes    string         `json:"notes"`
}

func (ReportAction) Name() string { return "report" }

func (a ReportAction) Apply(s Session) (Session, error) {
	if err := requireLocal(s, a.Actor); err != nil {
		return s, err
	}
	return Report(s, a.TargetID, a.Reasons, a.Notes)
}

type LeaveAction struct {
	PlayerID uuid.UUID `json:"playerId"`
}

func (LeaveAction) Name() string { return "leave" }

func (a LeaveAction) Apply(s Session) (Session, error) {
	return Leave(s, a.PlayerID)
}

type ElapseMatchAction struct{}

func (ElapseMatchAction) Name() string { return "elapse_match" }
func (ElapseMatchAction) expiry()      {}

func (ElapseMatchAction) Apply(s Session) (Session, error) {
	if s.Phase != PhaseInProgress {
		return s, nil
	}
	return ElapseMatch(s)
}

type ExpireReadyAction struct{}

func (ExpireReadyAction) Name() string { return "expire_ready" }
func (ExpireReadyAction) expiry()      {}

func (ExpireReadyAction) Apply(s Session) (Session, error) {
	return ExpireReady(s)
}

type ExpireVoteAction struct {
	Round int `json:"round"`
}

func (ExpireVoteAction) Name() string { return "expire_vote" }
func (ExpireVoteAction) expiry()      {}

func (a ExpireVoteAction) Apply(s Session) (Session, error) {
	return ExpireVote(s, a.Round)
}

func requireLocal(s Session, actor uuid.UUID) error {
	if actor != s.LocalPlayerID {
		return fmt.Errorf("%w: only the local user rates players", ErrNotAuthorized)
	}
	return nil
}
