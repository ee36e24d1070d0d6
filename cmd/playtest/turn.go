package main

import (
	"fmt"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
)

type turnKind int

const (
	turnReady turnKind = iota
	turnStart
	turnPropose
	turnVote
	turnArbitrate
	turnRate
)

// turn is a decision the local player owes the session.
type turn struct {
	kind   turnKind
	target uuid.UUID
	// key identifies the decision so it is asked once.
	key string
}

func localTurn(s domain.Session) (turn, bool) {
	local := s.LocalPlayerID
	host := s.IsHost(local)

	switch s.Phase {
	case domain.PhaseWaiting:
		if p, ok := s.Player(local); ok && !p.Ready {
			return turn{kind: turnReady, key: "ready"}, true
		}
	case domain.PhaseReady:
		if host {
			return turn{kind: turnStart, key: "start"}, true
		}
	case domain.PhaseScoring, domain.PhaseRescoring:
		if host {
			return turn{kind: turnPropose, key: fmt.Sprintf("propose:%d", s.Round+1)}, true
		}
	case domain.PhaseVoting, domain.PhaseRevoting:
		if !host && !s.HasVoted(local) {
			return turn{kind: turnVote, key: fmt.Sprintf("vote:%d", s.Round)}, true
		}
	case domain.PhaseArbitration:
		if host {
			return turn{kind: turnArbitrate, key: "arbitrate"}, true
		}
	case domain.PhaseCompleted:
		if target, ok := s.CurrentRatingTarget(); ok {
			return turn{kind: turnRate, target: target, key: "rate:" + target.String()}, true
		}
	}

	return turn{}, false
}

// decider answers the local player's turns.
type decider interface {
	confirm(s domain.Session, question string) bool
	score(s domain.Session, title string) (int, int)
	stars(s domain.Session, target domain.Player) (stars int, skip bool)
}

func actionFor(s domain.Session, t turn, d decider) domain.Action {
	local := s.LocalPlayerID

	switch t.kind {
	case turnReady:
		d.confirm(s, "Ready up?")
		return domain.ToggleReadyAction{Actor: local, PlayerID: local}
	case turnStart:
		d.confirm(s, "Everyone is ready. Start the match?")
		return domain.StartMatchAction{Actor: local}
	case turnPropose:
		a, b := d.score(s, "Final score")
		return domain.SubmitProposalAction{Actor: local, TeamAScore: a, TeamBScore: b}
	case turnVote:
		p := s.ActiveProposal
		agreed := d.confirm(s, fmt.Sprintf("Host proposes %d:%d. Agree?", p.TeamAScore, p.TeamBScore))
		return domain.CastVoteAction{PlayerID: local, Agreed: agreed}
	case turnArbitrate:
		a, b := d.score(s, "Players could not agree. Set the final score")
		return domain.ArbitrateAction{Actor: local, TeamAScore: a, TeamBScore: b}
	case turnRate:
		target, _ := s.Player(t.target)
		stars, skip := d.stars(s, target)
		if skip {
			return domain.SkipAction{Actor: local, TargetID: t.target}
		}
		return domain.RateAction{Actor: local, TargetID: t.target, Stars: stars}
	}

	return nil
}
