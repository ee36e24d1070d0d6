package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MajorityThreshold is the number of matching votes that settles a round.
func MajorityThreshold(rosterSize int) int {
	return (rosterSize + 1) / 2
}

type Tally struct {
	Agreed    int `json:"agreed"`
	Disagreed int `json:"disagreed"`
	Threshold int `json:"threshold"`
}

func (t Tally) Accepted() bool {
	return t.Agreed >= t.Threshold
}

func (t Tally) Rejected() bool {
	return t.Disagreed >= t.Threshold
}

// Deadlocked reports whether neither side can reach the threshold with the
// votes still outstanding.
func (t Tally) Deadlocked(voters int) bool {
	remaining := voters - t.Agreed - t.Disagreed
	if remaining < 0 {
		remaining = 0
	}
	return max(t.Agreed, t.Disagreed)+remaining < t.Threshold
}

func (s Session) Tally() Tally {
	t := Tally{Threshold: MajorityThreshold(len(s.Roster))}
	for _, v := range s.Votes {
		if v.Round != s.Round {
			continue
		}
		if v.Agreed {
			t.Agreed++
		} else {
			t.Disagreed++
		}
	}
	return t
}

// HasVoted reports whether player already voted in the current round.
func (s Session) HasVoted(player uuid.UUID) bool {
	for _, v := range s.Votes {
		if v.PlayerID == player && v.Round == s.Round {
			return true
		}
	}
	return false
}

func validateScores(teamAScore, teamBScore int) error {
	if teamAScore < 0 || teamBScore < 0 {
		return fmt.Errorf("%w: scores must be non-negative, got %d-%d", ErrInvalidScore, teamAScore, teamBScore)
	}
	return nil
}

// SubmitProposal opens a new voting round on the host's score.
func SubmitProposal(s Session, actor uuid.UUID, teamAScore, teamBScore int) (Session, error) {
	if err := s.requireHost(actor); err != nil {
		return s, err
	}

	if err := s.requirePhase(PhaseScoring, PhaseRescoring); err != nil {
		return s, err
	}

	if err := validateScores(teamAScore, teamBScore); err != nil {
		return s, err
	}

	next := s.clone()
	next.Round++
	next.ActiveProposal = &ScoreProposal{
		TeamAScore: teamAScore,
		TeamBScore: teamBScore,
		Round:      next.Round,
	}
	next.Votes = nil

	if s.Phase == PhaseScoring {
		return next.transition(PhaseVoting)
	}
	return next.transition(PhaseRevoting)
}

// CastVote records a participant's verdict on the active proposal and
// resolves the round as soon as either side reaches the majority threshold.
func CastVote(s Session, player uuid.UUID, agreed bool) (Session, error) {
	if err := s.requirePhase(PhaseVoting, PhaseRevoting); err != nil {
		return s, err
	}

	if _, ok := s.Player(player); !ok {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
	}

	if s.IsHost(player) {
		return s, fmt.Errorf("%w: the host does not vote on their own proposal", ErrNotAuthorized)
	}

	if s.HasVoted(player) {
		return s, fmt.Errorf("%w: %s in round %d", ErrAlreadyVoted, player, s.Round)
	}

	next := s.clone()
	next.Votes = append(next.Votes, Vote{PlayerID: player, Agreed: agreed, Round: s.Round})

	tally := next.Tally()
	switch {
	case tally.Accepted():
		return next.accept()
	case tally.Rejected():
		return next.reject()
	case tally.Deadlocked(len(next.Roster) - 1):
		return next.escalate()
	default:
		return next, nil
	}
}

func (s Session) accept() (Session, error) {
	final := *s.ActiveProposal
	s.FinalScore = &final
	return s.complete()
}

func (s Session) reject() (Session, error) {
	s.PreviousProposal = s.ActiveProposal
	s.ActiveProposal = nil
	s.Votes = nil

	if s.Policy.MaxRounds > 0 && s.Round >= s.Policy.MaxRounds {
		return s.transition(PhaseArbitration)
	}
	return s.transition(PhaseRescoring)
}

// ExpireVote escalates a stalled voting round to host arbitration. Expiry of
// a round that has already been resolved is ignored.
func ExpireVote(s Session, round int) (Session, error) {
	if (s.Phase != PhaseVoting && s.Phase != PhaseRevoting) || s.Round != round {
		return s, nil
	}

	return s.clone().escalate()
}

func (s Session) escalate() (Session, error) {
	s.PreviousProposal = s.ActiveProposal
	s.ActiveProposal = nil
	s.Votes = nil

	return s.transition(PhaseArbitration)
}

// Arbitrate lets the host settle the final score once consensus has failed.
func Arbitrate(s Session, actor uuid.UUID, teamAScore, teamBScore int) (Session, error) {
	if err := s.requireHost(actor); err != nil {
		return s, err
	}

	if err := s.requirePhase(PhaseArbitration); err != nil {
		return s, err
	}

	if err := validateScores(teamAScore, teamBScore); err != nil {
		return s, err
	}

	next := s.clone()
	next.FinalScore = &ScoreProposal{
		TeamAScore: teamAScore,
		TeamBScore: teamBScore,
		Round:      next.Round,
	}

	return next.complete()
}
