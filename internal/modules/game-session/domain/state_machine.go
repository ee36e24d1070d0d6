package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseReady
	PhaseInProgress
	PhaseScoring
	PhaseVoting
	PhaseRescoring
	PhaseRevoting
	PhaseCompleted
	PhaseArbitration
	PhaseCancelled
)

var phaseNames = map[Phase]string{
	PhaseWaiting:     "waiting",
	PhaseReady:       "ready",
	PhaseInProgress:  "in_progress",
	PhaseScoring:     "scoring",
	PhaseVoting:      "voting",
	PhaseRescoring:   "rescoring",
	PhaseRevoting:    "revoting",
	PhaseCompleted:   "completed",
	PhaseArbitration: "arbitration",
	PhaseCancelled:   "cancelled",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase - '%s'", text)
}

var transitions = map[Phase][]Phase{
	PhaseWaiting:     {PhaseReady, PhaseCancelled},
	PhaseReady:       {PhaseInProgress, PhaseWaiting, PhaseCancelled},
	PhaseInProgress:  {PhaseScoring},
	PhaseScoring:     {PhaseVoting},
	PhaseVoting:      {PhaseCompleted, PhaseRescoring, PhaseArbitration},
	PhaseRescoring:   {PhaseRevoting},
	PhaseRevoting:    {PhaseCompleted, PhaseRescoring, PhaseArbitration},
	PhaseArbitration: {PhaseCompleted},
	PhaseCompleted:   {PhaseCancelled},
}

// CanTransition reports whether the lifecycle allows moving from one phase to another.
func CanTransition(from, to Phase) bool {
	return slices.Contains(transitions[from], to)
}

func (s Session) transition(to Phase) (Session, error) {
	if !CanTransition(s.Phase, to) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Phase, to)
	}

	s.Phase = to
	return s, nil
}

func (s Session) requirePhase(allowed ...Phase) error {
	if slices.Contains(allowed, s.Phase) {
		return nil
	}
	return fmt.Errorf("%w: not allowed while %s", ErrInvalidTransition, s.Phase)
}

func (s Session) requireHost(actor uuid.UUID) error {
	if !s.IsHost(actor) {
		return fmt.Errorf("%w: %s is not the host", ErrNotAuthorized, actor)
	}
	return nil
}

// Locked reports whether the match is underway and players may not leave.
func (s Session) Locked() bool {
	switch s.Phase {
	case PhaseInProgress, PhaseScoring, PhaseVoting, PhaseRescoring, PhaseRevoting, PhaseArbitration:
		return true
	default:
		return false
	}
}

func StartMatch(s Session, actor uuid.UUID) (Session, error) {
	if err := s.requireHost(actor); err != nil {
		return s, err
	}

	if err := s.requirePhase(PhaseReady); err != nil {
		return s, err
	}

	return s.clone().transition(PhaseInProgress)
}

// ElapseMatch ends the in-match period and hands the session to the host for scoring.
func ElapseMatch(s Session) (Session, error) {
	if err := s.requirePhase(PhaseInProgress); err != nil {
		return s, err
	}

	return s.clone().transition(PhaseScoring)
}

// ExpireReady cancels a session whose roster never became fully ready.
// It is a no-op once the session has left the waiting phase.
func ExpireReady(s Session) (Session, error) {
	if s.Phase != PhaseWaiting {
		return s, nil
	}

	return s.clone().transition(PhaseCancelled)
}

func Leave(s Session, player uuid.UUID) (Session, error) {
	if s.Locked() {
		return s, fmt.Errorf("%w: cannot leave while %s", ErrSessionLocked, s.Phase)
	}

	i := s.playerIndex(player)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
	}

	if player == s.LocalPlayerID {
		return s.clone().transition(PhaseCancelled)
	}

	if s.Phase != PhaseWaiting && s.Phase != PhaseReady {
		// The roster is frozen once the match has been played.
		return s, nil
	}

	next := s.clone()

	next.Roster = slices.Delete(next.Roster, i, i+1)

	if player == s.HostID {
		// A departing remote host hands the game over to the next player in line.
		next.Roster[0].IsHost = true
		next.HostID = next.Roster[0].ID
	}

	return next.syncReadiness()
}

// syncReadiness moves between Waiting and Ready so that Ready holds exactly
// when every roster member is ready.
func (s Session) syncReadiness() (Session, error) {
	switch {
	case s.Phase == PhaseWaiting && s.allReady():
		return s.transition(PhaseReady)
	case s.Phase == PhaseReady && !s.allReady():
		return s.transition(PhaseWaiting)
	default:
		return s, nil
	}
}
