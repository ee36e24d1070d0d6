package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MinPlayers = 2
	MaxPlayers = 22

	verifiedProbability = 0.7
)

var syntheticNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Casey", "Riley", "Morgan", "Jamie",
	"Avery", "Quinn", "Drew", "Reese", "Skyler", "Parker", "Rowan", "Emerson",
}

type RosterOptions struct {
	MaxPlayers       int
	LocalPlayerID    uuid.UUID
	LocalDisplayName string
	LocalSkill       SkillLevel
	// LocalIsHost puts the local user on the organizer path. Otherwise the
	// first synthetic participant hosts the game.
	LocalIsHost bool
}

func (o RosterOptions) Validate() error {
	if o.MaxPlayers < MinPlayers || o.MaxPlayers > MaxPlayers {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRosterSize, o.MaxPlayers, MinPlayers, MaxPlayers)
	}

	if o.LocalPlayerID == uuid.Nil {
		return fmt.Errorf("invalid LocalPlayerID - '%s'", o.LocalPlayerID)
	}

	return nil
}

// NewRoster builds a full roster: the local user at index 0 followed by
// synthetic participants, with teams alternating by index parity.
func NewRoster(gen Generator, opts RosterOptions) ([]Player, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	localName := opts.LocalDisplayName
	if localName == "" {
		localName = "You"
	}

	roster := make([]Player, 0, opts.MaxPlayers)
	roster = append(roster, Player{
		ID:          opts.LocalPlayerID,
		DisplayName: localName,
		Verified:    true,
		Team:        teamForIndex(0),
		IsHost:      opts.LocalIsHost,
		IsLocalUser: true,
		SkillLevel:  opts.LocalSkill,
	})

	for i := 1; i < opts.MaxPlayers; i++ {
		id, err := uuid.NewRandomFromReader(gen)
		if err != nil {
			return nil, fmt.Errorf("failed to generate player id: %w", err)
		}

		roster = append(roster, Player{
			ID:          id,
			DisplayName: syntheticNames[gen.Intn(len(syntheticNames))],
			Verified:    gen.Float64() < verifiedProbability,
			Team:        teamForIndex(i),
			IsHost:      !opts.LocalIsHost && i == 1,
			SkillLevel:  SkillLevel(gen.Intn(len(skillLevelNames))),
		})
	}

	return roster, nil
}

func teamForIndex(i int) Team {
	if i%2 == 0 {
		return TeamA
	}
	return TeamB
}

func (s Session) requireRosterChange(player Player) error {
	if err := s.requirePhase(PhaseWaiting); err != nil {
		return err
	}

	if player.Ready {
		return fmt.Errorf("%w: %s is already ready", ErrInvalidTransition, player.ID)
	}

	return nil
}

// ToggleReady flips a player's readiness. Readiness is one-way: a player who is
// already ready cannot toggle back. Once every player is ready the session
// moves to Ready on its own.
func ToggleReady(s Session, actor, playerID uuid.UUID) (Session, error) {
	i := s.playerIndex(playerID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if actor != playerID {
		return s, fmt.Errorf("%w: %s cannot change readiness of %s", ErrNotAuthorized, actor, playerID)
	}

	if err := s.requireRosterChange(s.Roster[i]); err != nil {
		return s, err
	}

	next := s.clone()
	next.Roster[i].Ready = !next.Roster[i].Ready

	return next.syncReadiness()
}

func SwitchTeam(s Session, actor, playerID uuid.UUID) (Session, error) {
	i := s.playerIndex(playerID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if actor != playerID && !s.IsHost(actor) {
		return s, fmt.Errorf("%w: %s cannot move %s", ErrNotAuthorized, actor, playerID)
	}

	if err := s.requireRosterChange(s.Roster[i]); err != nil {
		return s, err
	}

	next := s.clone()
	next.Roster[i].Team = next.Roster[i].Team.other()

	return next, nil
}

// Kick removes a player from the roster. Only the host may kick. Kicking the
// local user or the host is a no-op.
func Kick(s Session, actor, playerID uuid.UUID) (Session, error) {
	if err := s.requireHost(actor); err != nil {
		return s, err
	}

	if err := s.requirePhase(PhaseWaiting, PhaseReady); err != nil {
		return s, err
	}

	i := s.playerIndex(playerID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if playerID == s.LocalPlayerID || playerID == s.HostID || len(s.Roster) <= 1 {
		return s, nil
	}

	next := s.clone()
	next.Roster = append(next.Roster[:i], next.Roster[i+1:]...)

	return next.syncReadiness()
}

func (s Session) CountReady() int {
	count := 0
	for _, p := range s.Roster {
		if p.Ready {
			count++
		}
	}
	return count
}
