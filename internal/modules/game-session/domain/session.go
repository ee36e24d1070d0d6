package domain

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

type Team int

const (
	TeamA Team = iota
	TeamB
)

func (t Team) String() string {
	if t == TeamB {
		return "B"
	}
	return "A"
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(text []byte) error {
	switch string(text) {
	case "A":
		*t = TeamA
	case "B":
		*t = TeamB
	default:
		return fmt.Errorf("unknown team - '%s'", text)
	}
	return nil
}

func (t Team) other() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

type SkillLevel int

const (
	SkillCasual SkillLevel = iota
	SkillNovice
	SkillElite
)

var skillLevelNames = map[SkillLevel]string{
	SkillCasual: "casual",
	SkillNovice: "novice",
	SkillElite:  "elite",
}

func (l SkillLevel) String() string {
	return skillLevelNames[l]
}

func (l SkillLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *SkillLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseSkillLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func ParseSkillLevel(s string) (SkillLevel, error) {
	for level, name := range skillLevelNames {
		if name == s {
			return level, nil
		}
	}
	return SkillCasual, fmt.Errorf("unknown skill level - '%s'", s)
}

type Player struct {
	ID          uuid.UUID  `json:"id"`
	DisplayName string     `json:"displayName"`
	Verified    bool       `json:"verified"`
	Team        Team       `json:"team"`
	Ready       bool       `json:"ready"`
	IsHost      bool       `json:"isHost"`
	IsLocalUser bool       `json:"isLocalUser"`
	SkillLevel  SkillLevel `json:"skillLevel"`
}

type ScoreProposal struct {
	TeamAScore int `json:"teamAScore"`
	TeamBScore int `json:"teamBScore"`
	Round      int `json:"round"`
}

type Vote struct {
	PlayerID uuid.UUID `json:"playerId"`
	Agreed   bool      `json:"agreed"`
	Round    int       `json:"round"`
}

type Reward struct {
	Points           int `json:"points"`
	ReliabilityDelta int `json:"reliabilityDelta"`
}

// Session is one game lifecycle from roster formation to reward settlement.
// It is treated as an immutable value: every transition returns a new Session
// and leaves its input untouched.
type Session struct {
	ID            uuid.UUID `json:"id"`
	Phase         Phase     `json:"phase"`
	Roster        []Player  `json:"roster"`
	HostID        uuid.UUID `json:"hostId"`
	LocalPlayerID uuid.UUID `json:"localPlayerId"`

	ActiveProposal   *ScoreProposal `json:"activeProposal"`
	PreviousProposal *ScoreProposal `json:"previousProposal"`
	FinalScore       *ScoreProposal `json:"finalScore"`
	Votes            []Vote         `json:"votes"`
	Round            int            `json:"round"`

	RatingTargets []uuid.UUID          `json:"ratingTargets"`
	RatingCursor  int                  `json:"ratingCursor"`
	Ratings       map[uuid.UUID]Rating `json:"ratings"`

	Reward *Reward `json:"reward"`
	Policy Policy  `json:"-"`
}

func NewSession(id uuid.UUID, roster []Player, policy Policy) (Session, error) {
	if err := policy.Validate(); err != nil {
		return Session{}, err
	}

	s := Session{
		ID:      id,
		Phase:   PhaseWaiting,
		Roster:  slices.Clone(roster),
		Ratings: make(map[uuid.UUID]Rating),
		Policy:  policy,
	}

	locals := 0
	for _, p := range roster {
		if p.IsLocalUser {
			s.LocalPlayerID = p.ID
			locals++
		}
		if p.IsHost {
			s.HostID = p.ID
		}
	}

	if locals != 1 {
		return Session{}, fmt.Errorf("%w: expected exactly one local user, found %d", ErrInvalidRosterSize, locals)
	}

	if s.HostID == uuid.Nil {
		return Session{}, fmt.Errorf("%w: roster has no host", ErrInvalidRosterSize)
	}

	return s, nil
}

func (s Session) clone() Session {
	c := s
	c.Roster = slices.Clone(s.Roster)
	c.Votes = slices.Clone(s.Votes)
	c.RatingTargets = slices.Clone(s.RatingTargets)
	c.Ratings = maps.Clone(s.Ratings)
	if c.Ratings == nil {
		c.Ratings = make(map[uuid.UUID]Rating)
	}
	return c
}

func (s Session) playerIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.Roster, func(p Player) bool {
		return p.ID == id
	})
}

func (s Session) Player(id uuid.UUID) (Player, bool) {
	i := s.playerIndex(id)
	if i < 0 {
		return Player{}, false
	}
	return s.Roster[i], true
}

func (s Session) IsHost(id uuid.UUID) bool {
	return id != uuid.Nil && s.HostID == id
}

// IsOrganizer reports whether the local user is the one hosting the game.
func (s Session) IsOrganizer() bool {
	return s.LocalPlayerID == s.HostID
}

func (s Session) allReady() bool {
	for _, p := range s.Roster {
		if !p.Ready {
			return false
		}
	}
	return len(s.Roster) > 0
}

// Closed sessions have been cancelled or fully settled and accept no further actions.
func (s Session) Closed() bool {
	return s.Phase == PhaseCancelled || s.Reward != nil
}
