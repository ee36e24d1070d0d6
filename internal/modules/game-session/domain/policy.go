package domain

import "fmt"

type SkipPolicy string

const (
	// SkipCountsAsRated records a skip as a zero-star rating.
	SkipCountsAsRated SkipPolicy = "counts-as-rated"
	// SkipLeavesUnrated advances past the player without recording anything.
	SkipLeavesUnrated SkipPolicy = "leaves-unrated"
)

func ParseSkipPolicy(s string) (SkipPolicy, error) {
	switch p := SkipPolicy(s); p {
	case SkipCountsAsRated, SkipLeavesUnrated:
		return p, nil
	default:
		return "", fmt.Errorf("unknown skip policy - '%s'", s)
	}
}

type RewardPolicy struct {
	OrganizerPoints   int
	ParticipantPoints int
	ReliabilityBonus  int
}

type Policy struct {
	// MaxRounds caps the propose/vote loop. A rejection in the last round
	// escalates to host arbitration instead of another rescore.
	MaxRounds  int
	SkipPolicy SkipPolicy
	Reward     RewardPolicy
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRounds:  3,
		SkipPolicy: SkipCountsAsRated,
		Reward: RewardPolicy{
			OrganizerPoints:   100,
			ParticipantPoints: 50,
			ReliabilityBonus:  5,
		},
	}
}

func (p Policy) Validate() error {
	if p.MaxRounds < 1 {
		return fmt.Errorf("invalid MaxRounds - %d", p.MaxRounds)
	}

	if _, err := ParseSkipPolicy(string(p.SkipPolicy)); err != nil {
		return err
	}

	if p.Reward.OrganizerPoints < 0 || p.Reward.ParticipantPoints < 0 || p.Reward.ReliabilityBonus < 0 {
		return fmt.Errorf("invalid reward policy - %+v", p.Reward)
	}

	return nil
}
