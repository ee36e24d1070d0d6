package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rateEveryone(t *testing.T, s Session) Session {
	t.Helper()

	for !s.RatingComplete() {
		target, _ := s.CurrentRatingTarget()

		var err error
		s, err = Rate(s, target, 5)
		require.NoError(t, err)
	}
	return s
}

func Test_Settle_Pays_Organizer_Bonus(t *testing.T) {
	// Arrange
	s := toCompleted(t, newTestSession(t, 4, true))

	// Act
	s = rateEveryone(t, s)

	// Assert
	require.Equal(t, &Reward{Points: 100, ReliabilityDelta: 5}, s.Reward)
	require.True(t, s.Closed())
}

func Test_Settle_Pays_Participant_Bonus(t *testing.T) {
	// Arrange
	s := toCompleted(t, newTestSession(t, 4, false))

	// Act
	s = rateEveryone(t, s)

	// Assert
	require.Equal(t, &Reward{Points: 50, ReliabilityDelta: 5}, s.Reward)
}

func Test_Settle_Ignores_Vote_History(t *testing.T) {
	// Arrange
	quick := toCompleted(t, newTestSession(t, 4, true))

	slow := toScoring(t, newTestSession(t, 4, true))
	ids := voters(slow)

	slow, err := SubmitProposal(slow, slow.HostID, 1, 1)
	require.NoError(t, err)
	slow = castVotes(t, slow, false, ids[2], ids[0])

	slow, err = SubmitProposal(slow, slow.HostID, 2, 1)
	require.NoError(t, err)
	slow = castVotes(t, slow, true, ids[1], ids[2])

	// Act
	quickReward := Settle(quick)
	slowReward := Settle(slow)

	// Assert
	require.Equal(t, quickReward, slowReward)
}

func Test_Settle_Uses_Policy_Values(t *testing.T) {
	// Arrange
	s := newTestSession(t, 2, true)
	s.Policy.Reward = RewardPolicy{OrganizerPoints: 7, ParticipantPoints: 3, ReliabilityBonus: 1}

	// Act
	reward := Settle(s)

	// Assert
	require.Equal(t, Reward{Points: 7, ReliabilityDelta: 1}, reward)
}

func Test_Policy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Policy)
		valid  bool
	}{
		{"default", func(*Policy) {}, true},
		{"zero rounds", func(p *Policy) { p.MaxRounds = 0 }, false},
		{"unknown skip policy", func(p *Policy) { p.SkipPolicy = "ignore" }, false},
		{"negative points", func(p *Policy) { p.Reward.OrganizerPoints = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			policy := DefaultPolicy()
			tt.modify(&policy)

			// Act
			err := policy.Validate()

			// Assert
			require.Equal(t, tt.valid, err == nil)
		})
	}
}
