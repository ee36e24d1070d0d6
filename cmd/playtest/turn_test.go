package main

import (
	"testing"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, localIsHost bool) domain.Session {
	t.Helper()

	roster, err := domain.NewRoster(domain.NewSeededGenerator(1), domain.RosterOptions{
		MaxPlayers:       3,
		LocalPlayerID:    uuid.New(),
		LocalDisplayName: "you",
		LocalSkill:       domain.SkillCasual,
		LocalIsHost:      localIsHost,
	})
	require.NoError(t, err)

	s, err := domain.NewSession(uuid.New(), roster, domain.DefaultPolicy())
	require.NoError(t, err)

	return s
}

func apply(t *testing.T, s domain.Session, actions ...domain.Action) domain.Session {
	t.Helper()

	for _, a := range actions {
		var err error
		s, err = domain.Reduce(s, a)
		require.NoError(t, err, a.Name())
	}
	return s
}

func readyAll(t *testing.T, s domain.Session) domain.Session {
	t.Helper()

	for _, p := range s.Roster {
		s = apply(t, s, domain.ToggleReadyAction{Actor: p.ID, PlayerID: p.ID})
	}
	return s
}

func Test_LocalTurn_Asks_To_Ready_Up_Once_Waiting(t *testing.T) {
	// Arrange
	s := newSession(t, true)

	// Act
	before, owedBefore := localTurn(s)
	s = apply(t, s, domain.ToggleReadyAction{Actor: s.LocalPlayerID, PlayerID: s.LocalPlayerID})
	_, owedAfter := localTurn(s)

	// Assert
	require.True(t, owedBefore)
	require.Equal(t, turnReady, before.kind)
	require.False(t, owedAfter)
}

func Test_LocalTurn_Host_Starts_And_Proposes(t *testing.T) {
	// Arrange
	s := readyAll(t, newSession(t, true))

	// Act
	start, _ := localTurn(s)
	s = apply(t, s, domain.StartMatchAction{Actor: s.HostID}, domain.ElapseMatchAction{})
	propose, _ := localTurn(s)

	// Assert
	require.Equal(t, turnStart, start.kind)
	require.Equal(t, turnPropose, propose.kind)
	require.Equal(t, "propose:1", propose.key)
}

func Test_LocalTurn_Participant_Votes_Once_Per_Round(t *testing.T) {
	// Arrange
	s := readyAll(t, newSession(t, false))
	s = apply(t, s,
		domain.StartMatchAction{Actor: s.HostID},
		domain.ElapseMatchAction{},
		domain.SubmitProposalAction{Actor: s.HostID, TeamAScore: 3, TeamBScore: 1},
	)

	// Act
	vote, owed := localTurn(s)
	action := actionFor(s, vote, autoDecider{gen: domain.NewSeededGenerator(1), agreeProbability: 0})

	// Assert
	require.True(t, owed)
	require.Equal(t, turnVote, vote.kind)
	require.Equal(t, domain.CastVoteAction{PlayerID: s.LocalPlayerID, Agreed: false}, action)
}

func Test_LocalTurn_Rates_Each_Target(t *testing.T) {
	// Arrange
	s := readyAll(t, newSession(t, true))
	s = apply(t, s,
		domain.StartMatchAction{Actor: s.HostID},
		domain.ElapseMatchAction{},
		domain.SubmitProposalAction{Actor: s.HostID, TeamAScore: 3, TeamBScore: 1},
	)
	for _, p := range s.Roster {
		if !p.IsHost && s.Phase != domain.PhaseCompleted {
			s = apply(t, s, domain.CastVoteAction{PlayerID: p.ID, Agreed: true})
		}
	}
	require.Equal(t, domain.PhaseCompleted, s.Phase)

	d := autoDecider{gen: domain.NewSeededGenerator(3), agreeProbability: 1}

	// Act
	var keys []string
	for {
		rate, owed := localTurn(s)
		if !owed {
			break
		}
		keys = append(keys, rate.key)
		s = apply(t, s, actionFor(s, rate, d))
	}

	// Assert
	require.Len(t, keys, 2)
	require.NotEqual(t, keys[0], keys[1])
	require.NotNil(t, s.Reward)
}

func Test_ParseScore(t *testing.T) {
	tests := []struct {
		input string
		a, b  int
		valid bool
	}{
		{"21:17", 21, 17, true},
		{" 3 : 4 ", 3, 4, true},
		{"21-17", 0, 0, false},
		{"a:1", 0, 0, false},
		{"-1:2", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			// Act
			a, b, err := parseScore(tt.input)

			// Assert
			require.Equal(t, tt.valid, err == nil)
			require.Equal(t, tt.a, a)
			require.Equal(t, tt.b, b)
		})
	}
}
