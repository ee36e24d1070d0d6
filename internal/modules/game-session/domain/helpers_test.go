package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSeed = 42

func newTestSession(t *testing.T, maxPlayers int, localIsHost bool) Session {
	t.Helper()

	roster, err := NewRoster(NewSeededGenerator(testSeed), RosterOptions{
		MaxPlayers:       maxPlayers,
		LocalPlayerID:    uuid.New(),
		LocalDisplayName: "local",
		LocalSkill:       SkillNovice,
		LocalIsHost:      localIsHost,
	})
	require.NoError(t, err)

	s, err := NewSession(uuid.New(), roster, DefaultPolicy())
	require.NoError(t, err)

	return s
}

func readyAll(t *testing.T, s Session) Session {
	t.Helper()

	for _, p := range s.Roster {
		var err error
		s, err = ToggleReady(s, p.ID, p.ID)
		require.NoError(t, err)
	}

	require.Equal(t, PhaseReady, s.Phase)
	return s
}

func toScoring(t *testing.T, s Session) Session {
	t.Helper()

	s = readyAll(t, s)

	s, err := StartMatch(s, s.HostID)
	require.NoError(t, err)

	s, err = ElapseMatch(s)
	require.NoError(t, err)

	require.Equal(t, PhaseScoring, s.Phase)
	return s
}

// voters returns the roster members allowed to vote, in roster order.
func voters(s Session) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Roster))
	for _, p := range s.Roster {
		if !p.IsHost {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func castVotes(t *testing.T, s Session, agreed bool, ids ...uuid.UUID) Session {
	t.Helper()

	for _, id := range ids {
		var err error
		s, err = CastVote(s, id, agreed)
		require.NoError(t, err)
	}
	return s
}

func toCompleted(t *testing.T, s Session) Session {
	t.Helper()

	s = toScoring(t, s)

	s, err := SubmitProposal(s, s.HostID, 3, 1)
	require.NoError(t, err)

	threshold := MajorityThreshold(len(s.Roster))
	s = castVotes(t, s, true, voters(s)[:threshold]...)

	require.Equal(t, PhaseCompleted, s.Phase)
	return s
}
