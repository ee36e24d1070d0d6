package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_StartMatch_And_ElapseMatch_Move_Ready_Session_To_Scoring(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, true)

	// Act
	s = readyAll(t, s)

	s, err := StartMatch(s, s.HostID)
	require.NoError(t, err)
	require.Equal(t, PhaseInProgress, s.Phase)

	s, err = ElapseMatch(s)

	// Assert
	require.NoError(t, err)
	require.Equal(t, PhaseScoring, s.Phase)
}

func Test_StartMatch_Requires_Host(t *testing.T) {
	// Arrange
	s := readyAll(t, newTestSession(t, 4, true))

	// Act
	_, err := StartMatch(s, s.Roster[1].ID)

	// Assert
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func Test_StartMatch_Fails_Before_Ready(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, true)

	// Act
	_, err := StartMatch(s, s.HostID)

	// Assert
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func Test_ElapseMatch_Fails_Out_Of_Order(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, true)

	// Act
	_, err := ElapseMatch(s)

	// Assert
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func Test_CanTransition_Rejects_Skipping_Phases(t *testing.T) {
	require.True(t, CanTransition(PhaseWaiting, PhaseReady))
	require.True(t, CanTransition(PhaseVoting, PhaseRescoring))
	require.True(t, CanTransition(PhaseRevoting, PhaseCompleted))

	require.False(t, CanTransition(PhaseWaiting, PhaseInProgress))
	require.False(t, CanTransition(PhaseScoring, PhaseCompleted))
	require.False(t, CanTransition(PhaseRescoring, PhaseVoting))
	require.False(t, CanTransition(PhaseInProgress, PhaseCancelled))
	require.False(t, CanTransition(PhaseCancelled, PhaseWaiting))
}

func Test_Leave_Is_Locked_During_Match(t *testing.T) {
	// Arrange
	s := readyAll(t, newTestSession(t, 4, true))

	s, err := StartMatch(s, s.HostID)
	require.NoError(t, err)

	inProgress := s

	s, err = ElapseMatch(s)
	require.NoError(t, err)
	scoring := s

	s, err = SubmitProposal(s, s.HostID, 1, 0)
	require.NoError(t, err)
	voting := s

	for _, locked := range []Session{inProgress, scoring, voting} {
		// Act
		_, err := Leave(locked, locked.LocalPlayerID)

		// Assert
		require.ErrorIs(t, err, ErrSessionLocked, "phase %s", locked.Phase)
	}
}

func Test_Leave_By_Local_Player_Cancels_Session(t *testing.T) {
	for _, s := range []Session{newTestSession(t, 4, true), readyAll(t, newTestSession(t, 4, true))} {
		// Act
		next, err := Leave(s, s.LocalPlayerID)

		// Assert
		require.NoError(t, err)
		require.Equal(t, PhaseCancelled, next.Phase)
		require.True(t, next.Closed())
	}
}

func Test_Leave_By_Remote_Host_Hands_Over_Hosting(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, false)
	remoteHost := s.HostID
	require.NotEqual(t, s.LocalPlayerID, remoteHost)

	// Act
	next, err := Leave(s, remoteHost)

	// Assert
	require.NoError(t, err)
	require.Len(t, next.Roster, 3)
	require.Equal(t, s.LocalPlayerID, next.HostID)
	require.True(t, next.Roster[0].IsHost)
}

func Test_Ready_Session_Stays_Ready_When_Players_Leave_Or_Are_Kicked(t *testing.T) {
	// Arrange
	s := readyAll(t, newTestSession(t, 4, true))

	// Act
	kicked, err := Kick(s, s.HostID, s.Roster[1].ID)
	require.NoError(t, err)

	left, err := Leave(kicked, kicked.Roster[1].ID)
	require.NoError(t, err)

	// Assert
	require.Equal(t, PhaseReady, kicked.Phase)
	require.Equal(t, PhaseReady, left.Phase)
	require.Len(t, left.Roster, 2)
}

func Test_Leave_Unknown_Player_Fails(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, true)

	// Act
	_, err := Leave(s, uuid.New())

	// Assert
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func Test_ExpireReady_Cancels_Waiting_Session_Only(t *testing.T) {
	// Arrange
	waiting := newTestSession(t, 4, true)
	ready := readyAll(t, newTestSession(t, 4, true))

	// Act
	expired, err := ExpireReady(waiting)
	require.NoError(t, err)

	untouched, err := ExpireReady(ready)
	require.NoError(t, err)

	// Assert
	require.Equal(t, PhaseCancelled, expired.Phase)
	require.Equal(t, PhaseReady, untouched.Phase)
}

func Test_Reduce_Rejects_Actions_On_Closed_Session(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, true)

	s, err := Leave(s, s.LocalPlayerID)
	require.NoError(t, err)

	// Act
	_, actionErr := Reduce(s, ToggleReadyAction{Actor: s.LocalPlayerID, PlayerID: s.LocalPlayerID})
	same, expiryErr := Reduce(s, ExpireReadyAction{})

	// Assert
	require.ErrorIs(t, actionErr, ErrInvalidTransition)
	require.NoError(t, expiryErr)
	require.Equal(t, PhaseCancelled, same.Phase)
}
