package gamesession

import (
	"context"
	"testing"
	"time"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const simulationDelay = 10 * time.Second

func simulated(d time.Duration) bool {
	return d <= simulationDelay
}

func startSimulation(t *testing.T, c *Coordinator, agreeProbability float64) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	participants := NewSimulatedParticipants(
		domain.NewSeededGenerator(7),
		fakeSchedulerFrom(c),
		SimulationConfig{Enabled: true, AgreeProbability: agreeProbability, MaxDelay: simulationDelay},
		zap.NewNop(),
	)
	go participants.Run(ctx, c)
}

// driveSimulation fires simulated responses until done holds for the session.
func driveSimulation(t *testing.T, c *Coordinator, done func(domain.Session) bool) domain.Session {
	t.Helper()

	scheduler := fakeSchedulerFrom(c)

	for step := 0; step < 100; step++ {
		s, err := c.Snapshot(context.Background())
		require.NoError(t, err)

		if done(s) {
			return s
		}

		require.Eventually(t, func() bool {
			return scheduler.pendingWhere(simulated) > 0
		}, time.Second, time.Millisecond, "no simulated response in phase %s", s.Phase)

		scheduler.fireWhere(simulated)
	}

	t.Fatal("simulation did not converge")
	return domain.Session{}
}

func Test_SimulatedParticipants_Wait_For_Local_Player_Before_Readying(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, true)
	c, scheduler := startCoordinator(t, s)
	startSimulation(t, c, 1)

	// Act
	time.Sleep(20 * time.Millisecond)
	before := scheduler.pendingWhere(simulated)

	dispatch(t, c, domain.ToggleReadyAction{Actor: s.LocalPlayerID, PlayerID: s.LocalPlayerID})

	// Assert
	require.Equal(t, 0, before)
	require.Eventually(t, func() bool {
		return scheduler.pendingWhere(simulated) == 3
	}, time.Second, time.Millisecond)

	s = driveSimulation(t, c, func(s domain.Session) bool { return s.Phase == domain.PhaseReady })
	require.Equal(t, 4, s.CountReady())
}

func Test_SimulatedParticipants_Accept_Organizer_Proposal(t *testing.T) {
	// Arrange
	s := newTestSession(t, 6, true)
	c, scheduler := startCoordinator(t, s)
	startSimulation(t, c, 1)

	dispatch(t, c, domain.ToggleReadyAction{Actor: s.LocalPlayerID, PlayerID: s.LocalPlayerID})
	driveSimulation(t, c, func(s domain.Session) bool { return s.Phase == domain.PhaseReady })

	dispatch(t, c, domain.StartMatchAction{Actor: s.HostID})
	scheduler.fire(testTimeouts.Match)

	// Act
	dispatch(t, c, domain.SubmitProposalAction{Actor: s.HostID, TeamAScore: 21, TeamBScore: 19})
	s = driveSimulation(t, c, func(s domain.Session) bool { return s.Phase == domain.PhaseCompleted })

	// Assert
	require.Equal(t, &domain.ScoreProposal{TeamAScore: 21, TeamBScore: 19, Round: 1}, s.FinalScore)
}

func Test_SimulatedParticipants_Host_Runs_Match_Until_Arbitration(t *testing.T) {
	// Arrange
	s := newTestSession(t, 4, false)
	c, scheduler := startCoordinator(t, s)
	startSimulation(t, c, 0)

	dispatch(t, c, domain.ToggleReadyAction{Actor: s.LocalPlayerID, PlayerID: s.LocalPlayerID})

	// Act
	s = driveSimulation(t, c, func(s domain.Session) bool { return s.Phase == domain.PhaseInProgress })
	scheduler.fire(testTimeouts.Match)

	s = driveSimulation(t, c, func(s domain.Session) bool { return s.Phase == domain.PhaseCompleted })

	// Assert
	require.Equal(t, domain.DefaultPolicy().MaxRounds, s.Round)
	require.NotNil(t, s.FinalScore)
	require.False(t, s.IsOrganizer())
}
