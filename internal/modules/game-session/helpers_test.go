package gamesession

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTimeouts = Timeouts{
	Ready: time.Minute,
	Match: 2 * time.Minute,
	Vote:  3 * time.Minute,
}

type fakeTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &fakeTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

func (s *fakeScheduler) pending(d time.Duration) int {
	return s.pendingWhere(func(scheduled time.Duration) bool { return scheduled == d })
}

func (s *fakeScheduler) fire(d time.Duration) int {
	return s.fireWhere(func(scheduled time.Duration) bool { return scheduled == d })
}

func (s *fakeScheduler) pendingWhere(match func(time.Duration) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, t := range s.timers {
		if !t.cancelled && !t.fired && match(t.d) {
			count++
		}
	}
	return count
}

// fireWhere runs every pending timer whose duration matches and returns how many ran.
func (s *fakeScheduler) fireWhere(match func(time.Duration) bool) int {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.cancelled && !t.fired && match(t.d) {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

type mockSettlementSink struct {
	mock.Mock
}

func (m *mockSettlementSink) Settle(ctx context.Context, settlement Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func newTestSession(t *testing.T, maxPlayers int, localIsHost bool) domain.Session {
	t.Helper()

	roster, err := domain.NewRoster(domain.NewSeededGenerator(42), domain.RosterOptions{
		MaxPlayers:       maxPlayers,
		LocalPlayerID:    uuid.New(),
		LocalDisplayName: "local",
		LocalSkill:       domain.SkillCasual,
		LocalIsHost:      localIsHost,
	})
	require.NoError(t, err)

	s, err := domain.NewSession(uuid.New(), roster, domain.DefaultPolicy())
	require.NoError(t, err)

	return s
}

func startCoordinator(t *testing.T, s domain.Session, opts ...CoordinatorOption) (*Coordinator, *fakeScheduler) {
	t.Helper()

	scheduler := &fakeScheduler{}
	opts = append([]CoordinatorOption{WithScheduler(scheduler), WithTimeouts(testTimeouts)}, opts...)

	c := NewCoordinator(s, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)

	t.Cleanup(func() {
		cancel()
		<-c.Done()
	})

	// Wait for the run loop so that start-up timers are armed.
	_, err := c.Snapshot(context.Background())
	require.NoError(t, err)

	return c, scheduler
}

func dispatch(t *testing.T, c *Coordinator, action domain.Action) domain.Session {
	t.Helper()

	s, err := c.Dispatch(context.Background(), action)
	require.NoError(t, err, action.Name())
	return s
}

func readyAll(t *testing.T, c *Coordinator, s domain.Session) domain.Session {
	t.Helper()

	for _, p := range s.Roster {
		s = dispatch(t, c, domain.ToggleReadyAction{Actor: p.ID, PlayerID: p.ID})
	}

	require.Equal(t, domain.PhaseReady, s.Phase)
	return s
}

func nonHostVoters(s domain.Session) []uuid.UUID {
	var ids []uuid.UUID
	for _, p := range s.Roster {
		if !p.IsHost {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// toVoting drives the session through a played match to the first vote.
func toVoting(t *testing.T, c *Coordinator, s domain.Session) domain.Session {
	t.Helper()

	s = readyAll(t, c, s)
	dispatch(t, c, domain.StartMatchAction{Actor: s.HostID})

	require.Equal(t, 1, fakeSchedulerFrom(c).fire(testTimeouts.Match))

	s = dispatch(t, c, domain.SubmitProposalAction{Actor: s.HostID, TeamAScore: 11, TeamBScore: 7})
	require.Equal(t, domain.PhaseVoting, s.Phase)
	return s
}

func fakeSchedulerFrom(c *Coordinator) *fakeScheduler {
	return c.scheduler.(*fakeScheduler)
}
