package gamesession

import (
	"context"
	"errors"
	"time"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound    = errors.New("game session not found")
	ErrCoordinatorStopped = errors.New("game session is no longer running")
)

const (
	subscriberBufferSize = 32
	settlementTimeout    = 10 * time.Second
)

type Timeouts struct {
	Ready time.Duration
	Match time.Duration
	Vote  time.Duration
}

// Settlement is the outcome handed to the profile store once rating is complete.
type Settlement struct {
	SessionID  uuid.UUID
	PlayerID   uuid.UUID
	FinalScore domain.ScoreProposal
	Rounds     int
	Ratings    map[uuid.UUID]domain.Rating
	Reward     domain.Reward
}

type SettlementSink interface {
	Settle(ctx context.Context, settlement Settlement) error
}

type SettlementSinkFunc func(ctx context.Context, settlement Settlement) error

func (f SettlementSinkFunc) Settle(ctx context.Context, settlement Settlement) error {
	return f(ctx, settlement)
}

type nopSettlementSink struct{}

func (nopSettlementSink) Settle(context.Context, Settlement) error { return nil }

type timerKind int

const (
	readyTimer timerKind = iota
	matchTimer
	voteTimer
)

type actionResult struct {
	session domain.Session
	err     error
}

type actionRequest struct {
	action domain.Action
	reply  chan actionResult
}

type CoordinatorOption func(*Coordinator)

func WithScheduler(scheduler Scheduler) CoordinatorOption {
	return func(c *Coordinator) {
		c.scheduler = scheduler
	}
}

func WithTimeouts(timeouts Timeouts) CoordinatorOption {
	return func(c *Coordinator) {
		c.timeouts = timeouts
	}
}

func WithSettlementSink(sink SettlementSink) CoordinatorOption {
	return func(c *Coordinator) {
		c.sink = sink
	}
}

func WithLogger(logger *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// Coordinator owns a single session. Local requests, remote participant
// messages and timer expiries are all funnelled through its inbox and
// applied one at a time by the goroutine started with Run.
type Coordinator struct {
	id uuid.UUID

	logger    *zap.Logger
	scheduler Scheduler
	timeouts  Timeouts
	sink      SettlementSink

	// Owned by the Run goroutine.
	session     domain.Session
	timers      map[timerKind]func()
	subscribers map[chan Notification]struct{}

	actions       chan actionRequest
	snapshots     chan chan domain.Session
	subscriptions chan chan Notification
	unsubscribes  chan chan Notification

	onClose []func()
	done    chan struct{}
}

func NewCoordinator(session domain.Session, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		id:            session.ID,
		logger:        zap.NewNop(),
		scheduler:     NewScheduler(),
		sink:          nopSettlementSink{},
		session:       session,
		timers:        make(map[timerKind]func()),
		subscribers:   make(map[chan Notification]struct{}),
		actions:       make(chan actionRequest, 64),
		snapshots:     make(chan chan domain.Session),
		subscriptions: make(chan chan Notification),
		unsubscribes:  make(chan chan Notification),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(zap.String("session_id", c.id.String()))

	return c
}

func (c *Coordinator) ID() uuid.UUID {
	return c.id
}

// Done is closed once the coordinator has stopped.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// OnClose registers fn to run when the coordinator stops. It must be called before Run.
func (c *Coordinator) OnClose(fn func()) {
	c.onClose = append(c.onClose, fn)
}

// Run processes the inbox until the session closes or ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	defer c.shutdown()

	c.arm(readyTimer, c.timeouts.Ready, domain.ExpireReadyAction{})

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("session coordinator cancelled", zap.Error(ctx.Err()))
			return

		case req := <-c.actions:
			c.apply(ctx, req)

		case reply := <-c.snapshots:
			reply <- c.session

		case ch := <-c.subscriptions:
			c.subscribers[ch] = struct{}{}
			ch <- newNotification(NotificationSnapshot, c.session)

		case ch := <-c.unsubscribes:
			if _, ok := c.subscribers[ch]; ok {
				delete(c.subscribers, ch)
				close(ch)
			}
		}

		if c.session.Closed() {
			c.logger.Info("session closed", zap.Stringer("phase", c.session.Phase))
			return
		}
	}
}

// Dispatch submits an action and waits for the resulting session.
func (c *Coordinator) Dispatch(ctx context.Context, action domain.Action) (domain.Session, error) {
	req := actionRequest{action: action, reply: make(chan actionResult, 1)}

	select {
	case c.actions <- req:
	case <-c.done:
		return domain.Session{}, ErrCoordinatorStopped
	case <-ctx.Done():
		return domain.Session{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.session, res.err
	case <-c.done:
		// The action that closed the session still gets its result.
		select {
		case res := <-req.reply:
			return res.session, res.err
		default:
			return domain.Session{}, ErrCoordinatorStopped
		}
	case <-ctx.Done():
		return domain.Session{}, ctx.Err()
	}
}

func (c *Coordinator) Snapshot(ctx context.Context) (domain.Session, error) {
	reply := make(chan domain.Session, 1)

	select {
	case c.snapshots <- reply:
	case <-c.done:
		return domain.Session{}, ErrCoordinatorStopped
	case <-ctx.Done():
		return domain.Session{}, ctx.Err()
	}

	return <-reply, nil
}

// Subscribe returns a channel receiving a snapshot followed by every
// notification produced by the session. Slow subscribers miss notifications
// rather than stall the session. The channel is closed on unsubscribe or
// when the coordinator stops.
func (c *Coordinator) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, subscriberBufferSize)

	select {
	case c.subscriptions <- ch:
	case <-c.done:
		close(ch)
		return ch, func() {}
	}

	unsubscribe := func() {
		select {
		case c.unsubscribes <- ch:
		case <-c.done:
		}
	}

	return ch, unsubscribe
}

func (c *Coordinator) submit(action domain.Action) {
	if _, err := c.Dispatch(context.Background(), action); err != nil && !errors.Is(err, ErrCoordinatorStopped) {
		c.logger.Warn("timer action rejected", zap.String("action", action.Name()), zap.Error(err))
	}
}

func (c *Coordinator) apply(ctx context.Context, req actionRequest) {
	prev := c.session

	next, err := domain.Reduce(prev, req.action)
	if err != nil {
		c.logger.Info(
			"action rejected",
			zap.String("action", req.action.Name()),
			zap.Stringer("phase", prev.Phase),
			zap.Error(err),
		)
		req.reply <- actionResult{session: prev, err: err}
		return
	}

	c.session = next

	if prev.Phase != next.Phase {
		c.logger.Info(
			"phase changed",
			zap.String("action", req.action.Name()),
			zap.Stringer("from", prev.Phase),
			zap.Stringer("to", next.Phase),
			zap.Int("round", next.Round),
		)
		c.onPhaseChanged(next)
	}

	for _, n := range notificationsFor(req.action, prev, next) {
		c.notify(n)
	}

	req.reply <- actionResult{session: next}

	if prev.Reward == nil && next.Reward != nil {
		c.settle(ctx, next)
	}
}

func (c *Coordinator) onPhaseChanged(s domain.Session) {
	switch s.Phase {
	case domain.PhaseInProgress:
		c.disarm(readyTimer)
		c.arm(matchTimer, c.timeouts.Match, domain.ElapseMatchAction{})
	case domain.PhaseVoting, domain.PhaseRevoting:
		c.arm(voteTimer, c.timeouts.Vote, domain.ExpireVoteAction{Round: s.Round})
	default:
		c.disarm(voteTimer)
	}
}

// arm schedules action after d, replacing any pending timer of the same kind.
// A non-positive d leaves the timer disabled.
func (c *Coordinator) arm(kind timerKind, d time.Duration, action domain.Action) {
	c.disarm(kind)
	if d <= 0 {
		return
	}

	c.timers[kind] = c.scheduler.Schedule(d, func() {
		c.submit(action)
	})
}

func (c *Coordinator) disarm(kind timerKind) {
	if cancel, ok := c.timers[kind]; ok {
		cancel()
		delete(c.timers, kind)
	}
}

func (c *Coordinator) notify(n Notification) {
	for ch := range c.subscribers {
		select {
		case ch <- n:
		default:
			c.logger.Debug("dropped notification for slow subscriber", zap.String("kind", string(n.Kind)))
		}
	}
}

func (c *Coordinator) settle(ctx context.Context, s domain.Session) {
	settlement := Settlement{
		SessionID:  s.ID,
		PlayerID:   s.LocalPlayerID,
		FinalScore: *s.FinalScore,
		Rounds:     s.Round,
		Ratings:    s.Ratings,
		Reward:     *s.Reward,
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settlementTimeout)
	defer cancel()

	if err := c.sink.Settle(ctx, settlement); err != nil {
		c.logger.Error("failed to settle session", zap.Error(err))
		return
	}

	c.logger.Info(
		"session settled",
		zap.Int("points", settlement.Reward.Points),
		zap.Int("reliability_delta", settlement.Reward.ReliabilityDelta),
	)
}

func (c *Coordinator) shutdown() {
	for kind := range c.timers {
		c.disarm(kind)
	}

	for ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, ch)
	}

	close(c.done)

	for _, fn := range c.onClose {
		fn()
	}
}
