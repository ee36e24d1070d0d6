package gamesession

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LobbyConfig struct {
	Policy     domain.Policy
	Timeouts   Timeouts
	Simulation SimulationConfig
	// Seed makes session ids, rosters and simulated behaviour reproducible.
	// Zero seeds from the clock.
	Seed int64
}

// Lobby opens new sessions: it builds the roster, starts the session's
// coordinator and, when enabled, the simulated participants filling it.
type Lobby struct {
	ctx       context.Context
	registry  *Registry
	scheduler Scheduler
	sink      SettlementSink
	config    LobbyConfig
	logger    *zap.Logger

	mu  sync.Mutex
	gen *rand.Rand
}

func NewLobby(
	ctx context.Context,
	registry *Registry,
	scheduler Scheduler,
	sink SettlementSink,
	config LobbyConfig,
	logger *zap.Logger,
) *Lobby {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Lobby{
		ctx:       ctx,
		registry:  registry,
		scheduler: scheduler,
		sink:      sink,
		config:    config,
		logger:    logger,
		gen:       domain.NewSeededGenerator(seed),
	}
}

func (l *Lobby) Open(opts domain.RosterOptions) (domain.Session, error) {
	if err := opts.Validate(); err != nil {
		return domain.Session{}, err
	}

	l.mu.Lock()
	rosterSeed, simulationSeed := l.gen.Int63(), l.gen.Int63()
	sessionID, err := uuid.NewRandomFromReader(l.gen)
	l.mu.Unlock()
	if err != nil {
		return domain.Session{}, err
	}

	roster, err := domain.NewRoster(domain.NewSeededGenerator(rosterSeed), opts)
	if err != nil {
		return domain.Session{}, err
	}

	session, err := domain.NewSession(sessionID, roster, l.config.Policy)
	if err != nil {
		return domain.Session{}, err
	}

	c := NewCoordinator(
		session,
		WithScheduler(l.scheduler),
		WithTimeouts(l.config.Timeouts),
		WithSettlementSink(l.sink),
		WithLogger(l.logger),
	)
	l.registry.Start(l.ctx, c)

	if l.config.Simulation.Enabled {
		participants := NewSimulatedParticipants(
			domain.NewSeededGenerator(simulationSeed),
			l.scheduler,
			l.config.Simulation,
			l.logger.With(zap.String("session_id", sessionID.String())),
		)
		go participants.Run(l.ctx, c)
	}

	l.logger.Info(
		"session opened",
		zap.String("session_id", sessionID.String()),
		zap.Int("max_players", opts.MaxPlayers),
		zap.Bool("organizer", opts.LocalIsHost),
	)

	return session, nil
}
