package gamesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxSimulatedScore = 21

type SimulationConfig struct {
	Enabled bool
	// AgreeProbability is the chance a simulated voter accepts a proposal.
	AgreeProbability float64
	// MaxDelay bounds how long a simulated player takes to respond.
	MaxDelay time.Duration
}

// SimulatedParticipants plays every remote roster member of a session. It
// follows the session's notifications and answers them after a random delay,
// the same way a remote client would.
type SimulatedParticipants struct {
	gen       domain.Generator
	scheduler Scheduler
	config    SimulationConfig
	logger    *zap.Logger

	// Owned by the Run goroutine.
	planned map[string]struct{}
	cancels []func()
}

func NewSimulatedParticipants(
	gen domain.Generator,
	scheduler Scheduler,
	config SimulationConfig,
	logger *zap.Logger,
) *SimulatedParticipants {
	return &SimulatedParticipants{
		gen:       gen,
		scheduler: scheduler,
		config:    config,
		logger:    logger,
		planned:   make(map[string]struct{}),
	}
}

func (p *SimulatedParticipants) Run(ctx context.Context, c *Coordinator) {
	notifications, unsubscribe := c.Subscribe()
	defer unsubscribe()

	defer func() {
		for _, cancel := range p.cancels {
			cancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			p.react(c, n.Session)
		}
	}
}

func (p *SimulatedParticipants) react(c *Coordinator, s domain.Session) {
	remoteHost := !s.IsOrganizer()

	switch s.Phase {
	case domain.PhaseWaiting:
		// Remote players only start readying up once the local user has.
		local, _ := s.Player(s.LocalPlayerID)
		if !local.Ready {
			return
		}

		for _, player := range s.Roster {
			if player.IsLocalUser || player.Ready {
				continue
			}
			p.plan(c, fmt.Sprintf("ready:%s", player.ID), domain.ToggleReadyAction{
				Actor:    player.ID,
				PlayerID: player.ID,
			})
		}

	case domain.PhaseReady:
		if remoteHost {
			p.plan(c, "start", domain.StartMatchAction{Actor: s.HostID})
		}

	case domain.PhaseScoring, domain.PhaseRescoring:
		if remoteHost {
			p.plan(c, fmt.Sprintf("propose:%d", s.Round+1), domain.SubmitProposalAction{
				Actor:      s.HostID,
				TeamAScore: p.gen.Intn(maxSimulatedScore + 1),
				TeamBScore: p.gen.Intn(maxSimulatedScore + 1),
			})
		}

	case domain.PhaseVoting, domain.PhaseRevoting:
		for _, voter := range remoteVoters(s) {
			p.plan(c, fmt.Sprintf("vote:%d:%s", s.Round, voter), domain.CastVoteAction{
				PlayerID: voter,
				Agreed:   p.gen.Float64() < p.config.AgreeProbability,
			})
		}

	case domain.PhaseArbitration:
		if remoteHost {
			final := domain.ScoreProposal{}
			if s.PreviousProposal != nil {
				final = *s.PreviousProposal
			}
			p.plan(c, "arbitrate", domain.ArbitrateAction{
				Actor:      s.HostID,
				TeamAScore: final.TeamAScore,
				TeamBScore: final.TeamBScore,
			})
		}
	}
}

// plan schedules action once per key after a random delay.
func (p *SimulatedParticipants) plan(c *Coordinator, key string, action domain.Action) {
	if _, ok := p.planned[key]; ok {
		return
	}
	p.planned[key] = struct{}{}

	cancel := p.scheduler.Schedule(p.delay(), func() {
		_, err := c.Dispatch(context.Background(), action)
		if err != nil && !errors.Is(err, ErrCoordinatorStopped) {
			p.logger.Debug("simulated action rejected", zap.String("action", action.Name()), zap.Error(err))
		}
	})
	p.cancels = append(p.cancels, cancel)
}

func (p *SimulatedParticipants) delay() time.Duration {
	if p.config.MaxDelay <= 0 {
		return 0
	}

	floor := p.config.MaxDelay / 4
	spread := int((p.config.MaxDelay - floor) / time.Millisecond)

	return floor + time.Duration(p.gen.Intn(spread+1))*time.Millisecond
}

// remoteVoters returns the remote, non-host players yet to vote this round.
func remoteVoters(s domain.Session) []uuid.UUID {
	voted := make(map[uuid.UUID]bool, len(s.Votes))
	for _, v := range s.Votes {
		voted[v.PlayerID] = true
	}

	var voters []uuid.UUID
	for _, player := range s.Roster {
		if player.IsLocalUser || player.IsHost || voted[player.ID] {
			continue
		}
		voters = append(voters, player.ID)
	}

	return voters
}
