package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

func main() {
	playersFlag := flag.Int("players", 6, "roster size (2-22)")
	organizerFlag := flag.Bool("organizer", true, "host the game yourself")
	skillFlag := flag.String("skill", "casual", "your skill level: casual, novice or elite")
	autoFlag := flag.Bool("auto", false, "play the local user automatically")
	seedFlag := flag.Int64("seed", 0, "seed for rosters and simulated players, 0 uses the clock")
	agreeFlag := flag.Float64("agree", 0.8, "probability a simulated player agrees with a proposal")
	delayFlag := flag.Duration("delay", 1500*time.Millisecond, "longest simulated response time")
	matchFlag := flag.Duration("match", 3*time.Second, "match duration")
	voteFlag := flag.Duration("vote-timeout", 20*time.Second, "time allowed for each voting round")
	verboseFlag := flag.Bool("verbose", false, "log coordinator events")
	flag.Parse()

	if err := run(options{
		players:   *playersFlag,
		organizer: *organizerFlag,
		skill:     *skillFlag,
		auto:      *autoFlag,
		seed:      *seedFlag,
		agree:     *agreeFlag,
		delay:     *delayFlag,
		match:     *matchFlag,
		vote:      *voteFlag,
		verbose:   *verboseFlag,
	}); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

type options struct {
	players   int
	organizer bool
	skill     string
	auto      bool
	seed      int64
	agree     float64
	delay     time.Duration
	match     time.Duration
	vote      time.Duration
	verbose   bool
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	skill, err := domain.ParseSkillLevel(opts.skill)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	settled := make(chan gamesession.Settlement, 1)
	sink := gamesession.SettlementSinkFunc(func(_ context.Context, s gamesession.Settlement) error {
		settled <- s
		return nil
	})

	registry := gamesession.NewRegistry()
	lobby := gamesession.NewLobby(ctx, registry, gamesession.NewScheduler(), sink, gamesession.LobbyConfig{
		Policy: domain.DefaultPolicy(),
		Timeouts: gamesession.Timeouts{
			Ready: 5 * time.Minute,
			Match: opts.match,
			Vote:  opts.vote,
		},
		Simulation: gamesession.SimulationConfig{
			Enabled:          true,
			AgreeProbability: opts.agree,
			MaxDelay:         opts.delay,
		},
		Seed: seed,
	}, logger)

	pterm.DefaultHeader.WithFullWidth().Println("matchday playtest")

	session, err := lobby.Open(domain.RosterOptions{
		MaxPlayers:       opts.players,
		LocalPlayerID:    uuid.New(),
		LocalDisplayName: "you",
		LocalSkill:       skill,
		LocalIsHost:      opts.organizer,
	})
	if err != nil {
		return err
	}

	c, err := registry.Get(session.ID)
	if err != nil {
		return err
	}

	var d decider = interactiveDecider{}
	if opts.auto {
		d = autoDecider{gen: domain.NewSeededGenerator(seed), agreeProbability: opts.agree}
	}

	last, err := play(ctx, c, d)
	if err != nil {
		return err
	}

	select {
	case s := <-settled:
		pterm.Success.Printfln(
			"Settled session %s: %d:%d after %d round(s)",
			s.SessionID, s.FinalScore.TeamAScore, s.FinalScore.TeamBScore, s.Rounds,
		)
	default:
		if last.Phase == domain.PhaseCancelled {
			return errors.New("session was cancelled")
		}
	}

	return nil
}

// play follows the session and answers every turn owed by the local player
// until the coordinator stops. It returns the last session seen.
func play(ctx context.Context, c *gamesession.Coordinator, d decider) (domain.Session, error) {
	notifications, unsubscribe := c.Subscribe()
	defer unsubscribe()

	asked := make(map[string]bool)
	var last domain.Session

	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()

		case n, ok := <-notifications:
			if !ok {
				return last, nil
			}

			last = n.Session
			render(n)

			t, owed := localTurn(n.Session)
			if !owed || asked[t.key] {
				continue
			}
			asked[t.key] = true

			if _, err := c.Dispatch(ctx, actionFor(n.Session, t, d)); err != nil {
				if errors.Is(err, gamesession.ErrCoordinatorStopped) {
					return last, nil
				}
				pterm.Warning.Println(fmt.Sprintf("action rejected: %s", err))
			}
		}
	}
}
