package config

import (
	"net/url"
	"path"
	"time"

	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"
	"github.com/eskrenkovic/matchday/internal/modules/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"
	PublicURLEnv   = "PUBLIC_URL"

	ReadyTimeoutEnv  = "READY_TIMEOUT"
	MatchDurationEnv = "MATCH_DURATION"
	VoteTimeoutEnv   = "VOTE_TIMEOUT"

	MaxScoreRoundsEnv    = "MAX_SCORE_ROUNDS"
	SkipPolicyEnv        = "SKIP_POLICY"
	OrganizerPointsEnv   = "ORGANIZER_POINTS"
	ParticipantPointsEnv = "PARTICIPANT_POINTS"
	ReliabilityBonusEnv  = "RELIABILITY_BONUS"

	SimulateParticipantsEnv       = "SIMULATE_PARTICIPANTS"
	SimulationSeedEnv             = "SIMULATION_SEED"
	SimulationAgreeProbabilityEnv = "SIMULATION_AGREE_PROBABILITY"
	SimulationMaxDelayEnv         = "SIMULATION_MAX_DELAY"
)

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string
	PublicURL      *url.URL

	Lobby gamesession.LobbyConfig
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)

	rootPath := env.MustGetString(RootPathEnv)
	publicURL := env.MustGetURL(PublicURLEnv)

	lobby, err := LoadLobby()
	if err != nil {
		return Config{}, err
	}

	migrationsPath := path.Join(rootPath, "db", "migrations")

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
		PublicURL:      publicURL,
		Lobby:          lobby,
	}, nil
}

// LoadLobby reads the session policy and timeouts. Every value is optional.
func LoadLobby() (gamesession.LobbyConfig, error) {
	defaults := domain.DefaultPolicy()

	skipPolicy, err := domain.ParseSkipPolicy(env.GetStringOrDefault(SkipPolicyEnv, string(defaults.SkipPolicy)))
	if err != nil {
		return gamesession.LobbyConfig{}, err
	}

	policy := domain.Policy{
		MaxRounds:  env.GetIntOrDefault(MaxScoreRoundsEnv, defaults.MaxRounds),
		SkipPolicy: skipPolicy,
		Reward: domain.RewardPolicy{
			OrganizerPoints:   env.GetIntOrDefault(OrganizerPointsEnv, defaults.Reward.OrganizerPoints),
			ParticipantPoints: env.GetIntOrDefault(ParticipantPointsEnv, defaults.Reward.ParticipantPoints),
			ReliabilityBonus:  env.GetIntOrDefault(ReliabilityBonusEnv, defaults.Reward.ReliabilityBonus),
		},
	}

	if err := policy.Validate(); err != nil {
		return gamesession.LobbyConfig{}, err
	}

	return gamesession.LobbyConfig{
		Policy: policy,
		Timeouts: gamesession.Timeouts{
			Ready: env.GetDurationOrDefault(ReadyTimeoutEnv, 10*time.Minute),
			Match: env.GetDurationOrDefault(MatchDurationEnv, 60*time.Minute),
			Vote:  env.GetDurationOrDefault(VoteTimeoutEnv, 5*time.Minute),
		},
		Simulation: gamesession.SimulationConfig{
			Enabled:          env.GetBoolOrDefault(SimulateParticipantsEnv, false),
			AgreeProbability: env.GetFloatOrDefault(SimulationAgreeProbabilityEnv, 0.8),
			MaxDelay:         env.GetDurationOrDefault(SimulationMaxDelayEnv, 3*time.Second),
		},
		Seed: env.GetInt64OrDefault(SimulationSeedEnv, 0),
	}, nil
}
