package server

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eskrenkovic/matchday/internal/config"
	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	gamesessioncommands "github.com/eskrenkovic/matchday/internal/modules/game-session/commands"
	gamesessiondomain "github.com/eskrenkovic/matchday/internal/modules/game-session/domain"
	gamesessionqueries "github.com/eskrenkovic/matchday/internal/modules/game-session/queries"
	profilecommands "github.com/eskrenkovic/matchday/internal/modules/profile/commands"
	profiledomain "github.com/eskrenkovic/matchday/internal/modules/profile/domain"
	profilequeries "github.com/eskrenkovic/matchday/internal/modules/profile/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for an application.
type HTTPServer struct {
	server   *http.Server
	db       *sql.DB
	registry *gamesession.Registry
	logger   *zap.Logger
	cancel   context.CancelFunc
}

func NewHTTPServer(config config.Config) (*HTTPServer, error) {
	baseCtx, cancel := context.WithCancel(context.Background())

	core.SetLogger(config.Logger)

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		cancel()
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		cancel()
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	registry := gamesession.NewRegistry()
	lobby := gamesession.NewLobby(
		baseCtx,
		registry,
		gamesession.NewScheduler(),
		gamesession.SettlementSinkFunc(sendSettlement),
		config.Lobby,
		config.Logger,
	)

	if err := registerHandlers(db, registry, lobby, config); err != nil {
		cancel()
		return nil, err
	}

	r := router{
		mux: chi.NewRouter(),
		middleware: []httpMiddleware{
			baseContextMiddleware(baseCtx),
			requestIDMiddleware,
			core.CorrelationIDHTTPMiddleware,
		},
	}
	r.mux.Use(middleware.Recoverer)

	// http

	identity := core.PlayerIdentityMiddleware

	r.register("POST /game-sessions", gamesessioncommands.HandleCreateGameSession, identity)
	r.register("GET /game-sessions/{id}", gamesessionqueries.HandleGetSession)
	r.register("GET /game-sessions/{id}/invite", gamesessionqueries.HandleGetInvite)

	r.register("PUT /game-sessions/{id}/actions/ready", gamesessioncommands.HandleToggleReady, identity)
	r.register("PUT /game-sessions/{id}/actions/switch-team", gamesessioncommands.HandleSwitchTeam, identity)
	r.register("PUT /game-sessions/{id}/actions/kick", gamesessioncommands.HandleKickPlayer, identity)
	r.register("PUT /game-sessions/{id}/actions/start", gamesessioncommands.HandleStartMatch, identity)
	r.register("PUT /game-sessions/{id}/actions/leave", gamesessioncommands.HandleLeaveSession, identity)
	r.register("PUT /game-sessions/{id}/actions/arbitrate", gamesessioncommands.HandleArbitrateScore, identity)

	r.register("POST /game-sessions/{id}/proposals", gamesessioncommands.HandleSubmitProposal, identity)
	r.register("POST /game-sessions/{id}/votes", gamesessioncommands.HandleCastVote, identity)

	r.register("POST /game-sessions/{id}/ratings", gamesessioncommands.HandleRatePlayer, identity)
	r.register("PUT /game-sessions/{id}/ratings/{targetId}/actions/skip", gamesessioncommands.HandleSkipRating, identity)
	r.register("POST /game-sessions/{id}/reports", gamesessioncommands.HandleReportPlayer, identity)

	r.register(
		"GET /game-sessions/{id}/participants/{playerId}/ws",
		gamesession.NewParticipantSocketHandler(registry, config.Logger),
	)

	r.register("GET /profiles/{id}", profilequeries.HandleGetProfile)
	r.register("GET /profiles/{id}/history", profilequeries.HandleGetMatchHistory)

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler: r.mux,
	}

	return &HTTPServer{
		server:   &server,
		db:       db,
		registry: registry,
		logger:   config.Logger,
		cancel:   cancel,
	}, nil
}

func registerHandlers(
	db *sql.DB,
	registry *gamesession.Registry,
	lobby *gamesession.Lobby,
	config config.Config,
) error {
	// game-session

	err := mediator.RegisterRequestHandler[gamesessioncommands.CreateSessionCommand, gamesessioncommands.CreateSessionResponse](
		gamesessioncommands.NewCreateSessionCommandHandler(lobby),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.ToggleReadyCommand, gamesessiondomain.Session](
		gamesessioncommands.NewToggleReadyCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.SwitchTeamCommand, gamesessiondomain.Session](
		gamesessioncommands.NewSwitchTeamCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.KickPlayerCommand, gamesessiondomain.Session](
		gamesessioncommands.NewKickPlayerCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.StartMatchCommand, gamesessiondomain.Session](
		gamesessioncommands.NewStartMatchCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.LeaveSessionCommand, gamesessiondomain.Session](
		gamesessioncommands.NewLeaveSessionCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.SubmitProposalCommand, gamesessiondomain.Session](
		gamesessioncommands.NewSubmitProposalCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.CastVoteCommand, gamesessiondomain.Session](
		gamesessioncommands.NewCastVoteCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.ArbitrateScoreCommand, gamesessiondomain.Session](
		gamesessioncommands.NewArbitrateScoreCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.RatePlayerCommand, gamesessiondomain.Session](
		gamesessioncommands.NewRatePlayerCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.SkipRatingCommand, gamesessiondomain.Session](
		gamesessioncommands.NewSkipRatingCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessioncommands.ReportPlayerCommand, gamesessiondomain.Session](
		gamesessioncommands.NewReportPlayerCommandHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessionqueries.GetSessionQuery, gamesessiondomain.Session](
		gamesessionqueries.NewGetSessionQueryHandler(registry),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[gamesessionqueries.GetInviteQuery, []byte](
		gamesessionqueries.NewGetInviteQueryHandler(registry, config.PublicURL),
	)
	if err != nil {
		return err
	}

	// profile

	err = mediator.RegisterRequestHandler[profilecommands.ApplySettlementCommand, core.Unit](
		profilecommands.NewApplySettlementCommandHandler(db),
	)
	if err != nil {
		return err
	}

	err = mediator.RegisterRequestHandler[profilequeries.GetProfileQuery, profiledomain.Profile](
		profilequeries.NewGetProfileQueryHandler(db),
	)
	if err != nil {
		return err
	}

	return mediator.RegisterRequestHandler[profilequeries.GetMatchHistoryQuery, []profilequeries.MatchSummary](
		profilequeries.NewGetMatchHistoryQueryHandler(db),
	)
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop drains in-flight requests, then stops every running session and closes the database.
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := s.server.Shutdown(ctx)

	running := s.registry.Len()
	s.cancel()
	s.logger.Info("stopped running sessions", zap.Int("sessions", running))

	// Syncing a stdout backed logger fails on some platforms.
	_ = s.logger.Sync()

	return errors.Join(shutdownErr, s.db.Close())
}

type httpMiddleware func(http.HandlerFunc) http.HandlerFunc

type router struct {
	mux        *chi.Mux
	middleware []httpMiddleware
}

// register mounts handler on a "METHOD /path" pattern, wrapped in the router
// middleware followed by the route specific middleware.
func (r *router) register(pattern string, handler http.HandlerFunc, middleware ...httpMiddleware) {
	method, route, found := strings.Cut(pattern, " ")
	if !found {
		panic("route pattern must be in 'METHOD /path' format: " + pattern)
	}

	h := handler

	allMiddleware := append(append([]httpMiddleware{}, r.middleware...), middleware...)

	for i := len(allMiddleware) - 1; i >= 0; i-- {
		h = allMiddleware[i](h)
	}

	r.mux.MethodFunc(method, route, h)
}

func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return middleware.RequestID(next).ServeHTTP
}

func baseContextMiddleware(baseCtx context.Context) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			baseCtx := baseCtx

			if v, ok := ctx.Value(http.ServerContextKey).(*http.Server); ok {
				baseCtx = context.WithValue(baseCtx, http.ServerContextKey, v)
			}

			if v, ok := ctx.Value(http.LocalAddrContextKey).(net.Addr); ok {
				baseCtx = context.WithValue(baseCtx, http.LocalAddrContextKey, v)
			}

			if v, ok := ctx.Value(chi.RouteCtxKey).(*chi.Context); ok {
				baseCtx = context.WithValue(baseCtx, chi.RouteCtxKey, v)
			}

			next.ServeHTTP(w, r.WithContext(baseCtx))
		}
	}
}
