package gamesession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = time.Minute
	pingPeriod     = pongWait * 9 / 10
	outboxSize     = 16
	maxMessageSize = 4096
)

var errUnknownMessage = errors.New("unknown message type")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ParticipantMessage is what a remote client sends to act in a session.
type ParticipantMessage struct {
	Type       string    `json:"type"`
	PlayerID   uuid.UUID `json:"playerId"`
	Agreed     bool      `json:"agreed"`
	TeamAScore int       `json:"teamAScore"`
	TeamBScore int       `json:"teamBScore"`
}

// Action translates the message into a domain action taken by actor.
func (m ParticipantMessage) Action(actor uuid.UUID) (domain.Action, error) {
	switch m.Type {
	case "ready":
		return domain.ToggleReadyAction{Actor: actor, PlayerID: actor}, nil
	case "switch_team":
		target := m.PlayerID
		if target == uuid.Nil {
			target = actor
		}
		return domain.SwitchTeamAction{Actor: actor, PlayerID: target}, nil
	case "kick":
		return domain.KickAction{Actor: actor, PlayerID: m.PlayerID}, nil
	case "start":
		return domain.StartMatchAction{Actor: actor}, nil
	case "propose":
		return domain.SubmitProposalAction{Actor: actor, TeamAScore: m.TeamAScore, TeamBScore: m.TeamBScore}, nil
	case "vote":
		return domain.CastVoteAction{PlayerID: actor, Agreed: m.Agreed}, nil
	case "arbitrate":
		return domain.ArbitrateAction{Actor: actor, TeamAScore: m.TeamAScore, TeamBScore: m.TeamBScore}, nil
	case "leave":
		return domain.LeaveAction{PlayerID: actor}, nil
	default:
		return nil, fmt.Errorf("%w - '%s'", errUnknownMessage, m.Type)
	}
}

type participantError struct {
	Kind  string `json:"kind"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error"`
}

// NewParticipantSocketHandler upgrades the request to a websocket through
// which a remote roster member takes part in a running session.
func NewParticipantSocketHandler(registry *Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid session id - '%s'", chi.URLParam(r, "id")))
			return
		}

		playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid player id - '%s'", chi.URLParam(r, "playerId")))
			return
		}

		c, err := registry.Get(sessionID)
		if err != nil {
			core.WriteResponse(w, r, http.StatusNotFound, err)
			return
		}

		session, err := c.Snapshot(r.Context())
		if err != nil {
			core.WriteResponse(w, r, http.StatusNotFound, err)
			return
		}

		player, found := session.Player(playerID)
		if !found {
			core.WriteResponse(w, r, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID))
			return
		}

		if player.IsLocalUser {
			core.WriteResponse(w, r, http.StatusForbidden, fmt.Errorf("%w: the local user acts over http", domain.ErrNotAuthorized))
			return
		}

		socket, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", zap.Error(err))
			return
		}

		participant := newRemoteParticipant(playerID, socket, c, logger.With(
			zap.String("session_id", sessionID.String()),
			zap.String("player_id", playerID.String()),
		))

		go participant.writePump()
		participant.readPump(r.Context())
	}
}

type remoteParticipant struct {
	playerID    uuid.UUID
	socket      *websocket.Conn
	coordinator *Coordinator
	limiter     *rate.Limiter
	logger      *zap.Logger

	outbox chan participantError
	closed chan struct{}
}

func newRemoteParticipant(
	playerID uuid.UUID,
	socket *websocket.Conn,
	coordinator *Coordinator,
	logger *zap.Logger,
) *remoteParticipant {
	socket.SetReadLimit(maxMessageSize)
	_ = socket.SetReadDeadline(time.Now().Add(pongWait))
	socket.SetPongHandler(func(string) error {
		return socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &remoteParticipant{
		playerID:    playerID,
		socket:      socket,
		coordinator: coordinator,
		limiter:     rate.NewLimiter(1, 5),
		logger:      logger,
		outbox:      make(chan participantError, outboxSize),
		closed:      make(chan struct{}),
	}
}

func (p *remoteParticipant) readPump(ctx context.Context) {
	defer close(p.closed)

	for {
		var msg ParticipantMessage
		if err := p.socket.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("participant connection lost", zap.Error(err))
			}
			return
		}

		if !p.limiter.Allow() {
			p.reject(msg.Type, errors.New("rate limit exceeded"))
			continue
		}

		action, err := msg.Action(p.playerID)
		if err != nil {
			p.reject(msg.Type, err)
			continue
		}

		if _, err := p.coordinator.Dispatch(ctx, action); err != nil {
			p.reject(msg.Type, err)
			if errors.Is(err, ErrCoordinatorStopped) {
				return
			}
		}
	}
}

func (p *remoteParticipant) writePump() {
	notifications, unsubscribe := p.coordinator.Subscribe()
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		unsubscribe()
		_ = p.socket.Close()
	}()

	for {
		select {
		case n, ok := <-notifications:
			if !ok {
				p.close("session closed")
				return
			}
			if err := p.write(n); err != nil {
				return
			}

		case e := <-p.outbox:
			if err := p.write(e); err != nil {
				return
			}

		case <-ticker.C:
			_ = p.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.closed:
			return
		}
	}
}

func (p *remoteParticipant) write(v interface{}) error {
	_ = p.socket.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.socket.WriteJSON(v); err != nil {
		p.logger.Warn("failed to write to participant", zap.Error(err))
		return err
	}
	return nil
}

func (p *remoteParticipant) close(reason string) {
	_ = p.socket.SetWriteDeadline(time.Now().Add(writeWait))
	_ = p.socket.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
}

func (p *remoteParticipant) reject(messageType string, err error) {
	select {
	case p.outbox <- participantError{Kind: "error", Type: messageType, Error: err.Error()}:
	default:
		p.logger.Debug("dropped error for slow participant", zap.Error(err))
	}
}
