package commands

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"
	"github.com/eskrenkovic/matchday/internal/modules/game-session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type CreateSessionCommand struct {
	PlayerID    uuid.UUID         `json:"-"`
	DisplayName string            `json:"displayName"`
	MaxPlayers  int               `json:"maxPlayers"`
	SkillLevel  domain.SkillLevel `json:"skillLevel"`
	Organizer   bool              `json:"organizer"`
}

func (c CreateSessionCommand) Validate() error {
	var nameErr error
	if c.DisplayName == "" {
		nameErr = fmt.Errorf("invalid DisplayName - '%s'", c.DisplayName)
	}

	var sizeErr error
	if c.MaxPlayers < domain.MinPlayers || c.MaxPlayers > domain.MaxPlayers {
		sizeErr = fmt.Errorf("invalid MaxPlayers - '%d'", c.MaxPlayers)
	}

	return core.Validate(requireID("PlayerID", c.PlayerID), nameErr, sizeErr)
}

type CreateSessionResponse struct {
	SessionID uuid.UUID      `json:"sessionId"`
	Session   domain.Session `json:"session"`
}

func HandleCreateGameSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.PlayerID = core.Session(r.Context()).PlayerID

	response, err := mediator.Send[CreateSessionCommand, CreateSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join("/game-sessions", response.SessionID.String())
	core.WriteCreated(w, r, location, response)
}

type CreateSessionCommandHandler struct {
	lobby *gamesession.Lobby
}

func NewCreateSessionCommandHandler(lobby *gamesession.Lobby) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{lobby}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (CreateSessionResponse, error) {
	session, err := h.lobby.Open(domain.RosterOptions{
		MaxPlayers:       request.MaxPlayers,
		LocalPlayerID:    request.PlayerID,
		LocalDisplayName: request.DisplayName,
		LocalSkill:       request.SkillLevel,
		LocalIsHost:      request.Organizer,
	})
	if err != nil {
		return CreateSessionResponse{}, core.MapError(err, errorStatuses...)
	}

	return CreateSessionResponse{SessionID: session.ID, Session: session}, nil
}
