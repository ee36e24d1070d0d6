package queries

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	gamesession "github.com/eskrenkovic/matchday/internal/modules/game-session"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultInviteSize = 256
	minInviteSize     = 64
	maxInviteSize     = 1024
)

// GetInviteQuery renders the join link of a running session as a QR code.
type GetInviteQuery struct {
	SessionID uuid.UUID
	Size      int
}

func (q GetInviteQuery) Validate() error {
	var sizeErr error
	if q.Size < minInviteSize || q.Size > maxInviteSize {
		sizeErr = fmt.Errorf("invalid Size - %d, expected %d-%d", q.Size, minInviteSize, maxInviteSize)
	}

	return core.Validate(requireID("SessionID", q.SessionID), sizeErr)
}

func HandleGetInvite(w http.ResponseWriter, r *http.Request) {
	sessionID, err := core.URLParamUUID(r, "id")
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	size := defaultInviteSize
	if param := r.URL.Query().Get("size"); param != "" {
		size, err = strconv.Atoi(param)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'size'"))
			return
		}
	}

	png, err := mediator.Send[GetInviteQuery, []byte](
		r.Context(),
		GetInviteQuery{SessionID: sessionID, Size: size},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteContent(w, r, "image/png", png)
}

type GetInviteQueryHandler struct {
	registry  *gamesession.Registry
	publicURL *url.URL
}

func NewGetInviteQueryHandler(registry *gamesession.Registry, publicURL *url.URL) *GetInviteQueryHandler {
	return &GetInviteQueryHandler{registry: registry, publicURL: publicURL}
}

func (h *GetInviteQueryHandler) Handle(_ context.Context, request GetInviteQuery) ([]byte, error) {
	if _, err := h.registry.Get(request.SessionID); err != nil {
		return nil, core.MapError(err, errorStatuses...)
	}

	return qrcode.Encode(InviteURL(h.publicURL, request.SessionID), qrcode.Medium, request.Size)
}

// InviteURL is the link a participant follows to join the session.
func InviteURL(publicURL *url.URL, sessionID uuid.UUID) string {
	return publicURL.JoinPath("game-sessions", sessionID.String()).String()
}

func requireID(name string, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid %s - '%s'", name, id)
	}
	return nil
}
