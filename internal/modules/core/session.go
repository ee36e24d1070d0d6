package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

type ContextKey string

const (
	SessionContextKey ContextKey = "session"

	PlayerIDHeader = "Player-Id"
)

// ContextSession identifies the player acting in the current request.
type ContextSession struct {
	PlayerID uuid.UUID
}

func Session(ctx context.Context) ContextSession {
	session, ok := ctx.Value(SessionContextKey).(ContextSession)
	if !ok {
		return ContextSession{}
	}

	return session
}

func WithSession(ctx context.Context, session ContextSession) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// PlayerIdentityMiddleware reads the acting player from the Player-Id header.
// Requests without a valid id are rejected.
func PlayerIdentityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(PlayerIDHeader)
		if header == "" {
			WriteUnauthorized(w, r, fmt.Sprintf("missing '%s' header", PlayerIDHeader))
			return
		}

		playerID, err := uuid.Parse(header)
		if err != nil || playerID == uuid.Nil {
			WriteUnauthorized(w, r, fmt.Sprintf("invalid '%s' header - '%s'", PlayerIDHeader, header))
			return
		}

		ctx := WithSession(r.Context(), ContextSession{PlayerID: playerID})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
