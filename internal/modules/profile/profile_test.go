package profile_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"testing"

	"github.com/eskrenkovic/matchday/internal/modules/core"
	"github.com/eskrenkovic/matchday/internal/modules/profile/commands"
	"github.com/eskrenkovic/matchday/internal/modules/profile/domain"
	"github.com/eskrenkovic/matchday/internal/modules/profile/queries"

	"github.com/docker/go-connections/nat"
	"github.com/eskrenkovic/migrate-go"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var db *sql.DB

func databaseURL(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://matchday:matchday@%s:%s/matchday?sslmode=disable", host, port.Port())
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	// SKIP_INFRASTRUCTURE means a database is already running at DATABASE_URL.
	if os.Getenv("SKIP_INFRASTRUCTURE") == "true" {
		url, found := os.LookupEnv("DATABASE_URL")
		if !found {
			log.Println("skipping profile store tests: DATABASE_URL not set")
			return
		}

		os.Exit(run(ctx, url, m))
	}

	pgPort := nat.Port("5432/tcp")

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_USER":     "matchday",
				"POSTGRES_PASSWORD": "matchday",
				"POSTGRES_DB":       "matchday",
			},
			WaitingFor: wait.ForSQL(pgPort, "postgres", databaseURL),
		},
		Started: true,
	})
	if err != nil {
		log.Fatal(err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}

	port, err := container.MappedPort(ctx, pgPort)
	if err != nil {
		log.Fatal(err)
	}

	code := run(ctx, databaseURL(host, port), m)

	if err := container.Terminate(ctx); err != nil {
		log.Println(err)
	}

	os.Exit(code)
}

func run(ctx context.Context, url string, m *testing.M) int {
	var err error

	db, err = sql.Open("postgres", url)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := migrate.Run(ctx, db, "../../../db/migrations"); err != nil {
		log.Fatal(err)
	}

	return m.Run()
}

func settlement(playerID uuid.UUID, points int) commands.ApplySettlementCommand {
	sessionID := uuid.New()

	return commands.ApplySettlementCommand{
		SessionID:        sessionID,
		PlayerID:         playerID,
		TeamAScore:       21,
		TeamBScore:       18,
		Rounds:           2,
		Points:           points,
		ReliabilityDelta: 5,
		Ratings: []domain.PlayerRating{
			{SessionID: sessionID, RaterID: playerID, TargetID: uuid.New(), Stars: 4},
			{SessionID: sessionID, RaterID: playerID, TargetID: uuid.New(), Skipped: true},
		},
	}
}

func Test_ApplySettlement_Creates_Profile_And_History(t *testing.T) {
	// Arrange
	playerID := uuid.New()
	handler := commands.NewApplySettlementCommandHandler(db)

	// Act
	_, err := handler.Handle(context.Background(), settlement(playerID, 100))

	// Assert
	require.NoError(t, err)

	profile, err := queries.NewGetProfileQueryHandler(db).Handle(context.Background(), queries.GetProfileQuery{PlayerID: playerID})
	require.NoError(t, err)
	require.Equal(t, 100, profile.Points)
	require.Equal(t, 5, profile.Reliability)
	require.Equal(t, 1, profile.GamesPlayed)

	history, err := queries.NewGetMatchHistoryQueryHandler(db).Handle(
		context.Background(),
		queries.GetMatchHistoryQuery{PlayerID: playerID, Limit: 10},
	)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "21:18", history[0].Score)
	require.Equal(t, 2, history[0].Rounds)
}

func Test_ApplySettlement_Accumulates_Across_Sessions(t *testing.T) {
	// Arrange
	playerID := uuid.New()
	handler := commands.NewApplySettlementCommandHandler(db)

	// Act
	_, err := handler.Handle(context.Background(), settlement(playerID, 100))
	require.NoError(t, err)
	_, err = handler.Handle(context.Background(), settlement(playerID, 50))
	require.NoError(t, err)

	// Assert
	profile, err := queries.NewGetProfileQueryHandler(db).Handle(context.Background(), queries.GetProfileQuery{PlayerID: playerID})
	require.NoError(t, err)
	require.Equal(t, 150, profile.Points)
	require.Equal(t, 10, profile.Reliability)
	require.Equal(t, 2, profile.GamesPlayed)
}

func Test_ApplySettlement_Is_Idempotent_Per_Session(t *testing.T) {
	// Arrange
	playerID := uuid.New()
	handler := commands.NewApplySettlementCommandHandler(db)
	command := settlement(playerID, 100)

	// Act
	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	_, err = handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// Assert
	profile, err := queries.NewGetProfileQueryHandler(db).Handle(context.Background(), queries.GetProfileQuery{PlayerID: playerID})
	require.NoError(t, err)
	require.Equal(t, 100, profile.Points)
	require.Equal(t, 1, profile.GamesPlayed)
}

func Test_GetProfile_Unknown_Player_Returns_404(t *testing.T) {
	// Act
	_, err := queries.NewGetProfileQueryHandler(db).Handle(context.Background(), queries.GetProfileQuery{PlayerID: uuid.New()})

	// Assert
	var commandErr core.CommandError
	require.True(t, errors.As(err, &commandErr))
	require.Equal(t, http.StatusNotFound, commandErr.StatusCode)
}
