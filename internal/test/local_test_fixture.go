package test

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// LocalTestFixture runs the docker-compose stack integration tests depend on.
// With SKIP_INFRASTRUCTURE=true the stack is assumed to be running already.
type LocalTestFixture struct {
	compose testcontainers.DockerCompose
	skip    bool
}

func NewLocalTestFixture(dockerComposePath string, strategies map[string]wait.Strategy) LocalTestFixture {
	compose := testcontainers.NewLocalDockerCompose(
		[]string{dockerComposePath},
		uuid.New().String(),
	)

	for service, strategy := range strategies {
		compose.WaitForService(service, strategy)
	}

	return LocalTestFixture{
		compose: compose.WithCommand([]string{"up", "-d"}),
		skip:    os.Getenv("SKIP_INFRASTRUCTURE") == "true",
	}
}

func (f *LocalTestFixture) Start() error {
	if f.skip {
		return nil
	}

	if execErr := f.compose.Invoke(); execErr.Error != nil {
		return fmt.Errorf("failed to start test infrastructure: %w", execErr.Error)
	}

	return nil
}

func (f *LocalTestFixture) Stop() error {
	if f.skip {
		return nil
	}

	if execErr := f.compose.Down(); execErr.Error != nil {
		return fmt.Errorf("failed to stop test infrastructure: %w", execErr.Error)
	}

	return nil
}
