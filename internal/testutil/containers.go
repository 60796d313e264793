package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a running Postgres test container.
type PostgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

// DSNEnv returns the container's connection settings as DB_* environment
// variable pairs.
func (p *PostgresContainer) DSNEnv() map[string]string {
	return map[string]string{
		"DB_TYPE":     "postgres",
		"DB_HOST":     p.Host,
		"DB_PORT":     p.Port,
		"DB_DATABASE": p.Database,
		"DB_USER":     p.User,
		"DB_PASSWORD": p.Password,
	}
}

// Terminate stops and removes the container.
func (p *PostgresContainer) Terminate(t *testing.T) {
	ctx := context.Background()
	if p.Container != nil {
		if err := p.Container.Terminate(ctx); err != nil {
			if t != nil {
				t.Logf("Failed to terminate Postgres container: %v", err)
			}
		}
	}
}

// StartPostgres launches a disposable Postgres container for integration
// tests.
func StartPostgres(t *testing.T) (*PostgresContainer, error) {
	ctx := context.Background()

	const (
		database = "recycling_test"
		user     = "recycling"
		password = "recycling_test_pw"
	)

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to create port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_DB":       database,
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to resolve container host: %w", err)
	}
	mappedPort, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to resolve container port: %w", err)
	}

	pc := &PostgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Port(),
		Database:  database,
		User:      user,
		Password:  password,
	}

	if t != nil {
		t.Cleanup(func() { pc.Terminate(t) })
	}

	return pc, nil
}
