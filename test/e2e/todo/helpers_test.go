package todo_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for todo service end-to-end tests.
 * This includes container setup, account helpers and assertions.
 */

const (
	testImageName = "todo-api-test:latest"

	testSecretKey = "e2e-secret-key-that-is-long-enough-0123456789"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards. Without a docker binary the suite is skipped.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not available, skipping e2e tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Todo Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Todo Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/todo/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedLimits lifts the strict and moderate profiles so tests making many
// rapid requests do not trip them.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// setupTodoContainer starts the service with relaxed rate limits and returns
// its base URL.
func setupTodoContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, relaxedLimits)
}

// setupTodoContainerWithDefaultRateLimits keeps the production limits, for
// tests that exercise rate limiting itself.
func setupTodoContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"SECRET_KEY":    testSecretKey,
		"TODO_ISSUER":   "todo-api",
		"DATABASE_FILE": "/data/todo.db",
		"ENV":           "test",
		"LOG_LEVEL":     "info",
		"LOG_FORMAT":    "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

func passwordFor(username string) string { return username + "-Password1" }

// registerAndLogin creates an account and returns a session for it.
func registerAndLogin(t *testing.T, client *todosdk.SDKClient, username, role string) (*todosdk.UserResponse, *todosdk.Session) {
	t.Helper()

	user, err := client.Register(t.Context(), todosdk.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "E2E",
		LastName:  "User",
		Password:  passwordFor(username),
		Role:      role,
	})
	require.NoError(t, err)

	session, err := client.AuthenticateWithPassword(t.Context(), username, passwordFor(username))
	require.NoError(t, err)

	return user, session
}

// requireAPIStatus checks err is an *todosdk.APIError with the given status.
func requireAPIStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)

	var apiErr *todosdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected an APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
}
