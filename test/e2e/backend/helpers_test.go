//go:build e2e

package backend_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/smetchik/backend/pkg/backendsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testImageName = "smetchik-backend-test:latest"

// TestMain builds the image once for the whole package.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building backend Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up backend Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/backend/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// startContainer runs the image with env and returns one base URL per
// requested port, in order.
func startContainer(t *testing.T, env map[string]string, ports ...string) []string {
	t.Helper()
	ctx := context.Background()

	exposed := make([]string, 0, len(ports))
	for _, p := range ports {
		exposed = append(exposed, p+"/tcp")
	}

	base := map[string]string{
		"ENV":             "test",
		"LOG_LEVEL":       "info",
		"LOG_FORMAT":      "json",
		"PASSWORD_PEPPER": "e2e-pepper",
	}
	for k, v := range env {
		base[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: exposed,
			Env:          base,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort(nat.Port(exposed[0])).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	urls := make([]string, 0, len(ports))
	for _, p := range ports {
		mapped, err := container.MappedPort(ctx, nat.Port(p))
		require.NoError(t, err)
		urls = append(urls, fmt.Sprintf("http://%s:%s", host, mapped.Port()))
	}
	return urls
}

// setupSingle starts the single-listener deployment.
func setupSingle(t *testing.T, driver string) *backendsdk.Client {
	t.Helper()

	urls := startContainer(t, map[string]string{"SERVER_MODE": "single", "PORT": "3000", "STORE_DRIVER": driver}, "3000")
	return backendsdk.NewClient(urls[0])
}

func assertHealthy(t *testing.T, health *backendsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, backendsdk.IsStatus(err, status), "expected status %d, got: %v", status, err)
}

func uniqueLogin(t *testing.T) string {
	return strings.ToLower(strings.NewReplacer("/", "-", " ", "-").Replace(t.Name()))
}
