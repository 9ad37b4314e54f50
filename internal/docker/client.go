// Package docker asks a Docker daemon which platform it builds for, so the
// docker_platform_id option can be filled in when the user leaves it unset.
package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

const probeTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client.
type Client struct {
	inner *client.Client
}

// NewClient connects to DOCKER_HOST when set, otherwise to the platform's
// default socket.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		var err error
		if host, err = detectDockerHost(); err != nil {
			return nil, err
		}
	}
	return NewClientWithHost(host)
}

// NewClientWithHost connects to an explicit daemon address such as
// "unix:///var/run/docker.sock" or "tcp://127.0.0.1:2375".
func NewClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for host %q: %w", host, err)
	}
	return &Client{inner: c}, nil
}

func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{"/var/run/docker.sock"})
	case "darwin":
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(paths)
	case "windows":
		return "npipe:////./pipe/docker_engine", nil
	}
	return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}

// detectUnixSocket returns the Docker host URI of the first existing socket.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of: %v", paths)
}

// Platform returns the daemon's "os/arch" platform id.
func (c *Client) Platform(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := c.inner.Ping(ctx); err != nil {
		return "", fmt.Errorf("Docker daemon is not responding: %w", err)
	}
	v, err := c.inner.ServerVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query Docker version: %w", err)
	}
	return platformID(v)
}

func platformID(v types.Version) (string, error) {
	if v.Os == "" || v.Arch == "" {
		return "", fmt.Errorf("Docker daemon did not report its platform")
	}
	return v.Os + "/" + v.Arch, nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
