// file: internal/sonarr/system.go
package sonarr

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GetSystemStatus returns version and runtime information.
func (c *Client) GetSystemStatus(ctx context.Context) (*SystemStatus, error) {
	var out SystemStatus
	if err := c.get(ctx, "/system/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDiskSpace returns free and total space per mounted disk.
func (c *Client) GetDiskSpace(ctx context.Context) ([]DiskSpace, error) {
	var out []DiskSpace
	if err := c.get(ctx, "/diskspace", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHealth returns the current health check warnings and errors.
func (c *Client) GetHealth(ctx context.Context) ([]HealthCheck, error) {
	var out []HealthCheck
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StatusSource is implemented by anything that serves system status and disk space.
type StatusSource interface {
	GetSystemStatus(ctx context.Context) (*SystemStatus, error)
	GetDiskSpace(ctx context.Context) ([]DiskSpace, error)
}

// FetchStatusAndDisks loads the system status and disk space concurrently. The
// first failure cancels the other request and is returned.
func FetchStatusAndDisks(ctx context.Context, src StatusSource) (*SystemStatus, []DiskSpace, error) {
	var (
		status *SystemStatus
		disks  []DiskSpace
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = src.GetSystemStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		disks, err = src.GetDiskSpace(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return status, disks, nil
}
