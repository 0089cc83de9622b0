// Package server wires configuration, the Sonarr client and the MCP registries
// into a running stdio server.
// file: cmd/server/server_runner.go
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/config"
	"github.com/dkoosis/sonarr-mcp/internal/credentials"
	"github.com/dkoosis/sonarr-mcp/internal/fsm"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/metrics"
	"github.com/dkoosis/sonarr-mcp/internal/resources"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	"github.com/dkoosis/sonarr-mcp/internal/tools"
	"golang.org/x/sync/errgroup"
)

// connectTimeout bounds the startup connection test, retries included.
const connectTimeout = 2 * time.Minute

// Instance is a fully assembled server that has passed its connection test.
type Instance struct {
	Config    *config.Config
	Client    *sonarr.Client
	Lifecycle *fsm.Lifecycle
	Tools     *mcp.ToolManager
	Resources *mcp.ResourceManager
	Server    *mcp.Server
	// Metrics is nil unless a metrics address is configured.
	Metrics *metrics.Collector

	logger logging.Logger
}

// Connection converts the configured Sonarr settings into a client descriptor.
func Connection(cfg config.SonarrConfig) sonarr.ConnectionConfig {
	return sonarr.ConnectionConfig{
		BaseURL:        cfg.URL,
		APIKey:         cfg.APIKey,
		TimeoutSeconds: cfg.TimeoutSeconds,
		MaxRetries:     cfg.MaxRetries,
		VerifyTLS:      cfg.VerifyTLS,
	}
}

// Prepare builds the client, verifies the connection and mounts the enabled
// registries. Nothing is mounted when the connection test fails.
func Prepare(ctx context.Context, cfg *config.Config, version string, logger logging.Logger, clientOpts ...sonarr.Option) (*Instance, error) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	inst := &Instance{Config: cfg, logger: logger.WithField("component", "server_runner")}

	var observer mcp.Observer
	if cfg.Server.MetricsAddr != "" {
		inst.Metrics = metrics.NewCollector(version)
		observer = inst.Metrics
		clientOpts = append([]sonarr.Option{sonarr.WithObserver(inst.Metrics)}, clientOpts...)
	}

	client, err := sonarr.NewClient(Connection(cfg.Sonarr), logger, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Sonarr client")
	}
	inst.Client = client

	lc, err := fsm.NewLifecycle(logger)
	if err != nil {
		return nil, err
	}
	inst.Lifecycle = lc

	checkCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := lc.Verify(checkCtx, client.TestConnection); err != nil {
		return inst, err
	}

	inst.Tools = mcp.NewToolManager()
	if cfg.Features.Tools {
		reg, err := tools.BuildRegistry(client, logger)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build tool registry")
		}
		inst.Tools.RegisterProvider(reg)
	}
	inst.Resources = mcp.NewResourceManager()
	if cfg.Features.Resources {
		reg, err := resources.BuildRegistry(client, logger)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build resource registry")
		}
		inst.Resources.RegisterProvider(reg)
	}

	inst.Server, err = mcp.NewServer(mcp.ServerOptions{
		Name:     cfg.Server.Name,
		Version:  version,
		Observer: observer,
	}, inst.Tools, inst.Resources, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MCP server")
	}
	return inst, nil
}

// Serve runs the stdio transport, plus the metrics listener when enabled, until
// ctx is cancelled or the client disconnects.
func (inst *Instance) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	if inst.Metrics != nil {
		g.Go(func() error {
			return metrics.Serve(gctx, inst.Config.Server.MetricsAddr, inst.Metrics, inst.logger)
		})
	}
	g.Go(func() error {
		defer func() {
			if err := inst.Lifecycle.Stop(context.Background()); err != nil {
				inst.logger.Warn("Failed to stop lifecycle.", "error", err)
			}
		}()
		err := inst.Server.ServeSTDIO(gctx)
		if ctx.Err() != nil {
			return nil
		}
		// The client closing stdin ends the session; stop the metrics listener too.
		return stopSiblings(err)
	})
	err := g.Wait()
	if errors.Is(err, errSessionEnded) {
		return nil
	}
	return err
}

var errSessionEnded = errors.New("session ended")

func stopSiblings(err error) error {
	if err != nil {
		return err
	}
	return errSessionEnded
}

// RunServer loads configuration, sets up logging on stderr and serves until
// SIGINT or SIGTERM.
func RunServer(configPath, version string) error {
	cfg, err := config.Load(configPath, credentials.NewKeyringStore(nil))
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
		return err
	}
	logger := logging.GetLogger("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Sonarr MCP server.", "version", version, "url", cfg.Sonarr.URL,
		"tools", cfg.Features.Tools, "resources", cfg.Features.Resources)
	inst, err := Prepare(ctx, cfg, version, logging.GetLogger("sonarr_mcp"))
	if err != nil {
		return err
	}
	if err := inst.Serve(ctx); err != nil {
		return errors.Wrap(err, "server stopped with error")
	}
	logger.Info("Server stopped.")
	return nil
}
