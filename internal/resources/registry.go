// Package resources implements the read-only Sonarr snapshots exposed as MCP resources.
// file: internal/resources/registry.go
package resources

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/schema"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// API is the subset of the Sonarr client the resources read from.
type API interface {
	GetSeries(ctx context.Context) ([]sonarr.Series, error)
	GetCalendar(ctx context.Context, cq sonarr.CalendarQuery) ([]sonarr.Episode, error)
	GetSystemStatus(ctx context.Context) (*sonarr.SystemStatus, error)
	GetDiskSpace(ctx context.Context) ([]sonarr.DiskSpace, error)
	GetHealth(ctx context.Context) ([]sonarr.HealthCheck, error)
	GetQueue(ctx context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.QueueItem], error)
	GetHistory(ctx context.Context, hq sonarr.HistoryQuery) (*sonarr.Paged[sonarr.HistoryItem], error)
	GetWantedMissing(ctx context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.Episode], error)
	GetQualityProfiles(ctx context.Context) ([]sonarr.QualityProfile, error)
	GetRootFolders(ctx context.Context) ([]sonarr.RootFolder, error)
}

var _ API = (*sonarr.Client)(nil)

// resource pairs a definition with the function that builds its snapshot.
// Label names the resource in "Failed to read ..." errors.
type resource struct {
	def   mcp.ResourceDefinition
	label string
	read  func(ctx context.Context) (any, error)
}

// Registry is the immutable resource catalog. It implements mcp.ResourceProvider.
// Nothing is cached: every read goes to Sonarr.
type Registry struct {
	api       API
	resources map[string]resource
	order     []string
	logger    logging.Logger
	now       func() time.Time
}

var _ mcp.ResourceProvider = (*Registry)(nil)

// Option customizes a Registry.
type Option func(*Registry)

// WithClock replaces the wall clock used for the calendar window and uptime.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// BuildRegistry creates the catalog of Sonarr resources.
func BuildRegistry(api API, logger logging.Logger, opts ...Option) (*Registry, error) {
	if api == nil {
		return nil, errors.New("resources: Sonarr API is required")
	}
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	r := &Registry{
		api:       api,
		resources: make(map[string]resource),
		logger:    logger.WithField("component", "resource_registry"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, res := range r.catalog() {
		uri := res.def.URI
		if err := schema.ValidateName(schema.EntityTypeResource, uri); err != nil {
			return nil, errors.Wrap(err, "resources: invalid resource URI")
		}
		if _, dup := r.resources[uri]; dup {
			return nil, errors.Newf("resources: duplicate resource URI %q", uri)
		}
		res.def.MIMEType = mcp.JSONMIMEType
		r.resources[uri] = res
		r.order = append(r.order, uri)
	}
	r.logger.Debug("Resource registry built.", "resources", len(r.order))
	return r, nil
}

// ResourceDefinitions returns the catalog in declaration order.
func (r *Registry) ResourceDefinitions() []mcp.ResourceDefinition {
	defs := make([]mcp.ResourceDefinition, 0, len(r.order))
	for _, uri := range r.order {
		defs = append(defs, r.resources[uri].def)
	}
	return defs
}

// ReadResource builds a fresh snapshot of uri. Unlike tools, failures are
// returned as errors for the protocol layer to report.
func (r *Registry) ReadResource(ctx context.Context, uri string) (*sdk.ReadResourceResult, error) {
	res, ok := r.resources[uri]
	if !ok {
		return nil, mcp.NewResourceNotFoundError(uri)
	}
	payload, err := res.read(ctx)
	if err != nil {
		r.logger.Warn("Resource read failed.", "uri", uri, "error", err)
		return nil, errors.Wrapf(err, "Failed to read %s", res.label)
	}
	return mcp.JSONSnapshot(uri, payload)
}

func (r *Registry) catalog() []resource {
	return []resource{
		{
			label: "series collection",
			read:  r.seriesCollection,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://series/collection",
				Name:        "Series Collection",
				Description: "Every series in the library with collection totals.",
			},
		},
		{
			label: "calendar",
			read:  r.upcomingCalendar,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://calendar/upcoming",
				Name:        "Upcoming Episodes",
				Description: "Episodes airing in the next 30 days.",
			},
		},
		{
			label: "system status",
			read:  r.systemStatus,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://system/status",
				Name:        "System Status",
				Description: "Sonarr version, uptime, disk space and health checks.",
			},
		},
		{
			label: "queue",
			read:  r.currentQueue,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://queue/current",
				Name:        "Download Queue",
				Description: "Downloads currently in progress or waiting.",
			},
		},
		{
			label: "history",
			read:  r.recentHistory,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://history/recent",
				Name:        "Recent History",
				Description: "The most recent grab, import and failure events.",
			},
		},
		{
			label: "wanted missing",
			read:  r.wantedMissing,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://wanted/missing",
				Name:        "Missing Episodes",
				Description: "Monitored episodes that have aired but have no file.",
			},
		},
		{
			label: "quality profiles",
			read:  r.qualityProfiles,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://config/quality-profiles",
				Name:        "Quality Profiles",
				Description: "Configured quality profiles and the qualities each allows.",
			},
		},
		{
			label: "root folders",
			read:  r.rootFolders,
			def: mcp.ResourceDefinition{
				URI:         "sonarr://config/root-folders",
				Name:        "Root Folders",
				Description: "Library root folders with free space.",
			},
		},
	}
}
