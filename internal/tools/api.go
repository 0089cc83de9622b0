// Package tools implements the Sonarr tool catalog exposed over MCP.
// file: internal/tools/api.go
package tools

import (
	"context"

	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
)

// API is the subset of the Sonarr client the tools call. *sonarr.Client satisfies it.
type API interface {
	GetSeries(ctx context.Context) ([]sonarr.Series, error)
	GetSeriesByID(ctx context.Context, id int) (*sonarr.Series, error)
	LookupSeries(ctx context.Context, term string) ([]sonarr.Series, error)
	AddSeries(ctx context.Context, series *sonarr.Series) (*sonarr.Series, error)
	PatchSeries(ctx context.Context, id int, changes map[string]any) (*sonarr.Series, error)
	DeleteSeries(ctx context.Context, id int, opts sonarr.DeleteSeriesOptions) error

	GetEpisodes(ctx context.Context, seriesID int, seasonNumber *int) ([]sonarr.Episode, error)
	MonitorEpisodes(ctx context.Context, episodeIDs []int, monitored bool) error

	GetQueue(ctx context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.QueueItem], error)
	RemoveQueueItem(ctx context.Context, id int, opts sonarr.RemoveQueueOptions) error
	GetHistory(ctx context.Context, hq sonarr.HistoryQuery) (*sonarr.Paged[sonarr.HistoryItem], error)
	GetSeriesHistory(ctx context.Context, seriesID int, eventType string) ([]sonarr.HistoryItem, error)
	GetCalendar(ctx context.Context, cq sonarr.CalendarQuery) ([]sonarr.Episode, error)
	GetWantedMissing(ctx context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.Episode], error)
	GetWantedCutoff(ctx context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.Episode], error)

	GetQualityProfiles(ctx context.Context) ([]sonarr.QualityProfile, error)
	GetLanguageProfiles(ctx context.Context) ([]sonarr.LanguageProfile, error)
	GetRootFolders(ctx context.Context) ([]sonarr.RootFolder, error)

	SearchMissingEpisodes(ctx context.Context) (*sonarr.Command, error)
	SearchSeries(ctx context.Context, seriesID int) (*sonarr.Command, error)
	SearchEpisodes(ctx context.Context, episodeIDs []int) (*sonarr.Command, error)

	GetSystemStatus(ctx context.Context) (*sonarr.SystemStatus, error)
	GetDiskSpace(ctx context.Context) ([]sonarr.DiskSpace, error)
}

var _ API = (*sonarr.Client)(nil)
