// file: internal/sonarr/types.go
package sonarr

import "time"

// Paged is the pagination envelope Sonarr wraps around queue, history and wanted lists.
type Paged[T any] struct {
	Page          int    `json:"page"`
	PageSize      int    `json:"pageSize"`
	SortKey       string `json:"sortKey,omitempty"`
	SortDirection string `json:"sortDirection,omitempty"`
	TotalRecords  int    `json:"totalRecords"`
	Records       []T    `json:"records"`
}

// Image is a poster, banner or fanart reference.
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// Ratings holds the aggregate rating of a series.
type Ratings struct {
	Votes int     `json:"votes"`
	Value float64 `json:"value"`
}

// SeasonStatistics summarizes one season's files.
type SeasonStatistics struct {
	EpisodeFileCount  int     `json:"episodeFileCount"`
	EpisodeCount      int     `json:"episodeCount"`
	TotalEpisodeCount int     `json:"totalEpisodeCount"`
	SizeOnDisk        int64   `json:"sizeOnDisk"`
	PercentOfEpisodes float64 `json:"percentOfEpisodes"`
}

// Season is a season entry embedded in a series.
type Season struct {
	SeasonNumber int               `json:"seasonNumber"`
	Monitored    bool              `json:"monitored"`
	Statistics   *SeasonStatistics `json:"statistics,omitempty"`
}

// SeriesStatistics summarizes a series' files.
type SeriesStatistics struct {
	SeasonCount       int      `json:"seasonCount"`
	EpisodeFileCount  int      `json:"episodeFileCount"`
	EpisodeCount      int      `json:"episodeCount"`
	TotalEpisodeCount int      `json:"totalEpisodeCount"`
	SizeOnDisk        int64    `json:"sizeOnDisk"`
	PercentOfEpisodes float64  `json:"percentOfEpisodes"`
	ReleaseGroups     []string `json:"releaseGroups,omitempty"`
}

// AddOptions controls what Sonarr does right after a series is added.
type AddOptions struct {
	Monitor                      string `json:"monitor,omitempty"`
	SearchForMissingEpisodes     bool   `json:"searchForMissingEpisodes"`
	SearchForCutoffUnmetEpisodes bool   `json:"searchForCutoffUnmetEpisodes"`
	IgnoreEpisodesWithFiles      bool   `json:"ignoreEpisodesWithFiles"`
	IgnoreEpisodesWithoutFiles   bool   `json:"ignoreEpisodesWithoutFiles"`
}

// Series mirrors Sonarr's SeriesResource. Lookup results use the same shape with ID 0.
type Series struct {
	ID                int               `json:"id,omitempty"`
	Title             string            `json:"title"`
	SortTitle         string            `json:"sortTitle,omitempty"`
	Status            string            `json:"status,omitempty"`
	Ended             bool              `json:"ended,omitempty"`
	Overview          string            `json:"overview,omitempty"`
	Network           string            `json:"network,omitempty"`
	AirTime           string            `json:"airTime,omitempty"`
	Images            []Image           `json:"images,omitempty"`
	RemotePoster      string            `json:"remotePoster,omitempty"`
	Seasons           []Season          `json:"seasons,omitempty"`
	Year              int               `json:"year,omitempty"`
	Path              string            `json:"path,omitempty"`
	QualityProfileID  int               `json:"qualityProfileId,omitempty"`
	LanguageProfileID int               `json:"languageProfileId,omitempty"`
	SeasonFolder      bool              `json:"seasonFolder"`
	Monitored         bool              `json:"monitored"`
	UseSceneNumbering bool              `json:"useSceneNumbering,omitempty"`
	Runtime           int               `json:"runtime,omitempty"`
	TvdbID            int               `json:"tvdbId,omitempty"`
	TvRageID          int               `json:"tvRageId,omitempty"`
	TvMazeID          int               `json:"tvMazeId,omitempty"`
	ImdbID            string            `json:"imdbId,omitempty"`
	FirstAired        *time.Time        `json:"firstAired,omitempty"`
	NextAiring        *time.Time        `json:"nextAiring,omitempty"`
	PreviousAiring    *time.Time        `json:"previousAiring,omitempty"`
	SeriesType        string            `json:"seriesType,omitempty"`
	CleanTitle        string            `json:"cleanTitle,omitempty"`
	TitleSlug         string            `json:"titleSlug,omitempty"`
	RootFolderPath    string            `json:"rootFolderPath,omitempty"`
	Certification     string            `json:"certification,omitempty"`
	Genres            []string          `json:"genres,omitempty"`
	Tags              []int             `json:"tags"`
	Added             *time.Time        `json:"added,omitempty"`
	Ratings           *Ratings          `json:"ratings,omitempty"`
	Statistics        *SeriesStatistics `json:"statistics,omitempty"`
	AddOptions        *AddOptions       `json:"addOptions,omitempty"`
}

// Quality identifies a quality definition (e.g. "HDTV-720p").
type Quality struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	Resolution int    `json:"resolution,omitempty"`
}

// Revision is the release revision of a file.
type Revision struct {
	Version  int  `json:"version"`
	Real     int  `json:"real"`
	IsRepack bool `json:"isRepack"`
}

// QualityModel wraps a quality with its revision, as Sonarr nests it.
type QualityModel struct {
	Quality  Quality  `json:"quality"`
	Revision Revision `json:"revision"`
}

// Language is a language reference.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// EpisodeFile mirrors Sonarr's EpisodeFileResource.
type EpisodeFile struct {
	ID                  int          `json:"id"`
	SeriesID            int          `json:"seriesId"`
	SeasonNumber        int          `json:"seasonNumber"`
	RelativePath        string       `json:"relativePath,omitempty"`
	Path                string       `json:"path,omitempty"`
	Size                int64        `json:"size"`
	DateAdded           *time.Time   `json:"dateAdded,omitempty"`
	ReleaseGroup        string       `json:"releaseGroup,omitempty"`
	Language            *Language    `json:"language,omitempty"`
	Languages           []Language   `json:"languages,omitempty"`
	Quality             QualityModel `json:"quality"`
	QualityCutoffNotMet bool         `json:"qualityCutoffNotMet"`
}

// Episode mirrors Sonarr's EpisodeResource.
type Episode struct {
	ID                    int          `json:"id"`
	SeriesID              int          `json:"seriesId"`
	TvdbID                int          `json:"tvdbId,omitempty"`
	EpisodeFileID         int          `json:"episodeFileId"`
	SeasonNumber          int          `json:"seasonNumber"`
	EpisodeNumber         int          `json:"episodeNumber"`
	Title                 string       `json:"title"`
	AirDate               string       `json:"airDate,omitempty"`
	AirDateUtc            *time.Time   `json:"airDateUtc,omitempty"`
	Overview              string       `json:"overview,omitempty"`
	HasFile               bool         `json:"hasFile"`
	Monitored             bool         `json:"monitored"`
	AbsoluteEpisodeNumber *int         `json:"absoluteEpisodeNumber,omitempty"`
	Runtime               int          `json:"runtime,omitempty"`
	Series                *Series      `json:"series,omitempty"`
	EpisodeFile           *EpisodeFile `json:"episodeFile,omitempty"`
}

// StatusMessage is a download client message attached to a queue item.
type StatusMessage struct {
	Title    string   `json:"title"`
	Messages []string `json:"messages"`
}

// QueueItem mirrors Sonarr's QueueResource. Sizes are reported as floating point bytes.
type QueueItem struct {
	ID                      int             `json:"id"`
	SeriesID                int             `json:"seriesId"`
	EpisodeID               int             `json:"episodeId"`
	SeasonNumber            *int            `json:"seasonNumber,omitempty"`
	Series                  *Series         `json:"series,omitempty"`
	Episode                 *Episode        `json:"episode,omitempty"`
	Quality                 QualityModel    `json:"quality"`
	Size                    float64         `json:"size"`
	Title                   string          `json:"title"`
	SizeLeft                float64         `json:"sizeleft"`
	TimeLeft                string          `json:"timeleft,omitempty"`
	EstimatedCompletionTime *time.Time      `json:"estimatedCompletionTime,omitempty"`
	Status                  string          `json:"status"`
	TrackedDownloadStatus   string          `json:"trackedDownloadStatus,omitempty"`
	TrackedDownloadState    string          `json:"trackedDownloadState,omitempty"`
	StatusMessages          []StatusMessage `json:"statusMessages,omitempty"`
	ErrorMessage            string          `json:"errorMessage,omitempty"`
	DownloadID              string          `json:"downloadId,omitempty"`
	Protocol                string          `json:"protocol,omitempty"`
	DownloadClient          string          `json:"downloadClient,omitempty"`
	Indexer                 string          `json:"indexer,omitempty"`
	OutputPath              string          `json:"outputPath,omitempty"`
}

// HistoryItem mirrors Sonarr's HistoryResource.
type HistoryItem struct {
	ID                  int               `json:"id"`
	EpisodeID           int               `json:"episodeId"`
	SeriesID            int               `json:"seriesId"`
	SourceTitle         string            `json:"sourceTitle"`
	Quality             QualityModel      `json:"quality"`
	QualityCutoffNotMet bool              `json:"qualityCutoffNotMet"`
	Date                time.Time         `json:"date"`
	DownloadID          string            `json:"downloadId,omitempty"`
	EventType           string            `json:"eventType"`
	Data                map[string]string `json:"data,omitempty"`
	Episode             *Episode          `json:"episode,omitempty"`
	Series              *Series           `json:"series,omitempty"`
}

// QualityProfileItem is one entry (or group) in a quality profile.
type QualityProfileItem struct {
	ID      int                  `json:"id,omitempty"`
	Name    string               `json:"name,omitempty"`
	Quality *Quality             `json:"quality,omitempty"`
	Items   []QualityProfileItem `json:"items,omitempty"`
	Allowed bool                 `json:"allowed"`
}

// QualityProfile mirrors Sonarr's QualityProfileResource.
type QualityProfile struct {
	ID             int                  `json:"id"`
	Name           string               `json:"name"`
	UpgradeAllowed bool                 `json:"upgradeAllowed"`
	Cutoff         int                  `json:"cutoff"`
	Items          []QualityProfileItem `json:"items"`
}

// AllowedQualities flattens the profile's allowed quality names, groups included.
func (p QualityProfile) AllowedQualities() []string {
	var names []string
	var walk func(items []QualityProfileItem)
	walk = func(items []QualityProfileItem) {
		for _, item := range items {
			if !item.Allowed {
				continue
			}
			if item.Quality != nil {
				names = append(names, item.Quality.Name)
			}
			walk(item.Items)
		}
	}
	walk(p.Items)
	return names
}

// LanguageProfile mirrors Sonarr's LanguageProfileResource. Sonarr v4 no longer
// serves language profiles and answers the endpoint with an error or an empty list.
type LanguageProfile struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	UpgradeAllowed bool   `json:"upgradeAllowed"`
}

// CustomFormat mirrors Sonarr's CustomFormatResource.
type CustomFormat struct {
	ID                              int    `json:"id"`
	Name                            string `json:"name"`
	IncludeCustomFormatWhenRenaming bool   `json:"includeCustomFormatWhenRenaming"`
}

// UnmappedFolder is a folder under a root folder that is not a known series.
type UnmappedFolder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// RootFolder mirrors Sonarr's RootFolderResource.
type RootFolder struct {
	ID              int              `json:"id"`
	Path            string           `json:"path"`
	Accessible      bool             `json:"accessible"`
	FreeSpace       int64            `json:"freeSpace"`
	UnmappedFolders []UnmappedFolder `json:"unmappedFolders,omitempty"`
}

// Indexer mirrors the subset of Sonarr's IndexerResource the adapter reports.
type Indexer struct {
	ID                      int    `json:"id"`
	Name                    string `json:"name"`
	Implementation          string `json:"implementation"`
	Protocol                string `json:"protocol"`
	Priority                int    `json:"priority"`
	EnableRss               bool   `json:"enableRss"`
	EnableAutomaticSearch   bool   `json:"enableAutomaticSearch"`
	EnableInteractiveSearch bool   `json:"enableInteractiveSearch"`
	Tags                    []int  `json:"tags,omitempty"`
}

// DownloadClient mirrors the subset of Sonarr's DownloadClientResource the adapter reports.
type DownloadClient struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Implementation string `json:"implementation"`
	Protocol       string `json:"protocol"`
	Priority       int    `json:"priority"`
	Enable         bool   `json:"enable"`
	Tags           []int  `json:"tags,omitempty"`
}

// Tag mirrors Sonarr's TagResource.
type Tag struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Command names understood by POST /command.
const (
	CommandMissingEpisodeSearch = "MissingEpisodeSearch"
	CommandSeriesSearch         = "SeriesSearch"
	CommandSeasonSearch         = "SeasonSearch"
	CommandEpisodeSearch        = "EpisodeSearch"
	CommandRefreshSeries        = "RefreshSeries"
	CommandRssSync              = "RssSync"
)

// CommandRequest is the body of POST /command.
type CommandRequest struct {
	Name         string `json:"name"`
	SeriesID     int    `json:"seriesId,omitempty"`
	SeasonNumber *int   `json:"seasonNumber,omitempty"`
	EpisodeIDs   []int  `json:"episodeIds,omitempty"`
}

// Command mirrors Sonarr's CommandResource.
type Command struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	CommandName string     `json:"commandName,omitempty"`
	Message     string     `json:"message,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status"`
	Result      string     `json:"result,omitempty"`
	Queued      *time.Time `json:"queued,omitempty"`
	Started     *time.Time `json:"started,omitempty"`
	Ended       *time.Time `json:"ended,omitempty"`
	Trigger     string     `json:"trigger,omitempty"`
}

// SystemStatus mirrors Sonarr's SystemResource.
type SystemStatus struct {
	AppName                string    `json:"appName"`
	InstanceName           string    `json:"instanceName,omitempty"`
	Version                string    `json:"version"`
	BuildTime              time.Time `json:"buildTime"`
	IsDebug                bool      `json:"isDebug"`
	IsProduction           bool      `json:"isProduction"`
	IsAdmin                bool      `json:"isAdmin"`
	IsUserInteractive      bool      `json:"isUserInteractive"`
	StartupPath            string    `json:"startupPath"`
	AppData                string    `json:"appData"`
	OsName                 string    `json:"osName"`
	OsVersion              string    `json:"osVersion"`
	IsNetCore              bool      `json:"isNetCore"`
	IsLinux                bool      `json:"isLinux"`
	IsOsx                  bool      `json:"isOsx"`
	IsWindows              bool      `json:"isWindows"`
	IsDocker               bool      `json:"isDocker"`
	Mode                   string    `json:"mode"`
	Branch                 string    `json:"branch"`
	Authentication         string    `json:"authentication"`
	SqliteVersion          string    `json:"sqliteVersion,omitempty"`
	MigrationVersion       int       `json:"migrationVersion"`
	URLBase                string    `json:"urlBase"`
	RuntimeVersion         string    `json:"runtimeVersion"`
	RuntimeName            string    `json:"runtimeName"`
	StartTime              time.Time `json:"startTime"`
	PackageUpdateMechanism string    `json:"packageUpdateMechanism,omitempty"`
}

// DiskSpace mirrors Sonarr's DiskSpaceResource.
type DiskSpace struct {
	Path       string `json:"path"`
	Label      string `json:"label"`
	FreeSpace  int64  `json:"freeSpace"`
	TotalSpace int64  `json:"totalSpace"`
}

// HealthCheck mirrors Sonarr's HealthResource.
type HealthCheck struct {
	Source  string `json:"source"`
	Type    string `json:"type"`
	Message string `json:"message"`
	WikiURL string `json:"wikiUrl,omitempty"`
}

// EpisodeMonitorRequest is the body of PUT /episode/monitor.
type EpisodeMonitorRequest struct {
	EpisodeIDs []int `json:"episodeIds"`
	Monitored  bool  `json:"monitored"`
}

// DeleteSeriesOptions controls DELETE /series/{id}.
type DeleteSeriesOptions struct {
	DeleteFiles            bool
	AddImportListExclusion bool
}

// RemoveQueueOptions controls DELETE /queue/{id}.
type RemoveQueueOptions struct {
	RemoveFromClient bool
	Blocklist        bool
}

// PageQuery selects a page of a paginated list. Zero values fall back to page 1 / size 20.
type PageQuery struct {
	Page     int
	PageSize int
}

// HistoryQuery filters GET /history.
type HistoryQuery struct {
	PageQuery
	// EventType is one of the HistoryEventTypes keys; empty means all events.
	EventType string
}

// CalendarQuery selects a calendar window. Start and End are sent as dates.
type CalendarQuery struct {
	Start       time.Time
	End         time.Time
	Unmonitored bool
}

// HistoryEventTypes maps history event names to Sonarr's numeric filter values.
var HistoryEventTypes = map[string]int{
	"grabbed":                1,
	"seriesFolderImported":   2,
	"downloadFolderImported": 3,
	"downloadFailed":         4,
	"episodeFileDeleted":     5,
	"episodeFileRenamed":     6,
	"downloadIgnored":        7,
}
