// file: internal/resources/snapshots.go
package resources

import (
	"context"
	"strings"

	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
)

const (
	calendarDays    = 30
	queuePageSize   = 100
	historyPageSize = 50
	wantedPageSize  = 100
)

type collectionTotals struct {
	Series       int     `json:"series"`
	Monitored    int     `json:"monitored"`
	Continuing   int     `json:"continuing"`
	Ended        int     `json:"ended"`
	Episodes     int     `json:"episodes"`
	Files        int     `json:"files"`
	SizeOnDiskGB float64 `json:"sizeOnDiskGB"`
}

type seriesCollection struct {
	Totals collectionTotals    `json:"totals"`
	Series []format.SeriesView `json:"series"`
}

func (r *Registry) seriesCollection(ctx context.Context) (any, error) {
	all, err := r.api.GetSeries(ctx)
	if err != nil {
		return nil, err
	}
	totals := collectionTotals{Series: len(all)}
	var bytes int64
	for _, s := range all {
		if s.Monitored {
			totals.Monitored++
		}
		switch strings.ToLower(s.Status) {
		case "continuing":
			totals.Continuing++
		case "ended":
			totals.Ended++
		}
		if st := s.Statistics; st != nil {
			totals.Episodes += st.EpisodeCount
			totals.Files += st.EpisodeFileCount
			bytes += st.SizeOnDisk
		}
	}
	totals.SizeOnDiskGB = format.BytesToGB(bytes)
	return seriesCollection{Totals: totals, Series: format.SeriesList(all)}, nil
}

type calendarTotals struct {
	Episodes   int `json:"episodes"`
	Downloaded int `json:"downloaded"`
	Monitored  int `json:"monitored"`
}

type calendarSnapshot struct {
	Start    string               `json:"start"`
	End      string               `json:"end"`
	Totals   calendarTotals       `json:"totals"`
	Episodes []format.EpisodeView `json:"episodes"`
}

func (r *Registry) upcomingCalendar(ctx context.Context) (any, error) {
	start := format.StartOfDay(r.now())
	end := start.AddDate(0, 0, calendarDays)

	episodes, err := r.api.GetCalendar(ctx, sonarr.CalendarQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	totals := calendarTotals{Episodes: len(episodes)}
	for _, e := range episodes {
		if e.HasFile {
			totals.Downloaded++
		}
		if e.Monitored {
			totals.Monitored++
		}
	}
	return calendarSnapshot{
		Start:    start.Format(format.DateLayout),
		End:      end.Format(format.DateLayout),
		Totals:   totals,
		Episodes: format.Episodes(episodes),
	}, nil
}

type statusSnapshot struct {
	*sonarr.SystemStatus
	UptimeMs int64                `json:"uptimeMs"`
	Disks    []format.DiskView    `json:"disks"`
	Health   []sonarr.HealthCheck `json:"health"`
}

func (r *Registry) systemStatus(ctx context.Context) (any, error) {
	status, disks, err := sonarr.FetchStatusAndDisks(ctx, r.api)
	if err != nil {
		return nil, err
	}
	health, err := r.api.GetHealth(ctx)
	if err != nil {
		return nil, err
	}
	if health == nil {
		health = []sonarr.HealthCheck{}
	}
	var uptime int64
	if !status.StartTime.IsZero() {
		uptime = r.now().Sub(status.StartTime).Milliseconds()
	}
	return statusSnapshot{
		SystemStatus: status,
		UptimeMs:     uptime,
		Disks:        format.Disks(disks),
		Health:       health,
	}, nil
}

type pagedSnapshot[T any] struct {
	TotalRecords int `json:"totalRecords"`
	Count        int `json:"count"`
	Items        []T `json:"items"`
}

func (r *Registry) currentQueue(ctx context.Context) (any, error) {
	page, err := r.api.GetQueue(ctx, sonarr.PageQuery{Page: 1, PageSize: queuePageSize})
	if err != nil {
		return nil, err
	}
	items := format.Queue(page.Records)
	return pagedSnapshot[format.QueueView]{TotalRecords: page.TotalRecords, Count: len(items), Items: items}, nil
}

func (r *Registry) recentHistory(ctx context.Context) (any, error) {
	page, err := r.api.GetHistory(ctx, sonarr.HistoryQuery{PageQuery: sonarr.PageQuery{Page: 1, PageSize: historyPageSize}})
	if err != nil {
		return nil, err
	}
	items := format.History(page.Records)
	return pagedSnapshot[format.HistoryView]{TotalRecords: page.TotalRecords, Count: len(items), Items: items}, nil
}

func (r *Registry) wantedMissing(ctx context.Context) (any, error) {
	page, err := r.api.GetWantedMissing(ctx, sonarr.PageQuery{Page: 1, PageSize: wantedPageSize})
	if err != nil {
		return nil, err
	}
	items := format.Episodes(page.Records)
	return pagedSnapshot[format.EpisodeView]{TotalRecords: page.TotalRecords, Count: len(items), Items: items}, nil
}

type profileView struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	UpgradeAllowed   bool     `json:"upgradeAllowed"`
	Cutoff           int      `json:"cutoff"`
	AllowedQualities []string `json:"allowedQualities"`
}

type profilesSnapshot struct {
	Count    int           `json:"count"`
	Profiles []profileView `json:"profiles"`
}

func (r *Registry) qualityProfiles(ctx context.Context) (any, error) {
	profiles, err := r.api.GetQualityProfiles(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		allowed := p.AllowedQualities()
		if allowed == nil {
			allowed = []string{}
		}
		views = append(views, profileView{
			ID:               p.ID,
			Name:             p.Name,
			UpgradeAllowed:   p.UpgradeAllowed,
			Cutoff:           p.Cutoff,
			AllowedQualities: allowed,
		})
	}
	return profilesSnapshot{Count: len(views), Profiles: views}, nil
}

type folderView struct {
	ID              int     `json:"id"`
	Path            string  `json:"path"`
	Accessible      bool    `json:"accessible"`
	FreeSpaceGB     float64 `json:"freeSpaceGB"`
	UnmappedFolders int     `json:"unmappedFolders"`
}

type foldersSnapshot struct {
	Count   int          `json:"count"`
	Folders []folderView `json:"folders"`
}

func (r *Registry) rootFolders(ctx context.Context) (any, error) {
	folders, err := r.api.GetRootFolders(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]folderView, 0, len(folders))
	for _, f := range folders {
		views = append(views, folderView{
			ID:              f.ID,
			Path:            f.Path,
			Accessible:      f.Accessible,
			FreeSpaceGB:     format.BytesToGB(f.FreeSpace),
			UnmappedFolders: len(f.UnmappedFolders),
		})
	}
	return foldersSnapshot{Count: len(views), Folders: views}, nil
}
