// Package sonarrtest provides an in-memory stand-in for the Sonarr client.
// file: internal/sonarr/sonarrtest/fake.go
package sonarrtest

import (
	"context"
	"sync"

	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
)

// Fake serves canned data and records every call by method name. Set the Err
// map to make a method fail.
type Fake struct {
	mu    sync.Mutex
	calls map[string]int

	Series          []sonarr.Series
	Lookup          []sonarr.Series
	Episodes        []sonarr.Episode
	Queue           sonarr.Paged[sonarr.QueueItem]
	History         sonarr.Paged[sonarr.HistoryItem]
	SeriesHistory   []sonarr.HistoryItem
	Calendar        []sonarr.Episode
	WantedMissing   sonarr.Paged[sonarr.Episode]
	WantedCutoff    sonarr.Paged[sonarr.Episode]
	QualityProfiles []sonarr.QualityProfile
	LanguageProfile []sonarr.LanguageProfile
	RootFolders     []sonarr.RootFolder
	Status          sonarr.SystemStatus
	Disks           []sonarr.DiskSpace
	Health          []sonarr.HealthCheck

	// Err maps a method name to the error it returns.
	Err map[string]error

	// Captured arguments of the last mutating calls.
	Added          *sonarr.Series
	Patched        map[string]any
	Deleted        *sonarr.DeleteSeriesOptions
	Monitored      []int
	RemovedQueue   *sonarr.RemoveQueueOptions
	Searched       []int
	LastCalendar   sonarr.CalendarQuery
	LastHistory    sonarr.HistoryQuery
	LastPage       sonarr.PageQuery
	LastSeasonArg  *int
	LastCommandKey string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{calls: map[string]int{}, Err: map[string]error{}}
}

// Calls returns how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *Fake) record(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[method]++
	return f.Err[method]
}

func (f *Fake) GetSeries(_ context.Context) ([]sonarr.Series, error) {
	if err := f.record("GetSeries"); err != nil {
		return nil, err
	}
	return f.Series, nil
}

func (f *Fake) GetSeriesByID(_ context.Context, id int) (*sonarr.Series, error) {
	if err := f.record("GetSeriesByID"); err != nil {
		return nil, err
	}
	for i := range f.Series {
		if f.Series[i].ID == id {
			s := f.Series[i]
			return &s, nil
		}
	}
	return nil, &sonarr.APIError{Message: "NotFound", StatusCode: 404}
}

func (f *Fake) LookupSeries(_ context.Context, _ string) ([]sonarr.Series, error) {
	if err := f.record("LookupSeries"); err != nil {
		return nil, err
	}
	return f.Lookup, nil
}

func (f *Fake) AddSeries(_ context.Context, series *sonarr.Series) (*sonarr.Series, error) {
	if err := f.record("AddSeries"); err != nil {
		return nil, err
	}
	f.Added = series
	out := *series
	out.ID = 100
	out.Path = series.RootFolderPath + "/" + series.Title
	return &out, nil
}

func (f *Fake) PatchSeries(_ context.Context, id int, changes map[string]any) (*sonarr.Series, error) {
	if err := f.record("PatchSeries"); err != nil {
		return nil, err
	}
	f.Patched = changes
	for i := range f.Series {
		if f.Series[i].ID == id {
			s := f.Series[i]
			if m, ok := changes["monitored"].(bool); ok {
				s.Monitored = m
			}
			return &s, nil
		}
	}
	return nil, &sonarr.APIError{Message: "NotFound", StatusCode: 404}
}

func (f *Fake) DeleteSeries(_ context.Context, _ int, opts sonarr.DeleteSeriesOptions) error {
	if err := f.record("DeleteSeries"); err != nil {
		return err
	}
	f.Deleted = &opts
	return nil
}

func (f *Fake) GetEpisodes(_ context.Context, _ int, seasonNumber *int) ([]sonarr.Episode, error) {
	if err := f.record("GetEpisodes"); err != nil {
		return nil, err
	}
	f.LastSeasonArg = seasonNumber
	out := make([]sonarr.Episode, 0, len(f.Episodes))
	for _, e := range f.Episodes {
		if seasonNumber == nil || e.SeasonNumber == *seasonNumber {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *Fake) MonitorEpisodes(_ context.Context, episodeIDs []int, _ bool) error {
	if err := f.record("MonitorEpisodes"); err != nil {
		return err
	}
	f.Monitored = episodeIDs
	return nil
}

func (f *Fake) GetQueue(_ context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.QueueItem], error) {
	if err := f.record("GetQueue"); err != nil {
		return nil, err
	}
	f.LastPage = pq
	q := f.Queue
	return &q, nil
}

func (f *Fake) RemoveQueueItem(_ context.Context, _ int, opts sonarr.RemoveQueueOptions) error {
	if err := f.record("RemoveQueueItem"); err != nil {
		return err
	}
	f.RemovedQueue = &opts
	return nil
}

func (f *Fake) GetHistory(_ context.Context, hq sonarr.HistoryQuery) (*sonarr.Paged[sonarr.HistoryItem], error) {
	if err := f.record("GetHistory"); err != nil {
		return nil, err
	}
	f.LastHistory = hq
	h := f.History
	return &h, nil
}

func (f *Fake) GetSeriesHistory(_ context.Context, _ int, _ string) ([]sonarr.HistoryItem, error) {
	if err := f.record("GetSeriesHistory"); err != nil {
		return nil, err
	}
	return f.SeriesHistory, nil
}

func (f *Fake) GetCalendar(_ context.Context, cq sonarr.CalendarQuery) ([]sonarr.Episode, error) {
	if err := f.record("GetCalendar"); err != nil {
		return nil, err
	}
	f.LastCalendar = cq
	return f.Calendar, nil
}

func (f *Fake) GetWantedMissing(_ context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.Episode], error) {
	if err := f.record("GetWantedMissing"); err != nil {
		return nil, err
	}
	f.LastPage = pq
	w := f.WantedMissing
	return &w, nil
}

func (f *Fake) GetWantedCutoff(_ context.Context, pq sonarr.PageQuery) (*sonarr.Paged[sonarr.Episode], error) {
	if err := f.record("GetWantedCutoff"); err != nil {
		return nil, err
	}
	f.LastPage = pq
	w := f.WantedCutoff
	return &w, nil
}

func (f *Fake) GetQualityProfiles(_ context.Context) ([]sonarr.QualityProfile, error) {
	if err := f.record("GetQualityProfiles"); err != nil {
		return nil, err
	}
	return f.QualityProfiles, nil
}

func (f *Fake) GetLanguageProfiles(_ context.Context) ([]sonarr.LanguageProfile, error) {
	if err := f.record("GetLanguageProfiles"); err != nil {
		return nil, err
	}
	return f.LanguageProfile, nil
}

func (f *Fake) GetRootFolders(_ context.Context) ([]sonarr.RootFolder, error) {
	if err := f.record("GetRootFolders"); err != nil {
		return nil, err
	}
	return f.RootFolders, nil
}

func (f *Fake) command(method, name string) (*sonarr.Command, error) {
	if err := f.record(method); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.LastCommandKey = name
	f.mu.Unlock()
	return &sonarr.Command{ID: 42, Name: name, Status: "queued"}, nil
}

func (f *Fake) SearchMissingEpisodes(_ context.Context) (*sonarr.Command, error) {
	return f.command("SearchMissingEpisodes", sonarr.CommandMissingEpisodeSearch)
}

func (f *Fake) SearchSeries(_ context.Context, _ int) (*sonarr.Command, error) {
	return f.command("SearchSeries", sonarr.CommandSeriesSearch)
}

func (f *Fake) SearchEpisodes(_ context.Context, episodeIDs []int) (*sonarr.Command, error) {
	f.Searched = episodeIDs
	return f.command("SearchEpisodes", sonarr.CommandEpisodeSearch)
}

func (f *Fake) GetSystemStatus(_ context.Context) (*sonarr.SystemStatus, error) {
	if err := f.record("GetSystemStatus"); err != nil {
		return nil, err
	}
	s := f.Status
	return &s, nil
}

func (f *Fake) GetDiskSpace(_ context.Context) ([]sonarr.DiskSpace, error) {
	if err := f.record("GetDiskSpace"); err != nil {
		return nil, err
	}
	return f.Disks, nil
}

func (f *Fake) GetHealth(_ context.Context) ([]sonarr.HealthCheck, error) {
	if err := f.record("GetHealth"); err != nil {
		return nil, err
	}
	return f.Health, nil
}
