// file: internal/tools/registry_test.go
package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr/sonarrtest"
	json "github.com/goccy/go-json"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestRegistry(t *testing.T, api API) *Registry {
	t.Helper()
	r, err := BuildRegistry(api, nil, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return r
}

func call(t *testing.T, r *Registry, name, args string) *sdk.CallToolResult {
	t.Helper()
	res, err := r.CallTool(context.Background(), name, json.RawMessage(args))
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(res *sdk.CallToolResult) string {
	return strings.Join(mcp.ResultText(res), "\n")
}

func TestBuildRegistry(t *testing.T) {
	r := newTestRegistry(t, sonarrtest.NewFake())

	var names []string
	for _, def := range r.ToolDefinitions() {
		names = append(names, def.Name)
		assert.NotNil(t, def.InputSchema, def.Name)
		assert.NotEmpty(t, def.Description, def.Name)
	}
	assert.Equal(t, []string{
		"add_series", "list_series", "update_series", "remove_series", "search_series",
		"list_episodes", "search_episodes", "monitor_episodes", "manage_queue", "get_history",
		"search_missing_episodes", "get_wanted", "system_status", "get_calendar",
	}, names)

	_, err := BuildRegistry(nil, nil)
	assert.Error(t, err)
}

func TestCallTool_UnknownToolIsReturnedAsError(t *testing.T) {
	r := newTestRegistry(t, sonarrtest.NewFake())
	res, err := r.CallTool(context.Background(), "delete_everything", nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, mcp.IsToolNotFoundError(err))
	assert.Contains(t, err.Error(), "Tool not found: delete_everything")
}

func TestCallTool_InvalidArgumentsNeverReachSonarr(t *testing.T) {
	fake := sonarrtest.NewFake()
	r := newTestRegistry(t, fake)

	tests := []struct {
		tool string
		args string
		want string
	}{
		{"add_series", `{"qualityProfile": "HD"}`, "Failed to add series: invalid arguments:"},
		{"add_series", `{"query": "x", "qualityProfile": "HD", "monitor": "sometimes"}`, "monitor"},
		{"list_series", `{"status": "paused"}`, "status"},
		{"search_series", `{"query": "x", "limit": 51}`, "limit"},
		{"monitor_episodes", `{"episodeIds": [], "monitored": true}`, "episodeIds"},
		{"get_calendar", `{"days": 0}`, "days"},
		{"get_history", `{"eventType": "exploded"}`, "eventType"},
		{"remove_series", `{"seriesId": "one"}`, "seriesId"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			res := call(t, r, tt.tool, tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, text(res), "invalid arguments")
			assert.Contains(t, text(res), tt.want)
		})
	}
	assert.Zero(t, fake.TotalCalls())
}

func TestCallTool_ClientErrorsBecomeFailureResults(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Err["GetSeries"] = &sonarr.APIError{Message: "HTTP 500: Internal Server Error", StatusCode: 500}
	r := newTestRegistry(t, fake)

	res := call(t, r, "list_series", `{}`)
	assert.True(t, res.IsError)
	assert.Equal(t, "Failed to list series: HTTP 500: Internal Server Error", text(res))
}

type panickingAPI struct{ *sonarrtest.Fake }

func (panickingAPI) GetSeries(context.Context) ([]sonarr.Series, error) { panic("boom") }

func TestCallTool_RecoversPanics(t *testing.T) {
	r := newTestRegistry(t, panickingAPI{sonarrtest.NewFake()})
	res := call(t, r, "list_series", `{}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "Failed to list series: internal error: boom")
}

func librarySeries() []sonarr.Series {
	return []sonarr.Series{
		{ID: 1, Title: "Breaking Bad", Monitored: true, Status: "continuing",
			Statistics: &sonarr.SeriesStatistics{SizeOnDisk: 500_000_000_000}},
		{ID: 2, Title: "Better Call Saul", Monitored: false, Status: "ended"},
	}
}

func TestListSeries_FiltersCombineWithAnd(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Series = librarySeries()
	r := newTestRegistry(t, fake)

	res := call(t, r, "list_series", `{"monitored": true}`)
	require.False(t, res.IsError)
	listing := res.StructuredContent.(seriesListing)
	assert.Equal(t, 1, listing.Count)
	assert.Equal(t, "Breaking Bad", listing.Series[0].Title)
	assert.Equal(t, 465.66, listing.Series[0].SizeOnDiskGB)
	assert.Contains(t, text(res), "Found 1 series (monitored=true)")

	res = call(t, r, "list_series", `{"monitored": true, "title": "saul"}`)
	assert.Equal(t, 0, res.StructuredContent.(seriesListing).Count)

	res = call(t, r, "list_series", `{"title": "SAUL"}`)
	assert.Equal(t, 1, res.StructuredContent.(seriesListing).Count)

	res = call(t, r, "list_series", `{"status": "ended", "monitored": false}`)
	assert.Equal(t, 1, res.StructuredContent.(seriesListing).Count)
	assert.Contains(t, text(res), "monitored=false, status=ended")

	res = call(t, r, "list_series", `{}`)
	assert.Equal(t, 2, res.StructuredContent.(seriesListing).Count)
	assert.Contains(t, text(res), "Found 2 series")
}

func addSeriesFake() *sonarrtest.Fake {
	fake := sonarrtest.NewFake()
	fake.Lookup = []sonarr.Series{{Title: "The Wire", Year: 2002, TvdbID: 79126}, {Title: "The Wire (UK)"}}
	fake.QualityProfiles = []sonarr.QualityProfile{{ID: 1, Name: "Any"}, {ID: 4, Name: "HD-1080p"}}
	fake.RootFolders = []sonarr.RootFolder{{ID: 1, Path: "/tv"}, {ID: 2, Path: "/anime"}}
	return fake
}

func TestAddSeries_NoMatchIssuesNoAdd(t *testing.T) {
	fake := addSeriesFake()
	fake.Lookup = nil
	r := newTestRegistry(t, fake)

	res := call(t, r, "add_series", `{"query": "Nonexistent Show", "qualityProfile": "Any"}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "No series found matching")
	assert.Contains(t, text(res), "Failed to add series:")
	assert.Zero(t, fake.Calls("AddSeries"))
}

func TestAddSeries_UnknownProfileListsAvailable(t *testing.T) {
	fake := addSeriesFake()
	r := newTestRegistry(t, fake)

	res := call(t, r, "add_series", `{"query": "The Wire", "qualityProfile": "Ultra-8K"}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "Ultra-8K")
	assert.Contains(t, text(res), "Any, HD-1080p")
	assert.Zero(t, fake.Calls("AddSeries"))
}

func TestAddSeries_Success(t *testing.T) {
	fake := addSeriesFake()
	fake.Err["GetLanguageProfiles"] = &sonarr.APIError{Message: "NotFound", StatusCode: 404}
	r := newTestRegistry(t, fake)

	res := call(t, r, "add_series", `{"query": "the wire", "qualityProfile": "hd-1080p"}`)
	require.False(t, res.IsError, text(res))

	added := fake.Added
	require.NotNil(t, added)
	assert.Equal(t, "The Wire", added.Title)
	assert.Equal(t, 4, added.QualityProfileID)
	assert.Equal(t, fallbackLanguageProfileID, added.LanguageProfileID)
	assert.Equal(t, "/tv", added.RootFolderPath)
	assert.True(t, added.Monitored)
	assert.True(t, added.SeasonFolder)
	assert.Equal(t, "standard", added.SeriesType)
	assert.NotNil(t, added.Tags)
	require.NotNil(t, added.AddOptions)
	assert.Equal(t, "all", added.AddOptions.Monitor)
	assert.False(t, added.AddOptions.SearchForMissingEpisodes)

	out := res.StructuredContent.(addedSeries)
	assert.Equal(t, 100, out.ID)
	assert.Equal(t, 79126, out.TvdbID)
	assert.Equal(t, "/tv/The Wire", out.Path)
	assert.Contains(t, text(res), "Successfully added series: The Wire (2002)")
}

func TestAddSeries_ProfileIDAndOptions(t *testing.T) {
	fake := addSeriesFake()
	fake.LanguageProfile = []sonarr.LanguageProfile{{ID: 3, Name: "English"}}
	r := newTestRegistry(t, fake)

	res := call(t, r, "add_series", `{"query": "The Wire", "qualityProfile": "4", "rootFolder": "/anime",
		"monitor": "future", "seasonFolder": false, "searchForMissingEpisodes": true, "seriesType": "anime"}`)
	require.False(t, res.IsError, text(res))

	assert.Zero(t, fake.Calls("GetQualityProfiles"), "numeric profiles are used as ids")
	assert.Zero(t, fake.Calls("GetRootFolders"))
	assert.Equal(t, 4, fake.Added.QualityProfileID)
	assert.Equal(t, 3, fake.Added.LanguageProfileID)
	assert.Equal(t, "/anime", fake.Added.RootFolderPath)
	assert.False(t, fake.Added.SeasonFolder)
	assert.Equal(t, "anime", fake.Added.SeriesType)
	assert.Equal(t, "future", fake.Added.AddOptions.Monitor)
	assert.True(t, fake.Added.AddOptions.SearchForMissingEpisodes)

	res = call(t, r, "add_series", `{"query": "The Wire", "qualityProfile": 1}`)
	require.False(t, res.IsError, text(res))
	assert.Equal(t, 1, fake.Added.QualityProfileID)
}

func TestUpdateSeries(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Series = librarySeries()
	fake.QualityProfiles = []sonarr.QualityProfile{{ID: 6, Name: "Ultra"}}
	r := newTestRegistry(t, fake)

	res := call(t, r, "update_series", `{"seriesId": 1}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "Failed to update series: invalid arguments: at least one")
	assert.Zero(t, fake.Calls("PatchSeries"))

	res = call(t, r, "update_series", `{"seriesId": 1, "monitored": false, "qualityProfile": "ultra", "tags": []}`)
	require.False(t, res.IsError, text(res))
	assert.Equal(t, map[string]any{"monitored": false, "qualityProfileId": 6, "tags": []int{}}, fake.Patched)
	assert.Contains(t, text(res), "changed: monitored, qualityProfileId, tags")
	assert.False(t, res.StructuredContent.(format.SeriesView).Monitored)
}

func TestRemoveSeries(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Series = librarySeries()
	r := newTestRegistry(t, fake)

	res := call(t, r, "remove_series", `{"seriesId": 2, "deleteFiles": true}`)
	require.False(t, res.IsError, text(res))
	assert.Contains(t, text(res), "Removed series: Better Call Saul (files deleted)")
	require.NotNil(t, fake.Deleted)
	assert.True(t, fake.Deleted.DeleteFiles)
	assert.False(t, fake.Deleted.AddImportListExclusion)

	res = call(t, r, "remove_series", `{"seriesId": 99}`)
	assert.True(t, res.IsError)
	assert.Equal(t, "Failed to remove series: NotFound", text(res))
	assert.Equal(t, 1, fake.Calls("DeleteSeries"))
}

func TestSearchSeries(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Lookup = []sonarr.Series{
		{ID: 5, Title: "Lost", Seasons: []sonarr.Season{{SeasonNumber: 1}, {SeasonNumber: 2}}},
		{Title: "Lost Girl"},
		{Title: "Lost in Space"},
	}
	r := newTestRegistry(t, fake)

	res := call(t, r, "search_series", `{"query": "lost", "limit": 2}`)
	require.False(t, res.IsError)
	out := res.StructuredContent.(seriesSearch)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Results, 2)
	assert.True(t, out.Results[0].InLibrary)
	assert.Equal(t, 2, out.Results[0].SeasonCount)
	assert.False(t, out.Results[1].InLibrary)
	assert.Contains(t, text(res), "showing 2")
}

func seasonEpisodes() []sonarr.Episode {
	return []sonarr.Episode{
		{ID: 12, SeasonNumber: 1, EpisodeNumber: 2, Monitored: true, HasFile: false},
		{ID: 11, SeasonNumber: 1, EpisodeNumber: 1, Monitored: true, HasFile: true},
		{ID: 13, SeasonNumber: 1, EpisodeNumber: 3, Monitored: false, HasFile: false},
		{ID: 21, SeasonNumber: 2, EpisodeNumber: 1, Monitored: true, HasFile: false},
	}
}

func TestListEpisodes(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Episodes = seasonEpisodes()
	r := newTestRegistry(t, fake)

	res := call(t, r, "list_episodes", `{"seriesId": 1, "seasonNumber": 1}`)
	require.False(t, res.IsError)
	out := res.StructuredContent.(episodeListing)
	require.Equal(t, 3, out.Count)
	assert.Equal(t, "S01E01", out.Episodes[0].Episode)
	assert.Equal(t, "S01E03", out.Episodes[2].Episode)

	res = call(t, r, "list_episodes", `{"seriesId": 1, "missingOnly": true}`)
	out = res.StructuredContent.(episodeListing)
	assert.Equal(t, 2, out.Count)
	assert.Contains(t, text(res), "Found 2 missing episodes")
}

func TestSearchAndMonitorEpisodes(t *testing.T) {
	fake := sonarrtest.NewFake()
	r := newTestRegistry(t, fake)

	res := call(t, r, "search_episodes", `{"episodeIds": [1, 2]}`)
	require.False(t, res.IsError)
	assert.Equal(t, []int{1, 2}, fake.Searched)
	assert.Equal(t, sonarr.CommandEpisodeSearch, fake.LastCommandKey)

	res = call(t, r, "monitor_episodes", `{"episodeIds": [3], "monitored": false}`)
	require.False(t, res.IsError)
	assert.Equal(t, []int{3}, fake.Monitored)
	assert.Contains(t, text(res), "Marked 1 episodes as unmonitored")
}

func TestSearchMissingEpisodes_Modes(t *testing.T) {
	t.Run("library", func(t *testing.T) {
		fake := sonarrtest.NewFake()
		res := call(t, newTestRegistry(t, fake), "search_missing_episodes", `{}`)
		require.False(t, res.IsError)
		assert.Equal(t, sonarr.CommandMissingEpisodeSearch, fake.LastCommandKey)
	})

	t.Run("series", func(t *testing.T) {
		fake := sonarrtest.NewFake()
		res := call(t, newTestRegistry(t, fake), "search_missing_episodes", `{"seriesId": 7}`)
		require.False(t, res.IsError)
		assert.Equal(t, sonarr.CommandSeriesSearch, fake.LastCommandKey)
		assert.Equal(t, 7, res.StructuredContent.(commandStarted).SeriesID)
	})

	t.Run("season", func(t *testing.T) {
		fake := sonarrtest.NewFake()
		fake.Episodes = seasonEpisodes()
		res := call(t, newTestRegistry(t, fake), "search_missing_episodes", `{"seriesId": 7, "seasonNumber": 1}`)
		require.False(t, res.IsError)
		assert.Equal(t, []int{12}, fake.Searched, "only monitored episodes without files")
		assert.Equal(t, 1, *fake.LastSeasonArg)
	})

	t.Run("season with nothing missing", func(t *testing.T) {
		fake := sonarrtest.NewFake()
		fake.Episodes = []sonarr.Episode{{ID: 1, SeasonNumber: 3, Monitored: true, HasFile: true}}
		res := call(t, newTestRegistry(t, fake), "search_missing_episodes", `{"seriesId": 7, "seasonNumber": 3}`)
		assert.False(t, res.IsError)
		assert.Contains(t, text(res), "No missing episodes found")
		assert.Zero(t, fake.Calls("SearchEpisodes"))
	})

	t.Run("season without series", func(t *testing.T) {
		fake := sonarrtest.NewFake()
		res := call(t, newTestRegistry(t, fake), "search_missing_episodes", `{"seasonNumber": 1}`)
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "invalid arguments: seasonNumber requires seriesId")
		assert.Zero(t, fake.TotalCalls())
	})
}

func TestManageQueue(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Queue = sonarr.Paged[sonarr.QueueItem]{
		Page: 1, PageSize: 100, TotalRecords: 2,
		Records: []sonarr.QueueItem{
			{ID: 1, Title: "a", Size: 1_000_000_000, SizeLeft: 200_000_000},
			{ID: 2, Title: "b"},
		},
	}
	r := newTestRegistry(t, fake)

	res := call(t, r, "manage_queue", `{}`)
	require.False(t, res.IsError)
	out := res.StructuredContent.(queueListing)
	assert.Equal(t, 80, out.Items[0].Progress)
	assert.Equal(t, format.UnknownProgress, out.Items[1].Progress)
	assert.Equal(t, 100, fake.LastPage.PageSize)

	res = call(t, r, "manage_queue", `{"action": "remove"}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "Failed to manage queue: invalid arguments: queueId is required")
	assert.Zero(t, fake.Calls("RemoveQueueItem"))

	res = call(t, r, "manage_queue", `{"action": "remove", "queueId": 1, "blocklist": true}`)
	require.False(t, res.IsError)
	assert.True(t, fake.RemovedQueue.RemoveFromClient, "removeFromClient defaults to true")
	assert.True(t, fake.RemovedQueue.Blocklist)
}

func TestGetHistory(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.History = sonarr.Paged[sonarr.HistoryItem]{Page: 2, PageSize: 5, TotalRecords: 11,
		Records: []sonarr.HistoryItem{{ID: 1, EventType: "grabbed"}}}
	fake.SeriesHistory = []sonarr.HistoryItem{{ID: 9}, {ID: 10}}
	r := newTestRegistry(t, fake)

	res := call(t, r, "get_history", `{"page": 2, "pageSize": 5, "eventType": "grabbed"}`)
	require.False(t, res.IsError)
	assert.Equal(t, 2, fake.LastHistory.Page)
	assert.Equal(t, "grabbed", fake.LastHistory.EventType)
	assert.Equal(t, 11, res.StructuredContent.(historyPage).TotalRecords)

	res = call(t, r, "get_history", `{"seriesId": 4}`)
	require.False(t, res.IsError)
	assert.Equal(t, 2, res.StructuredContent.(historyPage).TotalRecords)
	assert.Equal(t, 1, fake.Calls("GetSeriesHistory"))
}

func TestGetWanted(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.WantedCutoff = sonarr.Paged[sonarr.Episode]{Page: 1, PageSize: 20, TotalRecords: 1,
		Records: []sonarr.Episode{{ID: 1, SeasonNumber: 2, EpisodeNumber: 5}}}
	r := newTestRegistry(t, fake)

	res := call(t, r, "get_wanted", `{"type": "cutoff"}`)
	require.False(t, res.IsError)
	out := res.StructuredContent.(wantedPage)
	assert.Equal(t, "cutoff", out.Type)
	assert.Equal(t, "S02E05", out.Records[0].Episode)
	assert.Zero(t, fake.Calls("GetWantedMissing"))

	call(t, r, "get_wanted", `{}`)
	assert.Equal(t, 1, fake.Calls("GetWantedMissing"))
	assert.Equal(t, sonarr.PageQuery{Page: 1, PageSize: 20}, fake.LastPage)
}

func TestSystemStatus(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Status = sonarr.SystemStatus{Version: "4.0.1", OsName: "ubuntu", OsVersion: "22.04"}
	fake.Disks = []sonarr.DiskSpace{{Path: "/tv", FreeSpace: 500_000_000_000, TotalSpace: 1_000_000_000_000}}
	r := newTestRegistry(t, fake)

	res := call(t, r, "system_status", ``)
	require.False(t, res.IsError)
	assert.Contains(t, text(res), "Sonarr 4.0.1 on ubuntu 22.04")
	out := res.StructuredContent.(systemReport)
	require.Len(t, out.Disks, 1)
	assert.Equal(t, 465.66, out.Disks[0].FreeSpaceGB)
	assert.Equal(t, 50, out.Disks[0].PercentFree)

	fake.Err["GetDiskSpace"] = errors.New("No response from server")
	res = call(t, r, "system_status", `{}`)
	assert.True(t, res.IsError)
	assert.Equal(t, "Failed to get system status: No response from server", text(res))
}

func TestGetCalendar(t *testing.T) {
	fake := sonarrtest.NewFake()
	fake.Calendar = []sonarr.Episode{{ID: 1, Series: &sonarr.Series{Title: "Severance"}}}
	r := newTestRegistry(t, fake)

	res := call(t, r, "get_calendar", `{"days": 14, "includeUnmonitored": true}`)
	require.False(t, res.IsError)
	out := res.StructuredContent.(calendarWindow)
	assert.Equal(t, "2024-03-10", out.Start)
	assert.Equal(t, "2024-03-24", out.End)
	assert.Equal(t, "Severance", out.Episodes[0].SeriesTitle)
	assert.True(t, fake.LastCalendar.Unmonitored)

	call(t, r, "get_calendar", `{}`)
	assert.Equal(t, fixedNow.AddDate(0, 0, 7).Day(), fake.LastCalendar.End.Day())
}

func TestProfileRefUnmarshal(t *testing.T) {
	var p ProfileRef
	require.NoError(t, json.Unmarshal([]byte(`"HD-1080p"`), &p))
	assert.Equal(t, ProfileRef{Name: "HD-1080p"}, p)
	require.NoError(t, json.Unmarshal([]byte(`" 7 "`), &p))
	assert.Equal(t, ProfileRef{ID: 7}, p)
	require.NoError(t, json.Unmarshal([]byte(`3`), &p))
	assert.Equal(t, ProfileRef{ID: 3}, p)
	assert.Error(t, json.Unmarshal([]byte(`true`), &p))
}
