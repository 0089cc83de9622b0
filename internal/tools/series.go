// file: internal/tools/series.go
package tools

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	json "github.com/goccy/go-json"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// fallbackLanguageProfileID is used when the server has no language profiles (Sonarr v4).
const fallbackLanguageProfileID = 1

// ProfileRef names a quality profile either by id or by name.
type ProfileRef struct {
	ID   int
	Name string
}

// UnmarshalJSON accepts a number or a string. Numeric strings are treated as ids.
func (p *ProfileRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			*p = ProfileRef{ID: n}
			return nil
		}
		*p = ProfileRef{Name: s}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "quality profile must be a name or an id")
	}
	*p = ProfileRef{ID: n}
	return nil
}

// resolveQualityProfile maps a profile reference to an id. Ids are used as given.
func (r *Registry) resolveQualityProfile(ctx context.Context, ref ProfileRef) (int, error) {
	if ref.ID > 0 {
		return ref.ID, nil
	}
	profiles, err := r.api.GetQualityProfiles(ctx)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if strings.EqualFold(p.Name, ref.Name) {
			return p.ID, nil
		}
		names = append(names, p.Name)
	}
	return 0, errors.Newf("Quality profile %q not found. Available profiles: %s", ref.Name, strings.Join(names, ", "))
}

// languageProfileID returns the first language profile, or the fallback when the
// server does not support them.
func (r *Registry) languageProfileID(ctx context.Context) int {
	profiles, err := r.api.GetLanguageProfiles(ctx)
	if err != nil {
		r.logger.Debug("Language profiles unavailable, using fallback.", "error", err)
		return fallbackLanguageProfileID
	}
	if len(profiles) == 0 {
		return fallbackLanguageProfileID
	}
	return profiles[0].ID
}

func (r *Registry) defaultRootFolder(ctx context.Context) (string, error) {
	folders, err := r.api.GetRootFolders(ctx)
	if err != nil {
		return "", err
	}
	if len(folders) == 0 {
		return "", errors.New("No root folders are configured in Sonarr")
	}
	return folders[0].Path, nil
}

type addSeriesInput struct {
	Query                    string     `json:"query"`
	QualityProfile           ProfileRef `json:"qualityProfile"`
	RootFolder               string     `json:"rootFolder"`
	Monitor                  string     `json:"monitor"`
	SeasonFolder             bool       `json:"seasonFolder"`
	SearchForMissingEpisodes bool       `json:"searchForMissingEpisodes"`
	SeriesType               string     `json:"seriesType"`
}

func newAddSeriesInput() addSeriesInput {
	return addSeriesInput{Monitor: "all", SeasonFolder: true, SeriesType: "standard"}
}

type addedSeries struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Year             int    `json:"year,omitempty"`
	TvdbID           int    `json:"tvdbId"`
	Path             string `json:"path"`
	Monitored        bool   `json:"monitored"`
	QualityProfileID int    `json:"qualityProfileId"`
	SeasonFolder     bool   `json:"seasonFolder"`
}

func (r *Registry) addSeries(ctx context.Context, in addSeriesInput) (*sdk.CallToolResult, error) {
	results, err := r.api.LookupSeries(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.Newf("No series found matching %q", in.Query)
	}
	match := results[0]

	profileID, err := r.resolveQualityProfile(ctx, in.QualityProfile)
	if err != nil {
		return nil, err
	}
	rootFolder := in.RootFolder
	if rootFolder == "" {
		if rootFolder, err = r.defaultRootFolder(ctx); err != nil {
			return nil, err
		}
	}

	series := match
	series.ID = 0
	series.QualityProfileID = profileID
	series.LanguageProfileID = r.languageProfileID(ctx)
	series.RootFolderPath = rootFolder
	series.Monitored = true
	series.SeasonFolder = in.SeasonFolder
	series.SeriesType = in.SeriesType
	if series.Tags == nil {
		series.Tags = []int{}
	}
	series.AddOptions = &sonarr.AddOptions{
		Monitor:                  in.Monitor,
		SearchForMissingEpisodes: in.SearchForMissingEpisodes,
	}

	added, err := r.api.AddSeries(ctx, &series)
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("Successfully added series: %s", added.Title)
	if added.Year > 0 {
		summary += fmt.Sprintf(" (%d)", added.Year)
	}
	summary += fmt.Sprintf("\nPath: %s\nMonitor: %s", added.Path, in.Monitor)
	if in.SearchForMissingEpisodes {
		summary += "\nSearching for missing episodes."
	}
	return mcp.TextResult(summary, addedSeries{
		ID:               added.ID,
		Title:            added.Title,
		Year:             added.Year,
		TvdbID:           added.TvdbID,
		Path:             added.Path,
		Monitored:        added.Monitored,
		QualityProfileID: added.QualityProfileID,
		SeasonFolder:     added.SeasonFolder,
	})
}

type listSeriesInput struct {
	Monitored *bool  `json:"monitored"`
	Status    string `json:"status"`
	Title     string `json:"title"`
}

func newListSeriesInput() listSeriesInput { return listSeriesInput{} }

type seriesListing struct {
	Count  int                 `json:"count"`
	Series []format.SeriesView `json:"series"`
}

// filterSeries applies the monitored, status and title filters in that order.
// Every active filter must match.
func filterSeries(all []sonarr.Series, in listSeriesInput) []sonarr.Series {
	out := make([]sonarr.Series, 0, len(all))
	title := strings.ToLower(in.Title)
	for _, s := range all {
		if in.Monitored != nil && s.Monitored != *in.Monitored {
			continue
		}
		if in.Status != "" && !strings.EqualFold(s.Status, in.Status) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(s.Title), title) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (r *Registry) listSeries(ctx context.Context, in listSeriesInput) (*sdk.CallToolResult, error) {
	all, err := r.api.GetSeries(ctx)
	if err != nil {
		return nil, err
	}
	matched := filterSeries(all, in)

	var filters []string
	if in.Monitored != nil {
		filters = append(filters, fmt.Sprintf("monitored=%t", *in.Monitored))
	}
	if in.Status != "" {
		filters = append(filters, "status="+in.Status)
	}
	if in.Title != "" {
		filters = append(filters, fmt.Sprintf("title contains %q", in.Title))
	}
	summary := fmt.Sprintf("Found %d series", len(matched))
	if len(filters) > 0 {
		summary += " (" + strings.Join(filters, ", ") + ")"
	}
	return mcp.TextResult(summary, seriesListing{Count: len(matched), Series: format.SeriesList(matched)})
}

type updateSeriesInput struct {
	SeriesID       int         `json:"seriesId"`
	Monitored      *bool       `json:"monitored"`
	QualityProfile *ProfileRef `json:"qualityProfile"`
	SeasonFolder   *bool       `json:"seasonFolder"`
	SeriesType     *string     `json:"seriesType"`
	Tags           *[]int      `json:"tags"`
}

func newUpdateSeriesInput() updateSeriesInput { return updateSeriesInput{} }

func (r *Registry) updateSeries(ctx context.Context, in updateSeriesInput) (*sdk.CallToolResult, error) {
	changes := map[string]any{}
	if in.Monitored != nil {
		changes["monitored"] = *in.Monitored
	}
	if in.SeasonFolder != nil {
		changes["seasonFolder"] = *in.SeasonFolder
	}
	if in.SeriesType != nil {
		changes["seriesType"] = *in.SeriesType
	}
	if in.Tags != nil {
		tags := *in.Tags
		if tags == nil {
			tags = []int{}
		}
		changes["tags"] = tags
	}
	if in.QualityProfile != nil {
		profileID, err := r.resolveQualityProfile(ctx, *in.QualityProfile)
		if err != nil {
			return nil, err
		}
		changes["qualityProfileId"] = profileID
	}
	if len(changes) == 0 {
		return nil, invalidArguments("at least one of monitored, qualityProfile, seasonFolder, seriesType or tags is required")
	}

	updated, err := r.api.PatchSeries(ctx, in.SeriesID, changes)
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(changes))
	for k := range changes {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	summary := fmt.Sprintf("Updated series: %s (changed: %s)", updated.Title, strings.Join(fields, ", "))
	return mcp.TextResult(summary, format.Series(*updated))
}

type removeSeriesInput struct {
	SeriesID               int  `json:"seriesId"`
	DeleteFiles            bool `json:"deleteFiles"`
	AddImportListExclusion bool `json:"addImportListExclusion"`
}

func newRemoveSeriesInput() removeSeriesInput { return removeSeriesInput{} }

type removedSeries struct {
	ID                     int    `json:"id"`
	Title                  string `json:"title"`
	DeletedFiles           bool   `json:"deletedFiles"`
	AddImportListExclusion bool   `json:"addImportListExclusion"`
}

func (r *Registry) removeSeries(ctx context.Context, in removeSeriesInput) (*sdk.CallToolResult, error) {
	series, err := r.api.GetSeriesByID(ctx, in.SeriesID)
	if err != nil {
		return nil, err
	}
	err = r.api.DeleteSeries(ctx, in.SeriesID, sonarr.DeleteSeriesOptions{
		DeleteFiles:            in.DeleteFiles,
		AddImportListExclusion: in.AddImportListExclusion,
	})
	if err != nil {
		return nil, err
	}
	summary := "Removed series: " + series.Title
	if in.DeleteFiles {
		summary += " (files deleted)"
	}
	return mcp.TextResult(summary, removedSeries{
		ID:                     in.SeriesID,
		Title:                  series.Title,
		DeletedFiles:           in.DeleteFiles,
		AddImportListExclusion: in.AddImportListExclusion,
	})
}

type searchSeriesInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func newSearchSeriesInput() searchSeriesInput { return searchSeriesInput{Limit: 10} }

type seriesMatch struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Year        int    `json:"year,omitempty"`
	TvdbID      int    `json:"tvdbId"`
	Status      string `json:"status,omitempty"`
	Network     string `json:"network,omitempty"`
	SeasonCount int    `json:"seasonCount"`
	Overview    string `json:"overview,omitempty"`
	InLibrary   bool   `json:"inLibrary"`
}

type seriesSearch struct {
	Query   string        `json:"query"`
	Total   int           `json:"total"`
	Results []seriesMatch `json:"results"`
}

func (r *Registry) searchSeries(ctx context.Context, in searchSeriesInput) (*sdk.CallToolResult, error) {
	results, err := r.api.LookupSeries(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	shown := results
	if len(shown) > in.Limit {
		shown = shown[:in.Limit]
	}
	matches := make([]seriesMatch, 0, len(shown))
	for _, s := range shown {
		matches = append(matches, seriesMatch{
			ID:          s.ID,
			Title:       s.Title,
			Year:        s.Year,
			TvdbID:      s.TvdbID,
			Status:      s.Status,
			Network:     s.Network,
			SeasonCount: len(s.Seasons),
			Overview:    s.Overview,
			InLibrary:   s.ID > 0,
		})
	}
	summary := fmt.Sprintf("Found %d series matching %q", len(results), in.Query)
	if len(shown) < len(results) {
		summary += fmt.Sprintf(", showing %d", len(shown))
	}
	return mcp.TextResult(summary, seriesSearch{Query: in.Query, Total: len(results), Results: matches})
}
