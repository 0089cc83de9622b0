// file: internal/tools/episodes.go
package tools

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// isMissing reports a monitored episode that has no file.
func isMissing(e sonarr.Episode) bool {
	return e.Monitored && !e.HasFile
}

type listEpisodesInput struct {
	SeriesID     int  `json:"seriesId"`
	SeasonNumber *int `json:"seasonNumber"`
	MissingOnly  bool `json:"missingOnly"`
}

func newListEpisodesInput() listEpisodesInput { return listEpisodesInput{} }

type episodeListing struct {
	SeriesID     int                  `json:"seriesId"`
	SeasonNumber *int                 `json:"seasonNumber,omitempty"`
	Count        int                  `json:"count"`
	Episodes     []format.EpisodeView `json:"episodes"`
}

func (r *Registry) listEpisodes(ctx context.Context, in listEpisodesInput) (*sdk.CallToolResult, error) {
	episodes, err := r.api.GetEpisodes(ctx, in.SeriesID, in.SeasonNumber)
	if err != nil {
		return nil, err
	}
	if in.MissingOnly {
		episodes = slices.DeleteFunc(episodes, func(e sonarr.Episode) bool { return !isMissing(e) })
	}
	slices.SortStableFunc(episodes, func(a, b sonarr.Episode) int {
		if c := cmp.Compare(a.SeasonNumber, b.SeasonNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.EpisodeNumber, b.EpisodeNumber)
	})

	summary := fmt.Sprintf("Found %d", len(episodes))
	if in.MissingOnly {
		summary += " missing"
	}
	summary += fmt.Sprintf(" episodes for series %d", in.SeriesID)
	if in.SeasonNumber != nil {
		summary += fmt.Sprintf(", season %d", *in.SeasonNumber)
	}
	return mcp.TextResult(summary, episodeListing{
		SeriesID:     in.SeriesID,
		SeasonNumber: in.SeasonNumber,
		Count:        len(episodes),
		Episodes:     format.Episodes(episodes),
	})
}

type episodeIDsInput struct {
	EpisodeIDs []int `json:"episodeIds"`
}

func newEpisodeIDsInput() episodeIDsInput { return episodeIDsInput{} }

type commandStarted struct {
	CommandID  int    `json:"commandId"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	SeriesID   int    `json:"seriesId,omitempty"`
	EpisodeIDs []int  `json:"episodeIds,omitempty"`
}

func started(cmd *sonarr.Command) commandStarted {
	return commandStarted{CommandID: cmd.ID, Name: cmd.Name, Status: cmd.Status}
}

func (r *Registry) searchEpisodes(ctx context.Context, in episodeIDsInput) (*sdk.CallToolResult, error) {
	cmd, err := r.api.SearchEpisodes(ctx, in.EpisodeIDs)
	if err != nil {
		return nil, err
	}
	out := started(cmd)
	out.EpisodeIDs = in.EpisodeIDs
	return mcp.TextResult(fmt.Sprintf("Started search for %d episodes (command %d)", len(in.EpisodeIDs), cmd.ID), out)
}

type monitorEpisodesInput struct {
	EpisodeIDs []int `json:"episodeIds"`
	Monitored  bool  `json:"monitored"`
}

func newMonitorEpisodesInput() monitorEpisodesInput { return monitorEpisodesInput{} }

type monitoredEpisodes struct {
	EpisodeIDs []int `json:"episodeIds"`
	Monitored  bool  `json:"monitored"`
}

func (r *Registry) monitorEpisodes(ctx context.Context, in monitorEpisodesInput) (*sdk.CallToolResult, error) {
	if err := r.api.MonitorEpisodes(ctx, in.EpisodeIDs, in.Monitored); err != nil {
		return nil, err
	}
	state := "monitored"
	if !in.Monitored {
		state = "unmonitored"
	}
	return mcp.TextResult(fmt.Sprintf("Marked %d episodes as %s", len(in.EpisodeIDs), state),
		monitoredEpisodes(in))
}

type searchMissingInput struct {
	SeriesID     *int `json:"seriesId"`
	SeasonNumber *int `json:"seasonNumber"`
}

func newSearchMissingInput() searchMissingInput { return searchMissingInput{} }

// searchMissingEpisodes picks one of three scopes from the arguments present:
// the whole library, one series, or the missing episodes of one season.
func (r *Registry) searchMissingEpisodes(ctx context.Context, in searchMissingInput) (*sdk.CallToolResult, error) {
	switch {
	case in.SeriesID == nil && in.SeasonNumber != nil:
		return nil, invalidArguments("seasonNumber requires seriesId")

	case in.SeriesID == nil:
		cmd, err := r.api.SearchMissingEpisodes(ctx)
		if err != nil {
			return nil, err
		}
		return mcp.TextResult(fmt.Sprintf("Started search for all missing episodes (command %d)", cmd.ID), started(cmd))

	case in.SeasonNumber == nil:
		cmd, err := r.api.SearchSeries(ctx, *in.SeriesID)
		if err != nil {
			return nil, err
		}
		out := started(cmd)
		out.SeriesID = *in.SeriesID
		return mcp.TextResult(fmt.Sprintf("Started search for missing episodes of series %d (command %d)", *in.SeriesID, cmd.ID), out)
	}

	seriesID, season := *in.SeriesID, *in.SeasonNumber
	episodes, err := r.api.GetEpisodes(ctx, seriesID, &season)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, e := range episodes {
		if e.SeasonNumber == season && isMissing(e) {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return mcp.TextResult(fmt.Sprintf("No missing episodes found in season %d of series %d", season, seriesID),
			commandStarted{SeriesID: seriesID, EpisodeIDs: []int{}})
	}
	cmd, err := r.api.SearchEpisodes(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := started(cmd)
	out.SeriesID = seriesID
	out.EpisodeIDs = ids
	return mcp.TextResult(fmt.Sprintf("Started search for %d missing episodes in season %d of series %d (command %d)",
		len(ids), season, seriesID, cmd.ID), out)
}
