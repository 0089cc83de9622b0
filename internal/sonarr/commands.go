// file: internal/sonarr/commands.go
package sonarr

import (
	"context"
	"strconv"
)

// RunCommand queues a command. Sonarr answers immediately with the queued command.
func (c *Client) RunCommand(ctx context.Context, cmd CommandRequest) (*Command, error) {
	var out Command
	if err := c.post(ctx, "/command", cmd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCommand returns the status of a queued or finished command.
func (c *Client) GetCommand(ctx context.Context, id int) (*Command, error) {
	var out Command
	if err := c.get(ctx, "/command/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCommands lists recent commands.
func (c *Client) GetCommands(ctx context.Context) ([]Command, error) {
	var out []Command
	if err := c.get(ctx, "/command", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchMissingEpisodes triggers a library-wide search for missing episodes.
func (c *Client) SearchMissingEpisodes(ctx context.Context) (*Command, error) {
	return c.RunCommand(ctx, CommandRequest{Name: CommandMissingEpisodeSearch})
}

// SearchSeries triggers a search for every monitored episode of a series.
func (c *Client) SearchSeries(ctx context.Context, seriesID int) (*Command, error) {
	return c.RunCommand(ctx, CommandRequest{Name: CommandSeriesSearch, SeriesID: seriesID})
}

// SearchSeason triggers a search for one season.
func (c *Client) SearchSeason(ctx context.Context, seriesID, seasonNumber int) (*Command, error) {
	return c.RunCommand(ctx, CommandRequest{
		Name:         CommandSeasonSearch,
		SeriesID:     seriesID,
		SeasonNumber: &seasonNumber,
	})
}

// SearchEpisodes triggers a search for specific episodes.
func (c *Client) SearchEpisodes(ctx context.Context, episodeIDs []int) (*Command, error) {
	return c.RunCommand(ctx, CommandRequest{Name: CommandEpisodeSearch, EpisodeIDs: episodeIDs})
}

// RefreshSeries refreshes metadata and rescans disk for a series.
func (c *Client) RefreshSeries(ctx context.Context, seriesID int) (*Command, error) {
	return c.RunCommand(ctx, CommandRequest{Name: CommandRefreshSeries, SeriesID: seriesID})
}

// RssSync triggers an RSS sync across indexers.
func (c *Client) RssSync(ctx context.Context) (*Command, error) {
	return c.RunCommand(ctx, CommandRequest{Name: CommandRssSync})
}
