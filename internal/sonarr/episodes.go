// file: internal/sonarr/episodes.go
package sonarr

import (
	"context"
	"net/url"
	"strconv"
)

// GetEpisodes lists a series' episodes. seasonNumber filters to one season when non-nil.
func (c *Client) GetEpisodes(ctx context.Context, seriesID int, seasonNumber *int) ([]Episode, error) {
	q := url.Values{"seriesId": {strconv.Itoa(seriesID)}}
	if seasonNumber != nil {
		q.Set("seasonNumber", strconv.Itoa(*seasonNumber))
	}
	var out []Episode
	if err := c.get(ctx, "/episode", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEpisodeByID returns one episode.
func (c *Client) GetEpisodeByID(ctx context.Context, id int) (*Episode, error) {
	var out Episode
	if err := c.get(ctx, "/episode/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEpisode replaces an episode record (last writer wins).
func (c *Client) UpdateEpisode(ctx context.Context, episode *Episode) (*Episode, error) {
	var out Episode
	if err := c.put(ctx, "/episode/"+strconv.Itoa(episode.ID), episode, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonitorEpisodes sets the monitored flag on many episodes at once.
func (c *Client) MonitorEpisodes(ctx context.Context, episodeIDs []int, monitored bool) error {
	body := EpisodeMonitorRequest{EpisodeIDs: episodeIDs, Monitored: monitored}
	return c.put(ctx, "/episode/monitor", body, nil)
}

// GetEpisodeFiles lists the files on disk for a series.
func (c *Client) GetEpisodeFiles(ctx context.Context, seriesID int) ([]EpisodeFile, error) {
	var out []EpisodeFile
	q := url.Values{"seriesId": {strconv.Itoa(seriesID)}}
	if err := c.get(ctx, "/episodefile", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEpisodeFile returns one episode file.
func (c *Client) GetEpisodeFile(ctx context.Context, id int) (*EpisodeFile, error) {
	var out EpisodeFile
	if err := c.get(ctx, "/episodefile/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEpisodeFile deletes an episode file from disk.
func (c *Client) DeleteEpisodeFile(ctx context.Context, id int) error {
	return c.del(ctx, "/episodefile/"+strconv.Itoa(id), nil)
}
