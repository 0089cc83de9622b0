// file: internal/sonarr/activity.go
package sonarr

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

func (p PageQuery) values() url.Values {
	page, size := p.Page, p.PageSize
	if page < 1 {
		page = defaultPage
	}
	if size < 1 {
		size = defaultPageSize
	}
	return url.Values{
		"page":     {strconv.Itoa(page)},
		"pageSize": {strconv.Itoa(size)},
	}
}

// GetQueue returns a page of the download queue with series and episode details.
func (c *Client) GetQueue(ctx context.Context, pq PageQuery) (*Paged[QueueItem], error) {
	q := pq.values()
	q.Set("includeSeries", "true")
	q.Set("includeEpisode", "true")
	var out Paged[QueueItem]
	if err := c.get(ctx, "/queue", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveQueueItem removes an entry from the queue.
func (c *Client) RemoveQueueItem(ctx context.Context, id int, opts RemoveQueueOptions) error {
	q := url.Values{
		"removeFromClient": {strconv.FormatBool(opts.RemoveFromClient)},
		"blocklist":        {strconv.FormatBool(opts.Blocklist)},
	}
	return c.del(ctx, "/queue/"+strconv.Itoa(id), q)
}

// GetHistory returns a page of history, newest first.
func (c *Client) GetHistory(ctx context.Context, hq HistoryQuery) (*Paged[HistoryItem], error) {
	q := hq.values()
	q.Set("sortKey", "date")
	q.Set("sortDirection", "descending")
	q.Set("includeSeries", "true")
	q.Set("includeEpisode", "true")
	if hq.EventType != "" {
		code, ok := HistoryEventTypes[hq.EventType]
		if !ok {
			return nil, errors.Newf("unknown history event type %q", hq.EventType)
		}
		q.Set("eventType", strconv.Itoa(code))
	}
	var out Paged[HistoryItem]
	if err := c.get(ctx, "/history", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSeriesHistory returns the full history of one series. The endpoint is not paginated.
func (c *Client) GetSeriesHistory(ctx context.Context, seriesID int, eventType string) ([]HistoryItem, error) {
	q := url.Values{
		"seriesId":       {strconv.Itoa(seriesID)},
		"includeEpisode": {"true"},
	}
	if eventType != "" {
		code, ok := HistoryEventTypes[eventType]
		if !ok {
			return nil, errors.Newf("unknown history event type %q", eventType)
		}
		q.Set("eventType", strconv.Itoa(code))
	}
	var out []HistoryItem
	if err := c.get(ctx, "/history/series", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCalendar returns episodes airing between Start and End (dates, inclusive).
func (c *Client) GetCalendar(ctx context.Context, cq CalendarQuery) ([]Episode, error) {
	q := url.Values{
		"start":         {cq.Start.Format("2006-01-02")},
		"end":           {cq.End.Format("2006-01-02")},
		"unmonitored":   {strconv.FormatBool(cq.Unmonitored)},
		"includeSeries": {"true"},
	}
	var out []Episode
	if err := c.get(ctx, "/calendar", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWantedMissing returns a page of monitored episodes without files.
func (c *Client) GetWantedMissing(ctx context.Context, pq PageQuery) (*Paged[Episode], error) {
	return c.getWanted(ctx, "/wanted/missing", pq, "airDateUtc")
}

// GetWantedCutoff returns a page of episodes whose file has not met the profile cutoff.
func (c *Client) GetWantedCutoff(ctx context.Context, pq PageQuery) (*Paged[Episode], error) {
	return c.getWanted(ctx, "/wanted/cutoff", pq, "airDateUtc")
}

func (c *Client) getWanted(ctx context.Context, path string, pq PageQuery, sortKey string) (*Paged[Episode], error) {
	q := pq.values()
	q.Set("sortKey", sortKey)
	q.Set("sortDirection", "descending")
	q.Set("includeSeries", "true")
	q.Set("monitored", "true")
	var out Paged[Episode]
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
