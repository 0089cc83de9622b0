// file: internal/sonarr/series.go
package sonarr

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
)

// GetSeries returns every series in the library.
func (c *Client) GetSeries(ctx context.Context) ([]Series, error) {
	var out []Series
	if err := c.get(ctx, "/series", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSeriesByID returns one series.
func (c *Client) GetSeriesByID(ctx context.Context, id int) (*Series, error) {
	var out Series
	if err := c.get(ctx, "/series/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LookupSeries searches the metadata provider by free text. Results are ordered
// best match first; entries already in the library carry a non-zero ID.
func (c *Client) LookupSeries(ctx context.Context, term string) ([]Series, error) {
	var out []Series
	if err := c.get(ctx, "/series/lookup", url.Values{"term": {term}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddSeries adds a series to the library.
func (c *Client) AddSeries(ctx context.Context, series *Series) (*Series, error) {
	var out Series
	if err := c.post(ctx, "/series", series, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSeries replaces a series record. The record must be complete; Sonarr has
// no optimistic concurrency, so the last writer wins.
func (c *Client) UpdateSeries(ctx context.Context, series *Series) (*Series, error) {
	var out Series
	if err := c.put(ctx, "/series/"+strconv.Itoa(series.ID), series, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchSeries fetches the raw series record, overlays changes and PUTs the whole
// record back. Working on the raw document keeps fields the Series type does not
// model. There is no concurrency guard: a concurrent writer between the GET and
// the PUT is silently overwritten.
func (c *Client) PatchSeries(ctx context.Context, id int, changes map[string]any) (*Series, error) {
	path := "/series/" + strconv.Itoa(id)
	var current map[string]any
	if err := c.get(ctx, path, nil, &current); err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors.Newf("series %d returned an empty record", id)
	}
	for k, v := range changes {
		current[k] = v
	}
	var out Series
	if err := c.put(ctx, path, current, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSeries removes a series, optionally deleting its files and excluding it from import lists.
func (c *Client) DeleteSeries(ctx context.Context, id int, opts DeleteSeriesOptions) error {
	q := url.Values{
		"deleteFiles":            {strconv.FormatBool(opts.DeleteFiles)},
		"addImportListExclusion": {strconv.FormatBool(opts.AddImportListExclusion)},
	}
	return c.del(ctx, "/series/"+strconv.Itoa(id), q)
}
