// file: internal/tools/activity.go
package tools

import (
	"context"
	"fmt"

	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const queueListSize = 100

type manageQueueInput struct {
	Action           string `json:"action"`
	QueueID          *int   `json:"queueId"`
	RemoveFromClient bool   `json:"removeFromClient"`
	Blocklist        bool   `json:"blocklist"`
}

func newManageQueueInput() manageQueueInput {
	return manageQueueInput{Action: "list", RemoveFromClient: true}
}

type queueListing struct {
	TotalRecords int                `json:"totalRecords"`
	Count        int                `json:"count"`
	Items        []format.QueueView `json:"items"`
}

type queueRemoval struct {
	QueueID          int  `json:"queueId"`
	RemoveFromClient bool `json:"removeFromClient"`
	Blocklist        bool `json:"blocklist"`
}

func (r *Registry) manageQueue(ctx context.Context, in manageQueueInput) (*sdk.CallToolResult, error) {
	switch in.Action {
	case "list":
		page, err := r.api.GetQueue(ctx, sonarr.PageQuery{Page: 1, PageSize: queueListSize})
		if err != nil {
			return nil, err
		}
		items := format.Queue(page.Records)
		summary := fmt.Sprintf("Queue has %d items", page.TotalRecords)
		if len(items) < page.TotalRecords {
			summary += fmt.Sprintf(", showing %d", len(items))
		}
		return mcp.TextResult(summary, queueListing{TotalRecords: page.TotalRecords, Count: len(items), Items: items})

	case "remove":
		if in.QueueID == nil {
			return nil, invalidArguments("queueId is required when action is remove")
		}
		err := r.api.RemoveQueueItem(ctx, *in.QueueID, sonarr.RemoveQueueOptions{
			RemoveFromClient: in.RemoveFromClient,
			Blocklist:        in.Blocklist,
		})
		if err != nil {
			return nil, err
		}
		summary := fmt.Sprintf("Removed queue item %d", *in.QueueID)
		if in.Blocklist {
			summary += " and blocklisted the release"
		}
		return mcp.TextResult(summary, queueRemoval{
			QueueID:          *in.QueueID,
			RemoveFromClient: in.RemoveFromClient,
			Blocklist:        in.Blocklist,
		})
	}
	return nil, invalidArguments("unknown action %q", in.Action)
}

type historyInput struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	SeriesID  *int   `json:"seriesId"`
	EventType string `json:"eventType"`
}

func newHistoryInput() historyInput { return historyInput{Page: 1, PageSize: 20} }

type historyPage struct {
	SeriesID     int                  `json:"seriesId,omitempty"`
	Page         int                  `json:"page,omitempty"`
	PageSize     int                  `json:"pageSize,omitempty"`
	TotalRecords int                  `json:"totalRecords"`
	Records      []format.HistoryView `json:"records"`
}

func (r *Registry) getHistory(ctx context.Context, in historyInput) (*sdk.CallToolResult, error) {
	if in.SeriesID != nil {
		items, err := r.api.GetSeriesHistory(ctx, *in.SeriesID, in.EventType)
		if err != nil {
			return nil, err
		}
		return mcp.TextResult(fmt.Sprintf("Found %d history events for series %d", len(items), *in.SeriesID), historyPage{
			SeriesID:     *in.SeriesID,
			TotalRecords: len(items),
			Records:      format.History(items),
		})
	}

	page, err := r.api.GetHistory(ctx, sonarr.HistoryQuery{
		PageQuery: sonarr.PageQuery{Page: in.Page, PageSize: in.PageSize},
		EventType: in.EventType,
	})
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("Showing %d of %d history events (page %d)", len(page.Records), page.TotalRecords, page.Page)
	return mcp.TextResult(summary, historyPage{
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalRecords: page.TotalRecords,
		Records:      format.History(page.Records),
	})
}

type wantedInput struct {
	Type     string `json:"type"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

func newWantedInput() wantedInput { return wantedInput{Type: "missing", Page: 1, PageSize: 20} }

type wantedPage struct {
	Type         string               `json:"type"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"pageSize"`
	TotalRecords int                  `json:"totalRecords"`
	Records      []format.EpisodeView `json:"records"`
}

func (r *Registry) getWanted(ctx context.Context, in wantedInput) (*sdk.CallToolResult, error) {
	pq := sonarr.PageQuery{Page: in.Page, PageSize: in.PageSize}
	fetch, label := r.api.GetWantedMissing, "missing"
	if in.Type == "cutoff" {
		fetch, label = r.api.GetWantedCutoff, "cutoff unmet"
	}
	page, err := fetch(ctx, pq)
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("Found %d %s episodes (page %d, showing %d)", page.TotalRecords, label, page.Page, len(page.Records))
	return mcp.TextResult(summary, wantedPage{
		Type:         in.Type,
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalRecords: page.TotalRecords,
		Records:      format.Episodes(page.Records),
	})
}

type calendarInput struct {
	Days               int  `json:"days"`
	IncludeUnmonitored bool `json:"includeUnmonitored"`
}

func newCalendarInput() calendarInput { return calendarInput{Days: 7} }

type calendarWindow struct {
	Start    string               `json:"start"`
	End      string               `json:"end"`
	Count    int                  `json:"count"`
	Episodes []format.EpisodeView `json:"episodes"`
}

func (r *Registry) getCalendar(ctx context.Context, in calendarInput) (*sdk.CallToolResult, error) {
	start := format.StartOfDay(r.now())
	end := start.AddDate(0, 0, in.Days)
	episodes, err := r.api.GetCalendar(ctx, sonarr.CalendarQuery{
		Start:       start,
		End:         end,
		Unmonitored: in.IncludeUnmonitored,
	})
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("Found %d episodes airing in the next %d days", len(episodes), in.Days)
	return mcp.TextResult(summary, calendarWindow{
		Start:    start.Format(format.DateLayout),
		End:      end.Format(format.DateLayout),
		Count:    len(episodes),
		Episodes: format.Episodes(episodes),
	})
}
