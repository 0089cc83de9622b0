// file: internal/tools/catalog.go
package tools

import (
	"sort"

	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	"github.com/google/jsonschema-go/jsonschema"
)

var (
	monitorModes = []string{"all", "future", "missing", "existing", "firstSeason", "latestSeason", "pilot", "none"}
	seriesTypes  = []string{"standard", "daily", "anime"}
	seriesStatus = []string{"continuing", "ended", "upcoming", "deleted"}
)

func historyEventNames() []string {
	names := make([]string, 0, len(sonarr.HistoryEventTypes))
	for name := range sonarr.HistoryEventTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pageProps(props map[string]*jsonschema.Schema) map[string]*jsonschema.Schema {
	props["page"] = bounded("Page number, starting at 1.", 1, 10000, 1)
	props["pageSize"] = bounded("Records per page.", 1, 100, 20)
	return props
}

// catalog lists every tool in the order clients see them.
func (r *Registry) catalog() []tool {
	return []tool{
		{
			verb:    "add series",
			handler: bind(newAddSeriesInput, r.addSeries),
			def: mcp.ToolDefinition{
				Name:        "add_series",
				Title:       "Add Series",
				Description: "Searches for a TV series by name and adds the best match to Sonarr.",
				InputSchema: object([]string{"query", "qualityProfile"}, map[string]*jsonschema.Schema{
					"query":                    nonEmptyStr("Series name or search term."),
					"qualityProfile":           profileRef("Quality profile name (case-insensitive) or numeric id."),
					"rootFolder":               str("Root folder path. Defaults to the first configured root folder."),
					"monitor":                  enum("Which episodes to monitor.", "all", monitorModes...),
					"seasonFolder":             boolean("Store episodes in season folders.", ptr(true)),
					"searchForMissingEpisodes": boolean("Start searching for missing episodes after adding.", ptr(false)),
					"seriesType":               enum("Series type.", "standard", seriesTypes...),
				}),
			},
		},
		{
			verb:    "list series",
			handler: bind(newListSeriesInput, r.listSeries),
			def: mcp.ToolDefinition{
				Name:        "list_series",
				Title:       "List Series",
				Description: "Lists series in the Sonarr library, optionally filtered by monitored flag, status and title.",
				InputSchema: object(nil, map[string]*jsonschema.Schema{
					"monitored": boolean("Only series with this monitored flag.", nil),
					"status":    enum("Only series with this status.", "", seriesStatus...),
					"title":     str("Case-insensitive substring of the title."),
				}),
				ReadOnly:   true,
				Idempotent: true,
			},
		},
		{
			verb:    "update series",
			handler: bind(newUpdateSeriesInput, r.updateSeries),
			def: mcp.ToolDefinition{
				Name:        "update_series",
				Title:       "Update Series",
				Description: "Updates monitoring, quality profile, season folder, series type or tags of a series.",
				InputSchema: object([]string{"seriesId"}, map[string]*jsonschema.Schema{
					"seriesId":       id("Sonarr series id."),
					"monitored":      boolean("Monitor the series.", nil),
					"qualityProfile": profileRef("Quality profile name or numeric id."),
					"seasonFolder":   boolean("Store episodes in season folders.", nil),
					"seriesType":     enum("Series type.", "", seriesTypes...),
					"tags":           &jsonschema.Schema{Type: "array", Description: "Tag ids. Replaces the current tags.", Items: id("")},
				}),
				Idempotent: true,
			},
		},
		{
			verb:    "remove series",
			handler: bind(newRemoveSeriesInput, r.removeSeries),
			def: mcp.ToolDefinition{
				Name:        "remove_series",
				Title:       "Remove Series",
				Description: "Removes a series from Sonarr, optionally deleting its files.",
				InputSchema: object([]string{"seriesId"}, map[string]*jsonschema.Schema{
					"seriesId":               id("Sonarr series id."),
					"deleteFiles":            boolean("Delete the series folder and files.", ptr(false)),
					"addImportListExclusion": boolean("Prevent import lists from adding the series again.", ptr(false)),
				}),
				Destructive: true,
			},
		},
		{
			verb:    "search series",
			handler: bind(newSearchSeriesInput, r.searchSeries),
			def: mcp.ToolDefinition{
				Name:        "search_series",
				Title:       "Search Series",
				Description: "Searches TV metadata for series by name and marks those already in the library.",
				InputSchema: object([]string{"query"}, map[string]*jsonschema.Schema{
					"query": nonEmptyStr("Series name or search term."),
					"limit": bounded("Maximum results.", 1, 50, 10),
				}),
				ReadOnly:   true,
				Idempotent: true,
			},
		},
		{
			verb:    "list episodes",
			handler: bind(newListEpisodesInput, r.listEpisodes),
			def: mcp.ToolDefinition{
				Name:        "list_episodes",
				Title:       "List Episodes",
				Description: "Lists the episodes of a series, optionally one season or only missing episodes.",
				InputSchema: object([]string{"seriesId"}, map[string]*jsonschema.Schema{
					"seriesId":     id("Sonarr series id."),
					"seasonNumber": &jsonschema.Schema{Type: "integer", Description: "Season number.", Minimum: ptr(0.0)},
					"missingOnly":  boolean("Only monitored episodes without a file.", ptr(false)),
				}),
				ReadOnly:   true,
				Idempotent: true,
			},
		},
		{
			verb:    "search episodes",
			handler: bind(newEpisodeIDsInput, r.searchEpisodes),
			def: mcp.ToolDefinition{
				Name:        "search_episodes",
				Title:       "Search Episodes",
				Description: "Starts an indexer search for specific episodes.",
				InputSchema: object([]string{"episodeIds"}, map[string]*jsonschema.Schema{
					"episodeIds": idList("Episode ids to search for."),
				}),
			},
		},
		{
			verb:    "update episode monitoring",
			handler: bind(newMonitorEpisodesInput, r.monitorEpisodes),
			def: mcp.ToolDefinition{
				Name:        "monitor_episodes",
				Title:       "Monitor Episodes",
				Description: "Sets the monitored flag of one or more episodes.",
				InputSchema: object([]string{"episodeIds", "monitored"}, map[string]*jsonschema.Schema{
					"episodeIds": idList("Episode ids to update."),
					"monitored":  boolean("New monitored flag.", nil),
				}),
				Idempotent: true,
			},
		},
		{
			verb:    "manage queue",
			handler: bind(newManageQueueInput, r.manageQueue),
			def: mcp.ToolDefinition{
				Name:        "manage_queue",
				Title:       "Manage Download Queue",
				Description: "Lists the download queue or removes an entry from it.",
				InputSchema: object(nil, map[string]*jsonschema.Schema{
					"action":           enum("What to do.", "list", "list", "remove"),
					"queueId":          id("Queue entry id. Required for remove."),
					"removeFromClient": boolean("Also remove the download from the download client.", ptr(true)),
					"blocklist":        boolean("Blocklist the release so it is not grabbed again.", ptr(false)),
				}),
				Destructive: true,
			},
		},
		{
			verb:    "get history",
			handler: bind(newHistoryInput, r.getHistory),
			def: mcp.ToolDefinition{
				Name:        "get_history",
				Title:       "Get History",
				Description: "Returns recent grab, import and failure events, for all series or one series.",
				InputSchema: object(nil, pageProps(map[string]*jsonschema.Schema{
					"seriesId":  id("Only events for this series."),
					"eventType": enum("Only events of this type.", "", historyEventNames()...),
				})),
				ReadOnly:   true,
				Idempotent: true,
			},
		},
		{
			verb:    "search for missing episodes",
			handler: bind(newSearchMissingInput, r.searchMissingEpisodes),
			def: mcp.ToolDefinition{
				Name:        "search_missing_episodes",
				Title:       "Search Missing Episodes",
				Description: "Searches for missing episodes across the library, in one series, or in one season of a series.",
				InputSchema: object(nil, map[string]*jsonschema.Schema{
					"seriesId":     id("Limit the search to this series."),
					"seasonNumber": &jsonschema.Schema{Type: "integer", Description: "Limit the search to this season. Requires seriesId.", Minimum: ptr(0.0)},
				}),
			},
		},
		{
			verb:    "get wanted episodes",
			handler: bind(newWantedInput, r.getWanted),
			def: mcp.ToolDefinition{
				Name:        "get_wanted",
				Title:       "Get Wanted Episodes",
				Description: "Lists monitored episodes that are missing or below their quality cutoff.",
				InputSchema: object(nil, pageProps(map[string]*jsonschema.Schema{
					"type": enum("Missing episodes or cutoff-unmet episodes.", "missing", "missing", "cutoff"),
				})),
				ReadOnly:   true,
				Idempotent: true,
			},
		},
		{
			verb:    "get system status",
			handler: noInput(r.systemStatus),
			def: mcp.ToolDefinition{
				Name:        "system_status",
				Title:       "System Status",
				Description: "Reports the Sonarr version, host operating system and disk space.",
				InputSchema: emptyObject(),
				ReadOnly:    true,
				Idempotent:  true,
			},
		},
		{
			verb:    "get calendar",
			handler: bind(newCalendarInput, r.getCalendar),
			def: mcp.ToolDefinition{
				Name:        "get_calendar",
				Title:       "Get Calendar",
				Description: "Lists episodes airing from today over the next number of days.",
				InputSchema: object(nil, map[string]*jsonschema.Schema{
					"days":               bounded("Number of days to look ahead.", 1, 90, 7),
					"includeUnmonitored": boolean("Include unmonitored episodes.", ptr(false)),
				}),
				ReadOnly:   true,
				Idempotent: true,
			},
		},
	}
}
