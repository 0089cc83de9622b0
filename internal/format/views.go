// file: internal/format/views.go
package format

import (
	"time"

	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
)

// SeriesView is the flattened summary of a library series.
type SeriesView struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Year             int        `json:"year,omitempty"`
	Status           string     `json:"status"`
	Monitored        bool       `json:"monitored"`
	Network          string     `json:"network,omitempty"`
	SeriesType       string     `json:"seriesType,omitempty"`
	QualityProfileID int        `json:"qualityProfileId"`
	SeasonFolder     bool       `json:"seasonFolder"`
	Path             string     `json:"path,omitempty"`
	SeasonCount      int        `json:"seasonCount"`
	EpisodeCount     int        `json:"episodeCount"`
	EpisodeFileCount int        `json:"episodeFileCount"`
	SizeOnDiskGB     float64    `json:"sizeOnDiskGB"`
	NextAiring       *time.Time `json:"nextAiring,omitempty"`
	Tags             []int      `json:"tags,omitempty"`
}

// Series flattens a series record.
func Series(s sonarr.Series) SeriesView {
	v := SeriesView{
		ID:               s.ID,
		Title:            s.Title,
		Year:             s.Year,
		Status:           s.Status,
		Monitored:        s.Monitored,
		Network:          s.Network,
		SeriesType:       s.SeriesType,
		QualityProfileID: s.QualityProfileID,
		SeasonFolder:     s.SeasonFolder,
		Path:             s.Path,
		NextAiring:       s.NextAiring,
		Tags:             s.Tags,
	}
	if st := s.Statistics; st != nil {
		v.SeasonCount = st.SeasonCount
		v.EpisodeCount = st.EpisodeCount
		v.EpisodeFileCount = st.EpisodeFileCount
		v.SizeOnDiskGB = BytesToGB(st.SizeOnDisk)
	}
	return v
}

// SeriesList flattens every series in order.
func SeriesList(list []sonarr.Series) []SeriesView {
	out := make([]SeriesView, 0, len(list))
	for _, s := range list {
		out = append(out, Series(s))
	}
	return out
}

// EpisodeView is the flattened summary of an episode.
type EpisodeView struct {
	ID            int    `json:"id"`
	SeriesID      int    `json:"seriesId"`
	SeriesTitle   string `json:"seriesTitle,omitempty"`
	Episode       string `json:"episode"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	AirDate       string `json:"airDate,omitempty"`
	HasFile       bool   `json:"hasFile"`
	Monitored     bool   `json:"monitored"`
}

// Episode flattens an episode. The series title is filled when Sonarr embedded the series.
func Episode(e sonarr.Episode) EpisodeView {
	v := EpisodeView{
		ID:            e.ID,
		SeriesID:      e.SeriesID,
		Episode:       EpisodeCode(e.SeasonNumber, e.EpisodeNumber),
		SeasonNumber:  e.SeasonNumber,
		EpisodeNumber: e.EpisodeNumber,
		Title:         e.Title,
		AirDate:       e.AirDate,
		HasFile:       e.HasFile,
		Monitored:     e.Monitored,
	}
	if e.Series != nil {
		v.SeriesTitle = e.Series.Title
	}
	return v
}

// Episodes flattens every episode in order.
func Episodes(list []sonarr.Episode) []EpisodeView {
	out := make([]EpisodeView, 0, len(list))
	for _, e := range list {
		out = append(out, Episode(e))
	}
	return out
}

// QueueView is the flattened summary of a download queue entry.
type QueueView struct {
	ID             int     `json:"id"`
	SeriesTitle    string  `json:"seriesTitle,omitempty"`
	Episode        string  `json:"episode,omitempty"`
	EpisodeTitle   string  `json:"episodeTitle,omitempty"`
	Title          string  `json:"title"`
	Quality        string  `json:"quality"`
	Status         string  `json:"status"`
	Progress       any     `json:"progress"`
	SizeGB         float64 `json:"sizeGB"`
	TimeLeft       string  `json:"timeLeft,omitempty"`
	DownloadClient string  `json:"downloadClient,omitempty"`
	Protocol       string  `json:"protocol,omitempty"`
	ErrorMessage   string  `json:"errorMessage,omitempty"`
}

// QueueItem flattens a queue entry and computes its progress.
func QueueItem(q sonarr.QueueItem) QueueView {
	v := QueueView{
		ID:             q.ID,
		Title:          q.Title,
		Quality:        q.Quality.Quality.Name,
		Status:         q.Status,
		Progress:       Progress(q.Size, q.SizeLeft),
		SizeGB:         BytesToGB(q.Size),
		TimeLeft:       q.TimeLeft,
		DownloadClient: q.DownloadClient,
		Protocol:       q.Protocol,
		ErrorMessage:   q.ErrorMessage,
	}
	if q.Series != nil {
		v.SeriesTitle = q.Series.Title
	}
	if q.Episode != nil {
		v.Episode = EpisodeCode(q.Episode.SeasonNumber, q.Episode.EpisodeNumber)
		v.EpisodeTitle = q.Episode.Title
	}
	return v
}

// Queue flattens every queue entry in order.
func Queue(list []sonarr.QueueItem) []QueueView {
	out := make([]QueueView, 0, len(list))
	for _, q := range list {
		out = append(out, QueueItem(q))
	}
	return out
}

// HistoryView is the flattened summary of a history event.
type HistoryView struct {
	ID           int       `json:"id"`
	Date         time.Time `json:"date"`
	EventType    string    `json:"eventType"`
	SeriesID     int       `json:"seriesId"`
	SeriesTitle  string    `json:"seriesTitle,omitempty"`
	Episode      string    `json:"episode,omitempty"`
	EpisodeTitle string    `json:"episodeTitle,omitempty"`
	SourceTitle  string    `json:"sourceTitle"`
	Quality      string    `json:"quality"`
}

// HistoryItem flattens a history event.
func HistoryItem(h sonarr.HistoryItem) HistoryView {
	v := HistoryView{
		ID:          h.ID,
		Date:        h.Date,
		EventType:   h.EventType,
		SeriesID:    h.SeriesID,
		SourceTitle: h.SourceTitle,
		Quality:     h.Quality.Quality.Name,
	}
	if h.Series != nil {
		v.SeriesTitle = h.Series.Title
	}
	if h.Episode != nil {
		v.Episode = EpisodeCode(h.Episode.SeasonNumber, h.Episode.EpisodeNumber)
		v.EpisodeTitle = h.Episode.Title
	}
	return v
}

// History flattens every history event in order.
func History(list []sonarr.HistoryItem) []HistoryView {
	out := make([]HistoryView, 0, len(list))
	for _, h := range list {
		out = append(out, HistoryItem(h))
	}
	return out
}

// DiskView reports one disk in gigabytes.
type DiskView struct {
	Path         string  `json:"path"`
	Label        string  `json:"label,omitempty"`
	FreeSpaceGB  float64 `json:"freeSpaceGB"`
	TotalSpaceGB float64 `json:"totalSpaceGB"`
	PercentFree  int     `json:"percentFree"`
}

// Disks converts every disk entry to gigabytes.
func Disks(list []sonarr.DiskSpace) []DiskView {
	out := make([]DiskView, 0, len(list))
	for _, d := range list {
		out = append(out, DiskView{
			Path:         d.Path,
			Label:        d.Label,
			FreeSpaceGB:  BytesToGB(d.FreeSpace),
			TotalSpaceGB: BytesToGB(d.TotalSpace),
			PercentFree:  PercentFree(d.FreeSpace, d.TotalSpace),
		})
	}
	return out
}
