// file: internal/format/format_test.go
package format

import (
	"testing"

	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	"github.com/stretchr/testify/assert"
)

func TestBytesToGB(t *testing.T) {
	assert.Equal(t, 465.66, BytesToGB(int64(500_000_000_000)))
	assert.Equal(t, 931.32, BytesToGB(int64(1_000_000_000_000)))
	assert.Equal(t, 1.0, BytesToGB(float64(1<<30)))
	assert.Equal(t, 0.0, BytesToGB(int64(0)))
}

func TestPercentFree(t *testing.T) {
	assert.Equal(t, 50, PercentFree(500_000_000_000, 1_000_000_000_000))
	assert.Equal(t, 33, PercentFree(1, 3))
	assert.Equal(t, 67, PercentFree(2, 3))
	assert.Equal(t, 0, PercentFree(10, 0))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 80, Progress(1_000_000_000, 200_000_000))
	assert.Equal(t, 100, Progress(10, 0))
	assert.Equal(t, UnknownProgress, Progress(0, 0))
}

func TestEpisodeCode(t *testing.T) {
	assert.Equal(t, "S01E02", EpisodeCode(1, 2))
	assert.Equal(t, "S10E115", EpisodeCode(10, 115))
	assert.Equal(t, "S00E00", EpisodeCode(0, 0))
}

func TestSeriesView(t *testing.T) {
	s := sonarr.Series{
		ID:        7,
		Title:     "The Expanse",
		Status:    "ended",
		Monitored: true,
		Statistics: &sonarr.SeriesStatistics{
			SeasonCount:      6,
			EpisodeCount:     62,
			EpisodeFileCount: 60,
			SizeOnDisk:       500_000_000_000,
		},
	}
	v := Series(s)
	assert.Equal(t, 7, v.ID)
	assert.Equal(t, 465.66, v.SizeOnDiskGB)
	assert.Equal(t, 60, v.EpisodeFileCount)

	bare := Series(sonarr.Series{ID: 1, Title: "New"})
	assert.Zero(t, bare.SizeOnDiskGB, "series without statistics report zero size")
}

func TestQueueView(t *testing.T) {
	item := sonarr.QueueItem{
		ID:       3,
		Title:    "Show.S01E02.720p",
		Size:     1_000_000_000,
		SizeLeft: 200_000_000,
		Series:   &sonarr.Series{Title: "Show"},
		Episode:  &sonarr.Episode{SeasonNumber: 1, EpisodeNumber: 2, Title: "Pilot"},
		Quality:  sonarr.QualityModel{Quality: sonarr.Quality{Name: "HDTV-720p"}},
	}
	v := QueueItem(item)
	assert.Equal(t, 80, v.Progress)
	assert.Equal(t, "Show", v.SeriesTitle)
	assert.Equal(t, "S01E02", v.Episode)
	assert.Equal(t, "HDTV-720p", v.Quality)
	assert.Equal(t, 0.93, v.SizeGB)

	assert.Equal(t, UnknownProgress, QueueItem(sonarr.QueueItem{ID: 4}).Progress)
}

func TestDisks(t *testing.T) {
	disks := Disks([]sonarr.DiskSpace{{Path: "/tv", FreeSpace: 500_000_000_000, TotalSpace: 1_000_000_000_000}})
	assert.Equal(t, []DiskView{{Path: "/tv", FreeSpaceGB: 465.66, TotalSpaceGB: 931.32, PercentFree: 50}}, disks)
}
