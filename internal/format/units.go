// Package format turns raw Sonarr records into the compact, human-oriented shapes
// returned by tools and resources.
// file: internal/format/units.go
package format

import (
	"fmt"
	"math"
	"time"
)

const bytesPerGB = 1024 * 1024 * 1024

// DateLayout is the calendar date format Sonarr accepts in queries.
const DateLayout = "2006-01-02"

// UnknownProgress is reported for queue entries whose size is not yet known.
const UnknownProgress = "Unknown"

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// BytesToGB converts a byte count to gibibytes rounded to two decimals.
func BytesToGB[N int64 | float64](b N) float64 {
	return Round(float64(b)/bytesPerGB, 2)
}

// PercentFree returns free/total as a whole percentage. A zero total reports 0.
func PercentFree(free, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(free) / float64(total) * 100))
}

// Progress returns the completed percentage of a download, or UnknownProgress
// when the size is zero.
func Progress(size, sizeLeft float64) any {
	if size <= 0 {
		return UnknownProgress
	}
	return int(math.Round((1 - sizeLeft/size) * 100))
}

// EpisodeCode renders the conventional S01E02 code.
func EpisodeCode(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
