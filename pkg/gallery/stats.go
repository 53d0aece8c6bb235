package gallery

import (
	"strconv"
	"time"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// CountText is the total shown for a collection, a dash when empty
func CountText(records []models.ImageRecord) string {
	if len(records) == 0 {
		return "—"
	}
	return strconv.Itoa(len(records))
}

// TodayCount counts records uploaded on now's calendar day in loc. Days are
// compared as formatted local dates, so records near midnight or from other
// timezones can land on the neighbouring day. Records without a timestamp
// count as the epoch.
func TodayCount(records []models.ImageRecord, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc).Format(dateKey)

	n := 0
	for _, rec := range records {
		uploaded := rec.UploadedAt.Time
		if uploaded.IsZero() {
			uploaded = time.Unix(0, 0)
		}
		if uploaded.In(loc).Format(dateKey) == today {
			n++
		}
	}
	return n
}

// CollectedText is the "last collect" stamp shown beside the jenna count
func CollectedText(now time.Time) string {
	return now.Format("1/2/2006 3:04:05 PM")
}

const dateKey = "Mon Jan 02 2006"

// Stats is a read-only snapshot of both collections
type Stats struct {
	GalleryCount string `json:"gallery_count" yaml:"gallery_count"`
	TodayCount   int    `json:"today_count" yaml:"today_count"`
	JennaCount   string `json:"jenna_count" yaml:"jenna_count"`
	LastCollect  string `json:"last_collect" yaml:"last_collect"`
}

// Snapshot computes the stats shown in the header counters
func Snapshot(gallery, jenna []models.ImageRecord, now time.Time) Stats {
	return Stats{
		GalleryCount: CountText(gallery),
		TodayCount:   TodayCount(gallery, now, time.Local),
		JennaCount:   CountText(jenna),
		LastCollect:  CollectedText(now),
	}
}
