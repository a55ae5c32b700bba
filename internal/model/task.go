package model

import (
	"fmt"
	"strings"
	"time"
)

// PlaybackTask represents one download-decode-play run for a locator
type PlaybackTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	StartedAt  time.Time // when the task started
	FinishedAt time.Time // when the task finished
	Title      string    // media title
}

// TranscodeTask represents decoding a downloaded container to PCM
type TranscodeTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewPlaybackTask creates a pending task for the given locator
func NewPlaybackTask(id, url string) *PlaybackTask {
	return &PlaybackTask{
		ID:        id,
		URL:       url,
		Status:    TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
}

// Fail marks the task as failed with err
func (pt *PlaybackTask) Fail(err error) {
	pt.Status = TaskStatusError
	if err != nil {
		pt.LastError = err.Error()
	}
	pt.FinishedAt = time.Now()
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (pt *PlaybackTask) GetETAString() string {
	if pt.ETASec <= 0 {
		return "—"
	}

	hours := pt.ETASec / 3600
	minutes := (pt.ETASec % 3600) / 60
	seconds := pt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (pt *PlaybackTask) GetDisplayTitle() string {
	if pt.Title != "" && !strings.HasPrefix(pt.Title, "http") {
		return pt.Title
	}

	if pt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(pt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return pt.URL
}
