package download

import (
	"context"

	"github.com/ytget/eyetooth/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.PlaybackTask))

	// Download fetches the audio of task.URL into outputPath, blocking until
	// the file is complete.
	Download(ctx context.Context, task *model.PlaybackTask, outputPath string) error
}
