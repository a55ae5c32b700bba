package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/config"
	"github.com/ytget/eyetooth/internal/model"
)

// yt-dlp format selectors per quality preset
const (
	FormatBestAudio   = "bestaudio[ext=m4a]/bestaudio"
	FormatMediumAudio = "bestaudio[abr<=128][ext=m4a]/bestaudio[abr<=128]/bestaudio"
)

// Retry settings
const (
	DefaultMaxRetries = 1
	DefaultRetryDelay = 2 * time.Second
	ProgressInterval  = 500 * time.Millisecond
)

// runFunc runs one download attempt, reporting progress through onProgress.
type runFunc func(ctx context.Context, url, format, outputPath string, onProgress func(ytdlp.ProgressUpdate)) error

// Service handles download operations
type Service struct {
	mu         sync.Mutex
	format     string
	install    bool
	installed  bool
	maxRetries int
	retryDelay time.Duration
	run        runFunc
	onUpdate   func(*model.PlaybackTask) // callback for console updates
}

// NewService creates a new download service
func NewService(preset config.QualityPreset, install bool) *Service {
	return &Service{
		format:     FormatForPreset(preset),
		install:    install,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		run:        runYTDLP,
	}
}

// FormatForPreset maps a quality preset to a yt-dlp format selector
func FormatForPreset(preset config.QualityPreset) string {
	if preset == config.QualityMedium {
		return FormatMediumAudio
	}
	return FormatBestAudio
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.PlaybackTask)) {
	s.onUpdate = callback
}

// Download downloads the audio stream of task.URL to outputPath
func (s *Service) Download(ctx context.Context, task *model.PlaybackTask, outputPath string) error {
	if err := s.ensureInstalled(ctx); err != nil {
		return err
	}

	task.Status = model.TaskStatusDownloading
	task.OutputPath = outputPath
	s.notifyUpdate(task)

	if err := s.downloadWithRetry(ctx, task, outputPath); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	task.Progress = 1.0
	task.Percent = 100
	s.notifyUpdate(task)
	return nil
}

// ensureInstalled fetches the yt-dlp binary once per process when enabled
func (s *Service) ensureInstalled(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.install || s.installed {
		return nil
	}
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	s.installed = true
	return nil
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, task *model.PlaybackTask, outputPath string) error {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}

			log.Info().Str("task_id", task.ID).Int("attempt", attempt+1).Msg("Retrying download")
		}

		err := s.run(ctx, task.URL, s.format, outputPath, func(update ytdlp.ProgressUpdate) {
			s.updateTaskProgress(task, &update)
		})
		if err == nil {
			return nil
		}

		lastErr = err
		log.Warn().Err(err).Str("task_id", task.ID).Int("attempt", attempt+1).Msg("Download attempt failed")

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return lastErr
}

// updateTaskProgress updates task progress from yt-dlp info
func (s *Service) updateTaskProgress(task *model.PlaybackTask, update *ytdlp.ProgressUpdate) {
	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		task.ETASec = int(eta.Seconds())
	}

	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" && task.Title == "" {
		task.Title = *update.Info.Title
	}

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.PlaybackTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

func runYTDLP(ctx context.Context, url, format, outputPath string, onProgress func(ytdlp.ProgressUpdate)) error {
	dl := ytdlp.New().
		Format(format).
		NoPlaylist().
		ForceOverwrites().
		Output(outputPath)

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		onProgress(update)
	})

	_, err := dl.Run(ctx, url)
	return err
}
