// Package media plays the audio behind a locator: it downloads the best
// audio-only stream to a fixed temporary file, decodes it to PCM, plays it
// to completion and removes the temporary files. Failures are reported on
// the console and never returned.
package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/audio"
	"github.com/ytget/eyetooth/internal/download"
	"github.com/ytget/eyetooth/internal/model"
	"github.com/ytget/eyetooth/internal/platform"
	"github.com/ytget/eyetooth/internal/transcode"
)

// TaskIDPrefix prefixes playback task IDs
const TaskIDPrefix = "task-"

// progressStep is the percentage granularity of download progress lines
const progressStep = 25

// PlaylistResolver expands playlist locators.
type PlaylistResolver interface {
	Resolve(ctx context.Context, url string) (*model.Playlist, error)
}

// Player runs the download, decode and playback pipeline.
type Player struct {
	downloader download.Downloader
	transcoder transcode.Transcoder
	output     audio.Output
	playlists  PlaylistResolver
	out        io.Writer

	dir      string
	basename string

	current        *model.PlaybackTask
	lastStep       int
	lastDecodeStep int
}

// NewPlayer wires a player. playlists may be nil, in which case playlist
// locators are handed to the downloader unchanged.
func NewPlayer(d download.Downloader, t transcode.Transcoder, o audio.Output, playlists PlaylistResolver, out io.Writer, dir, basename string) *Player {
	p := &Player{
		downloader: d,
		transcoder: t,
		output:     o,
		playlists:  playlists,
		out:        out,
		dir:        dir,
		basename:   basename,
	}
	d.SetUpdateCallback(p.reportProgress)
	t.SetUpdateCallback(p.reportDecodeProgress)
	return p
}

// Play plays locator, or every entry of it when it names a playlist. It
// blocks until playback ends.
func (p *Player) Play(ctx context.Context, locator string) {
	if p.playlists != nil && platform.IsPlaylistPage(locator) {
		p.playPlaylist(ctx, locator)
		return
	}

	if _, err := p.playOne(ctx, locator); err != nil {
		p.reportError(err)
	}
}

func (p *Player) playPlaylist(ctx context.Context, locator string) {
	playlist, err := p.playlists.Resolve(ctx, locator)
	if err != nil {
		p.reportError(err)
		return
	}

	for i, entry := range playlist.Entries {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(p.out, "Playing %d/%d: %s\n", i+1, len(playlist.Entries), entry.Title)

		task, err := p.playOne(ctx, entry.URL)
		if err != nil {
			p.reportError(err)
			playlist.UpdateEntryStatus(entry.ID, model.TaskStatusError, err.Error())
			continue
		}
		playlist.UpdateEntryStatus(entry.ID, task.Status, "")
	}

	if rest := playlist.Unfinished(); len(rest) > 0 {
		log.Info().Str("playlist", playlist.ID).Int("skipped", len(rest)).Msg("Playlist stopped early")
	}
	if failed := playlist.Failed(); len(failed) > 0 {
		log.Warn().Str("playlist", playlist.ID).Int("failed", len(failed)).Msg("Some playlist entries could not be played")
	}
}

func (p *Player) playOne(ctx context.Context, url string) (task *model.PlaybackTask, err error) {
	task = model.NewPlaybackTask(generateTaskID(), url)
	container := platform.TempPath(p.dir, p.basename, platform.DownloadExtension)
	pcm := platform.TempPath(p.dir, p.basename, platform.PCMExtension)
	p.current = task
	p.lastStep = -1
	p.lastDecodeStep = -1

	defer func() {
		if rmErr := platform.RemoveFiles(container, pcm); rmErr != nil {
			log.Warn().Err(rmErr).Str("task_id", task.ID).Msg("Failed to remove temporary audio")
		}
		if err != nil {
			task.Fail(err)
		}
		log.Debug().
			Str("task_id", task.ID).
			Str("status", task.Status.String()).
			Dur("duration", time.Since(task.StartedAt)).
			Msg("Playback task finished")
	}()

	task.Status = model.TaskStatusResolving
	if err := p.downloader.Download(ctx, task, container); err != nil {
		return task, err
	}

	task.Status = model.TaskStatusDecoding
	decoded, err := p.transcoder.Transcode(ctx, container, pcm)
	if err != nil {
		return task, err
	}
	log.Debug().
		Str("task_id", task.ID).
		Str("transcode_id", decoded.ID).
		Dur("duration", decoded.FinishedAt.Sub(decoded.StartedAt)).
		Msg("Decoded audio")

	task.Status = model.TaskStatusPlaying
	fmt.Fprintf(p.out, "Playing %s\n", task.GetDisplayTitle())
	if err := p.output.Play(ctx, pcm); err != nil {
		return task, fmt.Errorf("playback failed: %w", err)
	}

	task.Status = model.TaskStatusCompleted
	task.FinishedAt = time.Now()
	return task, nil
}

func (p *Player) reportProgress(task *model.PlaybackTask) {
	step := task.Percent / progressStep * progressStep
	if step <= p.lastStep {
		return
	}
	p.lastStep = step
	line := fmt.Sprintf("Downloading %s: %d%% ETA %s", task.GetDisplayTitle(), step, task.GetETAString())
	if task.Speed != "" {
		line += " (" + task.Speed + ")"
	}
	fmt.Fprintln(p.out, line)
}

func (p *Player) reportDecodeProgress(decode *model.TranscodeTask) {
	if decode.Status != model.TaskStatusDecoding && decode.Status != model.TaskStatusCompleted {
		return
	}
	step := decode.Percent / progressStep * progressStep
	if step <= p.lastDecodeStep {
		return
	}
	p.lastDecodeStep = step
	fmt.Fprintf(p.out, "Decoding %s: %d%%\n", p.current.GetDisplayTitle(), step)
}

func (p *Player) reportError(err error) {
	fmt.Fprintf(p.out, "An error occurred while downloading or playing the audio: %v\n", err)
	log.Debug().Err(err).Msg("Media playback failed")
}

// generateTaskID generates a unique task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
