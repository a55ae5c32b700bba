// Package transcode turns downloaded audio containers into 16-bit PCM WAV
// files by running ffmpeg, reporting progress parsed from its -progress
// output.
package transcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/model"
)

// FFmpeg constants for PCM output
const (
	AudioCodec      = "pcm_s16le"
	AudioSampleRate = "44100"
	AudioChannels   = "2"

	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "transcode-"
)

// Service handles transcoding operations
type Service struct {
	ffmpeg   string
	ffprobe  string
	onUpdate func(*model.TranscodeTask)
}

// NewService creates a transcoder using the given executables
func NewService(ffmpegPath, ffprobePath string) *Service {
	return &Service{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.TranscodeTask)) {
	s.onUpdate = callback
}

// Transcode decodes inputPath into a WAV file at outputPath and blocks until
// ffmpeg exits. A partial output file is removed on failure.
func (s *Service) Transcode(ctx context.Context, inputPath, outputPath string) (*model.TranscodeTask, error) {
	task := &model.TranscodeTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		err = fmt.Errorf("input file does not exist: %s", inputPath)
		s.setTaskError(task, err)
		return task, err
	}

	// progress is optional, so a failed probe only loses the percentage
	duration, err := s.getDuration(ctx, inputPath)
	if err != nil {
		log.Debug().Err(err).Str("input", inputPath).Msg("Failed to probe duration")
	}

	task.Status = model.TaskStatusDecoding
	s.notifyUpdate(task)

	cmd := exec.CommandContext(ctx, s.ffmpeg, BuildFFmpegArgs(inputPath, outputPath)...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		err = fmt.Errorf("failed to create stderr pipe: %w", err)
		s.setTaskError(task, err)
		return task, err
	}

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("failed to start ffmpeg: %w", err)
		s.setTaskError(task, err)
		return task, err
	}

	tail := s.monitorProgress(stderr, task, duration)
	err = cmd.Wait()

	switch {
	case ctx.Err() != nil:
		os.Remove(task.OutputPath)
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		s.notifyUpdate(task)
		return task, ctx.Err()
	case err != nil:
		os.Remove(task.OutputPath)
		if tail != "" {
			err = fmt.Errorf("ffmpeg failed: %w: %s", err, tail)
		} else {
			err = fmt.Errorf("ffmpeg failed: %w", err)
		}
		s.setTaskError(task, err)
		return task, err
	}

	task.Status = model.TaskStatusCompleted
	task.Progress = 1.0
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.notifyUpdate(task)
	return task, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y", // overwrite output file
		"-i", inputPath,
		"-vn", // drop any video stream
		"-acodec", AudioCodec,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// getDuration gets the duration of a media file in seconds using ffprobe
func (s *Service) getDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, s.ffprobe, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress consumes ffmpeg's stderr until EOF and returns the last
// non-progress line, which carries the error message when ffmpeg fails.
func (s *Service) monitorProgress(stderr io.Reader, task *model.TranscodeTask, totalDuration float64) string {
	var last string
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		progress, ok := parseProgressLine(line, totalDuration)
		if !ok {
			if line != "" && !strings.Contains(line, "=") {
				last = line
			}
			continue
		}

		task.Progress = progress
		task.Percent = int(progress * 100)
		s.notifyUpdate(task)
	}
	return last
}

// parseProgressLine parses "out_time_us=123456" into a 0..1 fraction of
// totalDuration seconds.
func parseProgressLine(line string, totalDuration float64) (float64, bool) {
	if totalDuration <= 0 || !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}

	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return 0, false
	}

	progress := float64(us) / 1000000.0 / totalDuration
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0 {
		progress = 0
	}
	return progress, true
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.TranscodeTask, err error) {
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.TranscodeTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
