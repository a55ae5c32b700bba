package transcode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/eyetooth/internal/model"
)

// writeScript creates an executable shell script standing in for ffmpeg or
// ffprobe.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.m4a")
	require.NoError(t, os.WriteFile(path, []byte("container"), 0o644))
	return path
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := BuildFFmpegArgs("/input.m4a", "/output.wav")

	expectedArgs := []string{
		"-y",
		"-i", "/input.m4a",
		"-vn",
		"-acodec", AudioCodec,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-progress", "pipe:2",
		"-nostats",
		"/output.wav",
	}
	assert.Equal(t, expectedArgs, args)
}

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line     string
		total    float64
		expected float64
		ok       bool
	}{
		{"out_time_us=500000", 2, 0.25, true},
		{"out_time_us=9000000", 2, 1.0, true},
		{"out_time_us=-10", 2, 0, true},
		{"out_time_us=abc", 2, 0, false},
		{"speed=1.2x", 2, 0, false},
		{"out_time_us=500000", 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := parseProgressLine(tt.line, tt.total)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.InDelta(t, tt.expected, got, 1e-9, tt.line)
	}
}

func TestTranscode_NonExistentInput(t *testing.T) {
	s := NewService("ffmpeg", "ffprobe")

	task, err := s.Transcode(context.Background(), "/path/to/nonexistent/audio.m4a", "/tmp/out.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
	assert.Equal(t, model.TaskStatusError, task.Status)
}

func TestTranscode_MissingExecutable(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "no-ffmpeg"), filepath.Join(t.TempDir(), "no-ffprobe"))

	task, err := s.Transcode(context.Background(), writeInput(t), filepath.Join(t.TempDir(), "out.wav"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start ffmpeg")
	assert.Equal(t, model.TaskStatusError, task.Status)
}

func TestTranscode_Success(t *testing.T) {
	ffprobe := writeScript(t, "ffprobe", `echo 2.0`)
	ffmpeg := writeScript(t, "ffmpeg", `for last; do :; done
echo "out_time_us=1000000" >&2
echo "progress=continue" >&2
: > "$last"`)

	s := NewService(ffmpeg, ffprobe)
	var percents []int
	s.SetUpdateCallback(func(task *model.TranscodeTask) {
		percents = append(percents, task.Percent)
	})

	out := filepath.Join(t.TempDir(), "audio.wav")
	task, err := s.Transcode(context.Background(), writeInput(t), out)
	require.NoError(t, err)

	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.True(t, strings.HasPrefix(task.ID, TaskIDPrefix))
	assert.Equal(t, []int{0, 50, 100}, percents)
	assert.FileExists(t, out)
}

func TestTranscode_FailureRemovesOutput(t *testing.T) {
	ffprobe := writeScript(t, "ffprobe", `exit 1`)
	ffmpeg := writeScript(t, "ffmpeg", `for last; do :; done
: > "$last"
echo "Invalid data found when processing input" >&2
exit 1`)

	out := filepath.Join(t.TempDir(), "audio.wav")
	task, err := NewService(ffmpeg, ffprobe).Transcode(context.Background(), writeInput(t), out)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "Invalid data found when processing input")
	assert.Equal(t, model.TaskStatusError, task.Status)
	assert.NoFileExists(t, out)
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	assert.NotEqual(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, "transcode-"))
	assert.Len(t, id1, len("transcode-")+36)
}
