package model

// TaskStatus represents the status of a playback or transcode task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusResolving means the locator is being resolved to a stream
	TaskStatusResolving TaskStatus = "Resolving"

	// TaskStatusDownloading means the stream is being downloaded
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusDecoding means the downloaded container is being decoded to PCM
	TaskStatusDecoding TaskStatus = "Decoding"

	// TaskStatusPlaying means audio is being played
	TaskStatusPlaying TaskStatus = "Playing"

	// TaskStatusStopped means the task was cancelled
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}
