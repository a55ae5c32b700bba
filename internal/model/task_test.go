package model

import (
	"errors"
	"testing"
)

func TestPlaybackTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &PlaybackTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestPlaybackTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		output   string
		url      string
		expected string
	}{
		{"Song Title", "", "https://youtube.com/watch?v=123", "Song Title"},
		{"", "", "https://youtube.com/watch?v=123", "https://youtube.com/watch?v=123"},
		{"", "/tmp/audio.m4a", "https://youtube.com/watch?v=456", "audio"},
		{"https://youtube.com/watch?v=789", `C:\tmp\song.wav`, "x", "song"},
	}

	for _, test := range tests {
		task := &PlaybackTask{Title: test.title, OutputPath: test.output, URL: test.url}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', output='%s' = '%s', expected '%s'",
				test.title, test.output, result, test.expected)
		}
	}
}

func TestNewPlaybackTask(t *testing.T) {
	task := NewPlaybackTask("play-1", "https://youtube.com/watch?v=test")

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status to be TaskStatusPending, got %s", task.Status)
	}
	if task.ETASec != -1 {
		t.Errorf("Expected unknown ETA, got %d", task.ETASec)
	}
	if task.StartedAt.IsZero() {
		t.Error("Expected StartedAt to be set")
	}

	task.Fail(errors.New("boom"))
	if task.Status != TaskStatusError || task.LastError != "boom" {
		t.Errorf("Fail() left status=%s lastError=%q", task.Status, task.LastError)
	}
	if task.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}
}
